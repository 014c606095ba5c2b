package fill

import (
	"context"
	"encoding/base64"
	"fmt"
	"math/rand"
	"strings"
	"time"

	"github.com/google/uuid"

	"scimtester/internal/schema"
	"scimtester/internal/urnpath"
)

// ObjectCreator creates a minimal instance of a resource model and registers
// it for later cleanup. It is how the synthesizer obtains dependency objects
// for reference-typed attributes.
type ObjectCreator interface {
	CreateMinimal(ctx context.Context, m *schema.Model) (schema.Resource, error)
}

// ModelSource resolves a resource kind name to its model.
type ModelSource interface {
	ResourceModel(ctx context.Context, name string) (*schema.Model, error)
}

// Synthesizer produces random, schema-conformant attribute values.
type Synthesizer struct {
	rng     *rand.Rand
	creator ObjectCreator
	models  ModelSource
}

// New returns a Synthesizer with a time-seeded random source.
func New(creator ObjectCreator, models ModelSource) *Synthesizer {
	return NewSeeded(time.Now().UnixNano(), creator, models)
}

// NewSeeded returns a Synthesizer with a fixed seed, for reproducible runs.
func NewSeeded(seed int64, creator ObjectCreator, models ModelSource) *Synthesizer {
	return &Synthesizer{
		rng:     rand.New(rand.NewSource(seed)),
		creator: creator,
		models:  models,
	}
}

// Fill populates every attribute of obj selected by filter, then enforces
// the primary-uniqueness and reference-consistency invariants.
func (s *Synthesizer) Fill(ctx context.Context, m *schema.Model, obj schema.Resource, filter urnpath.Filter) error {
	filter.IncludeSubAttributes = false
	for _, entry := range urnpath.Iterate(m, filter) {
		value, ok, err := s.Value(ctx, m, entry.Owner, entry.Attr, entry.Path)
		if err != nil {
			return err
		}
		if !ok {
			continue
		}
		urnpath.Set(m, obj, entry.Path, value)
	}
	s.normalizeObject(m.Base, obj)
	for _, ext := range m.Extensions {
		if sub, ok := obj[ext.Schema.ID].(map[string]any); ok {
			s.normalizeObject(ext.Schema, sub)
		}
	}
	return nil
}

// ValueAt resolves path against m and synthesizes one value for the
// resolved attribute. It is the standalone single-attribute entry point;
// ok is false when the path does not resolve.
func (s *Synthesizer) ValueAt(ctx context.Context, m *schema.Model, path string) (any, bool, error) {
	owner, attr, resolved := urnpath.Resolve(m, path)
	if !resolved {
		return nil, false, nil
	}
	value, ok, err := s.Value(ctx, m, owner, attr, path)
	if err != nil || !ok {
		return nil, ok, err
	}
	if attr.MultiValued {
		if _, isSlice := value.([]any); !isSlice {
			value = []any{value}
		}
	}
	return value, true, nil
}

// Value synthesizes one value for attr, owned by owner, addressed by path.
// Multi-valued wrapping is left to the caller. The returned bool is the
// "no value" signal: false means the attribute should stay unset.
func (s *Synthesizer) Value(ctx context.Context, m *schema.Model, owner schema.Node, attr *schema.Attribute, path string) (any, bool, error) {
	if len(attr.Examples) > 0 {
		return attr.Examples[s.rng.Intn(len(attr.Examples))], true, nil
	}

	if isEmailValue(owner, attr, path) {
		return fmt.Sprintf("%s@%s.test", uuid.NewString(), uuid.NewString()), true, nil
	}
	if isPhoneValue(owner, attr, path) {
		return s.randomDigits(10), true, nil
	}

	switch schema.KindOf(m, attr) {
	case schema.KindReference:
		return s.referenceValue(ctx, m, attr)
	case schema.KindEnumerated:
		return attr.CanonicalValues[s.rng.Intn(len(attr.CanonicalValues))], true, nil
	case schema.KindComplex:
		sub, err := s.fillNode(ctx, m, attr)
		return sub, err == nil, err
	case schema.KindExtension:
		ext := m.Extension(attr.Name)
		sub, err := s.fillNode(ctx, m, ext)
		return sub, err == nil, err
	case schema.KindBinary:
		return s.randomBinary(), true, nil
	default:
		return s.primitiveValue(attr), true, nil
	}
}

// fillNode synthesizes a full sub-object for a complex attribute or an
// extension schema, then back-fills reference companions and the primary
// flag invariant within it.
func (s *Synthesizer) fillNode(ctx context.Context, m *schema.Model, node schema.Node) (map[string]any, error) {
	obj := make(map[string]any, len(node.Fields()))
	for _, sub := range node.Fields() {
		value, ok, err := s.Value(ctx, m, node, sub, node.NodeName()+"."+sub.Name)
		if err != nil {
			return nil, err
		}
		if !ok {
			continue
		}
		if sub.MultiValued {
			if _, isSlice := value.([]any); !isSlice {
				value = []any{value}
			}
		}
		obj[sub.Name] = value
	}
	if attr, ok := node.(*schema.Attribute); ok {
		reconcileReference(attr, obj)
	}
	s.normalizeObject(node, obj)
	return obj, nil
}

// referenceValue synthesizes a value for a reference attribute. References
// that only target external URLs or URIs get an opaque unique URL; anything
// else creates a minimal dependency object of one acceptable target kind and
// uses its location.
func (s *Synthesizer) referenceValue(ctx context.Context, m *schema.Model, attr *schema.Attribute) (any, bool, error) {
	if schema.ExternalOnly(attr) {
		return fmt.Sprintf("https://%s.test", uuid.NewString()), true, nil
	}

	kind := s.pickTargetKind(m, attr)
	target, err := s.models.ResourceModel(ctx, kind)
	if err != nil {
		return nil, false, fmt.Errorf("reference attribute %q: %w", attr.Name, err)
	}
	dep, err := s.creator.CreateMinimal(ctx, target)
	if err != nil {
		return nil, false, fmt.Errorf("creating %s dependency for %q: %w", kind, attr.Name, err)
	}
	if loc := dep.Location(); loc != "" {
		return loc, true, nil
	}
	return dep.ID(), true, nil
}

// pickTargetKind chooses one acceptable target resource kind, avoiding the
// owning kind when there is a choice.
func (s *Synthesizer) pickTargetKind(m *schema.Model, attr *schema.Attribute) string {
	var candidates []string
	for _, rt := range attr.ReferenceTypes {
		if rt == schema.RefExternal || rt == schema.RefURI {
			continue
		}
		candidates = append(candidates, rt)
	}
	if len(candidates) > 1 {
		filtered := candidates[:0]
		for _, kind := range candidates {
			if !strings.EqualFold(kind, m.Name) {
				filtered = append(filtered, kind)
			}
		}
		if len(filtered) > 0 {
			candidates = filtered
		}
	}
	return candidates[s.rng.Intn(len(candidates))]
}

func (s *Synthesizer) primitiveValue(attr *schema.Attribute) any {
	switch attr.Type {
	case schema.TypeInteger:
		return s.rng.Int63n(1 << 31)
	case schema.TypeDecimal:
		return s.rng.Float64() * 1000
	case schema.TypeBoolean:
		return s.rng.Intn(2) == 0
	case schema.TypeDateTime:
		return time.Now().UTC().Add(-time.Duration(s.rng.Intn(86400)) * time.Second).Format(time.RFC3339)
	default:
		return uuid.NewString()
	}
}

func (s *Synthesizer) randomDigits(n int) string {
	var b strings.Builder
	for i := 0; i < n; i++ {
		fmt.Fprintf(&b, "%d", s.rng.Intn(10))
	}
	return b.String()
}

func (s *Synthesizer) randomBinary() string {
	return base64.StdEncoding.EncodeToString([]byte(uuid.NewString()))
}

// RFC 7643 §4.1.2 asks email and phone values to follow RFC 5321 and RFC
// 3966 formats, but nothing in the schema itself declares that. The shape
// is guessed from the attribute path and the owning model name.
func isEmailValue(owner schema.Node, attr *schema.Attribute, path string) bool {
	if !strings.EqualFold(attr.Name, "value") || attr.Type != schema.TypeString {
		return false
	}
	return strings.HasSuffix(strings.ToLower(path), "emails.value") ||
		strings.Contains(strings.ToLower(owner.NodeName()), "email")
}

func isPhoneValue(owner schema.Node, attr *schema.Attribute, path string) bool {
	if !strings.EqualFold(attr.Name, "value") || attr.Type != schema.TypeString {
		return false
	}
	return strings.HasSuffix(strings.ToLower(path), "phonenumbers.value") ||
		strings.Contains(strings.ToLower(owner.NodeName()), "phone")
}
