package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"scimtester/internal/checks"
)

// tagsCmd lists the tags the checker set declares, for use with
// --include-tags and --exclude-tags.
var tagsCmd = &cobra.Command{
	Use:   "tags",
	Short: "List available check tags",
	Long: `List every tag declared by the conformance checkers.

Tags are hierarchical: filtering on "crud" also matches "crud:create",
"crud:read" and the other CRUD checks.`,
	Run: func(cmd *cobra.Command, args []string) {
		for _, tag := range checks.KnownTags() {
			fmt.Fprintln(cmd.OutOrStdout(), tag)
		}
	},
}

func init() {
	rootCmd.AddCommand(tagsCmd)
}
