package cmd

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/briandowns/spinner"
	"github.com/spf13/cobra"

	"scimtester/internal/checks"
	"scimtester/internal/client"
	"scimtester/internal/config"
	"scimtester/internal/report"
	"scimtester/pkg/logging"
)

// errChecksFailed signals a completed run with conformance failures, so the
// process can exit with a dedicated code.
var errChecksFailed = errors.New("conformance checks failed")

var (
	checkToken         string
	checkIncludeTags   []string
	checkExcludeTags   []string
	checkResourceTypes []string
	checkOutputFormat  string
	checkConfigPath    string
	checkVerbose       bool
	checkDebug         bool
)

// checkCmd runs the conformance checks against a server.
var checkCmd = &cobra.Command{
	Use:   "check [host]",
	Short: "Run conformance checks against a SCIM server",
	Long: `Run the full conformance check suite against a SCIM 2.0 server.

The server's /ServiceProviderConfig, /Schemas and /ResourceTypes endpoints
are discovered first; every advertised resource type then gets a battery of
creation, query, replacement, PATCH and deletion checks. Objects created
during the run are deleted in reverse order, best effort, when each check
completes.

The host may also come from the configuration file (--config, or
~/.config/scimtester/config.yaml); a positional argument wins.

Examples:
  scimtester check https://scim.example.com/v2 --token $TOKEN
  scimtester check https://scim.example.com/v2 --include-tags crud:create
  scimtester check https://scim.example.com/v2 --resource-types User --output json`,
	Args: cobra.MaximumNArgs(1),
	RunE: runCheck,
}

func init() {
	rootCmd.AddCommand(checkCmd)

	checkCmd.Flags().StringVar(&checkToken, "token", "", "Bearer token used to authenticate against the server")
	checkCmd.Flags().StringSliceVar(&checkIncludeTags, "include-tags", nil, "Run only checks with these tags")
	checkCmd.Flags().StringSliceVar(&checkExcludeTags, "exclude-tags", nil, "Skip checks with these tags")
	checkCmd.Flags().StringSliceVar(&checkResourceTypes, "resource-types", nil, "Restrict resource checks to these kind names")
	checkCmd.Flags().StringVarP(&checkOutputFormat, "output", "o", "table", "Output format (table, json, yaml)")
	checkCmd.Flags().StringVar(&checkConfigPath, "config", "", "YAML file with check run configuration")
	checkCmd.Flags().BoolVarP(&checkVerbose, "verbose", "v", false, "Include check descriptions in the output")
	checkCmd.Flags().BoolVar(&checkDebug, "debug", false, "Enable debug logging of protocol traffic")
}

// loadConfig merges the configuration file with command line flags and the
// positional host argument; flags win.
func loadConfig(cmd *cobra.Command, args []string) (config.Config, error) {
	cfg, err := config.Load(checkConfigPath)
	if err != nil {
		return cfg, err
	}

	if len(args) > 0 {
		cfg.Host = args[0]
	}
	if cmd.Flags().Changed("token") {
		cfg.Token = checkToken
	}
	if cmd.Flags().Changed("output") {
		cfg.Output = checkOutputFormat
	}
	if cmd.Flags().Changed("verbose") {
		cfg.Verbose = checkVerbose
	}
	if len(checkIncludeTags) > 0 {
		cfg.Check.IncludeTags = checkIncludeTags
	}
	if len(checkExcludeTags) > 0 {
		cfg.Check.ExcludeTags = checkExcludeTags
	}
	if len(checkResourceTypes) > 0 {
		cfg.Check.ResourceTypes = checkResourceTypes
	}

	if cfg.Host == "" {
		return cfg, errors.New("no host given: pass it as an argument or set it in the config file")
	}
	return cfg, nil
}

func runCheck(cmd *cobra.Command, args []string) error {
	level := logging.LevelWarn
	if checkDebug {
		level = logging.LevelDebug
	}
	logging.Init(level, os.Stderr)

	cfg, err := loadConfig(cmd, args)
	if err != nil {
		return err
	}

	var opts []client.Option
	if cfg.Token != "" {
		opts = append(opts, client.WithBearerToken(cfg.Token))
	}
	scim, err := client.NewHTTPClient(cfg.Host, opts...)
	if err != nil {
		return err
	}

	format := report.Format(cfg.Output)
	var spin *spinner.Spinner
	if format == report.FormatTable && !checkDebug {
		spin = spinner.New(spinner.CharSets[14], 100*time.Millisecond, spinner.WithWriter(os.Stderr))
		spin.Suffix = " Running conformance checks..."
		spin.Start()
	}

	results, err := checks.CheckServer(cmd.Context(), scim, cfg.Check)
	if spin != nil {
		spin.Stop()
	}
	if err != nil {
		return fmt.Errorf("conformance run aborted: %w", err)
	}

	if err := report.Write(cmd.OutOrStdout(), format, results, cfg.Verbose); err != nil {
		return err
	}

	if report.Summarize(results).Failed > 0 {
		return errChecksFailed
	}
	return nil
}
