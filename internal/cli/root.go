package cli

import (
	"context"
	"fmt"

	charmlog "github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/tirja/porygon/encoding"
)

var (
	version = "dev" // semantic version (e.g., "v1.2.3")
	commit  string  // git commit SHA
	date    string  // build timestamp
)

// SetVersion sets the version information displayed by --version.
// It is called by the main package with values injected via ldflags at build time.
func SetVersion(v, c, d string) {
	version = v
	commit = c
	date = d
}

// rootOpts holds the persistent flags and the resolved configuration.
type rootOpts struct {
	configPath string
	verbose    bool
	items      int
	precision  int

	cfg Config
}

// Execute runs the porygon CLI with ctx and returns an error if any command fails.
//
// Logging:
//   - Default: info level (logs to stderr)
//   - With --verbose (-v): debug level
func Execute(ctx context.Context) error {
	return newRootCmd().ExecuteContext(ctx)
}

// newRootCmd creates the root command with all subcommands registered.
func newRootCmd() *cobra.Command {
	opts := &rootOpts{}

	root := &cobra.Command{
		Use:           "porygon",
		Short:         "Porygon encodes N-dimensional polylines",
		Long:          `Porygon converts sequences of N-dimensional points to compact, printable polyline strings and packs named polylines into track blobs.`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			level := charmlog.InfoLevel
			if opts.verbose {
				level = charmlog.DebugLevel
			}
			logger := newLogger(cmd.ErrOrStderr(), level)
			cmd.SetContext(withLogger(cmd.Context(), logger))

			return opts.resolve(cmd, logger)
		},
	}

	root.SetVersionTemplate(fmt.Sprintf("porygon %s\ncommit: %s\nbuilt: %s\n", version, commit, date))

	flags := root.PersistentFlags()
	flags.StringVar(&opts.configPath, "config", "", "YAML config file (items, precision, compression, endian)")
	flags.BoolVarP(&opts.verbose, "verbose", "v", false, "enable verbose logging")
	flags.IntVarP(&opts.items, "items", "n", defaultItems, "number of axes per point")
	flags.IntVarP(&opts.precision, "precision", "p", encoding.DefaultPrecision, "decimal places kept per axis")

	root.AddCommand(newEncodeCmd(opts))
	root.AddCommand(newDecodeCmd(opts))
	root.AddCommand(newPackCmd(opts))
	root.AddCommand(newUnpackCmd(opts))
	root.AddCommand(newInspectCmd(opts))

	return root
}

// resolve loads the config file and applies explicitly set flags on top of it.
func (o *rootOpts) resolve(cmd *cobra.Command, logger *charmlog.Logger) error {
	cfg, err := loadConfig(o.configPath)
	if err != nil {
		return err
	}

	if cmd.Flags().Changed("items") {
		cfg.Items = o.items
	}
	if cmd.Flags().Changed("precision") {
		cfg.Precision = o.precision
	}

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	logger.Debug("configuration resolved",
		"items", cfg.Items,
		"precision", cfg.Precision,
		"compression", cfg.Compression,
		"endian", cfg.Endian,
	)
	o.cfg = cfg

	return nil
}
