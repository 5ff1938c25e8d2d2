package cli

import (
	"fmt"

	"github.com/arthur-debert/dotpatch/internal/version"
	"github.com/arthur-debert/dotpatch/pkg/config"
	"github.com/arthur-debert/dotpatch/pkg/filesystem"
	"github.com/arthur-debert/dotpatch/pkg/logging"
	"github.com/arthur-debert/dotpatch/pkg/pipeline"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

// NewRootCmd creates and returns the root command
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "dotpatch",
		Short: "Assemble dotfiles from ordered patch fragments",
		Long: `dotpatch builds dotfiles out of fragments.

Every directory below --directory whose name ends in ".d" is a patch
directory named after the file it produces: "dot-bashrc.d" becomes
".bashrc" under --target. The files inside are merged in name order on
top of the target's current content. JSON (comments allowed) and TOML
targets are deep-merged, anything else is concatenated line by line.`,
		Example: `  # Assemble everything in ./patches into $HOME
  dotpatch

  # Use another patch tree and output directory
  dotpatch --directory ~/dotfiles/patches --target /tmp/preview --log-level debug`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		DisableAutoGenTag: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(cmd.Flags())
			if err != nil {
				return err
			}

			level, err := logging.ParseLevel(cfg.LogLevel)
			if err != nil {
				return err
			}
			logging.SetupLogger(level)
			log.Debug().
				Str("command", cmd.Name()).
				Str("directory", cfg.Directory).
				Str("target", cfg.Target).
				Str("logLevel", cfg.LogLevel).
				Msg("Configuration loaded")

			result, err := pipeline.Run(filesystem.NewOS(), pipeline.Options{
				SourceRoot: cfg.Directory,
				TargetRoot: cfg.Target,
			})
			if result != nil {
				printSummary(cmd.OutOrStdout(), result)
			}
			return err
		},
	}

	rootCmd.Flags().StringP(config.KeyDirectory, "d", config.DefaultDirectory, "Path to the patch directories")
	rootCmd.Flags().String(config.KeyTarget, config.HomeDirectory(), "Path to the target directory. Defaults to user home")
	rootCmd.Flags().String(config.KeyLogLevel, config.DefaultLogLevel, "Log level (trace, debug, info, warn, error)")

	rootCmd.AddCommand(newVersionCmd())

	return rootCmd
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Long:  `Print detailed version information including commit hash and build date`,
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "dotpatch version %s\n", version.Version)
			if version.Commit != "" {
				fmt.Fprintf(out, "Commit: %s\n", version.Commit)
			}
			if version.Date != "" {
				fmt.Fprintf(out, "Built:  %s\n", version.Date)
			}
		},
	}
}
