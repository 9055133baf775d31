// Package cli wires the cobra command surface to the generate engine.
package cli

import (
	"fmt"
	"os"
	"os/signal"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/genrun-dev/genrun/internal/journal"
	"github.com/genrun-dev/genrun/pkg/config"
	"github.com/genrun-dev/genrun/pkg/module"
	"github.com/genrun-dev/genrun/pkg/runner"
	"github.com/genrun-dev/genrun/pkg/sandbox"
)

var rootCmd = &cobra.Command{
	Use:   "genrun [flags] file...",
	Short: "Run generate directives embedded in source comments",
	Long: `genrun scans the given source modules for //genrun:generate comment
directives and executes the commands they name, strictly in source order.
A directive's arguments follow shell-like quoting rules, and a module may
define aliases (name=command arg...) for later directives to expand.`,
	Args:          cobra.MinimumNArgs(1),
	RunE:          runRoot,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	cobra.OnInitialize(initConfig)

	// Module filtering flags
	rootCmd.Flags().StringSlice("include", nil, "Glob patterns selecting which modules are scanned (empty: all)")
	rootCmd.Flags().StringSlice("ignore", nil, "Glob patterns excluding modules from the scan")

	// Directive filtering flags
	rootCmd.Flags().String("run", "", "Only run directives whose comment text matches this regex")
	rootCmd.Flags().String("skip", "", "Skip directives whose comment text matches this regex")

	// Execution policy flags
	rootCmd.Flags().BoolP("verbose", "v", false, "Announce each command before it runs")
	rootCmd.Flags().Bool("dry-run", false, "Announce commands without spawning anything")
	rootCmd.Flags().Bool("trace", false, "Report each command's exit status after its output")
	rootCmd.Flags().Bool("fail-fast", false, "Abort the whole run on the first failure")
	rootCmd.Flags().StringSlice("allow", nil, "Restrict directives to these programs or command-line prefixes")
	rootCmd.Flags().String("timeout", config.DefaultTimeout, "Per-directive timeout (0: none)")

	// Journal flags
	rootCmd.Flags().String("journal", "", "Record every considered directive in this SQLite database")

	// Sandbox flags
	rootCmd.Flags().Bool("sandbox", false, "Run directives in restricted Docker containers")
	rootCmd.Flags().String("sandbox-image", config.DefaultSandboxImage, "Docker image for sandboxed directives")
	rootCmd.Flags().String("sandbox-memory", config.DefaultSandboxMemory, "Memory limit per sandboxed directive")
	rootCmd.Flags().Int("sandbox-cpus", config.DefaultSandboxCPUs, "CPU limit per sandboxed directive")

	viper.BindPFlags(rootCmd.Flags())
}

func runRoot(cmd *cobra.Command, args []string) error {
	cfg, err := buildConfig()
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: false,
		Prefix:          "genrun",
	})
	if cfg.Verbose {
		logger.SetLevel(log.DebugLevel)
	}

	modules, err := module.Load(args)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()

	var executor runner.Executor
	if cfg.Sandbox {
		if err := sandbox.CheckAvailability(ctx); err != nil {
			return err
		}
		logger.Debug("pulling sandbox image", "image", cfg.SandboxImage)
		if err := sandbox.PullImage(ctx, cfg.SandboxImage); err != nil {
			return err
		}
		executor = &sandbox.Executor{
			Image:       cfg.SandboxImage,
			MemoryLimit: cfg.SandboxMemory,
			CPULimit:    cfg.SandboxCPUs,
			Timeout:     cfg.Timeout,
		}
	} else {
		executor = &runner.HostExecutor{Timeout: cfg.Timeout}
	}

	var recorder runner.Recorder
	if cfg.JournalPath != "" {
		j, err := journal.Open(cfg.JournalPath)
		if err != nil {
			return fmt.Errorf("open journal: %w", err)
		}
		defer j.Close()
		recorder = j
	}

	r, err := runner.New(runner.Options{
		Include:  cfg.Include,
		Ignore:   cfg.Ignore,
		Run:      cfg.Run,
		Skip:     cfg.Skip,
		Verbose:  cfg.Verbose,
		DryRun:   cfg.DryRun,
		Trace:    cfg.Trace,
		FailFast: cfg.FailFast,
		Allow:    cfg.Allow,
	}, executor, os.Stdout, logger, recorder)
	if err != nil {
		return err
	}

	return r.Run(ctx, modules)
}

// Execute runs the root command.
func Execute() error {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "genrun: %v\n", err)
		return err
	}
	return nil
}
