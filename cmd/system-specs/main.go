package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/go-tangra/go-tangra-specs/internal/collector"
	"github.com/go-tangra/go-tangra-specs/internal/config"
	"github.com/go-tangra/go-tangra-specs/internal/logging"
	"github.com/go-tangra/go-tangra-specs/internal/report"
)

var (
	version    = "1.0.0"
	commitHash = "unknown"
	buildDate  = "unknown"
)

var cfgFile string

var rootCmd = &cobra.Command{
	Use:   "system-specs",
	Short: "System Specs Collector - report OS, CPU, memory, disk and GPU facts",
	Long: `System Specs Collector queries the local host for operating system,
CPU, memory, disk and GPU information and prints a short summary or saves
the full report as CSV, JSON, YAML, TOML or SQLite.

A group that cannot be read is recorded as an error entry; the rest of the
report is still produced.`,
	Version: version,
	Args:    cobra.NoArgs,
	RunE:    runCollect,
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "system-specs %s (commit: %s, built: %s)\n", version, commitHash, buildDate)
	},
}

func init() {
	rootCmd.SetVersionTemplate("System Specs Collector v{{.Version}}\n")

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: ./configs/system-specs.yaml)")
	rootCmd.Flags().StringP("format", "f", "", "output format: csv, json, text, yaml, toml, sqlite (default text)")
	rootCmd.Flags().StringP("output", "o", "", "output file name without extension (default system_specs)")
	rootCmd.Flags().String("log-level", "", "log level: debug, info, warn, error (default warn)")
	rootCmd.Flags().Duration("cpu-interval", 0, "CPU usage sampling window (default 1s)")

	rootCmd.AddCommand(versionCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func runCollect(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	// CLI flag overrides.
	if v, _ := cmd.Flags().GetString("format"); v != "" {
		cfg.Format = v
	}
	if v, _ := cmd.Flags().GetString("output"); v != "" {
		cfg.Output = v
	}
	if v, _ := cmd.Flags().GetString("log-level"); v != "" {
		cfg.LogLevel = v
	}
	if v, _ := cmd.Flags().GetDuration("cpu-interval"); v > 0 {
		cfg.CPUInterval = v
	}

	format, err := report.ParseFormat(cfg.Format)
	if err != nil {
		return err
	}

	logger := logging.New(cmd.ErrOrStderr(), cfg.LogLevel)

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	c := collector.New(logger,
		collector.WithVersion(version),
		collector.WithSampleInterval(cfg.CPUInterval),
		collector.WithGPU(collector.DetectGPU(cfg.GPUCommand)),
	)

	// Collection and save failures are reported in the output, not the exit code.
	report.Render(ctx, format, cfg.Output, c.Collect(ctx).Record(), cmd.OutOrStdout())
	return nil
}
