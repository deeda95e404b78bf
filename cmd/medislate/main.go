package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/kpauljoseph/medislate/internal/config"
	"github.com/kpauljoseph/medislate/internal/pipeline"
	"github.com/kpauljoseph/medislate/pkg/logger"
	"github.com/kpauljoseph/medislate/pkg/utils"
	"github.com/kpauljoseph/medislate/pkg/version"
)

var (
	configPath  string
	datasetRoot string
	outputDir   string
	verbose     bool
	debug       bool

	cfg     *config.Config
	log     *logger.Logger
	logFile *os.File
)

var rootCmd = &cobra.Command{
	Use:   "medislate",
	Short: "Statistics, figures and tables for a lecture slide dataset",
	Long: `medislate walks a tree of "Lecture N/Images" and "Lecture N/Texts" folders,
computes per-slide and per-lecture text statistics and renders the figures,
LaTeX tables, sample gallery and pipeline diagram used in the dataset paper.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = loadConfig(configPath, datasetRoot, outputDir)
		if err != nil {
			return err
		}

		var out io.Writer = os.Stdout
		if needsOutputDir(cmd) {
			if err := utils.EnsureDir(cfg.OutputDir); err != nil {
				return err
			}
			logFile, err = os.OpenFile(filepath.Join(cfg.OutputDir, pipeline.LogFile), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
			if err != nil {
				return fmt.Errorf("failed to open log file: %w", err)
			}
			out = io.MultiWriter(os.Stdout, logFile)
		}

		log = logger.New(logger.WithOutput(out), logger.WithPrefix("medislate"))
		log.SetVerbose(verbose)
		if debug {
			log.SetLevel(logger.LevelTrace)
		}
		if verbose {
			log.Debug("Verbose logging enabled")
		}
		log.Debug("Starting %s", version.GetVersionInfo())
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if log != nil {
			log.Sync()
		}
		if logFile != nil {
			_ = logFile.Close()
		}
	},
}

// loadConfig reads path when given, falls back to defaults, then applies flag overrides.
func loadConfig(path, root, out string) (*config.Config, error) {
	c := config.Default()
	if path != "" {
		loaded, err := config.Load(path)
		if err != nil {
			return nil, fmt.Errorf("error loading config: %w", err)
		}
		c = loaded
	}
	if root != "" {
		c.DatasetRoot = root
	}
	if out != "" {
		c.OutputDir = out
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

func needsOutputDir(cmd *cobra.Command) bool {
	switch cmd.Name() {
	case "version", "help", "export-slides", "copy-lectures":
		return false
	}
	return true
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "path to config file")
	rootCmd.PersistentFlags().StringVar(&datasetRoot, "dataset-root", "", "lecture dataset root (overrides config)")
	rootCmd.PersistentFlags().StringVarP(&outputDir, "output-dir", "o", "", "output directory (overrides config)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug mode with trace logging")

	registerCommands(rootCmd)
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		if log != nil {
			stop()
			log.Fatal("%v", err)
		}
		// Config or flag errors happen before the logger exists.
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// versionString is used by the version command.
func versionString() string {
	return version.GetDetailedVersionInfo()
}
