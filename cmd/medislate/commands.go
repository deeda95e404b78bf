package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kpauljoseph/medislate/internal/gallery"
	"github.com/kpauljoseph/medislate/internal/pdf"
	"github.com/kpauljoseph/medislate/internal/pipeline"
	"github.com/kpauljoseph/medislate/internal/stats"
)

var (
	exportDPI       float64
	exportNoText    bool
	exportOverwrite bool

	copyFirst int
	copyLast  int
)

func registerCommands(root *cobra.Command) {
	buildCmd := &cobra.Command{
		Use:   "build",
		Short: "Run every stage: stats, tables, figures, gallery, diagram and PDF bundle",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := pipeline.New(cfg, log)
			if err != nil {
				return err
			}
			report, err := p.Run(cmd.Context())
			if err != nil {
				return err
			}
			report.Print(log)
			return nil
		},
	}

	statsCmd := &cobra.Command{
		Use:   "stats",
		Short: "Scan the dataset and write per-slide, per-lecture and vocabulary data files",
		Args:  cobra.NoArgs,
		RunE: withReport(func(cmd *cobra.Command, p *pipeline.Pipeline, report *pipeline.Report) error {
			_, _, err := p.Stats(cmd.Context(), report)
			return err
		}),
	}

	tablesCmd := &cobra.Command{
		Use:   "tables",
		Short: "Write LaTeX tables from the data files of a previous stats run",
		Args:  cobra.NoArgs,
		RunE: withStats(func(p *pipeline.Pipeline, result *stats.Result, report *pipeline.Report) error {
			return p.Tables(result, report)
		}),
	}

	figuresCmd := &cobra.Command{
		Use:   "figures",
		Short: "Render charts and the word cloud from the data files of a previous stats run",
		Args:  cobra.NoArgs,
		RunE: withStats(func(p *pipeline.Pipeline, result *stats.Result, report *pipeline.Report) error {
			return p.Figures(result, report)
		}),
	}

	galleryCmd := &cobra.Command{
		Use:   "gallery",
		Short: "Sample slide images into a captioned grid",
		Args:  cobra.NoArgs,
		RunE: withReport(func(cmd *cobra.Command, p *pipeline.Pipeline, report *pipeline.Report) error {
			ds, err := p.Load(cmd.Context(), report)
			if err != nil {
				return err
			}
			if err := p.Gallery(cmd.Context(), ds, report); err != nil {
				if errors.Is(err, gallery.ErrNoImages) {
					log.Warn("No images found in %s", cfg.DatasetRoot)
					return nil
				}
				return err
			}
			return nil
		}),
	}

	diagramCmd := &cobra.Command{
		Use:   "diagram",
		Short: "Render the data collection diagram as DOT and PNG",
		Args:  cobra.NoArgs,
		RunE: withReport(func(cmd *cobra.Command, p *pipeline.Pipeline, report *pipeline.Report) error {
			return p.Diagram(report)
		}),
	}

	exportCmd := &cobra.Command{
		Use:   "export-slides <deck.pdf> <lecture dir>",
		Short: "Render a lecture deck into Images/Slide N.jpg and Texts/Slide N.txt",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := pdf.DefaultExportOptions()
			opts.DPI = exportDPI
			opts.WriteText = !exportNoText
			opts.Overwrite = exportOverwrite

			st, err := pdf.NewExporter(log).ExportDeck(cmd.Context(), args[0], args[1], opts)
			if err != nil {
				return err
			}
			log.Info("- Pages: %d", st.Pages)
			log.Info("- Images written: %d (kept %d)", st.ImagesWritten, st.ImagesExisting)
			log.Info("- Texts written: %d (kept %d, blank %d)", st.TextsWritten, st.TextsExisting, st.BlankPages)
			return nil
		},
	}
	exportCmd.Flags().Float64Var(&exportDPI, "dpi", pdf.DefaultDPI, "render resolution")
	exportCmd.Flags().BoolVar(&exportNoText, "no-text", false, "do not write page text as transcripts")
	exportCmd.Flags().BoolVar(&exportOverwrite, "overwrite", false, "replace existing slide images")

	copyCmd := &cobra.Command{
		Use:   "copy-lectures <src> <dst>",
		Short: "Copy Final, Images and Texts of a range of lectures into another tree",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := pipeline.New(cfg, log)
			if err != nil {
				return err
			}
			st, err := p.CopyLectures(cmd.Context(), args[0], args[1], copyFirst, copyLast)
			if err != nil {
				return err
			}
			log.Info("Copied %d folders, %d missing", len(st.Copied), len(st.Missing))
			return nil
		},
	}
	copyCmd.Flags().IntVar(&copyFirst, "first", 1, "first lecture number")
	copyCmd.Flags().IntVar(&copyLast, "last", 1, "last lecture number")

	versionCmd := &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprint(cmd.OutOrStdout(), versionString())
		},
	}

	root.AddCommand(buildCmd, statsCmd, tablesCmd, figuresCmd, galleryCmd, diagramCmd, exportCmd, copyCmd, versionCmd)
}

// withReport builds the pipeline and runs fn against a fresh report.
func withReport(fn func(*cobra.Command, *pipeline.Pipeline, *pipeline.Report) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		p, err := pipeline.New(cfg, log)
		if err != nil {
			return err
		}
		report := p.NewReport()
		if err := fn(cmd, p, report); err != nil {
			return err
		}
		log.Info("Wrote %d artifacts", len(report.Artifacts))
		return nil
	}
}

func withStats(fn func(*pipeline.Pipeline, *stats.Result, *pipeline.Report) error) func(*cobra.Command, []string) error {
	return withReport(func(cmd *cobra.Command, p *pipeline.Pipeline, report *pipeline.Report) error {
		result, err := p.LoadStats()
		if err != nil {
			return fmt.Errorf("failed to load stats, run \"medislate stats\" first: %w", err)
		}
		return fn(p, result, report)
	})
}
