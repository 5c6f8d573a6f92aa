package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"

	"github.com/spf13/cobra"

	"github.com/Lchiki-nl/Stamp-Image-Tools-sub000/internal/archive"
	"github.com/Lchiki-nl/Stamp-Image-Tools-sub000/internal/batch"
	"github.com/Lchiki-nl/Stamp-Image-Tools-sub000/internal/config"
	"github.com/Lchiki-nl/Stamp-Image-Tools-sub000/internal/remover"
	"github.com/Lchiki-nl/Stamp-Image-Tools-sub000/internal/server"
)

// Version information - set by ldflags during build
var (
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var cfg config.Config

	root := &cobra.Command{
		Use:   "stamp-tools",
		Short: "Stamp image tools: background removal, trimming, splitting, and resizing",
		Long: `stamp-tools prepares stamp and sticker images.

Run without a command it serves MCP over stdin/stdout, so it can be configured
directly in an MCP client.

Environment variables:
  STAMP_TOOLS_LOG_LEVEL=debug         Enable debug logging
  STAMP_TOOLS_MAX_BATCH=50            Images per batch
  STAMP_TOOLS_MAX_AI_BATCH=10         Images per AI background removal batch
  STAMP_TOOLS_MAX_GRID=8              Split rows and columns
  STAMP_TOOLS_ERASER_UNLOCKED=false   Allow eraser radius above 10
  STAMP_TOOLS_RESAMPLE=lanczos        Default resize filter
  STAMP_TOOLS_REMOVER_URL=            AI background removal endpoint`,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			// Configure logging to stderr (stdout is for MCP protocol)
			log.SetOutput(os.Stderr)
			log.SetFlags(log.Ldate | log.Ltime | log.Lshortfile)
			cfg = config.Load()
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return serve(cfg)
		},
	}

	root.AddCommand(
		&cobra.Command{
			Use:   "serve",
			Short: "Serve MCP over stdin/stdout",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				return serve(cfg)
			},
		},
		newProcessCmd(&cfg),
		&cobra.Command{
			Use:   "version",
			Short: "Print version information",
			Args:  cobra.NoArgs,
			Run: func(cmd *cobra.Command, args []string) {
				out := cmd.OutOrStdout()
				fmt.Fprintf(out, "stamp-tools %s\n", Version)
				fmt.Fprintf(out, "  Build time: %s\n", BuildTime)
				fmt.Fprintf(out, "  Git commit: %s\n", GitCommit)
			},
		},
	)
	return root
}

func serve(cfg config.Config) error {
	if cfg.Debug() {
		log.Printf("Stamp Tools MCP Server v%s (built %s, commit %s)", Version, BuildTime, GitCommit)
	}
	server.Version = Version
	if err := server.New(cfg).Run(); err != nil {
		return fmt.Errorf("server error: %w", err)
	}
	return nil
}

func newProcessCmd(cfg *config.Config) *cobra.Command {
	var (
		operation string
		settings  string
		output    string
	)

	cmd := &cobra.Command{
		Use:   "process [flags] IMAGE...",
		Short: "Apply one operation to a batch of images",
		Example: `  stamp-tools process --op remove-background --settings '{"targetColor":"auto","tolerance":10}' -o out/ a.png b.png
  stamp-tools process --op split --settings '{"rows":4,"cols":4}' -o stamps.zip sheet.png`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			bc, err := batch.ParseConfig(operation, json.RawMessage(settings))
			if err != nil {
				return err
			}
			if err := cfg.Capabilities.CheckBatch(bc.Operation(), len(args)); err != nil {
				return err
			}
			if sc, ok := bc.(batch.SplitConfig); ok {
				if err := cfg.Capabilities.CheckGrid(sc.Rows, sc.Cols); err != nil {
					return err
				}
			}

			opts := []batch.Option{
				batch.WithResampler(cfg.Resampler()),
				batch.WithLogger(log.Default(), cfg.Debug()),
			}
			if cfg.RemoverURL != "" {
				opts = append(opts, batch.WithRemover(remover.NewHTTP(cfg.RemoverURL, remover.DefaultTimeout)))
			}

			sources := make([]batch.Source, len(args))
			for i, p := range args {
				sources[i] = batch.FileSource(p)
			}

			stderr := cmd.ErrOrStderr()
			report := batch.New(opts...).Run(context.Background(), sources, bc, func(completed, total int) {
				fmt.Fprintf(stderr, "\r%d/%d", completed, total)
				if completed == total {
					fmt.Fprintln(stderr)
				}
			})

			if files := report.Files(); len(files) > 0 {
				written, err := archive.Write(output, files)
				if err != nil {
					return err
				}
				for _, p := range written {
					fmt.Fprintln(cmd.OutOrStdout(), p)
				}
			}

			for _, it := range report.Failed() {
				fmt.Fprintf(stderr, "%d %s: %s\n", it.Index, it.Name, it.Message)
			}
			if n := len(report.Failed()); n > 0 {
				return fmt.Errorf("%d of %d images failed", n, len(report.Items))
			}
			return nil
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&operation, "op", "", "operation: remove-background, remove-background-ai, crop, split, resize")
	flags.StringVar(&settings, "settings", "{}", "operation settings as JSON")
	flags.StringVarP(&output, "output", "o", "out", "output directory, or a .zip file")
	if err := cmd.MarkFlagRequired("op"); err != nil {
		panic(err)
	}
	return cmd
}
