package main

import (
	"context"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"github.com/use-agent/aliadapter/config"
	"github.com/use-agent/aliadapter/engine"
	"github.com/use-agent/aliadapter/scraper"
)

// newRootCmd creates the root command. Without a subcommand it serves HTTP.
func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "aliadapter",
		Short: "Product metadata extraction service for AliExpress listings.",
		Long: `aliadapter turns an AliExpress product URL (desktop, mobile or short
link) into normalized product metadata: title, price, currency, images
and a specification summary.`,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runServe(cmd.Context(), config.Load())
		},
	}

	cmd.AddCommand(newServeCmd())
	cmd.AddCommand(newExtractCmd())
	return cmd
}

// newPipeline builds the scraper on the plain-HTTP engine.
func newPipeline(cfg *config.Config) *scraper.Scraper {
	eng := engine.NewHTTPEngine(engine.HTTPOptions{
		MaxRedirects: cfg.Fetch.MaxRedirects,
		ChromeTLS:    cfg.Fetch.ChromeTLS,
		Proxy:        cfg.Fetch.Proxy,
		MaxBodyBytes: cfg.Fetch.MaxBodyBytes,
	})
	return scraper.NewScraper(eng, cfg.Fetch, cfg.Extract)
}

func main() {
	if err := newRootCmd().ExecuteContext(context.Background()); err != nil {
		os.Exit(1)
	}
}

// initLogger configures slog based on the LogConfig.
func initLogger(cfg config.LogConfig, w io.Writer) {
	var level slog.Level
	switch cfg.Level {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{Level: level}

	var handler slog.Handler
	if cfg.Format == "text" {
		handler = slog.NewTextHandler(w, opts)
	} else {
		handler = slog.NewJSONHandler(w, opts)
	}

	slog.SetDefault(slog.New(handler))
}
