package main

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/use-agent/aliadapter/config"
	"github.com/use-agent/aliadapter/models"
)

func newExtractCmd() *cobra.Command {
	var debug bool

	cmd := &cobra.Command{
		Use:   "extract <url>",
		Short: "Run the pipeline once and print the product metadata as JSON.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.Load()
			if !debug {
				cfg.Log.Level = "warn"
			}
			cfg.Log.Format = "text"
			initLogger(cfg.Log, cmd.ErrOrStderr())

			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")

			meta, err := newPipeline(cfg).Scrape(cmd.Context(), args[0])
			if err != nil {
				var ee *models.ExtractionError
				if errors.As(err, &ee) {
					_ = json.NewEncoder(cmd.ErrOrStderr()).Encode(ee.ToEnvelope(debug))
				}
				return fmt.Errorf("extract %s: %w", args[0], err)
			}
			return enc.Encode(meta)
		},
	}

	cmd.Flags().BoolVar(&debug, "debug", false, "log pipeline stages and include diagnostics in errors")
	return cmd
}
