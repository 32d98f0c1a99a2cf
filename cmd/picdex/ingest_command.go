package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"picdex/internal/catalog"
	"picdex/internal/classify"
	"picdex/internal/collect"
	"picdex/internal/config"
	"picdex/internal/ingest"
	"picdex/internal/preflight"
)

func newIngestCommand(ctx *commandContext) *cobra.Command {
	var catalogFlag string
	var collectFlag string

	cmd := &cobra.Command{
		Use:   "ingest [flags] ROOT...",
		Short: "Scan directory roots into the catalog",
		Long: "Walk each ROOT, hash and classify every regular file, and record it " +
			"in the catalog. Content already cataloged merges its path tags and " +
			"counts as a duplicate; with a collection directory configured, new " +
			"content is also copied there under its content-addressed name.",
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			if err := applyIngestOverrides(cfg, catalogFlag, collectFlag); err != nil {
				return err
			}
			if err := preflight.Verify(cfg, args); err != nil {
				return err
			}

			logger, err := ctx.newLogger()
			if err != nil {
				return err
			}

			store, err := catalog.Open(cfg)
			if err != nil {
				return err
			}
			defer store.Close()

			var collector *collect.Store
			if cfg.CollectEnabled() {
				collector, err = collect.New(cfg.Paths.CollectDir)
				if err != nil {
					return err
				}
			}

			classifier := classify.New(classify.NewFileSniffer(cfg.Scanner.SniffCommand))
			pipeline := ingest.New(cfg, store, classifier, collector, logger)

			summary, err := pipeline.Ingest(cmd.Context(), args)
			if err != nil {
				return err
			}

			totals, err := store.Totals(cmd.Context())
			if err != nil {
				return err
			}
			printIngestSummary(cmd, summary, totals, cfg)
			return nil
		},
	}

	cmd.Flags().StringVarP(&catalogFlag, "catalog", "d", "", "Catalog database path (overrides configuration)")
	cmd.Flags().StringVarP(&collectFlag, "collect", "c", "", "Collection directory for unique files (overrides configuration)")
	return cmd
}

func applyIngestOverrides(cfg *config.Config, catalogPath, collectDir string) error {
	if trimmed := strings.TrimSpace(catalogPath); trimmed != "" {
		expanded, err := config.ExpandPath(trimmed)
		if err != nil {
			return fmt.Errorf("resolve catalog path: %w", err)
		}
		cfg.Paths.CatalogPath = expanded
	}
	if trimmed := strings.TrimSpace(collectDir); trimmed != "" {
		expanded, err := config.ExpandPath(trimmed)
		if err != nil {
			return fmt.Errorf("resolve collection directory: %w", err)
		}
		cfg.Paths.CollectDir = expanded
	}
	return nil
}

func printIngestSummary(cmd *cobra.Command, summary ingest.Summary, totals catalog.Totals, cfg *config.Config) {
	out := cmd.OutOrStdout()

	rows := [][]string{
		{"Processed", fmt.Sprintf("%d", summary.Processed)},
		{"Inserted", fmt.Sprintf("%d", summary.Inserted)},
		{"Duplicates", fmt.Sprintf("%d", summary.Duplicates)},
		{"Skipped", fmt.Sprintf("%d", summary.Skipped)},
	}
	if cfg.CollectEnabled() {
		rows = append(rows,
			[]string{"Relocated", fmt.Sprintf("%d", summary.Relocated)},
			[]string{"Relocate failures", fmt.Sprintf("%d", summary.RelocateFailures)},
		)
	}
	rows = append(rows,
		[]string{"Catalog pictures", fmt.Sprintf("%d", totals.Pictures)},
		[]string{"Catalog types", fmt.Sprintf("%d", totals.Types)},
	)

	fmt.Fprintln(out, renderTable([]string{"Metric", "Value"}, rows, []columnAlignment{alignLeft, alignRight}))
}
