package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"picdex/internal/catalog"
	"picdex/internal/config"
)

func newStatsCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show catalog totals and a per-type breakdown",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withStore(func(cfg *config.Config, store *catalog.Store) error {
				totals, err := store.Totals(cmd.Context())
				if err != nil {
					return err
				}
				breakdown, err := store.TypeBreakdown(cmd.Context())
				if err != nil {
					return err
				}

				out := cmd.OutOrStdout()
				fmt.Fprintf(out, "Catalog: %s\n", store.Path())
				fmt.Fprintf(out, "Pictures: %d  Types: %d\n", totals.Pictures, totals.Types)
				if len(breakdown) == 0 {
					return nil
				}

				rows := make([][]string, 0, len(breakdown))
				for _, tc := range breakdown {
					rows = append(rows, []string{tc.Label, fmt.Sprintf("%d", tc.Count)})
				}
				fmt.Fprintln(out, renderTable([]string{"Type", "Pictures"}, rows, []columnAlignment{alignLeft, alignRight}))
				return nil
			})
		},
	}
}

func newTypesCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "types",
		Short: "List the distinct type labels seen so far",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withStore(func(cfg *config.Config, store *catalog.Store) error {
				descriptors, err := store.Types(cmd.Context())
				if err != nil {
					return err
				}
				out := cmd.OutOrStdout()
				if len(descriptors) == 0 {
					fmt.Fprintln(out, "No types recorded yet")
					return nil
				}
				rows := make([][]string, 0, len(descriptors))
				for _, td := range descriptors {
					rows = append(rows, []string{fmt.Sprintf("%d", td.ID), td.Label})
				}
				fmt.Fprintln(out, renderTable([]string{"ID", "Label"}, rows, []columnAlignment{alignRight, alignLeft}))
				return nil
			})
		},
	}
}
