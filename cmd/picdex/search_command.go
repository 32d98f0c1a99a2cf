package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"picdex/internal/catalog"
	"picdex/internal/config"
	"picdex/internal/tagset"
)

func newSearchCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "search TAG",
		Short: "List pictures whose tag set contains TAG",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			tag := strings.TrimSpace(args[0])
			if tag == "" {
				return fmt.Errorf("tag must not be empty")
			}
			if strings.Contains(tag, tagset.Delimiter) {
				return fmt.Errorf("tag must not contain %q", tagset.Delimiter)
			}
			return ctx.withStore(func(cfg *config.Config, store *catalog.Store) error {
				pictures, err := store.PicturesByTag(cmd.Context(), tag)
				if err != nil {
					return err
				}
				out := cmd.OutOrStdout()
				if len(pictures) == 0 {
					fmt.Fprintf(out, "No pictures tagged %q\n", tag)
					return nil
				}
				rows := make([][]string, 0, len(pictures))
				for _, pic := range pictures {
					rows = append(rows, []string{
						fmt.Sprintf("%d", pic.ID),
						pic.Filename,
						fmt.Sprintf("%d", pic.Size),
						fmt.Sprintf("%d", pic.DupeCount),
						strings.Join(pic.Tags, ", "),
					})
				}
				fmt.Fprintln(out, renderTable(
					[]string{"ID", "Filename", "Size", "Dupes", "Tags"},
					rows,
					[]columnAlignment{alignRight, alignLeft, alignRight, alignRight, alignLeft},
				))
				return nil
			})
		},
	}
}
