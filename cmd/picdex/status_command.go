package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"picdex/internal/catalog"
	"picdex/internal/preflight"
)

func newStatusCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Check the environment and catalog health",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()

			rows := make([][]string, 0, 4)
			allPassed := true
			for _, result := range preflight.RunAll(cfg, nil) {
				state := "ok"
				if !result.Passed {
					state = "FAIL"
					allPassed = false
				}
				rows = append(rows, []string{result.Name, state, result.Detail})
			}

			health, err := catalog.Inspect(cmd.Context(), cfg)
			if err != nil {
				return err
			}
			rows = append(rows, []string{"Catalog database", healthState(health), healthDetail(health)})

			fmt.Fprintln(out, renderTable([]string{"Check", "State", "Detail"}, rows,
				[]columnAlignment{alignLeft, alignLeft, alignLeft}))
			if !allPassed {
				fmt.Fprintln(out, "One or more checks failed; fix them before running ingest")
			}
			return nil
		},
	}
}

func healthState(health catalog.DatabaseHealth) string {
	if !health.DatabaseExists {
		return "absent"
	}
	if health.DatabaseReadable && health.TablesPresent && health.IntegrityCheck {
		return "ok"
	}
	return "FAIL"
}

func healthDetail(health catalog.DatabaseHealth) string {
	if !health.DatabaseExists {
		return fmt.Sprintf("%s (will be created on first ingest)", health.DBPath)
	}
	if health.Error != "" {
		return health.Error
	}
	return fmt.Sprintf("%s (%d pictures)", health.DBPath, health.TotalPictures)
}
