package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/runpro/runpro/internal/app"
	"github.com/runpro/runpro/internal/model"
	"github.com/runpro/runpro/internal/runfmt"
)

func PlanCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "plan",
		Short: "Training plans",
	}

	cmd.AddCommand(planImportCmd())
	return cmd
}

func planImportCmd() *cobra.Command {
	var start string

	cmd := &cobra.Command{
		Use:   "import <file.json>",
		Short: "Add goals from a JSON plan, skipping dates that already have one",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !runfmt.ValidDate(start) {
				return fmt.Errorf("--start must be a YYYY-MM-DD date, got %q", start)
			}

			items, err := readPlan(args[0])
			if err != nil {
				return err
			}

			return withApp(cmd.Context(), func(a *app.App) error {
				res, err := a.TrainingService.ApplyPlan(cmd.Context(), start, items)
				if err != nil {
					return err
				}

				out := cmd.OutOrStdout()
				for _, g := range res.Created {
					fmt.Fprintf(out, "created %s %s %.1fkm @ %s\n", g.Date, g.Type, g.TargetDist, g.TargetPace)
				}
				for _, date := range res.Skipped {
					fmt.Fprintf(out, "skipped %s (goal exists)\n", date)
				}
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&start, "start", "", "plan start date (YYYY-MM-DD)")
	_ = cmd.MarkFlagRequired("start")
	return cmd
}

// readPlan accepts either a bare item array or {"items": [...]}, the shape
// returned by the coach plan endpoint.
func readPlan(path string) ([]model.TrainingPlanItem, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var items []model.TrainingPlanItem
	if err := json.Unmarshal(data, &items); err == nil {
		return items, nil
	}

	var wrapped struct {
		Items []model.TrainingPlanItem `json:"items"`
	}
	if err := json.Unmarshal(data, &wrapped); err != nil {
		return nil, fmt.Errorf("failed to parse plan %s: %w", path, err)
	}
	return wrapped.Items, nil
}
