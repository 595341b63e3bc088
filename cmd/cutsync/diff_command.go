package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"cutsync/internal/config"
	"cutsync/internal/edl"
	"cutsync/internal/reconcile"
	"cutsync/internal/store"
)

func newDiffCommand(ctx *commandContext) *cobra.Command {
	var sequence string
	var fps float64

	cmd := &cobra.Command{
		Use:   "diff <edl-file>",
		Short: "Reconcile an edit list against a sequence without importing",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withStore(func(cfg *config.Config, st *store.Store) error {
				rate := fps
				if rate == 0 {
					rate = cfg.Editorial.FrameRate
				}
				list, err := edl.ParseFile(args[0], rate)
				if err != nil {
					return fmt.Errorf("parse edit list: %w", err)
				}

				result, err := reconcile.Build(cmd.Context(), ctx.ensureLogger(), st, cfg, sequence, list)
				if err != nil {
					return err
				}

				out := cmd.OutOrStdout()
				colorize := shouldColorize(out)
				fmt.Fprintln(out, renderDifferenceTable(result, colorize))
				fmt.Fprintln(out, renderDifferenceCounts(result))
				return nil
			})
		},
	}

	cmd.Flags().StringVarP(&sequence, "sequence", "s", "", "Sequence the edit list belongs to")
	cmd.Flags().Float64Var(&fps, "fps", 0, "Frame rate of the edit list (config default when omitted)")
	_ = cmd.MarkFlagRequired("sequence")
	return cmd
}

func renderDifferenceTable(result *reconcile.Result, colorize bool) string {
	headers := []string{"Order", "Shot", "Classification", "Cut In", "Cut Out", "New Cut In", "New Cut Out", "Reasons"}
	aligns := []columnAlignment{alignRight, alignLeft, alignLeft, alignRight, alignRight, alignRight, alignRight, alignLeft}

	rows := make([][]string, 0, len(result.Summary.Entries()))
	for _, entry := range result.Summary.Entries() {
		order := "-"
		if entry.Edit() != nil {
			order = strconv.Itoa(entry.Edit().Order)
		}
		classification := displayClassification(entry.Classification())
		if colorize {
			if color := classificationColor(entry.Classification()); color != "" {
				classification = color + classification + ansiReset
			}
		}
		rows = append(rows, []string{
			order,
			entry.Name(),
			classification,
			formatFrame(entry.CutIn()),
			formatFrame(entry.CutOut()),
			formatFrame(entry.NewCutIn()),
			formatFrame(entry.NewCutOut()),
			strings.Join(entry.Reasons(), ", "),
		})
	}
	return renderTable(headers, rows, aligns)
}

func renderDifferenceCounts(result *reconcile.Result) string {
	summary := result.Summary
	parts := []string{
		fmt.Sprintf("%d shots in cut", summary.TotalCount()),
		fmt.Sprintf("%d rescans", summary.RescansCount()),
		fmt.Sprintf("%d repeated", summary.RepeatedCount()),
	}
	return strings.Join(parts, ", ")
}
