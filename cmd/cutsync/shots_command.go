package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"cutsync/internal/config"
	"cutsync/internal/store"
)

func newShotsCommand(ctx *commandContext) *cobra.Command {
	var sequence string

	cmd := &cobra.Command{
		Use:   "shots",
		Short: "List shots in a sequence",
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withStore(func(cfg *config.Config, st *store.Store) error {
				shots, err := st.SequenceShots(cmd.Context(), sequence)
				if err != nil {
					return err
				}
				out := cmd.OutOrStdout()
				if len(shots) == 0 {
					fmt.Fprintf(out, "No shots recorded for sequence %s\n", sequence)
					return nil
				}

				smart := cfg.Editorial.UseSmartFields
				headers := []string{"Order", "Shot", "Status", "Head In", "Cut In", "Cut Out", "Tail Out"}
				aligns := []columnAlignment{alignRight, alignLeft, alignLeft, alignRight, alignRight, alignRight, alignRight}
				rows := make([][]string, 0, len(shots))
				for _, shot := range shots {
					rows = append(rows, []string{
						formatFrame(shot.CutOrder),
						shot.Code,
						shot.Status,
						formatFrame(shot.HeadInField(smart)),
						formatFrame(shot.CutInField(smart)),
						formatFrame(shot.CutOutField(smart)),
						formatFrame(shot.TailOutField(smart)),
					})
				}
				fmt.Fprintln(out, renderTable(headers, rows, aligns))
				fmt.Fprintf(out, "%d shots\n", len(shots))
				return nil
			})
		},
	}

	cmd.Flags().StringVarP(&sequence, "sequence", "s", "", "Sequence to list")
	_ = cmd.MarkFlagRequired("sequence")
	return cmd
}
