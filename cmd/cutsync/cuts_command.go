package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"cutsync/internal/config"
	"cutsync/internal/store"
)

func newCutsCommand(ctx *commandContext) *cobra.Command {
	var sequence string
	var showItems bool

	cmd := &cobra.Command{
		Use:   "cuts",
		Short: "Show the latest cut revision of a sequence",
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withStore(func(cfg *config.Config, st *store.Store) error {
				latest, err := st.LatestCut(cmd.Context(), sequence)
				if err != nil {
					return err
				}
				out := cmd.OutOrStdout()
				if latest == nil {
					fmt.Fprintf(out, "No cuts imported for sequence %s\n", sequence)
					return nil
				}

				fmt.Fprintf(out, "%s (revision %d, %.6g fps)\n", latest.Code, latest.Revision, latest.FPS)
				if latest.TimecodeStart != nil && latest.TimecodeEnd != nil {
					fmt.Fprintf(out, "Range: %s - %s\n", *latest.TimecodeStart, *latest.TimecodeEnd)
				}
				if latest.Duration != nil {
					fmt.Fprintf(out, "Duration: %d frames\n", *latest.Duration)
				}
				if latest.Description != "" {
					fmt.Fprintf(out, "Description: %s\n", latest.Description)
				}
				if !showItems {
					return nil
				}

				items, err := st.CutItems(cmd.Context(), latest.ID)
				if err != nil {
					return err
				}
				headers := []string{"Order", "Code", "TC In", "TC Out", "Cut In", "Cut Out", "Version"}
				aligns := []columnAlignment{alignRight, alignLeft, alignLeft, alignLeft, alignRight, alignRight, alignLeft}
				rows := make([][]string, 0, len(items))
				for _, item := range items {
					version := "-"
					if item.Version != nil {
						version = item.Version.Code
					}
					rows = append(rows, []string{
						formatFrame(item.CutOrder),
						item.Code,
						item.TimecodeIn,
						item.TimecodeOut,
						formatFrame(item.CutItemIn),
						formatFrame(item.CutItemOut),
						version,
					})
				}
				fmt.Fprintln(out, renderTable(headers, rows, aligns))
				fmt.Fprintln(out, strconv.Itoa(len(items))+" cut items")
				return nil
			})
		},
	}

	cmd.Flags().StringVarP(&sequence, "sequence", "s", "", "Sequence to inspect")
	cmd.Flags().BoolVar(&showItems, "items", false, "Include the per-event cut items")
	_ = cmd.MarkFlagRequired("sequence")
	return cmd
}
