package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"cutsync/internal/config"
	"cutsync/internal/edl"
	"cutsync/internal/reconcile"
	"cutsync/internal/store"
)

func newReportCommand(ctx *commandContext) *cobra.Command {
	var sequence string
	var fps float64
	var links []string

	cmd := &cobra.Command{
		Use:   "report <edl-file>",
		Short: "Print the change report for an edit list without importing",
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

				subject, body := result.Summary.Report(deriveTitle(list, args[0]), links)
				out := cmd.OutOrStdout()
				fmt.Fprintln(out, subject)
				fmt.Fprintln(out)
				fmt.Fprintln(out, body)
				return nil
			})
		},
	}

	cmd.Flags().StringVarP(&sequence, "sequence", "s", "", "Sequence the edit list belongs to")
	cmd.Flags().Float64Var(&fps, "fps", 0, "Frame rate of the edit list (config default when omitted)")
	cmd.Flags().StringArrayVar(&links, "link", nil, "URL included in the report (repeatable)")
	_ = cmd.MarkFlagRequired("sequence")
	return cmd
}
