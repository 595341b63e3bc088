package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"cutsync/internal/config"
	"cutsync/internal/edl"
	"cutsync/internal/notifications"
	"cutsync/internal/reconcile"
	"cutsync/internal/store"
)

func newImportCommand(ctx *commandContext) *cobra.Command {
	var sequence string
	var fps float64
	var cutCode string
	var description string
	var updateShots bool
	var links []string

	cmd := &cobra.Command{
		Use:   "import <edl-file>",
		Short: "Import an edit list as a new cut revision",
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

				logger := ctx.ensureLogger()
				result, err := reconcile.Build(cmd.Context(), logger, st, cfg, sequence, list)
				if err != nil {
					return err
				}

				notifier := notifications.NewService(cfg)
				title := deriveTitle(list, args[0])
				if err := notifier.NotifyImportStarted(cmd.Context(), title, len(list.Events)); err != nil {
					logger.Warn("import started notification failed", "error", err)
				}

				newCut, err := reconcile.Import(cmd.Context(), logger, st, notifier, result, reconcile.ImportOptions{
					CutCode:     cutCode,
					Description: description,
					UpdateShots: updateShots,
					Links:       links,
				})
				if err != nil {
					if errors.Is(err, reconcile.ErrImportLocked) {
						return err
					}
					if notifyErr := notifier.NotifyError(cmd.Context(), err, "cut import"); notifyErr != nil {
						logger.Warn("error notification failed", "error", notifyErr)
					}
					return err
				}

				out := cmd.OutOrStdout()
				fmt.Fprintf(out, "Imported %s as %s (revision %d, %d events)\n",
					title, newCut.Code, newCut.Revision, len(list.Events))
				fmt.Fprintln(out, renderDifferenceCounts(result))
				return nil
			})
		},
	}

	cmd.Flags().StringVarP(&sequence, "sequence", "s", "", "Sequence the edit list belongs to")
	cmd.Flags().Float64Var(&fps, "fps", 0, "Frame rate of the edit list (config default when omitted)")
	cmd.Flags().StringVar(&cutCode, "cut-code", "", "Code for the new cut revision (derived when omitted)")
	cmd.Flags().StringVarP(&description, "description", "d", "", "Description stored on the cut record")
	cmd.Flags().BoolVar(&updateShots, "update-shots", false, "Write statuses and frame ranges back to shot records")
	cmd.Flags().StringArrayVar(&links, "link", nil, "URL appended to the change report (repeatable)")
	_ = cmd.MarkFlagRequired("sequence")
	return cmd
}
