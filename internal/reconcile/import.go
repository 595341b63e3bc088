package reconcile

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/gofrs/flock"
	"github.com/google/uuid"

	"cutsync/internal/cut"
	"cutsync/internal/notifications"
	"cutsync/internal/store"
)

// ErrImportLocked indicates another import holds the database lock.
var ErrImportLocked = errors.New("another cut import is already running")

// ImportOptions controls how a reconciled pass is persisted.
type ImportOptions struct {
	// CutCode names the new cut revision; derived from the sequence and
	// revision number when empty.
	CutCode     string
	Description string

	// UpdateShots writes statuses and frame ranges back to shot records.
	// Without it only missing shots are created.
	UpdateShots bool

	// Links are URLs appended to the change report.
	Links []string
}

// Import persists one reconciled pass as a new cut revision: it creates the
// cut record, creates or updates shots from the per-group aggregates,
// writes one cut item per edit event, and sends the change report.
func Import(ctx context.Context, logger *slog.Logger, st *store.Store, notifier notifications.Service, result *Result, opts ImportOptions) (*store.Cut, error) {
	lock := flock.New(st.Path() + ".lock")
	ok, err := lock.TryLock()
	if err != nil {
		return nil, fmt.Errorf("acquire import lock: %w", err)
	}
	if !ok {
		return nil, ErrImportLocked
	}
	defer func() { _ = lock.Unlock() }()

	passID := uuid.NewString()
	logger = logger.With(slog.String("pass_id", passID), slog.String("sequence", result.Sequence))

	revision, err := st.CountCuts(ctx, result.Sequence)
	if err != nil {
		return nil, err
	}
	revision++

	code := strings.TrimSpace(opts.CutCode)
	if code == "" {
		code = fmt.Sprintf("%s_CUT_%03d", result.Sequence, revision)
	}
	title := result.List.Title
	if title == "" {
		title = code
	}

	// Render the report before the write-back: linking freshly created
	// shots re-classifies NEW entries.
	subject, body := result.Summary.Report(title, opts.Links)

	cutRecord := &store.Cut{
		Code:        code,
		Sequence:    result.Sequence,
		Status:      "imported",
		Description: opts.Description,
		FPS:         result.List.FPS,
		Revision:    revision,
	}
	if result.TimecodeStart != "" {
		cutRecord.TimecodeStart = &result.TimecodeStart
		cutRecord.TimecodeEnd = &result.TimecodeEnd
		cutRecord.Duration = store.Intp(result.Duration)
	}
	created, err := st.CreateCut(ctx, cutRecord)
	if err != nil {
		return nil, err
	}

	if err := writeBackShots(ctx, st, result.Summary, result.Sequence, opts.UpdateShots); err != nil {
		return nil, err
	}
	if err := writeCutItems(ctx, st, result, created.ID); err != nil {
		return nil, err
	}

	logger.Info("cut imported",
		slog.String("cut", created.Code),
		slog.Int("revision", created.Revision),
		slog.Int("total", result.Summary.TotalCount()))

	if err := notifier.NotifyCutImported(ctx, subject, body); err != nil {
		logger.Warn("change notification failed", slog.Any("error", err))
	}
	return created, nil
}

// writeBackShots creates missing shots and, when enabled, pushes statuses
// and aggregate frame ranges onto existing ones. Created records are linked
// back into the summary so cut items pick up their ids.
func writeBackShots(ctx context.Context, st *store.Store, summary *cut.Summary, sequence string, updateShots bool) error {
	settings := summary.Settings()
	var requests []store.ShotRequest
	var touched []*cut.Group
	for _, group := range summary.Groups() {
		entries := group.Entries()
		if len(entries) == 0 || entries[0].Name() == "" {
			continue
		}
		values := group.AggregateShotValues()

		var shot *store.Shot
		for _, entry := range entries {
			if entry.Shot() != nil {
				shot = entry.Shot()
				break
			}
		}
		if shot == nil {
			created := &store.Shot{
				Code:     entries[0].Name(),
				Sequence: sequence,
				CutOrder: values.CutOrder,
			}
			applyFrameValues(created, values, settings.UseSmartFields)
			requests = append(requests, store.ShotRequest{Shot: created})
			touched = append(touched, group)
			continue
		}
		if !updateShots {
			continue
		}
		switch values.Classification {
		case cut.ClassificationOmitted:
			shot.Status = settings.OmitStatus
		case cut.ClassificationReinstated:
			shot.Status = settings.ReinstateStatus
			shot.CutOrder = values.CutOrder
			applyFrameValues(shot, values, settings.UseSmartFields)
		case cut.ClassificationNoLink, cut.ClassificationNew:
			// Cannot happen with a linked shot.
		default:
			shot.CutOrder = values.CutOrder
			applyFrameValues(shot, values, settings.UseSmartFields)
		}
		requests = append(requests, store.ShotRequest{Shot: shot})
		touched = append(touched, group)
	}

	results, err := st.BatchShots(ctx, requests)
	if err != nil {
		return err
	}
	for i, group := range touched {
		for _, entry := range group.Entries() {
			entry.LinkShot(results[i])
		}
	}
	return nil
}

func applyFrameValues(shot *store.Shot, values cut.ShotValues, smart bool) {
	if smart {
		shot.SmartHeadIn = values.HeadIn
		shot.SmartCutIn = values.CutIn
		shot.SmartCutOut = values.CutOut
		shot.SmartTailOut = values.TailOut
		return
	}
	shot.HeadIn = values.HeadIn
	shot.CutIn = values.CutIn
	shot.CutOut = values.CutOut
	shot.TailOut = values.TailOut
}

// writeCutItems persists one item per edit event, with edit-in/out frames
// relative to the list's record start.
func writeCutItems(ctx context.Context, st *store.Store, result *Result, cutID int64) error {
	var items []*store.CutItem
	for _, entry := range result.Summary.Entries() {
		event := entry.Edit()
		if event == nil {
			continue
		}
		item := &store.CutItem{
			CutID:           cutID,
			Code:            event.ReelName,
			CutOrder:        store.Intp(event.Order),
			TimecodeIn:      event.SourceIn.String(),
			TimecodeOut:     event.SourceOut.String(),
			TimecodeEditIn:  event.RecordIn.String(),
			TimecodeEditOut: event.RecordOut.String(),
			CutItemIn:       entry.NewCutIn(),
			CutItemOut:      entry.NewCutOut(),
			EditIn:          store.Intp(event.RecordIn.Frame() - result.EditOffset + 1),
			EditOut:         store.Intp(event.RecordOut.Frame() - result.EditOffset),
			Duration:        entry.NewDuration(),
		}
		if entry.Shot() != nil {
			item.ShotID = store.Int64p(entry.Shot().ID)
		}
		if entry.Version() != nil {
			item.VersionID = store.Int64p(entry.Version().ID)
		}
		items = append(items, item)
	}
	return st.BatchCreateCutItems(ctx, items)
}
