package reconcile

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"cutsync/internal/config"
	"cutsync/internal/cut"
	"cutsync/internal/edl"
	"cutsync/internal/store"
)

// Result carries one reconciled pass: the summary plus the cut-level frame
// extents the import step persists.
type Result struct {
	Summary  *cut.Summary
	List     *edl.List
	Sequence string

	// PriorCut is the cut the list was diffed against, nil on first import.
	PriorCut *store.Cut

	TimecodeStart string
	TimecodeEnd   string
	Duration      int

	// EditOffset is the first event's record-in frame; per-item edit-in
	// and edit-out values are stored relative to it.
	EditOffset int
}

type shotResolver struct {
	ctx      context.Context
	store    *store.Store
	sequence string
}

func (r *shotResolver) ResolveShot(code string) (*store.Shot, error) {
	return r.store.ShotByCode(r.ctx, code, r.sequence)
}

// Build reconciles a parsed edit list against the sequence's stored state.
// The returned summary holds one difference per edit event, plus entries
// for every shot and prior cut item the list no longer references.
func Build(ctx context.Context, logger *slog.Logger, st *store.Store, cfg *config.Config, sequence string, list *edl.List) (*Result, error) {
	settings, err := cut.SettingsFromConfig(cfg)
	if err != nil {
		return nil, err
	}
	if err := resolveVersions(ctx, st, list); err != nil {
		return nil, err
	}

	priorCut, err := st.LatestCut(ctx, sequence)
	if err != nil {
		return nil, err
	}
	var items []*store.CutItem
	if priorCut != nil {
		items, err = st.CutItems(ctx, priorCut.ID)
		if err != nil {
			return nil, err
		}
	}
	pool := cut.NewCandidatePool(items, list.FPS)

	shots, err := relevantShots(ctx, st, list, items)
	if err != nil {
		return nil, err
	}
	leftoverShots := make(map[string]*store.Shot, len(shots))
	order := make([]string, 0, len(shots))
	for _, shot := range shots {
		key := strings.ToLower(shot.Code)
		if _, ok := leftoverShots[key]; !ok {
			leftoverShots[key] = shot
			order = append(order, key)
		}
	}

	summary := cut.NewSummary(settings, &shotResolver{ctx: ctx, store: st, sequence: sequence})
	for _, event := range list.Events {
		if event.ShotName == "" {
			if _, err := summary.Add("", nil, event, nil); err != nil {
				return nil, err
			}
			continue
		}
		var shot *store.Shot
		if group := summary.Group(event.ShotName); group != nil {
			shot = group.Entries()[0].Shot()
		} else {
			key := strings.ToLower(event.ShotName)
			shot = leftoverShots[key]
			delete(leftoverShots, key)
		}
		item, err := pool.BestMatch(shot, event.Version, event)
		if err != nil {
			return nil, err
		}
		if _, err := summary.Add(event.ShotName, shot, event, item); err != nil {
			return nil, err
		}
	}

	// Prior cut items no event claimed: their shots left the cut.
	for _, item := range pool.Remaining() {
		if item.ShotID == nil {
			continue
		}
		shot, name, err := shotForItem(ctx, st, leftoverShots, item)
		if err != nil {
			return nil, err
		}
		if _, err := summary.Add(name, shot, nil, item); err != nil {
			return nil, err
		}
	}

	// Shots with no event and no cut item. Already-omitted statuses stay
	// silent instead of being re-reported on every import.
	for _, key := range order {
		shot, ok := leftoverShots[key]
		if !ok {
			continue
		}
		if _, omitted := cfg.ReinstateStatusSet()[shot.Status]; omitted {
			continue
		}
		if _, err := summary.Add(shot.Code, shot, nil, nil); err != nil {
			return nil, err
		}
	}

	result := &Result{
		Summary:  summary,
		List:     list,
		Sequence: sequence,
		PriorCut: priorCut,
	}
	if len(list.Events) > 0 {
		first, last := list.Events[0], list.Events[len(list.Events)-1]
		result.TimecodeStart = first.RecordIn.String()
		result.TimecodeEnd = last.RecordOut.String()
		result.Duration = last.RecordOut.Frame() - first.RecordIn.Frame()
		result.EditOffset = first.RecordIn.Frame()
	}

	logger.Info("reconciliation pass built",
		slog.String("sequence", sequence),
		slog.Int("events", len(list.Events)),
		slog.Int("total", summary.TotalCount()),
		slog.Int("rescans", summary.RescansCount()))
	return result, nil
}

// resolveVersions links events to stored versions by clip name and fills
// missing shot names from the version's shot.
func resolveVersions(ctx context.Context, st *store.Store, list *edl.List) error {
	codes := make([]string, 0, len(list.Events))
	seen := make(map[string]struct{}, len(list.Events))
	for _, event := range list.Events {
		name := strings.ToLower(event.VersionName())
		if name == "" {
			continue
		}
		if _, ok := seen[name]; ok {
			continue
		}
		seen[name] = struct{}{}
		codes = append(codes, name)
	}
	versions, err := st.VersionsByCodes(ctx, codes)
	if err != nil {
		return err
	}
	byCode := make(map[string]*store.Version, len(versions))
	for _, version := range versions {
		byCode[strings.ToLower(version.Code)] = version
	}
	for _, event := range list.Events {
		version, ok := byCode[strings.ToLower(event.VersionName())]
		if !ok {
			continue
		}
		event.Version = version
		if event.ShotName == "" && version.ShotCode != "" {
			event.ShotName = version.ShotCode
		}
	}
	return nil
}

// relevantShots fetches the shots the pass can touch: those named by edit
// events and those linked from the prior cut's items.
func relevantShots(ctx context.Context, st *store.Store, list *edl.List, items []*store.CutItem) ([]*store.Shot, error) {
	var codes []string
	seen := make(map[string]struct{})
	for _, event := range list.Events {
		name := strings.ToLower(event.ShotName)
		if name == "" {
			continue
		}
		if _, ok := seen[name]; ok {
			continue
		}
		seen[name] = struct{}{}
		codes = append(codes, event.ShotName)
	}
	shots, err := st.ShotsByCodes(ctx, codes)
	if err != nil {
		return nil, err
	}

	have := make(map[int64]struct{}, len(shots))
	for _, shot := range shots {
		have[shot.ID] = struct{}{}
	}
	var missing []int64
	for _, item := range items {
		if item.ShotID == nil {
			continue
		}
		if _, ok := have[*item.ShotID]; ok {
			continue
		}
		have[*item.ShotID] = struct{}{}
		missing = append(missing, *item.ShotID)
	}
	linked, err := st.ShotsByIDs(ctx, missing)
	if err != nil {
		return nil, err
	}
	return append(shots, linked...), nil
}

func shotForItem(ctx context.Context, st *store.Store, leftovers map[string]*store.Shot, item *store.CutItem) (*store.Shot, string, error) {
	for key, shot := range leftovers {
		if shot.ID == *item.ShotID {
			delete(leftovers, key)
			return shot, shot.Code, nil
		}
	}
	shots, err := st.ShotsByIDs(ctx, []int64{*item.ShotID})
	if err != nil {
		return nil, "", err
	}
	if len(shots) == 0 {
		return nil, "", fmt.Errorf("cut item %s links missing shot %d", item.Code, *item.ShotID)
	}
	return shots[0], shots[0].Code, nil
}
