package store

import (
	"context"
	"fmt"
	"time"
)

// ShotRequest is one entry in a shot batch: a create when the shot has no id
// yet, an update otherwise.
type ShotRequest struct {
	Shot *Shot
}

// BatchShots applies creates and updates in a single transaction and returns
// the resulting records in request order, re-read from the database so callers
// see assigned ids and timestamps.
func (s *Store) BatchShots(ctx context.Context, requests []ShotRequest) ([]*Shot, error) {
	if len(requests) == 0 {
		return nil, nil
	}
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin shot batch: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	now := time.Now().UTC().Format(time.RFC3339Nano)
	ids := make([]int64, 0, len(requests))
	for _, req := range requests {
		shot := req.Shot
		if shot == nil {
			return nil, fmt.Errorf("shot batch: nil shot in request")
		}
		if shot.ID == 0 {
			res, err := tx.ExecContext(ctx,
				`INSERT INTO shots (code, sequence, status, cut_order, head_in, tail_out, cut_in, cut_out,
					smart_head_in, smart_tail_out, smart_cut_in, smart_cut_out, created_at, updated_at)
				 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
				shot.Code, shot.Sequence, shot.Status, intValue(shot.CutOrder),
				intValue(shot.HeadIn), intValue(shot.TailOut), intValue(shot.CutIn), intValue(shot.CutOut),
				intValue(shot.SmartHeadIn), intValue(shot.SmartTailOut), intValue(shot.SmartCutIn), intValue(shot.SmartCutOut),
				now, now,
			)
			if err != nil {
				return nil, fmt.Errorf("batch insert shot %q: %w", shot.Code, err)
			}
			id, err := res.LastInsertId()
			if err != nil {
				return nil, fmt.Errorf("last insert id: %w", err)
			}
			ids = append(ids, id)
			continue
		}
		_, err := tx.ExecContext(ctx,
			`UPDATE shots SET code = ?, sequence = ?, status = ?, cut_order = ?,
				head_in = ?, tail_out = ?, cut_in = ?, cut_out = ?,
				smart_head_in = ?, smart_tail_out = ?, smart_cut_in = ?, smart_cut_out = ?,
				updated_at = ?
			 WHERE id = ?`,
			shot.Code, shot.Sequence, shot.Status, intValue(shot.CutOrder),
			intValue(shot.HeadIn), intValue(shot.TailOut), intValue(shot.CutIn), intValue(shot.CutOut),
			intValue(shot.SmartHeadIn), intValue(shot.SmartTailOut), intValue(shot.SmartCutIn), intValue(shot.SmartCutOut),
			now, shot.ID,
		)
		if err != nil {
			return nil, fmt.Errorf("batch update shot %d: %w", shot.ID, err)
		}
		ids = append(ids, shot.ID)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit shot batch: %w", err)
	}

	results := make([]*Shot, 0, len(ids))
	for _, id := range ids {
		shot, err := s.shotByID(ctx, id)
		if err != nil {
			return nil, err
		}
		results = append(results, shot)
	}
	return results, nil
}

// BatchCreateCutItems inserts all items in one transaction, assigning ids
// in place.
func (s *Store) BatchCreateCutItems(ctx context.Context, items []*CutItem) error {
	if len(items) == 0 {
		return nil
	}
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin cut item batch: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	for _, item := range items {
		if err := s.createCutItem(ctx, tx, item); err != nil {
			return err
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit cut item batch: %w", err)
	}
	return nil
}
