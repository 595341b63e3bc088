package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite"

	"cutsync/internal/config"
)

// Store manages production record persistence backed by SQLite.
type Store struct {
	db   *sql.DB
	path string
}

// Open initializes or connects to the record database and verifies the schema.
func Open(cfg *config.Config) (*Store, error) {
	dbPath, err := config.ExpandPath(cfg.Store.DBPath)
	if err != nil {
		return nil, err
	}
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, fmt.Errorf("ensure store directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA foreign_keys = ON",
		"PRAGMA busy_timeout = 5000",
	}
	for _, pragma := range pragmas {
		if _, execErr := db.Exec(pragma); execErr != nil {
			_ = db.Close()
			return nil, fmt.Errorf("apply pragma %q: %w", pragma, execErr)
		}
	}

	store := &Store{db: db, path: dbPath}
	if err := store.initSchema(context.Background()); err != nil {
		_ = db.Close()
		return nil, err
	}
	return store, nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Path returns the database file path.
func (s *Store) Path() string {
	return s.path
}

const shotColumns = `id, code, sequence, status, cut_order, head_in, tail_out, cut_in, cut_out,
	smart_head_in, smart_tail_out, smart_cut_in, smart_cut_out, created_at, updated_at`

// SequenceShots returns every shot linked to the given sequence, ordered by code.
func (s *Store) SequenceShots(ctx context.Context, sequence string) ([]*Shot, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+shotColumns+` FROM shots WHERE sequence = ? ORDER BY code`, sequence)
	if err != nil {
		return nil, fmt.Errorf("query sequence shots: %w", err)
	}
	defer rows.Close()
	return scanShots(rows)
}

// ShotsByCodes returns shots matching any of the given codes, case-insensitively.
func (s *Store) ShotsByCodes(ctx context.Context, codes []string) ([]*Shot, error) {
	if len(codes) == 0 {
		return nil, nil
	}
	query := `SELECT ` + shotColumns + ` FROM shots WHERE code COLLATE NOCASE IN (` +
		placeholders(len(codes)) + `) ORDER BY id`
	rows, err := s.db.QueryContext(ctx, query, stringArgs(codes)...)
	if err != nil {
		return nil, fmt.Errorf("query shots by codes: %w", err)
	}
	defer rows.Close()
	return scanShots(rows)
}

// ShotsByIDs returns shots matching the given ids.
func (s *Store) ShotsByIDs(ctx context.Context, ids []int64) ([]*Shot, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	query := `SELECT ` + shotColumns + ` FROM shots WHERE id IN (` + placeholders(len(ids)) + `) ORDER BY id`
	rows, err := s.db.QueryContext(ctx, query, int64Args(ids)...)
	if err != nil {
		return nil, fmt.Errorf("query shots by ids: %w", err)
	}
	defer rows.Close()
	return scanShots(rows)
}

// ShotByCode resolves a shot by name, preferring a match within the given
// sequence and falling back to a global lookup. Returns nil when no shot
// with that code exists.
func (s *Store) ShotByCode(ctx context.Context, code, sequence string) (*Shot, error) {
	if strings.TrimSpace(code) == "" {
		return nil, nil
	}
	if sequence != "" {
		shot, err := s.shotByCodeScoped(ctx, code, &sequence)
		if err != nil || shot != nil {
			return shot, err
		}
	}
	return s.shotByCodeScoped(ctx, code, nil)
}

func (s *Store) shotByCodeScoped(ctx context.Context, code string, sequence *string) (*Shot, error) {
	query := `SELECT ` + shotColumns + ` FROM shots WHERE code = ? COLLATE NOCASE`
	args := []any{code}
	if sequence != nil {
		query += ` AND sequence = ?`
		args = append(args, *sequence)
	}
	query += ` ORDER BY id LIMIT 1`
	row := s.db.QueryRowContext(ctx, query, args...)
	shot, err := scanShotRow(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("query shot by code: %w", err)
	}
	return shot, nil
}

// CreateShot inserts a shot and returns it with its assigned id.
func (s *Store) CreateShot(ctx context.Context, shot *Shot) (*Shot, error) {
	now := time.Now().UTC()
	res, err := s.db.ExecContext(ctx,
		`INSERT INTO shots (code, sequence, status, cut_order, head_in, tail_out, cut_in, cut_out,
			smart_head_in, smart_tail_out, smart_cut_in, smart_cut_out, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		shot.Code, shot.Sequence, shot.Status, intValue(shot.CutOrder),
		intValue(shot.HeadIn), intValue(shot.TailOut), intValue(shot.CutIn), intValue(shot.CutOut),
		intValue(shot.SmartHeadIn), intValue(shot.SmartTailOut), intValue(shot.SmartCutIn), intValue(shot.SmartCutOut),
		now.Format(time.RFC3339Nano), now.Format(time.RFC3339Nano),
	)
	if err != nil {
		return nil, fmt.Errorf("insert shot: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("last insert id: %w", err)
	}
	return s.shotByID(ctx, id)
}

func (s *Store) shotByID(ctx context.Context, id int64) (*Shot, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+shotColumns+` FROM shots WHERE id = ?`, id)
	shot, err := scanShotRow(row)
	if err != nil {
		return nil, fmt.Errorf("query shot %d: %w", id, err)
	}
	return shot, nil
}

// UpdateShot persists the mutable fields of an existing shot.
func (s *Store) UpdateShot(ctx context.Context, shot *Shot) error {
	if shot.ID == 0 {
		return errors.New("update shot: missing id")
	}
	_, err := s.db.ExecContext(ctx,
		`UPDATE shots SET code = ?, sequence = ?, status = ?, cut_order = ?,
			head_in = ?, tail_out = ?, cut_in = ?, cut_out = ?,
			smart_head_in = ?, smart_tail_out = ?, smart_cut_in = ?, smart_cut_out = ?,
			updated_at = ?
		 WHERE id = ?`,
		shot.Code, shot.Sequence, shot.Status, intValue(shot.CutOrder),
		intValue(shot.HeadIn), intValue(shot.TailOut), intValue(shot.CutIn), intValue(shot.CutOut),
		intValue(shot.SmartHeadIn), intValue(shot.SmartTailOut), intValue(shot.SmartCutIn), intValue(shot.SmartCutOut),
		time.Now().UTC().Format(time.RFC3339Nano), shot.ID,
	)
	if err != nil {
		return fmt.Errorf("update shot %d: %w", shot.ID, err)
	}
	return nil
}

const cutColumns = `id, code, sequence, status, description, fps, timecode_start, timecode_end,
	duration, revision, created_at, updated_at`

// LatestCut returns the most recent cut for a sequence, or nil when the
// sequence has never been imported.
func (s *Store) LatestCut(ctx context.Context, sequence string) (*Cut, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+cutColumns+` FROM cuts WHERE sequence = ? ORDER BY id DESC LIMIT 1`, sequence)
	cut, err := scanCutRow(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("query latest cut: %w", err)
	}
	return cut, nil
}

// CutByCode returns the named cut within a sequence, or nil when absent.
func (s *Store) CutByCode(ctx context.Context, sequence, code string) (*Cut, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+cutColumns+` FROM cuts WHERE sequence = ? AND code = ? ORDER BY id DESC LIMIT 1`,
		sequence, code)
	cut, err := scanCutRow(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("query cut by code: %w", err)
	}
	return cut, nil
}

// CountCuts returns how many cut revisions exist for a sequence.
func (s *Store) CountCuts(ctx context.Context, sequence string) (int, error) {
	var count int
	err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(1) FROM cuts WHERE sequence = ?`, sequence).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count cuts: %w", err)
	}
	return count, nil
}

// CreateCut inserts a cut and returns it with its assigned id.
func (s *Store) CreateCut(ctx context.Context, cut *Cut) (*Cut, error) {
	now := time.Now().UTC()
	res, err := s.db.ExecContext(ctx,
		`INSERT INTO cuts (code, sequence, status, description, fps, timecode_start, timecode_end,
			duration, revision, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		cut.Code, cut.Sequence, cut.Status, cut.Description, cut.FPS,
		stringValue(cut.TimecodeStart), stringValue(cut.TimecodeEnd),
		intValue(cut.Duration), cut.Revision,
		now.Format(time.RFC3339Nano), now.Format(time.RFC3339Nano),
	)
	if err != nil {
		return nil, fmt.Errorf("insert cut: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("last insert id: %w", err)
	}
	row := s.db.QueryRowContext(ctx, `SELECT `+cutColumns+` FROM cuts WHERE id = ?`, id)
	created, err := scanCutRow(row)
	if err != nil {
		return nil, fmt.Errorf("query cut %d: %w", id, err)
	}
	return created, nil
}

// CutItems returns the items of a cut with their linked versions populated,
// in cut order.
func (s *Store) CutItems(ctx context.Context, cutID int64) ([]*CutItem, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT ci.id, ci.cut_id, ci.code, ci.cut_order,
			ci.timecode_cut_item_in, ci.timecode_cut_item_out,
			ci.timecode_edit_in, ci.timecode_edit_out,
			ci.cut_item_in, ci.cut_item_out, ci.edit_in, ci.edit_out, ci.cut_item_duration,
			c.fps, ci.shot_id, ci.version_id,
			v.code, v.shot_id, vs.code,
			ci.created_at, ci.updated_at
		 FROM cut_items ci
		 JOIN cuts c ON c.id = ci.cut_id
		 LEFT JOIN versions v ON v.id = ci.version_id
		 LEFT JOIN shots vs ON vs.id = v.shot_id
		 WHERE ci.cut_id = ?
		 ORDER BY ci.cut_order, ci.id`, cutID)
	if err != nil {
		return nil, fmt.Errorf("query cut items: %w", err)
	}
	defer rows.Close()

	var items []*CutItem
	for rows.Next() {
		var (
			item                        CutItem
			cutOrder                    sql.NullInt64
			cutItemIn, cutItemOut       sql.NullInt64
			editIn, editOut, duration   sql.NullInt64
			shotID, versionID           sql.NullInt64
			versionCode                 sql.NullString
			versionShotID               sql.NullInt64
			versionShotCode             sql.NullString
			createdAtText, updatedAtText string
		)
		if err := rows.Scan(
			&item.ID, &item.CutID, &item.Code, &cutOrder,
			&item.TimecodeIn, &item.TimecodeOut,
			&item.TimecodeEditIn, &item.TimecodeEditOut,
			&cutItemIn, &cutItemOut, &editIn, &editOut, &duration,
			&item.FPS, &shotID, &versionID,
			&versionCode, &versionShotID, &versionShotCode,
			&createdAtText, &updatedAtText,
		); err != nil {
			return nil, fmt.Errorf("scan cut item: %w", err)
		}
		item.CutOrder = nullableInt(cutOrder)
		item.CutItemIn = nullableInt(cutItemIn)
		item.CutItemOut = nullableInt(cutItemOut)
		item.EditIn = nullableInt(editIn)
		item.EditOut = nullableInt(editOut)
		item.Duration = nullableInt(duration)
		item.ShotID = nullableInt64(shotID)
		item.VersionID = nullableInt64(versionID)
		if item.VersionID != nil && versionCode.Valid {
			item.Version = &Version{
				ID:       *item.VersionID,
				Code:     versionCode.String,
				ShotID:   nullableInt64(versionShotID),
				ShotCode: versionShotCode.String,
			}
		}
		item.CreatedAt = parseTime(createdAtText)
		item.UpdatedAt = parseTime(updatedAtText)
		items = append(items, &item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate cut items: %w", err)
	}
	return items, nil
}

// CreateCutItem inserts one cut item.
func (s *Store) CreateCutItem(ctx context.Context, item *CutItem) error {
	return s.createCutItem(ctx, s.db, item)
}

type execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

func (s *Store) createCutItem(ctx context.Context, db execer, item *CutItem) error {
	now := time.Now().UTC().Format(time.RFC3339Nano)
	res, err := db.ExecContext(ctx,
		`INSERT INTO cut_items (cut_id, code, cut_order,
			timecode_cut_item_in, timecode_cut_item_out, timecode_edit_in, timecode_edit_out,
			cut_item_in, cut_item_out, edit_in, edit_out, cut_item_duration,
			shot_id, version_id, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		item.CutID, item.Code, intValue(item.CutOrder),
		item.TimecodeIn, item.TimecodeOut, item.TimecodeEditIn, item.TimecodeEditOut,
		intValue(item.CutItemIn), intValue(item.CutItemOut),
		intValue(item.EditIn), intValue(item.EditOut), intValue(item.Duration),
		int64Value(item.ShotID), int64Value(item.VersionID), now, now,
	)
	if err != nil {
		return fmt.Errorf("insert cut item: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("last insert id: %w", err)
	}
	item.ID = id
	return nil
}

// VersionsByCodes returns versions matching any of the given codes,
// case-insensitively, with their linked shot codes populated.
func (s *Store) VersionsByCodes(ctx context.Context, codes []string) ([]*Version, error) {
	if len(codes) == 0 {
		return nil, nil
	}
	query := `SELECT v.id, v.code, v.shot_id, s.code, v.created_at, v.updated_at
		FROM versions v
		LEFT JOIN shots s ON s.id = v.shot_id
		WHERE v.code COLLATE NOCASE IN (` + placeholders(len(codes)) + `)
		ORDER BY v.id`
	rows, err := s.db.QueryContext(ctx, query, stringArgs(codes)...)
	if err != nil {
		return nil, fmt.Errorf("query versions by codes: %w", err)
	}
	defer rows.Close()

	var versions []*Version
	for rows.Next() {
		var (
			v             Version
			shotID        sql.NullInt64
			shotCode      sql.NullString
			created, updated string
		)
		if err := rows.Scan(&v.ID, &v.Code, &shotID, &shotCode, &created, &updated); err != nil {
			return nil, fmt.Errorf("scan version: %w", err)
		}
		v.ShotID = nullableInt64(shotID)
		v.ShotCode = shotCode.String
		v.CreatedAt = parseTime(created)
		v.UpdatedAt = parseTime(updated)
		versions = append(versions, &v)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate versions: %w", err)
	}
	return versions, nil
}

// CreateVersion inserts a version record.
func (s *Store) CreateVersion(ctx context.Context, v *Version) (*Version, error) {
	now := time.Now().UTC().Format(time.RFC3339Nano)
	res, err := s.db.ExecContext(ctx,
		`INSERT INTO versions (code, shot_id, created_at, updated_at) VALUES (?, ?, ?, ?)`,
		v.Code, int64Value(v.ShotID), now, now)
	if err != nil {
		return nil, fmt.Errorf("insert version: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("last insert id: %w", err)
	}
	created := *v
	created.ID = id
	return &created, nil
}
