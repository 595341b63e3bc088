package store

import (
	"database/sql"
	"strings"
	"time"
)

type rowScanner interface {
	Scan(dest ...any) error
}

func scanShotRow(row rowScanner) (*Shot, error) {
	var (
		shot                       Shot
		cutOrder, headIn, tailOut  sql.NullInt64
		cutIn, cutOut              sql.NullInt64
		smartHeadIn, smartTailOut  sql.NullInt64
		smartCutIn, smartCutOut    sql.NullInt64
		createdAt, updatedAt       string
	)
	err := row.Scan(
		&shot.ID, &shot.Code, &shot.Sequence, &shot.Status, &cutOrder,
		&headIn, &tailOut, &cutIn, &cutOut,
		&smartHeadIn, &smartTailOut, &smartCutIn, &smartCutOut,
		&createdAt, &updatedAt,
	)
	if err != nil {
		return nil, err
	}
	shot.CutOrder = nullableInt(cutOrder)
	shot.HeadIn = nullableInt(headIn)
	shot.TailOut = nullableInt(tailOut)
	shot.CutIn = nullableInt(cutIn)
	shot.CutOut = nullableInt(cutOut)
	shot.SmartHeadIn = nullableInt(smartHeadIn)
	shot.SmartTailOut = nullableInt(smartTailOut)
	shot.SmartCutIn = nullableInt(smartCutIn)
	shot.SmartCutOut = nullableInt(smartCutOut)
	shot.CreatedAt = parseTime(createdAt)
	shot.UpdatedAt = parseTime(updatedAt)
	return &shot, nil
}

func scanShots(rows *sql.Rows) ([]*Shot, error) {
	var shots []*Shot
	for rows.Next() {
		shot, err := scanShotRow(rows)
		if err != nil {
			return nil, err
		}
		shots = append(shots, shot)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return shots, nil
}

func scanCutRow(row rowScanner) (*Cut, error) {
	var (
		cut                  Cut
		tcStart, tcEnd       sql.NullString
		duration             sql.NullInt64
		createdAt, updatedAt string
	)
	err := row.Scan(
		&cut.ID, &cut.Code, &cut.Sequence, &cut.Status, &cut.Description, &cut.FPS,
		&tcStart, &tcEnd, &duration, &cut.Revision, &createdAt, &updatedAt,
	)
	if err != nil {
		return nil, err
	}
	if tcStart.Valid {
		cut.TimecodeStart = &tcStart.String
	}
	if tcEnd.Valid {
		cut.TimecodeEnd = &tcEnd.String
	}
	cut.Duration = nullableInt(duration)
	cut.CreatedAt = parseTime(createdAt)
	cut.UpdatedAt = parseTime(updatedAt)
	return &cut, nil
}

func nullableInt(v sql.NullInt64) *int {
	if !v.Valid {
		return nil
	}
	value := int(v.Int64)
	return &value
}

func nullableInt64(v sql.NullInt64) *int64 {
	if !v.Valid {
		return nil
	}
	value := v.Int64
	return &value
}

func intValue(v *int) any {
	if v == nil {
		return nil
	}
	return *v
}

func int64Value(v *int64) any {
	if v == nil {
		return nil
	}
	return *v
}

func stringValue(v *string) any {
	if v == nil {
		return nil
	}
	return *v
}

func parseTime(text string) time.Time {
	parsed, err := time.Parse(time.RFC3339Nano, text)
	if err != nil {
		return time.Time{}
	}
	return parsed
}

func placeholders(n int) string {
	return strings.TrimSuffix(strings.Repeat("?, ", n), ", ")
}

func stringArgs(values []string) []any {
	args := make([]any, len(values))
	for i, v := range values {
		args[i] = v
	}
	return args
}

func int64Args(values []int64) []any {
	args := make([]any, len(values))
	for i, v := range values {
		args[i] = v
	}
	return args
}
