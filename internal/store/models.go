package store

import "time"

// Shot is the persisted snapshot of a shot's current fields. The plain and
// smart frame-range columns are parallel sets; which one the engine reads is
// a configuration decision, not a per-record one.
type Shot struct {
	ID       int64
	Code     string
	Sequence string
	Status   string
	CutOrder *int

	HeadIn  *int
	TailOut *int
	CutIn   *int
	CutOut  *int

	SmartHeadIn  *int
	SmartTailOut *int
	SmartCutIn   *int
	SmartCutOut  *int

	CreatedAt time.Time
	UpdatedAt time.Time
}

// HeadInField returns the head-in value from the plain or smart column set.
func (s *Shot) HeadInField(smart bool) *int {
	if smart {
		return s.SmartHeadIn
	}
	return s.HeadIn
}

// TailOutField returns the tail-out value from the plain or smart column set.
func (s *Shot) TailOutField(smart bool) *int {
	if smart {
		return s.SmartTailOut
	}
	return s.TailOut
}

// CutInField returns the cut-in value from the plain or smart column set.
func (s *Shot) CutInField(smart bool) *int {
	if smart {
		return s.SmartCutIn
	}
	return s.CutIn
}

// CutOutField returns the cut-out value from the plain or smart column set.
func (s *Shot) CutOutField(smart bool) *int {
	if smart {
		return s.SmartCutOut
	}
	return s.CutOut
}

// Cut is a named, versioned snapshot of how shots are ordered and trimmed
// within a sequence.
type Cut struct {
	ID            int64
	Code          string
	Sequence      string
	Status        string
	Description   string
	FPS           float64
	TimecodeStart *string
	TimecodeEnd   *string
	Duration      *int
	Revision      int
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// CutItem records one shot's in/out range within a specific cut revision.
// Timecode fields are stored as text exactly as imported; the derived frame
// fields are what the engine computes against.
type CutItem struct {
	ID       int64
	CutID    int64
	Code     string
	CutOrder *int

	TimecodeIn  string
	TimecodeOut string

	TimecodeEditIn  string
	TimecodeEditOut string

	CutItemIn  *int
	CutItemOut *int
	EditIn     *int
	EditOut    *int
	Duration   *int

	FPS float64

	ShotID    *int64
	VersionID *int64

	// Version is populated on fetch when the item links one.
	Version *Version

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Version is a lightweight reference to a rendered version of a shot.
type Version struct {
	ID        int64
	Code      string
	ShotID    *int64
	ShotCode  string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Intp returns a pointer to v. Convenience for optional frame fields.
func Intp(v int) *int { return &v }

// Int64p returns a pointer to v.
func Int64p(v int64) *int64 { return &v }
