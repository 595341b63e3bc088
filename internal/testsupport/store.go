package testsupport

import (
	"context"
	"testing"

	"cutsync/internal/config"
	"cutsync/internal/store"
)

// MustOpenStore opens a store.Store for tests and registers cleanup.
func MustOpenStore(t testing.TB, cfg *config.Config) *store.Store {
	t.Helper()

	st, err := store.Open(cfg)
	if err != nil {
		t.Fatalf("store.Open: %v", err)
	}
	t.Cleanup(func() {
		st.Close()
	})
	return st
}

// NewShot creates a shot with the usual 8-frame handles around a 20-frame
// cut starting at frame 1009.
func NewShot(t testing.TB, st *store.Store, code, sequence string) *store.Shot {
	t.Helper()

	shot, err := st.CreateShot(context.Background(), &store.Shot{
		Code:     code,
		Sequence: sequence,
		Status:   "act",
		CutOrder: store.Intp(1),
		HeadIn:   store.Intp(1001),
		TailOut:  store.Intp(1036),
		CutIn:    store.Intp(1009),
		CutOut:   store.Intp(1028),
	})
	if err != nil {
		t.Fatalf("store.CreateShot: %v", err)
	}
	return shot
}

// NewCut creates a cut record for the sequence.
func NewCut(t testing.TB, st *store.Store, code, sequence string) *store.Cut {
	t.Helper()

	cut, err := st.CreateCut(context.Background(), &store.Cut{
		Code:     code,
		Sequence: sequence,
		FPS:      24,
		Revision: 1,
	})
	if err != nil {
		t.Fatalf("store.CreateCut: %v", err)
	}
	return cut
}

// NewCutItem records the shot in the cut at source frame 1009 for 20
// frames.
func NewCutItem(t testing.TB, st *store.Store, cut *store.Cut, shot *store.Shot, order int) *store.CutItem {
	t.Helper()

	item := &store.CutItem{
		CutID:       cut.ID,
		Code:        shot.Code,
		CutOrder:    store.Intp(order),
		TimecodeIn:  "00:00:42:01",
		TimecodeOut: "00:00:42:21",
		CutItemIn:   store.Intp(1009),
		CutItemOut:  store.Intp(1028),
		Duration:    store.Intp(20),
		FPS:         24,
		ShotID:      store.Int64p(shot.ID),
	}
	if err := st.CreateCutItem(context.Background(), item); err != nil {
		t.Fatalf("store.CreateCutItem: %v", err)
	}
	return item
}

// NewVersion creates a version linked to the shot.
func NewVersion(t testing.TB, st *store.Store, code string, shot *store.Shot) *store.Version {
	t.Helper()

	version, err := st.CreateVersion(context.Background(), &store.Version{
		Code:   code,
		ShotID: store.Int64p(shot.ID),
	})
	if err != nil {
		t.Fatalf("store.CreateVersion: %v", err)
	}
	return version
}
