package store_test

import (
	"context"
	"testing"

	"cutsync/internal/store"
	"cutsync/internal/testsupport"
)

func TestShotRoundTrip(t *testing.T) {
	st := testsupport.MustOpenStore(t, testsupport.NewConfig(t))
	ctx := context.Background()

	created := testsupport.NewShot(t, st, "SH010", "SEQ01")
	if created.ID == 0 {
		t.Fatal("created shot has no id")
	}
	if created.HeadIn == nil || *created.HeadIn != 1001 {
		t.Errorf("head in = %v, want 1001", created.HeadIn)
	}

	created.Status = "omt"
	created.CutOut = store.Intp(1040)
	if err := st.UpdateShot(ctx, created); err != nil {
		t.Fatalf("UpdateShot: %v", err)
	}

	found, err := st.ShotByCode(ctx, "sh010", "SEQ01")
	if err != nil {
		t.Fatalf("ShotByCode: %v", err)
	}
	if found == nil {
		t.Fatal("ShotByCode found nothing for a case-insensitive match")
	}
	if found.Status != "omt" {
		t.Errorf("status = %q, want omt", found.Status)
	}
	if found.CutOut == nil || *found.CutOut != 1040 {
		t.Errorf("cut out = %v, want 1040", found.CutOut)
	}
}

func TestShotByCodeFallsBackGlobally(t *testing.T) {
	st := testsupport.MustOpenStore(t, testsupport.NewConfig(t))
	ctx := context.Background()

	testsupport.NewShot(t, st, "SH020", "SEQ02")
	found, err := st.ShotByCode(ctx, "SH020", "SEQ01")
	if err != nil {
		t.Fatalf("ShotByCode: %v", err)
	}
	if found == nil || found.Sequence != "SEQ02" {
		t.Fatalf("ShotByCode = %v, want the SEQ02 shot via global fallback", found)
	}

	missing, err := st.ShotByCode(ctx, "SH999", "SEQ01")
	if err != nil {
		t.Fatalf("ShotByCode: %v", err)
	}
	if missing != nil {
		t.Errorf("ShotByCode = %v, want nil for an unknown code", missing)
	}
}

func TestLatestCutAndCount(t *testing.T) {
	st := testsupport.MustOpenStore(t, testsupport.NewConfig(t))
	ctx := context.Background()

	latest, err := st.LatestCut(ctx, "SEQ01")
	if err != nil {
		t.Fatalf("LatestCut: %v", err)
	}
	if latest != nil {
		t.Fatalf("LatestCut = %v, want nil before any import", latest)
	}

	testsupport.NewCut(t, st, "SEQ01_CUT_001", "SEQ01")
	second := testsupport.NewCut(t, st, "SEQ01_CUT_002", "SEQ01")
	testsupport.NewCut(t, st, "SEQ02_CUT_001", "SEQ02")

	latest, err = st.LatestCut(ctx, "SEQ01")
	if err != nil {
		t.Fatalf("LatestCut: %v", err)
	}
	if latest == nil || latest.ID != second.ID {
		t.Fatalf("LatestCut = %v, want cut %d", latest, second.ID)
	}

	count, err := st.CountCuts(ctx, "SEQ01")
	if err != nil {
		t.Fatalf("CountCuts: %v", err)
	}
	if count != 2 {
		t.Errorf("CountCuts = %d, want 2", count)
	}
}

func TestCutItemsCarryCutFPSAndVersion(t *testing.T) {
	st := testsupport.MustOpenStore(t, testsupport.NewConfig(t))
	ctx := context.Background()

	shot := testsupport.NewShot(t, st, "SH010", "SEQ01")
	cut := testsupport.NewCut(t, st, "SEQ01_CUT_001", "SEQ01")
	version := testsupport.NewVersion(t, st, "sh010_comp_v002", shot)

	testsupport.NewCutItem(t, st, cut, shot, 1)

	linked := &store.CutItem{
		CutID:       cut.ID,
		Code:        shot.Code,
		CutOrder:    store.Intp(2),
		TimecodeIn:  "00:01:00:00",
		TimecodeOut: "00:01:01:00",
		ShotID:      store.Int64p(shot.ID),
		VersionID:   store.Int64p(version.ID),
	}
	if err := st.CreateCutItem(ctx, linked); err != nil {
		t.Fatalf("CreateCutItem: %v", err)
	}

	items, err := st.CutItems(ctx, cut.ID)
	if err != nil {
		t.Fatalf("CutItems: %v", err)
	}
	if len(items) != 2 {
		t.Fatalf("CutItems returned %d items, want 2", len(items))
	}
	for _, it := range items {
		if it.FPS != cut.FPS {
			t.Errorf("item %d fps = %v, want cut fps %v", it.ID, it.FPS, cut.FPS)
		}
	}
	if items[0].CutOrder == nil || *items[0].CutOrder != 1 {
		t.Errorf("items not ordered by cut order: %v", items[0].CutOrder)
	}
	withVersion := items[1]
	if withVersion.Version == nil {
		t.Fatal("linked item is missing its version")
	}
	if withVersion.Version.Code != "sh010_comp_v002" {
		t.Errorf("version code = %q", withVersion.Version.Code)
	}
	if withVersion.Version.ShotCode != "SH010" {
		t.Errorf("version shot code = %q, want SH010", withVersion.Version.ShotCode)
	}
}

func TestVersionsByCodesIsCaseInsensitive(t *testing.T) {
	st := testsupport.MustOpenStore(t, testsupport.NewConfig(t))
	ctx := context.Background()

	shot := testsupport.NewShot(t, st, "SH010", "SEQ01")
	testsupport.NewVersion(t, st, "SH010_comp_v002", shot)

	versions, err := st.VersionsByCodes(ctx, []string{"sh010_comp_v002"})
	if err != nil {
		t.Fatalf("VersionsByCodes: %v", err)
	}
	if len(versions) != 1 {
		t.Fatalf("VersionsByCodes returned %d versions, want 1", len(versions))
	}
	if versions[0].ShotCode != "SH010" {
		t.Errorf("shot code = %q, want SH010", versions[0].ShotCode)
	}
}

func TestBatchShotsCreatesAndUpdates(t *testing.T) {
	st := testsupport.MustOpenStore(t, testsupport.NewConfig(t))
	ctx := context.Background()

	existing := testsupport.NewShot(t, st, "SH010", "SEQ01")
	existing.Status = "omt"

	results, err := st.BatchShots(ctx, []store.ShotRequest{
		{Shot: existing},
		{Shot: &store.Shot{
			Code:     "SH020",
			Sequence: "SEQ01",
			Status:   "act",
			CutOrder: store.Intp(2),
			HeadIn:   store.Intp(1001),
			CutIn:    store.Intp(1009),
		}},
	})
	if err != nil {
		t.Fatalf("BatchShots: %v", err)
	}
	if len(results) != 2 {
		t.Fatalf("BatchShots returned %d shots, want 2", len(results))
	}
	if results[0].ID != existing.ID || results[0].Status != "omt" {
		t.Errorf("updated shot = %+v", results[0])
	}
	if results[1].ID == 0 || results[1].Code != "SH020" {
		t.Errorf("created shot = %+v", results[1])
	}
	if results[1].TailOut != nil {
		t.Errorf("tail out = %v, want nil when never set", results[1].TailOut)
	}
}

func TestBatchCreateCutItemsAssignsIDs(t *testing.T) {
	st := testsupport.MustOpenStore(t, testsupport.NewConfig(t))
	ctx := context.Background()

	shot := testsupport.NewShot(t, st, "SH010", "SEQ01")
	cut := testsupport.NewCut(t, st, "SEQ01_CUT_001", "SEQ01")

	items := []*store.CutItem{
		{CutID: cut.ID, Code: "REEL1001", CutOrder: store.Intp(1), TimecodeIn: "00:00:00:00", TimecodeOut: "00:00:01:00", ShotID: store.Int64p(shot.ID)},
		{CutID: cut.ID, Code: "REEL1002", CutOrder: store.Intp(2), TimecodeIn: "00:00:01:00", TimecodeOut: "00:00:02:00", ShotID: store.Int64p(shot.ID)},
	}
	if err := st.BatchCreateCutItems(ctx, items); err != nil {
		t.Fatalf("BatchCreateCutItems: %v", err)
	}
	for i, item := range items {
		if item.ID == 0 {
			t.Errorf("item %d has no assigned id", i)
		}
	}

	stored, err := st.CutItems(ctx, cut.ID)
	if err != nil {
		t.Fatalf("CutItems: %v", err)
	}
	if len(stored) != 2 {
		t.Errorf("CutItems returned %d items, want 2", len(stored))
	}
}
