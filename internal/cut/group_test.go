package cut

import (
	"testing"

	"cutsync/internal/config"
)

func TestRepeatedEntriesShareOneFootprint(t *testing.T) {
	summary := NewSummary(testSettings(config.MappingAutomatic), nil)
	first, err := summary.Add("SH020", nil, testEvent(t, 1, "SH020", 100, 10), nil)
	if err != nil {
		t.Fatalf("Add returned error: %v", err)
	}
	second, err := summary.Add("SH020", nil, testEvent(t, 2, "SH020", 200, 10), nil)
	if err != nil {
		t.Fatalf("Add returned error: %v", err)
	}

	if !first.Repeated() || !second.Repeated() {
		t.Fatal("both entries should be flagged repeated")
	}
	group := summary.Group("SH020")
	if group == nil || group.Len() != 2 {
		t.Fatal("expected one group with two entries")
	}
	earliest := 0
	for _, entry := range group.Entries() {
		if group.IsEarliestByNewIn(entry) {
			earliest++
		}
	}
	if earliest != 1 {
		t.Fatalf("%d entries claim earliest source in, want exactly 1", earliest)
	}

	// The second repeat rides 100 frames behind the earliest instead of
	// recomputing from defaults.
	if got := intDeref(t, "first new head in", first.NewHeadIn()); got != 1001 {
		t.Errorf("first new head in = %d, want 1001", got)
	}
	if got := intDeref(t, "second new head in", second.NewHeadIn()); got != 1101 {
		t.Errorf("second new head in = %d, want 1101", got)
	}
	if got := intDeref(t, "second new cut in", second.NewCutIn()); got != 1109 {
		t.Errorf("second new cut in = %d, want 1109", got)
	}
}

func TestAggregateShotValues(t *testing.T) {
	summary := NewSummary(testSettings(config.MappingAutomatic), nil)
	if _, err := summary.Add("SH020", nil, testEvent(t, 2, "SH020", 100, 10), nil); err != nil {
		t.Fatalf("Add returned error: %v", err)
	}
	if _, err := summary.Add("SH020", nil, testEvent(t, 5, "SH020", 200, 10), nil); err != nil {
		t.Fatalf("Add returned error: %v", err)
	}

	group := summary.Group("SH020")
	values := group.AggregateShotValues()
	if got := intDeref(t, "cut order", values.CutOrder); got != 2 {
		t.Errorf("aggregate cut order = %d, want 2", got)
	}
	if got := intDeref(t, "head in", values.HeadIn); got != 1001 {
		t.Errorf("aggregate head in = %d, want 1001", got)
	}
	if got := intDeref(t, "cut in", values.CutIn); got != 1009 {
		t.Errorf("aggregate cut in = %d, want 1009", got)
	}
	if got := intDeref(t, "cut out", values.CutOut); got != 1118 {
		t.Errorf("aggregate cut out = %d, want 1118", got)
	}
	if got := intDeref(t, "tail out", values.TailOut); got != 1126 {
		t.Errorf("aggregate tail out = %d, want 1126", got)
	}
	if values.Classification != ClassificationNew {
		t.Errorf("aggregate classification = %s, want %s", values.Classification, ClassificationNew)
	}

	earliestHeadIn := group.earliestByNewIn().NewHeadIn()
	if earliestHeadIn == nil || *values.HeadIn != *earliestHeadIn {
		t.Errorf("aggregate head in should match the earliest member's")
	}
}

func TestAggregateClassificationDivergenceFallsToCutChange(t *testing.T) {
	summary := NewSummary(testSettings(config.MappingAutomatic), nil)
	shot := testShot("SH020")
	// One repeat left the cut, another appears in a cut for the first
	// time. The shot as a whole is a cut change, not an omission.
	if _, err := summary.Add("SH020", shot, nil, testCutItem(shot.ID)); err != nil {
		t.Fatalf("Add returned error: %v", err)
	}
	if _, err := summary.Add("SH020", shot, testEvent(t, 2, "SH020", 1100, 10), nil); err != nil {
		t.Fatalf("Add returned error: %v", err)
	}

	values := summary.Group("SH020").AggregateShotValues()
	if values.Classification != ClassificationCutChange {
		t.Errorf("aggregate classification = %s, want %s", values.Classification, ClassificationCutChange)
	}
}

func TestAggregateAllOmittedInCutReadsOmitted(t *testing.T) {
	summary := NewSummary(testSettings(config.MappingAutomatic), nil)
	shot := testShot("SH020")
	if _, err := summary.Add("SH020", shot, nil, testCutItem(shot.ID)); err != nil {
		t.Fatalf("Add returned error: %v", err)
	}
	second, err := summary.Add("SH020", shot, nil, nil)
	if err != nil {
		t.Fatalf("Add returned error: %v", err)
	}

	if got := second.Classification(); got != ClassificationOmittedInCut {
		t.Fatalf("classification = %s, want %s", got, ClassificationOmittedInCut)
	}
	if got := second.InterpretedClassification(); got != ClassificationOmitted {
		t.Errorf("interpreted classification = %s, want %s", got, ClassificationOmitted)
	}
	values := summary.Group("SH020").AggregateShotValues()
	if values.Classification != ClassificationOmitted {
		t.Errorf("aggregate classification = %s, want %s", values.Classification, ClassificationOmitted)
	}
}
