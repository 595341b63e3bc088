package cut

import (
	"errors"
	"fmt"

	"cutsync/internal/config"
	"cutsync/internal/edl"
	"cutsync/internal/store"
	"cutsync/internal/timecode"
)

// ErrNotRenameable indicates a rename attempt on an entry whose identity is
// fixed, either because it has no edit event or because a linked version
// already names it.
var ErrNotRenameable = errors.New("entry cannot be renamed")

// Difference is one reconciliation unit tying together an optional edit
// event, an optional stored shot and an optional prior cut item. At least
// one of the three must be present. Previous and new values are derived on
// demand; the classification is cached by CheckAndSetChanges.
type Difference struct {
	name    string
	shot    *store.Shot
	edit    *edl.Event
	cutItem *store.CutItem
	version *store.Version

	priorTCIn  timecode.Timecode
	priorTCOut timecode.Timecode

	repeated       bool
	classification Classification
	reasons        []string

	settings *Settings
	group    *Group
	summary  *Summary
}

func newDifference(name string, shot *store.Shot, edit *edl.Event, item *store.CutItem, settings *Settings) (*Difference, error) {
	diff := &Difference{
		name:     name,
		shot:     shot,
		edit:     edit,
		cutItem:  item,
		settings: settings,
	}
	if edit != nil && edit.Version != nil {
		diff.version = edit.Version
	} else if item != nil && item.Version != nil {
		diff.version = item.Version
	}
	if err := diff.parsePriorTimecodes(); err != nil {
		return nil, err
	}
	return diff, nil
}

// parsePriorTimecodes converts the cut item's stored timecode text to frame
// values. Malformed text is a data error naming the field and cut item.
func (d *Difference) parsePriorTimecodes() error {
	d.priorTCIn = timecode.Timecode{}
	d.priorTCOut = timecode.Timecode{}
	if d.cutItem == nil {
		return nil
	}
	fps := d.cutItem.FPS
	if fps <= 0 {
		fps = d.settings.FrameRate
	}
	if d.cutItem.TimecodeIn != "" {
		tc, err := timecode.Parse(d.cutItem.TimecodeIn, fps)
		if err != nil {
			return fmt.Errorf("cut item %s: timecode in: %w", d.cutItem.Code, err)
		}
		d.priorTCIn = tc
	}
	if d.cutItem.TimecodeOut != "" {
		tc, err := timecode.Parse(d.cutItem.TimecodeOut, fps)
		if err != nil {
			return fmt.Errorf("cut item %s: timecode out: %w", d.cutItem.Code, err)
		}
		d.priorTCOut = tc
	}
	return nil
}

// Name returns the entry's display name, empty for unnamed entries.
func (d *Difference) Name() string { return d.name }

// Shot returns the linked shot record, nil when the shot does not exist.
func (d *Difference) Shot() *store.Shot { return d.shot }

// Edit returns the incoming edit event, nil for entries that left the cut.
func (d *Difference) Edit() *edl.Event { return d.edit }

// CutItem returns the prior cut item, nil on first appearance in a cut.
func (d *Difference) CutItem() *store.CutItem { return d.cutItem }

// Version returns the linked version, from the edit event when resolved,
// else from the prior cut item.
func (d *Difference) Version() *store.Version { return d.version }

// Repeated reports whether the entry shares its shot with other entries.
func (d *Difference) Repeated() bool { return d.repeated }

// Classification returns the category computed by CheckAndSetChanges.
func (d *Difference) Classification() Classification { return d.classification }

// Reasons returns the human-readable change reasons, in evaluation order.
func (d *Difference) Reasons() []string { return d.reasons }

// LinkShot replaces the shot record, typically after a create round-trip,
// and re-evaluates the classification.
func (d *Difference) LinkShot(shot *store.Shot) {
	d.shot = shot
	d.CheckAndSetChanges()
}

func (d *Difference) setRepeated(repeated bool) {
	if d.repeated == repeated {
		return
	}
	d.repeated = repeated
	d.CheckAndSetChanges()
}

func (d *Difference) hasPriorTCIn() bool  { return !d.priorTCIn.IsZero() }
func (d *Difference) hasPriorTCOut() bool { return !d.priorTCOut.IsZero() }

// CutOrder returns the previous cut position, from the prior cut item when
// present, else from the shot record.
func (d *Difference) CutOrder() *int {
	if d.cutItem != nil && d.cutItem.CutOrder != nil {
		return intCopy(d.cutItem.CutOrder)
	}
	if d.shot != nil {
		return intCopy(d.shot.CutOrder)
	}
	return nil
}

// HeadIn returns the shot's persisted head-in frame.
func (d *Difference) HeadIn() *int {
	if d.shot == nil {
		return nil
	}
	return intCopy(d.shot.HeadInField(d.settings.UseSmartFields))
}

// TailOut returns the shot's persisted tail-out frame.
func (d *Difference) TailOut() *int {
	if d.shot == nil {
		return nil
	}
	return intCopy(d.shot.TailOutField(d.settings.UseSmartFields))
}

// CutIn returns the previous cut-in frame. For a repeated entry that is not
// the earliest sibling by prior timecode, the value is the earliest
// sibling's cut-in shifted by the timecode offset between the two, so all
// repeats share one continuous media footprint.
func (d *Difference) CutIn() *int {
	if d.repeated && d.hasPriorTCIn() {
		earliest := d.mustEarliestByPriorIn()
		if earliest != d && earliest.hasPriorTCIn() {
			if base := earliest.CutIn(); base != nil {
				return store.Intp(*base + d.priorTCIn.Sub(earliest.priorTCIn))
			}
		}
	}
	if d.cutItem != nil && d.cutItem.CutItemIn != nil {
		return intCopy(d.cutItem.CutItemIn)
	}
	if d.shot != nil {
		return intCopy(d.shot.CutInField(d.settings.UseSmartFields))
	}
	return nil
}

// CutOut returns the previous cut-out frame, shifted against the latest
// sibling for non-latest repeats.
func (d *Difference) CutOut() *int {
	if d.repeated && d.hasPriorTCOut() {
		latest := d.mustLatestByPriorOut()
		if latest != d && latest.hasPriorTCOut() {
			if base := latest.CutOut(); base != nil {
				return store.Intp(*base + d.priorTCOut.Sub(latest.priorTCOut))
			}
		}
	}
	if d.cutItem != nil && d.cutItem.CutItemOut != nil {
		return intCopy(d.cutItem.CutItemOut)
	}
	if d.shot != nil {
		return intCopy(d.shot.CutOutField(d.settings.UseSmartFields))
	}
	return nil
}

// HeadDuration returns the previous handle length before cut-in.
func (d *Difference) HeadDuration() *int {
	headIn, cutIn := d.HeadIn(), d.CutIn()
	if headIn == nil || cutIn == nil {
		return nil
	}
	return store.Intp(*cutIn - *headIn)
}

// TailDuration returns the previous handle length after cut-out.
func (d *Difference) TailDuration() *int {
	cutOut, tailOut := d.CutOut(), d.TailOut()
	if cutOut == nil || tailOut == nil {
		return nil
	}
	return store.Intp(*tailOut - *cutOut)
}

// Duration returns the previous cut length in frames.
func (d *Difference) Duration() *int {
	if d.cutItem != nil && d.cutItem.Duration != nil {
		return intCopy(d.cutItem.Duration)
	}
	cutIn, cutOut := d.CutIn(), d.CutOut()
	if cutIn == nil || cutOut == nil {
		return nil
	}
	return store.Intp(*cutOut - *cutIn + 1)
}

// NewCutIn returns the cut-in frame required by the incoming edit, nil when
// the entry has no edit event. When a prior cut item with a valid timecode
// exists, the value preserves the prior cut-in's offset so frame numbering
// stays continuous across re-imports.
func (d *Difference) NewCutIn() *int {
	if d.edit == nil {
		return nil
	}
	if d.repeated {
		earliest := d.mustEarliestByNewIn()
		if earliest != d {
			if base := earliest.NewCutIn(); base != nil {
				return store.Intp(*base + d.edit.SourceIn.Sub(earliest.edit.SourceIn))
			}
		}
	}
	if d.cutItem != nil && d.hasPriorTCIn() && d.cutItem.CutItemIn != nil {
		return store.Intp(*d.cutItem.CutItemIn + d.edit.SourceIn.Frame() - d.priorTCIn.Frame())
	}
	switch d.settings.MappingMode {
	case config.MappingAbsolute:
		return store.Intp(d.edit.SourceIn.Frame() - d.settings.AbsoluteBaseFrame)
	case config.MappingRelative:
		return store.Intp(d.edit.SourceIn.Frame() - d.settings.RelativeBaseTC.Frame() + d.settings.RelativeBaseFrame)
	default:
		headIn := d.NewHeadIn()
		if headIn == nil {
			return nil
		}
		return store.Intp(*headIn + d.settings.DefaultHeadDuration)
	}
}

// NewCutOut returns the cut-out frame required by the incoming edit.
func (d *Difference) NewCutOut() *int {
	if d.edit == nil {
		return nil
	}
	if d.repeated {
		latest := d.mustLatestByNewOut()
		if latest != d {
			if base := latest.NewCutOut(); base != nil {
				return store.Intp(*base + d.edit.SourceOut.Sub(latest.edit.SourceOut))
			}
		}
	}
	cutIn := d.NewCutIn()
	if cutIn == nil {
		return nil
	}
	return store.Intp(*cutIn + d.edit.SourceDuration() - 1)
}

// NewHeadIn returns the head-in frame the incoming edit implies. In
// automatic mode this is the shot's existing head-in, or the configured
// default for shots without one; in absolute and relative modes the head-in
// trails the computed cut-in by the default head handle.
func (d *Difference) NewHeadIn() *int {
	if d.edit == nil {
		return nil
	}
	if d.repeated {
		earliest := d.mustEarliestByNewIn()
		if earliest != d {
			if base := earliest.NewHeadIn(); base != nil {
				return store.Intp(*base + d.edit.SourceIn.Sub(earliest.edit.SourceIn))
			}
		}
	}
	if d.settings.MappingMode == config.MappingAutomatic || d.settings.MappingMode == "" {
		if headIn := d.HeadIn(); headIn != nil {
			return headIn
		}
		return store.Intp(d.settings.DefaultHeadIn)
	}
	cutIn := d.NewCutIn()
	if cutIn == nil {
		return nil
	}
	return store.Intp(*cutIn - d.settings.DefaultHeadDuration)
}

// NewTailOut returns the tail-out frame the incoming edit implies, falling
// back to cut-out plus the default tail handle for shots without one.
func (d *Difference) NewTailOut() *int {
	if d.edit == nil {
		return nil
	}
	if d.repeated {
		latest := d.mustLatestByNewOut()
		if latest != d {
			if base := latest.NewTailOut(); base != nil {
				return store.Intp(*base + d.edit.SourceOut.Sub(latest.edit.SourceOut))
			}
		}
	}
	if tailOut := d.TailOut(); tailOut != nil {
		return tailOut
	}
	cutOut := d.NewCutOut()
	if cutOut == nil {
		return nil
	}
	return store.Intp(*cutOut + d.settings.DefaultTailDuration)
}

// NewHeadDuration returns the handle length before the new cut-in.
func (d *Difference) NewHeadDuration() *int {
	headIn, cutIn := d.NewHeadIn(), d.NewCutIn()
	if headIn == nil || cutIn == nil {
		return nil
	}
	return store.Intp(*cutIn - *headIn)
}

// NewTailDuration returns the handle length after the new cut-out.
func (d *Difference) NewTailDuration() *int {
	cutOut, tailOut := d.NewCutOut(), d.NewTailOut()
	if cutOut == nil || tailOut == nil {
		return nil
	}
	return store.Intp(*tailOut - *cutOut)
}

// NewDuration returns the new cut length in frames.
func (d *Difference) NewDuration() *int {
	cutIn, cutOut := d.NewCutIn(), d.NewCutOut()
	if cutIn == nil || cutOut == nil {
		return nil
	}
	return store.Intp(*cutOut - *cutIn + 1)
}

// CheckAndSetChanges re-evaluates the classification state machine. It is
// idempotent for unchanged inputs and must be re-run whenever the shot
// link, cut item, edit event or repeated flag changes. A result change is
// reported to the owning summary.
func (d *Difference) CheckAndSetChanges() {
	previous := d.classification
	d.classification, d.reasons = d.computeChanges()
	if d.classification != previous && d.summary != nil {
		d.summary.classificationChanged(d, previous)
	}
}

func (d *Difference) computeChanges() (Classification, []string) {
	if d.name == "" {
		return ClassificationNoLink, nil
	}
	if d.shot == nil {
		return ClassificationNew, nil
	}
	if d.edit == nil {
		if d.repeated {
			return ClassificationOmittedInCut, nil
		}
		return ClassificationOmitted, nil
	}
	if d.settings.reinstates(d.shot.Status) {
		return ClassificationReinstated, nil
	}
	if d.cutItem == nil {
		return ClassificationNewInCut, nil
	}

	cutIn, cutOut := d.CutIn(), d.CutOut()
	headDur, tailDur := d.HeadDuration(), d.TailDuration()
	duration := d.Duration()
	if cutIn == nil || cutOut == nil || headDur == nil || tailDur == nil || duration == nil {
		return ClassificationCutChange, nil
	}

	var reasons []string
	rescan := false
	newHeadIn, newHeadDur := d.NewHeadIn(), d.NewHeadDuration()
	newTailOut, newTailDur := d.NewTailOut(), d.NewTailDuration()
	if headIn := d.HeadIn(); headIn != nil && newHeadIn != nil && *newHeadIn < *headIn {
		reasons = append(reasons, fmt.Sprintf("Head extended %d frs", *headIn-*newHeadIn))
		rescan = true
	}
	if newHeadDur != nil && *newHeadDur < 0 {
		reasons = append(reasons, fmt.Sprintf("Head extended %d frs", -*newHeadDur))
		rescan = true
	}
	if tailOut := d.TailOut(); tailOut != nil && newTailOut != nil && *newTailOut > *tailOut {
		reasons = append(reasons, fmt.Sprintf("Tail extended %d frs", *newTailOut-*tailOut))
		rescan = true
	}
	if newTailDur != nil && *newTailDur < 0 {
		reasons = append(reasons, fmt.Sprintf("Tail extended %d frs", -*newTailDur))
		rescan = true
	}
	if rescan {
		return ClassificationRescan, reasons
	}

	changed := false
	if newHeadDur != nil && *newHeadDur != *headDur {
		if *newHeadDur < *headDur {
			reasons = append(reasons, fmt.Sprintf("Head extended %d frs", *headDur-*newHeadDur))
		} else {
			reasons = append(reasons, fmt.Sprintf("Head trimmed %d frs", *newHeadDur-*headDur))
		}
		changed = true
	}
	if newTailDur != nil && *newTailDur != *tailDur {
		if *newTailDur < *tailDur {
			reasons = append(reasons, fmt.Sprintf("Tail extended %d frs", *tailDur-*newTailDur))
		} else {
			reasons = append(reasons, fmt.Sprintf("Tail trimmed %d frs", *newTailDur-*tailDur))
		}
		changed = true
	}
	if changed {
		return ClassificationCutChange, reasons
	}
	return ClassificationNoChange, nil
}

// InterpretedClassification collapses the in-cut variants for per-entry
// display: NEW_IN_CUT and OMITTED_IN_CUT read as CUT_CHANGE, except that a
// shot whose every repeat left the cut reads as OMITTED.
func (d *Difference) InterpretedClassification() Classification {
	switch d.classification {
	case ClassificationNewInCut:
		return ClassificationCutChange
	case ClassificationOmittedInCut:
		if d.group != nil && d.group.allOmittedInCut() {
			return ClassificationOmitted
		}
		return ClassificationCutChange
	default:
		return d.classification
	}
}

func (d *Difference) renameable() error {
	if d.edit == nil {
		return fmt.Errorf("%w: no edit event", ErrNotRenameable)
	}
	if d.version != nil {
		return fmt.Errorf("%w: name comes from version %s", ErrNotRenameable, d.version.Code)
	}
	return nil
}

// MatchingScore counts how many of cut order, cut-in and cut-out agree
// between the two entries, comparing edit-derived values when an edit event
// is present and prior-derived values otherwise. Used to pick which of
// several candidate records a renamed entry should inherit from.
func (d *Difference) MatchingScore(other *Difference) int {
	score := 0
	if intEqual(d.scoreOrder(), other.scoreOrder()) {
		score++
	}
	if intEqual(d.scoreCutIn(), other.scoreCutIn()) {
		score++
	}
	if intEqual(d.scoreCutOut(), other.scoreCutOut()) {
		score++
	}
	return score
}

func (d *Difference) scoreOrder() *int {
	if d.edit != nil {
		return store.Intp(d.edit.Order)
	}
	return d.CutOrder()
}

func (d *Difference) scoreCutIn() *int {
	if d.edit != nil {
		return d.NewCutIn()
	}
	return d.CutIn()
}

func (d *Difference) scoreCutOut() *int {
	if d.edit != nil {
		return d.NewCutOut()
	}
	return d.CutOut()
}

func (d *Difference) mustEarliestByPriorIn() *Difference {
	entry := d.group.earliestByPriorIn()
	if entry == nil {
		panic(fmt.Sprintf("cut: group %q has repeated entries but no earliest prior timecode-in", d.group.Key()))
	}
	return entry
}

func (d *Difference) mustLatestByPriorOut() *Difference {
	entry := d.group.latestByPriorOut()
	if entry == nil {
		panic(fmt.Sprintf("cut: group %q has repeated entries but no latest prior timecode-out", d.group.Key()))
	}
	return entry
}

func (d *Difference) mustEarliestByNewIn() *Difference {
	entry := d.group.earliestByNewIn()
	if entry == nil {
		panic(fmt.Sprintf("cut: group %q has repeated entries but no earliest source timecode-in", d.group.Key()))
	}
	return entry
}

func (d *Difference) mustLatestByNewOut() *Difference {
	entry := d.group.latestByNewOut()
	if entry == nil {
		panic(fmt.Sprintf("cut: group %q has repeated entries but no latest source timecode-out", d.group.Key()))
	}
	return entry
}

func intCopy(v *int) *int {
	if v == nil {
		return nil
	}
	return store.Intp(*v)
}

func intEqual(a, b *int) bool {
	return a != nil && b != nil && *a == *b
}
