package cut

// Classification is the change category assigned to one reconciled entry.
type Classification string

const (
	// ClassificationNoLink marks an entry carrying no shot name at all.
	ClassificationNoLink Classification = "no_link"
	// ClassificationNew marks an edit naming a shot with no stored record.
	ClassificationNew Classification = "new"
	// ClassificationNewInCut marks a known shot appearing in a cut for the
	// first time.
	ClassificationNewInCut Classification = "new_in_cut"
	// ClassificationOmitted marks a shot that left the incoming edit list.
	ClassificationOmitted Classification = "omitted"
	// ClassificationOmittedInCut marks one repeat of a shot leaving the
	// list while other repeats remain.
	ClassificationOmittedInCut Classification = "omitted_in_cut"
	// ClassificationReinstated marks a previously omitted shot returning.
	ClassificationReinstated Classification = "reinstated"
	// ClassificationCutChange marks a trimmed or extended in/out range.
	ClassificationCutChange Classification = "cut_change"
	// ClassificationRescan marks a cut needing more source frames than the
	// existing handles cover.
	ClassificationRescan Classification = "rescan"
	// ClassificationNoChange marks an entry identical to the prior cut.
	ClassificationNoChange Classification = "no_change"
)

// Omits reports whether the classification removes the entry from the
// summary's live total.
func (c Classification) Omits() bool {
	return c == ClassificationOmitted || c == ClassificationOmittedInCut
}
