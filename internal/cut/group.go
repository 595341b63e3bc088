package cut

// Group holds the differences sharing one shot key. It caches four extrema
// so repeated-shot offset math stays O(1): earliest and latest entries by
// prior cut item timecode, and by incoming source timecode. Ties keep the
// first inserted entry.
type Group struct {
	key     string
	entries []*Difference

	priorEarliest *Difference
	priorLatest   *Difference
	newEarliest   *Difference
	newLatest     *Difference
}

func newGroup(key string) *Group {
	return &Group{key: key}
}

// Key returns the lower-cased shot key the group is filed under.
func (g *Group) Key() string { return g.key }

// Entries returns the member list in insertion order. Callers must not
// mutate it.
func (g *Group) Entries() []*Difference { return g.entries }

// Len returns the member count.
func (g *Group) Len() int { return len(g.entries) }

func (g *Group) insert(entry *Difference) {
	g.entries = append(g.entries, entry)
	entry.group = g
	g.updateExtrema(entry)
}

// updateExtrema compares one new entry against the cached extrema. Strict
// comparisons keep the earlier insertion on ties.
func (g *Group) updateExtrema(entry *Difference) {
	if entry.hasPriorTCIn() {
		if g.priorEarliest == nil || entry.priorTCIn.Before(g.priorEarliest.priorTCIn) {
			g.priorEarliest = entry
		}
	}
	if entry.hasPriorTCOut() {
		if g.priorLatest == nil || entry.priorTCOut.After(g.priorLatest.priorTCOut) {
			g.priorLatest = entry
		}
	}
	if entry.edit != nil {
		if g.newEarliest == nil || entry.edit.SourceIn.Before(g.newEarliest.edit.SourceIn) {
			g.newEarliest = entry
		}
		if g.newLatest == nil || entry.edit.SourceOut.After(g.newLatest.edit.SourceOut) {
			g.newLatest = entry
		}
	}
}

// remove detaches an entry and rebuilds all four extrema over the remaining
// members. Removal is rare (rename and explicit removal paths), so the O(n)
// rescan is acceptable.
func (g *Group) remove(entry *Difference) bool {
	index := -1
	for i, member := range g.entries {
		if member == entry {
			index = i
			break
		}
	}
	if index < 0 {
		return false
	}
	g.entries = append(g.entries[:index], g.entries[index+1:]...)
	entry.group = nil

	g.priorEarliest, g.priorLatest = nil, nil
	g.newEarliest, g.newLatest = nil, nil
	for _, member := range g.entries {
		g.updateExtrema(member)
	}
	return true
}

func (g *Group) earliestByPriorIn() *Difference { return g.priorEarliest }
func (g *Group) latestByPriorOut() *Difference  { return g.priorLatest }
func (g *Group) earliestByNewIn() *Difference   { return g.newEarliest }
func (g *Group) latestByNewOut() *Difference    { return g.newLatest }

// IsEarliestByNewIn reports whether the entry holds the group's earliest
// incoming source timecode.
func (g *Group) IsEarliestByNewIn(entry *Difference) bool {
	return g.newEarliest == entry
}

func (g *Group) allOmittedInCut() bool {
	for _, member := range g.entries {
		if member.classification != ClassificationOmittedInCut {
			return false
		}
	}
	return len(g.entries) > 0
}

// ShotValues is the shot-level aggregate derived from a group: the widest
// frame footprint across new-value-bearing members and one classification
// for the shot as a whole.
type ShotValues struct {
	CutOrder *int
	HeadIn   *int
	CutIn    *int
	CutOut   *int
	TailOut  *int

	Classification Classification
}

// AggregateShotValues rolls per-entry values up to the shot. Frame extents
// come only from members carrying an edit event; omitted repeats keep their
// frames out of the new footprint.
func (g *Group) AggregateShotValues() ShotValues {
	values := ShotValues{Classification: g.aggregateClassification()}
	for _, member := range g.entries {
		order := member.scoreOrder()
		if order != nil && (values.CutOrder == nil || *order < *values.CutOrder) {
			values.CutOrder = intCopy(order)
		}
		if member.edit == nil {
			continue
		}
		minInto(&values.HeadIn, member.NewHeadIn())
		minInto(&values.CutIn, member.NewCutIn())
		maxInto(&values.CutOut, member.NewCutOut())
		maxInto(&values.TailOut, member.NewTailOut())
	}
	return values
}

// aggregateClassification scans members in insertion order. Creation,
// omission and rescan are shot-level facts and win outright; the in-cut
// variants and divergent member results collapse to CUT_CHANGE.
func (g *Group) aggregateClassification() Classification {
	var current Classification
	for _, member := range g.entries {
		c := member.classification
		switch c {
		case ClassificationNoLink, ClassificationNew, ClassificationReinstated,
			ClassificationOmitted, ClassificationRescan:
			return c
		case ClassificationOmittedInCut:
			c = ClassificationOmitted
		case ClassificationNewInCut:
			c = ClassificationCutChange
		}
		switch {
		case current == "":
			current = c
		case current != c:
			current = ClassificationCutChange
		}
	}
	if current == "" {
		current = ClassificationNoChange
	}
	return current
}

func minInto(target **int, value *int) {
	if value == nil {
		return
	}
	if *target == nil || *value < **target {
		*target = intCopy(value)
	}
}

func maxInto(target **int, value *int) {
	if value == nil {
		return
	}
	if *target == nil || *value > **target {
		*target = intCopy(value)
	}
}
