package cut

import (
	"errors"
	"fmt"
	"strings"

	"cutsync/internal/edl"
	"cutsync/internal/store"
	"cutsync/internal/timecode"
)

// ErrNoData indicates an Add call carrying none of the three records a
// difference can be built from.
var ErrNoData = errors.New("a difference needs a shot, an edit event or a cut item")

// ErrUnknownShotKey indicates a rename of an entry the summary does not
// hold.
var ErrUnknownShotKey = errors.New("unknown shot key")

// ShotResolver looks up a shot by code when a rename targets a key the
// summary has never seen. Implementations search the current sequence
// first, then globally.
type ShotResolver interface {
	ResolveShot(code string) (*store.Shot, error)
}

// EventKind labels one summary mutation.
type EventKind string

const (
	EventAdded                 EventKind = "added"
	EventRemoved               EventKind = "removed"
	EventClassificationChanged EventKind = "classification_changed"
	EventTotalsChanged         EventKind = "totals_changed"
)

// Event is one queued mutation notification. The caller drains events after
// each Add or Rename; the engine never calls back into presentation code.
type Event struct {
	Kind  EventKind
	Key   string
	Entry *Difference

	// Previous carries the prior classification on classification-change
	// events.
	Previous Classification
}

// Summary owns every difference group for one reconciliation pass, keyed by
// lower-cased shot name, and maintains running per-classification counters.
type Summary struct {
	settings Settings
	resolver ShotResolver

	groups map[string]*Group
	keys   []string

	counts     map[Classification]int
	totalCount int

	events []Event
}

// NewSummary builds an empty summary for one pass. The resolver may be nil
// when rename-driven shot lookups are not needed.
func NewSummary(settings Settings, resolver ShotResolver) *Summary {
	return &Summary{
		settings: settings,
		resolver: resolver,
		groups:   make(map[string]*Group),
		counts:   make(map[Classification]int),
	}
}

// Settings returns the pass settings.
func (s *Summary) Settings() Settings { return s.settings }

// Groups returns the summary's groups in first-seen key order.
func (s *Summary) Groups() []*Group {
	groups := make([]*Group, 0, len(s.keys))
	for _, key := range s.keys {
		groups = append(groups, s.groups[key])
	}
	return groups
}

// Group returns the group under the given shot name, nil when absent.
func (s *Summary) Group(name string) *Group {
	return s.groups[strings.ToLower(name)]
}

// Entries returns every difference across all groups, in group order.
func (s *Summary) Entries() []*Difference {
	var entries []*Difference
	for _, key := range s.keys {
		entries = append(entries, s.groups[key].entries...)
	}
	return entries
}

// Count returns the number of entries currently holding the classification.
func (s *Summary) Count(classification Classification) int {
	return s.counts[classification]
}

// RescansCount returns the number of entries needing a rescan.
func (s *Summary) RescansCount() int { return s.counts[ClassificationRescan] }

// RepeatedCount returns the number of entries flagged as repeats.
func (s *Summary) RepeatedCount() int {
	count := 0
	for _, key := range s.keys {
		for _, entry := range s.groups[key].entries {
			if entry.repeated {
				count++
			}
		}
	}
	return count
}

// TotalCount returns the number of entries still in the cut, excluding the
// omitted classifications.
func (s *Summary) TotalCount() int { return s.totalCount }

// DrainEvents returns and clears the queued mutation notifications.
func (s *Summary) DrainEvents() []Event {
	events := s.events
	s.events = nil
	return events
}

// Add reconciles one entry into the summary. At least one of shot, edit and
// item must be given. Unnamed entries get a synthetic key derived from
// their cut order so they are never grouped as repeats of each other.
func (s *Summary) Add(name string, shot *store.Shot, edit *edl.Event, item *store.CutItem) (*Difference, error) {
	if shot == nil && edit == nil && item == nil {
		return nil, ErrNoData
	}
	entry, err := newDifference(name, shot, edit, item, &s.settings)
	if err != nil {
		return nil, err
	}
	entry.summary = s

	key := s.keyFor(name, edit, item)
	s.attach(key, entry)
	entry.CheckAndSetChanges()
	s.recomputeCounts()

	s.events = append(s.events,
		Event{Kind: EventAdded, Key: key, Entry: entry},
		Event{Kind: EventTotalsChanged})
	return entry, nil
}

func (s *Summary) keyFor(name string, edit *edl.Event, item *store.CutItem) string {
	if name != "" {
		return strings.ToLower(name)
	}
	order := len(s.keys) + 1
	if edit != nil {
		order = edit.Order
	} else if item != nil && item.CutOrder != nil {
		order = *item.CutOrder
	}
	return fmt.Sprintf("_no_shot_name_%d", order)
}

// attach inserts the entry into the group for key, creating the group when
// absent, and keeps the repeated flags in step with the group size.
func (s *Summary) attach(key string, entry *Difference) {
	group := s.groups[key]
	if group == nil {
		group = newGroup(key)
		s.groups[key] = group
		s.keys = append(s.keys, key)
	}
	group.insert(entry)
	s.refreshGroup(group)
}

// refreshGroup re-derives the repeated flags and classifications of every
// member. Inserts and removals shift the group extrema, which feed each
// sibling's offset arithmetic.
func (s *Summary) refreshGroup(group *Group) {
	repeated := group.Len() > 1
	for _, member := range group.entries {
		member.setRepeated(repeated)
	}
	for _, member := range group.entries {
		member.CheckAndSetChanges()
	}
}

// detach removes the entry from its group. An emptied group is dropped; a
// group left with one member has that member's repeated flag cleared.
func (s *Summary) detach(entry *Difference) {
	group := entry.group
	if group == nil || !group.remove(entry) {
		return
	}
	// A detached entry has no siblings to offset against; value derivations
	// on it must not reach back into the old group's extrema.
	entry.repeated = false
	if group.Len() == 0 {
		delete(s.groups, group.key)
		for i, key := range s.keys {
			if key == group.key {
				s.keys = append(s.keys[:i], s.keys[i+1:]...)
				break
			}
		}
		return
	}
	s.refreshGroup(group)
}

// Remove drops an entry from the summary entirely. Its siblings are
// re-checked; an emptied group disappears.
func (s *Summary) Remove(entry *Difference) error {
	if entry.group == nil || s.groups[entry.group.key] != entry.group {
		return fmt.Errorf("%w: %q", ErrUnknownShotKey, entry.name)
	}
	key := entry.group.key
	s.detach(entry)
	entry.summary = nil
	s.recomputeCounts()
	s.events = append(s.events,
		Event{Kind: EventRemoved, Key: key, Entry: entry},
		Event{Kind: EventTotalsChanged})
	return nil
}

// Rename moves an entry to a new shot key. The old identity stays visible:
// when the entry carried both a shot and a prior cut item, a replacement
// entry is left under the old key on the omitted path. Under the new key
// the entry either evicts the best-matching unlinked sibling and inherits
// its records, joins the group as a repeat, or starts a fresh group linked
// to whatever shot the resolver finds.
func (s *Summary) Rename(entry *Difference, newName string) error {
	if err := entry.renameable(); err != nil {
		return err
	}
	if entry.group == nil || s.groups[entry.group.key] != entry.group {
		return fmt.Errorf("%w: %q", ErrUnknownShotKey, entry.name)
	}
	oldKey := entry.group.key
	oldName := entry.name
	oldShot, oldItem := entry.shot, entry.cutItem

	s.detach(entry)
	s.events = append(s.events, Event{Kind: EventRemoved, Key: oldKey, Entry: entry})

	if oldShot != nil && oldItem != nil {
		replacement, err := newDifference(oldName, oldShot, nil, oldItem, &s.settings)
		if err != nil {
			return err
		}
		replacement.summary = s
		s.attach(oldKey, replacement)
		replacement.CheckAndSetChanges()
		s.events = append(s.events, Event{Kind: EventAdded, Key: oldKey, Entry: replacement})
	}

	entry.name = newName
	entry.shot, entry.cutItem, entry.version = nil, nil, nil
	entry.priorTCIn, entry.priorTCOut = timecode.Timecode{}, timecode.Timecode{}

	newKey := strings.ToLower(newName)
	if group := s.groups[newKey]; group != nil {
		if evicted := s.bestEvictee(group, entry); evicted != nil {
			entry.shot = evicted.shot
			entry.cutItem = evicted.cutItem
			entry.version = evicted.version
			entry.priorTCIn, entry.priorTCOut = evicted.priorTCIn, evicted.priorTCOut
			s.detach(evicted)
			s.events = append(s.events, Event{Kind: EventRemoved, Key: newKey, Entry: evicted})
		}
		s.attach(newKey, entry)
	} else {
		if s.resolver != nil {
			shot, err := s.resolver.ResolveShot(newName)
			if err != nil {
				return fmt.Errorf("resolve shot %q: %w", newName, err)
			}
			entry.shot = shot
		}
		s.attach(newKey, entry)
	}

	entry.CheckAndSetChanges()
	s.recomputeCounts()
	s.events = append(s.events,
		Event{Kind: EventAdded, Key: newKey, Entry: entry},
		Event{Kind: EventTotalsChanged})
	return nil
}

// bestEvictee scores the group's edit-less members against the incoming
// entry and returns the best one, nil when the group has none. Ties keep
// the earliest member.
func (s *Summary) bestEvictee(group *Group, entry *Difference) *Difference {
	var best *Difference
	bestScore := -1
	for _, member := range group.entries {
		if member.edit != nil {
			continue
		}
		if score := entry.MatchingScore(member); score > bestScore {
			best, bestScore = member, score
		}
	}
	return best
}

// recomputeCounts rebuilds every counter from scratch. Bulk rebuild after
// each mutation keeps one auditable source of truth.
func (s *Summary) recomputeCounts() {
	counts := make(map[Classification]int, len(s.counts))
	total := 0
	for _, key := range s.keys {
		for _, entry := range s.groups[key].entries {
			counts[entry.classification]++
			if !entry.classification.Omits() {
				total++
			}
		}
	}
	s.counts = counts
	s.totalCount = total
}

func (s *Summary) classificationChanged(entry *Difference, previous Classification) {
	s.events = append(s.events, Event{
		Kind:     EventClassificationChanged,
		Key:      entry.groupKey(),
		Entry:    entry,
		Previous: previous,
	})
}

func (d *Difference) groupKey() string {
	if d.group == nil {
		return ""
	}
	return d.group.key
}
