package edl

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"regexp"
	"strconv"
	"strings"

	"cutsync/internal/store"
	"cutsync/internal/timecode"
)

// ErrNoIdentifier indicates an event naming neither a shot nor a clip.
var ErrNoIdentifier = errors.New("event has neither a shot name nor a clip name")

// Event is one parsed entry from an editorial change list. Immutable after
// parsing except for the resolved version reference and a shot name filled
// in from that version.
type Event struct {
	// Order is the event number, which is also the cut order.
	Order int

	Reel string
	// ReelName is Reel with a 3-padded suffix when the same reel appears
	// more than once in the list.
	ReelName string

	SourceIn  timecode.Timecode
	SourceOut timecode.Timecode
	RecordIn  timecode.Timecode
	RecordOut timecode.Timecode

	ShotName string
	ClipName string

	// Version is attached after parsing when the clip name resolves to a
	// stored version.
	Version *store.Version

	Comments []string
}

// SourceDuration returns the event length in frames. Source-out is
// exclusive.
func (e *Event) SourceDuration() int {
	return e.SourceOut.Frame() - e.SourceIn.Frame()
}

// VersionName returns the clip name with any file extension stripped, or ""
// when the event has no clip name.
func (e *Event) VersionName() string {
	if e.ClipName == "" {
		return ""
	}
	if dot := strings.LastIndex(e.ClipName, "."); dot > 0 {
		return e.ClipName[:dot]
	}
	return e.ClipName
}

// List is a parsed change list.
type List struct {
	Title  string
	FPS    float64
	Events []*Event
}

var (
	eventRE = regexp.MustCompile(`^(\d+)\s+(\S+)\s+(\S+)\s+(\S+)(?:\s+(\d+))?\s+` +
		`(\d{2}:\d{2}:\d{2}[:;,]\d{2,3})\s+(\d{2}:\d{2}:\d{2}[:;,]\d{2,3})\s+` +
		`(\d{2}:\d{2}:\d{2}[:;,]\d{2,3})\s+(\d{2}:\d{2}:\d{2}[:;,]\d{2,3})\s*$`)
	shotCommentRE = regexp.MustCompile(`^\*(\s*COMMENT\s*:)?\s*([a-z0-9A-Z_-]+)$`)
	clipCommentRE = regexp.MustCompile(`(?i)^\*\s*FROM CLIP NAME\s*:\s*(.+)$`)
)

// ParseFile reads and parses an EDL file at the given frame rate.
func ParseFile(path string, fps float64) (*List, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open edl: %w", err)
	}
	defer file.Close()
	return Parse(file, fps)
}

// Parse reads a CMX3600 change list. Drop-frame lists are rejected.
func Parse(r io.Reader, fps float64) (*List, error) {
	list := &List{FPS: fps}
	scanner := bufio.NewScanner(r)

	var current *Event
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimRight(scanner.Text(), " \t\r")
		trimmed := strings.TrimSpace(line)
		switch {
		case trimmed == "":
			continue
		case strings.HasPrefix(trimmed, "TITLE:"):
			list.Title = strings.TrimSpace(strings.TrimPrefix(trimmed, "TITLE:"))
		case strings.HasPrefix(trimmed, "FCM:"):
			mode := strings.TrimSpace(strings.TrimPrefix(trimmed, "FCM:"))
			if strings.EqualFold(mode, "DROP FRAME") {
				return nil, fmt.Errorf("line %d: %w", lineNo, timecode.ErrDropFrame)
			}
		case strings.HasPrefix(trimmed, "*"):
			if current != nil {
				current.Comments = append(current.Comments, trimmed)
			}
		default:
			m := eventRE.FindStringSubmatch(trimmed)
			if m == nil {
				// Motion memory, audio-channel and other directive
				// lines are not needed for reconciliation.
				continue
			}
			event, err := parseEvent(m, fps)
			if err != nil {
				return nil, fmt.Errorf("line %d: %w", lineNo, err)
			}
			list.Events = append(list.Events, event)
			current = event
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read edl: %w", err)
	}

	for _, event := range list.Events {
		annotateFromComments(event)
		if event.ShotName == "" && event.VersionName() == "" {
			return nil, fmt.Errorf("event %03d: %w", event.Order, ErrNoIdentifier)
		}
	}
	assignReelNames(list.Events)
	return list, nil
}

func parseEvent(m []string, fps float64) (*Event, error) {
	order, err := strconv.Atoi(m[1])
	if err != nil {
		return nil, fmt.Errorf("event number %q: %w", m[1], err)
	}
	event := &Event{Order: order, Reel: m[2]}

	fields := []struct {
		target *timecode.Timecode
		name   string
		text   string
	}{
		{&event.SourceIn, "source in", m[6]},
		{&event.SourceOut, "source out", m[7]},
		{&event.RecordIn, "record in", m[8]},
		{&event.RecordOut, "record out", m[9]},
	}
	for _, field := range fields {
		tc, err := timecode.Parse(field.text, fps)
		if err != nil {
			return nil, fmt.Errorf("event %03d %s: %w", order, field.name, err)
		}
		*field.target = tc
	}
	return event, nil
}

// annotateFromComments fills the clip name and the shot name from the
// event's comment lines. A "* COMMENT:" line wins over a bare comment.
func annotateFromComments(event *Event) {
	var preferred, fallback string
	for _, comment := range event.Comments {
		if m := clipCommentRE.FindStringSubmatch(comment); m != nil {
			event.ClipName = strings.TrimSpace(m[1])
			continue
		}
		if m := shotCommentRE.FindStringSubmatch(comment); m != nil {
			if m[1] != "" {
				preferred = m[2]
			} else {
				fallback = m[2]
			}
		}
	}
	switch {
	case preferred != "":
		event.ShotName = preferred
	case fallback != "":
		event.ShotName = fallback
	}
}

// assignReelNames suffixes duplicated reels with a 3-padded counter so cut
// item codes stay unique within one import.
func assignReelNames(events []*Event) {
	seen := make(map[string]int, len(events))
	for _, event := range events {
		seen[event.Reel]++
	}
	counters := make(map[string]int, len(seen))
	for _, event := range events {
		if seen[event.Reel] > 1 {
			counters[event.Reel]++
			event.ReelName = fmt.Sprintf("%s%03d", event.Reel, counters[event.Reel])
		} else {
			event.ReelName = event.Reel
		}
	}
}
