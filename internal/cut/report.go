package cut

import (
	"fmt"
	"sort"
	"strings"
)

const reportBodyFormat = `Changes in %s

Links: %s

The changes in %s are as follows:

%d New Shots
%s

%d Omitted Shots
%s

%d Reinstated Shot
%s

%d Cut Changes
%s

%d Rescan Needed
%s
`

type reportLine struct {
	text  string
	order int
}

// Report renders the textual change report. The subject names the cut; the
// body groups entry names by interpreted classification, with reasons
// appended for cut changes and rescans. Sections sort by new cut order,
// omitted entries by their prior order since they have no new one.
func (s *Summary) Report(title string, links []string) (subject, body string) {
	var newShots, omitted, reinstated, cutChanges, rescans []reportLine
	for _, entry := range s.Entries() {
		line := reportLine{text: entry.name, order: entryOrder(entry)}
		switch entry.InterpretedClassification() {
		case ClassificationNew:
			newShots = append(newShots, line)
		case ClassificationOmitted:
			omitted = append(omitted, line)
		case ClassificationReinstated:
			reinstated = append(reinstated, line)
		case ClassificationCutChange:
			line.text = withReasons(entry)
			cutChanges = append(cutChanges, line)
		case ClassificationRescan:
			line.text = withReasons(entry)
			rescans = append(rescans, line)
		}
	}

	subject = fmt.Sprintf("Sequence Cut Summary changes on %s", title)
	body = fmt.Sprintf(reportBodyFormat,
		title,
		strings.Join(links, " "),
		title,
		len(newShots), renderLines(newShots),
		len(omitted), renderLines(omitted),
		len(reinstated), renderLines(reinstated),
		len(cutChanges), renderLines(cutChanges),
		len(rescans), renderLines(rescans),
	)
	return subject, body
}

// entryOrder is the sort key: new cut order when an edit exists, else the
// prior cut order.
func entryOrder(entry *Difference) int {
	if entry.edit != nil {
		return entry.edit.Order
	}
	if order := entry.CutOrder(); order != nil {
		return *order
	}
	return 0
}

func withReasons(entry *Difference) string {
	if len(entry.reasons) == 0 {
		return entry.name
	}
	return fmt.Sprintf("%s - %s", entry.name, strings.Join(entry.reasons, ", "))
}

func renderLines(lines []reportLine) string {
	sort.SliceStable(lines, func(i, j int) bool { return lines[i].order < lines[j].order })
	texts := make([]string, 0, len(lines))
	for _, line := range lines {
		texts = append(texts, line.text)
	}
	return strings.Join(texts, "\n")
}
