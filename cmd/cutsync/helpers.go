package main

import (
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"unicode"

	"github.com/mattn/go-isatty"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"cutsync/internal/cut"
	"cutsync/internal/edl"
)

const (
	ansiReset  = "\x1b[0m"
	ansiRed    = "\x1b[31m"
	ansiGreen  = "\x1b[32m"
	ansiYellow = "\x1b[33m"
	ansiBlue   = "\x1b[34m"
)

// deriveTitle picks a display title for a cut pass: the list title when the
// EDL carries one, otherwise a cleaned-up form of the file name.
func deriveTitle(list *edl.List, sourcePath string) string {
	if list != nil {
		if title := strings.TrimSpace(list.Title); title != "" {
			return title
		}
	}
	if sourcePath == "" {
		return "Untitled Cut"
	}
	base := filepath.Base(sourcePath)
	base = strings.TrimSuffix(base, filepath.Ext(base))
	cleaned := strings.Builder{}
	prevSpace := false
	for _, r := range base {
		switch {
		case unicode.IsLetter(r) || unicode.IsNumber(r):
			cleaned.WriteRune(r)
			prevSpace = false
		case unicode.IsSpace(r) || r == '-' || r == '_' || r == '.':
			if !prevSpace {
				cleaned.WriteRune(' ')
				prevSpace = true
			}
		}
	}
	title := strings.TrimSpace(cleaned.String())
	if title == "" {
		return "Untitled Cut"
	}
	return cases.Title(language.Und).String(title)
}

// displayClassification turns a stored classification into its report form,
// e.g. "cut_change" becomes "Cut Change".
func displayClassification(c cut.Classification) string {
	label := strings.ReplaceAll(string(c), "_", " ")
	return cases.Title(language.Und).String(label)
}

func classificationColor(c cut.Classification) string {
	switch c {
	case cut.ClassificationNew, cut.ClassificationReinstated:
		return ansiGreen
	case cut.ClassificationOmitted, cut.ClassificationNoLink:
		return ansiRed
	case cut.ClassificationRescan:
		return ansiYellow
	case cut.ClassificationCutChange, cut.ClassificationNewInCut, cut.ClassificationOmittedInCut:
		return ansiBlue
	default:
		return ""
	}
}

func formatFrame(value *int) string {
	if value == nil {
		return "-"
	}
	return strconv.Itoa(*value)
}

func shouldColorize(writer io.Writer) bool {
	file, ok := writer.(*os.File)
	if !ok {
		return false
	}
	fd := file.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}
