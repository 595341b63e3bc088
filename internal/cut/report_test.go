package cut

import (
	"strings"
	"testing"

	"cutsync/internal/config"
)

func TestReportGroupsNamesByClassification(t *testing.T) {
	summary := NewSummary(testSettings(config.MappingAbsolute), nil)

	if _, err := summary.Add("SH050", nil, testEvent(t, 3, "SH050", 2000, 10), nil); err != nil {
		t.Fatalf("Add returned error: %v", err)
	}

	omittedShot := testShot("SH010")
	omittedShot.ID = 11
	if _, err := summary.Add("SH010", omittedShot, nil, testCutItem(omittedShot.ID)); err != nil {
		t.Fatalf("Add returned error: %v", err)
	}

	rescanShot := testShot("SH020")
	rescanShot.ID = 12
	rescanEdit := testEvent(t, 1, "SH020", 1004, 20)
	rescanEdit.SourceIn = mustTC(t, "00:00:41:20")
	rescanEdit.SourceOut = mustTC(t, "00:00:42:16")
	if _, err := summary.Add("SH020", rescanShot, rescanEdit, testCutItem(rescanShot.ID)); err != nil {
		t.Fatalf("Add returned error: %v", err)
	}

	trimShot := testShot("SH030")
	trimShot.ID = 13
	trimEdit := testEvent(t, 2, "SH030", 1009, 16)
	trimEdit.SourceIn = mustTC(t, "00:00:42:01")
	trimEdit.SourceOut = mustTC(t, "00:00:42:17")
	if _, err := summary.Add("SH030", trimShot, trimEdit, testCutItem(trimShot.ID)); err != nil {
		t.Fatalf("Add returned error: %v", err)
	}

	subject, body := summary.Report("SEQ01 Cut 002", []string{"https://tracker.example/cuts/2"})
	if subject != "Sequence Cut Summary changes on SEQ01 Cut 002" {
		t.Errorf("subject = %q", subject)
	}
	for _, want := range []string{
		"1 New Shots\nSH050",
		"1 Omitted Shots\nSH010",
		"0 Reinstated Shot\n",
		"1 Cut Changes\nSH030 - Tail trimmed 4 frs",
		"1 Rescan Needed\nSH020 - Head extended 5 frs",
		"https://tracker.example/cuts/2",
	} {
		if !strings.Contains(body, want) {
			t.Errorf("report body missing %q:\n%s", want, body)
		}
	}
}

func TestReportSortsByCutOrder(t *testing.T) {
	summary := NewSummary(testSettings(config.MappingAutomatic), nil)
	if _, err := summary.Add("SH300", nil, testEvent(t, 3, "SH300", 3000, 10), nil); err != nil {
		t.Fatalf("Add returned error: %v", err)
	}
	if _, err := summary.Add("SH100", nil, testEvent(t, 1, "SH100", 1000, 10), nil); err != nil {
		t.Fatalf("Add returned error: %v", err)
	}
	if _, err := summary.Add("SH200", nil, testEvent(t, 2, "SH200", 2000, 10), nil); err != nil {
		t.Fatalf("Add returned error: %v", err)
	}

	_, body := summary.Report("SEQ01 Cut 003", nil)
	if !strings.Contains(body, "3 New Shots\nSH100\nSH200\nSH300") {
		t.Errorf("new shots not sorted by cut order:\n%s", body)
	}
}
