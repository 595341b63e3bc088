package main

import (
	"testing"
)

const sampleEDL = `TITLE: SEQ01_CUT
FCM: NON-DROP FRAME

001  R1 V     C        01:00:00:00 01:00:00:20 01:00:00:00 01:00:00:20
* COMMENT: SH010

002  R2 V     C        02:00:00:00 02:00:01:00 01:00:00:20 01:00:01:20
* COMMENT: SH020
`

func TestDiffCommandReportsNewShots(t *testing.T) {
	configPath := writeCLIConfig(t)
	edlPath := writeEDL(t, sampleEDL)

	out, err := runCLI(t, "diff", edlPath, "--sequence", "SEQ01", "--config", configPath)
	if err != nil {
		t.Fatalf("diff: %v\n%s", err, out)
	}
	requireContains(t, out, "SH010")
	requireContains(t, out, "SH020")
	requireContains(t, out, "New")
	requireContains(t, out, "2 shots in cut")
}

func TestImportCommandCreatesCutRevision(t *testing.T) {
	configPath := writeCLIConfig(t)
	edlPath := writeEDL(t, sampleEDL)

	out, err := runCLI(t, "import", edlPath, "--sequence", "SEQ01", "--config", configPath)
	if err != nil {
		t.Fatalf("import: %v\n%s", err, out)
	}
	requireContains(t, out, "SEQ01_CUT_001")
	requireContains(t, out, "revision 1")

	out, err = runCLI(t, "cuts", "--sequence", "SEQ01", "--items", "--config", configPath)
	if err != nil {
		t.Fatalf("cuts: %v\n%s", err, out)
	}
	requireContains(t, out, "SEQ01_CUT_001")
	requireContains(t, out, "2 cut items")

	out, err = runCLI(t, "shots", "--sequence", "SEQ01", "--config", configPath)
	if err != nil {
		t.Fatalf("shots: %v\n%s", err, out)
	}
	requireContains(t, out, "SH010")
	requireContains(t, out, "SH020")
	requireContains(t, out, "2 shots")
}

func TestImportCommandHonorsCutCodeFlag(t *testing.T) {
	configPath := writeCLIConfig(t)
	edlPath := writeEDL(t, sampleEDL)

	out, err := runCLI(t, "import", edlPath,
		"--sequence", "SEQ01",
		"--cut-code", "SEQ01_TRAILER",
		"--description", "trailer pull",
		"--config", configPath)
	if err != nil {
		t.Fatalf("import: %v\n%s", err, out)
	}
	requireContains(t, out, "SEQ01_TRAILER")

	out, err = runCLI(t, "cuts", "--sequence", "SEQ01", "--config", configPath)
	if err != nil {
		t.Fatalf("cuts: %v\n%s", err, out)
	}
	requireContains(t, out, "SEQ01_TRAILER")
	requireContains(t, out, "trailer pull")
}

func TestReportCommandPrintsSections(t *testing.T) {
	configPath := writeCLIConfig(t)
	edlPath := writeEDL(t, sampleEDL)

	out, err := runCLI(t, "report", edlPath,
		"--sequence", "SEQ01",
		"--link", "https://tracker.example/SEQ01",
		"--config", configPath)
	if err != nil {
		t.Fatalf("report: %v\n%s", err, out)
	}
	requireContains(t, out, "Sequence Cut Summary changes on SEQ01_CUT")
	requireContains(t, out, "2 New Shots")
	requireContains(t, out, "https://tracker.example/SEQ01")
}

func TestShotsCommandWithoutRecords(t *testing.T) {
	configPath := writeCLIConfig(t)

	out, err := runCLI(t, "shots", "--sequence", "SEQ99", "--config", configPath)
	if err != nil {
		t.Fatalf("shots: %v\n%s", err, out)
	}
	requireContains(t, out, "No shots recorded for sequence SEQ99")
}

func TestDiffCommandRequiresSequence(t *testing.T) {
	configPath := writeCLIConfig(t)
	edlPath := writeEDL(t, sampleEDL)

	if _, err := runCLI(t, "diff", edlPath, "--config", configPath); err == nil {
		t.Fatal("expected missing --sequence to fail")
	}
}
