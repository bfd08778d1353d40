package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func run(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	t.Setenv("LAKHAS_NUM_PHRASES", "")
	t.Setenv("LAKHAS_OUTPUT", "")

	root := newRootCmd()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetIn(strings.NewReader(stdin))
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func TestSummarizeWritesFile(t *testing.T) {
	outPath := filepath.Join(t.TempDir(), "summary.txt")

	got, err := run(t, "", "summarize", "--in", "../../testdata/pets.txt", "-n", "2", "--out", outPath)
	if err != nil {
		t.Fatalf("summarize failed: %v", err)
	}

	if !strings.Contains(got, originalBanner) || !strings.Contains(got, summaryBanner) {
		t.Errorf("Output missing banners:\n%s", got)
	}
	if !strings.Contains(got, "The cat sat. The dog sat.") {
		t.Errorf("Output should echo the original text:\n%s", got)
	}

	saved, err := os.ReadFile(outPath)
	if err != nil {
		t.Fatalf("Summary file not written: %v", err)
	}
	if strings.Count(string(saved), "\n\n") != 2 {
		t.Errorf("Saved summary should hold 2 sentences, got %q", saved)
	}
	if !strings.Contains(got, string(saved)) {
		t.Errorf("Printed output should contain the saved summary %q", saved)
	}
}

func TestSummarizeQuietStdinNoWrite(t *testing.T) {
	dir := t.TempDir()
	outPath := filepath.Join(dir, "summary.txt")

	got, err := run(t, "The cat sat. The dog sat. The cat and dog played.",
		"summarize", "-q", "--no-write", "-n", "1", "--out", outPath)
	if err != nil {
		t.Fatalf("summarize failed: %v", err)
	}

	if strings.Contains(got, originalBanner) {
		t.Errorf("Quiet output should not contain banners:\n%s", got)
	}
	if strings.Count(got, "\n\n") != 1 {
		t.Errorf("Expected one summary sentence, got %q", got)
	}
	if _, err := os.Stat(outPath); !os.IsNotExist(err) {
		t.Errorf("--no-write should not create %s", outPath)
	}
}

func TestSummarizeHTMLInput(t *testing.T) {
	got, err := run(t, "", "summarize", "--in", "../../testdata/screening.html", "-q", "--no-write",
		"--stoplist", "../../testdata/stoplist.yaml")
	if err != nil {
		t.Fatalf("summarize failed: %v", err)
	}
	if strings.Contains(got, "console.log") {
		t.Errorf("Script content leaked into summary: %q", got)
	}
	if strings.TrimSpace(got) == "" {
		t.Error("Expected a non-empty summary")
	}
}

func TestSummarizeNegativePhrases(t *testing.T) {
	if _, err := run(t, "", "summarize", "--in", "../../testdata/pets.txt", "--no-write", "--phrases=-1"); err == nil {
		t.Error("Expected error for negative phrase count")
	}
}

func TestSummarizeUnknownLemmatizer(t *testing.T) {
	if _, err := run(t, "", "summarize", "--in", "../../testdata/pets.txt", "--no-write", "--lemmatizer", "wordnet"); err == nil {
		t.Error("Expected error for unknown lemmatizer")
	}
}

func TestRankCommand(t *testing.T) {
	got, err := run(t, "", "rank", "--in", "../../testdata/pets.txt", "-n", "1", "--title", "Pets")
	if err != nil {
		t.Fatalf("rank failed: %v", err)
	}

	for _, want := range []string{" 1. [sentence", " 3. [sentence", "Card ", ": Pets", "Top terms:"} {
		if !strings.Contains(got, want) {
			t.Errorf("rank output missing %q:\n%s", want, got)
		}
	}
}

func TestSummarizeEnvFile(t *testing.T) {
	envPath := filepath.Join(t.TempDir(), "lakhas.env")
	if err := os.WriteFile(envPath, []byte("LAKHAS_NUM_PHRASES=1\n"), 0644); err != nil {
		t.Fatal(err)
	}

	got, err := run(t, "", "summarize", "--in", "../../testdata/pets.txt", "-q", "--no-write", "--env-file", envPath)
	if err != nil {
		t.Fatalf("summarize failed: %v", err)
	}
	if strings.Count(got, "\n\n") != 1 {
		t.Errorf("Env file should limit the summary to one sentence, got %q", got)
	}

	// explicit flags still win over the env file
	got, err = run(t, "", "summarize", "--in", "../../testdata/pets.txt", "-q", "--no-write", "--env-file", envPath, "-n", "2")
	if err != nil {
		t.Fatalf("summarize failed: %v", err)
	}
	if strings.Count(got, "\n\n") != 2 {
		t.Errorf("-n 2 should override the env file, got %q", got)
	}
}

func TestSummarizeMissingEnvFile(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "absent.env")
	if _, err := run(t, "", "summarize", "--in", "../../testdata/pets.txt", "--no-write", "--env-file", missing); err == nil {
		t.Error("Expected error for a missing env file")
	}
}

func TestRankShowsStoplistAndCueCategories(t *testing.T) {
	got, err := run(t, "", "rank", "--in", "../../testdata/screening.html",
		"--stoplist", "../../testdata/stoplist.yaml")
	if err != nil {
		t.Fatalf("rank failed: %v", err)
	}

	for _, want := range []string{"Stopwords added: study", "significant (bonus)"} {
		if !strings.Contains(got, want) {
			t.Errorf("rank output missing %q:\n%s", want, got)
		}
	}
	if strings.Contains(got, "Stopwords removed:") {
		t.Errorf("No stopwords were removed:\n%s", got)
	}

	stopPath := filepath.Join(t.TempDir(), "stoplist.yaml")
	if err := os.WriteFile(stopPath, []byte("add: []\nremove: [not]\n"), 0644); err != nil {
		t.Fatal(err)
	}
	got, err = run(t, "", "rank", "--in", "../../testdata/pets.txt", "--stoplist", stopPath)
	if err != nil {
		t.Fatalf("rank failed: %v", err)
	}
	if !strings.Contains(got, "Stopwords removed: not") {
		t.Errorf("rank output missing removed stopword:\n%s", got)
	}
	if strings.Contains(got, "Stopwords added:") {
		t.Errorf("No stopwords were added:\n%s", got)
	}
}
