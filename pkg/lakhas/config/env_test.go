package config

import (
	"errors"
	"testing"

	"github.com/cognicore/lakhas/pkg/lakhas/internalerr"
	"github.com/cognicore/lakhas/pkg/lakhas/rank"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"LAKHAS_NUM_PHRASES", "LAKHAS_LEMMATIZER", "LAKHAS_INDICATORS", "LAKHAS_LEXICON",
		"LAKHAS_STOPLIST", "LAKHAS_OUTPUT", "LAKHAS_CUE_DENSITY", "LAKHAS_KEYWORD_DENSITY",
		"LAKHAS_CONNECTIVITY",
	} {
		t.Setenv(key, "")
	}
}

func TestSettingsDefaults(t *testing.T) {
	clearEnv(t)

	s, err := settings(func(string) (string, bool) { return "", false })
	if err != nil {
		t.Fatal(err)
	}
	if s.NumPhrases != 3 {
		t.Errorf("NumPhrases = %d, want 3", s.NumPhrases)
	}
	if s.OutputPath != DefaultOutputPath {
		t.Errorf("OutputPath = %q, want %q", s.OutputPath, DefaultOutputPath)
	}
	if s.Weights != rank.DefaultWeights() {
		t.Errorf("Weights = %+v, want defaults", s.Weights)
	}
}

func TestFromEnv(t *testing.T) {
	clearEnv(t)
	t.Setenv("LAKHAS_NUM_PHRASES", "5")
	t.Setenv("LAKHAS_LEMMATIZER", "porter")
	t.Setenv("LAKHAS_OUTPUT", "out.txt")
	t.Setenv("LAKHAS_CONNECTIVITY", "2.5")

	s, err := FromEnv()
	if err != nil {
		t.Fatal(err)
	}
	if s.NumPhrases != 5 || s.Lemmatizer != "porter" || s.OutputPath != "out.txt" {
		t.Errorf("Unexpected settings %+v", s)
	}
	if s.Weights.Connectivity != 2.5 || s.Weights.Cue != 2 {
		t.Errorf("Unexpected weights %+v", s.Weights)
	}

	loader := s.Loader()
	if loader.Lemmatizer != "porter" {
		t.Errorf("Loader lemmatizer = %q, want porter", loader.Lemmatizer)
	}
}

func TestFromEnvInvalid(t *testing.T) {
	tests := map[string]string{
		"LAKHAS_NUM_PHRASES": "many",
		"LAKHAS_CUE_DENSITY": "high",
	}
	for key, value := range tests {
		clearEnv(t)
		t.Setenv(key, value)

		if _, err := FromEnv(); !errors.Is(err, internalerr.ErrInvalidConfig) {
			t.Errorf("%s=%q: error = %v, want ErrInvalidConfig", key, value, err)
		}
	}

	clearEnv(t)
	t.Setenv("LAKHAS_NUM_PHRASES", "-2")
	if _, err := FromEnv(); !errors.Is(err, internalerr.ErrInvalidConfig) {
		t.Errorf("negative phrases: error = %v, want ErrInvalidConfig", err)
	}
}

func TestFromEnvFile(t *testing.T) {
	clearEnv(t)
	path := writeFile(t, "lakhas.env", "LAKHAS_NUM_PHRASES=7\nLAKHAS_LEXICON=/tmp/lex.yaml\n")

	s, err := FromEnvFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if s.NumPhrases != 7 || s.LexiconPath != "/tmp/lex.yaml" {
		t.Errorf("Unexpected settings %+v", s)
	}
}

func TestFromEnvFileProcessWins(t *testing.T) {
	clearEnv(t)
	t.Setenv("LAKHAS_NUM_PHRASES", "2")
	path := writeFile(t, "lakhas.env", "LAKHAS_NUM_PHRASES=7\n")

	s, err := FromEnvFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if s.NumPhrases != 2 {
		t.Errorf("NumPhrases = %d, want process value 2", s.NumPhrases)
	}
}

func TestFromEnvFileMissing(t *testing.T) {
	if _, err := FromEnvFile("/nonexistent/.env"); err == nil {
		t.Error("Should error on missing env file")
	}
}
