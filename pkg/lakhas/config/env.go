package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"

	"github.com/cognicore/lakhas/pkg/lakhas/internalerr"
	"github.com/cognicore/lakhas/pkg/lakhas/rank"
)

// DefaultOutputPath is where the command writes the summary
const DefaultOutputPath = "Summarized Text.txt"

// Settings are the run settings read from the environment
type Settings struct {
	NumPhrases     int
	Lemmatizer     string
	IndicatorsPath string
	LexiconPath    string
	StoplistPath   string
	OutputPath     string
	Weights        rank.Weights
}

// Loader returns a component loader for these settings
func (s Settings) Loader() *Loader {
	return &Loader{
		IndicatorsPath: s.IndicatorsPath,
		LexiconPath:    s.LexiconPath,
		StoplistPath:   s.StoplistPath,
		Lemmatizer:     s.Lemmatizer,
	}
}

// FromEnv reads LAKHAS_* variables after loading a .env file from the
// working directory, if there is one. Variables already set win over the
// file.
func FromEnv() (Settings, error) {
	_ = godotenv.Load()
	return settings(os.LookupEnv)
}

// FromEnvFile reads settings from the given env file, with variables
// already set in the process taking precedence. The process environment
// is not modified.
func FromEnvFile(path string) (Settings, error) {
	values, err := godotenv.Read(path)
	if err != nil {
		return Settings{}, fmt.Errorf("read env file: %w", err)
	}
	return settings(func(key string) (string, bool) {
		if v, ok := os.LookupEnv(key); ok && v != "" {
			return v, true
		}
		v, ok := values[key]
		return v, ok
	})
}

func settings(lookup func(string) (string, bool)) (Settings, error) {
	get := func(key, fallback string) string {
		if v, ok := lookup(key); ok && v != "" {
			return v
		}
		return fallback
	}

	n, err := getInt(get, "LAKHAS_NUM_PHRASES", 3)
	if err != nil {
		return Settings{}, err
	}
	if n < 0 {
		return Settings{}, fmt.Errorf("%w: LAKHAS_NUM_PHRASES must not be negative, got %d", internalerr.ErrInvalidConfig, n)
	}

	def := rank.DefaultWeights()
	var w rank.Weights
	if w.Cue, err = getFloat(get, "LAKHAS_CUE_DENSITY", def.Cue); err != nil {
		return Settings{}, err
	}
	if w.Keyword, err = getFloat(get, "LAKHAS_KEYWORD_DENSITY", def.Keyword); err != nil {
		return Settings{}, err
	}
	if w.Connectivity, err = getFloat(get, "LAKHAS_CONNECTIVITY", def.Connectivity); err != nil {
		return Settings{}, err
	}

	return Settings{
		NumPhrases:     n,
		Lemmatizer:     get("LAKHAS_LEMMATIZER", ""),
		IndicatorsPath: get("LAKHAS_INDICATORS", ""),
		LexiconPath:    get("LAKHAS_LEXICON", ""),
		StoplistPath:   get("LAKHAS_STOPLIST", ""),
		OutputPath:     get("LAKHAS_OUTPUT", DefaultOutputPath),
		Weights:        w,
	}, nil
}

func getInt(get func(string, string) string, key string, fallback int) (int, error) {
	raw := get(key, "")
	if raw == "" {
		return fallback, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%w: %s=%q is not an integer", internalerr.ErrInvalidConfig, key, raw)
	}
	return v, nil
}

func getFloat(get func(string, string) string, key string, fallback float64) (float64, error) {
	raw := get(key, "")
	if raw == "" {
		return fallback, nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %s=%q is not a number", internalerr.ErrInvalidConfig, key, raw)
	}
	return v, nil
}
