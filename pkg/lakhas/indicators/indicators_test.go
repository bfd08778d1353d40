package indicators

import (
	"errors"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/cognicore/lakhas/pkg/lakhas/internalerr"
)

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestDefaultSetSizes(t *testing.T) {
	set := Default()

	// "noteworthy" is listed twice and collapses to one cue
	if got := len(set.Bonus()); got != 24 {
		t.Errorf("Expected 24 bonus cues, got %d", got)
	}
	if got := len(set.Stigma()); got != 25 {
		t.Errorf("Expected 25 stigma cues, got %d", got)
	}
	if got := len(set.Neutral()); got != 30 {
		t.Errorf("Expected 30 neutral cues, got %d", got)
	}
	// keywords keep their repeats
	if got := len(set.Keywords()); got != 93 {
		t.Errorf("Expected 93 keyword listings, got %d", got)
	}
}

func TestCuePhraseWeight(t *testing.T) {
	set := Default()

	tests := []struct {
		name     string
		sentence string
		density  float64
		want     float64
	}{
		{"bonus", "a significant result", 2, 4},
		{"stigma", "one limitation remains", 2, -2},
		{"neutral", "the methodology was sound", 2, 0},
		{"no cue", "cat sit .", 2, 0},
		// advantageous (+2), disadvantage (-1), disadvantageous (-1)
		{"overlapping substrings", "disadvantageous results", 2, 0},
		{"bonus and stigma", "an important limitation", 1, 1},
		{"density scales", "a significant and notable result", 0.5, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := set.CuePhraseWeight(tt.sentence, tt.density)
			if !almostEqual(got, tt.want) {
				t.Errorf("CuePhraseWeight(%q, %v) = %v, want %v", tt.sentence, tt.density, got, tt.want)
			}
		})
	}
}

func TestKeywordWeight(t *testing.T) {
	set := Default()

	tests := []struct {
		name     string
		sentence string
		density  float64
		want     float64
	}{
		{"none", "cat dog play .", 1.5, 0},
		{"two keywords", "the patient data", 1, 3},
		// substring match: "care" inside "scarecrow"
		{"substring", "scarecrow", 1, 1.5},
		// screening once plus screen listed three times
		{"repeated listings", "screening", 1, 6},
		{"density", "screening", 1.5, 9},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := set.KeywordWeight(tt.sentence, tt.density)
			if !almostEqual(got, tt.want) {
				t.Errorf("KeywordWeight(%q, %v) = %v, want %v", tt.sentence, tt.density, got, tt.want)
			}
		})
	}
}

func TestMatches(t *testing.T) {
	set := Default()

	cues := set.MatchedCues("an important limitation")
	if len(cues) != 2 {
		t.Fatalf("Expected 2 matched cues, got %v", cues)
	}
	if cues[0].Phrase != "important" || cues[0].Category != Bonus {
		t.Errorf("First cue = %+v, want important/bonus", cues[0])
	}
	if cues[1].Phrase != "limitation" || cues[1].Category != Stigma {
		t.Errorf("Second cue = %+v, want limitation/stigma", cues[1])
	}

	keywords := set.MatchedKeywords("screening")
	if len(keywords) != 2 || keywords[0] != "screening" || keywords[1] != "screen" {
		t.Errorf("MatchedKeywords(screening) = %v, want [screening screen]", keywords)
	}
}

func TestNewRejectsCrossCategoryCue(t *testing.T) {
	_, err := New([]string{"key"}, []string{"key"}, nil, nil)
	if !errors.Is(err, internalerr.ErrInvalidConfig) {
		t.Errorf("Expected ErrInvalidConfig, got %v", err)
	}
}

func TestCategoryOf(t *testing.T) {
	set, err := New([]string{"good"}, []string{"bad"}, []string{"plain"}, []string{"gene"})
	if err != nil {
		t.Fatal(err)
	}

	for phrase, want := range map[string]Category{"good": Bonus, "bad": Stigma, "plain": Neutral} {
		got, ok := set.CategoryOf(phrase)
		if !ok || got != want {
			t.Errorf("CategoryOf(%q) = %v, %v; want %v", phrase, got, ok, want)
		}
	}
	if _, ok := set.CategoryOf("gene"); ok {
		t.Error("Keywords are not cue phrases")
	}
}

func TestLoadFromYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "indicators.yaml")
	content := `bonus: [novel]
stigma: [caveat]
neutral: [sample]
keywords: [enzyme, enzyme]
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	set, err := LoadFromYAML(path)
	if err != nil {
		t.Fatalf("LoadFromYAML failed: %v", err)
	}

	if got := set.CuePhraseWeight("a novel caveat", 1); !almostEqual(got, 1) {
		t.Errorf("CuePhraseWeight = %v, want 1", got)
	}
	if got := set.KeywordWeight("enzyme assay", 1); !almostEqual(got, 3) {
		t.Errorf("KeywordWeight = %v, want 3", got)
	}
}

func TestCopiesAreIndependent(t *testing.T) {
	set := Default()
	kws := set.Keywords()
	kws[0] = "mutated"
	if set.Keywords()[0] == "mutated" {
		t.Error("Keywords() must return a copy")
	}
}
