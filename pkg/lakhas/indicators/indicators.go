// Package indicators holds the lexical reference data used to boost or
// penalize sentences: cue phrases in three categories and a keyword list.
//
// A Set is immutable once built and safe for concurrent use.
package indicators

import (
	_ "embed"
	"fmt"
	"os"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/cognicore/lakhas/pkg/lakhas/internalerr"
)

//go:embed default.yaml
var defaultYAML []byte

// Category classifies a cue phrase.
type Category int

const (
	Neutral Category = iota
	Bonus
	Stigma
)

func (c Category) String() string {
	switch c {
	case Bonus:
		return "bonus"
	case Stigma:
		return "stigma"
	default:
		return "neutral"
	}
}

// Per-hit contributions before density is applied.
const (
	BonusWeight   = 2.0
	StigmaWeight  = -1.0
	NeutralWeight = 0.0
	KeywordWeight = 1.5
)

// Cue is one cue phrase with its category.
type Cue struct {
	Phrase   string
	Category Category
}

// Set is the combined cue phrase and keyword reference data.
type Set struct {
	cues     []Cue // bonus, then stigma, then neutral; deduplicated
	category map[string]Category
	keywords []string // multiset: repeated entries weigh more
}

// New builds a Set. Repeated phrases inside one cue category collapse to a
// single entry; a phrase listed in two categories is a configuration error.
// Keywords are kept exactly as given, repeats included.
func New(bonus, stigma, neutral, keywords []string) (*Set, error) {
	s := &Set{
		category: make(map[string]Category),
		keywords: make([]string, 0, len(keywords)),
	}

	add := func(phrases []string, c Category) error {
		for _, p := range phrases {
			if p == "" {
				continue
			}
			if prev, ok := s.category[p]; ok {
				if prev != c {
					return fmt.Errorf("%w: cue %q listed as both %s and %s", internalerr.ErrInvalidConfig, p, prev, c)
				}
				continue
			}
			s.category[p] = c
			s.cues = append(s.cues, Cue{Phrase: p, Category: c})
		}
		return nil
	}

	if err := add(bonus, Bonus); err != nil {
		return nil, err
	}
	if err := add(stigma, Stigma); err != nil {
		return nil, err
	}
	if err := add(neutral, Neutral); err != nil {
		return nil, err
	}

	for _, k := range keywords {
		if k != "" {
			s.keywords = append(s.keywords, k)
		}
	}

	return s, nil
}

var (
	defaultOnce sync.Once
	defaultSet  *Set
)

// Default returns the built-in indicator set, parsed once per process.
func Default() *Set {
	defaultOnce.Do(func() {
		set, err := Parse(defaultYAML)
		if err != nil {
			panic(fmt.Sprintf("indicators: embedded default is invalid: %v", err))
		}
		defaultSet = set
	})
	return defaultSet
}

// LoadFromYAML loads an indicator set from a YAML file with top-level
// bonus, stigma, neutral and keywords lists.
func LoadFromYAML(path string) (*Set, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Parse(data)
}

// Parse builds an indicator set from YAML bytes.
func Parse(data []byte) (*Set, error) {
	var config struct {
		Bonus    []string `yaml:"bonus"`
		Stigma   []string `yaml:"stigma"`
		Neutral  []string `yaml:"neutral"`
		Keywords []string `yaml:"keywords"`
	}
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, err
	}
	return New(config.Bonus, config.Stigma, config.Neutral, config.Keywords)
}

// Bonus returns the bonus cue phrases.
func (s *Set) Bonus() []string { return s.byCategory(Bonus) }

// Stigma returns the stigma cue phrases.
func (s *Set) Stigma() []string { return s.byCategory(Stigma) }

// Neutral returns the neutral cue phrases.
func (s *Set) Neutral() []string { return s.byCategory(Neutral) }

// Keywords returns the keyword list, repeats included.
func (s *Set) Keywords() []string {
	return append([]string(nil), s.keywords...)
}

// CategoryOf reports the category of a cue phrase.
func (s *Set) CategoryOf(phrase string) (Category, bool) {
	c, ok := s.category[phrase]
	return c, ok
}

func (s *Set) byCategory(c Category) []string {
	var out []string
	for _, cue := range s.cues {
		if cue.Category == c {
			out = append(out, cue.Phrase)
		}
	}
	return out
}

// CuePhraseWeight sums the category weight of every cue phrase occurring in
// sentence and multiplies the sum by density. Matching is by substring, so
// "disadvantageous" also counts "disadvantage".
func (s *Set) CuePhraseWeight(sentence string, density float64) float64 {
	weight := 0.0
	for _, cue := range s.cues {
		if !strings.Contains(sentence, cue.Phrase) {
			continue
		}
		switch cue.Category {
		case Bonus:
			weight += BonusWeight
		case Stigma:
			weight += StigmaWeight
		default:
			weight += NeutralWeight
		}
	}
	return density * weight
}

// KeywordWeight adds KeywordWeight for every keyword listing found in
// sentence by substring and multiplies the total by density.
func (s *Set) KeywordWeight(sentence string, density float64) float64 {
	weight := 0.0
	for _, k := range s.keywords {
		if strings.Contains(sentence, k) {
			weight += KeywordWeight
		}
	}
	return density * weight
}

// MatchedCues returns the cue phrases found in sentence, in evaluation order.
func (s *Set) MatchedCues(sentence string) []Cue {
	var out []Cue
	for _, cue := range s.cues {
		if strings.Contains(sentence, cue.Phrase) {
			out = append(out, cue)
		}
	}
	return out
}

// MatchedKeywords returns the distinct keywords found in sentence, in
// listing order.
func (s *Set) MatchedKeywords(sentence string) []string {
	seen := make(map[string]struct{})
	var out []string
	for _, k := range s.keywords {
		if _, ok := seen[k]; ok {
			continue
		}
		if strings.Contains(sentence, k) {
			seen[k] = struct{}{}
			out = append(out, k)
		}
	}
	return out
}
