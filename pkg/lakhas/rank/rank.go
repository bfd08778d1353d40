package rank

import (
	"fmt"
	"sort"

	"github.com/cognicore/lakhas/pkg/lakhas/freq"
	"github.com/cognicore/lakhas/pkg/lakhas/indicators"
	"github.com/cognicore/lakhas/pkg/lakhas/internalerr"
)

// Scorer calculates composite sentence weights
type Scorer struct {
	weights    Weights
	indicators *indicators.Set
	words      Tokenizer
}

// Weights defines the scoring weights
type Weights struct {
	Cue          float64 // density applied to cue phrase matches
	Keyword      float64 // density applied to keyword matches
	Connectivity float64 // per shared token with the previous sentence
}

// DefaultWeights returns the standard weights
func DefaultWeights() Weights {
	return Weights{
		Cue:          2,
		Keyword:      1.5,
		Connectivity: 1.2,
	}
}

// Tokenizer splits a processed phrase into tokens
type Tokenizer interface {
	Words(text string) ([]string, error)
}

// NewScorer creates a new scorer. A nil indicator set uses indicators.Default().
func NewScorer(w Weights, ind *indicators.Set, words Tokenizer) *Scorer {
	if ind == nil {
		ind = indicators.Default()
	}
	return &Scorer{
		weights:    w,
		indicators: ind,
		words:      words,
	}
}

// ScoreBreakdown provides detailed scoring information
type ScoreBreakdown struct {
	Frequency    float64
	Cue          float64
	Keyword      float64
	Connectivity float64
	Overlap      int // distinct tokens shared with the previous sentence
	Total        float64
}

// Score calculates the weight of phrases[idx]
//
// weight = Σ freq(token) + cue(phrase, Cue) + keyword(phrase, Keyword) + Connectivity·overlap(phrase, previous)
//
// The previous sentence is the one at idx-1, so duplicated sentences each
// link to their own predecessor.
func (s *Scorer) Score(phrases []string, idx int, table *freq.Table) (float64, error) {
	b, err := s.ScoreWithBreakdown(phrases, idx, table)
	if err != nil {
		return 0, err
	}
	return b.Total, nil
}

// ScoreWithBreakdown calculates the weight of phrases[idx] with detailed breakdown
func (s *Scorer) ScoreWithBreakdown(phrases []string, idx int, table *freq.Table) (ScoreBreakdown, error) {
	if idx < 0 || idx >= len(phrases) {
		return ScoreBreakdown{}, fmt.Errorf("%w: sentence index %d out of range [0,%d)", internalerr.ErrInvalidInput, idx, len(phrases))
	}

	tokens, err := s.words.Words(phrases[idx])
	if err != nil {
		return ScoreBreakdown{}, err
	}
	var previous []string
	if idx > 0 {
		if previous, err = s.words.Words(phrases[idx-1]); err != nil {
			return ScoreBreakdown{}, err
		}
	}
	return s.breakdown(phrases[idx], tokens, previous, table), nil
}

func (s *Scorer) breakdown(phrase string, tokens, previous []string, table *freq.Table) ScoreBreakdown {
	var frequency int64
	for _, tok := range tokens {
		frequency += table.Count(tok)
	}

	overlap := sharedTokens(tokens, previous)

	b := ScoreBreakdown{
		Frequency:    float64(frequency),
		Cue:          s.indicators.CuePhraseWeight(phrase, s.weights.Cue),
		Keyword:      s.indicators.KeywordWeight(phrase, s.weights.Keyword),
		Connectivity: s.weights.Connectivity * float64(overlap),
		Overlap:      overlap,
	}
	b.Total = b.Frequency + b.Cue + b.Keyword + b.Connectivity
	return b
}

// Ranked is a scored sentence
type Ranked struct {
	Index     int // position in the document
	Phrase    string
	Breakdown ScoreBreakdown
}

// Score returns the total weight
func (r Ranked) Score() float64 {
	return r.Breakdown.Total
}

// Rank scores every phrase and returns them ordered by descending weight.
// Equal weights keep document order.
func (s *Scorer) Rank(phrases []string, table *freq.Table) ([]Ranked, error) {
	tokens := make([][]string, len(phrases))
	for i, p := range phrases {
		toks, err := s.words.Words(p)
		if err != nil {
			return nil, err
		}
		tokens[i] = toks
	}

	ranked := make([]Ranked, len(phrases))
	for i, p := range phrases {
		var previous []string
		if i > 0 {
			previous = tokens[i-1]
		}
		ranked[i] = Ranked{
			Index:     i,
			Phrase:    p,
			Breakdown: s.breakdown(p, tokens[i], previous, table),
		}
	}

	Sort(ranked)
	return ranked, nil
}

// Sort orders ranked sentences by descending weight, keeping the relative
// order of equal weights
func Sort(ranked []Ranked) {
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Breakdown.Total > ranked[j].Breakdown.Total
	})
}

// TopK returns the first k entries. k larger than the list returns all of them.
func TopK(ranked []Ranked, k int) []Ranked {
	if k <= 0 {
		return nil
	}
	if k > len(ranked) {
		k = len(ranked)
	}
	return ranked[:k]
}

// sharedTokens counts distinct tokens present in both a and b
func sharedTokens(a, b []string) int {
	if len(a) == 0 || len(b) == 0 {
		return 0
	}

	bSet := make(map[string]struct{}, len(b))
	for _, t := range b {
		bSet[t] = struct{}{}
	}

	seen := make(map[string]struct{}, len(a))
	shared := 0
	for _, t := range a {
		if _, dup := seen[t]; dup {
			continue
		}
		seen[t] = struct{}{}
		if _, ok := bSet[t]; ok {
			shared++
		}
	}
	return shared
}
