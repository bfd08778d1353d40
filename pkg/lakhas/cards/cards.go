package cards

import (
	"crypto/rand"
	"sort"
	"strings"
	"sync"
	"unicode"

	"github.com/cognicore/lakhas/pkg/lakhas/freq"
	"github.com/cognicore/lakhas/pkg/lakhas/indicators"
	"github.com/cognicore/lakhas/pkg/lakhas/rank"
	"github.com/oklog/ulid/v2"
)

// Builder constructs explainable summary cards
type Builder struct {
	mu      sync.Mutex
	entropy *ulid.MonotonicEntropy
}

// New creates a new card builder
func New() *Builder {
	return &Builder{
		entropy: ulid.Monotonic(rand.Reader, 0),
	}
}

// Card represents a structured, explainable summary
type Card struct {
	ID             string
	Title          string
	Bullets        []string
	Sources        []SentenceRef
	ScoreBreakdown map[string]float64
	Explain        Explain
}

// SentenceRef locates a bullet in the source document
type SentenceRef struct {
	Index int
	Score float64
}

// Explain provides transparency into selection
type Explain struct {
	MatchedCues     []string
	MatchedKeywords []string
	TopTerms        []freq.Entry
}

// ScoredSentence is a selected sentence with its score
type ScoredSentence struct {
	Index     int
	Text      string // original sentence text
	Phrase    string // processed phrase that was scored
	Breakdown rank.ScoreBreakdown
}

// topTerms is the number of frequent terms listed in Explain
const topTerms = 5

// Build creates a card from the selected sentences. Cue and keyword
// matches are collected from the processed phrases; a nil set skips them.
func (b *Builder) Build(title string, sentences []ScoredSentence, ind *indicators.Set, table *freq.Table) Card {
	card := Card{
		ID:             b.newID(),
		Title:          title,
		Bullets:        make([]string, 0, len(sentences)),
		Sources:        make([]SentenceRef, 0, len(sentences)),
		ScoreBreakdown: make(map[string]float64),
		Explain: Explain{
			MatchedCues:     []string{},
			MatchedKeywords: []string{},
		},
	}

	freqSum, cueSum, kwSum, connSum, totalSum := 0.0, 0.0, 0.0, 0.0, 0.0
	cues := make(map[string]struct{})
	keywords := make(map[string]struct{})

	for _, s := range sentences {
		card.Bullets = append(card.Bullets, s.Text)
		card.Sources = append(card.Sources, SentenceRef{
			Index: s.Index,
			Score: s.Breakdown.Total,
		})

		freqSum += s.Breakdown.Frequency
		cueSum += s.Breakdown.Cue
		kwSum += s.Breakdown.Keyword
		connSum += s.Breakdown.Connectivity
		totalSum += s.Breakdown.Total

		if ind == nil {
			continue
		}
		for _, c := range ind.MatchedCues(s.Phrase) {
			cues[c.Phrase] = struct{}{}
		}
		for _, k := range ind.MatchedKeywords(s.Phrase) {
			keywords[k] = struct{}{}
		}
	}

	// Average scores
	n := float64(len(sentences))
	if n > 0 {
		card.ScoreBreakdown["frequency"] = freqSum / n
		card.ScoreBreakdown["cue"] = cueSum / n
		card.ScoreBreakdown["keyword"] = kwSum / n
		card.ScoreBreakdown["connectivity"] = connSum / n
		card.ScoreBreakdown["total"] = totalSum / n
	}

	card.Explain.MatchedCues = sortedKeys(cues)
	card.Explain.MatchedKeywords = sortedKeys(keywords)
	if table != nil {
		card.Explain.TopTerms = contentTerms(table, topTerms)
	}

	return card
}

func (b *Builder) newID() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return ulid.MustNew(ulid.Now(), b.entropy).String()
}

// contentTerms returns the k most frequent tokens that contain a letter or
// digit, skipping punctuation and sentence terminators.
func contentTerms(table *freq.Table, k int) []freq.Entry {
	out := make([]freq.Entry, 0, k)
	for _, e := range table.Top(0) {
		if len(out) == k {
			break
		}
		if strings.IndexFunc(e.Token, isContent) >= 0 {
			out = append(out, e)
		}
	}
	return out
}

func isContent(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r)
}

func sortedKeys(m map[string]struct{}) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
