package lakhas

import (
	"errors"
	"fmt"
	"strings"
	"unicode"

	"github.com/cognicore/lakhas/pkg/lakhas/freq"
	"github.com/cognicore/lakhas/pkg/lakhas/internalerr"
	"github.com/cognicore/lakhas/pkg/lakhas/rank"
)

// Sentence is one sentence of the document after processing
type Sentence struct {
	Index     int      // position in the document
	Raw       string   // text as segmented
	Tokens    []string // normalized, stopword-filtered, lemmatized
	Phrase    string   // Tokens joined by spaces, left-trimmed
	Breakdown rank.ScoreBreakdown
}

// Ranking is the full result of scoring a document
type Ranking struct {
	Sentences []Sentence // document order
	Order     []int      // indices into Sentences, best first
	Table     *freq.Table

	ranked []rank.Ranked
}

// Top returns the first n sentences in rank order
func (r Ranking) Top(n int) []Sentence {
	top := rank.TopK(r.ranked, n)
	if len(top) == 0 {
		return nil
	}
	out := make([]Sentence, len(top))
	for i, rr := range top {
		out[i] = r.Sentences[rr.Index]
	}
	return out
}

// Rank segments, processes and scores every sentence of text. Empty text
// yields an empty Ranking.
func (s *Summarizer) Rank(text string) (Ranking, error) {
	raws, err := s.svc.Sentences(text)
	if err != nil {
		return Ranking{}, serviceError("segment sentences", err)
	}

	sentences := make([]Sentence, 0, len(raws))
	var all []string
	for i, raw := range raws {
		tokens, err := s.process(raw)
		if err != nil {
			return Ranking{}, err
		}
		all = append(all, tokens...)
		sentences = append(sentences, Sentence{
			Index:  i,
			Raw:    raw,
			Tokens: tokens,
			Phrase: strings.TrimLeftFunc(strings.Join(tokens, " "), unicode.IsSpace),
		})
	}

	table := freq.Build(all)
	s.logger.Debug("document processed", "sentences", len(sentences), "tokens", table.Total(), "distinct", table.Len())

	phrases := make([]string, len(sentences))
	for i, sent := range sentences {
		phrases[i] = sent.Phrase
	}
	ranked, err := s.scorer.Rank(phrases, table)
	if err != nil {
		return Ranking{}, serviceError("rank sentences", err)
	}

	order := make([]int, len(ranked))
	for i, r := range ranked {
		order[i] = r.Index
		sentences[r.Index].Breakdown = r.Breakdown
	}

	return Ranking{Sentences: sentences, Order: order, Table: table, ranked: ranked}, nil
}

// process runs one sentence through tokenize, normalize, stopword removal
// and lemmatization
func (s *Summarizer) process(raw string) ([]string, error) {
	words, err := s.svc.Words(raw)
	if err != nil {
		return nil, serviceError("tokenize", err)
	}

	normalized, err := s.normalizer.Normalize(words)
	if err != nil {
		return nil, serviceError("normalize", err)
	}

	out := make([]string, 0, len(normalized))
	for _, tok := range normalized {
		if s.svc.IsStopword(tok) {
			continue
		}
		lemma, err := s.svc.Lemmatize(tok)
		if err != nil {
			return nil, serviceError("lemmatize", err)
		}
		out = append(out, lemma)
	}
	return out, nil
}

func serviceError(op string, err error) error {
	if errors.Is(err, internalerr.ErrLinguisticService) {
		return fmt.Errorf("%s: %w", op, err)
	}
	return fmt.Errorf("%w: %s: %w", internalerr.ErrLinguisticService, op, err)
}
