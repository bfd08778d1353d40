// Package lakhas extracts the highest weighted sentences of a document as
// its summary.
package lakhas

import (
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/cognicore/lakhas/pkg/lakhas/cards"
	"github.com/cognicore/lakhas/pkg/lakhas/indicators"
	"github.com/cognicore/lakhas/pkg/lakhas/internalerr"
	"github.com/cognicore/lakhas/pkg/lakhas/lexicon"
	"github.com/cognicore/lakhas/pkg/lakhas/linguistic"
	"github.com/cognicore/lakhas/pkg/lakhas/normalize"
	"github.com/cognicore/lakhas/pkg/lakhas/rank"
)

// DefaultNumPhrases is the summary length used when none is configured.
const DefaultNumPhrases = 3

// Summarizer is the main summarization facade
type Summarizer struct {
	svc        linguistic.Service
	normalizer *normalize.Normalizer
	scorer     *rank.Scorer
	indicators *indicators.Set
	cards      *cards.Builder
	numPhrases int
	logger     *slog.Logger
}

// Options configures a Summarizer. Only Service is required; nil reference
// data falls back to the embedded defaults and zero Weights to
// rank.DefaultWeights().
type Options struct {
	Service    linguistic.Service
	Indicators *indicators.Set
	Lexicon    *lexicon.Lexicon
	Weights    rank.Weights
	NumPhrases int
	Logger     *slog.Logger
}

// New creates a Summarizer with the given dependencies
func New(opts Options) (*Summarizer, error) {
	if opts.Service == nil {
		return nil, fmt.Errorf("%w: linguistic service is required", internalerr.ErrInvalidConfig)
	}
	if opts.NumPhrases < 0 {
		return nil, fmt.Errorf("%w: negative phrase count %d", internalerr.ErrInvalidConfig, opts.NumPhrases)
	}

	ind := opts.Indicators
	if ind == nil {
		ind = indicators.Default()
	}
	weights := opts.Weights
	if weights == (rank.Weights{}) {
		weights = rank.DefaultWeights()
	}
	numPhrases := opts.NumPhrases
	if numPhrases == 0 {
		numPhrases = DefaultNumPhrases
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	return &Summarizer{
		svc:        opts.Service,
		normalizer: normalize.New(opts.Lexicon, opts.Service),
		scorer:     rank.NewScorer(weights, ind, opts.Service),
		indicators: ind,
		cards:      cards.New(),
		numPhrases: numPhrases,
		logger:     logger,
	}, nil
}

// NumPhrases returns the configured summary length
func (s *Summarizer) NumPhrases() int {
	return s.numPhrases
}

// Summarize returns the configured number of top sentences of text
func (s *Summarizer) Summarize(text string) (string, error) {
	return s.SummarizeN(text, s.numPhrases)
}

// SummarizeN returns the numPhrases highest weighted processed sentences
// of text, best first, joined and cleaned. Asking for more sentences than
// the document has returns all of them; zero returns "".
func (s *Summarizer) SummarizeN(text string, numPhrases int) (string, error) {
	if numPhrases < 0 {
		return "", fmt.Errorf("%w: negative phrase count %d", internalerr.ErrInvalidInput, numPhrases)
	}
	if numPhrases == 0 {
		return "", nil
	}

	ranking, err := s.Rank(text)
	if err != nil {
		return "", err
	}

	top := ranking.Top(numPhrases)
	phrases := make([]string, len(top))
	for i, sent := range top {
		phrases[i] = sent.Phrase
	}
	s.logger.Debug("summary selected", "requested", numPhrases, "selected", len(top))

	return Clean(strings.Join(phrases, "")), nil
}

// Card summarizes text into an explainable card holding the top
// numPhrases original sentences.
func (s *Summarizer) Card(title, text string, numPhrases int) (cards.Card, error) {
	if numPhrases < 0 {
		return cards.Card{}, fmt.Errorf("%w: negative phrase count %d", internalerr.ErrInvalidInput, numPhrases)
	}

	ranking, err := s.Rank(text)
	if err != nil {
		return cards.Card{}, err
	}

	top := ranking.Top(numPhrases)
	scored := make([]cards.ScoredSentence, len(top))
	for i, sent := range top {
		scored[i] = cards.ScoredSentence{
			Index:     sent.Index,
			Text:      sent.Raw,
			Phrase:    sent.Phrase,
			Breakdown: sent.Breakdown,
		}
	}
	return s.cards.Build(title, scored, s.indicators, ranking.Table), nil
}
