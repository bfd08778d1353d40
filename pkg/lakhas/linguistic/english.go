package linguistic

import (
	"fmt"
	"regexp"
	"strings"
	"sync"
	"unicode"
	"unicode/utf8"

	"github.com/blevesearch/segment"
	"gopkg.in/neurosnap/sentences.v1/english"

	"github.com/cognicore/lakhas/pkg/lakhas/internalerr"
	"github.com/cognicore/lakhas/pkg/lakhas/lemma"
	"github.com/cognicore/lakhas/pkg/lakhas/lexicon"
	"github.com/cognicore/lakhas/pkg/lakhas/stoplist"
)

var emailSpan = regexp.MustCompile(`[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}`)

// EnglishOptions configures the English service. Nil fields use the
// snowball stopword list, the default lexicon and the noun lemmatizer over
// that lexicon. Lexicon abbreviations ending in "." keep their period when
// words are split.
type EnglishOptions struct {
	Stoplist   *stoplist.Manager
	Lexicon    *lexicon.Lexicon
	Lemmatizer lemma.Lemmatizer
}

// English is a Service for English text. Sentences come from a Punkt
// tokenizer trained on English, words from Unicode text segmentation.
type English struct {
	stops     *stoplist.Manager
	lemmatize lemma.Lemmatizer
	dotted    map[string]struct{} // abbreviation keys ending in "."

	once     sync.Once
	tokenize func(string) []string
	initErr  error
}

// NewEnglish creates the English service.
func NewEnglish(opts EnglishOptions) *English {
	stops := opts.Stoplist
	if stops == nil {
		stops = stoplist.NewEnglish()
	}
	lex := opts.Lexicon
	if lex == nil {
		lex = lexicon.Default()
	}
	lem := opts.Lemmatizer
	if lem == nil {
		lem = lemma.NewNoun(lex)
	}

	dotted := make(map[string]struct{})
	for _, e := range lex.Abbreviations() {
		if strings.HasSuffix(e.From, ".") {
			dotted[e.From] = struct{}{}
		}
	}
	return &English{stops: stops, lemmatize: lem, dotted: dotted}
}

// Sentences implements Service.
func (e *English) Sentences(text string) ([]string, error) {
	e.once.Do(e.loadTokenizer)
	if e.initErr != nil {
		return nil, e.initErr
	}

	var out []string
	for _, s := range e.tokenize(text) {
		s = strings.TrimSpace(s)
		if s != "" {
			out = append(out, s)
		}
	}
	return out, nil
}

func (e *English) loadTokenizer() {
	tok, err := english.NewSentenceTokenizer(nil)
	if err != nil {
		e.initErr = fmt.Errorf("%w: load sentence tokenizer: %w", internalerr.ErrLinguisticService, err)
		return
	}
	e.tokenize = func(text string) []string {
		sents := tok.Tokenize(text)
		out := make([]string, 0, len(sents))
		for _, s := range sents {
			out = append(out, s.Text)
		}
		return out
	}
}

// Words implements Service. Email addresses are kept whole, and a trailing
// period after a dotted abbreviation such as "e.g" stays attached to it.
func (e *English) Words(text string) ([]string, error) {
	var out []string
	last := 0
	for _, span := range emailSpan.FindAllStringIndex(text, -1) {
		words, err := e.segmentWords(text[last:span[0]])
		if err != nil {
			return nil, err
		}
		out = append(out, words...)
		out = append(out, text[span[0]:span[1]])
		last = span[1]
	}
	words, err := e.segmentWords(text[last:])
	if err != nil {
		return nil, err
	}
	return append(out, words...), nil
}

func (e *English) segmentWords(text string) ([]string, error) {
	var out []string
	seg := segment.NewWordSegmenterDirect([]byte(text))

	// indices in out of the token the current segment may attach to, or -1:
	// dotted for a trailing "." after an abbreviation, punct for a repeated
	// punctuation character
	dotted, punct := -1, -1
	for seg.Segment() {
		tok := seg.Text()
		typ := seg.Type()
		if typ == segment.None && strings.TrimFunc(tok, unicode.IsSpace) == "" {
			dotted, punct = -1, -1
			continue
		}
		if tok == "." && dotted >= 0 {
			out[dotted] += "."
			dotted, punct = -1, -1
			continue
		}
		if typ == segment.None && punct >= 0 && sameRun(out[punct], tok) {
			out[punct] += tok
			continue
		}

		out = append(out, tok)
		dotted, punct = -1, -1
		switch {
		case typ == segment.Letter && e.keepsDot(tok):
			dotted = len(out) - 1
		case typ == segment.None:
			punct = len(out) - 1
		}
	}
	if err := seg.Err(); err != nil {
		return nil, fmt.Errorf("%w: segment words: %w", internalerr.ErrLinguisticService, err)
	}
	return out, nil
}

// keepsDot reports whether a following "." belongs to the letter segment
// tok: it already has interior dots ("e.g", "u.s.a") or tok plus "." is an
// abbreviation key, compared the way case folding will see it.
func (e *English) keepsDot(tok string) bool {
	if strings.Contains(tok, ".") {
		return true
	}
	if _, ok := e.dotted[tok+"."]; ok {
		return true
	}
	if lower := strings.ToLower(tok); lower != tok && strings.ToUpper(tok) == tok {
		_, ok := e.dotted[lower+"."]
		return ok
	}
	return false
}

// sameRun reports whether tok is a single character that run repeats.
func sameRun(run, tok string) bool {
	return utf8.RuneCountInString(tok) == 1 && strings.Trim(run, tok) == ""
}

// IsStopword implements Service.
func (e *English) IsStopword(token string) bool {
	return e.stops.IsStop(token)
}

// Lemmatize implements Service.
func (e *English) Lemmatize(token string) (string, error) {
	out, err := e.lemmatize.Lemmatize(token)
	if err != nil {
		return "", fmt.Errorf("%w: lemmatize %q: %w", internalerr.ErrLinguisticService, token, err)
	}
	return out, nil
}
