// Package normalize rewrites sentence tokens into a canonical token stream.
package normalize

import (
	"math"
	"regexp"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"

	"github.com/cognicore/lakhas/pkg/lakhas/lexicon"
)

// Terminator closes every normalized sentence. Joined phrases therefore end
// in a blank line, which separates sentences in the final summary.
const Terminator = "\n\n"

// Markers substituted for recognized values.
const (
	DateMarker  = "DATE"
	EmailMarker = "EMAIL"
)

// WordTokenizer splits text into word and punctuation tokens.
type WordTokenizer interface {
	Words(text string) ([]string, error)
}

var (
	numeralPattern = regexp.MustCompile(`\b\d+(?:\.\d+)*\b`)
	datePattern    = regexp.MustCompile(`\b(?:\d{1,2} (?i:january|february|march|april|may|june|july|august|september|october|november|december|jan|feb|mar|apr|jun|jul|aug|sep|sept|oct|nov|dec) \d{4}|\d{1,2}\.\d{1,2}\.\d{2,4})\b`)
	emailPattern   = regexp.MustCompile(`\b[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}\b`)

	stripNonASCII = runes.Remove(runes.Predicate(func(r rune) bool { return r >= utf8.RuneSelf }))
)

// Normalizer applies case folding, abbreviation expansion, value
// canonicalization, contraction expansion and non-ASCII stripping, then
// re-tokenizes the result. It holds no mutable state.
type Normalizer struct {
	lex   *lexicon.Lexicon
	words WordTokenizer
}

// New creates a normalizer. A nil lexicon uses lexicon.Default().
func New(lex *lexicon.Lexicon, words WordTokenizer) *Normalizer {
	if lex == nil {
		lex = lexicon.Default()
	}
	return &Normalizer{lex: lex, words: words}
}

// Normalize rewrites a sentence's tokens and returns the re-tokenized
// stream followed by Terminator. Only a tokenizer failure is reported;
// patterns that do not match leave the text alone.
func (n *Normalizer) Normalize(tokens []string) ([]string, error) {
	text := n.Text(strings.Join(tokens, " "))

	out, err := n.words.Words(text)
	if err != nil {
		return nil, err
	}
	return append(out, Terminator), nil
}

// Text applies every rewriting step to already joined sentence text.
func (n *Normalizer) Text(text string) string {
	text = FoldCase(text)
	text = ReplaceWhole(text, n.lex.Abbreviations())
	text = CanonicalizeNumerals(text)
	text = datePattern.ReplaceAllString(text, DateMarker)
	text = emailPattern.ReplaceAllString(text, EmailMarker)
	text = ReplaceWhole(text, n.lex.Contractions())
	return StripNonASCII(text)
}

// FoldCase lowercases each whitespace-separated word that is entirely
// lowercase or entirely uppercase. Mixed-case words such as "Smith" or
// "iPhone" are kept. Words are rejoined with single spaces.
func FoldCase(text string) string {
	words := strings.Fields(text)
	for i, w := range words {
		if isLower(w) || isUpper(w) {
			words[i] = strings.ToLower(w)
		}
	}
	return strings.Join(words, " ")
}

// isLower reports whether s has at least one cased rune and no uppercase.
func isLower(s string) bool {
	cased := false
	for _, r := range s {
		if unicode.IsUpper(r) || unicode.IsTitle(r) {
			return false
		}
		if unicode.IsLower(r) {
			cased = true
		}
	}
	return cased
}

// isUpper reports whether s has at least one cased rune and no lowercase.
func isUpper(s string) bool {
	cased := false
	for _, r := range s {
		if unicode.IsLower(r) || unicode.IsTitle(r) {
			return false
		}
		if unicode.IsUpper(r) {
			cased = true
		}
	}
	return cased
}

// ReplaceWhole rewrites whole-word occurrences of table keys in one left to
// right pass. At each position the earliest matching entry wins, and text
// produced by a replacement is never rescanned. An occurrence is whole when
// the runes on either side, if any, are not letters, digits or underscore.
func ReplaceWhole(text string, table []lexicon.Entry) string {
	if len(table) == 0 || text == "" {
		return text
	}

	var b strings.Builder
	b.Grow(len(text))

	for i := 0; i < len(text); {
		if entry, ok := matchAt(text, i, table); ok {
			b.WriteString(entry.To)
			i += len(entry.From)
			continue
		}
		b.WriteByte(text[i])
		i++
	}
	return b.String()
}

func matchAt(text string, i int, table []lexicon.Entry) (lexicon.Entry, bool) {
	if i > 0 {
		prev, _ := utf8.DecodeLastRuneInString(text[:i])
		if isWordRune(prev) {
			return lexicon.Entry{}, false
		}
	}
	for _, e := range table {
		if !strings.HasPrefix(text[i:], e.From) {
			continue
		}
		end := i + len(e.From)
		if end < len(text) {
			next, _ := utf8.DecodeRuneInString(text[end:])
			if isWordRune(next) {
				continue
			}
		}
		return e, true
	}
	return lexicon.Entry{}, false
}

func isWordRune(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r)
}

// CanonicalizeNumerals rewrites integer and decimal numerals to their
// integer value: "007" becomes "7" and "3.7" becomes "3" (truncated, not
// rounded). Runs with several dots, such as "12.05.2020", are rewritten part
// by part so that dotted dates keep their shape.
func CanonicalizeNumerals(text string) string {
	return numeralPattern.ReplaceAllStringFunc(text, func(m string) string {
		parts := strings.Split(m, ".")
		if len(parts) <= 2 {
			return truncate(m)
		}
		for i, p := range parts {
			parts[i] = truncate(p)
		}
		return strings.Join(parts, ".")
	})
}

func truncate(numeral string) string {
	f, err := strconv.ParseFloat(numeral, 64)
	if err != nil {
		return numeral
	}
	return strconv.FormatFloat(math.Trunc(f), 'f', 0, 64)
}

// StripNonASCII drops every rune at or above U+0080. Curly apostrophes and
// accented letters are removed, not transliterated.
func StripNonASCII(text string) string {
	out, _, err := transform.String(stripNonASCII, text)
	if err != nil {
		return text
	}
	return out
}
