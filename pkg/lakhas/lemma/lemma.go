// Package lemma reduces tokens to a base form before frequency counting.
//
// Three strategies are provided:
//
//   - Noun: exception table from the lexicon, then English noun suffix rules.
//     Verbs and adjectives pass through unchanged.
//   - Porter: the Porter stemming algorithm.
//   - Snowball: the Snowball English (Porter2) stemmer.
//
// Only tokens made entirely of lowercase letters are reduced. Proper nouns,
// acronyms, markers such as DATE, punctuation and numerals are returned
// unchanged by every strategy.
package lemma

import (
	"fmt"
	"strings"
	"unicode"

	porterstemmer "github.com/blevesearch/go-porterstemmer"
	"github.com/kljensen/snowball"

	"github.com/cognicore/lakhas/pkg/lakhas/internalerr"
	"github.com/cognicore/lakhas/pkg/lakhas/lexicon"
)

// Lemmatizer maps a token to its base form.
type Lemmatizer interface {
	Lemmatize(token string) (string, error)
}

// Strategy names accepted by ByName.
const (
	NounName     = "noun"
	PorterName   = "porter"
	SnowballName = "snowball"
)

// ByName returns the lemmatizer registered under name. An empty name
// selects the noun lemmatizer.
func ByName(name string, lex *lexicon.Lexicon) (Lemmatizer, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", NounName:
		return NewNoun(lex), nil
	case PorterName:
		return Porter{}, nil
	case SnowballName:
		return Snowball{}, nil
	default:
		return nil, fmt.Errorf("%w: unknown lemmatizer %q", internalerr.ErrInvalidConfig, name)
	}
}

// reducible reports whether token consists only of lowercase letters.
func reducible(token string) bool {
	if token == "" {
		return false
	}
	for _, r := range token {
		if !unicode.IsLower(r) {
			return false
		}
	}
	return true
}

// Noun lemmatizes plural nouns to their singular form.
type Noun struct {
	lex *lexicon.Lexicon
}

// NewNoun creates a noun lemmatizer. A nil lexicon uses lexicon.Default().
func NewNoun(lex *lexicon.Lexicon) *Noun {
	if lex == nil {
		lex = lexicon.Default()
	}
	return &Noun{lex: lex}
}

// minNounLen keeps short words such as "has" and "its" intact.
const minNounLen = 4

// keepSuffixes end singular nouns that look plural.
var keepSuffixes = []string{"ss", "us", "is", "ous"}

// Lemmatize returns the singular form of token.
func (n *Noun) Lemmatize(token string) (string, error) {
	if lemma, ok := n.lex.Lemma(token); ok {
		return lemma, nil
	}
	if !reducible(token) || len(token) < minNounLen || !strings.HasSuffix(token, "s") {
		return token, nil
	}
	for _, suffix := range keepSuffixes {
		if strings.HasSuffix(token, suffix) {
			return token, nil
		}
	}

	switch {
	case strings.HasSuffix(token, "ies") && len(token) > 4:
		return strings.TrimSuffix(token, "ies") + "y", nil
	case strings.HasSuffix(token, "sses"),
		strings.HasSuffix(token, "xes"),
		strings.HasSuffix(token, "zes"),
		strings.HasSuffix(token, "ches"),
		strings.HasSuffix(token, "shes"):
		return strings.TrimSuffix(token, "es"), nil
	default:
		return strings.TrimSuffix(token, "s"), nil
	}
}

// Porter stems tokens with the Porter algorithm.
type Porter struct{}

// Lemmatize returns the Porter stem of token.
func (Porter) Lemmatize(token string) (string, error) {
	if !reducible(token) {
		return token, nil
	}
	return porterstemmer.StemString(token), nil
}

// Snowball stems tokens with the Snowball English stemmer.
type Snowball struct{}

// Lemmatize returns the Snowball stem of token.
func (Snowball) Lemmatize(token string) (string, error) {
	if !reducible(token) {
		return token, nil
	}
	stemmed, err := snowball.Stem(token, "english", true)
	if err != nil {
		return "", fmt.Errorf("snowball stem %q: %w", token, err)
	}
	return stemmed, nil
}
