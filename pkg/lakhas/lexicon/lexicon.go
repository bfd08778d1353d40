package lexicon

import (
	_ "embed"
	"fmt"
	"os"
	"sync"

	"gopkg.in/yaml.v3"
)

//go:embed default.yaml
var defaultYAML []byte

// Lexicon stores the vocabulary tables consulted while normalizing and
// lemmatizing sentence text:
// - Abbreviations: acronyms and Latin abbreviations (u.s.a. → USA, e.g. → for example)
// - Contractions: clitic forms expanded to full words (can't → cannot)
// - Lemmas: irregular forms mapped to their dictionary form (children → child)
//
// Replacement tables keep their declaration order, because the normalizer
// resolves overlapping candidates by taking the earliest entry.
type Lexicon struct {
	abbreviations []Entry
	contractions  []Entry

	// variant -> lemma
	lemmas map[string]string
}

// Entry is one ordered replacement rule.
type Entry struct {
	From string `yaml:"from"`
	To   string `yaml:"to"`
}

// New creates an empty lexicon.
func New() *Lexicon {
	return &Lexicon{
		lemmas: make(map[string]string),
	}
}

var (
	defaultOnce sync.Once
	defaultLex  *Lexicon
)

// Default returns the built-in lexicon. It is parsed once per process and
// must be treated as read-only.
func Default() *Lexicon {
	defaultOnce.Do(func() {
		lex, err := Parse(defaultYAML)
		if err != nil {
			panic(fmt.Sprintf("lexicon: embedded default is invalid: %v", err))
		}
		defaultLex = lex
	})
	return defaultLex
}

// LoadFromYAML loads replacement tables from a YAML file.
//
// Expected format:
//
//	abbreviations:
//	  - {from: e.g., to: for example}
//	contractions:
//	  - {from: "can't", to: cannot}
//	lemmas:
//	  - lemma: child
//	    variants: [children]
//
// Unlike token lookups, replacement keys are case-sensitive: the normalizer
// has already folded case by the time the tables are applied.
func LoadFromYAML(path string) (*Lexicon, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Parse(data)
}

// Parse builds a lexicon from YAML bytes in the LoadFromYAML format.
func Parse(data []byte) (*Lexicon, error) {
	var config struct {
		Abbreviations []Entry `yaml:"abbreviations"`
		Contractions  []Entry `yaml:"contractions"`
		Lemmas        []struct {
			Lemma    string   `yaml:"lemma"`
			Variants []string `yaml:"variants"`
		} `yaml:"lemmas"`
	}

	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, err
	}

	lex := New()
	for _, e := range config.Abbreviations {
		if err := lex.AddAbbreviation(e.From, e.To); err != nil {
			return nil, err
		}
	}
	for _, e := range config.Contractions {
		if err := lex.AddContraction(e.From, e.To); err != nil {
			return nil, err
		}
	}
	for _, group := range config.Lemmas {
		lex.AddLemmaGroup(group.Lemma, group.Variants)
	}

	return lex, nil
}

// AddAbbreviation appends an abbreviation rule after the existing ones.
func (l *Lexicon) AddAbbreviation(from, to string) error {
	if from == "" {
		return fmt.Errorf("abbreviation with empty key (to %q)", to)
	}
	l.abbreviations = append(l.abbreviations, Entry{From: from, To: to})
	return nil
}

// AddContraction appends a contraction rule after the existing ones.
func (l *Lexicon) AddContraction(from, to string) error {
	if from == "" {
		return fmt.Errorf("contraction with empty key (to %q)", to)
	}
	l.contractions = append(l.contractions, Entry{From: from, To: to})
	return nil
}

// AddLemmaGroup maps every variant, and the lemma itself, to the lemma.
// Mapping the lemma to itself pins words such as "species" that suffix
// rules would otherwise damage.
func (l *Lexicon) AddLemmaGroup(lemma string, variants []string) {
	if lemma == "" {
		return
	}
	l.lemmas[lemma] = lemma
	for _, v := range variants {
		if v != "" {
			l.lemmas[v] = lemma
		}
	}
}

// Abbreviations returns the abbreviation rules in declaration order.
func (l *Lexicon) Abbreviations() []Entry {
	return append([]Entry(nil), l.abbreviations...)
}

// Contractions returns the contraction rules in declaration order.
func (l *Lexicon) Contractions() []Entry {
	return append([]Entry(nil), l.contractions...)
}

// Lemma returns the recorded dictionary form of token, if any.
func (l *Lexicon) Lemma(token string) (string, bool) {
	lemma, ok := l.lemmas[token]
	return lemma, ok
}

// Stats returns statistics about the lexicon contents.
func (l *Lexicon) Stats() LexiconStats {
	groups := make(map[string]struct{})
	for _, lemma := range l.lemmas {
		groups[lemma] = struct{}{}
	}
	return LexiconStats{
		Abbreviations: len(l.abbreviations),
		Contractions:  len(l.contractions),
		LemmaGroups:   len(groups),
		LemmaVariants: len(l.lemmas),
	}
}

// LexiconStats holds statistics about lexicon contents.
type LexiconStats struct {
	Abbreviations int // Number of abbreviation rules
	Contractions  int // Number of contraction rules
	LemmaGroups   int // Number of distinct lemmas
	LemmaVariants int // Number of surface forms mapped to a lemma
}
