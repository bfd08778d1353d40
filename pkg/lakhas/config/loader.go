package config

import (
	"fmt"

	"github.com/cognicore/lakhas/pkg/lakhas/indicators"
	"github.com/cognicore/lakhas/pkg/lakhas/lemma"
	"github.com/cognicore/lakhas/pkg/lakhas/lexicon"
	"github.com/cognicore/lakhas/pkg/lakhas/linguistic"
	"github.com/cognicore/lakhas/pkg/lakhas/stoplist"
)

// Loader loads all configuration files and constructs components.
// Empty paths select the embedded defaults.
type Loader struct {
	IndicatorsPath string
	LexiconPath    string
	StoplistPath   string
	Lemmatizer     string // lemma.NounName, lemma.PorterName or lemma.SnowballName
}

// Components holds all loaded configuration components
type Components struct {
	Indicators *indicators.Set
	Lexicon    *lexicon.Lexicon
	Stoplist   *stoplist.Manager
	Lemmatizer lemma.Lemmatizer
	Service    *linguistic.English
}

// Load reads all configuration files and returns initialized components
func (l *Loader) Load() (*Components, error) {
	comp := &Components{}

	// Load indicators
	if l.IndicatorsPath != "" {
		set, err := indicators.LoadFromYAML(l.IndicatorsPath)
		if err != nil {
			return nil, fmt.Errorf("load indicators: %w", err)
		}
		comp.Indicators = set
	} else {
		comp.Indicators = indicators.Default()
	}

	// Load lexicon
	if l.LexiconPath != "" {
		lex, err := lexicon.LoadFromYAML(l.LexiconPath)
		if err != nil {
			return nil, fmt.Errorf("load lexicon: %w", err)
		}
		comp.Lexicon = lex
	} else {
		comp.Lexicon = lexicon.Default()
	}

	// Load stoplist adjustments on top of the English base list
	comp.Stoplist = stoplist.NewEnglish()
	if l.StoplistPath != "" {
		sl, err := LoadStoplist(l.StoplistPath)
		if err != nil {
			return nil, fmt.Errorf("load stoplist: %w", err)
		}
		for _, w := range sl.Add {
			comp.Stoplist.Add(w)
		}
		for _, w := range sl.Remove {
			comp.Stoplist.Remove(w)
		}
	}

	lem, err := lemma.ByName(l.Lemmatizer, comp.Lexicon)
	if err != nil {
		return nil, fmt.Errorf("select lemmatizer: %w", err)
	}
	comp.Lemmatizer = lem

	comp.Service = linguistic.NewEnglish(linguistic.EnglishOptions{
		Stoplist:   comp.Stoplist,
		Lexicon:    comp.Lexicon,
		Lemmatizer: comp.Lemmatizer,
	})

	return comp, nil
}
