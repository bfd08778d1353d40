// Package linguistic defines the language-analysis boundary consumed by the
// summarizer and provides an English implementation.
package linguistic

// Service supplies sentence segmentation, word tokenization, stopword
// membership and lemmatization for one language.
type Service interface {
	// Sentences splits a document into ordered, trimmed, non-empty sentences.
	Sentences(text string) ([]string, error)
	// Words splits text into word and punctuation tokens. Whitespace is
	// never returned as a token.
	Words(text string) ([]string, error)
	// IsStopword reports exact membership in the stopword list.
	IsStopword(token string) bool
	// Lemmatize returns the dictionary form of token.
	Lemmatize(token string) (string, error)
}
