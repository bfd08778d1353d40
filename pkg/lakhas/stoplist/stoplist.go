package stoplist

import (
	"sort"

	"github.com/kljensen/snowball/english"
)

// Manager answers stopword membership: a base list plus explicit additions
// and removals. Lookups are exact, so "The" and "the" are distinct tokens.
type Manager struct {
	base    func(string) bool
	added   map[string]struct{}
	removed map[string]struct{}
}

// NewManager creates a manager whose stopwords are exactly initialStops.
func NewManager(initialStops []string) *Manager {
	m := &Manager{
		added:   make(map[string]struct{}, len(initialStops)),
		removed: make(map[string]struct{}),
	}
	for _, s := range initialStops {
		m.added[s] = struct{}{}
	}
	return m
}

// NewEnglish creates a manager backed by the Snowball English stopword list.
func NewEnglish() *Manager {
	m := NewManager(nil)
	m.base = english.IsStopWord
	return m
}

// IsStop checks if a token is a stopword
func (m *Manager) IsStop(token string) bool {
	if _, ok := m.removed[token]; ok {
		return false
	}
	if _, ok := m.added[token]; ok {
		return true
	}
	return m.base != nil && m.base(token)
}

// Add adds a token to the stoplist
func (m *Manager) Add(token string) {
	delete(m.removed, token)
	m.added[token] = struct{}{}
}

// Remove removes a token from the stoplist, including base-list words
func (m *Manager) Remove(token string) {
	delete(m.added, token)
	m.removed[token] = struct{}{}
}

// Added returns the explicitly added stopwords, sorted
func (m *Manager) Added() []string {
	return sortedKeys(m.added)
}

// Removed returns the explicitly removed stopwords, sorted
func (m *Manager) Removed() []string {
	return sortedKeys(m.removed)
}

func sortedKeys(set map[string]struct{}) []string {
	result := make([]string, 0, len(set))
	for s := range set {
		result = append(result, s)
	}
	sort.Strings(result)
	return result
}
