package freq

import "sort"

// Table maps each processed token to its occurrence count across a whole
// document. Every key has a count of at least one and the counts sum to
// Total. A Table is read-only once built.
type Table struct {
	counts map[string]int64
	total  int64
}

// Build counts every token in a single pass. Tokens are compared exactly;
// no case folding or trimming happens here.
func Build(tokens []string) *Table {
	t := &Table{counts: make(map[string]int64)}
	for _, tok := range tokens {
		t.counts[tok]++
	}
	t.total = int64(len(tokens))
	return t
}

// Count returns the occurrence count of token, zero when unseen.
func (t *Table) Count(token string) int64 {
	return t.counts[token]
}

// Total returns the number of tokens counted.
func (t *Table) Total() int64 {
	return t.total
}

// Len returns the number of distinct tokens.
func (t *Table) Len() int {
	return len(t.counts)
}

// Entry is a token with its count.
type Entry struct {
	Token string
	Count int64
}

// Top returns the k most frequent tokens, ties in token order. k <= 0
// returns every entry.
func (t *Table) Top(k int) []Entry {
	entries := make([]Entry, 0, len(t.counts))
	for tok, c := range t.counts {
		entries = append(entries, Entry{Token: tok, Count: c})
	}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Count != entries[j].Count {
			return entries[i].Count > entries[j].Count
		}
		return entries[i].Token < entries[j].Token
	})
	if k > 0 && len(entries) > k {
		entries = entries[:k]
	}
	return entries
}
