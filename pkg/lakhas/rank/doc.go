// Package rank scores processed sentences and orders them for extraction.
//
// A sentence's weight is the sum of document frequencies of its tokens,
// cue phrase and keyword contributions from the indicator set, and a
// connectivity bonus for tokens shared with the sentence before it.
package rank
