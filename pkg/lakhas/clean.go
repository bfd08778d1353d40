package lakhas

import "regexp"

var (
	horizontalRun = regexp.MustCompile(`[ \t]{2,}`)
	spaceBeforeP  = regexp.MustCompile(`\s+([.,])`)
	paddedParens  = regexp.MustCompile(`\(\s+(\w+\s*\w*)\s+\)`)
	repeatedComma = regexp.MustCompile(`,\s*,`)
)

// Clean tidies punctuation spacing in joined summary text: runs of spaces
// collapse to one, whitespace before "." and "," is removed, padding inside
// short parenthesized fragments is dropped and doubled commas merge.
// Newlines between sentences are kept.
func Clean(text string) string {
	text = horizontalRun.ReplaceAllString(text, " ")
	text = spaceBeforeP.ReplaceAllString(text, "$1")
	text = paddedParens.ReplaceAllString(text, "($1)")
	return repeatedComma.ReplaceAllString(text, ",")
}
