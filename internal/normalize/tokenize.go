package normalize

import (
	"regexp"
	"strings"
)

// htmlTagPattern strips balanced-angle-bracket HTML markup, e.g. "<b>bold</b>".
var htmlTagPattern = regexp.MustCompile(`<[^<]+?>`)

// urlPatterns covers bare http(s) links, www-prefixed links, dotted
// .com/.org hosts, and e-mail-like tokens.
var urlPatterns = []*regexp.Regexp{
	regexp.MustCompile(`http\S*`),
	regexp.MustCompile(`www\S*`),
	regexp.MustCompile(`\S+\.com\S*`),
	regexp.MustCompile(`\S+\.org\S*`),
	regexp.MustCompile(`\S*@\S*`),
}

// newlinePattern, entityPattern, nonASCIIPattern, and nonWordPattern together
// implement step 3 of the normalization pipeline: collapse newlines, numeric
// HTML entities, non-ASCII code points, and any character that is not a word
// character or whitespace into a single space.
var (
	newlinePattern  = regexp.MustCompile(`\n`)
	entityPattern   = regexp.MustCompile(`&#[0-9]+;`)
	nonASCIIPattern = regexp.MustCompile(`[\x{0080}-\x{ffff}]`)
	nonWordPattern  = regexp.MustCompile(`[^\w\s]`)
)

// stripLinks removes HTML tags and URL-shaped substrings from text.
func stripLinks(text string) string {
	text = htmlTagPattern.ReplaceAllString(text, "")
	for _, p := range urlPatterns {
		text = p.ReplaceAllString(text, "")
	}
	return text
}

// stripNoise collapses newlines, numeric entities, non-ASCII runes, and
// punctuation into spaces, leaving only word characters and whitespace.
func stripNoise(text string) string {
	text = newlinePattern.ReplaceAllString(text, " ")
	text = entityPattern.ReplaceAllString(text, " ")
	text = nonASCIIPattern.ReplaceAllString(text, " ")
	text = nonWordPattern.ReplaceAllString(text, " ")
	return text
}

// tokenize splits cleaned, lowercased text into words.
//
// By the time tokenize runs, stripLinks and stripNoise have already reduced
// the text to nothing but [A-Za-z0-9_] runs separated by whitespace, so a
// whitespace split reproduces Penn-Treebank-style word tokenization without
// needing a separate tokenizer library — there is no punctuation left for a
// fancier tokenizer to treat specially.
func tokenize(text string) []string {
	return strings.Fields(text)
}
