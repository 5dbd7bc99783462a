package normalize

import (
	"regexp"
	"strings"
	"sync"
)

// stopwordPattern compiles the fixed, closed stop-word list into a single
// case-insensitive, whole-word alternation. Compiling once per distinct word
// list (rather than once globally) lets New's extraStopwords list widen the
// removal without recompiling on every call.
type stopwordPattern struct {
	re *regexp.Regexp
}

var patternCache sync.Map // map[string]*stopwordPattern, keyed by joined word list

func compileStopwords(words []string) *stopwordPattern {
	key := strings.Join(words, "\x00")
	if cached, ok := patternCache.Load(key); ok {
		return cached.(*stopwordPattern)
	}
	if len(words) == 0 {
		p := &stopwordPattern{re: nil}
		patternCache.Store(key, p)
		return p
	}
	escaped := make([]string, len(words))
	for i, w := range words {
		escaped[i] = regexp.QuoteMeta(w)
	}
	re := regexp.MustCompile(`(?i)\b(` + strings.Join(escaped, "|") + `)\b`)
	p := &stopwordPattern{re: re}
	patternCache.Store(key, p)
	return p
}

// removeStopwords deletes whole-word, case-insensitive matches of words from
// text. It operates on the already lowercased, already stemmed/lemmatized
// text, matching the pipeline's step ordering.
func removeStopwords(text string, words []string) string {
	p := compileStopwords(words)
	if p.re == nil {
		return text
	}
	return p.re.ReplaceAllString(text, "")
}
