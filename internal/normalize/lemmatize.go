package normalize

import "strings"

// lemmatize reduces a stemmed token to a noun-default lemma, collapsing the
// small class of irregular plural/suffix forms that Porter/snowball stemming
// alone leaves untouched. See DESIGN.md for why this stays a direct suffix
// rewrite rather than a dictionary-backed lemmatizer.
func lemmatize(token string) string {
	switch {
	case strings.HasSuffix(token, "ies") && len(token) > 4:
		return token[:len(token)-3] + "y"
	case strings.HasSuffix(token, "ves") && len(token) > 4:
		return token[:len(token)-3] + "f"
	case strings.HasSuffix(token, "ses") && len(token) > 4:
		return token[:len(token)-2]
	case strings.HasSuffix(token, "es") && len(token) > 3 && !strings.HasSuffix(token, "ees"):
		return token[:len(token)-2]
	case strings.HasSuffix(token, "s") &&
		!strings.HasSuffix(token, "ss") &&
		!strings.HasSuffix(token, "us") &&
		!strings.HasSuffix(token, "is") &&
		len(token) > 3:
		return token[:len(token)-1]
	default:
		return token
	}
}
