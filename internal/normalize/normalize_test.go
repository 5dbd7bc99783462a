package normalize

import (
	"reflect"
	"testing"
)

func testNormalizer() *Normalizer {
	return New([]string{
		"this", "that", "about", "whom", "being",
		"where", "why", "had", "should", "each",
	}, nil)
}

func TestTokens_StripsHTMLAndURLs(t *testing.T) {
	n := testNormalizer()
	got := n.Tokens("Visit <b>http://example.com</b> or www.example.org for info@example.com")
	for _, tok := range got {
		if tok == "http" || tok == "www" || tok == "example" {
			t.Fatalf("expected links stripped, got token %q in %v", tok, got)
		}
	}
}

func TestTokens_RemovesFixedStopwords(t *testing.T) {
	n := testNormalizer()
	got := n.Tokens("this movie is about whales")
	for _, tok := range got {
		if tok == "this" || tok == "about" {
			t.Fatalf("stopword %q survived normalization: %v", tok, got)
		}
	}
}

func TestTokens_Idempotent(t *testing.T) {
	n := testNormalizer()
	inputs := []string{
		"The Quick Brown Fox Jumps Over The Lazy Dog!",
		"A drama about friendship, loss, and redemption.",
		"<p>Some HTML &#169; 2024 www.example.com</p>",
	}
	for _, in := range inputs {
		once := n.Tokens(in)
		twice := n.Tokens(joinWithSpace(once))
		if !reflect.DeepEqual(once, twice) {
			t.Fatalf("Normalize not idempotent for %q:\n once=%v\n twice=%v", in, once, twice)
		}
	}
}

func TestStars_LowercaseOnlyNoStemming(t *testing.T) {
	n := testNormalizer()
	got := n.Stars([]string{"Tom Holland", "Zendaya"})
	want := []string{"tom holland", "zendaya"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("Stars() = %v, want %v", got, want)
	}
}

func TestField_PreservesPerValueShape(t *testing.T) {
	n := testNormalizer()
	got := n.Field([]string{"Drama", "Crime Thriller"})
	if len(got) != 2 {
		t.Fatalf("expected 2 normalized values, got %d: %v", len(got), got)
	}
}

func joinWithSpace(tokens []string) string {
	out := ""
	for i, t := range tokens {
		if i > 0 {
			out += " "
		}
		out += t
	}
	return out
}
