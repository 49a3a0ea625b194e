package render

import (
	"strings"
	"testing"

	"golang.org/x/net/html"
)

// attrOf parses markup and returns the unescaped value of the first attr
// named key.
func attrOf(t *testing.T, markup, key string) string {
	t.Helper()

	z := html.NewTokenizer(strings.NewReader(markup))
	for {
		switch z.Next() {
		case html.ErrorToken:
			t.Fatalf("no %s attribute in %q", key, markup)
			return ""
		case html.StartTagToken, html.SelfClosingTagToken:
			for _, a := range z.Token().Attr {
				if a.Key == key {
					return a.Val
				}
			}
		}
	}
}
