package vtest

import (
	"strings"
	"testing"

	"golang.org/x/net/html"

	"github.com/vango-dev/zx/pkg/render"
	"github.com/vango-dev/zx/pkg/zx"
)

const excerpt = 500

// Render renders c with a default renderer and fails the test on error.
func Render(t testing.TB, c zx.Component) string {
	t.Helper()
	out, err := render.NewRenderer(render.Config{}).RenderToString(c)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	return out
}

// ExpectContains fails unless the rendered markup contains want.
func ExpectContains(t testing.TB, c zx.Component, want string) {
	t.Helper()
	if out := Render(t, c); !strings.Contains(out, want) {
		t.Errorf("rendered output lacks %q:\n%s", want, clip(out))
	}
}

func ExpectNotContains(t testing.TB, c zx.Component, unwanted string) {
	t.Helper()
	if out := Render(t, c); strings.Contains(out, unwanted) {
		t.Errorf("rendered output contains %q:\n%s", unwanted, clip(out))
	}
}

// ExpectElement fails unless the rendered markup has a <tag> element.
func ExpectElement(t testing.TB, c zx.Component, tag string) {
	t.Helper()
	out := Render(t, c)
	found := false
	walkTags(out, func(tok html.Token) bool {
		found = tok.Data == tag
		return !found
	})
	if !found {
		t.Errorf("rendered output has no <%s>:\n%s", tag, clip(out))
	}
}

// ExpectAttribute fails unless some element carries key="value". The value
// is compared after entity decoding.
func ExpectAttribute(t testing.TB, c zx.Component, key, value string) {
	t.Helper()
	out := Render(t, c)
	found := false
	walkTags(out, func(tok html.Token) bool {
		for _, a := range tok.Attr {
			if a.Key == key && a.Val == value {
				found = true
			}
		}
		return !found
	})
	if !found {
		t.Errorf("rendered output has no %s=%q:\n%s", key, value, clip(out))
	}
}

// ExpectHTML fails unless the serialized children of n equal want.
func ExpectHTML(t testing.TB, n *Node, want string) {
	t.Helper()
	if got := n.InnerHTML(); got != want {
		t.Errorf("DOM mismatch\n got: %s\nwant: %s", clip(got), want)
	}
}

// walkTags calls fn for each start tag until fn returns false.
func walkTags(markup string, fn func(html.Token) bool) {
	z := html.NewTokenizer(strings.NewReader(markup))
	for {
		switch z.Next() {
		case html.ErrorToken:
			return
		case html.StartTagToken, html.SelfClosingTagToken:
			if !fn(z.Token()) {
				return
			}
		}
	}
}

func clip(s string) string {
	if len(s) <= excerpt {
		return s
	}
	return s[:excerpt] + "..."
}
