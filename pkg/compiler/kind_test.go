package compiler

import (
	"testing"

	"github.com/vango-dev/zx/pkg/syntax"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		typ  string
		want NodeKind
	}{
		{syntax.TypeZxBlock, KindMarkupRoot},
		{syntax.TypeElement, KindElement},
		{syntax.TypeForBlock, KindForBlock},
		{syntax.TypeBuiltinIdentifier, KindBuiltinIdentifier},
		{"unknown_node", KindOther},
	}

	for _, tt := range tests {
		t.Run(tt.typ, func(t *testing.T) {
			if got := Classify(&syntax.Node{Type: tt.typ}); got != tt.want {
				t.Errorf("Classify(%s) = %v, want %v", tt.typ, got, tt.want)
			}
		})
	}

	if Classify(nil) != KindOther {
		t.Error("Classify(nil) should be KindOther")
	}
}

func TestNodeKindPredicates(t *testing.T) {
	markup := []NodeKind{KindMarkupRoot, KindElement, KindSelfClosingElement, KindFragment}
	for _, k := range markup {
		if !k.IsMarkup() || k.IsControlFlow() {
			t.Errorf("%v: IsMarkup=%v IsControlFlow=%v", k, k.IsMarkup(), k.IsControlFlow())
		}
	}

	control := []NodeKind{KindIfExpression, KindIfBlock, KindForExpression, KindForBlock,
		KindWhileExpression, KindWhileBlock, KindSwitchExpression, KindSwitchBlock}
	for _, k := range control {
		if !k.IsControlFlow() || k.IsMarkup() {
			t.Errorf("%v: IsMarkup=%v IsControlFlow=%v", k, k.IsMarkup(), k.IsControlFlow())
		}
	}

	if KindText.IsMarkup() || KindBlock.IsControlFlow() {
		t.Error("text and blocks are neither markup nor control flow")
	}
}

func TestNodeKindString(t *testing.T) {
	if got := KindElement.String(); got != syntax.TypeElement {
		t.Errorf("String() = %q", got)
	}
	if got := KindOther.String(); got != "other" {
		t.Errorf("String() = %q", got)
	}
}
