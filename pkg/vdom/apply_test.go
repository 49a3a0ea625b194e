package vdom

import (
	"errors"
	"testing"

	"github.com/vango-dev/zx/pkg/vtest"
	"github.com/vango-dev/zx/pkg/zx"
)

var errRejected = errors.New("rejected")

// faulty rejects setting one attribute name.
type faulty struct {
	*vtest.DOM
	reject string
}

func (f *faulty) SetAttribute(h Handle, name, value string) error {
	if name == f.reject {
		return errRejected
	}
	return f.DOM.SetAttribute(h, name, value)
}

func TestApplyAbortsOnBackendError(t *testing.T) {
	dom := vtest.NewDOM()
	root := dom.AddContainer("app")
	tree, err := NewClient(&faulty{DOM: dom, reject: "data-bad"}, Options{}).Mount("app", el("ul", nil, items("a")...))
	if err != nil {
		t.Fatal(err)
	}

	patches, err := tree.Diff(el("ul", attrs("data-bad", "1"), items("a", "b")...))
	if err != nil {
		t.Fatal(err)
	}
	if len(patches) != 2 || patches[0].Op != PatchUpdate || patches[1].Op != PatchPlacement {
		t.Fatalf("patches = %+v", patches)
	}

	err = tree.Apply(patches)
	if !errors.Is(err, ErrInvalidNodeOperation) || !errors.Is(err, errRejected) {
		t.Fatalf("err = %v, want ErrInvalidNodeOperation wrapping errRejected", err)
	}
	var opErr *OpError
	if !errors.As(err, &opErr) || opErr.Op != "SetAttribute" || opErr.ID != tree.Root().ID {
		t.Errorf("OpError = %+v", opErr)
	}
	// The placement after the failing update was not applied.
	vtest.ExpectHTML(t, root, `<ul><li>a</li></ul>`)
	if got := len(tree.Root().Children); got != 1 {
		t.Errorf("children = %d, want 1", got)
	}
}

func TestApplyAppendToTextNode(t *testing.T) {
	f := mount(t, el("p", nil, zx.Text("x")))
	text := f.tree.Root().Children[0]

	err := f.tree.Apply([]Patch{{Op: PatchPlacement, Parent: text, New: el("b", nil)}})
	if !errors.Is(err, ErrInvalidNodeOperation) || !errors.Is(err, vtest.ErrTextNode) {
		t.Fatalf("err = %v, want invalid node operation", err)
	}
	if len(text.Children) != 0 {
		t.Error("failed placement recorded a child")
	}
	f.checkRegistry(t)
}

func TestApplyStalePatch(t *testing.T) {
	f := mount(t, el("ul", nil, items("a", "b")...))

	patches, err := f.tree.Diff(el("ul", nil, items("a")...))
	if err != nil {
		t.Fatal(err)
	}
	if err := f.tree.Apply(patches); err != nil {
		t.Fatal(err)
	}
	if err := f.tree.Apply(patches); !errors.Is(err, ErrInvalidNodeOperation) {
		t.Errorf("reapplying a deletion: err = %v, want ErrInvalidNodeOperation", err)
	}
	vtest.ExpectHTML(t, f.root, `<ul><li>a</li></ul>`)
}

func TestApplyPlacementBeforeRef(t *testing.T) {
	f := mount(t, el("ol", nil, items("a", "c")...))
	parent := f.tree.Root()

	err := f.tree.Apply([]Patch{{Op: PatchPlacement, Parent: parent, Ref: parent.Children[1], New: items("b")[0]}})
	if err != nil {
		t.Fatal(err)
	}
	vtest.ExpectHTML(t, f.root, `<ol><li>a</li><li>b</li><li>c</li></ol>`)
	if got := parent.Children[1].Snapshot().Children[0].Text; got != "b" {
		t.Errorf("children[1] = %q, want b", got)
	}

	// The reference must be a child of the parent.
	err = f.tree.Apply([]Patch{{Op: PatchPlacement, Parent: parent, Ref: parent, New: items("x")[0]}})
	if !errors.Is(err, ErrInvalidNodeOperation) {
		t.Errorf("err = %v, want ErrInvalidNodeOperation", err)
	}
	f.checkRegistry(t)
}

func TestApplyRootDeletionRejected(t *testing.T) {
	f := mount(t, el("div", nil))
	err := f.tree.Apply([]Patch{{Op: PatchDeletion, Target: f.tree.Root()}})
	if !errors.Is(err, ErrInvalidNodeOperation) {
		t.Errorf("err = %v, want ErrInvalidNodeOperation", err)
	}
}

func TestPatchOpString(t *testing.T) {
	tests := []struct {
		op   PatchOp
		want string
	}{
		{PatchUpdate, "Update"},
		{PatchPlacement, "Placement"},
		{PatchDeletion, "Deletion"},
		{PatchReplace, "Replace"},
		{0, "Unknown"},
	}
	for _, tt := range tests {
		if got := tt.op.String(); got != tt.want {
			t.Errorf("%d.String() = %q, want %q", tt.op, got, tt.want)
		}
	}
}
