package vdom

import (
	"reflect"
	"testing"

	"github.com/vango-dev/zx/pkg/vtest"
	"github.com/vango-dev/zx/pkg/zx"
)

func TestDiffAgainstSnapshotIsEmpty(t *testing.T) {
	noop := func() {}
	tests := []struct {
		name string
		tree zx.Component
	}{
		{"element", el("div", attrs("class", "a"))},
		{"text root", zx.Text("hello")},
		{"nested", el("ul", attrs("id", "list"), items("a", "b", "c")...)},
		{"fragment", zx.Fragment(el("p", nil, zx.Text("x")), zx.Text("y"))},
		{"raw", el("div", nil, zx.RawText("<b>x</b>"))},
		{"events", el("button", []zx.Attribute{zx.Attr("onclick", noop)}, zx.Text("go"))},
		{"island", zx.Island(zx.IslandRef{ID: "zx-1", Name: "C", Path: "c.tsx"}, zx.Props{"n": 1})},
		{"component", el("main", nil, zx.Lazy(card, cardProps{Title: "t"}))},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := mount(t, tt.tree)
			f.dom.ResetOps()

			patches, err := f.tree.Diff(f.tree.Snapshot())
			if err != nil {
				t.Fatal(err)
			}
			if len(patches) != 0 {
				t.Errorf("patches = %+v, want none", patches)
			}
			if len(f.dom.Ops) != 0 {
				t.Errorf("backend ops = %q, want none", f.dom.Ops)
			}
		})
	}
}

func TestDiffTypeMismatchReplaces(t *testing.T) {
	f := mount(t, el("div", attrs("class", "a"), zx.Text("x")))
	old := f.tree.Root()

	patches, err := f.tree.Diff(el("span", attrs("class", "b"), zx.Text("y")))
	if err != nil {
		t.Fatal(err)
	}
	if len(patches) != 1 {
		t.Fatalf("got %d patches, want 1: %+v", len(patches), patches)
	}
	p := patches[0]
	if p.Op != PatchReplace || p.Target != old || p.Parent != nil || p.New.Tag != "span" {
		t.Errorf("patch = %+v, want root replace", p)
	}

	if err := f.tree.Apply(patches); err != nil {
		t.Fatal(err)
	}
	vtest.ExpectHTML(t, f.root, `<span class="b">y</span>`)
	if f.tree.Root() == old {
		t.Error("root not swapped")
	}
	if !old.DOM.(*vtest.Node).Released() {
		t.Error("old root not released")
	}
	f.checkRegistry(t)
}

func TestDiffReplaceChild(t *testing.T) {
	f := mount(t, el("div", nil, zx.Text("a"), el("b", nil), zx.RawText("<i>r</i>")))

	patches, err := f.tree.Diff(el("div", nil, el("i", nil), el("b", nil), zx.Text("<i>r</i>")))
	if err != nil {
		t.Fatal(err)
	}
	var ops []PatchOp
	for _, p := range patches {
		ops = append(ops, p.Op)
	}
	if want := []PatchOp{PatchReplace, PatchReplace}; !reflect.DeepEqual(ops, want) {
		t.Fatalf("ops = %v, want %v", ops, want)
	}
	if patches[0].Parent != f.tree.Root() {
		t.Error("replace should carry the parent element")
	}

	if err := f.tree.Apply(patches); err != nil {
		t.Fatal(err)
	}
	vtest.ExpectHTML(t, f.root, `<div><i></i><b></b>&lt;i&gt;r&lt;/i&gt;</div>`)
	f.checkRegistry(t)
}

func TestDiffAttributes(t *testing.T) {
	f := mount(t, el("div", attrs("class", "a", "id", "x")))

	patches, err := f.tree.Diff(el("div", attrs("class", "b")))
	if err != nil {
		t.Fatal(err)
	}
	if len(patches) != 1 || patches[0].Op != PatchUpdate {
		t.Fatalf("patches = %+v, want one update", patches)
	}
	p := patches[0]
	if want := map[string]string{"class": "b"}; !reflect.DeepEqual(p.SetAttrs, want) {
		t.Errorf("SetAttrs = %v, want %v", p.SetAttrs, want)
	}
	if want := []string{"id"}; !reflect.DeepEqual(p.RemoveAttrs, want) {
		t.Errorf("RemoveAttrs = %v, want %v", p.RemoveAttrs, want)
	}

	if err := f.tree.Apply(patches); err != nil {
		t.Fatal(err)
	}
	vtest.ExpectHTML(t, f.root, `<div class="b"></div>`)

	// The snapshot follows the applied update.
	if patches, _ := f.tree.Diff(el("div", attrs("class", "b"))); len(patches) != 0 {
		t.Errorf("second diff = %+v, want none", patches)
	}
}

func TestDiffAttributeTable(t *testing.T) {
	tests := []struct {
		name       string
		prev, next map[string]string
		set        map[string]string
		remove     []string
	}{
		{"equal", map[string]string{"a": "1"}, map[string]string{"a": "1"}, nil, nil},
		{"added", nil, map[string]string{"a": "1"}, map[string]string{"a": "1"}, nil},
		{"changed", map[string]string{"a": "1"}, map[string]string{"a": "2"}, map[string]string{"a": "2"}, nil},
		{"removed sorted", map[string]string{"z": "", "b": "", "k": "1"}, map[string]string{"k": "1"}, nil, []string{"b", "z"}},
		{"bare to valued", map[string]string{"disabled": ""}, map[string]string{"disabled": "disabled"}, map[string]string{"disabled": "disabled"}, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			set, remove := diffAttributes(tt.prev, tt.next)
			if !reflect.DeepEqual(set, tt.set) {
				t.Errorf("set = %v, want %v", set, tt.set)
			}
			if !reflect.DeepEqual(remove, tt.remove) {
				t.Errorf("remove = %v, want %v", remove, tt.remove)
			}
		})
	}
}

func TestDiffEventAttributesIgnored(t *testing.T) {
	f := mount(t, el("button", []zx.Attribute{zx.Attr("onclick", func() {})}))
	patches, err := f.tree.Diff(el("button", []zx.Attribute{zx.Attr("onclick", func() {})}))
	if err != nil {
		t.Fatal(err)
	}
	if len(patches) != 0 {
		t.Errorf("patches = %+v, want none", patches)
	}
}

func TestDiffChildrenDeletion(t *testing.T) {
	f := mount(t, el("ul", nil, items("1", "2", "3", "4", "5")...))
	old := append([]*VElement(nil), f.tree.Root().Children...)

	patches, err := f.tree.Diff(el("ul", nil, items("1", "2", "3")...))
	if err != nil {
		t.Fatal(err)
	}
	if len(patches) != 2 {
		t.Fatalf("got %d patches, want 2: %+v", len(patches), patches)
	}
	for i, p := range patches {
		if p.Op != PatchDeletion || p.Target != old[3+i] || p.Parent != f.tree.Root() {
			t.Errorf("patch %d = %+v, want deletion of child %d", i, p, 3+i)
		}
	}

	if err := f.tree.Apply(patches); err != nil {
		t.Fatal(err)
	}
	vtest.ExpectHTML(t, f.root, `<ul><li>1</li><li>2</li><li>3</li></ul>`)
	if got := len(f.tree.Root().Children); got != 3 {
		t.Errorf("children = %d, want 3", got)
	}
	f.checkRegistry(t)
}

func TestDiffChildrenPlacement(t *testing.T) {
	f := mount(t, el("ul", nil, items("1")...))

	patches, err := f.tree.Diff(el("ul", nil, items("1", "2", "3")...))
	if err != nil {
		t.Fatal(err)
	}
	if len(patches) != 2 {
		t.Fatalf("got %d patches, want 2: %+v", len(patches), patches)
	}
	for i, p := range patches {
		if p.Op != PatchPlacement || p.Parent != f.tree.Root() || p.Ref != nil {
			t.Errorf("patch %d = %+v, want appending placement", i, p)
		}
	}
	if got := patches[1].New.Children[0].Text; got != "3" {
		t.Errorf("second placement text = %q, want 3", got)
	}

	if err := f.tree.Apply(patches); err != nil {
		t.Fatal(err)
	}
	vtest.ExpectHTML(t, f.root, `<ul><li>1</li><li>2</li><li>3</li></ul>`)
	f.checkRegistry(t)
}

func TestDiffTextUpdatesInPlace(t *testing.T) {
	f := mount(t, el("p", nil, zx.Text("before")))
	f.dom.ResetOps()

	patches, err := f.tree.Diff(el("p", nil, zx.Text("after")))
	if err != nil {
		t.Fatal(err)
	}
	if len(patches) != 0 {
		t.Errorf("patches = %+v, want none", patches)
	}
	vtest.ExpectHTML(t, f.root, `<p>after</p>`)
	if want := []string{`SetNodeValue "after"`}; !reflect.DeepEqual(f.dom.Ops, want) {
		t.Errorf("ops = %q, want %q", f.dom.Ops, want)
	}
	if got := f.tree.Snapshot().Children[0].Text; got != "after" {
		t.Errorf("snapshot text = %q", got)
	}
}

func TestDiffNested(t *testing.T) {
	f := mount(t, el("div", nil,
		el("header", attrs("class", "top"), zx.Text("T")),
		el("ul", nil, items("a", "b")...),
	))

	err := f.tree.Update(el("div", nil,
		el("header", attrs("class", "top sticky"), zx.Text("T2")),
		el("ul", nil, items("a")...),
		el("footer", nil),
	))
	if err != nil {
		t.Fatal(err)
	}
	vtest.ExpectHTML(t, f.root,
		`<div><header class="top sticky">T2</header><ul><li>a</li></ul><footer></footer></div>`)
	f.checkRegistry(t)
}
