package vdom

import (
	"errors"
	"sync"
	"testing"

	"github.com/vango-dev/zx/pkg/vtest"
	"github.com/vango-dev/zx/pkg/zx"
)

var (
	_ Backend         = (*vtest.DOM)(nil)
	_ Releaser        = (*vtest.DOM)(nil)
	_ ContainerFinder = (*vtest.DOM)(nil)
	_ MarkerFinder    = (*vtest.DOM)(nil)
	_ EventBinder     = (*vtest.DOM)(nil)
)

func el(tag string, attrs []zx.Attribute, children ...zx.Component) zx.Component {
	return zx.Element(tag, zx.ElementOptions{Attributes: attrs, Children: children})
}

func attrs(kv ...string) []zx.Attribute {
	var out []zx.Attribute
	for i := 0; i+1 < len(kv); i += 2 {
		out = append(out, zx.Attr(kv[i], kv[i+1]))
	}
	return out
}

func items(labels ...string) []zx.Component {
	out := make([]zx.Component, len(labels))
	for i, l := range labels {
		out[i] = el("li", nil, zx.Text(l))
	}
	return out
}

type fixture struct {
	dom  *vtest.DOM
	root *vtest.Node
	tree *Tree
}

func mount(t *testing.T, c zx.Component) *fixture {
	t.Helper()
	return mountWith(t, c, Options{})
}

func mountWith(t *testing.T, c zx.Component, opts Options) *fixture {
	t.Helper()
	dom := vtest.NewDOM()
	root := dom.AddContainer("app")
	tree, err := NewClient(dom, opts).Mount("app", c)
	if err != nil {
		t.Fatalf("Mount: %v", err)
	}
	return &fixture{dom: dom, root: root, tree: tree}
}

// checkRegistry verifies that every live backend node besides the container
// is registered in the tree.
func (f *fixture) checkRegistry(t *testing.T) {
	t.Helper()
	if got, want := f.dom.Live(), f.tree.Len()+1; got != want {
		t.Errorf("live nodes = %d, want %d (registered elements + container)", got, want)
	}
}

func TestMount(t *testing.T) {
	f := mount(t, el("div", attrs("class", "card", "id", "main"),
		el("h1", nil, zx.Text("Title")),
		el("p", nil, zx.Text("a < b")),
	))

	vtest.ExpectHTML(t, f.root, `<div class="card" id="main"><h1>Title</h1><p>a &lt; b</p></div>`)
	if got := f.tree.Len(); got != 5 {
		t.Errorf("Len = %d, want 5", got)
	}
	root := f.tree.Root()
	if root.ID != 1 {
		t.Errorf("root ID = %d, want 1", root.ID)
	}
	if v, ok := f.tree.Lookup(root.ID); !ok || v != root {
		t.Errorf("Lookup(%d) = %v, %v", root.ID, v, ok)
	}
	if len(root.Children) != 2 || root.Children[0].Component.Tag != "h1" {
		t.Errorf("unexpected children: %+v", root.Children)
	}
	f.checkRegistry(t)
}

func TestMountContainerNotFound(t *testing.T) {
	dom := vtest.NewDOM()
	if _, err := NewClient(dom, Options{}).Mount("missing", el("div", nil)); !errors.Is(err, ErrContainerNotFound) {
		t.Errorf("err = %v, want ErrContainerNotFound", err)
	}

	// A backend that cannot locate containers.
	type plain struct{ Backend }
	dom.AddContainer("app")
	if _, err := NewClient(plain{dom}, Options{}).Mount("app", el("div", nil)); !errors.Is(err, ErrContainerNotFound) {
		t.Errorf("err = %v, want ErrContainerNotFound", err)
	}
}

func TestMountMarkers(t *testing.T) {
	dom := vtest.NewDOM()
	body := dom.AddContainer("body")
	dom.AddMarkers(body, "zx-1")
	dom.AddMarkers(body, "zx-2")

	tree, err := NewClient(dom, Options{}).MountMarkers("zx-1", el("button", attrs("class", "count"), zx.Text("0")))
	if err != nil {
		t.Fatalf("MountMarkers: %v", err)
	}
	vtest.ExpectHTML(t, body, `<!--zx:zx-1--><button class="count">0</button><!--/zx:zx-1--><!--zx:zx-2--><!--/zx:zx-2-->`)
	if tree.Container() != body {
		t.Errorf("Container = %v, want marker parent", tree.Container())
	}

	if err := tree.Update(el("span", nil, zx.Text("1"))); err != nil {
		t.Fatalf("Update: %v", err)
	}
	vtest.ExpectHTML(t, body, `<!--zx:zx-1--><span>1</span><!--/zx:zx-1--><!--zx:zx-2--><!--/zx:zx-2-->`)

	if err := tree.Unmount(); err != nil {
		t.Fatalf("Unmount: %v", err)
	}
	vtest.ExpectHTML(t, body, `<!--zx:zx-1--><!--/zx:zx-1--><!--zx:zx-2--><!--/zx:zx-2-->`)
}

func TestMountMarkersNotFound(t *testing.T) {
	dom := vtest.NewDOM()
	body := dom.AddContainer("body")
	dom.AddMarkers(body, "zx-1")

	if _, err := NewClient(dom, Options{}).MountMarkers("zx-9", el("div", nil)); !errors.Is(err, ErrContainerNotFound) {
		t.Errorf("err = %v, want ErrContainerNotFound", err)
	}
	if len(body.Children) != 2 {
		t.Errorf("markers disturbed: %s", body.InnerHTML())
	}

	type plain struct{ Backend }
	if _, err := NewClient(plain{dom}, Options{}).MountMarkers("zx-1", el("div", nil)); !errors.Is(err, ErrContainerNotFound) {
		t.Errorf("err = %v, want ErrContainerNotFound", err)
	}
}

func TestMountFragments(t *testing.T) {
	f := mount(t, zx.Fragment(items("a", "b")...))
	vtest.ExpectHTML(t, f.root, `<zx-fragment style="display:contents"><li>a</li><li>b</li></zx-fragment>`)

	if err := f.tree.Update(zx.Fragment(items("a", "b", "c")...)); err != nil {
		t.Fatal(err)
	}
	vtest.ExpectHTML(t, f.root, `<zx-fragment style="display:contents"><li>a</li><li>b</li><li>c</li></zx-fragment>`)
	f.checkRegistry(t)
}

func TestMountNothing(t *testing.T) {
	f := mount(t, zx.Component{})
	vtest.ExpectHTML(t, f.root, `<zx-fragment style="display:contents"></zx-fragment>`)
}

func TestMountRawText(t *testing.T) {
	f := mount(t, el("div", nil,
		zx.RawText("<b>bold</b>"),
		el("script", nil, zx.RawText("if (a < b) go()")),
	))
	vtest.ExpectHTML(t, f.root,
		`<div><zx-raw style="display:contents"><b>bold</b></zx-raw><script>if (a < b) go()</script></div>`)

	if err := f.tree.Update(el("div", nil,
		zx.RawText("<i>it</i>"),
		el("script", nil, zx.RawText("stop()")),
	)); err != nil {
		t.Fatal(err)
	}
	vtest.ExpectHTML(t, f.root,
		`<div><zx-raw style="display:contents"><i>it</i></zx-raw><script>stop()</script></div>`)
}

func TestMountIsland(t *testing.T) {
	island := func(start int) zx.Component {
		return zx.Island(zx.IslandRef{ID: "zx-1", Name: "Counter", Path: "app/Counter.tsx"}, zx.Props{"start": start})
	}
	f := mount(t, el("section", nil, island(1), island(2)))

	first := f.root.Find("div")
	want := map[string]string{
		"id":               "zx-1",
		zx.AttrIslandName:  "Counter",
		zx.AttrIslandPath:  "app/Counter.tsx",
		zx.AttrIslandProps: `{"start":1}`,
		AttrMount:          "1",
	}
	for k, v := range want {
		if got := first.Attrs[k]; got != v {
			t.Errorf("%s = %q, want %q", k, got, v)
		}
	}
	second := f.root.Children[0].Children[1]
	if got := second.Attrs[AttrMount]; got != "2" {
		t.Errorf("second mount id = %q, want 2", got)
	}

	patches, err := f.tree.Diff(el("section", nil, island(5), island(2)))
	if err != nil {
		t.Fatal(err)
	}
	if len(patches) != 1 || patches[0].Op != PatchUpdate {
		t.Fatalf("patches = %+v, want one update", patches)
	}
	if got := patches[0].SetAttrs; len(got) != 1 || got[zx.AttrIslandProps] != `{"start":5}` {
		t.Errorf("SetAttrs = %v", got)
	}
	if err := f.tree.Apply(patches); err != nil {
		t.Fatal(err)
	}
	if got := first.Attrs[AttrMount]; got != "1" {
		t.Errorf("mount id changed to %q", got)
	}
}

type cardProps struct {
	Title string
	Fail  bool
}

var errCard = errors.New("card failed")

func card(p cardProps) (zx.Component, error) {
	if p.Fail {
		return zx.Component{}, errCard
	}
	return el("article", nil, el("h2", nil, zx.Text(p.Title))), nil
}

func hidden(struct{}) *zx.Component { return nil }

func TestMountComponents(t *testing.T) {
	f := mount(t, el("main", nil,
		zx.Lazy(card, cardProps{Title: "One"}),
		zx.Lazy(hidden, struct{}{}),
		zx.Lazy(card, cardProps{Title: "Two"}),
	))
	vtest.ExpectHTML(t, f.root, `<main><article><h2>One</h2></article><article><h2>Two</h2></article></main>`)

	if err := f.tree.Update(el("main", nil,
		zx.Lazy(card, cardProps{Title: "Uno"}),
		zx.Lazy(card, cardProps{Title: "Two"}),
	)); err != nil {
		t.Fatal(err)
	}
	vtest.ExpectHTML(t, f.root, `<main><article><h2>Uno</h2></article><article><h2>Two</h2></article></main>`)
	f.checkRegistry(t)
}

func TestMountComponentError(t *testing.T) {
	failing := el("main", nil, zx.Lazy(card, cardProps{Fail: true}), zx.Text("after"))

	dom := vtest.NewDOM()
	root := dom.AddContainer("app")
	_, err := NewClient(dom, Options{}).Mount("app", failing)
	var evalErr *zx.EvalError
	if !errors.As(err, &evalErr) || !errors.Is(err, errCard) {
		t.Fatalf("err = %v, want EvalError wrapping errCard", err)
	}
	vtest.ExpectHTML(t, root, "")
	if got := dom.Live(); got != 1 {
		t.Errorf("live nodes after failed mount = %d, want 1", got)
	}

	f := mountWith(t, failing, Options{SkipComponentErrors: true})
	vtest.ExpectHTML(t, f.root, `<main>after</main>`)
}

func TestDispatchEvent(t *testing.T) {
	var got []zx.Event
	clicks := func(e zx.Event) { got = append(got, e) }
	button := func(h any) zx.Component {
		return el("button", []zx.Attribute{zx.Attr("onclick", h), zx.Attr("type", "button")}, zx.Text("+"))
	}

	f := mount(t, el("div", nil, button(clicks)))
	node := f.root.Find("button")
	id, ok := node.Events["click"]
	if !ok {
		t.Fatal("click not bound")
	}
	vtest.ExpectHTML(t, f.root, `<div><button type="button">+</button></div>`)

	if err := f.tree.DispatchEvent(id, "click", "ref"); err != nil {
		t.Fatal(err)
	}
	if len(got) != 1 || got[0].Target != id || got[0].Type != "click" || got[0].Ref != "ref" {
		t.Errorf("events = %+v", got)
	}

	if err := f.tree.DispatchEvent(id, "input", nil); !errors.Is(err, ErrHandlerNotFound) {
		t.Errorf("err = %v, want ErrHandlerNotFound", err)
	}

	// Re-registration replaces the handler.
	var replaced int
	if err := f.tree.Update(el("div", nil, button(func() { replaced++ }))); err != nil {
		t.Fatal(err)
	}
	if err := f.tree.DispatchEvent(id, "click", nil); err != nil {
		t.Fatal(err)
	}
	if replaced != 1 || len(got) != 1 {
		t.Errorf("replaced = %d, original calls = %d", replaced, len(got))
	}

	// Dropping the attribute unregisters and unbinds it.
	if err := f.tree.Update(el("div", nil, button(nil))); err != nil {
		t.Fatal(err)
	}
	if err := f.tree.DispatchEvent(id, "click", nil); !errors.Is(err, ErrHandlerNotFound) {
		t.Errorf("err = %v, want ErrHandlerNotFound", err)
	}
	if _, ok := node.Events["click"]; ok {
		t.Error("click still bound")
	}
}

func TestDeletionUnregisters(t *testing.T) {
	var clicked []string
	row := func(label string) zx.Component {
		return el("li", []zx.Attribute{zx.Attr("onclick", func() { clicked = append(clicked, label) })}, zx.Text(label))
	}
	f := mount(t, el("ul", nil, row("a"), row("b")))

	second := f.tree.Root().Children[1]
	if err := f.tree.Update(el("ul", nil, row("a"))); err != nil {
		t.Fatal(err)
	}
	if _, ok := f.tree.Lookup(second.ID); ok {
		t.Error("deleted element still registered")
	}
	if err := f.tree.DispatchEvent(second.ID, "click", nil); !errors.Is(err, ErrHandlerNotFound) {
		t.Errorf("err = %v, want ErrHandlerNotFound", err)
	}
	first := f.tree.Root().Children[0]
	if err := f.tree.DispatchEvent(first.ID, "click", nil); err != nil {
		t.Fatal(err)
	}
	if len(clicked) != 1 || clicked[0] != "a" {
		t.Errorf("clicked = %v", clicked)
	}
	f.checkRegistry(t)
}

func TestUnmount(t *testing.T) {
	f := mount(t, el("div", nil, items("a", "b")...))
	if err := f.tree.Unmount(); err != nil {
		t.Fatal(err)
	}
	vtest.ExpectHTML(t, f.root, "")
	if f.tree.Len() != 0 || f.tree.Root() != nil {
		t.Errorf("tree not empty after unmount: len %d", f.tree.Len())
	}
	if got := f.dom.Live(); got != 1 {
		t.Errorf("live nodes = %d, want 1", got)
	}
	if _, err := f.tree.Diff(el("div", nil)); !errors.Is(err, ErrInvalidNodeOperation) {
		t.Errorf("Diff after unmount: err = %v", err)
	}
	if err := f.tree.Unmount(); err != nil {
		t.Errorf("second Unmount: %v", err)
	}
}

func TestClientIDs(t *testing.T) {
	c := NewClient(vtest.NewDOM(), Options{})

	const workers, per = 8, 500
	var (
		mu   sync.Mutex
		seen = make(map[uint64]bool)
		wg   sync.WaitGroup
	)
	for range workers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			ids := make([]uint64, per)
			for i := range ids {
				ids[i] = c.newID()
			}
			mu.Lock()
			defer mu.Unlock()
			for _, id := range ids {
				if seen[id] {
					t.Errorf("duplicate id %d", id)
				}
				seen[id] = true
			}
		}()
	}
	wg.Wait()
	if len(seen) != workers*per {
		t.Errorf("got %d ids, want %d", len(seen), workers*per)
	}

	// Counters are per client.
	other := NewClient(vtest.NewDOM(), Options{})
	if id := other.newID(); id != 1 {
		t.Errorf("first id of new client = %d, want 1", id)
	}
}
