// Package vtest provides testing helpers for zx components.
//
// # Render Assertions
//
// Assert on server-rendered HTML. Markup is tokenized with x/net/html, so
// attribute values compare after entity decoding:
//
//	html := vtest.Render(t, Card(props))
//	vtest.ExpectContains(t, Greeting(GreetingProps{Name: "Ada"}), "Hello, Ada")
//	vtest.ExpectNotContains(t, comp, "Login")
//	vtest.ExpectAttribute(t, comp, "class", "btn-primary")
//
// # In-Memory DOM
//
// DOM is a headless UI backend for the vdom reconciler. It keeps a real
// node tree, rejects the operations a browser would reject, and serializes
// to HTML for assertions:
//
//	dom := vtest.NewDOM()
//	root := dom.AddContainer("app")
//	tree, err := vdom.NewClient(dom, vdom.Options{}).Mount("app", Page(props))
//	if err != nil {
//	    t.Fatal(err)
//	}
//	vtest.ExpectHTML(t, root, "<main><h1>Title</h1></main>")
//
// Bound events are recorded on each Node, so a test can look up the
// VElement id a click reports and pass it to Tree.DispatchEvent.
package vtest
