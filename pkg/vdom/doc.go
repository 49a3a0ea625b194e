// Package vdom reconciles zx component trees against a live UI.
//
// A Client is bound to a Backend, the capability that owns real nodes
// (a browser bridge, an operation recorder, or the in-memory DOM in
// package vtest). Mount builds a component tree inside a container and
// returns a Tree. MountMarkers does the same between the <!--zx:ID-->
// <!--/zx:ID--> comments the server renderer writes for islands. Each mounted node is a VElement carrying a client-unique
// ID, the backend Handle and a snapshot of the component it displays.
//
// # Diffing
//
// Tree.Diff compares the mounted tree with a freshly built component tree
// and returns an ordered list of patches:
//
//	Update     set and remove attributes on a matching element
//	Placement  build a new subtree and append it to a parent
//	Deletion   remove a subtree
//	Replace    swap a subtree whose type changed
//
// Children are compared by position; there is no keyed move detection.
// Tree.Apply consumes the patches in order and keeps the id and event
// handler registries in sync. Tree.Update does both.
//
// Fragments have no element of their own in a component tree. The client
// materializes them as zx-fragment elements styled display:contents, so
// every VElement owns exactly one handle.
//
// # Events
//
// Event attributes register handlers under (VElement ID, event type).
// Backends implementing EventBinder are told when a type is bound and
// unbound; they report fired events through Tree.DispatchEvent.
//
// A Tree is single threaded. The id counters on Client are atomic, so
// trees of different goroutines may share a client.
package vdom
