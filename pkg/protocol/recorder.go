package protocol

import (
	"errors"
	"fmt"
	"io"

	"github.com/vango-dev/zx/pkg/vdom"
)

// NodeRef is the handle type of a Recorder.
type NodeRef uint64

// Recorder errors.
var (
	ErrUnknownNode = errors.New("protocol: unknown or released node")
	ErrTextNode    = errors.New("protocol: operation not supported on a text node")
	ErrNotChild    = errors.New("protocol: node is not a child of parent")
)

var (
	_ vdom.Backend         = (*Recorder)(nil)
	_ vdom.Releaser        = (*Recorder)(nil)
	_ vdom.ContainerFinder = (*Recorder)(nil)
	_ vdom.EventBinder     = (*Recorder)(nil)
)

type recNode struct {
	text   bool
	parent NodeRef
}

// Recorder is a vdom.Backend that records operations for a remote UI
// instead of performing them. It tracks enough structure to reject the
// operations the remote side would reject, so a bad patch fails the batch
// on the recording side.
//
// Recorded operations are sent with Flush and replayed on the other end by
// a Replayer.
type Recorder struct {
	seq        uint64
	next       NodeRef
	nodes      map[NodeRef]*recNode
	containers map[string]NodeRef
	pending    []Op
}

// NewRecorder creates an empty recorder.
func NewRecorder() *Recorder {
	return &Recorder{
		nodes:      make(map[NodeRef]*recNode),
		containers: make(map[string]NodeRef),
	}
}

// Container declares a mount point on the remote side and returns its node.
func (r *Recorder) Container(id string) NodeRef {
	if n, ok := r.containers[id]; ok {
		return n
	}
	n := r.alloc(false)
	r.containers[id] = n
	r.record(Op{Code: OpContainer, Node: uint64(n), Name: id})
	return n
}

// FindContainer returns a mount point declared with Container.
func (r *Recorder) FindContainer(id string) (any, bool) {
	n, ok := r.containers[id]
	if !ok {
		return nil, false
	}
	return n, true
}

// Pending returns the operations recorded since the last flush.
func (r *Recorder) Pending() []Op {
	return r.pending
}

// Frames drains the pending operations into frames. A batch that does not
// fit in one frame is split; the last frame carries FlagFinal. Frames
// returns nil when nothing is pending.
func (r *Recorder) Frames() ([]*Frame, error) {
	if len(r.pending) == 0 {
		return nil, nil
	}
	r.seq++

	var (
		frames []*Frame
		body   = NewEncoder()
		one    = NewEncoder()
		count  uint64
	)
	emit := func() {
		enc := NewEncoder()
		enc.WriteUvarint(r.seq)
		enc.WriteUvarint(count)
		enc.WriteBytes(body.Bytes())
		frames = append(frames, NewFrame(FrameOps, 0, enc.Bytes()))
		body.Reset()
		count = 0
	}
	// Room for the sequence number and count varints.
	const overhead = 2 * 10

	for _, op := range r.pending {
		one.Reset()
		EncodeOp(one, op)
		if one.Len()+overhead > MaxPayloadSize {
			return nil, fmt.Errorf("%w: %s op of %d bytes", ErrFrameTooLarge, op.Code, one.Len())
		}
		if body.Len()+one.Len()+overhead > MaxPayloadSize {
			emit()
		}
		body.WriteBytes(one.Bytes())
		count++
	}
	emit()
	frames[len(frames)-1].Flags |= FlagFinal

	r.pending = r.pending[:0]
	return frames, nil
}

// Flush writes the pending operations to w.
func (r *Recorder) Flush(w io.Writer) error {
	frames, err := r.Frames()
	if err != nil {
		return err
	}
	for _, f := range frames {
		if err := WriteFrame(w, f); err != nil {
			return err
		}
	}
	return nil
}

func (r *Recorder) alloc(text bool) NodeRef {
	r.next++
	r.nodes[r.next] = &recNode{text: text}
	return r.next
}

func (r *Recorder) record(op Op) {
	r.pending = append(r.pending, op)
}

func (r *Recorder) node(h any) (NodeRef, *recNode, error) {
	ref, ok := h.(NodeRef)
	if !ok {
		return 0, nil, fmt.Errorf("%w: %T", ErrUnknownNode, h)
	}
	n, ok := r.nodes[ref]
	if !ok {
		return 0, nil, fmt.Errorf("%w: %d", ErrUnknownNode, ref)
	}
	return ref, n, nil
}

func (r *Recorder) element(h any) (NodeRef, *recNode, error) {
	ref, n, err := r.node(h)
	if err != nil {
		return 0, nil, err
	}
	if n.text {
		return 0, nil, ErrTextNode
	}
	return ref, n, nil
}

// CreateElement records an element creation.
func (r *Recorder) CreateElement(tag string) (any, error) {
	n := r.alloc(false)
	r.record(Op{Code: OpCreateElement, Node: uint64(n), Name: tag})
	return n, nil
}

// CreateTextNode records a text node creation.
func (r *Recorder) CreateTextNode(text string) (any, error) {
	n := r.alloc(true)
	r.record(Op{Code: OpCreateText, Node: uint64(n), Value: text})
	return n, nil
}

// AppendChild records moving child to the end of parent.
func (r *Recorder) AppendChild(parent, child any) error {
	p, _, err := r.element(parent)
	if err != nil {
		return err
	}
	c, cn, err := r.node(child)
	if err != nil {
		return err
	}
	cn.parent = p
	r.record(Op{Code: OpAppendChild, Node: uint64(c), Parent: uint64(p)})
	return nil
}

// RemoveChild records detaching child from parent.
func (r *Recorder) RemoveChild(parent, child any) error {
	p, _, err := r.element(parent)
	if err != nil {
		return err
	}
	c, cn, err := r.node(child)
	if err != nil {
		return err
	}
	if cn.parent != p {
		return ErrNotChild
	}
	cn.parent = 0
	r.record(Op{Code: OpRemoveChild, Node: uint64(c), Parent: uint64(p)})
	return nil
}

// ReplaceChild records swapping oldChild for newChild.
func (r *Recorder) ReplaceChild(parent, newChild, oldChild any) error {
	p, _, err := r.element(parent)
	if err != nil {
		return err
	}
	n, nn, err := r.node(newChild)
	if err != nil {
		return err
	}
	o, on, err := r.node(oldChild)
	if err != nil {
		return err
	}
	if on.parent != p {
		return ErrNotChild
	}
	on.parent, nn.parent = 0, p
	r.record(Op{Code: OpReplaceChild, Node: uint64(n), Parent: uint64(p), Ref: uint64(o)})
	return nil
}

// InsertBefore records inserting newChild before ref, or appending it when
// ref is nil.
func (r *Recorder) InsertBefore(parent, newChild, ref any) error {
	if ref == nil {
		return r.AppendChild(parent, newChild)
	}
	p, _, err := r.element(parent)
	if err != nil {
		return err
	}
	n, nn, err := r.node(newChild)
	if err != nil {
		return err
	}
	s, sn, err := r.node(ref)
	if err != nil {
		return err
	}
	if sn.parent != p {
		return ErrNotChild
	}
	nn.parent = p
	r.record(Op{Code: OpInsertBefore, Node: uint64(n), Parent: uint64(p), Ref: uint64(s)})
	return nil
}

// SetAttribute records setting an attribute.
func (r *Recorder) SetAttribute(h any, name, value string) error {
	n, _, err := r.element(h)
	if err != nil {
		return err
	}
	r.record(Op{Code: OpSetAttribute, Node: uint64(n), Name: name, Value: value})
	return nil
}

// RemoveAttribute records removing an attribute.
func (r *Recorder) RemoveAttribute(h any, name string) error {
	n, _, err := r.element(h)
	if err != nil {
		return err
	}
	r.record(Op{Code: OpRemoveAttribute, Node: uint64(n), Name: name})
	return nil
}

// SetNodeValue records replacing the content of a text node.
func (r *Recorder) SetNodeValue(h any, text string) error {
	n, nn, err := r.node(h)
	if err != nil {
		return err
	}
	if !nn.text {
		return fmt.Errorf("protocol: SetNodeValue on element %d", n)
	}
	r.record(Op{Code: OpSetNodeValue, Node: uint64(n), Value: text})
	return nil
}

// SetProperty records setting a property. The value must have a wire form,
// see PropValue.
func (r *Recorder) SetProperty(h any, name string, value any) error {
	n, _, err := r.element(h)
	if err != nil {
		return err
	}
	v, err := PropValue(value)
	if err != nil {
		return err
	}
	r.record(Op{Code: OpSetProperty, Node: uint64(n), Name: name, Prop: v})
	return nil
}

// Release records that the node is no longer referenced.
func (r *Recorder) Release(h any) {
	n, _, err := r.node(h)
	if err != nil {
		return
	}
	delete(r.nodes, n)
	r.record(Op{Code: OpRelease, Node: uint64(n)})
}

// BindEvent records an event binding.
func (r *Recorder) BindEvent(h any, id uint64, eventType string) error {
	n, _, err := r.element(h)
	if err != nil {
		return err
	}
	r.record(Op{Code: OpBindEvent, Node: uint64(n), ID: id, Name: eventType})
	return nil
}

// UnbindEvent records removing an event binding.
func (r *Recorder) UnbindEvent(h any, id uint64, eventType string) error {
	n, _, err := r.element(h)
	if err != nil {
		return err
	}
	r.record(Op{Code: OpUnbindEvent, Node: uint64(n), ID: id, Name: eventType})
	return nil
}
