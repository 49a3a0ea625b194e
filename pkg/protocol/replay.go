package protocol

import (
	"fmt"

	"github.com/vango-dev/zx/pkg/vdom"
)

// Replayer performs recorded operations against a local backend. It is the
// receiving half of a Recorder.
type Replayer struct {
	backend vdom.Backend
	nodes   map[uint64]vdom.Handle
}

// NewReplayer creates a replayer for b.
func NewReplayer(b vdom.Backend) *Replayer {
	return &Replayer{backend: b, nodes: make(map[uint64]vdom.Handle)}
}

// ApplyFrame decodes an ops frame and applies it.
func (r *Replayer) ApplyFrame(f *Frame) error {
	if f.Type != FrameOps {
		return fmt.Errorf("%w: %s", ErrInvalidFrameType, f.Type)
	}
	_, ops, err := DecodeOps(f.Payload)
	if err != nil {
		return err
	}
	return r.Apply(ops)
}

// Apply performs ops in order and stops at the first failure.
func (r *Replayer) Apply(ops []Op) error {
	for i, op := range ops {
		if err := r.apply(op); err != nil {
			return fmt.Errorf("protocol: op %d (%s node %d): %w", i, op.Code, op.Node, err)
		}
	}
	return nil
}

func (r *Replayer) handle(id uint64) (vdom.Handle, error) {
	h, ok := r.nodes[id]
	if !ok {
		return nil, fmt.Errorf("%w: %d", ErrUnknownNode, id)
	}
	return h, nil
}

func (r *Replayer) apply(op Op) error {
	b := r.backend

	switch op.Code {
	case OpContainer:
		finder, ok := b.(vdom.ContainerFinder)
		if !ok {
			return vdom.ErrContainerNotFound
		}
		h, ok := finder.FindContainer(op.Name)
		if !ok {
			return fmt.Errorf("%w: %q", vdom.ErrContainerNotFound, op.Name)
		}
		r.nodes[op.Node] = h
		return nil

	case OpCreateElement:
		h, err := b.CreateElement(op.Name)
		if err != nil {
			return err
		}
		r.nodes[op.Node] = h
		return nil

	case OpCreateText:
		h, err := b.CreateTextNode(op.Value)
		if err != nil {
			return err
		}
		r.nodes[op.Node] = h
		return nil

	case OpRelease:
		h, err := r.handle(op.Node)
		if err != nil {
			return err
		}
		if rel, ok := b.(vdom.Releaser); ok {
			rel.Release(h)
		}
		delete(r.nodes, op.Node)
		return nil
	}

	h, err := r.handle(op.Node)
	if err != nil {
		return err
	}

	switch op.Code {
	case OpAppendChild, OpRemoveChild, OpReplaceChild, OpInsertBefore:
		parent, err := r.handle(op.Parent)
		if err != nil {
			return err
		}
		switch op.Code {
		case OpAppendChild:
			return b.AppendChild(parent, h)
		case OpRemoveChild:
			return b.RemoveChild(parent, h)
		}
		var ref vdom.Handle
		if op.Ref != 0 {
			if ref, err = r.handle(op.Ref); err != nil {
				return err
			}
		}
		if op.Code == OpReplaceChild {
			return b.ReplaceChild(parent, h, ref)
		}
		return b.InsertBefore(parent, h, ref)

	case OpSetAttribute:
		return b.SetAttribute(h, op.Name, op.Value)
	case OpRemoveAttribute:
		return b.RemoveAttribute(h, op.Name)
	case OpSetNodeValue:
		return b.SetNodeValue(h, op.Value)
	case OpSetProperty:
		return b.SetProperty(h, op.Name, op.Prop)

	case OpBindEvent, OpUnbindEvent:
		binder, ok := b.(vdom.EventBinder)
		if !ok {
			return nil
		}
		if op.Code == OpBindEvent {
			return binder.BindEvent(h, op.ID, op.Name)
		}
		return binder.UnbindEvent(h, op.ID, op.Name)

	default:
		return fmt.Errorf("%w: 0x%02x", ErrInvalidOp, byte(op.Code))
	}
}
