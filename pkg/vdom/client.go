package vdom

import (
	"fmt"
	"log/slog"
	"sync/atomic"

	"github.com/vango-dev/zx/pkg/zx"
)

// Options configures a Client.
type Options struct {
	// SkipComponentErrors renders a failing component as nothing and logs
	// the error instead of aborting the diff.
	SkipComponentErrors bool

	// Logger receives patch batch summaries at debug level and skipped
	// component errors. Default: slog.Default()
	Logger *slog.Logger
}

// Client is one runtime instance bound to a backend. It owns the id
// counters, so independent clients never share ids.
type Client struct {
	backend Backend
	opts    Options

	nextID    atomic.Uint64
	nextMount atomic.Uint64
}

// NewClient creates a client for the given backend.
func NewClient(backend Backend, opts Options) *Client {
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	return &Client{backend: backend, opts: opts}
}

// Backend returns the client's backend.
func (c *Client) Backend() Backend {
	return c.backend
}

// Mount builds c inside the container with the given id and returns the
// live tree. The backend must implement ContainerFinder.
func (c *Client) Mount(containerID string, comp zx.Component) (*Tree, error) {
	finder, ok := c.backend.(ContainerFinder)
	if !ok {
		return nil, fmt.Errorf("%w: %q: backend cannot locate containers", ErrContainerNotFound, containerID)
	}
	container, ok := finder.FindContainer(containerID)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrContainerNotFound, containerID)
	}
	return c.MountHandle(container, comp)
}

// MountHandle builds comp inside an already located container.
func (c *Client) MountHandle(container Handle, comp zx.Component) (*Tree, error) {
	return c.mount(container, nil, comp)
}

// MountMarkers builds comp between the comment markers of the island with
// the given id, leaving the markers in place. The backend must implement
// MarkerFinder.
func (c *Client) MountMarkers(id string, comp zx.Component) (*Tree, error) {
	finder, ok := c.backend.(MarkerFinder)
	if !ok {
		return nil, fmt.Errorf("%w: %q: backend cannot locate markers", ErrContainerNotFound, id)
	}
	parent, _, end, ok := finder.FindMarkers(id)
	if !ok || parent == nil || end == nil {
		return nil, fmt.Errorf("%w: markers %q", ErrContainerNotFound, id)
	}
	return c.mount(parent, end, comp)
}

// mount builds comp and inserts it into container before ref, or at the end
// when ref is nil.
func (c *Client) mount(container, ref Handle, comp zx.Component) (*Tree, error) {
	t := newTree(c, container)

	root, err := t.resolve(comp)
	if err != nil {
		return nil, err
	}
	v, err := t.build(root, "")
	if err != nil {
		return nil, err
	}
	if ref == nil {
		err = opError("AppendChild", v.ID, c.backend.AppendChild(container, v.DOM))
	} else {
		err = opError("InsertBefore", v.ID, c.backend.InsertBefore(container, v.DOM, ref))
	}
	if err != nil {
		t.teardown(v)
		return nil, err
	}
	t.root = v

	c.opts.Logger.Debug("vdom: mounted", "root", v.ID, "elements", len(t.ids))
	return t, nil
}

func (c *Client) newID() uint64 {
	return c.nextID.Add(1)
}

func (c *Client) newMountID() uint64 {
	return c.nextMount.Add(1)
}
