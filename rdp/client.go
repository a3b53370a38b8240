package rdp

import (
	"github.com/wippyai/combridge"
	"github.com/wippyai/combridge/errors"
	"github.com/wippyai/combridge/event"
	"github.com/wippyai/combridge/object"
)

// Client views a shared desktop. Like Server it is an event-bearing
// peer bound to its handler for its whole lifetime.
type Client struct {
	peer *event.Peer[viewerCap]
}

// NewClient creates the viewer object and subscribes handler to its
// session events.
func NewClient(rt combridge.Runtime, handler event.Handler) (*Client, error) {
	adapter := event.NewAdapter(CapSessionEvents)
	peer, err := event.NewPeer[viewerCap](rt, ClassViewer, combridge.CreateInProcess, adapter, handler)
	if err != nil {
		return nil, err
	}
	return &Client{peer: peer}, nil
}

// Open connects to a shared session using an invitation connection
// string.
func (c *Client) Open(connectionString, name, password string) error {
	const op = "connect to shared session"
	if connectionString == "" {
		return errors.InvalidArgument(op + ": empty connection string")
	}
	_, err := c.peer.Object().CallOp(op, "Connect",
		combridge.StringValue(connectionString),
		combridge.StringValue(name),
		combridge.StringValue(password))
	return err
}

// CloseConnection disconnects from the shared session.
func (c *Client) CloseConnection() error {
	_, err := c.peer.Object().CallOp("disconnect from shared session", "Disconnect")
	return err
}

// RequestControl asks the sharer for the given control level.
func (c *Client) RequestControl(level ControlLevel) error {
	_, err := c.peer.Object().CallOp("request session control level", "RequestControl",
		combridge.IntValue(int64(level)))
	return err
}

// SessionProperties returns the session's property bag as a new owned
// handle.
func (c *Client) SessionProperties() (*SessionProperties, error) {
	h, err := object.GetObject[sessionPropsCap](c.peer.Object(), "Properties")
	if err != nil {
		return nil, err
	}
	return &SessionProperties{h: h}, nil
}

// Close disconnects best-effort, tears down the event subscription
// and releases the viewer object. Idempotent.
func (c *Client) Close() error {
	if c.peer.Object().IsValid() {
		_ = c.CloseConnection()
	}
	return c.peer.Close()
}
