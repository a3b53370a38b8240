package rdpts

import (
	"github.com/wippyai/combridge"
	"github.com/wippyai/combridge/object"
)

// Class and capability identities of the terminal-services client.
var (
	ClassClient = combridge.MustClassID("a9d7038d-b5ed-472e-9c47-94bea90a5910")

	CapClient           = combridge.MustCapID("28904001-04b6-436c-a55b-0af1a0883dc9")
	CapAdvancedSettings = combridge.MustCapID("26036036-4010-4578-8091-0db9a1edf9c3")
)

type clientCap struct{}

func (clientCap) CapabilityID() combridge.CapID { return CapClient }

type advancedCap struct{}

func (advancedCap) CapabilityID() combridge.CapID { return CapAdvancedSettings }

// ConnectionState reports a client's connection progress.
type ConnectionState int64

const (
	Disconnected ConnectionState = 0
	Connected    ConnectionState = 1
	Connecting   ConnectionState = 2
)

// Client is the terminal-services remote-desktop client.
type Client struct {
	h *object.Handle[clientCap]
}

// NewClient creates the client object.
func NewClient(rt combridge.Runtime) (*Client, error) {
	h, err := object.Create[clientCap](rt, ClassClient, combridge.CreateInProcess)
	if err != nil {
		return nil, err
	}
	return &Client{h: h}, nil
}

// Close disconnects best-effort and releases the client.
func (c *Client) Close() error {
	if c.h.IsValid() {
		// Teardown path; a failed disconnect is not actionable here.
		_ = c.Disconnect()
	}
	return c.h.Close()
}

// SetServer sets the server DNS name or address. Must be set before
// Connect.
func (c *Client) SetServer(value string) error {
	return c.h.PutString("Server", value)
}

// Server returns the configured server.
func (c *Client) Server() (string, error) {
	return c.h.GetString("Server")
}

// ConnectionState returns the current connection state.
func (c *Client) ConnectionState() (ConnectionState, error) {
	n, err := c.h.GetInt("Connected")
	return ConnectionState(n), err
}

// Connect initiates the connection to the configured server.
func (c *Client) Connect() error {
	_, err := c.h.CallOp("connect to remote desktop server", "Connect")
	return err
}

// Disconnect drops the connection.
func (c *Client) Disconnect() error {
	_, err := c.h.CallOp("disconnect from remote desktop server", "Disconnect")
	return err
}

// AdvancedSettings returns the advanced-settings sub-object as a new
// owned handle.
func (c *Client) AdvancedSettings() (*AdvancedSettings, error) {
	h, err := object.GetObject[advancedCap](c.h, "AdvancedSettings")
	if err != nil {
		return nil, err
	}
	return &AdvancedSettings{h: h}, nil
}

// AdvancedSettings tunes the client before connecting.
type AdvancedSettings struct {
	h *object.Handle[advancedCap]
}

func (s *AdvancedSettings) Close() error {
	return s.h.Close()
}

// SetPort sets the server port.
func (s *AdvancedSettings) SetPort(value int64) error {
	return s.h.PutInt("RDPPort", value)
}

// Port returns the configured server port.
func (s *AdvancedSettings) Port() (int64, error) {
	return s.h.GetInt("RDPPort")
}

// SetSmartSizing toggles scaling the remote session to the local
// window.
func (s *AdvancedSettings) SetSmartSizing(value bool) error {
	return s.h.PutBool("SmartSizing", value)
}

// SmartSizing reports whether smart sizing is enabled.
func (s *AdvancedSettings) SmartSizing() (bool, error) {
	return s.h.GetBool("SmartSizing")
}
