package rdp

import (
	"github.com/wippyai/combridge"
	"github.com/wippyai/combridge/event"
	"github.com/wippyai/combridge/object"
)

// Server shares the local desktop. It is an event-bearing peer: the
// handler passed at construction receives session notifications until
// Close.
type Server struct {
	peer   *event.Peer[sharerCap]
	isOpen bool
}

// NewServer creates the sharing session object and subscribes handler
// to its session events.
func NewServer(rt combridge.Runtime, handler event.Handler) (*Server, error) {
	adapter := event.NewAdapter(CapSessionEvents)
	peer, err := event.NewPeer[sharerCap](rt, ClassSharingSession, combridge.CreateInProcess, adapter, handler)
	if err != nil {
		return nil, err
	}
	return &Server{peer: peer}, nil
}

// Open starts sharing. Opening an already open server is a no-op.
func (s *Server) Open() error {
	if s.isOpen {
		return nil
	}
	if _, err := s.peer.Object().CallOp("open sharing session", "Open"); err != nil {
		return err
	}
	s.isOpen = true
	return nil
}

// CloseSession stops sharing. Closing an already closed session is a
// no-op.
func (s *Server) CloseSession() error {
	if !s.isOpen {
		return nil
	}
	if _, err := s.peer.Object().CallOp("close sharing session", "Close"); err != nil {
		return err
	}
	s.isOpen = false
	return nil
}

// Raw exposes the session reference without transferring ownership,
// for diagnostics and test fixtures.
func (s *Server) Raw() combridge.Raw {
	return s.peer.Object().Raw()
}

// IsOpen reports whether the session is currently shared.
func (s *Server) IsOpen() bool {
	return s.isOpen
}

// Pause suspends screen updates to attendees.
func (s *Server) Pause() error {
	_, err := s.peer.Object().CallOp("pause sharing session", "Pause")
	return err
}

// Resume resumes screen updates to attendees.
func (s *Server) Resume() error {
	_, err := s.peer.Object().CallOp("resume sharing session", "Resume")
	return err
}

// InvitationManager returns the session's invitation manager as a new
// owned handle.
func (s *Server) InvitationManager() (*InvitationManager, error) {
	h, err := object.GetObject[invitationManagerCap](s.peer.Object(), "Invitations")
	if err != nil {
		return nil, err
	}
	return &InvitationManager{h: h}, nil
}

// AttendeeManager returns the session's attendee manager as a new
// owned handle.
func (s *Server) AttendeeManager() (*AttendeeManager, error) {
	h, err := object.GetObject[attendeeManagerCap](s.peer.Object(), "Attendees")
	if err != nil {
		return nil, err
	}
	return &AttendeeManager{h: h}, nil
}

// SessionProperties returns the session's property bag as a new owned
// handle.
func (s *Server) SessionProperties() (*SessionProperties, error) {
	h, err := object.GetObject[sessionPropsCap](s.peer.Object(), "Properties")
	if err != nil {
		return nil, err
	}
	return &SessionProperties{h: h}, nil
}

// Close stops sharing best-effort, tears down the event subscription
// and releases the session object. Idempotent.
func (s *Server) Close() error {
	if s.isOpen {
		// Teardown path; a failed close is not actionable here.
		_ = s.CloseSession()
	}
	return s.peer.Close()
}
