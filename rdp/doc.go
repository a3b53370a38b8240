// Package rdp wraps the screen-sharing session objects of the foreign
// runtime. Server shares the local desktop, Client views a shared
// one; both are event-bearing peers whose session notifications are
// delivered through an event.Subscription bound at construction.
package rdp
