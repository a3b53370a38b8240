// Package rdpts wraps the terminal-services remote-desktop client
// object: connection control plus the advanced-settings sub-object.
package rdpts
