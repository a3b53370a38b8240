// Package firewall wraps the host firewall objects of the foreign
// runtime: the modern policy surface (Policy2, Rules, Rule) and the
// legacy chain (Manager, Policy, Profile, AuthorizedApplications).
//
// Every type is a thin pass-through over an owned object handle; all
// lifetime and error discipline comes from the object package.
package firewall
