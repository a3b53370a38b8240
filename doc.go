// Package combridge provides safe Go handles to reference-counted objects
// owned by a foreign component runtime.
//
// The foreign runtime exposes opaque, polymorphic objects reachable only
// through typed capability interfaces, each requiring explicit acquire and
// release discipline and explicit dynamic interface negotiation. This library
// manages handles to those objects so that every acquired reference is
// released exactly once under copy, move and dynamic re-typing.
//
// # Architecture Overview
//
// The library is organized into several packages with distinct responsibilities:
//
//	combridge/     Root package with the Runtime boundary contract and Value variant
//	├── object/    Reference-owning Handle, dynamic cast, factory, buffer transfer
//	├── event/     Callback adapters, connection-point subscriptions, peers
//	├── errors/    Structured error types for every boundary failure
//	├── comtest/   Instrumented in-memory Runtime for tests and demos
//	├── firewall/  Firewall policy and rule facades
//	├── rdp/       Remote-desktop sharing session facades
//	├── rdpts/     Terminal-services client facade
//	└── wmi/       Management-instrumentation query facades
//
// # Quick Start
//
// Obtain an object, re-type it, read a property:
//
//	lib, err := object.OpenLibrary(rt)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer lib.Close()
//
//	policy, err := firewall.NewPolicy(rt)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer policy.Close()
//
//	rules, err := policy.Rules()
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer rules.Close()
//
// # Ownership Model
//
// A Handle owns exactly one foreign reference. Clone performs the foreign
// increment before a second live handle exists; Move transfers ownership and
// leaves the source empty; Close releases at most once and is idempotent.
// Duplicating a raw reference without the increment is the one mistake the
// API makes unrepresentable.
//
// # Thread Safety
//
// The core is a synchronous wrapper and adds no locking of its own. The
// foreign reference count mutators are the only operations the runtime
// guarantees to be callable from any thread; a single Handle or Subscription
// must otherwise be confined to one goroutine or externally serialized.
package combridge
