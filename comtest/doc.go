// Package comtest provides an instrumented in-memory combridge.Runtime.
//
// It backs the library's tests, the examples and the demo CLI with a
// fake foreign runtime whose every boundary interaction is observable:
// per-object reference counts, buffer free accounting, a call trace,
// and a violation log that records over-releases, double frees and
// use of dead references instead of crashing.
//
// Typical test setup:
//
//	rt := comtest.New()
//	rt.RegisterClass(classPolicy, &comtest.Class{
//	    Caps:  []combridge.CapID{capPolicy},
//	    Props: map[string]combridge.Value{"Name": combridge.StringValue("default")},
//	})
//
//	h, err := object.Create[policyCap](rt, classPolicy, combridge.CreateInProcess)
//	...
//	if v := rt.Violations(); len(v) != 0 {
//	    t.Fatalf("boundary violations: %v", v)
//	}
//
// Failure injection for staged-construction tests:
//
//	rt.FailNext(comtest.OpAdvise, combridge.StatusFail)
//
// Notification sources are ordinary objects carrying
// combridge.CapConnectionContainer; Fire delivers a notification to
// every sink advised on the matching connection point.
package comtest
