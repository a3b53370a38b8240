// Package event connects caller code to foreign notification sources.
//
// The foreign runtime delivers notifications by calling back into a
// sink object it was subscribed with. This package supplies that sink
// (Adapter), the subscription lifecycle binding it to a source
// (Subscription), and the composite owner for factory-created
// event-bearing objects (Peer).
//
// # Subscribing
//
//	adapter := event.NewAdapter(capSessionEvents)
//	sub, err := event.Subscribe(handle, adapter, event.HandlerFunc(onEvent))
//	if err != nil {
//	    return err
//	}
//	defer sub.Close()
//
// Subscription setup is staged: container query, connection-point
// lookup, advise. A failure at any stage unwinds the references the
// prior stages acquired before the error surfaces, so no partial
// state is ever left behind.
//
// # Delivery
//
// The Adapter holds no pointer back to its Subscription. Delivery is
// routed through a generation-tagged owner registry; once the
// Subscription is closed the slot is invalidated and late
// notifications are dropped, never dispatched into torn-down state.
package event
