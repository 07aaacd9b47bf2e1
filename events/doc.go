// Package events defines the lifecycle notifications emitted while a
// language model request is in flight, and the hook contract used to
// observe them.
//
// A model client delivers three notifications per request: one
// RequestStart when the prompts are submitted, one NewToken per streamed
// output token, and one RequestEnd when the request completes. Consumers
// implement Hook to react to them; CompositeHook fans a single delivery
// out to several hooks, and LoggingHook is a reference implementation
// that logs every event.
//
// Design decisions:
//   - All hook methods must be implemented: when new event types are
//     added, implementations fail to compile until they make an explicit
//     decision about the new event.
//   - Rich metadata: every event carries a run ID, a timestamp and
//     optional structured metadata.
//   - Efficient JSON: custom marshaling with pre-allocated type markers.
//
// Delivery ordering and argument shapes are dictated by the model client
// driving the hooks; this package only defines the contract.
package events
