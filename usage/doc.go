// Package usage accumulates token and request counts across the lifetime
// of one or more model requests.
//
// A Tracker is a flat counter mutated through three increment operations
// and read through Summary snapshots. TokenCalc adapts a Tracker to the
// events.Hook contract so a model client can drive it: prompt tokens are
// counted with the encoding registered for the request's model, every
// streamed token adds one completion token, and every completed request
// adds one successful request.
package usage
