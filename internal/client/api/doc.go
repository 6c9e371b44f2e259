// Package api is the HTTP adapter between the moviebook client and the
// booking REST backend.
//
// # Overview
//
// Caller.Call(token) returns a Client bound to that token. Every request made
// through a bound Client carries "Authorization: Bearer <token>" when the
// token is non-empty. Responses are decoded into an Envelope:
//
//	{"success": true, "message": "...", "results": ...}
//
// # Error Handling
//
// success:false is an application-level outcome and comes back as a regular
// *Envelope with a nil error. Transport failures come back as
// *TransportError: Status holds the HTTP status for non-2xx responses and is
// 0 when no response was received (ErrNoResponse). There are no retries and
// no caching; the caller's context is the only timeout.
package api
