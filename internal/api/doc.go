// Package api implements the HTTP client for the inventory backend.
//
// Every operation is parameterized by the base URL at call time, so a
// caller that lets the user edit the backend address never holds a client
// bound to a stale URL. Operations return typed results or an *Error that
// classifies the failure:
//
//   - KindTransport: the request never completed (unreachable host, timeout)
//   - KindAPI: the backend answered with a non-2xx status; the message is
//     extracted from a JSON body field named "error" when present, else the
//     HTTP status text
//   - KindContract: the backend answered 2xx but omitted data the caller
//     needs to proceed (e.g. no item returned from a create)
//
// The client never retries and never caches; retries are always an explicit
// user action. It is safe for concurrent use.
package api
