// Package itemsapi provides the JSON fetcher for the items API.
//
// # Overview
//
// The items API exposes collections of display records ("items") over plain
// JSON GET endpoints. This package owns the client side of that contract:
// issuing requests, classifying failures and decoding response payloads.
//
// # Architecture
//
//   - client.go: Client, the Fetcher interface and request construction
//   - errors.go: HTTPError, TransportError and ValidationError
//   - types.go: Item, ItemID and Payload
//
// # Requests
//
// Every call to GetJSON issues exactly one GET request. There are no retries
// and no client-level timeout; callers bound a request through its context.
// Each request carries:
//   - Accept: application/json
//   - User-Agent: cardview/0.1
//   - X-Request-ID: a fresh UUID, echoed in server logs
//
// RandomRef and SearchRef build the two query shapes used by the card views:
//
//	GET /api/random?n=3
//	GET /api/search?q=deep+work
//
// # Error Handling
//
// Failures fall into two classes that callers tell apart with errors.As:
//
//   - *HTTPError: the server answered with a non-2xx status. The status code
//     is kept so it can be reported; the message reads "HTTP 503".
//   - *TransportError: the request never completed (dial, DNS, cancelled
//     context) or the body was not valid JSON.
//
// *ValidationError is returned by callers that reject local input before any
// request is made.
//
// # Payloads
//
// DecodePayload extracts the items array but keeps the full body as received
// in Payload.Raw, so debug views can display extra fields verbatim and in the
// server's key order.
package itemsapi
