// Package transport exchanges opaque byte payloads with the Keeper Secrets
// Manager service over HTTP.
//
// The vault core never parses transport responses; callers receive the raw
// status code, headers, and body and decide what to do with them. Retry and
// backoff policy lives here, never in the crypto core.
package transport
