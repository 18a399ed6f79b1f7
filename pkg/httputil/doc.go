// Package httputil provides JSON response helpers for the HTTP API.
//
// Handlers reply with [WriteJSON] on success and [WriteError] on failure.
// WriteError maps the code of a [errors.Error] to an HTTP status:
//
//   - NOT_FOUND: 404
//   - INVALID_INPUT, INVALID_CONFIG, INVALID_FORMAT: 400
//   - anything else: 500
//
// Error bodies have the form {"error": "...", "code": "..."}. Internal errors
// never expose their cause to the client.
package httputil
