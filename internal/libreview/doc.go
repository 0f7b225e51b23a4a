// SPDX-License-Identifier: Apache-2.0

// Package libreview implements a client for the LibreView (LibreLinkUp)
// cloud API.
//
// The client owns the account credentials, the session bearer token, and a
// SHA-256 hash of the account id that is sent in place of the raw id on
// authenticated requests. When an authenticated request comes back with
// HTTP 401 the client re-authenticates and retries the request exactly
// once; every other failure surfaces to the caller.
//
// A Client instance is not safe for concurrent use: a 401-triggered
// re-login mutates the token and account hash without locking. Callers
// needing concurrency must serialize access or use one client per caller.
package libreview
