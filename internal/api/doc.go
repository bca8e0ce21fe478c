// Package api implements a typed HTTP client for the assistant backend.
//
// # Overview
//
// Every backend endpoint gets one method on Client: token issuance, chat
// turns, PDF/URL document management, bulk URL import, and quick-action
// CRUD. Calls are single-shot JSON-over-HTTP (multipart for file uploads)
// with no retry and no caching; callers own any sequencing.
//
// # Authentication
//
// Authenticated requests attach the bearer token supplied by the client's
// TokenSource:
//
//	Authorization: Bearer <token>
//
// A 401 from any endpoint is surfaced as ErrUnauthorized so callers can
// tear down the stored session. An absent token is simply not sent; the
// backend treats that identically to an expired one.
//
// # Usage
//
//	client := api.New(cfg.Backend.URL, store.Token)
//	reply, err := client.Chat(ctx, "hello", history)
package api
