// Package chat implements the client-side chat transcript.
//
// # Overview
//
// A Transcript is an append-only ordered message sequence with a small
// per-turn state machine: Idle while waiting for user input, AwaitingReply
// while a backend call is in flight. An orthogonal flag controls whether
// the quick-action menu is shown; it starts true on an empty transcript
// and is re-raised by the local "help"/"menu" commands, which never reach
// the backend.
//
// # Failure behavior
//
// A 401 from the chat endpoint appends a fixed session-expired message and
// schedules session teardown after a short grace period so the user can
// read it; the delay runs on an injected Clock so tests control time. Any
// other failure appends a fixed apology. Both paths return the transcript
// to Idle; nothing is retried.
//
// The package also provides EnhanceWithSources, the pure citation-link
// post-processing applied to retrieval-backed replies.
package chat
