// Package session owns the client's authentication state.
//
// A single Store instance holds the current session (username, admin flag,
// bearer token) in memory and mirrors it to a JSON file under the XDG
// config directory so it survives restarts. The store is the only writer
// of that state: consumers read through Current/Token/IsAdmin and report
// authentication failures through Invalidate, which tears the session down
// in memory and on disk.
//
// Token expiry is detected locally by inspecting the JWT's exp claim
// without signature verification (the client never holds the signing
// secret). An expired or absent token is treated identically: the caller
// must re-authenticate.
package session
