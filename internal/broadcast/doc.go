// Package broadcast implements the WebSocket hub using the actor pattern.
//
// The Hub fans one JSON Track message out to every connected overlay client
// each time a track load arrives. Uses single goroutine + command channel
// (no mutexes). Per-connection write goroutines handle slow clients
// gracefully.
package broadcast
