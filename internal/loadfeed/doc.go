// Package loadfeed implements the plain-TCP line feed that carries track
// load events between the capture process and the trackload server.
//
// Each event is one line of the form "NN:path\n" where NN is the
// zero-padded deck id and path is the loaded file relative to the music
// root. The server fans lines out to every connected subscriber; the client
// dials once and hands parsed lines to a handler in arrival order.
package loadfeed
