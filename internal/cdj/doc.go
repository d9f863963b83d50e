// Package cdj analyses the TCP traffic CDJs and Rekordbox exchange to detect
// track loads.
//
// Payloads are split into parts on a fixed section marker, paired into
// request/response exchanges by identifier, and fed through a small sequence
// detector that recognises the four-exchange track-load handshake. Once a
// load is detected, LoadDetails extracts the deck id and the loaded file's
// path from the exchange.
package cdj
