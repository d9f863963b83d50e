package cdj

import "bytes"

// sectionMarker starts each section of a CDJ packet. Payloads that do not
// begin with it are not CDJ traffic.
var sectionMarker = []byte{0x11, 0x87, 0x23, 0x49, 0xae, 0x11}

// Part is one section of a CDJ packet: the identifier linking it to the
// response packet, the command it carries, and the remaining data.
type Part struct {
	Identifier []byte
	Command    []byte
	Data       []byte
}

// ParseParts splits a raw TCP payload into its CDJ parts. It returns nil for
// payloads that are not CDJ traffic or contain no sections.
//
// Each section is laid out as: identifier (4 bytes), a separator byte, the
// command (4 bytes), another separator, then data.
func ParseParts(payload []byte) []Part {
	if !bytes.HasPrefix(payload, sectionMarker) {
		return nil
	}

	// The first element of the split is the empty prefix before the marker.
	sections := bytes.Split(payload, sectionMarker)[1:]
	if len(sections) == 0 {
		return nil
	}

	parts := make([]Part, 0, len(sections))
	for _, s := range sections {
		parts = append(parts, Part{
			Identifier: clamp(s, 0, 4),
			Command:    clamp(s, 5, 9),
			Data:       clamp(s, 10, len(s)),
		})
	}
	return parts
}

// clamp slices b[lo:hi] without panicking on short sections. Truncated
// sections show up at stream boundaries and are harmless.
func clamp(b []byte, lo, hi int) []byte {
	if lo > len(b) {
		lo = len(b)
	}
	if hi > len(b) {
		hi = len(b)
	}
	return b[lo:hi]
}
