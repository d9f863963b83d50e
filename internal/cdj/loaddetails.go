package cdj

import (
	"bytes"
	"fmt"
	"strings"

	"golang.org/x/text/encoding/unicode"
)

// pathTerminator ends the UTF-16BE path text inside the track data response.
var pathTerminator = []byte{0x00, 0x00, 0x11}

const (
	deckIDOffset = 17
	pathOffset   = 36
	pathPartIdx  = 5
)

// LoadDetails extracts the deck id and loaded file path from a completed
// track-load exchange.
func LoadDetails(ex *Exchange) (deckID int, path string, err error) {
	if len(ex.Request) == 0 || len(ex.Request[0].Data) <= deckIDOffset {
		return 0, "", fmt.Errorf("load details: request too short for deck id")
	}
	deckID = int(ex.Request[0].Data[deckIDOffset])

	if len(ex.Response) <= pathPartIdx {
		return 0, "", fmt.Errorf("load details: response has %d parts, want at least %d", len(ex.Response), pathPartIdx+1)
	}
	data := ex.Response[pathPartIdx].Data
	if len(data) <= pathOffset {
		return 0, "", fmt.Errorf("load details: response part too short for path")
	}

	raw := data[pathOffset:]
	if i := bytes.Index(raw, pathTerminator); i >= 0 {
		raw = raw[:i]
	}

	decoder := unicode.UTF16(unicode.BigEndian, unicode.IgnoreBOM).NewDecoder()
	decoded, err := decoder.Bytes(raw)
	if err != nil {
		return 0, "", fmt.Errorf("load details: decode path: %w", err)
	}

	return deckID, strings.TrimRight(string(decoded), "\x00 \r\n"), nil
}
