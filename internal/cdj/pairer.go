package cdj

// Exchange is a paired request/response between a CDJ and Rekordbox. Both
// sides carry the same part identifier.
type Exchange struct {
	Identifier []byte
	Request    []Part
	Response   []Part
}

// Pairer groups CDJ packets two at a time. The first packet seen for an
// identifier is held as the request; the second completes the exchange.
type Pairer struct {
	pending map[string][]Part
}

func NewPairer() *Pairer {
	return &Pairer{pending: make(map[string][]Part)}
}

// Pair feeds one TCP payload into the pairer. It returns a completed
// Exchange when the payload answers a previously seen packet, nil otherwise.
//
// Almost all packets carry the same identifier on every part; the identifier
// of the first part is used for pairing.
func (p *Pairer) Pair(payload []byte) *Exchange {
	parts := ParseParts(payload)
	if parts == nil {
		return nil
	}

	id := string(parts[0].Identifier)

	request, ok := p.pending[id]
	if !ok {
		p.pending[id] = parts
		return nil
	}
	delete(p.pending, id)

	return &Exchange{
		Identifier: []byte(id),
		Request:    request,
		Response:   parts,
	}
}
