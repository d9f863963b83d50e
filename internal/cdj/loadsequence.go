package cdj

import "bytes"

var (
	cmdTrackData = []byte{0x30, 0x00, 0x0f, 0x06}
	cmdLoadStep  = []byte{0x21, 0x02, 0x0f, 0x02}

	// loadRequestMarker appears in the request data of the exchange that
	// begins a track load.
	loadRequestMarker = []byte{0x03, 0x04, 0x01}
)

// LoadSequence detects the four-exchange handshake a CDJ performs when a
// track is loaded. Feed every paired exchange through Advance; it reports
// true once the final exchange of a load completes.
//
// The zero value is ready to use.
type LoadSequence struct {
	step int
}

// steps: 0 = load request (matched on data), 1 = begin track loading,
// 2 = intermediate command, 3 = track data request (carries the filename).
const loadSequenceSteps = 4

// Advance transitions the detector with an exchange. Any exchange that does
// not fulfil the current step resets the detector.
func (s *LoadSequence) Advance(ex *Exchange) bool {
	if !s.matches(ex) {
		s.step = 0
		return false
	}

	s.step++
	if s.step == loadSequenceSteps {
		s.step = 0
		return true
	}
	return false
}

func (s *LoadSequence) matches(ex *Exchange) bool {
	if len(ex.Request) == 0 {
		return false
	}
	first := ex.Request[0]

	switch s.step {
	case 0:
		return len(first.Data) >= 21 && bytes.Equal(first.Data[18:21], loadRequestMarker)
	case 1, 3:
		return bytes.Equal(first.Command, cmdTrackData)
	case 2:
		return bytes.Equal(first.Command, cmdLoadStep)
	}
	return false
}
