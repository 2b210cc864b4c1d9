package protocol

import "errors"

var (
	ErrUnknownMessage = errors.New("unknown message id")
	ErrFrameTooLong   = errors.New("frame exceeds maximum length")
)

// EncodePhaseFrame appends one complete phase frame to output.
// The frame sequence nibble is the low 4 bits of r.Seq.
func EncodePhaseFrame(output OutputBuffer, r PhaseReport) error {
	start := output.CurPosition()
	output.Output([]byte{0, FrameDest | byte(r.Seq&FrameSeqMask)})

	EncodeVLQUint(output, MsgPhase)
	EncodeVLQUint(output, r.Seq)
	level := uint32(0)
	if r.Level {
		level = 1
	}
	EncodeVLQUint(output, level)
	EncodeVLQUint(output, r.Cycles)

	msgLen := output.CurPosition() - start + FrameTrailerSize
	if msgLen > FrameLengthMax {
		return ErrFrameTooLong
	}
	output.Update(start+FramePositionLen, byte(msgLen))

	crc := CRC16(output.DataSince(start))
	output.Output([]byte{byte(crc >> 8), byte(crc), FrameValueSync})
	return nil
}

// DecodePhasePayload parses the payload of a frame (between header and trailer)
func DecodePhasePayload(payload []byte) (PhaseReport, error) {
	var r PhaseReport

	id, err := DecodeVLQUint(&payload)
	if err != nil {
		return r, err
	}
	if id != MsgPhase {
		return r, ErrUnknownMessage
	}

	if r.Seq, err = DecodeVLQUint(&payload); err != nil {
		return r, err
	}
	level, err := DecodeVLQUint(&payload)
	if err != nil {
		return r, err
	}
	r.Level = level != 0
	if r.Cycles, err = DecodeVLQUint(&payload); err != nil {
		return r, err
	}
	return r, nil
}

// Decoder reassembles phase frames from a byte stream.
// On a bad length, destination, sync byte or CRC it drops data up to the
// next sync byte and carries on.
type Decoder struct {
	pending      []byte
	synchronized bool

	// Dropped counts desynchronizations and undecodable frames
	Dropped uint32
}

// NewDecoder creates a Decoder that assumes the stream starts on a frame
func NewDecoder() *Decoder {
	return &Decoder{synchronized: true}
}

// Feed consumes data and returns every complete phase report found.
// Partial frames are kept until the next call.
func (d *Decoder) Feed(input []byte) []PhaseReport {
	d.pending = append(d.pending, input...)
	data := d.pending

	var reports []PhaseReport
	for len(data) > 0 {
		if !d.synchronized {
			syncPos := -1
			for i, b := range data {
				if b == FrameValueSync {
					syncPos = i
					break
				}
			}
			if syncPos < 0 {
				data = nil
				break
			}
			data = data[syncPos+1:]
			d.synchronized = true
			continue
		}

		// Skip leading sync bytes
		if data[0] == FrameValueSync {
			data = data[1:]
			continue
		}

		if len(data) < FrameLengthMin {
			break
		}

		msgLen := int(data[FramePositionLen])
		if msgLen < FrameLengthMin || msgLen > FrameLengthMax {
			d.desync()
			continue
		}

		seq := data[FramePositionSeq]
		if seq&^FrameSeqMask != FrameDest {
			d.desync()
			continue
		}

		// Wait for full frame
		if len(data) < msgLen {
			break
		}

		if data[msgLen-FrameTrailerSync] != FrameValueSync {
			d.desync()
			continue
		}

		frameCRC := uint16(data[msgLen-FrameTrailerCRC])<<8 |
			uint16(data[msgLen-FrameTrailerCRC+1])
		if frameCRC != CRC16(data[:msgLen-FrameTrailerSize]) {
			d.desync()
			continue
		}

		payload := data[FrameHeaderSize : msgLen-FrameTrailerSize]
		data = data[msgLen:]

		r, err := DecodePhasePayload(payload)
		if err != nil {
			d.Dropped++
			continue
		}
		reports = append(reports, r)
	}

	// Keep only the unconsumed tail
	d.pending = append(d.pending[:0], data...)
	return reports
}

// Pending returns the number of buffered bytes not yet forming a frame
func (d *Decoder) Pending() int {
	return len(d.pending)
}

// Reset discards buffered data and assumes the next byte starts a frame
func (d *Decoder) Reset() {
	d.pending = d.pending[:0]
	d.synchronized = true
}

func (d *Decoder) desync() {
	d.synchronized = false
	d.Dropped++
}
