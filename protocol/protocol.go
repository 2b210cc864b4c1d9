// Package protocol implements the blink telemetry framing.
// Frames follow the Klipper/Anchor block layout:
//
//	len seq payload... crc_hi crc_lo 0x7E
//
// where len counts the whole frame and the CRC covers len, seq and payload.
package protocol

// Version represents the telemetry protocol version
const Version = "1"

// Frame constants
const (
	FrameHeaderSize  = 2
	FrameTrailerSize = 3
	FrameLengthMin   = FrameHeaderSize + FrameTrailerSize
	FrameLengthMax   = 64
	FramePositionLen = 0
	FramePositionSeq = 1
	FrameTrailerCRC  = 3
	FrameTrailerSync = 1
	FrameValueSync   = 0x7E
	FrameDest        = 0x10

	FrameSeqMask = 0x0F
)

// Message IDs carried as the first VLQ of a payload
const (
	MsgPhase = 1 // seq=%u level=%c cycles=%u
)

// PhaseReport describes one blink phase as seen by the firmware
type PhaseReport struct {
	Seq    uint32 // Phase number since boot
	Level  bool   // Level driven during the phase
	Cycles uint32 // Delay argument for the phase
}
