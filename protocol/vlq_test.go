package protocol

import (
	"errors"
	"testing"
)

func TestVLQEncodeDecodeInt(t *testing.T) {
	testCases := []int32{
		0, 1, -1, 95, -32, 96, -33,
		127, 128, 1000, -1000,
		65535, -65535,
		1000000, -1000000,
		1<<31 - 1, -1 << 31,
	}

	for _, expected := range testCases {
		output := NewScratchOutput()
		EncodeVLQInt(output, expected)
		encoded := output.Result()

		data := encoded
		decoded, err := DecodeVLQInt(&data)
		if err != nil {
			t.Errorf("Failed to decode VLQ for value %d: %v", expected, err)
			continue
		}

		if decoded != expected {
			t.Errorf("VLQ mismatch: expected %d, got %d (encoded as %v)", expected, decoded, encoded)
		}

		if len(data) != 0 {
			t.Errorf("VLQ decode didn't consume all bytes for value %d: %d bytes remaining", expected, len(data))
		}
	}
}

func TestVLQUintLargeValues(t *testing.T) {
	for _, expected := range []uint32{0, 1000000, 1 << 31, 0xFFFFFFFF} {
		output := NewScratchOutput()
		EncodeVLQUint(output, expected)

		data := output.Result()
		decoded, err := DecodeVLQUint(&data)
		if err != nil {
			t.Fatalf("DecodeVLQUint(%d) failed: %v", expected, err)
		}
		if decoded != expected {
			t.Errorf("VLQ mismatch: expected %d, got %d", expected, decoded)
		}
	}
}

func TestVLQEncodedSize(t *testing.T) {
	testCases := []struct {
		value int32
		size  int
	}{
		{value: 0, size: 1},
		{value: 95, size: 1},
		{value: -32, size: 1},
		{value: 96, size: 2},
		{value: 1000000, size: 3},
	}

	for _, tc := range testCases {
		output := NewScratchOutput()
		EncodeVLQInt(output, tc.value)
		if len(output.Result()) != tc.size {
			t.Errorf("Value %d: expected %d bytes, got %d", tc.value, tc.size, len(output.Result()))
		}
	}
}

func TestVLQDecodeErrors(t *testing.T) {
	empty := []byte{}
	if _, err := DecodeVLQInt(&empty); !errors.Is(err, ErrBufferTooSmall) {
		t.Errorf("Empty input: expected ErrBufferTooSmall, got %v", err)
	}

	truncated := []byte{0x81}
	if _, err := DecodeVLQInt(&truncated); !errors.Is(err, ErrBufferTooSmall) {
		t.Errorf("Truncated input: expected ErrBufferTooSmall, got %v", err)
	}

	endless := []byte{0x81, 0x81, 0x81, 0x81, 0x81, 0x01}
	if _, err := DecodeVLQInt(&endless); !errors.Is(err, ErrInvalidVLQ) {
		t.Errorf("Overlong input: expected ErrInvalidVLQ, got %v", err)
	}
}
