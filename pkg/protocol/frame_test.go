package protocol

import (
	"errors"
	"io"
	"testing"
)

func TestFrameEncodeDecode(t *testing.T) {
	f := NewFrame(FramePatches, []byte{1, 2, 3})
	f.Flags = FlagFinal

	data, err := f.Encode()
	if err != nil {
		t.Fatalf("Encode error: %v", err)
	}
	if want := []byte{0x02, 0x04, 0x00, 0x03, 1, 2, 3}; string(data) != string(want) {
		t.Fatalf("Encode = %v, want %v", data, want)
	}

	got, err := DecodeFrame(data)
	if err != nil {
		t.Fatalf("DecodeFrame error: %v", err)
	}
	if got.Type != FramePatches || !got.Flags.Has(FlagFinal) || len(got.Payload) != 3 {
		t.Errorf("DecodeFrame = %+v", got)
	}
}

func TestFrameErrors(t *testing.T) {
	tests := []struct {
		name string
		data []byte
		want error
	}{
		{"short header", []byte{0x01, 0x00}, io.ErrUnexpectedEOF},
		{"truncated payload", []byte{0x01, 0x00, 0x00, 0x05, 1}, io.ErrUnexpectedEOF},
		{"unknown type", []byte{0x09, 0x00, 0x00, 0x00}, ErrInvalidFrameType},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := DecodeFrame(tt.data); !errors.Is(err, tt.want) {
				t.Errorf("DecodeFrame error = %v, want %v", err, tt.want)
			}
		})
	}

	big := NewFrame(FrameEvent, make([]byte, MaxPayloadSize+1))
	if _, err := big.Encode(); !errors.Is(err, ErrFrameTooLarge) {
		t.Errorf("Encode oversized frame error = %v, want ErrFrameTooLarge", err)
	}
}

func TestFrameTypeString(t *testing.T) {
	if FrameHandshake.String() != "Handshake" || FrameType(0x77).String() != "Unknown" {
		t.Error("unexpected FrameType names")
	}
}
