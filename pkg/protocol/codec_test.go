package protocol

import (
	"errors"
	"io"
	"math"
	"testing"
)

func TestVarints(t *testing.T) {
	values := []uint64{0, 1, 127, 128, 300, 1 << 32, math.MaxUint64}
	e := NewEncoder()
	for _, v := range values {
		e.WriteUvarint(v)
	}
	signed := []int64{0, -1, 1, -64, 64, math.MinInt64, math.MaxInt64}
	for _, v := range signed {
		e.WriteSvarint(v)
	}

	d := NewDecoder(e.Bytes())
	for _, want := range values {
		got, err := d.ReadUvarint()
		if err != nil || got != want {
			t.Errorf("ReadUvarint = %d, %v; want %d", got, err, want)
		}
	}
	for _, want := range signed {
		got, err := d.ReadSvarint()
		if err != nil || got != want {
			t.Errorf("ReadSvarint = %d, %v; want %d", got, err, want)
		}
	}
	if !d.EOF() {
		t.Errorf("Remaining = %d, want 0", d.Remaining())
	}
}

func TestVarintWireFormat(t *testing.T) {
	e := NewEncoder()
	e.WriteUvarint(300)
	if got := e.Bytes(); len(got) != 2 || got[0] != 0xAC || got[1] != 0x02 {
		t.Errorf("300 encoded as %x, want ac02", got)
	}

	e.Reset()
	e.WriteSvarint(-1)
	if got := e.Bytes(); len(got) != 1 || got[0] != 0x01 {
		t.Errorf("-1 encoded as %x, want 01 (zigzag)", got)
	}
}

func TestDecoderErrors(t *testing.T) {
	if _, err := NewDecoder([]byte{0x80}).ReadUvarint(); !errors.Is(err, io.ErrUnexpectedEOF) {
		t.Errorf("incomplete varint error = %v", err)
	}

	overflow := []byte{0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0x01}
	if _, err := NewDecoder(overflow).ReadUvarint(); !errors.Is(err, ErrVarintOverflow) {
		t.Errorf("overflow error = %v", err)
	}

	// Length prefix says 10 bytes, only 2 follow.
	if _, err := NewDecoder([]byte{10, 'a', 'b'}).ReadString(); !errors.Is(err, io.ErrUnexpectedEOF) {
		t.Errorf("short string error = %v", err)
	}

	e := NewEncoder()
	e.WriteUvarint(MaxCollectionCount + 1)
	if _, err := NewDecoder(e.Bytes()).ReadCollectionCount(); !errors.Is(err, ErrCollectionTooLarge) {
		t.Errorf("collection limit error = %v", err)
	}

	if _, err := NewDecoder([]byte{0x05}).ReadCollectionCount(); !errors.Is(err, io.ErrUnexpectedEOF) {
		t.Errorf("count beyond buffer error = %v", err)
	}

	if _, err := NewDecoder([]byte{1, 2, 3}).ReadFloat64(); !errors.Is(err, io.ErrUnexpectedEOF) {
		t.Errorf("short float error = %v", err)
	}
}

func TestScalars(t *testing.T) {
	e := NewEncoder()
	e.WriteBool(true)
	e.WriteBool(false)
	e.WriteUint16(0xBEEF)
	e.WriteFloat64(-12.5)
	e.WriteString("héllo")

	d := NewDecoder(e.Bytes())
	if b, _ := d.ReadBool(); !b {
		t.Error("first bool should be true")
	}
	if b, _ := d.ReadBool(); b {
		t.Error("second bool should be false")
	}
	if v, _ := d.ReadUint16(); v != 0xBEEF {
		t.Errorf("uint16 = %x", v)
	}
	if v, _ := d.ReadFloat64(); v != -12.5 {
		t.Errorf("float64 = %v", v)
	}
	if s, _ := d.ReadString(); s != "héllo" {
		t.Errorf("string = %q", s)
	}
}
