package protocol

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestEventCodec(t *testing.T) {
	tests := []struct {
		name string
		ev   *Event
	}{
		{"click", &Event{Seq: 1, Type: EventClick, HID: "h12"}},
		{"mouseenter", &Event{Seq: 2, Type: EventMouseEnter, HID: "h40"}},
		{"scroll", &Event{Seq: 3, Type: EventScroll, Payload: &ScrollEventData{ScrollY: 812.5}}},
		{"submit", &Event{Seq: 4, Type: EventSubmit, HID: "h90", Payload: &SubmitEventData{
			Fields: map[string]string{"name": "Ann", "email": "a@b.co", "message": ""},
		}}},
		{"layout", &Event{Seq: 5, Type: EventLayout, Payload: &LayoutEventData{
			ViewportHeight: 900,
			ScrollY:        10,
			Offsets:        map[string]float64{"h30": 0, "h55": 1200},
		}}},
		{"intersect", &Event{Seq: 6, Type: EventIntersect, HID: "h70", Payload: &IntersectEventData{
			ObserverID: 2, Ratio: 0.35, Intersecting: true,
		}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := DecodeEvent(EncodeEvent(tt.ev))
			if err != nil {
				t.Fatalf("DecodeEvent error: %v", err)
			}
			if diff := cmp.Diff(tt.ev, got); diff != "" {
				t.Errorf("event mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestDecodeUnknownEvent(t *testing.T) {
	e := NewEncoder()
	e.WriteUvarint(1)
	e.WriteByte(0x99)
	e.WriteString("h1")
	if _, err := DecodeEvent(e.Bytes()); !errors.Is(err, ErrUnknownEventType) {
		t.Errorf("error = %v, want ErrUnknownEventType", err)
	}
}

func TestPatchCodec(t *testing.T) {
	pf := &PatchesFrame{
		Seq: 7,
		Patches: []Patch{
			NewSetTextPatch("h1", "50+"),
			NewSetAttrPatch("h2", "disabled", ""),
			NewRemoveAttrPatch("h2", "disabled"),
			NewInsertHTMLPatch("h3", `<div class="notification">x</div>`),
			NewRemoveNodePatch("d4"),
			NewResetFormPatch("h5"),
			NewScrollToPatch(1120, true),
			NewAddClassPatch("h6", "active"),
			NewRemoveClassPatch("h6", "active"),
			NewToggleClassPatch("h6", "active"),
			NewSetStylePatch("h7", "transform", "translateY(-8px) scale(1.02)"),
			NewRemoveStylePatch("h7", "transform"),
			NewListenPatch("h8", "click", true),
			NewObservePatch("h9", 1, 0.1, "0px 0px -50px 0px"),
			NewUnobservePatch("h9", 1),
		},
	}

	got, err := DecodePatches(EncodePatches(pf))
	if err != nil {
		t.Fatalf("DecodePatches error: %v", err)
	}
	if diff := cmp.Diff(pf, got); diff != "" {
		t.Errorf("patches mismatch (-want +got):\n%s", diff)
	}
}

func TestDecodeUnknownPatchOp(t *testing.T) {
	e := NewEncoder()
	e.WriteUvarint(1)
	e.WriteUvarint(1)
	e.WriteByte(0x7E)
	e.WriteString("h1")
	if _, err := DecodePatches(e.Bytes()); err == nil {
		t.Error("expected error for unknown patch op")
	}
}

func TestHandshakeCodec(t *testing.T) {
	ch := &ClientHello{Version: CurrentVersion, PageVersion: "3f2a"}
	gotCH, err := DecodeClientHello(EncodeClientHello(ch))
	if err != nil {
		t.Fatalf("DecodeClientHello error: %v", err)
	}
	if diff := cmp.Diff(ch, gotCH); diff != "" {
		t.Errorf("client hello mismatch (-want +got):\n%s", diff)
	}

	sh := NewServerHello("0b6d", 1700000000000)
	gotSH, err := DecodeServerHello(EncodeServerHello(sh))
	if err != nil {
		t.Fatalf("DecodeServerHello error: %v", err)
	}
	if diff := cmp.Diff(sh, gotSH); diff != "" {
		t.Errorf("server hello mismatch (-want +got):\n%s", diff)
	}

	if _, err := DecodeClientHello([]byte{1}); err == nil {
		t.Error("expected error for truncated client hello")
	}
}

func TestVersionCompatible(t *testing.T) {
	if !(ProtocolVersion{Major: 1, Minor: 3}).Compatible(CurrentVersion) {
		t.Error("same major should be compatible")
	}
	if (ProtocolVersion{Major: 2}).Compatible(CurrentVersion) {
		t.Error("different major should not be compatible")
	}
}

func TestControlCodec(t *testing.T) {
	ct, pong := NewPong(42)
	gotType, payload, err := DecodeControl(EncodeControl(ct, pong))
	if err != nil || gotType != ControlPong {
		t.Fatalf("DecodeControl = %v, %v", gotType, err)
	}
	if pp := payload.(*PingPong); pp.Timestamp != 42 {
		t.Errorf("Timestamp = %d, want 42", pp.Timestamp)
	}

	ct, cm := NewClose(CloseReload, "reload")
	gotType, payload, err = DecodeControl(EncodeControl(ct, cm))
	if err != nil || gotType != ControlClose {
		t.Fatalf("DecodeControl = %v, %v", gotType, err)
	}
	if diff := cmp.Diff(cm, payload.(*CloseMessage)); diff != "" {
		t.Errorf("close mismatch (-want +got):\n%s", diff)
	}

	if _, _, err := DecodeControl([]byte{0x55}); err == nil {
		t.Error("expected error for unknown control type")
	}
}

func TestErrorMessageCodec(t *testing.T) {
	em := NewFatalError(ErrHandlerPanic, "boom")
	got, err := DecodeErrorMessage(EncodeErrorMessage(em))
	if err != nil {
		t.Fatalf("DecodeErrorMessage error: %v", err)
	}
	if diff := cmp.Diff(em, got); diff != "" {
		t.Errorf("error message mismatch (-want +got):\n%s", diff)
	}
	if em.Error() != "fatal: HandlerPanic: boom" {
		t.Errorf("Error() = %q", em.Error())
	}
}

func TestStringers(t *testing.T) {
	if EventIntersect.String() != "Intersect" || EventType(0xEE).String() != "Unknown" {
		t.Error("unexpected EventType names")
	}
	if PatchObserve.String() != "Observe" || PatchOp(0xEE).String() != "Unknown" {
		t.Error("unexpected PatchOp names")
	}
	if CloseReload.String() != "Reload" || HandshakePageOutdated.String() != "PageOutdated" {
		t.Error("unexpected control names")
	}
}
