package protocol

import (
	"errors"
	"sort"
)

// EventType identifies the type of client event.
type EventType uint8

// Event type constants.
const (
	// Pointer events
	EventClick      EventType = 0x01
	EventMouseEnter EventType = 0x06
	EventMouseLeave EventType = 0x07

	// Form events
	EventSubmit EventType = 0x12

	// Viewport events
	EventScroll    EventType = 0x30
	EventLayout    EventType = 0x31 // Viewport height and element offsets
	EventIntersect EventType = 0x32 // IntersectionObserver entry
)

var eventTypeNames = map[EventType]string{
	EventClick:      "Click",
	EventMouseEnter: "MouseEnter",
	EventMouseLeave: "MouseLeave",
	EventSubmit:     "Submit",
	EventScroll:     "Scroll",
	EventLayout:     "Layout",
	EventIntersect:  "Intersect",
}

// String returns the string representation of the event type.
func (et EventType) String() string {
	if name, ok := eventTypeNames[et]; ok {
		return name
	}
	return "Unknown"
}

// ErrUnknownEventType is returned when decoding an event type the server does not handle.
var ErrUnknownEventType = errors.New("protocol: unknown event type")

// Event is a decoded client event.
type Event struct {
	Seq     uint64    // Client sequence number
	Type    EventType // Event type
	HID     string    // Target element's hydration ID ("" for document/window)
	Payload any       // Type-specific payload
}

// ScrollEventData is the payload of EventScroll.
type ScrollEventData struct {
	ScrollY float64
}

// SubmitEventData is the payload of EventSubmit.
type SubmitEventData struct {
	Fields map[string]string
}

// LayoutEventData is the payload of EventLayout. The client reports it on
// connect and after every resize.
type LayoutEventData struct {
	ViewportHeight float64
	ScrollY        float64
	Offsets        map[string]float64 // HID → offsetTop
}

// IntersectEventData is the payload of EventIntersect.
type IntersectEventData struct {
	ObserverID   uint32
	Ratio        float64
	Intersecting bool
}

// EncodeEvent encodes an event to bytes.
func EncodeEvent(ev *Event) []byte {
	e := NewEncoder()
	EncodeEventTo(e, ev)
	return e.Bytes()
}

// EncodeEventTo encodes an event using the provided encoder.
func EncodeEventTo(e *Encoder, ev *Event) {
	e.WriteUvarint(ev.Seq)
	e.WriteByte(byte(ev.Type))
	e.WriteString(ev.HID)

	switch ev.Type {
	case EventScroll:
		var d ScrollEventData
		if p, ok := ev.Payload.(*ScrollEventData); ok {
			d = *p
		}
		e.WriteFloat64(d.ScrollY)

	case EventSubmit:
		var fields map[string]string
		if p, ok := ev.Payload.(*SubmitEventData); ok {
			fields = p.Fields
		}
		e.WriteStringMap(sortedKeys(fields), fields)

	case EventLayout:
		var d LayoutEventData
		if p, ok := ev.Payload.(*LayoutEventData); ok {
			d = *p
		}
		e.WriteFloat64(d.ViewportHeight)
		e.WriteFloat64(d.ScrollY)
		keys := make([]string, 0, len(d.Offsets))
		for k := range d.Offsets {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		e.WriteUvarint(uint64(len(keys)))
		for _, k := range keys {
			e.WriteString(k)
			e.WriteFloat64(d.Offsets[k])
		}

	case EventIntersect:
		var d IntersectEventData
		if p, ok := ev.Payload.(*IntersectEventData); ok {
			d = *p
		}
		e.WriteUvarint(uint64(d.ObserverID))
		e.WriteFloat64(d.Ratio)
		e.WriteBool(d.Intersecting)
	}
}

// DecodeEvent decodes an event from bytes.
func DecodeEvent(data []byte) (*Event, error) {
	return DecodeEventFrom(NewDecoder(data))
}

// DecodeEventFrom decodes an event from a decoder.
func DecodeEventFrom(d *Decoder) (*Event, error) {
	seq, err := d.ReadUvarint()
	if err != nil {
		return nil, err
	}
	typ, err := d.ReadByte()
	if err != nil {
		return nil, err
	}
	hid, err := d.ReadString()
	if err != nil {
		return nil, err
	}

	ev := &Event{Seq: seq, Type: EventType(typ), HID: hid}

	switch ev.Type {
	case EventClick, EventMouseEnter, EventMouseLeave:
		// No payload

	case EventScroll:
		y, err := d.ReadFloat64()
		if err != nil {
			return nil, err
		}
		ev.Payload = &ScrollEventData{ScrollY: y}

	case EventSubmit:
		fields, err := d.ReadStringMap()
		if err != nil {
			return nil, err
		}
		ev.Payload = &SubmitEventData{Fields: fields}

	case EventLayout:
		data := &LayoutEventData{}
		if data.ViewportHeight, err = d.ReadFloat64(); err != nil {
			return nil, err
		}
		if data.ScrollY, err = d.ReadFloat64(); err != nil {
			return nil, err
		}
		count, err := d.ReadCollectionCount()
		if err != nil {
			return nil, err
		}
		data.Offsets = make(map[string]float64, count)
		for i := 0; i < count; i++ {
			k, err := d.ReadString()
			if err != nil {
				return nil, err
			}
			v, err := d.ReadFloat64()
			if err != nil {
				return nil, err
			}
			data.Offsets[k] = v
		}
		ev.Payload = data

	case EventIntersect:
		id, err := d.ReadUvarint()
		if err != nil {
			return nil, err
		}
		ratio, err := d.ReadFloat64()
		if err != nil {
			return nil, err
		}
		hit, err := d.ReadBool()
		if err != nil {
			return nil, err
		}
		ev.Payload = &IntersectEventData{ObserverID: uint32(id), Ratio: ratio, Intersecting: hit}

	default:
		return nil, ErrUnknownEventType
	}

	return ev, nil
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
