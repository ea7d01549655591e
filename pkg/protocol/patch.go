package protocol

import "fmt"

// PatchOp is the type of patch operation.
type PatchOp uint8

// Patch operation constants.
const (
	PatchSetText     PatchOp = 0x01 // Update text content
	PatchSetAttr     PatchOp = 0x02 // Set attribute
	PatchRemoveAttr  PatchOp = 0x03 // Remove attribute
	PatchInsertHTML  PatchOp = 0x04 // Append rendered HTML to a parent
	PatchRemoveNode  PatchOp = 0x05 // Remove node
	PatchResetForm   PatchOp = 0x09 // form.reset()
	PatchScrollTo    PatchOp = 0x0D // Scroll the window
	PatchAddClass    PatchOp = 0x10 // Add CSS class
	PatchRemoveClass PatchOp = 0x11 // Remove CSS class
	PatchToggleClass PatchOp = 0x12 // Toggle CSS class
	PatchSetStyle    PatchOp = 0x13 // Set style property
	PatchRemoveStyle PatchOp = 0x14 // Remove style property
	PatchListen      PatchOp = 0x30 // Forward a native event / prevent its default
	PatchObserve     PatchOp = 0x31 // Add element to an intersection observer
	PatchUnobserve   PatchOp = 0x32 // Remove element from an intersection observer
)

var patchOpNames = map[PatchOp]string{
	PatchSetText:     "SetText",
	PatchSetAttr:     "SetAttr",
	PatchRemoveAttr:  "RemoveAttr",
	PatchInsertHTML:  "InsertHTML",
	PatchRemoveNode:  "RemoveNode",
	PatchResetForm:   "ResetForm",
	PatchScrollTo:    "ScrollTo",
	PatchAddClass:    "AddClass",
	PatchRemoveClass: "RemoveClass",
	PatchToggleClass: "ToggleClass",
	PatchSetStyle:    "SetStyle",
	PatchRemoveStyle: "RemoveStyle",
	PatchListen:      "Listen",
	PatchObserve:     "Observe",
	PatchUnobserve:   "Unobserve",
}

// String returns the string representation of the patch operation.
func (op PatchOp) String() string {
	if name, ok := patchOpNames[op]; ok {
		return name
	}
	return "Unknown"
}

// Patch is a single DOM mutation. Which fields are meaningful depends on Op:
//
//	SetText            HID, Value
//	SetAttr            HID, Key, Value
//	RemoveAttr         HID, Key
//	InsertHTML         HID (parent), Value (html)
//	RemoveNode         HID
//	ResetForm          HID
//	ScrollTo           Num (y), Bool (smooth)
//	Add/Remove/Toggle  HID, Key (class)
//	SetStyle           HID, Key (property), Value
//	RemoveStyle        HID, Key
//	Listen             HID, Key (event), Bool (prevent default)
//	Observe            HID, ID (observer), Num (threshold), Value (root margin)
//	Unobserve          HID, ID
type Patch struct {
	Op    PatchOp
	HID   string
	Key   string
	Value string
	Num   float64
	ID    uint32
	Bool  bool
}

// String renders the patch for logs and test failures.
func (p Patch) String() string {
	return fmt.Sprintf("%s(%s %q %q)", p.Op, p.HID, p.Key, p.Value)
}

// PatchesFrame is a sequenced batch of patches.
type PatchesFrame struct {
	Seq     uint64
	Patches []Patch
}

// EncodePatches encodes a batch of patches to bytes.
func EncodePatches(pf *PatchesFrame) []byte {
	e := NewEncoder()
	EncodePatchesTo(e, pf)
	return e.Bytes()
}

// EncodePatchesTo encodes a batch of patches using the provided encoder.
func EncodePatchesTo(e *Encoder, pf *PatchesFrame) {
	e.WriteUvarint(pf.Seq)
	e.WriteUvarint(uint64(len(pf.Patches)))
	for i := range pf.Patches {
		encodePatch(e, &pf.Patches[i])
	}
}

func encodePatch(e *Encoder, p *Patch) {
	e.WriteByte(byte(p.Op))
	switch p.Op {
	case PatchScrollTo:
		e.WriteFloat64(p.Num)
		e.WriteBool(p.Bool)
		return
	}

	e.WriteString(p.HID)
	switch p.Op {
	case PatchSetText, PatchInsertHTML:
		e.WriteString(p.Value)
	case PatchSetAttr, PatchSetStyle:
		e.WriteString(p.Key)
		e.WriteString(p.Value)
	case PatchRemoveAttr, PatchAddClass, PatchRemoveClass, PatchToggleClass, PatchRemoveStyle:
		e.WriteString(p.Key)
	case PatchListen:
		e.WriteString(p.Key)
		e.WriteBool(p.Bool)
	case PatchObserve:
		e.WriteUvarint(uint64(p.ID))
		e.WriteFloat64(p.Num)
		e.WriteString(p.Value)
	case PatchUnobserve:
		e.WriteUvarint(uint64(p.ID))
	}
}

// DecodePatches decodes a batch of patches from bytes.
func DecodePatches(data []byte) (*PatchesFrame, error) {
	d := NewDecoder(data)
	seq, err := d.ReadUvarint()
	if err != nil {
		return nil, err
	}
	count, err := d.ReadCollectionCount()
	if err != nil {
		return nil, err
	}
	pf := &PatchesFrame{Seq: seq, Patches: make([]Patch, count)}
	for i := 0; i < count; i++ {
		if err := decodePatch(d, &pf.Patches[i]); err != nil {
			return nil, err
		}
	}
	return pf, nil
}

func decodePatch(d *Decoder, p *Patch) error {
	op, err := d.ReadByte()
	if err != nil {
		return err
	}
	p.Op = PatchOp(op)
	if _, ok := patchOpNames[p.Op]; !ok {
		return fmt.Errorf("protocol: unknown patch op 0x%02x", op)
	}

	if p.Op == PatchScrollTo {
		if p.Num, err = d.ReadFloat64(); err != nil {
			return err
		}
		p.Bool, err = d.ReadBool()
		return err
	}

	if p.HID, err = d.ReadString(); err != nil {
		return err
	}

	switch p.Op {
	case PatchSetText, PatchInsertHTML:
		p.Value, err = d.ReadString()
	case PatchSetAttr, PatchSetStyle:
		if p.Key, err = d.ReadString(); err != nil {
			return err
		}
		p.Value, err = d.ReadString()
	case PatchRemoveAttr, PatchAddClass, PatchRemoveClass, PatchToggleClass, PatchRemoveStyle:
		p.Key, err = d.ReadString()
	case PatchListen:
		if p.Key, err = d.ReadString(); err != nil {
			return err
		}
		p.Bool, err = d.ReadBool()
	case PatchObserve:
		var id uint64
		if id, err = d.ReadUvarint(); err != nil {
			return err
		}
		p.ID = uint32(id)
		if p.Num, err = d.ReadFloat64(); err != nil {
			return err
		}
		p.Value, err = d.ReadString()
	case PatchUnobserve:
		var id uint64
		id, err = d.ReadUvarint()
		p.ID = uint32(id)
	}
	return err
}

// Patch constructors.

func NewSetTextPatch(hid, text string) Patch {
	return Patch{Op: PatchSetText, HID: hid, Value: text}
}

func NewSetAttrPatch(hid, key, value string) Patch {
	return Patch{Op: PatchSetAttr, HID: hid, Key: key, Value: value}
}

func NewRemoveAttrPatch(hid, key string) Patch {
	return Patch{Op: PatchRemoveAttr, HID: hid, Key: key}
}

func NewInsertHTMLPatch(parentHID, html string) Patch {
	return Patch{Op: PatchInsertHTML, HID: parentHID, Value: html}
}

func NewRemoveNodePatch(hid string) Patch {
	return Patch{Op: PatchRemoveNode, HID: hid}
}

func NewResetFormPatch(hid string) Patch {
	return Patch{Op: PatchResetForm, HID: hid}
}

func NewScrollToPatch(y float64, smooth bool) Patch {
	return Patch{Op: PatchScrollTo, Num: y, Bool: smooth}
}

func NewAddClassPatch(hid, class string) Patch {
	return Patch{Op: PatchAddClass, HID: hid, Key: class}
}

func NewRemoveClassPatch(hid, class string) Patch {
	return Patch{Op: PatchRemoveClass, HID: hid, Key: class}
}

func NewToggleClassPatch(hid, class string) Patch {
	return Patch{Op: PatchToggleClass, HID: hid, Key: class}
}

func NewSetStylePatch(hid, property, value string) Patch {
	return Patch{Op: PatchSetStyle, HID: hid, Key: property, Value: value}
}

func NewRemoveStylePatch(hid, property string) Patch {
	return Patch{Op: PatchRemoveStyle, HID: hid, Key: property}
}

func NewListenPatch(hid, event string, prevent bool) Patch {
	return Patch{Op: PatchListen, HID: hid, Key: event, Bool: prevent}
}

func NewObservePatch(hid string, observer uint32, threshold float64, rootMargin string) Patch {
	return Patch{Op: PatchObserve, HID: hid, ID: observer, Num: threshold, Value: rootMargin}
}

func NewUnobservePatch(hid string, observer uint32) Patch {
	return Patch{Op: PatchUnobserve, HID: hid, ID: observer}
}
