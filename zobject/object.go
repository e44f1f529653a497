package zobject

import (
	"zmachine-go/zcore"
	"zmachine-go/zerr"
	"zmachine-go/zstring"
)

// Object is a decoded view over one object record. It is a value type
// carrying its own base address; mutating accessors take *zcore.Memory
// and write straight back through it, so an Object never goes stale
// across a single Get/mutate/Get round trip but should be re-fetched
// after any operation that might move it in the tree.
type Object struct {
	Id              uint16
	BaseAddress     uint32
	Name            string
	Parent          uint16
	Sibling         uint16
	Child           uint16
	PropertyPointer uint16
	traits          Traits
	alphabets       *zstring.Alphabets
}

func objectBase(id uint16, mem *zcore.Memory, traits Traits) uint32 {
	// The defaults table (one word per possible property) sits between the
	// object table base and the first object record.
	tableBase := uint32(mem.Header.ObjectTableBase) + 2*uint32(traits.MaxProperties)
	return tableBase + uint32(id-1)*uint32(traits.ObjectSize)
}

// Get decodes object id from the object table. id 0 is never a valid
// object and is rejected rather than silently returning the header.
func Get(id uint16, mem *zcore.Memory, traits Traits, alphabets *zstring.Alphabets) (*Object, error) {
	if id == 0 {
		return nil, zerr.Semantic("object id 0 is not a valid object")
	}
	base := objectBase(id, mem, traits)

	linkOff := uint32(traits.AttributeBytes)
	readLink := func(off uint32) (uint16, error) {
		if traits.IndexSize == 1 {
			b, err := mem.ReadByte(base + off)
			return uint16(b), err
		}
		return mem.ReadWord(base + off)
	}

	parent, err := readLink(linkOff)
	if err != nil {
		return nil, err
	}
	sibling, err := readLink(linkOff + uint32(traits.IndexSize))
	if err != nil {
		return nil, err
	}
	child, err := readLink(linkOff + 2*uint32(traits.IndexSize))
	if err != nil {
		return nil, err
	}
	propPtr, err := mem.ReadWord(base + linkOff + 3*uint32(traits.IndexSize))
	if err != nil {
		return nil, err
	}

	nameLenWords, err := mem.ReadByte(uint32(propPtr))
	if err != nil {
		return nil, err
	}
	var name string
	if nameLenWords > 0 {
		name, _, err = zstring.Decode(mem, uint32(propPtr)+1, alphabets)
		if err != nil {
			return nil, err
		}
	}

	return &Object{
		Id:              id,
		BaseAddress:     base,
		Name:            name,
		Parent:          parent,
		Sibling:         sibling,
		Child:           child,
		PropertyPointer: propPtr,
		traits:          traits,
		alphabets:       alphabets,
	}, nil
}

func (o *Object) writeLink(mem *zcore.Memory, off uint32, v uint16) error {
	if o.traits.IndexSize == 1 {
		return mem.WriteByte(o.BaseAddress+off, uint8(v))
	}
	return mem.WriteWord(o.BaseAddress+off, v)
}

func (o *Object) SetParent(mem *zcore.Memory, id uint16) error {
	o.Parent = id
	return o.writeLink(mem, uint32(o.traits.AttributeBytes), id)
}

func (o *Object) SetSibling(mem *zcore.Memory, id uint16) error {
	o.Sibling = id
	return o.writeLink(mem, uint32(o.traits.AttributeBytes)+uint32(o.traits.IndexSize), id)
}

func (o *Object) SetChild(mem *zcore.Memory, id uint16) error {
	o.Child = id
	return o.writeLink(mem, uint32(o.traits.AttributeBytes)+2*uint32(o.traits.IndexSize), id)
}

// TestAttribute reports whether attribute n is set. Attribute 0 is the
// highest-order bit of the first attribute byte.
func (o *Object) TestAttribute(mem *zcore.Memory, n uint8) (bool, error) {
	if n >= o.traits.AttributeBytes*8 {
		return false, zerr.Bounds("attribute %d out of range", n)
	}
	b, err := mem.ReadByte(o.BaseAddress + uint32(n/8))
	if err != nil {
		return false, err
	}
	return b&(0x80>>(n%8)) != 0, nil
}

func (o *Object) setAttributeBit(mem *zcore.Memory, n uint8, set bool) error {
	if n >= o.traits.AttributeBytes*8 {
		return zerr.Bounds("attribute %d out of range", n)
	}
	addr := o.BaseAddress + uint32(n/8)
	b, err := mem.ReadByte(addr)
	if err != nil {
		return err
	}
	mask := uint8(0x80 >> (n % 8))
	if set {
		b |= mask
	} else {
		b &^= mask
	}
	return mem.WriteByte(addr, b)
}

func (o *Object) SetAttribute(mem *zcore.Memory, n uint8) error { return o.setAttributeBit(mem, n, true) }

func (o *Object) ClearAttribute(mem *zcore.Memory, n uint8) error {
	return o.setAttributeBit(mem, n, false)
}

// Unlink removes o from its parent's child list, relinking siblings. It
// leaves o.Parent/Sibling untouched in memory; the caller (insert_obj,
// remove_obj) is responsible for updating those once the splice is done.
func Unlink(mem *zcore.Memory, o *Object, traits Traits, alphabets *zstring.Alphabets) error {
	if o.Parent == 0 {
		return nil
	}
	parent, err := Get(o.Parent, mem, traits, alphabets)
	if err != nil {
		return err
	}
	if parent.Child == o.Id {
		return parent.SetChild(mem, o.Sibling)
	}
	sib, err := Get(parent.Child, mem, traits, alphabets)
	if err != nil {
		return err
	}
	for sib.Sibling != o.Id {
		if sib.Sibling == 0 {
			return zerr.Semantic("object %d not found in parent %d's child chain", o.Id, o.Parent)
		}
		sib, err = Get(sib.Sibling, mem, traits, alphabets)
		if err != nil {
			return err
		}
	}
	return sib.SetSibling(mem, o.Sibling)
}

// Move detaches o from its current parent (if any) and inserts it as the
// new first child of dest, implementing both insert_obj and the detach
// half of remove_obj.
func Move(mem *zcore.Memory, o *Object, destId uint16, traits Traits, alphabets *zstring.Alphabets) error {
	if err := Unlink(mem, o, traits, alphabets); err != nil {
		return err
	}
	if err := o.SetSibling(mem, 0); err != nil {
		return err
	}
	if err := o.SetParent(mem, destId); err != nil {
		return err
	}
	if destId == 0 {
		return nil
	}
	dest, err := Get(destId, mem, traits, alphabets)
	if err != nil {
		return err
	}
	if err := o.SetSibling(mem, dest.Child); err != nil {
		return err
	}
	return dest.SetChild(mem, o.Id)
}
