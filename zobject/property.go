package zobject

import (
	"zmachine-go/zcore"
	"zmachine-go/zerr"
)

// Property is one decoded entry in an object's property list.
type Property struct {
	Number     uint8
	Length     uint8
	DataAddr   uint32
	HeaderAddr uint32
}

func propertyTableStart(mem *zcore.Memory, o *Object) (uint32, error) {
	nameLenWords, err := mem.ReadByte(uint32(o.PropertyPointer))
	if err != nil {
		return 0, err
	}
	return uint32(o.PropertyPointer) + 1 + 2*uint32(nameLenWords), nil
}

func decodePropertyHeader(mem *zcore.Memory, sizeByteAddr uint32) (number uint8, length uint8, dataAddr uint32, err error) {
	sizeByte, err := mem.ReadByte(sizeByteAddr)
	if err != nil {
		return 0, 0, 0, err
	}
	number = sizeByte & 0x1F
	length = (sizeByte >> 5) + 1
	dataAddr = sizeByteAddr + 1
	return
}

// FindProperty scans the property list for propNum, returning it if
// present. Properties are stored in strictly descending number order and
// terminated by a zero size byte; the scan stops as soon as it passes
// where propNum would be, whether or not it is actually the first entry
// in the list ("max_properties + 1" fix: unlike a scan seeded with the
// version's maximum legal property number as a sentinel, this never
// mistakes the very top property number for "past the end").
func FindProperty(mem *zcore.Memory, o *Object, propNum uint8) (*Property, error) {
	addr, err := propertyTableStart(mem, o)
	if err != nil {
		return nil, err
	}
	for {
		number, length, dataAddr, err := decodePropertyHeader(mem, addr)
		if err != nil {
			return nil, err
		}
		if number == 0 || number < propNum {
			return nil, nil
		}
		if number == propNum {
			return &Property{Number: number, Length: length, DataAddr: dataAddr, HeaderAddr: addr}, nil
		}
		addr = dataAddr + uint32(length)
	}
}

// PropertyLength decodes the length encoded in the size byte immediately
// before dataAddr, as get_prop_len does from a bare property data address.
func PropertyLength(mem *zcore.Memory, dataAddr uint32) (uint8, error) {
	if dataAddr == 0 {
		return 0, nil
	}
	sizeByte, err := mem.ReadByte(dataAddr - 1)
	if err != nil {
		return 0, err
	}
	return (sizeByte >> 5) + 1, nil
}

// GetPropertyWord reads a property's value as a word, falling back to the
// property-defaults table when the object has no such property (get_prop's
// documented default behaviour). Properties longer than 2 bytes cannot be
// read as a value and are a story-file error.
func GetPropertyWord(mem *zcore.Memory, o *Object, propNum uint8, traits Traits) (uint16, error) {
	prop, err := FindProperty(mem, o, propNum)
	if err != nil {
		return 0, err
	}
	if prop == nil {
		return mem.ReadTableWord(mem.Header.ObjectTableBase, uint16(propNum)-1)
	}
	switch prop.Length {
	case 1:
		b, err := mem.ReadByte(prop.DataAddr)
		return uint16(b), err
	case 2:
		return mem.ReadWord(prop.DataAddr)
	default:
		return 0, zerr.Semantic("property %d of object %d is %d bytes, not readable as a value", propNum, o.Id, prop.Length)
	}
}

// PutPropertyWord writes a word-sized value into an existing property.
// It is a semantic error to put_prop a property the object does not have.
func PutPropertyWord(mem *zcore.Memory, o *Object, propNum uint8, value uint16) error {
	prop, err := FindProperty(mem, o, propNum)
	if err != nil {
		return err
	}
	if prop == nil {
		return propertyNotFoundErr(o, propNum)
	}
	if prop.Length == 1 {
		return mem.WriteByte(prop.DataAddr, uint8(value))
	}
	return mem.WriteWord(prop.DataAddr, value)
}

// GetPropertyAddr returns the byte address of propNum's data, or 0 if the
// object has no such property.
func GetPropertyAddr(mem *zcore.Memory, o *Object, propNum uint8) (uint32, error) {
	prop, err := FindProperty(mem, o, propNum)
	if err != nil {
		return 0, err
	}
	if prop == nil {
		return 0, nil
	}
	return prop.DataAddr, nil
}

// GetNextProperty implements get_next_prop: given the current property
// number (0 meaning "before the first"), returns the number of the
// property that follows it, or 0 if there is none. Asking for the
// successor of a property the object does not have is an error.
func GetNextProperty(mem *zcore.Memory, o *Object, current uint8) (uint8, error) {
	addr, err := propertyTableStart(mem, o)
	if err != nil {
		return 0, err
	}
	if current == 0 {
		number, _, _, err := decodePropertyHeader(mem, addr)
		return number, err
	}
	for {
		number, length, dataAddr, err := decodePropertyHeader(mem, addr)
		if err != nil {
			return 0, err
		}
		if number == 0 {
			return 0, propertyNotFoundErr(o, current)
		}
		next := dataAddr + uint32(length)
		if number == current {
			nextNumber, _, _, err := decodePropertyHeader(mem, next)
			return nextNumber, err
		}
		addr = next
	}
}

// The short name goes into the diagnostic: "object 12" alone is useless
// when debugging a story, "object 12 (brass lantern)" is not.
func propertyNotFoundErr(o *Object, propNum uint8) error {
	return zerr.Semantic("object %d (%s) has no property %d", o.Id, o.Name, propNum)
}
