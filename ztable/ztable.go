// Package ztable holds generalised table operations (print/scan/copy) in
// the style of the v4+ opcodes of the same name. v3's Machine never
// dispatches to these directly, but the same table arithmetic is useful
// debug tooling, so it lives here rather than being deleted outright.
package ztable

import "zmachine-go/zcore"

// PrintTable renders a width x height character grid stored at baddr, one
// row per `width` bytes plus `skip` bytes of stride padding, as a string
// with embedded newlines. Used by cmd/gametest's -dump-objects view of the
// abbreviation table.
func PrintTable(mem *zcore.Memory, baddr uint32, width, height, skip uint16) (string, error) {
	out := make([]byte, 0, int(width)*int(height))
	addr := baddr
	for row := uint16(0); row < height; row++ {
		for col := uint16(0); col < width; col++ {
			b, err := mem.ReadByte(addr)
			if err != nil {
				return "", err
			}
			out = append(out, b)
			addr++
		}
		if row+1 < height {
			out = append(out, '\n')
		}
		addr += uint32(skip)
	}
	return string(out), nil
}

// ScanTable searches a table of `length` fields for `test`, returning the
// field's address or 0 if not found. Field size in bytes is (form & 0x7f),
// or 2 when that is 0. Each field is compared as a word when bit 0x80 of
// form is set or the field size is 2, and as a byte otherwise.
func ScanTable(mem *zcore.Memory, test uint16, baddr uint32, length uint16, form uint16) (uint32, error) {
	fieldSize := form & 0x7f
	if fieldSize == 0 {
		fieldSize = 2
	}
	wide := form&0x80 != 0 || fieldSize == 2
	addr := baddr
	for i := uint16(0); i < length; i++ {
		var v uint16
		var err error
		if wide {
			v, err = mem.ReadWord(addr)
		} else {
			var b uint8
			b, err = mem.ReadByte(addr)
			v = uint16(b)
		}
		if err != nil {
			return 0, err
		}
		if v == test {
			return addr, nil
		}
		addr += uint32(fieldSize)
	}
	return 0, nil
}

// CopyTable copies `size` bytes from first to second. A negative size
// permits overlap (forward copy, matching copy_table's documented
// semantics); a non-negative size copies via a temporary buffer so
// overlapping regions never corrupt each other; second == 0 zeroes the
// first table instead of copying.
func CopyTable(mem *zcore.Memory, first, second uint32, size int32) error {
	n := size
	if n < 0 {
		n = -n
	}
	if second == 0 {
		for i := int32(0); i < n; i++ {
			if err := mem.WriteByte(first+uint32(i), 0); err != nil {
				return err
			}
		}
		return nil
	}
	if size >= 0 {
		buf := make([]byte, n)
		for i := int32(0); i < n; i++ {
			b, err := mem.ReadByte(first + uint32(i))
			if err != nil {
				return err
			}
			buf[i] = b
		}
		for i := int32(0); i < n; i++ {
			if err := mem.WriteByte(second+uint32(i), buf[i]); err != nil {
				return err
			}
		}
		return nil
	}
	for i := int32(0); i < n; i++ {
		b, err := mem.ReadByte(first + uint32(i))
		if err != nil {
			return err
		}
		if err := mem.WriteByte(second+uint32(i), b); err != nil {
			return err
		}
	}
	return nil
}
