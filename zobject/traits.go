// Package zobject implements the object tree: parent/sibling/child links,
// attribute flags, and variable-width properties, parameterised by a
// per-version Traits record so v4/v5's wider records can be added without
// restructuring the accessors.
package zobject

import "zmachine-go/zerr"

// Traits captures the version-dependent shape of the object table.
type Traits struct {
	IndexSize      uint8 // bytes used for parent/sibling/child fields
	ObjectSize     uint8 // total bytes per object record
	AttributeBytes uint8 // bytes of attribute flags at the front of a record
	MaxProperties  uint8 // highest legal property number
}

// TraitsV3 is the v1-v3 object table shape: 1-byte links, 32 attributes,
// properties 1-31.
var TraitsV3 = Traits{
	IndexSize:      1,
	ObjectSize:     9,
	AttributeBytes: 4,
	MaxProperties:  31,
}

func TraitsForVersion(version uint8) (Traits, error) {
	switch version {
	case 1, 2, 3:
		return TraitsV3, nil
	default:
		return Traits{}, zerr.UnsupportedOp("object table traits for version %d", version)
	}
}
