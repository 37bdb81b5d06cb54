package objfs

import "unicode/utf16"

// ObjectID is the opaque identifier the remote store assigns to one object
// (e.g. "o2C"). It is unique within one connection session and is the only
// object attribute guaranteed durable for the life of the remote object.
//
// IDs are compared by exact equality. Clients never construct them except by
// reading them back out of remote call results.
type ObjectID string

// UTF16 returns the identifier as the sequence of 16-bit code units portable
// device protocols carry on the wire.
func (id ObjectID) UTF16() []uint16 {
	return utf16.Encode([]rune(string(id)))
}

// ObjectIDFromUTF16 decodes an identifier from its wire form.
func ObjectIDFromUTF16(units []uint16) ObjectID {
	return ObjectID(string(utf16.Decode(units)))
}
