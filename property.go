package objfs

// PropertyKey names one remote object property.
type PropertyKey string

const (
	// PropertyName is the object display name (e.g. "PIC_001.jpg").
	PropertyName PropertyKey = "name"
	// PropertyTypeCode is the raw object type code (see TypeCodeFolder and
	// TypeCodeFile).
	PropertyTypeCode PropertyKey = "typeCode"
	// PropertyParentID is the identifier of the object's parent. Absent on
	// an object with no parent, notably the tree root.
	PropertyParentID PropertyKey = "parentId"
)

// PropertyBag holds property values returned by one remote fetch. A key the
// remote store reported no value for is absent from the bag.
type PropertyBag map[PropertyKey]any

// String returns the string value for key, reporting whether the key is
// present with a string value.
func (b PropertyBag) String(key PropertyKey) (string, bool) {
	v, ok := b[key].(string)
	return v, ok
}

// Uint32 returns the numeric value for key, reporting whether the key is
// present with a uint32 value.
func (b PropertyBag) Uint32(key PropertyKey) (uint32, bool) {
	v, ok := b[key].(uint32)
	return v, ok
}
