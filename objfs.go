// Package objfs resolves filesystem-style relative paths into object handles
// on a remote, enumerable object store.
//
// The store is a tree of named items (folders and files) reachable only
// through remote calls: "enumerate children of X" and "fetch properties of
// X". There is no local cache of the tree; every traversal step is a fresh
// round trip, so a resolved handle never reflects a stale view of a
// concurrently mutated remote tree. Callers that need a hot path to stay
// cheap must keep their own handles to frequently used folders, accepting
// the staleness that comes with that.
//
// The package is written against the Content interface, which a backend
// implements on top of whatever transport it has (see the drivetree, s3tree
// and memtree subpackages).
package objfs

// Content is the connection to one remote object store session.
//
// Many Objects share a single Content; the package never mutates or closes
// it. Content implementations are not required to be safe for concurrent
// use: the package issues at most one outstanding call at a time, and
// callers resolving paths from multiple goroutines over one Content must
// synchronize externally.
type Content interface {
	// Properties fetches the requested property values of the object
	// identified by id. A property the remote store has no value for is
	// simply absent from the returned bag.
	Properties(id ObjectID, keys []PropertyKey) (PropertyBag, error)

	// EnumerateChildren starts a fresh enumeration of the direct children
	// of the object identified by id. Each call issues a new remote
	// enumeration; results are never cached across calls.
	EnumerateChildren(id ObjectID) (ChildEnumerator, error)
}

// ChildEnumerator pulls child identifiers from one remote enumeration, in
// the order the remote store reports them. It is forward-only and cannot be
// restarted.
type ChildEnumerator interface {
	// Next returns the next child identifier, or Done when the enumeration
	// is exhausted.
	Next() (ObjectID, error)
}

// ObjectByID materializes an Object from a bare identifier by fetching its
// display name and type code from the remote store.
func ObjectByID(content Content, id ObjectID) (*Object, error) {
	bag, err := content.Properties(id, []PropertyKey{PropertyName, PropertyTypeCode})
	if err != nil {
		return nil, newPropertyLookupError("failed to fetch properties of object '"+string(id)+"'", err)
	}
	name, ok := bag.String(PropertyName)
	if !ok {
		return nil, newPropertyLookupError("object '"+string(id)+"' has no name property", nil)
	}
	code, ok := bag.Uint32(PropertyTypeCode)
	if !ok {
		return nil, newPropertyLookupError("object '"+string(id)+"' has no type property", nil)
	}
	return NewObject(content, id, name, ObjectTypeFromCode(code)), nil
}
