package objfs

// Object is a handle to one remote object as last observed: a shared
// connection to the store, the object identifier, and the display name and
// type captured when the handle was constructed.
//
// Name and type are never refreshed; if the remote tree mutates after
// construction they may go stale. The identifier is the only field that
// stays valid for the life of the remote object, and resolution never
// re-validates the cached fields.
type Object struct {
	content Content
	id      ObjectID
	name    string
	typ     ObjectType
}

// NewObject binds a connection, an identifier and the object's observed name
// and type into a handle. Backends call this from their enumeration and
// lookup primitives; application code usually obtains handles from
// ObjectByID, Children or ByPath instead.
func NewObject(content Content, id ObjectID, name string, typ ObjectType) *Object {
	return &Object{content: content, id: id, name: name, typ: typ}
}

// Content returns the connection this handle is bound to.
func (o *Object) Content() Content {
	return o.content
}

// ID returns the object's identifier.
func (o *Object) ID() ObjectID {
	return o.id
}

// Name returns the display name captured at construction. It does not
// requery the remote store.
func (o *Object) Name() string {
	return o.name
}

// Type returns the object type captured at construction. It does not
// requery the remote store.
func (o *Object) Type() ObjectType {
	return o.typ
}

// ParentID fetches the identifier of the object's parent with one remote
// property lookup. It fails with ErrPropertyLookup if the remote call errors
// or the object has no parent, which is how "root has no parent" surfaces.
func (o *Object) ParentID() (ObjectID, error) {
	bag, err := o.content.Properties(o.id, []PropertyKey{PropertyParentID})
	if err != nil {
		return "", newPropertyLookupError("failed to fetch parent of object '"+string(o.id)+"'", err)
	}
	parent, ok := bag.String(PropertyParentID)
	if !ok {
		return "", newPropertyLookupError("object '"+string(o.id)+"' has no parent", nil)
	}
	return ObjectID(parent), nil
}

// Children starts a fresh remote enumeration of the object's direct children
// (including sub-folders). Every call issues a new remote enumeration; it
// fails with ErrEnumeration if the enumeration cannot be started.
func (o *Object) Children() (*ObjectIterator, error) {
	enum, err := o.content.EnumerateChildren(o.id)
	if err != nil {
		return nil, newEnumerationError("failed to enumerate children of object '"+string(o.id)+"'", err)
	}
	return &ObjectIterator{content: o.content, enum: enum}, nil
}

// SubFolders is Children restricted to entries whose type is Folder,
// preserving enumeration order.
func (o *Object) SubFolders() (*ObjectIterator, error) {
	it, err := o.Children()
	if err != nil {
		return nil, err
	}
	it.foldersOnly = true
	return it, nil
}
