package objfs

import "errors"

// Done is returned by ObjectIterator.Next and ChildEnumerator.Next when the
// enumeration is exhausted.
var Done = errors.New("no more children")

// ObjectIterator lazily produces the children of one object, in the order
// the remote store reports them, without materializing the full child list.
// Each element costs one remote property fetch on top of the shared
// enumeration.
//
// The iterator is forward-only and cannot be restarted; re-enumerating
// requires a fresh Children call. That is intentional: the package caches
// nothing, so a new enumeration always observes the current remote tree.
type ObjectIterator struct {
	content     Content
	enum        ChildEnumerator
	foldersOnly bool
	err         error
}

// Next returns the next child, or Done when the enumeration is exhausted.
//
// If the remote enumeration fails to advance, Next fails with
// ErrEnumeration; if the per-child property fetch fails, it fails with
// ErrPropertyLookup. Either failure is terminal: the iterator does not skip
// past the failed position, and subsequent calls return the same error.
func (it *ObjectIterator) Next() (*Object, error) {
	if it.err != nil {
		return nil, it.err
	}
	for {
		id, err := it.enum.Next()
		if err == Done {
			it.err = Done
			return nil, Done
		}
		if err != nil {
			it.err = newEnumerationError("failed to advance enumeration", err)
			return nil, it.err
		}
		obj, err := ObjectByID(it.content, id)
		if err != nil {
			it.err = err
			return nil, it.err
		}
		if it.foldersOnly && obj.Type() != Folder() {
			continue
		}
		return obj, nil
	}
}

// Collect drains the iterator into a slice.
func (it *ObjectIterator) Collect() ([]*Object, error) {
	var objects []*Object
	for {
		obj, err := it.Next()
		if err == Done {
			return objects, nil
		}
		if err != nil {
			return nil, err
		}
		objects = append(objects, obj)
	}
}
