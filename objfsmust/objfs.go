// Package objfsmust wraps the objfs package with panic-based error handling.
//
// It provides the same traversal operations as the root-level objfs package,
// but instead of returning errors, all exported methods panic on failure.
// It is intended for scripts and tests where a failed remote call is fatal
// anyway.
package objfsmust

import (
	objfs "github.com/Jumpaku/go-objfs"
)

// Object wraps an objfs.Object.
//
// All methods of Object panic on error instead of returning an error value.
type Object struct {
	obj *objfs.Object
}

// Wrap wraps an existing handle.
func Wrap(obj *objfs.Object) Object {
	return Object{obj: obj}
}

// ObjectByID materializes a handle from a bare identifier.
//
// It panics if the remote property fetch fails.
func ObjectByID(content objfs.Content, id objfs.ObjectID) Object {
	return Wrap(must1(objfs.ObjectByID(content, id)))
}

// Unwrap returns the underlying objfs.Object.
func (o Object) Unwrap() *objfs.Object {
	return o.obj
}

// ID returns the object's identifier.
func (o Object) ID() objfs.ObjectID {
	return o.obj.ID()
}

// Name returns the display name captured at construction.
func (o Object) Name() string {
	return o.obj.Name()
}

// Type returns the object type captured at construction.
func (o Object) Type() objfs.ObjectType {
	return o.obj.Type()
}

// ParentID fetches the identifier of the object's parent.
//
// It panics if the remote lookup fails or the object has no parent.
func (o Object) ParentID() objfs.ObjectID {
	return must1(o.obj.ParentID())
}

// Children enumerates the object's direct children into a slice.
//
// It panics if the enumeration fails to start or to advance, or if a
// per-child property fetch fails.
func (o Object) Children() []Object {
	return wrapAll(must1(must1(o.obj.Children()).Collect()))
}

// SubFolders enumerates the object's direct sub-folders into a slice.
//
// It panics under the same conditions as Children.
func (o Object) SubFolders() []Object {
	return wrapAll(must1(must1(o.obj.SubFolders()).Collect()))
}

// ByPath resolves a relative path against this handle.
//
// It panics if resolution fails for any reason, including a missing child
// or an absolute path.
func (o Object) ByPath(relativePath string) Object {
	return Wrap(must1(o.obj.ByPath(relativePath)))
}

func wrapAll(objects []*objfs.Object) []Object {
	wrapped := make([]Object, 0, len(objects))
	for _, obj := range objects {
		wrapped = append(wrapped, Wrap(obj))
	}
	return wrapped
}
