// Package treefs provides io/fs views over a remote object tree resolved
// through objfs.
//
// The view is structural: names, directory listings and Stat work, but the
// object store exposes no content transfer, so reading a file's bytes fails
// with ErrNotReadable. Every Open and every ReadDir issues fresh remote
// calls; nothing is cached between operations.
package treefs

import (
	"errors"
	"io"
	"io/fs"
	"slices"
	"strings"
	"time"

	objfs "github.com/Jumpaku/go-objfs"
)

// ErrNotReadable reports that a file's content cannot be read through the
// object store.
var ErrNotReadable = errors.New("not readable")

// FS exposes the subtree under origin as an fs.FS. Path names follow io/fs
// conventions: slash-separated, relative, with "." naming origin itself.
type FS struct {
	origin *objfs.Object
}

// Verify interface implementations at compile time.
var (
	_ fs.FS        = (*FS)(nil)
	_ fs.StatFS    = (*FS)(nil)
	_ fs.ReadDirFS = (*FS)(nil)
)

// New creates an FS rooted at origin.
func New(origin *objfs.Object) *FS {
	return &FS{origin: origin}
}

func (fsys *FS) resolve(op, name string) (*objfs.Object, error) {
	if !fs.ValidPath(name) {
		return nil, &fs.PathError{Op: op, Path: name, Err: fs.ErrInvalid}
	}
	if name == "." {
		return fsys.origin, nil
	}
	obj, err := fsys.origin.ByPath(name)
	if err != nil {
		if errors.Is(err, objfs.ErrNotFound) {
			return nil, &fs.PathError{Op: op, Path: name, Err: fs.ErrNotExist}
		}
		return nil, &fs.PathError{Op: op, Path: name, Err: err}
	}
	return obj, nil
}

// Open opens the named file or directory.
func (fsys *FS) Open(name string) (fs.File, error) {
	obj, err := fsys.resolve("open", name)
	if err != nil {
		return nil, err
	}
	if obj.Type() == objfs.Folder() {
		return &Dir{obj: obj}, nil
	}
	return &File{obj: obj}, nil
}

// Stat returns a FileInfo describing the named file or directory.
func (fsys *FS) Stat(name string) (fs.FileInfo, error) {
	obj, err := fsys.resolve("stat", name)
	if err != nil {
		return nil, err
	}
	return &FileInfo{obj: obj}, nil
}

// ReadDir reads the named directory and returns its entries sorted by name,
// as the fs.ReadDirFS contract requires. A Dir obtained through Open serves
// entries in remote enumeration order instead.
func (fsys *FS) ReadDir(name string) ([]fs.DirEntry, error) {
	obj, err := fsys.resolve("readdir", name)
	if err != nil {
		return nil, err
	}
	entries, err := readEntries(name, obj)
	if err != nil {
		return nil, err
	}
	slices.SortFunc(entries, func(a, b fs.DirEntry) int {
		return strings.Compare(a.Name(), b.Name())
	})
	return entries, nil
}

func readEntries(name string, obj *objfs.Object) ([]fs.DirEntry, error) {
	it, err := obj.Children()
	if err != nil {
		return nil, &fs.PathError{Op: "readdir", Path: name, Err: err}
	}
	children, err := it.Collect()
	if err != nil {
		return nil, &fs.PathError{Op: "readdir", Path: name, Err: err}
	}
	entries := make([]fs.DirEntry, 0, len(children))
	for _, child := range children {
		entries = append(entries, &DirEntry{obj: child})
	}
	return entries, nil
}

// Dir implements fs.ReadDirFile for a remote folder. The child list is
// enumerated on the first ReadDir call and then served incrementally.
type Dir struct {
	obj     *objfs.Object
	entries []fs.DirEntry
	listed  bool
	offset  int
}

// Verify interface implementation at compile time.
var _ fs.ReadDirFile = (*Dir)(nil)

// Stat returns the directory info.
func (d *Dir) Stat() (fs.FileInfo, error) {
	return &FileInfo{obj: d.obj}, nil
}

// Read returns an error because directories cannot be read.
func (d *Dir) Read([]byte) (int, error) {
	return 0, &fs.PathError{Op: "read", Path: d.obj.Name(), Err: fs.ErrInvalid}
}

// Close closes the directory.
func (d *Dir) Close() error {
	return nil
}

// ReadDir reads the directory entries.
func (d *Dir) ReadDir(n int) ([]fs.DirEntry, error) {
	if !d.listed {
		entries, err := readEntries(d.obj.Name(), d.obj)
		if err != nil {
			return nil, err
		}
		d.entries = entries
		d.listed = true
	}

	if n <= 0 {
		entries := d.entries[d.offset:]
		d.offset = len(d.entries)
		return entries, nil
	}

	if d.offset >= len(d.entries) {
		return nil, io.EOF
	}

	end := d.offset + n
	if end > len(d.entries) {
		end = len(d.entries)
	}

	entries := d.entries[d.offset:end]
	d.offset = end

	if d.offset >= len(d.entries) {
		return entries, io.EOF
	}
	return entries, nil
}

// File implements fs.File for a remote non-folder object. Stat works from
// the handle's cached attributes; Read fails because the store exposes no
// content transfer.
type File struct {
	obj *objfs.Object
}

// Verify interface implementation at compile time.
var _ fs.File = (*File)(nil)

// Stat returns the file info.
func (f *File) Stat() (fs.FileInfo, error) {
	return &FileInfo{obj: f.obj}, nil
}

// Read returns an error: object content is not reachable through the store.
func (f *File) Read([]byte) (int, error) {
	return 0, &fs.PathError{Op: "read", Path: f.obj.Name(), Err: ErrNotReadable}
}

// Close closes the file.
func (f *File) Close() error {
	return nil
}

// DirEntry implements fs.DirEntry for a remote object.
type DirEntry struct {
	obj *objfs.Object
}

// Verify interface implementation at compile time.
var _ fs.DirEntry = (*DirEntry)(nil)

// Name returns the name of the entry.
func (e *DirEntry) Name() string {
	return e.obj.Name()
}

// IsDir reports whether the entry is a folder.
func (e *DirEntry) IsDir() bool {
	return e.obj.Type() == objfs.Folder()
}

// Type returns the file mode bits.
func (e *DirEntry) Type() fs.FileMode {
	if e.IsDir() {
		return fs.ModeDir
	}
	return 0
}

// Info returns the file info.
func (e *DirEntry) Info() (fs.FileInfo, error) {
	return &FileInfo{obj: e.obj}, nil
}

// FileInfo implements fs.FileInfo for a remote object. The store reports no
// size or modification time, so Size is always 0 and ModTime the zero time.
type FileInfo struct {
	obj *objfs.Object
}

// Verify interface implementation at compile time.
var _ fs.FileInfo = (*FileInfo)(nil)

// Name returns the object's display name.
func (fi *FileInfo) Name() string {
	return fi.obj.Name()
}

// Size returns 0; the store does not report sizes.
func (fi *FileInfo) Size() int64 {
	return 0
}

// Mode returns the file mode bits.
func (fi *FileInfo) Mode() fs.FileMode {
	if fi.IsDir() {
		return fs.ModeDir | 0555
	}
	return 0444
}

// ModTime returns the zero time; the store does not report timestamps.
func (fi *FileInfo) ModTime() time.Time {
	return time.Time{}
}

// IsDir reports whether the object is a folder.
func (fi *FileInfo) IsDir() bool {
	return fi.obj.Type() == objfs.Folder()
}

// Sys returns the underlying *objfs.Object.
func (fi *FileInfo) Sys() any {
	return fi.obj
}
