package objfs_test

import (
	"errors"
	"fmt"
	"testing"

	objfs "github.com/Jumpaku/go-objfs"
	"github.com/Jumpaku/go-objfs/memtree"
)

// scriptContent is a Content whose failures are scripted per object, for
// exercising the error paths a healthy store never takes.
type scriptContent struct {
	bags      map[objfs.ObjectID]objfs.PropertyBag
	children  map[objfs.ObjectID][]objfs.ObjectID
	propErr   map[objfs.ObjectID]error
	enumErr   map[objfs.ObjectID]error
	failAfter map[objfs.ObjectID]int
	propCalls int
}

func (c *scriptContent) Properties(id objfs.ObjectID, keys []objfs.PropertyKey) (objfs.PropertyBag, error) {
	c.propCalls++
	if err := c.propErr[id]; err != nil {
		return nil, err
	}
	bag, ok := c.bags[id]
	if !ok {
		return nil, fmt.Errorf("no such object: %s", id)
	}
	out := objfs.PropertyBag{}
	for _, key := range keys {
		if v, ok := bag[key]; ok {
			out[key] = v
		}
	}
	return out, nil
}

func (c *scriptContent) EnumerateChildren(id objfs.ObjectID) (objfs.ChildEnumerator, error) {
	if err := c.enumErr[id]; err != nil {
		return nil, err
	}
	failAfter, failing := c.failAfter[id]
	if !failing {
		failAfter = -1
	}
	return &scriptEnumerator{ids: c.children[id], failAfter: failAfter}, nil
}

type scriptEnumerator struct {
	ids       []objfs.ObjectID
	pos       int
	failAfter int
}

func (e *scriptEnumerator) Next() (objfs.ObjectID, error) {
	if e.failAfter >= 0 && e.pos >= e.failAfter {
		return "", fmt.Errorf("device detached")
	}
	if e.pos >= len(e.ids) {
		return "", objfs.Done
	}
	id := e.ids[e.pos]
	e.pos++
	return id, nil
}

func bagOf(name string, typeCode uint32) objfs.PropertyBag {
	return objfs.PropertyBag{
		objfs.PropertyName:     name,
		objfs.PropertyTypeCode: typeCode,
	}
}

func TestChildren_OrderAndExactlyOnce(t *testing.T) {
	store := memtree.New("root")
	names := []string{"A", "b.txt", "C", "A"}
	for i, name := range names {
		var err error
		if i%2 == 0 {
			_, err = store.AddFolder(store.RootID(), name)
		} else {
			_, err = store.AddFile(store.RootID(), name)
		}
		if err != nil {
			t.Fatal(err)
		}
	}

	it, err := store.Root().Children()
	if err != nil {
		t.Fatalf("Children() error = %v", err)
	}
	children, err := it.Collect()
	if err != nil {
		t.Fatalf("Collect() error = %v", err)
	}
	if len(children) != len(names) {
		t.Fatalf("len(children) = %d, want %d", len(children), len(names))
	}
	seen := map[objfs.ObjectID]bool{}
	for i, child := range children {
		if child.Name() != names[i] {
			t.Errorf("children[%d].Name() = %q, want %q", i, child.Name(), names[i])
		}
		if seen[child.ID()] {
			t.Errorf("children[%d].ID() = %q yielded twice", i, child.ID())
		}
		seen[child.ID()] = true
	}

	// The iterator is not restartable: once drained it stays drained.
	if _, err := it.Next(); err != objfs.Done {
		t.Fatalf("Next() after exhaustion error = %v, want Done", err)
	}
}

func TestSubFolders_FiltersPreservingOrder(t *testing.T) {
	store := memtree.New("root")
	if _, err := store.AddFolder(store.RootID(), "A"); err != nil {
		t.Fatal(err)
	}
	if _, err := store.AddFile(store.RootID(), "b.txt"); err != nil {
		t.Fatal(err)
	}
	if _, err := store.AddFolder(store.RootID(), "C"); err != nil {
		t.Fatal(err)
	}

	it, err := store.Root().SubFolders()
	if err != nil {
		t.Fatalf("SubFolders() error = %v", err)
	}
	folders, err := it.Collect()
	if err != nil {
		t.Fatalf("Collect() error = %v", err)
	}
	if len(folders) != 2 || folders[0].Name() != "A" || folders[1].Name() != "C" {
		names := []string{}
		for _, f := range folders {
			names = append(names, f.Name())
		}
		t.Fatalf("SubFolders() = %v, want [A C]", names)
	}
	for _, f := range folders {
		if f.Type() != objfs.Folder() {
			t.Errorf("SubFolders() yielded %q of type %v", f.Name(), f.Type())
		}
	}
}

func TestChildren_EnumerationStartFailure(t *testing.T) {
	cause := fmt.Errorf("device busy")
	content := &scriptContent{
		bags:    map[objfs.ObjectID]objfs.PropertyBag{"root": bagOf("root", objfs.TypeCodeFolder)},
		enumErr: map[objfs.ObjectID]error{"root": cause},
	}
	root := objfs.NewObject(content, "root", "root", objfs.Folder())

	_, err := root.Children()
	if !errors.Is(err, objfs.ErrEnumeration) {
		t.Fatalf("Children() error = %v, want ErrEnumeration", err)
	}
	if !errors.Is(err, cause) {
		t.Fatalf("Children() error = %v, want wrapped cause", err)
	}

	// The resolver propagates the failure unmodified.
	if _, err := root.ByPath("anything"); !errors.Is(err, objfs.ErrEnumeration) {
		t.Fatalf("ByPath error = %v, want ErrEnumeration", err)
	}
}

func TestIterator_AdvanceFailureIsTerminal(t *testing.T) {
	content := &scriptContent{
		bags: map[objfs.ObjectID]objfs.PropertyBag{
			"root": bagOf("root", objfs.TypeCodeFolder),
			"a":    bagOf("a", objfs.TypeCodeFile),
			"b":    bagOf("b", objfs.TypeCodeFile),
		},
		children:  map[objfs.ObjectID][]objfs.ObjectID{"root": {"a", "b"}},
		failAfter: map[objfs.ObjectID]int{"root": 1},
	}
	root := objfs.NewObject(content, "root", "root", objfs.Folder())

	it, err := root.Children()
	if err != nil {
		t.Fatalf("Children() error = %v", err)
	}
	first, err := it.Next()
	if err != nil {
		t.Fatalf("Next() error = %v", err)
	}
	if first.Name() != "a" {
		t.Fatalf("Next().Name() = %q, want %q", first.Name(), "a")
	}
	if _, err := it.Next(); !errors.Is(err, objfs.ErrEnumeration) {
		t.Fatalf("Next() error = %v, want ErrEnumeration", err)
	}
	// The failure is terminal; the sequence does not continue past it.
	if _, err := it.Next(); !errors.Is(err, objfs.ErrEnumeration) {
		t.Fatalf("Next() after failure error = %v, want ErrEnumeration again", err)
	}
}

func TestIterator_ChildPropertyFailureIsTerminal(t *testing.T) {
	cause := fmt.Errorf("object vanished")
	content := &scriptContent{
		bags: map[objfs.ObjectID]objfs.PropertyBag{
			"root": bagOf("root", objfs.TypeCodeFolder),
			"a":    bagOf("a", objfs.TypeCodeFile),
			"c":    bagOf("c", objfs.TypeCodeFile),
		},
		children: map[objfs.ObjectID][]objfs.ObjectID{"root": {"a", "bad", "c"}},
		propErr:  map[objfs.ObjectID]error{"bad": cause},
	}
	root := objfs.NewObject(content, "root", "root", objfs.Folder())

	it, err := root.Children()
	if err != nil {
		t.Fatalf("Children() error = %v", err)
	}
	if _, err := it.Next(); err != nil {
		t.Fatalf("Next() error = %v", err)
	}
	if _, err := it.Next(); !errors.Is(err, objfs.ErrPropertyLookup) {
		t.Fatalf("Next() error = %v, want ErrPropertyLookup", err)
	}
	if _, err := it.Next(); !errors.Is(err, objfs.ErrPropertyLookup) {
		t.Fatalf("Next() after failure error = %v, want ErrPropertyLookup again", err)
	}
}

func TestIterator_FetchesPropertiesLazily(t *testing.T) {
	content := &scriptContent{
		bags: map[objfs.ObjectID]objfs.PropertyBag{
			"root": bagOf("root", objfs.TypeCodeFolder),
			"a":    bagOf("a", objfs.TypeCodeFile),
			"b":    bagOf("b", objfs.TypeCodeFile),
			"c":    bagOf("c", objfs.TypeCodeFile),
		},
		children: map[objfs.ObjectID][]objfs.ObjectID{"root": {"a", "b", "c"}},
	}
	root := objfs.NewObject(content, "root", "root", objfs.Folder())

	it, err := root.Children()
	if err != nil {
		t.Fatalf("Children() error = %v", err)
	}
	if content.propCalls != 0 {
		t.Fatalf("propCalls after Children() = %d, want 0", content.propCalls)
	}
	if _, err := it.Next(); err != nil {
		t.Fatal(err)
	}
	if content.propCalls != 1 {
		t.Fatalf("propCalls after one Next() = %d, want 1", content.propCalls)
	}
	if _, err := it.Next(); err != nil {
		t.Fatal(err)
	}
	if content.propCalls != 2 {
		t.Fatalf("propCalls after two Next() = %d, want 2", content.propCalls)
	}
}

func TestObjectByID_MissingProperties(t *testing.T) {
	content := &scriptContent{
		bags: map[objfs.ObjectID]objfs.PropertyBag{
			"nameless": {objfs.PropertyTypeCode: objfs.TypeCodeFile},
			"typeless": {objfs.PropertyName: "typeless"},
		},
	}

	for _, id := range []objfs.ObjectID{"nameless", "typeless", "missing"} {
		if _, err := objfs.ObjectByID(content, id); !errors.Is(err, objfs.ErrPropertyLookup) {
			t.Errorf("ObjectByID(%q) error = %v, want ErrPropertyLookup", id, err)
		}
	}
}
