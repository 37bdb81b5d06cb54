package memtree

import (
	"testing"

	objfs "github.com/Jumpaku/go-objfs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStore_RootProperties(t *testing.T) {
	store := New("Internal storage")

	root := store.Root()
	assert.Equal(t, store.RootID(), root.ID())
	assert.Equal(t, "Internal storage", root.Name())
	assert.Equal(t, objfs.Folder(), root.Type())

	bag, err := store.Properties(store.RootID(), []objfs.PropertyKey{objfs.PropertyParentID})
	require.NoError(t, err)
	_, ok := bag.String(objfs.PropertyParentID)
	assert.False(t, ok, "root must have no parent property")
}

func TestStore_AddAndEnumerate(t *testing.T) {
	store := New("root")
	a, err := store.AddFolder(store.RootID(), "a")
	require.NoError(t, err)
	b, err := store.AddFile(store.RootID(), "b.txt")
	require.NoError(t, err)

	enum, err := store.EnumerateChildren(store.RootID())
	require.NoError(t, err)

	var ids []objfs.ObjectID
	for {
		id, err := enum.Next()
		if err == objfs.Done {
			break
		}
		require.NoError(t, err)
		ids = append(ids, id)
	}
	assert.Equal(t, []objfs.ObjectID{a, b}, ids, "children enumerate in insertion order")
}

func TestStore_AddUnderMissingParent(t *testing.T) {
	store := New("root")
	_, err := store.AddFile("nope", "x")
	assert.Error(t, err)
}

func TestStore_ParentProperty(t *testing.T) {
	store := New("root")
	a, err := store.AddFolder(store.RootID(), "a")
	require.NoError(t, err)
	f, err := store.AddFile(a, "f.txt")
	require.NoError(t, err)

	bag, err := store.Properties(f, []objfs.PropertyKey{objfs.PropertyParentID})
	require.NoError(t, err)
	parent, ok := bag.String(objfs.PropertyParentID)
	require.True(t, ok)
	assert.Equal(t, string(a), parent)
}

func TestStore_CustomTypeCode(t *testing.T) {
	store := New("root")
	id, err := store.AddObject(store.RootID(), "playlist", 0xBA05)
	require.NoError(t, err)

	obj, err := objfs.ObjectByID(store, id)
	require.NoError(t, err)
	assert.Equal(t, objfs.Other(0xBA05), obj.Type())
}

func TestStore_RemoveSubtree(t *testing.T) {
	store := New("root")
	a, err := store.AddFolder(store.RootID(), "a")
	require.NoError(t, err)
	nested, err := store.AddFolder(a, "nested")
	require.NoError(t, err)
	leaf, err := store.AddFile(nested, "leaf.txt")
	require.NoError(t, err)

	require.NoError(t, store.Remove(a))

	for _, id := range []objfs.ObjectID{a, nested, leaf} {
		_, err := store.Properties(id, []objfs.PropertyKey{objfs.PropertyName})
		assert.Error(t, err, "object %s must be gone", id)
	}

	enum, err := store.EnumerateChildren(store.RootID())
	require.NoError(t, err)
	_, err = enum.Next()
	assert.Equal(t, objfs.Done, err, "root must have no children left")
}

func TestStore_EnumerationIsSnapshot(t *testing.T) {
	store := New("root")
	_, err := store.AddFile(store.RootID(), "before.txt")
	require.NoError(t, err)

	enum, err := store.EnumerateChildren(store.RootID())
	require.NoError(t, err)

	_, err = store.AddFile(store.RootID(), "after.txt")
	require.NoError(t, err)

	var count int
	for {
		_, err := enum.Next()
		if err == objfs.Done {
			break
		}
		require.NoError(t, err)
		count++
	}
	assert.Equal(t, 1, count, "a started enumeration does not observe later additions")

	fresh, err := store.EnumerateChildren(store.RootID())
	require.NoError(t, err)
	count = 0
	for {
		_, err := fresh.Next()
		if err == objfs.Done {
			break
		}
		require.NoError(t, err)
		count++
	}
	assert.Equal(t, 2, count, "a fresh enumeration observes the mutation")
}
