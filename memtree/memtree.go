// Package memtree provides an in-memory object store implementing
// objfs.Content.
//
// It exists for tests and examples: the tree is mutable through Add* calls,
// and because objfs caches nothing, mutations are visible to every
// enumeration started afterwards, which makes the no-stale-view behavior of
// the resolver observable without a real device.
package memtree

import (
	"fmt"
	"sync"

	"github.com/Jumpaku/go-objfs"
	"github.com/google/uuid"
)

type node struct {
	id        objfs.ObjectID
	name      string
	typeCode  uint32
	parentID  objfs.ObjectID
	hasParent bool
	children  []objfs.ObjectID
}

// Store is an in-memory tree of objects. The zero value is not usable; use
// New. Store methods are safe for concurrent use.
type Store struct {
	mu      sync.Mutex
	objects map[objfs.ObjectID]*node
	rootID  objfs.ObjectID
}

var _ objfs.Content = (*Store)(nil)

// New creates a store holding a single root folder with the given name.
func New(rootName string) *Store {
	rootID := objfs.ObjectID(uuid.NewString())
	return &Store{
		objects: map[objfs.ObjectID]*node{
			rootID: {id: rootID, name: rootName, typeCode: objfs.TypeCodeFolder},
		},
		rootID: rootID,
	}
}

// RootID returns the identifier of the root folder.
func (s *Store) RootID() objfs.ObjectID {
	return s.rootID
}

// Root returns a handle to the root folder.
func (s *Store) Root() *objfs.Object {
	s.mu.Lock()
	n := s.objects[s.rootID]
	s.mu.Unlock()
	return objfs.NewObject(s, n.id, n.name, objfs.ObjectTypeFromCode(n.typeCode))
}

// AddFolder adds a folder under parent and returns its generated identifier.
func (s *Store) AddFolder(parent objfs.ObjectID, name string) (objfs.ObjectID, error) {
	return s.add(parent, name, objfs.TypeCodeFolder)
}

// AddFile adds a file under parent and returns its generated identifier.
func (s *Store) AddFile(parent objfs.ObjectID, name string) (objfs.ObjectID, error) {
	return s.add(parent, name, objfs.TypeCodeFile)
}

// AddObject adds an object with an arbitrary raw type code under parent and
// returns its generated identifier.
func (s *Store) AddObject(parent objfs.ObjectID, name string, typeCode uint32) (objfs.ObjectID, error) {
	return s.add(parent, name, typeCode)
}

func (s *Store) add(parent objfs.ObjectID, name string, typeCode uint32) (objfs.ObjectID, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.objects[parent]
	if !ok {
		return "", fmt.Errorf("no such object: %s", parent)
	}
	id := objfs.ObjectID(uuid.NewString())
	s.objects[id] = &node{
		id:        id,
		name:      name,
		typeCode:  typeCode,
		parentID:  parent,
		hasParent: true,
	}
	p.children = append(p.children, id)
	return id, nil
}

// Rename changes the display name of an object. Handles constructed before
// the rename keep the old name; objfs never refreshes it.
func (s *Store) Rename(id objfs.ObjectID, newName string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	n, ok := s.objects[id]
	if !ok {
		return fmt.Errorf("no such object: %s", id)
	}
	n.name = newName
	return nil
}

// Remove deletes an object and its subtree from the store.
func (s *Store) Remove(id objfs.ObjectID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	n, ok := s.objects[id]
	if !ok {
		return fmt.Errorf("no such object: %s", id)
	}
	if n.hasParent {
		if p, ok := s.objects[n.parentID]; ok {
			for i, childID := range p.children {
				if childID == id {
					p.children = append(p.children[:i], p.children[i+1:]...)
					break
				}
			}
		}
	}
	s.removeSubtree(n)
	return nil
}

func (s *Store) removeSubtree(n *node) {
	for _, childID := range n.children {
		if child, ok := s.objects[childID]; ok {
			s.removeSubtree(child)
		}
	}
	delete(s.objects, n.id)
}

// Properties implements objfs.Content.
func (s *Store) Properties(id objfs.ObjectID, keys []objfs.PropertyKey) (objfs.PropertyBag, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	n, ok := s.objects[id]
	if !ok {
		return nil, fmt.Errorf("no such object: %s", id)
	}
	bag := objfs.PropertyBag{}
	for _, key := range keys {
		switch key {
		case objfs.PropertyName:
			bag[key] = n.name
		case objfs.PropertyTypeCode:
			bag[key] = n.typeCode
		case objfs.PropertyParentID:
			if n.hasParent {
				bag[key] = string(n.parentID)
			}
		}
	}
	return bag, nil
}

// EnumerateChildren implements objfs.Content. The enumeration observes the
// child list as of this call; children added afterwards appear in the next
// enumeration.
func (s *Store) EnumerateChildren(id objfs.ObjectID) (objfs.ChildEnumerator, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	n, ok := s.objects[id]
	if !ok {
		return nil, fmt.Errorf("no such object: %s", id)
	}
	ids := make([]objfs.ObjectID, len(n.children))
	copy(ids, n.children)
	return &enumerator{ids: ids}, nil
}

type enumerator struct {
	ids []objfs.ObjectID
	pos int
}

func (e *enumerator) Next() (objfs.ObjectID, error) {
	if e.pos >= len(e.ids) {
		return "", objfs.Done
	}
	id := e.ids[e.pos]
	e.pos++
	return id, nil
}
