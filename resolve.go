package objfs

import (
	"strings"
)

type componentKind int

const (
	componentNormal componentKind = iota
	componentCurrent
	componentParent
	componentRoot
)

type component struct {
	kind componentKind
	name string
}

// splitComponents decomposes a slash-separated path into classified
// components. Repeated separators collapse, a leading separator or a
// Windows-style volume prefix (e.g. "C:") yields a root component, and "."
// and ".." classify as current- and parent-directory markers. The empty
// path yields no components.
func splitComponents(path string) []component {
	var comps []component
	if len(path) >= 2 && path[1] == ':' && isVolumeLetter(path[0]) {
		comps = append(comps, component{kind: componentRoot})
		path = path[2:]
	} else if strings.HasPrefix(path, "/") || strings.HasPrefix(path, `\`) {
		comps = append(comps, component{kind: componentRoot})
	}
	for _, part := range strings.FieldsFunc(path, isSeparator) {
		switch part {
		case ".":
			comps = append(comps, component{kind: componentCurrent})
		case "..":
			comps = append(comps, component{kind: componentParent})
		default:
			comps = append(comps, component{kind: componentNormal, name: part})
		}
	}
	return comps
}

func isSeparator(r rune) bool {
	return r == '/' || r == '\\'
}

func isVolumeLetter(c byte) bool {
	return ('a' <= c && c <= 'z') || ('A' <= c && c <= 'Z')
}

// ByPath resolves a relative path against this handle and returns the
// handle of the target object.
//
// Each plain name costs a fresh child enumeration of the current object,
// scanned for the first child whose name matches exactly (no case folding,
// no Unicode normalization); "." keeps the current object and ".." costs a
// remote parent lookup. This is expensive by construction: nothing is
// cached, so concurrent mutations of the remote tree are never papered over
// by a stale local view. Callers that resolve the same deep prefix often
// should hold on to the handle of that prefix.
//
// Failure modes: ErrNotFound if a named child is absent or the path has no
// components at all, ErrAbsolutePath if the path carries a root or volume
// prefix component, and ErrPropertyLookup or ErrEnumeration for remote
// failures, which abort the whole resolution immediately. Resolving an
// empty path fails with ErrNotFound rather than returning the origin.
func (o *Object) ByPath(relativePath string) (*Object, error) {
	comps := splitComponents(relativePath)
	if len(comps) == 0 {
		return nil, &wrapError{underlying: ErrNotFound, msg: "empty path"}
	}
	current := o
	for _, comp := range comps {
		switch comp.kind {
		case componentRoot:
			return nil, &wrapError{underlying: ErrAbsolutePath, msg: "path '" + relativePath + "' is not relative"}
		case componentCurrent:
			// Keep the current object.
		case componentParent:
			parentID, err := current.ParentID()
			if err != nil {
				return nil, err
			}
			parent, err := ObjectByID(current.content, parentID)
			if err != nil {
				return nil, err
			}
			current = parent
		case componentNormal:
			child, err := current.childByName(comp.name)
			if err != nil {
				return nil, err
			}
			current = child
		}
	}
	return current, nil
}

// childByName enumerates the object's children and returns the first one
// whose name matches exactly.
func (o *Object) childByName(name string) (*Object, error) {
	children, err := o.Children()
	if err != nil {
		return nil, err
	}
	for {
		child, err := children.Next()
		if err == Done {
			return nil, &wrapError{underlying: ErrNotFound, msg: "no child named '" + name + "' in object '" + string(o.id) + "'"}
		}
		if err != nil {
			return nil, err
		}
		if child.Name() == name {
			return child, nil
		}
	}
}
