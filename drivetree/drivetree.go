// Package drivetree adapts Google Drive to the objfs.Content interface,
// exposing a Drive as a remote enumerable object tree.
//
// Every Properties call is one Files.Get and every enumeration is a fresh
// Files.List query; nothing is cached, so resolution always observes the
// current Drive state.
package drivetree

import (
	"errors"
	"fmt"
	"strings"

	objfs "github.com/Jumpaku/go-objfs"
	"google.golang.org/api/drive/v3"
	"google.golang.org/api/googleapi"
)

const (
	mimeTypeFolder = "application/vnd.google-apps.folder"

	driveFileFields     = "id,name,mimeType,parents"
	driveChildrenFields = "nextPageToken,files(id)"

	listPageSize = 100
)

// Content adapts a drive.Service to objfs.Content.
type Content struct {
	service *drive.Service
}

var _ objfs.Content = (*Content)(nil)

// New creates a Content backed by the given drive.Service. The service
// should be properly authenticated before being passed to this function.
func New(service *drive.Service) *Content {
	return &Content{service: service}
}

// Root returns a handle to the Drive root folder.
func (c *Content) Root() (*objfs.Object, error) {
	return objfs.ObjectByID(c, "root")
}

// Properties implements objfs.Content with one Files.Get call.
func (c *Content) Properties(id objfs.ObjectID, keys []objfs.PropertyKey) (objfs.PropertyBag, error) {
	f, err := c.service.Files.Get(string(id)).
		SupportsAllDrives(true).
		Fields(driveFileFields).
		Do()
	if err != nil {
		var gErr *googleapi.Error
		if errors.As(err, &gErr) && gErr.Code == 404 {
			return nil, fmt.Errorf("file '%s' does not exist: %w", id, err)
		}
		return nil, fmt.Errorf("failed to get file '%s': %w", id, err)
	}
	if len(f.Parents) > 1 {
		return nil, fmt.Errorf("file '%s' has multiple parents, not supported", id)
	}
	bag := objfs.PropertyBag{}
	for _, key := range keys {
		switch key {
		case objfs.PropertyName:
			bag[key] = f.Name
		case objfs.PropertyTypeCode:
			bag[key] = typeCodeOf(f.MimeType)
		case objfs.PropertyParentID:
			if len(f.Parents) == 1 {
				bag[key] = f.Parents[0]
			}
		}
	}
	return bag, nil
}

// EnumerateChildren implements objfs.Content. The first page is fetched
// eagerly so that a query that cannot start fails here; further pages are
// fetched lazily as the enumeration advances.
func (c *Content) EnumerateChildren(id objfs.ObjectID) (objfs.ChildEnumerator, error) {
	e := &enumerator{
		service: c.service,
		query:   fmt.Sprintf("'%s' in parents and trashed = false", escapeQuery(string(id))),
	}
	if err := e.fetchPage(""); err != nil {
		return nil, err
	}
	return e, nil
}

type enumerator struct {
	service       *drive.Service
	query         string
	ids           []objfs.ObjectID
	pos           int
	nextPageToken string
}

func (e *enumerator) fetchPage(token string) error {
	call := e.service.Files.List().
		SupportsAllDrives(true).
		IncludeItemsFromAllDrives(true).
		Q(e.query).
		Fields(driveChildrenFields).
		PageSize(listPageSize)
	if token != "" {
		call = call.PageToken(token)
	}
	res, err := call.Do()
	if err != nil {
		return fmt.Errorf("failed to list children: %w", err)
	}
	e.ids = e.ids[:0]
	e.pos = 0
	for _, f := range res.Files {
		e.ids = append(e.ids, objfs.ObjectID(f.Id))
	}
	e.nextPageToken = res.NextPageToken
	return nil
}

func (e *enumerator) Next() (objfs.ObjectID, error) {
	for e.pos >= len(e.ids) {
		if e.nextPageToken == "" {
			return "", objfs.Done
		}
		if err := e.fetchPage(e.nextPageToken); err != nil {
			return "", err
		}
	}
	id := e.ids[e.pos]
	e.pos++
	return id, nil
}

func typeCodeOf(mimeType string) uint32 {
	if mimeType == mimeTypeFolder {
		return objfs.TypeCodeFolder
	}
	return objfs.TypeCodeFile
}

func escapeQuery(s string) string {
	s = strings.ReplaceAll(s, "'", `\'`)
	s = strings.ReplaceAll(s, `\`, `\\`)
	return s
}
