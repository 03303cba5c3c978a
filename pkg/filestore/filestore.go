// Package filestore contains the file collections resolvers load file records from.
package filestore

import (
	"context"
	"encoding/json"
	"errors"
)

var ErrMissingID = errors.New("filestore: file record has no _id")

// File is a stored file record.
type File struct {
	ID   string `json:"_id"`
	Name string `json:"name,omitempty"`
	Type string `json:"type,omitempty"`
	Size int64  `json:"size,omitempty"`
	URL  string `json:"url,omitempty"`
	// Raw is the record as stored, including fields unknown to File.
	Raw json.RawMessage `json:"-"`
}

func (f *File) FileID() string {
	if f == nil {
		return ""
	}
	return f.ID
}

// Collection looks up file records by id.
// FindByIDs returns the records found in any order. Unknown ids are not an error.
type Collection interface {
	FindByIDs(ctx context.Context, ids []string) ([]*File, error)
}
