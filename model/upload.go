package model

import (
	"encoding/json"
	"io"

	"github.com/pkg/errors"
)

// UploadKind distinguishes which document of a request an Upload tracks.
type UploadKind string

const (
	UploadKindOriginal   UploadKind = "original"
	UploadKindTranslated UploadKind = "translated"
)

// Upload tracks the asynchronous copy of a received document into the file
// store. CompleteAt remains zero until the copy finishes; Error is set when
// it fails or is abandoned.
type Upload struct {
	ID         string
	RequestID  string
	Kind       UploadKind
	CreateAt   int64
	CompleteAt int64
	Error      string
}

// NewUpload creates an Upload for the given request and document kind.
func NewUpload(requestID string, kind UploadKind) *Upload {
	return &Upload{
		ID:        NewID(),
		RequestID: requestID,
		Kind:      kind,
		CreateAt:  GetMillis(),
	}
}

// NewUploadFromReader decodes an Upload from JSON.
func NewUploadFromReader(reader io.Reader) (*Upload, error) {
	var upload Upload
	err := json.NewDecoder(reader).Decode(&upload)
	if err != nil && err != io.EOF {
		return nil, errors.Wrap(err, "failed to decode upload")
	}
	return &upload, nil
}
