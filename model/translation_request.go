package model

import (
	"encoding/json"
	"io"
	"strings"

	"github.com/pkg/errors"
)

// TranslationRequest represents a single document a user has submitted for
// translation and the review workflow wrapped around it. The document bytes
// themselves live in the file store; the request only carries their names.
type TranslationRequest struct {
	ID                 string
	UserID             string
	Title              string
	Description        string
	SourceLanguage     string
	TargetLanguage     string
	Status             Status
	OriginalFileName   string
	StoredFileName     string
	TranslatedFileName string
	UserComment        string
	AdminComment       string
	CreateAt           int64
	UpdateAt           int64
	CompleteAt         int64
}

// NewTranslationRequest creates a pending request owned by the given user.
func NewTranslationRequest(userID string) *TranslationRequest {
	now := GetMillis()
	return &TranslationRequest{
		ID:       NewID(),
		UserID:   userID,
		Status:   StatusPending,
		CreateAt: now,
		UpdateAt: now,
	}
}

// IsOwnedBy reports whether the given user submitted this request.
func (t *TranslationRequest) IsOwnedBy(userID string) bool {
	return t.UserID == userID
}

// SubmitRequest carries the metadata fields of a new translation request.
// The document itself travels alongside it as a multipart file part.
type SubmitRequest struct {
	Title          string
	Description    string
	SourceLanguage string
	TargetLanguage string
	UserComment    string
}

// Validate returns per-field issues for a submission, or nil when it is
// acceptable.
func (r *SubmitRequest) Validate() map[string]string {
	issues := make(map[string]string)
	if strings.TrimSpace(r.Title) == "" {
		issues["title"] = "title is required"
	}
	if strings.TrimSpace(r.SourceLanguage) == "" {
		issues["sourceLanguage"] = "source language is required"
	}
	if strings.TrimSpace(r.TargetLanguage) == "" {
		issues["targetLanguage"] = "target language is required"
	}
	if len(issues) == 0 {
		return nil
	}
	return issues
}

// UpdateRequest carries an owner's metadata edits to an existing request.
// The uploaded document cannot be changed this way; that is what resubmit is
// for.
type UpdateRequest struct {
	ID             string
	Title          string
	Description    string
	SourceLanguage string
	TargetLanguage string
	UserComment    string
}

// Validate returns per-field issues for an update, or nil when it is
// acceptable.
func (r *UpdateRequest) Validate() map[string]string {
	issues := make(map[string]string)
	if strings.TrimSpace(r.ID) == "" {
		issues["id"] = "id is required"
	}
	if strings.TrimSpace(r.Title) == "" {
		issues["title"] = "title is required"
	}
	if strings.TrimSpace(r.SourceLanguage) == "" {
		issues["sourceLanguage"] = "source language is required"
	}
	if strings.TrimSpace(r.TargetLanguage) == "" {
		issues["targetLanguage"] = "target language is required"
	}
	if len(issues) == 0 {
		return nil
	}
	return issues
}

// ReviewRequest carries an administrator's comment on an approve or reject.
// The comment is optional on approve and mandatory on reject; the transition
// guard enforces the distinction.
type ReviewRequest struct {
	Comment string
}

// ResubmitRequest carries the optional comment accompanying a resubmission.
// A replacement document may travel alongside it as a multipart file part.
type ResubmitRequest struct {
	Comment string
}

// NewTranslationRequestFromReader decodes a TranslationRequest from JSON.
func NewTranslationRequestFromReader(reader io.Reader) (*TranslationRequest, error) {
	var request TranslationRequest
	err := json.NewDecoder(reader).Decode(&request)
	if err != nil && err != io.EOF {
		return nil, errors.Wrap(err, "failed to decode translation request")
	}
	return &request, nil
}

// NewTranslationRequestListFromReader decodes a list of TranslationRequests
// from JSON.
func NewTranslationRequestListFromReader(reader io.Reader) ([]*TranslationRequest, error) {
	var requests []*TranslationRequest
	err := json.NewDecoder(reader).Decode(&requests)
	if err != nil && err != io.EOF {
		return nil, errors.Wrap(err, "failed to decode translation request list")
	}
	return requests, nil
}

// NewUpdateRequestFromReader decodes an UpdateRequest from JSON.
func NewUpdateRequestFromReader(reader io.Reader) (*UpdateRequest, error) {
	var request UpdateRequest
	err := json.NewDecoder(reader).Decode(&request)
	if err != nil && err != io.EOF {
		return nil, errors.Wrap(err, "failed to decode update request")
	}
	return &request, nil
}

// NewReviewRequestFromReader decodes a ReviewRequest from JSON. An empty
// body is treated as an empty comment.
func NewReviewRequestFromReader(reader io.Reader) (*ReviewRequest, error) {
	var request ReviewRequest
	err := json.NewDecoder(reader).Decode(&request)
	if err != nil && err != io.EOF {
		return nil, errors.Wrap(err, "failed to decode review request")
	}
	return &request, nil
}

// NewApiErrorFromReader decodes an ApiError from JSON.
func NewApiErrorFromReader(reader io.Reader) (*ApiError, error) {
	var apiErr ApiError
	err := json.NewDecoder(reader).Decode(&apiErr)
	if err != nil && err != io.EOF {
		return nil, errors.Wrap(err, "failed to decode api error")
	}
	return &apiErr, nil
}
