package model

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"mime"
	"mime/multipart"
	"net/http"
	"time"

	"github.com/pkg/errors"
)

// Client is the programmatic interface to the translation request API. Every
// call takes an explicit Session; a missing or empty session short-circuits
// to an Unauthenticated error before any network activity. Mutating calls
// additionally run the transition guard against the request's last known
// status so that obviously illegal actions never cost a round trip.
//
// All failures are returned as *ApiError. The client never computes a new
// status locally; the server's response is the source of truth.
type Client struct {
	address    string
	headers    map[string]string
	httpClient *http.Client
}

// NewClient creates a new instance of Client pointed at the given address.
func NewClient(address string) *Client {
	return &Client{
		address:    address,
		headers:    make(map[string]string),
		httpClient: &http.Client{},
	}
}

// Register creates a new account. No session is required.
func (c *Client) Register(request *RegisterRequest) (*User, error) {
	if issues := request.Validate(); issues != nil {
		return nil, NewValidationError("registration failed validation", issues)
	}

	resp, err := c.doPost(nil, c.buildURL("/api/auth/register"), request)
	if err != nil {
		return nil, NewNetworkError(err)
	}
	defer closeBody(resp)

	switch resp.StatusCode {
	case http.StatusCreated:
		return NewUserFromReader(resp.Body)
	default:
		return nil, NewApiErrorFromResponse(resp)
	}
}

// Login exchanges credentials for a Session.
func (c *Client) Login(request *LoginRequest) (*Session, error) {
	resp, err := c.doPost(nil, c.buildURL("/api/auth/login"), request)
	if err != nil {
		return nil, NewNetworkError(err)
	}
	defer closeBody(resp)

	switch resp.StatusCode {
	case http.StatusOK:
		response, err := NewLoginResponseFromReader(resp.Body)
		if err != nil {
			return nil, NewNetworkError(err)
		}
		return NewSession(response), nil
	default:
		return nil, NewApiErrorFromResponse(resp)
	}
}

// GetProfile returns the account behind the session.
func (c *Client) GetProfile(session *Session) (*User, error) {
	if !session.IsValid() {
		return nil, NewApiError(ErrorUnauthenticated, "no valid session")
	}

	resp, err := c.doGet(session, c.buildURL("/api/auth/profile"))
	if err != nil {
		return nil, NewNetworkError(err)
	}
	defer closeBody(resp)

	switch resp.StatusCode {
	case http.StatusOK:
		return NewUserFromReader(resp.Body)
	default:
		return nil, NewApiErrorFromResponse(resp)
	}
}

// UpdateProfile applies the session user's edits to their own account.
func (c *Client) UpdateProfile(session *Session, request *UpdateProfileRequest) (*User, error) {
	if !session.IsValid() {
		return nil, NewApiError(ErrorUnauthenticated, "no valid session")
	}

	resp, err := c.doPut(session, c.buildURL("/api/auth/profile"), request)
	if err != nil {
		return nil, NewNetworkError(err)
	}
	defer closeBody(resp)

	switch resp.StatusCode {
	case http.StatusOK:
		return NewUserFromReader(resp.Body)
	default:
		return nil, NewApiErrorFromResponse(resp)
	}
}

// GetUsers returns every account. Admin only.
func (c *Client) GetUsers(session *Session) ([]*User, error) {
	if !session.IsValid() {
		return nil, NewApiError(ErrorUnauthenticated, "no valid session")
	}

	resp, err := c.doGet(session, c.buildURL("/api/auth/users"))
	if err != nil {
		return nil, NewNetworkError(err)
	}
	defer closeBody(resp)

	switch resp.StatusCode {
	case http.StatusOK:
		return NewUserListFromReader(resp.Body)
	default:
		return nil, NewApiErrorFromResponse(resp)
	}
}

// GetUser returns a single account by ID. Admin only.
func (c *Client) GetUser(session *Session, userID string) (*User, error) {
	if !session.IsValid() {
		return nil, NewApiError(ErrorUnauthenticated, "no valid session")
	}

	resp, err := c.doGet(session, c.buildURL("/api/auth/users/%s", userID))
	if err != nil {
		return nil, NewNetworkError(err)
	}
	defer closeBody(resp)

	switch resp.StatusCode {
	case http.StatusOK:
		return NewUserFromReader(resp.Body)
	default:
		return nil, NewApiErrorFromResponse(resp)
	}
}

// UpdateUser applies admin edits to any account.
func (c *Client) UpdateUser(session *Session, userID string, request *UpdateUserRequest) (*User, error) {
	if !session.IsValid() {
		return nil, NewApiError(ErrorUnauthenticated, "no valid session")
	}

	resp, err := c.doPut(session, c.buildURL("/api/auth/users/%s", userID), request)
	if err != nil {
		return nil, NewNetworkError(err)
	}
	defer closeBody(resp)

	switch resp.StatusCode {
	case http.StatusOK:
		return NewUserFromReader(resp.Body)
	default:
		return nil, NewApiErrorFromResponse(resp)
	}
}

// SubmitTranslationRequest creates a new translation request from the given
// metadata and document. The server stores the request and copies the
// document to the file store asynchronously; poll GetUploadStatus to observe
// the copy.
func (c *Client) SubmitTranslationRequest(session *Session, request *SubmitRequest, filename string, file io.Reader) (*TranslationRequest, error) {
	if !session.IsValid() {
		return nil, NewApiError(ErrorUnauthenticated, "no valid session")
	}
	if issues := request.Validate(); issues != nil {
		return nil, NewValidationError("submission failed validation", issues)
	}
	if file == nil || filename == "" {
		return nil, NewValidationError("submission failed validation",
			map[string]string{"file": "a document to translate is required"})
	}

	fields := map[string]string{
		"title":          request.Title,
		"description":    request.Description,
		"sourceLanguage": request.SourceLanguage,
		"targetLanguage": request.TargetLanguage,
		"userComment":    request.UserComment,
	}
	resp, err := c.doMultipart(session, c.buildURL("/api/translationrequest"), fields, filename, file)
	if err != nil {
		return nil, NewNetworkError(err)
	}
	defer closeBody(resp)

	switch resp.StatusCode {
	case http.StatusAccepted:
		return NewTranslationRequestFromReader(resp.Body)
	default:
		return nil, NewApiErrorFromResponse(resp)
	}
}

// GetTranslationRequests returns the session user's own requests.
func (c *Client) GetTranslationRequests(session *Session) ([]*TranslationRequest, error) {
	if !session.IsValid() {
		return nil, NewApiError(ErrorUnauthenticated, "no valid session")
	}

	resp, err := c.doGet(session, c.buildURL("/api/translationrequest"))
	if err != nil {
		return nil, NewNetworkError(err)
	}
	defer closeBody(resp)

	switch resp.StatusCode {
	case http.StatusOK:
		return NewTranslationRequestListFromReader(resp.Body)
	default:
		return nil, NewApiErrorFromResponse(resp)
	}
}

// GetTranslationRequest returns one request by ID, scoped to the session
// user unless they are an admin.
func (c *Client) GetTranslationRequest(session *Session, requestID string) (*TranslationRequest, error) {
	if !session.IsValid() {
		return nil, NewApiError(ErrorUnauthenticated, "no valid session")
	}

	resp, err := c.doGet(session, c.buildURL("/api/translationrequest/%s", requestID))
	if err != nil {
		return nil, NewNetworkError(err)
	}
	defer closeBody(resp)

	switch resp.StatusCode {
	case http.StatusOK:
		return NewTranslationRequestFromReader(resp.Body)
	default:
		return nil, NewApiErrorFromResponse(resp)
	}
}

// GetAllTranslationRequests returns every request in the system. Admin only.
func (c *Client) GetAllTranslationRequests(session *Session) ([]*TranslationRequest, error) {
	if !session.IsValid() {
		return nil, NewApiError(ErrorUnauthenticated, "no valid session")
	}

	resp, err := c.doGet(session, c.buildURL("/api/admin/translationrequest"))
	if err != nil {
		return nil, NewNetworkError(err)
	}
	defer closeBody(resp)

	switch resp.StatusCode {
	case http.StatusOK:
		return NewTranslationRequestListFromReader(resp.Body)
	default:
		return nil, NewApiErrorFromResponse(resp)
	}
}

// UpdateTranslationRequest applies owner metadata edits to the request.
// A rejected request returns to pending when modified.
func (c *Client) UpdateTranslationRequest(session *Session, current *TranslationRequest, request *UpdateRequest) (*TranslationRequest, error) {
	if apiErr := c.preflight(session, current, ActionModify, ""); apiErr != nil {
		return nil, apiErr
	}
	if issues := request.Validate(); issues != nil {
		return nil, NewValidationError("update failed validation", issues)
	}

	resp, err := c.doPut(session, c.buildURL("/api/translationrequest/%s", current.ID), request)
	if err != nil {
		return nil, NewNetworkError(err)
	}
	defer closeBody(resp)

	switch resp.StatusCode {
	case http.StatusOK:
		return NewTranslationRequestFromReader(resp.Body)
	default:
		return nil, NewApiErrorFromResponse(resp)
	}
}

// DeleteTranslationRequest removes a pending request permanently.
func (c *Client) DeleteTranslationRequest(session *Session, current *TranslationRequest) error {
	if apiErr := c.preflight(session, current, ActionDelete, ""); apiErr != nil {
		return apiErr
	}

	resp, err := c.doDelete(session, c.buildURL("/api/translationrequest/%s", current.ID))
	if err != nil {
		return NewNetworkError(err)
	}
	defer closeBody(resp)

	switch resp.StatusCode {
	case http.StatusNoContent:
		return nil
	default:
		return NewApiErrorFromResponse(resp)
	}
}

// ResubmitTranslationRequest resubmits a rejected request, optionally with a
// replacement document and comment.
func (c *Client) ResubmitTranslationRequest(session *Session, current *TranslationRequest, comment, filename string, file io.Reader) (*TranslationRequest, error) {
	if apiErr := c.preflight(session, current, ActionResubmit, comment); apiErr != nil {
		return nil, apiErr
	}

	fields := map[string]string{"comment": comment}
	resp, err := c.doMultipart(session, c.buildURL("/api/translationrequest/%s/resubmit", current.ID), fields, filename, file)
	if err != nil {
		return nil, NewNetworkError(err)
	}
	defer closeBody(resp)

	switch resp.StatusCode {
	case http.StatusOK:
		return NewTranslationRequestFromReader(resp.Body)
	default:
		return nil, NewApiErrorFromResponse(resp)
	}
}

// ApproveTranslationRequest approves a pending or resubmitted request. The
// comment is optional.
func (c *Client) ApproveTranslationRequest(session *Session, current *TranslationRequest, comment string) (*TranslationRequest, error) {
	if apiErr := c.preflight(session, current, ActionApprove, comment); apiErr != nil {
		return nil, apiErr
	}

	resp, err := c.doPost(session, c.buildURL("/api/admin/translationrequest/%s/approve", current.ID), &ReviewRequest{Comment: comment})
	if err != nil {
		return nil, NewNetworkError(err)
	}
	defer closeBody(resp)

	switch resp.StatusCode {
	case http.StatusOK:
		return NewTranslationRequestFromReader(resp.Body)
	default:
		return nil, NewApiErrorFromResponse(resp)
	}
}

// RejectTranslationRequest rejects a pending or resubmitted request. A
// non-empty comment is mandatory and its absence is caught before any
// network call.
func (c *Client) RejectTranslationRequest(session *Session, current *TranslationRequest, comment string) (*TranslationRequest, error) {
	if apiErr := c.preflight(session, current, ActionReject, comment); apiErr != nil {
		return nil, apiErr
	}

	resp, err := c.doPost(session, c.buildURL("/api/admin/translationrequest/%s/reject", current.ID), &ReviewRequest{Comment: comment})
	if err != nil {
		return nil, NewNetworkError(err)
	}
	defer closeBody(resp)

	switch resp.StatusCode {
	case http.StatusOK:
		return NewTranslationRequestFromReader(resp.Body)
	default:
		return nil, NewApiErrorFromResponse(resp)
	}
}

// CompleteTranslationRequest attaches the translated document to an approved
// request and marks it completed. The document is mandatory.
func (c *Client) CompleteTranslationRequest(session *Session, current *TranslationRequest, comment, filename string, file io.Reader) (*TranslationRequest, error) {
	if apiErr := c.preflight(session, current, ActionComplete, comment); apiErr != nil {
		return nil, apiErr
	}
	if file == nil || filename == "" {
		return nil, NewValidationError("completion failed validation",
			map[string]string{"file": "a translated document is required"})
	}

	fields := map[string]string{"comment": comment}
	resp, err := c.doMultipart(session, c.buildURL("/api/admin/translationrequest/%s/complete", current.ID), fields, filename, file)
	if err != nil {
		return nil, NewNetworkError(err)
	}
	defer closeBody(resp)

	switch resp.StatusCode {
	case http.StatusOK:
		return NewTranslationRequestFromReader(resp.Body)
	default:
		return nil, NewApiErrorFromResponse(resp)
	}
}

// DownloadOriginal streams the originally submitted document. The returned
// filename comes from the Content-Disposition header and the caller owns
// closing the body.
func (c *Client) DownloadOriginal(session *Session, requestID string) (string, io.ReadCloser, error) {
	return c.download(session, c.buildURL("/api/translationrequest/%s/download-original", requestID))
}

// DownloadTranslated streams the translated document of a completed request.
func (c *Client) DownloadTranslated(session *Session, requestID string) (string, io.ReadCloser, error) {
	return c.download(session, c.buildURL("/api/translationrequest/%s/download-translated", requestID))
}

func (c *Client) download(session *Session, url string) (string, io.ReadCloser, error) {
	if !session.IsValid() {
		return "", nil, NewApiError(ErrorUnauthenticated, "no valid session")
	}

	resp, err := c.doGet(session, url)
	if err != nil {
		return "", nil, NewNetworkError(err)
	}

	if resp.StatusCode != http.StatusOK {
		defer closeBody(resp)
		return "", nil, NewApiErrorFromResponse(resp)
	}

	filename := ""
	if disposition := resp.Header.Get("Content-Disposition"); disposition != "" {
		if _, params, err := mime.ParseMediaType(disposition); err == nil {
			filename = params["filename"]
		}
	}

	return filename, resp.Body, nil
}

// GetUploadStatus returns the most recent file store copy tracked for the
// request.
func (c *Client) GetUploadStatus(session *Session, requestID string) (*Upload, error) {
	if !session.IsValid() {
		return nil, NewApiError(ErrorUnauthenticated, "no valid session")
	}

	resp, err := c.doGet(session, c.buildURL("/api/translationrequest/%s/upload", requestID))
	if err != nil {
		return nil, NewNetworkError(err)
	}
	defer closeBody(resp)

	switch resp.StatusCode {
	case http.StatusOK:
		return NewUploadFromReader(resp.Body)
	default:
		return nil, NewApiErrorFromResponse(resp)
	}
}

// WaitForUploadToComplete polls until the request's document has finished
// copying into the file store, or the timeout elapses.
func (c *Client) WaitForUploadToComplete(session *Session, requestID string, timeout time.Duration) error {
	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		upload, err := c.GetUploadStatus(session, requestID)
		if err != nil {
			return err
		}
		if upload.CompleteAt != 0 {
			if upload.Error != "" {
				return NewApiError(ErrorNetwork, upload.Error)
			}
			return nil
		}
		time.Sleep(time.Second)
	}

	return NewApiError(ErrorNetwork, fmt.Sprintf("timed out waiting for upload on request %s to complete", requestID))
}

// preflight runs the session and transition guard checks shared by every
// mutating call.
func (c *Client) preflight(session *Session, current *TranslationRequest, action Action, comment string) *ApiError {
	if !session.IsValid() {
		return NewApiError(ErrorUnauthenticated, "no valid session")
	}

	decision := CheckAction(current.Status, session.Role(), action, comment)
	if !decision.Allowed {
		switch decision.Reason {
		case ErrorMissingComment:
			return NewApiError(ErrorMissingComment, "a comment is required to reject a request")
		default:
			return NewApiError(ErrorInvalidTransition,
				fmt.Sprintf("cannot %s a request in status %s as %s", action, current.Status, session.Role()))
		}
	}

	return nil
}

// closeBody ensures the Body of an http.Response is properly closed.
func closeBody(r *http.Response) {
	if r.Body != nil {
		_, _ = io.Copy(io.Discard, r.Body)
		_ = r.Body.Close()
	}
}

// buildURL builds a complete URL from a path and arguments.
func (c *Client) buildURL(urlPath string, args ...interface{}) string {
	return fmt.Sprintf("%s%s", c.address, fmt.Sprintf(urlPath, args...))
}

func (c *Client) applyHeaders(req *http.Request, session *Session) {
	for k, v := range c.headers {
		req.Header.Add(k, v)
	}
	if session.IsValid() {
		req.Header.Set("Authorization", "Bearer "+session.Token)
	}
}

func (c *Client) doGet(session *Session, u string) (*http.Response, error) {
	req, err := http.NewRequest(http.MethodGet, u, nil)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create http request")
	}
	c.applyHeaders(req, session)

	return c.httpClient.Do(req)
}

func (c *Client) doPost(session *Session, u string, request interface{}) (*http.Response, error) {
	requestBytes, err := json.Marshal(request)
	if err != nil {
		return nil, errors.Wrap(err, "failed to marshal request")
	}

	req, err := http.NewRequest(http.MethodPost, u, bytes.NewReader(requestBytes))
	if err != nil {
		return nil, errors.Wrap(err, "failed to create http request")
	}
	c.applyHeaders(req, session)
	req.Header.Set("Content-Type", "application/json")

	return c.httpClient.Do(req)
}

func (c *Client) doPut(session *Session, u string, request interface{}) (*http.Response, error) {
	requestBytes, err := json.Marshal(request)
	if err != nil {
		return nil, errors.Wrap(err, "failed to marshal request")
	}

	req, err := http.NewRequest(http.MethodPut, u, bytes.NewReader(requestBytes))
	if err != nil {
		return nil, errors.Wrap(err, "failed to create http request")
	}
	c.applyHeaders(req, session)
	req.Header.Set("Content-Type", "application/json")

	return c.httpClient.Do(req)
}

func (c *Client) doDelete(session *Session, u string) (*http.Response, error) {
	req, err := http.NewRequest(http.MethodDelete, u, nil)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create http request")
	}
	c.applyHeaders(req, session)

	return c.httpClient.Do(req)
}

// doMultipart sends form fields plus an optional file part named "file".
func (c *Client) doMultipart(session *Session, u string, fields map[string]string, filename string, file io.Reader) (*http.Response, error) {
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	for k, v := range fields {
		if err := writer.WriteField(k, v); err != nil {
			return nil, errors.Wrapf(err, "failed to write form field %s", k)
		}
	}
	if file != nil && filename != "" {
		part, err := writer.CreateFormFile("file", filename)
		if err != nil {
			return nil, errors.Wrap(err, "failed to create form file part")
		}
		if _, err = io.Copy(part, file); err != nil {
			return nil, errors.Wrap(err, "failed to copy file into request body")
		}
	}
	if err := writer.Close(); err != nil {
		return nil, errors.Wrap(err, "failed to finalize multipart body")
	}

	req, err := http.NewRequest(http.MethodPost, u, body)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create http request")
	}
	c.applyHeaders(req, session)
	req.Header.Set("Content-Type", writer.FormDataContentType())

	return c.httpClient.Do(req)
}
