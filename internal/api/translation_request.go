package api

import (
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"

	"github.com/gorilla/mux"

	"github.com/doctrans/dtrs/internal/filestore"
	"github.com/doctrans/dtrs/model"
)

const maxMultipartMemory = 64 << 20 // 64 MB held in memory; the rest spills to disk

func handleSubmitTranslationRequest(c *Context, w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxMultipartMemory); err != nil {
		c.Logger.WithError(err).Debug("failed to parse multipart submission")
		writeApiError(c, w, model.NewValidationError("request body must be multipart form data", nil))
		return
	}

	submit := &model.SubmitRequest{
		Title:          r.FormValue("title"),
		Description:    r.FormValue("description"),
		SourceLanguage: r.FormValue("sourceLanguage"),
		TargetLanguage: r.FormValue("targetLanguage"),
		UserComment:    r.FormValue("userComment"),
	}
	if issues := submit.Validate(); issues != nil {
		writeApiError(c, w, model.NewValidationError("submission failed validation", issues))
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		writeApiError(c, w, model.NewValidationError("submission failed validation",
			map[string]string{"file": "a document to translate is required"}))
		return
	}
	defer file.Close()

	request := model.NewTranslationRequest(c.Session.UserID)
	request.Title = submit.Title
	request.Description = submit.Description
	request.SourceLanguage = submit.SourceLanguage
	request.TargetLanguage = submit.TargetLanguage
	request.UserComment = submit.UserComment
	request.OriginalFileName = header.Filename
	request.StoredFileName = request.ID + filepath.Ext(header.Filename)

	tempPath, apiErr := receiveDocument(c, file)
	if apiErr != nil {
		writeApiError(c, w, apiErr)
		return
	}

	err = c.Store.CreateTranslationRequest(request)
	if err != nil {
		c.Logger.WithError(err).Error("failed to store the translation request in the database")
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	startDocumentCopy(c, request, model.UploadKindOriginal, request.StoredFileName, tempPath)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusAccepted)
	outputJSON(c, w, request)

	c.Logger.Debugf("Accepted new translation request %s from user %s", request.ID, request.UserID)
}

func handleGetTranslationRequests(c *Context, w http.ResponseWriter, r *http.Request) {
	requests, err := c.Store.GetTranslationRequestsByUser(c.Session.UserID)
	if err != nil {
		c.Logger.WithError(err).Error("failed to fetch translation requests")
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	outputJSON(c, w, requests)
}

func handleGetTranslationRequest(c *Context, w http.ResponseWriter, r *http.Request) {
	request, ok := fetchScopedRequest(c, w, r)
	if !ok {
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	outputJSON(c, w, request)
}

func handleUpdateTranslationRequest(c *Context, w http.ResponseWriter, r *http.Request) {
	request, ok := fetchScopedRequest(c, w, r)
	if !ok {
		return
	}

	update, err := model.NewUpdateRequestFromReader(r.Body)
	if err != nil {
		c.Logger.WithError(err).Debug("failed to unmarshal update request")
		writeApiError(c, w, model.NewValidationError("failed to decode update request", nil))
		return
	}
	update.ID = request.ID
	if issues := update.Validate(); issues != nil {
		writeApiError(c, w, model.NewValidationError("update failed validation", issues))
		return
	}

	if apiErr := applyTransition(c, request, model.ActionModify, ""); apiErr != nil {
		writeApiError(c, w, apiErr)
		return
	}

	request.Title = update.Title
	request.Description = update.Description
	request.SourceLanguage = update.SourceLanguage
	request.TargetLanguage = update.TargetLanguage
	request.UserComment = update.UserComment

	err = c.Store.UpdateTranslationRequest(request)
	if err != nil {
		c.Logger.WithError(err).Errorf("failed to update translation request %s", request.ID)
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	outputJSON(c, w, request)
}

func handleDeleteTranslationRequest(c *Context, w http.ResponseWriter, r *http.Request) {
	request, ok := fetchScopedRequest(c, w, r)
	if !ok {
		return
	}

	decision := model.CheckAction(request.Status, c.Session.Role(), model.ActionDelete, "")
	if !decision.Allowed {
		writeApiError(c, w, transitionError(decision, request.Status, c.Session.Role(), model.ActionDelete))
		return
	}

	err := c.Store.DeleteTranslationRequest(request.ID)
	if err != nil {
		c.Logger.WithError(err).Errorf("failed to delete translation request %s", request.ID)
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func handleResubmitTranslationRequest(c *Context, w http.ResponseWriter, r *http.Request) {
	request, ok := fetchScopedRequest(c, w, r)
	if !ok {
		return
	}

	if err := r.ParseMultipartForm(maxMultipartMemory); err != nil {
		c.Logger.WithError(err).Debug("failed to parse multipart resubmission")
		writeApiError(c, w, model.NewValidationError("request body must be multipart form data", nil))
		return
	}
	comment := r.FormValue("comment")

	if apiErr := applyTransition(c, request, model.ActionResubmit, comment); apiErr != nil {
		writeApiError(c, w, apiErr)
		return
	}

	if comment != "" {
		request.UserComment = comment
	}

	// a replacement document is optional on resubmit
	file, header, err := r.FormFile("file")
	if err == nil {
		defer file.Close()

		tempPath, apiErr := receiveDocument(c, file)
		if apiErr != nil {
			writeApiError(c, w, apiErr)
			return
		}

		request.OriginalFileName = header.Filename
		request.StoredFileName = request.ID + filepath.Ext(header.Filename)
		startDocumentCopy(c, request, model.UploadKindOriginal, request.StoredFileName, tempPath)
	} else if err != http.ErrMissingFile {
		writeApiError(c, w, model.NewValidationError("failed to read replacement document", nil))
		return
	}

	err = c.Store.UpdateTranslationRequest(request)
	if err != nil {
		c.Logger.WithError(err).Errorf("failed to resubmit translation request %s", request.ID)
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	outputJSON(c, w, request)

	c.Logger.Debugf("Request %s resubmitted by user %s", request.ID, c.Session.UserID)
}

func handleDownloadOriginal(c *Context, w http.ResponseWriter, r *http.Request) {
	request, ok := fetchScopedRequest(c, w, r)
	if !ok {
		return
	}

	key := filestore.DocumentKey(request.ID, model.UploadKindOriginal, request.StoredFileName)
	serveDocument(c, w, key, request.OriginalFileName)
}

func handleDownloadTranslated(c *Context, w http.ResponseWriter, r *http.Request) {
	request, ok := fetchScopedRequest(c, w, r)
	if !ok {
		return
	}

	if request.TranslatedFileName == "" {
		writeApiError(c, w, model.NewApiError(model.ErrorNotFound, "no translated document is available"))
		return
	}

	key := filestore.DocumentKey(request.ID, model.UploadKindTranslated, request.TranslatedFileName)
	serveDocument(c, w, key, request.TranslatedFileName)
}

func handleGetUploadStatus(c *Context, w http.ResponseWriter, r *http.Request) {
	request, ok := fetchScopedRequest(c, w, r)
	if !ok {
		return
	}

	upload, err := c.Store.GetUploadForRequest(request.ID)
	if err != nil {
		c.Logger.WithError(err).Errorf("failed to look up upload for request %s", request.ID)
		w.WriteHeader(http.StatusInternalServerError)
		return
	}
	if upload == nil {
		writeApiError(c, w, model.NewApiError(model.ErrorNotFound, "no upload is tracked for this request"))
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	outputJSON(c, w, upload)
}

// fetchScopedRequest loads the request named in the URL and enforces
// ownership. Non-admin callers receive NotFound for requests they do not
// own, so the existence of other users' requests never leaks.
func fetchScopedRequest(c *Context, w http.ResponseWriter, r *http.Request) (*model.TranslationRequest, bool) {
	vars := mux.Vars(r)
	requestID := vars["id"]

	request, err := c.Store.GetTranslationRequest(requestID)
	if err != nil {
		c.Logger.WithError(err).Errorf("failed to fetch translation request %s", requestID)
		w.WriteHeader(http.StatusInternalServerError)
		return nil, false
	}
	if request == nil || (!c.Session.Admin && !request.IsOwnedBy(c.Session.UserID)) {
		writeApiError(c, w, model.NewApiError(model.ErrorNotFound, "no such translation request"))
		return nil, false
	}

	return request, true
}

// applyTransition runs the guard for the session's role and, when allowed,
// moves the request to the target status and stamps UpdateAt. The caller
// still owns persisting and any action-specific field changes.
func applyTransition(c *Context, request *model.TranslationRequest, action model.Action, comment string) *model.ApiError {
	role := c.Session.Role()
	decision := model.CheckAction(request.Status, role, action, comment)
	if !decision.Allowed {
		return transitionError(decision, request.Status, role, action)
	}

	target, _ := model.TargetStatus(request.Status, role, action)
	request.Status = target
	request.UpdateAt = model.GetMillis()

	return nil
}

func transitionError(decision model.Decision, current model.Status, role model.Role, action model.Action) *model.ApiError {
	if decision.Reason == model.ErrorMissingComment {
		return model.NewApiError(model.ErrorMissingComment, "a comment is required to reject a request")
	}
	return model.NewApiError(model.ErrorInvalidTransition,
		fmt.Sprintf("cannot %s a request in status %s as %s", action, current, role))
}

// receiveDocument spools an uploaded document into the working directory so
// the HTTP response does not wait on the file store.
func receiveDocument(c *Context, file io.Reader) (string, *model.ApiError) {
	tempFile, err := os.CreateTemp(c.Workdir, "upload-")
	if err != nil {
		c.Logger.WithError(err).Error("failed to open temp file to write upload to")
		return "", model.NewApiError(model.ErrorNetwork, "failed to receive document")
	}

	_, err = io.Copy(tempFile, file)
	closeErr := tempFile.Close()
	if err != nil || closeErr != nil {
		_ = os.Remove(tempFile.Name())
		c.Logger.WithError(err).Error("failed to copy document to temp file")
		return "", model.NewApiError(model.ErrorNetwork, "failed to receive document")
	}

	return tempFile.Name(), nil
}

// startDocumentCopy records an Upload row and copies the spooled document
// into the file store on a separate goroutine, marking the row complete
// either way.
func startDocumentCopy(c *Context, request *model.TranslationRequest, kind model.UploadKind, storedFileName, tempPath string) {
	upload := model.NewUpload(request.ID, kind)
	err := c.Store.CreateUpload(upload)
	if err != nil {
		c.Logger.WithError(err).Error("failed to store upload for tracking progress")
		_ = os.Remove(tempPath)
		return
	}

	key := filestore.DocumentKey(request.ID, kind, storedFileName)
	go func() {
		defer os.Remove(tempPath)

		err := c.FileStore.UploadFile(tempPath, key)
		if err != nil {
			c.Logger.WithError(err).Errorf("failed to copy document for request %s to the file store", request.ID)
			if storageErr := c.Store.CompleteUpload(upload.ID, err.Error()); storageErr != nil {
				c.Logger.WithError(storageErr).Errorf("failed to mark upload %s failed", upload.ID)
			}
			return
		}

		if err := c.Store.CompleteUpload(upload.ID, ""); err != nil {
			c.Logger.WithError(err).Errorf("failed to mark upload %s complete", upload.ID)
		}
	}()
}

// serveDocument streams a stored document back to the caller with its
// original name in the Content-Disposition header.
func serveDocument(c *Context, w http.ResponseWriter, key, downloadName string) {
	path, cleanup, err := c.FileStore.DownloadFile(key)
	if err != nil {
		c.Logger.WithError(err).Errorf("failed to fetch document %s from the file store", key)
		w.WriteHeader(http.StatusInternalServerError)
		return
	}
	defer cleanup()

	file, err := os.Open(path)
	if err != nil {
		c.Logger.WithError(err).Error("failed to open fetched document")
		w.WriteHeader(http.StatusInternalServerError)
		return
	}
	defer file.Close()

	w.Header().Set("Content-Type", "application/octet-stream")
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, downloadName))
	w.WriteHeader(http.StatusOK)
	if _, err = io.Copy(w, file); err != nil {
		c.Logger.WithError(err).Errorf("failed to stream document %s", key)
	}
}
