package api

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/doctrans/dtrs/model"
)

func handleListAllTranslationRequests(c *Context, w http.ResponseWriter, r *http.Request) {
	requests, err := c.Store.GetAllTranslationRequests()
	if err != nil {
		c.Logger.WithError(err).Error("failed to fetch translation requests")
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	outputJSON(c, w, requests)
}

func handleAdminGetTranslationRequest(c *Context, w http.ResponseWriter, r *http.Request) {
	request, ok := fetchRequestForReview(c, w, r)
	if !ok {
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	outputJSON(c, w, request)
}

func handleApproveTranslationRequest(c *Context, w http.ResponseWriter, r *http.Request) {
	handleReview(c, w, r, model.ActionApprove)
}

func handleRejectTranslationRequest(c *Context, w http.ResponseWriter, r *http.Request) {
	handleReview(c, w, r, model.ActionReject)
}

// handleReview covers approve and reject, which differ only in their comment
// requirement; the guard owns that distinction.
func handleReview(c *Context, w http.ResponseWriter, r *http.Request, action model.Action) {
	request, ok := fetchRequestForReview(c, w, r)
	if !ok {
		return
	}

	review, err := model.NewReviewRequestFromReader(r.Body)
	if err != nil {
		c.Logger.WithError(err).Debug("failed to unmarshal review request")
		writeApiError(c, w, model.NewValidationError("failed to decode review request", nil))
		return
	}

	if apiErr := applyTransition(c, request, action, review.Comment); apiErr != nil {
		writeApiError(c, w, apiErr)
		return
	}

	if review.Comment != "" {
		request.AdminComment = review.Comment
	}

	err = c.Store.UpdateTranslationRequest(request)
	if err != nil {
		c.Logger.WithError(err).Errorf("failed to %s translation request %s", action, request.ID)
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	outputJSON(c, w, request)

	c.Logger.Debugf("Request %s moved to status %s", request.ID, request.Status)
}

func handleCompleteTranslationRequest(c *Context, w http.ResponseWriter, r *http.Request) {
	request, ok := fetchRequestForReview(c, w, r)
	if !ok {
		return
	}

	if err := r.ParseMultipartForm(maxMultipartMemory); err != nil {
		c.Logger.WithError(err).Debug("failed to parse multipart completion")
		writeApiError(c, w, model.NewValidationError("request body must be multipart form data", nil))
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		writeApiError(c, w, model.NewValidationError("completion failed validation",
			map[string]string{"file": "a translated document is required"}))
		return
	}
	defer file.Close()

	comment := r.FormValue("comment")
	if apiErr := applyTransition(c, request, model.ActionComplete, comment); apiErr != nil {
		writeApiError(c, w, apiErr)
		return
	}

	tempPath, apiErr := receiveDocument(c, file)
	if apiErr != nil {
		writeApiError(c, w, apiErr)
		return
	}

	request.TranslatedFileName = header.Filename
	request.CompleteAt = request.UpdateAt
	if comment != "" {
		request.AdminComment = comment
	}

	err = c.Store.UpdateTranslationRequest(request)
	if err != nil {
		c.Logger.WithError(err).Errorf("failed to complete translation request %s", request.ID)
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	startDocumentCopy(c, request, model.UploadKindTranslated, request.TranslatedFileName, tempPath)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	outputJSON(c, w, request)

	c.Logger.Debugf("Request %s completed with translated document %s", request.ID, request.TranslatedFileName)
}

// fetchRequestForReview loads the request named in the URL without ownership
// scoping; admin handlers see every request.
func fetchRequestForReview(c *Context, w http.ResponseWriter, r *http.Request) (*model.TranslationRequest, bool) {
	vars := mux.Vars(r)
	requestID := vars["id"]

	request, err := c.Store.GetTranslationRequest(requestID)
	if err != nil {
		c.Logger.WithError(err).Errorf("failed to fetch translation request %s", requestID)
		w.WriteHeader(http.StatusInternalServerError)
		return nil, false
	}
	if request == nil {
		writeApiError(c, w, model.NewApiError(model.ErrorNotFound, "no such translation request"))
		return nil, false
	}

	return request, true
}
