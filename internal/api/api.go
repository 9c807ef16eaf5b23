package api

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/doctrans/dtrs/model"
)

// Register attaches every API endpoint to the given router.
func Register(rootRouter *mux.Router, context *Context) {
	addContext := func(handler contextHandlerFunc) *contextHandler {
		return newContextHandler(context, handler)
	}
	addUserContext := func(handler contextHandlerFunc) *contextHandler {
		return newUserContextHandler(context, handler)
	}
	addAdminContext := func(handler contextHandlerFunc) *contextHandler {
		return newAdminContextHandler(context, handler)
	}

	apiRouter := rootRouter.PathPrefix("/api").Subrouter()

	apiRouter.Handle("/auth/register", addContext(handleRegister)).Methods("POST")
	apiRouter.Handle("/auth/login", addContext(handleLogin)).Methods("POST")
	apiRouter.Handle("/auth/profile", addUserContext(handleGetProfile)).Methods("GET")
	apiRouter.Handle("/auth/profile", addUserContext(handleUpdateProfile)).Methods("PUT")
	apiRouter.Handle("/auth/users", addAdminContext(handleGetUsers)).Methods("GET")
	apiRouter.Handle("/auth/users/{id}", addAdminContext(handleGetUser)).Methods("GET")
	apiRouter.Handle("/auth/users/{id}", addAdminContext(handleUpdateUser)).Methods("PUT")

	apiRouter.Handle("/translationrequest", addUserContext(handleSubmitTranslationRequest)).Methods("POST")
	apiRouter.Handle("/translationrequest", addUserContext(handleGetTranslationRequests)).Methods("GET")
	apiRouter.Handle("/translationrequest/{id}", addUserContext(handleGetTranslationRequest)).Methods("GET")
	apiRouter.Handle("/translationrequest/{id}", addUserContext(handleUpdateTranslationRequest)).Methods("PUT")
	apiRouter.Handle("/translationrequest/{id}", addUserContext(handleDeleteTranslationRequest)).Methods("DELETE")
	apiRouter.Handle("/translationrequest/{id}/resubmit", addUserContext(handleResubmitTranslationRequest)).Methods("POST")
	apiRouter.Handle("/translationrequest/{id}/download-original", addUserContext(handleDownloadOriginal)).Methods("GET")
	apiRouter.Handle("/translationrequest/{id}/download-translated", addUserContext(handleDownloadTranslated)).Methods("GET")
	apiRouter.Handle("/translationrequest/{id}/upload", addUserContext(handleGetUploadStatus)).Methods("GET")

	apiRouter.Handle("/admin/translationrequest", addAdminContext(handleListAllTranslationRequests)).Methods("GET")
	apiRouter.Handle("/admin/translationrequest/{id}", addAdminContext(handleAdminGetTranslationRequest)).Methods("GET")
	apiRouter.Handle("/admin/translationrequest/{id}/approve", addAdminContext(handleApproveTranslationRequest)).Methods("POST")
	apiRouter.Handle("/admin/translationrequest/{id}/reject", addAdminContext(handleRejectTranslationRequest)).Methods("POST")
	apiRouter.Handle("/admin/translationrequest/{id}/complete", addAdminContext(handleCompleteTranslationRequest)).Methods("POST")
}

// outputJSON is a helper method to write the given data as JSON to the given writer.
//
// It only logs an error if one occurs, rather than returning, since there is no point in trying
// to send a new status code back to the client once the body has started sending.
func outputJSON(c *Context, w io.Writer, data interface{}) {
	encoder := json.NewEncoder(w)
	err := encoder.Encode(data)
	if err != nil {
		c.Logger.WithError(err).Error("failed to encode result")
	}
}

// writeApiError responds with the uniform error shape and its mapped status
// code.
func writeApiError(c *Context, w http.ResponseWriter, apiErr *model.ApiError) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(apiErr.StatusCode())
	outputJSON(c, w, apiErr)
}
