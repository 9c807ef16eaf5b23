package api

import (
	"net/http"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/doctrans/dtrs/model"
)

// FileStore abstracts the object storage holding request documents.
type FileStore interface {
	GetBucketName() string
	FileExists(key string) (bool, error)
	UploadFile(localPath, key string) error
	DownloadFile(key string) (string, func(), error)
}

// Authenticator abstracts session token issuing and verification.
type Authenticator interface {
	IssueToken(user *model.User) (string, error)
	Verify(token string) (*model.Session, error)
}

// Context provides the API with all necessary data and interfaces for
// responding to requests.
//
// It is cloned before each request, allowing per-request changes such as
// logger annotations and the resolved session.
type Context struct {
	Store     Store
	Logger    logrus.FieldLogger
	FileStore FileStore
	Auth      Authenticator
	Workdir   string
	RequestID string
	Session   *model.Session
}

// Clone creates a shallow copy of context, allowing clones to apply per-request changes.
func (c *Context) Clone() *Context {
	return &Context{
		Store:     c.Store,
		Logger:    c.Logger,
		FileStore: c.FileStore,
		Auth:      c.Auth,
		Workdir:   c.Workdir,
	}
}

type contextHandlerFunc func(c *Context, w http.ResponseWriter, r *http.Request)

type contextHandler struct {
	context      *Context
	handler      contextHandlerFunc
	requireToken bool
	requireAdmin bool
}

// ServeHTTP satisfies the Handler interface for contextHandler. It resolves
// the bearer token to a Session before the handler runs; endpoints that
// require one reject the request with Unauthenticated when it is missing or
// invalid.
func (h contextHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	context := h.context.Clone()
	context.RequestID = model.NewID()
	context.Logger = context.Logger.WithFields(
		logrus.Fields{
			"path":    r.URL.Path,
			"request": context.RequestID,
		})

	if h.requireToken {
		token := parseBearerToken(r)
		if token == "" {
			writeApiError(context, w, model.NewApiError(model.ErrorUnauthenticated, "no session token provided"))
			return
		}

		session, err := context.Auth.Verify(token)
		if err != nil {
			context.Logger.WithError(err).Debug("rejected session token")
			writeApiError(context, w, model.NewApiError(model.ErrorUnauthenticated, "session token is invalid"))
			return
		}

		if h.requireAdmin && !session.Admin {
			writeApiError(context, w, model.NewApiError(model.ErrorUnauthenticated, "administrator role required"))
			return
		}

		context.Session = session
		context.Logger = context.Logger.WithField("user", session.UserID)
	}

	h.handler(context, w, r)
}

func parseBearerToken(r *http.Request) string {
	header := r.Header.Get("Authorization")
	if !strings.HasPrefix(header, "Bearer ") {
		return ""
	}
	return strings.TrimPrefix(header, "Bearer ")
}

func newContextHandler(context *Context, handler contextHandlerFunc) *contextHandler {
	return &contextHandler{
		context: context,
		handler: handler,
	}
}

func newUserContextHandler(context *Context, handler contextHandlerFunc) *contextHandler {
	return &contextHandler{
		context:      context,
		handler:      handler,
		requireToken: true,
	}
}

func newAdminContextHandler(context *Context, handler contextHandlerFunc) *contextHandler {
	return &contextHandler{
		context:      context,
		handler:      handler,
		requireToken: true,
		requireAdmin: true,
	}
}
