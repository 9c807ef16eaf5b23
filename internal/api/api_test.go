package api

import (
	"bytes"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/doctrans/dtrs/internal/auth"
	mock_api "github.com/doctrans/dtrs/internal/mocks/api"
	"github.com/doctrans/dtrs/internal/testlib"
	"github.com/doctrans/dtrs/model"
)

// fakeFileStore keeps documents in memory, standing in for S3.
type fakeFileStore struct {
	mu    sync.Mutex
	files map[string][]byte
}

func newFakeFileStore() *fakeFileStore {
	return &fakeFileStore{files: map[string][]byte{}}
}

func (f *fakeFileStore) GetBucketName() string { return "fake-bucket" }

func (f *fakeFileStore) FileExists(key string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	_, ok := f.files[key]
	return ok, nil
}

func (f *fakeFileStore) UploadFile(localPath, key string) error {
	data, err := os.ReadFile(localPath)
	if err != nil {
		return err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.files[key] = data
	return nil
}

func (f *fakeFileStore) DownloadFile(key string) (string, func(), error) {
	f.mu.Lock()
	data, ok := f.files[key]
	f.mu.Unlock()
	if !ok {
		return "", nil, fmt.Errorf("no document stored under %s", key)
	}

	temp, err := os.CreateTemp("", "download-")
	if err != nil {
		return "", nil, err
	}
	if _, err = temp.Write(data); err != nil {
		temp.Close()
		return "", nil, err
	}
	temp.Close()
	return temp.Name(), func() { os.Remove(temp.Name()) }, nil
}

type apiTestHarness struct {
	store         *mock_api.MockStore
	fileStore     *fakeFileStore
	authenticator *auth.Authenticator
	server        *httptest.Server
	client        *model.Client
}

func setupAPI(t *testing.T) *apiTestHarness {
	logger := testlib.MakeLogger(t)
	mockController := gomock.NewController(t)
	store := mock_api.NewMockStore(mockController)
	fileStore := newFakeFileStore()
	authenticator := auth.NewAuthenticator([]byte("test-signing-key"))

	router := mux.NewRouter()
	Register(router, &Context{
		Store:     store,
		Logger:    logger,
		FileStore: fileStore,
		Auth:      authenticator,
		Workdir:   t.TempDir(),
	})
	ts := httptest.NewServer(router)
	t.Cleanup(ts.Close)

	return &apiTestHarness{
		store:         store,
		fileStore:     fileStore,
		authenticator: authenticator,
		server:        ts,
		client:        model.NewClient(ts.URL),
	}
}

func (h *apiTestHarness) sessionFor(t *testing.T, user *model.User) *model.Session {
	token, err := h.authenticator.IssueToken(user)
	require.NoError(t, err)
	return &model.Session{Token: token, UserID: user.ID, Admin: user.Admin}
}

func TestRegisterAndLogin(t *testing.T) {
	h := setupAPI(t)

	var storedUser *model.User
	h.store.EXPECT().
		GetUserByEmail("translator@example.com").
		Return(nil, nil).
		Times(1)
	h.store.EXPECT().
		CreateUser(gomock.Any()).
		DoAndReturn(func(user *model.User) error {
			storedUser = user
			return nil
		}).
		Times(1)

	user, err := h.client.Register(&model.RegisterRequest{
		Email:    "translator@example.com",
		Name:     "Sam Translator",
		Password: "correct horse battery",
	})
	require.NoError(t, err)
	require.NotNil(t, storedUser)
	assert.Equal(t, storedUser.ID, user.ID)
	assert.Empty(t, user.PasswordHash)

	t.Run("login with the right password", func(t *testing.T) {
		h.store.EXPECT().
			GetUserByEmail("translator@example.com").
			Return(storedUser, nil).
			Times(1)

		session, err := h.client.Login(&model.LoginRequest{
			Email:    "translator@example.com",
			Password: "correct horse battery",
		})
		require.NoError(t, err)
		assert.True(t, session.IsValid())
		assert.Equal(t, storedUser.ID, session.UserID)

		verified, err := h.authenticator.Verify(session.Token)
		require.NoError(t, err)
		assert.Equal(t, storedUser.ID, verified.UserID)
	})

	t.Run("login with the wrong password", func(t *testing.T) {
		h.store.EXPECT().
			GetUserByEmail("translator@example.com").
			Return(storedUser, nil).
			Times(1)

		_, err := h.client.Login(&model.LoginRequest{
			Email:    "translator@example.com",
			Password: "wrong password",
		})
		require.Error(t, err)
		apiErr, ok := err.(*model.ApiError)
		require.True(t, ok)
		assert.Equal(t, model.ErrorUnauthenticated, apiErr.Code)
	})

	t.Run("duplicate email", func(t *testing.T) {
		h.store.EXPECT().
			GetUserByEmail("translator@example.com").
			Return(storedUser, nil).
			Times(1)

		_, err := h.client.Register(&model.RegisterRequest{
			Email:    "translator@example.com",
			Name:     "Sam Again",
			Password: "correct horse battery",
		})
		require.Error(t, err)
		apiErr, ok := err.(*model.ApiError)
		require.True(t, ok)
		assert.Equal(t, model.ErrorValidation, apiErr.Code)
		assert.Contains(t, apiErr.Issues, "email")
	})
}

func TestAuthentication(t *testing.T) {
	h := setupAPI(t)

	t.Run("missing token", func(t *testing.T) {
		resp, err := http.Get(fmt.Sprintf("%s/api/translationrequest", h.server.URL))
		require.NoError(t, err)
		defer resp.Body.Close()
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	})

	t.Run("garbage token", func(t *testing.T) {
		_, err := h.client.GetTranslationRequests(&model.Session{Token: "garbage", UserID: "whoever"})
		require.Error(t, err)
		apiErr, ok := err.(*model.ApiError)
		require.True(t, ok)
		assert.Equal(t, model.ErrorUnauthenticated, apiErr.Code)
	})

	t.Run("non-admin on an admin route", func(t *testing.T) {
		owner := model.NewUser("owner@example.com", "Olive Owner")
		session := h.sessionFor(t, owner)

		_, err := h.client.GetAllTranslationRequests(session)
		require.Error(t, err)
		apiErr, ok := err.(*model.ApiError)
		require.True(t, ok)
		assert.Equal(t, model.ErrorUnauthenticated, apiErr.Code)
	})
}

func TestSubmitTranslationRequest(t *testing.T) {
	h := setupAPI(t)

	owner := model.NewUser("owner@example.com", "Olive Owner")
	session := h.sessionFor(t, owner)

	var created *model.TranslationRequest
	uploadDone := make(chan struct{})

	h.store.EXPECT().
		CreateTranslationRequest(gomock.Any()).
		DoAndReturn(func(request *model.TranslationRequest) error {
			created = request
			return nil
		}).
		Times(1)
	h.store.EXPECT().
		CreateUpload(gomock.Any()).
		Return(nil).
		Times(1)
	h.store.EXPECT().
		CompleteUpload(gomock.Any(), "").
		DoAndReturn(func(id, errorMessage string) error {
			close(uploadDone)
			return nil
		}).
		Times(1)

	request, err := h.client.SubmitTranslationRequest(session, &model.SubmitRequest{
		Title:          "Employment contract",
		SourceLanguage: "de",
		TargetLanguage: "en",
	}, "contract.pdf", strings.NewReader("%PDF-1.4 pretend"))
	require.NoError(t, err)

	assert.Equal(t, model.StatusPending, request.Status)
	assert.Equal(t, owner.ID, request.UserID)
	assert.Equal(t, "contract.pdf", request.OriginalFileName)
	assert.Equal(t, request.ID+".pdf", request.StoredFileName)
	require.NotNil(t, created)
	assert.Equal(t, request.ID, created.ID)

	select {
	case <-uploadDone:
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for the document copy to finish")
	}

	exists, err := h.fileStore.FileExists(fmt.Sprintf("requests/%s/original/%s", request.ID, request.StoredFileName))
	require.NoError(t, err)
	assert.True(t, exists)
}

func TestOwnershipScoping(t *testing.T) {
	h := setupAPI(t)

	owner := model.NewUser("owner@example.com", "Olive Owner")
	stranger := model.NewUser("stranger@example.com", "Stan Stranger")
	request := model.NewTranslationRequest(owner.ID)

	t.Run("a stranger sees not found", func(t *testing.T) {
		h.store.EXPECT().
			GetTranslationRequest(request.ID).
			Return(request, nil).
			Times(1)

		_, err := h.client.GetTranslationRequest(h.sessionFor(t, stranger), request.ID)
		require.Error(t, err)
		apiErr, ok := err.(*model.ApiError)
		require.True(t, ok)
		assert.Equal(t, model.ErrorNotFound, apiErr.Code)
	})

	t.Run("the owner sees their request", func(t *testing.T) {
		h.store.EXPECT().
			GetTranslationRequest(request.ID).
			Return(request, nil).
			Times(1)

		fetched, err := h.client.GetTranslationRequest(h.sessionFor(t, owner), request.ID)
		require.NoError(t, err)
		assert.Equal(t, request.ID, fetched.ID)
	})

	t.Run("an admin sees any request", func(t *testing.T) {
		admin := model.NewUser("admin@example.com", "Addy Admin")
		admin.Admin = true

		h.store.EXPECT().
			GetTranslationRequest(request.ID).
			Return(request, nil).
			Times(1)

		fetched, err := h.client.GetTranslationRequest(h.sessionFor(t, admin), request.ID)
		require.NoError(t, err)
		assert.Equal(t, request.ID, fetched.ID)
	})
}

func TestReviewTransitions(t *testing.T) {
	h := setupAPI(t)

	admin := model.NewUser("admin@example.com", "Addy Admin")
	admin.Admin = true
	session := h.sessionFor(t, admin)

	t.Run("approve a pending request", func(t *testing.T) {
		request := model.NewTranslationRequest(model.NewID())

		h.store.EXPECT().
			GetTranslationRequest(request.ID).
			Return(request, nil).
			Times(1)
		h.store.EXPECT().
			UpdateTranslationRequest(gomock.Any()).
			DoAndReturn(func(updated *model.TranslationRequest) error {
				assert.Equal(t, model.StatusApproved, updated.Status)
				return nil
			}).
			Times(1)

		updated, err := h.client.ApproveTranslationRequest(session, request, "")
		require.NoError(t, err)
		assert.Equal(t, model.StatusApproved, updated.Status)
		assert.GreaterOrEqual(t, updated.UpdateAt, request.CreateAt)
	})

	t.Run("reject without a comment is denied server-side", func(t *testing.T) {
		request := model.NewTranslationRequest(model.NewID())

		h.store.EXPECT().
			GetTranslationRequest(request.ID).
			Return(request, nil).
			Times(1)

		// the typed client refuses this before the wire, so go around it
		resp := doAuthedPost(t, h, session,
			fmt.Sprintf("/api/admin/translationrequest/%s/reject", request.ID),
			`{"comment": "   "}`)
		defer resp.Body.Close()

		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		apiErr, err := model.NewApiErrorFromReader(resp.Body)
		require.NoError(t, err)
		assert.Equal(t, model.ErrorMissingComment, apiErr.Code)
	})

	t.Run("approve an already approved request", func(t *testing.T) {
		request := model.NewTranslationRequest(model.NewID())
		request.Status = model.StatusApproved

		h.store.EXPECT().
			GetTranslationRequest(request.ID).
			Return(request, nil).
			Times(1)

		resp := doAuthedPost(t, h, session,
			fmt.Sprintf("/api/admin/translationrequest/%s/approve", request.ID),
			`{}`)
		defer resp.Body.Close()

		assert.Equal(t, http.StatusConflict, resp.StatusCode)
		apiErr, err := model.NewApiErrorFromReader(resp.Body)
		require.NoError(t, err)
		assert.Equal(t, model.ErrorInvalidTransition, apiErr.Code)
	})

	t.Run("complete without a translated document", func(t *testing.T) {
		request := model.NewTranslationRequest(model.NewID())
		request.Status = model.StatusApproved

		h.store.EXPECT().
			GetTranslationRequest(request.ID).
			Return(request, nil).
			Times(1)

		body := &bytes.Buffer{}
		writer := multipart.NewWriter(body)
		require.NoError(t, writer.WriteField("comment", "done"))
		require.NoError(t, writer.Close())

		req, err := http.NewRequest(http.MethodPost,
			fmt.Sprintf("%s/api/admin/translationrequest/%s/complete", h.server.URL, request.ID), body)
		require.NoError(t, err)
		req.Header.Set("Authorization", "Bearer "+session.Token)
		req.Header.Set("Content-Type", writer.FormDataContentType())

		resp, err := http.DefaultClient.Do(req)
		require.NoError(t, err)
		defer resp.Body.Close()

		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		apiErr, err := model.NewApiErrorFromReader(resp.Body)
		require.NoError(t, err)
		assert.Equal(t, model.ErrorValidation, apiErr.Code)
		assert.Contains(t, apiErr.Issues, "file")
	})

	t.Run("complete an approved request", func(t *testing.T) {
		request := model.NewTranslationRequest(model.NewID())
		request.Status = model.StatusApproved
		uploadDone := make(chan struct{})

		h.store.EXPECT().
			GetTranslationRequest(request.ID).
			Return(request, nil).
			Times(1)
		h.store.EXPECT().
			UpdateTranslationRequest(gomock.Any()).
			Return(nil).
			Times(1)
		h.store.EXPECT().
			CreateUpload(gomock.Any()).
			Return(nil).
			Times(1)
		h.store.EXPECT().
			CompleteUpload(gomock.Any(), "").
			DoAndReturn(func(id, errorMessage string) error {
				close(uploadDone)
				return nil
			}).
			Times(1)

		updated, err := h.client.CompleteTranslationRequest(session, request, "enjoy",
			"contract-en.pdf", strings.NewReader("%PDF-1.4 translated"))
		require.NoError(t, err)
		assert.Equal(t, model.StatusCompleted, updated.Status)
		assert.Equal(t, "contract-en.pdf", updated.TranslatedFileName)
		assert.Equal(t, "enjoy", updated.AdminComment)
		assert.Equal(t, updated.UpdateAt, updated.CompleteAt)

		select {
		case <-uploadDone:
		case <-time.After(5 * time.Second):
			t.Fatal("timed out waiting for the document copy to finish")
		}
	})
}

func TestOwnerTransitions(t *testing.T) {
	h := setupAPI(t)

	owner := model.NewUser("owner@example.com", "Olive Owner")
	session := h.sessionFor(t, owner)

	t.Run("modify a rejected request requeues it", func(t *testing.T) {
		request := model.NewTranslationRequest(owner.ID)
		request.Status = model.StatusRejected
		request.Title = "Employment contract"

		h.store.EXPECT().
			GetTranslationRequest(request.ID).
			Return(request, nil).
			Times(1)
		h.store.EXPECT().
			UpdateTranslationRequest(gomock.Any()).
			Return(nil).
			Times(1)

		updated, err := h.client.UpdateTranslationRequest(session, request, &model.UpdateRequest{
			ID:             request.ID,
			Title:          "Employment contract, corrected scan",
			SourceLanguage: "de",
			TargetLanguage: "en",
		})
		require.NoError(t, err)
		assert.Equal(t, model.StatusPending, updated.Status)
		assert.Equal(t, "Employment contract, corrected scan", updated.Title)
	})

	t.Run("resubmit a rejected request", func(t *testing.T) {
		request := model.NewTranslationRequest(owner.ID)
		request.Status = model.StatusRejected

		h.store.EXPECT().
			GetTranslationRequest(request.ID).
			Return(request, nil).
			Times(1)
		h.store.EXPECT().
			UpdateTranslationRequest(gomock.Any()).
			Return(nil).
			Times(1)

		updated, err := h.client.ResubmitTranslationRequest(session, request, "fixed the scan", "", nil)
		require.NoError(t, err)
		assert.Equal(t, model.StatusResubmitted, updated.Status)
		assert.Equal(t, "fixed the scan", updated.UserComment)
	})

	t.Run("delete a pending request", func(t *testing.T) {
		request := model.NewTranslationRequest(owner.ID)

		h.store.EXPECT().
			GetTranslationRequest(request.ID).
			Return(request, nil).
			Times(1)
		h.store.EXPECT().
			DeleteTranslationRequest(request.ID).
			Return(nil).
			Times(1)

		require.NoError(t, h.client.DeleteTranslationRequest(session, request))
	})

	t.Run("delete a completed request is denied server-side", func(t *testing.T) {
		request := model.NewTranslationRequest(owner.ID)
		request.Status = model.StatusCompleted

		h.store.EXPECT().
			GetTranslationRequest(request.ID).
			Return(request, nil).
			Times(1)

		req, err := http.NewRequest(http.MethodDelete,
			fmt.Sprintf("%s/api/translationrequest/%s", h.server.URL, request.ID), nil)
		require.NoError(t, err)
		req.Header.Set("Authorization", "Bearer "+session.Token)

		resp, err := http.DefaultClient.Do(req)
		require.NoError(t, err)
		defer resp.Body.Close()

		assert.Equal(t, http.StatusConflict, resp.StatusCode)
		apiErr, err := model.NewApiErrorFromReader(resp.Body)
		require.NoError(t, err)
		assert.Equal(t, model.ErrorInvalidTransition, apiErr.Code)
	})
}

func TestDownloads(t *testing.T) {
	h := setupAPI(t)

	owner := model.NewUser("owner@example.com", "Olive Owner")
	session := h.sessionFor(t, owner)

	request := model.NewTranslationRequest(owner.ID)
	request.OriginalFileName = "contract.pdf"
	request.StoredFileName = request.ID + ".pdf"

	// seed the fake file store directly
	seed := filepath.Join(t.TempDir(), "seed.pdf")
	require.NoError(t, os.WriteFile(seed, []byte("original bytes"), 0600))
	require.NoError(t, h.fileStore.UploadFile(seed,
		fmt.Sprintf("requests/%s/original/%s", request.ID, request.StoredFileName)))

	t.Run("download the original document", func(t *testing.T) {
		h.store.EXPECT().
			GetTranslationRequest(request.ID).
			Return(request, nil).
			Times(1)

		filename, body, err := h.client.DownloadOriginal(session, request.ID)
		require.NoError(t, err)
		defer body.Close()

		assert.Equal(t, "contract.pdf", filename)
		data, err := io.ReadAll(body)
		require.NoError(t, err)
		assert.Equal(t, "original bytes", string(data))
	})

	t.Run("translated document before completion", func(t *testing.T) {
		h.store.EXPECT().
			GetTranslationRequest(request.ID).
			Return(request, nil).
			Times(1)

		_, _, err := h.client.DownloadTranslated(session, request.ID)
		require.Error(t, err)
		apiErr, ok := err.(*model.ApiError)
		require.True(t, ok)
		assert.Equal(t, model.ErrorNotFound, apiErr.Code)
	})
}

func TestGetUploadStatus(t *testing.T) {
	h := setupAPI(t)

	owner := model.NewUser("owner@example.com", "Olive Owner")
	session := h.sessionFor(t, owner)
	request := model.NewTranslationRequest(owner.ID)

	t.Run("no upload tracked yet", func(t *testing.T) {
		h.store.EXPECT().
			GetTranslationRequest(request.ID).
			Return(request, nil).
			Times(1)
		h.store.EXPECT().
			GetUploadForRequest(request.ID).
			Return(nil, nil).
			Times(1)

		_, err := h.client.GetUploadStatus(session, request.ID)
		require.Error(t, err)
		apiErr, ok := err.(*model.ApiError)
		require.True(t, ok)
		assert.Equal(t, model.ErrorNotFound, apiErr.Code)
	})

	t.Run("completed upload", func(t *testing.T) {
		upload := model.NewUpload(request.ID, model.UploadKindOriginal)
		upload.CompleteAt = model.GetMillis()

		h.store.EXPECT().
			GetTranslationRequest(request.ID).
			Return(request, nil).
			Times(1)
		h.store.EXPECT().
			GetUploadForRequest(request.ID).
			Return(upload, nil).
			Times(1)

		fetched, err := h.client.GetUploadStatus(session, request.ID)
		require.NoError(t, err)
		assert.Equal(t, upload.ID, fetched.ID)
		assert.NotZero(t, fetched.CompleteAt)
	})
}

func doAuthedPost(t *testing.T, h *apiTestHarness, session *model.Session, path, body string) *http.Response {
	t.Helper()
	req, err := http.NewRequest(http.MethodPost, h.server.URL+path, strings.NewReader(body))
	require.NoError(t, err)
	req.Header.Set("Authorization", "Bearer "+session.Token)
	req.Header.Set("Content-Type", "application/json")

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	return resp
}
