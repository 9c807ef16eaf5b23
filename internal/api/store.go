package api

import "github.com/doctrans/dtrs/model"

// Store is the persistence surface the API depends on.
type Store interface {
	GetTranslationRequest(id string) (*model.TranslationRequest, error)
	GetTranslationRequestsByUser(userID string) ([]*model.TranslationRequest, error)
	GetAllTranslationRequests() ([]*model.TranslationRequest, error)
	CreateTranslationRequest(request *model.TranslationRequest) error
	UpdateTranslationRequest(request *model.TranslationRequest) error
	DeleteTranslationRequest(id string) error

	GetUser(id string) (*model.User, error)
	GetUserByEmail(email string) (*model.User, error)
	GetUsers() ([]*model.User, error)
	CreateUser(user *model.User) error
	UpdateUser(user *model.User) error

	GetUpload(id string) (*model.Upload, error)
	GetUploadForRequest(requestID string) (*model.Upload, error)
	CreateUpload(upload *model.Upload) error
	CompleteUpload(uploadID, errorMessage string) error
}
