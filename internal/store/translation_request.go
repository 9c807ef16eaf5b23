package store

import (
	"database/sql"

	sq "github.com/Masterminds/squirrel"
	"github.com/pkg/errors"

	"github.com/doctrans/dtrs/model"
)

// TranslationRequestTableName is the table holding translation request rows.
const TranslationRequestTableName = "TranslationRequest"

var translationRequestSelect sq.SelectBuilder

func init() {
	translationRequestSelect = sq.
		Select(
			"ID",
			"UserID",
			"Title",
			"Description",
			"SourceLanguage",
			"TargetLanguage",
			"Status",
			"OriginalFileName",
			"StoredFileName",
			"TranslatedFileName",
			"UserComment",
			"AdminComment",
			"CreateAt",
			"UpdateAt",
			"CompleteAt",
		).
		From(TranslationRequestTableName)
}

// GetTranslationRequest fetches one request by ID, returning nil when no row
// exists.
func (sqlStore *SQLStore) GetTranslationRequest(id string) (*model.TranslationRequest, error) {
	request := new(model.TranslationRequest)
	err := sqlStore.getBuilder(sqlStore.db, request,
		translationRequestSelect.Where("ID = ?", id))

	if err == sql.ErrNoRows {
		return nil, nil
	} else if err != nil {
		return nil, errors.Wrap(err, "failed to get translation request by id")
	}

	return request, nil
}

// GetTranslationRequestsByUser fetches all requests owned by the given user,
// newest first.
func (sqlStore *SQLStore) GetTranslationRequestsByUser(userID string) ([]*model.TranslationRequest, error) {
	requests := []*model.TranslationRequest{}
	err := sqlStore.selectBuilder(sqlStore.db, &requests,
		translationRequestSelect.
			Where("UserID = ?", userID).
			OrderBy("CreateAt DESC"))
	if err != nil {
		return nil, errors.Wrap(err, "failed to get translation requests by user")
	}

	return requests, nil
}

// GetAllTranslationRequests fetches every request in the system, newest
// first.
func (sqlStore *SQLStore) GetAllTranslationRequests() ([]*model.TranslationRequest, error) {
	requests := []*model.TranslationRequest{}
	err := sqlStore.selectBuilder(sqlStore.db, &requests,
		translationRequestSelect.OrderBy("CreateAt DESC"))
	if err != nil {
		return nil, errors.Wrap(err, "failed to get all translation requests")
	}

	return requests, nil
}

// CreateTranslationRequest stores a new request row.
func (sqlStore *SQLStore) CreateTranslationRequest(request *model.TranslationRequest) error {
	_, err := sqlStore.execBuilder(sqlStore.db, sq.
		Insert(TranslationRequestTableName).
		SetMap(map[string]interface{}{
			"ID":                 request.ID,
			"UserID":             request.UserID,
			"Title":              request.Title,
			"Description":        request.Description,
			"SourceLanguage":     request.SourceLanguage,
			"TargetLanguage":     request.TargetLanguage,
			"Status":             request.Status,
			"OriginalFileName":   request.OriginalFileName,
			"StoredFileName":     request.StoredFileName,
			"TranslatedFileName": request.TranslatedFileName,
			"UserComment":        request.UserComment,
			"AdminComment":       request.AdminComment,
			"CreateAt":           request.CreateAt,
			"UpdateAt":           request.UpdateAt,
			"CompleteAt":         request.CompleteAt,
		}),
	)
	return errors.Wrap(err, "failed to store translation request")
}

// UpdateTranslationRequest writes the mutable fields of a request back to
// the database.
func (sqlStore *SQLStore) UpdateTranslationRequest(request *model.TranslationRequest) error {
	_, err := sqlStore.execBuilder(sqlStore.db, sq.
		Update(TranslationRequestTableName).
		SetMap(map[string]interface{}{
			"Title":              request.Title,
			"Description":        request.Description,
			"SourceLanguage":     request.SourceLanguage,
			"TargetLanguage":     request.TargetLanguage,
			"Status":             request.Status,
			"OriginalFileName":   request.OriginalFileName,
			"StoredFileName":     request.StoredFileName,
			"TranslatedFileName": request.TranslatedFileName,
			"UserComment":        request.UserComment,
			"AdminComment":       request.AdminComment,
			"UpdateAt":           request.UpdateAt,
			"CompleteAt":         request.CompleteAt,
		}).
		Where("ID = ?", request.ID),
	)
	return errors.Wrap(err, "failed to update translation request")
}

// DeleteTranslationRequest removes a request row and any uploads tracked for
// it.
func (sqlStore *SQLStore) DeleteTranslationRequest(id string) error {
	tx, err := sqlStore.beginTransaction(sqlStore.db)
	if err != nil {
		return err
	}
	defer tx.RollbackUnlessCommitted()

	_, err = sqlStore.execBuilder(tx, sq.
		Delete(UploadTableName).
		Where("RequestID = ?", id),
	)
	if err != nil {
		return errors.Wrap(err, "failed to delete uploads for translation request")
	}

	_, err = sqlStore.execBuilder(tx, sq.
		Delete(TranslationRequestTableName).
		Where("ID = ?", id),
	)
	if err != nil {
		return errors.Wrap(err, "failed to delete translation request")
	}

	return tx.Commit()
}
