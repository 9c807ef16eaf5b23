package store

import (
	"database/sql"

	sq "github.com/Masterminds/squirrel"
	"github.com/pkg/errors"

	"github.com/doctrans/dtrs/model"
)

// UploadTableName is the table tracking file store copies.
const UploadTableName = "Upload"

var uploadSelect sq.SelectBuilder

func init() {
	uploadSelect = sq.
		Select(
			"ID",
			"RequestID",
			"Kind",
			"CreateAt",
			"CompleteAt",
			"Error",
		).
		From(UploadTableName)
}

// GetUpload fetches one upload by ID, returning nil when no row exists.
func (sqlStore *SQLStore) GetUpload(id string) (*model.Upload, error) {
	upload := new(model.Upload)

	err := sqlStore.getBuilder(sqlStore.db, upload,
		uploadSelect.Where("ID = ?", id))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, errors.Wrap(err, "failed to get upload by id")
	}

	return upload, nil
}

// GetUploadForRequest fetches the most recent upload tracked for the given
// request, returning nil when none exists.
func (sqlStore *SQLStore) GetUploadForRequest(requestID string) (*model.Upload, error) {
	upload := new(model.Upload)

	err := sqlStore.getBuilder(sqlStore.db, upload,
		uploadSelect.
			Where("RequestID = ?", requestID).
			OrderBy("CreateAt DESC").
			Limit(1))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, errors.Wrap(err, "failed to get upload by request id")
	}

	return upload, nil
}

// GetStaleUploads fetches uploads that started before the given time and
// never completed.
func (sqlStore *SQLStore) GetStaleUploads(olderThan int64) ([]*model.Upload, error) {
	uploads := []*model.Upload{}
	err := sqlStore.selectBuilder(sqlStore.db, &uploads,
		uploadSelect.
			Where("CompleteAt = 0").
			Where("CreateAt < ?", olderThan))
	if err != nil {
		return nil, errors.Wrap(err, "failed to get stale uploads")
	}

	return uploads, nil
}

// CreateUpload stores a new upload row.
func (sqlStore *SQLStore) CreateUpload(upload *model.Upload) error {
	_, err := sqlStore.execBuilder(sqlStore.db, sq.
		Insert(UploadTableName).
		SetMap(map[string]interface{}{
			"ID":         upload.ID,
			"RequestID":  upload.RequestID,
			"Kind":       upload.Kind,
			"CreateAt":   upload.CreateAt,
			"CompleteAt": upload.CompleteAt,
			"Error":      upload.Error,
		}),
	)
	return errors.Wrap(err, "failed to store upload")
}

// CompleteUpload marks an upload finished, with or without an error.
func (sqlStore *SQLStore) CompleteUpload(uploadID, errorMessage string) error {
	_, err := sqlStore.execBuilder(sqlStore.db, sq.
		Update(UploadTableName).
		Where("ID = ?", uploadID).
		SetMap(map[string]interface{}{
			"CompleteAt": model.GetMillis(),
			"Error":      errorMessage,
		}),
	)
	return errors.Wrap(err, "failed to complete upload")
}
