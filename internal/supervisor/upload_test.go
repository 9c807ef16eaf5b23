package supervisor

import (
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/doctrans/dtrs/internal/testlib"
	"github.com/doctrans/dtrs/model"
)

type fakeUploadStore struct {
	stale     []*model.Upload
	staleErr  error
	completed map[string]string
}

func (f *fakeUploadStore) GetStaleUploads(olderThan int64) ([]*model.Upload, error) {
	return f.stale, f.staleErr
}

func (f *fakeUploadStore) CompleteUpload(uploadID, errorMessage string) error {
	if f.completed == nil {
		f.completed = map[string]string{}
	}
	f.completed[uploadID] = errorMessage
	return nil
}

func TestSupervise(t *testing.T) {
	logger := testlib.MakeLogger(t)

	t.Run("abandons every stale upload", func(t *testing.T) {
		stale := []*model.Upload{
			model.NewUpload(model.NewID(), model.UploadKindOriginal),
			model.NewUpload(model.NewID(), model.UploadKindTranslated),
		}
		store := &fakeUploadStore{stale: stale}

		supervisor := NewUploadSupervisor(store, logger, time.Minute, time.Hour)
		supervisor.Supervise()

		require.Len(t, store.completed, 2)
		for _, upload := range stale {
			message, ok := store.completed[upload.ID]
			require.True(t, ok)
			assert.NotEmpty(t, message)
		}
	})

	t.Run("nothing stale", func(t *testing.T) {
		store := &fakeUploadStore{}

		supervisor := NewUploadSupervisor(store, logger, time.Minute, time.Hour)
		supervisor.Supervise()

		assert.Empty(t, store.completed)
	})

	t.Run("store errors are tolerated", func(t *testing.T) {
		store := &fakeUploadStore{staleErr: errors.New("database is down")}

		supervisor := NewUploadSupervisor(store, logger, time.Minute, time.Hour)
		supervisor.Supervise()

		assert.Empty(t, store.completed)
	})
}
