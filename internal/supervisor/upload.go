// Package supervisor runs the background maintenance loops the API does not
// block on.
package supervisor

import (
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/doctrans/dtrs/model"
)

// uploadStore is the slice of the store the supervisor needs.
type uploadStore interface {
	GetStaleUploads(olderThan int64) ([]*model.Upload, error)
	CompleteUpload(uploadID, errorMessage string) error
}

// UploadSupervisor abandons document copies that never completed, so that
// clients polling upload status are not left waiting forever after a crashed
// or wedged file store transfer.
type UploadSupervisor struct {
	store    uploadStore
	logger   log.FieldLogger
	interval time.Duration
	maxAge   time.Duration
}

// NewUploadSupervisor returns a Supervisor prepared with the needed metadata
// to operate.
func NewUploadSupervisor(store uploadStore, logger log.FieldLogger, interval, maxAge time.Duration) *UploadSupervisor {
	return &UploadSupervisor{
		store:    store,
		logger:   logger.WithField("upload-supervisor", model.NewID()),
		interval: interval,
		maxAge:   maxAge,
	}
}

// Start runs the Supervisor's main routine on a new goroutine both
// periodically and forever.
func (s *UploadSupervisor) Start() {
	s.logger.Info("Upload supervisor started")
	go func() {
		for {
			s.Supervise()
			time.Sleep(s.interval)
		}
	}()
}

// Supervise makes a single pass over the stale uploads and marks each one
// failed.
func (s *UploadSupervisor) Supervise() {
	cutoff := model.GetMillis() - s.maxAge.Milliseconds()
	uploads, err := s.store.GetStaleUploads(cutoff)
	if err != nil {
		s.logger.WithError(err).Error("Failed to query database for stale uploads")
		return
	}

	for _, upload := range uploads {
		logger := s.logger.WithFields(log.Fields{"upload": upload.ID, "request": upload.RequestID})
		err = s.store.CompleteUpload(upload.ID, "timed out waiting for the document to reach the file store")
		if err != nil {
			logger.WithError(err).Error("failed to abandon stale upload")
			continue
		}
		logger.Info("Abandoned stale upload")
	}
}
