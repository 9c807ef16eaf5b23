package model

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// NewID produces a new unique identifier suitable for use as a primary key.
func NewID() string {
	return strings.Replace(uuid.New().String(), "-", "", -1)
}

// GetMillis returns the current time in milliseconds since the epoch.
func GetMillis() int64 {
	return time.Now().UnixNano() / int64(time.Millisecond)
}
