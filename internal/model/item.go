package model

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Status describes where a work item is in its processing lifecycle.
type Status string

const (
	StatusPending    Status = "pending"
	StatusProcessing Status = "processing"
	StatusDone       Status = "done"
	StatusError      Status = "error"
)

// Dimensions holds a width/height pair in pixels.
type Dimensions struct {
	Width  int `json:"width"`
	Height int `json:"height"`
}

func (d Dimensions) String() string {
	return fmt.Sprintf("%dx%d", d.Width, d.Height)
}

// WorkItem represents one user-submitted image and its derived output
// within a single tool session. The source bytes are immutable; the
// output is populated only when the item reaches StatusDone.
type WorkItem struct {
	ID       string `json:"id"`
	Filename string `json:"filename"`
	MIME     string `json:"mime"`

	Source []byte `json:"-"`
	Output []byte `json:"-"`

	// OutputName is the filename of the derived result, set on success.
	OutputName string `json:"output_name,omitempty"`

	Status Status `json:"status"`

	OriginalSize int `json:"original_size"`
	OutputSize   int `json:"output_size,omitempty"`

	OriginalDims *Dimensions `json:"original_dimensions,omitempty"`
	NewDims      *Dimensions `json:"new_dimensions,omitempty"`

	// SourceFormat is a detected format label such as "JPG" or "HEIC".
	SourceFormat string `json:"source_format,omitempty"`

	// ErrMessage is non-empty exactly when Status is StatusError.
	ErrMessage string `json:"error,omitempty"`
}

// NewWorkItem creates a pending work item for the given file. The ID is
// synthetic: filename plus creation timestamp plus a random salt, so two
// files with the same name never collide within a session.
func NewWorkItem(filename, mime string, source []byte) WorkItem {
	return WorkItem{
		ID:           fmt.Sprintf("%s-%d-%s", filename, time.Now().UnixMilli(), uuid.NewString()[:8]),
		Filename:     filename,
		MIME:         mime,
		Source:       source,
		Status:       StatusPending,
		OriginalSize: len(source),
	}
}
