package model

import (
	"github.com/google/uuid"
)

type FileAttachment struct {
	ID       uuid.UUID `json:"id"`
	Name     string    `json:"name"`
	MimeType string    `json:"mime_type,omitempty"`
	Size     int64     `json:"size,omitempty"`
	Data     string    `json:"data,omitempty"`
}
