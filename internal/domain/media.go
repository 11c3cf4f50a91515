package domain

import (
	"context"
	"strings"
)

// MediaType distinguishes photo and video items.
type MediaType string

const (
	MediaPhoto MediaType = "photo"
	MediaVideo MediaType = "video"
)

// MediaTypeOf classifies a file by its declared content type.
func MediaTypeOf(contentType string) MediaType {
	if strings.HasPrefix(contentType, "video") {
		return MediaVideo
	}
	return MediaPhoto
}

// MediaItem is a single entry in a package's ordered media sequence.
// The first item is the cover shown in list views.
type MediaItem struct {
	Type   MediaType `json:"type" bson:"type"`
	URL    string    `json:"url" bson:"url"`
	FileID string    `json:"file_id,omitempty" bson:"file_id,omitempty"`
}

// MediaFile is a raw file picked by the admin, not yet relayed anywhere.
type MediaFile struct {
	Name        string
	ContentType string
	Data        []byte
}

// MediaUploader relays raw files to the hosting provider and resolves
// publicly fetchable URLs for them.
type MediaUploader interface {
	UploadMedia(ctx context.Context, files []MediaFile) ([]MediaItem, error)
}

// MediaArchiver keeps a copy of the original bytes of an uploaded file.
// The relay provider recompresses photos, so the archive preserves originals.
type MediaArchiver interface {
	Archive(ctx context.Context, file MediaFile) (string, error)
}

// Notifier pushes a free-text message to the agency's notification channel.
type Notifier interface {
	SendMessage(ctx context.Context, text string) error
}
