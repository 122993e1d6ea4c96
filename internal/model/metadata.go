package model

import (
	"encoding/json"
	"fmt"
	"time"
)

// MetadataKind discriminates the FileMetadata variant.
type MetadataKind string

const (
	MetadataImage   MetadataKind = "image"
	MetadataVideo   MetadataKind = "video"
	MetadataUnknown MetadataKind = "unknown"
)

// FileMetadata is a tagged variant of per-file media metadata. Exactly one
// of Image/Video is set depending on Kind; both are nil for MetadataUnknown.
// Extraction (EXIF probing, ffprobe) happens outside the core; the catalog
// only stores and returns what a collaborator supplies.
type FileMetadata struct {
	Kind  MetadataKind
	Image *ImageMetadata
	Video *VideoMetadata
}

// ImageMetadata holds dimensions and capture time for image files.
type ImageMetadata struct {
	Width   int        `json:"width"`
	Height  int        `json:"height"`
	TakenAt *time.Time `json:"taken_at,omitempty"`
}

// VideoMetadata holds basic stream properties for video files.
type VideoMetadata struct {
	DurationSeconds float64 `json:"duration_seconds"`
	Codec           string  `json:"codec"`
	Width           int     `json:"width"`
	Height          int     `json:"height"`
}

// metadataEnvelope is the stored JSON shape.
type metadataEnvelope struct {
	Kind  MetadataKind   `json:"kind"`
	Image *ImageMetadata `json:"image,omitempty"`
	Video *VideoMetadata `json:"video,omitempty"`
}

// MarshalJSON encodes the variant with its kind discriminator.
func (m FileMetadata) MarshalJSON() ([]byte, error) {
	kind := m.Kind
	if kind == "" {
		kind = MetadataUnknown
	}
	return json.Marshal(metadataEnvelope{Kind: kind, Image: m.Image, Video: m.Video})
}

// UnmarshalJSON decodes the variant and validates the discriminator.
func (m *FileMetadata) UnmarshalJSON(data []byte) error {
	var env metadataEnvelope
	if err := json.Unmarshal(data, &env); err != nil {
		return err
	}
	switch env.Kind {
	case MetadataImage:
		if env.Image == nil {
			return fmt.Errorf("image metadata missing image payload")
		}
		*m = FileMetadata{Kind: MetadataImage, Image: env.Image}
	case MetadataVideo:
		if env.Video == nil {
			return fmt.Errorf("video metadata missing video payload")
		}
		*m = FileMetadata{Kind: MetadataVideo, Video: env.Video}
	case MetadataUnknown, "":
		*m = FileMetadata{Kind: MetadataUnknown}
	default:
		return fmt.Errorf("unknown metadata kind: %q", env.Kind)
	}
	return nil
}
