// Package media validates uploaded files and hands them to a Store.
package media

import (
	"errors"
	"mime"
	"strings"
)

// Kind is the storage folder a file is filed under
type Kind string

const (
	KindPhoto Kind = "photos"
	KindAudio Kind = "audios"
	KindVideo Kind = "videos"
)

const (
	MiB = 1 << 20

	// multipart overhead allowed on top of the file payloads
	formOverhead = 1 * MiB
)

var (
	ErrTooManyFiles    = errors.New("too many files")
	ErrFileTooLarge    = errors.New("file too large")
	ErrUnsupportedType = errors.New("unsupported file type")
)

// Classify maps a MIME type to its storage folder
func Classify(mimeType string) Kind {
	switch {
	case strings.HasPrefix(mimeType, "video/"):
		return KindVideo
	case strings.HasPrefix(mimeType, "audio/"):
		return KindAudio
	default:
		return KindPhoto
	}
}

// Policy bounds what a single upload field accepts
type Policy struct {
	AllowedTypes []string
	MaxSize      int64
	MaxFiles     int
}

var (
	PhotoPolicy = Policy{
		AllowedTypes: []string{"image/png", "image/jpeg", "image/jpg"},
		MaxSize:      5 * MiB,
		MaxFiles:     10,
	}
	AudioPolicy = Policy{
		AllowedTypes: []string{"audio/mp3", "audio/m4a"},
		MaxSize:      7 * MiB,
		MaxFiles:     10,
	}
)

// Single returns a copy of p that accepts one file
func (p Policy) Single() Policy {
	p.MaxFiles = 1
	return p
}

// BodyLimit is the largest request body a form carrying p's files may have
func (p Policy) BodyLimit() int64 {
	return int64(p.MaxFiles)*p.MaxSize + formOverhead
}

// Allows reports whether the declared content type is on the allow list
func (p Policy) Allows(contentType string) bool {
	mediaType := normalizeType(contentType)
	for _, t := range p.AllowedTypes {
		if t == mediaType {
			return true
		}
	}
	return false
}

func normalizeType(contentType string) string {
	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return strings.ToLower(strings.TrimSpace(contentType))
	}
	return mediaType
}

func topLevel(mediaType string) string {
	top, _, _ := strings.Cut(mediaType, "/")
	return top
}
