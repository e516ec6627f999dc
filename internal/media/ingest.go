package media

import (
	"context"
	"fmt"
	"mime/multipart"
	"path/filepath"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

const maxExtLength = 10

// StoredFile is an upload that passed validation and was written to the store
type StoredFile struct {
	Ref          string `json:"url"`
	Kind         Kind   `json:"kind"`
	Name         string `json:"name"`
	OriginalName string `json:"original_name"`
	ContentType  string `json:"content_type"`
	Size         int64  `json:"size"`
}

// Ingestor checks uploads against a Policy before anything is stored
type Ingestor struct {
	store Store
}

func NewIngestor(store Store) *Ingestor {
	return &Ingestor{store: store}
}

type checkedFile struct {
	header      *multipart.FileHeader
	contentType string
	ext         string
}

// Ingest validates every file first and only then stores them. If a write
// fails, files already stored by this call are removed again.
func (i *Ingestor) Ingest(ctx context.Context, files []*multipart.FileHeader, policy Policy) ([]StoredFile, error) {
	if len(files) > policy.MaxFiles {
		return nil, fmt.Errorf("%w: at most %d allowed, got %d", ErrTooManyFiles, policy.MaxFiles, len(files))
	}

	checked := make([]checkedFile, 0, len(files))
	for _, fh := range files {
		cf, err := check(fh, policy)
		if err != nil {
			return nil, err
		}
		checked = append(checked, cf)
	}

	stored := make([]StoredFile, 0, len(checked))
	for _, cf := range checked {
		sf, err := i.save(ctx, cf)
		if err != nil {
			i.Discard(ctx, stored)
			return nil, err
		}
		stored = append(stored, sf)
	}
	return stored, nil
}

func check(fh *multipart.FileHeader, policy Policy) (checkedFile, error) {
	if fh.Size > policy.MaxSize {
		return checkedFile{}, fmt.Errorf("%w: %s exceeds %d MiB", ErrFileTooLarge, fh.Filename, policy.MaxSize/MiB)
	}

	declared := normalizeType(fh.Header.Get("Content-Type"))
	if !policy.Allows(declared) {
		return checkedFile{}, fmt.Errorf("%w: %s (allowed: %s)", ErrUnsupportedType, declared, strings.Join(policy.AllowedTypes, ", "))
	}

	f, err := fh.Open()
	if err != nil {
		return checkedFile{}, fmt.Errorf("failed to open uploaded file: %w", err)
	}
	defer f.Close()

	detected, err := mimetype.DetectReader(f)
	if err != nil {
		return checkedFile{}, fmt.Errorf("failed to inspect uploaded file: %w", err)
	}
	if topLevel(detected.String()) != topLevel(declared) {
		return checkedFile{}, fmt.Errorf("%w: %s content does not match declared type %s", ErrUnsupportedType, fh.Filename, declared)
	}

	ext := sanitizeExt(fh.Filename)
	if ext == "" {
		ext = detected.Extension()
	}
	return checkedFile{header: fh, contentType: declared, ext: ext}, nil
}

func (i *Ingestor) save(ctx context.Context, cf checkedFile) (StoredFile, error) {
	src, err := cf.header.Open()
	if err != nil {
		return StoredFile{}, fmt.Errorf("failed to open uploaded file: %w", err)
	}
	defer src.Close()

	obj := Object{
		Kind:        Classify(cf.contentType),
		Name:        uuid.NewString() + cf.ext,
		ContentType: cf.contentType,
		Size:        cf.header.Size,
	}
	ref, err := i.store.Save(ctx, obj, src)
	if err != nil {
		return StoredFile{}, err
	}
	return StoredFile{
		Ref:          ref,
		Kind:         obj.Kind,
		Name:         obj.Name,
		OriginalName: filepath.Base(cf.header.Filename),
		ContentType:  obj.ContentType,
		Size:         obj.Size,
	}, nil
}

// Owns reports whether ref points into the underlying store
func (i *Ingestor) Owns(ref string) bool {
	return ref != "" && i.store.Owns(ref)
}

// Remove deletes a previously stored file. References this store did not
// produce, such as external image URLs, are left alone.
func (i *Ingestor) Remove(ctx context.Context, ref string) error {
	if !i.Owns(ref) {
		return nil
	}
	return i.store.Remove(ctx, ref)
}

// Discard removes stored files on a best effort basis
func (i *Ingestor) Discard(ctx context.Context, files []StoredFile) {
	for _, f := range files {
		if err := i.store.Remove(ctx, f.Ref); err != nil {
			log.Warn().Err(err).Str("ref", f.Ref).Msg("failed to discard stored upload")
		}
	}
}

// sanitizeExt keeps a short alphanumeric extension from the client's file
// name and drops everything else.
func sanitizeExt(filename string) string {
	ext := strings.ToLower(filepath.Ext(filepath.Base(filename)))
	if len(ext) < 2 || len(ext) > maxExtLength {
		return ""
	}
	for _, r := range ext[1:] {
		if (r < 'a' || r > 'z') && (r < '0' || r > '9') {
			return ""
		}
	}
	return ext
}
