package middleware

import (
	"context"
	"errors"
	"fmt"
	"mime"
	"net/http"

	"marketplace/internal/media"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

const (
	uploadedFilesKey = "uploadedFiles"

	// form values and small files are kept in memory, larger parts spill to disk
	multipartMemory = 8 << 20
)

// UploadMiddleware ingests the files sent under field before the handler
// runs. Requests that are not multipart pass through untouched. When the
// handler answers with an error status the stored files are removed again.
func UploadMiddleware(ingestor *media.Ingestor, field string, policy media.Policy) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !isMultipart(c.Request) {
			c.Next()
			return
		}

		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, policy.BodyLimit())
		if err := c.Request.ParseMultipartForm(multipartMemory); err != nil {
			var tooLarge *http.MaxBytesError
			if errors.As(err, &tooLarge) {
				c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
					"message": fmt.Sprintf("%s: request body exceeds %d bytes", media.ErrFileTooLarge, tooLarge.Limit),
				})
				return
			}
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"message": "invalid multipart form"})
			return
		}

		ctx := c.Request.Context()
		stored, err := ingestor.Ingest(ctx, c.Request.MultipartForm.File[field], policy)
		if err != nil {
			if isMediaError(err) {
				c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"message": err.Error()})
				return
			}
			log.Error().Err(err).Str("field", field).Msg("failed to store upload")
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"message": "internal server error"})
			return
		}
		c.Set(uploadedFilesKey, stored)

		c.Next()

		if c.Writer.Status() >= http.StatusBadRequest && len(stored) > 0 {
			ingestor.Discard(context.WithoutCancel(ctx), stored)
		}
	}
}

// UploadedFiles returns what UploadMiddleware stored for this request
func UploadedFiles(c *gin.Context) []media.StoredFile {
	v, ok := c.Get(uploadedFilesKey)
	if !ok {
		return nil
	}
	files, _ := v.([]media.StoredFile)
	return files
}

// FirstUploadRef is the reference of the first stored file, or "" when none
func FirstUploadRef(c *gin.Context) string {
	files := UploadedFiles(c)
	if len(files) == 0 {
		return ""
	}
	return files[0].Ref
}

func isMultipart(r *http.Request) bool {
	mediaType, _, err := mime.ParseMediaType(r.Header.Get("Content-Type"))
	return err == nil && mediaType == "multipart/form-data"
}

func isMediaError(err error) bool {
	return errors.Is(err, media.ErrTooManyFiles) ||
		errors.Is(err, media.ErrFileTooLarge) ||
		errors.Is(err, media.ErrUnsupportedType)
}
