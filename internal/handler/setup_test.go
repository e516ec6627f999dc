package handler

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http/httptest"
	"net/textproto"
	"testing"

	"marketplace/internal/media"
	"marketplace/internal/middleware"
	"marketplace/internal/utils"
	"marketplace/internal/validation"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret"

func init() {
	gin.SetMode(gin.TestMode)
}

type testServer struct {
	router     *gin.Engine
	auth       *mockAuthService
	users      *mockUserService
	products   *mockProductService
	offers     *mockOfferService
	jwt        *utils.JWTUtil
	uploadsDir string
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	return newTestServerWithDB(t, stubPinger{})
}

func newTestServerWithDB(t *testing.T, db Pinger) *testServer {
	t.Helper()
	uploadsDir := t.TempDir()
	store, err := media.NewDiskStore(uploadsDir)
	require.NoError(t, err)

	ts := &testServer{
		auth:       new(mockAuthService),
		users:      new(mockUserService),
		products:   new(mockProductService),
		offers:     new(mockOfferService),
		jwt:        utils.NewJWTUtil(testSecret, 1),
		uploadsDir: uploadsDir,
	}

	v := validation.New()
	upload := middleware.UploadMiddleware(media.NewIngestor(store), "imagem", media.PhotoPolicy.Single())
	ts.router = NewRouter(Handlers{
		Auth:    NewAuthHandler(ts.auth, v),
		User:    NewUserHandler(ts.users, v),
		Product: NewProductHandler(ts.products, v, upload),
		Offer:   NewOfferHandler(ts.offers, v),
	}, RouterOptions{
		Auth:       middleware.JWTAuthMiddleware(ts.jwt),
		DB:         db,
		UploadsDir: uploadsDir,
	})
	return ts
}

func (ts *testServer) token(t *testing.T, userID uuid.UUID) string {
	t.Helper()
	token, err := ts.jwt.GenerateToken(userID)
	require.NoError(t, err)
	return token
}

// do sends body as JSON unless it is already an io.Reader
func (ts *testServer) do(method, path, token string, body interface{}, contentType string) *httptest.ResponseRecorder {
	var r io.Reader
	switch b := body.(type) {
	case nil:
	case io.Reader:
		r = b
	case string:
		r = bytes.NewBufferString(b)
		if contentType == "" {
			contentType = "application/json"
		}
	default:
		data, _ := json.Marshal(b)
		r = bytes.NewReader(data)
		if contentType == "" {
			contentType = "application/json"
		}
	}

	req := httptest.NewRequest(method, path, r)
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	ts.router.ServeHTTP(w, req)
	return w
}

type filePart struct {
	field, filename, contentType string
	data                         []byte
}

func multipartForm(t *testing.T, values map[string]string, files ...filePart) (*bytes.Buffer, string) {
	t.Helper()
	var body bytes.Buffer
	w := multipart.NewWriter(&body)
	for k, v := range values {
		require.NoError(t, w.WriteField(k, v))
	}
	for _, f := range files {
		h := make(textproto.MIMEHeader)
		h.Set("Content-Disposition", fmt.Sprintf(`form-data; name="%s"; filename="%s"`, f.field, f.filename))
		h.Set("Content-Type", f.contentType)
		part, err := w.CreatePart(h)
		require.NoError(t, err)
		_, err = part.Write(f.data)
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())
	return &body, w.FormDataContentType()
}

func pngBytes(size int) []byte {
	data := make([]byte, size)
	copy(data, "\x89PNG\r\n\x1a\n")
	return data
}

func decode(t *testing.T, w *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), v), w.Body.String())
}

func assertStatus(t *testing.T, w *httptest.ResponseRecorder, want int) {
	t.Helper()
	require.Equal(t, want, w.Code, w.Body.String())
}

