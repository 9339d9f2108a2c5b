package handler

import (
	"bytes"
	"context"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hrportal/internal/model"
	"hrportal/internal/session"
	"hrportal/pkg/apperror"
)

type stubFileService struct {
	path string
	err  error
}

func (s stubFileService) Open(context.Context, *session.Session, string) (string, error) {
	return s.path, s.err
}

func newFileRouter(svc stubFileService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	NewFileHandler(svc, "/uploads/").RegisterRoutes(r.Group(""), withSession(testSession(model.RoleEmployee)))
	return r
}

func TestDownload_ServesAuthorizedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "letter.pdf")
	require.NoError(t, os.WriteFile(path, []byte("%PDF-1.4"), 0o600))

	w := do(newFileRouter(stubFileService{path: path}), http.MethodGet, "/uploads/letter.pdf", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "%PDF-1.4", w.Body.String())
	assert.Equal(t, "private, no-store", w.Header().Get("Cache-Control"))
}

func TestDownload_HidesForbiddenFiles(t *testing.T) {
	denied := do(newFileRouter(stubFileService{err: apperror.ErrUnauthorized}), http.MethodGet, "/uploads/letter.pdf", "")
	missing := do(newFileRouter(stubFileService{err: apperror.ErrNotFound}), http.MethodGet, "/uploads/letter.pdf", "")

	assert.Equal(t, http.StatusNotFound, denied.Code)
	assert.Equal(t, denied.Body.String(), missing.Body.String())
}

type recordingStore struct {
	company uuid.UUID
	name    string
}

func (s *recordingStore) Save(_ context.Context, companyID uuid.UUID, name string, r io.Reader) (string, error) {
	s.company, s.name = companyID, name
	_, err := io.Copy(io.Discard, r)
	return companyID.String() + "_key", err
}

func (s *recordingStore) Resolve(_ context.Context, key string) (string, error) {
	return "/uploads/" + key, nil
}

func TestUpload_ScopesToUploaderCompany(t *testing.T) {
	sess := testSession(model.RoleAdmin)
	store := &recordingStore{}
	gin.SetMode(gin.TestMode)
	r := gin.New()
	NewUploadHandler(store).RegisterRoutes(r.Group(""), withSession(sess))

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	part, err := mw.CreateFormFile("file", "letter.pdf")
	require.NoError(t, err)
	_, err = part.Write([]byte("%PDF-1.4"))
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/uploads", &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, *sess.Principal().CompanyID, store.company)
	assert.Equal(t, "letter.pdf", store.name)

	data := decode(t, w)["data"].(map[string]any)
	assert.Equal(t, store.company.String()+"_key", data["location"])
}
