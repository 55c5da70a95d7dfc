package server

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"os"
	"path/filepath"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bijoux-catalog/internal/logger"
	"bijoux-catalog/internal/models"
	"bijoux-catalog/internal/storage"
	"bijoux-catalog/internal/upload"
)

type fakeStore struct {
	items map[uuid.UUID]models.MenuItem
}

var _ storage.MenuStore = (*fakeStore)(nil)

func newFakeStore() *fakeStore {
	return &fakeStore{items: map[uuid.UUID]models.MenuItem{}}
}

func (f *fakeStore) CreateMenuItem(_ context.Context, item *models.MenuItem) error {
	f.items[item.ID] = *item
	return nil
}

func (f *fakeStore) GetMenuItem(_ context.Context, id uuid.UUID) (*models.MenuItem, error) {
	item, ok := f.items[id]
	if !ok {
		return nil, storage.ErrNotFound
	}
	return &item, nil
}

func (f *fakeStore) ListMenuItems(_ context.Context, activeOnly bool) ([]models.MenuItem, error) {
	out := []models.MenuItem{}
	for _, item := range f.items {
		if activeOnly && !item.IsActive {
			continue
		}
		out = append(out, item)
	}
	return out, nil
}

func (f *fakeStore) UpdateMenuItem(_ context.Context, item *models.MenuItem) error {
	if _, ok := f.items[item.ID]; !ok {
		return storage.ErrNotFound
	}
	f.items[item.ID] = *item
	return nil
}

func (f *fakeStore) DeleteMenuItem(_ context.Context, id uuid.UUID) error {
	if _, ok := f.items[id]; !ok {
		return storage.ErrNotFound
	}
	delete(f.items, id)
	return nil
}

func newTestServer(t *testing.T) (*Server, *fakeStore) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	t.Chdir(t.TempDir())

	cfg := &models.Config{
		UploadPath: "./uploads",
		BaseURL:    "http://localhost:5000",
	}
	log := logger.New(logger.Options{Level: "error", Console: &bytes.Buffer{}})

	uploads, err := upload.NewService(cfg, log)
	require.NoError(t, err)

	store := newFakeStore()
	return NewServer(cfg, store, uploads, nil, log), store
}

func doJSON(t *testing.T, srv *Server, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	srv.router.ServeHTTP(w, req)
	return w
}

func validPayload() map[string]interface{} {
	return map[string]interface{}{
		"name": "Signature Rings",
		"slug": "signature-rings",
		"type": "category",
	}
}

func TestCreateMenuItem(t *testing.T) {
	srv, store := newTestServer(t)

	w := doJSON(t, srv, http.MethodPost, "/api/menu-items", validPayload())
	require.Equal(t, http.StatusCreated, w.Code)

	var got models.MenuItem
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	assert.True(t, got.IsActive)
	assert.Equal(t, 0, got.Order)
	assert.Len(t, store.items, 1)
}

func TestCreateMenuItemRejectsBadPayload(t *testing.T) {
	srv, store := newTestServer(t)

	payload := validPayload()
	payload["type"] = "banner"
	w := doJSON(t, srv, http.MethodPost, "/api/menu-items", payload)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Empty(t, store.items)
}

func TestGetMenuItem(t *testing.T) {
	srv, store := newTestServer(t)

	item := models.MenuItem{ID: uuid.New(), Name: "Earrings", Slug: "earrings", Type: "category", IsActive: true}
	store.items[item.ID] = item

	w := doJSON(t, srv, http.MethodGet, "/api/menu-items/"+item.ID.String(), nil)
	require.Equal(t, http.StatusOK, w.Code)

	var got models.MenuItem
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	assert.Equal(t, "Earrings", got.Name)
}

func TestGetMenuItemNotFound(t *testing.T) {
	srv, _ := newTestServer(t)

	w := doJSON(t, srv, http.MethodGet, "/api/menu-items/"+uuid.NewString(), nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestGetMenuItemBadID(t *testing.T) {
	srv, _ := newTestServer(t)

	w := doJSON(t, srv, http.MethodGet, "/api/menu-items/not-a-uuid", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestListMenuItemsActiveFilter(t *testing.T) {
	srv, store := newTestServer(t)

	active := models.MenuItem{ID: uuid.New(), Name: "A", Slug: "a", Type: "page", IsActive: true}
	hidden := models.MenuItem{ID: uuid.New(), Name: "B", Slug: "b", Type: "page", IsActive: false}
	store.items[active.ID] = active
	store.items[hidden.ID] = hidden

	w := doJSON(t, srv, http.MethodGet, "/api/menu-items?active=true", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var got []models.MenuItem
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	require.Len(t, got, 1)
	assert.Equal(t, "A", got[0].Name)
}

func TestUpdateMenuItem(t *testing.T) {
	srv, store := newTestServer(t)

	item := models.MenuItem{ID: uuid.New(), Name: "Old", Slug: "old", Type: "page", IsActive: true}
	store.items[item.ID] = item

	payload := validPayload()
	payload["name"] = "New"
	w := doJSON(t, srv, http.MethodPut, "/api/menu-items/"+item.ID.String(), payload)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "New", store.items[item.ID].Name)
}

func TestUpdateMenuItemNotFound(t *testing.T) {
	srv, _ := newTestServer(t)

	w := doJSON(t, srv, http.MethodPut, "/api/menu-items/"+uuid.NewString(), validPayload())
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestDeleteMenuItemRemovesImage(t *testing.T) {
	srv, store := newTestServer(t)

	imgPath := filepath.Join("uploads", "menu-items", "old.png")
	require.NoError(t, os.WriteFile(imgPath, []byte("png"), 0o644))

	rel := "uploads/menu-items/old.png"
	item := models.MenuItem{ID: uuid.New(), Name: "X", Slug: "x", Type: "page", Image: &rel}
	store.items[item.ID] = item

	w := doJSON(t, srv, http.MethodDelete, "/api/menu-items/"+item.ID.String(), nil)
	require.Equal(t, http.StatusNoContent, w.Code)

	assert.Empty(t, store.items)
	_, err := os.Stat(imgPath)
	assert.True(t, os.IsNotExist(err))
}

func multipartBody(t *testing.T, mimeType string, data []byte) (*bytes.Buffer, string) {
	t.Helper()
	buf := &bytes.Buffer{}
	w := multipart.NewWriter(buf)

	h := textproto.MIMEHeader{}
	h.Set("Content-Disposition", `form-data; name="image"; filename="ring.jpg"`)
	h.Set("Content-Type", mimeType)
	part, err := w.CreatePart(h)
	require.NoError(t, err)
	_, err = part.Write(data)
	require.NoError(t, err)
	require.NoError(t, w.Close())

	return buf, w.FormDataContentType()
}

func TestUploadImage(t *testing.T) {
	srv, _ := newTestServer(t)

	body, contentType := multipartBody(t, "image/jpeg", bytes.Repeat([]byte{1}, 1024))
	req := httptest.NewRequest(http.MethodPost, "/api/menu-items/image", body)
	req.Header.Set("Content-Type", contentType)
	w := httptest.NewRecorder()
	srv.router.ServeHTTP(w, req)

	require.Equal(t, http.StatusCreated, w.Code)

	var got struct {
		Path string `json:"path"`
		URL  string `json:"url"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	assert.Regexp(t, `^uploads/menu-items/[0-9a-f-]{36}\.jpg$`, got.Path)
	assert.Equal(t, "http://localhost:5000/"+got.Path, got.URL)

	_, err := os.Stat(filepath.FromSlash(got.Path))
	assert.NoError(t, err)
}

func TestUploadImageRejectsBadMime(t *testing.T) {
	srv, _ := newTestServer(t)

	body, contentType := multipartBody(t, "application/pdf", []byte("%PDF"))
	req := httptest.NewRequest(http.MethodPost, "/api/menu-items/image", body)
	req.Header.Set("Content-Type", contentType)
	w := httptest.NewRecorder()
	srv.router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestUploadImageRequiresFile(t *testing.T) {
	srv, _ := newTestServer(t)

	req := httptest.NewRequest(http.MethodPost, "/api/menu-items/image", nil)
	w := httptest.NewRecorder()
	srv.router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}
