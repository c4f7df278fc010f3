package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/Insane-9/Thinkboard-X/internal/dto"
	"github.com/Insane-9/Thinkboard-X/internal/repo"
	"github.com/Insane-9/Thinkboard-X/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	svc := service.NewNoteService(repo.NewMemoryNoteRepo(), nil)
	h := NewNoteHandler(svc, zap.NewNop())

	r := gin.New()
	api := r.Group("/api")
	api.GET("/notes", h.List)
	api.POST("/notes", h.Create)
	api.GET("/notes/:id", h.GetByID)
	api.PUT("/notes/:id", h.Update)
	api.DELETE("/notes/:id", h.Delete)
	return r
}

func do(r *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decodeNote(t *testing.T, w *httptest.ResponseRecorder) dto.NoteResponse {
	t.Helper()
	var n dto.NoteResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &n))
	return n
}

func TestNoteLifecycle(t *testing.T) {
	r := newTestRouter()

	// create
	w := do(r, http.MethodPost, "/api/notes", `{"title":"A","content":"B"}`)
	require.Equal(t, http.StatusCreated, w.Code)
	created := decodeNote(t, w)
	assert.NotEqual(t, uuid.UUID{}, created.ID)
	assert.Equal(t, "A", created.Title)
	assert.Equal(t, "B", created.Content)
	assert.True(t, created.CreatedAt.Equal(created.UpdatedAt))

	// read back
	w = do(r, http.MethodGet, "/api/notes/"+created.ID.String(), "")
	require.Equal(t, http.StatusOK, w.Code)
	got := decodeNote(t, w)
	assert.Equal(t, created, got)

	// replace
	time.Sleep(5 * time.Millisecond)
	w = do(r, http.MethodPut, "/api/notes/"+created.ID.String(), `{"title":"A2","content":"B2"}`)
	require.Equal(t, http.StatusOK, w.Code)
	updated := decodeNote(t, w)
	assert.Equal(t, created.ID, updated.ID)
	assert.Equal(t, "A2", updated.Title)
	assert.Equal(t, "B2", updated.Content)
	assert.True(t, updated.CreatedAt.Equal(created.CreatedAt))
	assert.True(t, updated.UpdatedAt.After(created.UpdatedAt))

	// delete returns the removed note
	w = do(r, http.MethodDelete, "/api/notes/"+created.ID.String(), "")
	require.Equal(t, http.StatusOK, w.Code)
	deleted := decodeNote(t, w)
	assert.Equal(t, created.ID, deleted.ID)

	// and it is gone
	w = do(r, http.MethodGet, "/api/notes/"+created.ID.String(), "")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.JSONEq(t, `{"message":"Note not found"}`, w.Body.String())
}

func TestListReturnsArrayNewestFirst(t *testing.T) {
	r := newTestRouter()

	for _, title := range []string{"one", "two", "three"} {
		w := do(r, http.MethodPost, "/api/notes", `{"title":"`+title+`","content":"c"}`)
		require.Equal(t, http.StatusCreated, w.Code)
		time.Sleep(2 * time.Millisecond)
	}

	w := do(r, http.MethodGet, "/api/notes", "")
	require.Equal(t, http.StatusOK, w.Code)

	var list []dto.NoteResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &list))
	require.Len(t, list, 3)
	assert.Equal(t, "three", list[0].Title)
	assert.Equal(t, "two", list[1].Title)
	assert.Equal(t, "one", list[2].Title)
}

func TestCreateMissingFieldsIsServerError(t *testing.T) {
	// A missing field surfaces as 500, not 400. The API has always
	// reported it that way and clients key off that status.
	r := newTestRouter()

	for _, body := range []string{
		`{"content":"B"}`,
		`{"title":"A"}`,
		`{"title":"","content":""}`,
	} {
		w := do(r, http.MethodPost, "/api/notes", body)
		assert.Equal(t, http.StatusInternalServerError, w.Code, "body %s", body)
		assert.JSONEq(t, `{"message":"Internal Server Error"}`, w.Body.String())
	}
}

func TestMalformedBodyIsBadRequest(t *testing.T) {
	r := newTestRouter()

	w := do(r, http.MethodPost, "/api/notes", `{"title":`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	id := uuid.New().String()
	w = do(r, http.MethodPut, "/api/notes/"+id, `not json`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestUnknownIDIsNotFoundEverywhere(t *testing.T) {
	r := newTestRouter()
	id := uuid.New().String()

	for _, tc := range []struct{ method, path, body string }{
		{http.MethodGet, "/api/notes/" + id, ""},
		{http.MethodPut, "/api/notes/" + id, `{"title":"t","content":"c"}`},
		{http.MethodDelete, "/api/notes/" + id, ""},
	} {
		w := do(r, tc.method, tc.path, tc.body)
		assert.Equal(t, http.StatusNotFound, w.Code, "%s %s", tc.method, tc.path)
		assert.JSONEq(t, `{"message":"Note not found"}`, w.Body.String())
	}
}

func TestMalformedIDIsNotFound(t *testing.T) {
	// A malformed id and a missing note are the same thing to callers.
	r := newTestRouter()

	w := do(r, http.MethodGet, "/api/notes/not-a-uuid", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.JSONEq(t, `{"message":"Note not found"}`, w.Body.String())
}

func TestUpdateWithBlankFieldsSucceeds(t *testing.T) {
	r := newTestRouter()

	w := do(r, http.MethodPost, "/api/notes", `{"title":"A","content":"B"}`)
	require.Equal(t, http.StatusCreated, w.Code)
	created := decodeNote(t, w)

	w = do(r, http.MethodPut, "/api/notes/"+created.ID.String(), `{"title":"","content":""}`)
	require.Equal(t, http.StatusOK, w.Code)
	updated := decodeNote(t, w)
	assert.Empty(t, updated.Title)
	assert.Empty(t, updated.Content)
}
