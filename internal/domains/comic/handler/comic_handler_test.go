package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rlcurrall/collection-example/internal/domains/comic"
	"github.com/rlcurrall/collection-example/internal/shared/middleware"
	"github.com/rlcurrall/collection-example/pkg/cache"
	"github.com/rlcurrall/collection-example/pkg/token"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// stubService lets each test script the outcome of one or two calls.
type stubService struct {
	listFn    func(ctx context.Context, req comic.PageRequest) ([]comic.Comic, error)
	createFn  func(ctx context.Context, owner string, req comic.NewComicRequest) (*comic.Comic, error)
	getFn     func(ctx context.Context, id int64) (*comic.Comic, error)
	replaceFn func(ctx context.Context, id int64, owner string, req comic.ReplaceComicRequest) (*comic.Comic, error)
	updateFn  func(ctx context.Context, id int64, owner string, req comic.UpdateComicRequest) (*comic.Comic, error)
	deleteFn  func(ctx context.Context, id int64, owner string) error
}

func (s *stubService) List(ctx context.Context, req comic.PageRequest) ([]comic.Comic, error) {
	return s.listFn(ctx, req)
}

func (s *stubService) Create(ctx context.Context, owner string, req comic.NewComicRequest) (*comic.Comic, error) {
	return s.createFn(ctx, owner, req)
}

func (s *stubService) Get(ctx context.Context, id int64) (*comic.Comic, error) {
	return s.getFn(ctx, id)
}

func (s *stubService) Replace(ctx context.Context, id int64, owner string, req comic.ReplaceComicRequest) (*comic.Comic, error) {
	return s.replaceFn(ctx, id, owner, req)
}

func (s *stubService) Update(ctx context.Context, id int64, owner string, req comic.UpdateComicRequest) (*comic.Comic, error) {
	return s.updateFn(ctx, id, owner, req)
}

func (s *stubService) Delete(ctx context.Context, id int64, owner string) error {
	return s.deleteFn(ctx, id, owner)
}

// mapCache is an in-process cache.Cache for exercising the cache-aside path.
type mapCache struct {
	mu      sync.Mutex
	entries map[string][]byte
}

func newMapCache() *mapCache {
	return &mapCache{entries: make(map[string][]byte)}
}

func (m *mapCache) Get(_ context.Context, key string, dest any) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	raw, ok := m.entries[key]
	if !ok {
		return false, nil
	}
	return true, json.Unmarshal(raw, dest)
}

func (m *mapCache) Set(_ context.Context, key string, value any, _ time.Duration) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries[key] = raw
	return nil
}

func (m *mapCache) Delete(_ context.Context, keys ...string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, k := range keys {
		delete(m.entries, k)
	}
	return nil
}

func (m *mapCache) Ping(context.Context) error { return nil }

const testSecret = "handler-test-secret"

func newRouter(t *testing.T, svc comic.Service, store cache.Cache) *gin.Engine {
	t.Helper()

	if store == nil {
		store = cache.NewNoop()
	}
	h := NewHandler(svc, store)

	r := gin.New()
	auth := r.Group("/api/v1", middleware.RequireAuth(token.NewManager(testSecret)))
	auth.GET("/comics", h.ListComics)
	auth.POST("/comics", h.CreateComic)
	auth.GET("/comics/:id", h.GetComic)
	auth.PUT("/comics/:id", h.ReplaceComic)
	auth.PATCH("/comics/:id", h.UpdateComic)
	auth.DELETE("/comics/:id", h.DeleteComic)
	return r
}

func bearerFor(t *testing.T, username string) string {
	t.Helper()

	signed, err := token.NewManager(testSecret).Sign(token.Identity{Username: username})
	require.NoError(t, err)
	return "Bearer " + signed
}

func doRequest(t *testing.T, r *gin.Engine, method, target, authz, body string) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(method, target, strings.NewReader(body))
	if authz != "" {
		req.Header.Set("Authorization", authz)
	}
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func errorMessage(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()

	var body struct {
		Message string `json:"message"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body.Message
}

func sampleComic(id int64, owner string, price float64) comic.Comic {
	return comic.Comic{
		ID:            id,
		Username:      owner,
		Title:         "Batman #52 (2011)",
		IssueNumber:   "52",
		MainCharacter: "Batman",
		Genre:         "superhero",
		CoverYear:     comic.NewDate(2011, time.February, 3),
		Publisher:     "DC",
		Grade:         9.2,
		Price:         price,
		ImageURL:      "https://covers.example.com/batman-52.jpg",
	}
}

func validBody() string {
	return `{
		"title": "Batman #52 (2011)",
		"issue_number": "52",
		"main_character": "Batman",
		"genre": "superhero",
		"cover_year": "2011-02-03",
		"publisher": "DC",
		"grade": 9.2,
		"price": 32.21,
		"image_url": "https://covers.example.com/batman-52.jpg"
	}`
}

func TestListComics_DefaultsAndQueryParams(t *testing.T) {
	var seen comic.PageRequest
	svc := &stubService{
		listFn: func(_ context.Context, req comic.PageRequest) ([]comic.Comic, error) {
			seen = req
			return []comic.Comic{sampleComic(1, "alice", 32.21)}, nil
		},
	}
	r := newRouter(t, svc, nil)

	w := doRequest(t, r, http.MethodGet, "/api/v1/comics", bearerFor(t, "alice"), "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 1, seen.Page)
	assert.Equal(t, comic.OrderNone, seen.OrderPrice)

	w = doRequest(t, r, http.MethodGet,
		"/api/v1/comics?page=3&order%5Bprice%5D=desc&username=alice&title=bat",
		bearerFor(t, "alice"), "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 3, seen.Page)
	assert.Equal(t, comic.OrderDesc, seen.OrderPrice)
	assert.Equal(t, "alice", seen.Username)
	assert.Equal(t, "bat", seen.Title)
}

func TestListComics_InvalidOrder(t *testing.T) {
	svc := &stubService{
		listFn: func(context.Context, comic.PageRequest) ([]comic.Comic, error) {
			t.Fatal("service must not be called")
			return nil, nil
		},
	}
	r := newRouter(t, svc, nil)

	w := doRequest(t, r, http.MethodGet, "/api/v1/comics?order%5Bprice%5D=sideways", bearerFor(t, "alice"), "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "order[price] must be asc or desc", errorMessage(t, w))
}

func TestCreateComic_OwnerFromToken(t *testing.T) {
	var gotOwner string
	svc := &stubService{
		createFn: func(_ context.Context, owner string, req comic.NewComicRequest) (*comic.Comic, error) {
			gotOwner = owner
			c := sampleComic(7, owner, req.Price)
			return &c, nil
		},
	}
	r := newRouter(t, svc, nil)

	// Body claims a different username; the token wins.
	body := strings.Replace(validBody(), `"title"`, `"username": "mallory", "title"`, 1)
	w := doRequest(t, r, http.MethodPost, "/api/v1/comics", bearerFor(t, "alice"), body)

	require.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, "alice", gotOwner)

	var created comic.Comic
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	assert.Equal(t, int64(7), created.ID)
	assert.Equal(t, "alice", created.Username)
}

func TestCreateComic_InvalidBody(t *testing.T) {
	svc := &stubService{
		createFn: func(context.Context, string, comic.NewComicRequest) (*comic.Comic, error) {
			t.Fatal("service must not be called")
			return nil, nil
		},
	}
	r := newRouter(t, svc, nil)

	tests := []struct {
		name string
		body string
	}{
		{"malformed json", `{"title": `},
		{"missing fields", `{"title": "x"}`},
		{"bad date", strings.Replace(validBody(), "2011-02-03", "02/03/2011", 1)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := doRequest(t, r, http.MethodPost, "/api/v1/comics", bearerFor(t, "alice"), tt.body)
			assert.Equal(t, http.StatusBadRequest, w.Code)
		})
	}
}

func TestGetComic_NotFound(t *testing.T) {
	svc := &stubService{
		getFn: func(context.Context, int64) (*comic.Comic, error) {
			return nil, comic.ErrComicNotFound
		},
	}
	r := newRouter(t, svc, nil)

	w := doRequest(t, r, http.MethodGet, "/api/v1/comics/999", bearerFor(t, "alice"), "")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "Comic not found", errorMessage(t, w))
}

func TestGetComic_InvalidID(t *testing.T) {
	r := newRouter(t, &stubService{}, nil)

	w := doRequest(t, r, http.MethodGet, "/api/v1/comics/abc", bearerFor(t, "alice"), "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "invalid comic id", errorMessage(t, w))
}

func TestGetComic_CacheAside(t *testing.T) {
	calls := 0
	svc := &stubService{
		getFn: func(_ context.Context, id int64) (*comic.Comic, error) {
			calls++
			c := sampleComic(id, "alice", 32.21)
			return &c, nil
		},
	}
	store := newMapCache()
	r := newRouter(t, svc, store)

	for i := 0; i < 3; i++ {
		w := doRequest(t, r, http.MethodGet, "/api/v1/comics/5", bearerFor(t, "alice"), "")
		require.Equal(t, http.StatusOK, w.Code)
	}
	assert.Equal(t, 1, calls, "second and third reads must hit the cache")
}

func TestUpdateComic_CacheInvalidation(t *testing.T) {
	price := 32.21
	svc := &stubService{
		getFn: func(_ context.Context, id int64) (*comic.Comic, error) {
			c := sampleComic(id, "alice", price)
			return &c, nil
		},
		updateFn: func(_ context.Context, id int64, _ string, req comic.UpdateComicRequest) (*comic.Comic, error) {
			price = *req.Price
			c := sampleComic(id, "alice", price)
			return &c, nil
		},
	}
	r := newRouter(t, svc, newMapCache())

	w := doRequest(t, r, http.MethodGet, "/api/v1/comics/5", bearerFor(t, "alice"), "")
	require.Equal(t, http.StatusOK, w.Code)

	w = doRequest(t, r, http.MethodPatch, "/api/v1/comics/5", bearerFor(t, "alice"), `{"price": 40}`)
	require.Equal(t, http.StatusOK, w.Code)

	// A fresh read must see the new price, not the cached detail.
	w = doRequest(t, r, http.MethodGet, "/api/v1/comics/5", bearerFor(t, "alice"), "")
	require.Equal(t, http.StatusOK, w.Code)

	var got comic.Comic
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	assert.Equal(t, 40.0, got.Price)
}

func TestMutations_NotOwner(t *testing.T) {
	svc := &stubService{
		replaceFn: func(context.Context, int64, string, comic.ReplaceComicRequest) (*comic.Comic, error) {
			return nil, comic.ErrNotOwner
		},
		updateFn: func(context.Context, int64, string, comic.UpdateComicRequest) (*comic.Comic, error) {
			return nil, comic.ErrNotOwner
		},
		deleteFn: func(context.Context, int64, string) error {
			return comic.ErrNotOwner
		},
	}
	r := newRouter(t, svc, nil)

	tests := []struct {
		method string
		body   string
	}{
		{http.MethodPut, validBody()},
		{http.MethodPatch, `{"price": 40}`},
		{http.MethodDelete, ""},
	}

	for _, tt := range tests {
		t.Run(tt.method, func(t *testing.T) {
			w := doRequest(t, r, tt.method, "/api/v1/comics/1", bearerFor(t, "bob"), tt.body)
			assert.Equal(t, http.StatusForbidden, w.Code)
			assert.Equal(t, "You do not own this item", errorMessage(t, w))
		})
	}
}

func TestDeleteComic_NoContent(t *testing.T) {
	var gotID int64
	var gotOwner string
	svc := &stubService{
		deleteFn: func(_ context.Context, id int64, owner string) error {
			gotID, gotOwner = id, owner
			return nil
		},
	}
	r := newRouter(t, svc, nil)

	w := doRequest(t, r, http.MethodDelete, "/api/v1/comics/12", bearerFor(t, "alice"), "")
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Empty(t, w.Body.Bytes())
	assert.Equal(t, int64(12), gotID)
	assert.Equal(t, "alice", gotOwner)
}

func TestStoreFailure_InternalError(t *testing.T) {
	svc := &stubService{
		listFn: func(context.Context, comic.PageRequest) ([]comic.Comic, error) {
			return nil, errors.New("connection refused")
		},
	}
	r := newRouter(t, svc, nil)

	w := doRequest(t, r, http.MethodGet, "/api/v1/comics", bearerFor(t, "alice"), "")
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, "connection refused", errorMessage(t, w))
}

func TestAuth_Rejections(t *testing.T) {
	r := newRouter(t, &stubService{}, nil)

	tests := []struct {
		name  string
		authz string
		want  string
	}{
		{"no header", "", "missing authorization header"},
		{"wrong scheme", "Basic abc123", "invalid authorization header format"},
		{"garbage token", "Bearer not.a.token", "invalid token"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := doRequest(t, r, http.MethodGet, "/api/v1/comics", tt.authz, "")
			assert.Equal(t, http.StatusUnauthorized, w.Code)
			assert.Equal(t, tt.want, errorMessage(t, w))
		})
	}
}
