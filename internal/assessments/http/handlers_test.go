package http

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/recruitbase/assessment-api/internal/api/http/middleware"
	"github.com/recruitbase/assessment-api/internal/assessments/domain"
	"github.com/recruitbase/assessment-api/internal/assessments/service"
	"github.com/recruitbase/assessment-api/internal/assessments/validator"
)

const testAPIKey = "test-key"

type memStore struct {
	mu      sync.Mutex
	seq     int
	records map[int]domain.Assessment
}

func newMemStore() *memStore {
	return &memStore{records: make(map[int]domain.Assessment)}
}

func (m *memStore) GetByID(_ context.Context, id int) (*domain.Assessment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	a, ok := m.records[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &a, nil
}

func (m *memStore) GetPaged(_ context.Context, f domain.Filter) (domain.PagedResult[domain.Assessment], error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	all := make([]domain.Assessment, 0, len(m.records))
	for _, a := range m.records {
		all = append(all, a)
	}
	return domain.ApplyFilter(all, f), nil
}

func (m *memStore) Create(_ context.Context, a domain.Assessment) (*domain.Assessment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.seq++
	a.ID = m.seq
	m.records[a.ID] = a
	return &a, nil
}

func (m *memStore) Update(_ context.Context, a domain.Assessment) (*domain.Assessment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.records[a.ID]; !ok {
		return nil, domain.ErrNotFound
	}
	m.records[a.ID] = a
	return &a, nil
}

func (m *memStore) Delete(_ context.Context, id int) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.records[id]; !ok {
		return false, nil
	}
	delete(m.records, id)
	return true, nil
}

func (m *memStore) Exists(_ context.Context, id int) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.records[id]
	return ok, nil
}

func (m *memStore) CloseExpired(_ context.Context, now time.Time) (int64, error) {
	return 0, nil
}

func (m *memStore) count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.records)
}

func newTestRouter(t *testing.T) (*gin.Engine, *memStore) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	store := newMemStore()
	svc := service.NewAssessmentService(store, nil, zap.NewNop())

	r := gin.New()
	group := r.Group("/api/v1/assessments", middleware.APIKeyMiddleware(testAPIKey))
	New(svc, validator.New(), zap.NewNop()).Register(group)
	return r, store
}

func doRequest(r *gin.Engine, method, path string, body any) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("X-API-Key", testAPIKey)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func validBody() map[string]any {
	return map[string]any{
		"title":        "Backend Engineer",
		"description":  "Builds services",
		"location":     "Lima, Peru",
		"status":       "Open",
		"recruiterId":  1,
		"departmentId": 2,
		"budget":       50000,
	}
}

func seed(t *testing.T, r *gin.Engine, n int, status string) {
	t.Helper()
	for i := 0; i < n; i++ {
		body := validBody()
		body["status"] = status
		body["title"] = fmt.Sprintf("Role %s %d", status, i)
		w := doRequest(r, http.MethodPost, "/api/v1/assessments", body)
		require.Equal(t, http.StatusCreated, w.Code)
	}
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	return out
}

func TestAPIKeyGate(t *testing.T) {
	r, _ := newTestRouter(t)

	t.Run("missing key is rejected", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/v1/assessments", nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Equal(t, "API Key missing or invalid", decodeBody(t, w)["message"])
	})

	t.Run("wrong key is rejected", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/v1/assessments", nil)
		req.Header.Set("X-API-Key", "wrong")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("bearer token is accepted", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/v1/assessments", nil)
		req.Header.Set("Authorization", "Bearer "+testAPIKey)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
	})
}

func TestList(t *testing.T) {
	r, _ := newTestRouter(t)
	seed(t, r, 15, "Draft")
	seed(t, r, 5, "Open")

	t.Run("filtered first page", func(t *testing.T) {
		w := doRequest(r, http.MethodGet, "/api/v1/assessments?status=Draft&pageSize=10", nil)
		require.Equal(t, http.StatusOK, w.Code)

		body := decodeBody(t, w)
		assert.Len(t, body["items"], 10)
		assert.EqualValues(t, 15, body["totalCount"])
		assert.EqualValues(t, 2, body["totalPages"])
		assert.Equal(t, true, body["hasNextPage"])
		assert.Equal(t, false, body["hasPreviousPage"])
	})

	t.Run("defaults apply when no parameters are sent", func(t *testing.T) {
		w := doRequest(r, http.MethodGet, "/api/v1/assessments", nil)
		require.Equal(t, http.StatusOK, w.Code)

		body := decodeBody(t, w)
		assert.EqualValues(t, 1, body["pageNumber"])
		assert.EqualValues(t, 10, body["pageSize"])
		assert.EqualValues(t, 20, body["totalCount"])
	})

	t.Run("invalid page size fails validation", func(t *testing.T) {
		w := doRequest(r, http.MethodGet, "/api/v1/assessments?pageSize=0", nil)
		require.Equal(t, http.StatusBadRequest, w.Code)

		body := decodeBody(t, w)
		assert.Equal(t, "Validation failed", body["message"])
		assert.Contains(t, body["errors"], "Page size must be greater than 0")
	})

	t.Run("inverted budget range fails validation", func(t *testing.T) {
		w := doRequest(r, http.MethodGet, "/api/v1/assessments?minBudget=100&maxBudget=50", nil)
		require.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, decodeBody(t, w)["errors"],
			"Maximum budget must be greater than or equal to minimum budget")
	})
}

func TestCreate(t *testing.T) {
	r, store := newTestRouter(t)

	t.Run("valid body creates the record", func(t *testing.T) {
		w := doRequest(r, http.MethodPost, "/api/v1/assessments", validBody())
		require.Equal(t, http.StatusCreated, w.Code)

		body := decodeBody(t, w)
		assert.EqualValues(t, 1, body["id"])
		assert.Equal(t, "/api/v1/assessments/1", w.Header().Get("Location"))
		assert.NotEmpty(t, body["createdDate"])
	})

	t.Run("missing status defaults to Draft", func(t *testing.T) {
		body := validBody()
		delete(body, "status")
		w := doRequest(r, http.MethodPost, "/api/v1/assessments", body)
		require.Equal(t, http.StatusCreated, w.Code)
		assert.Equal(t, "Draft", decodeBody(t, w)["status"])
	})

	t.Run("null closing date is accepted", func(t *testing.T) {
		body := validBody()
		body["closingDate"] = nil
		w := doRequest(r, http.MethodPost, "/api/v1/assessments", body)
		assert.Equal(t, http.StatusCreated, w.Code)
	})

	t.Run("past closing date is rejected", func(t *testing.T) {
		body := validBody()
		body["closingDate"] = time.Now().UTC().Add(-24 * time.Hour).Format(time.RFC3339)
		w := doRequest(r, http.MethodPost, "/api/v1/assessments", body)

		require.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, decodeBody(t, w)["errors"], "Closing date must be in the future")
	})

	t.Run("invalid body never reaches the store", func(t *testing.T) {
		before := store.count()

		body := validBody()
		body["budget"] = 0
		w := doRequest(r, http.MethodPost, "/api/v1/assessments", body)

		require.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, decodeBody(t, w)["errors"], "Budget must be greater than 0")
		assert.Equal(t, before, store.count())
	})

	t.Run("malformed json is a bad request", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/api/v1/assessments",
			bytes.NewBufferString("{not json"))
		req.Header.Set("X-API-Key", testAPIKey)
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "Invalid request body", decodeBody(t, w)["message"])
	})
}

func TestGet(t *testing.T) {
	r, _ := newTestRouter(t)
	seed(t, r, 1, "Open")

	t.Run("existing id", func(t *testing.T) {
		w := doRequest(r, http.MethodGet, "/api/v1/assessments/1", nil)
		require.Equal(t, http.StatusOK, w.Code)
		assert.EqualValues(t, 1, decodeBody(t, w)["id"])
	})

	t.Run("missing id", func(t *testing.T) {
		w := doRequest(r, http.MethodGet, "/api/v1/assessments/42", nil)
		require.Equal(t, http.StatusNotFound, w.Code)
		assert.Equal(t, "Assessment with ID 42 not found", decodeBody(t, w)["message"])
	})

	t.Run("non-numeric id", func(t *testing.T) {
		w := doRequest(r, http.MethodGet, "/api/v1/assessments/abc", nil)
		require.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "Invalid assessment ID", decodeBody(t, w)["message"])
	})

	t.Run("non-positive id", func(t *testing.T) {
		w := doRequest(r, http.MethodGet, "/api/v1/assessments/0", nil)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestHead(t *testing.T) {
	r, _ := newTestRouter(t)
	seed(t, r, 1, "Open")

	w := doRequest(r, http.MethodHead, "/api/v1/assessments/1", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = doRequest(r, http.MethodHead, "/api/v1/assessments/9", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestUpdate(t *testing.T) {
	r, _ := newTestRouter(t)
	seed(t, r, 1, "Open")

	t.Run("overlays the stored record", func(t *testing.T) {
		body := validBody()
		body["title"] = "Staff Engineer"
		body["status"] = "Closed"
		w := doRequest(r, http.MethodPut, "/api/v1/assessments/1", body)

		require.Equal(t, http.StatusOK, w.Code)
		got := decodeBody(t, w)
		assert.Equal(t, "Staff Engineer", got["title"])
		assert.Equal(t, "Closed", got["status"])
	})

	t.Run("missing id", func(t *testing.T) {
		w := doRequest(r, http.MethodPut, "/api/v1/assessments/42", validBody())
		require.Equal(t, http.StatusNotFound, w.Code)
		assert.Equal(t, "Assessment with ID 42 not found", decodeBody(t, w)["message"])
	})

	t.Run("invalid body", func(t *testing.T) {
		body := validBody()
		body["title"] = ""
		w := doRequest(r, http.MethodPut, "/api/v1/assessments/1", body)

		require.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, decodeBody(t, w)["errors"], "Title is required")
	})
}

func TestDelete(t *testing.T) {
	r, _ := newTestRouter(t)
	seed(t, r, 1, "Open")

	w := doRequest(r, http.MethodDelete, "/api/v1/assessments/1", nil)
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Empty(t, w.Body.Bytes())

	t.Run("deleting again reports not found", func(t *testing.T) {
		w := doRequest(r, http.MethodDelete, "/api/v1/assessments/1", nil)
		require.Equal(t, http.StatusNotFound, w.Code)
		assert.Equal(t, "Assessment with ID 1 not found", decodeBody(t, w)["message"])
	})
}
