package search

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oksasatya/go-account-service/internal/domain/entity"
)

type recordedRequest struct {
	Method string
	Path   string
	Body   map[string]any
}

// fakeES answers like an Elasticsearch node and records every request.
func fakeES(t *testing.T, status int, body string) (*UserIndex, func() []recordedRequest) {
	t.Helper()
	var (
		mu   sync.Mutex
		reqs []recordedRequest
	)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw, _ := io.ReadAll(r.Body)
		rec := recordedRequest{Method: r.Method, Path: r.URL.Path}
		if len(raw) > 0 {
			_ = json.Unmarshal(raw, &rec.Body)
		}
		mu.Lock()
		reqs = append(reqs, rec)
		mu.Unlock()

		w.Header().Set("X-Elastic-Product", "Elasticsearch")
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = io.WriteString(w, body)
	}))
	t.Cleanup(srv.Close)

	es, err := NewClient(ClientOptions{Addrs: []string{srv.URL}})
	require.NoError(t, err)
	return NewUserIndex(es, "users"), func() []recordedRequest {
		mu.Lock()
		defer mu.Unlock()
		return append([]recordedRequest(nil), reqs...)
	}
}

func TestUserIndex_IndexOmitsDigest(t *testing.T) {
	idx, requests := fakeES(t, http.StatusCreated, `{"result":"created"}`)

	u := &entity.User{ID: 7, Username: "alice", FirstName: "A", LastName: "B", PasswordHash: "secret-digest", CreatedAt: time.Now()}
	require.NoError(t, idx.Index(context.Background(), u))

	reqs := requests()
	require.Len(t, reqs, 1)
	assert.Equal(t, http.MethodPut, reqs[0].Method)
	assert.Equal(t, "/users/_doc/7", reqs[0].Path)
	assert.Equal(t, "alice", reqs[0].Body["username"])
	assert.NotContains(t, reqs[0].Body, "password_hash")
	for _, v := range reqs[0].Body {
		assert.NotEqual(t, "secret-digest", v)
	}
}

func TestUserIndex_IndexError(t *testing.T) {
	idx, _ := fakeES(t, http.StatusInternalServerError, `{"error":"boom"}`)
	err := idx.Index(context.Background(), &entity.User{ID: 1, Username: "a"})
	assert.Error(t, err)
}

func TestUserIndex_RemoveToleratesMissing(t *testing.T) {
	idx, requests := fakeES(t, http.StatusNotFound, `{"result":"not_found"}`)
	require.NoError(t, idx.Remove(context.Background(), 9))

	reqs := requests()
	require.Len(t, reqs, 1)
	assert.Equal(t, http.MethodDelete, reqs[0].Method)
	assert.Equal(t, "/users/_doc/9", reqs[0].Path)
}

func TestUserIndex_Search(t *testing.T) {
	idx, requests := fakeES(t, http.StatusOK, `{
		"hits": {"hits": [
			{"_source": {"id": 1, "username": "alice", "first_name": "Alice", "last_name": "Liddell"}},
			{"_source": {"id": 2, "username": "alicia", "first_name": "Alicia", "last_name": "Keys"}}
		]}
	}`)

	hits, err := idx.Search(context.Background(), "ali", 5)
	require.NoError(t, err)
	require.Len(t, hits, 2)
	assert.Equal(t, int64(1), hits[0].ID)
	assert.Equal(t, "alicia", hits[1].Username)

	reqs := requests()
	require.Len(t, reqs, 1)
	assert.Equal(t, "/users/_search", reqs[0].Path)
	assert.EqualValues(t, 5, reqs[0].Body["size"])
	mm := reqs[0].Body["query"].(map[string]any)["multi_match"].(map[string]any)
	assert.Equal(t, "ali", mm["query"])
	assert.Equal(t, []any{"username^2", "first_name", "last_name"}, mm["fields"])
}
