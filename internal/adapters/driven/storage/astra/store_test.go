package astra

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/tramites/internal/core/domain"
)

const testToken = "AstraCS:test"

// fakeDataAPI is a minimal Data API: one keyspace, pages of two documents.
type fakeDataAPI struct {
	mu          sync.Mutex
	collections map[string][]map[string]any
	order       []string
	finds       int
	nextID      int
}

func newFakeDataAPI() *fakeDataAPI {
	return &fakeDataAPI{collections: make(map[string][]map[string]any)}
}

func (f *fakeDataAPI) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if r.Header.Get("Token") != testToken {
		w.WriteHeader(http.StatusUnauthorized)
		_ = json.NewEncoder(w).Encode(map[string]any{
			"errors": []map[string]any{{"message": "bad token", "errorCode": "UNAUTHENTICATED_REQUEST"}},
		})
		return
	}

	parts := strings.Split(strings.TrimPrefix(r.URL.Path, "/api/json/v1/"), "/")
	var cmd map[string]map[string]any
	if err := json.NewDecoder(r.Body).Decode(&cmd); err != nil {
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	var resp any
	switch {
	case cmd["findCollections"] != nil:
		resp = map[string]any{"status": map[string]any{"collections": f.order}}

	case cmd["createCollection"] != nil:
		name := cmd["createCollection"]["name"].(string)
		if _, ok := f.collections[name]; !ok {
			f.collections[name] = nil
			f.order = append(f.order, name)
		}
		resp = map[string]any{"status": map[string]any{"ok": 1}}

	case cmd["insertOne"] != nil:
		name := parts[1]
		docs, ok := f.collections[name]
		if !ok {
			resp = notExist(name)
			break
		}
		doc := cmd["insertOne"]["document"].(map[string]any)
		if _, has := doc["_id"]; !has {
			f.nextID++
			doc["_id"] = "gen-" + strconv.Itoa(f.nextID)
		}
		for _, d := range docs {
			if d["_id"] == doc["_id"] {
				resp = map[string]any{"errors": []map[string]any{{
					"message": "duplicate", "errorCode": codeDocumentAlreadyExists,
				}}}
				break
			}
		}
		if resp != nil {
			break
		}
		f.collections[name] = append(docs, doc)
		resp = map[string]any{"status": map[string]any{"insertedIds": []any{doc["_id"]}}}

	case cmd["find"] != nil:
		f.finds++
		name := parts[1]
		docs, ok := f.collections[name]
		if !ok {
			resp = notExist(name)
			break
		}
		start := 0
		if opts, ok := cmd["find"]["options"].(map[string]any); ok {
			start, _ = strconv.Atoi(opts["pageState"].(string))
		}
		end := min(start+2, len(docs))
		data := map[string]any{"documents": docs[start:end], "nextPageState": nil}
		if end < len(docs) {
			data["nextPageState"] = strconv.Itoa(end)
		}
		resp = map[string]any{"data": data}

	default:
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	_ = json.NewEncoder(w).Encode(resp)
}

func notExist(name string) map[string]any {
	return map[string]any{"errors": []map[string]any{{
		"message":   fmt.Sprintf("Collection does not exist, collection name: %s", name),
		"errorCode": codeCollectionNotExist,
	}}}
}

func setupTestStore(t *testing.T) (*Store, *fakeDataAPI) {
	t.Helper()
	api := newFakeDataAPI()
	server := httptest.NewServer(api)
	t.Cleanup(server.Close)

	store, err := NewStore(Config{Endpoint: server.URL + "/", Token: testToken})
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	return store, api
}

func TestNewStore_RequiresEndpointAndToken(t *testing.T) {
	_, err := NewStore(Config{Token: testToken})
	assert.ErrorIs(t, err, domain.ErrNotConfigured)

	_, err = NewStore(Config{Endpoint: "https://db.example"})
	assert.ErrorIs(t, err, domain.ErrNotConfigured)

	store, err := NewStore(Config{Endpoint: "https://db.example", Token: testToken})
	require.NoError(t, err)
	assert.Equal(t, DefaultKeyspace, store.keyspace)
}

func TestStore_Collections(t *testing.T) {
	store, _ := setupTestStore(t)
	ctx := context.Background()

	names, err := store.ListCollections(ctx)
	require.NoError(t, err)
	assert.Empty(t, names)

	require.NoError(t, store.CreateCollection(ctx, "tramites_page0"))
	require.NoError(t, store.CreateCollection(ctx, "tramites_page0"))

	names, err = store.ListCollections(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"tramites_page0"}, names)
}

func TestStore_InsertOne(t *testing.T) {
	store, _ := setupTestStore(t)
	ctx := context.Background()
	require.NoError(t, store.CreateCollection(ctx, "c"))

	id, err := store.InsertOne(ctx, "c", domain.Document{"nombre": "Permiso"})
	require.NoError(t, err)
	assert.Equal(t, "gen-1", id)

	id, err = store.InsertOne(ctx, "c", domain.Document{"_id": "t-9", "nombre": "Licencia"})
	require.NoError(t, err)
	assert.Equal(t, "t-9", id)

	_, err = store.InsertOne(ctx, "c", domain.Document{"_id": "t-9"})
	assert.ErrorIs(t, err, domain.ErrAlreadyExists)
}

func TestStore_MissingCollection(t *testing.T) {
	store, _ := setupTestStore(t)
	ctx := context.Background()

	_, err := store.InsertOne(ctx, "missing", domain.Document{"nombre": "x"})
	require.Error(t, err)
	assert.True(t, IsNotFound(err))
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.Contains(t, err.Error(), codeCollectionNotExist)

	_, err = store.Find(ctx, "missing")
	assert.True(t, IsNotFound(err))
}

func TestStore_FindFollowsPageState(t *testing.T) {
	store, api := setupTestStore(t)
	ctx := context.Background()
	require.NoError(t, store.CreateCollection(ctx, "c"))

	for i := 0; i < 5; i++ {
		_, err := store.InsertOne(ctx, "c", domain.Document{"n": i})
		require.NoError(t, err)
	}

	docs, err := store.Find(ctx, "c")
	require.NoError(t, err)
	require.Len(t, docs, 5)
	assert.Equal(t, 3, api.finds)
	assert.Equal(t, json.Number("0"), docs[0]["n"])
	assert.Equal(t, json.Number("4"), docs[4]["n"])
}

func TestStore_FindEmpty(t *testing.T) {
	store, _ := setupTestStore(t)
	ctx := context.Background()
	require.NoError(t, store.CreateCollection(ctx, "c"))

	docs, err := store.Find(ctx, "c")
	require.NoError(t, err)
	assert.Empty(t, docs)
}

func TestStore_BadToken(t *testing.T) {
	api := newFakeDataAPI()
	server := httptest.NewServer(api)
	defer server.Close()

	store, err := NewStore(Config{Endpoint: server.URL, Token: "wrong"})
	require.NoError(t, err)

	_, err = store.ListCollections(context.Background())
	require.Error(t, err)
	assert.True(t, IsUnauthorized(err))
	assert.False(t, IsNotFound(err))
}

func TestAPIError_Error(t *testing.T) {
	err := &APIError{StatusCode: http.StatusBadGateway, Command: "find"}
	assert.Equal(t, "astra: find failed: 502 Bad Gateway", err.Error())

	err = &APIError{StatusCode: 200, Command: "insertOne", Errors: []ErrorDetail{
		{Message: "first"}, {Message: "second", ErrorCode: "X"},
	}}
	assert.Equal(t, "astra: insertOne failed: first; X: second", err.Error())
	assert.Nil(t, err.Unwrap())
}
