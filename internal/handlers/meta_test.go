package handlers

import (
	"context"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jas-4484/edusaas-backend/internal/database"
)

func TestRoot(t *testing.T) {
	h := NewMetaHandler(database.NewMemoryStore(), false)

	rec := httptest.NewRecorder()
	h.Root(rec, httptest.NewRequest("GET", "/", nil))

	require.Equal(t, 200, rec.Code)
	assert.Equal(t, "EduSaaS backend running", decodeBody(t, rec)["message"])
}

func TestSchemaDump(t *testing.T) {
	h := NewMetaHandler(database.NewMemoryStore(), false)

	rec := httptest.NewRecorder()
	h.Schema(rec, httptest.NewRequest("GET", "/schema", nil))

	require.Equal(t, 200, rec.Code)
	collections := decodeBody(t, rec)["collections"].(map[string]interface{})
	assert.Len(t, collections, 10)
	assert.Contains(t, collections, "course")
	assert.Contains(t, collections, "quizattempt")
}

func TestDiagnosticsWithoutStore(t *testing.T) {
	store, err := database.Connect(context.Background(), "", "edusaas")
	require.NoError(t, err)
	h := NewMetaHandler(store, false)

	rec := httptest.NewRecorder()
	h.Test(rec, httptest.NewRequest("GET", "/test", nil))

	require.Equal(t, 200, rec.Code)
	body := decodeBody(t, rec)
	assert.Equal(t, "running", body["backend"])
	assert.Equal(t, "not available", body["database"])
	assert.Equal(t, "not set", body["database_url"])
	assert.Equal(t, "Not Connected", body["connection_status"])
}

func TestDiagnosticsWithConnectedStore(t *testing.T) {
	store := database.NewMemoryStore()
	_, err := store.Create(context.Background(), "course", database.Document{"title": "T"})
	require.NoError(t, err)

	h := NewMetaHandler(store, true)

	rec := httptest.NewRecorder()
	h.Test(rec, httptest.NewRequest("GET", "/test", nil))

	require.Equal(t, 200, rec.Code)
	body := decodeBody(t, rec)
	assert.Equal(t, "connected", body["database"])
	assert.Equal(t, "set", body["database_url"])
	assert.Equal(t, "Connected", body["connection_status"])
	assert.Equal(t, "memory", body["database_name"])
	assert.Equal(t, []interface{}{"course"}, body["collections"])
}
