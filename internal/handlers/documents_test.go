package handlers

import (
	"context"
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jas-4484/edusaas-backend/internal/database"
	"github.com/jas-4484/edusaas-backend/internal/logger"
	"github.com/jas-4484/edusaas-backend/internal/schema"
)

func testLogger(t *testing.T) *logger.Logger {
	t.Helper()
	log, err := logger.New("dev")
	require.NoError(t, err)
	return log
}

func courseResource() Resource {
	for _, res := range Resources() {
		if res.Kind == schema.KindCourse {
			return res
		}
	}
	panic("course resource missing")
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

func TestCreateCourse(t *testing.T) {
	store := database.NewMemoryStore()
	h := NewDocumentHandler(store, testLogger(t))
	res := courseResource()

	req := httptest.NewRequest("POST", "/courses", strings.NewReader(`{"title":"T","teacher_id":"u1"}`))
	rec := httptest.NewRecorder()
	h.Create(res)(rec, req)

	require.Equal(t, 201, rec.Code)
	body := decodeBody(t, rec)
	assert.NotEmpty(t, body["id"])
	assert.Equal(t, "Course created", body["message"])

	items, err := store.List(context.Background(), schema.KindCourse, database.Document{})
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "beginner", items[0]["level"])
	assert.Equal(t, false, items[0]["is_published"])
}

func TestCreateCourseValidationFailure(t *testing.T) {
	h := NewDocumentHandler(database.NewMemoryStore(), testLogger(t))

	req := httptest.NewRequest("POST", "/courses", strings.NewReader(`{"title":"T","teacher_id":"u1","level":"expert"}`))
	rec := httptest.NewRecorder()
	h.Create(courseResource())(rec, req)

	require.Equal(t, 422, rec.Code)
	body := decodeBody(t, rec)
	fields := body["fields"].([]interface{})
	require.Len(t, fields, 1)
	assert.Equal(t, "level", fields[0].(map[string]interface{})["field"])
}

func TestCreateCourseMalformedJSON(t *testing.T) {
	h := NewDocumentHandler(database.NewMemoryStore(), testLogger(t))

	req := httptest.NewRequest("POST", "/courses", strings.NewReader(`{"title":`))
	rec := httptest.NewRecorder()
	h.Create(courseResource())(rec, req)

	assert.Equal(t, 400, rec.Code)
}

func TestCreateWithoutStore(t *testing.T) {
	store, err := database.Connect(context.Background(), "", "edusaas")
	require.NoError(t, err)
	h := NewDocumentHandler(store, testLogger(t))

	req := httptest.NewRequest("POST", "/courses", strings.NewReader(`{"title":"T","teacher_id":"u1"}`))
	rec := httptest.NewRecorder()
	h.Create(courseResource())(rec, req)

	require.Equal(t, 503, rec.Code)
	body := decodeBody(t, rec)
	assert.Equal(t, "Database not available", body["error"])
}

func TestListFiltersByTypedField(t *testing.T) {
	store := database.NewMemoryStore()
	h := NewDocumentHandler(store, testLogger(t))

	var lessonRes Resource
	for _, res := range Resources() {
		if res.Kind == schema.KindLesson {
			lessonRes = res
		}
	}

	for _, order := range []string{"1", "2"} {
		payload := `{"course_id":"c1","title":"L` + order + `","order":` + order + `}`
		req := httptest.NewRequest("POST", "/lessons", strings.NewReader(payload))
		rec := httptest.NewRecorder()
		h.Create(lessonRes)(rec, req)
		require.Equal(t, 201, rec.Code)
	}

	req := httptest.NewRequest("GET", "/lessons?order=2", nil)
	rec := httptest.NewRecorder()
	h.List(lessonRes)(rec, req)

	require.Equal(t, 200, rec.Code)
	body := decodeBody(t, rec)
	items := body["items"].([]interface{})
	require.Len(t, items, 1)
	assert.Equal(t, "L2", items[0].(map[string]interface{})["title"])

	// A filter value that cannot be coerced fails validation, same as a
	// bad body field.
	req = httptest.NewRequest("GET", "/lessons?order=abc", nil)
	rec = httptest.NewRecorder()
	h.List(lessonRes)(rec, req)
	require.Equal(t, 422, rec.Code)
	body = decodeBody(t, rec)
	fields := body["fields"].([]interface{})
	require.Len(t, fields, 1)
	assert.Equal(t, "order", fields[0].(map[string]interface{})["field"])
}

func TestListIgnoresUndeclaredParams(t *testing.T) {
	store := database.NewMemoryStore()
	h := NewDocumentHandler(store, testLogger(t))
	res := courseResource()

	req := httptest.NewRequest("POST", "/courses", strings.NewReader(`{"title":"T","teacher_id":"u1"}`))
	rec := httptest.NewRecorder()
	h.Create(res)(rec, req)
	require.Equal(t, 201, rec.Code)

	req = httptest.NewRequest("GET", "/courses?page=3&sort=title", nil)
	rec = httptest.NewRecorder()
	h.List(res)(rec, req)

	require.Equal(t, 200, rec.Code)
	body := decodeBody(t, rec)
	assert.Len(t, body["items"].([]interface{}), 1)
}
