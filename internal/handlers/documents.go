package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/jas-4484/edusaas-backend/internal/database"
	"github.com/jas-4484/edusaas-backend/internal/logger"
	"github.com/jas-4484/edusaas-backend/internal/schema"
)

const requestTimeout = 5 * time.Second

// Resource maps one entity kind onto its HTTP surface. All ten kinds go
// through the same create and list handlers; only the paths and the
// created-message differ.
type Resource struct {
	Kind       string
	CreatePath string
	ListPath   string
	CreatedMsg string
}

// Resources declares the full route table.
func Resources() []Resource {
	return []Resource{
		{Kind: schema.KindUser, CreatePath: "/users", ListPath: "/users", CreatedMsg: "User created"},
		{Kind: schema.KindCourse, CreatePath: "/courses", ListPath: "/courses", CreatedMsg: "Course created"},
		{Kind: schema.KindLesson, CreatePath: "/lessons", ListPath: "/lessons", CreatedMsg: "Lesson created"},
		{Kind: schema.KindAssignment, CreatePath: "/assignments", ListPath: "/assignments", CreatedMsg: "Assignment created"},
		{Kind: schema.KindQuiz, CreatePath: "/quizzes", ListPath: "/quizzes", CreatedMsg: "Quiz created"},
		{Kind: schema.KindEnrollment, CreatePath: "/enroll", ListPath: "/enrollments", CreatedMsg: "Enrollment created"},
		{Kind: schema.KindSubmission, CreatePath: "/submit", ListPath: "/submissions", CreatedMsg: "Submission received"},
		{Kind: schema.KindQuizAttempt, CreatePath: "/quiz-attempts", ListPath: "/quiz-attempts", CreatedMsg: "Quiz attempt recorded"},
		{Kind: schema.KindSubscription, CreatePath: "/subscriptions", ListPath: "/subscriptions", CreatedMsg: "Subscription created"},
		{Kind: schema.KindActivity, CreatePath: "/activity", ListPath: "/activity", CreatedMsg: "Activity tracked"},
	}
}

type DocumentHandler struct {
	store database.Store
	log   *logger.Logger
}

func NewDocumentHandler(store database.Store, log *logger.Logger) *DocumentHandler {
	return &DocumentHandler{store: store, log: log}
}

// Create validates the request body against the kind's schema and writes
// the resulting document. The whole write is rejected on any field error.
func (h *DocumentHandler) Create(res Resource) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload map[string]interface{}
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			writeError(w, http.StatusBadRequest, "Invalid request payload")
			return
		}

		doc, err := schema.Validate(res.Kind, payload)
		if err != nil {
			h.writeValidationFailure(w, err)
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
		defer cancel()

		id, err := h.store.Create(ctx, res.Kind, doc)
		if err != nil {
			h.writeStoreFailure(w, res.Kind, err)
			return
		}

		writeJSON(w, http.StatusCreated, map[string]string{"id": id, "message": res.CreatedMsg})
	}
}

// List returns every document of the kind matching the equality filters
// given as query parameters. Parameters that do not name a declared field
// are ignored.
func (h *DocumentHandler) List(res Resource) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		filter, err := filterFromQuery(res.Kind, r.URL.Query())
		if err != nil {
			h.writeValidationFailure(w, err)
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
		defer cancel()

		items, err := h.store.List(ctx, res.Kind, filter)
		if err != nil {
			h.writeStoreFailure(w, res.Kind, err)
			return
		}

		writeJSON(w, http.StatusOK, map[string]interface{}{"items": items})
	}
}

func (h *DocumentHandler) writeValidationFailure(w http.ResponseWriter, err error) {
	var unknown *schema.UnknownKindError
	if errors.As(err, &unknown) {
		writeError(w, http.StatusNotFound, unknown.Error())
		return
	}
	var invalid *schema.ValidationError
	if errors.As(err, &invalid) {
		writeJSON(w, http.StatusUnprocessableEntity, map[string]interface{}{
			"error":  "validation failed",
			"fields": invalid.Fields,
		})
		return
	}
	writeError(w, http.StatusInternalServerError, err.Error())
}

func (h *DocumentHandler) writeStoreFailure(w http.ResponseWriter, kind string, err error) {
	if errors.Is(err, database.ErrStoreUnavailable) {
		writeError(w, http.StatusServiceUnavailable, "Database not available")
		return
	}
	h.log.Error("store operation failed", "kind", kind, "error", err)
	writeError(w, http.StatusInternalServerError, "Database operation failed")
}

// filterFromQuery builds the equality filter from query parameters,
// coercing each value to the declared type of the field it names.
func filterFromQuery(kind string, query url.Values) (database.Document, error) {
	specs, err := schema.Describe(kind)
	if err != nil {
		return nil, err
	}

	filter := database.Document{}
	for _, spec := range specs {
		raw := query.Get(spec.Name)
		if raw == "" {
			continue
		}
		switch spec.Type {
		case schema.TypeString:
			filter[spec.Name] = raw
		case schema.TypeInt:
			n, err := strconv.Atoi(raw)
			if err != nil {
				return nil, &schema.ValidationError{Kind: kind, Fields: []schema.FieldError{{Field: spec.Name, Message: "must be an integer"}}}
			}
			filter[spec.Name] = n
		case schema.TypeFloat:
			f, err := strconv.ParseFloat(raw, 64)
			if err != nil {
				return nil, &schema.ValidationError{Kind: kind, Fields: []schema.FieldError{{Field: spec.Name, Message: "must be a number"}}}
			}
			filter[spec.Name] = f
		case schema.TypeBool:
			b, err := strconv.ParseBool(raw)
			if err != nil {
				return nil, &schema.ValidationError{Kind: kind, Fields: []schema.FieldError{{Field: spec.Name, Message: "must be a boolean"}}}
			}
			filter[spec.Name] = b
		case schema.TypeTimestamp:
			t, err := time.Parse(time.RFC3339, raw)
			if err != nil {
				return nil, &schema.ValidationError{Kind: kind, Fields: []schema.FieldError{{Field: spec.Name, Message: "must be an RFC 3339 timestamp"}}}
			}
			filter[spec.Name] = t
		}
		// List, object and map fields are not filterable from the query string.
	}
	return filter, nil
}
