package questions_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/matheusot/enquete/api/custom_errors"
	"github.com/matheusot/enquete/api/questions"
	"github.com/matheusot/enquete/database"
)

// ============================================================================
// Test Helpers
// ============================================================================

func assertResponseCode(t *testing.T, got, want int) {
	t.Helper()
	if got != want {
		t.Errorf("response code = %d, want %d", got, want)
	}
}

func assertResponseStatus(t *testing.T, got map[string]interface{}, wantStatus string) {
	t.Helper()
	if got["status"] != wantStatus {
		t.Errorf("status = %v, want %v", got["status"], wantStatus)
	}
}

// ============================================================================
// Stub Question Store
// ============================================================================

type StubQuestionStore struct {
	Questions  map[uuid.UUID]database.Question
	ListParams questions.ListQuestionsParams
}

func NewStubQuestionStore() *StubQuestionStore {
	return &StubQuestionStore{Questions: make(map[uuid.UUID]database.Question)}
}

func (s *StubQuestionStore) CreateQuestion(ctx context.Context, body questions.CreateQuestionBody) (database.Question, error) {
	var weight pgtype.Numeric
	_ = weight.Scan(body.Weight.String())

	active := true
	if body.Active != nil {
		active = *body.Active
	}

	question := database.Question{
		ID:          uuid.New(),
		Text:        body.Text,
		Weight:      weight,
		Active:      active,
		Type:        body.Type,
		Options:     body.Options,
		ScaleConfig: body.ScaleConfig,
	}
	if body.CategoryID != nil {
		question.CategoryID = pgtype.UUID{Bytes: *body.CategoryID, Valid: true}
	}
	s.Questions[question.ID] = question
	return question, nil
}

func (s *StubQuestionStore) GetQuestion(ctx context.Context, questionID uuid.UUID) (database.Question, error) {
	question, exists := s.Questions[questionID]
	if !exists {
		return database.Question{}, custom_errors.ErrNotFound
	}
	return question, nil
}

func (s *StubQuestionStore) ListQuestions(ctx context.Context, params questions.ListQuestionsParams) ([]database.Question, error) {
	s.ListParams = params
	var all []database.Question
	for _, question := range s.Questions {
		all = append(all, question)
	}
	return all, nil
}

func (s *StubQuestionStore) UpdateQuestion(ctx context.Context, questionID uuid.UUID, body questions.UpdateQuestionBody) (database.Question, error) {
	question, exists := s.Questions[questionID]
	if !exists {
		return database.Question{}, custom_errors.ErrNotFound
	}
	if body.Text != nil {
		question.Text = *body.Text
	}
	if body.Active != nil {
		question.Active = *body.Active
	}
	if body.Type != nil {
		question.Type = *body.Type
	}
	if body.Weight != nil {
		var weight pgtype.Numeric
		_ = weight.Scan(body.Weight.String())
		question.Weight = weight
	}
	if body.CategoryID != nil {
		question.CategoryID = pgtype.UUID{Bytes: *body.CategoryID, Valid: true}
	} else {
		question.CategoryID = pgtype.UUID{}
	}
	question.Options = body.Options
	question.ScaleConfig = body.ScaleConfig
	s.Questions[questionID] = question
	return question, nil
}

func (s *StubQuestionStore) DeleteQuestion(ctx context.Context, questionID uuid.UUID) error {
	if _, exists := s.Questions[questionID]; !exists {
		return custom_errors.ErrNotFound
	}
	delete(s.Questions, questionID)
	return nil
}

func newRouter(store *StubQuestionStore) *chi.Mux {
	handler := &questions.Handler{Store: store}

	router := chi.NewRouter()
	router.Get("/admin/questions", handler.ListQuestionsHandler)
	router.Post("/admin/questions", handler.CreateQuestionHandler)
	router.Get("/admin/questions/{questionID}", handler.GetQuestionHandler)
	router.Patch("/admin/questions/{questionID}", handler.UpdateQuestionHandler)
	router.Delete("/admin/questions/{questionID}", handler.DeleteQuestionHandler)
	return router
}

func post(t *testing.T, router *chi.Mux, payload any) *httptest.ResponseRecorder {
	t.Helper()
	body, err := json.Marshal(payload)
	if err != nil {
		t.Fatalf("could not marshal payload: %v", err)
	}
	req := httptest.NewRequest(http.MethodPost, "/admin/questions", bytes.NewReader(body))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

// ============================================================================
// CreateQuestionHandler Tests
// ============================================================================

func TestCreateQuestionHandler(t *testing.T) {
	t.Run("creates a weighted yes/no question", func(t *testing.T) {
		store := NewStubQuestionStore()
		router := newRouter(store)

		rec := post(t, router, map[string]any{
			"text":   "Do you document your processes?",
			"type":   "yes_no",
			"weight": "20",
		})

		var got map[string]interface{}
		_ = json.Unmarshal(rec.Body.Bytes(), &got)

		assertResponseCode(t, rec.Code, http.StatusCreated)
		assertResponseStatus(t, got, "success")
		if len(store.Questions) != 1 {
			t.Fatalf("got %d questions, want 1", len(store.Questions))
		}
		for _, question := range store.Questions {
			if !question.Active {
				t.Error("new questions should default to active")
			}
		}
	})

	t.Run("rejects an unknown type", func(t *testing.T) {
		rec := post(t, newRouter(NewStubQuestionStore()), map[string]any{
			"text": "?",
			"type": "dropdown",
		})

		assertResponseCode(t, rec.Code, http.StatusBadRequest)
	})

	t.Run("rejects a negative weight", func(t *testing.T) {
		rec := post(t, newRouter(NewStubQuestionStore()), map[string]any{
			"text":   "?",
			"type":   "yes_no",
			"weight": "-1",
		})

		assertResponseCode(t, rec.Code, http.StatusBadRequest)
	})

	t.Run("choice questions need at least two options with values", func(t *testing.T) {
		router := newRouter(NewStubQuestionStore())

		rec := post(t, router, map[string]any{
			"text":    "Company size?",
			"type":    "single_choice",
			"options": []map[string]any{{"label": "Small", "value": "s"}},
		})
		assertResponseCode(t, rec.Code, http.StatusBadRequest)

		rec = post(t, router, map[string]any{
			"text": "Company size?",
			"type": "single_choice",
			"options": []map[string]any{
				{"label": "Small", "value": "s"},
				{"label": "Large", "value": ""},
			},
		})
		assertResponseCode(t, rec.Code, http.StatusBadRequest)
	})

	t.Run("scale questions need min below max", func(t *testing.T) {
		rec := post(t, newRouter(NewStubQuestionStore()), map[string]any{
			"text":         "How mature?",
			"type":         "scale",
			"scale_config": map[string]any{"min": 5, "max": 5, "step": 1},
		})

		assertResponseCode(t, rec.Code, http.StatusBadRequest)
	})

	t.Run("zero weight is allowed", func(t *testing.T) {
		rec := post(t, newRouter(NewStubQuestionStore()), map[string]any{
			"text":   "Any comments?",
			"type":   "long_text",
			"weight": "0",
		})

		assertResponseCode(t, rec.Code, http.StatusCreated)
	})
}

// ============================================================================
// ListQuestionsHandler Tests
// ============================================================================

func TestListQuestionsHandler(t *testing.T) {
	t.Run("passes category and active filters to the store", func(t *testing.T) {
		store := NewStubQuestionStore()
		router := newRouter(store)
		categoryID := uuid.New()

		req := httptest.NewRequest(http.MethodGet, "/admin/questions?category_id="+categoryID.String()+"&active=true", nil)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		assertResponseCode(t, rec.Code, http.StatusOK)
		if store.ListParams.CategoryID == nil || *store.ListParams.CategoryID != categoryID {
			t.Errorf("category filter = %v, want %s", store.ListParams.CategoryID, categoryID)
		}
		if store.ListParams.Active == nil || !*store.ListParams.Active {
			t.Errorf("active filter = %v, want true", store.ListParams.Active)
		}
	})

	t.Run("malformed filters are rejected", func(t *testing.T) {
		router := newRouter(NewStubQuestionStore())

		req := httptest.NewRequest(http.MethodGet, "/admin/questions?active=maybe", nil)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		assertResponseCode(t, rec.Code, http.StatusBadRequest)
	})
}

// ============================================================================
// UpdateQuestionHandler Tests
// ============================================================================

func TestUpdateQuestionHandler(t *testing.T) {
	t.Run("omitting category_id moves the question to uncategorized", func(t *testing.T) {
		store := NewStubQuestionStore()
		question := database.Question{
			ID:         uuid.New(),
			Text:       "Do you track revenue?",
			Type:       database.TypeYesNo,
			Active:     true,
			CategoryID: pgtype.UUID{Bytes: uuid.New(), Valid: true},
		}
		store.Questions[question.ID] = question
		router := newRouter(store)

		body, _ := json.Marshal(map[string]any{"active": false})
		req := httptest.NewRequest(http.MethodPatch, "/admin/questions/"+question.ID.String(), bytes.NewReader(body))
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		assertResponseCode(t, rec.Code, http.StatusOK)

		updated := store.Questions[question.ID]
		if updated.Active {
			t.Error("question should have been deactivated")
		}
		if updated.CategoryID.Valid {
			t.Error("question should have been uncategorized")
		}
	})

	t.Run("stored type governs validation when the body omits it", func(t *testing.T) {
		store := NewStubQuestionStore()
		question := database.Question{
			ID:     uuid.New(),
			Text:   "Company size?",
			Type:   database.TypeSingleChoice,
			Active: true,
			Options: []database.Option{
				{Label: "Small", Value: "s"},
				{Label: "Large", Value: "l"},
			},
		}
		store.Questions[question.ID] = question
		router := newRouter(store)

		body, _ := json.Marshal(map[string]any{
			"options": []map[string]any{{"label": "Small", "value": "s"}},
		})
		req := httptest.NewRequest(http.MethodPatch, "/admin/questions/"+question.ID.String(), bytes.NewReader(body))
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		assertResponseCode(t, rec.Code, http.StatusBadRequest)
		if got := len(store.Questions[question.ID].Options); got != 2 {
			t.Errorf("stored options = %d, want the original 2", got)
		}
	})

	t.Run("retyping validates the new configuration", func(t *testing.T) {
		store := NewStubQuestionStore()
		question := database.Question{ID: uuid.New(), Text: "?", Type: database.TypeYesNo, Active: true}
		store.Questions[question.ID] = question
		router := newRouter(store)

		body, _ := json.Marshal(map[string]any{"type": "single_choice"})
		req := httptest.NewRequest(http.MethodPatch, "/admin/questions/"+question.ID.String(), bytes.NewReader(body))
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		assertResponseCode(t, rec.Code, http.StatusBadRequest)
	})

	t.Run("unknown question returns 404", func(t *testing.T) {
		router := newRouter(NewStubQuestionStore())

		body, _ := json.Marshal(map[string]any{"text": "updated"})
		req := httptest.NewRequest(http.MethodPatch, "/admin/questions/"+uuid.NewString(), bytes.NewReader(body))
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		assertResponseCode(t, rec.Code, http.StatusNotFound)
	})
}

