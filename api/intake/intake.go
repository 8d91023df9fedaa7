package intake

import (
	"errors"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/matheusot/enquete/api/custom_errors"
	"github.com/matheusot/enquete/api/jsonutil"
	"github.com/matheusot/enquete/database"
	"github.com/matheusot/enquete/queue"
)

type Handler struct {
	Store Store
	Queue queue.Queue
}

type questionnaireResponse struct {
	Questionnaire database.Questionnaire `json:"questionnaire"`
	Questions     []database.Question    `json:"questions"`
	Seed          int64                  `json:"seed"`
}

func (h *Handler) GetQuestionnaireHandler(responseWriter http.ResponseWriter, request *http.Request) {
	slug := chi.URLParam(request, "slug")

	seed := time.Now().UnixNano()
	if rawSeed := request.URL.Query().Get("seed"); rawSeed != "" {
		parsed, err := strconv.ParseInt(rawSeed, 10, 64)
		if err != nil {
			response := jsonutil.Response{
				Status:  "error",
				Message: "invalid seed",
			}
			jsonutil.WriteJSONResponse(responseWriter, response, http.StatusBadRequest)
			return
		}
		seed = parsed
	}

	questionnaire, err := h.Store.GetQuestionnaireBySlug(request.Context(), slug)
	if err != nil {
		statusCode := http.StatusInternalServerError
		if errors.Is(err, custom_errors.ErrNotFound) {
			statusCode = http.StatusNotFound
		}
		response := jsonutil.Response{
			Status:  "error",
			Message: err.Error(),
		}
		jsonutil.WriteJSONResponse(responseWriter, response, statusCode)
		return
	}

	questions, err := h.Store.ListActiveQuestions(request.Context(), questionnaire.ID)
	if err != nil {
		response := jsonutil.Response{
			Status:  "error",
			Message: err.Error(),
		}
		jsonutil.WriteJSONResponse(responseWriter, response, http.StatusInternalServerError)
		return
	}

	response := jsonutil.Response{
		Status:  "success",
		Message: "questionnaire retrieved successfully",
		Data: questionnaireResponse{
			Questionnaire: questionnaire,
			Questions:     shuffleQuestions(questions, seed),
			Seed:          seed,
		},
	}
	jsonutil.WriteJSONResponse(responseWriter, response, http.StatusOK)
}

func (h *Handler) CreateRespondentHandler(responseWriter http.ResponseWriter, request *http.Request) {
	data, err := jsonutil.UnmarshalJsonResponse[RespondentBody](request)
	if err != nil {
		response := jsonutil.Response{
			Status:  "error",
			Message: err.Error(),
		}
		jsonutil.WriteJSONResponse(responseWriter, response, http.StatusBadRequest)
		return
	}

	questionnaire, err := h.Store.GetQuestionnaire(request.Context(), data.QuestionnaireID)
	if err != nil {
		statusCode := http.StatusInternalServerError
		if errors.Is(err, custom_errors.ErrNotFound) {
			statusCode = http.StatusNotFound
		}
		response := jsonutil.Response{
			Status:  "error",
			Message: err.Error(),
		}
		jsonutil.WriteJSONResponse(responseWriter, response, statusCode)
		return
	}

	column, value := dedupKey(questionnaire.IntakeFields, data)

	respondent, existed, err := h.Store.FindOrCreateRespondent(request.Context(), data, column, value)
	if err != nil {
		response := jsonutil.Response{
			Status:  "error",
			Message: err.Error(),
		}
		jsonutil.WriteJSONResponse(responseWriter, response, http.StatusInternalServerError)
		return
	}

	statusCode := http.StatusCreated
	message := "respondent created successfully"
	if existed {
		statusCode = http.StatusOK
		message = "respondent retrieved successfully"
	}

	response := jsonutil.Response{
		Status:  "success",
		Message: message,
		Data:    respondent,
	}
	jsonutil.WriteJSONResponse(responseWriter, response, statusCode)
}

type progressResponse struct {
	RemainingQuestionIDs []uuid.UUID `json:"remaining_question_ids"`
	Remaining            int         `json:"remaining"`
}

func (h *Handler) ProgressHandler(responseWriter http.ResponseWriter, request *http.Request) {
	data, err := jsonutil.UnmarshalJsonResponse[ProgressBody](request)
	if err != nil {
		response := jsonutil.Response{
			Status:  "error",
			Message: err.Error(),
		}
		jsonutil.WriteJSONResponse(responseWriter, response, http.StatusBadRequest)
		return
	}

	questionIDs, err := h.Store.RemainingQuestionIDs(request.Context(), data.RespondentID, data.QuestionnaireID)
	if err != nil {
		response := jsonutil.Response{
			Status:  "error",
			Message: err.Error(),
		}
		jsonutil.WriteJSONResponse(responseWriter, response, http.StatusInternalServerError)
		return
	}

	response := jsonutil.Response{
		Status:  "success",
		Message: "progress retrieved successfully",
		Data: progressResponse{
			RemainingQuestionIDs: questionIDs,
			Remaining:            len(questionIDs),
		},
	}
	jsonutil.WriteJSONResponse(responseWriter, response, http.StatusOK)
}

func (h *Handler) CreateAnswerHandler(responseWriter http.ResponseWriter, request *http.Request) {
	data, err := jsonutil.UnmarshalJsonResponse[AnswerBody](request)
	if err != nil {
		response := jsonutil.Response{
			Status:  "error",
			Message: err.Error(),
		}
		jsonutil.WriteJSONResponse(responseWriter, response, http.StatusBadRequest)
		return
	}

	question, err := h.Store.GetQuestion(request.Context(), data.QuestionID)
	if err != nil {
		statusCode := http.StatusInternalServerError
		if errors.Is(err, custom_errors.ErrNotFound) {
			statusCode = http.StatusNotFound
		}
		response := jsonutil.Response{
			Status:  "error",
			Message: err.Error(),
		}
		jsonutil.WriteJSONResponse(responseWriter, response, statusCode)
		return
	}

	values, err := mapAnswerValue(question.Type, data.Value)
	if err != nil {
		response := jsonutil.Response{
			Status:  "error",
			Message: err.Error(),
		}
		jsonutil.WriteJSONResponse(responseWriter, response, http.StatusBadRequest)
		return
	}

	answer, err := h.Store.UpsertAnswer(request.Context(), data, question.Type, values)
	if err != nil {
		response := jsonutil.Response{
			Status:  "error",
			Message: err.Error(),
		}
		jsonutil.WriteJSONResponse(responseWriter, response, http.StatusInternalServerError)
		return
	}

	remaining, err := h.Store.RemainingQuestionIDs(request.Context(), data.RespondentID, data.QuestionnaireID)
	if err != nil {
		log.Printf("error checking remaining questions: %v", err)
	} else if len(remaining) == 0 {
		h.notifyCompletion(request, data)
	}

	response := jsonutil.Response{
		Status:  "success",
		Message: "answer saved successfully",
		Data:    answer,
	}
	jsonutil.WriteJSONResponse(responseWriter, response, http.StatusOK)
}

// notifyCompletion enqueues the completion notice once a respondent has no
// questions left. Queue trouble is logged, never surfaced to the respondent.
func (h *Handler) notifyCompletion(request *http.Request, data AnswerBody) {
	if h.Queue == nil {
		return
	}

	respondent, err := h.Store.GetRespondent(request.Context(), data.RespondentID)
	if err != nil {
		log.Printf("error getting respondent for completion notice: %v", err)
		return
	}

	questionnaire, err := h.Store.GetQuestionnaire(request.Context(), data.QuestionnaireID)
	if err != nil {
		log.Printf("error getting questionnaire for completion notice: %v", err)
		return
	}

	payload := queue.CompletionNoticePayload{
		RespondentName:    respondent.Name,
		RespondentEmail:   respondent.Email.String,
		QuestionnaireName: questionnaire.Name,
		CompletedAt:       time.Now(),
	}

	if err := h.Queue.Enqueue(&payload); err != nil {
		log.Printf("error enqueueing completion notice: %v", err)
	}
}
