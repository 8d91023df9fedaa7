package questions

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/matheusot/enquete/api/custom_errors"
	"github.com/matheusot/enquete/api/jsonutil"
	"github.com/shopspring/decimal"
)

type Handler struct {
	Store Store
}

func (h *Handler) CreateQuestionHandler(responseWriter http.ResponseWriter, request *http.Request) {
	data, err := jsonutil.UnmarshalJsonResponse[CreateQuestionBody](request)
	if err != nil {
		response := jsonutil.Response{
			Status:  "error",
			Message: err.Error(),
		}
		jsonutil.WriteJSONResponse(responseWriter, response, http.StatusBadRequest)
		return
	}

	if err := validateQuestion(data.Type, data.Weight, data.Options, data.ScaleConfig); err != nil {
		response := jsonutil.Response{
			Status:  "error",
			Message: err.Error(),
		}
		jsonutil.WriteJSONResponse(responseWriter, response, http.StatusBadRequest)
		return
	}

	question, err := h.Store.CreateQuestion(request.Context(), data)
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
		Message: "question created successfully",
		Data:    question,
	}
	jsonutil.WriteJSONResponse(responseWriter, response, http.StatusCreated)
}

func (h *Handler) GetQuestionHandler(responseWriter http.ResponseWriter, request *http.Request) {
	questionID, err := uuid.Parse(chi.URLParam(request, "questionID"))
	if err != nil {
		response := jsonutil.Response{
			Status:  "error",
			Message: "invalid question ID",
		}
		jsonutil.WriteJSONResponse(responseWriter, response, http.StatusBadRequest)
		return
	}

	question, err := h.Store.GetQuestion(request.Context(), questionID)
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

	response := jsonutil.Response{
		Status:  "success",
		Message: "question retrieved successfully",
		Data:    question,
	}
	jsonutil.WriteJSONResponse(responseWriter, response, http.StatusOK)
}

func (h *Handler) ListQuestionsHandler(responseWriter http.ResponseWriter, request *http.Request) {
	params := ListQuestionsParams{}

	if categoryStr := request.URL.Query().Get("category_id"); categoryStr != "" {
		categoryID, err := uuid.Parse(categoryStr)
		if err != nil {
			response := jsonutil.Response{
				Status:  "error",
				Message: "invalid category ID",
			}
			jsonutil.WriteJSONResponse(responseWriter, response, http.StatusBadRequest)
			return
		}
		params.CategoryID = &categoryID
	}

	if activeStr := request.URL.Query().Get("active"); activeStr != "" {
		active, err := strconv.ParseBool(activeStr)
		if err != nil {
			response := jsonutil.Response{
				Status:  "error",
				Message: "invalid active filter",
			}
			jsonutil.WriteJSONResponse(responseWriter, response, http.StatusBadRequest)
			return
		}
		params.Active = &active
	}

	questions, err := h.Store.ListQuestions(request.Context(), params)
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
		Message: "questions retrieved successfully",
		Data:    questions,
	}
	jsonutil.WriteJSONResponse(responseWriter, response, http.StatusOK)
}

func (h *Handler) UpdateQuestionHandler(responseWriter http.ResponseWriter, request *http.Request) {
	questionID, err := uuid.Parse(chi.URLParam(request, "questionID"))
	if err != nil {
		response := jsonutil.Response{
			Status:  "error",
			Message: "invalid question ID",
		}
		jsonutil.WriteJSONResponse(responseWriter, response, http.StatusBadRequest)
		return
	}

	data, err := jsonutil.UnmarshalJsonResponse[UpdateQuestionBody](request)
	if err != nil {
		response := jsonutil.Response{
			Status:  "error",
			Message: err.Error(),
		}
		jsonutil.WriteJSONResponse(responseWriter, response, http.StatusBadRequest)
		return
	}

	if data.Text != nil && *data.Text == "" {
		response := jsonutil.Response{
			Status:  "error",
			Message: "invalid field text: must not be empty",
		}
		jsonutil.WriteJSONResponse(responseWriter, response, http.StatusBadRequest)
		return
	}

	existing, err := h.Store.GetQuestion(request.Context(), questionID)
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

	questionType := existing.Type
	if data.Type != nil {
		questionType = *data.Type
	}
	weight := decimal.Zero
	if data.Weight != nil {
		weight = *data.Weight
	} else if existing.Weight.Int != nil {
		weight = decimal.NewFromBigInt(existing.Weight.Int, existing.Weight.Exp)
	}

	// Options and scale_config are replaced outright on update, so the
	// submitted payload is the full configuration the question ends up with.
	if err := validateQuestion(questionType, weight, data.Options, data.ScaleConfig); err != nil {
		response := jsonutil.Response{
			Status:  "error",
			Message: err.Error(),
		}
		jsonutil.WriteJSONResponse(responseWriter, response, http.StatusBadRequest)
		return
	}

	question, err := h.Store.UpdateQuestion(request.Context(), questionID, data)
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

	response := jsonutil.Response{
		Status:  "success",
		Message: "question updated successfully",
		Data:    question,
	}
	jsonutil.WriteJSONResponse(responseWriter, response, http.StatusOK)
}

func (h *Handler) DeleteQuestionHandler(responseWriter http.ResponseWriter, request *http.Request) {
	questionID, err := uuid.Parse(chi.URLParam(request, "questionID"))
	if err != nil {
		response := jsonutil.Response{
			Status:  "error",
			Message: "invalid question ID",
		}
		jsonutil.WriteJSONResponse(responseWriter, response, http.StatusBadRequest)
		return
	}

	if err := h.Store.DeleteQuestion(request.Context(), questionID); err != nil {
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

	response := jsonutil.Response{
		Status:  "success",
		Message: "question deleted successfully",
	}
	jsonutil.WriteJSONResponse(responseWriter, response, http.StatusOK)
}
