package questionnaires

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/matheusot/enquete/api/custom_errors"
	"github.com/matheusot/enquete/api/jsonutil"
)

type Handler struct {
	Store Store
}

func (h *Handler) CreateQuestionnaireHandler(responseWriter http.ResponseWriter, request *http.Request) {
	data, err := jsonutil.UnmarshalJsonResponse[CreateQuestionnaireBody](request)
	if err != nil {
		response := jsonutil.Response{
			Status:  "error",
			Message: err.Error(),
		}
		jsonutil.WriteJSONResponse(responseWriter, response, http.StatusBadRequest)
		return
	}

	if len(data.IntakeFields) == 0 {
		data.IntakeFields = DefaultIntakeFields()
	}

	if err := validateIntakeFields(data.IntakeFields); err != nil {
		response := jsonutil.Response{
			Status:  "error",
			Message: err.Error(),
		}
		jsonutil.WriteJSONResponse(responseWriter, response, http.StatusBadRequest)
		return
	}

	questionnaire, err := h.Store.CreateQuestionnaire(request.Context(), data)
	if err != nil {
		statusCode := http.StatusInternalServerError
		if errors.Is(err, custom_errors.ErrConflict) {
			statusCode = http.StatusConflict
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
		Message: "questionnaire created successfully",
		Data:    questionnaire,
	}
	jsonutil.WriteJSONResponse(responseWriter, response, http.StatusCreated)
}

func (h *Handler) GetQuestionnaireHandler(responseWriter http.ResponseWriter, request *http.Request) {
	questionnaireID, err := uuid.Parse(chi.URLParam(request, "questionnaireID"))
	if err != nil {
		response := jsonutil.Response{
			Status:  "error",
			Message: "invalid questionnaire ID",
		}
		jsonutil.WriteJSONResponse(responseWriter, response, http.StatusBadRequest)
		return
	}

	questionnaire, err := h.Store.GetQuestionnaire(request.Context(), questionnaireID)
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
		Message: "questionnaire retrieved successfully",
		Data:    questionnaire,
	}
	jsonutil.WriteJSONResponse(responseWriter, response, http.StatusOK)
}

func (h *Handler) ListQuestionnairesHandler(responseWriter http.ResponseWriter, request *http.Request) {
	questionnaires, err := h.Store.ListQuestionnaires(request.Context())
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
		Message: "questionnaires retrieved successfully",
		Data:    questionnaires,
	}
	jsonutil.WriteJSONResponse(responseWriter, response, http.StatusOK)
}

func (h *Handler) UpdateQuestionnaireHandler(responseWriter http.ResponseWriter, request *http.Request) {
	questionnaireID, err := uuid.Parse(chi.URLParam(request, "questionnaireID"))
	if err != nil {
		response := jsonutil.Response{
			Status:  "error",
			Message: "invalid questionnaire ID",
		}
		jsonutil.WriteJSONResponse(responseWriter, response, http.StatusBadRequest)
		return
	}

	data, err := jsonutil.UnmarshalJsonResponse[UpdateQuestionnaireBody](request)
	if err != nil {
		response := jsonutil.Response{
			Status:  "error",
			Message: err.Error(),
		}
		jsonutil.WriteJSONResponse(responseWriter, response, http.StatusBadRequest)
		return
	}

	if (data.Name != nil && *data.Name == "") || (data.Slug != nil && *data.Slug == "") {
		response := jsonutil.Response{
			Status:  "error",
			Message: "name and slug must not be empty",
		}
		jsonutil.WriteJSONResponse(responseWriter, response, http.StatusBadRequest)
		return
	}

	questionnaire, err := h.Store.UpdateQuestionnaire(request.Context(), questionnaireID, data)
	if err != nil {
		statusCode := http.StatusInternalServerError
		if errors.Is(err, custom_errors.ErrNotFound) {
			statusCode = http.StatusNotFound
		} else if errors.Is(err, custom_errors.ErrConflict) {
			statusCode = http.StatusConflict
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
		Message: "questionnaire updated successfully",
		Data:    questionnaire,
	}
	jsonutil.WriteJSONResponse(responseWriter, response, http.StatusOK)
}

// ReplaceQuestionsHandler saves the questionnaire's question selection.
// The stored set always ends up exactly equal to the submitted one.
func (h *Handler) ReplaceQuestionsHandler(responseWriter http.ResponseWriter, request *http.Request) {
	questionnaireID, err := uuid.Parse(chi.URLParam(request, "questionnaireID"))
	if err != nil {
		response := jsonutil.Response{
			Status:  "error",
			Message: "invalid questionnaire ID",
		}
		jsonutil.WriteJSONResponse(responseWriter, response, http.StatusBadRequest)
		return
	}

	data, err := jsonutil.UnmarshalJsonResponse[ReplaceQuestionsBody](request)
	if err != nil {
		response := jsonutil.Response{
			Status:  "error",
			Message: err.Error(),
		}
		jsonutil.WriteJSONResponse(responseWriter, response, http.StatusBadRequest)
		return
	}

	if err := h.Store.ReplaceQuestions(request.Context(), questionnaireID, data.QuestionIDs); err != nil {
		response := jsonutil.Response{
			Status:  "error",
			Message: err.Error(),
		}
		jsonutil.WriteJSONResponse(responseWriter, response, http.StatusInternalServerError)
		return
	}

	response := jsonutil.Response{
		Status:  "success",
		Message: "questionnaire questions saved successfully",
	}
	jsonutil.WriteJSONResponse(responseWriter, response, http.StatusOK)
}

func (h *Handler) ListQuestionIDsHandler(responseWriter http.ResponseWriter, request *http.Request) {
	questionnaireID, err := uuid.Parse(chi.URLParam(request, "questionnaireID"))
	if err != nil {
		response := jsonutil.Response{
			Status:  "error",
			Message: "invalid questionnaire ID",
		}
		jsonutil.WriteJSONResponse(responseWriter, response, http.StatusBadRequest)
		return
	}

	questionIDs, err := h.Store.ListQuestionIDs(request.Context(), questionnaireID)
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
		Message: "questionnaire questions retrieved successfully",
		Data:    questionIDs,
	}
	jsonutil.WriteJSONResponse(responseWriter, response, http.StatusOK)
}

func (h *Handler) UpdateIntakeFieldsHandler(responseWriter http.ResponseWriter, request *http.Request) {
	questionnaireID, err := uuid.Parse(chi.URLParam(request, "questionnaireID"))
	if err != nil {
		response := jsonutil.Response{
			Status:  "error",
			Message: "invalid questionnaire ID",
		}
		jsonutil.WriteJSONResponse(responseWriter, response, http.StatusBadRequest)
		return
	}

	data, err := jsonutil.UnmarshalJsonResponse[UpdateIntakeFieldsBody](request)
	if err != nil {
		response := jsonutil.Response{
			Status:  "error",
			Message: err.Error(),
		}
		jsonutil.WriteJSONResponse(responseWriter, response, http.StatusBadRequest)
		return
	}

	if err := validateIntakeFields(data.IntakeFields); err != nil {
		response := jsonutil.Response{
			Status:  "error",
			Message: err.Error(),
		}
		jsonutil.WriteJSONResponse(responseWriter, response, http.StatusBadRequest)
		return
	}

	questionnaire, err := h.Store.UpdateIntakeFields(request.Context(), questionnaireID, data.IntakeFields)
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
		Message: "intake fields updated successfully",
		Data:    questionnaire,
	}
	jsonutil.WriteJSONResponse(responseWriter, response, http.StatusOK)
}
