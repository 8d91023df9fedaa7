package reports

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
	Cache *Cache
}

func (h *Handler) ListReportsHandler(responseWriter http.ResponseWriter, request *http.Request) {
	summaries, err := h.Store.ListSummaries(request.Context())
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
		Message: "reports retrieved successfully",
		Data:    summaries,
	}
	jsonutil.WriteJSONResponse(responseWriter, response, http.StatusOK)
}

func (h *Handler) GetReportDetailHandler(responseWriter http.ResponseWriter, request *http.Request) {
	respondentID, err := uuid.Parse(chi.URLParam(request, "respondentID"))
	if err != nil {
		response := jsonutil.Response{
			Status:  "error",
			Message: "invalid respondent ID",
		}
		jsonutil.WriteJSONResponse(responseWriter, response, http.StatusBadRequest)
		return
	}

	questionnaireID, err := uuid.Parse(chi.URLParam(request, "questionnaireID"))
	if err != nil {
		response := jsonutil.Response{
			Status:  "error",
			Message: "invalid questionnaire ID",
		}
		jsonutil.WriteJSONResponse(responseWriter, response, http.StatusBadRequest)
		return
	}

	if detail, ok := h.Cache.Get(request.Context(), respondentID, questionnaireID); ok {
		response := jsonutil.Response{
			Status:  "success",
			Message: "report retrieved successfully",
			Data:    detail,
		}
		jsonutil.WriteJSONResponse(responseWriter, response, http.StatusOK)
		return
	}

	detail, err := h.buildDetail(request, respondentID, questionnaireID)
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

	h.Cache.Set(request.Context(), detail)

	response := jsonutil.Response{
		Status:  "success",
		Message: "report retrieved successfully",
		Data:    detail,
	}
	jsonutil.WriteJSONResponse(responseWriter, response, http.StatusOK)
}

func (h *Handler) buildDetail(request *http.Request, respondentID, questionnaireID uuid.UUID) (ReportDetail, error) {
	ctx := request.Context()

	respondent, err := h.Store.GetRespondent(ctx, respondentID)
	if err != nil {
		return ReportDetail{}, err
	}

	questionnaire, err := h.Store.GetQuestionnaire(ctx, questionnaireID)
	if err != nil {
		return ReportDetail{}, err
	}

	questions, err := h.Store.ListLinkedQuestions(ctx, questionnaireID)
	if err != nil {
		return ReportDetail{}, err
	}

	answers, err := h.Store.ListAnswers(ctx, respondentID, questionnaireID)
	if err != nil {
		return ReportDetail{}, err
	}

	categoryNames, err := h.Store.ListCategoryNames(ctx)
	if err != nil {
		return ReportDetail{}, err
	}

	return BuildReport(respondent, questionnaire, questions, answers, categoryNames), nil
}
