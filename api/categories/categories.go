package categories

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

func (h *Handler) CreateCategoryHandler(responseWriter http.ResponseWriter, request *http.Request) {
	data, err := jsonutil.UnmarshalJsonResponse[CreateCategoryBody](request)
	if err != nil {
		response := jsonutil.Response{
			Status:  "error",
			Message: err.Error(),
		}
		jsonutil.WriteJSONResponse(responseWriter, response, http.StatusBadRequest)
		return
	}

	category, err := h.Store.CreateCategory(request.Context(), data)
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
		Message: "category created successfully",
		Data:    category,
	}
	jsonutil.WriteJSONResponse(responseWriter, response, http.StatusCreated)
}

func (h *Handler) GetCategoryHandler(responseWriter http.ResponseWriter, request *http.Request) {
	categoryID, err := uuid.Parse(chi.URLParam(request, "categoryID"))
	if err != nil {
		response := jsonutil.Response{
			Status:  "error",
			Message: "invalid category ID",
		}
		jsonutil.WriteJSONResponse(responseWriter, response, http.StatusBadRequest)
		return
	}

	category, err := h.Store.GetCategory(request.Context(), categoryID)
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
		Message: "category retrieved successfully",
		Data:    category,
	}
	jsonutil.WriteJSONResponse(responseWriter, response, http.StatusOK)
}

func (h *Handler) ListCategoriesHandler(responseWriter http.ResponseWriter, request *http.Request) {
	categories, err := h.Store.ListCategories(request.Context())
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
		Message: "categories retrieved successfully",
		Data:    categories,
	}
	jsonutil.WriteJSONResponse(responseWriter, response, http.StatusOK)
}

func (h *Handler) UpdateCategoryHandler(responseWriter http.ResponseWriter, request *http.Request) {
	categoryID, err := uuid.Parse(chi.URLParam(request, "categoryID"))
	if err != nil {
		response := jsonutil.Response{
			Status:  "error",
			Message: "invalid category ID",
		}
		jsonutil.WriteJSONResponse(responseWriter, response, http.StatusBadRequest)
		return
	}

	data, err := jsonutil.UnmarshalJsonResponse[UpdateCategoryBody](request)
	if err != nil {
		response := jsonutil.Response{
			Status:  "error",
			Message: err.Error(),
		}
		jsonutil.WriteJSONResponse(responseWriter, response, http.StatusBadRequest)
		return
	}

	if data.Name != nil && *data.Name == "" {
		response := jsonutil.Response{
			Status:  "error",
			Message: "name must not be empty",
		}
		jsonutil.WriteJSONResponse(responseWriter, response, http.StatusBadRequest)
		return
	}

	category, err := h.Store.UpdateCategory(request.Context(), categoryID, data)
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
		Message: "category updated successfully",
		Data:    category,
	}
	jsonutil.WriteJSONResponse(responseWriter, response, http.StatusOK)
}

func (h *Handler) DeleteCategoryHandler(responseWriter http.ResponseWriter, request *http.Request) {
	categoryID, err := uuid.Parse(chi.URLParam(request, "categoryID"))
	if err != nil {
		response := jsonutil.Response{
			Status:  "error",
			Message: "invalid category ID",
		}
		jsonutil.WriteJSONResponse(responseWriter, response, http.StatusBadRequest)
		return
	}

	if err := h.Store.DeleteCategory(request.Context(), categoryID); err != nil {
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
		Message: "category deleted successfully",
	}
	jsonutil.WriteJSONResponse(responseWriter, response, http.StatusOK)
}
