package jsonutil

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

type Response struct {
	Status  string      `json:"status"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

func WriteJSONResponse(responseWriter http.ResponseWriter, data interface{}, statusCode int) {
	responseWriter.Header().Set("Content-Type", "application/json")
	responseWriter.WriteHeader(statusCode)

	if err := json.NewEncoder(responseWriter).Encode(data); err != nil {
		http.Error(responseWriter, `{"status":"error","message":"error encoding response"}`, http.StatusInternalServerError)
	}
}

// UnmarshalJsonResponse decodes the request body into T and runs the
// validate struct tags over it. The returned error message names the first
// violated field.
func UnmarshalJsonResponse[T any](request *http.Request) (T, error) {
	var data T

	decoder := json.NewDecoder(request.Body)
	if err := decoder.Decode(&data); err != nil {
		return data, fmt.Errorf("error decoding request body: %v", err)
	}

	if err := validate.Struct(data); err != nil {
		var invalid *validator.InvalidValidationError
		if errors.As(err, &invalid) {
			return data, fmt.Errorf("error validating request body: %v", err)
		}

		var fieldErrs validator.ValidationErrors
		if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
			first := fieldErrs[0]
			return data, fmt.Errorf("invalid field %s: failed on %s", strings.ToLower(first.Field()), first.Tag())
		}
		return data, err
	}

	return data, nil
}
