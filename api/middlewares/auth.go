package middlewares

import (
	"context"
	"net/http"
	"net/url"
	"os"
	"strings"

	"github.com/matheusot/enquete/api/admins"
	"github.com/matheusot/enquete/api/identity"
	"github.com/matheusot/enquete/api/jsonutil"
)

const (
	ReasonUnauthenticated = "unauthenticated"
	ReasonForbidden       = "forbidden"
)

func loginURL() string {
	if u := os.Getenv("ADMIN_LOGIN_URL"); u != "" {
		return u
	}
	return "/admin/login"
}

// deny answers an admin-gate failure. Browsers get a redirect to the login
// page carrying a reason code; API callers get a JSON status.
func deny(responseWriter http.ResponseWriter, request *http.Request, statusCode int, reason string) {
	if strings.Contains(request.Header.Get("Accept"), "text/html") {
		target := loginURL() + "?reason=" + url.QueryEscape(reason) + "&redirect=" + url.QueryEscape(request.URL.Path)
		http.Redirect(responseWriter, request, target, http.StatusSeeOther)
		return
	}

	response := jsonutil.Response{
		Status:  "error",
		Message: reason,
	}
	jsonutil.WriteJSONResponse(responseWriter, response, statusCode)
}

// AdminOnly re-derives the caller's identity on every request and checks the
// email against the admins allow-list. A missing identity and an identity
// that is not allow-listed differ only in status code and reason.
func AdminOnly(provider identity.Provider, store admins.Store) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(responseWriter http.ResponseWriter, request *http.Request) {
			claims, err := provider.FromRequest(request)
			if err != nil {
				deny(responseWriter, request, http.StatusUnauthorized, ReasonUnauthenticated)
				return
			}

			isAdmin, err := store.IsAdmin(request.Context(), claims.Email)
			if err != nil {
				response := jsonutil.Response{
					Status:  "error",
					Message: err.Error(),
				}
				jsonutil.WriteJSONResponse(responseWriter, response, http.StatusInternalServerError)
				return
			}

			if !isAdmin {
				deny(responseWriter, request, http.StatusForbidden, ReasonForbidden)
				return
			}

			ctx := context.WithValue(request.Context(), "claims", claims)

			newRequest := request.WithContext(ctx)
			next.ServeHTTP(responseWriter, newRequest)
		})
	}
}
