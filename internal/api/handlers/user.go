package handlers

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/dfquintero/sportstore-gateway/internal/adapter"
	appErrors "github.com/dfquintero/sportstore-gateway/internal/errors"
	"github.com/dfquintero/sportstore-gateway/internal/models"
	"github.com/dfquintero/sportstore-gateway/internal/upstream"
	"github.com/dfquintero/sportstore-gateway/internal/utils"
	"github.com/dfquintero/sportstore-gateway/internal/utils/response"
	"github.com/go-playground/validator/v10"
)

// Auth is the slice of the upstream client the user handler proxies to.
type Auth interface {
	Login(ctx context.Context, email, password string) (*upstream.LoginResult, error)
	Profile(ctx context.Context, token string) (*adapter.RawUser, error)
}

type UserHandler struct {
	auth      Auth
	validator *validator.Validate
}

func NewUserHandler(auth Auth) *UserHandler {
	return &UserHandler{auth: auth, validator: validator.New()}
}

// Login proxies credentials to the backend and adapts the returned user
// record: the token passes through untouched, the user comes back canonical.
func (h *UserHandler) Login() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req models.LoginRequest

		if err := utils.DecodeJSONBody(r, &req); err != nil {
			response.Error(w, appErrors.BadRequestError("Invalid request body").WithError(err))

			return
		}

		if err := utils.ValidateStruct(h.validator, &req); err != nil {
			var validationErrs validator.ValidationErrors
			if errors.As(err, &validationErrs) {
				response.ValidationError(w, validationErrs)
			} else {
				response.Error(w, appErrors.ValidationError("Invalid input data"))
			}

			return
		}

		result, err := h.auth.Login(r.Context(), req.Email, req.Password)
		if err != nil {
			var statusErr *upstream.StatusError
			if errors.As(err, &statusErr) && statusErr.StatusCode == http.StatusUnauthorized {
				response.Error(w, appErrors.UnauthorizedError("Invalid credentials").WithError(err))

				return
			}

			response.Error(w, appErrors.UpstreamError("Login failed").WithError(err))

			return
		}

		response.Success(w, http.StatusOK, models.LoginResponse{
			User:  adapter.AdaptUser(result.User),
			Token: result.Token,
		})
	}
}

func (h *UserHandler) Profile() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		token := bearerToken(r)
		if token == "" {
			response.Error(w, appErrors.UnauthorizedError("Authorization header is required"))

			return
		}

		raw, err := h.auth.Profile(r.Context(), token)
		if err != nil {
			var statusErr *upstream.StatusError
			if errors.As(err, &statusErr) && statusErr.StatusCode == http.StatusUnauthorized {
				response.Error(w, appErrors.UnauthorizedError("Invalid or expired token").WithError(err))

				return
			}

			response.Error(w, appErrors.UpstreamError("Failed to fetch profile").WithError(err))

			return
		}

		response.Success(w, http.StatusOK, adapter.AdaptUser(raw))
	}
}

func bearerToken(r *http.Request) string {
	parts := strings.Split(r.Header.Get("Authorization"), " ")
	if len(parts) != 2 || parts[0] != "Bearer" {
		return ""
	}

	return parts[1]
}
