package controllers

import (
	"net/http"
	"time"

	"github.com/communitykitchen/foodshare-backend/api/responses"
	"github.com/communitykitchen/foodshare-backend/api/validators"
	pkgAuth "github.com/communitykitchen/foodshare-backend/pkg/auth"
	"github.com/communitykitchen/foodshare-backend/pkg/config"
	pkgerrors "github.com/communitykitchen/foodshare-backend/pkg/errors"
	"github.com/communitykitchen/foodshare-backend/pkg/logger"
)

type issueTokenRequest struct {
	Email string `json:"email" validate:"required,email"`
	Name  string `json:"name,omitempty"`
}

type issueTokenResponse struct {
	Token     string `json:"token"`
	ExpiresIn int    `json:"expires_in"`
}

// IssueToken mints a signed access token for the submitted identity and
// attaches it as an HTTP-only cookie. There is no credential check beyond the
// payload itself; the upstream identity provider has already authenticated the
// user before the frontend calls this endpoint.
func IssueToken(cfg config.JWTConfig, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload issueTokenRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		token, err := pkgAuth.MintAccessToken(cfg, time.Now(), pkgAuth.AccessTokenPayload{
			Email: payload.Email,
			Name:  payload.Name,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "mint access token"))
			return
		}

		pkgAuth.SetAccessCookie(w, cfg, token)
		responses.WriteSuccess(w, issueTokenResponse{
			Token:     token,
			ExpiresIn: int(cfg.TokenTTL() / time.Second),
		})
	}
}

// Logout expires the access cookie. Previously issued tokens stay valid until
// their natural expiry.
func Logout(cfg config.JWTConfig, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		pkgAuth.ClearAccessCookie(w, cfg)
		responses.WriteSuccess(w, map[string]bool{"success": true})
	}
}
