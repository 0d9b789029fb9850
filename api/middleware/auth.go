package middleware

import (
	"context"
	"net/http"

	"github.com/communitykitchen/foodshare-backend/api/responses"
	pkgAuth "github.com/communitykitchen/foodshare-backend/pkg/auth"
	"github.com/communitykitchen/foodshare-backend/pkg/config"
	pkgerrors "github.com/communitykitchen/foodshare-backend/pkg/errors"
	"github.com/communitykitchen/foodshare-backend/pkg/logger"
)

// Auth validates the access cookie and seeds the request context with the
// verified email. There is no server-side session store; possession of an
// unexpired signed token is the whole check.
func Auth(cfg config.JWTConfig, logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := pkgAuth.ReadAccessCookie(r, cfg)
			if token == "" {
				responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, "missing credentials"))
				return
			}

			claims, err := pkgAuth.ParseAccessToken(cfg, token)
			if err != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeUnauthorized, err, "invalid token"))
				return
			}

			if claims.Email == "" {
				responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, "missing email claim"))
				return
			}

			ctx := context.WithValue(r.Context(), ctxEmail, claims.Email)
			if claims.Name != "" {
				ctx = context.WithValue(ctx, ctxName, claims.Name)
			}

			if logg != nil {
				ctx = logg.WithUserEmail(ctx, claims.Email)
			}

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
