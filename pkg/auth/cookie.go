package auth

import (
	"net/http"
	"time"

	"github.com/communitykitchen/foodshare-backend/pkg/config"
)

// SetAccessCookie attaches the signed token as an HTTP-only cookie. SameSite
// is None because the SPA frontends live on separate origins, which in turn
// forces Secure.
func SetAccessCookie(w http.ResponseWriter, cfg config.JWTConfig, token string) {
	http.SetCookie(w, &http.Cookie{
		Name:     cfg.CookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   int(cfg.TokenTTL() / time.Second),
		HttpOnly: true,
		Secure:   true,
		SameSite: http.SameSiteNoneMode,
	})
}

// ClearAccessCookie expires the cookie client-side. The token itself stays
// valid until its natural expiry; there is no server-side revocation list.
func ClearAccessCookie(w http.ResponseWriter, cfg config.JWTConfig) {
	http.SetCookie(w, &http.Cookie{
		Name:     cfg.CookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   true,
		SameSite: http.SameSiteNoneMode,
	})
}

// ReadAccessCookie extracts the raw token from the request, returning an empty
// string when the cookie is absent.
func ReadAccessCookie(r *http.Request, cfg config.JWTConfig) string {
	cookie, err := r.Cookie(cfg.CookieName)
	if err != nil {
		return ""
	}
	return cookie.Value
}
