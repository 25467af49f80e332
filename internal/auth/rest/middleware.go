package rest

import (
	"net/http"
	"strings"

	"github.com/gorilla/mux"

	"github.com/solestride/shoe-shop/internal/auth/app"
	"github.com/solestride/shoe-shop/internal/auth/identity"
	"github.com/solestride/shoe-shop/pkg/httpx"
)

// RequireAuth rejects requests without a valid bearer token before any
// business handler runs, and stores the verified user id in the context.
func RequireAuth(svc *app.Service) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := bearerToken(r)
			if token == "" {
				httpx.WriteError(w, http.StatusUnauthorized, "missing or invalid token")
				return
			}

			userID, err := svc.VerifyToken(token)
			if err != nil {
				httpx.WriteError(w, http.StatusUnauthorized, "missing or invalid token")
				return
			}

			next.ServeHTTP(w, r.WithContext(identity.WithUserID(r.Context(), userID)))
		})
	}
}

func bearerToken(r *http.Request) string {
	h := r.Header.Get("Authorization")
	if len(h) > 7 && strings.EqualFold(h[:7], "Bearer ") {
		return h[7:]
	}
	return ""
}
