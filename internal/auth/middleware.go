package auth

import (
	"context"
	"net/http"
	"strings"

	"github.com/grupolocar/erp-server/internal/utils"
)

// Session é o que um handler enxerga de um token já validado.
type Session struct {
	UserID string
	Role   string
}

type ctxKey struct{}

// FromContext devolve a sessão injetada pelo Middleware, se houver.
func FromContext(ctx context.Context) (Session, bool) {
	s, ok := ctx.Value(ctxKey{}).(Session)
	return s, ok
}

// Middleware exige header Authorization "Bearer <token>". Token válido vira
// Session no contexto; ausente ou inválido responde 401.
func Middleware(secret string, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		token, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || token == "" {
			utils.Erro(w, http.StatusUnauthorized, "token ausente")
			return
		}

		claims, err := ValidateJWT(token, secret)
		if err != nil {
			utils.Erro(w, http.StatusUnauthorized, "token inválido ou expirado")
			return
		}

		ctx := context.WithValue(r.Context(), ctxKey{}, Session{
			UserID: claims.UserID,
			Role:   claims.Role,
		})
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// RequireRole restringe a rota a um papel. Roda depois do Middleware.
func RequireRole(role string, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s, ok := FromContext(r.Context())
		if !ok {
			utils.Erro(w, http.StatusUnauthorized, "sessão ausente")
			return
		}
		if s.Role != role {
			utils.Erro(w, http.StatusForbidden, "acesso restrito")
			return
		}
		next.ServeHTTP(w, r)
	})
}
