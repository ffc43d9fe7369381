package http

import (
	"github.com/gin-gonic/gin"

	"quickchat/internal/domain"
	"quickchat/internal/service"
)

// SessionCookieName es la cookie que transporta el token de sesion firmado.
const SessionCookieName = "qc_session"

const (
	identityKey  = "session_identity"
	sessionIDKey = "session_id"
)

// SessionMiddleware carga la identidad de la sesion desde la cookie si
// existe; nunca rechaza el request, eso lo decide cada handler.
func SessionMiddleware(tokenServ *service.SessionTokenService, authServ *service.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := c.Cookie(SessionCookieName)
		if err != nil || token == "" {
			c.Next()
			return
		}
		sid, err := tokenServ.Parse(token)
		if err != nil {
			c.Next()
			return
		}
		identity, err := authServ.Profile(c.Request.Context(), sid)
		if err != nil {
			c.Next()
			return
		}
		c.Set(identityKey, identity)
		c.Set(sessionIDKey, sid)
		c.Next()
	}
}

// GetIdentity obtiene la identidad de sesion desde el contexto.
func GetIdentity(c *gin.Context) (domain.Identity, bool) {
	val, ok := c.Get(identityKey)
	if !ok {
		return domain.Identity{}, false
	}
	identity, ok := val.(domain.Identity)
	return identity, ok
}

// GetSessionID obtiene el id de sesion desde el contexto.
func GetSessionID(c *gin.Context) (string, bool) {
	val, ok := c.Get(sessionIDKey)
	if !ok {
		return "", false
	}
	sid, ok := val.(string)
	return sid, ok
}
