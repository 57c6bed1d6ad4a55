package handlers

import (
	"net/http"
	"strings"

	"cotacao_service/internal/domain/entities"
	"cotacao_service/pkg"

	"github.com/gin-gonic/gin"
)

const (
	HeaderUserID   = "X-User-ID"
	HeaderUserName = "X-User-Name"
	HeaderUserRole = "X-User-Role"

	actorContextKey = "actor"
)

var errMissingActor = pkg.NewDomainErrorSimple("UNAUTHENTICATED", "Missing or invalid user headers", http.StatusUnauthorized)

// RequireActor reads the caller identity forwarded by the auth gateway and
// rejects requests without a user id or with an unknown role.
func RequireActor() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := strings.TrimSpace(c.GetHeader(HeaderUserID))
		role, ok := entities.ParseRole(strings.ToLower(strings.TrimSpace(c.GetHeader(HeaderUserRole))))
		if id == "" || !ok {
			c.AbortWithStatusJSON(errMissingActor.HTTPStatus, errMissingActor.ToHTTPError())
			return
		}
		c.Set(actorContextKey, entities.Actor{
			ID:   id,
			Name: strings.TrimSpace(c.GetHeader(HeaderUserName)),
			Role: role,
		})
		c.Next()
	}
}

// actorFrom returns the actor stored by RequireActor, or the zero Actor.
func actorFrom(c *gin.Context) entities.Actor {
	v, ok := c.Get(actorContextKey)
	if !ok {
		return entities.Actor{}
	}
	actor, _ := v.(entities.Actor)
	return actor
}
