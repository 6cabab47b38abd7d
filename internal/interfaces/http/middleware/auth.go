package middleware

import (
	"context"
	"errors"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"motorhub.backend/internal/domain/entities"
	domainerrors "motorhub.backend/internal/domain/errors"
	"motorhub.backend/internal/interfaces/http/response"
	"motorhub.backend/pkg/jwt"
	"motorhub.backend/pkg/logger"
)

const (
	// AuthorizationHeader is the header key for authorization
	AuthorizationHeader = "Authorization"
	// BearerPrefix is the prefix for bearer tokens
	BearerPrefix = "Bearer "
	// TokenCookie carries the access token for clients that cannot set headers
	TokenCookie = "token"
	// ActorKey is the context key for the resolved actor
	ActorKey = "actor"
)

// ActorResolver loads the caller's current role and flags from the store
type ActorResolver interface {
	Resolve(ctx context.Context, userID uuid.UUID) (entities.Actor, error)
}

// AuthMiddleware requires a valid access token and resolves the actor from
// the stored user on every request, so role and suspension changes apply
// without waiting for token expiry.
func AuthMiddleware(jwtService *jwt.JWTService, resolver ActorResolver) gin.HandlerFunc {
	return authenticate(jwtService, resolver, true)
}

// OptionalAuthMiddleware resolves the actor when a token is present and
// otherwise continues as the anonymous zero Actor.
func OptionalAuthMiddleware(jwtService *jwt.JWTService, resolver ActorResolver) gin.HandlerFunc {
	return authenticate(jwtService, resolver, false)
}

func authenticate(jwtService *jwt.JWTService, resolver ActorResolver, required bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := bearerToken(c)
		if err != nil {
			if !required && token == "" {
				c.Next()
				return
			}
			abort(c, err)
			return
		}

		claims, err := jwtService.ValidateToken(token)
		if err != nil {
			logger.Debug(c.Request.Context(), "Rejected access token",
				zap.String("path", c.Request.URL.Path),
				zap.Error(err),
			)
			msg := "Invalid token"
			if errors.Is(err, jwt.ErrExpiredToken) {
				msg = "Token has expired"
			}
			abort(c, domainerrors.Unauthorized(msg))
			return
		}

		actor, err := resolver.Resolve(c.Request.Context(), claims.UserID)
		if err != nil {
			abort(c, err)
			return
		}

		c.Set(ActorKey, actor)
		ctx := context.WithValue(c.Request.Context(), logger.ActorIDKey, actor.ID.String())
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}

func bearerToken(c *gin.Context) (string, error) {
	if header := c.GetHeader(AuthorizationHeader); header != "" {
		if !strings.HasPrefix(header, BearerPrefix) {
			return header, domainerrors.Unauthorized("Invalid authorization format. Use: Bearer <token>")
		}
		return strings.TrimPrefix(header, BearerPrefix), nil
	}
	if cookie, err := c.Cookie(TokenCookie); err == nil && cookie != "" {
		return cookie, nil
	}
	return "", domainerrors.Unauthorized("Authorization header is required")
}

func abort(c *gin.Context, err error) {
	response.Error(c, err)
	c.Abort()
}

// GetActor returns the resolved actor, or the anonymous zero Actor
func GetActor(c *gin.Context) entities.Actor {
	if v, ok := c.Get(ActorKey); ok {
		if actor, ok := v.(entities.Actor); ok {
			return actor
		}
	}
	return entities.Actor{}
}
