package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rentflow/backend/internal/infrastructure/auth"
	"github.com/rentflow/backend/internal/infrastructure/logger"
	"github.com/rentflow/backend/internal/interfaces/http/dto"
	"go.uber.org/zap"
)

// JWT context keys
const (
	JWTClaimsKey  = "jwt_claims"
	JWTOwnerIDKey = "jwt_owner_id"
	AuthHeaderKey = "Authorization"
	BearerPrefix  = "Bearer "
)

var errMissingCredentials = errors.New("missing credentials")

// TokenValidator checks an access token and returns its claims
type TokenValidator interface {
	ValidateAccessToken(token string) (*auth.Claims, error)
}

// JWTMiddlewareConfig holds configuration for JWT middleware
type JWTMiddlewareConfig struct {
	Validator TokenValidator
	// PublicPaths match exactly, PublicPrefixes by prefix; both skip authentication
	PublicPaths    []string
	PublicPrefixes []string
	Logger         *zap.Logger
}

// DefaultJWTConfig leaves health, metrics and the API docs public
func DefaultJWTConfig(validator TokenValidator) JWTMiddlewareConfig {
	return JWTMiddlewareConfig{
		Validator:      validator,
		PublicPaths:    []string{"/health", "/metrics"},
		PublicPrefixes: []string{"/swagger"},
	}
}

// JWTAuthMiddleware authenticates with the default configuration
func JWTAuthMiddleware(validator TokenValidator) gin.HandlerFunc {
	return JWTAuthMiddlewareWithConfig(DefaultJWTConfig(validator))
}

// JWTAuthMiddlewareWithConfig resolves the owner every handler acts for from the user_id claim.
// The owner is stored on the gin context and tagged onto the request logger.
func JWTAuthMiddlewareWithConfig(cfg JWTMiddlewareConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		if cfg.isPublic(c.Request.URL.Path) {
			c.Next()
			return
		}

		token, err := bearerToken(c.GetHeader(AuthHeaderKey))
		if err != nil {
			rejectUnauthenticated(c, cfg.Logger, err)
			return
		}
		claims, err := cfg.Validator.ValidateAccessToken(token)
		if err != nil {
			rejectUnauthenticated(c, cfg.Logger, err)
			return
		}

		c.Set(JWTClaimsKey, claims)
		c.Set(JWTOwnerIDKey, claims.UserID)

		ctx := c.Request.Context()
		ctx, reqLogger := logger.WithOwnerID(ctx, logger.FromContext(ctx), claims.UserID)
		c.Request = c.Request.WithContext(ctx)
		logger.SetGinLogger(c, reqLogger)

		c.Next()
	}
}

func (cfg JWTMiddlewareConfig) isPublic(path string) bool {
	for _, p := range cfg.PublicPaths {
		if path == p {
			return true
		}
	}
	for _, prefix := range cfg.PublicPrefixes {
		if strings.HasPrefix(path, prefix) {
			return true
		}
	}
	return false
}

// bearerToken extracts the token from an Authorization header value
func bearerToken(header string) (string, error) {
	if header == "" {
		return "", errMissingCredentials
	}
	token, ok := strings.CutPrefix(header, BearerPrefix)
	if !ok || strings.TrimSpace(token) == "" {
		return "", auth.ErrInvalidToken
	}
	return strings.TrimSpace(token), nil
}

func rejectUnauthenticated(c *gin.Context, log *zap.Logger, err error) {
	code, message := dto.ErrCodeUnauthorized, "Authentication required"
	switch {
	case errors.Is(err, auth.ErrExpiredToken):
		code, message = dto.ErrCodeTokenExpired, "Token has expired"
	case errors.Is(err, errMissingCredentials):
	default:
		code, message = dto.ErrCodeTokenInvalid, "Invalid token"
	}

	if log != nil {
		log.Warn("JWT authentication failed",
			zap.Error(err),
			zap.String("code", code),
			zap.String("path", c.Request.URL.Path),
		)
	}
	c.AbortWithStatusJSON(http.StatusUnauthorized,
		dto.NewErrorResponseWithRequestID(code, message, c.GetString(RequestIDContextKey)))
}

// GetJWTClaims returns the validated claims, or nil on public routes
func GetJWTClaims(c *gin.Context) *auth.Claims {
	claims, _ := c.Get(JWTClaimsKey)
	jwtClaims, _ := claims.(*auth.Claims)
	return jwtClaims
}

// GetOwnerID returns the authenticated owner, or uuid.Nil when the request is anonymous
func GetOwnerID(c *gin.Context) uuid.UUID {
	id, err := uuid.Parse(c.GetString(JWTOwnerIDKey))
	if err != nil {
		return uuid.Nil
	}
	return id
}
