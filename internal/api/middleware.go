package api

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"alcyxob/pt-crm/internal/domain"
	"alcyxob/pt-crm/internal/policy"
	"alcyxob/pt-crm/internal/repository"
	"alcyxob/pt-crm/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v4"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Constants for context keys
const (
	ContextUserIDKey   = "userID"
	ContextUserRoleKey = "userRole"
)

// jwtClaims mirrors the structure produced by authService.generateJWT.
type jwtClaims struct {
	UserID string      `json:"uid"`
	Role   domain.Role `json:"role"`
	jwt.RegisteredClaims
}

// AuthMiddleware creates a Gin middleware for JWT authentication.
func AuthMiddleware(jwtSecret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			abortWithError(c, http.StatusUnauthorized, "Authorization header is missing")
			return
		}

		// Expecting "Bearer <token>"
		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
			abortWithError(c, http.StatusUnauthorized, "Authorization header format must be Bearer {token}")
			return
		}
		tokenString := parts[1]

		claims := &jwtClaims{}
		token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
			}
			return []byte(jwtSecret), nil
		})
		if err != nil {
			if errors.Is(err, jwt.ErrTokenExpired) {
				abortWithError(c, http.StatusUnauthorized, "Token has expired")
			} else {
				abortWithError(c, http.StatusUnauthorized, fmt.Sprintf("Invalid token: %v", err))
			}
			return
		}

		if !token.Valid || claims.UserID == "" || claims.Role == "" {
			abortWithError(c, http.StatusUnauthorized, "Invalid token or missing claims")
			return
		}

		// Store identity for downstream handlers.
		c.Set(ContextUserIDKey, claims.UserID)
		c.Set(ContextUserRoleKey, claims.Role)

		c.Next()
	}
}

// RoleMiddleware creates middleware to check if user has the required role(s).
// Must run AFTER AuthMiddleware.
func RoleMiddleware(allowedRoles ...domain.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		roleRaw, exists := c.Get(ContextUserRoleKey)
		if !exists {
			abortWithError(c, http.StatusInternalServerError, "User role not found in context")
			return
		}
		userRole, ok := roleRaw.(domain.Role)
		if !ok {
			abortWithError(c, http.StatusInternalServerError, "Invalid user role type in context")
			return
		}

		for _, allowed := range allowedRoles {
			if userRole == allowed {
				c.Next()
				return
			}
		}
		abortWithError(c, http.StatusForbidden, fmt.Sprintf("Access denied: Role '%s' does not have permission", userRole))
	}
}

// Helper to return JSON error response and abort request
func abortWithError(c *gin.Context, code int, message string) {
	c.AbortWithStatusJSON(code, gin.H{"error": message})
}

// actorFromContext rebuilds the domain actor from the values AuthMiddleware
// stored. Returns nil when no authenticated identity is present, which the
// policy maps to an Unauthenticated deny.
func actorFromContext(c *gin.Context) *domain.Actor {
	idRaw, exists := c.Get(ContextUserIDKey)
	if !exists {
		return nil
	}
	idStr, ok := idRaw.(string)
	if !ok {
		return nil
	}
	id, err := primitive.ObjectIDFromHex(idStr)
	if err != nil {
		return nil
	}

	roleRaw, exists := c.Get(ContextUserRoleKey)
	if !exists {
		return nil
	}
	role, ok := roleRaw.(domain.Role)
	if !ok {
		return nil
	}

	return domain.NewActor(id, role)
}

// parseObjectID parses a path parameter as a Mongo ObjectID.
func parseObjectID(c *gin.Context, param string) (primitive.ObjectID, bool) {
	id, err := primitive.ObjectIDFromHex(c.Param(param))
	if err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Invalid %s format", param))
		return primitive.NilObjectID, false
	}
	return id, true
}

// parseHexID parses an ObjectID carried in a request body.
func parseHexID(raw string) (primitive.ObjectID, error) {
	return primitive.ObjectIDFromHex(raw)
}

// respondError maps policy, repository and service errors to HTTP statuses.
// Unexpected failures become a generic 500 without internal detail.
func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, policy.ErrUnauthenticated):
		abortWithError(c, http.StatusUnauthorized, "Authentication required")
	case errors.Is(err, policy.ErrForbidden):
		abortWithError(c, http.StatusForbidden, "Access denied")
	case errors.Is(err, policy.ErrNotFound),
		errors.Is(err, repository.ErrNotFound),
		errors.Is(err, service.ErrClientNotFound),
		errors.Is(err, service.ErrWorkoutNotFound),
		errors.Is(err, service.ErrSessionNotFound),
		errors.Is(err, service.ErrMeasurementNotFound),
		errors.Is(err, service.ErrNotificationNotFound),
		errors.Is(err, service.ErrPhotoNotUploaded):
		abortWithError(c, http.StatusNotFound, err.Error())
	case errors.Is(err, service.ErrUserAlreadyExists):
		abortWithError(c, http.StatusConflict, err.Error())
	case errors.Is(err, service.ErrEmptyExerciseList),
		errors.Is(err, service.ErrInvalidRating),
		errors.Is(err, service.ErrNoExerciseData),
		errors.Is(err, service.ErrNotAClient),
		errors.Is(err, service.ErrInvalidPhotoType):
		abortWithError(c, http.StatusBadRequest, err.Error())
	default:
		abortWithError(c, http.StatusInternalServerError, "An unexpected error occurred")
	}
}
