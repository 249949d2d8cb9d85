package api

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v4"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Context key for the authenticated user
const ContextUserIDKey = "userID"

// jwtClaims defines the structure we expect in the JWT payload.
// Mirrors the structure used in authService.generateJWT.
type jwtClaims struct {
	UserID string `json:"uid"`
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

		if !token.Valid || claims.UserID == "" {
			abortWithError(c, http.StatusUnauthorized, "Invalid token or missing claims")
			return
		}

		// Store UserID as string (hex representation) for handlers.
		c.Set(ContextUserIDKey, claims.UserID)

		c.Next()
	}
}

// Helper to return JSON error response and abort request
func abortWithError(c *gin.Context, code int, message string) {
	c.AbortWithStatusJSON(code, gin.H{"error": message})
}

// getUserIDFromContext resolves the authenticated user's ObjectID set
// by AuthMiddleware. Every service call below the API layer takes this
// as an explicit argument; nothing reads ambient identity.
func getUserIDFromContext(c *gin.Context) (primitive.ObjectID, error) {
	idRaw, exists := c.Get(ContextUserIDKey)
	if !exists {
		return primitive.NilObjectID, errors.New("user ID not found in context")
	}
	idStr, ok := idRaw.(string)
	if !ok {
		return primitive.NilObjectID, errors.New("invalid user ID type in context")
	}
	userID, err := primitive.ObjectIDFromHex(idStr)
	if err != nil {
		return primitive.NilObjectID, errors.New("invalid user ID format in token")
	}
	return userID, nil
}
