package handler

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"hostelcare/backend/internal/config"
	"hostelcare/backend/internal/models"

	"github.com/gin-gonic/gin"
	jwt "github.com/golang-jwt/jwt/v5"
)

const (
	tokenIssuer = "hostelcare-service"

	ctxUserID = "userID"
	ctxRole   = "role"

	roleAdmin   = config.RoleAdmin
	roleStudent = config.RoleStudent
)

// Auth issues and verifies the HS256 bearer tokens.
type Auth struct {
	Secret []byte
	TTL    time.Duration
}

func NewAuth(secret string, ttl time.Duration) *Auth {
	return &Auth{Secret: []byte(secret), TTL: ttl}
}

// Claims are the identity fields carried by a token.
type Claims struct {
	UserID string
	Role   string
}

func (a *Auth) IssueToken(user *models.User) (string, error) {
	claims := jwt.MapClaims{
		"user_id": user.ID,
		"role":    user.Role,
		"exp":     time.Now().Add(a.TTL).Unix(),
		"iss":     tokenIssuer,
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(a.Secret)
}

func (a *Auth) ParseToken(tokenString string) (*Claims, error) {
	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		return a.Secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(tokenIssuer),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		return nil, err
	}
	mc, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, errors.New("unexpected claims type")
	}
	userID, _ := mc["user_id"].(string)
	role, _ := mc["role"].(string)
	if userID == "" || role == "" {
		return nil, errors.New("token is missing identity claims")
	}
	return &Claims{UserID: userID, Role: role}, nil
}

// RequireAuth accepts "Authorization: Bearer <token>" or, for websocket
// upgrades, a token query parameter.
func (a *Auth) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString := c.Query("token")
		if authHeader := c.GetHeader("Authorization"); strings.HasPrefix(authHeader, "Bearer ") {
			tokenString = strings.TrimPrefix(authHeader, "Bearer ")
		}
		if tokenString == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"success": false, "message": "Authorization token missing"})
			return
		}
		claims, err := a.ParseToken(tokenString)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"success": false, "message": "Invalid token or expired"})
			return
		}
		c.Set(ctxUserID, claims.UserID)
		c.Set(ctxRole, claims.Role)
		c.Next()
	}
}

func RequireRole(role string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.GetString(ctxRole) != role {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"success": false, "message": "Access denied"})
			return
		}
		c.Next()
	}
}

type loginRequest struct {
	RollNumber string `json:"rollNumber" binding:"required"`
	Password   string `json:"password" binding:"required"`
}

// Login exchanges credentials for a token.
func (h *Handler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	user, err := h.Roster.Authenticate(c.Request.Context(), req.RollNumber, req.Password)
	if err != nil {
		respondError(c, err)
		return
	}
	token, err := h.Auth.IssueToken(user)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": gin.H{"token": token, "user": user}})
}

func currentUser(c *gin.Context) (string, string) {
	return c.GetString(ctxUserID), c.GetString(ctxRole)
}
