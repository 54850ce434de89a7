package apihandlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	mw "github.com/vivamais/vivamais-backend/pkg/apihelpers/middlewares"
	jwthandling "github.com/vivamais/vivamais-backend/pkg/jwt-handling"
	"github.com/vivamais/vivamais-backend/pkg/user-management/pwhash"
	userTypes "github.com/vivamais/vivamais-backend/pkg/user-management/types"
	umUtils "github.com/vivamais/vivamais-backend/pkg/user-management/utils"
)

func (h *HttpEndpoints) AddAuthAPI(rg *gin.RouterGroup) {
	auth := rg.Group("/auth")
	auth.POST("/register", mw.RequirePayload(), h.registerUser)
	auth.POST("/login", mw.RequirePayload(), h.loginUser)
}

type registerUserReq struct {
	Username string `json:"username"`
	FullName string `json:"full_name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

type loginUserReq struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type userInfo struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	FullName string `json:"full_name"`
	Email    string `json:"email"`
	Role     string `json:"role"`
	IsActive bool   `json:"is_active"`
}

func userInfoFromUser(user userTypes.User) userInfo {
	return userInfo{
		ID:       user.ID.Hex(),
		Username: user.Username,
		FullName: user.FullName,
		Email:    user.Email,
		Role:     user.Role,
		IsActive: user.IsActive,
	}
}

func (h *HttpEndpoints) registerUser(c *gin.Context) {
	var req registerUserReq
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.Error("failed to bind request", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request payload"})
		return
	}

	req.Username = umUtils.SanitizeUsername(req.Username)
	req.Email = umUtils.SanitizeEmail(req.Email)

	if req.Username == "" || req.Email == "" || req.Password == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "username, email and password are required"})
		return
	}
	if !umUtils.CheckEmailFormat(req.Email) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "email format is invalid"})
		return
	}
	if !umUtils.CheckPasswordFormat(req.Password) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "password must have at least 6 characters"})
		return
	}

	if _, err := h.surveyDBConn.GetUserByUsername(req.Username); err == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "username already exists"})
		return
	} else if !errors.Is(err, mongo.ErrNoDocuments) {
		slog.Error("failed to check username", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "error creating user"})
		return
	}
	if _, err := h.surveyDBConn.GetUserByEmail(req.Email); err == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "email already exists"})
		return
	} else if !errors.Is(err, mongo.ErrNoDocuments) {
		slog.Error("failed to check email", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "error creating user"})
		return
	}

	passwordHash, err := pwhash.HashPassword(req.Password)
	if err != nil {
		slog.Error("failed to hash password", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "error creating user"})
		return
	}

	role := req.Role
	if role != userTypes.USER_ROLE_ADMIN {
		role = userTypes.USER_ROLE_USER
	}
	fullName := req.FullName
	if fullName == "" {
		fullName = req.Username
	}

	newUser := userTypes.User{
		Username:     req.Username,
		FullName:     fullName,
		Email:        req.Email,
		PasswordHash: passwordHash,
		Role:         role,
		IsActive:     true,
	}
	id, err := h.surveyDBConn.CreateUser(newUser)
	if err != nil {
		slog.Error("failed to create user", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "error creating user"})
		return
	}
	newUser.ID, _ = primitive.ObjectIDFromHex(id)

	slog.Info("user registered", slog.String("userID", id), slog.String("username", newUser.Username))
	c.JSON(http.StatusCreated, gin.H{"user": userInfoFromUser(newUser)})
}

func (h *HttpEndpoints) loginUser(c *gin.Context) {
	var req loginUserReq
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.Error("failed to bind request", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request payload"})
		return
	}
	if req.Username == "" || req.Password == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "username and password are required"})
		return
	}

	user, err := h.surveyDBConn.GetUserByUsername(umUtils.SanitizeUsername(req.Username))
	if err != nil {
		slog.Warn("login attempt for unknown user", slog.String("username", req.Username))
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid credentials"})
		return
	}

	match, err := pwhash.ComparePasswordWithHash(user.PasswordHash, req.Password)
	if err != nil || !match {
		slog.Warn("login attempt with wrong password", slog.String("userID", user.ID.Hex()))
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid credentials"})
		return
	}
	if !user.IsActive {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "account is deactivated"})
		return
	}

	token, err := jwthandling.GenerateNewSurveyUserToken(
		h.tokenExpiresIn,
		user.ID.Hex(),
		user.Username,
		user.Role,
		h.tokenSignKey,
	)
	if err != nil {
		slog.Error("failed to generate token", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "error during login"})
		return
	}

	slog.Info("user logged in", slog.String("userID", user.ID.Hex()))
	c.JSON(http.StatusOK, gin.H{
		"token": token,
		"user":  userInfoFromUser(user),
	})
}
