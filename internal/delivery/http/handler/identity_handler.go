package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"identity-service/internal/usecase/identity"
	appErrors "identity-service/pkg/errors"
	"identity-service/pkg/utils"
)

type IdentityHandler struct {
	service *identity.Service
}

func NewIdentityHandler(service *identity.Service) *IdentityHandler {
	return &IdentityHandler{service: service}
}

func (h *IdentityHandler) RegisterRoutes(router *gin.RouterGroup) {
	authGroup := router.Group("/auth")
	{
		authGroup.POST("/register", h.Register)
		authGroup.POST("/login", h.Login)
		authGroup.POST("/forgot-password", h.ForgotPassword)
		authGroup.POST("/reset-password", h.ResetPassword)
	}
}

func (h *IdentityHandler) RegisterProtectedRoutes(router *gin.RouterGroup) {
	router.GET("/me", h.Me)
}

func (h *IdentityHandler) Register(c *gin.Context) {
	var req identity.RegisterRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	req.Email = utils.SanitizeEmail(req.Email)

	acc, err := h.service.Register(c.Request.Context(), &req)
	if err != nil {
		respondWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusCreated, "Account registered successfully", acc)
}

func (h *IdentityHandler) Login(c *gin.Context) {
	var req identity.LoginRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	req.Email = utils.SanitizeEmail(req.Email)

	resp, err := h.service.Login(c.Request.Context(), &req)
	if err != nil {
		respondWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Login successful", resp)
}

func (h *IdentityHandler) ForgotPassword(c *gin.Context) {
	var req identity.RequestResetRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	req.Email = utils.SanitizeEmail(req.Email)

	err := h.service.RequestPasswordReset(c.Request.Context(), &req)
	// Unknown emails get the same response as known ones so the endpoint
	// cannot be used to enumerate accounts.
	if err != nil && !errors.Is(err, appErrors.ErrAccountNotFound) {
		respondWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "If the account exists, a password reset email has been sent", nil)
}

func (h *IdentityHandler) ResetPassword(c *gin.Context) {
	var req identity.RedeemResetRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := h.service.RedeemPasswordReset(c.Request.Context(), &req); err != nil {
		respondWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Password reset successfully", nil)
}

func (h *IdentityHandler) Me(c *gin.Context) {
	email := c.GetString("email")
	if email == "" {
		utils.ErrorResponse(c, http.StatusUnauthorized, "Unauthorized")
		return
	}

	acc, err := h.service.Profile(c.Request.Context(), email)
	if err != nil {
		respondWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Profile retrieved successfully", acc)
}
