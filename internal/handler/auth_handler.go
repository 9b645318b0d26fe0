package handler

import (
	"errors"
	"net/http"

	"github.com/atlas87/atlas-backend/internal/discord"
	"github.com/atlas87/atlas-backend/internal/dto"
	"github.com/atlas87/atlas-backend/internal/repository"
	"github.com/atlas87/atlas-backend/internal/service"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// AuthHandler handles authentication requests
type AuthHandler struct {
	authService service.AuthService
	logger      *zap.Logger
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(authService service.AuthService, logger *zap.Logger) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		logger:      logger,
	}
}

// Authorize redirects the browser to Discord's OAuth2 authorization page
// @Summary Start Discord OAuth2 flow
// @Tags auth
// @Success 302
// @Router /auth/discord [get]
func (h *AuthHandler) Authorize(c *gin.Context) {
	c.Redirect(http.StatusFound, h.authService.AuthorizeURL())
}

// Callback handles the Discord OAuth2 callback
// @Summary Handle Discord OAuth2 callback
// @Description Processes the authorization code returned by Discord to authenticate the user.
// @Tags auth
// @Accept json
// @Produce json
// @Param request body dto.DiscordCallbackRequest true "Callback request"
// @Success 200 {object} dto.AuthResponse
// @Failure 400 {object} dto.ErrorResponse
// @Router /auth/discord [post]
func (h *AuthHandler) Callback(c *gin.Context) {
	var req dto.DiscordCallbackRequest
	// A missing or malformed body is handled as a missing code so the
	// flow still produces its audit event.
	_ = c.ShouldBindJSON(&req)

	response, err := h.authService.LoginWithDiscord(c.Request.Context(), req.Code)
	if err != nil {
		h.logger.Warn("discord authentication rejected", zap.Error(err))
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Message: callbackErrorMessage(err),
		})
		return
	}

	c.JSON(http.StatusOK, response)
}

// GetMe handles getting the authenticated user's record
// @Summary Get authenticated user
// @Tags auth
// @Security BearerAuth
// @Produce json
// @Success 200 {object} dto.UserResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 400 {object} dto.ErrorResponse
// @Router /auth/me [get]
func (h *AuthHandler) GetMe(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		c.JSON(http.StatusUnauthorized, dto.ErrorResponse{
			Message: "Invalid token",
		})
		return
	}

	user, err := h.authService.GetUser(c.Request.Context(), userID.(string))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			c.JSON(http.StatusBadRequest, dto.ErrorResponse{
				Message: "User not exist",
			})
			return
		}
		h.logger.Error("failed to load user", zap.Error(err))
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Message: "Failed to load user",
		})
		return
	}

	c.JSON(http.StatusOK, user)
}

// callbackErrorMessage maps flow failures to short static messages so
// upstream error detail never reaches the client.
func callbackErrorMessage(err error) string {
	switch {
	case errors.Is(err, service.ErrMissingCode):
		return "Authorization code is missing"
	case errors.Is(err, discord.ErrNotGuildMember):
		return "User is not a member of the required Discord guild."
	default:
		return "Failed to authenticate with Discord"
	}
}
