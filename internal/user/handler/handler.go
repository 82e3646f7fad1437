package handler

import (
	"fmt"
	"net/http"

	"tour-booking-api/internal/config"
	"tour-booking-api/internal/middleware"
	"tour-booking-api/internal/user/model"
	"tour-booking-api/internal/user/service"
	appErrors "tour-booking-api/pkg/errors"
	"tour-booking-api/pkg/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type UserHandler struct {
	service *service.UserService
	cfg     *config.Config
}

func NewHandler(service *service.UserService, cfg *config.Config) *UserHandler {
	return &UserHandler{service: service, cfg: cfg}
}

func (h *UserHandler) RegisterRoutes(router *gin.RouterGroup) {
	users := router.Group("/users")
	{
		users.POST("/signup", h.Signup)
		users.POST("/login", h.Login)
		users.POST("/forgotPassword", h.ForgotPassword)
		users.PATCH("/resetPassword/:token", h.ResetPassword)
	}
}

func (h *UserHandler) RegisterProtectedRoutes(router *gin.RouterGroup) {
	users := router.Group("/users")
	{
		users.PATCH("/updateMyPassword", h.UpdateMyPassword)
		users.GET("/me", h.Me)
		users.PATCH("/updateMe", h.UpdateMe)
		users.DELETE("/deleteMe", h.DeleteMe)
	}
}

func (h *UserHandler) RegisterAdminRoutes(router *gin.RouterGroup) {
	users := router.Group("/users")
	{
		users.GET("", h.List)
		users.GET("/:id", h.Get)
		users.DELETE("/:id", h.Delete)
	}
}

// grantToken mirrors the bearer token into the jwt cookie alongside the
// JSON response; the secure flag is only set in production.
func (h *UserHandler) grantToken(c *gin.Context, token string) {
	maxAge := h.cfg.JWT.ExpiryHours * 3600
	utils.SetTokenCookie(c, token, maxAge, h.cfg.Server.IsProduction())
}

func (h *UserHandler) Signup(c *gin.Context) {
	var request model.SignupRequest

	if err := c.ShouldBindJSON(&request); err != nil {
		_ = c.Error(appErrors.Validation("invalid request body", err))
		c.Abort()
		return
	}

	request.Email = utils.SanitizeEmail(request.Email)
	request.Name = utils.SanitizeString(request.Name)

	result, err := h.service.Signup(c.Request.Context(), &request)
	if err != nil {
		_ = c.Error(err)
		c.Abort()
		return
	}

	h.grantToken(c, result.Token)
	utils.SuccessToken(c, http.StatusCreated, result.Token, gin.H{"user": result.User})
}

func (h *UserHandler) Login(c *gin.Context) {
	var request model.LoginRequest

	if err := c.ShouldBindJSON(&request); err != nil {
		_ = c.Error(appErrors.Validation("invalid request body", err))
		c.Abort()
		return
	}

	request.Email = utils.SanitizeEmail(request.Email)

	token, err := h.service.Login(c.Request.Context(), &request)
	if err != nil {
		_ = c.Error(err)
		c.Abort()
		return
	}

	h.grantToken(c, token)
	utils.SuccessToken(c, http.StatusOK, token, nil)
}

func (h *UserHandler) ForgotPassword(c *gin.Context) {
	var request model.ForgotPasswordRequest

	if err := c.ShouldBindJSON(&request); err != nil {
		_ = c.Error(appErrors.Validation("invalid request body", err))
		c.Abort()
		return
	}

	request.Email = utils.SanitizeEmail(request.Email)

	if err := h.service.ForgotPassword(c.Request.Context(), &request, h.resetURLBase(c)); err != nil {
		_ = c.Error(err)
		c.Abort()
		return
	}

	utils.SuccessMessage(c, http.StatusOK, "reset token sent to email")
}

func (h *UserHandler) ResetPassword(c *gin.Context) {
	var request model.ResetPasswordRequest

	if err := c.ShouldBindJSON(&request); err != nil {
		_ = c.Error(appErrors.Validation("invalid request body", err))
		c.Abort()
		return
	}

	token, err := h.service.ResetPassword(c.Request.Context(), c.Param("token"), &request)
	if err != nil {
		_ = c.Error(err)
		c.Abort()
		return
	}

	h.grantToken(c, token)
	utils.SuccessToken(c, http.StatusOK, token, nil)
}

func (h *UserHandler) UpdateMyPassword(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		_ = c.Error(appErrors.ErrNotAuthenticated)
		c.Abort()
		return
	}

	var request model.UpdatePasswordRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		_ = c.Error(appErrors.Validation("invalid request body", err))
		c.Abort()
		return
	}

	token, err := h.service.UpdatePassword(c.Request.Context(), user.ID, &request)
	if err != nil {
		_ = c.Error(err)
		c.Abort()
		return
	}

	h.grantToken(c, token)
	utils.SuccessToken(c, http.StatusOK, token, nil)
}

func (h *UserHandler) Me(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		_ = c.Error(appErrors.ErrNotAuthenticated)
		c.Abort()
		return
	}

	utils.Success(c, http.StatusOK, gin.H{"user": user.ToResponse()})
}

func (h *UserHandler) UpdateMe(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		_ = c.Error(appErrors.ErrNotAuthenticated)
		c.Abort()
		return
	}

	// Password fields are handled exclusively by updateMyPassword.
	var probe struct {
		Password        *string `json:"password"`
		PasswordConfirm *string `json:"passwordConfirm"`
		model.UpdateProfileRequest
	}
	if err := c.ShouldBindJSON(&probe); err != nil {
		_ = c.Error(appErrors.Validation("invalid request body", err))
		c.Abort()
		return
	}
	if probe.Password != nil || probe.PasswordConfirm != nil {
		_ = c.Error(appErrors.Validation("this route is not for password updates, please use /updateMyPassword", nil))
		c.Abort()
		return
	}

	if probe.Name != nil {
		sanitized := utils.SanitizeString(*probe.Name)
		probe.Name = &sanitized
	}

	profile, err := h.service.UpdateProfile(c.Request.Context(), user.ID, &probe.UpdateProfileRequest)
	if err != nil {
		_ = c.Error(err)
		c.Abort()
		return
	}

	utils.Success(c, http.StatusOK, gin.H{"user": profile})
}

func (h *UserHandler) DeleteMe(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		_ = c.Error(appErrors.ErrNotAuthenticated)
		c.Abort()
		return
	}

	if err := h.service.Deactivate(c.Request.Context(), user.ID); err != nil {
		_ = c.Error(err)
		c.Abort()
		return
	}

	c.JSON(http.StatusNoContent, nil)
}

func (h *UserHandler) List(c *gin.Context) {
	users, err := h.service.List(c.Request.Context())
	if err != nil {
		_ = c.Error(err)
		c.Abort()
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":  "success",
		"results": len(users),
		"data":    gin.H{"users": users},
	})
}

func (h *UserHandler) Get(c *gin.Context) {
	userID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		_ = c.Error(appErrors.Validation("invalid user id", err))
		c.Abort()
		return
	}

	user, err := h.service.Get(c.Request.Context(), userID)
	if err != nil {
		_ = c.Error(err)
		c.Abort()
		return
	}

	utils.Success(c, http.StatusOK, gin.H{"user": user})
}

func (h *UserHandler) Delete(c *gin.Context) {
	userID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		_ = c.Error(appErrors.Validation("invalid user id", err))
		c.Abort()
		return
	}

	if err := h.service.Delete(c.Request.Context(), userID); err != nil {
		_ = c.Error(err)
		c.Abort()
		return
	}

	c.JSON(http.StatusNoContent, nil)
}

// resetURLBase rebuilds the externally visible resetPassword URL from the
// incoming request, so emailed links point back at the host the client
// actually reached.
func (h *UserHandler) resetURLBase(c *gin.Context) string {
	scheme := "http"
	if c.Request.TLS != nil || c.GetHeader("X-Forwarded-Proto") == "https" {
		scheme = "https"
	}
	return fmt.Sprintf("%s://%s/api/v1/users/resetPassword", scheme, c.Request.Host)
}
