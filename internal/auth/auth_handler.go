package auth

import (
	"net/http"
	"time"

	"lingua-service/internal/models"
	"lingua-service/internal/server/middleware"
	"lingua-service/internal/token"
	"lingua-service/pkg/httperr"

	"github.com/gin-gonic/gin"
)

const sessionCookieName = "jwt"

type AuthHandler struct {
	authService  *AuthService
	issuer       *token.Issuer
	cookieMaxAge time.Duration
	secureCookie bool
}

func NewAuthHandler(authService *AuthService, issuer *token.Issuer, cookieMaxAge time.Duration, secureCookie bool) *AuthHandler {
	return &AuthHandler{
		authService:  authService,
		issuer:       issuer,
		cookieMaxAge: cookieMaxAge,
		secureCookie: secureCookie,
	}
}

// @Summary Sign up
// @Description Create a new account and start a session
// @Tags auth
// @Accept json
// @Produce json
// @Param request body models.SignupRequest true "Signup Request"
// @Success 201 {object} map[string]interface{}
// @Failure 400 {object} httperr.Error
// @Router /auth/signup [post]
func (h *AuthHandler) Signup(c *gin.Context) {
	var req models.SignupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.Write(c, httperr.Validation("All fields are required"))
		return
	}

	user, err := h.authService.Signup(c.Request.Context(), req)
	if err != nil {
		httperr.Write(c, err)
		return
	}

	if err := h.startSession(c, user.ID); err != nil {
		httperr.Write(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"success": true, "user": user})
}

// @Summary Log in
// @Description Verify credentials and start a session
// @Tags auth
// @Accept json
// @Produce json
// @Param request body models.LoginRequest true "Login Request"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} httperr.Error
// @Failure 401 {object} httperr.Error
// @Router /auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req models.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.Write(c, httperr.Validation("All fields are required"))
		return
	}

	user, err := h.authService.Login(c.Request.Context(), req)
	if err != nil {
		httperr.Write(c, err)
		return
	}

	if err := h.startSession(c, user.ID); err != nil {
		httperr.Write(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "user": user})
}

// @Summary Log out
// @Description Clear the session cookie
// @Tags auth
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /auth/logout [post]
func (h *AuthHandler) Logout(c *gin.Context) {
	c.SetSameSite(http.SameSiteStrictMode)
	c.SetCookie(sessionCookieName, "", -1, "/", "", h.secureCookie, true)
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "User logged out successfully"})
}

// @Summary Complete onboarding
// @Description Fill in the profile fields and mark the account onboarded
// @Tags auth
// @Accept json
// @Produce json
// @Param request body models.OnboardRequest true "Onboard Request"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} httperr.Error
// @Failure 404 {object} httperr.Error
// @Router /auth/onboarding [post]
func (h *AuthHandler) Onboard(c *gin.Context) {
	user, err := middleware.CurrentUser(c.Request.Context())
	if err != nil {
		httperr.Write(c, httperr.Auth("Unauthorized"))
		return
	}

	var req models.OnboardRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.Write(c, httperr.Validation("All fields are required"))
		return
	}

	updated, err := h.authService.Onboard(c.Request.Context(), user.ID, req)
	if err != nil {
		httperr.Write(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "user": updated})
}

// @Summary Current user
// @Description Return the authenticated user
// @Tags auth
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Failure 401 {object} httperr.Error
// @Router /auth/me [get]
func (h *AuthHandler) Me(c *gin.Context) {
	user, err := middleware.CurrentUser(c.Request.Context())
	if err != nil {
		httperr.Write(c, httperr.Auth("Unauthorized"))
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "user": user})
}

// @Summary Upload avatar
// @Description Store a profile picture and record its URL
// @Tags auth
// @Accept multipart/form-data
// @Produce json
// @Param avatar formData file true "Avatar image"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} httperr.Error
// @Router /users/avatar [post]
func (h *AuthHandler) UploadAvatar(c *gin.Context) {
	user, err := middleware.CurrentUser(c.Request.Context())
	if err != nil {
		httperr.Write(c, httperr.Auth("Unauthorized"))
		return
	}

	file, err := c.FormFile("avatar")
	if err != nil {
		httperr.Write(c, httperr.Validation("Avatar file is required"))
		return
	}

	updated, err := h.authService.UpdateAvatar(c.Request.Context(), user.ID, file)
	if err != nil {
		httperr.Write(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "user": updated})
}

// startSession issues a token and binds it to an HTTP-only, same-site-strict
// cookie. The secure flag is enabled only in production.
func (h *AuthHandler) startSession(c *gin.Context, userID string) error {
	tok, err := h.issuer.Issue(userID)
	if err != nil {
		return err
	}

	c.SetSameSite(http.SameSiteStrictMode)
	c.SetCookie(sessionCookieName, tok, int(h.cookieMaxAge.Seconds()), "/", "", h.secureCookie, true)
	return nil
}
