package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/davicafu/storefront/internal/shared/infra/http/middleware"
	"github.com/davicafu/storefront/internal/user/application"
	userDomain "github.com/davicafu/storefront/internal/user/domain"
	"github.com/davicafu/storefront/pkg/utils"
)

// UserHandler encapsula los endpoints HTTP de cuentas y autenticación.
type UserHandler struct {
	service    *application.UserService
	cookieDays int
}

func NewUserHandler(service *application.UserService, cookieDays int) *UserHandler {
	return &UserHandler{service: service, cookieDays: cookieDays}
}

// --- DTOs ---

type registerRequest struct {
	Name       string `json:"name" binding:"required,max=30"`
	Email      string `json:"email" binding:"required,email"`
	Password   string `json:"password" binding:"required"`
	Tel        string `json:"tel" binding:"required"`
	Address    string `json:"address"`
	City       string `json:"city"`
	PostalCode string `json:"postalCode"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type forgotPasswordRequest struct {
	Email string `json:"email" binding:"required"`
}

type resetPasswordRequest struct {
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirmPassword"`
}

type updatePasswordRequest struct {
	OldPassword string `json:"oldPassword"`
	Password    string `json:"password"`
}

type profileRequest struct {
	Name       *string `json:"name" binding:"omitempty,max=30"`
	Email      *string `json:"email" binding:"omitempty,email"`
	Tel        *string `json:"tel"`
	Address    *string `json:"address"`
	City       *string `json:"city"`
	PostalCode *string `json:"postalCode"`
}

type adminUserRequest struct {
	Name  string `json:"name" binding:"omitempty,max=30"`
	Email string `json:"email" binding:"omitempty,email"`
	Role  string `json:"role"`
}

// sendToken fija la cookie de sesión y responde {success, token, user}.
func (h *UserHandler) sendToken(c *gin.Context, status int, session *application.Session) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(middleware.TokenCookie, session.Token, h.cookieDays*24*60*60, "/", "", false, true)
	utils.SendSuccess(c, status, gin.H{"token": session.Token, "user": session.User})
}

// --- Autenticación ---

func (h *UserHandler) Register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		_ = c.Error(err)
		return
	}
	session, err := h.service.Register(c.Request.Context(), application.RegisterInput{
		Name:       req.Name,
		Email:      req.Email,
		Password:   req.Password,
		Tel:        req.Tel,
		Address:    req.Address,
		City:       req.City,
		PostalCode: req.PostalCode,
	})
	if err != nil {
		_ = c.Error(err)
		return
	}
	h.sendToken(c, http.StatusCreated, session)
}

func (h *UserHandler) Login(c *gin.Context) {
	var req loginRequest
	// Un cuerpo vacío acaba en ErrMissingCredentials.
	_ = c.ShouldBindJSON(&req)

	session, err := h.service.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		_ = c.Error(err)
		return
	}
	h.sendToken(c, http.StatusOK, session)
}

func (h *UserHandler) Logout(c *gin.Context) {
	c.SetCookie(middleware.TokenCookie, "", -1, "/", "", false, true)
	utils.SendMessage(c, http.StatusOK, "Logged Out")
}

func (h *UserHandler) ForgotPassword(c *gin.Context) {
	var req forgotPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		_ = c.Error(err)
		return
	}
	email, err := h.service.ForgotPassword(c.Request.Context(), req.Email)
	if err != nil {
		_ = c.Error(err)
		return
	}
	utils.SendMessage(c, http.StatusOK, "Email sent to: "+email)
}

func (h *UserHandler) ResetPassword(c *gin.Context) {
	var req resetPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		_ = c.Error(err)
		return
	}
	session, err := h.service.ResetPassword(c.Request.Context(), c.Param("token"), req.Password, req.ConfirmPassword)
	if err != nil {
		_ = c.Error(err)
		return
	}
	h.sendToken(c, http.StatusOK, session)
}

// --- Perfil propio ---

func (h *UserHandler) Me(c *gin.Context) {
	principal, _ := middleware.CurrentPrincipal(c)
	user, err := h.service.Me(c.Request.Context(), principal.ID)
	if err != nil {
		_ = c.Error(err)
		return
	}
	utils.SendSuccess(c, http.StatusOK, gin.H{"user": user})
}

func (h *UserHandler) UpdatePassword(c *gin.Context) {
	var req updatePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		_ = c.Error(err)
		return
	}
	principal, _ := middleware.CurrentPrincipal(c)
	session, err := h.service.UpdatePassword(c.Request.Context(), principal.ID, req.OldPassword, req.Password)
	if err != nil {
		_ = c.Error(err)
		return
	}
	h.sendToken(c, http.StatusOK, session)
}

func (h *UserHandler) UpdateProfile(c *gin.Context) {
	var req profileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		_ = c.Error(err)
		return
	}
	principal, _ := middleware.CurrentPrincipal(c)
	user, err := h.service.UpdateProfile(c.Request.Context(), principal.ID, userDomain.Profile{
		Name:       req.Name,
		Email:      req.Email,
		Tel:        req.Tel,
		Address:    req.Address,
		City:       req.City,
		PostalCode: req.PostalCode,
	})
	if err != nil {
		_ = c.Error(err)
		return
	}
	utils.SendSuccess(c, http.StatusOK, gin.H{"user": user})
}

// --- Administración ---

func (h *UserHandler) AllUsers(c *gin.Context) {
	users, err := h.service.ListUsers(c.Request.Context(), c.Request.URL.Query())
	if err != nil {
		_ = c.Error(err)
		return
	}
	utils.SendSuccess(c, http.StatusOK, gin.H{"count": len(users), "users": users})
}

func (h *UserHandler) GetUser(c *gin.Context) {
	id, ok := utils.ParseID(c, "id")
	if !ok {
		return
	}
	user, err := h.service.GetUser(c.Request.Context(), id)
	if err != nil {
		_ = c.Error(err)
		return
	}
	utils.SendSuccess(c, http.StatusOK, gin.H{"user": user})
}

func (h *UserHandler) UpdateUser(c *gin.Context) {
	id, ok := utils.ParseID(c, "id")
	if !ok {
		return
	}
	var req adminUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		_ = c.Error(err)
		return
	}
	if _, err := h.service.AdminUpdateUser(c.Request.Context(), id, req.Name, req.Email, req.Role); err != nil {
		_ = c.Error(err)
		return
	}
	utils.SendSuccess(c, http.StatusOK, gin.H{})
}

func (h *UserHandler) DeleteUser(c *gin.Context) {
	id, ok := utils.ParseID(c, "id")
	if !ok {
		return
	}
	if _, err := h.service.DeleteUser(c.Request.Context(), id); err != nil {
		_ = c.Error(err)
		return
	}
	utils.SendSuccess(c, http.StatusOK, gin.H{})
}
