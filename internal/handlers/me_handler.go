package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"

	"github.com/BruksfildServices01/barber-booking/internal/domain/directory"
	"github.com/BruksfildServices01/barber-booking/internal/httperr"
	"github.com/BruksfildServices01/barber-booking/internal/middleware"
)

type MeHandler struct {
	users directory.Repository
}

func NewMeHandler(users directory.Repository) *MeHandler {
	return &MeHandler{users: users}
}

// UpdateMeRequest: campos ausentes ficam como estão. E-mail e papel não
// são editáveis por aqui.
type UpdateMeRequest struct {
	Name            *string `json:"name" binding:"omitempty,min=1,max=100"`
	Phone           *string `json:"phone" binding:"omitempty,max=20"`
	CurrentPassword string  `json:"current_password"`
	NewPassword     string  `json:"new_password" binding:"omitempty,min=6"`
}

func (h *MeHandler) GetMe(c *gin.Context) {
	userID, ok := contextUserID(c)
	if !ok {
		return
	}

	user, err := h.users.GetCustomer(c.Request.Context(), userID)
	if err != nil {
		httperr.FromError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"user": userResponse(user)})
}

func (h *MeHandler) UpdateMe(c *gin.Context) {
	userID, ok := contextUserID(c)
	if !ok {
		return
	}

	var req UpdateMeRequest
	if !bindJSON(c, &req) {
		return
	}

	ctx := c.Request.Context()

	user, err := h.users.GetCustomer(ctx, userID)
	if err != nil {
		httperr.FromError(c, err)
		return
	}

	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			httperr.BadRequest(c, "invalid_name", "Nome não pode ficar vazio.")
			return
		}
		user.Name = name
	}
	if req.Phone != nil {
		user.Phone = strings.TrimSpace(*req.Phone)
	}

	// --------------------------------------------------
	// Troca de senha exige a senha atual
	// --------------------------------------------------
	if req.NewPassword != "" {
		if req.CurrentPassword == "" {
			httperr.BadRequest(c, "current_password_required", "Informe a senha atual.")
			return
		}
		if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.CurrentPassword)); err != nil {
			httperr.Forbidden(c, "invalid_current_password", "Senha atual incorreta.")
			return
		}

		hashed, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcrypt.DefaultCost)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_hash_password"})
			return
		}
		user.PasswordHash = string(hashed)
	}

	if err := h.users.UpdateUser(ctx, user); err != nil {
		httperr.FromError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"user": userResponse(user)})
}

func contextUserID(c *gin.Context) (uint, bool) {
	userIDVal, exists := c.Get(middleware.ContextUserID)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user_not_in_context"})
		return 0, false
	}

	userID, ok := userIDVal.(uint)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid_user_id_type"})
		return 0, false
	}
	return userID, true
}
