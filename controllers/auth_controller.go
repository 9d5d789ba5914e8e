package controllers

import (
	"net/http"

	"vph-backend/middleware"
	"vph-backend/services"
	"vph-backend/utils"

	"github.com/gin-gonic/gin"
)

type AuthController struct {
	Auth *services.AuthService
}

func NewAuthController(auth *services.AuthService) *AuthController {
	return &AuthController{Auth: auth}
}

type loginPayload struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func (ac *AuthController) Login(c *gin.Context) {
	var payload loginPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid payload")
		return
	}

	session, err := ac.Auth.Login(c.Request.Context(), payload.Username, payload.Password)
	if err != nil {
		respondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, session)
}

// Me returns the authenticated identity with its profile and roles.
func (ac *AuthController) Me(c *gin.Context) {
	id := middleware.CurrentIdentity(c)
	if id == nil {
		utils.JSONError(c, http.StatusUnauthorized, "authentication required")
		return
	}

	session, err := ac.Auth.Whoami(c.Request.Context(), id.UserID)
	if err != nil {
		respondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, session)
}
