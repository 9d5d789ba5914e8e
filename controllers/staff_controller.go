package controllers

import (
	"net/http"

	"vph-backend/services"
	"vph-backend/utils"

	"github.com/gin-gonic/gin"
)

type StaffController struct {
	Staff *services.StaffService
}

func NewStaffController(staff *services.StaffService) *StaffController {
	return &StaffController{Staff: staff}
}

func (sc *StaffController) GetStaff(c *gin.Context) {
	members, err := sc.Staff.List(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, members)
}

func (sc *StaffController) CreateStaff(c *gin.Context) {
	var input services.CreateStaffInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid payload")
		return
	}
	member, err := sc.Staff.Create(c.Request.Context(), input)
	if err != nil {
		respondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusCreated, member)
}

func (sc *StaffController) UpdateProfile(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var update services.ProfileUpdate
	if err := c.ShouldBindJSON(&update); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid payload")
		return
	}
	profile, err := sc.Staff.UpdateProfile(c.Request.Context(), id, update)
	if err != nil {
		respondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, profile)
}

type rolesPayload struct {
	Roles []string `json:"roles"`
}

// ReplaceRoles swaps a staff member's whole role set. An empty list is a
// valid submission and removes all department access.
func (sc *StaffController) ReplaceRoles(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var payload rolesPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid payload")
		return
	}
	roles, err := sc.Staff.ReplaceRoles(c.Request.Context(), id, payload.Roles)
	if err != nil {
		respondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, gin.H{"user_id": id, "roles": roles})
}
