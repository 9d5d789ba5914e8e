package controllers

import (
	"net/http"

	"vph-backend/models"
	"vph-backend/services"
	"vph-backend/utils"

	"github.com/gin-gonic/gin"
)

type GuestController struct {
	Guests *services.GuestService
}

func NewGuestController(guests *services.GuestService) *GuestController {
	return &GuestController{Guests: guests}
}

func (gc *GuestController) GetGuests(c *gin.Context) {
	guests, err := gc.Guests.List(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, guests)
}

// GetCorporateGuests lists corporate accounts for the billing views.
func (gc *GuestController) GetCorporateGuests(c *gin.Context) {
	guests, err := gc.Guests.ListByType(c.Request.Context(), models.GuestCorporate)
	if err != nil {
		respondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, guests)
}

func (gc *GuestController) GetGuest(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	guest, err := gc.Guests.GetByID(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, guest)
}

// UpdateGuest applies corrections; settled guests accept contact fields
// only.
func (gc *GuestController) UpdateGuest(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var update services.GuestUpdate
	if err := c.ShouldBindJSON(&update); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid payload")
		return
	}
	guest, err := gc.Guests.Update(c.Request.Context(), id, update)
	if err != nil {
		respondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, guest)
}
