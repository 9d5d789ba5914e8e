package controllers

import (
	"errors"
	"net/http"

	"vph-backend/apperrors"
	"vph-backend/utils"

	"github.com/gin-gonic/gin"
)

// respondError maps service errors onto HTTP responses. Validation keeps
// its field map; partial operations get a distinct code so an operator
// can spot them; everything else collapses to a safe message.
func respondError(c *gin.Context, err error) {
	if v, ok := apperrors.AsValidation(err); ok {
		utils.JSONFieldErrors(c, http.StatusBadRequest, v.Fields)
		return
	}
	if p, ok := apperrors.AsPartial(err); ok {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error":   "partial_operation",
			"detail": gin.H{
				"operation": p.Op,
				"done":      p.Done,
				"failed":    p.Failed,
			},
		})
		return
	}

	switch {
	case errors.Is(err, apperrors.ErrNotFound):
		utils.JSONError(c, http.StatusNotFound, "not found")
	case errors.Is(err, apperrors.ErrInvalidCredentials):
		utils.JSONError(c, http.StatusUnauthorized, "invalid credentials")
	case errors.Is(err, apperrors.ErrAccountDisabled):
		utils.JSONError(c, http.StatusForbidden, "account disabled")
	case errors.Is(err, apperrors.ErrRoomUnavailable):
		utils.JSONError(c, http.StatusConflict, "room is not available")
	case errors.Is(err, apperrors.ErrNotCheckedIn):
		utils.JSONError(c, http.StatusConflict, "booking is not checked in")
	case errors.Is(err, apperrors.ErrInvalidTransition):
		utils.JSONError(c, http.StatusConflict, "invalid status transition")
	case errors.Is(err, apperrors.ErrOverpayment):
		utils.JSONError(c, http.StatusConflict, "payment exceeds total amount")
	case errors.Is(err, apperrors.ErrGuestLocked):
		utils.JSONError(c, http.StatusConflict, "guest record is settled; only contact fields may change")
	case errors.Is(err, apperrors.ErrRefExhausted):
		utils.JSONError(c, http.StatusConflict, "could not allocate a booking reference, please retry")
	default:
		utils.JSONError(c, http.StatusInternalServerError, "internal error")
	}
}
