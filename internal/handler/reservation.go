package handler

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/uma-arai/sbcntr-creekriver/internal/dto"
)

// ListReservations GET /api/reservations
// チェックイン日の昇順で、利用者とキャンプサイト（種別を含む）を含めて返します
func (h *Handler) ListReservations(c *gin.Context) {
	reservations, err := h.ReservationRepo.ListReservations(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewReservationResponses(reservations))
}

// CreateReservation POST /api/reservations
func (h *Handler) CreateReservation(c *gin.Context) {
	var req dto.ReservationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.String(http.StatusBadRequest, invalidDataMessage)
		return
	}

	reservation := req.ToModel()
	if err := h.ReservationRepo.CreateReservation(c.Request.Context(), &reservation); err != nil {
		respondError(c, err)
		return
	}

	c.Header("Location", fmt.Sprintf("/api/reservations/%d", reservation.ID))
	c.JSON(http.StatusCreated, dto.NewReservationResponse(reservation))
}

// DeleteReservation DELETE /api/reservations/:id
func (h *Handler) DeleteReservation(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	if err := h.ReservationRepo.DeleteReservation(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
