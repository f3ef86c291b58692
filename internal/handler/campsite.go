package handler

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/uma-arai/sbcntr-creekriver/internal/dto"
	"github.com/uma-arai/sbcntr-creekriver/internal/repository"
)

// ListCampsites GET /api/campsites
func (h *Handler) ListCampsites(c *gin.Context) {
	campsites, err := h.CampsiteRepo.ListCampsites(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewCampsiteResponses(campsites))
}

// GetCampsite GET /api/campsites/:id
// キャンプサイトを種別と合わせて返します
func (h *Handler) GetCampsite(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	campsite, err := h.CampsiteRepo.GetCampsite(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			c.String(http.StatusNotFound, campsiteNotFoundMessage)
			return
		}
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewCampsiteResponse(*campsite))
}

// CreateCampsite POST /api/campsites
func (h *Handler) CreateCampsite(c *gin.Context) {
	var req dto.CampsiteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.String(http.StatusBadRequest, invalidDataMessage)
		return
	}

	campsite := req.ToModel()
	if err := h.CampsiteRepo.CreateCampsite(c.Request.Context(), &campsite); err != nil {
		respondError(c, err)
		return
	}

	c.Header("Location", fmt.Sprintf("/api/campsites/%d", campsite.ID))
	c.JSON(http.StatusCreated, dto.NewCampsiteResponse(campsite))
}

// UpdateCampsite PUT /api/campsites/:id
// 名称、種別、画像URLを送信された内容で上書きします
func (h *Handler) UpdateCampsite(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	var req dto.CampsiteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.String(http.StatusBadRequest, invalidDataMessage)
		return
	}

	if err := h.CampsiteRepo.UpdateCampsite(c.Request.Context(), id, req.ToModel()); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// DeleteCampsite DELETE /api/campsites/:id
func (h *Handler) DeleteCampsite(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	if err := h.CampsiteRepo.DeleteCampsite(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
