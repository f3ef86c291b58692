package handler

import (
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/uma-arai/sbcntr-creekriver/internal/common/utils"
	"github.com/uma-arai/sbcntr-creekriver/internal/repository"
)

const (
	invalidDataMessage      = "Invalid data submitted"
	campsiteNotFoundMessage = "Campsite not found"
)

// Handler はHTTPリクエストの処理に必要なリポジトリを保持します
type Handler struct {
	CampsiteRepo    repository.CampsiteRepository
	ReservationRepo repository.ReservationRepository
}

// NewHandler は新しいHandlerを作成します
func NewHandler(campsiteRepo repository.CampsiteRepository, reservationRepo repository.ReservationRepository) *Handler {
	return &Handler{
		CampsiteRepo:    campsiteRepo,
		ReservationRepo: reservationRepo,
	}
}

// NewRouter はルーティングを登録したginのエンジンを作成します
func NewRouter(h *Handler) *gin.Engine {
	router := gin.New()
	router.Use(gin.Logger(), gin.Recovery(), RequestID())

	// Health-check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := router.Group("/api")
	{
		api.GET("/campsites", h.ListCampsites)
		api.GET("/campsites/:id", h.GetCampsite)
		api.POST("/campsites", h.CreateCampsite)
		api.PUT("/campsites/:id", h.UpdateCampsite)
		api.DELETE("/campsites/:id", h.DeleteCampsite)

		api.GET("/reservations", h.ListReservations)
		api.POST("/reservations", h.CreateReservation)
		api.DELETE("/reservations/:id", h.DeleteReservation)
	}

	return router
}

// parseID はパスパラメータのIDを取得します
// 数値でない場合は400を返してfalseを返します
func parseID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.String(http.StatusBadRequest, invalidDataMessage)
		return 0, false
	}
	return id, true
}

// respondError はリポジトリのエラーをHTTPステータスに変換します
// NotFoundは本文なしの404、InvalidDataは400、それ以外は500とします
func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, repository.ErrNotFound):
		c.Status(http.StatusNotFound)
	case errors.Is(err, repository.ErrInvalidData):
		c.String(http.StatusBadRequest, invalidDataMessage)
	default:
		log.Printf("Unhandled error on %s %s: %v", c.Request.Method, c.Request.URL.Path, utils.GetStackWithError(err))
		c.Status(http.StatusInternalServerError)
	}
}
