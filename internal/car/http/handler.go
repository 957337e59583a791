package http

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/nekogravitycat/car-rental-backend/internal/car"
	"github.com/nekogravitycat/car-rental-backend/internal/file"
	fileHttp "github.com/nekogravitycat/car-rental-backend/internal/file/http"
	"github.com/nekogravitycat/car-rental-backend/internal/pkg/request"
	"github.com/nekogravitycat/car-rental-backend/internal/pkg/response"
)

const maxCarImageBytes = 5 << 20

var carImageTypes = []string{"image/jpeg", "image/png", "image/webp"}

type Handler struct {
	service     car.Service
	fileHandler *fileHttp.Handler
}

func NewHandler(service car.Service, fileHandler *fileHttp.Handler) *Handler {
	return &Handler{
		service:     service,
		fileHandler: fileHandler,
	}
}

// List returns the whole catalog, oldest first.
func (h *Handler) List(c *gin.Context) {
	cars, err := h.service.List(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	items := make([]CarResponse, 0, len(cars))
	for _, item := range cars {
		items = append(items, NewCarResponse(item))
	}

	c.JSON(http.StatusOK, ListCarsResponse{Items: items, Total: len(items)})
}

func (h *Handler) Get(c *gin.Context) {
	var req request.ByIDRequest
	if err := c.ShouldBindUri(&req); err != nil {
		response.Error(c, car.ErrNotFound)
		return
	}

	result, err := h.service.GetByID(c.Request.Context(), req.ID)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, NewCarResponse(result))
}

func (h *Handler) Create(c *gin.Context) {
	var req CreateCarRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request", "details": err.Error()})
		return
	}

	created, err := h.service.Create(c.Request.Context(), car.CreateInput{
		Name:        req.Name,
		CarNumber:   req.CarNumber,
		PricePerDay: req.PricePerDay,
		Image:       req.Image,
		Description: req.Description,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusCreated, NewCarResponse(created))
}

// UploadImage stores a new photo and points the car at it.
func (h *Handler) UploadImage(c *gin.Context) {
	var req request.ByIDRequest
	if err := c.ShouldBindUri(&req); err != nil {
		response.Error(c, car.ErrNotFound)
		return
	}

	// Fail before storing anything when the car does not exist.
	if _, err := h.service.GetByID(c.Request.Context(), req.ID); err != nil {
		response.Error(c, err)
		return
	}

	h.fileHandler.HandleFileUpload(c, fileHttp.FileUploadConfig{
		FormFieldName: "image",
		MaxSizeBytes:  maxCarImageBytes,
		AllowedTypes:  carImageTypes,
		ResizeImage:   true,
		AfterUpload: func(ctx context.Context, fileID string) error {
			return h.service.SetImage(ctx, req.ID, file.FileURL(fileID))
		},
	})
}
