package controllers

import (
	"time"

	"campus-feed/dto"
	"campus-feed/internal/storage"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

type UploadHandler struct {
	store storage.Storage
	log   *zap.Logger
	now   func() time.Time
}

func NewUploadHandler(store storage.Storage, log *zap.Logger) *UploadHandler {
	return &UploadHandler{store: store, log: log, now: time.Now}
}

// Upload godoc
// @Summary      Upload a file
// @Tags         upload
// @Accept       multipart/form-data
// @Produce      json
// @Param        file  formData  file  true  "File to store"
// @Success      200  {object}  dto.UploadResp
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /api/upload [post]
func (h *UploadHandler) Upload(c *fiber.Ctx) error {
	fh, err := c.FormFile("file")
	if err != nil || fh == nil {
		return badRequest(c, "No file")
	}
	f, err := fh.Open()
	if err != nil {
		return writeError(c, h.log, err)
	}
	defer f.Close()

	name := storage.ObjectName(h.now(), fh.Filename)
	url, err := h.store.Save(c.UserContext(), name, f, fh.Size, fh.Header.Get("Content-Type"))
	if err != nil {
		return writeError(c, h.log, err)
	}
	h.log.Info("file uploaded", zap.String("name", name), zap.Int64("size", fh.Size))
	return c.JSON(dto.UploadResp{URL: url})
}

// Health godoc
// @Summary      Liveness probe
// @Tags         health
// @Produce      json
// @Success      200  {object}  dto.HealthResp
// @Router       /api/health [get]
func Health(c *fiber.Ctx) error {
	return c.JSON(dto.HealthResp{OK: true})
}
