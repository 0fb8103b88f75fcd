package controllers

import (
	"errors"

	"campus-feed/dto"
	"campus-feed/internal/ai"
	"campus-feed/internal/services"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// writeError maps service and gateway errors to a status and ErrorResponse.
func writeError(c *fiber.Ctx, log *zap.Logger, err error) error {
	var up *ai.UpstreamError
	switch {
	case errors.Is(err, services.ErrValidation), errors.Is(err, services.ErrInvalidArgument):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: err.Error()})
	case errors.Is(err, services.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Error: err.Error()})
	case errors.As(err, &up):
		log.Warn("upstream call failed", zap.String("op", up.Op), zap.Int("status", up.StatusCode), zap.String("message", up.Message))
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error:   up.Op + " failed",
			Details: up.Message,
		})
	}
	log.Error("request failed", zap.String("path", c.Path()), zap.Error(err))
	return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Error: "internal server error"})
}

func badRequest(c *fiber.Ctx, msg string) error {
	return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: msg})
}
