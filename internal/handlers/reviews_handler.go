package handlers

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/manojthapa/neuroarc/internal/models"
	"github.com/manojthapa/neuroarc/internal/services"
)

type ReviewsHandler struct {
	reviews services.ReviewService
	logger  *zap.Logger
}

func NewReviewsHandler(reviews services.ReviewService, logger *zap.Logger) *ReviewsHandler {
	return &ReviewsHandler{reviews: reviews, logger: logger}
}

func (h *ReviewsHandler) HandleList(c *fiber.Ctx) error {
	reviews, err := h.reviews.List()
	if err != nil {
		h.logger.Error("failed to list reviews", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "failed to load reviews",
		})
	}
	return c.JSON(reviews)
}

func (h *ReviewsHandler) HandleCreate(c *fiber.Ctx) error {
	var req models.ReviewRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid request body",
		})
	}

	req.Name = strings.TrimSpace(req.Name)
	req.Comment = strings.TrimSpace(req.Comment)
	switch {
	case len(req.Name) < 2 || len(req.Name) > 50:
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "name must be between 2 and 50 characters",
		})
	case req.Rating < 1 || req.Rating > 5:
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "rating must be between 1 and 5",
		})
	case len(req.Comment) < 5 || len(req.Comment) > 500:
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "comment must be between 5 and 500 characters",
		})
	}

	review, err := h.reviews.Add(req.Name, req.Rating, req.Comment)
	if err != nil {
		h.logger.Error("failed to save review", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "failed to save review",
		})
	}
	return c.Status(fiber.StatusCreated).JSON(review)
}

func (h *ReviewsHandler) HandleDelete(c *fiber.Ctx) error {
	deleted, err := h.reviews.Delete(c.Params("id"))
	if err != nil {
		h.logger.Error("failed to delete review", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "failed to delete review",
		})
	}
	if !deleted {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Review not found",
		})
	}
	return c.JSON(fiber.Map{
		"status":  "success",
		"message": "Review deleted",
	})
}
