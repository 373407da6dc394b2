package handlers

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/manojthapa/neuroarc/internal/services"
)

type JobsHandler struct {
	jobs   services.JobService
	logger *zap.Logger
}

func NewJobsHandler(jobs services.JobService, logger *zap.Logger) *JobsHandler {
	return &JobsHandler{jobs: jobs, logger: logger}
}

// HandleSearch proxies a job search to Reed with pagination and contract
// filters passed through as query parameters.
func (h *JobsHandler) HandleSearch(c *fiber.Ctx) error {
	query := c.Query("q")
	if query == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "query parameter 'q' is required",
		})
	}

	opts := services.JobSearchOptions{
		Location:       c.Query("location"),
		Page:           c.QueryInt("page", 1),
		ResultsPerPage: c.QueryInt("results_per_page", 100),
		FullTime:       queryBool(c, "full_time"),
		PartTime:       queryBool(c, "part_time"),
		Permanent:      queryBool(c, "permanent"),
		Contract:       queryBool(c, "contract"),
	}

	result, err := h.jobs.Search(c.Context(), query, opts)
	if err != nil {
		h.logger.Error("job search failed", zap.String("query", query), zap.Error(err))
		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{
			"success": false,
			"error":   err.Error(),
			"jobs":    []any{},
		})
	}

	return c.JSON(fiber.Map{
		"success":          true,
		"count":            result.Count,
		"page":             result.Page,
		"results_per_page": result.ResultsPerPage,
		"jobs":             result.Jobs,
	})
}

// HandleDetails fetches one job by its Reed ID.
func (h *JobsHandler) HandleDetails(c *fiber.Ctx) error {
	jobID := c.Params("id")

	job, err := h.jobs.Details(c.Context(), jobID)
	if err != nil {
		h.logger.Error("job details failed", zap.String("job_id", jobID), zap.Error(err))
		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{
			"success": false,
			"error":   err.Error(),
		})
	}

	return c.JSON(fiber.Map{
		"success": true,
		"job":     job,
	})
}

// queryBool reads an optional boolean query parameter, nil when absent or
// unparseable so the filter is not sent upstream at all.
func queryBool(c *fiber.Ctx, name string) *bool {
	raw := c.Query(name)
	if raw == "" {
		return nil
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		return nil
	}
	return &v
}
