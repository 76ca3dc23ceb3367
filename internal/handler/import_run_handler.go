package handler

import (
	"fleet-admin/internal/repository"
	"fleet-admin/internal/utils"

	"github.com/gofiber/fiber/v2"
)

type ImportRunHandler struct {
	runRepo *repository.ImportRunRepository
}

func NewImportRunHandler(runRepo *repository.ImportRunRepository) *ImportRunHandler {
	return &ImportRunHandler{runRepo: runRepo}
}

func (h *ImportRunHandler) GetRuns(c *fiber.Ctx) error {
	params := utils.GetPaginationParams(c)
	offset := utils.GetOffset(params.Page, params.Limit)

	runs, total, err := h.runRepo.FindByTenant(c.Context(), tenantID(c), params.Limit, offset)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to retrieve import runs", err)
	}

	pagination := utils.CalculatePagination(params.Page, params.Limit, int64(total))
	return c.JSON(fiber.Map{
		"success":    true,
		"message":    "Import runs retrieved successfully",
		"data":       runs,
		"pagination": pagination,
	})
}

func (h *ImportRunHandler) GetRun(c *fiber.Ctx) error {
	runCode := c.Params("code")
	if runCode == "" {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Run code is required", nil)
	}

	run, err := h.runRepo.FindByRunCode(c.Context(), tenantID(c), runCode)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusNotFound, "Import run not found", err)
	}

	return utils.SuccessResponse(c, "Import run retrieved successfully", run)
}
