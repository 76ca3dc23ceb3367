package handler

import (
	"fleet-admin/internal/models"
	"fleet-admin/internal/repository"
	"fleet-admin/internal/utils"

	"github.com/gofiber/fiber/v2"
)

type ReferenceHandler struct {
	referenceRepo *repository.ReferenceRepository
}

func NewReferenceHandler(referenceRepo *repository.ReferenceRepository) *ReferenceHandler {
	return &ReferenceHandler{referenceRepo: referenceRepo}
}

func (h *ReferenceHandler) GetOrganTypes(c *fiber.Ctx) error {
	refs, err := h.referenceRepo.LoadAll(c.Context(), tenantID(c), models.RefOrganTypes)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to retrieve organ types", err)
	}
	return utils.SuccessResponse(c, "Organ types retrieved successfully", refs)
}

func (h *ReferenceHandler) GetSites(c *fiber.Ctx) error {
	refs, err := h.referenceRepo.LoadAll(c.Context(), tenantID(c), models.RefSites)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to retrieve sites", err)
	}
	return utils.SuccessResponse(c, "Sites retrieved successfully", refs)
}
