package handler

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"fleet-admin/internal/config"
	"fleet-admin/internal/models"
	"fleet-admin/internal/repository"
	"fleet-admin/internal/service"
	"fleet-admin/internal/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/hibiken/asynq"
)

// TaskOrganImport is the asynq task type of a deferred import.
const TaskOrganImport = "organ:import"

// OrganImportPayload is the asynq payload of a deferred import.
type OrganImportPayload struct {
	TenantID int64  `json:"tenant_id"`
	UserID   int64  `json:"user_id"`
	FilePath string `json:"file_path"`
	FileName string `json:"file_name"`
}

type OrganHandler struct {
	organRepo       *repository.OrganRepository
	importService   *service.ImportService
	templateService *service.TemplateService
	asynqClient     *asynq.Client
	cfg             *config.Config
}

func NewOrganHandler(
	organRepo *repository.OrganRepository,
	importService *service.ImportService,
	templateService *service.TemplateService,
	asynqClient *asynq.Client,
	cfg *config.Config,
) *OrganHandler {
	return &OrganHandler{
		organRepo:       organRepo,
		importService:   importService,
		templateService: templateService,
		asynqClient:     asynqClient,
		cfg:             cfg,
	}
}

func tenantID(c *fiber.Ctx) int64 {
	return c.Locals("tenant_id").(int64)
}

func (h *OrganHandler) GetOrgans(c *fiber.Ctx) error {
	params := utils.GetPaginationParams(c)
	offset := utils.GetOffset(params.Page, params.Limit)

	organs, total, err := h.organRepo.FindAll(c.Context(), tenantID(c), params.Limit, offset, params.Search)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to retrieve organs", err)
	}

	pagination := utils.CalculatePagination(params.Page, params.Limit, int64(total))
	return c.JSON(fiber.Map{
		"success":    true,
		"message":    "Organs retrieved successfully",
		"data":       organs,
		"pagination": pagination,
	})
}

func (h *OrganHandler) GetOrgan(c *fiber.Ctx) error {
	id, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Invalid organ ID", err)
	}

	organ, err := h.organRepo.FindByID(c.Context(), tenantID(c), id)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusNotFound, "Organ not found", err)
	}

	return utils.SuccessResponse(c, "Organ retrieved successfully", organ)
}

func (h *OrganHandler) CreateOrgan(c *fiber.Ctx) error {
	var req models.CreateOrganRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request body", err)
	}
	if req.Name == "" || req.OrganTypeID == 0 {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Name and organ type are required", nil)
	}

	organ := &models.Organ{
		TenantID:        tenantID(c),
		Name:            req.Name,
		OrganTypeID:     req.OrganTypeID,
		SiteID:          req.SiteID,
		Marque:          req.Marque,
		Modele:          req.Modele,
		NumeroSerie:     req.NumeroSerie,
		DateMiseService: req.DateMiseService,
		Cout:            req.Cout,
		Criticite:       strings.ToLower(req.Criticite),
		Actif:           req.Actif,
	}
	if err := h.organRepo.Create(c.Context(), organ); err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to create organ", err)
	}

	return utils.SuccessResponse(c, "Organ created successfully", organ)
}

func (h *OrganHandler) UpdateOrgan(c *fiber.Ctx) error {
	id, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Invalid organ ID", err)
	}

	organ, err := h.organRepo.FindByID(c.Context(), tenantID(c), id)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusNotFound, "Organ not found", err)
	}

	var req models.CreateOrganRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request body", err)
	}
	if req.Name == "" || req.OrganTypeID == 0 {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Name and organ type are required", nil)
	}

	organ.Name = req.Name
	organ.OrganTypeID = req.OrganTypeID
	organ.SiteID = req.SiteID
	organ.Marque = req.Marque
	organ.Modele = req.Modele
	organ.NumeroSerie = req.NumeroSerie
	organ.DateMiseService = req.DateMiseService
	organ.Cout = req.Cout
	organ.Criticite = strings.ToLower(req.Criticite)
	organ.Actif = req.Actif

	if err := h.organRepo.Update(c.Context(), organ); err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to update organ", err)
	}

	return utils.SuccessResponse(c, "Organ updated successfully", organ)
}

func (h *OrganHandler) DeleteOrgan(c *fiber.Ctx) error {
	id, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Invalid organ ID", err)
	}

	if err := h.organRepo.Delete(c.Context(), tenantID(c), id); err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to delete organ", err)
	}

	return utils.SuccessResponse(c, "Organ deleted successfully", nil)
}

func (h *OrganHandler) ExportOrgans(c *fiber.Ctx) error {
	exportName := fmt.Sprintf("organes_export_%s.xlsx", time.Now().Format("20060102_150405"))
	exportPath := filepath.Join(h.cfg.ExportPath, exportName)

	if err := h.templateService.Export(c.Context(), tenantID(c), exportPath); err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to export organs", err)
	}

	return c.Download(exportPath, exportName)
}

func (h *OrganHandler) DownloadTemplate(c *fiber.Ctx) error {
	templatePath := filepath.Join(h.cfg.ExportPath, fmt.Sprintf("template_%d_%s", tenantID(c), service.TemplateFileName))

	if err := h.templateService.Generate(c.Context(), tenantID(c), templatePath); err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to generate template", err)
	}

	return c.Download(templatePath, service.TemplateFileName)
}

// ImportOrgans runs the update import synchronously and returns the
// full result: updated ids, per-row findings and the summary.
func (h *OrganHandler) ImportOrgans(c *fiber.Ctx) error {
	file, err := c.FormFile("file")
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "File is required", err)
	}

	if !service.IsAllowedWorkbook(file.Filename) {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Only Excel files (.xlsx, .xls) are allowed", nil)
	}
	if file.Size > int64(h.cfg.UploadMaxSize) {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "File size exceeds maximum limit", nil)
	}

	tempPath := filepath.Join(h.cfg.TempPath, fmt.Sprintf("import_%d%s", time.Now().UnixNano(), filepath.Ext(file.Filename)))
	if err := c.SaveFile(file, tempPath); err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to save file", err)
	}
	defer os.Remove(tempPath)

	rows, err := service.ReadWorkbookRows(tempPath)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Failed to parse Excel file: "+err.Error(), err)
	}

	ctx, cancel := context.WithTimeout(c.Context(), h.cfg.ImportTimeout)
	defer cancel()

	result, err := h.importService.Run(ctx, tenantID(c), c.Locals("user_id").(int64), file.Filename, rows)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, err.Error(), err)
	}

	response := fiber.Map{
		"success": result.Success,
		"message": result.Message,
		"data":    result.Data,
		"errors":  result.Errors,
		"summary": result.Summary,
	}

	if result.Summary.Errors > 0 {
		reportName := fmt.Sprintf("import_errors_%s.xlsx", time.Now().Format("20060102_150405"))
		reportPath := filepath.Join(h.cfg.ExportPath, reportName)
		if err := service.GenerateImportErrorReport(result.Errors, result.Summary, reportPath); err == nil {
			response["error_report"] = reportName
		}
		return c.Status(fiber.StatusPartialContent).JSON(response)
	}

	return c.JSON(response)
}

// ImportOrgansAsync stores the upload and defers the run to the
// worker, for spreadsheets too large to process within the request.
func (h *OrganHandler) ImportOrgansAsync(c *fiber.Ctx) error {
	file, err := c.FormFile("file")
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "File is required", err)
	}

	if !service.IsAllowedWorkbook(file.Filename) {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Only Excel files (.xlsx, .xls) are allowed", nil)
	}
	if file.Size > int64(h.cfg.UploadMaxSize) {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "File size exceeds maximum limit", nil)
	}
	if h.asynqClient == nil {
		return utils.ErrorResponse(c, fiber.StatusServiceUnavailable, "Background job processing is not available (Redis not connected)", nil)
	}

	uploadCode := fmt.Sprintf("UPLOAD-%s", uuid.New().String()[:8])
	uploadPath := filepath.Join(h.cfg.UploadPath, fmt.Sprintf("%s%s", uploadCode, filepath.Ext(file.Filename)))
	if err := c.SaveFile(file, uploadPath); err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to save file", err)
	}

	payload, _ := json.Marshal(OrganImportPayload{
		TenantID: tenantID(c),
		UserID:   c.Locals("user_id").(int64),
		FilePath: uploadPath,
		FileName: file.Filename,
	})

	task := asynq.NewTask(TaskOrganImport, payload)
	info, err := h.asynqClient.Enqueue(task)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to queue import task", err)
	}

	return utils.SuccessResponse(c, "Import queued", fiber.Map{
		"job_id":      info.ID,
		"upload_code": uploadCode,
	})
}

func (h *OrganHandler) DownloadErrorReport(c *fiber.Ctx) error {
	filename := c.Params("filename")
	if filename == "" {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Filename is required", nil)
	}
	if !isValidFilename(filename) {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Invalid filename", nil)
	}

	filePath := filepath.Join(h.cfg.ExportPath, filename)
	if _, err := os.Stat(filePath); os.IsNotExist(err) {
		return utils.ErrorResponse(c, fiber.StatusNotFound, "Error report file not found", err)
	}

	return c.Download(filePath, filename)
}

// isValidFilename rejects anything that could escape the export dir.
func isValidFilename(filename string) bool {
	if len(filename) == 0 || len(filename) > 255 {
		return false
	}

	dangerousChars := []string{"..", "/", "\\", ":", "*", "?", "\"", "<", ">", "|"}
	for _, char := range dangerousChars {
		if strings.Contains(filename, char) {
			return false
		}
	}
	return true
}
