package handler

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"salesreport-web/internal/config"
	"salesreport-web/internal/models"
	"salesreport-web/internal/repository"
	"salesreport-web/internal/service"
	"salesreport-web/internal/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// ImportHandler serves the synchronous import endpoint plus the import
// history and template downloads. Large files go through the async
// upload endpoint instead.
type ImportHandler struct {
	importService *service.ImportService
	excelService  *service.ExcelService
	importRepo    *repository.ImportRepository
	cfg           *config.Config
}

func NewImportHandler(
	importService *service.ImportService,
	excelService *service.ExcelService,
	importRepo *repository.ImportRepository,
	cfg *config.Config,
) *ImportHandler {
	return &ImportHandler{
		importService: importService,
		excelService:  excelService,
		importRepo:    importRepo,
		cfg:           cfg,
	}
}

func validImportType(t string) bool {
	switch t {
	case models.ImportTypeSales, models.ImportTypeProducts, models.ImportTypeCustomers, models.ImportTypeTargets:
		return true
	}
	return false
}

// ImportFile runs one synchronous import: save the upload, run the
// pipeline, record a history entry, return the outcome
func (h *ImportHandler) ImportFile(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(int)

	importType := c.FormValue("type")
	if !validImportType(importType) {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Invalid import type (expected sales, products, customers or targets)", nil)
	}

	mappingJSON := c.FormValue("mapping")
	if mappingJSON == "" {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Mapping is required", nil)
	}
	var mapping map[string]string
	if err := json.Unmarshal([]byte(mappingJSON), &mapping); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Invalid mapping JSON", err)
	}

	opts := service.ImportOptions{
		OnRowError: service.RowErrorPolicy(c.FormValue("on_row_error", string(service.RowErrorSkip))),
	}
	if opts.OnRowError != service.RowErrorSkip && opts.OnRowError != service.RowErrorAbort {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "on_row_error must be skip or abort", nil)
	}

	file, err := c.FormFile("file")
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "File is required", err)
	}
	if file.Size > int64(h.cfg.UploadMaxSize) {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "File size exceeds maximum limit", nil)
	}
	ext := filepath.Ext(file.Filename)
	if ext != ".csv" && ext != ".xlsx" {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Only .csv and .xlsx files are allowed", nil)
	}

	sessionCode := fmt.Sprintf("IMP-%s", uuid.New().String()[:8])
	filePath := filepath.Join(h.cfg.UploadPath, fmt.Sprintf("%s%s", sessionCode, ext))
	if err := c.SaveFile(file, filePath); err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to save file", err)
	}

	content, err := h.readImportContent(filePath, ext)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Failed to read file", err)
	}

	outcome := h.importService.Import(importType, content, mapping, opts)

	now := time.Now()
	status := "completed"
	if !outcome.Success {
		status = "failed"
	}
	session := &models.ImportSession{
		SessionCode:   sessionCode,
		UserID:        userID,
		ImportType:    importType,
		Filename:      file.Filename,
		FilePath:      filePath,
		TotalRows:     outcome.TotalRows,
		ImportedCount: outcome.ImportedCount,
		ErrorCount:    outcome.ErrorCount,
		Status:        status,
		ErrorMessage:  outcome.Error,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := h.importRepo.CreateSession(session); err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to record import session", err)
	}

	if !outcome.Success {
		return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{
			"success": false,
			"message": "Import failed",
			"data": fiber.Map{
				"session": session,
				"outcome": outcome,
			},
		})
	}

	return utils.SuccessResponse(c, "Import completed", fiber.Map{
		"session": session,
		"outcome": outcome,
	})
}

// readImportContent returns CSV bytes for the pipeline; xlsx uploads are
// flattened through the excel service first
func (h *ImportHandler) readImportContent(filePath, ext string) ([]byte, error) {
	if ext == ".xlsx" {
		return h.excelService.ReadSheetAsCSV(filePath)
	}
	return os.ReadFile(filePath)
}

func (h *ImportHandler) GetImports(c *fiber.Ctx) error {
	params := utils.GetPaginationParams(c)
	offset := utils.GetOffset(params.Page, params.Limit)
	importType := c.Query("type", "")

	sessions, total, err := h.importRepo.GetSessions(params.Limit, offset, importType)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to retrieve imports", err)
	}

	pagination := utils.CalculatePagination(params.Page, params.Limit, int64(total))
	return utils.PaginatedResponseBuilder(c, "Imports retrieved successfully", fiber.Map{
		"imports": sessions,
	}, pagination)
}

func (h *ImportHandler) GetImport(c *fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Invalid import ID", err)
	}

	session, err := h.importRepo.GetSessionByID(id)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusNotFound, "Import not found", err)
	}

	return utils.SuccessResponse(c, "Import retrieved successfully", session)
}

func (h *ImportHandler) DownloadTemplate(c *fiber.Ctx) error {
	importType := c.Params("type")
	if !validImportType(importType) {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Invalid import type", nil)
	}

	fileName := fmt.Sprintf("%s_import_template.xlsx", importType)
	outputPath := filepath.Join(h.cfg.ExportPath, fileName)
	if err := h.excelService.GenerateImportTemplate(importType, outputPath); err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to generate template", err)
	}

	return c.Download(outputPath, fileName)
}
