package handler

import (
	"encoding/json"
	"fmt"
	"path/filepath"
	"strconv"
	"time"

	"salesreport-web/internal/config"
	"salesreport-web/internal/models"
	"salesreport-web/internal/repository"
	"salesreport-web/internal/service"
	"salesreport-web/internal/utils"
	"salesreport-web/internal/worker"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/hibiken/asynq"
	"github.com/redis/go-redis/v9"
)

// UploadHandler is the asynchronous import path for large files: the
// upload is saved and queued, and the worker runs the pipeline. Progress
// is tracked in redis under the session code.
type UploadHandler struct {
	importRepo  *repository.ImportRepository
	asynqClient *asynq.Client
	redis       *redis.Client
	cfg         *config.Config
}

func NewUploadHandler(
	importRepo *repository.ImportRepository,
	asynqClient *asynq.Client,
	redis *redis.Client,
	cfg *config.Config,
) *UploadHandler {
	return &UploadHandler{
		importRepo:  importRepo,
		asynqClient: asynqClient,
		redis:       redis,
		cfg:         cfg,
	}
}

func (h *UploadHandler) UploadFile(c *fiber.Ctx) error {
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

	onRowError := c.FormValue("on_row_error", string(service.RowErrorSkip))
	if onRowError != string(service.RowErrorSkip) && onRowError != string(service.RowErrorAbort) {
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

	if h.asynqClient == nil {
		return utils.ErrorResponse(c, fiber.StatusServiceUnavailable, "Background job processing is not available (Redis not connected)", nil)
	}

	sessionCode := fmt.Sprintf("UPLOAD-%s", uuid.New().String()[:8])
	filePath := filepath.Join(h.cfg.UploadPath, fmt.Sprintf("%s%s", sessionCode, ext))
	if err := c.SaveFile(file, filePath); err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to save file", err)
	}

	now := time.Now()
	session := &models.ImportSession{
		SessionCode: sessionCode,
		UserID:      userID,
		ImportType:  importType,
		Filename:    file.Filename,
		FilePath:    filePath,
		Status:      "queued",
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := h.importRepo.CreateSession(session); err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to create import session", err)
	}

	payload, err := json.Marshal(worker.ImportTaskPayload{
		SessionID:   session.ID,
		SessionCode: session.SessionCode,
		ImportType:  importType,
		Mapping:     mapping,
		OnRowError:  onRowError,
	})
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to build task payload", err)
	}

	task := asynq.NewTask(worker.TaskTypeImportProcess, payload)
	info, err := h.asynqClient.Enqueue(task)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to queue import task", err)
	}

	return utils.SuccessResponse(c, "File uploaded and queued for import", fiber.Map{
		"session": session,
		"job_id":  info.ID,
	})
}

func (h *UploadHandler) GetSessionDetail(c *fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Invalid session ID", err)
	}

	session, err := h.importRepo.GetSessionByID(id)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusNotFound, "Session not found", err)
	}

	return utils.SuccessResponse(c, "Session retrieved successfully", session)
}

// GetProgress reports the worker's redis-backed progress percentage for
// a queued import, falling back to the session status when the key is
// missing or expired
func (h *UploadHandler) GetProgress(c *fiber.Ctx) error {
	code := c.Params("session_code")

	session, err := h.importRepo.GetSessionByCode(code)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusNotFound, "Session not found", err)
	}

	progress := 0.0
	if h.redis != nil {
		key := worker.ProgressKey(code)
		if val, err := h.redis.Get(c.Context(), key).Float64(); err == nil {
			progress = val
		} else if session.Status == "completed" || session.Status == "failed" {
			progress = 100
		}
	}

	return utils.SuccessResponse(c, "Progress retrieved successfully", fiber.Map{
		"session_code": session.SessionCode,
		"status":       session.Status,
		"progress":     progress,
	})
}
