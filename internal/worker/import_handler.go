package worker

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"salesreport-web/internal/config"
	"salesreport-web/internal/models"
	"salesreport-web/internal/repository"
	"salesreport-web/internal/service"
	"salesreport-web/internal/utils"

	"github.com/hibiken/asynq"
	"github.com/jmoiron/sqlx"
	"github.com/redis/go-redis/v9"
)

// TaskTypeImportProcess is the asynq task type for queued imports
const TaskTypeImportProcess = "import:process"

// progressTTL keeps finished progress keys around long enough for the
// UI to poll the terminal state
const progressTTL = 24 * time.Hour

// ProgressKey is the redis key holding a session's progress percentage
func ProgressKey(sessionCode string) string {
	return fmt.Sprintf("import:progress:%s", sessionCode)
}

// ImportTaskPayload is the asynq payload for one queued import
type ImportTaskPayload struct {
	SessionID   int               `json:"session_id"`
	SessionCode string            `json:"session_code"`
	ImportType  string            `json:"import_type"`
	Mapping     map[string]string `json:"mapping"`
	OnRowError  string            `json:"on_row_error"`
}

// ImportTaskHandler runs queued imports: it reads the saved upload, runs
// the same pipeline as the synchronous endpoint, and writes the outcome
// back to the session row and a redis progress key.
type ImportTaskHandler struct {
	redis         *redis.Client
	cfg           *config.Config
	importService *service.ImportService
	excelService  *service.ExcelService
	importRepo    *repository.ImportRepository
}

func NewImportTaskHandler(db *sqlx.DB, redisClient *redis.Client, cfg *config.Config) *ImportTaskHandler {
	log := utils.GetLogger()
	salesRepo := repository.NewSalesRepository(db)
	productRepo := repository.NewProductRepository(db)
	customerRepo := repository.NewCustomerRepository(db)
	targetRepo := repository.NewTargetRepository(db)

	return &ImportTaskHandler{
		redis:         redisClient,
		cfg:           cfg,
		importService: service.NewImportService(salesRepo, productRepo, customerRepo, targetRepo, log),
		excelService:  service.NewExcelService(),
		importRepo:    repository.NewImportRepository(db),
	}
}

func (h *ImportTaskHandler) Handle(ctx context.Context, task *asynq.Task) error {
	log := utils.GetLogger()

	var payload ImportTaskPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		return fmt.Errorf("failed to unmarshal payload: %w", err)
	}

	log.Infof("Starting import for session %s (ID: %d, type: %s)", payload.SessionCode, payload.SessionID, payload.ImportType)

	session, err := h.importRepo.GetSessionByID(payload.SessionID)
	if err != nil {
		return fmt.Errorf("failed to get session: %w", err)
	}

	// Re-delivered or manually resolved tasks are a no-op
	if session.Status == "completed" || session.Status == "failed" || session.Status == "canceled" {
		log.Infof("Session %s is already %s, skipping", payload.SessionCode, session.Status)
		return nil
	}

	session.Status = "processing"
	session.UpdatedAt = time.Now()
	if err := h.importRepo.UpdateSession(session); err != nil {
		return fmt.Errorf("failed to update session status: %w", err)
	}
	h.setProgress(ctx, payload.SessionCode, 5)

	content, err := h.readContent(session.FilePath)
	if err != nil {
		h.finishSession(ctx, session, models.ImportOutcome{Error: err.Error()})
		return fmt.Errorf("failed to read upload: %w", err)
	}
	h.setProgress(ctx, payload.SessionCode, 25)

	outcome := h.importService.Import(payload.ImportType, content, payload.Mapping, service.ImportOptions{
		OnRowError: service.RowErrorPolicy(payload.OnRowError),
	})

	h.finishSession(ctx, session, outcome)

	log.Infof("Import finished for session %s: success=%v imported=%d errors=%d total=%d",
		payload.SessionCode, outcome.Success, outcome.ImportedCount, outcome.ErrorCount, outcome.TotalRows)

	return nil
}

func (h *ImportTaskHandler) readContent(filePath string) ([]byte, error) {
	if filepath.Ext(filePath) == ".xlsx" {
		return h.excelService.ReadSheetAsCSV(filePath)
	}
	return os.ReadFile(filePath)
}

func (h *ImportTaskHandler) finishSession(ctx context.Context, session *models.ImportSession, outcome models.ImportOutcome) {
	log := utils.GetLogger()

	session.TotalRows = outcome.TotalRows
	session.ImportedCount = outcome.ImportedCount
	session.ErrorCount = outcome.ErrorCount
	session.ErrorMessage = outcome.Error
	session.Status = "completed"
	if !outcome.Success {
		session.Status = "failed"
	}
	session.UpdatedAt = time.Now()

	if err := h.importRepo.UpdateSession(session); err != nil {
		log.Errorf("Failed to update session %s: %v", session.SessionCode, err)
	}
	h.setProgress(ctx, session.SessionCode, 100)
}

func (h *ImportTaskHandler) setProgress(ctx context.Context, sessionCode string, percent float64) {
	if h.redis == nil {
		return
	}
	if err := h.redis.Set(ctx, ProgressKey(sessionCode), percent, progressTTL).Err(); err != nil {
		utils.GetLogger().Warnf("Failed to set progress for %s: %v", sessionCode, err)
	}
}
