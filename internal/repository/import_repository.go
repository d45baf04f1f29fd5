package repository

import (
	"salesreport-web/internal/models"

	"github.com/jmoiron/sqlx"
)

type ImportRepository struct {
	db *sqlx.DB
}

func NewImportRepository(db *sqlx.DB) *ImportRepository {
	return &ImportRepository{db: db}
}

func (r *ImportRepository) CreateSession(session *models.ImportSession) error {
	query := `INSERT INTO import_sessions (session_code, user_id, import_type, filename, file_path,
	          total_rows, imported_count, error_count, status, error_message, created_at, updated_at)
	          VALUES (:session_code, :user_id, :import_type, :filename, :file_path,
	          :total_rows, :imported_count, :error_count, :status, :error_message, :created_at, :updated_at)`
	result, err := r.db.NamedExec(query, session)
	if err != nil {
		return err
	}
	id, _ := result.LastInsertId()
	session.ID = int(id)
	return nil
}

func (r *ImportRepository) GetSessionByID(id int) (*models.ImportSession, error) {
	var session models.ImportSession
	query := "SELECT * FROM import_sessions WHERE id = ? LIMIT 1"
	if err := r.db.Get(&session, query, id); err != nil {
		return nil, err
	}
	return &session, nil
}

func (r *ImportRepository) GetSessionByCode(code string) (*models.ImportSession, error) {
	var session models.ImportSession
	query := "SELECT * FROM import_sessions WHERE session_code = ? LIMIT 1"
	if err := r.db.Get(&session, query, code); err != nil {
		return nil, err
	}
	return &session, nil
}

func (r *ImportRepository) UpdateSession(session *models.ImportSession) error {
	query := `UPDATE import_sessions SET total_rows = :total_rows, imported_count = :imported_count,
	          error_count = :error_count, status = :status, error_message = :error_message,
	          updated_at = :updated_at
	          WHERE id = :id`
	_, err := r.db.NamedExec(query, session)
	return err
}

func (r *ImportRepository) GetSessions(limit, offset int, importType string) ([]models.ImportSession, int, error) {
	whereClause := ""
	args := []interface{}{}

	if importType != "" {
		whereClause = "WHERE import_type = ?"
		args = append(args, importType)
	}

	var total int
	if err := r.db.Get(&total, "SELECT COUNT(*) FROM import_sessions "+whereClause, args...); err != nil {
		return nil, 0, err
	}

	var sessions []models.ImportSession
	query := "SELECT * FROM import_sessions " + whereClause + " ORDER BY created_at DESC, id DESC LIMIT ? OFFSET ?"
	args = append(args, limit, offset)
	if err := r.db.Select(&sessions, query, args...); err != nil {
		return nil, 0, err
	}

	return sessions, total, nil
}
