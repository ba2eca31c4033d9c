package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/school-service/internal/domain"
)

// MedicalRecordRepository encapsulates medical/allergy record persistence.
type MedicalRecordRepository interface {
	Create(ctx context.Context, record *domain.MedicalRecord) error
	Delete(ctx context.Context, id string) error
	GetByID(ctx context.Context, id string) (*domain.MedicalRecord, error)
	ListByStudent(ctx context.Context, studentID string) ([]domain.MedicalRecord, error)
}

type medicalRecordRepository struct {
	pool *pgxpool.Pool
}

// NewMedicalRecordRepository instantiates repository.
func NewMedicalRecordRepository(pool *pgxpool.Pool) MedicalRecordRepository {
	return &medicalRecordRepository{pool: pool}
}

const medicalColumns = `id, student_id, kind, description, severity, created_at, updated_at`

func (r *medicalRecordRepository) Create(ctx context.Context, record *domain.MedicalRecord) error {
	const query = `
        INSERT INTO medical_records (student_id, kind, description, severity)
        VALUES ($1,$2,$3,$4)
        RETURNING id, created_at, updated_at`
	return r.pool.QueryRow(ctx, query,
		record.StudentID,
		record.Kind,
		record.Description,
		record.Severity,
	).Scan(&record.ID, &record.CreatedAt, &record.UpdatedAt)
}

func (r *medicalRecordRepository) Delete(ctx context.Context, id string) error {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM medical_records WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *medicalRecordRepository) GetByID(ctx context.Context, id string) (*domain.MedicalRecord, error) {
	const query = `SELECT ` + medicalColumns + ` FROM medical_records WHERE id=$1`
	var record domain.MedicalRecord
	if err := r.pool.QueryRow(ctx, query, id).Scan(
		&record.ID,
		&record.StudentID,
		&record.Kind,
		&record.Description,
		&record.Severity,
		&record.CreatedAt,
		&record.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &record, nil
}

func (r *medicalRecordRepository) ListByStudent(ctx context.Context, studentID string) ([]domain.MedicalRecord, error) {
	const query = `SELECT ` + medicalColumns + ` FROM medical_records WHERE student_id=$1 ORDER BY created_at DESC`
	rows, err := r.pool.Query(ctx, query, studentID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []domain.MedicalRecord
	for rows.Next() {
		var record domain.MedicalRecord
		if err := rows.Scan(
			&record.ID,
			&record.StudentID,
			&record.Kind,
			&record.Description,
			&record.Severity,
			&record.CreatedAt,
			&record.UpdatedAt,
		); err != nil {
			return nil, err
		}
		records = append(records, record)
	}
	return records, rows.Err()
}
