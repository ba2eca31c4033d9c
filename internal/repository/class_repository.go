package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/school-service/internal/domain"
)

// ClassRepository encapsulates class persistence.
type ClassRepository interface {
	Create(ctx context.Context, class *domain.Class) error
	Update(ctx context.Context, class *domain.Class) error
	Delete(ctx context.Context, id string) error
	GetByID(ctx context.Context, id string) (*domain.Class, error)
	List(ctx context.Context, year *int) ([]domain.Class, error)
}

type classRepository struct {
	pool *pgxpool.Pool
}

// NewClassRepository instantiates repository.
func NewClassRepository(pool *pgxpool.Pool) ClassRepository {
	return &classRepository{pool: pool}
}

const classColumns = `id, name, year, course_id, teacher_id, created_at, updated_at`

func (r *classRepository) Create(ctx context.Context, class *domain.Class) error {
	const query = `
        INSERT INTO classes (name, year, course_id, teacher_id)
        VALUES ($1,$2,$3,$4)
        RETURNING id, created_at, updated_at`
	return r.pool.QueryRow(ctx, query,
		class.Name,
		class.Year,
		class.CourseID,
		class.TeacherID,
	).Scan(&class.ID, &class.CreatedAt, &class.UpdatedAt)
}

func (r *classRepository) Update(ctx context.Context, class *domain.Class) error {
	const query = `
        UPDATE classes SET name=$1, year=$2, course_id=$3, teacher_id=$4, updated_at=NOW()
        WHERE id=$5`
	cmd, err := r.pool.Exec(ctx, query,
		class.Name,
		class.Year,
		class.CourseID,
		class.TeacherID,
		class.ID,
	)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *classRepository) Delete(ctx context.Context, id string) error {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM classes WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *classRepository) GetByID(ctx context.Context, id string) (*domain.Class, error) {
	const query = `SELECT ` + classColumns + ` FROM classes WHERE id=$1`
	var class domain.Class
	if err := r.pool.QueryRow(ctx, query, id).Scan(
		&class.ID,
		&class.Name,
		&class.Year,
		&class.CourseID,
		&class.TeacherID,
		&class.CreatedAt,
		&class.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &class, nil
}

func (r *classRepository) List(ctx context.Context, year *int) ([]domain.Class, error) {
	query := `SELECT ` + classColumns + ` FROM classes`
	var args []any
	if year != nil {
		query += ` WHERE year=$1`
		args = append(args, *year)
	}
	query += ` ORDER BY year DESC, name`

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var classes []domain.Class
	for rows.Next() {
		var class domain.Class
		if err := rows.Scan(
			&class.ID,
			&class.Name,
			&class.Year,
			&class.CourseID,
			&class.TeacherID,
			&class.CreatedAt,
			&class.UpdatedAt,
		); err != nil {
			return nil, err
		}
		classes = append(classes, class)
	}
	return classes, rows.Err()
}
