package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/edusekai/platform-api/internal/domain"
)

// AcademicsRepository defines persistence access for the academic structure:
// programs, levels, sections, subjects and teaching assignments.
type AcademicsRepository interface {
	CreateProgram(ctx context.Context, orgID string, program *domain.Program) error
	UpdateProgram(ctx context.Context, orgID string, program *domain.Program) error
	DeleteProgram(ctx context.Context, orgID, id string) error
	ListPrograms(ctx context.Context, orgID string) ([]*domain.Program, error)
	GetProgram(ctx context.Context, orgID, id string) (*domain.Program, error)

	CreateLevel(ctx context.Context, orgID string, level *domain.AcademicLevel) error
	UpdateLevel(ctx context.Context, orgID string, level *domain.AcademicLevel) error
	DeleteLevel(ctx context.Context, orgID, id string) error
	ListLevels(ctx context.Context, orgID, programID string) ([]*domain.AcademicLevel, error)
	GetLevel(ctx context.Context, orgID, id string) (*domain.AcademicLevel, error)

	CreateSection(ctx context.Context, orgID string, section *domain.Section) error
	UpdateSection(ctx context.Context, orgID string, section *domain.Section) error
	DeleteSection(ctx context.Context, orgID, id string) error
	ListSections(ctx context.Context, orgID, levelID string) ([]*domain.Section, error)

	CreateSubject(ctx context.Context, orgID string, subject *domain.Subject) error
	UpdateSubject(ctx context.Context, orgID string, subject *domain.Subject) error
	DeleteSubject(ctx context.Context, orgID, id string) error
	ListSubjects(ctx context.Context, orgID, levelID string) ([]*domain.Subject, error)

	UpsertAssignment(ctx context.Context, orgID string, assignment *domain.TeachingAssignment) error
	DeleteAssignment(ctx context.Context, orgID, id string) error
	ListAssignments(ctx context.Context, orgID, sectionID string) ([]*domain.TeachingAssignment, error)
}

type academicsRepository struct {
	pool *pgxpool.Pool
}

// NewAcademicsRepository returns a Postgres-backed implementation.
func NewAcademicsRepository(pool *pgxpool.Pool) AcademicsRepository {
	return &academicsRepository{pool: pool}
}

func (r *academicsRepository) CreateProgram(ctx context.Context, orgID string, program *domain.Program) error {
	const query = `
        INSERT INTO programs (organization_id, name, code, description, is_active)
        VALUES ($1, $2, $3, $4, $5)
        RETURNING id, created_at, updated_at`

	return r.pool.QueryRow(ctx, query,
		orgID, program.Name, program.Code, program.Description, program.IsActive,
	).Scan(&program.ID, &program.CreatedAt, &program.UpdatedAt)
}

func (r *academicsRepository) UpdateProgram(ctx context.Context, orgID string, program *domain.Program) error {
	const query = `
        UPDATE programs SET name=$1, code=$2, description=$3, is_active=$4, updated_at=NOW()
        WHERE id=$5 AND organization_id=$6`

	return execExpectingRow(ctx, r.pool, query,
		program.Name, program.Code, program.Description, program.IsActive, program.ID, orgID)
}

func (r *academicsRepository) DeleteProgram(ctx context.Context, orgID, id string) error {
	return execExpectingRow(ctx, r.pool,
		`DELETE FROM programs WHERE id=$1 AND organization_id=$2`, id, orgID)
}

func (r *academicsRepository) ListPrograms(ctx context.Context, orgID string) ([]*domain.Program, error) {
	const query = `
        SELECT id, name, code, description, is_active, created_at, updated_at
        FROM programs WHERE organization_id=$1 ORDER BY name`

	rows, err := r.pool.Query(ctx, query, orgID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var programs []*domain.Program
	for rows.Next() {
		var p domain.Program
		if err := rows.Scan(&p.ID, &p.Name, &p.Code, &p.Description, &p.IsActive, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, err
		}
		programs = append(programs, &p)
	}
	return programs, rows.Err()
}

func (r *academicsRepository) GetProgram(ctx context.Context, orgID, id string) (*domain.Program, error) {
	const query = `
        SELECT id, name, code, description, is_active, created_at, updated_at
        FROM programs WHERE id=$1 AND organization_id=$2`

	var p domain.Program
	if err := r.pool.QueryRow(ctx, query, id, orgID).Scan(
		&p.ID, &p.Name, &p.Code, &p.Description, &p.IsActive, &p.CreatedAt, &p.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *academicsRepository) CreateLevel(ctx context.Context, orgID string, level *domain.AcademicLevel) error {
	const query = `
        INSERT INTO academic_levels (program_id, name, sort_order)
        SELECT $1, $2, $3 WHERE EXISTS (SELECT 1 FROM programs WHERE id=$1 AND organization_id=$4)
        RETURNING id`

	return r.pool.QueryRow(ctx, query, level.ProgramID, level.Name, level.Order, orgID).Scan(&level.ID)
}

func (r *academicsRepository) UpdateLevel(ctx context.Context, orgID string, level *domain.AcademicLevel) error {
	const query = `
        UPDATE academic_levels al SET name=$1, sort_order=$2
        FROM programs pr
        WHERE al.id=$3 AND pr.id = al.program_id AND pr.organization_id=$4`

	return execExpectingRow(ctx, r.pool, query, level.Name, level.Order, level.ID, orgID)
}

func (r *academicsRepository) DeleteLevel(ctx context.Context, orgID, id string) error {
	const query = `
        DELETE FROM academic_levels al
        USING programs pr
        WHERE al.id=$1 AND pr.id = al.program_id AND pr.organization_id=$2`

	return execExpectingRow(ctx, r.pool, query, id, orgID)
}

// ListLevels returns levels ordered by their integer position. programID may
// be empty to list across all programs of the tenant.
func (r *academicsRepository) ListLevels(ctx context.Context, orgID, programID string) ([]*domain.AcademicLevel, error) {
	query := `
        SELECT al.id, al.program_id, al.name, al.sort_order
        FROM academic_levels al
        JOIN programs pr ON pr.id = al.program_id
        WHERE pr.organization_id=$1`
	args := []any{orgID}
	if programID != "" {
		query += ` AND al.program_id=$2`
		args = append(args, programID)
	}
	query += ` ORDER BY al.program_id, al.sort_order`

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var levels []*domain.AcademicLevel
	for rows.Next() {
		var l domain.AcademicLevel
		if err := rows.Scan(&l.ID, &l.ProgramID, &l.Name, &l.Order); err != nil {
			return nil, err
		}
		levels = append(levels, &l)
	}
	return levels, rows.Err()
}

func (r *academicsRepository) GetLevel(ctx context.Context, orgID, id string) (*domain.AcademicLevel, error) {
	const query = `
        SELECT al.id, al.program_id, al.name, al.sort_order
        FROM academic_levels al
        JOIN programs pr ON pr.id = al.program_id
        WHERE al.id=$1 AND pr.organization_id=$2`

	var l domain.AcademicLevel
	if err := r.pool.QueryRow(ctx, query, id, orgID).Scan(&l.ID, &l.ProgramID, &l.Name, &l.Order); err != nil {
		return nil, err
	}
	return &l, nil
}

func (r *academicsRepository) CreateSection(ctx context.Context, orgID string, section *domain.Section) error {
	const query = `
        INSERT INTO sections (level_id, name, capacity)
        SELECT $1, $2, $3 WHERE EXISTS (
            SELECT 1 FROM academic_levels al JOIN programs pr ON pr.id = al.program_id
            WHERE al.id=$1 AND pr.organization_id=$4)
        RETURNING id`

	return r.pool.QueryRow(ctx, query, section.LevelID, section.Name, section.Capacity, orgID).Scan(&section.ID)
}

func (r *academicsRepository) UpdateSection(ctx context.Context, orgID string, section *domain.Section) error {
	const query = `
        UPDATE sections s SET name=$1, capacity=$2
        FROM academic_levels al JOIN programs pr ON pr.id = al.program_id
        WHERE s.id=$3 AND al.id = s.level_id AND pr.organization_id=$4`

	return execExpectingRow(ctx, r.pool, query, section.Name, section.Capacity, section.ID, orgID)
}

func (r *academicsRepository) DeleteSection(ctx context.Context, orgID, id string) error {
	const query = `
        DELETE FROM sections s
        USING academic_levels al, programs pr
        WHERE s.id=$1 AND al.id = s.level_id AND pr.id = al.program_id AND pr.organization_id=$2`

	return execExpectingRow(ctx, r.pool, query, id, orgID)
}

func (r *academicsRepository) ListSections(ctx context.Context, orgID, levelID string) ([]*domain.Section, error) {
	query := `
        SELECT s.id, s.level_id, s.name, s.capacity
        FROM sections s
        JOIN academic_levels al ON al.id = s.level_id
        JOIN programs pr ON pr.id = al.program_id
        WHERE pr.organization_id=$1`
	args := []any{orgID}
	if levelID != "" {
		query += ` AND s.level_id=$2`
		args = append(args, levelID)
	}
	query += ` ORDER BY s.level_id, s.name`

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var sections []*domain.Section
	for rows.Next() {
		var s domain.Section
		if err := rows.Scan(&s.ID, &s.LevelID, &s.Name, &s.Capacity); err != nil {
			return nil, err
		}
		sections = append(sections, &s)
	}
	return sections, rows.Err()
}

func (r *academicsRepository) CreateSubject(ctx context.Context, orgID string, subject *domain.Subject) error {
	const query = `
        INSERT INTO subjects (level_id, name, code, credits, is_elective, description)
        SELECT $1, $2, $3, $4, $5, $6 WHERE EXISTS (
            SELECT 1 FROM academic_levels al JOIN programs pr ON pr.id = al.program_id
            WHERE al.id=$1 AND pr.organization_id=$7)
        RETURNING id`

	return r.pool.QueryRow(ctx, query,
		subject.LevelID, subject.Name, subject.Code, subject.Credits,
		subject.IsElective, subject.Description, orgID,
	).Scan(&subject.ID)
}

func (r *academicsRepository) UpdateSubject(ctx context.Context, orgID string, subject *domain.Subject) error {
	const query = `
        UPDATE subjects sub SET name=$1, code=$2, credits=$3, is_elective=$4, description=$5
        FROM academic_levels al JOIN programs pr ON pr.id = al.program_id
        WHERE sub.id=$6 AND al.id = sub.level_id AND pr.organization_id=$7`

	return execExpectingRow(ctx, r.pool, query,
		subject.Name, subject.Code, subject.Credits, subject.IsElective,
		subject.Description, subject.ID, orgID)
}

func (r *academicsRepository) DeleteSubject(ctx context.Context, orgID, id string) error {
	const query = `
        DELETE FROM subjects sub
        USING academic_levels al, programs pr
        WHERE sub.id=$1 AND al.id = sub.level_id AND pr.id = al.program_id AND pr.organization_id=$2`

	return execExpectingRow(ctx, r.pool, query, id, orgID)
}

func (r *academicsRepository) ListSubjects(ctx context.Context, orgID, levelID string) ([]*domain.Subject, error) {
	query := `
        SELECT sub.id, sub.level_id, sub.name, sub.code, sub.credits, sub.is_elective, sub.description
        FROM subjects sub
        JOIN academic_levels al ON al.id = sub.level_id
        JOIN programs pr ON pr.id = al.program_id
        WHERE pr.organization_id=$1`
	args := []any{orgID}
	if levelID != "" {
		query += ` AND sub.level_id=$2`
		args = append(args, levelID)
	}
	query += ` ORDER BY sub.level_id, sub.code`

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var subjects []*domain.Subject
	for rows.Next() {
		var s domain.Subject
		if err := rows.Scan(&s.ID, &s.LevelID, &s.Name, &s.Code, &s.Credits, &s.IsElective, &s.Description); err != nil {
			return nil, err
		}
		subjects = append(subjects, &s)
	}
	return subjects, rows.Err()
}

// UpsertAssignment creates or replaces the single assignment a section holds
// per subject.
func (r *academicsRepository) UpsertAssignment(ctx context.Context, orgID string, assignment *domain.TeachingAssignment) error {
	const query = `
        INSERT INTO teaching_assignments (section_id, subject_id, instructor_id)
        SELECT $1, $2, $3 WHERE EXISTS (
            SELECT 1 FROM sections s
            JOIN academic_levels al ON al.id = s.level_id
            JOIN programs pr ON pr.id = al.program_id
            WHERE s.id=$1 AND pr.organization_id=$4)
        ON CONFLICT (section_id, subject_id) DO UPDATE SET instructor_id=EXCLUDED.instructor_id
        RETURNING id`

	return r.pool.QueryRow(ctx, query,
		assignment.SectionID, assignment.SubjectID, assignment.InstructorID, orgID,
	).Scan(&assignment.ID)
}

func (r *academicsRepository) DeleteAssignment(ctx context.Context, orgID, id string) error {
	const query = `
        DELETE FROM teaching_assignments ta
        USING sections s, academic_levels al, programs pr
        WHERE ta.id=$1 AND s.id = ta.section_id AND al.id = s.level_id
            AND pr.id = al.program_id AND pr.organization_id=$2`

	return execExpectingRow(ctx, r.pool, query, id, orgID)
}

func (r *academicsRepository) ListAssignments(ctx context.Context, orgID, sectionID string) ([]*domain.TeachingAssignment, error) {
	query := `
        SELECT ta.id, ta.section_id, ta.subject_id, ta.instructor_id
        FROM teaching_assignments ta
        JOIN sections s ON s.id = ta.section_id
        JOIN academic_levels al ON al.id = s.level_id
        JOIN programs pr ON pr.id = al.program_id
        WHERE pr.organization_id=$1`
	args := []any{orgID}
	if sectionID != "" {
		query += ` AND ta.section_id=$2`
		args = append(args, sectionID)
	}
	query += ` ORDER BY ta.section_id`

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var assignments []*domain.TeachingAssignment
	for rows.Next() {
		var a domain.TeachingAssignment
		if err := rows.Scan(&a.ID, &a.SectionID, &a.SubjectID, &a.InstructorID); err != nil {
			return nil, err
		}
		assignments = append(assignments, &a)
	}
	return assignments, rows.Err()
}

func execExpectingRow(ctx context.Context, pool *pgxpool.Pool, query string, args ...any) error {
	cmd, err := pool.Exec(ctx, query, args...)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}
