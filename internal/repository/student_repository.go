package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/edusekai/platform-api/internal/domain"
)

// StudentRepository defines persistence access for student records.
type StudentRepository interface {
	// Enroll creates the profile, student record, placement, optional
	// academic history and guardians in one transaction.
	Enroll(ctx context.Context, student *domain.Student, history *domain.AcademicHistory, guardians []domain.Guardian) error
	List(ctx context.Context, orgID string, unactivatedOnly bool) ([]*domain.Student, error)
	GetByID(ctx context.Context, orgID, id string) (*domain.Student, error)
	Update(ctx context.Context, orgID string, student *domain.Student) error
	Delete(ctx context.Context, orgID, id string) error
	ListPendingCredentials(ctx context.Context, orgID string) ([]*domain.PendingCredential, error)
}

type studentRepository struct {
	pool *pgxpool.Pool
}

// NewStudentRepository returns a Postgres-backed implementation.
func NewStudentRepository(pool *pgxpool.Pool) StudentRepository {
	return &studentRepository{pool: pool}
}

func (r *studentRepository) Enroll(ctx context.Context, student *domain.Student, history *domain.AcademicHistory, guardians []domain.Guardian) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx) //nolint:errcheck

	p := student.Profile
	if err := tx.QueryRow(ctx, `
        INSERT INTO profiles (organization_id, user_id, first_name, middle_name, last_name, email, phone, date_of_birth, gender, address)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
        RETURNING id, created_at, updated_at`,
		p.OrganizationID, p.UserID, p.FirstName, p.MiddleName, p.LastName,
		p.Email, p.Phone, p.DateOfBirth, p.Gender, p.Address,
	).Scan(&p.ID, &p.CreatedAt, &p.UpdatedAt); err != nil {
		return err
	}

	if err := tx.QueryRow(ctx, `
        INSERT INTO students (organization_id, profile_id, enrollment_id, admission_date, status)
        VALUES ($1, $2, $3, $4, $5)
        RETURNING id, created_at, updated_at`,
		p.OrganizationID, p.ID, student.EnrollmentID, student.AdmissionDate, student.Status,
	).Scan(&student.ID, &student.CreatedAt, &student.UpdatedAt); err != nil {
		return err
	}

	if pl := student.Placement; pl != nil {
		pl.StudentID = student.ID
		if err := tx.QueryRow(ctx, `
            INSERT INTO student_placements (student_id, level_id, section_id, academic_year, is_current)
            VALUES ($1, $2, $3, $4, TRUE)
            RETURNING id`,
			student.ID, pl.LevelID, pl.SectionID, pl.AcademicYear,
		).Scan(&pl.ID); err != nil {
			return err
		}
	}

	if history != nil && history.PreviousSchool != "" {
		history.StudentID = student.ID
		if err := tx.QueryRow(ctx, `
            INSERT INTO academic_history (student_id, previous_school, last_grade_passed, completion_year, remarks)
            VALUES ($1, $2, $3, $4, $5)
            RETURNING id`,
			student.ID, history.PreviousSchool, history.LastGradePassed, history.CompletionYear, history.Remarks,
		).Scan(&history.ID); err != nil {
			return err
		}
	}

	for i := range guardians {
		g := &guardians[i]
		g.StudentID = student.ID
		if err := tx.QueryRow(ctx, `
            INSERT INTO guardians (student_id, first_name, last_name, phone, gender, occupation, relation, is_primary)
            VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
            RETURNING id`,
			student.ID, g.FirstName, g.LastName, g.Phone, g.Gender, g.Occupation, g.Relation, g.IsPrimary,
		).Scan(&g.ID); err != nil {
			return err
		}
	}

	return tx.Commit(ctx)
}

const studentSelect = `
    SELECT s.id, s.enrollment_id, s.admission_date, s.status, s.created_at, s.updated_at,
        p.id, p.organization_id, p.user_id, p.first_name, p.middle_name, p.last_name,
        p.email, p.phone, p.date_of_birth, p.gender, p.address, p.created_at, p.updated_at,
        sp.id, sp.level_id, al.name, sp.section_id, COALESCE(sec.name, ''), sp.academic_year
    FROM students s
    JOIN profiles p ON p.id = s.profile_id
    LEFT JOIN student_placements sp ON sp.student_id = s.id AND sp.is_current
    LEFT JOIN academic_levels al ON al.id = sp.level_id
    LEFT JOIN sections sec ON sec.id = sp.section_id`

func (r *studentRepository) List(ctx context.Context, orgID string, unactivatedOnly bool) ([]*domain.Student, error) {
	query := studentSelect + ` WHERE s.organization_id=$1`
	if unactivatedOnly {
		query += ` AND p.user_id IS NULL`
	}
	query += ` ORDER BY p.first_name, p.last_name`

	rows, err := r.pool.Query(ctx, query, orgID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var students []*domain.Student
	for rows.Next() {
		student, err := scanStudent(rows)
		if err != nil {
			return nil, err
		}
		students = append(students, student)
	}
	return students, rows.Err()
}

func (r *studentRepository) GetByID(ctx context.Context, orgID, id string) (*domain.Student, error) {
	query := studentSelect + ` WHERE s.id=$1 AND s.organization_id=$2`
	return scanStudent(r.pool.QueryRow(ctx, query, id, orgID))
}

func (r *studentRepository) Update(ctx context.Context, orgID string, student *domain.Student) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx) //nolint:errcheck

	p := student.Profile
	cmd, err := tx.Exec(ctx, `
        UPDATE profiles SET first_name=$1, middle_name=$2, last_name=$3, email=$4,
            phone=$5, date_of_birth=$6, gender=$7, address=$8, updated_at=NOW()
        WHERE id=$9 AND organization_id=$10`,
		p.FirstName, p.MiddleName, p.LastName, p.Email,
		p.Phone, p.DateOfBirth, p.Gender, p.Address, p.ID, orgID,
	)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}

	if _, err := tx.Exec(ctx, `
        UPDATE students SET admission_date=$1, status=$2, updated_at=NOW()
        WHERE id=$3 AND organization_id=$4`,
		student.AdmissionDate, student.Status, student.ID, orgID,
	); err != nil {
		return err
	}

	if pl := student.Placement; pl != nil {
		if _, err := tx.Exec(ctx, `
            INSERT INTO student_placements (student_id, level_id, section_id, academic_year, is_current)
            VALUES ($1, $2, $3, $4, TRUE)
            ON CONFLICT (student_id, academic_year) DO UPDATE SET
                level_id=EXCLUDED.level_id, section_id=EXCLUDED.section_id, is_current=TRUE`,
			student.ID, pl.LevelID, pl.SectionID, pl.AcademicYear,
		); err != nil {
			return err
		}
	}

	return tx.Commit(ctx)
}

func (r *studentRepository) Delete(ctx context.Context, orgID, id string) error {
	// Profile rows cascade to the student record.
	cmd, err := r.pool.Exec(ctx, `
        DELETE FROM profiles WHERE organization_id=$1
            AND id = (SELECT profile_id FROM students WHERE id=$2 AND organization_id=$1)`,
		orgID, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *studentRepository) ListPendingCredentials(ctx context.Context, orgID string) ([]*domain.PendingCredential, error) {
	const query = `
        SELECT u.id, u.username, u.initial_password_display,
            p.first_name, p.middle_name, p.last_name, u.updated_at
        FROM users u
        JOIN profiles p ON p.user_id = u.id
        JOIN students s ON s.profile_id = p.id
        WHERE p.organization_id=$1 AND u.needs_password_change AND u.initial_password_display IS NOT NULL
        ORDER BY u.updated_at DESC`

	rows, err := r.pool.Query(ctx, query, orgID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanPendingCredentials(rows, domain.CredentialKindStudent)
}

func scanStudent(row pgx.Row) (*domain.Student, error) {
	var (
		s  domain.Student
		p  domain.Profile
		pl struct {
			ID           *string
			LevelID      *string
			LevelName    *string
			SectionID    *string
			SectionName  *string
			AcademicYear *string
		}
	)
	if err := row.Scan(
		&s.ID, &s.EnrollmentID, &s.AdmissionDate, &s.Status, &s.CreatedAt, &s.UpdatedAt,
		&p.ID, &p.OrganizationID, &p.UserID, &p.FirstName, &p.MiddleName, &p.LastName,
		&p.Email, &p.Phone, &p.DateOfBirth, &p.Gender, &p.Address, &p.CreatedAt, &p.UpdatedAt,
		&pl.ID, &pl.LevelID, &pl.LevelName, &pl.SectionID, &pl.SectionName, &pl.AcademicYear,
	); err != nil {
		return nil, err
	}
	s.Profile = &p
	if pl.ID != nil {
		placement := &domain.StudentPlacement{
			ID:        *pl.ID,
			StudentID: s.ID,
			IsCurrent: true,
		}
		if pl.LevelID != nil {
			placement.LevelID = *pl.LevelID
		}
		if pl.LevelName != nil {
			placement.LevelName = *pl.LevelName
		}
		placement.SectionID = pl.SectionID
		if pl.SectionName != nil {
			placement.SectionName = *pl.SectionName
		}
		if pl.AcademicYear != nil {
			placement.AcademicYear = *pl.AcademicYear
		}
		s.Placement = placement
	}
	return &s, nil
}

func scanPendingCredentials(rows pgx.Rows, kind domain.CredentialKind) ([]*domain.PendingCredential, error) {
	var creds []*domain.PendingCredential
	for rows.Next() {
		var (
			c      domain.PendingCredential
			first  string
			middle string
			last   string
		)
		if err := rows.Scan(&c.UserID, &c.Username, &c.InitialPassword, &first, &middle, &last, &c.IssuedAt); err != nil {
			return nil, err
		}
		name := first
		if middle != "" {
			name += " " + middle
		}
		if last != "" {
			name += " " + last
		}
		c.FullName = name
		c.Kind = kind
		creds = append(creds, &c)
	}
	return creds, rows.Err()
}
