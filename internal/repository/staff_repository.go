package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/edusekai/platform-api/internal/domain"
)

// StaffRepository defines persistence access for staff and instructors.
type StaffRepository interface {
	// Onboard creates the profile and staff record, plus the instructor
	// specialization when one is supplied, in one transaction.
	Onboard(ctx context.Context, staff *domain.StaffMember, instructor *domain.Instructor) error
	List(ctx context.Context, orgID string) ([]*domain.StaffMember, error)
	ListInstructors(ctx context.Context, orgID string) ([]*domain.Instructor, error)
	GetByID(ctx context.Context, orgID, id string) (*domain.StaffMember, error)
	GetInstructorByID(ctx context.Context, orgID, id string) (*domain.Instructor, error)
	Update(ctx context.Context, orgID string, staff *domain.StaffMember) error
	Delete(ctx context.Context, orgID, id string) error
	ListPendingCredentials(ctx context.Context, orgID string) ([]*domain.PendingCredential, error)
}

type staffRepository struct {
	pool *pgxpool.Pool
}

// NewStaffRepository returns a Postgres-backed implementation.
func NewStaffRepository(pool *pgxpool.Pool) StaffRepository {
	return &staffRepository{pool: pool}
}

func (r *staffRepository) Onboard(ctx context.Context, staff *domain.StaffMember, instructor *domain.Instructor) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx) //nolint:errcheck

	p := staff.Profile
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
        INSERT INTO staff_members (organization_id, profile_id, employee_id, designation, department, joining_date, is_active, qualification, experience_years)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
        RETURNING id, created_at, updated_at`,
		p.OrganizationID, p.ID, staff.EmployeeID, staff.Designation, staff.Department,
		staff.JoiningDate, staff.IsActive, staff.Qualification, staff.ExperienceYears,
	).Scan(&staff.ID, &staff.CreatedAt, &staff.UpdatedAt); err != nil {
		return err
	}

	if instructor != nil {
		instructor.StaffMemberID = staff.ID
		if err := tx.QueryRow(ctx, `
            INSERT INTO instructors (staff_member_id, specialization, license_number, bio)
            VALUES ($1, $2, $3, $4)
            RETURNING id`,
			staff.ID, instructor.Specialization, instructor.LicenseNumber, instructor.Bio,
		).Scan(&instructor.ID); err != nil {
			return err
		}
	}

	return tx.Commit(ctx)
}

const staffSelect = `
    SELECT sm.id, sm.employee_id, sm.designation, sm.department, sm.joining_date,
        sm.is_active, sm.qualification, sm.experience_years, sm.created_at, sm.updated_at,
        p.id, p.organization_id, p.user_id, p.first_name, p.middle_name, p.last_name,
        p.email, p.phone, p.date_of_birth, p.gender, p.address, p.created_at, p.updated_at
    FROM staff_members sm
    JOIN profiles p ON p.id = sm.profile_id`

func (r *staffRepository) List(ctx context.Context, orgID string) ([]*domain.StaffMember, error) {
	query := staffSelect + ` WHERE sm.organization_id=$1 ORDER BY p.first_name, p.last_name`

	rows, err := r.pool.Query(ctx, query, orgID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var members []*domain.StaffMember
	for rows.Next() {
		member, err := scanStaff(rows)
		if err != nil {
			return nil, err
		}
		members = append(members, member)
	}
	return members, rows.Err()
}

func (r *staffRepository) ListInstructors(ctx context.Context, orgID string) ([]*domain.Instructor, error) {
	const query = `
        SELECT i.id, i.staff_member_id, i.specialization, i.license_number, i.bio,
            sm.id, sm.employee_id, sm.designation, sm.department, sm.joining_date,
            sm.is_active, sm.qualification, sm.experience_years, sm.created_at, sm.updated_at,
            p.id, p.organization_id, p.user_id, p.first_name, p.middle_name, p.last_name,
            p.email, p.phone, p.date_of_birth, p.gender, p.address, p.created_at, p.updated_at
        FROM instructors i
        JOIN staff_members sm ON sm.id = i.staff_member_id
        JOIN profiles p ON p.id = sm.profile_id
        WHERE sm.organization_id=$1
        ORDER BY p.first_name, p.last_name`

	rows, err := r.pool.Query(ctx, query, orgID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var instructors []*domain.Instructor
	for rows.Next() {
		instructor, err := scanInstructor(rows)
		if err != nil {
			return nil, err
		}
		instructors = append(instructors, instructor)
	}
	return instructors, rows.Err()
}

func (r *staffRepository) GetByID(ctx context.Context, orgID, id string) (*domain.StaffMember, error) {
	query := staffSelect + ` WHERE sm.id=$1 AND sm.organization_id=$2`
	return scanStaff(r.pool.QueryRow(ctx, query, id, orgID))
}

func (r *staffRepository) GetInstructorByID(ctx context.Context, orgID, id string) (*domain.Instructor, error) {
	const query = `
        SELECT i.id, i.staff_member_id, i.specialization, i.license_number, i.bio,
            sm.id, sm.employee_id, sm.designation, sm.department, sm.joining_date,
            sm.is_active, sm.qualification, sm.experience_years, sm.created_at, sm.updated_at,
            p.id, p.organization_id, p.user_id, p.first_name, p.middle_name, p.last_name,
            p.email, p.phone, p.date_of_birth, p.gender, p.address, p.created_at, p.updated_at
        FROM instructors i
        JOIN staff_members sm ON sm.id = i.staff_member_id
        JOIN profiles p ON p.id = sm.profile_id
        WHERE i.id=$1 AND sm.organization_id=$2`

	return scanInstructor(r.pool.QueryRow(ctx, query, id, orgID))
}

func (r *staffRepository) Update(ctx context.Context, orgID string, staff *domain.StaffMember) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx) //nolint:errcheck

	p := staff.Profile
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
        UPDATE staff_members SET designation=$1, department=$2, joining_date=$3,
            is_active=$4, qualification=$5, experience_years=$6, updated_at=NOW()
        WHERE id=$7 AND organization_id=$8`,
		staff.Designation, staff.Department, staff.JoiningDate,
		staff.IsActive, staff.Qualification, staff.ExperienceYears, staff.ID, orgID,
	); err != nil {
		return err
	}

	return tx.Commit(ctx)
}

func (r *staffRepository) Delete(ctx context.Context, orgID, id string) error {
	cmd, err := r.pool.Exec(ctx, `
        DELETE FROM profiles WHERE organization_id=$1
            AND id = (SELECT profile_id FROM staff_members WHERE id=$2 AND organization_id=$1)`,
		orgID, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *staffRepository) ListPendingCredentials(ctx context.Context, orgID string) ([]*domain.PendingCredential, error) {
	const query = `
        SELECT u.id, u.username, u.initial_password_display,
            p.first_name, p.middle_name, p.last_name, u.updated_at,
            EXISTS(SELECT 1 FROM instructors i WHERE i.staff_member_id = sm.id) AS is_instructor
        FROM users u
        JOIN profiles p ON p.user_id = u.id
        JOIN staff_members sm ON sm.profile_id = p.id
        WHERE p.organization_id=$1 AND u.needs_password_change AND u.initial_password_display IS NOT NULL
        ORDER BY u.updated_at DESC`

	rows, err := r.pool.Query(ctx, query, orgID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var creds []*domain.PendingCredential
	for rows.Next() {
		var (
			c            domain.PendingCredential
			first        string
			middle       string
			last         string
			isInstructor bool
		)
		if err := rows.Scan(&c.UserID, &c.Username, &c.InitialPassword, &first, &middle, &last, &c.IssuedAt, &isInstructor); err != nil {
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
		c.Kind = domain.CredentialKindStaff
		if isInstructor {
			c.Kind = domain.CredentialKindInstructor
		}
		creds = append(creds, &c)
	}
	return creds, rows.Err()
}

func scanStaff(row pgx.Row) (*domain.StaffMember, error) {
	var (
		sm domain.StaffMember
		p  domain.Profile
	)
	if err := row.Scan(
		&sm.ID, &sm.EmployeeID, &sm.Designation, &sm.Department, &sm.JoiningDate,
		&sm.IsActive, &sm.Qualification, &sm.ExperienceYears, &sm.CreatedAt, &sm.UpdatedAt,
		&p.ID, &p.OrganizationID, &p.UserID, &p.FirstName, &p.MiddleName, &p.LastName,
		&p.Email, &p.Phone, &p.DateOfBirth, &p.Gender, &p.Address, &p.CreatedAt, &p.UpdatedAt,
	); err != nil {
		return nil, err
	}
	sm.Profile = &p
	return &sm, nil
}

func scanInstructor(row pgx.Row) (*domain.Instructor, error) {
	var (
		i  domain.Instructor
		sm domain.StaffMember
		p  domain.Profile
	)
	if err := row.Scan(
		&i.ID, &i.StaffMemberID, &i.Specialization, &i.LicenseNumber, &i.Bio,
		&sm.ID, &sm.EmployeeID, &sm.Designation, &sm.Department, &sm.JoiningDate,
		&sm.IsActive, &sm.Qualification, &sm.ExperienceYears, &sm.CreatedAt, &sm.UpdatedAt,
		&p.ID, &p.OrganizationID, &p.UserID, &p.FirstName, &p.MiddleName, &p.LastName,
		&p.Email, &p.Phone, &p.DateOfBirth, &p.Gender, &p.Address, &p.CreatedAt, &p.UpdatedAt,
	); err != nil {
		return nil, err
	}
	sm.Profile = &p
	i.Staff = &sm
	return &i, nil
}
