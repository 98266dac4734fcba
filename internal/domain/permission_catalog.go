package domain

// Permission codenames checked at the route guards. Guards compare codenames
// only; names and descriptions exist for the role editor UI.
const (
	PermViewRole   = "view_role"
	PermAddRole    = "add_role"
	PermChangeRole = "change_role"
	PermDeleteRole = "delete_role"

	PermViewStudent   = "view_student"
	PermAddStudent    = "add_student"
	PermChangeStudent = "change_student"
	PermDeleteStudent = "delete_student"

	PermViewStaff   = "view_staff"
	PermAddStaff    = "add_staff"
	PermChangeStaff = "change_staff"
	PermDeleteStaff = "delete_staff"

	PermManageAcademicStructure = "manage_academic_structure"
	PermViewAcademicStructure   = "view_academic_structure"

	PermActivateCredentials = "activate_credentials"
	PermViewCredentials     = "view_credentials"

	PermViewInstitutionProfile   = "view_institution_profile"
	PermChangeInstitutionProfile = "change_institution_profile"
)

// PermissionCatalog is the fixed capability set seeded at startup and at
// tenant provisioning. Codenames are stable; rows are upserted by codename.
func PermissionCatalog() []*Permission {
	return []*Permission{
		{Codename: PermViewRole, Name: "View roles", Module: "roles"},
		{Codename: PermAddRole, Name: "Create roles", Module: "roles"},
		{Codename: PermChangeRole, Name: "Edit roles", Module: "roles"},
		{Codename: PermDeleteRole, Name: "Delete roles", Module: "roles"},

		{Codename: PermViewStudent, Name: "View students", Module: "students"},
		{Codename: PermAddStudent, Name: "Admit students", Module: "students"},
		{Codename: PermChangeStudent, Name: "Edit students", Module: "students"},
		{Codename: PermDeleteStudent, Name: "Remove students", Module: "students"},

		{Codename: PermViewStaff, Name: "View staff", Module: "staff"},
		{Codename: PermAddStaff, Name: "Onboard staff", Module: "staff"},
		{Codename: PermChangeStaff, Name: "Edit staff", Module: "staff"},
		{Codename: PermDeleteStaff, Name: "Remove staff", Module: "staff"},

		{Codename: PermManageAcademicStructure, Name: "Manage academic structure", Module: "academics"},
		{Codename: PermViewAcademicStructure, Name: "View academic structure", Module: "academics"},

		{Codename: PermActivateCredentials, Name: "Activate portal accounts", Module: "credentials"},
		{Codename: PermViewCredentials, Name: "View credential distribution list", Module: "credentials"},

		{Codename: PermViewInstitutionProfile, Name: "View institution profile", Module: "institution"},
		{Codename: PermChangeInstitutionProfile, Name: "Edit institution profile", Module: "institution"},
	}
}

// SystemRoleSeed describes one built-in role created at provisioning.
type SystemRoleSeed struct {
	Name      string
	Slug      string
	Codenames []string
}

// SystemRoleSeeds returns the built-in roles every new tenant starts with.
// The owner role carries no explicit permissions; it resolves to the
// wildcard at session build time.
func SystemRoleSeeds() []SystemRoleSeed {
	return []SystemRoleSeed{
		{Name: "Owner", Slug: RoleSlugOwner},
		{Name: "Administrator", Slug: "admin", Codenames: []string{
			PermViewRole, PermAddRole, PermChangeRole, PermDeleteRole,
			PermViewStudent, PermAddStudent, PermChangeStudent, PermDeleteStudent,
			PermViewStaff, PermAddStaff, PermChangeStaff, PermDeleteStaff,
			PermManageAcademicStructure, PermViewAcademicStructure,
			PermActivateCredentials, PermViewCredentials,
			PermViewInstitutionProfile, PermChangeInstitutionProfile,
		}},
		{Name: "Instructor", Slug: "instructor", Codenames: []string{
			PermViewStudent, PermViewAcademicStructure,
		}},
		{Name: "Student", Slug: "student", Codenames: []string{
			PermViewAcademicStructure,
		}},
	}
}
