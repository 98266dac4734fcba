package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/edusekai/platform-api/internal/api/http/handlers"
	"github.com/edusekai/platform-api/internal/auth"
	"github.com/edusekai/platform-api/internal/domain"
	"github.com/edusekai/platform-api/internal/tenant"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health        *handlers.HealthHandler
	Auth          *handlers.AuthHandler
	Organizations *handlers.OrganizationsHandler
	Payments      *handlers.PaymentsHandler
	Profiles      *handlers.ProfilesHandler
	Roles         *handlers.RolesHandler
	Students      *handlers.StudentsHandler
	Staff         *handlers.StaffHandler
	Credentials   *handlers.CredentialsHandler
	Academics     *handlers.AcademicsHandler

	TenantMiddleware *tenant.Middleware
	AuthMiddleware   *auth.Middleware
}

// RegisterRoutes wires HTTP routes. The marketing surface is host-agnostic;
// everything under /api/v1 requires a resolved tenant subdomain.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)

	// Public signup flow on the marketing host.
	signup := app.Group("/signup")
	signup.Post("/check", cfg.Payments.CheckAvailability)
	signup.Post("/initiate", cfg.Payments.Initiate)
	signup.Get("/verify", cfg.Payments.Verify)

	// Tenant resolution works without authentication so the client can tell
	// a dead subdomain apart from a dead session.
	app.Get("/organizations/resolve", cfg.Organizations.Resolve)

	api := app.Group("/api/v1", cfg.TenantMiddleware.Handle)

	api.Post("/auth/login", cfg.Auth.Login)
	api.Post("/auth/refresh", cfg.Auth.Refresh)

	protected := api.Group("", cfg.AuthMiddleware.Handle)
	protected.Get("/auth/me", cfg.Auth.Me)
	protected.Post("/auth/logout", cfg.Auth.Logout)
	protected.Post("/auth/active-role", cfg.Auth.SwitchRole)
	// The change endpoint stays reachable while the mandatory-change flag is
	// set; everything below does not.
	protected.Post("/auth/password/change", cfg.Auth.ChangePassword)

	locked := protected.Group("", auth.RequirePasswordChanged())

	locked.Get("/profiles/me", cfg.Profiles.Me)
	locked.Put("/profiles/me", cfg.Profiles.UpdateMe)

	locked.Get("/organizations/current", cfg.Organizations.Current)
	locked.Get("/organizations/profile",
		auth.RequirePermission(domain.PermViewInstitutionProfile), cfg.Organizations.GetInstitutionProfile)
	locked.Put("/organizations/profile",
		auth.RequirePermission(domain.PermChangeInstitutionProfile), cfg.Organizations.UpdateInstitutionProfile)

	roles := locked.Group("/roles")
	roles.Get("/permissions", auth.RequirePermission(domain.PermViewRole), cfg.Roles.Permissions)
	roles.Get("/", auth.RequirePermission(domain.PermViewRole), cfg.Roles.List)
	roles.Get("/:id", auth.RequirePermission(domain.PermViewRole), cfg.Roles.Get)
	roles.Post("/", auth.RequirePermission(domain.PermAddRole), cfg.Roles.Create)
	roles.Put("/:id", auth.RequirePermission(domain.PermChangeRole), cfg.Roles.Update)
	roles.Delete("/:id", auth.RequirePermission(domain.PermDeleteRole), cfg.Roles.Delete)

	students := locked.Group("/students")
	students.Get("/", auth.RequirePermission(domain.PermViewStudent), cfg.Students.List)
	students.Post("/admission/steps/:step", auth.RequirePermission(domain.PermAddStudent), cfg.Students.ValidateStep)
	students.Post("/admission", auth.RequirePermission(domain.PermAddStudent), cfg.Students.Admit)
	students.Get("/:id", auth.RequirePermission(domain.PermViewStudent), cfg.Students.Get)
	students.Put("/:id", auth.RequirePermission(domain.PermChangeStudent), cfg.Students.Update)
	students.Delete("/:id", auth.RequirePermission(domain.PermDeleteStudent), cfg.Students.Delete)

	staff := locked.Group("/staff")
	staff.Get("/", auth.RequirePermission(domain.PermViewStaff), cfg.Staff.List)
	staff.Get("/instructors", auth.RequirePermission(domain.PermViewStaff), cfg.Staff.ListInstructors)
	staff.Post("/onboarding/steps/:step", auth.RequirePermission(domain.PermAddStaff), cfg.Staff.ValidateStep)
	staff.Post("/onboarding", auth.RequirePermission(domain.PermAddStaff), cfg.Staff.Onboard)
	staff.Get("/:id", auth.RequirePermission(domain.PermViewStaff), cfg.Staff.Get)
	staff.Put("/:id", auth.RequirePermission(domain.PermChangeStaff), cfg.Staff.Update)
	staff.Delete("/:id", auth.RequirePermission(domain.PermDeleteStaff), cfg.Staff.Delete)

	credentials := locked.Group("/credentials")
	credentials.Post("/students/activate", auth.RequirePermission(domain.PermActivateCredentials), cfg.Credentials.ActivateStudents)
	credentials.Post("/staff/activate", auth.RequirePermission(domain.PermActivateCredentials), cfg.Credentials.ActivateStaff)
	credentials.Get("/pending", auth.RequirePermission(domain.PermViewCredentials), cfg.Credentials.DistributionList)

	academics := locked.Group("/academics")
	view := auth.RequirePermission(domain.PermViewAcademicStructure)
	manage := auth.RequirePermission(domain.PermManageAcademicStructure)

	academics.Get("/programs", view, cfg.Academics.ListPrograms)
	academics.Post("/programs", manage, cfg.Academics.CreateProgram)
	academics.Put("/programs/:id", manage, cfg.Academics.UpdateProgram)
	academics.Delete("/programs/:id", manage, cfg.Academics.DeleteProgram)
	academics.Get("/programs/:programID/levels", view, cfg.Academics.ListLevels)

	academics.Post("/levels", manage, cfg.Academics.CreateLevel)
	academics.Put("/levels/:id", manage, cfg.Academics.UpdateLevel)
	academics.Delete("/levels/:id", manage, cfg.Academics.DeleteLevel)
	academics.Get("/levels/:levelID/sections", view, cfg.Academics.ListSections)
	academics.Get("/levels/:levelID/subjects", view, cfg.Academics.ListSubjects)

	academics.Post("/sections", manage, cfg.Academics.CreateSection)
	academics.Put("/sections/:id", manage, cfg.Academics.UpdateSection)
	academics.Delete("/sections/:id", manage, cfg.Academics.DeleteSection)
	academics.Get("/sections/:sectionID/assignments", view, cfg.Academics.ListAssignments)

	academics.Post("/subjects", manage, cfg.Academics.CreateSubject)
	academics.Put("/subjects/:id", manage, cfg.Academics.UpdateSubject)
	academics.Delete("/subjects/:id", manage, cfg.Academics.DeleteSubject)

	academics.Put("/assignments", manage, cfg.Academics.AssignInstructor)
	academics.Delete("/assignments/:id", manage, cfg.Academics.RemoveAssignment)
}
