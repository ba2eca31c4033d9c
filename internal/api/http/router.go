package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/school-service/internal/api/http/handlers"
	"github.com/spec-kit/school-service/internal/auth"
	"github.com/spec-kit/school-service/internal/domain"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health         *handlers.HealthHandler
	Auth           *handlers.AuthHandler
	Users          *handlers.UsersHandler
	Students       *handlers.StudentsHandler
	Courses        *handlers.CoursesHandler
	Classes        *handlers.ClassesHandler
	AuthMiddleware *auth.Middleware
}

// RegisterRoutes wires HTTP routes.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)

	authGroup := app.Group("/auth")
	authGroup.Post("/login", cfg.Auth.Login)
	authGroup.Post("/refresh", cfg.Auth.Refresh)
	authGroup.Post("/logout", cfg.AuthMiddleware.Handle, cfg.Auth.Logout)
	authGroup.Get("/me", cfg.AuthMiddleware.Handle, cfg.Auth.Me)
	authGroup.Post("/password", cfg.AuthMiddleware.Handle, cfg.Users.ChangePassword)

	staffOnly := auth.RequireRoles(domain.RoleAdmin, domain.RoleTeacher)
	adminOnly := auth.RequireRoles(domain.RoleAdmin)
	anyRole := auth.RequireRoles(domain.RoleAdmin, domain.RoleTeacher, domain.RoleParent, domain.RoleStudent)

	users := app.Group("/users", cfg.AuthMiddleware.Handle)
	users.Post("", adminOnly, cfg.Users.Create)
	users.Put("/:id", adminOnly, cfg.Users.Update)

	students := app.Group("/students", cfg.AuthMiddleware.Handle)
	students.Get("", staffOnly, cfg.Students.List)
	students.Post("", staffOnly, cfg.Students.Create)
	students.Get("/:id", staffOnly, cfg.Students.Get)
	students.Put("/:id", staffOnly, cfg.Students.Update)
	students.Delete("/:id", adminOnly, cfg.Students.Delete)
	students.Get("/:id/medical-records", staffOnly, cfg.Students.ListMedicalRecords)
	students.Post("/:id/medical-records", staffOnly, cfg.Students.AddMedicalRecord)

	app.Delete("/medical-records/:id", cfg.AuthMiddleware.Handle, staffOnly, cfg.Students.DeleteMedicalRecord)

	courses := app.Group("/courses", cfg.AuthMiddleware.Handle)
	courses.Get("", anyRole, cfg.Courses.List)
	courses.Get("/:id", anyRole, cfg.Courses.Get)
	courses.Post("", adminOnly, cfg.Courses.Create)
	courses.Put("/:id", adminOnly, cfg.Courses.Update)
	courses.Delete("/:id", adminOnly, cfg.Courses.Delete)

	classes := app.Group("/classes", cfg.AuthMiddleware.Handle)
	classes.Get("", anyRole, cfg.Classes.List)
	classes.Get("/:id", anyRole, cfg.Classes.Get)
	classes.Post("", adminOnly, cfg.Classes.Create)
	classes.Put("/:id", adminOnly, cfg.Classes.Update)
	classes.Delete("/:id", adminOnly, cfg.Classes.Delete)
	classes.Post("/:id/students", adminOnly, cfg.Classes.Enroll)
}
