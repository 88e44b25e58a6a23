package routes

import (
	"schooladmin_go/controllers"
	"schooladmin_go/middleware"
	"schooladmin_go/utils"

	"github.com/gofiber/fiber/v2"
)

// SetupRoutes configures all application routes
func SetupRoutes(app *fiber.App) {
	// Initialize controllers
	authController := &controllers.AuthController{}
	classController := &controllers.ClassController{}
	subjectController := &controllers.SubjectController{}
	teacherController := &controllers.TeacherController{}
	studentController := &controllers.StudentController{}
	attendanceController := &controllers.AttendanceController{}
	feeController := &controllers.FeeController{}
	salaryController := &controllers.SalaryController{}
	dashboardController := &controllers.DashboardController{}

	// API group
	api := app.Group("/api")

	// Authentication routes (no middleware)
	auth := api.Group("/auth")
	auth.Post("/login", authController.Login)

	// Protected routes (require authentication)
	protected := api.Group("/", middleware.JWTMiddleware())

	protected.Get("/profile", authController.GetProfile)
	protected.Put("/profile/password", authController.ChangePassword)
	protected.Post("/auth/logout", authController.Logout)

	// Class management routes (admin only for writes)
	classes := protected.Group("/classes")
	classes.Get("/", classController.GetClasses)
	classes.Get("/:id", classController.GetClass)
	classes.Post("/", middleware.RequireAdmin(), classController.CreateClass)
	classes.Put("/:id", middleware.RequireAdmin(), classController.UpdateClass)
	classes.Delete("/:id", middleware.RequireAdmin(), classController.DeleteClass)

	// Subject management routes
	subjects := protected.Group("/subjects")
	subjects.Get("/", subjectController.GetSubjects)
	subjects.Get("/:id", subjectController.GetSubject)
	subjects.Post("/", middleware.RequireAdmin(), subjectController.CreateSubject)
	subjects.Put("/:id", middleware.RequireAdmin(), subjectController.UpdateSubject)
	subjects.Put("/:id/teachers", middleware.RequireAdmin(), subjectController.AssignTeachers)
	subjects.Delete("/:id", middleware.RequireAdmin(), subjectController.DeleteSubject)

	// Teacher management routes (admin only)
	teachers := protected.Group("/teachers", middleware.RequireAdmin())
	teachers.Get("/", teacherController.GetTeachers)
	teachers.Get("/:id", teacherController.GetTeacher)
	teachers.Post("/", teacherController.CreateTeacher)
	teachers.Put("/:id", teacherController.UpdateTeacher)
	teachers.Delete("/:id", teacherController.DeleteTeacher)

	// Student management routes (teachers may view, admin manages)
	students := protected.Group("/students")
	students.Get("/", middleware.RequireTeacherOrAdmin(), studentController.GetStudents)
	students.Get("/:id", middleware.RequireTeacherOrAdmin(), studentController.GetStudent)
	students.Post("/", middleware.RequireAdmin(), studentController.CreateStudent)
	students.Put("/:id", middleware.RequireAdmin(), studentController.UpdateStudent)
	students.Delete("/:id", middleware.RequireAdmin(), studentController.DeleteStudent)

	// Attendance routes
	attendance := protected.Group("/attendance")
	attendance.Get("/students", middleware.RequireTeacherOrAdmin(), attendanceController.GetStudentAttendance)
	attendance.Post("/students", middleware.RequireTeacherOrAdmin(), attendanceController.MarkStudentAttendance)
	attendance.Get("/students/:id/summary", middleware.RequireTeacherOrAdmin(), attendanceController.GetStudentMonthlySummary)
	attendance.Get("/teachers", middleware.RequireAdmin(), attendanceController.GetTeacherAttendance)
	attendance.Post("/teachers", middleware.RequireAdmin(), attendanceController.MarkTeacherAttendance)
	attendance.Get("/teachers/:id/summary", middleware.RequireAdmin(), attendanceController.GetTeacherMonthlySummary)
	attendance.Get("/report", middleware.RequireAdmin(), attendanceController.ExportAttendanceReport)

	// Fee management routes (admin only)
	fees := protected.Group("/fees", middleware.RequireAdmin())
	fees.Get("/", feeController.GetFees)
	fees.Post("/", feeController.CreateFee)
	fees.Put("/:id", feeController.UpdateFee)
	fees.Delete("/:id", feeController.DeleteFee)

	// Salary management routes (admin only)
	salaries := protected.Group("/salaries", middleware.RequireAdmin())
	salaries.Get("/", salaryController.GetSalaries)
	salaries.Post("/", salaryController.CreateSalary)
	salaries.Put("/:id", salaryController.UpdateSalary)
	salaries.Delete("/:id", salaryController.DeleteSalary)

	// Role dashboards and self-service views
	dashboard := protected.Group("/dashboard")
	dashboard.Get("/admin", middleware.RequireAdmin(), dashboardController.GetAdminDashboard)
	dashboard.Get("/teacher", middleware.RequireRole(utils.RoleTeacher), dashboardController.GetTeacherDashboard)
	dashboard.Get("/student", middleware.RequireRole(utils.RoleStudent), dashboardController.GetStudentDashboard)

	me := protected.Group("/me")
	me.Get("/attendance", middleware.RequireRole(utils.RoleStudent), dashboardController.GetMyStudentAttendanceHistory)
	me.Get("/teacher-attendance", middleware.RequireRole(utils.RoleTeacher), dashboardController.GetMyTeacherAttendanceHistory)
	me.Get("/fees", middleware.RequireRole(utils.RoleStudent), dashboardController.GetMyFees)
}
