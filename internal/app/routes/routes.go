package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/campushub/registrar/internal/app/controllers"
	"github.com/campushub/registrar/internal/middleware"
)

// SetupRouter configures all application routes
func SetupRouter(
	router *gin.Engine,
	authController *controllers.AuthController,
	studentController *controllers.StudentController,
	subjectController *controllers.SubjectController,
	authMiddleware *middleware.AuthMiddleware,
) {
	router.GET("/health", func(ctx *gin.Context) {
		ctx.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// --- Public routes ---
	router.POST("/register", authController.Register)
	router.POST("/login", authController.Login)
	router.POST("/refresh", authController.Refresh)

	// Subject catalog (public access)
	router.GET("/subjects", subjectController.ListCatalog)
	router.GET("/subject/:id", subjectController.GetSubject)
	router.POST("/subject", subjectController.CreateSubject)
	router.DELETE("/subject/:id", subjectController.DeleteSubject)

	// --- Authenticated routes ---
	authenticated := router.Group("")
	authenticated.Use(authMiddleware.JWTAuth())
	{
		authenticated.POST("/logout", authController.Logout)

		student := authenticated.Group("/student")
		{
			student.GET("", studentController.GetSelf)
			student.GET("/subjects", studentController.ListSubjects)
			student.GET("/subjects/grades", studentController.ListAllGrades)
			student.GET("/subject/:id", studentController.GetEnrolledSubject)
			student.POST("/subject/:id", studentController.Enroll)
			student.GET("/subject/:id/grades", studentController.GetGrades)
			student.PUT("/subject/:id/grades", studentController.UpdateGrades)
		}

		// Destructive account operations need a fresh login
		fresh := authenticated.Group("/student")
		fresh.Use(authMiddleware.FreshRequired())
		{
			fresh.DELETE("", studentController.DeleteSelf)
			fresh.DELETE("/subject/:id", studentController.Unenroll)
		}
	}
}
