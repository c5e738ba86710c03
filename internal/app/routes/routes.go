package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/aosora/coursehub/internal/app/controllers"
)

// SetupRouter configures all application routes
func SetupRouter(
	router *gin.Engine,
	courseController *controllers.CourseController,
) {
	// API version group
	v1 := router.Group("/api/v1")

	courses := v1.Group("/courses")
	{
		courses.GET("", courseController.GetCourses)
		courses.GET("/all", courseController.ListAllCourses)
		courses.POST("/by-code", courseController.GetCoursesByCode)
		courses.POST("/search", courseController.SearchCourse)
	}

	// Operator-facing synchronization endpoint
	v1.PUT("/course-database/:year", courseController.UpdateCourseDatabase)
}
