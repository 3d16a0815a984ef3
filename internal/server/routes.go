// Package server contain implementation of go-gin-server and each route handlers
package server

import (
	"net/http"
	"os"
	"strings"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	// Load env
	_ "github.com/joho/godotenv/autoload"

	"institute-backend/internal/auth"
	"institute-backend/internal/controller/application"
	"institute-backend/internal/controller/article"
	"institute-backend/internal/controller/file"
	"institute-backend/internal/controller/job"
	"institute-backend/internal/middleware"
	"institute-backend/internal/model"
	"institute-backend/internal/refdata"
)

// RegisterRoutes will register each http endpoint routes to bound MyServer instance
func (s *MyServer) RegisterRoutes() http.Handler {
	r := gin.Default()

	allowOrginsStr := os.Getenv("ALLOW_ORIGIN")
	allowOrgins := strings.Split(allowOrginsStr, ",")

	lAuth := auth.NewLocalAuthHandler(s.DB)
	jobController := job.NewJobController(s.DB)
	appController := application.NewApplicationController(s.DB, s.Notifier)
	fileController := file.NewFileController(s.DB, s.Storage)
	articleController := article.NewArticleController(s.DB)

	r.Use(cors.New(cors.Config{
		AllowOrigins:     allowOrgins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS", "PATCH"},
		AllowHeaders:     []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
	}))

	r.GET("/health", s.healthHandler)
	v1 := r.Group("/api/v1")
	{
		authRoute := v1.Group("/auth")
		{
			authRoute.POST("login", lAuth.LocalLoginHandler)
		}

		// Public site endpoints
		v1.GET("/jobs", jobController.GetJobs)
		v1.GET("/jobs/:id", jobController.GetJobByID)
		v1.GET("/articles", articleController.GetArticles)
		v1.GET("/articles/:id", articleController.GetArticleByID)
		v1.GET("/experts", refdata.ListExperts)
		v1.GET("/labs", refdata.ListLabs)
		v1.GET("/events", refdata.ListEvents)

		// Candidate endpoints: file upload happens before submission and
		// returns the reference the submission carries.
		v1.POST("/files", middleware.EnvRateLimitMiddleware(), middleware.SizeLimit(10<<20), fileController.UploadFile)
		v1.POST("/applications", middleware.EnvRateLimitMiddleware(), appController.SubmitHandler)

		// Admin dashboard endpoints
		needAdmin := v1.Group("")
		{
			needAdmin.Use(middleware.RequireAuth(s.DB), middleware.CheckRole(model.RoleAdmin))

			needAdmin.POST("/jobs", jobController.CreateJobHandler)
			needAdmin.PATCH("/jobs/:id", jobController.EditJob)
			needAdmin.DELETE("/jobs/:id", jobController.DeleteJob)

			needAdmin.GET("/applications", appController.GetApplications)
			needAdmin.GET("/applications/:id", appController.GetApplicationByID)
			needAdmin.PATCH("/applications/:id", appController.UpdateApplication)
			needAdmin.DELETE("/applications/:id", appController.DeleteApplication)

			needAdmin.GET("/files/:id", fileController.GetFile)

			needAdmin.POST("/articles", articleController.CreateArticleHandler)
			needAdmin.PATCH("/articles/:id", articleController.EditArticle)
			needAdmin.DELETE("/articles/:id", articleController.DeleteArticle)
		}
	}

	return r
}

func (s *MyServer) healthHandler(c *gin.Context) {
	c.JSON(http.StatusOK, s.DB.Health())
}
