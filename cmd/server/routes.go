package main

import (
	"github.com/gin-gonic/gin"
	"studio-ops.backend/internal/interfaces/http/handlers"
	"studio-ops.backend/internal/interfaces/http/middleware"
)

type routeDeps struct {
	authHandler              *handlers.AuthHandler
	teamHandler              *handlers.TeamHandler
	projectHandler           *handlers.ProjectHandler
	projectAttachmentHandler *handlers.ProjectAttachmentHandler
	taskHandler              *handlers.TaskHandler
	offeringHandler          *handlers.OfferingHandler
	payrollHandler           *handlers.PayrollHandler
	statisticHandler         *handlers.StatisticHandler
	uploadHandler            *handlers.UploadHandler
	discordHandler           *handlers.DiscordHandler
	authMiddleware           gin.HandlerFunc
	authRateLimit            gin.HandlerFunc
}

func registerAPIV1Routes(r *gin.Engine, d routeDeps) {
	v1 := r.Group("/api/v1")
	{
		// Auth routes (public, throttled)
		auth := v1.Group("/auth")
		auth.Use(d.authRateLimit)
		{
			auth.POST("/google/verify", d.authHandler.Verify)
			auth.POST("/google", d.authHandler.Login)
		}

		// Command registration is guarded by the bot secret
		v1.GET("/discord/register", d.discordHandler.RegisterCommands)

		protected := v1.Group("")
		protected.Use(d.authMiddleware)

		teams := protected.Group("/team")
		{
			teams.GET("/list", d.teamHandler.ListTeams)
			teams.POST("", d.teamHandler.CreateTeam)
			teams.PATCH("/:id", d.teamHandler.UpdateTeam)
			teams.DELETE("/:id", d.teamHandler.DeleteTeam)
		}

		projects := protected.Group("/project")
		{
			projects.GET("/list", d.projectHandler.ListProjects)
			projects.POST("", middleware.IdempotencyMiddleware(), d.projectHandler.CreateProject)
			projects.PATCH("/:id", d.projectHandler.UpdateProject)
			projects.DELETE("/:id", d.projectHandler.DeleteProject)
		}

		attachments := protected.Group("/project-attachments")
		{
			attachments.GET("/:projectId", d.projectAttachmentHandler.ListAttachments)
			attachments.POST("", d.projectAttachmentHandler.CreateAttachment)
			attachments.DELETE("/:attachmentId", d.projectAttachmentHandler.DeleteAttachment)
		}

		tasks := protected.Group("/task")
		{
			tasks.GET("/list", d.taskHandler.ListTasks)
			tasks.POST("", d.taskHandler.CreateTask)
			tasks.PATCH("/:id", d.taskHandler.UpdateTask)
			tasks.DELETE("/:id", d.taskHandler.DeleteTask)
		}

		protected.GET("/offering/list", d.offeringHandler.ListOfferings)

		payrolls := protected.Group("/payroll")
		{
			payrolls.GET("/list", d.payrollHandler.ListPayrolls)
			payrolls.POST("", middleware.IdempotencyMiddleware(), d.payrollHandler.CreatePayroll)
			payrolls.PATCH("/:id", d.payrollHandler.UpdatePayroll)
			payrolls.DELETE("/:id", d.payrollHandler.DeletePayroll)
		}

		statistics := protected.Group("/statistic")
		{
			statistics.GET("/image-production-per-week", d.statisticHandler.ImageProductionPerWeek)
			statistics.POST("/visit", d.statisticHandler.RecordVisit)
			statistics.GET("/visits", d.statisticHandler.ListVisits)
		}

		protected.POST("/upload", d.uploadHandler.Upload)
	}
}
