package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	authDelivery "lifehub-backend/internal/auth/delivery"
)

func SetupRoutes(r *gin.Engine, h *Handler) {
	authHandler := authDelivery.NewAuthHandler(h.authUsecase)
	authRequired := authDelivery.AuthMiddleware(h.authUsecase)

	api := r.Group("/api")
	{
		// Health check (no auth required)
		api.GET("/health", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{"status": "ok"})
		})

		// Auth routes
		auth := api.Group("/auth")
		{
			auth.POST("/login", authHandler.Login)
			auth.POST("/register", authHandler.Register)
			auth.POST("/google", authHandler.GoogleSignIn)
			auth.POST("/refresh", authHandler.RefreshToken)
			auth.POST("/logout", authHandler.Logout)
			auth.GET("/me", authRequired, authHandler.Me)
		}

		// FCM routes (protected)
		fcm := api.Group("/fcm")
		fcm.Use(authRequired)
		{
			fcm.POST("/register", authHandler.RegisterFCMToken)
			fcm.DELETE("/:token", authHandler.UnregisterFCMToken)
		}

		// Connected Google accounts (protected)
		accounts := api.Group("/accounts")
		accounts.Use(authRequired)
		{
			accounts.GET("", h.accountHandler.GetAccounts)
			accounts.GET("/google/connect", h.accountHandler.ConnectGoogle)
			accounts.POST("/google/callback", h.accountHandler.GoogleCallback)
			accounts.DELETE("/:id", h.accountHandler.DisconnectAccount)
		}

		// Mail routes (protected)
		mail := api.Group("/mail")
		mail.Use(authRequired)
		{
			mail.GET("/inbox", h.mailHandler.GetInbox)
			mail.GET("/mirrored", h.mailHandler.GetMirrored)
			mail.GET("/stats", h.mailHandler.GetStats)
			mail.POST("/send", h.mailHandler.SendEmail)
			mail.PATCH("/:id/read", h.mailHandler.MarkAsRead)
			mail.PATCH("/:id/unread", h.mailHandler.MarkAsUnread)
			mail.POST("/:id/archive", h.mailHandler.ArchiveEmail)
			mail.POST("/:id/trash", h.mailHandler.TrashEmail)
		}

		// Calendar routes (protected)
		calendar := api.Group("/calendar")
		calendar.Use(authRequired)
		{
			calendar.GET("/upcoming", h.calendarHandler.GetUpcoming)
			calendar.GET("/mirrored", h.calendarHandler.GetMirrored)
			calendar.GET("/stats", h.calendarHandler.GetStats)
			calendar.POST("/events", h.calendarHandler.CreateEvent)
			calendar.PUT("/events/:id", h.calendarHandler.UpdateEvent)
			calendar.DELETE("/events/:id", h.calendarHandler.DeleteEvent)
		}

		// Sync routes: user-scoped runs are protected, the automated batch
		// endpoint carries its own bearer token
		api.POST("/sync", authRequired, h.syncHandler.SyncNow)
		api.POST("/sync/accounts/:id", authRequired, h.syncHandler.SyncAccount)
		api.POST("/sync/auto", h.syncHandler.SyncAll)

		// Task routes (protected)
		tasks := api.Group("/tasks")
		tasks.Use(authRequired)
		{
			tasks.GET("", h.taskHandler.GetTasks)
			tasks.POST("", h.taskHandler.CreateTask)
			tasks.GET("/:id", h.taskHandler.GetTaskByID)
			tasks.PUT("/:id", h.taskHandler.UpdateTask)
			tasks.PATCH("/:id/status", h.taskHandler.UpdateTaskStatus)
			tasks.DELETE("/:id", h.taskHandler.DeleteTask)
		}

		// Habit routes (protected)
		habits := api.Group("/habits")
		habits.Use(authRequired)
		{
			habits.GET("", h.habitHandler.GetHabits)
			habits.POST("", h.habitHandler.CreateHabit)
			habits.PUT("/:id", h.habitHandler.UpdateHabit)
			habits.DELETE("/:id", h.habitHandler.DeleteHabit)
			habits.GET("/:id/entries", h.habitHandler.GetEntries)
			habits.POST("/:id/entries", h.habitHandler.LogEntry)
			habits.DELETE("/:id/entries/:date", h.habitHandler.DeleteEntry)
		}

		// Note routes (protected)
		notes := api.Group("/notes")
		notes.Use(authRequired)
		{
			notes.GET("", h.noteHandler.GetNotes)
			notes.POST("", h.noteHandler.CreateNote)
			notes.GET("/:id", h.noteHandler.GetNoteByID)
			notes.PUT("/:id", h.noteHandler.UpdateNote)
			notes.DELETE("/:id", h.noteHandler.DeleteNote)
		}

		// Goal routes (protected)
		goals := api.Group("/goals")
		goals.Use(authRequired)
		{
			goals.GET("", h.goalHandler.GetGoals)
			goals.POST("", h.goalHandler.CreateGoal)
			goals.PUT("/:id", h.goalHandler.UpdateGoal)
			goals.DELETE("/:id", h.goalHandler.DeleteGoal)
		}

		// Daily check-in routes (protected)
		checkins := api.Group("/checkins")
		checkins.Use(authRequired)
		{
			checkins.GET("", h.checkinHandler.GetHistory)
			checkins.GET("/today", h.checkinHandler.GetToday)
			checkins.PUT("", h.checkinHandler.UpsertCheckin)
			checkins.DELETE("/:date", h.checkinHandler.DeleteCheckin)
		}

		// Dashboard (protected)
		api.GET("/dashboard", authRequired, h.dashboardHandler.GetDashboard)

		// Voice assistant (protected, only when a classifier is configured)
		if h.assistantHandler != nil {
			api.POST("/assistant/command", authRequired, h.assistantHandler.HandleCommand)
		}
	}
}
