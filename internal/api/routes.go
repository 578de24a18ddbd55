package api

import (
	"net/http"

	"alcyxob/pt-crm/internal/domain"
	"alcyxob/pt-crm/internal/service"

	"github.com/gin-gonic/gin"
)

func SetupRoutes(
	router *gin.Engine,
	jwtSecret string,
	authService service.AuthService,
	trainerService service.TrainerService,
	sessionService service.SessionService,
	measurementService service.MeasurementService,
	notificationService service.NotificationService,
) {
	authHandler := NewAuthHandler(authService)
	trainerHandler := NewTrainerHandler(trainerService)
	sessionHandler := NewSessionHandler(sessionService)
	measurementHandler := NewMeasurementHandler(measurementService)
	notificationHandler := NewNotificationHandler(notificationService)

	authMiddleware := AuthMiddleware(jwtSecret)

	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})

	apiV1 := router.Group("/api/v1")
	{
		authGroup := apiV1.Group("/auth")
		{
			authGroup.POST("/register", authHandler.Register)
			authGroup.POST("/login", authHandler.Login)
		}
	}

	protected := apiV1.Group("")
	protected.Use(authMiddleware)
	{
		protected.GET("/me", func(c *gin.Context) {
			actor := actorFromContext(c)
			if actor == nil {
				abortWithError(c, http.StatusInternalServerError, "Failed to get user identity from token")
				return
			}
			c.JSON(http.StatusOK, gin.H{"userId": actor.ID.Hex(), "role": actor.Role})
		})

		// --- Trainer Roster Routes ---
		// Role-gated at the router; the service layer enforces the same rule
		// through the access policy.
		trainerGroup := protected.Group("/trainer")
		trainerGroup.Use(RoleMiddleware(domain.RoleTrainer))
		{
			// GET /api/v1/trainer/clients
			trainerGroup.GET("/clients", trainerHandler.ListClients)
			// POST /api/v1/trainer/clients
			trainerGroup.POST("/clients", trainerHandler.CreateClient)
		}

		// --- Client Routes (trainer or the owning client) ---
		clientGroup := protected.Group("/clients/:clientId")
		{
			clientGroup.GET("", trainerHandler.GetClientDetail)
			clientGroup.PUT("/profile", RoleMiddleware(domain.RoleTrainer), trainerHandler.UpdateClientProfile)

			// Workout programs are assigned per client.
			clientGroup.POST("/workouts", RoleMiddleware(domain.RoleTrainer), trainerHandler.CreateWorkout)
			clientGroup.GET("/workouts/active", sessionHandler.GetActiveWorkout)

			// Session history. Creation is client-only, enforced by the policy.
			clientGroup.POST("/sessions", sessionHandler.CreateSession)
			clientGroup.GET("/sessions", sessionHandler.ListSessions)

			clientGroup.POST("/measurements", measurementHandler.CreateMeasurement)
			clientGroup.GET("/measurements", measurementHandler.ListMeasurements)
		}

		// --- Workout Routes ---
		workoutGroup := protected.Group("/workouts")
		workoutGroup.Use(RoleMiddleware(domain.RoleTrainer))
		{
			workoutGroup.PUT("/:workoutId", trainerHandler.UpdateWorkout)
			workoutGroup.DELETE("/:workoutId", trainerHandler.DeleteWorkout)
		}

		// --- Session Routes ---
		sessionGroup := protected.Group("/sessions")
		{
			sessionGroup.GET("/:sessionId", sessionHandler.GetSession)
			sessionGroup.PUT("/:sessionId/feedback", sessionHandler.UpdateFeedback)
		}

		// --- Measurement Routes ---
		measurementGroup := protected.Group("/measurements")
		{
			measurementGroup.GET("/:measurementId", measurementHandler.GetMeasurement)
			measurementGroup.PUT("/:measurementId", measurementHandler.UpdateMeasurement)
			measurementGroup.DELETE("/:measurementId", measurementHandler.DeleteMeasurement)

			measurementGroup.POST("/:measurementId/photo/upload-url", measurementHandler.RequestPhotoUploadURL)
			measurementGroup.POST("/:measurementId/photo/confirm", measurementHandler.ConfirmPhotoUpload)
			measurementGroup.GET("/:measurementId/photo", measurementHandler.GetPhotoDownloadURL)
		}

		// --- Notification Routes ---
		notificationGroup := protected.Group("/notifications")
		{
			notificationGroup.GET("", notificationHandler.ListNotifications)
			notificationGroup.POST("/:notificationId/read", notificationHandler.MarkRead)
			notificationGroup.POST("/read-all", notificationHandler.MarkAllRead)
		}
	}
}
