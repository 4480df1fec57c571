package main

import (
	"log"
	"net/http"
	"os"
	"time"

	"assignment-service/internal/db"
	"assignment-service/internal/event"
	"assignment-service/internal/handlers"
	"assignment-service/internal/repository"
	"assignment-service/internal/service"
	"assignment-service/internal/storage"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func main() {
	// Load env
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system env")
	}
	mongoURI := os.Getenv("MONGO_URI")
	if mongoURI == "" {
		log.Fatal("MONGO_URI is required")
	}
	db.InitMongo(mongoURI)

	// RabbitMQ event publisher
	rabbitURL := os.Getenv("RABBITMQ_URI")
	eventExchange := os.Getenv("RABBITMQ_EXCHANGE")
	var publisher *event.Publisher
	if rabbitURL != "" && eventExchange != "" {
		var err error
		publisher, err = event.NewPublisher(rabbitURL, eventExchange)
		if err != nil {
			log.Fatalf("Failed to connect to RabbitMQ: %v", err)
		}
		defer publisher.Close()
	} else {
		log.Println("RabbitMQ not configured, assignment events will not be published")
	}

	// Object store for assignment images
	var uploader service.Uploader
	ossUploader, err := storage.NewOSSUploaderFromEnv()
	if err != nil {
		log.Printf("Object store not configured, image uploads disabled: %v", err)
	} else {
		uploader = ossUploader
	}

	r := gin.Default()

	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"http://localhost:3000"},
		AllowMethods:     []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Content-Type", "Content-Length", "Accept-Encoding", "X-CSRF-Token", "Authorization", "accept", "origin", "Cache-Control", "X-Requested-With", "X-User-ID"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	database := db.Client.Database("assignment_service")
	repo := repository.NewAssignmentRepository(database)

	assignmentService := service.NewAssignmentService(repo, uploader)
	submissionService := service.NewSubmissionService(repo)
	queryService := service.NewQueryService(repo)

	assignmentHandler := handlers.NewAssignmentHandler(assignmentService, queryService)
	submissionHandler := handlers.NewSubmissionHandler(submissionService, queryService)

	assignments := r.Group("/assignments")
	{
		// Public reads
		assignments.GET("/", assignmentHandler.GetAssignments)
		assignments.GET("/related/:category/:assignmentId", assignmentHandler.GetRelatedAssignments)
		assignments.GET("/:id", assignmentHandler.GetAssignment)

		// Submissions are open to any user id; one submission per user.
		assignments.POST("/:assignmentId", func(c *gin.Context) {
			submissionHandler.SubmitScore(c)
			if publisher != nil && c.Writer.Status() == http.StatusCreated {
				publisher.Publish("assignment.score.submitted", gin.H{
					"assignment_id": c.Param("assignmentId"),
				})
			}
		})
		assignments.POST("/:assignmentId/code", func(c *gin.Context) {
			submissionHandler.SubmitTechnicalScore(c)
			if publisher != nil && c.Writer.Status() == http.StatusCreated {
				publisher.Publish("assignment.code.submitted", gin.H{
					"assignment_id": c.Param("assignmentId"),
				})
			}
		})
		assignments.GET("/:id/score", submissionHandler.GetUserScore)
	}

	// Owner operations require a resolved caller identity.
	owner := r.Group("/assignments", requireUser())
	{
		owner.POST("/", func(c *gin.Context) {
			assignmentHandler.CreateAssignment(c)
			if publisher != nil && c.Writer.Status() == http.StatusCreated {
				publisher.Publish("assignment.created", gin.H{
					"user_id": c.GetString("userID"),
				})
			}
		})
		owner.PATCH("/:id", func(c *gin.Context) {
			assignmentHandler.UpdateAssignment(c)
			if publisher != nil && c.Writer.Status() == http.StatusOK {
				publisher.Publish("assignment.updated", gin.H{
					"assignment_id": c.Param("id"),
					"user_id":       c.GetString("userID"),
				})
			}
		})
		owner.DELETE("/:id", func(c *gin.Context) {
			assignmentHandler.DeleteAssignment(c)
			if publisher != nil && c.Writer.Status() == http.StatusOK {
				publisher.Publish("assignment.deleted", gin.H{
					"assignment_id": c.Param("id"),
					"user_id":       c.GetString("userID"),
				})
			}
		})
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = "5000"
	}
	r.Run(":" + port)
}

// requireUser resolves the caller identity set by the upstream auth layer and
// makes it available to the owner-checked handlers.
func requireUser() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetHeader("X-User-ID")
		if userID == "" {
			c.JSON(http.StatusUnauthorized, gin.H{
				"error": "Authentication required",
				"code":  "MISSING_USER_ID",
			})
			c.Abort()
			return
		}
		c.Set("userID", userID)
		c.Next()
	}
}
