package main

import (
	"context"
	"log"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.uber.org/fx"
	"gorm.io/gorm"

	"github.com/pawcz12345-dotcom/ironpact/cmd/fx/account_fx"
	"github.com/pawcz12345-dotcom/ironpact/cmd/fx/coach_fx"
	"github.com/pawcz12345-dotcom/ironpact/cmd/fx/db_fx"
	"github.com/pawcz12345-dotcom/ironpact/cmd/fx/friend_fx"
	"github.com/pawcz12345-dotcom/ironpact/cmd/fx/memcache_fx"
	"github.com/pawcz12345-dotcom/ironpact/cmd/fx/program_fx"
	"github.com/pawcz12345-dotcom/ironpact/cmd/fx/session_fx"
	"github.com/pawcz12345-dotcom/ironpact/cmd/fx/stats_fx"
	"github.com/pawcz12345-dotcom/ironpact/cmd/fx/token_fx"
	"github.com/pawcz12345-dotcom/ironpact/internal/api/controllers"
	"github.com/pawcz12345-dotcom/ironpact/internal/infra"
	"github.com/pawcz12345-dotcom/ironpact/internal/models/db_models"
	"github.com/pawcz12345-dotcom/ironpact/pkg/middleware"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	app := fx.New(
		db_fx.Module,
		memcache_fx.Module,
		account_fx.Module,
		session_fx.Module,
		token_fx.Module,
		coach_fx.Module,
		stats_fx.Module,
		friend_fx.Module,
		program_fx.Module,

		fx.Invoke(Migrate),
		fx.Provide(ProvideRouter),
		fx.Invoke(StartServer),
	)

	app.Run()
}

func Migrate(db *gorm.DB) {
	err := db.AutoMigrate(
		&db_models.Account{},
		&db_models.Session{},
		&db_models.SessionExercise{},
		&db_models.SetEntry{},
		&db_models.TokenTransaction{},
		&db_models.RecommendationCache{},
		&db_models.PersonalRecord{},
		&db_models.FriendConnection{},
		&db_models.Program{},
		&db_models.ProgramVersion{},
		&db_models.ExerciseEmbedding{},
	)
	if err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}
}

func StartServer(lc fx.Lifecycle, engine *gin.Engine, db *gorm.DB) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go func() {
				log.Println("Starting HTTP server at ${PORT}")
				if err := engine.Run(":" + os.Getenv("PORT")); err != nil {
					log.Fatalf("Failed to start server: %v", err)
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			log.Println("Stopping HTTP server")
			infra.ClosePostgresql(db)
			return nil
		},
	})
}

func ProvideRouter(
	accountController *controllers.AccountController,
	sessionController *controllers.SessionController,
	tokenController *controllers.TokenController,
	coachController *controllers.CoachController,
	statsController *controllers.StatsController,
	friendController *controllers.FriendController,
	programController *controllers.ProgramController,
) *gin.Engine {

	r := gin.Default()
	r.Use(gin.Logger())
	r.Use(gin.Recovery())
	r.Use(middleware.CORSMiddleware())
	r.Use(middleware.TraceIDMiddleware())

	RegisterRoutes(r,
		accountController, sessionController, tokenController,
		coachController, statsController, friendController, programController)

	return r
}

func RegisterRoutes(r *gin.Engine,
	accountController *controllers.AccountController,
	sessionController *controllers.SessionController,
	tokenController *controllers.TokenController,
	coachController *controllers.CoachController,
	statsController *controllers.StatsController,
	friendController *controllers.FriendController,
	programController *controllers.ProgramController,
) {

	accounts := r.Group("/accounts")
	accounts.POST("/register", accountController.Register)
	accounts.POST("/login", accountController.Login)

	auth := r.Group("/", middleware.JWTAuthMiddleware())

	me := auth.Group("/accounts")
	me.GET("/me", accountController.Me)
	me.PATCH("/settings", accountController.UpdateSettings)

	sessions := auth.Group("/sessions")
	sessions.POST("", sessionController.Create)
	sessions.GET("", sessionController.List)
	sessions.GET("/:id", sessionController.Get)
	sessions.PATCH("/:id", sessionController.Update)
	sessions.DELETE("/:id", sessionController.Delete)

	auth.GET("/prs", sessionController.PersonalRecords)

	tokens := auth.Group("/tokens")
	tokens.GET("/balance", tokenController.Balance)
	tokens.GET("/transactions", tokenController.Transactions)

	coach := auth.Group("/coach")
	coach.POST("/recommendation", coachController.Recommend)
	coach.GET("/similar", coachController.SimilarExercises)

	stats := auth.Group("/stats")
	stats.GET("/dashboard", statsController.Dashboard)
	stats.GET("/exercise-history", statsController.ExerciseHistory)
	stats.GET("/session-volumes", statsController.SessionVolumes)
	stats.GET("/volume-by-type", statsController.VolumeByType)
	stats.GET("/bodyweight", statsController.BodyweightHistory)
	stats.GET("/sessions-per-week", statsController.SessionsPerWeek)

	friends := auth.Group("/friends")
	friends.GET("", friendController.List)
	friends.POST("/requests", friendController.SendRequest)
	friends.GET("/requests", friendController.ListPending)
	friends.POST("/requests/:id/accept", friendController.AcceptRequest)
	friends.GET("/compare/:id", friendController.Compare)

	program := auth.Group("/program")
	program.GET("", programController.Get)
	program.PUT("", programController.Save)
	program.GET("/versions", programController.ListVersions)
}
