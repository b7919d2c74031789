package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"github.com/unish6123/StuNotes/config"
	"github.com/unish6123/StuNotes/controllers"
	"github.com/unish6123/StuNotes/gemini"
	"github.com/unish6123/StuNotes/mail"
	"github.com/unish6123/StuNotes/middleware"
	"github.com/unish6123/StuNotes/store"
)

func main() {
	_ = godotenv.Load()

	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))

	cfg, err := config.Load()
	if err != nil {
		logger.Error("invalid configuration", "err", err)
		os.Exit(1)
	}

	client, db, err := config.ConnectDB(context.Background(), cfg)
	if err != nil {
		logger.Error("mongodb connection failed", "err", err)
		os.Exit(1)
	}
	logger.Info("connected to mongodb", "db", cfg.MongoDB)

	st, err := store.NewMongo(context.Background(), db)
	if err != nil {
		logger.Error("store initialization failed", "err", err)
		os.Exit(1)
	}

	sender, err := mail.NewSMTPSender(mail.SMTPConfig{
		Host:     cfg.SMTPHost,
		Port:     cfg.SMTPPort,
		Username: cfg.SMTPUser,
		Password: cfg.SMTPPass,
		From:     cfg.SMTPFrom,
	})
	if err != nil {
		logger.Error("smtp configuration invalid", "err", err)
		os.Exit(1)
	}

	auth := &controllers.AuthController{
		Store:        st,
		Mail:         sender,
		Log:          logger,
		JWTSecret:    cfg.JWTSecret,
		SessionTTL:   cfg.SessionTTL,
		CookieSecure: cfg.CookieSecure,
	}
	notes := &controllers.NotesController{
		Store: st,
		AI:    gemini.NewClient(cfg.GeminiAPIKey, cfg.GeminiModel),
		Log:   logger,
	}

	router := gin.Default()
	router.Use(middleware.CORS(cfg.AllowedOrigins))
	registerRoutes(router, cfg.JWTSecret, auth, notes)

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	go func() {
		logger.Info("server started", "port", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("server error", "err", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("forced shutdown", "err", err)
	}
	if err := client.Disconnect(ctx); err != nil {
		logger.Error("mongodb disconnect failed", "err", err)
	}
	logger.Info("server exited")
}

func registerRoutes(router *gin.Engine, jwtSecret string, auth *controllers.AuthController, notes *controllers.NotesController) {
	api := router.Group("/api")

	authGroup := api.Group("/auth")
	{
		authGroup.POST("/signUp", auth.SignUp)
		authGroup.POST("/verifySignUp", auth.VerifySignUp)
		authGroup.POST("/signIn", auth.SignIn)
		authGroup.GET("/signOut", auth.SignOut)
		authGroup.POST("/forgotPassword", auth.ForgotPassword)
		authGroup.POST("/resetPassword", auth.ResetPassword)
		authGroup.GET("/verify", middleware.Auth(jwtSecret), auth.Verify)
	}

	notesGroup := api.Group("/tNotes", middleware.Auth(jwtSecret))
	{
		notesGroup.POST("/saveNotes", notes.SaveNote)
		notesGroup.POST("/saveTranscribeNotes", notes.SaveTranscribedNote)
		notesGroup.GET("/getNotes", notes.GetNotes)
		notesGroup.GET("/getTranscribedNotes", notes.GetTranscribedNotes)
		notesGroup.PUT("/updateNote", notes.UpdateNote)
		notesGroup.DELETE("/deleteNote/:title", notes.DeleteNote)
		notesGroup.POST("/getQuiz", notes.GetQuiz)
		notesGroup.POST("/score", notes.SaveScore)
		notesGroup.POST("/quizAnalysis", notes.QuizAnalysis)
	}
}
