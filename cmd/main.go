package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"time"

	s3 "quizify/aws"
	"quizify/database"
	"quizify/internal/handlers"
	"quizify/internal/services"
	"quizify/internal/store/mongodb"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/cors"
	"github.com/joho/godotenv"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, err := database.Connect(ctx)
	if err != nil {
		log.Fatalf("Failed to connect to MongoDB: %v", err)
	}
	defer func() {
		if err := client.Disconnect(context.Background()); err != nil {
			log.Printf("Failed to disconnect: %v", err)
		}
	}()

	// Stores
	quizStore := mongodb.NewQuizStore(client)
	questionStore := mongodb.NewQuestionStore(client)
	attemptStore := mongodb.NewAttemptStore(client)
	userStore := mongodb.NewUserStore(client)
	sessionStore := mongodb.NewSessionStore(client)
	if err := sessionStore.EnsureIndexes(ctx); err != nil {
		log.Fatalf("Failed to create session indexes: %v", err)
	}

	// Services
	quizService := services.NewQuizService(quizStore, questionStore)
	questionService := services.NewQuestionService(questionStore, quizStore)
	attemptService := services.NewAttemptService(attemptStore, quizStore, questionStore)
	authService := services.NewAuthService(userStore, sessionStore)

	var avatarStorage handlers.AvatarStorage
	if uploader, err := s3.NewUploader(); err != nil {
		log.Printf("Avatar storage disabled: %v", err)
	} else {
		avatarStorage = uploader
	}

	// Handlers
	auth := handlers.NewAuthMiddleware(userStore)
	authHandler := handlers.NewAuthHandler(authService)
	userHandler := handlers.NewUserHandler(userStore, avatarStorage)
	quizHandler := handlers.NewQuizHandler(quizService, attemptService)
	questionHandler := handlers.NewQuestionHandler(questionService)
	attemptHandler := handlers.NewAttemptHandler(attemptService)

	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	// CORS
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"http://localhost:4200"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	// Auth routes
	r.Route("/auth", func(r chi.Router) {
		r.Post("/signup", authHandler.SignUp)
		r.Post("/signin", authHandler.SignIn)
		r.Post("/signout", authHandler.SignOut)
		r.Post("/refresh", authHandler.Refresh)
	})

	// User routes
	r.Route("/users", func(r chi.Router) {
		r.With(auth.Authentication, auth.AdminOnly).Get("/", userHandler.GetUsers)
		r.With(auth.Authentication).Get("/me", userHandler.Me)
		r.With(auth.Authentication).Put("/me/avatar", userHandler.UpdateAvatar)
	})

	// Quiz routes
	r.Route("/quizzes", func(r chi.Router) {
		r.Get("/", quizHandler.GetQuizzes)
		r.With(auth.Authentication, auth.AdminOnly).Post("/", quizHandler.CreateQuiz)

		r.Route("/{quizId}", func(r chi.Router) {
			r.Get("/", quizHandler.GetQuizByID)
			r.With(auth.Authentication, auth.AdminOnly).Put("/", quizHandler.UpdateQuiz)
			r.With(auth.Authentication, auth.AdminOnly).Delete("/", quizHandler.DeleteQuiz)
			r.With(auth.Authentication, auth.AdminOnly).Post("/question", quizHandler.AddQuestion)
			r.With(auth.Authentication, auth.AdminOnly).Post("/questions", quizHandler.AddManyQuestions)
			r.Get("/populate", quizHandler.FilterByKeyword)
			r.Get("/take", quizHandler.TakeQuiz)
			r.With(auth.Authentication).Post("/submit", quizHandler.SubmitQuiz)
		})
	})

	// Question routes
	r.Route("/questions", func(r chi.Router) {
		r.Get("/", questionHandler.GetQuestions)
		r.Route("/{questionId}", func(r chi.Router) {
			r.Get("/", questionHandler.GetQuestionByID)
			r.With(auth.Authentication).Put("/", questionHandler.EditQuestion)
			r.With(auth.Authentication).Delete("/", questionHandler.DeleteQuestion)
		})
	})

	// Attempt routes
	r.Route("/attempts", func(r chi.Router) {
		r.With(auth.Authentication).Get("/me", attemptHandler.GetMyAttempts)
		r.With(auth.Authentication).Get("/{attemptId}", attemptHandler.GetAttemptByID)
	})

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	fmt.Printf("Server is running on http://localhost:%s\n", port)
	log.Fatal(http.ListenAndServe(":"+port, r))
}
