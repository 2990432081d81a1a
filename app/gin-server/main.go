package main

import (
	"context"
	"log"
	"os"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"google.golang.org/api/gmail/v1"
	"google.golang.org/api/option"

	"github.com/privacyweave/backend/config"
	"github.com/privacyweave/backend/internal/api/handlers"
	"github.com/privacyweave/backend/internal/api/middleware"
	"github.com/privacyweave/backend/internal/api/routes"
	"github.com/privacyweave/backend/internal/cache"
	"github.com/privacyweave/backend/internal/chatbot"
	"github.com/privacyweave/backend/internal/logger"
	"github.com/privacyweave/backend/internal/notifier"
	"github.com/privacyweave/backend/internal/repositories"
	memrepo "github.com/privacyweave/backend/internal/repositories/memory"
	mongorepo "github.com/privacyweave/backend/internal/repositories/mongo"
	pgrepo "github.com/privacyweave/backend/internal/repositories/postgres"
	"github.com/privacyweave/backend/internal/services"
	"github.com/privacyweave/backend/internal/storage"
)

type repos struct {
	users        repositories.UserRepository
	inquiries    repositories.InquiryRepository
	listings     repositories.JobListingRepository
	applications repositories.JobApplicationRepository
	chat         repositories.ChatRepository
}

func main() {
	_ = godotenv.Load()

	l := logger.New()
	ctx := context.Background()

	rp, err := buildRepos(ctx)
	if err != nil {
		log.Fatalf("storage init error: %v", err)
	}

	// Cache is optional; without Redis every listing read hits the store.
	var c cache.Cache = cache.Nop{}
	if os.Getenv("REDIS_ADDR") != "" || os.Getenv("REDIS_URL") != "" {
		if err := config.InitRedis(); err != nil {
			log.Fatalf("Redis init error: %v", err)
		}
		c = cache.NewRedisCache(config.RedisClient)
		l.Info("redis cache enabled")
	}

	uploader, err := buildUploader(ctx)
	if err != nil {
		log.Fatalf("upload storage init error: %v", err)
	}

	notify := buildNotifier(ctx, l)

	jwtSecret := os.Getenv("JWT_SECRET")
	if jwtSecret == "" {
		log.Fatal("JWT_SECRET environment variable is not set")
	}

	responder := chatbot.New(rp.listings)

	authSvc := services.NewAuthService(rp.users, jwtSecret)
	inquirySvc := services.NewInquiryService(rp.inquiries, notify, l)
	listingSvc := services.NewListingService(rp.listings, c, l)
	applicationSvc := services.NewApplicationService(rp.applications, uploader, notify, l)
	chatSvc := services.NewChatService(rp.chat, rp.applications, responder, notify, l)

	r := gin.New()
	r.Use(gin.Recovery(), middleware.RequestLogger(l))

	routes.RegisterRoutes(r, routes.Deps{
		JWTSecret:   jwtSecret,
		Auth:        handlers.NewAuthHandler(authSvc),
		Inquiry:     handlers.NewInquiryHandler(inquirySvc),
		Listing:     handlers.NewListingHandler(listingSvc),
		Application: handlers.NewApplicationHandler(applicationSvc),
		Chat:        handlers.NewChatHandler(chatSvc),
	})

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	if err := r.Run(":" + port); err != nil {
		log.Fatalf("server error: %v", err)
	}
}

// buildRepos selects the record store. The in-memory store is the default;
// STORE_DRIVER=postgres persists everything in Postgres, and
// CHAT_STORE_DRIVER=mongo moves just the chat transcripts to MongoDB.
func buildRepos(ctx context.Context) (*repos, error) {
	var rp repos

	switch strings.ToLower(os.Getenv("STORE_DRIVER")) {
	case "", "memory":
		store := memrepo.NewStore()
		if err := store.SeedJobListings(ctx); err != nil {
			return nil, err
		}
		rp = repos{
			users:        store.Users(),
			inquiries:    store.Inquiries(),
			listings:     store.JobListings(),
			applications: store.JobApplications(),
			chat:         store.Chat(),
		}
	case "postgres":
		if err := config.InitPostgres(); err != nil {
			return nil, err
		}
		if err := pgrepo.AutoMigrate(config.PostgresDB); err != nil {
			return nil, err
		}
		rp = repos{
			users:        pgrepo.NewUserRepo(config.PostgresDB),
			inquiries:    pgrepo.NewInquiryRepo(config.PostgresDB),
			listings:     pgrepo.NewJobListingRepo(config.PostgresDB),
			applications: pgrepo.NewJobApplicationRepo(config.PostgresDB),
			chat:         pgrepo.NewChatRepo(config.PostgresDB),
		}
	default:
		log.Fatalf("unknown STORE_DRIVER %q", os.Getenv("STORE_DRIVER"))
	}

	if strings.ToLower(os.Getenv("CHAT_STORE_DRIVER")) == "mongo" {
		if err := config.InitMongo(); err != nil {
			return nil, err
		}
		if err := config.EnsureMongoIndexes(); err != nil {
			return nil, err
		}
		rp.chat = mongorepo.NewChatRepo(config.MongoDB)
	}
	return &rp, nil
}

func buildUploader(ctx context.Context) (storage.Uploader, error) {
	if bucket := os.Getenv("GCS_BUCKET"); bucket != "" {
		return storage.NewGCS(ctx, bucket)
	}
	dir := os.Getenv("UPLOAD_DIR")
	if dir == "" {
		dir = "uploads"
	}
	return storage.NewLocal(dir)
}

// buildNotifier wires Gmail delivery when credentials and recipients are
// configured, and a no-op otherwise.
func buildNotifier(ctx context.Context, l *logrus.Logger) notifier.Notifier {
	creds := os.Getenv("GMAIL_CREDENTIALS_FILE")
	from := os.Getenv("NOTIFY_FROM")
	recipients := splitList(os.Getenv("NOTIFY_RECIPIENTS"))

	if creds == "" || from == "" || len(recipients) == 0 {
		l.Info("email notifications disabled")
		return notifier.Nop{}
	}

	svc, err := gmail.NewService(ctx,
		option.WithCredentialsFile(creds),
		option.WithScopes(gmail.GmailSendScope),
	)
	if err != nil {
		l.WithError(err).Warn("gmail init failed, notifications disabled")
		return notifier.Nop{}
	}

	l.WithField("recipients", recipients).Info("email notifications enabled")
	return notifier.NewGmail(svc, from, recipients)
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
