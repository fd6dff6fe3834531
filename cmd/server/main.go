package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"
	stdhttp "net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"golang.org/x/crypto/bcrypt"

	handler "github.com/orgvote/orgvote/internal/adapters/handler/http"
	"github.com/orgvote/orgvote/internal/adapters/repository/postgres"
	"github.com/orgvote/orgvote/internal/adapters/storage/local"
	"github.com/orgvote/orgvote/internal/config"
	"github.com/orgvote/orgvote/internal/core/domain"
	"github.com/orgvote/orgvote/internal/core/ports"
	"github.com/orgvote/orgvote/internal/core/services"

	"github.com/google/uuid"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	}

	db, err := sql.Open("postgres", config.DatabaseURL())
	if err != nil {
		log.Fatal(err)
	}
	defer db.Close()

	if err := db.Ping(); err != nil {
		log.Fatal(err)
	}

	userRepo := postgres.NewUserRepository(db)
	profileRepo := postgres.NewVoterProfileRepository(db)
	candidateRepo := postgres.NewCandidateRepository(db)
	ballotRepo := postgres.NewBallotRepository(db)
	tallyRepo := postgres.NewTallyRepository(db)
	orgRepo := postgres.NewOrganizationRepository(db)

	blobs, err := local.NewStore("uploads", "/uploads")
	if err != nil {
		log.Fatal(err)
	}

	secret := config.JWTSecret()
	if secret == "" {
		fmt.Println("Warning: JWT_SECRET not set")
	}

	authService := services.NewAuthService(userRepo, orgRepo, []byte(secret))
	voteService := services.NewVoteService(userRepo, profileRepo, ballotRepo, candidateRepo)
	voterService := services.NewVoterService(userRepo, profileRepo)
	candidateService := services.NewCandidateService(candidateRepo)
	tallyService := services.NewTallyService(tallyRepo)

	if err := ensureSuperAdmin(context.Background(), userRepo); err != nil {
		log.Fatal(err)
	}

	router := handler.NewHandler(handler.Handlers{
		Auth:       handler.NewAuthHandler(authService),
		Voter:      handler.NewVoterHandler(voteService, voterService, candidateService),
		Admin:      handler.NewAdminHandler(tallyService, voterService, candidateService, ballotRepo, blobs),
		SuperAdmin: handler.NewSuperAdminHandler(tallyService, voterService, candidateService, ballotRepo, orgRepo),
		Candidate:  handler.NewCandidateHandler(candidateService),
	}, authService, blobs.Dir())

	addr := "0.0.0.0:" + config.Port()
	server := &stdhttp.Server{Addr: addr, Handler: router}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		log.Printf("listening on %s", addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, stdhttp.ErrServerClosed) {
			log.Fatal(err)
		}
	}()

	<-ctx.Done()
	fmt.Println("Gracefully shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Fatal(err)
	}
}

// ensureSuperAdmin creates the oversight account on first boot. A
// duplicate email means it already exists, which is fine.
func ensureSuperAdmin(ctx context.Context, repo ports.UserRepository) error {
	email := os.Getenv("SUPERADMIN_EMAIL")
	password := os.Getenv("SUPERADMIN_PASSWORD")
	if email == "" || password == "" {
		return nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash super admin password: %w", err)
	}

	err = repo.Create(ctx, &domain.User{
		ID:           uuid.New(),
		Email:        email,
		PasswordHash: string(hash),
		Name:         "Super Admin",
		Role:         domain.RoleSuperAdmin,
		IsVerified:   true,
	})
	if err != nil && !errors.Is(err, domain.ErrEmailTaken) {
		return fmt.Errorf("failed to seed super admin: %w", err)
	}
	return nil
}
