package integration

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	_ "github.com/lib/pq"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	"golang.org/x/crypto/bcrypt"

	handler "github.com/orgvote/orgvote/internal/adapters/handler/http"
	repo "github.com/orgvote/orgvote/internal/adapters/repository/postgres"
	"github.com/orgvote/orgvote/internal/adapters/storage/local"
	"github.com/orgvote/orgvote/internal/core/domain"
	"github.com/orgvote/orgvote/internal/core/services"
)

const testJWTSecret = "test-secret"

type TestApp struct {
	DB          *sql.DB
	Server      *httptest.Server
	Client      *http.Client
	DBContainer testcontainers.Container
}

func setupPostgresContainer(ctx context.Context) (testcontainers.Container, string, error) {
	dbName := "testdb"
	user := "user"
	password := "password"

	pgContainer, err := postgres.Run(ctx, "postgres:15-alpine",
		postgres.WithDatabase(dbName),
		postgres.WithUsername(user),
		postgres.WithPassword(password),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(5*time.Second),
		),
	)
	if err != nil {
		return nil, "", fmt.Errorf("failed to start postgres container: %w", err)
	}

	connStr, err := pgContainer.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		return nil, "", err
	}

	return pgContainer, connStr, nil
}

func applyMigrations(db *sql.DB) error {
	dirPath := "../../internal/adapters/repository/postgres/migrations"

	entries, err := os.ReadDir(dirPath)
	if err != nil {
		return fmt.Errorf("failed to read migrations directory: %w", err)
	}

	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}

		if !strings.HasSuffix(entry.Name(), "up.sql") {
			continue
		}

		fullPath := filepath.Join(dirPath, entry.Name())
		content, err := os.ReadFile(fullPath)
		if err != nil {
			return fmt.Errorf("failed to read migration file %s: %w", entry.Name(), err)
		}

		_, err = db.Exec(string(content))
		if err != nil {
			return fmt.Errorf("failed to execute migration %s: %w", entry.Name(), err)
		}
	}

	return nil
}

func setupTestApp(t *testing.T) *TestApp {
	t.Helper()

	ctx := context.Background()
	dbContainer, dbURL, err := setupPostgresContainer(ctx)
	require.NoError(t, err)

	db, err := sql.Open("postgres", dbURL)
	require.NoError(t, err)

	err = applyMigrations(db)
	require.NoError(t, err)

	userRepo := repo.NewUserRepository(db)
	profileRepo := repo.NewVoterProfileRepository(db)
	ballotRepo := repo.NewBallotRepository(db)
	candidateRepo := repo.NewCandidateRepository(db)
	tallyRepo := repo.NewTallyRepository(db)
	orgRepo := repo.NewOrganizationRepository(db)

	authSvc := services.NewAuthService(userRepo, orgRepo, []byte(testJWTSecret))
	voteSvc := services.NewVoteService(userRepo, profileRepo, ballotRepo, candidateRepo)
	voterSvc := services.NewVoterService(userRepo, profileRepo)
	candidateSvc := services.NewCandidateService(candidateRepo)
	tallySvc := services.NewTallyService(tallyRepo)

	blobStore, err := local.NewStore(filepath.Join(t.TempDir(), "uploads"), "/uploads")
	require.NoError(t, err)

	router := handler.NewHandler(handler.Handlers{
		Auth:       handler.NewAuthHandler(authSvc),
		Voter:      handler.NewVoterHandler(voteSvc, voterSvc, candidateSvc),
		Admin:      handler.NewAdminHandler(tallySvc, voterSvc, candidateSvc, ballotRepo, blobStore),
		SuperAdmin: handler.NewSuperAdminHandler(tallySvc, voterSvc, candidateSvc, ballotRepo, orgRepo),
		Candidate:  handler.NewCandidateHandler(candidateSvc),
	}, authSvc, blobStore.Dir())

	server := httptest.NewServer(router)

	return &TestApp{
		DB:          db,
		Server:      server,
		Client:      server.Client(),
		DBContainer: dbContainer,
	}
}

func (app *TestApp) Teardown(t *testing.T) {
	app.Server.Close()
	app.DB.Close()
	if err := app.DBContainer.Terminate(context.Background()); err != nil {
		t.Logf("failed to terminate container: %v", err)
	}
}

func createUser(t *testing.T, db *sql.DB, role domain.Role, organization string, verified bool) uuid.UUID {
	t.Helper()

	userID := uuid.New()
	email := fmt.Sprintf("user-%s@example.com", userID)
	hash, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.MinCost)
	require.NoError(t, err)

	_, err = db.Exec(
		`INSERT INTO users (id, email, password_hash, name, role, organization, is_verified)
		 VALUES ($1, $2, $3, $4, $5, NULLIF($6, ''), $7)`,
		userID, email, string(hash), fmt.Sprintf("User %s", userID), string(role), organization, verified,
	)
	require.NoError(t, err)
	return userID
}

func signToken(t *testing.T, userID uuid.UUID, role domain.Role, organization string) string {
	t.Helper()

	claims := jwt.MapClaims{
		"sub":   userID.String(),
		"email": fmt.Sprintf("user-%s@example.com", userID),
		"role":  string(role),
		"org":   organization,
		"exp":   time.Now().Add(15 * time.Minute).Unix(),
		"iat":   time.Now().Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(testJWTSecret))
	require.NoError(t, err)
	return signed
}

func createVoterAndToken(t *testing.T, db *sql.DB, organization string, verified bool) (uuid.UUID, string) {
	t.Helper()

	voterID := createUser(t, db, domain.RoleVoter, organization, verified)
	return voterID, signToken(t, voterID, domain.RoleVoter, organization)
}

func saveVoterProfile(t *testing.T, db *sql.DB, voterID uuid.UUID) {
	t.Helper()

	_, err := db.Exec(
		`INSERT INTO voter_profiles (voter_id, full_name, date_of_birth, phone, national_id)
		 VALUES ($1, 'Test Voter', '1990-01-01', '555-0100', $2)`,
		voterID, uuid.NewString(),
	)
	require.NoError(t, err)
}

func createCandidate(t *testing.T, db *sql.DB, organization, name string, verified bool) uuid.UUID {
	t.Helper()

	candidateID := uuid.New()
	_, err := db.Exec(
		`INSERT INTO candidates (id, name, organization, is_verified) VALUES ($1, $2, $3, $4)`,
		candidateID, name, organization, verified,
	)
	require.NoError(t, err)
	return candidateID
}
