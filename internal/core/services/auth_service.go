package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/orgvote/orgvote/internal/core/domain"
	"github.com/orgvote/orgvote/internal/core/ports"
)

const tokenTTL = 24 * time.Hour

type AuthService struct {
	userRepo  ports.UserRepository
	orgRepo   ports.OrganizationRepository
	jwtSecret []byte
}

func NewAuthService(userRepo ports.UserRepository, orgRepo ports.OrganizationRepository, jwtSecret []byte) *AuthService {
	return &AuthService{
		userRepo:  userRepo,
		orgRepo:   orgRepo,
		jwtSecret: jwtSecret,
	}
}

func (s *AuthService) Login(ctx context.Context, email, password string, role domain.Role, organization string) (string, *domain.User, error) {
	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		return "", nil, fmt.Errorf("failed to get user: %w", err)
	}
	if user == nil || user.Role != role {
		return "", nil, domain.ErrInvalidCredentials
	}
	if role == domain.RoleVoter {
		if user.Organization != organization {
			return "", nil, domain.ErrInvalidCredentials
		}
		if !user.IsVerified {
			return "", nil, domain.ErrVoterNotVerified
		}
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return "", nil, domain.ErrInvalidCredentials
	}

	token, err := s.generateAccessToken(user)
	if err != nil {
		return "", nil, fmt.Errorf("failed to generate access token: %w", err)
	}

	return token, user, nil
}

func (s *AuthService) RegisterAdmin(ctx context.Context, input ports.RegisterAdminInput) (*domain.User, error) {
	if input.Name == "" || input.Age == 0 || input.OrganizationName == "" ||
		input.Phone == "" || input.NationalID == "" || input.Email == "" || input.Password == "" {
		return nil, errors.New("all required fields must be provided")
	}
	if !input.OrgType.Valid() {
		return nil, domain.ErrInvalidOrgType
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	now := time.Now()
	user := &domain.User{
		ID:           uuid.New(),
		Email:        input.Email,
		PasswordHash: string(hash),
		Name:         input.Name,
		Role:         domain.RoleAdmin,
		Organization: input.OrganizationName,
		IsVerified:   true,
		CreatedAt:    now,
	}
	details := &domain.AdminDetails{
		UserID:     user.ID,
		Age:        input.Age,
		Phone:      input.Phone,
		NationalID: input.NationalID,
		CreatedAt:  now,
	}
	org := &domain.Organization{
		ID:        uuid.New(),
		Name:      input.OrganizationName,
		AdminID:   user.ID,
		OrgType:   input.OrgType,
		City:      input.City,
		State:     input.State,
		Country:   input.Country,
		CreatedAt: now,
	}

	if err := s.orgRepo.CreateWithAdmin(ctx, user, details, org); err != nil {
		return nil, err
	}

	return user, nil
}

func (s *AuthService) RegisterVoter(ctx context.Context, input ports.RegisterVoterInput) (*domain.User, error) {
	if input.Email == "" || input.Password == "" || input.Name == "" || input.Organization == "" {
		return nil, errors.New("all fields are required")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &domain.User{
		ID:           uuid.New(),
		Email:        input.Email,
		PasswordHash: string(hash),
		Name:         input.Name,
		Role:         domain.RoleVoter,
		Organization: input.Organization,
		IsVerified:   false,
		CreatedAt:    time.Now(),
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}

	return user, nil
}

func (s *AuthService) VerifyToken(tokenString string) (*ports.Identity, error) {
	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return s.jwtSecret, nil
	})
	if err != nil || !token.Valid {
		return nil, errors.New("invalid token")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, errors.New("invalid token claims")
	}

	sub, _ := claims["sub"].(string)
	userID, err := uuid.Parse(sub)
	if err != nil {
		return nil, errors.New("invalid subject claim")
	}

	email, _ := claims["email"].(string)
	role, _ := claims["role"].(string)
	org, _ := claims["org"].(string)

	return &ports.Identity{
		UserID:       userID,
		Email:        email,
		Role:         domain.Role(role),
		Organization: org,
	}, nil
}

func (s *AuthService) Me(ctx context.Context, userID uuid.UUID) (*domain.User, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}
	return user, nil
}

func (s *AuthService) generateAccessToken(user *domain.User) (string, error) {
	claims := jwt.MapClaims{
		"sub":   user.ID.String(),
		"email": user.Email,
		"role":  string(user.Role),
		"org":   user.Organization,
		"exp":   time.Now().Add(tokenTTL).Unix(),
		"iat":   time.Now().Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.jwtSecret)
}
