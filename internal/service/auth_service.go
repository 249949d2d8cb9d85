package service

import (
	"context"
	"errors"
	"time"

	"github.com/Phyo-Arkar-Win/Meal-Budget-Planning-Webapp/internal/domain"
	"github.com/Phyo-Arkar-Win/Meal-Budget-Planning-Webapp/internal/nutrition"
	"github.com/Phyo-Arkar-Win/Meal-Budget-Planning-Webapp/internal/repository"

	"github.com/golang-jwt/jwt/v4"
	"golang.org/x/crypto/bcrypt"
)

// --- Error Definitions ---
var (
	ErrUserAlreadyExists    = errors.New("user with this email or username already exists")
	ErrAuthenticationFailed = errors.New("authentication failed: invalid email or password")
	ErrHashingFailed        = errors.New("failed to hash password")
	ErrTokenGeneration      = errors.New("failed to generate authentication token")
	ErrInvalidBiometrics    = errors.New("age, weight, and height must be positive")
)

// RegisterInput carries everything needed to create an account. The
// biometric fields are validated here so the calculator below never
// sees non-positive values.
type RegisterInput struct {
	Username      string
	Email         string
	Password      string
	Gender        domain.Gender
	Age           int
	Weight        float64
	Height        float64
	FitnessGoal   domain.FitnessGoal
	ActivityLevel domain.ActivityLevel
}

type AuthService interface {
	Register(ctx context.Context, input RegisterInput) (*domain.User, error)
	Login(ctx context.Context, email, password string) (token string, user *domain.User, err error)
	GetJWTSecret() string
}

// authService implements the AuthService interface.
type authService struct {
	userRepo      repository.UserRepository
	jwtSecret     string
	jwtExpiration time.Duration
}

// NewAuthService creates a new instance of authService.
func NewAuthService(userRepo repository.UserRepository, jwtSecret string, jwtExpiration time.Duration) AuthService {
	if jwtSecret == "" {
		panic("JWT secret cannot be empty") // Critical configuration
	}
	if jwtExpiration <= 0 {
		jwtExpiration = time.Hour * 24
	}
	return &authService{
		userRepo:      userRepo,
		jwtSecret:     jwtSecret,
		jwtExpiration: jwtExpiration,
	}
}

// Register handles new user registration. The initial macro target
// snapshot is computed from the submitted profile and stored for
// display.
func (s *authService) Register(ctx context.Context, input RegisterInput) (*domain.User, error) {
	if input.Username == "" || input.Email == "" || input.Password == "" {
		return nil, errors.New("username, email, and password cannot be empty")
	}
	if input.Gender != domain.GenderMale && input.Gender != domain.GenderFemale {
		return nil, errors.New("gender must be male or female")
	}
	if input.Age <= 0 || input.Weight <= 0 || input.Height <= 0 {
		return nil, ErrInvalidBiometrics
	}

	_, err := s.userRepo.GetByEmail(ctx, input.Email)
	if err == nil {
		return nil, ErrUserAlreadyExists
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, ErrHashingFailed
	}

	result := nutrition.Calculate(nutrition.Profile{
		Gender: input.Gender,
		Age:    input.Age,
		Weight: input.Weight,
		Height: input.Height,
	}, input.ActivityLevel, input.FitnessGoal)

	user := &domain.User{
		Username:      input.Username,
		Email:         input.Email,
		PasswordHash:  string(hashedPassword),
		Gender:        input.Gender,
		Age:           input.Age,
		Weight:        input.Weight,
		Height:        input.Height,
		FitnessGoal:   input.FitnessGoal,
		ActivityLevel: input.ActivityLevel,
		Targets:       result.Targets,
	}

	userID, err := s.userRepo.Create(ctx, user)
	if err != nil {
		// The unique index closes the race between the GetByEmail check
		// and the insert.
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrUserAlreadyExists
		}
		return nil, err
	}
	user.ID = userID

	user.PasswordHash = ""
	return user, nil
}

// Login handles user authentication and JWT generation.
func (s *authService) Login(ctx context.Context, email, password string) (token string, user *domain.User, err error) {
	if email == "" || password == "" {
		err = errors.New("email and password cannot be empty")
		return
	}

	user, err = s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			// User not found maps to auth failure for information hiding.
			err = ErrAuthenticationFailed
			return
		}
		return
	}

	err = bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password))
	if err != nil {
		err = ErrAuthenticationFailed
		user = nil
		return
	}

	token, err = s.generateJWT(user)
	if err != nil {
		return "", nil, ErrTokenGeneration
	}

	user.PasswordHash = ""
	return token, user, nil
}

// jwtClaims defines the structure of the JWT payload.
type jwtClaims struct {
	UserID string `json:"uid"`
	jwt.RegisteredClaims
}

// generateJWT creates a new JWT token for the given user.
func (s *authService) generateJWT(user *domain.User) (string, error) {
	expirationTime := time.Now().Add(s.jwtExpiration)
	claims := &jwtClaims{
		UserID: user.ID.Hex(),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID.Hex(),
			ExpiresAt: jwt.NewNumericDate(expirationTime),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			Issuer:    "meal-budget-planner",
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	signedToken, err := token.SignedString([]byte(s.jwtSecret))
	if err != nil {
		return "", err
	}
	return signedToken, nil
}

// GetJWTSecret returns the JWT secret for middleware authentication
func (s *authService) GetJWTSecret() string {
	return s.jwtSecret
}
