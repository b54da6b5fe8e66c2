package service

import (
	"errors"
	"os"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"examportal/internal/model"
)

var (
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrInvalidToken       = errors.New("invalid or expired token")
)

type credential struct {
	Username string
	Password string
	UserID   string
	Name     string
	Role     model.Role
}

// defaultCredentials is the static login fixture. Teacher credentials can be
// overridden through the environment; the student rows are fixed demo users.
var defaultCredentials = []credential{
	{Username: "teacher", Password: "teacher123", UserID: "t-01", Name: "Course Teacher", Role: model.RoleTeacher},
	{Username: "alice", Password: "alice123", UserID: "s-01", Name: "Alice Kumar", Role: model.RoleStudent},
	{Username: "bob", Password: "bob123", UserID: "s-02", Name: "Bob Mathew", Role: model.RoleStudent},
	{Username: "carol", Password: "carol123", UserID: "s-03", Name: "Carol D'Souza", Role: model.RoleStudent},
}

// AuthService authenticates portal users against the credential fixture and
// issues role-scoped JWTs.
type AuthService struct {
	credentials []credential
	jwtSecret   []byte
}

// NewAuthService creates a new auth service
func NewAuthService() *AuthService {
	creds := make([]credential, len(defaultCredentials))
	copy(creds, defaultCredentials)

	if u := os.Getenv("TEACHER_USERNAME"); u != "" {
		creds[0].Username = u
	}
	if p := os.Getenv("TEACHER_PASSWORD"); p != "" {
		creds[0].Password = p
	}

	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		secret = "super-secret-key-change-in-production"
	}

	return &AuthService{
		credentials: creds,
		jwtSecret:   []byte(secret),
	}
}

// Login validates credentials and returns a signed token.
func (s *AuthService) Login(username, password string) (*model.LoginResponse, error) {
	for _, c := range s.credentials {
		if c.Username != username || c.Password != password {
			continue
		}

		claims := &model.UserClaims{
			UserID: c.UserID,
			Name:   c.Name,
			Role:   c.Role,
			RegisteredClaims: jwt.RegisteredClaims{
				IssuedAt:  jwt.NewNumericDate(time.Now()),
				ExpiresAt: jwt.NewNumericDate(time.Now().Add(12 * time.Hour)),
			},
		}

		token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
		tokenString, err := token.SignedString(s.jwtSecret)
		if err != nil {
			return nil, err
		}

		return &model.LoginResponse{
			Token:  tokenString,
			UserID: c.UserID,
			Name:   c.Name,
			Role:   c.Role,
		}, nil
	}
	return nil, ErrInvalidCredentials
}

// ValidateToken validates a JWT and returns its claims.
func (s *AuthService) ValidateToken(tokenString string) (*model.UserClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &model.UserClaims{}, func(token *jwt.Token) (interface{}, error) {
		return s.jwtSecret, nil
	})
	if err != nil || !token.Valid {
		return nil, ErrInvalidToken
	}
	claims, ok := token.Claims.(*model.UserClaims)
	if !ok {
		return nil, ErrInvalidToken
	}
	return claims, nil
}
