package model

import "github.com/golang-jwt/jwt/v5"

// Role distinguishes the two portal user kinds.
type Role string

const (
	RoleTeacher Role = "teacher"
	RoleStudent Role = "student"
)

// UserClaims are JWT claims for portal users.
type UserClaims struct {
	UserID string `json:"userId"`
	Name   string `json:"name"`
	Role   Role   `json:"role"`
	jwt.RegisteredClaims
}

// LoginRequest is the request body for login
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// LoginResponse is returned after successful login
type LoginResponse struct {
	Token  string `json:"token"`
	UserID string `json:"userId"`
	Name   string `json:"name"`
	Role   Role   `json:"role"`
}
