package models

import (
	"time"

	"github.com/dgrijalva/jwt-go"
)

type User struct {
	ID            int        `json:"id"`
	Name          string     `json:"name"`
	Phone         string     `json:"phone,omitempty"`
	Email         string     `json:"email,omitempty"`
	Password      string     `json:"password,omitempty"`
	City          string     `json:"city"`
	AvatarPath    *string    `json:"avatar_path,omitempty"`
	AverageRating float64    `json:"average_rating"`
	Role          string     `json:"role"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     *time.Time `json:"updated_at,omitempty"`
}

type Claims struct {
	UserID uint   `json:"user_id"`
	Role   string `json:"role"`
	jwt.StandardClaims
}

type Tokens struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

type Session struct {
	UserID       int       `json:"user_id"`
	Role         string    `json:"role"`
	RefreshToken string    `json:"refresh_token"`
	ExpiresAt    time.Time `json:"expires_at"`
}

type SignInRequest struct {
	Phone    string `json:"phone"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type DeviceToken struct {
	UserID int    `json:"user_id"`
	Token  string `json:"token"`
}
