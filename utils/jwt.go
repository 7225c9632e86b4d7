package utils

import (
	"errors"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt"
)

// Dashboard roles carried in the "role" claim.
const (
	RoleAdmin   = "admin"
	RoleMentor  = "mentor"
	RoleStudent = "student"
)

// DashboardClaims is the token payload issued by the platform's auth service.
type DashboardClaims struct {
	Role     string `json:"role"`
	MentorID int64  `json:"mentor_id,omitempty"`
	jwt.StandardClaims
}

// UserID returns the numeric subject.
func (c *DashboardClaims) UserID() (int64, error) {
	id, err := strconv.ParseInt(c.Subject, 10, 64)
	if err != nil || id <= 0 {
		return 0, errors.New("token does not contain a valid 'sub' claim")
	}
	return id, nil
}

// GenerateToken creates a signed dashboard token. The platform issues the real ones;
// this is used by tooling and tests.
func GenerateToken(secret []byte, userID int64, role string, mentorID int64, duration time.Duration) (string, error) {
	now := time.Now()
	claims := DashboardClaims{
		Role:     role,
		MentorID: mentorID,
		StandardClaims: jwt.StandardClaims{
			Subject:   strconv.FormatInt(userID, 10),
			IssuedAt:  now.Unix(),
			ExpiresAt: now.Add(duration).Unix(),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(secret)
}

// ValidateToken parses and validates a token string and returns its claims.
func ValidateToken(secret []byte, tokenString string) (*DashboardClaims, error) {
	claims := &DashboardClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return secret, nil
	})
	if err != nil {
		return nil, err
	}
	if !token.Valid {
		return nil, errors.New("invalid token")
	}
	switch claims.Role {
	case RoleAdmin, RoleMentor, RoleStudent:
	default:
		return nil, errors.New("token does not contain a known 'role' claim")
	}
	if _, err := claims.UserID(); err != nil {
		return nil, err
	}
	return claims, nil
}
