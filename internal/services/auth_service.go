package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"tourdesk/internal/domain"
	"tourdesk/internal/domain/models"
	"tourdesk/internal/utils"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

const tokenTTL = 24 * time.Hour

// AuthService logs admins in and turns bearer tokens back into a session.
type AuthService struct {
	Admins AdminStore
	Secret []byte
	Now    func() time.Time
}

type claims struct {
	Username string `json:"username"`
	Role     string `json:"role"`
	jwt.RegisteredClaims
}

// LoginResult is returned by a successful login.
type LoginResult struct {
	Token     string       `json:"token"`
	ExpiresAt time.Time    `json:"expiresAt"`
	Admin     models.Admin `json:"admin"`
}

func (s AuthService) Login(ctx context.Context, requestID, username, password string) (LoginResult, error) {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return LoginResult{}, domain.ValidationError{Field: "username", Msg: "username and password are required"}
	}
	a, err := s.Admins.GetByUsername(ctx, username)
	if err != nil {
		if domain.IsNotFound(lookupErr("admin", err)) {
			utils.LogEvent(requestID, "auth", "login_failed", "user="+username)
			return LoginResult{}, domain.UnauthorizedError{Msg: "invalid username or password"}
		}
		return LoginResult{}, domain.InternalError{Err: err}
	}
	if err := bcrypt.CompareHashAndPassword([]byte(a.PasswordHash), []byte(password)); err != nil {
		utils.LogEvent(requestID, "auth", "login_failed", "user="+username)
		return LoginResult{}, domain.UnauthorizedError{Msg: "invalid username or password"}
	}

	now := clock(s.Now)
	exp := now.Add(tokenTTL)
	token, err := s.sign(a, now, exp)
	if err != nil {
		return LoginResult{}, domain.InternalError{Msg: "failed to sign token", Err: err}
	}
	utils.LogEvent(requestID, "auth", "login", fmt.Sprintf("admin_id=%d user=%s", a.ID, a.Username))
	return LoginResult{Token: token, ExpiresAt: exp, Admin: a}, nil
}

func (s AuthService) sign(a models.Admin, now, exp time.Time) (string, error) {
	if len(s.Secret) == 0 {
		return "", errors.New("jwt secret is empty")
	}
	c := claims{
		Username: a.Username,
		Role:     a.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   fmt.Sprint(a.ID),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(exp),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, c).SignedString(s.Secret)
}

// ParseToken validates a bearer token and returns the session it carries.
func (s AuthService) ParseToken(requestID, raw string) (domain.RequestContext, error) {
	var c claims
	_, err := jwt.ParseWithClaims(raw, &c, func(t *jwt.Token) (any, error) {
		return s.Secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(func() time.Time { return clock(s.Now) }),
	)
	if err != nil {
		return domain.RequestContext{}, domain.UnauthorizedError{Msg: "invalid or expired token", Err: err}
	}
	var id int64
	if _, err := fmt.Sscan(c.Subject, &id); err != nil || id <= 0 {
		return domain.RequestContext{}, domain.UnauthorizedError{Msg: "invalid token subject"}
	}
	return domain.RequestContext{RequestID: requestID, AdminID: id, Username: c.Username, Role: c.Role}, nil
}

// EnsureBootstrapAdmin creates the first owner account when no admin exists.
func (s AuthService) EnsureBootstrapAdmin(ctx context.Context, username, password string) (bool, error) {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return false, nil
	}
	n, err := s.Admins.Count(ctx)
	if err != nil {
		return false, err
	}
	if n > 0 {
		return false, nil
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return false, err
	}
	if _, err := s.Admins.Create(ctx, models.Admin{Username: username, PasswordHash: string(hash), Role: domain.RoleOwner}); err != nil {
		return false, err
	}
	utils.LogEvent("", "auth", "bootstrap", "created admin "+username)
	return true, nil
}
