package session

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	domain "github.com/pipelinecrm/crm-server/internal/domain/account"
	"golang.org/x/crypto/bcrypt"
)

const issuer = "crm-server"

var ErrInvalidToken = errors.New("invalid session token")

type TokenClaims struct {
	UserID    string `json:"user_id"`
	CompanyID string `json:"company_id"`
	Email     string `json:"email"`
	jwt.RegisteredClaims
}

// Manager signs and verifies HS256 session tokens.
type Manager struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

func NewManager(secret string, ttl time.Duration) *Manager {
	return &Manager{secret: []byte(secret), ttl: ttl, now: time.Now}
}

func (m *Manager) TTL() time.Duration {
	return m.ttl
}

func (m *Manager) Issue(s domain.Session) (string, time.Time, error) {
	now := m.now()
	expiresAt := now.Add(m.ttl)

	claims := TokenClaims{
		UserID:    s.UserID,
		CompanyID: s.CompanyID,
		Email:     s.Email,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   s.UserID,
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(now),
			Issuer:    issuer,
		},
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.secret)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("sign session token: %w", err)
	}
	return token, expiresAt, nil
}

func (m *Manager) Parse(token string) (domain.Session, error) {
	parsed, err := jwt.ParseWithClaims(token, &TokenClaims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("invalid signing method")
		}
		return m.secret, nil
	}, jwt.WithIssuer(issuer), jwt.WithTimeFunc(m.now))
	if err != nil {
		return domain.Session{}, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	claims, ok := parsed.Claims.(*TokenClaims)
	if !ok || !parsed.Valid || claims.UserID == "" || claims.CompanyID == "" {
		return domain.Session{}, ErrInvalidToken
	}
	return domain.Session{UserID: claims.UserID, CompanyID: claims.CompanyID, Email: claims.Email}, nil
}

// BcryptHasher hashes passwords with bcrypt at the given cost.
type BcryptHasher struct {
	Cost int
}

func (h BcryptHasher) Hash(password string) (string, error) {
	cost := h.Cost
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

func (h BcryptHasher) Compare(hash, password string) error {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
}
