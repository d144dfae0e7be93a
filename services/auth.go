package services

import (
	"errors"
	"fmt"
	"time"

	"partner-growth-system/models"
	"partner-growth-system/store"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

var (
	// ErrInvalidCredentials covers unknown email and wrong password alike,
	// so the login response never reveals which one it was.
	ErrInvalidCredentials = errors.New("auth: invalid credentials")

	// ErrEmailTaken is returned on registration with an existing email.
	ErrEmailTaken = errors.New("auth: email already registered")

	// ErrInvalidToken is returned for expired or malformed tokens.
	ErrInvalidToken = errors.New("auth: invalid or expired token")
)

// Claims carries the acting partner's id inside the JWT.
type Claims struct {
	PartnerID uint `json:"partner_id"`
	jwt.RegisteredClaims
}

// AuthService issues and verifies HS256 tokens and manages credentials.
type AuthService struct {
	Store    store.Store
	secret   []byte
	tokenTTL time.Duration
}

func NewAuthService(s store.Store, secret string, ttl time.Duration) *AuthService {
	return &AuthService{Store: s, secret: []byte(secret), tokenTTL: ttl}
}

// Register creates a partner with a bcrypt-hashed password and returns the
// partner with a fresh token.
func (s *AuthService) Register(name, email, phone, password string) (*models.Partner, string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, "", fmt.Errorf("hash password: %w", err)
	}

	partner := &models.Partner{
		Name:         name,
		Email:        email,
		PhoneNumber:  phone,
		PasswordHash: string(hash),
	}
	if err := s.Store.CreatePartner(partner); err != nil {
		if errors.Is(err, store.ErrDuplicate) {
			return nil, "", ErrEmailTaken
		}
		return nil, "", err
	}

	token, err := s.GenerateToken(partner.ID)
	if err != nil {
		return nil, "", err
	}
	return partner, token, nil
}

// Login verifies the password against the stored bcrypt hash and issues a
// token on success.
func (s *AuthService) Login(email, password string) (*models.Partner, string, error) {
	partner, err := s.Store.GetPartnerByEmail(email)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, "", ErrInvalidCredentials
		}
		return nil, "", err
	}

	if bcrypt.CompareHashAndPassword([]byte(partner.PasswordHash), []byte(password)) != nil {
		return nil, "", ErrInvalidCredentials
	}

	token, err := s.GenerateToken(partner.ID)
	if err != nil {
		return nil, "", err
	}
	return partner, token, nil
}

// GenerateToken signs an HS256 JWT for the partner.
func (s *AuthService) GenerateToken(partnerID uint) (string, error) {
	claims := &Claims{
		PartnerID: partnerID,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(s.tokenTTL)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.secret)
}

// PartnerFromToken resolves the acting partner from a bearer token.
func (s *AuthService) PartnerFromToken(tokenStr string) (*models.Partner, error) {
	token, err := jwt.ParseWithClaims(tokenStr, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil || !token.Valid {
		return nil, ErrInvalidToken
	}
	claims, ok := token.Claims.(*Claims)
	if !ok {
		return nil, ErrInvalidToken
	}

	partner, err := s.Store.GetPartnerByID(claims.PartnerID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrInvalidToken
		}
		return nil, err
	}
	return partner, nil
}
