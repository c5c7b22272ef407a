package auth

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"errors"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"finpet/internal/app/ports"
)

const (
	maxNicknameLen  = 50
	defaultTokenTTL = 7 * 24 * time.Hour
)

var (
	ErrInvalidRequest     = errors.New("invalid auth request")
	ErrNicknameTaken      = errors.New("nickname already taken")
	ErrInvalidCredentials = errors.New("invalid nickname or password")
	ErrInvalidToken       = errors.New("invalid token")
)

type RegisterRequest struct {
	Nickname string
	Password string
}

type LoginRequest struct {
	Nickname string
	Password string
}

type AuthResponse struct {
	UserID string `json:"user_id"`
	Token  string `json:"token"`
}

type claims struct {
	Nickname string `json:"nickname"`
	jwt.RegisteredClaims
}

type UseCase struct {
	Credentials ports.UserCredentialRepository
	TxManager   ports.TxManager
	Secret      []byte
	TokenTTL    time.Duration
	Now         func() time.Time
}

func (u UseCase) Register(ctx context.Context, req RegisterRequest) (AuthResponse, error) {
	req.Nickname = strings.TrimSpace(req.Nickname)
	if req.Nickname == "" || len(req.Nickname) > maxNicknameLen || req.Password == "" {
		return AuthResponse{}, ErrInvalidRequest
	}
	now := u.now()

	salt := make([]byte, 16)
	if _, err := rand.Read(salt); err != nil {
		return AuthResponse{}, err
	}
	cred := ports.UserCredentialRecord{
		UserID:    uuid.NewString(),
		Nickname:  req.Nickname,
		KeySalt:   salt,
		KeyHash:   credentialHash(salt, req.Password),
		CreatedAt: now,
	}

	err := u.TxManager.RunInTx(ctx, func(txCtx context.Context) error {
		_, err := u.Credentials.GetByNickname(txCtx, req.Nickname)
		if err == nil {
			return ErrNicknameTaken
		}
		if !errors.Is(err, ports.ErrNotFound) {
			return err
		}
		return u.Credentials.Create(txCtx, cred)
	})
	if errors.Is(err, ports.ErrConflict) {
		return AuthResponse{}, ErrNicknameTaken
	}
	if err != nil {
		return AuthResponse{}, err
	}

	token, err := u.issueToken(cred.UserID, cred.Nickname, now)
	if err != nil {
		return AuthResponse{}, err
	}
	return AuthResponse{UserID: cred.UserID, Token: token}, nil
}

func (u UseCase) Login(ctx context.Context, req LoginRequest) (AuthResponse, error) {
	req.Nickname = strings.TrimSpace(req.Nickname)
	if req.Nickname == "" || req.Password == "" {
		return AuthResponse{}, ErrInvalidRequest
	}

	cred, err := u.Credentials.GetByNickname(ctx, req.Nickname)
	if errors.Is(err, ports.ErrNotFound) {
		return AuthResponse{}, ErrInvalidCredentials
	}
	if err != nil {
		return AuthResponse{}, err
	}

	got := credentialHash(cred.KeySalt, req.Password)
	if subtle.ConstantTimeCompare(got, cred.KeyHash) != 1 {
		return AuthResponse{}, ErrInvalidCredentials
	}

	token, err := u.issueToken(cred.UserID, cred.Nickname, u.now())
	if err != nil {
		return AuthResponse{}, err
	}
	return AuthResponse{UserID: cred.UserID, Token: token}, nil
}

// VerifyToken validates a bearer token and returns the user id it was issued
// for.
func (u UseCase) VerifyToken(tokenString string) (string, error) {
	tokenString = strings.TrimSpace(tokenString)
	if tokenString == "" {
		return "", ErrInvalidToken
	}
	parsed, err := jwt.ParseWithClaims(tokenString, &claims{}, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return u.Secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithTimeFunc(u.now))
	if err != nil || !parsed.Valid {
		return "", ErrInvalidToken
	}
	c, ok := parsed.Claims.(*claims)
	if !ok || c.Subject == "" {
		return "", ErrInvalidToken
	}
	return c.Subject, nil
}

func (u UseCase) issueToken(userID, nickname string, now time.Time) (string, error) {
	ttl := u.TokenTTL
	if ttl <= 0 {
		ttl = defaultTokenTTL
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims{
		Nickname: nickname,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	})
	return token.SignedString(u.Secret)
}

func credentialHash(salt []byte, password string) []byte {
	b := make([]byte, 0, len(salt)+len(password))
	b = append(b, salt...)
	b = append(b, password...)
	sum := sha256.Sum256(b)
	return sum[:]
}

func (u UseCase) now() time.Time {
	if u.Now != nil {
		return u.Now()
	}
	return time.Now()
}
