package auth

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"finpet/internal/adapter/repo/memory"
)

var baseTime = time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)

func newFixture(now time.Time) UseCase {
	store := memory.NewStore()
	return UseCase{
		Credentials: memory.NewCredentialRepo(store),
		TxManager:   memory.NewTxManager(store),
		Secret:      []byte("0123456789abcdef0123456789abcdef"),
		Now:         func() time.Time { return now },
	}
}

func TestRegisterLogin_RoundTrip(t *testing.T) {
	uc := newFixture(baseTime)

	reg, err := uc.Register(context.Background(), RegisterRequest{Nickname: "alice", Password: "s3cret"})
	if err != nil {
		t.Fatalf("register error: %v", err)
	}
	if reg.UserID == "" || reg.Token == "" {
		t.Fatalf("incomplete auth response: %+v", reg)
	}

	login, err := uc.Login(context.Background(), LoginRequest{Nickname: "alice", Password: "s3cret"})
	if err != nil {
		t.Fatalf("login error: %v", err)
	}
	if login.UserID != reg.UserID {
		t.Fatalf("login user = %q, want %q", login.UserID, reg.UserID)
	}

	userID, err := uc.VerifyToken(login.Token)
	if err != nil {
		t.Fatalf("verify error: %v", err)
	}
	if userID != reg.UserID {
		t.Fatalf("token subject = %q, want %q", userID, reg.UserID)
	}
}

func TestRegister_NicknameTaken(t *testing.T) {
	uc := newFixture(baseTime)

	if _, err := uc.Register(context.Background(), RegisterRequest{Nickname: "alice", Password: "a"}); err != nil {
		t.Fatalf("first register error: %v", err)
	}
	_, err := uc.Register(context.Background(), RegisterRequest{Nickname: "alice", Password: "b"})
	if !errors.Is(err, ErrNicknameTaken) {
		t.Fatalf("expected ErrNicknameTaken, got %v", err)
	}
}

func TestRegister_Validation(t *testing.T) {
	uc := newFixture(baseTime)

	cases := []RegisterRequest{
		{Nickname: "", Password: "x"},
		{Nickname: "   ", Password: "x"},
		{Nickname: "alice", Password: ""},
		{Nickname: strings.Repeat("n", 51), Password: "x"},
	}
	for i, req := range cases {
		if _, err := uc.Register(context.Background(), req); !errors.Is(err, ErrInvalidRequest) {
			t.Fatalf("case %d: expected ErrInvalidRequest, got %v", i, err)
		}
	}
}

func TestLogin_WrongPassword(t *testing.T) {
	uc := newFixture(baseTime)

	if _, err := uc.Register(context.Background(), RegisterRequest{Nickname: "alice", Password: "right"}); err != nil {
		t.Fatalf("register error: %v", err)
	}
	_, err := uc.Login(context.Background(), LoginRequest{Nickname: "alice", Password: "wrong"})
	if !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestLogin_UnknownNickname(t *testing.T) {
	uc := newFixture(baseTime)

	_, err := uc.Login(context.Background(), LoginRequest{Nickname: "ghost", Password: "x"})
	if !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestVerifyToken_RejectsTampering(t *testing.T) {
	uc := newFixture(baseTime)

	reg, err := uc.Register(context.Background(), RegisterRequest{Nickname: "alice", Password: "x"})
	if err != nil {
		t.Fatalf("register error: %v", err)
	}

	tampered := reg.Token[:len(reg.Token)-2] + "xx"
	if _, err := uc.VerifyToken(tampered); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken for tampered token, got %v", err)
	}
	if _, err := uc.VerifyToken(""); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken for empty token, got %v", err)
	}
	if _, err := uc.VerifyToken("not-a-jwt"); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken for garbage, got %v", err)
	}
}

func TestVerifyToken_RejectsWrongSecret(t *testing.T) {
	issuer := newFixture(baseTime)
	verifier := newFixture(baseTime)
	verifier.Secret = []byte("another-secret-another-secret-00")

	reg, err := issuer.Register(context.Background(), RegisterRequest{Nickname: "alice", Password: "x"})
	if err != nil {
		t.Fatalf("register error: %v", err)
	}
	if _, err := verifier.VerifyToken(reg.Token); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken across secrets, got %v", err)
	}
}

func TestVerifyToken_Expiry(t *testing.T) {
	uc := newFixture(baseTime)
	uc.TokenTTL = time.Hour

	reg, err := uc.Register(context.Background(), RegisterRequest{Nickname: "alice", Password: "x"})
	if err != nil {
		t.Fatalf("register error: %v", err)
	}

	late := newFixture(baseTime.Add(2 * time.Hour))
	if _, err := late.VerifyToken(reg.Token); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken after expiry, got %v", err)
	}
}
