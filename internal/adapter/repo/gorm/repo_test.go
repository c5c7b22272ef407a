package gormrepo

import (
	"errors"
	"fmt"
	"testing"

	"gorm.io/gorm"

	"finpet/internal/app/ports"
)

var (
	_ ports.WalletRepository         = WalletRepo{}
	_ ports.StatusRepository         = StatusRepo{}
	_ ports.InventoryRepository      = InventoryRepo{}
	_ ports.ProfileRepository        = ProfileRepo{}
	_ ports.MissionRepository        = MissionRepo{}
	_ ports.ProgressRepository       = ProgressRepo{}
	_ ports.CatalogRepository        = CatalogRepo{}
	_ ports.SnapshotRepository       = SnapshotRepo{}
	_ ports.UserCredentialRepository = CredentialRepo{}
	_ ports.TxManager                = TxManager{}
)

func TestIsUniqueViolation(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want bool
	}{
		{
			name: "postgres duplicate key",
			err:  errors.New(`ERROR: duplicate key value violates unique constraint "user_credentials_nickname_key" (SQLSTATE 23505)`),
			want: true,
		},
		{
			name: "wrapped driver error",
			err:  fmt.Errorf("create: %w", errors.New("duplicate key value violates unique constraint")),
			want: true,
		},
		{
			name: "unique constraint phrasing",
			err:  errors.New("UNIQUE constraint failed: wallets.user_id"),
			want: true,
		},
		{
			name: "record not found",
			err:  gorm.ErrRecordNotFound,
			want: false,
		},
		{
			name: "nil",
			err:  nil,
			want: false,
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := isUniqueViolation(tc.err); got != tc.want {
				t.Fatalf("isUniqueViolation(%v) = %v, want %v", tc.err, got, tc.want)
			}
		})
	}
}
