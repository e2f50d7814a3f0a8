package identity

import (
	"context"
	"errors"
	"testing"

	"github.com/jackc/pgx/v5"
)

type failingRow struct{ err error }

func (r failingRow) Scan(dest ...any) error { return r.err }

func TestScanUser_ErrorYieldsNilUser(t *testing.T) {
	repo := &userRepoPG{}

	u, err := repo.scanUser(failingRow{err: errors.New("broken connection")})
	if err == nil {
		t.Fatal("expected scan error to propagate")
	}
	if u != nil {
		t.Errorf("expected no user alongside an error, got %+v", u)
	}
}

func TestScanUser_NoRowsIsNotFound(t *testing.T) {
	repo := &userRepoPG{}

	u, err := repo.scanUser(failingRow{err: pgx.ErrNoRows})
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
	if u != nil {
		t.Errorf("expected no user, got %+v", u)
	}
}

func TestUpdateProfile_RejectsUnknownColumn(t *testing.T) {
	repo := &userRepoPG{}

	// The whitelist check runs before any store access, so a nil pool is
	// fine here.
	err := repo.UpdateProfile(context.Background(), "a@x.com", map[string]interface{}{
		"full_name": "Mallory",
	})
	if err == nil {
		t.Fatal("expected non-patchable column to be rejected")
	}
}
