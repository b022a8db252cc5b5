package repositories

import (
	"testing"

	"github.com/pronetwork/backend/internal/models"
	apperrors "github.com/pronetwork/backend/pkg/errors"
)

func TestConnectionRepository_Create(t *testing.T) {
	db := newTestDB(t)
	repo := NewConnectionRepository(db)

	alice := createUser(t, db, "alice")
	bob := createUser(t, db, "bob")

	conn, err := repo.Create(alice, bob)
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	if conn.Status != models.ConnectionStatusPending {
		t.Errorf("Status = %q, want %q", conn.Status, models.ConnectionStatusPending)
	}
}

func TestConnectionRepository_Create_Duplicate(t *testing.T) {
	db := newTestDB(t)
	repo := NewConnectionRepository(db)

	alice := createUser(t, db, "alice")
	bob := createUser(t, db, "bob")

	if _, err := repo.Create(alice, bob); err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	_, err := repo.Create(alice, bob)
	if err == nil {
		t.Fatal("Create() expected error for duplicate request, got nil")
	}
	if !apperrors.Is(err, apperrors.ErrCodeConflict) {
		t.Errorf("error code = %q, want %q", apperrors.CodeOf(err), apperrors.ErrCodeConflict)
	}
}

func TestConnectionRepository_Create_AlreadyAccepted(t *testing.T) {
	db := newTestDB(t)
	repo := NewConnectionRepository(db)

	alice := createUser(t, db, "alice")
	bob := createUser(t, db, "bob")

	if _, err := repo.Create(alice, bob); err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if err := repo.AcceptPending(alice, bob); err != nil {
		t.Fatalf("AcceptPending() error = %v", err)
	}

	_, err := repo.Create(alice, bob)
	if !apperrors.Is(err, apperrors.ErrCodeConflict) {
		t.Errorf("error code = %q, want %q", apperrors.CodeOf(err), apperrors.ErrCodeConflict)
	}
}

func TestConnectionRepository_AcceptPending(t *testing.T) {
	db := newTestDB(t)
	repo := NewConnectionRepository(db)

	alice := createUser(t, db, "alice")
	bob := createUser(t, db, "bob")

	if _, err := repo.Create(alice, bob); err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	if err := repo.AcceptPending(alice, bob); err != nil {
		t.Fatalf("AcceptPending() error = %v", err)
	}

	var conn models.Connection
	if err := db.Where("sender_id = ? AND receiver_id = ?", alice, bob).First(&conn).Error; err != nil {
		t.Fatalf("failed to load connection: %v", err)
	}
	if conn.Status != models.ConnectionStatusAccepted {
		t.Errorf("Status = %q, want %q", conn.Status, models.ConnectionStatusAccepted)
	}
}

func TestConnectionRepository_AcceptPending_NotFound(t *testing.T) {
	db := newTestDB(t)
	repo := NewConnectionRepository(db)

	alice := createUser(t, db, "alice")
	bob := createUser(t, db, "bob")

	tests := []struct {
		name  string
		setup func(t *testing.T)
	}{
		{
			name:  "No request exists",
			setup: func(t *testing.T) {},
		},
		{
			name: "Already accepted",
			setup: func(t *testing.T) {
				if _, err := repo.Create(alice, bob); err != nil {
					t.Fatalf("Create() error = %v", err)
				}
				if err := repo.AcceptPending(alice, bob); err != nil {
					t.Fatalf("AcceptPending() error = %v", err)
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setup(t)

			err := repo.AcceptPending(alice, bob)
			if !apperrors.Is(err, apperrors.ErrCodeNotFound) {
				t.Errorf("error code = %q, want %q", apperrors.CodeOf(err), apperrors.ErrCodeNotFound)
			}
		})
	}
}

func TestConnectionRepository_DeletePending(t *testing.T) {
	db := newTestDB(t)
	repo := NewConnectionRepository(db)

	alice := createUser(t, db, "alice")
	bob := createUser(t, db, "bob")

	if _, err := repo.Create(alice, bob); err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	if err := repo.DeletePending(alice, bob); err != nil {
		t.Fatalf("DeletePending() error = %v", err)
	}

	// Second delete matches nothing.
	err := repo.DeletePending(alice, bob)
	if !apperrors.Is(err, apperrors.ErrCodeNotFound) {
		t.Errorf("error code = %q, want %q", apperrors.CodeOf(err), apperrors.ErrCodeNotFound)
	}
}

func TestConnectionRepository_DeletePending_LeavesAccepted(t *testing.T) {
	db := newTestDB(t)
	repo := NewConnectionRepository(db)

	alice := createUser(t, db, "alice")
	bob := createUser(t, db, "bob")

	if _, err := repo.Create(alice, bob); err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if err := repo.AcceptPending(alice, bob); err != nil {
		t.Fatalf("AcceptPending() error = %v", err)
	}

	// Status guard must not delete the accepted row.
	if err := repo.DeletePending(alice, bob); !apperrors.Is(err, apperrors.ErrCodeNotFound) {
		t.Errorf("error code = %q, want %q", apperrors.CodeOf(err), apperrors.ErrCodeNotFound)
	}

	var count int64
	db.Model(&models.Connection{}).Count(&count)
	if count != 1 {
		t.Errorf("connection count = %d, want 1", count)
	}
}

func TestConnectionRepository_DeleteBetween(t *testing.T) {
	db := newTestDB(t)
	repo := NewConnectionRepository(db)

	alice := createUser(t, db, "alice")
	bob := createUser(t, db, "bob")

	if _, err := repo.Create(alice, bob); err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	// Direction of the stored row does not matter for removal.
	rows, err := repo.DeleteBetween(bob, alice)
	if err != nil {
		t.Fatalf("DeleteBetween() error = %v", err)
	}
	if rows != 1 {
		t.Errorf("rows = %d, want 1", rows)
	}

	// Idempotent: nothing left to delete is not an error.
	rows, err = repo.DeleteBetween(bob, alice)
	if err != nil {
		t.Fatalf("DeleteBetween() second call error = %v", err)
	}
	if rows != 0 {
		t.Errorf("rows = %d, want 0", rows)
	}
}

func TestConnectionRepository_CountAccepted(t *testing.T) {
	db := newTestDB(t)
	repo := NewConnectionRepository(db)

	alice := createUser(t, db, "alice")
	bob := createUser(t, db, "bob")
	carol := createUser(t, db, "carol")

	// alice -> bob accepted, carol -> alice pending
	if _, err := repo.Create(alice, bob); err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if err := repo.AcceptPending(alice, bob); err != nil {
		t.Fatalf("AcceptPending() error = %v", err)
	}
	if _, err := repo.Create(carol, alice); err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	count, err := repo.CountAccepted(alice)
	if err != nil {
		t.Fatalf("CountAccepted() error = %v", err)
	}
	if count != 1 {
		t.Errorf("CountAccepted() = %d, want 1", count)
	}
}

func TestConnectionRepository_ListPendingFor(t *testing.T) {
	db := newTestDB(t)
	repo := NewConnectionRepository(db)

	alice := createUser(t, db, "alice")
	bob := createUser(t, db, "bob")
	carol := createUser(t, db, "carol")

	if _, err := repo.Create(bob, alice); err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if _, err := repo.Create(carol, alice); err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	requests, err := repo.ListPendingFor(alice)
	if err != nil {
		t.Fatalf("ListPendingFor() error = %v", err)
	}

	if len(requests) != 2 {
		t.Fatalf("len(requests) = %d, want 2", len(requests))
	}

	for _, req := range requests {
		if req.Sender.ID != req.SenderID {
			t.Errorf("Sender not preloaded for request %d", req.ID)
		}
	}
}

func TestConnectionRepository_StatusBetween(t *testing.T) {
	db := newTestDB(t)
	repo := NewConnectionRepository(db)

	alice := createUser(t, db, "alice")
	bob := createUser(t, db, "bob")
	carol := createUser(t, db, "carol")

	if _, err := repo.Create(alice, bob); err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	tests := []struct {
		name     string
		viewerID uint
		otherID  uint
		want     string
	}{
		{
			name:     "Sender sees request_sent",
			viewerID: alice,
			otherID:  bob,
			want:     models.PairStateRequestSent,
		},
		{
			name:     "Receiver sees request_received",
			viewerID: bob,
			otherID:  alice,
			want:     models.PairStateRequestReceived,
		},
		{
			name:     "Strangers see none",
			viewerID: alice,
			otherID:  carol,
			want:     models.PairStateNone,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			state, _, err := repo.StatusBetween(tt.viewerID, tt.otherID)
			if err != nil {
				t.Fatalf("StatusBetween() error = %v", err)
			}
			if state != tt.want {
				t.Errorf("StatusBetween() = %q, want %q", state, tt.want)
			}
		})
	}

	if err := repo.AcceptPending(alice, bob); err != nil {
		t.Fatalf("AcceptPending() error = %v", err)
	}

	state, requestID, err := repo.StatusBetween(bob, alice)
	if err != nil {
		t.Fatalf("StatusBetween() error = %v", err)
	}
	if state != models.PairStateConnected {
		t.Errorf("StatusBetween() = %q, want %q", state, models.PairStateConnected)
	}
	if requestID == 0 {
		t.Error("StatusBetween() requestID = 0, want connection id")
	}
}
