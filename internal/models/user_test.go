package models

import (
	"testing"
)

func TestUser_BeforeSave_ValidRole(t *testing.T) {
	tests := []struct {
		name    string
		role    string
		wantErr bool
	}{
		{
			name:    "User role",
			role:    RoleUser,
			wantErr: false,
		},
		{
			name:    "Company role",
			role:    RoleCompany,
			wantErr: false,
		},
		{
			name:    "Admin role",
			role:    RoleAdmin,
			wantErr: false,
		},
		{
			name:    "Invalid role",
			role:    "superuser",
			wantErr: true,
		},
		{
			name:    "Empty role",
			role:    "",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			user := &User{
				FirstName: "Test",
				LastName:  "User",
				Email:     "test@example.com",
				Role:      tt.role,
			}

			err := user.BeforeSave(nil)
			if (err != nil) != tt.wantErr {
				t.Errorf("BeforeSave() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestUser_DisplayName(t *testing.T) {
	tests := []struct {
		name      string
		firstName string
		lastName  string
		want      string
	}{
		{
			name:      "First and last name",
			firstName: "Jane",
			lastName:  "Doe",
			want:      "Jane Doe",
		},
		{
			name:      "Company account without last name",
			firstName: "Acme Corp",
			lastName:  "",
			want:      "Acme Corp",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			user := &User{FirstName: tt.firstName, LastName: tt.lastName}
			if got := user.DisplayName(); got != tt.want {
				t.Errorf("DisplayName() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestUser_TableName(t *testing.T) {
	user := User{}
	tableName := user.TableName()

	if tableName != "users" {
		t.Errorf("TableName() = %q, want %q", tableName, "users")
	}
}

func TestConnectionConstants(t *testing.T) {
	if ConnectionStatusPending != "pending" {
		t.Errorf("ConnectionStatusPending = %q, want %q", ConnectionStatusPending, "pending")
	}
	if ConnectionStatusAccepted != "accepted" {
		t.Errorf("ConnectionStatusAccepted = %q, want %q", ConnectionStatusAccepted, "accepted")
	}
}

func TestNotificationConstants(t *testing.T) {
	if NotificationConnectionRequest != "connection_request" {
		t.Errorf("NotificationConnectionRequest = %q, want %q", NotificationConnectionRequest, "connection_request")
	}
	if NotificationConnectionAccepted != "connection_accepted" {
		t.Errorf("NotificationConnectionAccepted = %q, want %q", NotificationConnectionAccepted, "connection_accepted")
	}
}

func TestIdentityOf(t *testing.T) {
	user := &User{
		ID:       7,
		Role:     RoleCompany,
		IsBanned: true,
	}

	identity := IdentityOf(user)

	if identity.UserID != 7 {
		t.Errorf("UserID = %d, want 7", identity.UserID)
	}
	if identity.Role != RoleCompany {
		t.Errorf("Role = %q, want %q", identity.Role, RoleCompany)
	}
	if !identity.Banned {
		t.Error("Banned = false, want true")
	}
}
