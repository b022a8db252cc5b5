package models

// Identity is the normalized acting-user value produced once at the auth
// boundary and passed explicitly into every service operation. Nothing below
// the middleware layer reads ambient request state.
type Identity struct {
	UserID uint
	Role   string
	Banned bool
}

// IdentityOf builds the boundary identity from a loaded user record.
func IdentityOf(u *User) Identity {
	return Identity{
		UserID: u.ID,
		Role:   u.Role,
		Banned: u.IsBanned,
	}
}
