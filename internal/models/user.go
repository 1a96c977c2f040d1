package models

// User represents a registered identity. PasswordHash is always set: accounts
// created through Google login receive a hash of random data so they can never
// authenticate by password.
type User struct {
	ID            string `json:"id"`
	Email         string `json:"email"`
	PasswordHash  string `json:"passwordHash"`
	GoogleID      string `json:"googleId,omitempty"`
	WalletAddress string `json:"walletAddress,omitempty"`
}

// PublicUser is the client-facing projection of a User. PasswordHash and
// GoogleID must never leave the server.
type PublicUser struct {
	ID            string `json:"id"`
	Email         string `json:"email"`
	WalletAddress string `json:"walletAddress,omitempty"`
}

func (u User) Public() PublicUser {
	return PublicUser{
		ID:            u.ID,
		Email:         u.Email,
		WalletAddress: u.WalletAddress,
	}
}
