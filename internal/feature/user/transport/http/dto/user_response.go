package dto

// UserResponse is returned by /users/preview and /users/all.
// Password carries the stored bcrypt hash, never the plaintext.
type UserResponse struct {
	ID string `json:"id"`
	PersonFields
	Password string `json:"password"`
}
