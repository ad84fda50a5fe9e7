// Package dto defines data transfer objects for the user feature's HTTP transport layer.
package dto

// PersonFields holds the fields shared by the request and response shapes.
type PersonFields struct {
	Name  *string `json:"name"`
	Email *string `json:"email"`
}

// UserRequest is the body of /users/create and /users/update.
// Fields are pointers so that an absent field can be told apart from a blank one.
type UserRequest struct {
	PersonFields
	Password *string `json:"password"`
}

// NewUserRequest builds a request with every field set.
func NewUserRequest(name, email, password string) UserRequest {
	return UserRequest{
		PersonFields: PersonFields{Name: &name, Email: &email},
		Password:     &password,
	}
}
