package dto

import "github.com/avelichko/kritika/data"

// CreateUserRequestBody defines a request body for the CreateUser service.
type CreateUserRequestBody struct {
	Username  string `json:"username"`
	Email     string `json:"email"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Bio       string `json:"bio"`
	Role      string `json:"role"`
}

// UpdateUserRequestBody defines a request body for the UpdateUser service.
// Nil fields are left unchanged.
type UpdateUserRequestBody struct {
	Email     *string `json:"email"`
	FirstName *string `json:"first_name"`
	LastName  *string `json:"last_name"`
	Bio       *string `json:"bio"`
	Role      *string `json:"role"`
}

// UpdateProfileRequestBody defines a request body for the UpdateProfile
// service. It deliberately has no role field: a user cannot change their own
// role.
type UpdateProfileRequestBody struct {
	Email     *string `json:"email"`
	FirstName *string `json:"first_name"`
	LastName  *string `json:"last_name"`
	Bio       *string `json:"bio"`
}

// QsListUsers defines the query strings used for listing users.
type QsListUsers struct {
	Search  string
	Filters data.Filters
}
