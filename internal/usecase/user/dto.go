package user

// CreateUserRequest represents the request payload for creating a new user.
// The store assigns the id.
type CreateUserRequest struct {
	Username string
	Age      int64
}

// CreateUserResponse represents the response payload after creating a user.
type CreateUserResponse struct {
	ID       int64
	Username string
	Age      int64
}

// UpdateUserRequest represents the request payload for updating an existing
// user. PathID is the id addressed by the request path; ID is the id carried
// in the body. The store rejects the update when they differ.
type UpdateUserRequest struct {
	PathID   int64
	ID       int64
	Username string
	Age      int64
}

// UpdateUserResponse represents the response payload after updating a user.
type UpdateUserResponse struct {
	ID       int64
	Username string
	Age      int64
}

// DeleteUserRequest represents the request payload for deleting a user.
type DeleteUserRequest struct {
	ID int64
}

// DeleteUserResponse represents the response payload after deleting a user.
type DeleteUserResponse struct {
	ID int64
}

// GetUserRequest represents the request payload for retrieving a user.
type GetUserRequest struct {
	ID int64
}

// GetUserResponse represents the response payload for user details.
type GetUserResponse struct {
	ID       int64
	Username string
	Age      int64
}

// ListUsersResponse represents the response payload for user listing,
// ordered by ascending id.
type ListUsersResponse struct {
	Users []User
}

// User represents a user DTO (Data Transfer Object) for API responses.
type User struct {
	ID       int64
	Username string
	Age      int64
}
