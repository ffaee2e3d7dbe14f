package user

// User represents a user entity in the system. Field validation rules are
// enforced by the store through the validate tags; JSON tags define the wire
// names, including the historical "userage" name for the age field.
type User struct {
	ID       int64  `json:"id"`                           // ID is the store-assigned unique identifier
	Username string `json:"username" validate:"notblank"` // Username is unique across all users ever created
	Age      int64  `json:"userage" validate:"gt=0"`      // Age must be strictly positive
}
