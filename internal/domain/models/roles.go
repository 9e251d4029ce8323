// internal/domain/models/roles.go
package models

// Role values stored on User.Role.
const (
	RoleUser      = "user"
	RolePublisher = "publisher"
	RoleAdmin     = "admin"
)
