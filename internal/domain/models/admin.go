package models

// AdminUser represents a store administrator
type AdminUser struct {
	ID       int64
	Email    string
	PassHash []byte
}
