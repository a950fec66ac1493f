// Package models defines the persistent entities of journalkeeper.
package models

// User is a registered account. Password holds the PHC-encoded argon2id
// credential, never the plain password.
type User struct {
	ID       string `json:"id"`
	UserName string `json:"username"`
	Password string `json:"-"`
	Email    string `json:"email"`
}
