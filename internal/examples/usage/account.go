package usage

import "fmt"

//go:generate restruct -type Account -capability openapi

// Account is a registered user.
//
//openapi:title account
//restruct:view AccountView, preset = "read", attributes_with = "all", derive(fmt.Stringer)
//restruct:patch AccountPatch, preset = "write", attributes_with = "all"
//restruct:view AccountCopy
type Account struct {
	// ID is assigned on creation.
	ID       int64   `json:"id" openapi:"readOnly"`
	Email    string  `json:"email"`
	Name     *string `json:"name,omitempty"`
	Password string  `json:"password" openapi:"writeOnly"`
}

func (v AccountView) String() string { return fmt.Sprintf("%d %s", v.ID, v.Email) }
