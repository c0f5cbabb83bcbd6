package model

import (
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"

	"library-catalog/internal/shared"
	"library-catalog/internal/shared/utils"
)

const (
	RoleAdmin  = "admin"
	RoleReader = "reader"
)

// User is a row of the users table. Password holds the "{scheme}encoded" value
// and Roles a comma separated list.
type User struct {
	ID       int64  `db:"id"`
	Login    string `db:"login"`
	Password string `db:"password"`
	Roles    string `db:"roles"`
}

func (u User) RoleList() []string {
	return utils.SplitList(u.Roles)
}

func (u User) Principal() *shared.Principal {
	return &shared.Principal{UserID: u.ID, Login: u.Login, Roles: u.RoleList()}
}

// JoinRoles renders roles for the roles column.
func JoinRoles(roles ...string) string {
	return strings.Join(roles, ",")
}

// LoginRequest - POST /login
type LoginRequest struct {
	Login    string `json:"login"`
	Password string `json:"password"`
}

func (r LoginRequest) Validate() error {
	return shared.NewValidationError(validation.ValidateStruct(&r,
		validation.Field(&r.Login,
			validation.Required.Error("login is required"),
			is.PrintableASCII.Error("login must be printable ASCII"),
		),
		validation.Field(&r.Password, validation.Required.Error("password is required")),
	))
}

type LoginResponse struct {
	AccessToken string    `json:"access_token"`
	TokenType   string    `json:"token_type"`
	ExpiresAt   time.Time `json:"expires_at"`
}
