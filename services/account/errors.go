package account

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	accountRepo "lexmarket/database/repository/account"
)

// ErrInvalidCredentials is returned for an unknown email or a wrong password.
var ErrInvalidCredentials = errors.New("invalid email or password")

// ErrEmailTaken is re-exported so callers need not import the repository.
var ErrEmailTaken = accountRepo.ErrEmailTaken

// InvalidRequestError lists the request fields that failed validation.
type InvalidRequestError struct {
	Fields map[string]string
}

func (e InvalidRequestError) Error() string {
	names := make([]string, 0, len(e.Fields))
	for name := range e.Fields {
		names = append(names, name)
	}
	sort.Strings(names)
	return fmt.Sprintf("invalid request: %s", strings.Join(names, ", "))
}
