// Package scope derives the account scope attached to every data request:
// which managed accounts the current user may see, and how an explicit
// single-account filter narrows it.
package scope

import (
	"context"
	"errors"
	"strconv"
	"strings"

	"github.com/mkraev/costlens/internal/client/authority"
	"github.com/mkraev/costlens/internal/client/models"
)

// Scope is the effective set of account identifiers for one data request.
// An empty scope means "no accessible accounts" and must yield an empty
// result downstream — never "all accounts".
type Scope []int64

// IsEmpty reports whether the scope grants access to nothing.
func (s Scope) IsEmpty() bool {
	return len(s) == 0
}

// Param renders the scope as the comma-separated account_ids request
// parameter. Empty scope renders as "" and callers must short-circuit
// instead of sending it.
func (s Scope) Param() string {
	parts := make([]string, len(s))
	for i, id := range s {
		parts[i] = strconv.FormatInt(id, 10)
	}
	return strings.Join(parts, ",")
}

// Resolve computes the effective scope for user with an optional explicit
// single-account filter (0 means none).
//
// With a filter set the scope is exactly that account; membership in the
// user's accounts is not re-validated here. The selector never offers
// out-of-scope options, and the authority rejects anything else. With no
// filter the scope is the user's full account set, empty included.
// A nil user resolves to the empty scope.
func Resolve(user *models.User, explicit int64) Scope {
	if user == nil {
		return Scope{}
	}
	if explicit != 0 {
		return Scope{explicit}
	}
	out := make(Scope, len(user.AccountIDs))
	copy(out, user.AccountIDs)
	return out
}

// Option is one entry of the account selector.
type Option struct {
	ID   int64
	Name string
}

// Options populates the account selector from the authority's account
// listing. When the listing is denied (non-admin caller) the selector
// degrades to no options instead of failing the page. Non-admin users only
// see accounts inside their own scope.
func Options(ctx context.Context, client authority.Client, user *models.User) ([]Option, error) {
	if user == nil {
		return nil, nil
	}

	accounts, err := client.Accounts(ctx)
	if err != nil {
		if errors.Is(err, authority.ErrScopeDenied) || errors.Is(err, authority.ErrUnauthorized) {
			return nil, nil
		}
		return nil, err
	}

	options := make([]Option, 0, len(accounts))
	for _, a := range accounts {
		if !user.IsAdmin && !user.HasAccount(a.ID) {
			continue
		}
		name := a.AccountName
		if name == "" {
			name = a.AccountID
		}
		options = append(options, Option{ID: a.ID, Name: name})
	}
	return options, nil
}
