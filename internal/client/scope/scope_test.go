package scope

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mkraev/costlens/internal/client/authority"
	"github.com/mkraev/costlens/internal/client/models"
)

func alice() *models.User {
	return &models.User{ID: 7, Username: "alice", IsAdmin: false, AccountIDs: []int64{1, 3}}
}

func TestResolve_NoFilter_FullScope(t *testing.T) {
	s := Resolve(alice(), 0)
	require.Equal(t, Scope{1, 3}, s)
	require.Equal(t, "1,3", s.Param())
}

func TestResolve_ExplicitFilter_SingleAccount(t *testing.T) {
	s := Resolve(alice(), 3)
	require.Equal(t, Scope{3}, s)
	require.Equal(t, "3", s.Param())
}

func TestResolve_NilUser_Empty(t *testing.T) {
	require.True(t, Resolve(nil, 0).IsEmpty())
}

func TestResolve_EmptyAccounts_MeansNoData(t *testing.T) {
	u := &models.User{ID: 9, Username: "carol", AccountIDs: nil}
	s := Resolve(u, 0)
	require.True(t, s.IsEmpty())
	require.Empty(t, s.Param())
}

func TestResolve_CopiesUserAccounts(t *testing.T) {
	u := alice()
	s := Resolve(u, 0)
	s[0] = 99
	assert.Equal(t, int64(1), u.AccountIDs[0])
}

// ---- fake authority client for Options ----

type fakeClient struct {
	authority.Client

	accounts    []*models.Account
	accountsErr error
}

func (f *fakeClient) Accounts(context.Context) ([]*models.Account, error) {
	return f.accounts, f.accountsErr
}

func TestOptions_NonAdmin_FilteredToOwnScope(t *testing.T) {
	fc := &fakeClient{accounts: []*models.Account{
		{ID: 1, AccountID: "111111111111", AccountName: "prod"},
		{ID: 2, AccountID: "222222222222", AccountName: "staging"},
		{ID: 3, AccountID: "333333333333", AccountName: "dev"},
	}}

	options, err := Options(context.Background(), fc, alice())
	require.NoError(t, err)
	require.Equal(t, []Option{{ID: 1, Name: "prod"}, {ID: 3, Name: "dev"}}, options)
}

func TestOptions_Admin_SeesAll(t *testing.T) {
	fc := &fakeClient{accounts: []*models.Account{
		{ID: 1, AccountID: "111111111111", AccountName: "prod"},
		{ID: 2, AccountID: "222222222222"},
	}}
	root := &models.User{ID: 1, Username: "root", IsAdmin: true}

	options, err := Options(context.Background(), fc, root)
	require.NoError(t, err)
	// Missing names fall back to the provider account number.
	require.Equal(t, []Option{{ID: 1, Name: "prod"}, {ID: 2, Name: "222222222222"}}, options)
}

func TestOptions_ScopeDenied_DegradesToNoOptions(t *testing.T) {
	fc := &fakeClient{accountsErr: authority.ErrScopeDenied}

	options, err := Options(context.Background(), fc, alice())
	require.NoError(t, err)
	require.Empty(t, options)
}

func TestOptions_TransientError_Propagates(t *testing.T) {
	fc := &fakeClient{accountsErr: &authority.StatusError{StatusCode: 500}}

	_, err := Options(context.Background(), fc, alice())
	require.Error(t, err)
}

func TestOptions_NilUser_NoOptions(t *testing.T) {
	options, err := Options(context.Background(), &fakeClient{}, nil)
	require.NoError(t, err)
	require.Empty(t, options)
}
