package cli

import (
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/mkraev/costlens/internal/client/authority"
	"github.com/mkraev/costlens/internal/client/models"
	"github.com/mkraev/costlens/internal/client/scope"
	"github.com/mkraev/costlens/internal/client/session"
	"github.com/mkraev/costlens/internal/logging"
)

type fakeAuthority struct {
	authority.Client

	loginUser *models.User

	accounts    []*models.Account
	accountsErr error
}

func (f *fakeAuthority) SetToken(string) {}

func (f *fakeAuthority) Login(context.Context, string, string) (string, *models.User, error) {
	return "tok-1", f.loginUser, nil
}

func (f *fakeAuthority) Accounts(context.Context) ([]*models.Account, error) {
	return f.accounts, f.accountsErr
}

type memStore struct{}

func (memStore) Load(context.Context) (string, *models.User, error) { return "", nil, nil }
func (memStore) Save(context.Context, string, *models.User) error   { return nil }
func (memStore) Clear(context.Context) error                        { return nil }

func newTestApp(t *testing.T, fc *fakeAuthority, signIn bool) *App {
	t.Helper()
	log := logging.NewSlogLogger(slog.New(slog.DiscardHandler))
	ctrl := session.NewController(fc, memStore{}, log)
	if signIn {
		require.NoError(t, ctrl.Login(context.Background(), "alice", "secret"))
	}
	return &App{log: log, client: fc, session: ctrl}
}

func TestAccountOptions_ListsCallerScope(t *testing.T) {
	fc := &fakeAuthority{
		loginUser: &models.User{ID: 7, Username: "alice", AccountIDs: []int64{1, 3}},
		accounts: []*models.Account{
			{ID: 1, AccountID: "111111111111", AccountName: "prod"},
			{ID: 2, AccountID: "222222222222", AccountName: "staging"},
			{ID: 3, AccountID: "333333333333", AccountName: "dev"},
		},
	}
	app := newTestApp(t, fc, true)

	options, err := app.accountOptions(context.Background())
	require.NoError(t, err)
	require.Equal(t, []scope.Option{{ID: 1, Name: "prod"}, {ID: 3, Name: "dev"}}, options)
}

func TestAccountOptions_ListingDenied_NoOptions(t *testing.T) {
	fc := &fakeAuthority{
		loginUser:   &models.User{ID: 7, Username: "alice", AccountIDs: []int64{1, 3}},
		accountsErr: authority.ErrScopeDenied,
	}
	app := newTestApp(t, fc, true)

	options, err := app.accountOptions(context.Background())
	require.NoError(t, err, "a denied listing degrades instead of failing")
	require.Empty(t, options)
}

func TestAccountOptions_NotSignedIn(t *testing.T) {
	app := newTestApp(t, &fakeAuthority{}, false)

	options, err := app.accountOptions(context.Background())
	require.NoError(t, err)
	require.Empty(t, options)
}
