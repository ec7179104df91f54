package account_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mcdaley/dough-app/internal/errs"
	"github.com/mcdaley/dough-app/internal/ledger"
	"github.com/mcdaley/dough-app/internal/service/account"
	"github.com/mcdaley/dough-app/internal/storage/memory"
)

func newService(t *testing.T) (account.Service, *memory.Store, ledger.User) {
	t.Helper()
	store := memory.New()
	user := ledger.User{ID: uuid.New()}
	store.SeedUser(user)
	return account.New(store, store), store, user
}

func TestCreateDefaults(t *testing.T) {
	svc, _, user := newService(t)

	acc, err := svc.Create(context.Background(), ledger.Account{
		UserID: user.ID,
		Name:   "  Vacation Fund  ",
	})
	require.NoError(t, err)
	assert.Equal(t, "Vacation Fund", acc.Name)
	assert.Equal(t, ledger.AccountTypeChecking, acc.Type)
	assert.True(t, acc.InitialBalance.IsZero())
	assert.False(t, acc.InitialDate.IsZero())
	assert.NotEqual(t, uuid.Nil, acc.ID)
}

func TestCreateValidation(t *testing.T) {
	svc, _, user := newService(t)
	ctx := context.Background()

	_, err := svc.Create(ctx, ledger.Account{UserID: user.ID})
	var verr *errs.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "name", verr.Field)

	_, err = svc.Create(ctx, ledger.Account{UserID: user.ID, Name: "X", Type: "Offshore"})
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "type", verr.Field)

	_, err = svc.Create(ctx, ledger.Account{
		UserID:         user.ID,
		Name:           "X",
		InitialBalance: decimal.NewFromInt(-5),
	})
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "initial_balance", verr.Field)
}

func TestUpdatePartial(t *testing.T) {
	svc, _, user := newService(t)
	ctx := context.Background()

	acc, err := svc.Create(ctx, ledger.Account{UserID: user.ID, Name: "Old", Type: ledger.AccountTypeSavings})
	require.NoError(t, err)

	name := "New"
	got, err := svc.Update(ctx, user.ID, acc.ID, account.Update{Name: &name})
	require.NoError(t, err)
	assert.Equal(t, "New", got.Name)
	assert.Equal(t, ledger.AccountTypeSavings, got.Type, "untouched fields keep their values")

	// the kind is re-validated on update
	bad := ledger.AccountType("Mattress")
	_, err = svc.Update(ctx, user.ID, acc.ID, account.Update{Type: &bad})
	var verr *errs.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "type", verr.Field)

	// unknown account
	_, err = svc.Update(ctx, user.ID, uuid.New(), account.Update{Name: &name})
	assert.ErrorIs(t, err, errs.ErrNotFound)
}

func TestDeleteDoesNotCascade(t *testing.T) {
	svc, store, user := newService(t)
	ctx := context.Background()

	acc, err := svc.Create(ctx, ledger.Account{UserID: user.ID, Name: "Doomed"})
	require.NoError(t, err)
	_, err = store.CreateTransaction(ctx, ledger.Transaction{
		ID:        uuid.New(),
		AccountID: acc.ID,
		UserID:    user.ID,
		Direction: ledger.DirectionDebit,
		Amount:    decimal.NewFromInt(-10),
	})
	require.NoError(t, err)

	_, err = svc.Delete(ctx, user.ID, acc.ID)
	require.NoError(t, err)

	_, err = svc.Get(ctx, user.ID, acc.ID)
	assert.ErrorIs(t, err, errs.ErrNotFound)
	assert.Equal(t, 1, store.OrphanedTransactionCount(), "transactions must survive the account")
}

func TestOwnershipScoping(t *testing.T) {
	svc, _, user := newService(t)
	ctx := context.Background()

	acc, err := svc.Create(ctx, ledger.Account{UserID: user.ID, Name: "Mine"})
	require.NoError(t, err)

	stranger := uuid.New()
	_, err = svc.Get(ctx, stranger, acc.ID)
	assert.ErrorIs(t, err, errs.ErrNotFound, "another user's lookup must not resolve the account")

	accs, err := svc.List(ctx, stranger)
	require.NoError(t, err)
	assert.Empty(t, accs)
}
