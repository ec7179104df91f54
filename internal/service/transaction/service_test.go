package transaction_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mcdaley/dough-app/internal/errs"
	"github.com/mcdaley/dough-app/internal/ledger"
	"github.com/mcdaley/dough-app/internal/service/transaction"
	"github.com/mcdaley/dough-app/internal/storage/memory"
)

func newService(t *testing.T) (transaction.Service, *memory.Store, ledger.User, ledger.Account) {
	t.Helper()
	store := memory.New()
	user := ledger.User{ID: uuid.New()}
	store.SeedUser(user)
	acc := ledger.Account{
		ID:     uuid.New(),
		UserID: user.ID,
		Name:   "Checking",
		Type:   ledger.AccountTypeChecking,
	}
	store.SeedAccount(acc)
	return transaction.New(store, store), store, user, acc
}

func day(t *testing.T, date string) time.Time {
	t.Helper()
	d, err := time.Parse("2006-01-02", date)
	require.NoError(t, err)
	return d
}

func TestCreateNormalizes(t *testing.T) {
	svc, _, user, acc := newService(t)
	ctx := context.Background()

	txn, err := svc.Create(ctx, transaction.CreateInput{
		AccountID:   acc.ID,
		UserID:      user.ID,
		Description: "Groceries",
		Direction:   "debit",
		Magnitude:   decimal.NewFromInt(45),
	})
	require.NoError(t, err)
	assert.Equal(t, ledger.DirectionDebit, txn.Direction)
	assert.True(t, txn.Amount.Equal(decimal.NewFromInt(-45)))
	assert.False(t, txn.Date.IsZero(), "omitted date defaults to now")

	// an unrecognized direction token silently becomes a debit
	txn, err = svc.Create(ctx, transaction.CreateInput{
		AccountID:   acc.ID,
		UserID:      user.ID,
		Description: "Typo",
		Direction:   "dbit",
		Magnitude:   decimal.NewFromInt(50),
	})
	require.NoError(t, err)
	assert.Equal(t, ledger.DirectionDebit, txn.Direction)
	assert.True(t, txn.Amount.Equal(decimal.NewFromInt(-50)))
}

func TestCreateRejections(t *testing.T) {
	svc, _, user, acc := newService(t)
	ctx := context.Background()

	// description is required and trimmed before the check
	_, err := svc.Create(ctx, transaction.CreateInput{
		AccountID:   acc.ID,
		UserID:      user.ID,
		Description: "   ",
		Direction:   "credit",
		Magnitude:   decimal.NewFromInt(10),
	})
	var verr *errs.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "description", verr.Field)

	// unresolved account
	_, err = svc.Create(ctx, transaction.CreateInput{
		AccountID:   uuid.New(),
		UserID:      user.ID,
		Description: "Lost",
		Direction:   "debit",
		Magnitude:   decimal.NewFromInt(10),
	})
	assert.ErrorIs(t, err, errs.ErrNotFound)

	// an account owned by someone else does not resolve either
	_, err = svc.Create(ctx, transaction.CreateInput{
		AccountID:   acc.ID,
		UserID:      uuid.New(),
		Description: "Not yours",
		Direction:   "debit",
		Magnitude:   decimal.NewFromInt(10),
	})
	assert.ErrorIs(t, err, errs.ErrNotFound)
}

func TestListWithBalance(t *testing.T) {
	svc, _, user, acc := newService(t)
	ctx := context.Background()

	seed := []struct {
		date      string
		direction string
		magnitude int64
	}{
		{"2020-03-01", "credit", 500},
		{"2020-03-17", "debit", 0},
		{"2020-03-17", "debit", 45},
		{"2020-03-24", "debit", 75},
	}
	for _, s := range seed {
		_, err := svc.Create(ctx, transaction.CreateInput{
			AccountID:   acc.ID,
			UserID:      user.ID,
			Description: "seed",
			Date:        day(t, s.date),
			Direction:   s.direction,
			Magnitude:   decimal.NewFromInt(s.magnitude),
		})
		require.NoError(t, err)
	}

	led, err := svc.ListWithBalance(ctx, user.ID, acc.ID)
	require.NoError(t, err)
	assert.Equal(t, acc.ID, led.Account.ID)
	require.Len(t, led.Lines, 4)

	wantBalances := []string{"380", "455", "455", "500"}
	for i, want := range wantBalances {
		assert.Equal(t, want, led.Lines[i].Balance.String(), "line %d", i)
	}

	// a second read of the unchanged set projects identically
	again, err := svc.ListWithBalance(ctx, user.ID, acc.ID)
	require.NoError(t, err)
	for i := range led.Lines {
		assert.Equal(t, led.Lines[i].ID, again.Lines[i].ID)
		assert.True(t, led.Lines[i].Balance.Equal(again.Lines[i].Balance))
	}
}

func TestDeleteLeavesOtherAmountsAlone(t *testing.T) {
	svc, _, user, acc := newService(t)
	ctx := context.Background()

	first, err := svc.Create(ctx, transaction.CreateInput{
		AccountID: acc.ID, UserID: user.ID, Description: "Keep",
		Date: day(t, "2020-01-01"), Direction: "credit", Magnitude: decimal.NewFromInt(100),
	})
	require.NoError(t, err)
	second, err := svc.Create(ctx, transaction.CreateInput{
		AccountID: acc.ID, UserID: user.ID, Description: "Drop",
		Date: day(t, "2020-01-02"), Direction: "debit", Magnitude: decimal.NewFromInt(30),
	})
	require.NoError(t, err)

	_, err = svc.Delete(ctx, user.ID, acc.ID, second.ID)
	require.NoError(t, err)

	led, err := svc.ListWithBalance(ctx, user.ID, acc.ID)
	require.NoError(t, err)
	require.Len(t, led.Lines, 1)
	assert.Equal(t, first.ID, led.Lines[0].ID)
	assert.True(t, led.Lines[0].Amount.Equal(decimal.NewFromInt(100)), "stored amounts are untouched by deletes")
	assert.Equal(t, "100", led.Lines[0].Balance.String())

	_, err = svc.Get(ctx, user.ID, acc.ID, second.ID)
	assert.ErrorIs(t, err, errs.ErrNotFound)
}
