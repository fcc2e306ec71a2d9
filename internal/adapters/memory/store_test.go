package memory_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/daftarhq/daftar/internal/adapters/memory"
	"github.com/daftarhq/daftar/internal/core/domain"
	"github.com/daftarhq/daftar/pkg/config"
)

func seedStore(t *testing.T) *memory.Store {
	t.Helper()
	store := memory.NewStore(config.Default())
	store.AddAccount(domain.Account{AccountID: "cash", Code: "1110", Name: "Cash"})
	store.AddAccount(domain.Account{AccountID: "rev", Code: "4100", Name: "Sales"})

	base := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	created := time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC)
	for i, id := range []string{"t1", "t2", "t3"} {
		txn := domain.Transaction{
			TransactionID: id,
			Date:          base.AddDate(0, 0, i),
			Lines: []domain.TransactionLine{
				{AccountID: "cash", Debit: 100},
				{AccountID: "rev", Credit: 100},
			},
		}
		txn.CreatedAt = created.Add(time.Duration(i) * time.Minute)
		store.AddTransaction(txn)
	}
	return store
}

func TestFindAccountByCodeMissing(t *testing.T) {
	store := seedStore(t)
	acc, err := store.FindAccountByCode(context.Background(), "9999")
	require.NoError(t, err)
	assert.Nil(t, acc)
}

func TestJournalPageNewestFirst(t *testing.T) {
	store := seedStore(t)
	from := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2025, 6, 30, 0, 0, 0, 0, time.UTC)

	total, page1, err := store.JournalPage(context.Background(), from, to, 1, 2)
	require.NoError(t, err)
	assert.Equal(t, 3, total)
	require.Len(t, page1, 2)
	assert.Equal(t, "t3", page1[0].TransactionID)
	assert.Equal(t, "t2", page1[1].TransactionID)

	_, page2, err := store.JournalPage(context.Background(), from, to, 2, 2)
	require.NoError(t, err)
	require.Len(t, page2, 1)
	assert.Equal(t, "t1", page2[0].TransactionID)
}

func TestSameDayOrderingFallsBackToCreationTime(t *testing.T) {
	store := memory.NewStore(config.Default())
	store.AddAccount(domain.Account{AccountID: "cash", Code: "1110", Name: "Cash"})

	day := time.Date(2025, 6, 5, 0, 0, 0, 0, time.UTC)
	second := domain.Transaction{
		TransactionID: "later",
		Date:          day,
		Lines:         []domain.TransactionLine{{AccountID: "cash", Debit: 2}},
	}
	second.CreatedAt = day.Add(2 * time.Hour)
	first := domain.Transaction{
		TransactionID: "earlier",
		Date:          day,
		Lines:         []domain.TransactionLine{{AccountID: "cash", Debit: 1}},
	}
	first.CreatedAt = day.Add(1 * time.Hour)
	// Insert out of creation order on purpose.
	store.AddTransaction(second)
	store.AddTransaction(first)

	lines, err := store.AccountLines(context.Background(), "cash", day, day)
	require.NoError(t, err)
	require.Len(t, lines, 2)
	assert.Equal(t, "earlier", lines[0].TransactionID)
	assert.Equal(t, "later", lines[1].TransactionID)
}

func TestTurnoverForAccountBeforeIsExclusive(t *testing.T) {
	store := seedStore(t)
	cutoff := time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC)

	debit, credit, err := store.TurnoverForAccountBefore(context.Background(), "cash", cutoff)
	require.NoError(t, err)
	assert.Equal(t, int64(100), debit)
	assert.Equal(t, int64(0), credit)
}

func TestUpdateApplicationsIsAllOrNothing(t *testing.T) {
	store := memory.NewStore(config.Default())
	app := store.AddApplication(domain.FeeApplication{
		ApplicationID: "a1",
		MethodID:      "m1",
		BankID:        "b1",
		FeeAmount:     100,
		Status:        domain.FeePending,
	})

	changed := app
	changed.FeeAmount = 250
	missing := domain.FeeApplication{ApplicationID: "ghost", MethodID: "m1", BankID: "b1"}

	err := store.UpdateApplications(context.Background(), []domain.FeeApplication{changed, missing})
	require.Error(t, err)

	// The failed batch must not have written the first snapshot either.
	apps, err := store.ListPendingApplications(context.Background(), "m1", "b1")
	require.NoError(t, err)
	require.Len(t, apps, 1)
	assert.Equal(t, int64(100), apps[0].FeeAmount)
}
