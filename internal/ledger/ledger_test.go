package ledger

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fenixlife1978/El-Valle-sub001/internal/models"
	"github.com/fenixlife1978/El-Valle-sub001/internal/period"
)

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func tx(id string, day int, amount string, dir models.Direction) models.Transaction {
	return models.Transaction{
		SourceID:  id,
		Timestamp: time.Date(2024, time.March, day, 0, 0, 0, 0, time.UTC),
		Amount:    d(amount),
		Account:   models.AccountBanco,
		Direction: dir,
	}
}

// Prior balance 100, one credit 250 and one debit 80 in the window ends at
// 270 with totals 250/80.
func TestBuildAccountScenario(t *testing.T) {
	account := BuildAccount(models.AccountBanco, d("100.00"), []models.Transaction{
		tx("payment:1", 5, "250.00", models.DirectionCredit),
		tx("expense:1", 10, "80.00", models.DirectionDebit),
	})

	assert.True(t, account.EndBalance.Equal(d("270.00")), "end balance %s", account.EndBalance)
	assert.True(t, account.TotalCredit.Equal(d("250.00")))
	assert.True(t, account.TotalDebit.Equal(d("80.00")))

	require.Len(t, account.Entries, 2)
	assert.True(t, account.Entries[0].Balance.Equal(d("350.00")))
	assert.True(t, account.Entries[1].Balance.Equal(d("270.00")))
}

func TestBuildAccountEmptyWindow(t *testing.T) {
	account := BuildAccount(models.AccountBanco, d("42.50"), nil)

	assert.True(t, account.EndBalance.Equal(d("42.50")))
	assert.True(t, account.TotalCredit.IsZero())
	assert.True(t, account.TotalDebit.IsZero())
	assert.Empty(t, account.Entries)
}

func TestBuildAccountInvariant(t *testing.T) {
	txs := []models.Transaction{
		tx("a", 3, "12.34", models.DirectionCredit),
		tx("b", 1, "5.00", models.DirectionDebit),
		tx("c", 28, "300.10", models.DirectionCredit),
		tx("d", 15, "99.99", models.DirectionDebit),
		tx("e", 15, "0.01", models.DirectionCredit),
	}

	account := BuildAccount(models.AccountBanco, d("-20"), txs)

	expected := account.StartBalance.Add(account.TotalCredit).Sub(account.TotalDebit)
	assert.True(t, account.EndBalance.Equal(expected),
		"end = start + credit - debit must hold")

	credit, debit := decimal.Zero, decimal.Zero
	for _, entry := range account.Entries {
		credit = credit.Add(entry.Credit)
		debit = debit.Add(entry.Debit)
	}
	assert.True(t, account.TotalCredit.Equal(credit), "totals are exact sums over entries")
	assert.True(t, account.TotalDebit.Equal(debit))
}

// Same-day transactions keep their original stream order; the displayed
// ordering must be deterministic.
func TestBuildAccountStableTies(t *testing.T) {
	account := BuildAccount(models.AccountBanco, decimal.Zero, []models.Transaction{
		tx("first", 5, "1", models.DirectionCredit),
		tx("second", 5, "2", models.DirectionCredit),
		tx("third", 5, "3", models.DirectionCredit),
	})

	require.Len(t, account.Entries, 3)
	assert.Equal(t, "first", account.Entries[0].Transaction.SourceID)
	assert.Equal(t, "second", account.Entries[1].Transaction.SourceID)
	assert.Equal(t, "third", account.Entries[2].Transaction.SourceID)
}

func TestBuildAccountDoesNotMutateInput(t *testing.T) {
	input := []models.Transaction{
		tx("b", 9, "1", models.DirectionCredit),
		tx("a", 2, "1", models.DirectionCredit),
	}

	BuildAccount(models.AccountBanco, decimal.Zero, input)

	assert.Equal(t, "b", input[0].SourceID, "input slice order must stay untouched")
}

func TestBuildAccountIdempotent(t *testing.T) {
	txs := []models.Transaction{
		tx("a", 3, "12.34", models.DirectionCredit),
		tx("b", 1, "5.00", models.DirectionDebit),
		tx("c", 3, "7.77", models.DirectionCredit),
	}

	first := BuildAccount(models.AccountBanco, d("10"), txs)
	second := BuildAccount(models.AccountBanco, d("10"), txs)

	assert.Equal(t, first, second, "same inputs must yield identical output")
}

func TestBuildForWindowPriorBalance(t *testing.T) {
	w, err := period.Resolve(2024, time.March)
	require.NoError(t, err)

	feb := models.Transaction{
		SourceID:  "payment:old",
		Timestamp: time.Date(2024, time.February, 10, 0, 0, 0, 0, time.UTC),
		Amount:    d("100.00"),
		Account:   models.AccountBanco,
		Direction: models.DirectionCredit,
	}

	account := BuildForWindow(models.AccountBanco, []models.Transaction{
		feb,
		tx("payment:new", 5, "250.00", models.DirectionCredit),
		tx("expense:new", 10, "80.00", models.DirectionDebit),
	}, w, nil)

	assert.True(t, account.StartBalance.Equal(d("100.00")), "prior credits feed the start balance")
	assert.True(t, account.EndBalance.Equal(d("270.00")))
}

func TestBuildForWindowCarryForwardWins(t *testing.T) {
	w, err := period.Resolve(2024, time.March)
	require.NoError(t, err)

	carry := d("500.00")
	account := BuildForWindow(models.AccountBanco, []models.Transaction{
		tx("payment:new", 5, "250.00", models.DirectionCredit),
	}, w, &carry)

	assert.True(t, account.StartBalance.Equal(d("500.00")),
		"a snapshot carry-forward overrides the prior sum")
	assert.True(t, account.EndBalance.Equal(d("750.00")))
}

func TestFilterAccount(t *testing.T) {
	banco := tx("a", 1, "1", models.DirectionCredit)
	caja := tx("b", 1, "1", models.DirectionCredit)
	caja.Account = models.AccountCajaChica

	got := FilterAccount([]models.Transaction{banco, caja}, models.AccountBanco)
	require.Len(t, got, 1)
	assert.Equal(t, "a", got[0].SourceID)
}
