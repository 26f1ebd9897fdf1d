package billing_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/robsonsvicero/financassimples/internal/domain/billing"
	"github.com/robsonsvicero/financassimples/internal/domain/card"
	"github.com/robsonsvicero/financassimples/internal/domain/transaction"
)

func installmentTx(c *card.CreditCard, purchase, due time.Time, current, total int) *transaction.Transaction {
	t := creditTx(c.Id, 100.00, purchase, due, false)
	t.InstallmentCurrent = &current
	t.InstallmentTotal = &total
	return t
}

func TestRecalculateDueDates_ReturnsOnlyChanged(t *testing.T) {
	c := testCard(25, 3)

	correct := creditTx(c.Id, 50.00, day(2024, time.March, 20), day(2024, time.April, 3), false)
	stale := creditTx(c.Id, 80.00, day(2024, time.March, 20), day(2024, time.March, 10), false)

	changed := billing.RecalculateDueDates(
		[]*transaction.Transaction{correct, stale},
		[]*card.CreditCard{c},
	)

	require.Len(t, changed, 1)
	assert.Equal(t, stale.Id, changed[0].Id)
	require.NotNil(t, stale.DueDate)
	assert.Equal(t, day(2024, time.April, 3), *stale.DueDate)
}

func TestRecalculateDueDates_Idempotent(t *testing.T) {
	c := testCard(25, 3)

	transactions := []*transaction.Transaction{
		creditTx(c.Id, 50.00, day(2024, time.March, 20), day(2024, time.March, 1), false),
		installmentTx(c, day(2024, time.March, 20), day(2024, time.March, 1), 2, 3),
	}
	cards := []*card.CreditCard{c}

	first := billing.RecalculateDueDates(transactions, cards)
	assert.Len(t, first, 2)

	second := billing.RecalculateDueDates(transactions, cards)
	assert.Empty(t, second)
}

func TestRecalculateDueDates_UsesInstallmentOffset(t *testing.T) {
	c := testCard(25, 3)

	// Terceira parcela de uma compra de 20/03: dois meses além da primeira.
	third := installmentTx(c, day(2024, time.March, 20), day(2024, time.April, 3), 3, 3)

	changed := billing.RecalculateDueDates(
		[]*transaction.Transaction{third},
		[]*card.CreditCard{c},
	)

	require.Len(t, changed, 1)
	assert.Equal(t, day(2024, time.June, 3), *third.DueDate)
}

func TestRecalculateDueDates_SkipsDeletedCards(t *testing.T) {
	c := testCard(25, 3)
	orphan := creditTx(c.Id, 50.00, day(2024, time.March, 20), day(2024, time.March, 1), false)

	changed := billing.RecalculateDueDates([]*transaction.Transaction{orphan}, nil)

	assert.Empty(t, changed)
	assert.Equal(t, day(2024, time.March, 1), *orphan.DueDate)
}

func TestRecalculateDueDates_AppliesUpdatedCardCycle(t *testing.T) {
	c := testCard(25, 3)
	tx := creditTx(c.Id, 50.00, day(2024, time.March, 20), day(2024, time.April, 3), false)
	cards := []*card.CreditCard{c}

	assert.Empty(t, billing.RecalculateDueDates([]*transaction.Transaction{tx}, cards))

	// Usuário corrige o dia de vencimento do cartão: os lançamentos seguem.
	c.DueDay = 10
	changed := billing.RecalculateDueDates([]*transaction.Transaction{tx}, cards)
	require.Len(t, changed, 1)
	assert.Equal(t, day(2024, time.April, 10), *tx.DueDate)
}
