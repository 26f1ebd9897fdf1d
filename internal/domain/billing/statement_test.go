package billing_test

import (
	"testing"
	"time"

	"github.com/oklog/ulid/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/robsonsvicero/financassimples/internal/domain/billing"
	"github.com/robsonsvicero/financassimples/internal/domain/card"
	"github.com/robsonsvicero/financassimples/internal/domain/transaction"
	"github.com/robsonsvicero/financassimples/internal/pkg"
)

func creditTx(cardID ulid.ULID, amount float64, purchase, due time.Time, isPaid bool) *transaction.Transaction {
	dueDate := due
	return &transaction.Transaction{
		Id:            pkg.GenerateULIDObject(),
		Description:   "compra teste",
		Amount:        amount,
		Date:          purchase,
		DueDate:       &dueDate,
		Type:          transaction.Expense,
		PaymentMethod: transaction.MethodCredit,
		CreditCardId:  &cardID,
		IsPaid:        isPaid,
	}
}

func cashTx(amount float64, date time.Time, typ transaction.Types) *transaction.Transaction {
	return &transaction.Transaction{
		Id:            pkg.GenerateULIDObject(),
		Description:   "movimentação teste",
		Amount:        amount,
		Date:          date,
		Type:          typ,
		PaymentMethod: transaction.MethodPix,
		IsPaid:        true,
	}
}

func namedCard(name string) *card.CreditCard {
	return &card.CreditCard{
		Id:         pkg.GenerateULIDObject(),
		Name:       name,
		ClosingDay: 25,
		DueDay:     3,
		Color:      "bg-purple-600",
	}
}

func TestAggregate_GroupsByCardAndDueDate(t *testing.T) {
	nubank := namedCard("Nubank")
	bradesco := namedCard("Bradesco")
	cards := []*card.CreditCard{nubank, bradesco}

	april := billing.Period{Year: 2024, Month: time.April}
	due := day(2024, time.April, 3)

	transactions := []*transaction.Transaction{
		creditTx(nubank.Id, 50.00, day(2024, time.March, 10), due, false),
		creditTx(nubank.Id, 30.00, day(2024, time.March, 12), due, false),
		creditTx(bradesco.Id, 20.00, day(2024, time.March, 15), day(2024, time.April, 25), false),
	}

	items := billing.Aggregate(transactions, cards, april)
	require.Len(t, items, 2)

	byCard := make(map[ulid.ULID]*billing.Invoice)
	for _, item := range items {
		require.NotNil(t, item.Invoice)
		byCard[item.Invoice.CardId] = item.Invoice
	}

	assert.Equal(t, 80.00, byCard[nubank.Id].Amount)
	assert.Equal(t, 2, byCard[nubank.Id].Count)
	assert.Equal(t, "Nubank", byCard[nubank.Id].CardName)

	assert.Equal(t, 20.00, byCard[bradesco.Id].Amount)
	assert.Equal(t, 1, byCard[bradesco.Id].Count)
}

func TestAggregate_FiltersCreditByDueDateNotPurchaseDate(t *testing.T) {
	c := namedCard("Nubank")
	march := billing.Period{Year: 2024, Month: time.March}
	april := billing.Period{Year: 2024, Month: time.April}

	// Compra em março, vencendo em abril.
	tx := creditTx(c.Id, 100.00, day(2024, time.March, 10), day(2024, time.April, 3), false)
	transactions := []*transaction.Transaction{tx}
	cards := []*card.CreditCard{c}

	assert.Empty(t, billing.Aggregate(transactions, cards, march))
	assert.Len(t, billing.Aggregate(transactions, cards, april), 1)
}

func TestAggregate_PassthroughKeepsOwnDate(t *testing.T) {
	march := billing.Period{Year: 2024, Month: time.March}

	pix := cashTx(40.00, day(2024, time.March, 8), transaction.Expense)
	salary := cashTx(5000.00, day(2024, time.March, 5), transaction.Income)
	outOfPeriod := cashTx(10.00, day(2024, time.February, 8), transaction.Expense)

	items := billing.Aggregate(
		[]*transaction.Transaction{pix, salary, outOfPeriod},
		nil,
		march,
	)
	require.Len(t, items, 2)
	for _, item := range items {
		assert.Nil(t, item.Invoice)
	}
}

func TestAggregate_Completeness(t *testing.T) {
	// Nenhuma transação do período se perde nem duplica: a contagem dos
	// membros das faturas mais os itens avulsos bate com a entrada.
	c := namedCard("Nubank")
	april := billing.Period{Year: 2024, Month: time.April}
	due := day(2024, time.April, 3)

	transactions := []*transaction.Transaction{
		creditTx(c.Id, 10.00, day(2024, time.March, 1), due, false),
		creditTx(c.Id, 20.00, day(2024, time.March, 2), due, false),
		creditTx(c.Id, 30.00, day(2024, time.March, 3), day(2024, time.May, 3), false),
		cashTx(40.00, day(2024, time.April, 8), transaction.Expense),
		cashTx(50.00, day(2024, time.April, 9), transaction.Income),
	}

	items := billing.Aggregate(transactions, []*card.CreditCard{c}, april)

	members, passthrough := 0, 0
	for _, item := range items {
		if item.Invoice != nil {
			members += item.Invoice.Count
		} else {
			passthrough++
		}
	}
	assert.Equal(t, 2, members)
	assert.Equal(t, 2, passthrough)
}

func TestAggregate_PaidStateIsANDReduction(t *testing.T) {
	c := namedCard("Nubank")
	april := billing.Period{Year: 2024, Month: time.April}
	due := day(2024, time.April, 3)

	paid := creditTx(c.Id, 10.00, day(2024, time.March, 1), due, true)
	alsoPaid := creditTx(c.Id, 20.00, day(2024, time.March, 2), due, true)

	items := billing.Aggregate([]*transaction.Transaction{paid, alsoPaid}, []*card.CreditCard{c}, april)
	require.Len(t, items, 1)
	assert.True(t, items[0].Invoice.IsPaid)

	// Um membro voltando a pendente derruba a fatura na agregação seguinte.
	alsoPaid.IsPaid = false
	items = billing.Aggregate([]*transaction.Transaction{paid, alsoPaid}, []*card.CreditCard{c}, april)
	require.Len(t, items, 1)
	assert.False(t, items[0].Invoice.IsPaid)
}

func TestAggregate_RemovedCardPlaceholder(t *testing.T) {
	ghost := pkg.GenerateULIDObject()
	april := billing.Period{Year: 2024, Month: time.April}

	tx := creditTx(ghost, 75.00, day(2024, time.March, 10), day(2024, time.April, 3), false)

	items := billing.Aggregate([]*transaction.Transaction{tx}, nil, april)
	require.Len(t, items, 1)
	require.NotNil(t, items[0].Invoice)
	assert.Equal(t, billing.RemovedCardName, items[0].Invoice.CardName)
	assert.Equal(t, 75.00, items[0].Invoice.Amount)
}

func TestAggregate_CreditWithoutDueDateFallsThrough(t *testing.T) {
	// Despesa de crédito sem vencimento é inconsistência de dados: aparece
	// como linha crua no mês da compra, nunca somada a uma fatura.
	c := namedCard("Nubank")
	cardID := c.Id
	march := billing.Period{Year: 2024, Month: time.March}

	broken := &transaction.Transaction{
		Id:            pkg.GenerateULIDObject(),
		Description:   "registro sem vencimento",
		Amount:        99.00,
		Date:          day(2024, time.March, 10),
		Type:          transaction.Expense,
		PaymentMethod: transaction.MethodCredit,
		CreditCardId:  &cardID,
	}

	items := billing.Aggregate([]*transaction.Transaction{broken}, []*card.CreditCard{c}, march)
	require.Len(t, items, 1)
	assert.Nil(t, items[0].Invoice)
	assert.Equal(t, broken.Id, items[0].Transaction.Id)
}

func TestAggregate_SortsByEffectiveDateDescending(t *testing.T) {
	c := namedCard("Nubank")
	april := billing.Period{Year: 2024, Month: time.April}

	invoice := creditTx(c.Id, 10.00, day(2024, time.March, 1), day(2024, time.April, 3), false)
	early := cashTx(20.00, day(2024, time.April, 1), transaction.Expense)
	late := cashTx(30.00, day(2024, time.April, 20), transaction.Expense)

	items := billing.Aggregate([]*transaction.Transaction{invoice, early, late}, []*card.CreditCard{c}, april)
	require.Len(t, items, 3)

	assert.Equal(t, day(2024, time.April, 20), items[0].EffectiveDate())
	assert.Equal(t, day(2024, time.April, 3), items[1].EffectiveDate())
	assert.Equal(t, day(2024, time.April, 1), items[2].EffectiveDate())
}

func TestInvoiceTargets_MatchesCardAndDueDate(t *testing.T) {
	c := namedCard("Nubank")
	other := namedCard("Bradesco")
	due := day(2024, time.April, 3)

	member1 := creditTx(c.Id, 10.00, day(2024, time.March, 1), due, false)
	member2 := creditTx(c.Id, 20.00, day(2024, time.March, 2), due, true)
	otherInvoice := creditTx(c.Id, 30.00, day(2024, time.March, 3), day(2024, time.May, 3), false)
	otherCard := creditTx(other.Id, 40.00, day(2024, time.March, 4), due, false)

	targets := billing.InvoiceTargets(
		[]*transaction.Transaction{member1, member2, otherInvoice, otherCard},
		c.Id, due,
	)
	require.Len(t, targets, 2)
	assert.Equal(t, member1.Id, targets[0].Id)
	assert.Equal(t, member2.Id, targets[1].Id)
}

func TestNextPaidState_NormalizesNotNegates(t *testing.T) {
	c := namedCard("Nubank")
	due := day(2024, time.April, 3)

	paid := creditTx(c.Id, 10.00, day(2024, time.March, 1), due, true)
	unpaid := creditTx(c.Id, 20.00, day(2024, time.March, 2), due, false)

	// Fatura mista vai para paga; fatura integralmente paga volta a aberta.
	assert.True(t, billing.NextPaidState([]*transaction.Transaction{paid, unpaid}))
	assert.False(t, billing.NextPaidState([]*transaction.Transaction{paid}))
	assert.True(t, billing.NextPaidState([]*transaction.Transaction{unpaid}))
}
