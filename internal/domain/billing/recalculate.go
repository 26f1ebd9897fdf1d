package billing

import (
	"github.com/oklog/ulid/v2"

	"github.com/robsonsvicero/financassimples/internal/domain/card"
	"github.com/robsonsvicero/financassimples/internal/domain/transaction"
)

// RecalculateDueDates reaplica ResolveDueDate sobre todas as despesas de
// crédito e devolve apenas as transações cujo vencimento gravado diverge do
// recalculado, já com o novo DueDate preenchido. Rodar de novo com os mesmos
// cartões devolve lista vazia, então o reparo pode ser repetido até o
// conjunto inteiro convergir mesmo depois de uma gravação parcial.
//
// O deslocamento de parcela vem do marcador gravado (InstallmentCurrent - 1);
// registros sem marcador são tratados como compra à vista.
func RecalculateDueDates(transactions []*transaction.Transaction, cards []*card.CreditCard) []*transaction.Transaction {
	cardsById := make(map[ulid.ULID]*card.CreditCard, len(cards))
	for _, c := range cards {
		cardsById[c.Id] = c
	}

	changed := make([]*transaction.Transaction, 0)
	for _, t := range transactions {
		if !t.IsCreditExpense() {
			continue
		}
		c, ok := cardsById[*t.CreditCardId]
		if !ok {
			// Cartão excluído: não há mais ciclo para recalcular.
			continue
		}

		offset := 0
		if t.InstallmentCurrent != nil {
			offset = *t.InstallmentCurrent - 1
		}

		dueDate := ResolveDueDate(t.Date, c, offset)
		if t.DueDate != nil && SameDay(*t.DueDate, dueDate) {
			continue
		}

		t.DueDate = &dueDate
		changed = append(changed, t)
	}

	return changed
}
