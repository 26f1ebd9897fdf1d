package billing

import (
	"sort"
	"time"

	"github.com/oklog/ulid/v2"
	"github.com/shopspring/decimal"

	"github.com/robsonsvicero/financassimples/internal/domain/card"
	"github.com/robsonsvicero/financassimples/internal/domain/transaction"
)

// RemovedCardName é exibido quando a fatura referencia um cartão já excluído.
const RemovedCardName = "Cartão removido"

// Invoice é uma projeção derivada, nunca persistida: recalculada a cada
// leitura a partir do conjunto corrente de transações e descartada depois.
// A identidade é o par (cartão, vencimento).
type Invoice struct {
	CardId    ulid.ULID `json:"cardId"`
	CardName  string    `json:"cardName"`
	CardColor string    `json:"cardColor,omitempty"`
	DueDate   time.Time `json:"dueDate"`
	Amount    float64   `json:"amount"`
	Count     int       `json:"count"`
	// IsPaid é o E lógico sobre os membros.
	IsPaid       bool                       `json:"isPaid"`
	Transactions []*transaction.Transaction `json:"transactions"`
}

// DisplayItem é uma linha da listagem: ou uma fatura agregada ou uma
// transação avulsa, nunca ambos.
type DisplayItem struct {
	Invoice     *Invoice                 `json:"invoice,omitempty"`
	Transaction *transaction.Transaction `json:"transaction,omitempty"`
}

// EffectiveDate é a data de ordenação/filtragem: vencimento para faturas,
// data da movimentação para o resto.
func (d DisplayItem) EffectiveDate() time.Time {
	if d.Invoice != nil {
		return d.Invoice.DueDate
	}
	return d.Transaction.Date
}

// Aggregate dobra as transações de crédito do período em faturas sintéticas e
// mantém as demais como linhas avulsas, tudo ordenado da mais recente para a
// mais antiga.
//
// O recorte de período usa o vencimento para despesas de crédito e a data da
// movimentação para o resto. Transação de crédito sem vencimento gravado não
// é agregada (viraria soma silenciosa de dado inconsistente): ela cai na
// listagem crua, onde a inconsistência fica visível.
func Aggregate(transactions []*transaction.Transaction, cards []*card.CreditCard, period Period) []DisplayItem {
	cardsById := make(map[ulid.ULID]*card.CreditCard, len(cards))
	for _, c := range cards {
		cardsById[c.Id] = c
	}

	type invoiceKey struct {
		cardId  ulid.ULID
		dueDate time.Time
	}

	invoicesByKey := make(map[invoiceKey]*Invoice)
	order := make([]invoiceKey, 0)
	passthrough := make([]*transaction.Transaction, 0)

	for _, t := range transactions {
		if t.IsCreditExpense() && t.DueDate != nil {
			dueDate := Noon(*t.DueDate)
			if !period.Contains(dueDate) {
				continue
			}

			key := invoiceKey{cardId: *t.CreditCardId, dueDate: dueDate}
			invoice, ok := invoicesByKey[key]
			if !ok {
				invoice = &Invoice{
					CardId:   key.cardId,
					CardName: RemovedCardName,
					DueDate:  dueDate,
					IsPaid:   true,
				}
				if c, found := cardsById[key.cardId]; found {
					invoice.CardName = c.Name
					invoice.CardColor = c.Color
				}
				invoicesByKey[key] = invoice
				order = append(order, key)
			}

			invoice.Amount = decimal.NewFromFloat(invoice.Amount).
				Add(decimal.NewFromFloat(t.Amount)).Round(2).InexactFloat64()
			invoice.Count++
			invoice.Transactions = append(invoice.Transactions, t)
			if !t.IsPaid {
				invoice.IsPaid = false
			}
			continue
		}

		if !period.Contains(t.Date) {
			continue
		}
		passthrough = append(passthrough, t)
	}

	items := make([]DisplayItem, 0, len(order)+len(passthrough))
	for _, key := range order {
		items = append(items, DisplayItem{Invoice: invoicesByKey[key]})
	}
	for _, t := range passthrough {
		items = append(items, DisplayItem{Transaction: t})
	}

	sort.SliceStable(items, func(i, j int) bool {
		return items[i].EffectiveDate().After(items[j].EffectiveDate())
	})

	return items
}

// InvoiceTargets devolve todos os membros da fatura identificada por
// (cartão, vencimento), inclusive os que estariam fora de qualquer período de
// exibição: a baixa em massa alcança a fatura inteira.
func InvoiceTargets(transactions []*transaction.Transaction, cardID ulid.ULID, dueDate time.Time) []*transaction.Transaction {
	dueDate = Noon(dueDate)

	members := make([]*transaction.Transaction, 0)
	for _, t := range transactions {
		if !t.IsCreditExpense() || t.DueDate == nil {
			continue
		}
		if *t.CreditCardId == cardID && SameDay(*t.DueDate, dueDate) {
			members = append(members, t)
		}
	}
	return members
}

// NextPaidState define o alvo da baixa em massa: se todos os membros já estão
// pagos, a fatura inteira volta para em aberto; qualquer membro pendente leva
// a fatura inteira para paga. Não é uma negação por membro, é uma
// normalização.
func NextPaidState(members []*transaction.Transaction) bool {
	for _, t := range members {
		if !t.IsPaid {
			return true
		}
	}
	return false
}
