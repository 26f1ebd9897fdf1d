package billing

import (
	"time"

	"github.com/robsonsvicero/financassimples/internal/domain/card"
)

// ResolveDueDate calcula o vencimento de uma compra no cartão.
//
// Regra do ciclo: a fatura de um ciclo vence sempre no mês seguinte ao
// mês-base do ciclo. Compra antes do fechamento pertence ao ciclo corrente e
// vence no mês seguinte; compra NO dia do fechamento ou depois rola para o
// próximo ciclo e vence dois meses à frente. O limite é inclusivo (>=) por
// decisão de produto, uniforme em todos os consumidores. installmentOffset
// desloca o resultado em meses-calendário, uma fatura por parcela. O dia de
// vencimento é ajustado para o último dia do mês quando o mês-alvo é mais
// curto.
func ResolveDueDate(purchaseDate time.Time, c *card.CreditCard, installmentOffset int) time.Time {
	purchaseDate = Noon(purchaseDate)

	targetYear := purchaseDate.Year()
	targetMonth := int(purchaseDate.Month()) + 1

	if purchaseDate.Day() >= c.ClosingDay {
		targetMonth++
	}

	targetMonth += installmentOffset

	for targetMonth > 12 {
		targetMonth -= 12
		targetYear++
	}
	for targetMonth < 1 {
		targetMonth += 12
		targetYear--
	}

	month := time.Month(targetMonth)
	day := clampDay(targetYear, month, c.DueDay)
	return time.Date(targetYear, month, day, 12, 0, 0, 0, time.UTC)
}
