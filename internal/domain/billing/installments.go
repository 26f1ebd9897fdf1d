package billing

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/robsonsvicero/financassimples/internal/domain/card"
	appErrors "github.com/robsonsvicero/financassimples/internal/errors"
)

// Installment é uma fração datada de uma compra parcelada, ainda sem
// identidade: o billing.Service materializa cada uma como Transaction.
type Installment struct {
	Amount  float64
	DueDate time.Time
	// Number/Of são 1-based e valem zero para compra à vista: compra sem
	// parcelamento não é "parcela 1 de 1", os marcadores ficam ausentes.
	Number int
	Of     int
}

// SplitInstallments divide o valor total em count parcelas mensais.
//
// O rateio é exato ao centavo: base = round(total/count, 2) e o resto da
// divisão vai inteiro para a primeira parcela, de modo que a soma das
// parcelas reproduz o total sem deriva de arredondamento.
func SplitInstallments(total float64, count int, purchaseDate time.Time, c *card.CreditCard) ([]Installment, error) {
	if total <= 0 {
		return nil, appErrors.NewValidationError("amount", "deve ser maior que zero")
	}
	if count < 1 {
		return nil, appErrors.NewValidationError("installments", "deve ser no mínimo 1")
	}

	totalDec := decimal.NewFromFloat(total).Round(2)
	base := totalDec.Div(decimal.NewFromInt(int64(count))).Round(2)
	remainder := totalDec.Sub(base.Mul(decimal.NewFromInt(int64(count))))

	installments := make([]Installment, 0, count)
	for i := 0; i < count; i++ {
		amount := base
		if i == 0 {
			amount = base.Add(remainder)
		}

		inst := Installment{
			Amount:  amount.InexactFloat64(),
			DueDate: ResolveDueDate(purchaseDate, c, i),
		}
		if count > 1 {
			inst.Number = i + 1
			inst.Of = count
		}
		installments = append(installments, inst)
	}

	return installments, nil
}
