package transaction

type Types string

const (
	Income  Types = "INCOME"
	Expense Types = "EXPENSE"
)

func (t Types) IsValid() bool {
	return t == Income || t == Expense
}

type PaymentMethod string

const (
	MethodCash   PaymentMethod = "CASH"
	MethodDebit  PaymentMethod = "DEBIT"
	MethodPix    PaymentMethod = "PIX"
	MethodCredit PaymentMethod = "CREDIT"
)

func (m PaymentMethod) IsValid() bool {
	switch m {
	case MethodCash, MethodDebit, MethodPix, MethodCredit:
		return true
	}
	return false
}

// SettlesInstantly indica se a forma de pagamento liquida no ato: essas
// transações nascem pagas e nunca entram em fatura.
func (m PaymentMethod) SettlesInstantly() bool {
	return m != MethodCredit
}

type ExpenseType string

const (
	ExpenseFixed    ExpenseType = "FIXED"
	ExpenseVariable ExpenseType = "VARIABLE"
)

func (e ExpenseType) IsValid() bool {
	return e == ExpenseFixed || e == ExpenseVariable
}
