package transaction

import (
	"time"

	"github.com/oklog/ulid/v2"
)

// Transaction é o registro persistido de uma movimentação. Compras
// parceladas geram N registros independentes, ligados pelo ParentId; cada um
// carrega o próprio DueDate resolvido pelo ciclo do cartão.
type Transaction struct {
	Id                 ulid.ULID     `gorm:"type:varchar(26);primaryKey" json:"id"`
	UserId             ulid.ULID     `gorm:"type:varchar(26);index:idx_transactions_user_id,priority:1;index:idx_transactions_user_date;not null" json:"userId"`
	Description        string        `gorm:"type:varchar(255);not null" json:"description"`
	Amount             float64       `gorm:"type:decimal(15,2);not null" json:"amount"`
	Date               time.Time     `gorm:"type:date;not null;index:idx_transactions_user_date,priority:2" json:"date"`
	DueDate            *time.Time    `gorm:"type:date;index:idx_transactions_due_date" json:"dueDate,omitempty"`
	Type               Types         `gorm:"type:varchar(10);not null;index:idx_transactions_type" json:"type"`
	ExpenseType        ExpenseType   `gorm:"type:varchar(10)" json:"expenseType,omitempty"`
	CategoryId         ulid.ULID     `gorm:"type:varchar(26);index:idx_transactions_category_id" json:"categoryId"`
	PaymentMethod      PaymentMethod `gorm:"type:varchar(10);not null" json:"paymentMethod"`
	CreditCardId       *ulid.ULID    `gorm:"type:varchar(26);index:idx_transactions_card_id" json:"creditCardId,omitempty"`
	InstallmentTotal   *int          `gorm:"check:installment_total >= 2" json:"installmentTotal,omitempty"`
	InstallmentCurrent *int          `gorm:"check:installment_current >= 1" json:"installmentCurrent,omitempty"`
	ParentId           *ulid.ULID    `gorm:"type:varchar(26);index:idx_transactions_parent_id" json:"parentId,omitempty"`
	IsPaid             bool          `gorm:"not null;default:false" json:"isPaid"`
	CreatedAt          time.Time     `gorm:"autoCreateTime;not null" json:"createdAt"`
	UpdatedAt          time.Time     `gorm:"autoUpdateTime;not null" json:"updatedAt"`
}

func (Transaction) TableName() string {
	return "transactions"
}

// IsCreditExpense diz se a transação pertence a uma fatura de cartão. A data
// de vencimento é checada à parte: registro de crédito sem DueDate é sinal de
// inconsistência e cai na listagem crua.
func (t *Transaction) IsCreditExpense() bool {
	return t.PaymentMethod == MethodCredit && t.Type == Expense && t.CreditCardId != nil
}
