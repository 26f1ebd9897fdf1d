package card

import (
	"time"

	"github.com/oklog/ulid/v2"
)

// CreditCard guarda apenas os parâmetros do ciclo de faturamento. O motor de
// faturas (internal/domain/billing) só depende de ClosingDay e DueDay.
type CreditCard struct {
	Id         ulid.ULID `gorm:"type:varchar(26);primaryKey" json:"id"`
	UserId     ulid.ULID `gorm:"type:varchar(26);index:idx_credit_cards_user_id;not null" json:"userId"`
	Name       string    `gorm:"type:varchar(100);not null" json:"name"`
	ClosingDay int       `gorm:"not null;check:closing_day >= 1 AND closing_day <= 31" json:"closingDay"`
	DueDay     int       `gorm:"not null;check:due_day >= 1 AND due_day <= 31" json:"dueDay"`
	Color      string    `gorm:"type:varchar(50)" json:"color"`
	CreatedAt  time.Time `gorm:"autoCreateTime;not null" json:"createdAt"`
	UpdatedAt  time.Time `gorm:"autoUpdateTime;not null" json:"updatedAt"`
}

func (CreditCard) TableName() string {
	return "credit_cards"
}
