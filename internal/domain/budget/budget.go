package budget

import (
	"time"

	"github.com/oklog/ulid/v2"
)

type Budget struct {
	Id           ulid.ULID `gorm:"type:varchar(26);primaryKey" json:"id"`
	UserId       ulid.ULID `gorm:"type:varchar(26);index:idx_budgets_user_id;not null" json:"userId"`
	CategoryId   ulid.ULID `gorm:"type:varchar(26);not null;index:idx_budgets_user_period,unique" json:"categoryId"`
	CategoryName string    `gorm:"-" json:"categoryName,omitempty"`
	Amount       float64   `gorm:"type:decimal(15,2);not null" json:"amount"`
	Month        int       `gorm:"type:integer;not null;index:idx_budgets_user_period,unique" json:"month"`
	Year         int       `gorm:"type:integer;not null;index:idx_budgets_user_period,unique" json:"year"`
	AlertAt      float64   `gorm:"type:decimal(5,2);default:80" json:"alertAt"`
	CreatedAt    time.Time `gorm:"autoCreateTime;not null" json:"createdAt"`
	UpdatedAt    time.Time `gorm:"autoUpdateTime;not null" json:"updatedAt"`

	// Spent é derivado das transações do período a cada leitura.
	Spent float64 `gorm:"-" json:"spent"`
}

func (Budget) TableName() string {
	return "budgets"
}

func (b *Budget) GetPercentage() float64 {
	if b.Amount == 0 {
		return 0
	}
	return (b.Spent / b.Amount) * 100
}

func (b *Budget) GetRemaining() float64 {
	remaining := b.Amount - b.Spent
	if remaining < 0 {
		return 0
	}
	return remaining
}

func (b *Budget) GetStatus() string {
	percentage := b.GetPercentage()
	if percentage >= 100 {
		return "exceeded"
	} else if percentage >= b.AlertAt {
		return "warning"
	}
	return "ok"
}
