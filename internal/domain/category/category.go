package category

import (
	"time"

	"github.com/oklog/ulid/v2"
)

type Kind string

const (
	KindExpense Kind = "EXPENSE"
	KindIncome  Kind = "INCOME"
	// KindBoth marca categorias válidas para receitas e despesas.
	KindBoth Kind = "BOTH"
)

func (k Kind) IsValid() bool {
	return k == KindExpense || k == KindIncome || k == KindBoth
}

// Accepts indica se a categoria pode classificar uma transação do tipo dado.
func (k Kind) Accepts(transactionType string) bool {
	if k == KindBoth {
		return true
	}
	return string(k) == transactionType
}

type Category struct {
	Id        ulid.ULID `json:"id" gorm:"type:varchar(26);primaryKey"`
	UserId    ulid.ULID `json:"userId" gorm:"type:varchar(26);not null;index:idx_categories_user_name,unique"`
	Name      string    `json:"name" gorm:"type:varchar(100);not null;index:idx_categories_user_name,unique"`
	Icon      string    `json:"icon" gorm:"type:varchar(50)"`
	Color     string    `json:"color" gorm:"type:varchar(30)"`
	Kind      Kind      `json:"type" gorm:"type:varchar(10);not null;default:'EXPENSE'"`
	CreatedAt time.Time `json:"createdAt" gorm:"autoCreateTime;not null"`
	UpdatedAt time.Time `json:"updatedAt" gorm:"autoUpdateTime;not null"`
}

func (Category) TableName() string {
	return "categories"
}

type DefaultDefinition struct {
	Name  string
	Icon  string
	Color string
	Kind  Kind
}

// DefaultCategories é o conjunto criado para toda conta nova.
var DefaultCategories = []DefaultDefinition{
	{Name: "Taxas e Impostos", Icon: "Receipt", Color: "text-red-500", Kind: KindExpense},
	{Name: "Transporte", Icon: "Bus", Color: "text-blue-500", Kind: KindExpense},
	{Name: "Internet", Icon: "Wifi", Color: "text-cyan-500", Kind: KindExpense},
	{Name: "Água", Icon: "Droplets", Color: "text-blue-400", Kind: KindExpense},
	{Name: "Eletricidade", Icon: "Zap", Color: "text-yellow-500", Kind: KindExpense},
	{Name: "Aluguel", Icon: "Home", Color: "text-indigo-500", Kind: KindExpense},
	{Name: "Alimentação", Icon: "Utensils", Color: "text-orange-500", Kind: KindExpense},
	{Name: "Saúde", Icon: "HeartPulse", Color: "text-pink-500", Kind: KindExpense},
	{Name: "Educação", Icon: "GraduationCap", Color: "text-purple-500", Kind: KindExpense},
	{Name: "Lazer", Icon: "Plane", Color: "text-green-500", Kind: KindExpense},
	{Name: "Vestuário", Icon: "Shirt", Color: "text-teal-500", Kind: KindExpense},
	{Name: "Supermercado", Icon: "ShoppingCart", Color: "text-emerald-600", Kind: KindExpense},
	{Name: "Material de Escritório", Icon: "Paperclip", Color: "text-gray-500", Kind: KindExpense},
	{Name: "Outros", Icon: "MoreHorizontal", Color: "text-slate-500", Kind: KindBoth},
	{Name: "Salário", Icon: "DollarSign", Color: "text-green-600", Kind: KindIncome},
}

func IsDefaultCategoryName(name string) bool {
	for _, def := range DefaultCategories {
		if def.Name == name {
			return true
		}
	}
	return false
}
