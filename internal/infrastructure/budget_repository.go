package infrastructure

import (
	"context"
	"time"

	"github.com/oklog/ulid/v2"
	"gorm.io/gorm"

	"github.com/robsonsvicero/financassimples/internal/domain/budget"
	appErrors "github.com/robsonsvicero/financassimples/internal/errors"
	"github.com/robsonsvicero/financassimples/internal/pkg"
)

type BudgetRepository struct {
	DB *gorm.DB
}

var _ budget.Repository = (*BudgetRepository)(nil)

type budgetDB struct {
	Id         string    `gorm:"type:varchar(26);primaryKey"`
	UserId     string    `gorm:"type:varchar(26);index:idx_budgets_user_id;not null"`
	CategoryId string    `gorm:"type:varchar(26);not null;index:idx_budgets_user_period,unique"`
	Amount     float64   `gorm:"type:decimal(15,2);not null"`
	Month      int       `gorm:"not null;index:idx_budgets_user_period,unique"`
	Year       int       `gorm:"not null;index:idx_budgets_user_period,unique"`
	AlertAt    float64   `gorm:"type:decimal(5,2);default:80"`
	CreatedAt  time.Time `gorm:"autoCreateTime;not null"`
	UpdatedAt  time.Time `gorm:"autoUpdateTime;not null"`
}

func (budgetDB) TableName() string {
	return "budgets"
}

func toDomainBudget(bdb *budgetDB) (*budget.Budget, error) {
	id, err := pkg.ParseULID(bdb.Id)
	if err != nil {
		return nil, appErrors.ErrInternalServer.WithError(err)
	}
	userID, err := pkg.ParseULID(bdb.UserId)
	if err != nil {
		return nil, appErrors.ErrInternalServer.WithError(err)
	}
	categoryID, err := pkg.ParseULID(bdb.CategoryId)
	if err != nil {
		return nil, appErrors.ErrInternalServer.WithError(err)
	}

	return &budget.Budget{
		Id:         id,
		UserId:     userID,
		CategoryId: categoryID,
		Amount:     bdb.Amount,
		Month:      bdb.Month,
		Year:       bdb.Year,
		AlertAt:    bdb.AlertAt,
		CreatedAt:  bdb.CreatedAt,
		UpdatedAt:  bdb.UpdatedAt,
	}, nil
}

func toDBBudget(b *budget.Budget) *budgetDB {
	return &budgetDB{
		Id:         b.Id.String(),
		UserId:     b.UserId.String(),
		CategoryId: b.CategoryId.String(),
		Amount:     b.Amount,
		Month:      b.Month,
		Year:       b.Year,
		AlertAt:    b.AlertAt,
		CreatedAt:  b.CreatedAt,
		UpdatedAt:  b.UpdatedAt,
	}
}

func (r *BudgetRepository) Create(ctx context.Context, b *budget.Budget) error {
	return r.DB.WithContext(ctx).Create(toDBBudget(b)).Error
}

func (r *BudgetRepository) Update(ctx context.Context, b *budget.Budget) error {
	bdb := toDBBudget(b)
	return r.DB.WithContext(ctx).
		Where("id = ? AND user_id = ?", bdb.Id, bdb.UserId).
		Select("amount", "alert_at", "updated_at").
		Updates(bdb).Error
}

func (r *BudgetRepository) Delete(ctx context.Context, budgetID, userID ulid.ULID) error {
	result := r.DB.WithContext(ctx).
		Where("id = ? AND user_id = ?", budgetID.String(), userID.String()).
		Delete(&budgetDB{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *BudgetRepository) GetByIdAndUser(ctx context.Context, budgetID, userID ulid.ULID) (*budget.Budget, error) {
	var bdb budgetDB
	err := r.DB.WithContext(ctx).
		Where("id = ? AND user_id = ?", budgetID.String(), userID.String()).
		First(&bdb).Error
	if err != nil {
		return nil, err
	}
	return toDomainBudget(&bdb)
}

func (r *BudgetRepository) GetByCategoryAndPeriod(ctx context.Context, userID, categoryID ulid.ULID, year, month int) (*budget.Budget, error) {
	var bdb budgetDB
	err := r.DB.WithContext(ctx).
		Where("user_id = ? AND category_id = ? AND year = ? AND month = ?",
			userID.String(), categoryID.String(), year, month).
		First(&bdb).Error
	if err != nil {
		return nil, err
	}
	return toDomainBudget(&bdb)
}

func (r *BudgetRepository) ListByUserAndPeriod(ctx context.Context, userID ulid.ULID, year, month int) ([]*budget.Budget, error) {
	var rows []budgetDB
	err := r.DB.WithContext(ctx).
		Where("user_id = ? AND year = ? AND month = ?", userID.String(), year, month).
		Order("created_at ASC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}

	budgets := make([]*budget.Budget, 0, len(rows))
	for i := range rows {
		b, err := toDomainBudget(&rows[i])
		if err != nil {
			return nil, err
		}
		budgets = append(budgets, b)
	}
	return budgets, nil
}
