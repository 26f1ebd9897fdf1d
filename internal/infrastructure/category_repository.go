package infrastructure

import (
	"context"
	"time"

	"github.com/oklog/ulid/v2"
	"gorm.io/gorm"

	"github.com/robsonsvicero/financassimples/internal/domain/category"
	appErrors "github.com/robsonsvicero/financassimples/internal/errors"
	"github.com/robsonsvicero/financassimples/internal/pkg"
)

type CategoryRepository struct {
	DB *gorm.DB
}

var _ category.Repository = (*CategoryRepository)(nil)

type categoryDB struct {
	Id        string    `gorm:"type:varchar(26);primaryKey"`
	UserId    string    `gorm:"type:varchar(26);not null;index:idx_categories_user_name,unique"`
	Name      string    `gorm:"type:varchar(100);not null;index:idx_categories_user_name,unique"`
	Icon      string    `gorm:"type:varchar(50)"`
	Color     string    `gorm:"type:varchar(30)"`
	Kind      string    `gorm:"column:kind;type:varchar(10);not null;default:'EXPENSE'"`
	CreatedAt time.Time `gorm:"autoCreateTime;not null"`
	UpdatedAt time.Time `gorm:"autoUpdateTime;not null"`
}

func (categoryDB) TableName() string {
	return "categories"
}

func toDomainCategory(cdb *categoryDB) (*category.Category, error) {
	id, err := pkg.ParseULID(cdb.Id)
	if err != nil {
		return nil, appErrors.ErrInternalServer.WithError(err)
	}
	userID, err := pkg.ParseULID(cdb.UserId)
	if err != nil {
		return nil, appErrors.ErrInternalServer.WithError(err)
	}

	return &category.Category{
		Id:        id,
		UserId:    userID,
		Name:      cdb.Name,
		Icon:      cdb.Icon,
		Color:     cdb.Color,
		Kind:      category.Kind(cdb.Kind),
		CreatedAt: cdb.CreatedAt,
		UpdatedAt: cdb.UpdatedAt,
	}, nil
}

func toDBCategory(c *category.Category) *categoryDB {
	return &categoryDB{
		Id:        c.Id.String(),
		UserId:    c.UserId.String(),
		Name:      c.Name,
		Icon:      c.Icon,
		Color:     c.Color,
		Kind:      string(c.Kind),
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
}

func (r *CategoryRepository) Create(ctx context.Context, c *category.Category) error {
	return r.DB.WithContext(ctx).Create(toDBCategory(c)).Error
}

func (r *CategoryRepository) CreateBatch(ctx context.Context, categories []*category.Category) error {
	if len(categories) == 0 {
		return nil
	}
	rows := make([]*categoryDB, 0, len(categories))
	for _, c := range categories {
		rows = append(rows, toDBCategory(c))
	}
	return r.DB.WithContext(ctx).Create(rows).Error
}

func (r *CategoryRepository) Update(ctx context.Context, c *category.Category) error {
	cdb := toDBCategory(c)
	return r.DB.WithContext(ctx).
		Where("id = ? AND user_id = ?", cdb.Id, cdb.UserId).
		Select("name", "icon", "color", "kind", "updated_at").
		Updates(cdb).Error
}

func (r *CategoryRepository) Delete(ctx context.Context, categoryID, userID ulid.ULID) error {
	result := r.DB.WithContext(ctx).
		Where("id = ? AND user_id = ?", categoryID.String(), userID.String()).
		Delete(&categoryDB{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *CategoryRepository) GetByIdAndUser(ctx context.Context, categoryID, userID ulid.ULID) (*category.Category, error) {
	var cdb categoryDB
	err := r.DB.WithContext(ctx).
		Where("id = ? AND user_id = ?", categoryID.String(), userID.String()).
		First(&cdb).Error
	if err != nil {
		return nil, err
	}
	return toDomainCategory(&cdb)
}

func (r *CategoryRepository) GetByNameAndUser(ctx context.Context, name string, userID ulid.ULID) (*category.Category, error) {
	var cdb categoryDB
	err := r.DB.WithContext(ctx).
		Where("name = ? AND user_id = ?", name, userID.String()).
		First(&cdb).Error
	if err != nil {
		return nil, err
	}
	return toDomainCategory(&cdb)
}

func (r *CategoryRepository) ListByUser(ctx context.Context, userID ulid.ULID) ([]*category.Category, error) {
	var rows []categoryDB
	err := r.DB.WithContext(ctx).
		Where("user_id = ?", userID.String()).
		Order("name ASC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}

	categories := make([]*category.Category, 0, len(rows))
	for i := range rows {
		c, err := toDomainCategory(&rows[i])
		if err != nil {
			return nil, err
		}
		categories = append(categories, c)
	}
	return categories, nil
}

func (r *CategoryRepository) CountByUser(ctx context.Context, userID ulid.ULID) (int64, error) {
	var count int64
	err := r.DB.WithContext(ctx).
		Model(&categoryDB{}).
		Where("user_id = ?", userID.String()).
		Count(&count).Error
	return count, err
}
