package infrastructure

import (
	"context"
	"time"

	"github.com/oklog/ulid/v2"
	"gorm.io/gorm"

	"github.com/robsonsvicero/financassimples/internal/domain/card"
	appErrors "github.com/robsonsvicero/financassimples/internal/errors"
	"github.com/robsonsvicero/financassimples/internal/pkg"
)

type CardRepository struct {
	DB *gorm.DB
}

var _ card.Repository = (*CardRepository)(nil)

type creditCardDB struct {
	Id         string    `gorm:"type:varchar(26);primaryKey"`
	UserId     string    `gorm:"type:varchar(26);index:idx_credit_cards_user_id;not null"`
	Name       string    `gorm:"type:varchar(100);not null"`
	ClosingDay int       `gorm:"not null"`
	DueDay     int       `gorm:"not null"`
	Color      string    `gorm:"type:varchar(50)"`
	CreatedAt  time.Time `gorm:"autoCreateTime;not null"`
	UpdatedAt  time.Time `gorm:"autoUpdateTime;not null"`
}

func (creditCardDB) TableName() string {
	return "credit_cards"
}

func toDomainCard(cdb *creditCardDB) (*card.CreditCard, error) {
	id, err := pkg.ParseULID(cdb.Id)
	if err != nil {
		return nil, appErrors.ErrInternalServer.WithError(err)
	}
	userID, err := pkg.ParseULID(cdb.UserId)
	if err != nil {
		return nil, appErrors.ErrInternalServer.WithError(err)
	}

	return &card.CreditCard{
		Id:         id,
		UserId:     userID,
		Name:       cdb.Name,
		ClosingDay: cdb.ClosingDay,
		DueDay:     cdb.DueDay,
		Color:      cdb.Color,
		CreatedAt:  cdb.CreatedAt,
		UpdatedAt:  cdb.UpdatedAt,
	}, nil
}

func toDBCard(c *card.CreditCard) *creditCardDB {
	return &creditCardDB{
		Id:         c.Id.String(),
		UserId:     c.UserId.String(),
		Name:       c.Name,
		ClosingDay: c.ClosingDay,
		DueDay:     c.DueDay,
		Color:      c.Color,
		CreatedAt:  c.CreatedAt,
		UpdatedAt:  c.UpdatedAt,
	}
}

func (r *CardRepository) Create(ctx context.Context, c *card.CreditCard) error {
	return r.DB.WithContext(ctx).Create(toDBCard(c)).Error
}

func (r *CardRepository) Update(ctx context.Context, c *card.CreditCard) error {
	cdb := toDBCard(c)
	return r.DB.WithContext(ctx).
		Where("id = ? AND user_id = ?", cdb.Id, cdb.UserId).
		Select("name", "closing_day", "due_day", "color", "updated_at").
		Updates(cdb).Error
}

func (r *CardRepository) Delete(ctx context.Context, cardID, userID ulid.ULID) error {
	result := r.DB.WithContext(ctx).
		Where("id = ? AND user_id = ?", cardID.String(), userID.String()).
		Delete(&creditCardDB{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *CardRepository) GetByIdAndUser(ctx context.Context, cardID, userID ulid.ULID) (*card.CreditCard, error) {
	var cdb creditCardDB
	err := r.DB.WithContext(ctx).
		Where("id = ? AND user_id = ?", cardID.String(), userID.String()).
		First(&cdb).Error
	if err != nil {
		return nil, err
	}
	return toDomainCard(&cdb)
}

func (r *CardRepository) ListByUser(ctx context.Context, userID ulid.ULID) ([]*card.CreditCard, error) {
	var rows []creditCardDB
	err := r.DB.WithContext(ctx).
		Where("user_id = ?", userID.String()).
		Order("created_at ASC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}

	cards := make([]*card.CreditCard, 0, len(rows))
	for i := range rows {
		c, err := toDomainCard(&rows[i])
		if err != nil {
			return nil, err
		}
		cards = append(cards, c)
	}
	return cards, nil
}
