package infrastructure

import (
	"context"
	"time"

	"github.com/oklog/ulid/v2"
	"gorm.io/gorm"

	"github.com/robsonsvicero/financassimples/internal/domain/transaction"
	appErrors "github.com/robsonsvicero/financassimples/internal/errors"
	"github.com/robsonsvicero/financassimples/internal/pkg"
	"github.com/robsonsvicero/financassimples/internal/pkg/query"
)

type TransactionRepository struct {
	DB *gorm.DB
}

var _ transaction.Repository = (*TransactionRepository)(nil)

type transactionDB struct {
	Id                 string     `gorm:"type:varchar(26);primaryKey"`
	UserId             string     `gorm:"type:varchar(26);index;not null"`
	Description        string     `gorm:"type:varchar(255);not null"`
	Amount             float64    `gorm:"type:decimal(15,2);not null"`
	Date               time.Time  `gorm:"type:date;not null"`
	DueDate            *time.Time `gorm:"type:date;index"`
	Type               string     `gorm:"type:varchar(10);not null"`
	ExpenseType        string     `gorm:"type:varchar(10)"`
	CategoryId         string     `gorm:"type:varchar(26);index"`
	PaymentMethod      string     `gorm:"type:varchar(10);not null"`
	CreditCardId       *string    `gorm:"type:varchar(26);index"`
	InstallmentTotal   *int       ``
	InstallmentCurrent *int       ``
	ParentId           *string    `gorm:"type:varchar(26);index"`
	IsPaid             bool       `gorm:"not null;default:false"`
	CreatedAt          time.Time  `gorm:"not null"`
	UpdatedAt          time.Time  `gorm:"not null"`
}

func (transactionDB) TableName() string {
	return "transactions"
}

func toDomainTransaction(tdb *transactionDB) (*transaction.Transaction, error) {
	id, err := pkg.ParseULID(tdb.Id)
	if err != nil {
		return nil, appErrors.ErrInternalServer.WithError(err)
	}
	userID, err := pkg.ParseULID(tdb.UserId)
	if err != nil {
		return nil, appErrors.ErrInternalServer.WithError(err)
	}

	var categoryID ulid.ULID
	if tdb.CategoryId != "" {
		categoryID, err = pkg.ParseULID(tdb.CategoryId)
		if err != nil {
			return nil, appErrors.ErrInternalServer.WithError(err)
		}
	}

	cardID, err := pkg.ParseULIDPtr(tdb.CreditCardId)
	if err != nil {
		return nil, appErrors.ErrInternalServer.WithError(err)
	}
	parentID, err := pkg.ParseULIDPtr(tdb.ParentId)
	if err != nil {
		return nil, appErrors.ErrInternalServer.WithError(err)
	}

	return &transaction.Transaction{
		Id:                 id,
		UserId:             userID,
		Description:        tdb.Description,
		Amount:             tdb.Amount,
		Date:               tdb.Date,
		DueDate:            tdb.DueDate,
		Type:               transaction.Types(tdb.Type),
		ExpenseType:        transaction.ExpenseType(tdb.ExpenseType),
		CategoryId:         categoryID,
		PaymentMethod:      transaction.PaymentMethod(tdb.PaymentMethod),
		CreditCardId:       cardID,
		InstallmentTotal:   tdb.InstallmentTotal,
		InstallmentCurrent: tdb.InstallmentCurrent,
		ParentId:           parentID,
		IsPaid:             tdb.IsPaid,
		CreatedAt:          tdb.CreatedAt,
		UpdatedAt:          tdb.UpdatedAt,
	}, nil
}

func toDBTransaction(t *transaction.Transaction) *transactionDB {
	var categoryID string
	if !pkg.IsEmptyULID(t.CategoryId) {
		categoryID = t.CategoryId.String()
	}

	var cardID *string
	if t.CreditCardId != nil {
		s := t.CreditCardId.String()
		cardID = &s
	}
	var parentID *string
	if t.ParentId != nil {
		s := t.ParentId.String()
		parentID = &s
	}

	return &transactionDB{
		Id:                 t.Id.String(),
		UserId:             t.UserId.String(),
		Description:        t.Description,
		Amount:             t.Amount,
		Date:               t.Date,
		DueDate:            t.DueDate,
		Type:               string(t.Type),
		ExpenseType:        string(t.ExpenseType),
		CategoryId:         categoryID,
		PaymentMethod:      string(t.PaymentMethod),
		CreditCardId:       cardID,
		InstallmentTotal:   t.InstallmentTotal,
		InstallmentCurrent: t.InstallmentCurrent,
		ParentId:           parentID,
		IsPaid:             t.IsPaid,
		CreatedAt:          t.CreatedAt,
		UpdatedAt:          t.UpdatedAt,
	}
}

func (r *TransactionRepository) Create(ctx context.Context, t *transaction.Transaction) error {
	return r.DB.WithContext(ctx).Create(toDBTransaction(t)).Error
}

func (r *TransactionRepository) CreateBatch(ctx context.Context, transactions []*transaction.Transaction) error {
	if len(transactions) == 0 {
		return nil
	}
	rows := make([]*transactionDB, 0, len(transactions))
	for _, t := range transactions {
		rows = append(rows, toDBTransaction(t))
	}
	// Parcelas da mesma compra entram juntas ou não entram.
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Create(rows).Error
	})
}

func (r *TransactionRepository) Update(ctx context.Context, t *transaction.Transaction) error {
	tdb := toDBTransaction(t)
	return r.DB.WithContext(ctx).
		Where("id = ? AND user_id = ?", tdb.Id, tdb.UserId).
		Select("description", "amount", "date", "due_date", "type", "expense_type",
			"category_id", "payment_method", "is_paid", "updated_at").
		Updates(tdb).Error
}

func (r *TransactionRepository) Delete(ctx context.Context, transactionID, userID ulid.ULID) error {
	result := r.DB.WithContext(ctx).
		Where("id = ? AND user_id = ?", transactionID.String(), userID.String()).
		Delete(&transactionDB{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *TransactionRepository) GetByIdAndUser(ctx context.Context, transactionID, userID ulid.ULID) (*transaction.Transaction, error) {
	var tdb transactionDB
	err := r.DB.WithContext(ctx).
		Where("id = ? AND user_id = ?", transactionID.String(), userID.String()).
		First(&tdb).Error
	if err != nil {
		return nil, err
	}
	return toDomainTransaction(&tdb)
}

func (r *TransactionRepository) ListByUser(ctx context.Context, userID ulid.ULID, filter *transaction.ListFilter) ([]*transaction.Transaction, error) {
	var rows []transactionDB
	err := r.filtered(ctx, userID, filter).
		Order("date DESC, id DESC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return toDomainTransactions(rows)
}

func (r *TransactionRepository) ListPaged(ctx context.Context, userID ulid.ULID, filter *transaction.ListFilter, pagination *pkg.PaginationParams) ([]*transaction.Transaction, int64, error) {
	q := query.New[transactionDB](r.DB, "transactions").
		Context(ctx).
		Where("user_id = ?", userID.String()).
		Order("date DESC, id DESC")
	if filter != nil {
		if filter.Search != "" {
			q = q.Where("description ILIKE ?", "%"+filter.Search+"%")
		}
		if filter.Type != "" {
			q = q.Where("type = ?", string(filter.Type))
		}
	}

	result, err := query.Paginate(q, query.NewPage(pagination.Page, pagination.Limit), toDomainTransaction)
	if err != nil {
		return nil, 0, err
	}
	return result.Data, result.Total, nil
}

func (r *TransactionRepository) SetPaid(ctx context.Context, transactionID, userID ulid.ULID, isPaid bool) error {
	result := r.DB.WithContext(ctx).
		Model(&transactionDB{}).
		Where("id = ? AND user_id = ?", transactionID.String(), userID.String()).
		Updates(map[string]interface{}{"is_paid": isPaid, "updated_at": time.Now()})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *TransactionRepository) SetDueDate(ctx context.Context, transactionID, userID ulid.ULID, dueDate time.Time) error {
	result := r.DB.WithContext(ctx).
		Model(&transactionDB{}).
		Where("id = ? AND user_id = ?", transactionID.String(), userID.String()).
		Updates(map[string]interface{}{"due_date": dueDate, "updated_at": time.Now()})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *TransactionRepository) filtered(ctx context.Context, userID ulid.ULID, filter *transaction.ListFilter) *gorm.DB {
	query := r.DB.WithContext(ctx).Where("user_id = ?", userID.String())
	if filter == nil {
		return query
	}
	if filter.Search != "" {
		query = query.Where("description ILIKE ?", "%"+filter.Search+"%")
	}
	if filter.Type != "" {
		query = query.Where("type = ?", string(filter.Type))
	}
	return query
}

func toDomainTransactions(rows []transactionDB) ([]*transaction.Transaction, error) {
	transactions := make([]*transaction.Transaction, 0, len(rows))
	for i := range rows {
		t, err := toDomainTransaction(&rows[i])
		if err != nil {
			return nil, err
		}
		transactions = append(transactions, t)
	}
	return transactions, nil
}
