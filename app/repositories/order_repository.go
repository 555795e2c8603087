package repositories

import (
	"context"
	"errors"
	"time"

	"github.com/Rakhulsr/go-catalog/app/apperrors"
	"github.com/Rakhulsr/go-catalog/app/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type OrderRepository interface {
	Create(ctx context.Context, tx *gorm.DB, order *models.Order) error
	GetByID(ctx context.Context, id uint) (*models.Order, error)
	FindForUpdate(ctx context.Context, tx *gorm.DB, id uint) (*models.Order, error)
	MarkPaid(ctx context.Context, tx *gorm.DB, orderID, paymentID uint) error
}

type gormOrderRepository struct {
	db *gorm.DB
}

func NewOrderRepository(db *gorm.DB) OrderRepository {
	return &gormOrderRepository{db: db}
}

func (r *gormOrderRepository) Create(ctx context.Context, tx *gorm.DB, order *models.Order) error {
	return translate("create order", tx.WithContext(ctx).Create(order).Error)
}

func (r *gormOrderRepository) GetByID(ctx context.Context, id uint) (*models.Order, error) {
	return findOrder(r.db.WithContext(ctx).Preload("Items"), id)
}

// FindForUpdate reads the order holding a row lock until tx ends, so
// concurrent payments for one order are serialised.
func (r *gormOrderRepository) FindForUpdate(ctx context.Context, tx *gorm.DB, id uint) (*models.Order, error) {
	return findOrder(lockRow(tx.WithContext(ctx)), id)
}

// lockRow adds SELECT ... FOR UPDATE; sqlite drops the clause.
func lockRow(tx *gorm.DB) *gorm.DB {
	return tx.Clauses(clause.Locking{Strength: "UPDATE"})
}

func (r *gormOrderRepository) MarkPaid(ctx context.Context, tx *gorm.DB, orderID, paymentID uint) error {
	err := tx.WithContext(ctx).Model(&models.Order{}).Where("id = ?", orderID).Updates(map[string]interface{}{
		"payment_status": models.PaymentStatusPaid,
		"status":         models.OrderStatusConfirmed,
		"payment_id":     paymentID,
		"updated_at":     time.Now(),
	}).Error
	return translate("mark order paid", err)
}

func findOrder(tx *gorm.DB, id uint) (*models.Order, error) {
	var order models.Order
	err := tx.First(&order, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("order", id)
		}
		return nil, translate("get order", err)
	}
	return &order, nil
}
