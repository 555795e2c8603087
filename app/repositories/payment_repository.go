package repositories

import (
	"context"

	"github.com/Rakhulsr/go-catalog/app/models"
	"gorm.io/gorm"
)

type PaymentRepository interface {
	Create(ctx context.Context, tx *gorm.DB, payment *models.Payment) error
	FindByOrderID(ctx context.Context, orderID uint) ([]models.Payment, error)
}

type PaymentRepositoryImpl struct {
	DB *gorm.DB
}

func NewPaymentRepository(db *gorm.DB) PaymentRepository {
	return &PaymentRepositoryImpl{DB: db}
}

func (r *PaymentRepositoryImpl) Create(ctx context.Context, tx *gorm.DB, payment *models.Payment) error {
	return translate("create payment", tx.WithContext(ctx).Create(payment).Error)
}

func (r *PaymentRepositoryImpl) FindByOrderID(ctx context.Context, orderID uint) ([]models.Payment, error) {
	var payments []models.Payment
	err := r.DB.WithContext(ctx).Where("order_id = ?", orderID).Order("id ASC").Find(&payments).Error
	if err != nil {
		return nil, translate("list payments", err)
	}
	return payments, nil
}
