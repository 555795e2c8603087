package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/Rakhulsr/go-catalog/app/apperrors"
	"github.com/Rakhulsr/go-catalog/app/helpers"
	"github.com/Rakhulsr/go-catalog/app/logger"
	"github.com/Rakhulsr/go-catalog/app/models"
	"github.com/Rakhulsr/go-catalog/app/repositories"
	"github.com/Rakhulsr/go-catalog/app/utils/calc"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type OrderItemInput struct {
	ProductID uint  `json:"product_id" validate:"required,gt=0"`
	VariantID *uint `json:"variant_id"`
	Quantity  int   `json:"quantity" validate:"required,gt=0"`
}

type CreateOrderInput struct {
	UserID          *uint            `json:"user_id"`
	Items           []OrderItemInput `json:"items" validate:"required,min=1,dive"`
	ShippingAmount  decimal.Decimal  `json:"shipping_amount"`
	ShippingAddress models.Address   `json:"shipping_address" validate:"required"`
	BillingAddress  *models.Address  `json:"billing_address"`
}

type RecordPaymentInput struct {
	Gateway          string          `json:"gateway" validate:"required,max=32"`
	GatewayOrderID   string          `json:"gateway_order_id" validate:"required,max=128"`
	GatewayPaymentID string          `json:"gateway_payment_id" validate:"required,max=128"`
	GatewaySignature string          `json:"gateway_signature" validate:"max=255"`
	Amount           decimal.Decimal `json:"amount"`
	Currency         string          `json:"currency" validate:"omitempty,len=3"`
	RawPayload       json.RawMessage `json:"raw_payload"`
}

type OrderDetail struct {
	Order    *models.Order    `json:"order"`
	Payments []models.Payment `json:"payments"`
}

type OrderService struct {
	db       *gorm.DB
	products repositories.ProductRepository
	orders   repositories.OrderRepository
	payments repositories.PaymentRepository
	validate *validator.Validate
	currency string
}

func NewOrderService(
	db *gorm.DB,
	products repositories.ProductRepository,
	orders repositories.OrderRepository,
	payments repositories.PaymentRepository,
	validate *validator.Validate,
	currency string,
) *OrderService {
	return &OrderService{
		db:       db,
		products: products,
		orders:   orders,
		payments: payments,
		validate: validate,
		currency: strings.ToUpper(currency),
	}
}

// CreateOrder snapshots titles and prices of the requested products into a
// new pending, unpaid order. Stock is not reserved.
func (s *OrderService) CreateOrder(ctx context.Context, input CreateOrderInput) (*models.Order, error) {
	if err := s.validate.Struct(input); err != nil {
		return nil, helpers.ValidationErrorFrom(err)
	}
	if input.ShippingAmount.IsNegative() {
		return nil, apperrors.FieldInvalid("shipping_amount", "shipping_amount must be at least 0.")
	}

	var order *models.Order
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		ids := make([]uint, 0, len(input.Items))
		for _, it := range input.Items {
			ids = append(ids, it.ProductID)
		}
		products, err := s.products.FindByIDs(ctx, tx, ids)
		if err != nil {
			return err
		}

		items := make([]models.OrderItem, 0, len(input.Items))
		lineTotals := make([]decimal.Decimal, 0, len(input.Items))
		for i, it := range input.Items {
			field := "items[" + strconv.Itoa(i) + "]"
			product, ok := products[it.ProductID]
			if !ok {
				return apperrors.FieldInvalid(field+".product_id", fmt.Sprintf("product %d does not exist.", it.ProductID))
			}

			unitPrice := product.Price
			title := product.Title
			if it.VariantID != nil {
				variant := findVariant(product, *it.VariantID)
				if variant == nil {
					return apperrors.FieldInvalid(field+".variant_id", fmt.Sprintf("variant %d does not belong to product %d.", *it.VariantID, product.ID))
				}
				if variant.Price != nil {
					unitPrice = *variant.Price
				}
				title = variantTitle(product.Title, *variant)
			}

			line := calc.LineTotal(unitPrice, it.Quantity)
			lineTotals = append(lineTotals, line)
			items = append(items, models.OrderItem{
				ProductID: product.ID,
				VariantID: it.VariantID,
				Title:     title,
				Quantity:  it.Quantity,
				UnitPrice: unitPrice,
				LineTotal: line,
			})
		}

		subtotal := calc.Subtotal(lineTotals)
		shipping := input.ShippingAmount.Round(2)
		order = &models.Order{
			OrderNumber:     newOrderNumber(time.Now()),
			UserID:          input.UserID,
			Status:          models.OrderStatusPending,
			Subtotal:        subtotal,
			ShippingAmount:  shipping,
			Total:           calc.CalculateGrandTotal(subtotal, shipping),
			Currency:        s.currency,
			ShippingAddress: datatypes.NewJSONType(input.ShippingAddress),
			BillingAddress:  datatypes.NewJSONType(input.BillingAddress),
			PaymentStatus:   models.PaymentStatusUnpaid,
			Items:           items,
		}
		return s.orders.Create(ctx, tx, order)
	})
	if err != nil {
		return nil, dependencyIfUntyped("create order", err)
	}

	logger.WithContext(ctx).WithFields(logrus.Fields{
		"order_id":     order.ID,
		"order_number": order.OrderNumber,
		"total":        order.Total.StringFixed(2),
	}).Info("order created")
	return order, nil
}

func (s *OrderService) GetOrder(ctx context.Context, id uint) (*OrderDetail, error) {
	order, err := s.orders.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	payments, err := s.payments.FindByOrderID(ctx, id)
	if err != nil {
		return nil, err
	}
	if payments == nil {
		payments = []models.Payment{}
	}
	return &OrderDetail{Order: order, Payments: payments}, nil
}

// RecordPayment stores a captured gateway payment and marks the order paid.
// The amount must match the order total exactly.
func (s *OrderService) RecordPayment(ctx context.Context, orderID uint, input RecordPaymentInput) (*models.Payment, error) {
	input.Currency = strings.ToUpper(strings.TrimSpace(input.Currency))
	if err := s.validate.Struct(input); err != nil {
		return nil, helpers.ValidationErrorFrom(err)
	}
	if len(input.RawPayload) > 0 && !json.Valid(input.RawPayload) {
		return nil, apperrors.FieldInvalid("raw_payload", "raw_payload must be valid JSON.")
	}

	var payment *models.Payment
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		order, err := s.orders.FindForUpdate(ctx, tx, orderID)
		if err != nil {
			return err
		}
		if order.PaymentStatus == models.PaymentStatusPaid {
			return apperrors.Conflict(fmt.Sprintf("order %s is already paid", order.OrderNumber))
		}
		if !input.Amount.Equal(order.Total) {
			return apperrors.FieldInvalid("amount", fmt.Sprintf("amount %s does not match the order total %s.", input.Amount.StringFixed(2), order.Total.StringFixed(2)))
		}
		currency := input.Currency
		if currency == "" {
			currency = order.Currency
		}
		if currency != order.Currency {
			return apperrors.FieldInvalid("currency", fmt.Sprintf("currency must be %s.", order.Currency))
		}

		payment = &models.Payment{
			OrderID:          order.ID,
			Gateway:          strings.TrimSpace(input.Gateway),
			GatewayOrderID:   input.GatewayOrderID,
			GatewayPaymentID: input.GatewayPaymentID,
			GatewaySignature: input.GatewaySignature,
			Amount:           order.Total,
			Currency:         currency,
			Status:           models.PaymentStatusPaid,
		}
		if len(input.RawPayload) > 0 {
			payment.RawPayload = datatypes.JSON(input.RawPayload)
		}
		if err := s.payments.Create(ctx, tx, payment); err != nil {
			return err
		}
		return s.orders.MarkPaid(ctx, tx, order.ID, payment.ID)
	})
	if err != nil {
		return nil, dependencyIfUntyped("record payment", err)
	}

	logger.WithContext(ctx).WithFields(logrus.Fields{
		"order_id":   orderID,
		"payment_id": payment.ID,
		"gateway":    payment.Gateway,
	}).Info("payment recorded")
	return payment, nil
}

func newOrderNumber(now time.Time) string {
	return fmt.Sprintf("ORD-%s-%s", now.Format("20060102"), uuid.New().String()[:8])
}

func findVariant(product models.Product, variantID uint) *models.ProductVariant {
	for i := range product.Variants {
		if product.Variants[i].ID == variantID {
			return &product.Variants[i]
		}
	}
	return nil
}

func variantTitle(title string, v models.ProductVariant) string {
	var parts []string
	if v.Size != "" {
		parts = append(parts, v.Size)
	}
	if v.Color != "" {
		parts = append(parts, v.Color)
	}
	if len(parts) == 0 {
		return title
	}
	return title + " (" + strings.Join(parts, " / ") + ")"
}

// dependencyIfUntyped covers errors raised by the transaction itself, such as
// a failed commit.
func dependencyIfUntyped(op string, err error) error {
	var appErr *apperrors.Error
	if errors.As(err, &appErr) {
		return err
	}
	return apperrors.Dependency(op, err)
}
