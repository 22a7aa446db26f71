package services

import (
	"context"
	"errors"
	"time"

	"kiosk/internal/events"
	"kiosk/internal/logger"
	"kiosk/internal/models"
	"kiosk/internal/repositories"

	"github.com/shopspring/decimal"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
)

// OrderService settles orders against wallets.
type OrderService struct {
	store     repositories.Store
	publisher events.Publisher
}

// NewOrderService creates a new OrderService.
func NewOrderService(store repositories.Store, publisher events.Publisher) *OrderService {
	if publisher == nil {
		publisher = events.NopPublisher{}
	}
	return &OrderService{store: store, publisher: publisher}
}

// OrderItemInput is one requested line. Subtotal is what the client
// computed; it is ignored in favour of the product price.
type OrderItemInput struct {
	ProductID string
	Quantity  int
	Subtotal  decimal.Decimal
}

// OrderInput is a requested order. TotalAmount must equal the sum of the
// server-side subtotals.
type OrderInput struct {
	ID          string
	UserID      string
	TotalAmount decimal.Decimal
	Status      bool
	Items       []OrderItemInput
}

// Settlement is the result of CreateOrder.
type Settlement struct {
	Order   *models.Order
	Balance decimal.Decimal
}

// GetAllOrders retrieves all orders.
func (s *OrderService) GetAllOrders(ctx context.Context) ([]models.Order, error) {
	return s.store.Orders().GetAll(ctx)
}

// GetOrderByID retrieves a single order by its ID.
func (s *OrderService) GetOrderByID(ctx context.Context, id string) (*models.Order, error) {
	return s.store.Orders().GetByID(ctx, id)
}

// CreateOrder debits the user's wallet, stores the order with its items and
// appends the Order ledger row, all in one transaction. Nothing is written
// unless every step succeeds.
func (s *OrderService) CreateOrder(ctx context.Context, in OrderInput) (res *Settlement, err error) {
	ctx, span := tracer.Start(ctx, "OrderService.CreateOrder")
	defer func() { finishSpan(span, err) }()
	span.SetAttributes(attribute.String("user.id", in.UserID), attribute.Int("order.items", len(in.Items)))

	if err := validateOrderInput(in); err != nil {
		return nil, err
	}

	var (
		order  *models.Order
		wallet *models.Wallet
		txn    *models.CustomerTransaction
	)
	err = s.store.WithinTransaction(ctx, func(tx repositories.Store) error {
		var err error
		wallet, err = tx.Wallets().GetByUserIDForUpdate(ctx, in.UserID)
		if err != nil {
			if errors.Is(err, repositories.ErrNotFound) {
				return walletNotFound(in.UserID)
			}
			return err
		}

		items, total, err := priceItems(ctx, tx, in.Items)
		if err != nil {
			return err
		}
		if !total.Equal(in.TotalAmount) {
			return validationError("orderTotalAmount %s does not match the item total %s",
				in.TotalAmount.StringFixed(2), total.StringFixed(2))
		}
		if wallet.Balance.LessThan(total) {
			return insufficientFunds(wallet.Balance, total)
		}

		wallet.Balance = wallet.Balance.Sub(total)
		if err := tx.Wallets().UpdateBalance(ctx, wallet.ID, wallet.Balance); err != nil {
			return err
		}

		now := time.Now()
		order = &models.Order{
			UserID:      in.UserID,
			OrderDate:   now,
			TotalAmount: total,
			Status:      true,
			Items:       items,
		}
		if err := tx.Orders().Create(ctx, order); err != nil {
			return err
		}

		orderID := order.ID
		txn = &models.CustomerTransaction{
			WalletID: wallet.ID,
			OrderID:  &orderID,
			Amount:   total,
			Type:     models.TransactionTypeOrder,
			Date:     now,
			Status:   models.TransactionStatusCompleted,
		}
		if err := tx.Transactions().Create(ctx, txn); err != nil {
			return err
		}
		if err := tx.Orders().LinkTransaction(ctx, order.ID, txn.ID); err != nil {
			return err
		}
		order.CustomerTransactionID = &txn.ID
		return nil
	})
	if err != nil {
		logger.WithContext(ctx).Info("order rejected", zap.String("user_id", in.UserID), zap.Error(err))
		return nil, err
	}

	logger.WithContext(ctx).Info("order settled",
		zap.String("order_id", order.ID),
		zap.String("wallet_id", wallet.ID),
		zap.String("amount", order.TotalAmount.StringFixed(2)),
		zap.String("balance", wallet.Balance.StringFixed(2)))
	publish(ctx, s.publisher, events.OrderSettled, order.ID, events.OrderSettledPayload{
		OrderID:       order.ID,
		UserID:        order.UserID,
		WalletID:      wallet.ID,
		TransactionID: txn.ID,
		Amount:        order.TotalAmount,
		NewBalance:    wallet.Balance,
	})
	return &Settlement{Order: order, Balance: wallet.Balance}, nil
}

// UpdateOrder rewrites the order header and replaces its items, priced the
// same way as on create. The wallet and the ledger are not touched.
func (s *OrderService) UpdateOrder(ctx context.Context, id string, in OrderInput) (res *models.Order, err error) {
	ctx, span := tracer.Start(ctx, "OrderService.UpdateOrder")
	defer func() { finishSpan(span, err) }()
	span.SetAttributes(attribute.String("order.id", id))

	if in.ID != "" && in.ID != id {
		return nil, conflictError("order id %s does not match path id %s", in.ID, id)
	}
	if err := validateOrderInput(in); err != nil {
		return nil, err
	}

	err = s.store.WithinTransaction(ctx, func(tx repositories.Store) error {
		order, err := tx.Orders().GetByID(ctx, id)
		if err != nil {
			return err
		}
		// The ledger row stays with the wallet that paid, so the owner is fixed.
		if in.UserID != order.UserID {
			return validationError("userId of order %s cannot change", id)
		}
		items, total, err := priceItems(ctx, tx, in.Items)
		if err != nil {
			return err
		}
		if !total.Equal(in.TotalAmount) {
			return validationError("orderTotalAmount %s does not match the item total %s",
				in.TotalAmount.StringFixed(2), total.StringFixed(2))
		}

		order.TotalAmount = total
		order.Status = in.Status
		if err := tx.Orders().Update(ctx, order); err != nil {
			return err
		}
		if err := tx.Orders().ReplaceItems(ctx, id, items); err != nil {
			return err
		}
		res, err = tx.Orders().GetByID(ctx, id)
		return err
	})
	if err != nil {
		return nil, err
	}
	return res, nil
}

// DeleteOrder removes the order and its items. The wallet debit is not
// reversed and the ledger row keeps its order id; an OrderDeleted event
// lets a consumer reconcile.
func (s *OrderService) DeleteOrder(ctx context.Context, id string) (err error) {
	ctx, span := tracer.Start(ctx, "OrderService.DeleteOrder")
	defer func() { finishSpan(span, err) }()
	span.SetAttributes(attribute.String("order.id", id))

	var order *models.Order
	err = s.store.WithinTransaction(ctx, func(tx repositories.Store) error {
		var err error
		if order, err = tx.Orders().GetByID(ctx, id); err != nil {
			return err
		}
		return tx.Orders().Delete(ctx, id)
	})
	if err != nil {
		return err
	}

	payload := events.OrderDeletedPayload{
		OrderID: order.ID,
		UserID:  order.UserID,
		Amount:  order.TotalAmount,
	}
	if order.CustomerTransactionID != nil {
		payload.TransactionID = *order.CustomerTransactionID
	}
	logger.WithContext(ctx).Info("order deleted without refund",
		zap.String("order_id", id),
		zap.String("transaction_id", payload.TransactionID))
	publish(ctx, s.publisher, events.OrderDeleted, id, payload)
	return nil
}

func validateOrderInput(in OrderInput) error {
	if in.UserID == "" {
		return validationError("userId is required")
	}
	if len(in.Items) == 0 {
		return validationError("an order needs at least one item")
	}
	for i, item := range in.Items {
		if item.ProductID == "" {
			return validationError("item %d: productId is required", i)
		}
		if item.Quantity <= 0 {
			return validationError("item %d: quantity must be greater than zero", i)
		}
	}
	if in.TotalAmount.IsNegative() {
		return validationError("orderTotalAmount must not be negative")
	}
	return nil
}

// priceItems snapshots the current product name and price onto each line.
func priceItems(ctx context.Context, tx repositories.Store, in []OrderItemInput) ([]models.OrderItem, decimal.Decimal, error) {
	items := make([]models.OrderItem, 0, len(in))
	total := decimal.Zero
	for _, req := range in {
		product, err := tx.Products().GetByID(ctx, req.ProductID)
		if err != nil {
			if errors.Is(err, repositories.ErrNotFound) {
				return nil, decimal.Zero, validationError("product %s does not exist", req.ProductID)
			}
			return nil, decimal.Zero, err
		}
		subtotal := product.Price.Mul(decimal.NewFromInt(int64(req.Quantity)))
		items = append(items, models.OrderItem{
			ProductID:   product.ID,
			ProductName: product.Name,
			Quantity:    req.Quantity,
			UnitPrice:   product.Price,
			Subtotal:    subtotal,
		})
		total = total.Add(subtotal)
	}
	return items, total, nil
}
