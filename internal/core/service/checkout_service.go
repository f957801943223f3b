package service

import (
	"context"
	"crypto/rand"
	"encoding/binary"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/saborshop/storefront/internal/core/domain"
	"github.com/saborshop/storefront/internal/core/ports"
)

// Receipt is returned to the shopper once an order is accepted.
type Receipt struct {
	OrderID     string
	TotalCents  int64
	Lines       []domain.OrderLine
	EmailStatus domain.EmailStatus
	// Warning is set when the order was accepted but a side effect failed.
	Warning string
}

// CheckoutService accepts orders. The cart is emptied in the same step that
// captures the order lines, so items added while an order is being recorded
// stay in the cart for the next one. The confirmation email is a best-effort
// notification.
type CheckoutService struct {
	orders ports.OrderRepository
	mail   ports.MailQueue
	mailer ports.Mailer
	log    zerolog.Logger
	now    func() time.Time
}

func NewCheckoutService(orders ports.OrderRepository, mail ports.MailQueue, mailer ports.Mailer, log zerolog.Logger) *CheckoutService {
	return &CheckoutService{
		orders: orders,
		mail:   mail,
		mailer: mailer,
		log:    log,
		now:    func() time.Time { return time.Now().UTC() },
	}
}

// Checkout places the cart of sf as an order.
func (s *CheckoutService) Checkout(ctx context.Context, sf *Storefront) (*Receipt, error) {
	session := sf.Session()
	if session.IsGuest() {
		return nil, domain.ErrUnauthenticated
	}
	cart, clearErr := sf.takeCart(ctx)
	if cart.IsEmpty() {
		return nil, domain.ErrCartEmpty
	}

	order := domain.NewOrder(generateOrderID(), session, cart, s.now())
	order.EmailStatus = domain.EmailSkipped
	if s.mailer.Enabled() && session.Email != "" {
		order.EmailStatus = domain.EmailQueued
	}

	receipt := &Receipt{
		OrderID:     order.OrderID,
		TotalCents:  order.TotalCents,
		Lines:       order.Lines,
		EmailStatus: order.EmailStatus,
	}

	if err := s.orders.Insert(ctx, order); err != nil {
		s.log.Warn().Err(err).Str("order_id", order.OrderID).Msg("failed to record order")
	}

	if order.EmailStatus == domain.EmailQueued {
		s.mail.Enqueue(OrderEmailFor(order))
	}

	if clearErr != nil {
		s.log.Warn().Err(clearErr).Str("order_id", order.OrderID).Msg("order placed but cart not cleared in storage")
		receipt.Warning = "your order was placed but the cart could not be saved"
	}

	s.log.Info().
		Str("order_id", order.OrderID).
		Str("username", session.Username).
		Int64("total_cents", order.TotalCents).
		Str("email", string(order.EmailStatus)).
		Msg("order placed")

	return receipt, nil
}

// OrderEmailFor maps an order to the confirmation template parameters.
func OrderEmailFor(o *domain.Order) ports.OrderEmail {
	lines := make([]ports.OrderEmailLine, 0, len(o.Lines))
	for _, l := range o.Lines {
		lines = append(lines, ports.OrderEmailLine{
			ImageURL: l.ImageURL,
			Name:     l.Name,
			Units:    l.Units,
			Price:    domain.FormatCents(l.UnitPriceCents),
		})
	}
	return ports.OrderEmail{
		OrderID: o.OrderID,
		Email:   o.Email,
		Orders:  lines,
		Cost: ports.OrderEmailCost{
			Shipping: "0.00",
			Tax:      "0.00",
			Total:    domain.FormatCents(o.TotalCents),
		},
	}
}

// generateOrderID returns an order id in the format SN-nnnnn.
func generateOrderID() string {
	b := make([]byte, 4)
	if _, err := rand.Read(b); err != nil {
		// fallback: use current nanoseconds
		return fmt.Sprintf("SN-%05d", time.Now().UnixNano()%100000)
	}
	return fmt.Sprintf("SN-%05d", binary.BigEndian.Uint32(b)%100000)
}

// OrderPage is one page of the admin order list.
type OrderPage struct {
	Items      []*domain.Order
	Total      int64
	Page       int
	Limit      int
	TotalPages int
}

// ListOrders pages through recorded orders, newest first.
func (s *CheckoutService) ListOrders(ctx context.Context, filter ports.ListOrdersFilter) (*OrderPage, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 {
		filter.Limit = 20
	}
	if filter.Limit > 100 {
		filter.Limit = 100
	}

	items, total, err := s.orders.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}

	pages := int((total + int64(filter.Limit) - 1) / int64(filter.Limit))
	return &OrderPage{
		Items:      items,
		Total:      total,
		Page:       filter.Page,
		Limit:      filter.Limit,
		TotalPages: pages,
	}, nil
}
