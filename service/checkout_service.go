package service

import (
	"context"
	"fmt"
	"time"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"stride-store/cart"
	"stride-store/models"
	"stride-store/repository"
	"stride-store/utils"
)

// Payment statuses reported by the processor
const (
	PaymentStatusPaid = "paid"
)

const sessionExpiry = 30 * time.Minute

// CheckoutServiceInterface defines the contract for checkout operations
type CheckoutServiceInterface interface {
	Checkout(ctx context.Context, user *models.User, items []cart.LineItem, totalCents int64, paymentMethod string) (*models.CheckoutResponse, error)
	VerifyPayment(ctx context.Context, sessionID string) (*models.VerifyPaymentResponse, error)
}

// CheckoutService hands the cart off to the hosted payment processor: it
// freezes the cart lines into a pending order, opens a checkout session and
// returns the redirect URL. Payment verification marks the order paid and
// clears the customer's persisted cart.
type CheckoutService struct {
	orders          repository.OrderRepositoryInterface
	gateway         PaymentGateway
	cartPersistence cart.Persistence
	baseURL         string
	log             logrus.FieldLogger
}

// NewCheckoutService creates a new CheckoutService. baseURL is the public
// URL of the storefront, used for the success and cancel redirects.
func NewCheckoutService(
	orders repository.OrderRepositoryInterface,
	gateway PaymentGateway,
	cartPersistence cart.Persistence,
	baseURL string,
	log logrus.FieldLogger,
) *CheckoutService {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &CheckoutService{
		orders:          orders,
		gateway:         gateway,
		cartPersistence: cartPersistence,
		baseURL:         baseURL,
		log:             log,
	}
}

var _ CheckoutServiceInterface = (*CheckoutService)(nil)

// Checkout forwards the cart contents and total verbatim to the payment
// processor and records a pending order under a generated order number.
func (s *CheckoutService) Checkout(ctx context.Context, user *models.User, items []cart.LineItem, totalCents int64, paymentMethod string) (*models.CheckoutResponse, error) {
	if len(items) == 0 {
		return nil, errors.New("no items in cart")
	}
	if totalCents <= 0 {
		return nil, errors.New("invalid order total")
	}

	var sum int64
	for _, it := range items {
		if it.PriceCents <= 0 {
			return nil, errors.Errorf("invalid price for item: %s", it.Name)
		}
		if it.Quantity <= 0 {
			return nil, errors.Errorf("invalid quantity for item: %s", it.Name)
		}
		sum += it.PriceCents * int64(it.Quantity)
	}
	if sum != totalCents {
		return nil, errors.Errorf("order total %d does not match cart contents %d", totalCents, sum)
	}

	methods := []string{models.PaymentMethodCard}
	if paymentMethod == models.PaymentMethodBoleto {
		methods = []string{models.PaymentMethodBoleto}
	}

	orderNumber := utils.NewOrderNumber(time.Now())

	lineItems := make([]SessionLineItem, len(items))
	for i, it := range items {
		lineItems[i] = SessionLineItem{
			Name:            fmt.Sprintf("%s - %s", it.Brand, it.Name),
			Description:     variantDescription(it),
			Image:           it.Image,
			UnitAmountCents: it.PriceCents,
			Quantity:        it.Quantity,
			Currency:        "brl",
		}
	}

	session, err := s.gateway.CreateSession(ctx, &CheckoutSessionRequest{
		CustomerEmail:      user.Email,
		LineItems:          lineItems,
		PaymentMethodTypes: methods,
		SuccessURL:         s.baseURL + "/order-tracking?session_id={CHECKOUT_SESSION_ID}",
		CancelURL:          s.baseURL + "/cart",
		ExpiresAt:          time.Now().Add(sessionExpiry).Unix(),
		Metadata: map[string]string{
			"user_id":      user.ID,
			"order_number": orderNumber,
		},
	})
	if err != nil {
		return nil, errors.Wrap(err, "could not open checkout session")
	}

	order := &models.Order{
		OrderNumber:      orderNumber,
		UserID:           user.ID,
		Status:           models.OrderStatusPending,
		TotalCents:       totalCents,
		PaymentSessionID: session.ID,
		PaymentMethod:    methods[0],
	}
	lines := make([]models.OrderLine, len(items))
	for i, it := range items {
		lines[i] = models.OrderLine{
			LineItemID: it.ID,
			Name:       it.Name,
			Brand:      it.Brand,
			PriceCents: it.PriceCents,
			Image:      it.Image,
			Color:      it.Color,
			Size:       it.Size,
			Qty:        it.Quantity,
		}
	}
	if _, err := s.orders.Create(ctx, order, lines); err != nil {
		return nil, errors.Wrap(err, "could not record order")
	}

	s.log.WithFields(logrus.Fields{
		"orderNumber": orderNumber,
		"sessionId":   session.ID,
		"totalCents":  totalCents,
	}).Info("checkout session created")

	return &models.CheckoutResponse{
		URL:         session.URL,
		SessionID:   session.ID,
		OrderNumber: orderNumber,
	}, nil
}

// VerifyPayment looks up the session at the processor. When it is paid, the
// matching order transitions to paid and the customer's persisted cart is
// cleared (the checkout handoff is complete at that point).
func (s *CheckoutService) VerifyPayment(ctx context.Context, sessionID string) (*models.VerifyPaymentResponse, error) {
	session, err := s.gateway.GetSession(ctx, sessionID)
	if err != nil {
		return nil, errors.Wrap(err, "could not verify payment")
	}

	if session.PaymentStatus != PaymentStatusPaid {
		return &models.VerifyPaymentResponse{Status: session.PaymentStatus}, nil
	}

	order, err := s.orders.GetByPaymentSession(ctx, sessionID)
	if err != nil {
		return nil, errors.Wrap(err, "paid session has no matching order")
	}

	if err := s.orders.MarkPaid(ctx, order.OrderNumber); err != nil {
		return nil, errors.Wrap(err, "could not mark order paid")
	}

	// Cart clearing is best-effort: the payment already went through.
	if err := s.cartPersistence.Delete(ctx, order.UserID); err != nil {
		s.log.WithError(err).WithField("orderNumber", order.OrderNumber).
			Warn("checkout: failed to clear cart after payment")
	}

	s.log.WithField("orderNumber", order.OrderNumber).Info("payment verified, order paid")

	return &models.VerifyPaymentResponse{
		Status:      PaymentStatusPaid,
		OrderNumber: order.OrderNumber,
		TotalCents:  order.TotalCents,
	}, nil
}

func variantDescription(it cart.LineItem) string {
	size := it.Size
	if size == "" {
		size = "N/A"
	}
	color := it.Color
	if color == "" {
		color = "N/A"
	}
	return fmt.Sprintf("Tamanho: %s, Cor: %s", size, color)
}
