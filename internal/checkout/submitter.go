package checkout

import (
	"context"
	"sync"
	"time"

	"github.com/skbags/storefront/internal/backend"
	"github.com/skbags/storefront/internal/cart"
	pkgerrors "github.com/skbags/storefront/pkg/errors"
	"github.com/skbags/storefront/pkg/logger"
	"github.com/skbags/storefront/pkg/metrics"
)

type orderCreator interface {
	CreateOrder(ctx context.Context, req backend.OrderRequest) (*backend.OrderResult, error)
}

type connectivityProbe interface {
	Online(ctx context.Context) bool
}

// Submitter runs the checkout sequence for one shopper: preconditions, the
// order call, and interpretation of whatever the store API answered. One
// submission at a time per shopper; a second attempt while the first is in
// flight is refused before any network traffic.
type Submitter struct {
	mu         sync.Mutex
	submitting bool

	orders  orderCreator
	probe   connectivityProbe
	timeout time.Duration
	metrics *metrics.StorefrontMetrics
	logg    *logger.Logger
}

func NewSubmitter(orders orderCreator, probe connectivityProbe, timeout time.Duration, m *metrics.StorefrontMetrics, logg *logger.Logger) *Submitter {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Submitter{
		orders:  orders,
		probe:   probe,
		timeout: timeout,
		metrics: m,
		logg:    logg,
	}
}

// Submit attempts to place the order in the cart. On a confirmed order it
// returns the order id, clears the cart and resets the form. On every failure
// the cart and form are left untouched so the shopper can retry.
//
// Preconditions run in a fixed order: connectivity, then cart contents, then
// customer details. The first failure wins and nothing is sent upstream.
func (s *Submitter) Submit(ctx context.Context, basket *cart.Store, form *Form) (orderID string, err error) {
	s.mu.Lock()
	if s.submitting {
		s.mu.Unlock()
		return "", pkgerrors.New(pkgerrors.CodeAlreadyInProgress, "order is already being processed")
	}
	s.submitting = true
	s.mu.Unlock()

	started := time.Now()
	defer func() {
		s.mu.Lock()
		s.submitting = false
		s.mu.Unlock()
		s.observe(err, time.Since(started))
	}()

	if !s.probe.Online(ctx) {
		return "", pkgerrors.New(pkgerrors.CodeNoConnection, "no connection to the store")
	}
	if basket.Count() == 0 {
		return "", pkgerrors.New(pkgerrors.CodeEmptyCart, "cart is empty")
	}
	if err := form.Validate(); err != nil {
		return "", err
	}

	req := buildOrderRequest(basket, form)

	callCtx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	result, callErr := s.orders.CreateOrder(callCtx, req)
	if callErr != nil {
		if typed := pkgerrors.As(callErr); typed != nil {
			return "", typed
		}
		return "", pkgerrors.Wrap(pkgerrors.CodeUnknown, callErr, callErr.Error())
	}

	// Result interpretation, strictest signal first: no body at all, an
	// explicit refusal, then an answer that confirms nothing.
	if result == nil {
		return "", pkgerrors.New(pkgerrors.CodeNoResponse, "no response received from server")
	}
	if result.Success != nil && !*result.Success {
		msg := result.Message
		if msg == "" {
			msg = "order was rejected by server"
		}
		return "", pkgerrors.New(pkgerrors.CodeRejectedByServer, msg)
	}
	confirmed := result.ID != "" || (result.Success != nil && *result.Success)
	if !confirmed {
		return "", pkgerrors.New(pkgerrors.CodeUnconfirmed, "server did not confirm order success")
	}

	basket.Clear()
	form.Reset()

	if s.logg != nil {
		s.logg.Info(s.logg.WithField(ctx, "order_id", result.ID.String()), "order confirmed")
	}
	return result.ID.String(), nil
}

// Submitting reports whether a submission is currently in flight.
func (s *Submitter) Submitting() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.submitting
}

func (s *Submitter) observe(err error, duration time.Duration) {
	outcome := "success"
	if err != nil {
		outcome = "unknown"
		if typed := pkgerrors.As(err); typed != nil {
			outcome = string(typed.Code())
		}
	}
	s.metrics.ObserveSubmission(outcome, duration)
}

func buildOrderRequest(basket *cart.Store, form *Form) backend.OrderRequest {
	items := basket.Items()
	lines := make([]backend.OrderItem, 0, len(items))
	for _, item := range items {
		lines = append(lines, backend.OrderItem{
			ProductID: item.Product.ID,
			Quantity:  item.Quantity,
			Price:     item.Product.Price.InexactFloat64(),
		})
	}
	return backend.OrderRequest{
		CustomerInfo: form.Customer(),
		Items:        lines,
		TotalAmount:  basket.Total().InexactFloat64(),
	}
}
