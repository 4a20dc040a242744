package checkout

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/skbags/storefront/internal/backend"
	"github.com/skbags/storefront/internal/cart"
	"github.com/skbags/storefront/internal/catalog"
	pkgerrors "github.com/skbags/storefront/pkg/errors"
	"github.com/skbags/storefront/pkg/types"
)

type stubOrders struct {
	mu     sync.Mutex
	calls  int
	last   backend.OrderRequest
	result *backend.OrderResult
	err    error
	block  chan struct{}
}

func (s *stubOrders) CreateOrder(ctx context.Context, req backend.OrderRequest) (*backend.OrderResult, error) {
	s.mu.Lock()
	s.calls++
	s.last = req
	s.mu.Unlock()
	if s.block != nil {
		<-s.block
	}
	return s.result, s.err
}

func (s *stubOrders) callCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls
}

type stubProbe struct {
	online bool
}

func (s *stubProbe) Online(ctx context.Context) bool {
	return s.online
}

func boolPtr(v bool) *bool { return &v }

func filledForm() *Form {
	form := NewForm()
	form.Set(types.CustomerInfo{
		Name:    "Sofia K",
		Email:   "sofia@example.com",
		Phone:   "+359 888 111 222",
		Address: "12 Vitosha Blvd, Sofia",
	})
	return form
}

func stockedCart() *cart.Store {
	basket := cart.NewStore()
	basket.Add(catalog.Product{ID: "1", Name: "Classic Tote", Price: decimal.NewFromFloat(299.99)})
	basket.Add(catalog.Product{ID: "1", Name: "Classic Tote", Price: decimal.NewFromFloat(299.99)})
	basket.Add(catalog.Product{ID: "3", Name: "Evening Clutch", Price: decimal.NewFromFloat(399.99)})
	return basket
}

func newTestSubmitter(orders *stubOrders, probe *stubProbe) *Submitter {
	return NewSubmitter(orders, probe, time.Second, nil, nil)
}

func TestSubmitConfirmedByIDClearsCartAndForm(t *testing.T) {
	orders := &stubOrders{result: &backend.OrderResult{ID: "123"}}
	basket := stockedCart()
	form := filledForm()
	sub := newTestSubmitter(orders, &stubProbe{online: true})

	id, err := sub.Submit(context.Background(), basket, form)
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if id != "123" {
		t.Fatalf("expected order id 123, got %q", id)
	}
	if basket.Count() != 0 {
		t.Fatal("cart should be cleared after a confirmed order")
	}
	if form.Customer() != (types.CustomerInfo{}) {
		t.Fatal("form should be reset after a confirmed order")
	}
	if sub.Submitting() {
		t.Fatal("submission flag should be released")
	}
}

func TestSubmitConfirmedBySuccessFlagAlone(t *testing.T) {
	orders := &stubOrders{result: &backend.OrderResult{Success: boolPtr(true)}}
	basket := stockedCart()
	sub := newTestSubmitter(orders, &stubProbe{online: true})

	id, err := sub.Submit(context.Background(), basket, filledForm())
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if id != "" {
		t.Fatalf("expected empty id, got %q", id)
	}
	if basket.Count() != 0 {
		t.Fatal("cart should be cleared on an explicit success")
	}
}

func TestSubmitBuildsOrderRequestFromCart(t *testing.T) {
	orders := &stubOrders{result: &backend.OrderResult{ID: "9"}}
	basket := stockedCart()
	sub := newTestSubmitter(orders, &stubProbe{online: true})

	if _, err := sub.Submit(context.Background(), basket, filledForm()); err != nil {
		t.Fatalf("submit: %v", err)
	}

	req := orders.last
	if len(req.Items) != 2 {
		t.Fatalf("expected 2 lines, got %d", len(req.Items))
	}
	if req.Items[0].ProductID != "1" || req.Items[0].Quantity != 2 || req.Items[0].Price != 299.99 {
		t.Fatalf("unexpected first line %+v", req.Items[0])
	}
	if req.TotalAmount != 999.97 {
		t.Fatalf("unexpected total %f", req.TotalAmount)
	}
	if req.CustomerInfo.Name != "Sofia K" {
		t.Fatalf("unexpected customer %+v", req.CustomerInfo)
	}
}

func TestSubmitRefusedWhileInFlight(t *testing.T) {
	block := make(chan struct{})
	orders := &stubOrders{result: &backend.OrderResult{ID: "1"}, block: block}
	basket := stockedCart()
	form := filledForm()
	sub := newTestSubmitter(orders, &stubProbe{online: true})

	done := make(chan struct{})
	go func() {
		defer close(done)
		sub.Submit(context.Background(), basket, form)
	}()

	for !sub.Submitting() {
		time.Sleep(time.Millisecond)
	}

	_, err := sub.Submit(context.Background(), basket, form)
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeAlreadyInProgress {
		t.Fatalf("expected ALREADY_IN_PROGRESS, got %v", err)
	}

	close(block)
	<-done

	if orders.callCount() != 1 {
		t.Fatalf("rejected attempt must not reach the store api, calls %d", orders.callCount())
	}
	if sub.Submitting() {
		t.Fatal("flag should be released after the first attempt finishes")
	}

	if _, err := sub.Submit(context.Background(), stockedCart(), filledForm()); err != nil {
		t.Fatalf("follow-up submission should be allowed: %v", err)
	}
}

func TestSubmitPreconditionOrder(t *testing.T) {
	orders := &stubOrders{}

	// Offline wins even over an empty cart and a blank form.
	sub := newTestSubmitter(orders, &stubProbe{online: false})
	_, err := sub.Submit(context.Background(), cart.NewStore(), NewForm())
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeNoConnection {
		t.Fatalf("expected NO_CONNECTION, got %v", err)
	}

	// Online but empty cart wins over the blank form.
	sub = newTestSubmitter(orders, &stubProbe{online: true})
	_, err = sub.Submit(context.Background(), cart.NewStore(), NewForm())
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeEmptyCart {
		t.Fatalf("expected EMPTY_CART, got %v", err)
	}

	// Stocked cart with a blank form fails on fields.
	_, err = sub.Submit(context.Background(), stockedCart(), NewForm())
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeMissingFields {
		t.Fatalf("expected MISSING_FIELDS, got %v", err)
	}

	if orders.callCount() != 0 {
		t.Fatalf("no precondition failure may reach the store api, calls %d", orders.callCount())
	}
}

func TestSubmitWhitespaceFieldsCountAsMissing(t *testing.T) {
	orders := &stubOrders{}
	form := NewForm()
	form.Set(types.CustomerInfo{Name: "  ", Email: "a@b.c", Phone: "1", Address: "x"})
	sub := newTestSubmitter(orders, &stubProbe{online: true})

	_, err := sub.Submit(context.Background(), stockedCart(), form)
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeMissingFields {
		t.Fatalf("expected MISSING_FIELDS, got %v", err)
	}
}

func TestSubmitNilResultMeansNoResponse(t *testing.T) {
	orders := &stubOrders{result: nil}
	basket := stockedCart()
	form := filledForm()
	sub := newTestSubmitter(orders, &stubProbe{online: true})

	_, err := sub.Submit(context.Background(), basket, form)
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeNoResponse {
		t.Fatalf("expected NO_RESPONSE, got %v", err)
	}
	if basket.Count() == 0 {
		t.Fatal("cart must survive a failed submission")
	}
	if form.Customer().Name != "Sofia K" {
		t.Fatal("form must survive a failed submission")
	}
}

func TestSubmitExplicitRejectionKeepsServerMessage(t *testing.T) {
	orders := &stubOrders{result: &backend.OrderResult{
		ID:      "55",
		Success: boolPtr(false),
		Message: "card declined",
	}}
	sub := newTestSubmitter(orders, &stubProbe{online: true})

	_, err := sub.Submit(context.Background(), stockedCart(), filledForm())
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeRejectedByServer {
		t.Fatalf("expected REJECTED_BY_SERVER, got %v", err)
	}
	if typed.Message() != "card declined" {
		t.Fatalf("server message must be kept, got %q", typed.Message())
	}
}

func TestSubmitRejectionWithoutMessageGetsGenericOne(t *testing.T) {
	orders := &stubOrders{result: &backend.OrderResult{Success: boolPtr(false)}}
	sub := newTestSubmitter(orders, &stubProbe{online: true})

	_, err := sub.Submit(context.Background(), stockedCart(), filledForm())
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeRejectedByServer {
		t.Fatalf("expected REJECTED_BY_SERVER, got %v", err)
	}
	if typed.Message() != "order was rejected by server" {
		t.Fatalf("unexpected message %q", typed.Message())
	}
}

func TestSubmitAmbiguousResultIsUnconfirmed(t *testing.T) {
	orders := &stubOrders{result: &backend.OrderResult{Message: "queued"}}
	basket := stockedCart()
	sub := newTestSubmitter(orders, &stubProbe{online: true})

	_, err := sub.Submit(context.Background(), basket, filledForm())
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeUnconfirmed {
		t.Fatalf("expected UNCONFIRMED, got %v", err)
	}
	if basket.Count() == 0 {
		t.Fatal("cart must survive an unconfirmed submission")
	}
}

func TestSubmitTypedTransportErrorPassesThrough(t *testing.T) {
	orders := &stubOrders{err: pkgerrors.New(pkgerrors.CodeServerError, "server error. Please try again later")}
	sub := newTestSubmitter(orders, &stubProbe{online: true})

	_, err := sub.Submit(context.Background(), stockedCart(), filledForm())
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeServerError {
		t.Fatalf("expected SERVER_ERROR, got %v", err)
	}
}

func TestSubmitUntypedErrorKeepsTextVerbatim(t *testing.T) {
	orders := &stubOrders{err: errors.New("proxy exploded mid flight")}
	sub := newTestSubmitter(orders, &stubProbe{online: true})

	_, err := sub.Submit(context.Background(), stockedCart(), filledForm())
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeUnknown {
		t.Fatalf("expected UNKNOWN, got %v", err)
	}
	if !strings.Contains(typed.Message(), "proxy exploded mid flight") {
		t.Fatalf("original text must be kept, got %q", typed.Message())
	}
}
