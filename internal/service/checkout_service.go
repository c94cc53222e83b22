package service

import (
	"context"
	"sync"
	"time"

	"ai-studybuddy-be/internal/apperr"
	"ai-studybuddy-be/internal/pkg/logger"
	"ai-studybuddy-be/pkg/payment"

	"github.com/google/uuid"
	"github.com/patrickmn/go-cache"
)

const (
	BillingPeriodMonthly = "monthly"
	BillingPeriodYearly  = "yearly"
)

// CheckoutState tracks a checkout flow. Checkout completes on the payment
// provider's own pages, so after the redirect the flow only moves on a poll
// result, a user self-report, or the poll deadline.
type CheckoutState string

const (
	CheckoutStateIdle             CheckoutState = "idle"
	CheckoutStateAwaitingIdentity CheckoutState = "awaiting_identity"
	CheckoutStateCreatingIntent   CheckoutState = "creating_intent"
	CheckoutStateRedirected       CheckoutState = "redirected"
	CheckoutStateConfirmed        CheckoutState = "confirmed"
	CheckoutStateDenied           CheckoutState = "denied"
	CheckoutStateTimedOut         CheckoutState = "timed_out"
)

type plan struct {
	Name   string
	Amount int64
}

var plans = map[string]plan{
	BillingPeriodMonthly: {Name: "Premium Monthly", Amount: 49900},
	BillingPeriodYearly:  {Name: "Premium Yearly", Amount: 399000},
}

// CheckoutFlow is a point-in-time snapshot of one checkout attempt.
type CheckoutFlow struct {
	IntentId      string
	Identity      string
	BillingPeriod string
	CheckoutURL   string
	State         CheckoutState
	Message       string
}

type checkoutFlow struct {
	CheckoutFlow
	cancelPoll context.CancelFunc
}

type ICheckoutService interface {
	// Start creates a payment intent and returns the redirect URL. The
	// returned flow is in the Redirected state with polling under way.
	Start(ctx context.Context, identity, billingPeriod string) (*CheckoutFlow, error)
	Status(intentId string) (*CheckoutFlow, error)
	// Resolve applies the user's self-reported outcome. A completed report
	// confirms the flow and applies the tier upgrade; a cancelled report
	// denies it. Either way polling stops.
	Resolve(ctx context.Context, intentId, outcome string) (*CheckoutFlow, error)
	// Cancel stops waiting on an in-flight flow without deciding it. The
	// flow stays Redirected so a later self-report can still resolve it.
	Cancel(intentId string) (*CheckoutFlow, error)
}

type checkoutService struct {
	gateway      payment.Gateway
	entitlement  IEntitlementService
	flows        *cache.Cache
	logger       logger.ILogger
	pollInterval time.Duration
	pollTimeout  time.Duration

	mu sync.Mutex
}

func NewCheckoutService(
	gateway payment.Gateway,
	entitlement IEntitlementService,
	sysLogger logger.ILogger,
	pollInterval, pollTimeout time.Duration,
) ICheckoutService {
	return &checkoutService{
		gateway:      gateway,
		entitlement:  entitlement,
		flows:        cache.New(24*time.Hour, 1*time.Hour),
		logger:       sysLogger,
		pollInterval: pollInterval,
		pollTimeout:  pollTimeout,
	}
}

func (s *checkoutService) Start(ctx context.Context, identity, billingPeriod string) (*CheckoutFlow, error) {
	if identity == "" {
		return nil, apperr.New(apperr.KindMissingIdentity, "identity is required before checkout")
	}
	selected, ok := plans[billingPeriod]
	if !ok {
		return nil, apperr.Newf(apperr.KindValidation, "unknown billing period %q", billingPeriod)
	}

	intentId := uuid.New().String()
	checkoutURL, err := s.gateway.CreateIntent(ctx, intentId, identity, selected.Name, selected.Amount)
	if err != nil {
		s.logger.Error("checkout", "Payment intent creation failed", map[string]interface{}{
			"identity": identity,
			"error":    err.Error(),
		})
		return nil, apperr.Wrap(apperr.KindPaymentSetupFailed, "could not set up the payment", err)
	}

	pollCtx, cancel := context.WithCancel(context.Background())
	flow := &checkoutFlow{
		CheckoutFlow: CheckoutFlow{
			IntentId:      intentId,
			Identity:      identity,
			BillingPeriod: billingPeriod,
			CheckoutURL:   checkoutURL,
			State:         CheckoutStateRedirected,
		},
		cancelPoll: cancel,
	}
	s.flows.Set(intentId, flow, cache.DefaultExpiration)

	go s.poll(pollCtx, flow)

	s.logger.Info("checkout", "Checkout started", map[string]interface{}{
		"identity":       identity,
		"intent_id":      intentId,
		"billing_period": billingPeriod,
	})
	return s.snapshot(flow), nil
}

func (s *checkoutService) Status(intentId string) (*CheckoutFlow, error) {
	flow, err := s.find(intentId)
	if err != nil {
		return nil, err
	}
	return s.snapshot(flow), nil
}

func (s *checkoutService) Resolve(ctx context.Context, intentId, outcome string) (*CheckoutFlow, error) {
	flow, err := s.find(intentId)
	if err != nil {
		return nil, err
	}

	switch outcome {
	case string(payment.StatusCompleted):
		if err := s.confirm(ctx, flow, "payment reported as completed"); err != nil {
			return nil, err
		}
	case string(payment.StatusCancelled):
		s.transition(flow, CheckoutStateDenied, "payment reported as cancelled")
	default:
		return nil, apperr.Newf(apperr.KindValidation, "unknown checkout outcome %q", outcome)
	}
	return s.snapshot(flow), nil
}

func (s *checkoutService) Cancel(intentId string) (*CheckoutFlow, error) {
	flow, err := s.find(intentId)
	if err != nil {
		return nil, err
	}
	flow.cancelPoll()
	return s.snapshot(flow), nil
}

// poll watches the gateway until the payment settles one way or the other,
// the deadline passes, or the flow is decided elsewhere.
func (s *checkoutService) poll(ctx context.Context, flow *checkoutFlow) {
	deadline := time.NewTimer(s.pollTimeout)
	defer deadline.Stop()
	ticker := time.NewTicker(s.pollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-deadline.C:
			s.transition(flow, CheckoutStateTimedOut, "no payment confirmation before the deadline")
			return
		case <-ticker.C:
			status, err := s.gateway.CheckStatus(ctx, flow.IntentId)
			if err != nil {
				continue
			}
			switch status {
			case payment.StatusCompleted:
				_ = s.confirm(ctx, flow, "payment confirmed by gateway")
				return
			case payment.StatusFailed, payment.StatusCancelled:
				s.transition(flow, CheckoutStateDenied, "payment "+string(status))
				return
			}
		}
	}
}

func (s *checkoutService) confirm(ctx context.Context, flow *checkoutFlow, message string) error {
	if !s.transition(flow, CheckoutStateConfirmed, message) {
		return nil
	}
	if _, err := s.entitlement.ApplyUpgrade(ctx, flow.Identity, flow.BillingPeriod); err != nil {
		s.logger.Error("checkout", "Confirmed payment but upgrade failed", map[string]interface{}{
			"identity":  flow.Identity,
			"intent_id": flow.IntentId,
			"error":     err.Error(),
		})
		return err
	}
	return nil
}

// transition moves an undecided flow into state. Confirmed and Denied are
// final, so a late poll result cannot overwrite a self-report or vice
// versa. TimedOut is not a decision: it only means the wait expired, and a
// manual report can still settle the flow afterwards.
func (s *checkoutService) transition(flow *checkoutFlow, state CheckoutState, message string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	switch flow.State {
	case CheckoutStateConfirmed, CheckoutStateDenied:
		return false
	case CheckoutStateTimedOut:
		if state == CheckoutStateTimedOut {
			return false
		}
	}
	flow.State = state
	flow.Message = message
	flow.cancelPoll()

	s.logger.Info("checkout", "Checkout flow decided", map[string]interface{}{
		"intent_id": flow.IntentId,
		"state":     string(state),
	})
	return true
}

func (s *checkoutService) find(intentId string) (*checkoutFlow, error) {
	x, found := s.flows.Get(intentId)
	if !found {
		return nil, apperr.New(apperr.KindNotFound, "checkout flow not found")
	}
	return x.(*checkoutFlow), nil
}

func (s *checkoutService) snapshot(flow *checkoutFlow) *CheckoutFlow {
	s.mu.Lock()
	defer s.mu.Unlock()
	snap := flow.CheckoutFlow
	return &snap
}
