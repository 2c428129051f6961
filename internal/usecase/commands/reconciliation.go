package commands

import (
	"context"
	"errors"
	"log/slog"

	"fractional-market/internal/domain/order"
	"fractional-market/internal/domain/payment"
	"fractional-market/internal/infra"
	"fractional-market/internal/pkg/clock"
	"fractional-market/internal/pkg/errs"
	"fractional-market/internal/usecase/shared"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	ErrUnknownOrder          = errs.New("unknown order")
	ErrPaymentAmountMismatch = errs.New("payment amount mismatch")

	// errEventReplayed rolls back a transaction that lost the race to record the same event
	errEventReplayed = errs.New("payment event already recorded")
)

type ReconcileResult string

const (
	ResultApplied        ReconcileResult = "applied"
	ResultReplayed       ReconcileResult = "replayed"
	ResultStale          ReconcileResult = "stale"
	ResultUnknownOrder   ReconcileResult = "unknown_order"
	ResultAmountMismatch ReconcileResult = "amount_mismatch"
	ResultIgnored        ReconcileResult = "ignored"
)

var reconcileEvents = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "payment_reconciliation_events_total",
		Help: "Verified payment callbacks by provider and reconciliation result",
	},
	[]string{"provider", "result"},
)

type ReconciliationCommands interface {
	// HandleWebhook acknowledges every authentic callback. Only an unknown provider,
	// a bad signature or a storage failure comes back as an error.
	HandleWebhook(ctx context.Context, provider payment.Provider, payload []byte, signatureHeader string) (ReconcileResult, error)
	Process(ctx context.Context, ev *payment.Event) (ReconcileResult, error)
}

type reconciliationImpl struct {
	uow         shared.UnitOfWork
	gateways    shared.GatewayRegistry
	cache       shared.EventCache
	clock       clock.Clock
	strictCheck bool
}

func NewReconciliationCommands(
	uow shared.UnitOfWork,
	gateways shared.GatewayRegistry,
	cache shared.EventCache,
	clock clock.Clock,
	strictAmountCheck bool,
) ReconciliationCommands {
	return &reconciliationImpl{
		uow:         uow,
		gateways:    gateways,
		cache:       cache,
		clock:       clock,
		strictCheck: strictAmountCheck,
	}
}

func (r *reconciliationImpl) HandleWebhook(ctx context.Context, provider payment.Provider, payload []byte, signatureHeader string) (ReconcileResult, error) {
	gw, err := r.gateways.Get(provider)
	if err != nil {
		return "", err
	}

	ev, err := gw.VerifyAndParseCallback(payload, signatureHeader)
	if err != nil {
		if errors.Is(err, payment.ErrInvalidSignature) {
			slog.Warn("webhook signature rejected", "provider", provider.String(), "error", err.Error())
			return "", err
		}
		// authentic but nothing to apply; a retry would carry the same body
		slog.Info("webhook ignored", "provider", provider.String(), "error", err.Error())
		reconcileEvents.WithLabelValues(provider.String(), string(ResultIgnored)).Inc()
		return ResultIgnored, nil
	}

	result, err := r.Process(ctx, ev)
	switch {
	case err == nil:
		return result, nil
	case errs.IsAny(err, ErrUnknownOrder, ErrPaymentAmountMismatch):
		return result, nil
	default:
		return "", err
	}
}

// Process applies one verified event. The order row lock serializes concurrent
// deliveries for the same order; the payment_events insert comes last, so a
// replay after a crash meets either the recorded event or a terminal order.
func (r *reconciliationImpl) Process(ctx context.Context, ev *payment.Event) (ReconcileResult, error) {
	logger := slog.With(
		"provider", ev.Provider.String(),
		"event_id", ev.ProviderEventID,
		"session_id", ev.ProviderSessionID,
		"outcome", ev.Outcome.String())

	if seen, err := r.cache.Seen(ctx, ev.Provider, ev.ProviderEventID); err != nil {
		logger.Warn("replay cache lookup failed", "error", err.Error())
	} else if seen {
		logger.Debug("payment event replayed (cache)")
		return r.done(ev, ResultReplayed), nil
	}

	var result ReconcileResult
	err := r.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		exists, err := tx.PaymentEvents().Exists(ctx, ev.Provider, ev.ProviderEventID)
		if err != nil {
			return errs.Mark(err, ErrDatabaseOperationFailed)
		}
		if exists {
			result = ResultReplayed
			return nil
		}

		o, err := tx.Orders().FindBySessionForUpdate(ctx, ev.Provider, ev.ProviderSessionID)
		if err != nil {
			if infra.IsKind(err, infra.KindNotFound) {
				return ErrUnknownOrder
			}
			return errs.Mark(err, ErrDatabaseOperationFailed)
		}
		logger := logger.With("order_id", o.ID())

		if !o.IsAwaitingPayment() {
			logger.Info("stale payment event recorded without state change", "status", o.Status().String())
			result = ResultStale
			return r.record(ctx, tx, ev, o)
		}

		from := o.Status()
		now := r.clock.Now()
		switch ev.Outcome {
		case payment.OutcomePaid:
			paid := o.AmountDue().Cents()
			if ev.AmountCents != nil {
				paid = *ev.AmountCents
				if !o.AmountDue().Matches(paid, ev.Currency) {
					mismatch := []any{
						"amount_due_cents", o.AmountDue().Cents(),
						"amount_paid_cents", paid,
						"currency_due", o.AmountDue().Currency(),
						"currency_paid", ev.Currency,
					}
					if r.strictCheck {
						logger.Error("payment amount mismatch, order left awaiting payment", mismatch...)
						result = ResultAmountMismatch
						return ErrPaymentAmountMismatch
					}
					logger.Warn("payment amount mismatch", mismatch...)
				}
			}
			if err := o.MarkPaid(paid, now); err != nil {
				return err
			}
		case payment.OutcomeFailed:
			if err := o.MarkFailed(now); err != nil {
				return err
			}
		default:
			return payment.ErrInvalidOutcome
		}

		if err := applyTransition(ctx, tx, o, from); err != nil {
			return err
		}
		result = ResultApplied
		logger.Info("payment reconciled", "status", o.Status().String())
		return r.record(ctx, tx, ev, o)
	})

	switch {
	case err == nil:
	case errs.Is(err, errEventReplayed):
		result = ResultReplayed
	case errs.Is(err, ErrUnknownOrder):
		logger.Warn("payment event for unknown order")
		r.done(ev, ResultUnknownOrder)
		return ResultUnknownOrder, err
	case errs.Is(err, ErrPaymentAmountMismatch):
		r.done(ev, ResultAmountMismatch)
		return ResultAmountMismatch, err
	default:
		logger.Error("payment reconciliation failed", "error", err.Error())
		return "", err
	}

	if err := r.cache.Remember(ctx, ev.Provider, ev.ProviderEventID); err != nil {
		logger.Warn("replay cache write failed", "error", err.Error())
	}
	return r.done(ev, result), nil
}

func (r *reconciliationImpl) record(ctx context.Context, tx shared.Tx, ev *payment.Event, o *order.Order) error {
	rec, err := payment.NewRecord(ev, o.ID(), r.clock.Now())
	if err != nil {
		return err
	}
	if err := tx.PaymentEvents().Insert(ctx, rec); err != nil {
		if infra.IsKind(err, infra.KindDuplicateKey) {
			return errEventReplayed
		}
		return errs.Mark(err, ErrDatabaseOperationFailed)
	}
	return nil
}

func (r *reconciliationImpl) done(ev *payment.Event, result ReconcileResult) ReconcileResult {
	reconcileEvents.WithLabelValues(ev.Provider.String(), string(result)).Inc()
	return result
}
