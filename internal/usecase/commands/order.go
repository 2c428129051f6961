package commands

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"sync"
	"time"

	"fractional-market/internal/domain/lot"
	"fractional-market/internal/domain/order"
	"fractional-market/internal/domain/payment"
	"fractional-market/internal/infra"
	"fractional-market/internal/pkg/clock"
	"fractional-market/internal/pkg/errs"
	"fractional-market/internal/pkg/patch"
	"fractional-market/internal/usecase/queries"
	"fractional-market/internal/usecase/shared"

	"github.com/google/uuid"
)

var (
	ErrLotNotFound             = errs.New("lot not found")
	ErrOrderNotFound           = errs.New("order not found")
	ErrDatabaseOperationFailed = errs.New("database operation failed")
)

type CreateOrderInput struct {
	LotID         uuid.UUID
	FractionCount int32
	Provider      payment.Provider
	// ReturnURL and CancelURL override the provider's configured redirects when set
	ReturnURL *string
	CancelURL *string
}

type OrderCommands interface {
	CreateOrder(ctx context.Context, userID uuid.UUID, in CreateOrderInput) (*queries.OrderView, error)
	CancelOrder(ctx context.Context, userID, orderID uuid.UUID) (*queries.OrderView, error)
	// ExpireOrders cancels awaiting_payment orders created before cutoff and returns how many it cancelled.
	ExpireOrders(ctx context.Context, cutoff time.Time, limit int32) (int, error)
}

type orderCommandsImpl struct {
	uow           shared.UnitOfWork
	gateways      shared.GatewayRegistry
	factory       *order.Factory
	orderQueries  queries.OrderQueries
	clock         clock.Clock
	createTimeout time.Duration
	quarantine    *releaseQuarantine
}

func NewOrderCommands(
	uow shared.UnitOfWork,
	gateways shared.GatewayRegistry,
	factory *order.Factory,
	orderQueries queries.OrderQueries,
	clock clock.Clock,
	createTimeout time.Duration,
) OrderCommands {
	return &orderCommandsImpl{
		uow:           uow,
		gateways:      gateways,
		factory:       factory,
		orderQueries:  orderQueries,
		clock:         clock,
		createTimeout: createTimeout,
		quarantine:    &releaseQuarantine{},
	}
}

// CreateOrder reserves fractions, opens a checkout session and attaches it in a
// single transaction. Any failure, including the deadline, rolls the reservation back.
func (c *orderCommandsImpl) CreateOrder(ctx context.Context, userID uuid.UUID, in CreateOrderInput) (*queries.OrderView, error) {
	gw, err := c.gateways.Get(in.Provider)
	if err != nil {
		return nil, err
	}
	if !gw.Enabled() {
		return nil, errs.Wrapf(payment.ErrProviderDisabled, "provider %q", in.Provider)
	}

	successURL := patch.Coalesce(in.ReturnURL, gw.SuccessURL())
	cancelURL := patch.Coalesce(in.CancelURL, gw.CancelURL())

	createCtx := ctx
	if c.createTimeout > 0 {
		var cancel context.CancelFunc
		createCtx, cancel = context.WithTimeout(ctx, c.createTimeout)
		defer cancel()
	}

	var created *order.Order
	err = c.uow.Within(createCtx, func(ctx context.Context, tx shared.Tx) error {
		lotEntity, err := tx.Lots().FindByID(ctx, in.LotID)
		if err != nil {
			if infra.IsKind(err, infra.KindNotFound) {
				return ErrLotNotFound
			}
			return errs.Mark(err, ErrDatabaseOperationFailed)
		}

		o, err := c.factory.CreateOrder(userID, lotEntity, in.FractionCount, in.Provider)
		if err != nil {
			return err
		}

		if _, err := tx.Lots().Reserve(ctx, lotEntity.ID(), o.FractionCount()); err != nil {
			return markInfra(err)
		}
		if err := tx.Orders().Create(ctx, o); err != nil {
			return errs.Mark(err, ErrDatabaseOperationFailed)
		}

		session, err := gw.CreateCheckoutSession(ctx, payment.CheckoutRequest{
			OrderID:       o.ID(),
			AmountCents:   o.AmountDue().Cents(),
			Currency:      o.AmountDue().Currency(),
			FractionCount: o.FractionCount(),
			LotTitle:      lotEntity.Title(),
			SuccessURL:    successURL,
			CancelURL:     cancelURL,
		})
		if err != nil {
			return err
		}

		if err := o.AttachSession(session.SessionID, session.RedirectURL, c.clock.Now()); err != nil {
			return errs.Wrapf(payment.ErrGatewayUnavailable, "provider returned unusable session: %v", err)
		}
		if err := tx.Orders().AttachSession(ctx, o); err != nil {
			return errs.Mark(err, ErrDatabaseOperationFailed)
		}

		created = o
		return nil
	})
	if err != nil {
		if errors.Is(createCtx.Err(), context.DeadlineExceeded) && !errors.Is(err, payment.ErrGatewayUnavailable) {
			err = errs.Wrapf(payment.ErrGatewayUnavailable, "order creation exceeded %s: %v", c.createTimeout, err)
		}
		slog.Warn("order creation failed",
			"user_id", userID,
			"lot_id", in.LotID,
			"provider", in.Provider.String(),
			"fraction_count", in.FractionCount,
			"error", err.Error())
		return nil, err
	}

	slog.Info("order awaiting payment",
		"order_id", created.ID(),
		"lot_id", created.LotID(),
		"provider", created.Provider().String(),
		"fraction_count", created.FractionCount())

	view, err := c.orderQueries.GetByID(ctx, userID, created.ID())
	if err != nil {
		return nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}
	return view, nil
}

func (c *orderCommandsImpl) CancelOrder(ctx context.Context, userID, orderID uuid.UUID) (*queries.OrderView, error) {
	err := c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		o, err := tx.Orders().FindByIDForUpdate(ctx, orderID)
		if err != nil {
			if infra.IsKind(err, infra.KindNotFound) {
				return ErrOrderNotFound
			}
			return errs.Mark(err, ErrDatabaseOperationFailed)
		}
		if !o.IsOwnedBy(userID) {
			return ErrOrderNotFound
		}

		from := o.Status()
		if err := o.Cancel(c.clock.Now()); err != nil {
			return errs.Wrapf(err, "cancel order in status %s", from)
		}
		return applyTransition(ctx, tx, o, from)
	})
	if err != nil {
		return nil, err
	}

	slog.Info("order cancelled by user", "order_id", orderID, "user_id", userID)

	view, err := c.orderQueries.GetByID(ctx, userID, orderID)
	if err != nil {
		return nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}
	return view, nil
}

// ExpireOrders claims a batch of ids with SKIP LOCKED and cancels each order in
// its own transaction. An order the ledger refuses to release is quarantined:
// later sweeps exclude it, so it cannot hold up the orders queued behind it.
func (c *orderCommandsImpl) ExpireOrders(ctx context.Context, cutoff time.Time, limit int32) (int, error) {
	var claimed []uuid.UUID
	err := c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		orders, err := tx.Orders().ListExpiredAwaiting(ctx, cutoff, limit, c.quarantine.list())
		if err != nil {
			return errs.Mark(err, ErrDatabaseOperationFailed)
		}
		claimed = make([]uuid.UUID, 0, len(orders))
		for _, o := range orders {
			claimed = append(claimed, o.ID())
		}
		return nil
	})
	if err != nil {
		return 0, err
	}

	expired := 0
	for _, id := range claimed {
		ok, err := c.expireOne(ctx, id, cutoff)
		if errors.Is(err, lot.ErrOverRelease) {
			c.quarantine.add(id)
			slog.Error("expired order quarantined for manual reconciliation",
				"critical", true,
				"order_id", id)
			continue
		}
		if err != nil {
			return expired, err
		}
		if ok {
			expired++
		}
	}
	return expired, nil
}

// expireOne reports false without error when a callback, a user cancel or
// another sweeper settled the order between the claim and the row lock.
func (c *orderCommandsImpl) expireOne(ctx context.Context, id uuid.UUID, cutoff time.Time) (bool, error) {
	var expired *order.Order
	err := c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		expired = nil
		o, err := tx.Orders().FindByIDForUpdate(ctx, id)
		if err != nil {
			if infra.IsKind(err, infra.KindNotFound) {
				return nil
			}
			return errs.Mark(err, ErrDatabaseOperationFailed)
		}
		if o.Status() != order.StatusAwaitingPayment || !o.CreatedAt().Before(cutoff) {
			return nil
		}

		from := o.Status()
		if err := o.Cancel(c.clock.Now()); err != nil {
			return err
		}
		if err := applyTransition(ctx, tx, o, from); err != nil {
			return err
		}
		expired = o
		return nil
	})
	if err != nil || expired == nil {
		return false, err
	}

	slog.Info("order expired", "order_id", expired.ID(), "lot_id", expired.LotID(), "fraction_count", expired.FractionCount())
	return true, nil
}

// releaseQuarantine holds ids of orders whose release the ledger refused.
type releaseQuarantine struct {
	mu  sync.Mutex
	ids map[uuid.UUID]struct{}
}

func (q *releaseQuarantine) add(id uuid.UUID) {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.ids == nil {
		q.ids = make(map[uuid.UUID]struct{})
	}
	q.ids[id] = struct{}{}
}

func (q *releaseQuarantine) list() []uuid.UUID {
	q.mu.Lock()
	defer q.mu.Unlock()
	out := make([]uuid.UUID, 0, len(q.ids))
	for id := range q.ids {
		out = append(out, id)
	}
	return out
}

// applyTransition persists o's new status, hands fractions back for failed and
// cancelled orders and queues the outcome event, all on the caller's transaction.
func applyTransition(ctx context.Context, tx shared.Tx, o *order.Order, from order.Status) error {
	if err := tx.Orders().Transition(ctx, o, from); err != nil {
		return errs.Mark(err, ErrDatabaseOperationFailed)
	}

	if o.Status().ReleasesFractions() {
		if _, err := tx.Lots().Release(ctx, o.LotID(), o.FractionCount()); err != nil {
			if errors.Is(err, lot.ErrOverRelease) {
				slog.Error("ledger over-release refused",
					"critical", true,
					"order_id", o.ID(),
					"lot_id", o.LotID(),
					"fraction_count", o.FractionCount(),
					"error", err.Error())
			}
			return markInfra(err)
		}
	}

	topic, ok := topicFor(o.Status())
	if !ok {
		return nil
	}
	payload, err := json.Marshal(shared.OrderEventPayload{
		OrderID:         o.ID(),
		UserID:          o.UserID(),
		LotID:           o.LotID(),
		FractionCount:   o.FractionCount(),
		Status:          o.Status().String(),
		Provider:        o.Provider().String(),
		AmountDueCents:  o.AmountDue().Cents(),
		AmountPaidCents: o.AmountPaidCents(),
		Currency:        o.AmountDue().Currency(),
		OccurredAt:      o.UpdatedAt(),
	})
	if err != nil {
		return errs.Wrap(err, "encode order event")
	}
	if err := tx.Outbox().Enqueue(ctx, o.ID(), topic, payload); err != nil {
		return errs.Mark(err, ErrDatabaseOperationFailed)
	}
	return nil
}

func topicFor(s order.Status) (string, bool) {
	switch s {
	case order.StatusPaid:
		return shared.TopicOrderPaid, true
	case order.StatusFailed:
		return shared.TopicOrderFailed, true
	case order.StatusCancelled:
		return shared.TopicOrderCancelled, true
	default:
		return "", false
	}
}

// markInfra leaves domain refusals untouched and marks storage failures.
func markInfra(err error) error {
	var repoErr infra.RepositoryError
	if errors.As(err, &repoErr) {
		return errs.Mark(err, ErrDatabaseOperationFailed)
	}
	return err
}
