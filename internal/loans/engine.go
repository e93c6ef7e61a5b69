package loans

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	pkgerrors "github.com/lenddesk/lenddesk-backend/pkg/errors"
	"github.com/lenddesk/lenddesk-backend/pkg/logger"
	"github.com/lenddesk/lenddesk-backend/pkg/metrics"
)

// Store is the slice of the record store the workflow engine needs. The
// engine holds no state of its own; the store is the source of truth for
// conflict checks.
type Store interface {
	AddLoan(ctx context.Context, loan Loan) error
	LoansForItem(ctx context.Context, itemID uuid.UUID) ([]Loan, error)
	HasItem(ctx context.Context, itemID uuid.UUID) (bool, error)
	HasUser(ctx context.Context, userID uuid.UUID) (bool, error)
}

// Proposal is a candidate loan submitted to the engine.
type Proposal struct {
	Variant string
	ItemID  uuid.UUID
	UserID  uuid.UUID
	Start   string
	End     string
	Extras  Extras
}

// ServiceParams groups dependencies for the loan workflow engine.
type ServiceParams struct {
	Store   Store
	Logger  *logger.Logger
	Metrics *metrics.LoanMetrics
}

// Service exposes the loan workflow.
type Service interface {
	ProposeLoan(ctx context.Context, proposal Proposal) (Loan, error)
	LoansForItem(ctx context.Context, itemID uuid.UUID) ([]Loan, error)
}

type service struct {
	store   Store
	logg    *logger.Logger
	metrics *metrics.LoanMetrics
	locks   itemLocks
}

// NewService builds the workflow engine with the required dependencies.
func NewService(params ServiceParams) (Service, error) {
	if params.Store == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "record store is required")
	}
	return &service{
		store:   params.Store,
		logg:    params.Logger,
		metrics: params.Metrics,
	}, nil
}

// ProposeLoan runs the full check-then-write sequence: interval gates,
// referential checks, conflict detection under the item's lock, variant
// construction and the single append. On any rejection nothing is written.
func (s *service) ProposeLoan(ctx context.Context, proposal Proposal) (Loan, error) {
	started := time.Now()
	loan, err := s.propose(ctx, proposal)
	s.metrics.ObserveDuration(time.Since(started))
	s.metrics.IncProposal(outcomeFor(err))
	if err == nil {
		s.metrics.IncWritten()
	}
	return loan, err
}

func (s *service) propose(ctx context.Context, proposal Proposal) (Loan, error) {
	newStart, newEnd, err := ParseInterval(proposal.Start, proposal.End)
	if err != nil {
		return Loan{}, err
	}

	if err := s.checkReferences(ctx, proposal); err != nil {
		return Loan{}, err
	}

	// The fetch-evaluate-append sequence is a critical section per item:
	// two concurrent proposals must not both pass the conflict check
	// against a stale snapshot.
	unlock := s.locks.lock(proposal.ItemID)
	defer unlock()

	if err := s.checkConflict(ctx, proposal.ItemID, newStart, newEnd); err != nil {
		return Loan{}, err
	}

	loan, err := NewLoan(proposal.Variant, proposal.ItemID, proposal.UserID, proposal.Start, proposal.End, proposal.Extras)
	if err != nil {
		return Loan{}, err
	}

	if err := s.store.AddLoan(ctx, loan); err != nil {
		return Loan{}, pkgerrors.Wrap(pkgerrors.CodeStorage, err, "persisting loan")
	}

	if s.logg != nil {
		lctx := s.logg.WithLoanID(ctx, loan.ID.String())
		lctx = s.logg.WithItemID(lctx, loan.ItemID.String())
		s.logg.Info(lctx, "loan recorded")
	}
	return loan, nil
}

// LoansForItem returns every loan recorded for the item, any variant, in
// insertion order. An unknown item yields an empty slice, not an error.
func (s *service) LoansForItem(ctx context.Context, itemID uuid.UUID) ([]Loan, error) {
	existing, err := s.store.LoansForItem(ctx, itemID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeStorage, err, "loading loans")
	}
	return existing, nil
}

func (s *service) checkReferences(ctx context.Context, proposal Proposal) error {
	if proposal.ItemID == uuid.Nil {
		return pkgerrors.New(pkgerrors.CodeValidation, "item id is required")
	}
	if proposal.UserID == uuid.Nil {
		return pkgerrors.New(pkgerrors.CodeValidation, "user id is required")
	}
	ok, err := s.store.HasItem(ctx, proposal.ItemID)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeStorage, err, "looking up item")
	}
	if !ok {
		return pkgerrors.New(pkgerrors.CodeNotFound, "item not found")
	}
	ok, err = s.store.HasUser(ctx, proposal.UserID)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeStorage, err, "looking up user")
	}
	if !ok {
		return pkgerrors.New(pkgerrors.CodeNotFound, "user not found")
	}
	return nil
}

func (s *service) checkConflict(ctx context.Context, itemID uuid.UUID, newStart, newEnd time.Time) error {
	existing, err := s.store.LoansForItem(ctx, itemID)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeStorage, err, "loading existing loans")
	}

	for _, loan := range existing {
		existingStart, existingEnd, parseErr := loan.Interval()
		if parseErr != nil {
			// Corrupt historical records never block a valid proposal
			// and are never a conflict.
			if s.logg != nil {
				lctx := s.logg.WithLoanID(ctx, loan.ID.String())
				s.logg.Warn(lctx, "skipping loan with unparseable interval")
			}
			continue
		}
		if overlaps(existingStart, existingEnd, newStart, newEnd) {
			return pkgerrors.New(pkgerrors.CodeConflict, "interval overlaps an existing loan").
				WithDetails(map[string]string{
					"conflicting_loan_id": loan.ID.String(),
					"start_time":          loan.StartTime,
					"end_time":            loan.EndTime,
				})
		}
	}
	return nil
}

func outcomeFor(err error) string {
	if err == nil {
		return metrics.OutcomeAccepted
	}
	typed := pkgerrors.As(err)
	if typed == nil {
		return metrics.OutcomeStorage
	}
	switch typed.Code() {
	case pkgerrors.CodeInvalidFormat:
		return metrics.OutcomeInvalidFormat
	case pkgerrors.CodeInvalidOrder:
		return metrics.OutcomeInvalidOrder
	case pkgerrors.CodeConflict:
		return metrics.OutcomeConflict
	case pkgerrors.CodeUnknownVariant:
		return metrics.OutcomeUnknownVariant
	case pkgerrors.CodeNotFound:
		return metrics.OutcomeNotFound
	case pkgerrors.CodeValidation:
		return metrics.OutcomeValidation
	default:
		return metrics.OutcomeStorage
	}
}

// itemLocks hands out one mutex per item id, serializing proposals that
// target the same item while leaving distinct items independent.
type itemLocks struct {
	mu    sync.Mutex
	locks map[uuid.UUID]*sync.Mutex
}

func (l *itemLocks) lock(itemID uuid.UUID) func() {
	l.mu.Lock()
	if l.locks == nil {
		l.locks = make(map[uuid.UUID]*sync.Mutex)
	}
	m, ok := l.locks[itemID]
	if !ok {
		m = &sync.Mutex{}
		l.locks[itemID] = m
	}
	l.mu.Unlock()

	m.Lock()
	return m.Unlock
}
