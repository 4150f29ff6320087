package pledge

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/yawboadu/churchledger/internal/domain/entity"
	errs "github.com/yawboadu/churchledger/internal/domain/error"
	coreport "github.com/yawboadu/churchledger/internal/domain/port/core"
	"github.com/yawboadu/churchledger/internal/domain/port/persistence"
	"github.com/yawboadu/churchledger/internal/domain/port/usecase"
	"github.com/yawboadu/churchledger/internal/infrastructure/adapter/logger"
	timeadapter "github.com/yawboadu/churchledger/internal/infrastructure/adapter/time"
	mockpersistence "github.com/yawboadu/churchledger/mocks/port/persistence"
)

// fakeLedgerStore is an in-memory unit of work backing end-to-end service
// tests. Transactions are serialized by a coarse lock and mutations inside a
// transaction record undo actions, so a rollback really does discard the
// transaction's writes. The balance write enforces the same version
// compare-and-swap as the real repository.
type fakeLedgerStore struct {
	mu          sync.Mutex
	txMu        sync.Mutex
	commitments map[uuid.UUID]*entity.Commitment
	payments    map[uuid.UUID]*entity.PaymentRecord
	tp          coreport.TimeProvider
}

type fakeTxKey struct{}

type fakeTx struct {
	undo []func()
}

func newFakeLedgerStore(tp coreport.TimeProvider) *fakeLedgerStore {
	return &fakeLedgerStore{
		commitments: make(map[uuid.UUID]*entity.Commitment),
		payments:    make(map[uuid.UUID]*entity.PaymentRecord),
		tp:          tp,
	}
}

func (s *fakeLedgerStore) recordUndo(ctx context.Context, fn func()) {
	if tx, ok := ctx.Value(fakeTxKey{}).(*fakeTx); ok {
		tx.undo = append(tx.undo, fn)
	}
}

func (s *fakeLedgerStore) Begin(ctx context.Context) (context.Context, error) {
	s.txMu.Lock()
	return context.WithValue(ctx, fakeTxKey{}, &fakeTx{}), nil
}

func (s *fakeLedgerStore) Commit(ctx context.Context) error {
	tx, ok := ctx.Value(fakeTxKey{}).(*fakeTx)
	if !ok {
		return errors.New("no transaction in context")
	}
	tx.undo = nil
	s.txMu.Unlock()
	return nil
}

func (s *fakeLedgerStore) Rollback(ctx context.Context) error {
	tx, ok := ctx.Value(fakeTxKey{}).(*fakeTx)
	if !ok {
		return errors.New("no transaction in context")
	}
	s.mu.Lock()
	for i := len(tx.undo) - 1; i >= 0; i-- {
		tx.undo[i]()
	}
	tx.undo = nil
	s.mu.Unlock()
	s.txMu.Unlock()
	return nil
}

func (s *fakeLedgerStore) GetCommitmentRepository(ctx context.Context) persistence.CommitmentRepository {
	return &fakeCommitmentRepo{store: s}
}

func (s *fakeLedgerStore) GetPaymentRepository(ctx context.Context) persistence.PaymentRepository {
	return &fakePaymentRepo{store: s}
}

type fakeCommitmentRepo struct {
	store *fakeLedgerStore
}

func (r *fakeCommitmentRepo) Create(ctx context.Context, commitment *entity.Commitment) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	cp := *commitment
	r.store.commitments[commitment.ID] = &cp
	r.store.recordUndo(ctx, func() { delete(r.store.commitments, commitment.ID) })
	return nil
}

func (r *fakeCommitmentRepo) GetByID(ctx context.Context, churchID, id uuid.UUID) (*entity.Commitment, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	c, ok := r.store.commitments[id]
	if !ok || c.ChurchID != churchID {
		return nil, errs.ErrPledgeNotFound
	}
	cp := *c
	return &cp, nil
}

func (r *fakeCommitmentRepo) UpdateBalance(ctx context.Context, churchID, id uuid.UUID, amountPaid decimal.Decimal, fulfilled bool, expectedVersion uint64) (*entity.Commitment, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	c, ok := r.store.commitments[id]
	if !ok || c.ChurchID != churchID {
		return nil, errs.ErrPledgeNotFound
	}
	if c.Version != expectedVersion {
		return nil, errs.ErrConflict
	}
	prev := *c
	c.SetAmountPaid(amountPaid, r.store.tp)
	c.IsFulfilled = fulfilled
	c.Version = expectedVersion + 1
	r.store.recordUndo(ctx, func() {
		restored := prev
		r.store.commitments[id] = &restored
	})
	cp := *c
	return &cp, nil
}

func (r *fakeCommitmentRepo) Delete(ctx context.Context, churchID, id uuid.UUID) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	c, ok := r.store.commitments[id]
	if !ok || c.ChurchID != churchID {
		return errs.ErrPledgeNotFound
	}
	delete(r.store.commitments, id)
	r.store.recordUndo(ctx, func() { r.store.commitments[id] = c })
	return nil
}

func (r *fakeCommitmentRepo) ListByChurch(ctx context.Context, churchID uuid.UUID) ([]*entity.Commitment, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	var result []*entity.Commitment
	for _, c := range r.store.commitments {
		if c.ChurchID == churchID {
			cp := *c
			result = append(result, &cp)
		}
	}
	return result, nil
}

type fakePaymentRepo struct {
	store *fakeLedgerStore
}

func (r *fakePaymentRepo) Create(ctx context.Context, record *entity.PaymentRecord) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	cp := *record
	r.store.payments[record.ID] = &cp
	r.store.recordUndo(ctx, func() { delete(r.store.payments, record.ID) })
	return nil
}

func (r *fakePaymentRepo) GetByID(ctx context.Context, churchID, id uuid.UUID) (*entity.PaymentRecord, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	p, ok := r.store.payments[id]
	if !ok || p.ChurchID != churchID {
		return nil, errs.ErrPaymentNotFound
	}
	cp := *p
	return &cp, nil
}

func (r *fakePaymentRepo) Delete(ctx context.Context, churchID, id uuid.UUID) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	p, ok := r.store.payments[id]
	if !ok || p.ChurchID != churchID {
		return errs.ErrPaymentNotFound
	}
	delete(r.store.payments, id)
	r.store.recordUndo(ctx, func() { r.store.payments[id] = p })
	return nil
}

func (r *fakePaymentRepo) ListByPledge(ctx context.Context, churchID, pledgeID uuid.UUID) ([]*entity.PaymentRecord, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	var result []*entity.PaymentRecord
	for _, p := range r.store.payments {
		if p.ChurchID == churchID && p.PledgeID == pledgeID {
			cp := *p
			result = append(result, &cp)
		}
	}
	return result, nil
}

func (r *fakePaymentRepo) SumByPledge(ctx context.Context, churchID, pledgeID uuid.UUID) (decimal.Decimal, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	sum := decimal.Zero
	for _, p := range r.store.payments {
		if p.ChurchID == churchID && p.PledgeID == pledgeID {
			sum = sum.Add(p.Amount)
		}
	}
	return sum, nil
}

func (r *fakePaymentRepo) CountByPledge(ctx context.Context, churchID, pledgeID uuid.UUID) (int64, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	var count int64
	for _, p := range r.store.payments {
		if p.ChurchID == churchID && p.PledgeID == pledgeID {
			count++
		}
	}
	return count, nil
}

func pledgeInput(churchID uuid.UUID, contributor entity.Contributor) usecase.CreateCommitmentInput {
	return usecase.CreateCommitmentInput{
		ChurchID:     churchID,
		Contributor:  contributor,
		PledgeAmount: "500.00",
		Currency:     "GHS",
		PledgeDate:   time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC),
	}
}

func paymentInput(churchID, pledgeID uuid.UUID, amount string) usecase.RecordPaymentInput {
	return usecase.RecordPaymentInput{
		ChurchID:    churchID,
		PledgeID:    pledgeID,
		Amount:      amount,
		Currency:    "GHS",
		PaymentDate: time.Date(2023, 1, 15, 0, 0, 0, 0, time.UTC),
		Method:      "cash",
		Actor:       "treasurer-1",
	}
}

func TestLedgerFlow(t *testing.T) {
	ctx := context.Background()
	churchID := uuid.New()
	tp := timeadapter.NewRealTimeProvider()

	newFlowService := func() (*Service, *fakeLedgerStore) {
		store := newFakeLedgerStore(tp)
		service := NewService(store, new(mockpersistence.MockContributorResolver), tp, logger.NewNoopLogger())
		return service, store
	}

	createPledge := func(t *testing.T, service *Service) *entity.Commitment {
		t.Helper()
		contributor, err := entity.NewVisitorContributor("Ama", "Mensah", "", "")
		assert.NoError(t, err)
		commitment, err := service.CreateCommitment(ctx, pledgeInput(churchID, contributor))
		assert.NoError(t, err)
		return commitment
	}

	pay := func(t *testing.T, service *Service, pledgeID uuid.UUID, amount string) *entity.PaymentRecord {
		t.Helper()
		record, err := service.RecordPayment(ctx, paymentInput(churchID, pledgeID, amount))
		assert.NoError(t, err)
		return record
	}

	t.Run("should keep the balance consistent through payments and deletions", func(t *testing.T) {
		service, _ := newFlowService()
		commitment := createPledge(t, service)

		// First installment: 200.00 of 500.00
		pay(t, service, commitment.ID, "200.00")

		current, err := service.GetCommitment(ctx, churchID, commitment.ID)
		assert.NoError(t, err)
		assert.Equal(t, "200.00", entity.FormatAmount(current.AmountPaid()))
		assert.Equal(t, "300.00", entity.FormatAmount(current.Remaining()))
		assert.False(t, current.IsFulfilled)

		// Second installment fills the pledge exactly
		second := pay(t, service, commitment.ID, "300.00")

		current, err = service.GetCommitment(ctx, churchID, commitment.ID)
		assert.NoError(t, err)
		assert.Equal(t, "500.00", entity.FormatAmount(current.AmountPaid()))
		assert.True(t, current.Remaining().IsZero())
		assert.True(t, current.IsFulfilled)

		// Even one more pesewa is rejected
		_, err = service.RecordPayment(ctx, paymentInput(churchID, commitment.ID, "1.00"))
		assert.ErrorIs(t, err, errs.ErrOverpayment)

		// Deleting the 300.00 payment recomputes the balance from the rows
		err = service.DeletePayment(ctx, churchID, commitment.ID, second.ID)
		assert.NoError(t, err)

		current, err = service.GetCommitment(ctx, churchID, commitment.ID)
		assert.NoError(t, err)
		assert.Equal(t, "200.00", entity.FormatAmount(current.AmountPaid()))
		assert.False(t, current.IsFulfilled)

		records, err := service.ListPayments(ctx, churchID, commitment.ID)
		assert.NoError(t, err)
		assert.Len(t, records, 1)
		assert.Equal(t, "200.00", entity.FormatAmount(records[0].Amount))
	})

	t.Run("should refuse pledge deletion until the payments are gone", func(t *testing.T) {
		service, _ := newFlowService()
		commitment := createPledge(t, service)
		record := pay(t, service, commitment.ID, "200.00")

		err := service.DeleteCommitment(ctx, churchID, commitment.ID)
		assert.ErrorIs(t, err, errs.ErrHasPayments)

		assert.NoError(t, service.DeletePayment(ctx, churchID, commitment.ID, record.ID))
		assert.NoError(t, service.DeleteCommitment(ctx, churchID, commitment.ID))

		_, err = service.GetCommitment(ctx, churchID, commitment.ID)
		assert.ErrorIs(t, err, errs.ErrPledgeNotFound)
	})

	t.Run("should hide the pledge from other churches", func(t *testing.T) {
		service, _ := newFlowService()
		commitment := createPledge(t, service)

		_, err := service.GetCommitment(ctx, uuid.New(), commitment.ID)
		assert.ErrorIs(t, err, errs.ErrPledgeNotFound)

		_, err = service.RecordPayment(ctx, paymentInput(uuid.New(), commitment.ID, "100.00"))
		assert.ErrorIs(t, err, errs.ErrPledgeNotFound)
	})

	t.Run("should never exceed the pledge under concurrent payments", func(t *testing.T) {
		service, store := newFlowService()
		commitment := createPledge(t, service)

		// Eight writers race to pay 100.00 each against a 500.00 pledge.
		// Exactly five can fit; the rest must be rejected as overpayments.
		const writers = 8
		results := make(chan error, writers)
		var wg sync.WaitGroup
		for i := 0; i < writers; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				_, err := service.RecordPayment(ctx, paymentInput(churchID, commitment.ID, "100.00"))
				results <- err
			}()
		}
		wg.Wait()
		close(results)

		var succeeded, rejected int
		for err := range results {
			switch {
			case err == nil:
				succeeded++
			case errors.Is(err, errs.ErrOverpayment):
				rejected++
			default:
				t.Fatalf("unexpected error: %v", err)
			}
		}
		assert.Equal(t, 5, succeeded)
		assert.Equal(t, 3, rejected)

		current, err := service.GetCommitment(ctx, churchID, commitment.ID)
		assert.NoError(t, err)
		assert.Equal(t, "500.00", entity.FormatAmount(current.AmountPaid()))
		assert.True(t, current.IsFulfilled)

		// The cached balance matches the surviving rows exactly
		sum, err := store.GetPaymentRepository(ctx).SumByPledge(ctx, churchID, commitment.ID)
		assert.NoError(t, err)
		assert.True(t, sum.Equal(current.AmountPaid()))

		count, err := store.GetPaymentRepository(ctx).CountByPledge(ctx, churchID, commitment.ID)
		assert.NoError(t, err)
		assert.Equal(t, int64(5), count)
	})
}
