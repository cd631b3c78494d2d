package ledger

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"jobpay/internal/domain/scope"
	"jobpay/internal/models"
	"jobpay/internal/repositories"

	"github.com/shopspring/decimal"
)

var errInjected = errors.New("injected fault")

// memStore is an in-memory ledger. Transactions are serialized on mu and
// roll back by restoring a snapshot.
type memStore struct {
	mu        sync.Mutex
	profiles  map[uint]*models.Profile
	contracts map[uint]*models.Contract
	jobs      map[uint]*models.Job
	transfers []*models.Transfer

	// faults
	failAfterDebit bool
	afterFind      func()
}

type memLedger struct {
	st   *memStore
	inTx bool
}

func newMemLedger() *memLedger {
	f := repositories.ReferenceFixture()
	st := &memStore{
		profiles:  map[uint]*models.Profile{},
		contracts: map[uint]*models.Contract{},
		jobs:      map[uint]*models.Job{},
	}
	for _, p := range f.Profiles {
		st.profiles[p.ID] = p
	}
	for _, c := range f.Contracts {
		st.contracts[c.ID] = c
	}
	for _, j := range f.Jobs {
		st.jobs[j.ID] = j
	}
	return &memLedger{st: st}
}

func (r *memLedger) lock() func() {
	if r.inTx {
		return func() {}
	}
	r.st.mu.Lock()
	return r.st.mu.Unlock
}

// profile returns a detached copy, as a fresh database read would.
func (r *memLedger) profile(id uint) *models.Profile {
	defer r.lock()()
	p, ok := r.st.profiles[id]
	if !ok {
		return nil
	}
	cp := *p
	return &cp
}

func (r *memLedger) balance(id uint) decimal.Decimal {
	return r.profile(id).Balance
}

func (r *memLedger) totalBalance() decimal.Decimal {
	defer r.lock()()
	total := decimal.Zero
	for _, p := range r.st.profiles {
		total = total.Add(p.Balance)
	}
	return total
}

func (r *memLedger) jobPaid(id uint) bool {
	defer r.lock()()
	return r.st.jobs[id].PaymentState().IsPaid()
}

func (r *memLedger) transferCount() int {
	defer r.lock()()
	return len(r.st.transfers)
}

func (r *memLedger) GetProfile(ctx context.Context, id uint) (*models.Profile, error) {
	p := r.profile(id)
	if p == nil {
		return nil, repositories.ErrProfileNotFound
	}
	return p, nil
}

func (r *memLedger) FindUnpaidJob(ctx context.Context, jobID uint, filter scope.Filter) (*models.Job, error) {
	job, err := func() (*models.Job, error) {
		defer r.lock()()
		j, ok := r.st.jobs[jobID]
		if !ok || j.PaymentState().IsPaid() {
			return nil, repositories.ErrJobNotFound
		}
		c := r.st.contracts[j.ContractID]
		if !filter.Matches(c) {
			return nil, repositories.ErrJobNotFound
		}
		cj := *j
		cc := *c
		cj.Contract = &cc
		return &cj, nil
	}()
	if err == nil && r.st.afterFind != nil {
		r.st.afterFind()
	}
	return job, err
}

func (r *memLedger) SumUnpaidJobs(ctx context.Context, filter scope.Filter) (decimal.Decimal, error) {
	defer r.lock()()
	total := decimal.Zero
	for _, j := range r.st.jobs {
		if j.PaymentState().IsPaid() || !filter.Matches(r.st.contracts[j.ContractID]) {
			continue
		}
		total = total.Add(j.Price)
	}
	return total, nil
}

func (r *memLedger) ClaimJobPayment(ctx context.Context, jobID uint, at time.Time) error {
	defer r.lock()()
	j, ok := r.st.jobs[jobID]
	if !ok || j.PaymentState().IsPaid() {
		return repositories.ErrJobAlreadyPaid
	}
	j.MarkPaid(at)
	return nil
}

func (r *memLedger) Transfer(ctx context.Context, t *models.Transfer) error {
	defer r.lock()()
	if t.SourceID == t.DestinationID {
		return repositories.ErrSameAccount
	}
	src, ok := r.st.profiles[t.SourceID]
	if !ok {
		return repositories.ErrProfileNotFound
	}
	dst, ok := r.st.profiles[t.DestinationID]
	if !ok {
		return repositories.ErrProfileNotFound
	}
	if src.Balance.LessThan(t.Amount) {
		return repositories.ErrInsufficientFunds
	}
	src.Balance = src.Balance.Sub(t.Amount)
	if r.st.failAfterDebit {
		return errInjected
	}
	dst.Balance = dst.Balance.Add(t.Amount)

	t.ID = uint(len(r.st.transfers) + 1)
	t.Reference = fmt.Sprintf("mem-%d", t.ID)
	r.st.transfers = append(r.st.transfers, t)
	return nil
}

type memSnapshot struct {
	balances  map[uint]decimal.Decimal
	jobs      map[uint]models.Job
	transfers int
}

func (st *memStore) snapshot() memSnapshot {
	s := memSnapshot{
		balances:  map[uint]decimal.Decimal{},
		jobs:      map[uint]models.Job{},
		transfers: len(st.transfers),
	}
	for id, p := range st.profiles {
		s.balances[id] = p.Balance
	}
	for id, j := range st.jobs {
		s.jobs[id] = *j
	}
	return s
}

func (st *memStore) restore(s memSnapshot) {
	for id, b := range s.balances {
		st.profiles[id].Balance = b
	}
	for id, j := range s.jobs {
		cp := j
		st.jobs[id] = &cp
	}
	st.transfers = st.transfers[:s.transfers]
}

func (r *memLedger) ExecuteInTransaction(ctx context.Context, fn func(repositories.LedgerRepository) error) error {
	r.st.mu.Lock()
	defer r.st.mu.Unlock()

	if err := ctx.Err(); err != nil {
		return err
	}
	snap := r.st.snapshot()
	err := fn(&memLedger{st: r.st, inTx: true})
	if err == nil {
		err = ctx.Err()
	}
	if err != nil {
		r.st.restore(snap)
		return err
	}
	return nil
}
