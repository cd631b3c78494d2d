package ledger

import (
	"context"
	"errors"
	"fmt"
	"time"

	"jobpay/internal/domain/scope"
	appErrors "jobpay/internal/errors"
	"jobpay/internal/models"
	"jobpay/internal/repositories"

	"github.com/shopspring/decimal"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

type service struct {
	repo    repositories.LedgerRepository
	reports ReportInvalidator
	config  LedgerConfig
	metrics MetricsCollector
	logger  *zap.Logger
	tracer  trace.Tracer
}

// NewService creates a new ledger service
func NewService(
	repo repositories.LedgerRepository,
	reports ReportInvalidator,
	config LedgerConfig,
	metrics MetricsCollector,
	logger *zap.Logger,
) Service {
	if repo == nil {
		panic("repo is required")
	}

	if config.DepositCapRatio <= 0 {
		config.DepositCapRatio = DefaultDepositCapRatio
	}
	if config.ProcessingTimeout == 0 {
		config.ProcessingTimeout = DefaultTimeout
	}
	if config.Clock == nil {
		config.Clock = time.Now
	}

	// Metrics, logging and report invalidation are optional
	if metrics == nil {
		metrics = &NoopMetricsCollector{}
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	return &service{
		repo:    repo,
		reports: reports,
		config:  config,
		metrics: metrics,
		logger:  logger.Named("ledger"),
		tracer:  otel.Tracer(tracerName),
	}
}

func (s *service) ResolveScope(caller *models.Profile) scope.Filter {
	return scope.ByProfile(caller)
}

func (s *service) Transfer(ctx context.Context, req TransferRequest) (*models.Transfer, error) {
	ctx, span := s.start(ctx, OpTransfer)
	defer span.End()
	began := s.config.Clock()

	transfer, err := s.transfer(ctx, req, nil)
	return transfer, s.finish(span, OpTransfer, began, err)
}

func (s *service) PayJob(ctx context.Context, jobID uint, caller *models.Profile) error {
	ctx, span := s.start(ctx, OpPayJob)
	defer span.End()
	span.SetAttributes(attribute.Int64("job.id", int64(jobID)), attribute.Int64("profile.id", int64(caller.ID)))
	began := s.config.Clock()

	err := s.payJob(ctx, jobID, caller)
	return s.finish(span, OpPayJob, began, err)
}

func (s *service) payJob(ctx context.Context, jobID uint, caller *models.Profile) error {
	ctx, cancel := context.WithTimeout(ctx, s.config.ProcessingTimeout)
	defer cancel()

	job, err := s.repo.FindUnpaidJob(ctx, jobID, s.ResolveScope(caller))
	if err != nil {
		if errors.Is(err, repositories.ErrJobNotFound) {
			return appErrors.ErrNotFound
		}
		return fmt.Errorf("failed to find job: %w", err)
	}
	if !caller.IsClient() {
		return appErrors.ErrUnauthorized
	}
	if caller.Balance.LessThan(job.Price) {
		return appErrors.ErrInsufficientFunds
	}
	if job.Contract == nil {
		return fmt.Errorf("job %d loaded without its contract: %w", job.ID, appErrors.ErrTransferFailed)
	}

	req := TransferRequest{
		Kind:          models.TransferKindJobPayment,
		SourceID:      job.Contract.ClientID,
		DestinationID: job.Contract.ContractorID,
		Amount:        job.Price,
		JobID:         &job.ID,
	}
	paidAt := s.config.Clock()
	claim := func(tx repositories.LedgerRepository) error {
		return tx.ClaimJobPayment(ctx, job.ID, paidAt)
	}
	if _, err := s.transfer(ctx, req, claim); err != nil {
		return err
	}

	if s.reports != nil {
		if err := s.reports.Invalidate(ctx); err != nil {
			s.logger.Warn("failed to invalidate report cache", zap.Error(err))
		}
	}

	s.logger.Info("job paid",
		zap.Uint("job_id", job.ID),
		zap.Uint("client_id", req.SourceID),
		zap.Uint("contractor_id", req.DestinationID),
		zap.String("amount", job.Price.StringFixed(2)),
	)
	return nil
}

func (s *service) Deposit(ctx context.Context, caller *models.Profile, destinationID uint, amount decimal.Decimal) error {
	ctx, span := s.start(ctx, OpDeposit)
	defer span.End()
	span.SetAttributes(attribute.Int64("profile.id", int64(caller.ID)), attribute.Int64("destination.id", int64(destinationID)))
	began := s.config.Clock()

	err := s.deposit(ctx, caller, destinationID, amount)
	return s.finish(span, OpDeposit, began, err)
}

func (s *service) deposit(ctx context.Context, caller *models.Profile, destinationID uint, amount decimal.Decimal) error {
	ctx, cancel := context.WithTimeout(ctx, s.config.ProcessingTimeout)
	defer cancel()

	if !amount.IsPositive() {
		return appErrors.ErrInvalidAmount
	}
	if !caller.IsClient() {
		return appErrors.ErrUnauthorized
	}
	if amount.GreaterThan(caller.Balance) {
		return appErrors.ErrInsufficientFunds
	}

	destination, err := s.repo.GetProfile(ctx, destinationID)
	if err != nil {
		if errors.Is(err, repositories.ErrProfileNotFound) {
			return appErrors.ErrNotFound
		}
		return fmt.Errorf("failed to get destination profile: %w", err)
	}
	if !destination.IsClient() {
		return appErrors.ErrNotFound
	}

	unpaid, err := s.repo.SumUnpaidJobs(ctx, s.ResolveScope(caller))
	if err != nil {
		return fmt.Errorf("failed to sum unpaid jobs: %w", err)
	}
	limit := unpaid.Mul(decimal.NewFromFloat(s.config.DepositCapRatio))
	if amount.GreaterThan(limit) {
		s.logger.Debug("deposit over cap",
			zap.Uint("profile_id", caller.ID),
			zap.String("amount", amount.String()),
			zap.String("cap", limit.String()),
		)
		return appErrors.ErrBusinessRuleViolation
	}

	_, err = s.transfer(ctx, TransferRequest{
		Kind:          models.TransferKindDeposit,
		SourceID:      caller.ID,
		DestinationID: destinationID,
		Amount:        amount,
	}, nil)
	return err
}

// transfer runs the transfer primitive in its own transaction. before, when
// set, runs first inside the same transaction and aborts it on error.
func (s *service) transfer(ctx context.Context, req TransferRequest, before func(repositories.LedgerRepository) error) (*models.Transfer, error) {
	if !req.Amount.IsPositive() {
		return nil, appErrors.ErrInvalidAmount
	}
	if req.SourceID == req.DestinationID {
		return nil, appErrors.ErrInvalidTransfer
	}

	ctx, cancel := context.WithTimeout(ctx, s.config.ProcessingTimeout)
	defer cancel()

	transfer := &models.Transfer{
		Kind:          req.Kind,
		SourceID:      req.SourceID,
		DestinationID: req.DestinationID,
		Amount:        req.Amount,
		JobID:         req.JobID,
	}
	err := s.repo.ExecuteInTransaction(ctx, func(tx repositories.LedgerRepository) error {
		if before != nil {
			if err := before(tx); err != nil {
				return err
			}
		}
		return tx.Transfer(ctx, transfer)
	})
	if err != nil {
		s.logger.Warn("transfer rolled back",
			zap.String("kind", req.Kind),
			zap.Uint("source_id", req.SourceID),
			zap.Uint("destination_id", req.DestinationID),
			zap.Error(err),
		)
		return nil, translate(err)
	}

	s.metrics.RecordTransfer(req.Kind, req.Amount)
	return transfer, nil
}

func (s *service) start(ctx context.Context, op string) (context.Context, trace.Span) {
	return s.tracer.Start(ctx, "ledger."+op)
}

// finish records the outcome of op and returns err unchanged.
func (s *service) finish(span trace.Span, op string, began time.Time, err error) error {
	s.metrics.RecordOperationDuration(op, s.config.Clock().Sub(began))
	if err != nil {
		s.metrics.RecordOperationResult(op, resultFailure)
		code := appErrors.Code(err)
		if code == "" {
			code = "INTERNAL"
		}
		s.metrics.RecordError(op, code)
		span.RecordError(err)
		span.SetStatus(codes.Error, code)
		return err
	}
	s.metrics.RecordOperationResult(op, resultSuccess)
	return nil
}
