/*
Package ledger moves money between profiles.

Every balance change goes through the transfer primitive, which runs inside
a repository transaction bounded by the configured processing timeout. Job
payment and deposit are the two workflows built on top of it.

Usage:

	svc := ledger.NewService(repo, reports, ledger.LedgerConfig{}, metrics, logger)

	// Settle an unpaid job on behalf of its client
	err := svc.PayJob(ctx, jobID, caller)

	// Move funds from one client to another, capped by the depositor's
	// outstanding job obligations
	err = svc.Deposit(ctx, caller, destinationID, amount)

Errors are the domain errors of jobpay/internal/errors; repository failures
never leak to callers untranslated.
*/
package ledger
