package repositories

import (
	"context"
	"fmt"
	"time"

	"jobpay/internal/models"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Fixture is a complete reference data set.
type Fixture struct {
	Profiles  []*models.Profile
	Contracts []*models.Contract
	Jobs      []*models.Job
}

func paidOn(ts string) (*bool, *time.Time) {
	at, err := time.Parse(time.RFC3339Nano, ts)
	if err != nil {
		panic(fmt.Sprintf("bad fixture timestamp %q: %v", ts, err))
	}
	paid := true
	return &paid, &at
}

func profile(id uint, first, last, profession, balance string, role models.Role) *models.Profile {
	return &models.Profile{
		ID:         id,
		FirstName:  first,
		LastName:   last,
		Profession: profession,
		Balance:    decimal.RequireFromString(balance),
		Type:       role,
	}
}

func contract(id, clientID, contractorID uint, status models.ContractStatus) *models.Contract {
	return &models.Contract{
		ID:           id,
		Terms:        "bla bla bla",
		Status:       status,
		ClientID:     clientID,
		ContractorID: contractorID,
	}
}

func job(id uint, price string, contractID uint, paidAt string) *models.Job {
	j := &models.Job{
		ID:          id,
		Description: "work",
		Price:       decimal.RequireFromString(price),
		ContractID:  contractID,
	}
	if paidAt != "" {
		j.Paid, j.PaymentDate = paidOn(paidAt)
	}
	return j
}

// ReferenceFixture returns a fresh copy of the development data set.
func ReferenceFixture() Fixture {
	return Fixture{
		Profiles: []*models.Profile{
			profile(1, "Harry", "Potter", "Wizard", "1150", models.RoleClient),
			profile(2, "Mr", "Robot", "Hacker", "231.11", models.RoleClient),
			profile(3, "John", "Snow", "Knows nothing", "451.3", models.RoleClient),
			profile(4, "Ash", "Kethcum", "Pokemon master", "1.3", models.RoleClient),
			profile(5, "John", "Lenon", "Musician", "64", models.RoleContractor),
			profile(6, "Linus", "Torvalds", "Programmer", "1214", models.RoleContractor),
			profile(7, "Alan", "Turing", "Programmer", "22", models.RoleContractor),
			profile(8, "Aragorn", "II Elessar Telcontarar", "Fighter", "314", models.RoleContractor),
		},
		Contracts: []*models.Contract{
			contract(1, 1, 5, models.ContractStatusTerminated),
			contract(2, 1, 6, models.ContractStatusInProgress),
			contract(3, 2, 6, models.ContractStatusInProgress),
			contract(4, 2, 7, models.ContractStatusInProgress),
			contract(5, 3, 8, models.ContractStatusNew),
			contract(6, 3, 7, models.ContractStatusInProgress),
			contract(7, 4, 7, models.ContractStatusInProgress),
			contract(8, 4, 6, models.ContractStatusInProgress),
			contract(9, 4, 8, models.ContractStatusInProgress),
		},
		Jobs: []*models.Job{
			job(1, "200", 1, ""),
			job(2, "201", 2, ""),
			job(3, "202", 3, ""),
			job(4, "200", 4, ""),
			job(5, "200", 7, ""),
			job(6, "2020", 7, "2020-08-15T19:11:26.737Z"),
			job(7, "200", 2, "2020-08-15T19:11:26.737Z"),
			job(8, "200", 3, "2020-08-16T19:11:26.737Z"),
			job(9, "200", 1, "2020-08-17T19:11:26.737Z"),
			job(10, "200", 5, "2020-08-17T19:11:26.737Z"),
			job(11, "21", 1, "2020-08-10T19:11:26.737Z"),
			job(12, "21", 2, "2020-08-15T19:11:26.737Z"),
			job(13, "121", 3, "2020-08-15T19:11:26.737Z"),
			job(14, "121", 3, "2020-08-14T23:11:26.737Z"),
		},
	}
}

// Seed inserts f in one transaction. Explicit ids are used, so the id
// sequences are advanced past them afterwards.
func Seed(ctx context.Context, db *gorm.DB, f Fixture) error {
	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := NewProfileRepository(tx).BulkCreate(ctx, f.Profiles); err != nil {
			return err
		}
		contracts := NewContractRepository(tx)
		if err := contracts.BulkCreateContracts(ctx, f.Contracts); err != nil {
			return err
		}
		if err := contracts.BulkCreateJobs(ctx, f.Jobs); err != nil {
			return err
		}
		for _, table := range []string{"profiles", "contracts", "jobs"} {
			stmt := fmt.Sprintf("SELECT setval(pg_get_serial_sequence('%s', 'id'), COALESCE(MAX(id), 1)) FROM %s", table, table)
			if err := tx.Exec(stmt).Error; err != nil {
				return fmt.Errorf("failed to reset %s sequence: %w", table, err)
			}
		}
		return nil
	})
}
