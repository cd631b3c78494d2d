// Package scope builds the contract visibility predicates that gate every
// ledger read and write.
//
// A Filter is an immutable conjunction of conditions on contract columns.
// The same Filter renders to gorm clauses for the database and evaluates
// against loaded rows in memory; both forms must agree.
package scope

import (
	"jobpay/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Field is a filterable contract column.
type Field string

const (
	FieldClientID     Field = "client_id"
	FieldContractorID Field = "contractor_id"
	FieldStatus       Field = "status"
)

// ContractsTable is the table Filter columns are qualified with by default.
const ContractsTable = "contracts"

// Condition restricts Field to one of Values.
type Condition struct {
	Field  Field
	Values []interface{}
}

// Filter is a conjunction of conditions. The zero Filter matches everything.
type Filter struct {
	conds []Condition
}

// ByProfile restricts contracts to those where p is the party matching its
// role: the client column for clients, the contractor column for
// contractors. Never both.
func ByProfile(p *models.Profile) Filter {
	field := FieldContractorID
	if p.Type == models.RoleClient {
		field = FieldClientID
	}
	return Filter{conds: []Condition{{Field: field, Values: []interface{}{p.ID}}}}
}

// ByStatuses restricts contracts to the given statuses.
func ByStatuses(statuses ...models.ContractStatus) Filter {
	values := make([]interface{}, len(statuses))
	for i, s := range statuses {
		values[i] = s
	}
	return Filter{conds: []Condition{{Field: FieldStatus, Values: values}}}
}

// Active is the listing filter for contracts that are not terminated.
func Active() Filter {
	return ByStatuses(models.ContractStatusNew, models.ContractStatusInProgress)
}

// And returns the conjunction of f and others.
func (f Filter) And(others ...Filter) Filter {
	conds := make([]Condition, 0, len(f.conds))
	conds = append(conds, f.conds...)
	for _, o := range others {
		conds = append(conds, o.conds...)
	}
	return Filter{conds: conds}
}

// Conditions returns a copy of the filter's conditions.
func (f Filter) Conditions() []Condition {
	out := make([]Condition, len(f.conds))
	copy(out, f.conds)
	return out
}

// Matches evaluates the filter against a loaded contract.
func (f Filter) Matches(c *models.Contract) bool {
	if c == nil {
		return false
	}
	for _, cond := range f.conds {
		if !cond.matches(c) {
			return false
		}
	}
	return true
}

func (cond Condition) matches(c *models.Contract) bool {
	var got interface{}
	switch cond.Field {
	case FieldClientID:
		got = c.ClientID
	case FieldContractorID:
		got = c.ContractorID
	case FieldStatus:
		got = c.Status
	default:
		return false
	}
	for _, v := range cond.Values {
		if v == got {
			return true
		}
	}
	return false
}

// Expressions renders the filter as gorm clauses on table.
func (f Filter) Expressions(table string) []clause.Expression {
	exprs := make([]clause.Expression, 0, len(f.conds))
	for _, cond := range f.conds {
		col := clause.Column{Table: table, Name: string(cond.Field)}
		if len(cond.Values) == 1 {
			exprs = append(exprs, clause.Eq{Column: col, Value: cond.Values[0]})
			continue
		}
		exprs = append(exprs, clause.IN{Column: col, Values: cond.Values})
	}
	return exprs
}

// Apply adds the filter to a query that selects from or joins the contracts
// table.
func (f Filter) Apply(db *gorm.DB) *gorm.DB {
	exprs := f.Expressions(ContractsTable)
	if len(exprs) == 0 {
		return db
	}
	return db.Clauses(clause.Where{Exprs: exprs})
}
