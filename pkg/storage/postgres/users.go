package postgres

import (
	"context"
	"fmt"
	"usersvc/pkg/domain"
	"usersvc/pkg/storage"

	"github.com/doug-martin/goqu/v9"
	"github.com/doug-martin/goqu/v9/exp"
)

const (
	usersTable = "users"
)

// uniqueColumns lists the columns UserByField may look users up by.
var uniqueColumns = map[string]bool{ //nolint: gochecknoglobals
	domain.UserFieldUsername: true,
	domain.UserFieldEmail:    true,
}

func userFilterExpressions(filter storage.UserFilter) []exp.Expression {
	var w []exp.Expression
	if !filter.RegisteredAfter.IsZero() {
		w = append(w, goqu.I("registration_date").Gt(filter.RegisteredAfter))
	}
	if filter.EmailSuffix != "" {
		// RIGHT() keeps this a plain suffix comparison; LIKE would treat % and _ in the suffix as wildcards.
		w = append(w, goqu.L("RIGHT(LOWER(?), CHAR_LENGTH(?)) = LOWER(?)",
			goqu.I("email"), filter.EmailSuffix, filter.EmailSuffix))
	}

	return w
}

func userOrderExpressions(order storage.UserOrder) []exp.OrderedExpression {
	switch order {
	case storage.UserOrderUsernameLengthDesc:
		return []exp.OrderedExpression{
			goqu.L("CHAR_LENGTH(?)", goqu.I("username")).Desc(),
			goqu.I("id").Asc(),
		}
	default:
		return []exp.OrderedExpression{goqu.I("id").Asc()}
	}
}

// Users returns users matching the query. A zero Limit returns every row after Offset.
func (p *PgSQL) Users(ctx context.Context, query storage.UserQuery) ([]domain.User, error) {
	ds := p.Builder.From(usersTable).
		Where(userFilterExpressions(query.Filter)...).
		Order(userOrderExpressions(query.Order)...)
	if query.Offset > 0 {
		ds = ds.Offset(query.Offset)
	}
	if query.Limit > 0 {
		ds = ds.Limit(query.Limit)
	}

	var rows []PgUser
	if err := ds.Executor().ScanStructsContext(ctx, &rows); err != nil {
		return nil, fmt.Errorf("could not fetch users from pg: %w", err)
	}

	return pgUsersToDomain(rows), nil
}

func (p *PgSQL) CountUsers(ctx context.Context, filter storage.UserFilter) (int64, error) {
	count, err := p.Builder.From(usersTable).
		Where(userFilterExpressions(filter)...).
		CountContext(ctx)
	if err != nil {
		return 0, fmt.Errorf("could not count users in pg: %w", err)
	}

	return count, nil
}

func (p *PgSQL) UserByID(ctx context.Context, id domain.UserID) (*domain.User, error) {
	var row PgUser
	found, err := p.Builder.From(usersTable).
		Where(goqu.I("id").Eq(int64(id))).
		Executor().ScanStructContext(ctx, &row)
	if err != nil {
		return nil, fmt.Errorf("could not fetch user by id: %w", err)
	}
	if !found {
		return nil, nil
	}

	return row.ToDomain(), nil
}

func (p *PgSQL) UserByField(ctx context.Context, field string, value string) (*domain.User, error) {
	if !uniqueColumns[field] {
		return nil, fmt.Errorf("%w: %s", storage.ErrUnknownField, field)
	}

	var row PgUser
	found, err := p.Builder.From(usersTable).
		Where(goqu.I(field).Eq(value)).
		Executor().ScanStructContext(ctx, &row)
	if err != nil {
		return nil, fmt.Errorf("could not fetch user by %s: %w", field, err)
	}
	if !found {
		return nil, nil
	}

	return row.ToDomain(), nil
}

// InsertUser stores the candidate and returns the refreshed row; id and
// registration_date are generated by the database.
func (p *PgSQL) InsertUser(ctx context.Context, candidate domain.UserCandidate) (*domain.User, error) {
	var in PgUser
	in.FromCandidate(candidate)

	var row PgUser
	if _, err := p.Builder.Insert(usersTable).
		Rows(in).
		Returning(&PgUser{}).
		Executor().ScanStructContext(ctx, &row); err != nil {
		return nil, fmt.Errorf("could not store user into pg: %w", err)
	}

	return row.ToDomain(), nil
}

// UpdateUser sets the provided fields only. An empty update is a plain lookup.
func (p *PgSQL) UpdateUser(ctx context.Context, id domain.UserID, update domain.UserUpdate) (*domain.User, error) {
	if update.IsEmpty() {
		return p.UserByID(ctx, id)
	}

	rec := goqu.Record{}
	if update.Username != nil {
		rec[domain.UserFieldUsername] = *update.Username
	}
	if update.Email != nil {
		rec[domain.UserFieldEmail] = *update.Email
	}

	var row PgUser
	found, err := p.Builder.Update(usersTable).
		Set(rec).
		Where(goqu.I("id").Eq(int64(id))).
		Returning(&PgUser{}).
		Executor().ScanStructContext(ctx, &row)
	if err != nil {
		return nil, fmt.Errorf("could not update user in pg: %w", err)
	}
	if !found {
		return nil, nil
	}

	return row.ToDomain(), nil
}

func (p *PgSQL) DeleteUser(ctx context.Context, id domain.UserID) (*domain.User, error) {
	var row PgUser
	found, err := p.Builder.Delete(usersTable).
		Where(goqu.I("id").Eq(int64(id))).
		Returning(&PgUser{}).
		Executor().ScanStructContext(ctx, &row)
	if err != nil {
		return nil, fmt.Errorf("could not delete user in pg: %w", err)
	}
	if !found {
		return nil, nil
	}

	return row.ToDomain(), nil
}
