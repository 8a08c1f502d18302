package postgres

import (
	"time"
	"usersvc/pkg/domain"
)

// PgUser is the row representation of the users table.
type PgUser struct {
	ID               int64     `db:"id"                goqu:"skipinsert"`
	Username         string    `db:"username"`
	Email            string    `db:"email"`
	RegistrationDate time.Time `db:"registration_date" goqu:"skipinsert"`
}

func (p *PgUser) ToDomain() *domain.User {
	return &domain.User{
		ID:               domain.UserID(p.ID),
		Username:         p.Username,
		Email:            p.Email,
		RegistrationDate: p.RegistrationDate,
	}
}

func (p *PgUser) FromCandidate(candidate domain.UserCandidate) {
	*p = PgUser{
		Username: candidate.Username,
		Email:    candidate.Email,
	}
}

func pgUsersToDomain(users []PgUser) []domain.User {
	out := make([]domain.User, 0, len(users))
	for i := range users {
		out = append(out, *users[i].ToDomain())
	}

	return out
}
