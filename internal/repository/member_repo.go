package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/joonho0410/StellaClip-sub001/pkg/roster"
)

type MemberRepo struct {
	pool *pgxpool.Pool
}

func NewMemberRepo(pool *pgxpool.Pool) *MemberRepo {
	return &MemberRepo{pool: pool}
}

// EnsureRoster seeds the members table from the static taxonomy so that
// appearance rows always have a member to reference. Cohort moves are
// applied; members are never removed here (historic tags stay resolvable).
func (r *MemberRepo) EnsureRoster(ctx context.Context) error {
	for _, cohort := range roster.Cohorts {
		members, err := roster.MembersOf(cohort)
		if err != nil {
			return err
		}
		for _, m := range members {
			_, err := r.pool.Exec(ctx, `
				INSERT INTO members (name, cohort) VALUES ($1, $2)
				ON CONFLICT (name) DO UPDATE SET cohort = EXCLUDED.cohort`, m, cohort)
			if err != nil {
				return err
			}
		}
	}
	return nil
}

// Count returns the number of known members.
func (r *MemberRepo) Count(ctx context.Context) (int, error) {
	var n int
	err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM members`).Scan(&n)
	return n, err
}
