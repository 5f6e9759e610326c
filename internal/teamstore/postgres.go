package teamstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	trmsqlx "github.com/avito-tech/go-transaction-manager/drivers/sqlx/v2"
	"github.com/jmoiron/sqlx"

	"github.com/preston-bernstein/vmhl-standings/internal/domain/teams"
)

const teamColumns = "id, name, logo_url, games_played, wins, losses, ot_losses, goals_for, goals_against, points, position"

// PostgresRepository stores teams in the teams table.
type PostgresRepository struct {
	db     *sqlx.DB
	getter *trmsqlx.CtxGetter
}

// NewPostgresRepository builds a repository. A nil getter uses the default one.
func NewPostgresRepository(db *sqlx.DB, getter *trmsqlx.CtxGetter) *PostgresRepository {
	if getter == nil {
		getter = trmsqlx.DefaultCtxGetter
	}
	return &PostgresRepository{db: db, getter: getter}
}

func (r *PostgresRepository) List(ctx context.Context) ([]teams.Team, error) {
	const op = "team_repo.List"

	query := `SELECT ` + teamColumns + ` FROM teams ORDER BY position ASC, id ASC`

	out := make([]teams.Team, 0)
	if err := r.getter.DefaultTrOrDB(ctx, r.db).SelectContext(ctx, &out, query); err != nil {
		return nil, wrap(op, err)
	}
	return out, nil
}

func (r *PostgresRepository) Get(ctx context.Context, id int) (teams.Team, error) {
	const op = "team_repo.Get"

	query := `SELECT ` + teamColumns + ` FROM teams WHERE id = $1`

	var t teams.Team
	if err := r.getter.DefaultTrOrDB(ctx, r.db).GetContext(ctx, &t, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return teams.Team{}, ErrNotFound
		}
		return teams.Team{}, wrap(op, err)
	}
	return t, nil
}

func (r *PostgresRepository) NextPosition(ctx context.Context) (int, error) {
	const op = "team_repo.NextPosition"

	query := `SELECT COALESCE(MAX(position), 0) + 1 FROM teams`

	var next int
	if err := r.getter.DefaultTrOrDB(ctx, r.db).GetContext(ctx, &next, query); err != nil {
		return 0, wrap(op, err)
	}
	return next, nil
}

func (r *PostgresRepository) Insert(ctx context.Context, draft teams.Draft, position int) (teams.Team, error) {
	const op = "team_repo.Insert"

	query := `
		INSERT INTO teams (name, logo_url, position)
		VALUES ($1, $2, $3)
		RETURNING ` + teamColumns

	var t teams.Team
	err := r.getter.DefaultTrOrDB(ctx, r.db).GetContext(ctx, &t, query, draft.Name, draft.LogoURL, position)
	if err != nil {
		return teams.Team{}, wrap(op, err)
	}
	return t, nil
}

func (r *PostgresRepository) Update(ctx context.Context, id int, patch Patch) (teams.Team, error) {
	const op = "team_repo.Update"

	cols := patch.columns()
	if len(cols) == 0 {
		return teams.Team{}, ErrNoFields
	}
	sets := make([]string, 0, len(cols)+1)
	args := make([]any, 0, len(cols)+1)
	for i, c := range cols {
		sets = append(sets, fmt.Sprintf("%s = $%d", c.name, i+1))
		args = append(args, c.value)
	}
	sets = append(sets, "updated_at = now()")
	args = append(args, id)

	query := fmt.Sprintf(`UPDATE teams SET %s WHERE id = $%d RETURNING %s`,
		strings.Join(sets, ", "), len(args), teamColumns)

	var t teams.Team
	if err := r.getter.DefaultTrOrDB(ctx, r.db).GetContext(ctx, &t, query, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return teams.Team{}, ErrNotFound
		}
		return teams.Team{}, wrap(op, err)
	}
	return t, nil
}

func (r *PostgresRepository) Delete(ctx context.Context, id int) error {
	const op = "team_repo.Delete"

	res, err := r.getter.DefaultTrOrDB(ctx, r.db).ExecContext(ctx, `DELETE FROM teams WHERE id = $1`, id)
	if err != nil {
		return wrap(op, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return wrap(op, err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *PostgresRepository) Ping(ctx context.Context) error {
	if err := r.db.PingContext(ctx); err != nil {
		return wrap("team_repo.Ping", err)
	}
	return nil
}
