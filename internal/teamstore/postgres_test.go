package teamstore

import (
	"context"
	"database/sql/driver"
	"errors"
	"strings"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	trmsqlx "github.com/avito-tech/go-transaction-manager/drivers/sqlx/v2"
	"github.com/avito-tech/go-transaction-manager/trm/v2/manager"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/preston-bernstein/vmhl-standings/internal/domain/teams"
)

var columnNames = strings.Split(strings.ReplaceAll(teamColumns, " ", ""), ",")

func newMockDB(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock) {
	t.Helper()

	mockDB, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(prefixMatcher()))
	require.NoError(t, err)
	t.Cleanup(func() { _ = mockDB.Close() })

	return sqlx.NewDb(mockDB, "sqlmock"), mock
}

// prefixMatcher compares whitespace-normalized SQL by prefix.
func prefixMatcher() sqlmock.QueryMatcher {
	return sqlmock.QueryMatcherFunc(func(expected, actual string) error {
		normalize := func(s string) string { return strings.Join(strings.Fields(s), " ") }
		if strings.HasPrefix(normalize(actual), normalize(expected)) {
			return nil
		}
		return errors.New("query mismatch: " + normalize(actual))
	})
}

func teamRow(rows *sqlmock.Rows, t teams.Team) *sqlmock.Rows {
	return rows.AddRow(t.ID, t.Name, t.LogoURL, t.GamesPlayed, t.Wins, t.Losses, t.OTLosses,
		t.GoalsFor, t.GoalsAgainst, t.Points, t.Position)
}

func TestPostgresRepository_List(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewPostgresRepository(db, nil)

	rows := sqlmock.NewRows(columnNames)
	teamRow(rows, teams.Team{ID: 2, Name: "Alpha", Points: 10, Position: 1})
	teamRow(rows, teams.Team{ID: 1, Name: "Beta", Points: 8, Position: 2})
	mock.ExpectQuery("SELECT " + teamColumns + " FROM teams ORDER BY position ASC").WillReturnRows(rows)

	got, err := repo.List(context.Background())

	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "Alpha", got[0].Name)
	assert.Equal(t, 8, got[1].Points)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresRepository_Get(t *testing.T) {
	tests := []struct {
		name     string
		mockFunc func(sqlmock.Sqlmock)
		wantErr  error
		wantName string
	}{
		{
			name: "found",
			mockFunc: func(m sqlmock.Sqlmock) {
				m.ExpectQuery("SELECT " + teamColumns + " FROM teams WHERE id = $1").
					WithArgs(3).
					WillReturnRows(teamRow(sqlmock.NewRows(columnNames), teams.Team{ID: 3, Name: "North Star"}))
			},
			wantName: "North Star",
		},
		{
			name: "missing",
			mockFunc: func(m sqlmock.Sqlmock) {
				m.ExpectQuery("SELECT " + teamColumns + " FROM teams WHERE id = $1").
					WithArgs(3).
					WillReturnRows(sqlmock.NewRows(columnNames))
			},
			wantErr: ErrNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock := newMockDB(t)
			tt.mockFunc(mock)

			got, err := NewPostgresRepository(db, nil).Get(context.Background(), 3)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				require.NoError(t, err)
				assert.Equal(t, tt.wantName, got.Name)
			}
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestPostgresRepository_Update(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewPostgresRepository(db, nil)
	points, position := 10, 4

	mock.ExpectQuery("UPDATE teams SET points = $1, position = $2, updated_at = now() WHERE id = $3 RETURNING " + teamColumns).
		WithArgs(10, 4, 7).
		WillReturnRows(teamRow(sqlmock.NewRows(columnNames), teams.Team{ID: 7, Name: "Alpha", Points: 10, Position: 4}))

	got, err := repo.Update(context.Background(), 7, Patch{Points: &points, Position: &position})

	require.NoError(t, err)
	assert.Equal(t, 10, got.Points)
	assert.Equal(t, 4, got.Position)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresRepository_UpdateErrors(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewPostgresRepository(db, nil)
	points := 1

	_, err := repo.Update(context.Background(), 7, Patch{})
	assert.ErrorIs(t, err, ErrNoFields)

	mock.ExpectQuery("UPDATE teams SET points = $1").
		WithArgs(1, 7).
		WillReturnRows(sqlmock.NewRows(columnNames))
	_, err = repo.Update(context.Background(), 7, Patch{Points: &points})
	assert.ErrorIs(t, err, ErrNotFound)

	mock.ExpectQuery("UPDATE teams SET points = $1").
		WithArgs(1, 8).
		WillReturnError(errors.New("connection refused"))
	_, err = repo.Update(context.Background(), 8, Patch{Points: &points})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "team_repo.Update")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresRepository_Delete(t *testing.T) {
	tests := []struct {
		name    string
		result  driver.Result
		wantErr error
	}{
		{name: "deleted", result: sqlmock.NewResult(0, 1)},
		{name: "missing", result: sqlmock.NewResult(0, 0), wantErr: ErrNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock := newMockDB(t)
			mock.ExpectExec("DELETE FROM teams WHERE id = $1").WithArgs(5).WillReturnResult(tt.result)

			err := NewPostgresRepository(db, nil).Delete(context.Background(), 5)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				assert.NoError(t, err)
			}
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestService_CreateRunsInTransaction(t *testing.T) {
	db, mock := newMockDB(t)
	trManager := manager.Must(trmsqlx.NewDefaultFactory(db))
	svc := NewService(trManager, NewPostgresRepository(db, trmsqlx.DefaultCtxGetter), nil, nil)

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT COALESCE(MAX(position), 0) + 1 FROM teams").
		WillReturnRows(sqlmock.NewRows([]string{"next"}).AddRow(3))
	mock.ExpectQuery("INSERT INTO teams (name, logo_url, position) VALUES ($1, $2, $3)").
		WithArgs("Lake Hawks", "", 3).
		WillReturnRows(teamRow(sqlmock.NewRows(columnNames), teams.Team{ID: 9, Name: "Lake Hawks", Position: 3}))
	mock.ExpectCommit()

	created, err := svc.Create(context.Background(), teams.Draft{Name: "Lake Hawks"})

	require.NoError(t, err)
	assert.Equal(t, 9, created.ID)
	assert.Equal(t, 3, created.Position)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestService_SwapRollsBackOnFailure(t *testing.T) {
	db, mock := newMockDB(t)
	trManager := manager.Must(trmsqlx.NewDefaultFactory(db))
	svc := NewService(trManager, NewPostgresRepository(db, trmsqlx.DefaultCtxGetter), nil, nil)

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT " + teamColumns + " FROM teams WHERE id = $1").
		WithArgs(1).
		WillReturnRows(teamRow(sqlmock.NewRows(columnNames), teams.Team{ID: 1, Position: 4}))
	mock.ExpectQuery("SELECT " + teamColumns + " FROM teams WHERE id = $1").
		WithArgs(2).
		WillReturnRows(teamRow(sqlmock.NewRows(columnNames), teams.Team{ID: 2, Position: 5}))
	mock.ExpectQuery("UPDATE teams SET position = $1").
		WithArgs(5, 1).
		WillReturnRows(teamRow(sqlmock.NewRows(columnNames), teams.Team{ID: 1, Position: 5}))
	mock.ExpectQuery("UPDATE teams SET position = $1").
		WithArgs(4, 2).
		WillReturnError(errors.New("deadlock detected"))
	mock.ExpectRollback()

	_, err := svc.Swap(context.Background(), 1, 2)

	require.Error(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}
