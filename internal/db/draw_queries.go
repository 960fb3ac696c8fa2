package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/j-veylop/lotto-dashboard-tui/internal/logger"
	"github.com/j-veylop/lotto-dashboard-tui/internal/models"
)

var (
	// ErrDrawExists is returned by InsertDraw when the draw number is taken.
	ErrDrawExists = errors.New("draw already exists")
	// ErrDrawNotFound is returned when no draw has the requested number.
	ErrDrawNotFound = errors.New("draw not found")
)

const drawColumns = `draw_no, n1, n2, n3, n4, n5, n6, bonus,
	prize_1, prize_2, prize_3, prize_4, prize_5`

// UpsertDraws inserts or replaces draws in a single transaction.
func (db *DB) UpsertDraws(draws []models.Draw) (int, error) {
	ctx := context.Background()
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	query := `
		INSERT INTO draws (` + drawColumns + `, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(draw_no) DO UPDATE SET
			n1 = excluded.n1, n2 = excluded.n2, n3 = excluded.n3,
			n4 = excluded.n4, n5 = excluded.n5, n6 = excluded.n6,
			bonus = excluded.bonus,
			prize_1 = excluded.prize_1, prize_2 = excluded.prize_2,
			prize_3 = excluded.prize_3, prize_4 = excluded.prize_4,
			prize_5 = excluded.prize_5,
			updated_at = excluded.updated_at
	`
	stmt, err := tx.PrepareContext(ctx, query)
	if err != nil {
		return 0, fmt.Errorf("failed to prepare draw upsert: %w", err)
	}
	defer func() { _ = stmt.Close() }()

	now := time.Now().UTC().Format(time.DateTime)
	for _, d := range draws {
		args := append(drawArgs(d), now)
		if _, err := stmt.ExecContext(ctx, args...); err != nil {
			return 0, fmt.Errorf("failed to upsert draw %d: %w", d.Number, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit draws: %w", err)
	}
	return len(draws), nil
}

// InsertDraw adds a single draw. It fails with ErrDrawExists when the draw
// number is already stored.
func (db *DB) InsertDraw(d models.Draw) error {
	var exists int
	err := db.QueryRowContext(context.Background(),
		"SELECT COUNT(*) FROM draws WHERE draw_no = ?", d.Number).Scan(&exists)
	if err != nil {
		return fmt.Errorf("failed to check draw %d: %w", d.Number, err)
	}
	if exists > 0 {
		return fmt.Errorf("%w: %d", ErrDrawExists, d.Number)
	}

	query := `INSERT INTO draws (` + drawColumns + `, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	args := append(drawArgs(d), time.Now().UTC().Format(time.DateTime))
	if _, err := db.ExecContext(context.Background(), query, args...); err != nil {
		return fmt.Errorf("failed to insert draw %d: %w", d.Number, err)
	}
	return nil
}

// DeleteDraw removes the draw with the given number.
func (db *DB) DeleteDraw(number int) error {
	result, err := db.ExecContext(context.Background(), "DELETE FROM draws WHERE draw_no = ?", number)
	if err != nil {
		return fmt.Errorf("failed to delete draw %d: %w", number, err)
	}
	n, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to delete draw %d: %w", number, err)
	}
	if n == 0 {
		return fmt.Errorf("%w: %d", ErrDrawNotFound, number)
	}
	return nil
}

// GetDraws returns every stored draw, oldest first.
func (db *DB) GetDraws() (models.DrawHistory, error) {
	query := `SELECT ` + drawColumns + ` FROM draws ORDER BY draw_no ASC`

	rows, err := db.QueryContext(context.Background(), query)
	if err != nil {
		return nil, fmt.Errorf("failed to query draws: %w", err)
	}
	defer func() {
		if err := rows.Close(); err != nil {
			logger.Error("failed to close rows", "error", err)
		}
	}()

	var history models.DrawHistory
	for rows.Next() {
		d, err := scanDraw(rows)
		if err != nil {
			return nil, err
		}
		history = append(history, d)
	}

	return history, rows.Err()
}

// GetDraw returns the draw with the given number.
func (db *DB) GetDraw(number int) (models.Draw, error) {
	query := `SELECT ` + drawColumns + ` FROM draws WHERE draw_no = ?`
	d, err := scanDraw(db.QueryRowContext(context.Background(), query, number))
	if errors.Is(err, sql.ErrNoRows) {
		return models.Draw{}, fmt.Errorf("%w: %d", ErrDrawNotFound, number)
	}
	return d, err
}

// GetLatestDraw returns the draw with the highest number.
func (db *DB) GetLatestDraw() (models.Draw, error) {
	query := `SELECT ` + drawColumns + ` FROM draws ORDER BY draw_no DESC LIMIT 1`
	d, err := scanDraw(db.QueryRowContext(context.Background(), query))
	if errors.Is(err, sql.ErrNoRows) {
		return models.Draw{}, ErrDrawNotFound
	}
	return d, err
}

// CountDraws returns the number of stored draws.
func (db *DB) CountDraws() (int, error) {
	var count int
	err := db.QueryRowContext(context.Background(), "SELECT COUNT(*) FROM draws").Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count draws: %w", err)
	}
	return count, nil
}

// ReplaceDraws deletes every stored draw and inserts draws in their place.
func (db *DB) ReplaceDraws(draws []models.Draw) error {
	if _, err := db.ExecContext(context.Background(), "DELETE FROM draws"); err != nil {
		return fmt.Errorf("failed to clear draws: %w", err)
	}
	_, err := db.UpsertDraws(draws)
	return err
}

type scanner interface {
	Scan(dest ...any) error
}

func scanDraw(row scanner) (models.Draw, error) {
	var (
		d       models.Draw
		winning [models.PickSize]sql.NullInt64
		bonus   sql.NullInt64
		prizes  [5]sql.NullString
	)

	err := row.Scan(
		&d.Number,
		&winning[0], &winning[1], &winning[2], &winning[3], &winning[4], &winning[5],
		&bonus,
		&prizes[0], &prizes[1], &prizes[2], &prizes[3], &prizes[4],
	)
	if errors.Is(err, sql.ErrNoRows) {
		return d, err
	}
	if err != nil {
		return d, fmt.Errorf("failed to scan draw: %w", err)
	}

	for i, n := range winning {
		d.Winning[i] = int(n.Int64)
	}
	d.Bonus = int(bonus.Int64)

	for i, tier := range models.Tiers {
		if !prizes[i].Valid || prizes[i].String == "" {
			continue
		}
		amount, err := decimal.NewFromString(prizes[i].String)
		if err != nil {
			logger.Warn("ignoring unreadable prize", "draw", d.Number, "tier", tier.String(), "error", err)
			continue
		}
		if d.Prizes == nil {
			d.Prizes = make(map[models.Tier]decimal.Decimal, len(models.Tiers))
		}
		d.Prizes[tier] = amount
	}

	return d, nil
}

func drawArgs(d models.Draw) []any {
	args := make([]any, 0, 14)
	args = append(args, d.Number)
	for _, n := range d.Winning {
		args = append(args, nullInt(n))
	}
	args = append(args, nullInt(d.Bonus))
	for _, tier := range models.Tiers {
		if amount, ok := d.Prize(tier); ok {
			args = append(args, amount.String())
		} else {
			args = append(args, nil)
		}
	}
	return args
}

// nullInt stores absent numbers as NULL.
func nullInt(n int) sql.NullInt64 {
	return sql.NullInt64{Int64: int64(n), Valid: n != 0}
}
