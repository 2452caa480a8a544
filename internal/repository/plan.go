package repository

import (
	"context"
	"fmt"

	"github.com/alexanderramin/trainplan/internal/db"
	"github.com/alexanderramin/trainplan/internal/domain"
)

// SQLPlanRepo implements PlanRepo over any DBTX.
type SQLPlanRepo struct {
	db db.DBTX
}

// NewSQLPlanRepo creates a new SQLPlanRepo.
func NewSQLPlanRepo(conn db.DBTX) *SQLPlanRepo {
	return &SQLPlanRepo{db: conn}
}

const planColumns = `id, name, goal, start_date, end_date, total_weeks, current_week, created_at, updated_at`

func (r *SQLPlanRepo) Create(ctx context.Context, p *domain.Plan) error {
	query := `INSERT INTO plans (` + planColumns + `) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		p.ID,
		p.Name,
		p.Goal,
		p.StartDate.Format(domain.DateLayout),
		p.EndDate.Format(domain.DateLayout),
		p.TotalWeeks,
		p.CurrentWeek,
		formatTimestamp(p.CreatedAt),
		formatTimestamp(p.UpdatedAt),
	)
	if err != nil {
		return fmt.Errorf("inserting plan: %w", err)
	}
	return nil
}

func (r *SQLPlanRepo) GetByID(ctx context.Context, id string) (*domain.Plan, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+planColumns+` FROM plans WHERE id = ?`, id)
	return scanPlan(row)
}

func (r *SQLPlanRepo) GetByName(ctx context.Context, name string) (*domain.Plan, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+planColumns+` FROM plans WHERE name = ?`, name)
	return scanPlan(row)
}

// GetActive returns the most recently created plan.
func (r *SQLPlanRepo) GetActive(ctx context.Context) (*domain.Plan, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+planColumns+` FROM plans ORDER BY created_at DESC, id LIMIT 1`)
	return scanPlan(row)
}

func (r *SQLPlanRepo) SetCurrentWeek(ctx context.Context, id string, week int) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE plans SET current_week = ?, updated_at = ? WHERE id = ?`, week, nowUTC(), id)
	if err != nil {
		return fmt.Errorf("updating current week: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("plan %s: %w", id, ErrNotFound)
	}
	return nil
}

func scanPlan(s scanner) (*domain.Plan, error) {
	var p domain.Plan
	var start, end, created, updated string
	if err := s.Scan(&p.ID, &p.Name, &p.Goal, &start, &end, &p.TotalWeeks, &p.CurrentWeek, &created, &updated); err != nil {
		return nil, notFound("plan", err)
	}

	var err error
	if p.StartDate, err = parseDate("start_date", start); err != nil {
		return nil, err
	}
	if p.EndDate, err = parseDate("end_date", end); err != nil {
		return nil, err
	}
	if p.CreatedAt, err = parseTimestamp("created_at", created); err != nil {
		return nil, err
	}
	if p.UpdatedAt, err = parseTimestamp("updated_at", updated); err != nil {
		return nil, err
	}
	return &p, nil
}
