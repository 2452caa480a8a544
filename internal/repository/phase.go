package repository

import (
	"context"
	"fmt"

	"github.com/alexanderramin/trainplan/internal/db"
	"github.com/alexanderramin/trainplan/internal/domain"
)

// SQLPhaseRepo implements PhaseRepo over any DBTX.
type SQLPhaseRepo struct {
	db db.DBTX
}

// NewSQLPhaseRepo creates a new SQLPhaseRepo.
func NewSQLPhaseRepo(conn db.DBTX) *SQLPhaseRepo {
	return &SQLPhaseRepo{db: conn}
}

const phaseColumns = `id, plan_id, name, week_start, week_end, start_date, end_date, focus, created_at`

func (r *SQLPhaseRepo) Create(ctx context.Context, p *domain.Phase) error {
	query := `INSERT INTO phases (` + phaseColumns + `) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		p.ID,
		p.PlanID,
		p.Name,
		p.WeekStart,
		p.WeekEnd,
		p.StartDate.Format(domain.DateLayout),
		p.EndDate.Format(domain.DateLayout),
		p.Focus,
		formatTimestamp(p.CreatedAt),
	)
	if err != nil {
		return fmt.Errorf("inserting phase: %w", err)
	}
	return nil
}

func (r *SQLPhaseRepo) GetByName(ctx context.Context, planID, name string) (*domain.Phase, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+phaseColumns+` FROM phases WHERE plan_id = ? AND name = ?`, planID, name)
	return scanPhase(row)
}

func (r *SQLPhaseRepo) ListByPlan(ctx context.Context, planID string) ([]*domain.Phase, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+phaseColumns+` FROM phases WHERE plan_id = ? ORDER BY week_start`, planID)
	if err != nil {
		return nil, fmt.Errorf("listing phases: %w", err)
	}
	defer rows.Close()

	var phases []*domain.Phase
	for rows.Next() {
		p, err := scanPhase(rows)
		if err != nil {
			return nil, err
		}
		phases = append(phases, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating phases: %w", err)
	}
	return phases, nil
}

func scanPhase(s scanner) (*domain.Phase, error) {
	var p domain.Phase
	var start, end, created string
	if err := s.Scan(&p.ID, &p.PlanID, &p.Name, &p.WeekStart, &p.WeekEnd, &start, &end, &p.Focus, &created); err != nil {
		return nil, notFound("phase", err)
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
	return &p, nil
}
