package repository

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"
	"github.com/vfg2006/crm-analytics-api/infrastructure/database/postgres"
	"github.com/vfg2006/crm-analytics-api/internal/domain"
)

const (
	reportSnapshotsTable = "report_snapshots rs"
)

type ReportSnapshotRepository interface {
	GetLatestByWindow(windowDays int) (*domain.ReportSnapshot, error)
	ListLatest() ([]*domain.ReportSnapshot, error)
	SaveOrUpdate(snapshot *domain.ReportSnapshot) error
	DeleteOlderThan(days int) (int64, error)
}

type reportSnapshotRepository struct {
	conn *postgres.Connection
}

func NewReportSnapshotRepository(conn *postgres.Connection) ReportSnapshotRepository {
	return &reportSnapshotRepository{
		conn: conn,
	}
}

func (r *reportSnapshotRepository) GetLatestByWindow(windowDays int) (*domain.ReportSnapshot, error) {
	query, args, err := squirrel.
		Select("rs.id, rs.window_days, rs.report, rs.created_at, rs.updated_at").
		From(reportSnapshotsTable).
		Where(squirrel.Eq{"rs.window_days": windowDays}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	row := r.conn.QueryRow(query, args...)
	snapshot, err := r.scanSnapshot(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("erro ao escanear snapshot: %w", err)
	}

	return snapshot, nil
}

func (r *reportSnapshotRepository) ListLatest() ([]*domain.ReportSnapshot, error) {
	query, args, err := squirrel.
		Select("rs.id, rs.window_days, rs.report, rs.created_at, rs.updated_at").
		From(reportSnapshotsTable).
		OrderBy("rs.window_days ASC").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	rows, err := r.conn.Query(query, args...)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("erro ao executar a query: %w", err)
	}
	defer rows.Close()

	snapshots := make([]*domain.ReportSnapshot, 0)
	for rows.Next() {
		snapshot, err := r.scanSnapshotRows(rows)
		if err != nil {
			return nil, fmt.Errorf("erro ao escanear snapshots: %w", err)
		}
		snapshots = append(snapshots, snapshot)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("erro durante a iteração de linhas: %w", err)
	}

	return snapshots, nil
}

func (r *reportSnapshotRepository) SaveOrUpdate(snapshot *domain.ReportSnapshot) error {
	var reportJSON []byte
	var err error

	if snapshot.Report != nil {
		reportJSON, err = json.Marshal(snapshot.Report)
		if err != nil {
			return fmt.Errorf("erro ao serializar relatório para JSON: %w", err)
		}
	}

	query := squirrel.StatementBuilder.
		Insert("report_snapshots").
		Columns("window_days", "report").
		Values(
			snapshot.WindowDays,
			reportJSON,
		).
		Suffix(`
			ON CONFLICT (window_days) DO UPDATE SET
				report = EXCLUDED.report,
				updated_at = NOW()
		`).
		PlaceholderFormat(squirrel.Dollar)

	sqlQuery, args, err := query.ToSql()
	if err != nil {
		return fmt.Errorf("erro ao construir a query: %w", err)
	}

	_, err = r.conn.Exec(sqlQuery, args...)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok {
			return fmt.Errorf("erro no banco de dados: %w (código: %s)", pqErr, pqErr.Code)
		}
		return fmt.Errorf("erro ao executar a query: %w", err)
	}

	return nil
}

func (r *reportSnapshotRepository) DeleteOlderThan(days int) (int64, error) {
	cutoffDate := time.Now().AddDate(0, 0, -days)

	query, args, err := squirrel.
		Delete("report_snapshots").
		Where(squirrel.Lt{"updated_at": cutoffDate}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("erro ao construir a query: %w", err)
	}

	result, err := r.conn.Exec(query, args...)
	if err != nil {
		return 0, fmt.Errorf("erro ao executar a query: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("erro ao obter número de linhas afetadas: %w", err)
	}

	return rowsAffected, nil
}

func (r *reportSnapshotRepository) scanSnapshot(row *sql.Row) (*domain.ReportSnapshot, error) {
	snapshot := &domain.ReportSnapshot{}
	var reportJSON []byte

	err := row.Scan(
		&snapshot.ID,
		&snapshot.WindowDays,
		&reportJSON,
		&snapshot.CreatedAt,
		&snapshot.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if reportJSON != nil {
		report := &domain.AnalyticsReport{}
		if err := json.Unmarshal(reportJSON, report); err != nil {
			return nil, fmt.Errorf("erro ao deserializar JSON do relatório: %w", err)
		}
		snapshot.Report = report
	}

	return snapshot, nil
}

func (r *reportSnapshotRepository) scanSnapshotRows(rows *sql.Rows) (*domain.ReportSnapshot, error) {
	snapshot := &domain.ReportSnapshot{}
	var reportJSON []byte

	err := rows.Scan(
		&snapshot.ID,
		&snapshot.WindowDays,
		&reportJSON,
		&snapshot.CreatedAt,
		&snapshot.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if reportJSON != nil {
		report := &domain.AnalyticsReport{}
		if err := json.Unmarshal(reportJSON, report); err != nil {
			return nil, fmt.Errorf("erro ao deserializar JSON do relatório: %w", err)
		}
		snapshot.Report = report
	}

	return snapshot, nil
}
