package business

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/barberio/scheduling-service/internal/domain"
	"github.com/barberio/scheduling-service/pkg/dbmetrics"
	"github.com/barberio/scheduling-service/pkg/psqlbuilder"
)

// Repository репозиторий для работы с бизнесами и их рабочими часами
type Repository struct {
	db dbmetrics.DBExecutor
}

// NewRepository создает новый экземпляр репозитория бизнесов
func NewRepository(db dbmetrics.DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetByID получает бизнес вместе со всеми записями рабочих часов
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Business, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id",
		"name",
		"timezone",
		"created_at",
		"updated_at",
	).
		From("businesses").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	var business domain.Business
	var createdAt, updatedAt sql.NullTime

	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&business.ID,
		&business.Name,
		&business.Timezone,
		&createdAt,
		&updatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, ErrBusinessNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan business: %v", ErrScanRow, err)
	}

	business.CreatedAt = createdAt.Time
	business.UpdatedAt = updatedAt.Time

	hours, err := r.getOperatingHours(ctx, executor, id)
	if err != nil {
		return nil, err
	}
	business.OperatingHours = hours

	return &business, nil
}

// getOperatingHours загружает записи рабочих часов бизнеса
// Сортировка по дню недели и времени открытия даёт детерминированный порядок.
func (r *Repository) getOperatingHours(ctx context.Context, executor dbmetrics.DBExecutor, businessID int64) ([]domain.OperatingHoursEntry, error) {
	query, args, err := psqlbuilder.Select(
		"id",
		"business_id",
		"weekday",
		"open_time",
		"close_time",
	).
		From("business_hours").
		Where(squirrel.Eq{"business_id": businessID}).
		OrderBy("weekday ASC", "open_time ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: getOperatingHours - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: getOperatingHours - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	entries := make([]domain.OperatingHoursEntry, 0)
	for rows.Next() {
		var entry domain.OperatingHoursEntry
		var weekday int

		err := rows.Scan(
			&entry.ID,
			&entry.BusinessID,
			&weekday,
			&entry.Open,
			&entry.Close,
		)
		if err != nil {
			return nil, fmt.Errorf("%w: getOperatingHours - scan row: %v", ErrScanRow, err)
		}

		entry.Weekday = time.Weekday(weekday)
		entries = append(entries, entry)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: getOperatingHours - rows error: %v", ErrScanRow, err)
	}

	return entries, nil
}
