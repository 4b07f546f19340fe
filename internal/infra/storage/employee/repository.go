package employee

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

// Repository репозиторий для работы с сотрудниками и их доступностью
type Repository struct {
	db dbmetrics.DBExecutor
}

// NewRepository создает новый экземпляр репозитория сотрудников
func NewRepository(db dbmetrics.DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetByID получает сотрудника вместе со списком услуг, которые он выполняет
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Employee, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id",
		"business_id",
		"name",
		"created_at",
		"updated_at",
	).
		From("employees").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	var employee domain.Employee
	var createdAt, updatedAt sql.NullTime

	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&employee.ID,
		&employee.BusinessID,
		&employee.Name,
		&createdAt,
		&updatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, ErrEmployeeNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan employee: %v", ErrScanRow, err)
	}

	employee.CreatedAt = createdAt.Time
	employee.UpdatedAt = updatedAt.Time

	serviceIDs, err := r.getServiceIDs(ctx, executor, id)
	if err != nil {
		return nil, err
	}
	employee.ServiceIDs = serviceIDs

	return &employee, nil
}

// GetAvailabilityRules получает правила доступности сотрудника для даты:
// повторяющиеся правила на день недели плюс все override-правила на точную дату.
// Прецедентность (override полностью замещает recurring) применяется выше,
// в резолвере доступности.
func (r *Repository) GetAvailabilityRules(ctx context.Context, employeeID int64, weekday time.Weekday, date time.Time) ([]*domain.AvailabilityRule, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id",
		"employee_id",
		"kind",
		"weekday",
		"rule_date",
		"start_time",
		"end_time",
	).
		From("employee_availability").
		Where(squirrel.Eq{"employee_id": employeeID}).
		Where(squirrel.Or{
			squirrel.And{
				squirrel.Eq{"kind": domain.RuleRecurring},
				squirrel.Eq{"weekday": int(weekday)},
			},
			squirrel.And{
				squirrel.Eq{"kind": domain.RuleOverride},
				squirrel.Eq{"rule_date": date.Format(domain.DateFormat)},
			},
		}).
		OrderBy("kind ASC", "start_time ASC NULLS FIRST").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetAvailabilityRules - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetAvailabilityRules - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	rules := make([]*domain.AvailabilityRule, 0)
	for rows.Next() {
		var rule domain.AvailabilityRule
		var ruleWeekday sql.NullInt64
		var ruleDate sql.NullTime

		err := rows.Scan(
			&rule.ID,
			&rule.EmployeeID,
			&rule.Kind,
			&ruleWeekday,
			&ruleDate,
			&rule.Start,
			&rule.End,
		)
		if err != nil {
			return nil, fmt.Errorf("%w: GetAvailabilityRules - scan row: %v", ErrScanRow, err)
		}

		if ruleWeekday.Valid {
			rule.Weekday = time.Weekday(ruleWeekday.Int64)
		}
		if ruleDate.Valid {
			rule.Date = ruleDate.Time
		}

		rules = append(rules, &rule)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: GetAvailabilityRules - rows error: %v", ErrScanRow, err)
	}

	return rules, nil
}

// getServiceIDs загружает список услуг, для которых сотрудник квалифицирован
func (r *Repository) getServiceIDs(ctx context.Context, executor dbmetrics.DBExecutor, employeeID int64) ([]int64, error) {
	query, args, err := psqlbuilder.Select("service_id").
		From("employee_services").
		Where(squirrel.Eq{"employee_id": employeeID}).
		OrderBy("service_id ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: getServiceIDs - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: getServiceIDs - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	serviceIDs := make([]int64, 0)
	for rows.Next() {
		var serviceID int64
		if err := rows.Scan(&serviceID); err != nil {
			return nil, fmt.Errorf("%w: getServiceIDs - scan service_id: %v", ErrScanRow, err)
		}
		serviceIDs = append(serviceIDs, serviceID)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: getServiceIDs - rows error: %v", ErrScanRow, err)
	}

	return serviceIDs, nil
}
