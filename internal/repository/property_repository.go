package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/connect-inmobiliaria/crm-service/internal/domain"
)

// PropertyFilter captures catalog search parameters.
type PropertyFilter struct {
	SearchTerm  *string
	Type        *domain.PropertyType
	Transaction *domain.TransactionType
}

// PropertyRepository encapsulates catalog persistence. No delete operation
// exists; listings only ever get prepended.
type PropertyRepository interface {
	Create(ctx context.Context, property *domain.Property) error
	List(ctx context.Context, filter PropertyFilter) ([]domain.Property, error)
	GetByID(ctx context.Context, id string) (*domain.Property, error)
}

type propertyRepository struct {
	pool *pgxpool.Pool
}

// NewPropertyRepository instantiates the postgres-backed repository.
func NewPropertyRepository(pool *pgxpool.Pool) PropertyRepository {
	return &propertyRepository{pool: pool}
}

func (r *propertyRepository) Create(ctx context.Context, property *domain.Property) error {
	const query = `
        INSERT INTO properties (title, price, type, transaction, latitude, longitude, address,
            description, images, features, parcel_id, assessed_value, land_use, area_m2)
        VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14)
        RETURNING id, created_at, updated_at`
	return r.pool.QueryRow(ctx, query,
		property.Title,
		property.Price,
		property.Type,
		property.Transaction,
		property.Latitude,
		property.Longitude,
		property.Address,
		property.Description,
		property.Images,
		property.Features,
		property.Cadastral.ParcelID,
		property.Cadastral.AssessedValue,
		property.Cadastral.LandUse,
		property.Cadastral.AreaM2,
	).Scan(&property.ID, &property.CreatedAt, &property.UpdatedAt)
}

func (r *propertyRepository) List(ctx context.Context, filter PropertyFilter) ([]domain.Property, error) {
	base := `SELECT id, title, price, type, transaction, latitude, longitude, address,
                    description, images, features, parcel_id, assessed_value, land_use, area_m2,
                    created_at, updated_at
             FROM properties`
	clauses := []string{"1=1"}
	args := []any{}

	if filter.Type != nil {
		args = append(args, *filter.Type)
		clauses = append(clauses, fmt.Sprintf("type=$%d", len(args)))
	}
	if filter.Transaction != nil {
		args = append(args, *filter.Transaction)
		clauses = append(clauses, fmt.Sprintf("transaction=$%d", len(args)))
	}
	if filter.SearchTerm != nil && strings.TrimSpace(*filter.SearchTerm) != "" {
		search := "%" + strings.ToLower(strings.TrimSpace(*filter.SearchTerm)) + "%"
		args = append(args, search)
		placeholder := fmt.Sprintf("$%d", len(args))
		clauses = append(clauses, fmt.Sprintf("(LOWER(title) LIKE %s OR LOWER(address) LIKE %s)", placeholder, placeholder))
	}

	query := fmt.Sprintf(`%s WHERE %s ORDER BY created_at DESC`, base, strings.Join(clauses, " AND "))
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanProperties(rows)
}

func (r *propertyRepository) GetByID(ctx context.Context, id string) (*domain.Property, error) {
	const query = `
        SELECT id, title, price, type, transaction, latitude, longitude, address,
               description, images, features, parcel_id, assessed_value, land_use, area_m2,
               created_at, updated_at
        FROM properties WHERE id=$1`
	rows, err := r.pool.Query(ctx, query, id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	properties, err := scanProperties(rows)
	if err != nil {
		return nil, err
	}
	if len(properties) == 0 {
		return nil, pgx.ErrNoRows
	}
	return &properties[0], nil
}

func scanProperties(rows pgx.Rows) ([]domain.Property, error) {
	var result []domain.Property
	for rows.Next() {
		var p domain.Property
		if err := rows.Scan(
			&p.ID,
			&p.Title,
			&p.Price,
			&p.Type,
			&p.Transaction,
			&p.Latitude,
			&p.Longitude,
			&p.Address,
			&p.Description,
			&p.Images,
			&p.Features,
			&p.Cadastral.ParcelID,
			&p.Cadastral.AssessedValue,
			&p.Cadastral.LandUse,
			&p.Cadastral.AreaM2,
			&p.CreatedAt,
			&p.UpdatedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, p)
	}
	return result, rows.Err()
}
