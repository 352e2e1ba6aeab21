package store

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/MKhiriev/go-recipe-box/models"
)

// queryer is satisfied by both *sql.DB and *sql.Tx, so helpers run the same
// statements inside and outside a transaction.
type queryer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// rowScanner is satisfied by *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

var (
	userColumns = []string{
		"id", "email", "name", "password_hash",
		"is_active", "is_staff", "is_superuser", "created_at",
	}

	tokenColumns = []string{"user_id", "key_digest", "created_at"}

	recipeColumns = []string{
		"id", "user_id", "name", "time_minutes", "price", "link", "image",
	}
)

// attributeTables describes the storage of one attribute kind.
type attributeTables struct {
	// table holds the attribute rows.
	table string
	// link is the recipe association table and fk its attribute column.
	link string
	fk   string
}

var attributeTablesByKind = map[models.AttributeKind]attributeTables{
	models.TagKind:        {table: "tags", link: "recipe_tags", fk: "tag_id"},
	models.IngredientKind: {table: "ingredients", link: "recipe_ingredients", fk: "ingredient_id"},
}

func tablesOf(kind models.AttributeKind) (attributeTables, error) {
	tables, ok := attributeTablesByKind[kind]
	if !ok {
		return attributeTables{}, fmt.Errorf("%w: %q", ErrUnknownAttributeKind, kind)
	}

	return tables, nil
}

func joinColumns(columns []string) string {
	return strings.Join(columns, ", ")
}

// classify returns the constraint class of err using the driver classifier.
func (db *DB) classify(err error) ErrorClassification {
	if db.errorClassificator == nil {
		return Unclassified
	}

	return db.errorClassificator.Classify(err)
}
