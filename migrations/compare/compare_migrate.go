package compare

import (
	"database/sql"
	"fmt"
	"gocompare_api/pkg/dbconnect"
	"gocompare_api/pkg/dbconnect/migration"
	"log"
)

const (
	MigrationsTable        = "compare.migrations"
	CategoriesMigration    = "compare.categories"
	ProductsMigration      = "compare.products"
	ProductPricesMigration = "compare.product_prices"
	CategorySeedMigration  = "compare.categories_seed"
)

// All returns the migrations of the comparison store in apply order.
func All(dialect dbconnect.Dialect) []migration.MigrationInterface {
	return []migration.MigrationInterface{
		&MigrationsRegistry{Dialect: dialect},
		&CategoriesTable{Dialect: dialect},
		&ProductsTable{Dialect: dialect},
		&ProductPricesTable{Dialect: dialect},
		&CategorySeed{Dialect: dialect},
	}
}

type MigrationsRegistry struct {
	Dialect dbconnect.Dialect
}

func (m *MigrationsRegistry) Name() string { return MigrationsTable }

func (m *MigrationsRegistry) UpMigration(db *sql.DB) error {
	query := `
	CREATE TABLE IF NOT EXISTS schema_migrations (
		name VARCHAR(255) PRIMARY KEY,
		time TIMESTAMP NOT NULL
	);`
	if _, err := db.Exec(query); err != nil {
		return fmt.Errorf("failed to create schema_migrations table: %w", err)
	}
	return nil
}

type CategoriesTable struct {
	Dialect dbconnect.Dialect
}

func (m *CategoriesTable) Name() string { return CategoriesMigration }

func (m *CategoriesTable) UpMigration(db *sql.DB) error {
	id := "SERIAL PRIMARY KEY"
	if m.Dialect == dbconnect.Sqlite {
		id = "INTEGER PRIMARY KEY AUTOINCREMENT"
	}
	return run(db, m.Dialect, CategoriesMigration, fmt.Sprintf(`
	CREATE TABLE IF NOT EXISTS categories (
		id %s,
		slug VARCHAR(64) NOT NULL UNIQUE,
		name VARCHAR(255) NOT NULL,
		display_order INT NOT NULL DEFAULT 0
	);`, id))
}

type ProductsTable struct {
	Dialect dbconnect.Dialect
}

func (m *ProductsTable) Name() string { return ProductsMigration }

func (m *ProductsTable) UpMigration(db *sql.DB) error {
	idType, jsonType, boolType, tsType := "UUID", "JSONB", "BOOLEAN", "TIMESTAMPTZ"
	if m.Dialect == dbconnect.Sqlite {
		idType, jsonType, boolType, tsType = "TEXT", "TEXT", "INTEGER", "TIMESTAMP"
	}
	return run(db, m.Dialect, ProductsMigration,
		fmt.Sprintf(`
	CREATE TABLE IF NOT EXISTS products (
		id %[1]s PRIMARY KEY,
		category_id INT NOT NULL REFERENCES categories(id),
		name TEXT NOT NULL,
		brand VARCHAR(255),
		model VARCHAR(255) NOT NULL UNIQUE,
		price NUMERIC(12,2),
		avg_price NUMERIC(12,2),
		currency VARCHAR(8) NOT NULL DEFAULT 'TRY',
		image_url TEXT,
		source_url TEXT,
		source_name VARCHAR(255),
		sources %[2]s NOT NULL DEFAULT '[]',
		specifications %[2]s NOT NULL DEFAULT '{}',
		is_active %[3]s NOT NULL DEFAULT TRUE,
		stock_status VARCHAR(32),
		scraped_at %[4]s,
		updated_at %[4]s
	);`, idType, jsonType, boolType, tsType),
		`CREATE INDEX IF NOT EXISTS products_category_id_idx ON products(category_id);`,
	)
}

type ProductPricesTable struct {
	Dialect dbconnect.Dialect
}

func (m *ProductPricesTable) Name() string { return ProductPricesMigration }

func (m *ProductPricesTable) UpMigration(db *sql.DB) error {
	idType, tsType := "UUID", "TIMESTAMPTZ"
	if m.Dialect == dbconnect.Sqlite {
		idType, tsType = "TEXT", "TIMESTAMP"
	}
	return run(db, m.Dialect, ProductPricesMigration, fmt.Sprintf(`
	CREATE TABLE IF NOT EXISTS product_prices (
		product_id %s NOT NULL REFERENCES products(id) ON DELETE CASCADE,
		source_name VARCHAR(255) NOT NULL,
		source_url TEXT,
		price NUMERIC(12,2) NOT NULL,
		currency VARCHAR(8) NOT NULL DEFAULT 'TRY',
		scraped_at %s,
		UNIQUE (product_id, source_name)
	);`, idType, tsType))
}

// CategorySeed inserts the categories the site ships with. Existing rows are
// left untouched; categories are owned by the site administration.
type CategorySeed struct {
	Dialect dbconnect.Dialect
}

func (m *CategorySeed) Name() string { return CategorySeedMigration }

func (m *CategorySeed) UpMigration(db *sql.DB) error {
	return run(db, m.Dialect, CategorySeedMigration, `
	INSERT INTO categories (slug, name, display_order) VALUES
		('telefon', 'Telefon', 1),
		('laptop', 'Laptop', 2),
		('tablet', 'Tablet', 3),
		('supurge', 'Süpürge', 4),
		('arac', 'Araç', 5)
	ON CONFLICT (slug) DO NOTHING;`)
}

func run(db *sql.DB, dialect dbconnect.Dialect, name string, statements ...string) error {
	if ok, err := checkAndSkipMigration(db, dialect, name); err != nil {
		return err
	} else if ok {
		return nil
	}
	if err := executeAndMarkMigration(db, dialect, name, statements...); err != nil {
		return err
	}
	log.Printf("Migration '%s' completed successfully.", name)
	return nil
}

func checkAndSkipMigration(db *sql.DB, dialect dbconnect.Dialect, name string) (bool, error) {
	var migrationExists bool
	err := db.QueryRow(dialect.Rebind("SELECT EXISTS (SELECT 1 FROM schema_migrations WHERE name = $1)"), name).Scan(&migrationExists)
	if err != nil {
		return false, fmt.Errorf("failed to check migration status: %w", err)
	}
	if migrationExists {
		log.Printf("Migration '%s' already completed. Skipping.", name)
	}
	return migrationExists, nil
}

func executeAndMarkMigration(db *sql.DB, dialect dbconnect.Dialect, name string, statements ...string) error {
	for _, query := range statements {
		if _, err := db.Exec(query); err != nil {
			return fmt.Errorf("failed to apply %s: %w", name, err)
		}
	}
	_, err := db.Exec(dialect.Rebind("INSERT INTO schema_migrations (name, time) VALUES ($1, current_timestamp)"), name)
	if err != nil {
		return fmt.Errorf("failed to mark '%s' migration as complete: %w", name, err)
	}
	return nil
}
