package storage

import (
	"database/sql"

	"gocompare_api/pkg/dbconnect"
)

// Store bundles the repositories of the comparison database.
type Store struct {
	Categories *CategoryRepository
	Products   *ProductRepository
	Prices     *PriceRepository
}

func NewStore(db *sql.DB, dialect dbconnect.Dialect) *Store {
	return &Store{
		Categories: NewCategoryRepository(db, dialect),
		Products:   NewProductRepository(db, dialect),
		Prices:     NewPriceRepository(db, dialect),
	}
}
