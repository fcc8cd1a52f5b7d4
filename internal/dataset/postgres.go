package dataset

import (
	"database/sql"
	"fmt"

	_ "github.com/lib/pq"

	"realestate-backend/internal/models"
)

// SourceConfig holds connection details for a SQL dataset source.
type SourceConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
	SSLMode  string // "disable", "require"
	Table    string
}

// DSN returns the PostgreSQL connection string.
func (c SourceConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.DBName, c.SSLMode)
}

// Source delivers an ordered record sequence from an external store.
type Source interface {
	LoadRecords() ([]models.Record, error)
	Close() error
}

// PostgresSource implements Source for PostgreSQL.
type PostgresSource struct {
	db    *sql.DB
	table string
}

// OpenPostgres connects to the configured database and verifies the
// connection with a ping.
func OpenPostgres(config SourceConfig) (*PostgresSource, error) {
	db, err := sql.Open("postgres", config.DSN())
	if err != nil {
		return nil, err
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, err
	}
	return &PostgresSource{db: db, table: config.Table}, nil
}

// LoadRecords reads the full dataset ordered by area and year.
func (p *PostgresSource) LoadRecords() ([]models.Record, error) {
	// Table name comes from operator config, not request input.
	query := fmt.Sprintf(
		"SELECT area, year, price, demand FROM %s ORDER BY area, year", p.table)

	rows, err := p.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("query %s: %w", p.table, err)
	}
	defer rows.Close()

	var records []models.Record
	for rows.Next() {
		var rec models.Record
		if err := rows.Scan(&rec.Area, &rec.Year, &rec.Price, &rec.Demand); err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}

func (p *PostgresSource) Close() error {
	if p.db != nil {
		return p.db.Close()
	}
	return nil
}
