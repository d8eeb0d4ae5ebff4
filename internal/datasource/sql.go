package datasource

import (
	"context"
	"database/sql"
	"fmt"
	"regexp"

	_ "github.com/go-sql-driver/mysql" // MySQL driver
	"github.com/huangsam/gamepulse/internal/contract"
	"github.com/huangsam/gamepulse/schema"
	_ "github.com/jackc/pgx/v5/stdlib" // PostgreSQL driver
	_ "modernc.org/sqlite"             // SQLite driver
)

var tableNamePattern = regexp.MustCompile(`^[a-zA-Z_][a-zA-Z0-9_]*$`)

// SQLSource reads each dataset from a table of the same name.
type SQLSource struct {
	db       *sql.DB
	backend  schema.DatabaseBackend
	location string
}

var _ contract.DataSource = &SQLSource{} // Compile-time check

// NewSQLSource connects to the dataset database. An empty SQLite connection
// string resolves to the default database file inside dataDir.
func NewSQLSource(backend schema.DatabaseBackend, connStr, dataDir string) (*SQLSource, error) {
	db, location, err := openDB(backend, connStr, dataDir)
	if err != nil {
		return nil, err
	}
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to connect to %s database. Check that the server is running and connection parameters are valid: %w", backend, err)
	}
	return &SQLSource{db: db, backend: backend, location: location}, nil
}

// openDB opens a handle for the backend without verifying the connection.
func openDB(backend schema.DatabaseBackend, connStr, dataDir string) (*sql.DB, string, error) {
	switch backend {
	case schema.SQLiteBackend, "":
		dbPath := connStr
		if dbPath == "" {
			dbPath = contract.SQLiteDBFilePath(dataDir)
		}
		db, err := sql.Open("sqlite", dbPath)
		if err != nil {
			return nil, "", fmt.Errorf("failed to open SQLite database at %q: %w", dbPath, err)
		}
		// Limit SQLite to a single open connection to avoid "database is locked" errors
		db.SetMaxOpenConns(1)
		return db, dbPath, nil

	case schema.MySQLBackend:
		// connStr should be:
		// user:password@tcp(host:port)/dbname
		db, err := sql.Open("mysql", connStr)
		if err != nil {
			return nil, "", fmt.Errorf("failed to connect to MySQL: %w. Check connection format: user:password@tcp(host:port)/dbname", err)
		}
		return db, string(backend), nil

	case schema.PostgreSQLBackend:
		// connStr should be:
		// host=localhost port=5432 user=postgres password=mysecretpassword dbname=postgres
		db, err := sql.Open("pgx", connStr)
		if err != nil {
			return nil, "", fmt.Errorf("failed to connect to PostgreSQL: %w. Check connection format: host=localhost port=5432 user=postgres dbname=mydb", err)
		}
		return db, string(backend), nil

	default:
		return nil, "", fmt.Errorf("unsupported source backend: %s. Must be sqlite, mysql, or postgresql", backend)
	}
}

// Load implements the DataSource interface.
func (s *SQLSource) Load(ctx context.Context, report schema.ReportName) (schema.Dataset, error) {
	if err := checkReport(report); err != nil {
		return schema.Dataset{}, err
	}
	table := schema.DatasetName[report]
	exists, err := s.tableExists(ctx, table)
	if err != nil {
		return schema.Dataset{}, err
	}
	if !exists {
		return schema.Dataset{}, fmt.Errorf("%w: %s (table %s)", contract.ErrDatasetNotFound, report, table)
	}

	query := fmt.Sprintf("SELECT * FROM %s", quoteTableName(table, s.backend))
	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return schema.Dataset{}, fmt.Errorf("failed to query %s: %w", table, err)
	}
	defer func() { _ = rows.Close() }()

	columns, err := rows.Columns()
	if err != nil {
		return schema.Dataset{}, err
	}
	dec, err := newRecordDecoder(columns)
	if err != nil {
		return schema.Dataset{}, fmt.Errorf("table %s: %w", table, err)
	}

	cells := make([]sql.NullString, len(columns))
	dest := make([]any, len(columns))
	for i := range cells {
		dest[i] = &cells[i]
	}
	record := make([]string, len(columns))

	ds := schema.Dataset{Report: report}
	for rows.Next() {
		if err := rows.Scan(dest...); err != nil {
			return schema.Dataset{}, fmt.Errorf("failed to scan %s: %w", table, err)
		}
		for i, c := range cells {
			record[i] = ""
			if c.Valid {
				record[i] = c.String
			}
		}
		row, err := dec.decode(record)
		if err != nil {
			return schema.Dataset{}, fmt.Errorf("table %s row %d: %w", table, len(ds.Rows)+1, err)
		}
		ds.Rows = append(ds.Rows, row)
	}
	if err := rows.Err(); err != nil {
		return schema.Dataset{}, err
	}
	return ds, nil
}

// Status implements the DataSource interface.
func (s *SQLSource) Status(ctx context.Context) (schema.SourceStatus, error) {
	status := schema.SourceStatus{
		Format:   schema.SQLSource,
		Backend:  string(s.backend),
		Location: s.location,
	}
	if err := s.db.PingContext(ctx); err != nil {
		return status, nil
	}
	status.Connected = true

	for _, report := range schema.AllReports {
		table := schema.DatasetName[report]
		ds := schema.DatasetStatus{Report: report, Dataset: table, Location: table}
		count, err := s.countRows(ctx, table)
		if err != nil {
			ds.Error = err.Error()
		} else {
			ds.Available = true
			ds.Rows = count
		}
		status.Datasets = append(status.Datasets, ds)
	}
	return status, nil
}

// Close implements the DataSource interface.
func (s *SQLSource) Close() error {
	return s.db.Close()
}

func (s *SQLSource) countRows(ctx context.Context, table string) (int, error) {
	exists, err := s.tableExists(ctx, table)
	if err != nil {
		return 0, err
	}
	if !exists {
		return 0, fmt.Errorf("%w: table %s", contract.ErrDatasetNotFound, table)
	}
	var count int
	query := fmt.Sprintf("SELECT COUNT(*) FROM %s", quoteTableName(table, s.backend))
	if err := s.db.QueryRowContext(ctx, query).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count %s: %w", table, err)
	}
	return count, nil
}

func (s *SQLSource) tableExists(ctx context.Context, table string) (bool, error) {
	if err := validateTableName(table); err != nil {
		return false, err
	}
	var query string
	switch s.backend {
	case schema.MySQLBackend:
		query = "SELECT COUNT(*) FROM information_schema.tables WHERE table_schema = DATABASE() AND table_name = ?"
	case schema.PostgreSQLBackend:
		query = "SELECT COUNT(*) FROM information_schema.tables WHERE table_schema = current_schema() AND table_name = $1"
	default:
		query = "SELECT COUNT(*) FROM sqlite_master WHERE type = 'table' AND name = ?"
	}
	var n int
	if err := s.db.QueryRowContext(ctx, query, table).Scan(&n); err != nil {
		return false, fmt.Errorf("failed to look up table %s: %w", table, err)
	}
	return n > 0, nil
}

// validateTableName validates that the table name is a safe SQL identifier.
func validateTableName(name string) error {
	if name == "" {
		return fmt.Errorf("table name cannot be empty")
	}
	if !tableNamePattern.MatchString(name) {
		return fmt.Errorf("invalid table name: %s (must match pattern ^[a-zA-Z_][a-zA-Z0-9_]*$)", name)
	}
	return nil
}

// quoteTableName returns the properly quoted table name for the given backend.
func quoteTableName(name string, backend schema.DatabaseBackend) string {
	switch backend {
	case schema.MySQLBackend:
		return fmt.Sprintf("`%s`", name)
	default: // SQLite and PostgreSQL
		return fmt.Sprintf("%q", name)
	}
}
