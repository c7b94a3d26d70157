package store

import (
	"database/sql"
	"fmt"
	"strings"

	_ "modernc.org/sqlite"
)

// Payment represents a single generated payment request stored in the
// history database. Wei is kept as its decimal string to preserve
// arbitrary precision; Ether is the pre-computed display form.
type Payment struct {
	ID        int64  `json:"id"`
	Address   string `json:"address"`
	Wei       string `json:"wei"`
	Ether     string `json:"ether"`
	Note      string `json:"note,omitempty"`
	URI       string `json:"uri"`
	CreatedAt int64  `json:"created_at"`
}

// PaymentStore manages SQLite storage for generated payment requests.
type PaymentStore struct {
	db *sql.DB
}

const createPaymentsTable = `
CREATE TABLE IF NOT EXISTS payments (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    address TEXT NOT NULL,
    wei TEXT NOT NULL,
    ether TEXT NOT NULL DEFAULT '',
    note TEXT NOT NULL DEFAULT '',
    uri TEXT NOT NULL,
    created_at INTEGER NOT NULL
);
`

const createFTSTable = `
CREATE VIRTUAL TABLE IF NOT EXISTS payments_fts USING fts5(
    address,
    note,
    content='payments',
    content_rowid='id'
);
`

const createFTSTrigger = `
CREATE TRIGGER IF NOT EXISTS payments_ai AFTER INSERT ON payments BEGIN
    INSERT INTO payments_fts(rowid, address, note)
    VALUES (new.id, new.address, new.note);
END;
`

const createIndexes = `
CREATE INDEX IF NOT EXISTS idx_payments_address ON payments(address);
CREATE INDEX IF NOT EXISTS idx_payments_created_at ON payments(created_at);
`

// NewPaymentStore opens (or creates) the SQLite database at dbPath,
// initialises the schema (payments table, FTS5 virtual table, sync trigger),
// and returns a ready-to-use PaymentStore.
func NewPaymentStore(dbPath string) (*PaymentStore, error) {
	dsn := fmt.Sprintf("%s?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)", dbPath)
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	// Verify the connection is alive.
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	// Run schema migrations.
	for _, stmt := range []string{
		createPaymentsTable,
		createFTSTable,
		createFTSTrigger,
		createIndexes,
	} {
		if _, err := db.Exec(stmt); err != nil {
			db.Close()
			return nil, fmt.Errorf("exec schema statement: %w", err)
		}
	}

	return &PaymentStore{db: db}, nil
}

// Save inserts a payment into the database and returns its assigned ID.
func (s *PaymentStore) Save(p *Payment) (int64, error) {
	const query = `
		INSERT INTO payments (address, wei, ether, note, uri, created_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`

	res, err := s.db.Exec(query,
		p.Address,
		p.Wei,
		p.Ether,
		p.Note,
		p.URI,
		p.CreatedAt,
	)
	if err != nil {
		return 0, fmt.Errorf("save payment: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("payment insert id: %w", err)
	}
	p.ID = id
	return id, nil
}

// List returns payments ordered by creation time descending (newest first).
// Use limit and offset for pagination.
func (s *PaymentStore) List(limit, offset int) ([]Payment, error) {
	const query = `
		SELECT id, address, wei, ether, note, uri, created_at
		FROM payments
		ORDER BY created_at DESC, id DESC
		LIMIT ? OFFSET ?
	`

	rows, err := s.db.Query(query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list payments: %w", err)
	}
	defer rows.Close()

	return scanPayments(rows)
}

// Search performs a full-text search across payment addresses and notes
// using the FTS5 index. Results are ranked by relevance.
func (s *PaymentStore) Search(query string, limit int) ([]Payment, error) {
	// Escape any double quotes in the query to avoid FTS5 syntax errors.
	escaped := strings.ReplaceAll(query, `"`, `""`)
	ftsQuery := fmt.Sprintf(`"%s"`, escaped)

	const q = `
		SELECT p.id, p.address, p.wei, p.ether, p.note, p.uri, p.created_at
		FROM payments p
		JOIN payments_fts fts ON p.id = fts.rowid
		WHERE payments_fts MATCH ?
		ORDER BY rank
		LIMIT ?
	`

	rows, err := s.db.Query(q, ftsQuery, limit)
	if err != nil {
		return nil, fmt.Errorf("search payments: %w", err)
	}
	defer rows.Close()

	return scanPayments(rows)
}

// Get returns the payment with the given ID, or sql.ErrNoRows if it does
// not exist.
func (s *PaymentStore) Get(id int64) (*Payment, error) {
	const query = `
		SELECT id, address, wei, ether, note, uri, created_at
		FROM payments
		WHERE id = ?
	`

	var p Payment
	err := s.db.QueryRow(query, id).Scan(
		&p.ID, &p.Address, &p.Wei, &p.Ether, &p.Note, &p.URI, &p.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("get payment %d: %w", id, err)
	}
	return &p, nil
}

// Count returns the total number of stored payments.
func (s *PaymentStore) Count() (int64, error) {
	var n int64
	if err := s.db.QueryRow(`SELECT COUNT(*) FROM payments`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count payments: %w", err)
	}
	return n, nil
}

// Close closes the underlying database connection.
func (s *PaymentStore) Close() error {
	return s.db.Close()
}

// --- helpers ----------------------------------------------------------------

func scanPayments(rows *sql.Rows) ([]Payment, error) {
	var payments []Payment
	for rows.Next() {
		var p Payment
		if err := rows.Scan(
			&p.ID, &p.Address, &p.Wei, &p.Ether, &p.Note, &p.URI, &p.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan payment row: %w", err)
		}
		payments = append(payments, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate payment rows: %w", err)
	}
	return payments, nil
}
