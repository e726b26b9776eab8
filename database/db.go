package database

import (
	"database/sql"
	"fmt"
	"os"
	"time"

	"github.com/kataras/golog"
	_ "github.com/lib/pq"
)

var DB *sql.DB

// ─── Models ──────────────────────────────────────────────────────────────────

// Search archives one flight or hotel query. Flight searches fill
// origin/destination, hotel searches fill location; the stay/travel dates and
// headcount are shared.
type Search struct {
	ID          string    `json:"id"`
	Kind        string    `json:"kind"` // "flight" or "hotel"
	Origin      string    `json:"origin"`
	Destination string    `json:"destination"`
	Location    string    `json:"location"`
	StartDate   string    `json:"start_date"`
	EndDate     string    `json:"end_date"`
	Travelers   int       `json:"travelers"`
	Results     int       `json:"results"`
	CreatedAt   time.Time `json:"created_at"`
}

// Itinerary archives one generated itinerary with its rendered PDF.
type Itinerary struct {
	ID           string    `json:"id"`
	Destination  string    `json:"destination"`
	CheckInDate  string    `json:"check_in_date"`
	CheckOutDate string    `json:"check_out_date"`
	Itinerary    string    `json:"itinerary"`
	PDFData      []byte    `json:"pdf_data,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
}

// ─── Init ─────────────────────────────────────────────────────────────────────

// InitDB opens the optional archive store. Without DATABASE_URL or DB_HOST the
// store stays disabled and every archive call becomes a no-op; the request
// path never depends on it.
func InitDB() {
	if os.Getenv("DATABASE_URL") == "" && os.Getenv("DB_HOST") == "" {
		golog.Info("archive store disabled — no DATABASE_URL or DB_HOST configured")
		return
	}

	db, err := sql.Open("postgres", buildDSN())
	if err != nil {
		golog.Errorf("failed to open archive store: %v", err)
		return
	}

	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)

	if err := db.Ping(); err != nil {
		golog.Errorf("archive store unreachable, continuing without it: %v", err)
		db.Close()
		return
	}

	DB = db
	if err := migrate(); err != nil {
		golog.Errorf("archive store migration failed, continuing without it: %v", err)
		DB = nil
		db.Close()
		return
	}
	golog.Info("archive store connected and migrated")
}

// Enabled reports whether the archive store is available.
func Enabled() bool {
	return DB != nil
}

func buildDSN() string {
	if url := os.Getenv("DATABASE_URL"); url != "" {
		return url
	}

	host := getEnv("DB_HOST", "localhost")
	port := getEnv("DB_PORT", "5432")
	user := getEnv("DB_USER", "postgres")
	pass := getEnv("DB_PASSWORD", "postgres")
	name := getEnv("DB_NAME", "tripscout")
	sslmode := getEnv("DB_SSLMODE", "disable")

	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		host, port, user, pass, name, sslmode)
}

// ─── Migrations ───────────────────────────────────────────────────────────────

func migrate() error {
	migrations := []string{
		`CREATE TABLE IF NOT EXISTS searches (
			id          TEXT PRIMARY KEY,
			kind        TEXT NOT NULL,
			origin      TEXT,
			destination TEXT,
			location    TEXT,
			start_date  TEXT NOT NULL,
			end_date    TEXT,
			travelers   INTEGER DEFAULT 1,
			results     INTEGER DEFAULT 0,
			created_at  TIMESTAMPTZ DEFAULT NOW()
		)`,

		`CREATE TABLE IF NOT EXISTS itineraries (
			id             TEXT PRIMARY KEY,
			destination    TEXT NOT NULL,
			check_in_date  TEXT NOT NULL,
			check_out_date TEXT NOT NULL,
			itinerary      TEXT,
			pdf_data       BYTEA,
			created_at     TIMESTAMPTZ DEFAULT NOW()
		)`,

		`CREATE INDEX IF NOT EXISTS idx_searches_created_at
			ON searches(created_at DESC)`,
	}

	for _, m := range migrations {
		if _, err := DB.Exec(m); err != nil {
			return fmt.Errorf("migration failed: %w", err)
		}
	}
	return nil
}

// ─── CRUD ─────────────────────────────────────────────────────────────────────

func SaveSearch(s *Search) error {
	_, err := DB.Exec(`
		INSERT INTO searches (id, kind, origin, destination, location, start_date, end_date, travelers, results)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		s.ID, s.Kind, s.Origin, s.Destination, s.Location, s.StartDate, s.EndDate, s.Travelers, s.Results)
	return err
}

func SaveItinerary(i *Itinerary) error {
	_, err := DB.Exec(`
		INSERT INTO itineraries (id, destination, check_in_date, check_out_date, itinerary, pdf_data)
		VALUES ($1, $2, $3, $4, $5, $6)`,
		i.ID, i.Destination, i.CheckInDate, i.CheckOutDate, i.Itinerary, i.PDFData)
	return err
}

func GetItinerary(id string) (*Itinerary, error) {
	i := &Itinerary{}
	err := DB.QueryRow(`
		SELECT id, destination, check_in_date, check_out_date, itinerary, pdf_data, created_at
		FROM itineraries WHERE id = $1`, id).
		Scan(&i.ID, &i.Destination, &i.CheckInDate, &i.CheckOutDate,
			&i.Itinerary, &i.PDFData, &i.CreatedAt)
	if err != nil {
		return nil, err
	}
	return i, nil
}

// ─── Helpers ──────────────────────────────────────────────────────────────────

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
