package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"

	"drawcast/domain/draw"
	"drawcast/ports"
)

// drawRepository implements ports.DrawSource against a Postgres draw
// archive. The weekday filter runs in SQL so the core receives only the
// relevant rows; the star gap is derived on scan, matching the file
// reader's contract.
type drawRepository struct {
	db       *sqlx.DB
	weekdays []time.Weekday
	mainMax  int
	starMax  int
}

// NewDrawRepository creates a draw source backed by the draws table.
func NewDrawRepository(db *sqlx.DB, weekdays []time.Weekday, mainMax, starMax int) ports.DrawSource {
	return &drawRepository{db: db, weekdays: weekdays, mainMax: mainMax, starMax: starMax}
}

// Connect opens and pings a Postgres connection.
func Connect(url string) (*sqlx.DB, error) {
	db, err := sqlx.Connect("postgres", url)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}
	return db, nil
}

type drawRow struct {
	DrawDate time.Time `db:"draw_date"`
	P1       int       `db:"p1"`
	P2       int       `db:"p2"`
	P3       int       `db:"p3"`
	P4       int       `db:"p4"`
	P5       int       `db:"p5"`
	P6       int       `db:"p6"`
	P7       int       `db:"p7"`
}

// Load fetches the filtered draw history in draw-date order.
func (r *drawRepository) Load(ctx context.Context) (draw.History, error) {
	// Postgres EXTRACT(DOW ...) numbers Sunday as 0, matching time.Weekday.
	days := make([]int, len(r.weekdays))
	for i, d := range r.weekdays {
		days[i] = int(d)
	}

	query, args, err := sqlx.In(`SELECT draw_date, p1, p2, p3, p4, p5, p6, p7
		FROM draws
		WHERE EXTRACT(DOW FROM draw_date) IN (?)
		ORDER BY draw_date`, days)
	if err != nil {
		return nil, fmt.Errorf("failed to build draw query: %w", err)
	}
	query = r.db.Rebind(query)

	var rows []drawRow
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("failed to load draws: %w", err)
	}

	history := make(draw.History, 0, len(rows))
	for _, row := range rows {
		d := draw.Draw{
			Date:  row.DrawDate,
			Mains: [5]int{row.P1, row.P2, row.P3, row.P4, row.P5},
			Stars: [2]int{row.P6, row.P7},
		}
		d.StarGap = d.Stars[1] - d.Stars[0]
		if err := d.Validate(r.mainMax, r.starMax); err != nil {
			return nil, fmt.Errorf("draw on %s: %w", row.DrawDate.Format("2006-01-02"), err)
		}
		history = append(history, d)
	}
	return history, nil
}
