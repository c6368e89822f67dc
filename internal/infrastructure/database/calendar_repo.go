package database

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"

	"babounette/internal/core/calendar"
	"babounette/internal/pkg/common"
)

// CalendarRepo persistance des événements du calendrier
type CalendarRepo struct {
	db *DB
}

// NewCalendarRepo crée le dépôt du calendrier
func NewCalendarRepo(db *DB) *CalendarRepo {
	return &CalendarRepo{db: db}
}

// Create insère un événement
func (r *CalendarRepo) Create(ctx context.Context, e calendar.Event) (calendar.Event, error) {
	err := r.db.Pool.QueryRow(ctx, `
		INSERT INTO calendar_events (title, event_date, event_time, description, recipe_id, created_at, updated_at)
		VALUES ($1, $2, NULLIF($3, ''), $4, $5, NOW(), NOW())
		RETURNING id
	`, e.Title, e.Date, e.Time, e.Description, e.RecipeID).Scan(&e.ID)
	if err != nil {
		return calendar.Event{}, err
	}
	return e, nil
}

// GetByID renvoie un événement par identifiant
func (r *CalendarRepo) GetByID(ctx context.Context, id int) (calendar.Event, error) {
	e, err := scanEvent(r.db.Pool.QueryRow(ctx, `
		SELECT id, title, event_date, COALESCE(event_time, ''), COALESCE(description, ''), recipe_id
		FROM calendar_events
		WHERE id = $1
	`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return calendar.Event{}, common.ErrEventNotFound
		}
		return calendar.Event{}, err
	}
	return e, nil
}

// ListByRange renvoie les événements entre deux dates incluses
func (r *CalendarRepo) ListByRange(ctx context.Context, from, to string) ([]calendar.Event, error) {
	rows, err := r.db.Pool.Query(ctx, `
		SELECT id, title, event_date, COALESCE(event_time, ''), COALESCE(description, ''), recipe_id
		FROM calendar_events
		WHERE event_date BETWEEN $1 AND $2
		ORDER BY event_date, event_time NULLS LAST
	`, from, to)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var events []calendar.Event
	for rows.Next() {
		e, err := scanEvent(rows)
		if err != nil {
			return nil, err
		}
		events = append(events, e)
	}
	return events, rows.Err()
}

// Update met à jour un événement existant
func (r *CalendarRepo) Update(ctx context.Context, e calendar.Event) (calendar.Event, error) {
	result, err := r.db.Pool.Exec(ctx, `
		UPDATE calendar_events
		SET title = $2, event_date = $3, event_time = NULLIF($4, ''), description = $5, recipe_id = $6, updated_at = NOW()
		WHERE id = $1
	`, e.ID, e.Title, e.Date, e.Time, e.Description, e.RecipeID)
	if err != nil {
		return calendar.Event{}, err
	}
	if result.RowsAffected() == 0 {
		return calendar.Event{}, common.ErrEventNotFound
	}
	return e, nil
}

// Delete supprime un événement
func (r *CalendarRepo) Delete(ctx context.Context, id int) error {
	result, err := r.db.Pool.Exec(ctx, `DELETE FROM calendar_events WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return common.ErrEventNotFound
	}
	return nil
}

func scanEvent(row pgx.Row) (calendar.Event, error) {
	var e calendar.Event
	var date time.Time
	if err := row.Scan(&e.ID, &e.Title, &date, &e.Time, &e.Description, &e.RecipeID); err != nil {
		return calendar.Event{}, err
	}
	e.Date = date.Format(calendar.DateLayout)
	return e, nil
}
