package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/crewdeck-dev/crewdeck/backend/internal/domain"
)

func (r *Repository) CreateDuty(duty *domain.Duty) error {
	query := `
		INSERT INTO duties (user_id, date, pairing)
		VALUES ($1, $2, $3)
		RETURNING id, created_at, version
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	if err := r.dbpool.QueryRowContext(ctx, query, duty.UserID, duty.Date, duty.Pairing).Scan(&duty.ID, &duty.CreatedAt, &duty.Version); err != nil {
		return err
	}

	return nil
}

// InsertDutyWithLegs persists a duty and its legs in one transaction, so a
// confirmed import never leaves a duty without its legs behind.
func (r *Repository) InsertDutyWithLegs(duty *domain.Duty) error {
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.TransactionTimeout)*time.Second)
	defer cancel()

	tx, err := r.dbpool.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		_ = tx.Rollback()
	}()

	query := `
		INSERT INTO duties (user_id, date, pairing)
		VALUES ($1, $2, $3)
		RETURNING id, created_at, version
	`
	if err := tx.QueryRowContext(ctx, query, duty.UserID, duty.Date, duty.Pairing).Scan(&duty.ID, &duty.CreatedAt, &duty.Version); err != nil {
		return err
	}

	query = `
		INSERT INTO flight_legs (duty_id, flight_number, departure_time, arrival_time, departure_location, arrival_location, is_deadhead, notes)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id
	`
	for i := range duty.Legs {
		leg := &duty.Legs[i]
		leg.DutyID = duty.ID

		args := []any{duty.ID, leg.FlightNumber, leg.DepartureTime, leg.ArrivalTime, leg.DepartureLocation, leg.ArrivalLocation, leg.IsDeadhead, leg.Notes}
		if err := tx.QueryRowContext(ctx, query, args...).Scan(&leg.ID); err != nil {
			return err
		}
	}

	if err := tx.Commit(); err != nil {
		return err
	}

	return nil
}

func (r *Repository) GetDutyByID(id int64) (*domain.Duty, error) {
	query := `
		SELECT user_id, date, pairing, created_at, version
		FROM duties WHERE id = $1
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	duty := &domain.Duty{
		ID: id,
	}

	var pairing sql.NullString
	dst := []any{&duty.UserID, &duty.Date, &pairing, &duty.CreatedAt, &duty.Version}
	if err := r.dbpool.QueryRowContext(ctx, query, id).Scan(dst...); err != nil {
		return nil, err
	}
	duty.Pairing = pairing.String

	legs, err := r.getLegsForDuties(ctx, []int64{id})
	if err != nil {
		return nil, err
	}
	duty.Legs = legs[id]
	if duty.Legs == nil {
		duty.Legs = []domain.FlightLeg{}
	}

	return duty, nil
}

// GetUserDuties returns the user's duties whose date falls in [from, to],
// legs included, ordered by date.
func (r *Repository) GetUserDuties(userID int64, from, to time.Time) ([]*domain.Duty, error) {
	query := `
		SELECT id, date, pairing, created_at, version
		FROM duties
		WHERE user_id = $1 AND date >= $2 AND date <= $3
		ORDER BY date, id
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	rows, err := r.dbpool.QueryContext(ctx, query, userID, from, to)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	duties := make([]*domain.Duty, 0)
	ids := make([]int64, 0)
	for rows.Next() {
		duty := &domain.Duty{
			UserID: &userID,
		}
		var pairing sql.NullString
		if err := rows.Scan(&duty.ID, &duty.Date, &pairing, &duty.CreatedAt, &duty.Version); err != nil {
			return nil, err
		}
		duty.Pairing = pairing.String
		duties = append(duties, duty)
		ids = append(ids, duty.ID)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	legs, err := r.getLegsForDuties(ctx, ids)
	if err != nil {
		return nil, err
	}
	for _, duty := range duties {
		duty.Legs = legs[duty.ID]
		if duty.Legs == nil {
			duty.Legs = []domain.FlightLeg{}
		}
	}

	return duties, nil
}

// ListUserLegs returns every leg the user owns in the date range, the input
// the duplicate filter matches import candidates against.
func (r *Repository) ListUserLegs(userID int64, from, to time.Time) ([]domain.FlightLeg, error) {
	query := `
		SELECT fl.id, fl.duty_id, fl.flight_number, fl.departure_time, fl.arrival_time,
			fl.departure_location, fl.arrival_location, fl.is_deadhead, COALESCE(fl.notes, '')
		FROM flight_legs fl
		JOIN duties d ON d.id = fl.duty_id
		WHERE d.user_id = $1 AND d.date >= $2 AND d.date <= $3
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	rows, err := r.dbpool.QueryContext(ctx, query, userID, from, to)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	legs := make([]domain.FlightLeg, 0)
	for rows.Next() {
		var leg domain.FlightLeg
		dst := []any{&leg.ID, &leg.DutyID, &leg.FlightNumber, &leg.DepartureTime, &leg.ArrivalTime, &leg.DepartureLocation, &leg.ArrivalLocation, &leg.IsDeadhead, &leg.Notes}
		if err := rows.Scan(dst...); err != nil {
			return nil, err
		}
		legs = append(legs, leg)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return legs, nil
}

func (r *Repository) getLegsForDuties(ctx context.Context, dutyIDs []int64) (map[int64][]domain.FlightLeg, error) {
	legsByDuty := make(map[int64][]domain.FlightLeg, len(dutyIDs))
	if len(dutyIDs) == 0 {
		return legsByDuty, nil
	}

	query := `
		SELECT id, duty_id, flight_number, departure_time, arrival_time,
			departure_location, arrival_location, is_deadhead, COALESCE(notes, '')
		FROM flight_legs
		WHERE duty_id = ANY($1)
		ORDER BY departure_time, id
	`

	rows, err := r.dbpool.QueryContext(ctx, query, dutyIDs)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var leg domain.FlightLeg
		dst := []any{&leg.ID, &leg.DutyID, &leg.FlightNumber, &leg.DepartureTime, &leg.ArrivalTime, &leg.DepartureLocation, &leg.ArrivalLocation, &leg.IsDeadhead, &leg.Notes}
		if err := rows.Scan(dst...); err != nil {
			return nil, err
		}
		legsByDuty[leg.DutyID] = append(legsByDuty[leg.DutyID], leg)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return legsByDuty, nil
}
