package db

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/banshee-data/pawlabel/internal/contact"
	"github.com/google/uuid"
)

// Measurement is one recording session on the plate.
type Measurement struct {
	ID        string    `json:"measurement_id"`
	Name      string    `json:"name"`
	Rows      int       `json:"plate_rows"`
	Cols      int       `json:"plate_cols"`
	Frames    int       `json:"plate_frames"`
	CreatedAt time.Time `json:"created_at"`
}

// CreateMeasurement records a new measurement of a rows × cols × frames
// recording and returns it with a fresh UUID.
func (db *DB) CreateMeasurement(name string, rows, cols, frames int) (*Measurement, error) {
	m := &Measurement{
		ID:        uuid.New().String(),
		Name:      name,
		Rows:      rows,
		Cols:      cols,
		Frames:    frames,
		CreatedAt: db.clock.Now().UTC().Truncate(time.Second),
	}
	_, err := db.Exec(`
		INSERT INTO measurements (measurement_id, name, plate_rows, plate_cols, plate_frames, created_at)
		VALUES (?, ?, ?, ?, ?, ?)`,
		m.ID, m.Name, m.Rows, m.Cols, m.Frames, m.CreatedAt.Unix())
	if err != nil {
		return nil, fmt.Errorf("insert measurement: %w", err)
	}
	diagf("created measurement %s (%q, %dx%dx%d)", m.ID, name, rows, cols, frames)
	return m, nil
}

// Measurements lists all measurements, oldest first.
func (db *DB) Measurements() ([]Measurement, error) {
	rows, err := db.Query(`
		SELECT measurement_id, name, plate_rows, plate_cols, plate_frames, created_at
		FROM measurements ORDER BY created_at, rowid`)
	if err != nil {
		return nil, fmt.Errorf("query measurements: %w", err)
	}
	defer rows.Close()

	var out []Measurement
	for rows.Next() {
		m, err := scanMeasurement(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *m)
	}
	return out, rows.Err()
}

// Measurement returns the measurement with id, or ErrNotFound.
func (db *DB) Measurement(id string) (*Measurement, error) {
	row := db.QueryRow(`
		SELECT measurement_id, name, plate_rows, plate_cols, plate_frames, created_at
		FROM measurements WHERE measurement_id = ?`, id)
	m, err := scanMeasurement(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("measurement %s: %w", id, ErrNotFound)
	}
	return m, err
}

type scanner interface {
	Scan(dest ...any) error
}

func scanMeasurement(s scanner) (*Measurement, error) {
	var m Measurement
	var created int64
	if err := s.Scan(&m.ID, &m.Name, &m.Rows, &m.Cols, &m.Frames, &created); err != nil {
		return nil, err
	}
	m.CreatedAt = time.Unix(created, 0).UTC()
	return &m, nil
}

// SaveContacts writes contacts for a measurement in one transaction.
// Existing rows with the same contact ID are replaced.
func (db *DB) SaveContacts(measurementID string, contacts []*contact.Contact) error {
	if _, err := db.Measurement(measurementID); err != nil {
		return err
	}

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare(`
		INSERT OR REPLACE INTO contacts (
			measurement_id, contact_id, min_x, max_x, min_y, max_y,
			min_frame, max_frame, frames, shape, pixels,
			invalid, label, selected
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("prepare contact insert: %w", err)
	}
	defer stmt.Close()

	for _, c := range contacts {
		r := c.ToDict()
		frames, err := json.Marshal(r.Frames)
		if err != nil {
			return err
		}
		shape, err := json.Marshal(r.Shape)
		if err != nil {
			return err
		}
		pixels, err := encodePixels(r.Data)
		if err != nil {
			return err
		}
		label, err := r.Label.MarshalText()
		if err != nil {
			return err
		}
		if _, err := stmt.Exec(
			measurementID, r.ID, r.MinX, r.MaxX, r.MinY, r.MaxY,
			r.MinFrame, r.MaxFrame, string(frames), string(shape), pixels,
			r.Invalid, string(label), r.Selected,
		); err != nil {
			return fmt.Errorf("insert contact %d: %w", r.ID, err)
		}
		tracef("saved contact %d of %s (%d bytes of pixels)", r.ID, measurementID, len(pixels))
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	diagf("saved %d contacts for measurement %s", len(contacts), measurementID)
	return nil
}

// Contacts restores every contact of a measurement, ordered by first frame
// and then by leftmost column.
func (db *DB) Contacts(measurementID string) ([]*contact.Contact, error) {
	rows, err := db.Query(`
		SELECT contact_id, min_x, max_x, min_y, max_y, min_frame, max_frame,
		       frames, shape, pixels, invalid, label, selected
		FROM contacts WHERE measurement_id = ?
		ORDER BY min_frame, min_x, contact_id`, measurementID)
	if err != nil {
		return nil, fmt.Errorf("query contacts: %w", err)
	}
	defer rows.Close()

	var out []*contact.Contact
	for rows.Next() {
		var (
			r             contact.Record
			frames, shape string
			label         string
			pixels        []byte
		)
		if err := rows.Scan(&r.ID, &r.MinX, &r.MaxX, &r.MinY, &r.MaxY, &r.MinFrame, &r.MaxFrame,
			&frames, &shape, &pixels, &r.Invalid, &label, &r.Selected); err != nil {
			return nil, fmt.Errorf("scan contact: %w", err)
		}
		if err := json.Unmarshal([]byte(frames), &r.Frames); err != nil {
			return nil, fmt.Errorf("contact %d frames: %w", r.ID, err)
		}
		if err := json.Unmarshal([]byte(shape), &r.Shape); err != nil {
			return nil, fmt.Errorf("contact %d shape: %w", r.ID, err)
		}
		if err := r.Label.UnmarshalText([]byte(label)); err != nil {
			return nil, fmt.Errorf("contact %d: %w", r.ID, err)
		}
		if r.Data, err = decodePixels(pixels); err != nil {
			return nil, fmt.Errorf("contact %d: %w", r.ID, err)
		}
		c, err := contact.Restore(r)
		if err != nil {
			opsf("unreadable contact %d of %s: %v", r.ID, measurementID, err)
			return nil, fmt.Errorf("contact %d: %w", r.ID, err)
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

// UpdateLabel sets the label of one contact. Labeling a contact invalid
// also sets its invalid flag, matching contact.SetLabel.
func (db *DB) UpdateLabel(measurementID string, contactID int, label contact.Label) error {
	text, err := label.MarshalText()
	if err != nil {
		return err
	}
	res, err := db.Exec(`
		UPDATE contacts SET label = ?, invalid = (invalid OR ?)
		WHERE measurement_id = ? AND contact_id = ?`,
		string(text), label == contact.Invalid, measurementID, contactID)
	if err != nil {
		return fmt.Errorf("update label: %w", err)
	}
	return expectOne(res, measurementID, contactID)
}

// SetInvalid sets the invalid flag of one contact. Clearing the flag also
// clears an Invalid label, matching contact.ToggleInvalid.
func (db *DB) SetInvalid(measurementID string, contactID int, invalid bool) error {
	res, err := db.Exec(`
		UPDATE contacts SET invalid = ?,
			label = CASE
				WHEN ? THEN 'invalid'
				WHEN label = 'invalid' THEN 'unlabeled'
				ELSE label
			END
		WHERE measurement_id = ? AND contact_id = ?`,
		invalid, invalid, measurementID, contactID)
	if err != nil {
		return fmt.Errorf("set invalid: %w", err)
	}
	return expectOne(res, measurementID, contactID)
}

func expectOne(res sql.Result, measurementID string, contactID int) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("contact %d of %s: %w", contactID, measurementID, ErrNotFound)
	}
	return nil
}
