package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/hansollee/matzip/internal/models"
)

const recordColumns = `id, date, time, restaurant_name, food_name,
	address, latitude, longitude, place_id, place_name,
	category, rating, review, photo, price, created_at, updated_at`

func (s *SQLiteStore) AddRecord(rec models.FoodRecord) (int64, error) {
	// Caller-supplied id and timestamps are never trusted; both stamps are
	// computed here so updated_at >= created_at holds from the start.
	now := time.Now()
	rec.CreatedAt = now
	rec.UpdatedAt = now

	res, err := s.db.Exec(`
		INSERT INTO food_records (
			date, time, restaurant_name, food_name,
			address, latitude, longitude, place_id, place_name,
			category, rating, review, photo, price, created_at, updated_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		rec.Date, rec.Time, rec.RestaurantName, rec.FoodName,
		rec.Location.Address, rec.Location.Latitude, rec.Location.Longitude,
		nullString(rec.Location.PlaceID), nullString(rec.Location.PlaceName),
		rec.Category, rec.Rating, rec.Review, rec.Photo, nullInt(rec.Price),
		now.Format(sortableTimeLayout), now.Format(sortableTimeLayout))
	if err != nil {
		return 0, fmt.Errorf("failed to insert record: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to read assigned record id: %w", err)
	}

	s.feed.notify()
	return id, nil
}

func (s *SQLiteStore) GetRecord(id int64) (models.FoodRecord, error) {
	row := s.db.QueryRow(
		"SELECT "+recordColumns+" FROM food_records WHERE id = ?", id)

	rec, err := scanRecord(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.FoodRecord{}, ErrNotFound
		}
		return models.FoodRecord{}, err
	}
	return rec, nil
}

func (s *SQLiteStore) GetAllRecords() ([]models.FoodRecord, error) {
	rows, err := s.db.Query(
		"SELECT " + recordColumns + " FROM food_records ORDER BY created_at DESC, id DESC")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []models.FoodRecord
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}

	return records, rows.Err()
}

func (s *SQLiteStore) UpdateRecord(id int64, patch models.RecordPatch) error {
	existing, err := s.GetRecord(id)
	if err != nil {
		return err
	}

	rec := patch.Apply(existing)
	rec.UpdatedAt = time.Now()

	_, err = s.db.Exec(`
		UPDATE food_records SET
			date = ?, time = ?, restaurant_name = ?, food_name = ?,
			address = ?, latitude = ?, longitude = ?, place_id = ?, place_name = ?,
			category = ?, rating = ?, review = ?, photo = ?, price = ?, updated_at = ?
		WHERE id = ?`,
		rec.Date, rec.Time, rec.RestaurantName, rec.FoodName,
		rec.Location.Address, rec.Location.Latitude, rec.Location.Longitude,
		nullString(rec.Location.PlaceID), nullString(rec.Location.PlaceName),
		rec.Category, rec.Rating, rec.Review, rec.Photo, nullInt(rec.Price),
		rec.UpdatedAt.Format(sortableTimeLayout), id)
	if err != nil {
		return fmt.Errorf("failed to update record %d: %w", id, err)
	}

	s.feed.notify()
	return nil
}

func (s *SQLiteStore) DeleteRecord(id int64) error {
	// Deletion is permanent and idempotent: a missing id is not an error.
	res, err := s.db.Exec("DELETE FROM food_records WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("failed to delete record %d: %w", id, err)
	}

	if n, err := res.RowsAffected(); err == nil && n > 0 {
		s.feed.notify()
	}
	return nil
}

func (s *SQLiteStore) TouchKeyword(keyword string) error {
	now := time.Now().Format(sortableTimeLayout)
	_, err := s.db.Exec(`
		INSERT INTO search_keywords (keyword, count, last_used)
		VALUES (?, 1, ?)
		ON CONFLICT(keyword) DO UPDATE SET
			count = count + 1,
			last_used = excluded.last_used`,
		keyword, now)
	return err
}

func (s *SQLiteStore) GetKeywords(limit int) ([]models.SearchKeyword, error) {
	rows, err := s.db.Query(`
		SELECT id, keyword, count, last_used FROM search_keywords
		ORDER BY count DESC, last_used DESC LIMIT ?`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var keywords []models.SearchKeyword
	for rows.Next() {
		var kw models.SearchKeyword
		var lastUsed string
		if err := rows.Scan(&kw.ID, &kw.Keyword, &kw.Count, &lastUsed); err != nil {
			return nil, err
		}
		kw.LastUsed, err = time.Parse(time.RFC3339Nano, lastUsed)
		if err != nil {
			return nil, fmt.Errorf("failed to parse last_used for keyword %q: %w", kw.Keyword, err)
		}
		keywords = append(keywords, kw)
	}

	return keywords, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRecord(row rowScanner) (models.FoodRecord, error) {
	var rec models.FoodRecord
	var placeID, placeName sql.NullString
	var price sql.NullInt64
	var createdAt, updatedAt string

	err := row.Scan(
		&rec.ID, &rec.Date, &rec.Time, &rec.RestaurantName, &rec.FoodName,
		&rec.Location.Address, &rec.Location.Latitude, &rec.Location.Longitude,
		&placeID, &placeName,
		&rec.Category, &rec.Rating, &rec.Review, &rec.Photo, &price,
		&createdAt, &updatedAt,
	)
	if err != nil {
		return models.FoodRecord{}, err
	}

	rec.Location.PlaceID = placeID.String
	rec.Location.PlaceName = placeName.String
	if price.Valid {
		rec.Price = &price.Int64
	}

	rec.CreatedAt, err = time.Parse(time.RFC3339Nano, createdAt)
	if err != nil {
		return models.FoodRecord{}, fmt.Errorf("failed to parse created_at: %w", err)
	}
	rec.UpdatedAt, err = time.Parse(time.RFC3339Nano, updatedAt)
	if err != nil {
		return models.FoodRecord{}, fmt.Errorf("failed to parse updated_at: %w", err)
	}

	return rec, nil
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

func nullInt(n *int64) sql.NullInt64 {
	if n == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: *n, Valid: true}
}
