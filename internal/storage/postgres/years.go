package postgres

import (
	"fmt"
	"time"

	"github.com/julianstephens/routinely/internal/models"
)

func (s *Store) AddYear(y models.Year) error {
	_, err := s.db.Exec(`
		INSERT INTO years (id, year, created_at)
		VALUES ($1, $2, $3)
		ON CONFLICT (year) DO NOTHING`,
		y.ID, y.Year, y.CreatedAt.Format(time.RFC3339))
	return err
}

func (s *Store) GetYear(year int) (models.Year, error) {
	row := s.db.QueryRow(`SELECT id, year, created_at FROM years WHERE year = $1`, year)
	return scanYear(row)
}

func (s *Store) GetAllYears() ([]models.Year, error) {
	rows, err := s.db.Query(`SELECT id, year, created_at FROM years ORDER BY year`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var years []models.Year
	for rows.Next() {
		y, err := scanYear(rows)
		if err != nil {
			return nil, err
		}
		years = append(years, y)
	}
	return years, rows.Err()
}

func (s *Store) DeleteYear(id string) error {
	result, err := s.db.Exec(`DELETE FROM years WHERE id = $1`, id)
	if err != nil {
		return err
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return fmt.Errorf("year not found")
	}
	return nil
}

func (s *Store) AddCategory(c models.Category) error {
	_, err := s.db.Exec(`
		INSERT INTO categories (id, year_id, name, position, created_at)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (id) DO UPDATE SET
			name = excluded.name,
			position = excluded.position`,
		c.ID, c.YearID, c.Name, c.Position, c.CreatedAt.Format(time.RFC3339))
	return err
}

func (s *Store) GetCategory(id string) (models.Category, error) {
	row := s.db.QueryRow(`
		SELECT id, year_id, name, position, created_at
		FROM categories WHERE id = $1`, id)
	return scanCategory(row)
}

func (s *Store) GetCategoryByName(yearID, name string) (models.Category, error) {
	row := s.db.QueryRow(`
		SELECT id, year_id, name, position, created_at
		FROM categories WHERE year_id = $1 AND name = $2`, yearID, name)
	return scanCategory(row)
}

func (s *Store) GetCategories(yearID string) ([]models.Category, error) {
	rows, err := s.db.Query(`
		SELECT id, year_id, name, position, created_at
		FROM categories WHERE year_id = $1
		ORDER BY position, created_at`, yearID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var categories []models.Category
	for rows.Next() {
		c, err := scanCategory(rows)
		if err != nil {
			return nil, err
		}
		categories = append(categories, c)
	}
	return categories, rows.Err()
}

func (s *Store) DeleteCategory(id string) error {
	result, err := s.db.Exec(`DELETE FROM categories WHERE id = $1`, id)
	if err != nil {
		return err
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return fmt.Errorf("category not found")
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanYear(row rowScanner) (models.Year, error) {
	var y models.Year
	var createdAt string
	if err := row.Scan(&y.ID, &y.Year, &createdAt); err != nil {
		return models.Year{}, err
	}
	t, err := time.Parse(time.RFC3339, createdAt)
	if err != nil {
		return models.Year{}, fmt.Errorf("failed to parse created_at: %w", err)
	}
	y.CreatedAt = t
	return y, nil
}

func scanCategory(row rowScanner) (models.Category, error) {
	var c models.Category
	var createdAt string
	if err := row.Scan(&c.ID, &c.YearID, &c.Name, &c.Position, &createdAt); err != nil {
		return models.Category{}, err
	}
	t, err := time.Parse(time.RFC3339, createdAt)
	if err != nil {
		return models.Category{}, fmt.Errorf("failed to parse created_at: %w", err)
	}
	c.CreatedAt = t
	return c, nil
}
