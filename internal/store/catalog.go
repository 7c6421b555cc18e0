package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/roach88/thermex/internal/material"
)

// CatalogInfo describes a saved catalog without loading its entries.
type CatalogInfo struct {
	Name        string `json:"name"`
	Fingerprint string `json:"fingerprint"`
	Entries     int    `json:"entries"`
	Revision    int64  `json:"revision"`
}

// NotFoundError is returned when no catalog is saved under Name.
type NotFoundError struct {
	Name string
}

// Error implements the error interface.
func (e *NotFoundError) Error() string {
	return fmt.Sprintf("catalog %q not found", e.Name)
}

// IsNotFound returns true if err is, or wraps, a NotFoundError.
func IsNotFound(err error) bool {
	var nf *NotFoundError
	return errors.As(err, &nf)
}

// FingerprintMismatchError reports a stored catalog whose entries no longer
// hash to the fingerprint recorded when it was saved.
type FingerprintMismatchError struct {
	Name     string
	Stored   string
	Computed string
}

// Error implements the error interface.
func (e *FingerprintMismatchError) Error() string {
	return fmt.Sprintf("catalog %q: fingerprint mismatch (stored %s, computed %s)",
		e.Name, e.Stored, e.Computed)
}

// SaveCatalog stores cat under name, replacing any catalog of the same
// name in a single transaction. Replacing bumps the revision.
func (s *Store) SaveCatalog(ctx context.Context, name string, cat *material.Catalog) (CatalogInfo, error) {
	if name == "" {
		return CatalogInfo{}, fmt.Errorf("save catalog: name is required")
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return CatalogInfo{}, fmt.Errorf("save catalog: begin: %w", err)
	}
	defer tx.Rollback()

	info := CatalogInfo{
		Name:        name,
		Fingerprint: cat.Fingerprint(),
		Entries:     cat.Len(),
	}

	err = tx.QueryRowContext(ctx, `
		INSERT INTO catalogs (name, fingerprint, entry_count, revision)
		VALUES (?, ?, ?, 1)
		ON CONFLICT(name) DO UPDATE SET
			fingerprint = excluded.fingerprint,
			entry_count = excluded.entry_count,
			revision = catalogs.revision + 1
		RETURNING revision
	`, info.Name, info.Fingerprint, info.Entries).Scan(&info.Revision)
	if err != nil {
		return CatalogInfo{}, fmt.Errorf("save catalog %s: %w", name, err)
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM materials WHERE catalog = ?`, name); err != nil {
		return CatalogInfo{}, fmt.Errorf("save catalog %s: clear entries: %w", name, err)
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO materials
		(catalog, id, name, category, alpha1, alpha1_uncertainty, alpha2, alpha3,
		 thermal_conductivity, specific_heat, density, elastic_modulus,
		 t_min, t_max, quality_factor)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return CatalogInfo{}, fmt.Errorf("save catalog %s: prepare: %w", name, err)
	}
	defer stmt.Close()

	for _, m := range cat.Entries() {
		_, err := stmt.ExecContext(ctx,
			name,
			m.ID,
			m.Name,
			m.Category.String(),
			m.Alpha1,
			m.Alpha1Uncertainty,
			m.Alpha2,
			m.Alpha3,
			m.ThermalConductivity,
			m.SpecificHeat,
			m.Density,
			m.ElasticModulus,
			m.Range.Min,
			m.Range.Max,
			m.QualityFactor,
		)
		if err != nil {
			return CatalogInfo{}, fmt.Errorf("save catalog %s: material %s: %w", name, m.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return CatalogInfo{}, fmt.Errorf("save catalog %s: commit: %w", name, err)
	}
	return info, nil
}

// LoadCatalog rebuilds the catalog saved under name.
//
// Errors:
//   - *NotFoundError if no catalog has that name
//   - *material.CatalogError if a stored row fails validation
//   - *FingerprintMismatchError if the rows were altered after saving
func (s *Store) LoadCatalog(ctx context.Context, name string) (*material.Catalog, error) {
	var stored string
	err := s.db.QueryRowContext(ctx,
		`SELECT fingerprint FROM catalogs WHERE name = ?`, name,
	).Scan(&stored)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, &NotFoundError{Name: name}
	}
	if err != nil {
		return nil, fmt.Errorf("load catalog %s: %w", name, err)
	}

	// Deterministic ordering; NewCatalog re-sorts but errors are reported
	// in row order.
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, name, category, alpha1, alpha1_uncertainty, alpha2, alpha3,
		       thermal_conductivity, specific_heat, density, elastic_modulus,
		       t_min, t_max, quality_factor
		FROM materials
		WHERE catalog = ?
		ORDER BY id COLLATE BINARY ASC
	`, name)
	if err != nil {
		return nil, fmt.Errorf("load catalog %s: query materials: %w", name, err)
	}
	defer rows.Close()

	var entries []material.Coefficients
	for rows.Next() {
		m, err := scanMaterial(rows)
		if err != nil {
			return nil, fmt.Errorf("load catalog %s: %w", name, err)
		}
		entries = append(entries, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("load catalog %s: iterate materials: %w", name, err)
	}

	cat, err := material.NewCatalog(entries...)
	if err != nil {
		return nil, fmt.Errorf("load catalog %s: %w", name, err)
	}

	if computed := cat.Fingerprint(); computed != stored {
		return nil, &FingerprintMismatchError{Name: name, Stored: stored, Computed: computed}
	}
	return cat, nil
}

// ListCatalogs returns every saved catalog, ordered by name.
// Returns an empty slice (not nil) for an empty library.
func (s *Store) ListCatalogs(ctx context.Context) ([]CatalogInfo, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT name, fingerprint, entry_count, revision
		FROM catalogs
		ORDER BY name COLLATE BINARY ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("list catalogs: %w", err)
	}
	defer rows.Close()

	infos := []CatalogInfo{}
	for rows.Next() {
		var info CatalogInfo
		if err := rows.Scan(&info.Name, &info.Fingerprint, &info.Entries, &info.Revision); err != nil {
			return nil, fmt.Errorf("scan catalog: %w", err)
		}
		infos = append(infos, info)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list catalogs: %w", err)
	}
	return infos, nil
}

// DeleteCatalog removes the catalog saved under name and its entries.
func (s *Store) DeleteCatalog(ctx context.Context, name string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM catalogs WHERE name = ?`, name)
	if err != nil {
		return fmt.Errorf("delete catalog %s: %w", name, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete catalog %s: %w", name, err)
	}
	if n == 0 {
		return &NotFoundError{Name: name}
	}
	return nil
}

// scanMaterial scans one materials row.
func scanMaterial(rows *sql.Rows) (material.Coefficients, error) {
	var m material.Coefficients
	var category string
	err := rows.Scan(
		&m.ID,
		&m.Name,
		&category,
		&m.Alpha1,
		&m.Alpha1Uncertainty,
		&m.Alpha2,
		&m.Alpha3,
		&m.ThermalConductivity,
		&m.SpecificHeat,
		&m.Density,
		&m.ElasticModulus,
		&m.Range.Min,
		&m.Range.Max,
		&m.QualityFactor,
	)
	if err != nil {
		return m, fmt.Errorf("scan material: %w", err)
	}

	if m.Category, err = material.ParseCategory(category); err != nil {
		return m, fmt.Errorf("material %s: %w", m.ID, err)
	}
	return m, nil
}
