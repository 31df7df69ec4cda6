package anamnesis

import (
	"context"
	"database/sql"
	"errors"

	"github.com/draccessibility/clinic/internal/platform/db"
	"github.com/draccessibility/clinic/pkg/clinicerr"
)

type templateRepoSQLite struct {
	handle *sql.DB
}

func NewTemplateRepo(handle *sql.DB) TemplateRepository {
	return &templateRepoSQLite{handle: handle}
}

const templateCols = `id, name, content, imported_at`

func (r *templateRepoSQLite) Add(ctx context.Context, t *Template) (int64, error) {
	res, err := r.handle.ExecContext(ctx, `
		INSERT INTO anamnesis_templates (name, content, imported_at)
		VALUES (?, ?, ?)`,
		t.Name, t.Content, db.EncodeTime(t.ImportedAt),
	)
	if err != nil {
		return 0, clinicerr.NewStorage("add anamnesis template", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, clinicerr.NewStorage("add anamnesis template", err)
	}
	t.ID = id
	return id, nil
}

func (r *templateRepoSQLite) GetByID(ctx context.Context, id int64) (*Template, error) {
	t, err := scanTemplate(r.handle.QueryRowContext(ctx,
		`SELECT `+templateCols+` FROM anamnesis_templates WHERE id = ?`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, clinicerr.NewNotFound("anamnesis template", id)
	}
	if err != nil {
		return nil, clinicerr.NewStorage("get anamnesis template by id", err)
	}
	return t, nil
}

func (r *templateRepoSQLite) GetAll(ctx context.Context) ([]*Template, error) {
	rows, err := r.handle.QueryContext(ctx,
		`SELECT `+templateCols+` FROM anamnesis_templates ORDER BY imported_at DESC`)
	if err != nil {
		return nil, clinicerr.NewStorage("list anamnesis templates", err)
	}
	defer rows.Close()

	var templates []*Template
	for rows.Next() {
		t, err := scanTemplate(rows)
		if err != nil {
			return nil, clinicerr.NewStorage("list anamnesis templates", err)
		}
		templates = append(templates, t)
	}
	if err := rows.Err(); err != nil {
		return nil, clinicerr.NewStorage("list anamnesis templates", err)
	}
	return templates, nil
}

func scanTemplate(row interface{ Scan(...interface{}) error }) (*Template, error) {
	var (
		t          Template
		importedAt string
	)
	if err := row.Scan(&t.ID, &t.Name, &t.Content, &importedAt); err != nil {
		return nil, err
	}
	ts, err := db.DecodeTime(importedAt)
	if err != nil {
		return nil, err
	}
	t.ImportedAt = ts
	return &t, nil
}
