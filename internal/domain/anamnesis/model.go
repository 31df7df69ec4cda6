package anamnesis

import "time"

// Template maps to the anamnesis_templates table. Content is the flattened
// text produced by the spreadsheet import boundary.
type Template struct {
	ID         int64     `db:"id" json:"id"`
	Name       string    `db:"name" json:"name"`
	Content    string    `db:"content" json:"content"`
	ImportedAt time.Time `db:"imported_at" json:"imported_at"`
}
