// Package importer reads spreadsheet files into anamnesis template content.
package importer

import (
	"os"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/draccessibility/clinic/internal/domain/anamnesis"
	"github.com/draccessibility/clinic/pkg/clinicerr"
)

// Excel converts .xlsx workbooks into plain-text anamnesis templates.
type Excel struct{}

func NewExcel() *Excel {
	return &Excel{}
}

// ImportAnamnesis flattens every sheet of the workbook at path into one text
// block. Cells within a row are joined with " | ", rows with newlines; empty
// cells and empty rows are dropped.
func (e *Excel) ImportAnamnesis(path, name string) (*anamnesis.Template, error) {
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return nil, &clinicerr.NotFoundError{Entity: "import file " + path}
		}
		return nil, &clinicerr.ImportError{Path: path, Err: err}
	}

	workbook, err := excelize.OpenFile(path)
	if err != nil {
		return nil, &clinicerr.ImportError{Path: path, Err: err}
	}
	defer workbook.Close()

	var lines []string
	for _, sheet := range workbook.GetSheetList() {
		rows, err := workbook.GetRows(sheet)
		if err != nil {
			return nil, &clinicerr.ImportError{Path: path, Err: err}
		}
		for _, row := range rows {
			var cells []string
			for _, cell := range row {
				trimmed := strings.TrimSpace(cell)
				if trimmed != "" {
					cells = append(cells, trimmed)
				}
			}
			if len(cells) > 0 {
				lines = append(lines, strings.Join(cells, " | "))
			}
		}
	}

	return &anamnesis.Template{
		Name:    name,
		Content: strings.TrimSpace(strings.Join(lines, "\n")),
	}, nil
}
