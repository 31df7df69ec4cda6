package importer

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/draccessibility/clinic/pkg/clinicerr"
)

func writeWorkbook(t *testing.T, build func(f *excelize.File)) string {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()
	build(f)
	path := filepath.Join(t.TempDir(), "anamnese.xlsx")
	require.NoError(t, f.SaveAs(path))
	return path
}

func TestImportAnamnesis(t *testing.T) {
	path := writeWorkbook(t, func(f *excelize.File) {
		f.SetCellValue("Sheet1", "A1", "  Queixa principal  ")
		f.SetCellValue("Sheet1", "B1", "Duração")
		// Row 2 left empty on purpose.
		f.SetCellValue("Sheet1", "A3", "Histórico familiar")
	})

	tpl, err := NewExcel().ImportAnamnesis(path, "Primeira consulta")
	require.NoError(t, err)
	require.Equal(t, "Primeira consulta", tpl.Name)
	require.Equal(t, "Queixa principal | Duração\nHistórico familiar", tpl.Content)
}

func TestImportAnamnesis_AllSheets(t *testing.T) {
	path := writeWorkbook(t, func(f *excelize.File) {
		f.SetCellValue("Sheet1", "A1", "Geral")
		_, err := f.NewSheet("Exame físico")
		require.NoError(t, err)
		f.SetCellValue("Exame físico", "A1", "Pressão arterial")
	})

	tpl, err := NewExcel().ImportAnamnesis(path, "Completa")
	require.NoError(t, err)
	require.Equal(t, "Geral\nPressão arterial", tpl.Content)
}

func TestImportAnamnesis_EmptyWorkbook(t *testing.T) {
	path := writeWorkbook(t, func(f *excelize.File) {
		f.SetCellValue("Sheet1", "A1", "   ")
	})

	tpl, err := NewExcel().ImportAnamnesis(path, "Vazia")
	require.NoError(t, err)
	require.Empty(t, tpl.Content)
}

func TestImportAnamnesis_MissingFile(t *testing.T) {
	_, err := NewExcel().ImportAnamnesis(filepath.Join(t.TempDir(), "nada.xlsx"), "x")

	var nfErr *clinicerr.NotFoundError
	require.True(t, errors.As(err, &nfErr))
}

func TestImportAnamnesis_CorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "lixo.xlsx")
	require.NoError(t, os.WriteFile(path, []byte("isto não é uma planilha"), 0o644))

	_, err := NewExcel().ImportAnamnesis(path, "x")
	var iErr *clinicerr.ImportError
	require.True(t, errors.As(err, &iErr))
}
