package normalizer

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/jung-kurt/gofpdf"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/unidoc/unioffice/document"
	"github.com/unidoc/unioffice/spreadsheet"

	"github.com/roeev/docuchat/internal/entity"
)

func writeFixture(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestNormalize_PlainText(t *testing.T) {
	n := New()

	tests := []struct {
		name    string
		ext     string
		content string
	}{
		{"text file", ".txt", "שורה ראשונה\nשורה שנייה"},
		{"javascript source", ".js", "const x = 1;\n"},
		{"python source", ".py", "def main():\n    pass\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeFixture(t, "fixture"+tt.ext, tt.content)

			got, err := n.Normalize(path, tt.ext)

			require.NoError(t, err)
			assert.Equal(t, tt.content, got)
		})
	}
}

func TestNormalize_ExtensionCaseInsensitive(t *testing.T) {
	n := New()
	path := writeFixture(t, "fixture.txt", "hello")

	got, err := n.Normalize(path, ".TXT")

	require.NoError(t, err)
	assert.Equal(t, "hello", got)
}

func TestNormalize_CSV(t *testing.T) {
	n := New()
	path := writeFixture(t, "data.csv", "name,city\nAvi,Haifa\nDana,Eilat\n")

	got, err := n.Normalize(path, ".csv")
	require.NoError(t, err)

	var rows []map[string]string
	require.NoError(t, json.Unmarshal([]byte(got), &rows))
	require.Len(t, rows, 2)
	assert.Equal(t, "Avi", rows[0]["name"])
	assert.Equal(t, "Eilat", rows[1]["city"])
}

func TestNormalize_CSVRaggedRows(t *testing.T) {
	n := New()
	path := writeFixture(t, "data.csv", "a,b,c\n1,2\n")

	got, err := n.Normalize(path, ".csv")
	require.NoError(t, err)

	var rows []map[string]string
	require.NoError(t, json.Unmarshal([]byte(got), &rows))
	require.Len(t, rows, 1)
	assert.Equal(t, "", rows[0]["c"])
}

func TestNormalize_EmptyCSV(t *testing.T) {
	n := New()
	path := writeFixture(t, "empty.csv", "")

	got, err := n.Normalize(path, ".csv")

	require.NoError(t, err)
	assert.Equal(t, "[]", got)
}

func TestNormalize_DOCX(t *testing.T) {
	n := New()
	path := filepath.Join(t.TempDir(), "doc.docx")

	doc := document.New()
	para := doc.AddParagraph()
	para.AddRun().AddText("פסקה ראשונה")
	para2 := doc.AddParagraph()
	para2.AddRun().AddText("פסקה שנייה")
	require.NoError(t, doc.SaveToFile(path))
	doc.Close()

	got, err := n.Normalize(path, ".docx")

	require.NoError(t, err)
	assert.Equal(t, "פסקה ראשונה\nפסקה שנייה", got)
}

func TestNormalize_XLSXFirstSheetOnly(t *testing.T) {
	n := New()
	path := filepath.Join(t.TempDir(), "book.xlsx")

	wb := spreadsheet.New()
	sheet := wb.AddSheet()
	row := sheet.AddRow()
	row.AddCell().SetString("name")
	row.AddCell().SetString("score")
	row2 := sheet.AddRow()
	row2.AddCell().SetString("Avi")
	row2.AddCell().SetString("90")

	second := wb.AddSheet()
	second.AddRow().AddCell().SetString("should not appear")

	require.NoError(t, wb.SaveToFile(path))
	wb.Close()

	got, err := n.Normalize(path, ".xlsx")

	require.NoError(t, err)
	assert.Equal(t, "name,score\nAvi,90", got)
	assert.NotContains(t, got, "should not appear")
}

func TestNormalize_PDF(t *testing.T) {
	n := New()
	path := filepath.Join(t.TempDir(), "doc.pdf")

	gen := gofpdf.New("P", "mm", "A4", "")
	gen.AddPage()
	gen.SetFont("Helvetica", "", 12)
	gen.Cell(40, 10, "hello pdf")
	require.NoError(t, gen.OutputFileAndClose(path))

	got, err := n.Normalize(path, ".pdf")

	require.NoError(t, err)
	assert.NotEmpty(t, got)
}

func TestNormalize_UnsupportedExtension(t *testing.T) {
	n := New()
	path := writeFixture(t, "tool.exe", "MZ")

	_, err := n.Normalize(path, ".exe")

	assert.ErrorIs(t, err, entity.ErrUnsupportedFileType)
}

func TestNormalize_MissingFile(t *testing.T) {
	n := New()

	_, err := n.Normalize(filepath.Join(t.TempDir(), "absent.txt"), ".txt")

	assert.ErrorIs(t, err, entity.ErrFileProcessing)
}

func TestIsSupported(t *testing.T) {
	n := New()

	assert.True(t, n.IsSupported(".pdf"))
	assert.True(t, n.IsSupported(".DOCX"))
	assert.False(t, n.IsSupported(".exe"))
	assert.False(t, n.IsSupported(""))
}

func TestSupportedExtensions_SortedAndComplete(t *testing.T) {
	n := New()

	got := n.SupportedExtensions()

	assert.Equal(t, []string{".csv", ".docx", ".js", ".pdf", ".py", ".ts", ".txt", ".xlsx"}, got)
}
