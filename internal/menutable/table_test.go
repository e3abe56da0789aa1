package menutable

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/VJd357/Happyplates/internal/domain"
)

func sampleTable() *Table {
	return &Table{Rows: []domain.MenuRow{
		{
			ItemName:        "TIJUANA CHICKEN SANDWICH",
			ItemDescription: domain.StringPtr("Broiled chicken with Jalapeno cheese."),
			ItemPrice:       domain.StringPtr("$5.75"),
			ItemType:        "OUR FAVORITE SANDWICHES",
		},
		{
			ItemName: "BASIC CHICKEN SANDWICH",
			ItemType: "OUR FAVORITE SANDWICHES",
		},
		{
			ItemName:    "COFFEE",
			ItemPrice:   domain.StringPtr("$2.00"),
			ItemPortion: domain.StringPtr("12 oz"),
			ItemType:    "BEVERAGES",
		},
	}}
}

func TestWriteReadCSVRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "menu_section_page_1.csv")

	original := sampleTable()
	require.NoError(t, original.WriteCSV(path))

	loaded, err := ReadCSV(path)
	require.NoError(t, err)
	assert.Equal(t, original.Rows, loaded.Rows)

	// Nil optionals must come back nil, not as empty-string pointers.
	assert.Nil(t, loaded.Rows[1].ItemDescription)
	assert.Nil(t, loaded.Rows[1].ItemPrice)
}

func TestWriteCSVHeaderOnly(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.csv")
	require.NoError(t, New().WriteCSV(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "item_name,item_description,item_price,item_portion,item_type\n", string(data))

	loaded, err := ReadCSV(path)
	require.NoError(t, err)
	assert.Equal(t, 0, loaded.Len())
}

func TestWriteCSVEscapesFieldContent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tricky.csv")
	table := &Table{Rows: []domain.MenuRow{{
		ItemName:        "SOUP, OF THE DAY",
		ItemDescription: domain.StringPtr("Ask your server\nfor details"),
		ItemType:        "STARTERS",
	}}}
	require.NoError(t, table.WriteCSV(path))

	loaded, err := ReadCSV(path)
	require.NoError(t, err)
	require.Equal(t, 1, loaded.Len())
	assert.Equal(t, "SOUP, OF THE DAY", loaded.Rows[0].ItemName)
	assert.Equal(t, "Ask your server\nfor details", *loaded.Rows[0].ItemDescription)
}

func TestReadCSVRejectsWrongShape(t *testing.T) {
	dir := t.TempDir()

	empty := filepath.Join(dir, "empty.csv")
	require.NoError(t, os.WriteFile(empty, nil, 0o644))
	_, err := ReadCSV(empty)
	assert.Error(t, err)

	narrow := filepath.Join(dir, "narrow.csv")
	require.NoError(t, os.WriteFile(narrow, []byte("a,b\n1,2\n"), 0o644))
	_, err = ReadCSV(narrow)
	assert.Error(t, err)

	_, err = ReadCSV(filepath.Join(dir, "missing.csv"))
	assert.Error(t, err)
}

func TestAppend(t *testing.T) {
	combined := New()
	combined.Append(sampleTable())
	combined.Append(nil)
	combined.Append(New())
	combined.Append(&Table{Rows: []domain.MenuRow{{ItemName: "PIE", ItemType: "DESSERTS"}}})

	require.Equal(t, 4, combined.Len())
	assert.Equal(t, "TIJUANA CHICKEN SANDWICH", combined.Rows[0].ItemName)
	assert.Equal(t, "PIE", combined.Rows[3].ItemName)
}

func TestWriteXLSX(t *testing.T) {
	path := filepath.Join(t.TempDir(), "menu.xlsx")
	require.NoError(t, sampleTable().WriteXLSX(path))

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows("Menu")
	require.NoError(t, err)
	require.Len(t, rows, 4) // header + 3 rows

	assert.Equal(t, Columns, rows[0])
	assert.Equal(t, "TIJUANA CHICKEN SANDWICH", rows[1][0])
	assert.Equal(t, "BEVERAGES", rows[3][4])
}
