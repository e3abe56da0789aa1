package extract

import "github.com/VJd357/Happyplates/internal/domain"

// Flatten expands sections into one row per item, copying the enclosing
// section's item_type onto every row. Item order within a section and
// section order across the page are preserved. A section with no items
// contributes no rows; missing item fields stay nil rather than being
// defaulted to a placeholder string.
func Flatten(sections []domain.MenuSection) []domain.MenuRow {
	var rows []domain.MenuRow
	for _, section := range sections {
		for _, item := range section.Items {
			rows = append(rows, item.Row(section.ItemType))
		}
	}
	return rows
}
