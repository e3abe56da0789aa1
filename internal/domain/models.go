package domain

// MenuItem is a single dish or drink entry as extracted from one menu page.
// Description, price and portion are optional free text: source menus are
// wildly inconsistent, so no currency or unit normalization is attempted.
// A nil pointer means the model reported null or omitted the key entirely.
type MenuItem struct {
	ItemName        string  `json:"item_name"`
	ItemDescription *string `json:"item_description"`
	ItemPrice       *string `json:"item_price"`
	ItemPortion     *string `json:"item_portion"`
}

// MenuSection is one semantic category on a page (e.g. "BEVERAGES") with its
// items in the order the model returned them.
type MenuSection struct {
	ItemType string     `json:"item_type"`
	Items    []MenuItem `json:"items"`
}

// MenuRow is a MenuItem flattened with its parent section's category label.
// It is the unit of tabular output for per-image and combined tables.
type MenuRow struct {
	ItemName        string
	ItemDescription *string
	ItemPrice       *string
	ItemPortion     *string
	ItemType        string
}

// PageImage represents a single rasterized PDF page left on disk.
type PageImage struct {
	PageNumber int // 1-based
	ImagePath  string
	Width      int
	Height     int
}

// Row converts an item plus its section label into a MenuRow.
func (i MenuItem) Row(itemType string) MenuRow {
	return MenuRow{
		ItemName:        i.ItemName,
		ItemDescription: i.ItemDescription,
		ItemPrice:       i.ItemPrice,
		ItemPortion:     i.ItemPortion,
		ItemType:        itemType,
	}
}

// StringPtr returns a pointer to s. Convenience for building literal rows.
func StringPtr(s string) *string {
	return &s
}
