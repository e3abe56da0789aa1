package extract

import (
	"testing"

	"github.com/VJd357/Happyplates/internal/domain"
)

func TestFlatten(t *testing.T) {
	sections := []domain.MenuSection{
		{
			ItemType: "OUR FAVORITE SANDWICHES",
			Items: []domain.MenuItem{
				{
					ItemName:        "TIJUANA CHICKEN SANDWICH",
					ItemDescription: domain.StringPtr("Broiled chicken with Jalapeno cheese."),
					ItemPrice:       domain.StringPtr("$5.75"),
				},
				{ItemName: "BASIC CHICKEN SANDWICH"},
			},
		},
		{
			ItemType: "BEVERAGES",
			Items: []domain.MenuItem{
				{
					ItemName:    "COFFEE",
					ItemPrice:   domain.StringPtr("$2.00"),
					ItemPortion: domain.StringPtr("12 oz"),
				},
			},
		},
	}

	rows := Flatten(sections)
	if len(rows) != 3 {
		t.Fatalf("expected 3 rows, got %d", len(rows))
	}

	// Section order then item order.
	if rows[0].ItemName != "TIJUANA CHICKEN SANDWICH" || rows[0].ItemType != "OUR FAVORITE SANDWICHES" {
		t.Errorf("unexpected first row: %+v", rows[0])
	}
	if rows[1].ItemName != "BASIC CHICKEN SANDWICH" {
		t.Errorf("unexpected second row: %+v", rows[1])
	}
	if rows[2].ItemType != "BEVERAGES" {
		t.Errorf("unexpected third row: %+v", rows[2])
	}

	// Missing optionals stay nil, never placeholder strings.
	if rows[1].ItemDescription != nil || rows[1].ItemPrice != nil || rows[1].ItemPortion != nil {
		t.Errorf("expected nil optionals on bare item, got %+v", rows[1])
	}
	if rows[2].ItemPortion == nil || *rows[2].ItemPortion != "12 oz" {
		t.Errorf("expected portion to survive flattening, got %+v", rows[2])
	}
}

func TestFlattenEmptyInputs(t *testing.T) {
	if rows := Flatten(nil); len(rows) != 0 {
		t.Errorf("expected no rows for nil sections, got %d", len(rows))
	}

	sections := []domain.MenuSection{{ItemType: "SIDES"}}
	if rows := Flatten(sections); len(rows) != 0 {
		t.Errorf("expected no rows for an empty section, got %d", len(rows))
	}
}
