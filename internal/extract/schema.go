package extract

import (
	"encoding/json"

	"github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/VJd357/Happyplates/internal/domain"
)

// menuSchema is the strict shape of a parsed reply: a sequence of sections,
// each with a category label and an ordered list of items. Optional item
// fields may be null or absent but never a non-string.
const menuSchema = `{
  "$schema": "https://json-schema.org/draft/2020-12/schema",
  "type": "array",
  "items": {
    "type": "object",
    "required": ["item_type", "items"],
    "properties": {
      "item_type": {"type": "string"},
      "items": {
        "type": "array",
        "items": {
          "type": "object",
          "required": ["item_name"],
          "properties": {
            "item_name": {"type": "string"},
            "item_description": {"type": ["string", "null"]},
            "item_price": {"type": ["string", "null"]},
            "item_portion": {"type": ["string", "null"]}
          }
        }
      }
    }
  }
}`

var compiledMenuSchema = jsonschema.MustCompileString("menu.schema.json", menuSchema)

// ValidateSections checks raw reply JSON against the menu schema.
func ValidateSections(raw []byte) error {
	var v interface{}
	if err := json.Unmarshal(raw, &v); err != nil {
		return domain.ParseError("schema validation: invalid JSON", err)
	}
	if err := compiledMenuSchema.Validate(v); err != nil {
		return domain.ParseError("reply does not match menu schema", err)
	}
	return nil
}
