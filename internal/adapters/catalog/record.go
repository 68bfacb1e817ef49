package catalog

import (
	"bytes"
	"encoding/json"
	"fmt"
	"path"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/jsamuelsen/devotional-service/internal/domain"
)

// itemRecord is the on-disk shape of a devotional item. Text fields are taken
// as-is; only the id is checked.
type itemRecord struct {
	ID       any    `json:"id"       yaml:"id"`
	Title    string `json:"title"    yaml:"title"`
	Author   string `json:"author"   yaml:"author"`
	Content  string `json:"content"  yaml:"content"`
	Source   string `json:"source"   yaml:"source"`
	Category string `json:"category" yaml:"category"`
	Audio    string `json:"audio"    yaml:"audio"`
}

func decodeRecords(name string, data []byte) ([]itemRecord, error) {
	var records []itemRecord

	switch strings.ToLower(path.Ext(name)) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &records); err != nil {
			return nil, domain.NewValidationError("", err.Error())
		}
	default:
		dec := json.NewDecoder(bytes.NewReader(data))
		dec.UseNumber()

		if err := dec.Decode(&records); err != nil {
			return nil, domain.NewValidationError("", err.Error())
		}
	}

	return records, nil
}

// toItems checks record ids and converts records to domain items, preserving order.
// Identifiers must be unique within the collection.
func toItems(records []itemRecord) ([]domain.DevotionalItem, error) {
	items := make([]domain.DevotionalItem, 0, len(records))
	seen := make(map[domain.ItemID]int, len(records))

	for i, rec := range records {
		id, err := domain.ParseItemID(rec.ID)
		if err != nil {
			return nil, fmt.Errorf("record %d: %w", i, err)
		}

		if id.IsZero() {
			return nil, fmt.Errorf("record %d: %w", i, domain.NewValidationError("id", "id is required"))
		}

		if first, dup := seen[id]; dup {
			return nil, fmt.Errorf("record %d: %w", i, domain.NewValidationErrorWithValue(
				"id", fmt.Sprintf("duplicate of record %d", first), id.Value()))
		}

		seen[id] = i

		items = append(items, domain.DevotionalItem{
			ID:       id,
			Title:    rec.Title,
			Author:   rec.Author,
			Content:  rec.Content,
			Source:   rec.Source,
			Category: rec.Category,
			Audio:    rec.Audio,
		})
	}

	return items, nil
}
