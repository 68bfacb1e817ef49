package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"gopkg.in/yaml.v3"

	"github.com/jsamuelsen/devotional-service/internal/domain"
)

// Output formats.
const (
	formatTable = "table"
	formatJSON  = "json"
	formatYAML  = "yaml"
)

func validateOutput(format string) error {
	switch format {
	case formatTable, formatJSON, formatYAML:
		return nil
	default:
		return fmt.Errorf("unknown output format %q (want table, json or yaml)", format)
	}
}

type itemView struct {
	ID       any    `json:"id"                 yaml:"id"`
	Title    string `json:"title"              yaml:"title"`
	Author   string `json:"author,omitempty"   yaml:"author,omitempty"`
	Deity    string `json:"deity"              yaml:"deity"`
	Category string `json:"category,omitempty" yaml:"category,omitempty"`
}

type deityView struct {
	Deity     string `json:"deity"     yaml:"deity"`
	Name      string `json:"name"      yaml:"name"`
	HindiName string `json:"hindiName" yaml:"hindiName"`
	Count     int    `json:"count"     yaml:"count"`
}

func newItemViews(items []domain.DevotionalItem) []itemView {
	views := make([]itemView, 0, len(items))
	for _, item := range items {
		views = append(views, itemView{
			ID:       item.ID.Value(),
			Title:    item.Title,
			Author:   item.Author,
			Deity:    string(domain.ClassifyItem(item)),
			Category: item.Category,
		})
	}

	return views
}

func newDeityViews(counts []domain.DeityCount) []deityView {
	views := make([]deityView, 0, len(counts))
	for _, c := range counts {
		views = append(views, deityView{
			Deity:     string(c.Deity),
			Name:      c.Deity.DisplayName(),
			HindiName: c.Deity.HindiName(),
			Count:     c.Count,
		})
	}

	return views
}

// encode writes v as JSON or YAML. It reports false for the table format.
func encode(w io.Writer, format string, v any) (bool, error) {
	switch format {
	case formatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		enc.SetEscapeHTML(false)

		return true, enc.Encode(v)
	case formatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)

		if err := enc.Encode(v); err != nil {
			return true, err
		}

		return true, enc.Close()
	default:
		return false, nil
	}
}

func newTable(headers ...string) *table.Table {
	return table.New().
		Border(lipgloss.NormalBorder()).
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return lipgloss.NewStyle().Bold(true).Padding(0, 1)
			}

			return lipgloss.NewStyle().Padding(0, 1)
		}).
		Headers(headers...)
}

func writeItems(w io.Writer, format string, items []domain.DevotionalItem) error {
	views := newItemViews(items)

	if ok, err := encode(w, format, views); ok {
		return err
	}

	if len(views) == 0 {
		_, err := fmt.Fprintln(w, "(no items)")
		return err
	}

	t := newTable("ID", "TITLE", "AUTHOR", "DEITY", "CATEGORY")
	for _, v := range views {
		t.Row(fmt.Sprint(v.ID), v.Title, v.Author, v.Deity, v.Category)
	}

	_, err := fmt.Fprintln(w, t.Render())

	return err
}

func writeCollections(w io.Writer, format string, c domain.Collections) error {
	if ok, err := encode(w, format, map[string][]itemView{
		string(domain.CollectionAarti):   newItemViews(c.Aarti),
		string(domain.CollectionChalisa): newItemViews(c.Chalisa),
		string(domain.CollectionStrotam): newItemViews(c.Strotam),
	}); ok {
		return err
	}

	for i, name := range domain.CollectionNames() {
		if i > 0 {
			if _, err := fmt.Fprintln(w); err != nil {
				return err
			}
		}

		items := c.Get(name)
		if _, err := fmt.Fprintf(w, "%s (%s): %d items\n", name.Title(), name.HindiName(), len(items)); err != nil {
			return err
		}

		if len(items) == 0 {
			continue
		}

		if err := writeItems(w, formatTable, items); err != nil {
			return err
		}
	}

	return nil
}

func writeDeities(w io.Writer, format string, counts []domain.DeityCount) error {
	views := newDeityViews(counts)

	if ok, err := encode(w, format, views); ok {
		return err
	}

	t := newTable("DEITY", "NAME", "HINDI", "COUNT")
	for _, v := range views {
		t.Row(v.Deity, v.Name, v.HindiName, strconv.Itoa(v.Count))
	}

	_, err := fmt.Fprintln(w, t.Render())

	return err
}
