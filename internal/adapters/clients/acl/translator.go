package acl

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/jsamuelsen/devotional-service/internal/domain"
)

// itemWire is an item as the API serializes it. IDs arrive as JSON strings or
// numbers and are decoded with UseNumber so integers keep their exact value.
type itemWire struct {
	ID       any    `json:"id"`
	Title    string `json:"title"`
	Author   string `json:"author"`
	Content  string `json:"content"`
	Source   string `json:"source"`
	Category string `json:"category"`
	Audio    string `json:"audio"`
}

type collectionsWire struct {
	Aarti   []itemWire `json:"aarti"`
	Chalisa []itemWire `json:"chalisa"`
	Strotam []itemWire `json:"strotam"`
}

type deityWire struct {
	Deity     string `json:"deity"`
	Name      string `json:"name"`
	HindiName string `json:"hindiName"`
	Count     int    `json:"count"`
}

type statusWire struct {
	Status string `json:"status"`
}

// TranslateSlice applies translate to every element and stops at the first error.
// The result is never nil.
func TranslateSlice[W any, D any](items []W, translate func(*W) (D, error)) ([]D, error) {
	out := make([]D, 0, len(items))

	for i := range items {
		v, err := translate(&items[i])
		if err != nil {
			return nil, fmt.Errorf("translating item %d: %w", i, err)
		}

		out = append(out, v)
	}

	return out, nil
}

// DecodeResponse decodes a JSON body into T and closes it.
func DecodeResponse[T any](body io.ReadCloser) (T, error) {
	var v T

	if body == nil {
		return v, errors.New("response body is nil")
	}
	defer func() { _ = body.Close() }()

	dec := json.NewDecoder(body)
	dec.UseNumber()

	if err := dec.Decode(&v); err != nil {
		return v, fmt.Errorf("decoding response: %w", err)
	}

	return v, nil
}

func translateItem(w *itemWire) (domain.DevotionalItem, error) {
	id, err := domain.ParseItemID(w.ID)
	if err != nil {
		return domain.DevotionalItem{}, err
	}

	if w.Title == "" {
		return domain.DevotionalItem{}, domain.NewValidationError("title", "is required")
	}

	return domain.DevotionalItem{
		ID:       id,
		Title:    w.Title,
		Author:   w.Author,
		Content:  w.Content,
		Source:   w.Source,
		Category: w.Category,
		Audio:    w.Audio,
	}, nil
}

func translateItems(items []itemWire) ([]domain.DevotionalItem, error) {
	return TranslateSlice(items, translateItem)
}

func translateCollections(w *collectionsWire) (domain.Collections, error) {
	var (
		c   domain.Collections
		err error
	)

	if c.Aarti, err = translateItems(w.Aarti); err != nil {
		return domain.Collections{}, fmt.Errorf("aarti: %w", err)
	}

	if c.Chalisa, err = translateItems(w.Chalisa); err != nil {
		return domain.Collections{}, fmt.Errorf("chalisa: %w", err)
	}

	if c.Strotam, err = translateItems(w.Strotam); err != nil {
		return domain.Collections{}, fmt.Errorf("strotam: %w", err)
	}

	return c, nil
}

func translateDeity(w *deityWire) (domain.DeityCount, error) {
	if w.Deity == "" {
		return domain.DeityCount{}, domain.NewValidationError("deity", "is required")
	}

	return domain.DeityCount{Deity: domain.Deity(w.Deity), Count: w.Count}, nil
}
