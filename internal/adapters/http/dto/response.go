package dto

import "github.com/jsamuelsen/devotional-service/internal/domain"

// ItemResponse is the JSON form of a devotional item. The id keeps the kind it
// had in the dataset: a number stays a number and a string stays a string.
type ItemResponse struct {
	ID       any    `json:"id"`
	Title    string `json:"title"`
	Author   string `json:"author,omitempty"`
	Content  string `json:"content"`
	Source   string `json:"source,omitempty"`
	Category string `json:"category,omitempty"`
	Audio    string `json:"audio,omitempty"`
}

// CollectionsResponse is the body of GET /api/collections.
type CollectionsResponse struct {
	Aarti   []ItemResponse `json:"aarti"`
	Chalisa []ItemResponse `json:"chalisa"`
	Strotam []ItemResponse `json:"strotam"`
}

// DeityResponse is one entry of GET /api/deities.
type DeityResponse struct {
	Deity     string `json:"deity"`
	Name      string `json:"name"`
	HindiName string `json:"hindiName"`
	Count     int    `json:"count"`
}

// ClassifyResponse is the body of GET /api/classify.
type ClassifyResponse struct {
	Deity     string `json:"deity"`
	Name      string `json:"name"`
	HindiName string `json:"hindiName"`
}

// StatusResponse is the body of GET /api/health.
type StatusResponse struct {
	Status string `json:"status"`
}

// NewItemResponse converts a domain item.
func NewItemResponse(item domain.DevotionalItem) ItemResponse {
	return ItemResponse{
		ID:       item.ID.Value(),
		Title:    item.Title,
		Author:   item.Author,
		Content:  item.Content,
		Source:   item.Source,
		Category: item.Category,
		Audio:    item.Audio,
	}
}

// NewItemsResponse converts items, returning an empty list rather than nil so
// the body is always a JSON array.
func NewItemsResponse(items []domain.DevotionalItem) []ItemResponse {
	out := make([]ItemResponse, 0, len(items))
	for _, item := range items {
		out = append(out, NewItemResponse(item))
	}

	return out
}

// NewCollectionsResponse converts the three filtered collections.
func NewCollectionsResponse(c domain.Collections) CollectionsResponse {
	return CollectionsResponse{
		Aarti:   NewItemsResponse(c.Aarti),
		Chalisa: NewItemsResponse(c.Chalisa),
		Strotam: NewItemsResponse(c.Strotam),
	}
}

// NewDeitiesResponse converts per-deity counts, keeping their order.
func NewDeitiesResponse(counts []domain.DeityCount) []DeityResponse {
	out := make([]DeityResponse, 0, len(counts))
	for _, dc := range counts {
		out = append(out, DeityResponse{
			Deity:     string(dc.Deity),
			Name:      dc.Deity.DisplayName(),
			HindiName: dc.Deity.HindiName(),
			Count:     dc.Count,
		})
	}

	return out
}

// NewClassifyResponse describes a classifier result.
func NewClassifyResponse(d domain.Deity) ClassifyResponse {
	return ClassifyResponse{
		Deity:     string(d),
		Name:      d.DisplayName(),
		HindiName: d.HindiName(),
	}
}
