package pagesapi

import "encoding/json"

type ComponentDTO struct {
	ID        string          `json:"id,omitempty"`
	Type      string          `json:"type"`
	SortIndex int             `json:"sortIndex"`
	Data      json.RawMessage `json:"data"`
}

type PageSummaryDTO struct {
	ID            string  `json:"id"`
	Title         string  `json:"title"`
	CustomSlug    *string `json:"custom_slug,omitempty"`
	Published     bool    `json:"published"`
	PaymentStatus string  `json:"payment_status"`
	State         string  `json:"state"`
	URL           string  `json:"url"`
	CreatedAt     string  `json:"created_at"`
}

type PageDetailDTO struct {
	PageSummaryDTO
	Components []ComponentDTO `json:"components"`
}

type CreatePageRequest struct {
	Title      string         `json:"title" binding:"required"`
	Components []ComponentDTO `json:"components"`
}

type UpdatePageRequest struct {
	Title      *string         `json:"title"`
	Components *[]ComponentDTO `json:"components"`
}

type ClaimSlugRequest struct {
	Slug string `json:"slug" binding:"required"`
}

type BulkDeleteRequest struct {
	PageIDs []string `json:"page_ids" binding:"required"`
}
