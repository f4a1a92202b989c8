package http

type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type BlacklistItemDTO struct {
	Name      string `json:"name"`
	CreatedAt string `json:"created_at"`
}

type ListBlacklistResponse struct {
	Items []BlacklistItemDTO `json:"items"`
}

// GetBlacklistItemResponse carries a null item when the name is not blacklisted.
type GetBlacklistItemResponse struct {
	Item *BlacklistItemDTO `json:"item"`
}

type CreateBlacklistItemRequest struct {
	Name string `json:"name"`
}

type CreateBlacklistItemResponse struct {
	Item BlacklistItemDTO `json:"item"`
}
