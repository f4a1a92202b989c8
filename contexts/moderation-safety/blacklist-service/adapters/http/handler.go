package httpadapter

import (
	"context"
	"log/slog"
	"time"

	"simpleq/contexts/moderation-safety/blacklist-service/application"
	"simpleq/contexts/moderation-safety/blacklist-service/domain/entities"
	domainerrors "simpleq/contexts/moderation-safety/blacklist-service/domain/errors"
	httptransport "simpleq/contexts/moderation-safety/blacklist-service/transport/http"
)

type Handler struct {
	Service application.Service
	Logger  *slog.Logger
}

// ListBlacklistHandler godoc
// @Summary List blacklisted names
// @Description Returns every blacklisted name ordered alphabetically.
// @Tags blacklist
// @Produce json
// @Success 200 {object} httptransport.ListBlacklistResponse
// @Failure 500 {object} httptransport.ErrorResponse
// @Router /blacklist [get]
func (h Handler) ListBlacklistHandler(ctx context.Context) (httptransport.ListBlacklistResponse, error) {
	items, err := h.Service.GetAllBlacklistItems(ctx)
	if err != nil {
		return httptransport.ListBlacklistResponse{}, err
	}
	resp := httptransport.ListBlacklistResponse{
		Items: make([]httptransport.BlacklistItemDTO, 0, len(items)),
	}
	for _, item := range items {
		resp.Items = append(resp.Items, mapItem(item))
	}
	return resp, nil
}

// GetBlacklistItemHandler godoc
// @Summary Look up a blacklisted name
// @Description Returns the item, or a null item when the name is not blacklisted.
// @Tags blacklist
// @Produce json
// @Param name path string true "Name"
// @Success 200 {object} httptransport.GetBlacklistItemResponse
// @Failure 500 {object} httptransport.ErrorResponse
// @Router /blacklist/{name} [get]
func (h Handler) GetBlacklistItemHandler(ctx context.Context, name string) (httptransport.GetBlacklistItemResponse, error) {
	item, found, err := h.Service.GetBlacklistItem(ctx, name)
	if err != nil {
		return httptransport.GetBlacklistItemResponse{}, err
	}
	if !found {
		return httptransport.GetBlacklistItemResponse{}, nil
	}
	dto := mapItem(item)
	return httptransport.GetBlacklistItemResponse{Item: &dto}, nil
}

// CreateBlacklistItemHandler godoc
// @Summary Blacklist a name
// @Description Adds a name to the blacklist. Requires an admin identity.
// @Tags blacklist
// @Accept json
// @Produce json
// @Security SessionAuth
// @Param request body httptransport.CreateBlacklistItemRequest true "Blacklist item"
// @Success 201 {object} httptransport.CreateBlacklistItemResponse
// @Failure 400 {object} httptransport.ErrorResponse
// @Failure 401 {object} httptransport.ErrorResponse
// @Failure 403 {object} httptransport.ErrorResponse
// @Failure 409 {object} httptransport.ErrorResponse
// @Router /blacklist [post]
func (h Handler) CreateBlacklistItemHandler(ctx context.Context, isAdmin bool, req httptransport.CreateBlacklistItemRequest) (httptransport.CreateBlacklistItemResponse, error) {
	if !isAdmin {
		return httptransport.CreateBlacklistItemResponse{}, domainerrors.ErrForbidden
	}
	item, err := h.Service.CreateBlacklistItem(ctx, req.Name)
	if err != nil {
		return httptransport.CreateBlacklistItemResponse{}, err
	}
	return httptransport.CreateBlacklistItemResponse{Item: mapItem(item)}, nil
}

func mapItem(item entities.BlacklistItem) httptransport.BlacklistItemDTO {
	return httptransport.BlacklistItemDTO{
		Name:      item.Name,
		CreatedAt: item.CreatedAt.UTC().Format(time.RFC3339),
	}
}
