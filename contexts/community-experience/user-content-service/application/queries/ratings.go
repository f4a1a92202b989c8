package queries

import (
	"context"

	"simpleq/contexts/community-experience/user-content-service/domain/entities"
	"simpleq/contexts/community-experience/user-content-service/ports"
)

// callerRatings loads the caller's ratings for items. Anonymous callers and
// unrated items map to RatingNone.
func callerRatings(
	ctx context.Context,
	ratings ports.RatingRepository,
	userID string,
	items []entities.UserContent,
) (map[string]entities.Rating, error) {
	result := make(map[string]entities.Rating, len(items))
	ids := make([]string, 0, len(items))
	for _, item := range items {
		result[item.ID] = entities.RatingNone
		ids = append(ids, item.ID)
	}
	if userID == "" || ratings == nil || len(ids) == 0 {
		return result, nil
	}
	stored, err := ratings.GetRatings(ctx, userID, ids)
	if err != nil {
		return nil, err
	}
	for id, rating := range stored {
		result[id] = rating
	}
	return result, nil
}
