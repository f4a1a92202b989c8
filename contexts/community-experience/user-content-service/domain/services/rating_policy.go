package services

import "simpleq/contexts/community-experience/user-content-service/domain/entities"

// RatingDelta returns the counter changes for moving a user's rating from
// previous to next.
func RatingDelta(previous entities.Rating, next entities.Rating) (likes int, dislikes int) {
	switch previous {
	case entities.RatingLike:
		likes--
	case entities.RatingDislike:
		dislikes--
	}
	switch next {
	case entities.RatingLike:
		likes++
	case entities.RatingDislike:
		dislikes++
	}
	return likes, dislikes
}
