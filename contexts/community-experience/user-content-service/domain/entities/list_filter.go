package entities

type SortField string

const (
	SortByTimestamp SortField = "timestamp"
	SortByLikes     SortField = "likes"
	SortByDislikes  SortField = "dislikes"
	SortByLDR       SortField = "ldr"
	SortByAnswers   SortField = "answers"
)

// ListFilter is a validated, paginated listing request. Query applies to
// question search; QuestionID scopes answer listings.
type ListFilter struct {
	Query      string
	QuestionID string
	SortBy     SortField
	Descending bool
	Offset     int
	Limit      int
}
