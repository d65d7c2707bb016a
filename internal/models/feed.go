package models

// FeedKind selects one of the filtered, paginated views over posts
type FeedKind string

const (
	FeedGlobal    FeedKind = "global"
	FeedFollowing FeedKind = "following"
	FeedLiked     FeedKind = "liked"
	FeedMine      FeedKind = "mine"
)

// FeedPageSize is the fixed page length for every feed kind. A page shorter
// than this signals the end of the sequence.
const FeedPageSize = 25

// Valid reports whether k names a known feed kind
func (k FeedKind) Valid() bool {
	switch k {
	case FeedGlobal, FeedFollowing, FeedLiked, FeedMine:
		return true
	}
	return false
}
