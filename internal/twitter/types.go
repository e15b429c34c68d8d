package twitter

import "time"

// TweetRecord is the normalized tweet shape used by the rest of the app.
// Records are immutable once parsed from a response.
type TweetRecord struct {
	ID             string
	AuthorHandle   string
	AuthorName     string
	Text           string
	CreatedAt      time.Time
	Likes          int
	Retweets       int
	Replies        int
	Quotes         int
	ConversationID string
	ReplyToID      string
}

// URL returns the canonical web address for the tweet.
func (t TweetRecord) URL() string {
	return "https://x.com/" + t.AuthorHandle + "/status/" + t.ID
}

// Page is one page of tweets in server order. NextCursor is empty
// when the server reported no further pages.
type Page struct {
	Tweets     []TweetRecord
	NextCursor string
}

// User describes a Twitter/X account profile.
type User struct {
	ID         string
	Handle     string
	Name       string
	Followers  int
	Following  int
	TweetCount int
}
