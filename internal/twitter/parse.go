package twitter

import (
	"html"
	"time"
)

// Wire shapes for the subset of the v2 response envelope the app reads.

type apiTweet struct {
	ID               string     `json:"id"`
	Text             string     `json:"text"`
	AuthorID         string     `json:"author_id"`
	ConversationID   string     `json:"conversation_id"`
	CreatedAt        time.Time  `json:"created_at"`
	PublicMetrics    apiMetrics `json:"public_metrics"`
	ReferencedTweets []apiRef   `json:"referenced_tweets"`
}

type apiMetrics struct {
	LikeCount    int `json:"like_count"`
	RetweetCount int `json:"retweet_count"`
	ReplyCount   int `json:"reply_count"`
	QuoteCount   int `json:"quote_count"`
}

type apiRef struct {
	Type string `json:"type"`
	ID   string `json:"id"`
}

type apiUser struct {
	ID            string `json:"id"`
	Username      string `json:"username"`
	Name          string `json:"name"`
	PublicMetrics struct {
		FollowersCount int `json:"followers_count"`
		FollowingCount int `json:"following_count"`
		TweetCount     int `json:"tweet_count"`
	} `json:"public_metrics"`
}

func (u apiUser) normalize() User {
	return User{
		ID:         u.ID,
		Handle:     u.Username,
		Name:       u.Name,
		Followers:  u.PublicMetrics.FollowersCount,
		Following:  u.PublicMetrics.FollowingCount,
		TweetCount: u.PublicMetrics.TweetCount,
	}
}

type apiIncludes struct {
	Users []apiUser `json:"users"`
}

func (inc apiIncludes) authors() map[string]apiUser {
	users := make(map[string]apiUser, len(inc.Users))
	for _, u := range inc.Users {
		users[u.ID] = u
	}
	return users
}

type listEnvelope struct {
	Data     []apiTweet  `json:"data"`
	Includes apiIncludes `json:"includes"`
	Meta     struct {
		NextToken string `json:"next_token"`
	} `json:"meta"`
}

func (env listEnvelope) page() Page {
	authors := env.Includes.authors()
	tweets := make([]TweetRecord, 0, len(env.Data))
	for _, t := range env.Data {
		tweets = append(tweets, normalizeTweet(t, authors))
	}
	return Page{Tweets: tweets, NextCursor: env.Meta.NextToken}
}

type singleEnvelope struct {
	Data     apiTweet    `json:"data"`
	Includes apiIncludes `json:"includes"`
}

func (env singleEnvelope) tweet() TweetRecord {
	return normalizeTweet(env.Data, env.Includes.authors())
}

type userEnvelope struct {
	Data apiUser `json:"data"`
}

func normalizeTweet(t apiTweet, authors map[string]apiUser) TweetRecord {
	handle := "unknown"
	name := "Unknown"
	if author, ok := authors[t.AuthorID]; ok {
		handle = author.Username
		name = author.Name
	}

	replyTo := ""
	for _, ref := range t.ReferencedTweets {
		if ref.Type == "replied_to" {
			replyTo = ref.ID
			break
		}
	}

	return TweetRecord{
		ID:             t.ID,
		AuthorHandle:   handle,
		AuthorName:     name,
		Text:           html.UnescapeString(t.Text),
		CreatedAt:      t.CreatedAt,
		Likes:          t.PublicMetrics.LikeCount,
		Retweets:       t.PublicMetrics.RetweetCount,
		Replies:        t.PublicMetrics.ReplyCount,
		Quotes:         t.PublicMetrics.QuoteCount,
		ConversationID: t.ConversationID,
		ReplyToID:      replyTo,
	}
}
