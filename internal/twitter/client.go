package twitter

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

const (
	tweetFields = "created_at,public_metrics,conversation_id,referenced_tweets"
	userFields  = "username,name,public_metrics"
	expansions  = "author_id"

	defaultPageSize = 20
)

// Client is a read-only Twitter API v2 client.
type Client struct {
	baseURL  string
	bearer   string
	http     *http.Client
	pageSize int

	me *User // cached after the first lookup
}

func NewClient(baseURL, bearerToken string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 10 * time.Second}
	}
	return &Client{
		baseURL:  strings.TrimRight(baseURL, "/"),
		bearer:   bearerToken,
		http:     httpClient,
		pageSize: defaultPageSize,
	}
}

// SetPageSize bounds the number of tweets requested per page. The API
// accepts 5..100 for timelines and 10..100 for search.
func (c *Client) SetPageSize(n int) {
	if n < 5 {
		n = 5
	}
	if n > 100 {
		n = 100
	}
	c.pageSize = n
}

// Me returns the authenticated user, cached after the first call.
func (c *Client) Me(ctx context.Context) (User, error) {
	if c.me != nil {
		return *c.me, nil
	}

	q := make(url.Values)
	q.Set("user.fields", userFields)

	var env userEnvelope
	if err := c.get(ctx, "/2/users/me", q, &env, "me"); err != nil {
		return User{}, err
	}
	user := env.Data.normalize()
	c.me = &user
	return user, nil
}

// UserByHandle looks up a user profile by username.
func (c *Client) UserByHandle(ctx context.Context, handle string) (User, error) {
	q := make(url.Values)
	q.Set("user.fields", userFields)

	var env userEnvelope
	path := "/2/users/by/username/" + url.PathEscape(handle)
	if err := c.get(ctx, path, q, &env, "user lookup"); err != nil {
		return User{}, err
	}
	if env.Data.ID == "" {
		return User{}, fmt.Errorf("user @%s not found", handle)
	}
	return env.Data.normalize(), nil
}

// Timeline fetches one page of the home timeline (reverse chronological).
// An empty cursor requests the first page.
func (c *Client) Timeline(ctx context.Context, cursor string) (Page, error) {
	me, err := c.Me(ctx)
	if err != nil {
		return Page{}, err
	}

	q := c.tweetQuery()
	if cursor != "" {
		q.Set("pagination_token", cursor)
	}

	var env listEnvelope
	path := "/2/users/" + url.PathEscape(me.ID) + "/timelines/reverse_chronological"
	if err := c.get(ctx, path, q, &env, "timeline"); err != nil {
		return Page{}, err
	}
	return env.page(), nil
}

// UserTweets fetches one page of a user's recent tweets.
func (c *Client) UserTweets(ctx context.Context, handle, cursor string) (Page, error) {
	user, err := c.UserByHandle(ctx, handle)
	if err != nil {
		return Page{}, err
	}

	q := c.tweetQuery()
	if cursor != "" {
		q.Set("pagination_token", cursor)
	}

	var env listEnvelope
	path := "/2/users/" + url.PathEscape(user.ID) + "/tweets"
	if err := c.get(ctx, path, q, &env, "user tweets"); err != nil {
		return Page{}, err
	}
	return env.page(), nil
}

// Search fetches one page of recent-tweet search results.
func (c *Client) Search(ctx context.Context, query, cursor string) (Page, error) {
	q := c.tweetQuery()
	q.Set("query", query)
	if c.pageSize < 10 {
		q.Set("max_results", "10") // search minimum
	}
	if cursor != "" {
		q.Set("next_token", cursor)
	}

	var env listEnvelope
	if err := c.get(ctx, "/2/tweets/search/recent", q, &env, "search"); err != nil {
		return Page{}, err
	}
	return env.page(), nil
}

// Thread fetches the tweet's conversation: the root tweet first, then the
// replies the recent-search index knows about, in server order. A failed
// reply search degrades to a page holding only the root.
func (c *Client) Thread(ctx context.Context, tweetID string) (Page, error) {
	root, err := c.TweetDetail(ctx, tweetID)
	if err != nil {
		return Page{}, err
	}

	convID := root.ConversationID
	if convID == "" {
		convID = root.ID
	}

	replies, err := c.Search(ctx, "conversation_id:"+convID, "")
	if err != nil {
		return Page{Tweets: []TweetRecord{root}}, nil
	}

	tweets := make([]TweetRecord, 0, len(replies.Tweets)+1)
	tweets = append(tweets, root)
	for _, t := range replies.Tweets {
		if t.ID != root.ID {
			tweets = append(tweets, t)
		}
	}
	return Page{Tweets: tweets}, nil
}

// TweetDetail fetches a single tweet by id.
func (c *Client) TweetDetail(ctx context.Context, tweetID string) (TweetRecord, error) {
	q := make(url.Values)
	q.Set("tweet.fields", tweetFields)
	q.Set("expansions", expansions)
	q.Set("user.fields", userFields)

	var env singleEnvelope
	path := "/2/tweets/" + url.PathEscape(tweetID)
	if err := c.get(ctx, path, q, &env, "tweet detail"); err != nil {
		return TweetRecord{}, err
	}
	return env.tweet(), nil
}

func (c *Client) tweetQuery() url.Values {
	q := make(url.Values)
	q.Set("max_results", strconv.Itoa(c.pageSize))
	q.Set("tweet.fields", tweetFields)
	q.Set("expansions", expansions)
	q.Set("user.fields", userFields)
	return q
}

func (c *Client) get(ctx context.Context, path string, query url.Values, out any, resource string) error {
	fullURL := c.baseURL + path
	if len(query) > 0 {
		fullURL += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fullURL, nil)
	if err != nil {
		return fmt.Errorf("build %s request: %w", resource, err)
	}
	req.Header.Set("Authorization", "Bearer "+c.bearer)
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%s request failed: %w", resource, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return apiErrorFromResponse(resp)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode %s response: %w", resource, err)
	}
	return nil
}

func apiErrorFromResponse(resp *http.Response) error {
	body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))

	var detail struct {
		Title  string `json:"title"`
		Detail string `json:"detail"`
		Errors []struct {
			Message string `json:"message"`
		} `json:"errors"`
	}
	message := strings.TrimSpace(string(body))
	if err := json.Unmarshal(body, &detail); err == nil {
		switch {
		case detail.Detail != "":
			message = detail.Detail
		case detail.Title != "":
			message = detail.Title
		case len(detail.Errors) > 0 && detail.Errors[0].Message != "":
			message = detail.Errors[0].Message
		}
	}
	return &APIError{StatusCode: resp.StatusCode, Message: message}
}
