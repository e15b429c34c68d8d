// Package session owns the ordinal bookkeeping for one interactive query:
// which tweets are on screen, how displayed numbers map back to tweet ids,
// and where the next page starts. Ordinals are page-scoped and rebuilt
// wholesale on every transition, so a stale number can never address a
// tweet from a previous page.
package session

import (
	"context"
	"errors"
	"fmt"

	"github.com/glabrego/birdview/internal/twitter"
)

var (
	ErrInvalidOrdinal = errors.New("no tweet with that number on this page")
	ErrNoMorePages    = errors.New("already on the last page")
	ErrNoPreviousPage = errors.New("already on the first page")
)

// Fetcher is the slice of the API client the session needs. twitter.Client
// implements it; tests substitute fakes.
type Fetcher interface {
	Timeline(ctx context.Context, cursor string) (twitter.Page, error)
	UserTweets(ctx context.Context, handle, cursor string) (twitter.Page, error)
	Search(ctx context.Context, query, cursor string) (twitter.Page, error)
	Thread(ctx context.Context, tweetID string) (twitter.Page, error)
}

type QueryKind int

const (
	QueryTimeline QueryKind = iota
	QueryUser
	QuerySearch
	QueryThread
)

// Query describes what produced a page, so "next page" can re-issue the
// same request with an updated cursor.
type Query struct {
	Kind    QueryKind
	Handle  string // QueryUser
	Search  string // QuerySearch
	TweetID string // QueryThread
}

func (q Query) Title() string {
	switch q.Kind {
	case QueryUser:
		return "@" + q.Handle
	case QuerySearch:
		return fmt.Sprintf("Search: %q", q.Search)
	case QueryThread:
		return "Thread"
	default:
		return "Home Timeline"
	}
}

type page struct {
	tweets []twitter.TweetRecord
	cursor string
}

// Session holds the current page and the stack of pages already seen.
// It is not safe for concurrent use; the dispatch loop is sequential.
type Session struct {
	fetcher Fetcher
	query   Query
	current page
	history []page
	begun   bool
}

func New(fetcher Fetcher, query Query) *Session {
	return &Session{fetcher: fetcher, query: query}
}

func (s *Session) Query() Query {
	return s.query
}

// Begin issues the first fetch and installs the ordinal mapping.
func (s *Session) Begin(ctx context.Context) error {
	result, err := s.fetch(ctx, "")
	if err != nil {
		return err
	}
	s.current = page{tweets: result.Tweets, cursor: result.NextCursor}
	s.history = nil
	s.begun = true
	return nil
}

// Tweets returns the current page in display order. Ordinal n is Tweets()[n-1].
func (s *Session) Tweets() []twitter.TweetRecord {
	return s.current.tweets
}

func (s *Session) Len() int {
	return len(s.current.tweets)
}

// Resolve maps a displayed ordinal (1..N) to its tweet id.
func (s *Session) Resolve(ordinal int) (string, error) {
	tw, err := s.Tweet(ordinal)
	if err != nil {
		return "", err
	}
	return tw.ID, nil
}

// Tweet returns the record behind a displayed ordinal.
func (s *Session) Tweet(ordinal int) (twitter.TweetRecord, error) {
	if ordinal < 1 || ordinal > len(s.current.tweets) {
		return twitter.TweetRecord{}, fmt.Errorf("tweet #%d: %w", ordinal, ErrInvalidOrdinal)
	}
	return s.current.tweets[ordinal-1], nil
}

// PageNumber is 1-based and counts pages walked forward from Begin.
func (s *Session) PageNumber() int {
	return len(s.history) + 1
}

// HasNext reports whether the server offered a further page.
func (s *Session) HasNext() bool {
	return s.current.cursor != ""
}

// NextPage re-issues the query with the stored cursor and replaces the
// ordinal mapping. The page being left is kept so PreviousPage can restore it.
func (s *Session) NextPage(ctx context.Context) error {
	if s.current.cursor == "" {
		return ErrNoMorePages
	}
	result, err := s.fetch(ctx, s.current.cursor)
	if err != nil {
		return err
	}
	s.history = append(s.history, s.current)
	s.current = page{tweets: result.Tweets, cursor: result.NextCursor}
	return nil
}

// PreviousPage restores the most recently left page from the in-session
// cache. There is no server-side backward pagination.
func (s *Session) PreviousPage() error {
	if len(s.history) == 0 {
		return ErrNoPreviousPage
	}
	s.current = s.history[len(s.history)-1]
	s.history = s.history[:len(s.history)-1]
	return nil
}

func (s *Session) fetch(ctx context.Context, cursor string) (twitter.Page, error) {
	switch s.query.Kind {
	case QueryUser:
		return s.fetcher.UserTweets(ctx, s.query.Handle, cursor)
	case QuerySearch:
		return s.fetcher.Search(ctx, s.query.Search, cursor)
	case QueryThread:
		return s.fetcher.Thread(ctx, s.query.TweetID)
	default:
		return s.fetcher.Timeline(ctx, cursor)
	}
}
