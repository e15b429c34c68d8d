package session

import (
	"context"
	"errors"
	"testing"

	"github.com/glabrego/birdview/internal/twitter"
)

// fakeFetcher serves scripted pages keyed by cursor and records calls.
type fakeFetcher struct {
	pages map[string]twitter.Page
	err   error

	timelineCalls int
	searchQueries []string
	threadIDs     []string
	userHandles   []string
}

func tweetIDs(ids ...string) []twitter.TweetRecord {
	tweets := make([]twitter.TweetRecord, 0, len(ids))
	for _, id := range ids {
		tweets = append(tweets, twitter.TweetRecord{ID: id, AuthorHandle: "alice", Text: "tweet " + id})
	}
	return tweets
}

func (f *fakeFetcher) Timeline(_ context.Context, cursor string) (twitter.Page, error) {
	f.timelineCalls++
	if f.err != nil {
		return twitter.Page{}, f.err
	}
	return f.pages[cursor], nil
}

func (f *fakeFetcher) UserTweets(_ context.Context, handle, cursor string) (twitter.Page, error) {
	f.userHandles = append(f.userHandles, handle)
	return f.pages[cursor], nil
}

func (f *fakeFetcher) Search(_ context.Context, query, cursor string) (twitter.Page, error) {
	f.searchQueries = append(f.searchQueries, query)
	return f.pages[cursor], nil
}

func (f *fakeFetcher) Thread(_ context.Context, tweetID string) (twitter.Page, error) {
	f.threadIDs = append(f.threadIDs, tweetID)
	return f.pages[""], nil
}

func twoPageFetcher() *fakeFetcher {
	return &fakeFetcher{pages: map[string]twitter.Page{
		"":     {Tweets: tweetIDs("A", "B", "C"), NextCursor: "cur1"},
		"cur1": {Tweets: tweetIDs("D", "E")},
	}}
}

func TestBegin_AssignsOrdinalsOneToN(t *testing.T) {
	s := New(twoPageFetcher(), Query{Kind: QueryTimeline})
	if err := s.Begin(context.Background()); err != nil {
		t.Fatalf("Begin returned error: %v", err)
	}

	if s.Len() != 3 {
		t.Fatalf("expected 3 tweets, got %d", s.Len())
	}
	wantByOrdinal := map[int]string{1: "A", 2: "B", 3: "C"}
	for ordinal, want := range wantByOrdinal {
		id, err := s.Resolve(ordinal)
		if err != nil {
			t.Fatalf("Resolve(%d) returned error: %v", ordinal, err)
		}
		if id != want {
			t.Fatalf("Resolve(%d) = %s, want %s", ordinal, id, want)
		}
	}
}

func TestResolve_OutOfRange(t *testing.T) {
	s := New(twoPageFetcher(), Query{Kind: QueryTimeline})
	if err := s.Begin(context.Background()); err != nil {
		t.Fatalf("Begin returned error: %v", err)
	}

	for _, ordinal := range []int{0, -1, 4, 99} {
		if _, err := s.Resolve(ordinal); !errors.Is(err, ErrInvalidOrdinal) {
			t.Fatalf("Resolve(%d): expected ErrInvalidOrdinal, got %v", ordinal, err)
		}
	}
}

func TestNextPage_ReplacesOrdinalMapping(t *testing.T) {
	s := New(twoPageFetcher(), Query{Kind: QueryTimeline})
	if err := s.Begin(context.Background()); err != nil {
		t.Fatalf("Begin returned error: %v", err)
	}
	if !s.HasNext() {
		t.Fatal("expected a next page after Begin")
	}

	if err := s.NextPage(context.Background()); err != nil {
		t.Fatalf("NextPage returned error: %v", err)
	}

	if s.Len() != 2 {
		t.Fatalf("expected 2 tweets on page 2, got %d", s.Len())
	}
	if id, _ := s.Resolve(1); id != "D" {
		t.Fatalf("ordinal 1 should now be D, got %s", id)
	}
	// Ordinal 3 addressed page one; it must not leak into page two.
	if _, err := s.Resolve(3); !errors.Is(err, ErrInvalidOrdinal) {
		t.Fatalf("expected ErrInvalidOrdinal for stale ordinal, got %v", err)
	}
}

func TestNextPage_NoCursor(t *testing.T) {
	f := &fakeFetcher{pages: map[string]twitter.Page{"": {Tweets: tweetIDs("A")}}}
	s := New(f, Query{Kind: QueryTimeline})
	if err := s.Begin(context.Background()); err != nil {
		t.Fatalf("Begin returned error: %v", err)
	}

	if err := s.NextPage(context.Background()); !errors.Is(err, ErrNoMorePages) {
		t.Fatalf("expected ErrNoMorePages, got %v", err)
	}
	if f.timelineCalls != 1 {
		t.Fatalf("NextPage without cursor must not fetch, got %d calls", f.timelineCalls)
	}
}

func TestPreviousPage_RestoresCachedPage(t *testing.T) {
	s := New(twoPageFetcher(), Query{Kind: QueryTimeline})
	if err := s.Begin(context.Background()); err != nil {
		t.Fatalf("Begin returned error: %v", err)
	}
	if err := s.NextPage(context.Background()); err != nil {
		t.Fatalf("NextPage returned error: %v", err)
	}

	if err := s.PreviousPage(); err != nil {
		t.Fatalf("PreviousPage returned error: %v", err)
	}
	if id, _ := s.Resolve(3); id != "C" {
		t.Fatalf("expected restored page one, ordinal 3 = %s", id)
	}
	// Next from the restored page works again off the cached cursor.
	if err := s.NextPage(context.Background()); err != nil {
		t.Fatalf("NextPage after PreviousPage returned error: %v", err)
	}
	if id, _ := s.Resolve(1); id != "D" {
		t.Fatalf("expected page two again, got %s", id)
	}
}

func TestPreviousPage_OnFirstPage(t *testing.T) {
	s := New(twoPageFetcher(), Query{Kind: QueryTimeline})
	if err := s.Begin(context.Background()); err != nil {
		t.Fatalf("Begin returned error: %v", err)
	}
	if err := s.PreviousPage(); !errors.Is(err, ErrNoPreviousPage) {
		t.Fatalf("expected ErrNoPreviousPage, got %v", err)
	}
}

func TestBegin_PropagatesFetchError(t *testing.T) {
	f := &fakeFetcher{err: errors.New("rate limited")}
	s := New(f, Query{Kind: QueryTimeline})
	if err := s.Begin(context.Background()); err == nil {
		t.Fatal("expected fetch error")
	}
	if s.Len() != 0 {
		t.Fatal("failed Begin must leave the session empty")
	}
}

func TestFetch_DispatchesByQueryKind(t *testing.T) {
	f := &fakeFetcher{pages: map[string]twitter.Page{"": {Tweets: tweetIDs("A")}}}

	cases := []Query{
		{Kind: QueryUser, Handle: "bob"},
		{Kind: QuerySearch, Search: "golang"},
		{Kind: QueryThread, TweetID: "900"},
	}
	for _, q := range cases {
		s := New(f, q)
		if err := s.Begin(context.Background()); err != nil {
			t.Fatalf("Begin(%v) returned error: %v", q, err)
		}
	}

	if len(f.userHandles) != 1 || f.userHandles[0] != "bob" {
		t.Fatalf("user query not dispatched: %v", f.userHandles)
	}
	if len(f.searchQueries) != 1 || f.searchQueries[0] != "golang" {
		t.Fatalf("search query not dispatched: %v", f.searchQueries)
	}
	if len(f.threadIDs) != 1 || f.threadIDs[0] != "900" {
		t.Fatalf("thread query not dispatched: %v", f.threadIDs)
	}
}

func TestQueryTitle(t *testing.T) {
	cases := []struct {
		query Query
		want  string
	}{
		{Query{Kind: QueryTimeline}, "Home Timeline"},
		{Query{Kind: QueryUser, Handle: "bob"}, "@bob"},
		{Query{Kind: QuerySearch, Search: "go"}, `Search: "go"`},
		{Query{Kind: QueryThread, TweetID: "1"}, "Thread"},
	}
	for _, tc := range cases {
		if got := tc.query.Title(); got != tc.want {
			t.Errorf("Title(%v) = %q, want %q", tc.query.Kind, got, tc.want)
		}
	}
}
