package browse

import (
	"context"
	"errors"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/glabrego/birdview/internal/bookmarks"
	"github.com/glabrego/birdview/internal/session"
	"github.com/glabrego/birdview/internal/twitter"
)

const fetchTimeout = 10 * time.Second

var (
	errNoClipboard = errors.New("clipboard unavailable")
	errNoBrowser   = errors.New("browser unavailable")
)

// Detailer is the single-tweet slice of the API client.
type Detailer interface {
	TweetDetail(ctx context.Context, tweetID string) (twitter.TweetRecord, error)
}

// Bookmarker is the slice of the bookmark store the loop mutates.
type Bookmarker interface {
	Add(b bookmarks.Bookmark) (bool, error)
}

type pageLoadedMsg struct {
	err error
}

type threadLoadedMsg struct {
	sess *session.Session
	err  error
}

type detailLoadedMsg struct {
	tweet twitter.TweetRecord
	err   error
}

type bookmarkSavedMsg struct {
	handle string
	added  bool
	err    error
}

type linkCopiedMsg struct {
	url string
	err error
}

type linkOpenedMsg struct {
	url string
	err error
}

func nextPageCmd(s *session.Session) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), fetchTimeout)
		defer cancel()
		return pageLoadedMsg{err: s.NextPage(ctx)}
	}
}

func loadThreadCmd(fetcher session.Fetcher, tweetID string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), fetchTimeout)
		defer cancel()

		sess := session.New(fetcher, session.Query{Kind: session.QueryThread, TweetID: tweetID})
		if err := sess.Begin(ctx); err != nil {
			return threadLoadedMsg{err: err}
		}
		return threadLoadedMsg{sess: sess}
	}
}

// loadDetailCmd re-fetches the tweet for the detail view so metrics are
// current. Without a detailer the on-page record is shown as-is.
func loadDetailCmd(detailer Detailer, local twitter.TweetRecord) tea.Cmd {
	return func() tea.Msg {
		if detailer == nil {
			return detailLoadedMsg{tweet: local}
		}
		ctx, cancel := context.WithTimeout(context.Background(), fetchTimeout)
		defer cancel()

		tweet, err := detailer.TweetDetail(ctx, local.ID)
		if err != nil {
			return detailLoadedMsg{err: err}
		}
		return detailLoadedMsg{tweet: tweet}
	}
}

func saveBookmarkCmd(store Bookmarker, tw twitter.TweetRecord) tea.Cmd {
	return func() tea.Msg {
		added, err := store.Add(bookmarks.Bookmark{
			TweetID:   tw.ID,
			Author:    tw.AuthorHandle,
			Text:      tw.Text,
			CreatedAt: tw.CreatedAt,
		})
		return bookmarkSavedMsg{handle: tw.AuthorHandle, added: added, err: err}
	}
}

func copyLinkCmd(copyFn func(string) error, url string) tea.Cmd {
	return func() tea.Msg {
		if copyFn == nil {
			return linkCopiedMsg{url: url, err: errNoClipboard}
		}
		return linkCopiedMsg{url: url, err: copyFn(url)}
	}
}

func openLinkCmd(openFn func(string) error, url string) tea.Cmd {
	return func() tea.Msg {
		if openFn == nil {
			return linkOpenedMsg{url: url, err: errNoBrowser}
		}
		return linkOpenedMsg{url: url, err: openFn(url)}
	}
}
