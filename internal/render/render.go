// Package render turns normalized tweet records into fixed-width terminal
// text. Everything here is a pure function of its inputs; the caller passes
// the clock so output stays deterministic.
package render

import (
	"fmt"
	"strings"
	"time"

	"github.com/muesli/reflow/wordwrap"

	"github.com/glabrego/birdview/internal/bookmarks"
	"github.com/glabrego/birdview/internal/twitter"
)

const (
	minWidth   = 20
	bodyIndent = "    "
)

type TweetParams struct {
	Ordinal int
	Tweet   twitter.TweetRecord
	Width   int
	Now     time.Time
}

// Tweet renders one tweet as a numbered block for the page view.
func Tweet(p TweetParams, th Theme) string {
	width := p.Width
	if width < minWidth {
		width = minWidth
	}
	tw := p.Tweet

	var b strings.Builder
	b.WriteString(th.Ordinal.Render(fmt.Sprintf("[%d]", p.Ordinal)))
	b.WriteString(" ")
	b.WriteString(th.Handle.Render("@" + tw.AuthorHandle))
	if age := Age(p.Now, tw.CreatedAt); age != "" {
		b.WriteString(th.Age.Render(" · " + age))
	}
	if tw.ReplyToID != "" {
		b.WriteString(th.Age.Render(" · reply"))
	}
	b.WriteString("\n")

	body := wordwrap.String(tw.Text, width-len(bodyIndent))
	b.WriteString(indentLines(th.Body.Render(body), bodyIndent))
	b.WriteString("\n")

	b.WriteString(bodyIndent)
	b.WriteString(metricsLine(tw, th))
	b.WriteString("\n")
	return b.String()
}

// Page renders a full page of tweets with ordinals starting at 1.
func Page(tweets []twitter.TweetRecord, width int, now time.Time, th Theme) string {
	if len(tweets) == 0 {
		return th.Meta.Render("No tweets to display.") + "\n"
	}
	var b strings.Builder
	for i, tw := range tweets {
		b.WriteString(Tweet(TweetParams{Ordinal: i + 1, Tweet: tw, Width: width, Now: now}, th))
		b.WriteString("\n")
	}
	return b.String()
}

// Detail renders the single-tweet view with full metadata.
func Detail(tw twitter.TweetRecord, width int, now time.Time, th Theme) string {
	if width < minWidth {
		width = minWidth
	}

	var b strings.Builder
	b.WriteString(th.Name.Render(tw.AuthorName))
	b.WriteString(" ")
	b.WriteString(th.Handle.Render("@" + tw.AuthorHandle))
	if !tw.CreatedAt.IsZero() {
		b.WriteString(th.Age.Render(" · " + tw.CreatedAt.Format("Jan 02 2006 15:04")))
	}
	b.WriteString("\n\n")
	b.WriteString(th.Body.Render(wordwrap.String(tw.Text, width)))
	b.WriteString("\n\n")
	b.WriteString(metricsLine(tw, th))
	b.WriteString("\n\n")
	b.WriteString(th.Meta.Render("Link: " + tw.URL()))
	b.WriteString("\n")
	b.WriteString(th.Meta.Render("Tweet ID: " + tw.ID))
	b.WriteString("\n")
	if tw.ConversationID != "" {
		b.WriteString(th.Meta.Render("Conversation: " + tw.ConversationID))
		b.WriteString("\n")
	}
	if tw.ReplyToID != "" {
		b.WriteString(th.Meta.Render("In reply to: " + tw.ReplyToID))
		b.WriteString("\n")
	}
	return b.String()
}

// Bookmarks renders the saved list, addressed by 0-based index the way
// `bookmarks --remove` expects.
func Bookmarks(list []bookmarks.Bookmark, width int, th Theme) string {
	if len(list) == 0 {
		return th.Meta.Render("No bookmarks saved yet.") + "\n"
	}
	if width < minWidth {
		width = minWidth
	}

	var b strings.Builder
	b.WriteString(th.Title.Render(fmt.Sprintf("Bookmarks (%d)", len(list))))
	b.WriteString("\n\n")

	for i, bm := range list {
		saved := ""
		if !bm.SavedAt.IsZero() {
			saved = bm.SavedAt.Format(time.DateOnly)
		}
		prefix := fmt.Sprintf("%3d  ", i)
		author := "@" + bm.Author
		available := width - len(prefix) - len(author) - len(saved) - 4
		text := truncateRunes(strings.ReplaceAll(bm.Text, "\n", " "), available)

		b.WriteString(th.Ordinal.Render(prefix))
		b.WriteString(th.Handle.Render(author))
		b.WriteString("  ")
		b.WriteString(th.Body.Render(text))
		if saved != "" {
			b.WriteString("  ")
			b.WriteString(th.Age.Render(saved))
		}
		b.WriteString("\n")
	}
	return b.String()
}

// UserHeader renders a profile summary line pair.
func UserHeader(u twitter.User, th Theme) string {
	var b strings.Builder
	b.WriteString(th.Name.Render(u.Name))
	b.WriteString("  ")
	b.WriteString(th.Handle.Render("@" + u.Handle))
	b.WriteString("\n")
	b.WriteString(th.Meta.Render(fmt.Sprintf(
		"%s followers · %s following · %s tweets",
		FormatCount(u.Followers), FormatCount(u.Following), FormatCount(u.TweetCount),
	)))
	b.WriteString("\n")
	return b.String()
}

// HelpBar lists the interactive commands.
func HelpBar(th Theme) string {
	keys := []struct{ key, label string }{
		{"b#", "bookmark"},
		{"c#", "copy link"},
		{"o#", "open"},
		{"t#", "thread"},
		{"#", "detail"},
		{"n/p", "page"},
		{"q", "quit"},
	}
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, th.HelpKey.Render("["+k.key+"]")+th.Help.Render(" "+k.label))
	}
	return strings.Join(parts, th.Help.Render("  "))
}

func metricsLine(tw twitter.TweetRecord, th Theme) string {
	parts := []string{
		th.Likes.Render("♥ " + FormatCount(tw.Likes)),
		th.Reposts.Render("⇄ " + FormatCount(tw.Retweets)),
		th.Replies.Render("↩ " + FormatCount(tw.Replies)),
	}
	if tw.Quotes > 0 {
		parts = append(parts, th.Quotes.Render("❝ "+FormatCount(tw.Quotes)))
	}
	return strings.Join(parts, "  ")
}
