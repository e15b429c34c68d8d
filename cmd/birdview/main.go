package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/glabrego/birdview/internal/bookmarks"
	"github.com/glabrego/birdview/internal/browse"
	"github.com/glabrego/birdview/internal/config"
	"github.com/glabrego/birdview/internal/render"
	"github.com/glabrego/birdview/internal/session"
	"github.com/glabrego/birdview/internal/twitter"
)

const version = "0.1.0"

// listWidth is used for one-shot output; the interactive browser sizes
// itself from the terminal instead.
const listWidth = 80

const startupTimeout = 30 * time.Second

func main() {
	if len(os.Args) < 2 {
		printUsage()
		return
	}

	switch os.Args[1] {
	case "help", "--help", "-h":
		printUsage()
	case "version", "--version":
		fmt.Println("birdview " + version)
	case "init":
		runInit()
	case "timeline":
		runTimeline(os.Args[2:])
	case "user":
		runUser(os.Args[2:])
	case "search":
		runSearch(os.Args[2:])
	case "thread":
		runThread(os.Args[2:])
	case "bookmarks":
		runBookmarks(os.Args[2:])
	case "whoami":
		runWhoami()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", os.Args[1])
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	usage := `birdview - minimal terminal Twitter/X client (read-only)

Usage:
  birdview timeline [-n count] [-no-interactive]   View your home timeline
  birdview user <handle> [-n count]                View a user's recent tweets
  birdview search <query> [-n count]               Search recent tweets
  birdview thread <tweet_id>                       View a tweet's thread
  birdview bookmarks [-r index]                    View or remove local bookmarks
  birdview whoami                                  Show the authenticated user
  birdview init                                    Set up API credentials
  birdview help                                    Show this help

Interactive commands (inside timeline/user/search/thread):
  2     Show tweet #2 in detail      b2    Bookmark tweet #2
  c2    Copy tweet #2's link         o2    Open tweet #2 in the browser
  t2    View tweet #2's thread       n/p   Next/previous page
  q     Quit (or leave a thread)

Data is stored in ~/.birdview/ (credentials.json, bookmarks.json).
`
	fmt.Print(usage)
}

func fatal(err error) {
	fmt.Fprintln(os.Stderr, "Error:", err)
	os.Exit(1)
}

func newClient() *twitter.Client {
	cfg, err := config.Load()
	if err != nil {
		fatal(err)
	}
	return twitter.NewClient(cfg.APIBaseURL, cfg.Credentials.BearerToken, nil)
}

func newBookmarkStore() *bookmarks.Store {
	path, err := config.BookmarksPath()
	if err != nil {
		fatal(err)
	}
	return bookmarks.NewStore(path)
}

func runTimeline(args []string) {
	fs := flag.NewFlagSet("timeline", flag.ExitOnError)
	count := fs.Int("n", 20, "number of tweets per page")
	noInteractive := fs.Bool("no-interactive", false, "print the first page and exit")
	_ = fs.Parse(args)

	client := newClient()
	client.SetPageSize(*count)
	browseQuery(client, session.Query{Kind: session.QueryTimeline}, *noInteractive)
}

func runUser(args []string) {
	fs := flag.NewFlagSet("user", flag.ExitOnError)
	count := fs.Int("n", 20, "number of tweets per page")
	noInteractive := fs.Bool("no-interactive", false, "print the first page and exit")
	_ = fs.Parse(args)

	handle := strings.TrimPrefix(fs.Arg(0), "@")
	if handle == "" {
		fmt.Fprintln(os.Stderr, "Usage: birdview user <handle>")
		os.Exit(1)
	}

	client := newClient()
	client.SetPageSize(*count)

	if *noInteractive {
		// Profile header is best effort; the tweet list still renders
		// when the lookup fails.
		ctx, cancel := context.WithTimeout(context.Background(), startupTimeout)
		if info, err := client.UserByHandle(ctx, handle); err == nil {
			fmt.Println(render.UserHeader(info, render.Default()))
		}
		cancel()
	}

	browseQuery(client, session.Query{Kind: session.QueryUser, Handle: handle}, *noInteractive)
}

func runSearch(args []string) {
	fs := flag.NewFlagSet("search", flag.ExitOnError)
	count := fs.Int("n", 20, "number of results per page")
	noInteractive := fs.Bool("no-interactive", false, "print the first page and exit")
	_ = fs.Parse(args)

	query := strings.TrimSpace(strings.Join(fs.Args(), " "))
	if query == "" {
		fmt.Fprintln(os.Stderr, "Usage: birdview search <query>")
		os.Exit(1)
	}

	client := newClient()
	client.SetPageSize(*count)
	browseQuery(client, session.Query{Kind: session.QuerySearch, Search: query}, *noInteractive)
}

func runThread(args []string) {
	fs := flag.NewFlagSet("thread", flag.ExitOnError)
	_ = fs.Parse(args)

	tweetID := fs.Arg(0)
	if tweetID == "" {
		fmt.Fprintln(os.Stderr, "Usage: birdview thread <tweet_id>")
		os.Exit(1)
	}

	client := newClient()
	browseQuery(client, session.Query{Kind: session.QueryThread, TweetID: tweetID}, false)
}

func browseQuery(client *twitter.Client, query session.Query, noInteractive bool) {
	sess := session.New(client, query)

	ctx, cancel := context.WithTimeout(context.Background(), startupTimeout)
	err := sess.Begin(ctx)
	cancel()
	if err != nil {
		fatal(err)
	}

	if noInteractive {
		th := render.Default()
		fmt.Println(th.Title.Render(query.Title()))
		fmt.Println()
		fmt.Print(render.Page(sess.Tweets(), listWidth, time.Now(), th))
		return
	}

	model := browse.NewModel(browse.Params{
		Session:  sess,
		Fetcher:  client,
		Detailer: client,
		Store:    newBookmarkStore(),
	})
	program := tea.NewProgram(model, tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		fatal(fmt.Errorf("interactive browser: %w", err))
	}
}

func runBookmarks(args []string) {
	fs := flag.NewFlagSet("bookmarks", flag.ExitOnError)
	remove := fs.Int("remove", -1, "remove bookmark by 0-based index")
	fs.IntVar(remove, "r", -1, "remove bookmark by 0-based index (shorthand)")
	_ = fs.Parse(args)

	store := newBookmarkStore()

	if *remove >= 0 {
		removed, err := store.Remove(*remove)
		if err != nil {
			fatal(err)
		}
		fmt.Printf("✓ Removed bookmark %d (@%s)\n", *remove, removed.Author)
		return
	}

	list, err := store.Load()
	if err != nil {
		fatal(err)
	}
	fmt.Print(render.Bookmarks(list, listWidth, render.Default()))
}

func runWhoami() {
	client := newClient()

	ctx, cancel := context.WithTimeout(context.Background(), startupTimeout)
	defer cancel()

	me, err := client.Me(ctx)
	if err != nil {
		fatal(err)
	}
	fmt.Print(render.UserHeader(me, render.Default()))
}

func runInit() {
	fmt.Println("BirdView Setup")
	fmt.Println("Enter your Twitter/X API credentials.")
	fmt.Println()

	reader := bufio.NewReader(os.Stdin)
	creds := config.Credentials{
		ConsumerKey:    prompt(reader, "Consumer Key"),
		ConsumerSecret: prompt(reader, "Consumer Secret"),
		BearerToken:    prompt(reader, "Bearer Token"),
		AccessToken:    prompt(reader, "Access Token"),
		AccessSecret:   prompt(reader, "Access Token Secret"),
	}

	path, err := config.Save(creds)
	if err != nil {
		fatal(err)
	}
	fmt.Printf("\n✓ Credentials saved to %s\n", path)
	fmt.Println("File permissions set to owner-only (600).")
	fmt.Println("\nTry: birdview whoami")
}

func prompt(reader *bufio.Reader, label string) string {
	fmt.Printf("%s: ", label)
	line, _ := reader.ReadString('\n')
	return strings.TrimSpace(line)
}
