package browse

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrUnrecognizedCommand is returned for input that matches no known form.
var ErrUnrecognizedCommand = errors.New("unrecognized command")

type Kind int

const (
	KindNone Kind = iota // empty input, re-prompt
	KindQuit
	KindNextPage
	KindPrevPage
	KindDetail
	KindBookmark
	KindCopyLink
	KindOpenBrowser
	KindThread
)

// Command is one classified line of input. Ordinal is set for the
// tweet-addressing kinds and is the 1-based on-screen number.
type Command struct {
	Kind    Kind
	Ordinal int
}

// ParseCommand classifies one line of input. It is a pure function;
// dispatching the side effects happens in the model.
func ParseCommand(line string) (Command, error) {
	trimmed := strings.ToLower(strings.TrimSpace(line))

	switch trimmed {
	case "":
		return Command{Kind: KindNone}, nil
	case "q":
		return Command{Kind: KindQuit}, nil
	case "n":
		return Command{Kind: KindNextPage}, nil
	case "p":
		return Command{Kind: KindPrevPage}, nil
	}

	if ordinal, err := strconv.Atoi(trimmed); err == nil {
		return Command{Kind: KindDetail, Ordinal: ordinal}, nil
	}

	prefixes := map[byte]Kind{
		'b': KindBookmark,
		'c': KindCopyLink,
		'o': KindOpenBrowser,
		't': KindThread,
	}
	if kind, ok := prefixes[trimmed[0]]; ok {
		rest := strings.TrimSpace(trimmed[1:])
		if ordinal, err := strconv.Atoi(rest); err == nil {
			return Command{Kind: kind, Ordinal: ordinal}, nil
		}
	}

	return Command{}, fmt.Errorf("%q: %w", strings.TrimSpace(line), ErrUnrecognizedCommand)
}
