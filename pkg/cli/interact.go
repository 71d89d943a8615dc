package cli

import (
	"fmt"
	"os"

	"github.com/manifoldco/promptui"
	"github.com/pkg/errors"
	"golang.org/x/crypto/ssh/terminal"
)

var (
	ErrNoTTY    = errors.New("no tty attached")
	ErrUserQuit = errors.New("user quit")
)

func IsInteractive() bool {
	return terminal.IsTerminal(int(os.Stdout.Fd()))
}

// RequestStringFromUser prompts for a line of text.
func RequestStringFromUser(text string, args ...interface{}) (string, error) {
	if !IsInteractive() {
		return "", ErrNoTTY
	}

	prompt := promptui.Prompt{
		Label: fmt.Sprintf(text, args...),
	}

	value, err := prompt.Run()
	return value, quit(err)
}

// Choose asks the user to pick one of items and returns its index.
func Choose(label string, items []string) (int, error) {
	if !IsInteractive() {
		return -1, ErrNoTTY
	}
	if len(items) == 0 {
		return -1, errors.Errorf("nothing to choose for %q", label)
	}

	s := promptui.Select{
		Label:             label,
		Items:             items,
		Size:              pageSize(len(items)),
		StartInSearchMode: len(items) > 10,
		Searcher:          Searcher(items),
	}

	i, _, err := s.Run()
	return i, quit(err)
}

func pageSize(n int) int {
	if n > 15 {
		return 15
	}
	return n
}

// Searcher matches the typed text against items case-insensitively.
func Searcher(items []string) func(input string, index int) bool {
	return func(input string, index int) bool {
		return containsFold(items[index], input)
	}
}

func quit(err error) error {
	if err == promptui.ErrInterrupt || err == promptui.ErrAbort || err == promptui.ErrEOF {
		return ErrUserQuit
	}
	return err
}
