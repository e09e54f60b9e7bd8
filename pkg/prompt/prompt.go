package prompt

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
)

//go:generate go run go.uber.org/mock/mockgen@v0.5.2 -source=prompt.go -destination=mocks/prompt.gen.go -package=mocks

// ItemChoice is a selectable content item.
type ItemChoice struct {
	Path string
	Size int64
	// Detail is an optional label rendered after the path.
	Detail string
}

// Prompter interface provides user interaction functionality.
type Prompter interface {
	// PromptForProjectRoot prompts the user for the project root directory.
	PromptForProjectRoot(defaultProjectRoot string) (string, error)

	// PromptForConfirmation prompts the user for confirmation with a default value.
	PromptForConfirmation(message string, defaultYes bool) (bool, error)

	// PromptSelectItem prompts the user to select one item from a list.
	PromptSelectItem(title string, choices []ItemChoice) (ItemChoice, error)
}

type realPrompt struct {
	reader *bufio.Reader
	out    io.Writer
}

// NewPrompt creates a new Prompt instance reading from stdin.
func NewPrompt() Prompter {
	return &realPrompt{
		reader: bufio.NewReader(os.Stdin),
		out:    os.Stdout,
	}
}

// PromptForProjectRoot prompts the user for the project root directory.
func (p *realPrompt) PromptForProjectRoot(defaultProjectRoot string) (string, error) {
	if defaultProjectRoot == "" {
		defaultProjectRoot = "."
	}
	fmt.Fprintf(p.out, "Choose the project directory containing the content folder "+
		"(ex: ., ~/Projects/MyGame): [default: %s]: ", defaultProjectRoot)

	input, err := p.readLine()
	if err != nil {
		return "", err
	}

	if input == "" {
		return defaultProjectRoot, nil
	}
	return input, nil
}

// PromptForConfirmation prompts the user for confirmation with a default value.
func (p *realPrompt) PromptForConfirmation(message string, defaultYes bool) (bool, error) {
	defaultText := "[y/N]"
	if defaultYes {
		defaultText = "[Y/n]"
	}

	fmt.Fprintf(p.out, "%s %s: ", message, defaultText)

	input, err := p.readLine()
	if err != nil {
		return false, err
	}

	switch strings.ToLower(input) {
	case "":
		return defaultYes, nil
	case "y", "yes":
		return true, nil
	case "n", "no":
		return false, nil
	default:
		return false, ErrInvalidConfirmationInput
	}
}

// PromptSelectItem prompts the user to select one item from a list.
func (p *realPrompt) PromptSelectItem(title string, choices []ItemChoice) (ItemChoice, error) {
	if len(choices) == 0 {
		return ItemChoice{}, ErrNoChoices
	}
	return promptSelectItemBubbleTea(title, choices)
}

// readLine reads one trimmed line. EOF after some input is not an error.
func (p *realPrompt) readLine() (string, error) {
	input, err := p.reader.ReadString('\n')
	if err != nil && (err != io.EOF || input == "") {
		return "", fmt.Errorf("failed to read user input: %w", err)
	}
	return strings.TrimSpace(input), nil
}
