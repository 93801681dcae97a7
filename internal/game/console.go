package game

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"
)

// Console is the line-oriented terminal shared by human players and the
// interactive setup
type Console struct {
	in  *bufio.Reader
	out io.Writer
}

// NewConsole reads answers from in and writes prompts to out
func NewConsole(in io.Reader, out io.Writer) *Console {
	return &Console{in: bufio.NewReader(in), out: out}
}

// Out returns the writer prompts go to
func (c *Console) Out() io.Writer {
	return c.out
}

func (c *Console) Printf(format string, args ...interface{}) {
	fmt.Fprintf(c.out, format, args...)
}

func (c *Console) Println(args ...interface{}) {
	fmt.Fprintln(c.out, args...)
}

// Prompt writes prompt and returns the next input line without surrounding
// whitespace. It returns io.EOF once input is exhausted.
func (c *Console) Prompt(prompt string) (string, error) {
	fmt.Fprint(c.out, prompt)
	line, err := c.in.ReadString('\n')
	if err != nil && !(errors.Is(err, io.EOF) && line != "") {
		return "", err
	}
	return strings.TrimSpace(line), nil
}

// Choose asks question until the answer is option1 or option2, or their
// lower-case first letters when those differ. It returns the chosen option.
func (c *Console) Choose(question, option1, option2 string) (string, error) {
	short1 := strings.ToLower(option1[:1])
	short2 := strings.ToLower(option2[:1])
	accepted := map[string]string{option1: option1, option2: option2}
	hint := fmt.Sprintf("Please answer '%s' or '%s'", option1, option2)
	if short1 != short2 {
		accepted[short1] = option1
		accepted[short2] = option2
		hint += fmt.Sprintf(" (%s/%s)", short1, short2)
	}

	prompt := fmt.Sprintf("%s (%s/%s): ", question, option1, option2)
	for {
		answer, err := c.Prompt(prompt)
		if err != nil {
			return "", err
		}
		if choice, ok := accepted[answer]; ok {
			return choice, nil
		}
		c.Println(hint)
	}
}

// Confirm asks a y/n question; anything but y or Y is no
func (c *Console) Confirm(question string) (bool, error) {
	answer, err := c.Prompt(question + " (y/n)? ")
	if err != nil {
		return false, err
	}
	return answer == "y" || answer == "Y", nil
}
