package cli

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// stdinConfirmer asks y/n questions on the terminal. --yes flags set
// assumeYes for scripted use.
type stdinConfirmer struct {
	in        io.Reader
	out       io.Writer
	assumeYes bool
}

func (c *stdinConfirmer) Confirm(prompt string) bool {
	if c.assumeYes {
		return true
	}
	fmt.Fprintf(c.out, "%s [y/N] ", prompt)
	line, err := bufio.NewReader(c.in).ReadString('\n')
	if err != nil {
		return false
	}
	answer := strings.ToLower(strings.TrimSpace(line))
	return answer == "y" || answer == "yes"
}
