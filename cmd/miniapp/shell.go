package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"
)

// terminalShell stands in for the Telegram WebApp chrome when running from
// a terminal: alerts print to stderr, confirmations read a y/n answer.
type terminalShell struct{}

func (terminalShell) Alert(message string) {
	fmt.Fprintf(os.Stderr, "\n!! %s\n", message)
}

func (terminalShell) Confirm(message string) bool {
	fmt.Fprintf(os.Stderr, "%s [y/N] ", message)
	reader := bufio.NewReader(os.Stdin)
	answer, err := reader.ReadString('\n')
	if err != nil {
		return false
	}
	answer = strings.ToLower(strings.TrimSpace(answer))
	return answer == "y" || answer == "yes"
}
