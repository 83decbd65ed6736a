package driver

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// ChooseInputSource implements spec.md §6's interactive prompt: "[1] File"
// reads the configured file, "[2] Console" reads lines from stdin until a
// blank line and joins them with newlines, anything else is a fall-through
// exit (status 0, no error) with a hint printed to stdout.
func ChooseInputSource(stdin io.Reader, stdout io.Writer, configuredFile string) (source string, exit bool, err error) {
	fmt.Fprintln(stdout, "Choose input source: [1] File, [2] Console")

	reader := bufio.NewReader(stdin)
	choice, _ := reader.ReadString('\n')
	choice = strings.TrimSpace(choice)

	switch choice {
	case "1":
		text, readErr := ReadSource(configuredFile)
		if readErr != nil {
			return "", false, readErr
		}
		return text, false, nil

	case "2":
		var lines []string
		for {
			line, readErr := reader.ReadString('\n')
			trimmed := strings.TrimRight(line, "\r\n")
			if trimmed == "" {
				break
			}
			lines = append(lines, trimmed)
			if readErr != nil {
				break
			}
		}
		return strings.Join(lines, "\n"), false, nil

	default:
		fmt.Fprintln(stdout, "No input source selected, exiting.")
		return "", true, nil
	}
}
