// Package operatorcli reads single keystrokes from the controlling
// terminal without waiting for Enter, grounded on the source's crossterm
// raw-mode 'q'-to-quit listener.
package operatorcli

import (
	"bufio"
	"fmt"
	"os"

	"golang.org/x/term"
)

// Listen puts stdin into raw mode and blocks until 'q'/'Q' is read, then
// calls quit once. It returns without calling quit if stdin is not a
// terminal, if raw mode cannot be entered, or if a read fails. Once raw
// mode is entered, terminal state is restored before returning.
func Listen(quit func()) {
	fd := int(os.Stdin.Fd())

	if !term.IsTerminal(fd) {
		// Not an interactive terminal (e.g. piped input); nothing to read.
		return
	}

	oldState, err := term.MakeRaw(fd)
	if err != nil {
		fmt.Printf("operatorcli: failed to enter raw mode: %v\n", err)
		return
	}
	defer term.Restore(fd, oldState)

	fmt.Print("Press 'q' to quit\r\n")

	reader := bufio.NewReader(os.Stdin)
	for {
		b, err := reader.ReadByte()
		if err != nil {
			return
		}
		if b == 'q' || b == 'Q' {
			quit()
			return
		}
	}
}
