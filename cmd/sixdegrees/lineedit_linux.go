//go:build linux

package main

import (
	"fmt"
	"io"
	"os"

	"golang.org/x/sys/unix"
)

// termReader puts the terminal into raw mode for the duration of one prompt
// and edits the answer with history across prompts.
type termReader struct {
	in      *os.File
	out     io.Writer
	history []string
}

func newLineReader() lineReader {
	if !stdinIsTTY() {
		return newPlainReader(os.Stdin, os.Stdout)
	}
	return &termReader{in: os.Stdin, out: os.Stdout}
}

func (t *termReader) ReadLine(prompt string) (string, error) {
	fd := int(t.in.Fd())
	oldState, err := unix.IoctlGetTermios(fd, unix.TCGETS)
	if err != nil {
		return newPlainReader(t.in, t.out).ReadLine(prompt)
	}
	raw := *oldState
	raw.Lflag &^= unix.ICANON | unix.ECHO
	raw.Cc[unix.VMIN] = 1
	raw.Cc[unix.VTIME] = 0
	if err := unix.IoctlSetTermios(fd, unix.TCSETS, &raw); err != nil {
		return "", err
	}
	defer func() {
		_ = unix.IoctlSetTermios(fd, unix.TCSETS, oldState)
	}()

	_, _ = fmt.Fprint(t.out, prompt)
	ed := newEditor(t.out, prompt, &t.history)
	var buf [16]byte
	for {
		n, err := t.in.Read(buf[:])
		if err != nil {
			return "", err
		}
		for _, b := range buf[:n] {
			done, err := ed.feed(b)
			if err != nil {
				return "", err
			}
			if done {
				return string(ed.line), nil
			}
		}
	}
}
