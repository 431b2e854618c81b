package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"
)

type lineReader interface {
	ReadLine(prompt string) (string, error)
}

// plainReader reads newline-terminated answers from a non-interactive
// stream such as a pipe or a test buffer.
type plainReader struct {
	r *bufio.Reader
	w io.Writer
}

func newPlainReader(r io.Reader, w io.Writer) *plainReader {
	return &plainReader{r: bufio.NewReader(r), w: w}
}

func (p *plainReader) ReadLine(prompt string) (string, error) {
	_, _ = fmt.Fprint(p.w, prompt)
	s, err := p.r.ReadString('\n')
	if err != nil {
		if !errors.Is(err, io.EOF) || s == "" {
			return "", err
		}
	}
	return trimTrailingNewline(s), nil
}

func trimTrailingNewline(s string) string {
	s = strings.TrimSuffix(s, "\n")
	return strings.TrimSuffix(s, "\r")
}

// editor is the terminal-independent half of the raw-mode line editor. It
// consumes one input byte at a time and redraws through w.
type editor struct {
	w       io.Writer
	prompt  string
	line    []byte
	cursor  int
	history *[]string

	histPos  int
	draft    string
	browsing bool

	esc    int
	escBuf strings.Builder
}

func newEditor(w io.Writer, prompt string, history *[]string) *editor {
	return &editor{w: w, prompt: prompt, history: history, histPos: len(*history)}
}

// feed applies one byte. It reports done once the line is submitted and
// returns io.EOF on Ctrl+C or on Ctrl+D at an empty line.
func (e *editor) feed(b byte) (done bool, err error) {
	if e.esc != 0 {
		e.feedEscape(b)
		return false, nil
	}

	switch b {
	case 27:
		e.esc = 1
	case '\r', '\n':
		_, _ = fmt.Fprint(e.w, "\r\n")
		if strings.TrimSpace(string(e.line)) != "" {
			*e.history = append(*e.history, string(e.line))
		}
		return true, nil
	case 3: // Ctrl+C
		_, _ = fmt.Fprint(e.w, "^C\r\n")
		return false, io.EOF
	case 4: // Ctrl+D
		if len(e.line) == 0 {
			_, _ = fmt.Fprint(e.w, "\r\n")
			return false, io.EOF
		}
		e.deleteAt(e.cursor)
	case 127, 8:
		if e.cursor > 0 {
			e.cursor--
			e.deleteAt(e.cursor)
		}
	case 1: // Ctrl+A
		e.moveTo(0)
	case 5: // Ctrl+E
		e.moveTo(len(e.line))
	case 21: // Ctrl+U
		e.line = append(e.line[:0], e.line[e.cursor:]...)
		e.cursor = 0
		e.redraw()
	case 23: // Ctrl+W
		e.deleteWordBack()
	default:
		if b >= 32 {
			e.line = append(e.line, 0)
			copy(e.line[e.cursor+1:], e.line[e.cursor:])
			e.line[e.cursor] = b
			e.cursor++
			e.redraw()
		}
	}
	return false, nil
}

func (e *editor) feedEscape(b byte) {
	if e.esc == 1 {
		e.esc = 0
		switch b {
		case '[', 'O':
			e.esc = 2
			e.escBuf.Reset()
		case 'b', 'B':
			e.moveTo(e.wordLeft())
		case 'f', 'F':
			e.moveTo(e.wordRight())
		case 127:
			e.deleteWordBack()
		}
		return
	}

	e.escBuf.WriteByte(b)
	if (b >= 'A' && b <= 'Z') || (b >= 'a' && b <= 'z') || b == '~' {
		e.esc = 0
		e.handleCSI(e.escBuf.String())
	}
}

func (e *editor) handleCSI(seq string) {
	switch seq {
	case "A":
		e.historyPrev()
	case "B":
		e.historyNext()
	case "C":
		e.moveTo(e.cursor + 1)
	case "D":
		e.moveTo(e.cursor - 1)
	case "H", "1~":
		e.moveTo(0)
	case "F", "4~":
		e.moveTo(len(e.line))
	case "3~":
		e.deleteAt(e.cursor)
	case "1;5C", "5C":
		e.moveTo(e.wordRight())
	case "1;5D", "5D":
		e.moveTo(e.wordLeft())
	}
}

func (e *editor) historyPrev() {
	h := *e.history
	if len(h) == 0 {
		return
	}
	if !e.browsing {
		e.draft = string(e.line)
		e.browsing = true
		e.histPos = len(h)
	}
	if e.histPos > 0 {
		e.histPos--
		e.setLine(h[e.histPos])
	}
}

func (e *editor) historyNext() {
	if !e.browsing {
		return
	}
	h := *e.history
	if e.histPos < len(h)-1 {
		e.histPos++
		e.setLine(h[e.histPos])
		return
	}
	e.histPos = len(h)
	e.browsing = false
	e.setLine(e.draft)
}

func (e *editor) setLine(s string) {
	e.line = append(e.line[:0], s...)
	e.cursor = len(e.line)
	e.redraw()
}

func (e *editor) moveTo(pos int) {
	pos = max(0, min(pos, len(e.line)))
	if pos == e.cursor {
		return
	}
	e.cursor = pos
	e.redraw()
}

func (e *editor) deleteAt(pos int) {
	if pos < 0 || pos >= len(e.line) {
		return
	}
	e.line = append(e.line[:pos], e.line[pos+1:]...)
	e.redraw()
}

func (e *editor) deleteWordBack() {
	start := e.wordLeft()
	if start == e.cursor {
		return
	}
	e.line = append(e.line[:start], e.line[e.cursor:]...)
	e.cursor = start
	e.redraw()
}

func (e *editor) wordLeft() int {
	i := e.cursor
	for i > 0 && isBlank(e.line[i-1]) {
		i--
	}
	for i > 0 && !isBlank(e.line[i-1]) {
		i--
	}
	return i
}

func (e *editor) wordRight() int {
	i := e.cursor
	for i < len(e.line) && isBlank(e.line[i]) {
		i++
	}
	for i < len(e.line) && !isBlank(e.line[i]) {
		i++
	}
	return i
}

func (e *editor) redraw() {
	_, _ = fmt.Fprintf(e.w, "\r%s%s\x1b[K", e.prompt, e.line)
	if e.cursor < len(e.line) {
		_, _ = fmt.Fprintf(e.w, "\r%s%s", e.prompt, e.line[:e.cursor])
	}
}

func isBlank(b byte) bool { return b == ' ' || b == '\t' }
