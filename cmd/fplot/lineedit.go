// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (c) 2023-2026 Nicholas R. Perez

package main

import (
	"fmt"
	"io"
	"unicode/utf8"
)

// readLineRaw reads a line from a terminal in raw mode. Up and Down walk
// through history (most recent first). It returns the line and whether
// EOF was encountered.
func readLineRaw(in io.Reader, out io.Writer, history []string) (string, bool) {
	var line []rune
	cursor := 0      // Position in line
	recall := -1     // Index into history, -1 while editing a fresh line
	var draft []rune // Fresh line saved while browsing history
	buf := make([]byte, 1)

	readByte := func() (byte, bool) {
		n, err := in.Read(buf)
		if err != nil || n == 0 {
			return 0, false
		}
		return buf[0], true
	}

	// Clear from cursor to end of line, print the rest, move back
	redrawFromCursor := func() {
		fmt.Fprint(out, "\x1b[K")
		fmt.Fprint(out, string(line[cursor:]))
		if cursor < len(line) {
			fmt.Fprintf(out, "\x1b[%dD", len(line)-cursor)
		}
	}

	replace := func(with []rune) {
		if cursor > 0 {
			fmt.Fprintf(out, "\x1b[%dD", cursor)
		}
		line = append(line[:0:0], with...)
		cursor = 0
		redrawFromCursor()
		if len(line) > 0 {
			fmt.Fprintf(out, "\x1b[%dC", len(line))
		}
		cursor = len(line)
	}

	insert := func(r rune) {
		line = append(line, 0)
		copy(line[cursor+1:], line[cursor:])
		line[cursor] = r
		cursor++
		fmt.Fprint(out, string(r))
		if cursor < len(line) {
			redrawFromCursor()
		}
	}

	for {
		b, ok := readByte()
		if !ok {
			return string(line), true
		}

		switch b {
		case 0x04: // Ctrl+D
			if len(line) == 0 {
				return "", true
			}
			if cursor < len(line) {
				line = append(line[:cursor], line[cursor+1:]...)
				redrawFromCursor()
			}

		case 0x03: // Ctrl+C
			fmt.Fprint(out, "^C\r\n")
			return "", false

		case 0x0d, 0x0a: // Enter
			fmt.Fprint(out, "\r\n")
			return string(line), false

		case 0x7f, 0x08: // Backspace
			if cursor > 0 {
				cursor--
				line = append(line[:cursor], line[cursor+1:]...)
				fmt.Fprint(out, "\b")
				redrawFromCursor()
			}

		case 0x1b: // ESC [ sequence
			if next, ok := readByte(); !ok || next != '[' {
				continue
			}
			key, ok := readByte()
			if !ok {
				continue
			}
			switch key {
			case 'A': // Up
				if recall+1 < len(history) {
					if recall == -1 {
						draft = append([]rune(nil), line...)
					}
					recall++
					replace([]rune(history[recall]))
				}
			case 'B': // Down
				if recall > 0 {
					recall--
					replace([]rune(history[recall]))
				} else if recall == 0 {
					recall = -1
					replace(draft)
				}
			case 'C': // Right
				if cursor < len(line) {
					cursor++
					fmt.Fprint(out, "\x1b[C")
				}
			case 'D': // Left
				if cursor > 0 {
					cursor--
					fmt.Fprint(out, "\x1b[D")
				}
			case '3': // Delete: ESC [ 3 ~
				if tilde, ok := readByte(); ok && tilde == '~' && cursor < len(line) {
					line = append(line[:cursor], line[cursor+1:]...)
					redrawFromCursor()
				}
			}

		case 0x01: // Ctrl+A
			if cursor > 0 {
				fmt.Fprintf(out, "\x1b[%dD", cursor)
				cursor = 0
			}

		case 0x05: // Ctrl+E
			if cursor < len(line) {
				fmt.Fprintf(out, "\x1b[%dC", len(line)-cursor)
				cursor = len(line)
			}

		case 0x0b: // Ctrl+K
			if cursor < len(line) {
				line = line[:cursor]
				fmt.Fprint(out, "\x1b[K")
			}

		case 0x15: // Ctrl+U
			if cursor > 0 {
				fmt.Fprintf(out, "\x1b[%dD", cursor)
				line = line[cursor:]
				cursor = 0
				redrawFromCursor()
			}

		default:
			if b >= 0x20 && b < 0x7f {
				insert(rune(b))
			} else if b >= 0x80 {
				// UTF-8 multi-byte sequence: typographic operators such as × or −
				seq := []byte{b}
				for !utf8.FullRune(seq) && len(seq) < utf8.UTFMax {
					c, ok := readByte()
					if !ok {
						break
					}
					seq = append(seq, c)
				}
				r, _ := utf8.DecodeRune(seq)
				insert(r)
			}
		}
	}
}
