//go:build !linux

package main

import "os"

func newLineReader() lineReader {
	return newPlainReader(os.Stdin, os.Stdout)
}
