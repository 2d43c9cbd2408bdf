// Package input reads command lines for batch runs from stdin ("-") or a
// file (path or @path).
package input

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
)

// Line is one command read from a source, with its 1-based line number.
type Line struct {
	Number int
	Text   string
}

// ReadLines reads the commands in source. "-" reads stdin; otherwise source
// names a file, optionally prefixed with @.
func ReadLines(source string, stdin io.Reader) ([]Line, error) {
	if source == "-" {
		return ReadLinesFromReader(stdin)
	}
	path := strings.TrimPrefix(source, "@")
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	defer file.Close()

	lines, err := ReadLinesFromReader(file)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return lines, nil
}

// ReadLinesFromReader reads non-empty lines from a reader. Lines starting
// with # are comments.
func ReadLinesFromReader(r io.Reader) ([]Line, error) {
	var lines []Line
	scanner := bufio.NewScanner(r)
	n := 0
	for scanner.Scan() {
		n++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		lines = append(lines, Line{Number: n, Text: line})
	}
	return lines, scanner.Err()
}
