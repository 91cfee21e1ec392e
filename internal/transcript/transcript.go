package transcript

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
)

// Log is an append-only record of a console session.
type Log struct {
	lines []string
}

// Append records one line of output or input.
func (l *Log) Append(line string) {
	l.lines = append(l.lines, line)
}

// Lines returns a copy of everything recorded so far.
func (l *Log) Lines() []string {
	return append([]string(nil), l.lines...)
}

func (l *Log) Len() int {
	return len(l.lines)
}

// Flush writes the whole log to path. The log itself is kept.
func (l *Log) Flush(path string) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create log file %s: %w", path, err)
	}
	w := bufio.NewWriter(file)
	for _, line := range l.lines {
		w.WriteString(line)
		w.WriteByte('\n')
	}
	if err := w.Flush(); err != nil {
		file.Close()
		return fmt.Errorf("failed to write log file %s: %w", path, err)
	}
	return file.Close()
}

// MaxLineSize is the longest input line a Console accepts.
const MaxLineSize = 1 << 20

// Console reads lines from in and writes lines to out, recording both
// directions in a Log.
type Console struct {
	in  *bufio.Scanner
	out io.Writer
	log *Log
}

// NewConsole returns a console recording into log.
func NewConsole(in io.Reader, out io.Writer, log *Log) *Console {
	scanner := bufio.NewScanner(in)
	scanner.Buffer(make([]byte, 0, 4096), MaxLineSize)
	return &Console{
		in:  scanner,
		out: out,
		log: log,
	}
}

// Println writes a line to the user.
func (c *Console) Println(line string) {
	c.log.Append(line)
	fmt.Fprintln(c.out, line)
}

// Printf formats and writes a line to the user.
func (c *Console) Printf(format string, args ...any) {
	c.Println(fmt.Sprintf(format, args...))
}

// ReadLine returns the next line typed by the user, without its line
// ending. io.EOF is returned once the input is exhausted.
func (c *Console) ReadLine() (string, error) {
	if !c.in.Scan() {
		if err := c.in.Err(); err != nil {
			return "", err
		}
		return "", io.EOF
	}
	line := strings.TrimSuffix(c.in.Text(), "\r")
	c.log.Append(line)
	return line, nil
}

// Prompt writes prompt and reads the reply.
func (c *Console) Prompt(prompt string) (string, error) {
	c.Println(prompt)
	return c.ReadLine()
}

// Log returns the log this console records into.
func (c *Console) Log() *Log {
	return c.log
}
