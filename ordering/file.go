package ordering

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"
)

// Parse decodes an ordering from its text form: tile indices separated
// by whitespace or commas, with everything from a '#' to the end of
// the line ignored.
func Parse(s string) ([]int, error) {
	var o []int

	for _, line := range strings.Split(s, "\n") {
		if i := strings.IndexByte(line, '#'); i >= 0 {
			line = line[:i]
		}

		for _, field := range strings.FieldsFunc(line, func(r rune) bool {
			return r == ',' || r == ' ' || r == '\t' || r == '\r'
		}) {
			t, err := strconv.Atoi(field)
			if err != nil {
				return nil, fmt.Errorf("ordering: invalid tile index %q", field)
			}
			o = append(o, t)
		}
	}

	return o, nil
}

// Format encodes an ordering in the text form accepted by Parse, one
// index per line.
func Format(o []int) string {
	var b strings.Builder
	for _, t := range o {
		fmt.Fprintln(&b, t)
	}
	return b.String()
}

// ParseFile reads an ordering from an order file.
func ParseFile(path string) ([]int, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var b strings.Builder
	s := bufio.NewScanner(f)
	for s.Scan() {
		b.WriteString(s.Text())
		b.WriteByte('\n')
	}
	if err := s.Err(); err != nil {
		return nil, err
	}

	return Parse(b.String())
}

// WriteFile writes an ordering to an order file.
func WriteFile(path string, o []int) error {
	return os.WriteFile(path, []byte(Format(o)), 0644)
}
