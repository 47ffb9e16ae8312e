package notifier

import (
	"bufio"
	"io"
	"strconv"
	"strings"
)

// PositiveLines extracts the finding lines with margin > 0 from a run
// report. A finding line ends in "= <margin>%"; anything that doesn't
// parse that way is report prose and is skipped.
func PositiveLines(r io.Reader) ([]string, error) {
	var out []string
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if !strings.Contains(line, "%") {
			continue
		}
		idx := strings.LastIndex(line, "=")
		if idx < 0 {
			continue
		}
		tail := strings.TrimSpace(line[idx+1:])
		tail = strings.TrimSuffix(tail, "%")
		margin, err := strconv.ParseFloat(tail, 64)
		if err != nil {
			continue
		}
		if margin > 0 {
			out = append(out, line)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
