// pkg/dictionary/format.go
package dictionary

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/NivBraz/dictionary-service/internal/models"
)

// Parse reads the flat dictionary format, one `word,meaning1,meaning2,...`
// per line. Blank lines, lines with fewer than two fields and lines with no
// non-empty meaning are skipped. Words are canonicalized.
func Parse(r io.Reader) ([]models.Entry, error) {
	var entries []models.Entry
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 64*1024), 1024*1024)

	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		fields := strings.Split(line, ",")
		if len(fields) < 2 {
			continue
		}

		word := Canonical(fields[0])
		meanings := cleanMeanings(fields[1:])
		if word == "" || len(meanings) == 0 {
			continue
		}
		entries = append(entries, models.Entry{Word: word, Meanings: meanings})
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error reading dictionary: %w", err)
	}
	return entries, nil
}

// Format writes entries in the format Parse reads.
func Format(w io.Writer, entries []models.Entry) error {
	bw := bufio.NewWriter(w)
	for _, e := range entries {
		bw.WriteString(e.Word)
		for _, m := range e.Meanings {
			bw.WriteByte(',')
			bw.WriteString(m)
		}
		bw.WriteByte('\n')
	}
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("error writing dictionary: %w", err)
	}
	return nil
}
