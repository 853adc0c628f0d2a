// pkg/dictionary/loader.go
package dictionary

import (
	"fmt"
	"os"

	"github.com/schollz/progressbar/v3"
)

// LoadFile builds a Dictionary from the file at path. A later line for the
// same word replaces the earlier one. bar, if non-nil, advances once per
// loaded entry.
func LoadFile(path string, bar *progressbar.ProgressBar) (*Dictionary, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("error opening dictionary file: %w", err)
	}
	defer f.Close()

	entries, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("error parsing %s: %w", path, err)
	}

	d := New()
	for _, e := range entries {
		d.Put(e.Word, e.Meanings)
		if bar != nil {
			bar.Add(1)
		}
	}
	return d, nil
}
