package dictionary

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/schollz/progressbar/v3"

	"github.com/NivBraz/dictionary-service/internal/models"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name     string
		content  string
		expected []models.Entry
	}{
		{
			name:     "Simple Lines",
			content:  "cat,feline,small animal\ndog,canine",
			expected: []models.Entry{{Word: "cat", Meanings: []string{"feline", "small animal"}}, {Word: "dog", Meanings: []string{"canine"}}},
		},
		{
			name:     "Blank and Short Lines",
			content:  "\n  \nlonely\ncat,feline\n",
			expected: []models.Entry{{Word: "cat", Meanings: []string{"feline"}}},
		},
		{
			name:     "Canonical Word and Trimmed Meanings",
			content:  "  CAT , feline ,, pet ,feline",
			expected: []models.Entry{{Word: "cat", Meanings: []string{"feline", "pet"}}},
		},
		{
			name:     "No Usable Meaning",
			content:  "cat,,  ,",
			expected: nil,
		},
		{
			name:     "Empty Content",
			content:  "",
			expected: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Parse(strings.NewReader(tt.content))
			if err != nil {
				t.Fatalf("Parse() error = %v", err)
			}
			if diff := cmp.Diff(tt.expected, got, cmpopts.EquateEmpty()); diff != "" {
				t.Errorf("Parse() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestFormat(t *testing.T) {
	var buf bytes.Buffer
	entries := []models.Entry{
		{Word: "cat", Meanings: []string{"feline", "pet"}},
		{Word: "dog", Meanings: []string{"canine"}},
	}
	if err := Format(&buf, entries); err != nil {
		t.Fatalf("Format() error = %v", err)
	}
	want := "cat,feline,pet\ndog,canine\n"
	if buf.String() != want {
		t.Errorf("Format() = %q, want %q", buf.String(), want)
	}
}

func TestSaveAndReload(t *testing.T) {
	path := filepath.Join(t.TempDir(), "dictionary.csv")

	d := New()
	d.AddWord("cat", []string{"feline", "small animal"})
	d.AddWord("Dog", []string{"canine"})
	d.AddMeaning("cat", "pet")
	d.UpdateMeaning("dog", "canine", "hound")

	sink := NewFileSink(path, d)
	if err := sink.Save(); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	reloaded, err := LoadFile(path, nil)
	if err != nil {
		t.Fatalf("LoadFile() error = %v", err)
	}

	sortMeanings := cmpopts.SortSlices(func(a, b string) bool { return a < b })
	if diff := cmp.Diff(d.Snapshot(), reloaded.Snapshot(), sortMeanings); diff != "" {
		t.Errorf("round trip mismatch (-saved +reloaded):\n%s", diff)
	}
}

func TestSaveReplacesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "dictionary.csv")
	if err := os.WriteFile(path, []byte("old,entry\n"), 0644); err != nil {
		t.Fatalf("Failed to create dictionary file: %v", err)
	}

	d := New()
	d.AddWord("new", []string{"entry"})
	if err := NewFileSink(path, d).Save(); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile() error = %v", err)
	}
	if string(content) != "new,entry\n" {
		t.Errorf("file content = %q, want %q", content, "new,entry\n")
	}

	leftovers, _ := filepath.Glob(path + ".tmp-*")
	if len(leftovers) != 0 {
		t.Errorf("temp files left behind: %v", leftovers)
	}
}

func TestSaveFailure(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing-dir", "dictionary.csv")
	if err := NewFileSink(path, New()).Save(); err == nil {
		t.Error("Save() into a missing directory succeeded, want error")
	}
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "dictionary.csv")
	content := "cat,feline\ndog,canine\ncat,pet\n"
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to create dictionary file: %v", err)
	}

	var out bytes.Buffer
	bar := progressbar.NewOptions(-1, progressbar.OptionSetWriter(&out))
	d, err := LoadFile(path, bar)
	if err != nil {
		t.Fatalf("LoadFile() error = %v", err)
	}

	if d.Len() != 2 {
		t.Errorf("Len() = %d, want 2", d.Len())
	}
	got, _ := d.Query("cat")
	if diff := cmp.Diff([]string{"pet"}, got); diff != "" {
		t.Errorf("Query(cat) mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadFileMissing(t *testing.T) {
	if _, err := LoadFile(filepath.Join(t.TempDir(), "nope.csv"), nil); err == nil {
		t.Error("LoadFile() of missing file succeeded, want error")
	}
}
