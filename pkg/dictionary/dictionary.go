package dictionary

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/NivBraz/dictionary-service/internal/models"
)

// ErrInvalidArgument is returned when a word or meaning is empty.
var ErrInvalidArgument = errors.New("invalid argument")

// meaningSet is the per-word critical section. Operations on one word
// serialize on mu; different words never share a lock.
type meaningSet struct {
	mu      sync.Mutex
	removed bool
	order   []string
	index   map[string]struct{}
}

func newMeaningSet(meanings []string) *meaningSet {
	ms := &meaningSet{index: make(map[string]struct{}, len(meanings))}
	for _, m := range meanings {
		ms.add(m)
	}
	return ms
}

// add assumes ms.mu is held (or ms is not yet shared).
func (ms *meaningSet) add(meaning string) bool {
	if _, exists := ms.index[meaning]; exists {
		return false
	}
	ms.index[meaning] = struct{}{}
	ms.order = append(ms.order, meaning)
	return true
}

func (ms *meaningSet) snapshot() []string {
	out := make([]string, len(ms.order))
	copy(out, ms.order)
	return out
}

// Dictionary maps canonical words to sets of meanings. It is safe for
// concurrent use.
type Dictionary struct {
	words sync.Map // string -> *meaningSet
}

func New() *Dictionary {
	return &Dictionary{}
}

// Canonical returns the stored form of a word.
func Canonical(word string) string {
	return strings.ToLower(strings.TrimSpace(word))
}

// cleanMeanings trims, drops empty strings and removes duplicates while
// keeping first-seen order.
func cleanMeanings(meanings []string) []string {
	seen := make(map[string]struct{}, len(meanings))
	out := make([]string, 0, len(meanings))
	for _, m := range meanings {
		m = strings.TrimSpace(m)
		if m == "" {
			continue
		}
		if _, ok := seen[m]; ok {
			continue
		}
		seen[m] = struct{}{}
		out = append(out, m)
	}
	return out
}

// Query returns a copy of the meanings of word in insertion order.
func (d *Dictionary) Query(word string) ([]string, bool) {
	v, ok := d.words.Load(Canonical(word))
	if !ok {
		return nil, false
	}
	ms := v.(*meaningSet)
	ms.mu.Lock()
	defer ms.mu.Unlock()
	if ms.removed {
		return nil, false
	}
	return ms.snapshot(), true
}

// AddWord inserts word with meanings. It returns false without mutating
// anything if the word already exists. Of several concurrent AddWord calls
// for the same word at most one returns true.
func (d *Dictionary) AddWord(word string, meanings []string) (bool, error) {
	key := Canonical(word)
	cleaned := cleanMeanings(meanings)
	if key == "" || len(cleaned) == 0 {
		return false, fmt.Errorf("%w: word and meanings must not be empty", ErrInvalidArgument)
	}

	_, loaded := d.words.LoadOrStore(key, newMeaningSet(cleaned))
	return !loaded, nil
}

// RemoveWord deletes word and all of its meanings.
func (d *Dictionary) RemoveWord(word string) bool {
	v, ok := d.words.LoadAndDelete(Canonical(word))
	if !ok {
		return false
	}
	// A writer that loaded the set before the delete must not report a
	// mutation that happens after it.
	ms := v.(*meaningSet)
	ms.mu.Lock()
	ms.removed = true
	ms.mu.Unlock()
	return true
}

// AddMeaning appends meaning to an existing word. It returns false if the
// word is absent or already has the meaning.
func (d *Dictionary) AddMeaning(word, meaning string) (bool, error) {
	meaning = strings.TrimSpace(meaning)
	if meaning == "" {
		return false, fmt.Errorf("%w: meaning must not be empty", ErrInvalidArgument)
	}

	v, ok := d.words.Load(Canonical(word))
	if !ok {
		return false, nil
	}
	ms := v.(*meaningSet)
	ms.mu.Lock()
	defer ms.mu.Unlock()
	if ms.removed {
		return false, nil
	}
	return ms.add(meaning), nil
}

// UpdateMeaning replaces oldMeaning with newMeaning. It returns false if the
// word or oldMeaning is absent. If newMeaning is already present the old one
// is simply dropped, so the set never holds duplicates.
func (d *Dictionary) UpdateMeaning(word, oldMeaning, newMeaning string) (bool, error) {
	oldMeaning = strings.TrimSpace(oldMeaning)
	newMeaning = strings.TrimSpace(newMeaning)
	if oldMeaning == "" || newMeaning == "" {
		return false, fmt.Errorf("%w: old and new meanings must not be empty", ErrInvalidArgument)
	}

	v, ok := d.words.Load(Canonical(word))
	if !ok {
		return false, nil
	}
	ms := v.(*meaningSet)
	ms.mu.Lock()
	defer ms.mu.Unlock()
	if ms.removed {
		return false, nil
	}
	if _, exists := ms.index[oldMeaning]; !exists {
		return false, nil
	}
	if oldMeaning == newMeaning {
		return true, nil
	}

	_, newExists := ms.index[newMeaning]
	for i, m := range ms.order {
		if m != oldMeaning {
			continue
		}
		if newExists {
			ms.order = append(ms.order[:i], ms.order[i+1:]...)
		} else {
			ms.order[i] = newMeaning
		}
		break
	}
	delete(ms.index, oldMeaning)
	ms.index[newMeaning] = struct{}{}
	return true, nil
}

// Put sets the meanings of word, replacing any existing entry. It is used
// to hydrate the dictionary from a bulk load and ignores entries with no
// usable meanings.
func (d *Dictionary) Put(word string, meanings []string) {
	key := Canonical(word)
	cleaned := cleanMeanings(meanings)
	if key == "" || len(cleaned) == 0 {
		return
	}
	if old, loaded := d.words.Swap(key, newMeaningSet(cleaned)); loaded {
		ms := old.(*meaningSet)
		ms.mu.Lock()
		ms.removed = true
		ms.mu.Unlock()
	}
}

// Snapshot copies every entry, sorted by word. Each entry is read under its
// own lock, so no entry is ever observed mid-update.
func (d *Dictionary) Snapshot() []models.Entry {
	var entries []models.Entry
	d.words.Range(func(key, value any) bool {
		ms := value.(*meaningSet)
		ms.mu.Lock()
		if !ms.removed {
			entries = append(entries, models.Entry{
				Word:     key.(string),
				Meanings: ms.snapshot(),
			})
		}
		ms.mu.Unlock()
		return true
	})

	sort.Slice(entries, func(i, j int) bool {
		return entries[i].Word < entries[j].Word
	})
	return entries
}

// Len reports the number of words.
func (d *Dictionary) Len() int {
	n := 0
	d.words.Range(func(_, _ any) bool {
		n++
		return true
	})
	return n
}
