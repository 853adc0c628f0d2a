package protocol

import (
	"fmt"
	"log"
	"strings"

	"github.com/NivBraz/dictionary-service/internal/models"
)

// Store is the dictionary the interpreter operates on.
type Store interface {
	Query(word string) ([]string, bool)
	AddWord(word string, meanings []string) (bool, error)
	RemoveWord(word string) bool
	AddMeaning(word, meaning string) (bool, error)
	UpdateMeaning(word, oldMeaning, newMeaning string) (bool, error)
}

// Saver persists the store after a successful mutation.
type Saver interface {
	Save() error
}

// Interpreter turns request strings into store operations and response
// strings. Business errors never escape Handle; they become "Error: ..."
// responses.
type Interpreter struct {
	store Store
	saver Saver
}

func New(store Store, saver Saver) *Interpreter {
	return &Interpreter{store: store, saver: saver}
}

// Parse splits a `COMMAND:arg1:arg2` request. The command is upper-cased and
// trailing empty arguments are dropped, so "QUERY:" has no arguments.
func Parse(request string) models.Command {
	tokens := strings.Split(request, ":")
	for len(tokens) > 1 && tokens[len(tokens)-1] == "" {
		tokens = tokens[:len(tokens)-1]
	}
	return models.Command{
		Op:   models.Op(strings.ToUpper(strings.TrimSpace(tokens[0]))),
		Args: tokens[1:],
	}
}

// Handle executes one request and returns its response text.
func (in *Interpreter) Handle(request string) string {
	cmd := Parse(request)

	switch cmd.Op {
	case models.OpQuery:
		return in.query(cmd.Args)
	case models.OpAdd:
		return in.add(cmd.Args)
	case models.OpRemove:
		return in.remove(cmd.Args)
	case models.OpAppend:
		return in.appendMeaning(cmd.Args)
	case models.OpUpdate:
		return in.updateMeaning(cmd.Args)
	default:
		return "Error: Unknown command."
	}
}

func (in *Interpreter) query(args []string) string {
	if len(args) < 1 {
		return "Error: No word provided for query."
	}
	meanings, ok := in.store.Query(args[0])
	if !ok {
		return "Error: Word not found."
	}
	return "Meanings: " + FormatMeanings(meanings)
}

func (in *Interpreter) add(args []string) string {
	if len(args) < 2 {
		return "Error: Insufficient parameters for ADD."
	}
	added, err := in.store.AddWord(args[0], strings.Split(args[1], ";"))
	if err != nil {
		return "Error: " + err.Error()
	}
	if !added {
		return "Error: Word already exists."
	}
	return in.persisted("Word added")
}

func (in *Interpreter) remove(args []string) string {
	if len(args) < 1 {
		return "Error: No word provided for REMOVE."
	}
	if !in.store.RemoveWord(args[0]) {
		return "Error: Word not found."
	}
	return in.persisted("Word removed")
}

func (in *Interpreter) appendMeaning(args []string) string {
	if len(args) < 2 {
		return "Error: Insufficient parameters for APPEND."
	}
	appended, err := in.store.AddMeaning(args[0], args[1])
	if err != nil {
		return "Error: " + err.Error()
	}
	if !appended {
		return "Error: Word not found or meaning already exists."
	}
	return in.persisted("Meaning added")
}

func (in *Interpreter) updateMeaning(args []string) string {
	if len(args) < 3 {
		return "Error: Insufficient parameters for UPDATE."
	}
	updated, err := in.store.UpdateMeaning(args[0], args[1], args[2])
	if err != nil {
		return "Error: " + err.Error()
	}
	if !updated {
		return "Error: Word or old meaning not found."
	}
	return in.persisted("Meaning updated")
}

// persisted saves the store and builds the success text. A failed save
// leaves the mutation in place and only degrades the wording.
func (in *Interpreter) persisted(action string) string {
	if err := in.saver.Save(); err != nil {
		log.Printf("Error saving dictionary after %q: %v", action, err)
		return fmt.Sprintf("Success: %s, but error saving file: %v", action, err)
	}
	return fmt.Sprintf("Success: %s.", action)
}

// FormatMeanings renders meanings as "[a, b]".
func FormatMeanings(meanings []string) string {
	return "[" + strings.Join(meanings, ", ") + "]"
}
