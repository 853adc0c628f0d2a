package models

// Entry is one word and its meanings, in insertion order.
type Entry struct {
	Word     string   `json:"word"`
	Meanings []string `json:"meanings"`
}

// Op identifies a client command.
type Op string

const (
	OpQuery  Op = "QUERY"
	OpAdd    Op = "ADD"
	OpRemove Op = "REMOVE"
	OpAppend Op = "APPEND"
	OpUpdate Op = "UPDATE"
)

// ExitCommand ends a session when sent as a whole frame (case-insensitive).
const ExitCommand = "EXIT"

// Command is a parsed request. Args excludes the command name.
type Command struct {
	Op   Op
	Args []string
}
