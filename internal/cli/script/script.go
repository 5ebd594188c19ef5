// Package script runs a sequence of board commands from a YAML file against
// one in-process board, so a whole session can be driven from a shell.
package script

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/thenoetrevino/dealflow/internal/board"
	"gopkg.in/yaml.v3"
)

// Step actions
const (
	ActionSwitchUser = "switch_user"
	ActionLogout     = "logout"
	ActionReorder    = "reorder"
	ActionMove       = "move"
	ActionDuplicate  = "duplicate"
	ActionNotes      = "notes"
	ActionDelete     = "delete"
	ActionShow       = "show"
)

// ExpectUnknownUser is the expected outcome of a switch_user step naming a
// user the directory does not know
const ExpectUnknownUser = "unknown_user"

// Script is an ordered list of steps
type Script struct {
	Steps []Step `yaml:"steps"`
}

// Step holds exactly one action. Expect names the outcome the step must
// have (a mutation reason such as access_denied); empty expects success.
type Step struct {
	Name   string `yaml:"name,omitempty"`
	Expect string `yaml:"expect,omitempty"`

	SwitchUser string     `yaml:"switch_user,omitempty"`
	Logout     bool       `yaml:"logout,omitempty"`
	Reorder    *Reorder   `yaml:"reorder,omitempty"`
	Move       *Move      `yaml:"move,omitempty"`
	Duplicate  *Duplicate `yaml:"duplicate,omitempty"`
	Notes      *Notes     `yaml:"notes,omitempty"`
	Delete     *Delete    `yaml:"delete,omitempty"`
	Show       *Show      `yaml:"show,omitempty"`
}

// Reorder moves a company between positions within one pipeline
type Reorder struct {
	Pipeline   string `yaml:"pipeline"`
	FromColumn string `yaml:"from_column"`
	FromIndex  int    `yaml:"from_index"`
	ToColumn   string `yaml:"to_column"`
	ToIndex    int    `yaml:"to_index"`
}

// Move moves a company to another pipeline
type Move struct {
	Company string `yaml:"company"`
	From    string `yaml:"from"`
	To      string `yaml:"to"`
}

// Duplicate copies a company. As saves the new id for later steps, which
// refer to it as $name.
type Duplicate struct {
	Company string `yaml:"company"`
	From    string `yaml:"from"`
	To      string `yaml:"to"`
	Linked  bool   `yaml:"linked"`
	As      string `yaml:"as"`
}

// Notes replaces the notes of a company
type Notes struct {
	Company  string `yaml:"company"`
	Pipeline string `yaml:"pipeline"`
	Notes    string `yaml:"notes"`
}

// Delete removes a company from a pipeline
type Delete struct {
	Company  string `yaml:"company"`
	Pipeline string `yaml:"pipeline"`
}

// Show renders a pipeline board as the acting user
type Show struct {
	Pipeline string `yaml:"pipeline"`
}

// Action returns the name of the step's single action
func (s Step) Action() (string, error) {
	var actions []string
	if s.SwitchUser != "" {
		actions = append(actions, ActionSwitchUser)
	}
	if s.Logout {
		actions = append(actions, ActionLogout)
	}
	if s.Reorder != nil {
		actions = append(actions, ActionReorder)
	}
	if s.Move != nil {
		actions = append(actions, ActionMove)
	}
	if s.Duplicate != nil {
		actions = append(actions, ActionDuplicate)
	}
	if s.Notes != nil {
		actions = append(actions, ActionNotes)
	}
	if s.Delete != nil {
		actions = append(actions, ActionDelete)
	}
	if s.Show != nil {
		actions = append(actions, ActionShow)
	}

	switch len(actions) {
	case 1:
		return actions[0], nil
	case 0:
		return "", fmt.Errorf("%w: step has no action", ErrInvalidScript)
	default:
		return "", fmt.Errorf("%w: step has several actions %v", ErrInvalidScript, actions)
	}
}

var validExpectations = map[string]bool{
	"":                               true,
	ExpectUnknownUser:                true,
	string(board.ReasonApplied):      true,
	string(board.ReasonNoop):         true,
	string(board.ReasonAccessDenied): true,
	string(board.ReasonNotFound):     true,
	string(board.ReasonOutOfBounds):  true,
	string(board.ReasonNoColumns):    true,
	string(board.ReasonConflict):     true,
	string(board.ReasonInvariant):    true,
}

// Validate checks every step holds one action and a known expectation
func (s *Script) Validate() error {
	var errs []error
	for i, step := range s.Steps {
		if _, err := step.Action(); err != nil {
			errs = append(errs, fmt.Errorf("step %d: %w", i+1, err))
		}
		if !validExpectations[step.Expect] {
			errs = append(errs, fmt.Errorf("step %d: %w: unknown expect %q", i+1, ErrInvalidScript, step.Expect))
		}
	}
	return errors.Join(errs...)
}

// Parse reads a script. Unknown fields are rejected.
func Parse(r io.Reader) (*Script, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var s Script
	if err := dec.Decode(&s); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("%w: %w", ErrInvalidScript, err)
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return &s, nil
}

// LoadFile parses the script at path
func LoadFile(path string) (*Script, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer func() { _ = f.Close() }()
	return Parse(f)
}
