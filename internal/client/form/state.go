package form

import "fmt"

// State is the form mode. It is one of Closed, Creating or Editing; the set is
// sealed so an edit without a target id cannot be expressed.
type State interface {
	fmt.Stringer
	isState()
}

// Closed means no draft is in progress.
type Closed struct{}

// Creating holds a blank draft that will become a new project.
type Creating struct{}

// Editing holds a draft that will update the project TargetID.
type Editing struct {
	TargetID string
}

func (Closed) isState()   {}
func (Creating) isState() {}
func (Editing) isState()  {}

func (Closed) String() string   { return "closed" }
func (Creating) String() string { return "creating" }
func (e Editing) String() string {
	return "editing " + e.TargetID
}
