package manifest

import (
	"fmt"

	"github.com/padbridge/padbridge-go/pkg/input"
)

// Set is an action set read back from a manifest.
type Set struct {
	Name    string
	Title   string
	Actions []Action
}

// Action is one action of a Set.
type Action struct {
	Name string
	Kind input.ControlKind
}

// IsDigital reports whether the action is read as digital data.
func (a Action) IsDigital() bool {
	return a.Kind == input.KindButton
}

// Sets extracts the action sets of a parsed manifest. Within a set, actions
// are ordered by group (StickPadGyro, AnalogTrigger, Button) and then by
// declaration.
func Sets(tree *Node) ([]Set, error) {
	iga, ok := tree.Child(KeyRoot)
	if !ok {
		return nil, ErrMissingRoot
	}
	sets, ok := iga.Child(KeyActions)
	if !ok {
		return nil, fmt.Errorf("%w: no %q block", ErrInvalidManifest, KeyActions)
	}

	var out []Set
	for _, e := range sets.Entries() {
		if e.IsLeaf() {
			return nil, fmt.Errorf("%w: set %q is not a block", ErrInvalidManifest, e.Key)
		}
		s := Set{Name: e.Key}
		s.Title, _ = e.Child.String(KeyTitle)

		for _, group := range []string{GroupStickPadGyro, GroupAnalogTrigger, GroupButton} {
			g, ok := e.Child.Child(group)
			if !ok {
				continue
			}
			for _, a := range g.Entries() {
				kind, err := kindOf(group, a)
				if err != nil {
					return nil, fmt.Errorf("set %q: %w", e.Key, err)
				}
				s.Actions = append(s.Actions, Action{Name: a.Key, Kind: kind})
			}
		}
		out = append(out, s)
	}
	return out, nil
}

func kindOf(group string, e Entry) (input.ControlKind, error) {
	switch group {
	case GroupButton:
		return input.KindButton, nil
	case GroupAnalogTrigger:
		if e.IsLeaf() {
			return 0, fmt.Errorf("%w: analog action %q is not a block", ErrInvalidManifest, e.Key)
		}
		return input.KindAxis, nil
	default:
		if e.IsLeaf() {
			return 0, fmt.Errorf("%w: stick action %q is not a block", ErrInvalidManifest, e.Key)
		}
		if mode, _ := e.Child.String(KeyInputMode); mode == ModeAbsoluteMouse {
			return input.KindVector2, nil
		}
		return input.KindStick, nil
	}
}
