package manifest

import (
	"errors"
	"fmt"

	"github.com/padbridge/padbridge-go/pkg/actions"
	"github.com/padbridge/padbridge-go/pkg/input"
)

// Manifest keys.
const (
	KeyRoot         = "In Game Actions"
	KeyActions      = "actions"
	KeyLocalization = "localization"
	KeyEnglish      = "english"
	KeyTitle        = "title"
	KeyInputMode    = "input_mode"

	GroupStickPadGyro  = "StickPadGyro"
	GroupAnalogTrigger = "AnalogTrigger"
	GroupButton        = "Button"

	ModeJoystickMove  = "joystick_move"
	ModeAbsoluteMouse = "absolute_mouse"
)

// Conversion errors.
var (
	ErrEmptyAsset      = errors.New("asset has no maps")
	ErrUnnamedMap      = errors.New("action map has no name")
	ErrUnnamedAction   = errors.New("action has no name")
	ErrDuplicateName   = errors.New("duplicate name")
	ErrMissingRoot     = errors.New("manifest has no \"In Game Actions\" block")
	ErrInvalidManifest = errors.New("invalid manifest")
)

// Convert renders asset as manifest text. Every map becomes an action set
// and every action an entry in the group matching its control kind. Maps
// and actions keep their declaration order.
func Convert(asset *actions.Asset) (string, error) {
	tree, err := Build(asset)
	if err != nil {
		return "", err
	}
	return Format(tree), nil
}

// Build converts asset into a manifest tree.
func Build(asset *actions.Asset) (*Node, error) {
	maps := asset.Maps()
	if len(maps) == 0 {
		return nil, ErrEmptyAsset
	}

	root := NewNode()
	iga := root.Block(KeyRoot)
	sets := iga.Block(KeyActions)
	english := iga.Block(KeyLocalization).Block(KeyEnglish)

	for _, m := range maps {
		if m.Name() == "" {
			return nil, ErrUnnamedMap
		}
		if _, dup := sets.Get(m.Name()); dup {
			return nil, fmt.Errorf("%w: map %q", ErrDuplicateName, m.Name())
		}
		set := sets.Block(m.Name())
		set.Set(KeyTitle, "#"+setToken(m.Name()))
		english.Set(setToken(m.Name()), m.Name())

		for _, a := range m.Actions() {
			if a.Name == "" {
				return nil, fmt.Errorf("%w: map %q", ErrUnnamedAction, m.Name())
			}
			group := groupFor(a.ExpectedControl)
			if existing, ok := set.Child(group); ok {
				if _, dup := existing.Get(a.Name); dup {
					return nil, fmt.Errorf("%w: action %q in map %q", ErrDuplicateName, a.Name, m.Name())
				}
			}
			token := actionToken(m.Name(), a.Name)
			english.Set(token, a.Name)

			if group == GroupButton {
				set.Block(group).Set(a.Name, "#"+token)
				continue
			}
			entry := set.Block(group).Block(a.Name)
			entry.Set(KeyTitle, "#"+token)
			switch a.ExpectedControl {
			case input.KindStick:
				entry.Set(KeyInputMode, ModeJoystickMove)
			case input.KindVector2:
				entry.Set(KeyInputMode, ModeAbsoluteMouse)
			}
		}
	}
	return root, nil
}

func groupFor(kind input.ControlKind) string {
	switch kind {
	case input.KindStick, input.KindVector2:
		return GroupStickPadGyro
	case input.KindAxis:
		return GroupAnalogTrigger
	default:
		return GroupButton
	}
}

func setToken(set string) string {
	return "Set_" + set
}

func actionToken(set, action string) string {
	return "Action_" + set + "_" + action
}
