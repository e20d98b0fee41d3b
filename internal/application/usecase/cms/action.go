package cms

import "github.com/khoahotran/portfolio-cms/pkg/apperror"

// Action is the button pressed on an editor form.
type Action string

const (
	ActionEdit       Action = "edit"
	ActionSave       Action = "save"
	ActionCancel     Action = "cancel"
	ActionAddItem    Action = "add-item"
	ActionRemoveItem Action = "remove-item"
)

func ParseAction(s string) (Action, error) {
	switch a := Action(s); a {
	case ActionEdit, ActionSave, ActionCancel, ActionAddItem, ActionRemoveItem:
		return a, nil
	}
	return "", apperror.NewInvalidInput("unknown action "+s, nil)
}
