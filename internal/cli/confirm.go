package cli

import (
	"errors"

	"github.com/charmbracelet/huh"
)

var errConfirmationRequired = errors.New("confirmation required: rerun with --yes")

// confirmAction returns true when the caller passed --yes or the user
// accepts the prompt. Non-interactive sessions without --yes are refused.
func confirmAction(app *App, yes bool, title, description string) (bool, error) {
	if yes {
		return true, nil
	}
	if !app.interactive() {
		return false, errConfirmationRequired
	}
	confirm := app.Confirm
	if confirm == nil {
		confirm = huhConfirm
	}
	return confirm(title, description)
}

func huhConfirm(title, description string) (bool, error) {
	var ok bool
	err := huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title(title).
				Description(description).
				Affirmative("Yes").
				Negative("Cancel").
				Value(&ok),
		),
	).Run()
	if errors.Is(err, huh.ErrUserAborted) {
		return false, nil
	}
	return ok, err
}
