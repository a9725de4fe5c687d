package cli

import (
	"errors"
	"os"

	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/huh/spinner"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

// Confirm asks before a destructive action. --yes answers for the user;
// without a terminal there is nothing to ask, so the caller gets an
// error pointing at --yes.
func Confirm(cmd *cobra.Command, title string) (bool, error) {
	if f := cmd.Flag("yes"); f != nil && f.Value.String() == "true" {
		return true, nil
	}
	if !term.IsTerminal(int(os.Stdin.Fd())) {
		return false, errors.New("confirmation required: pass --yes to proceed without a prompt")
	}

	confirmed := false
	field := huh.NewConfirm().Title(title).Value(&confirmed)
	accessible := os.Getenv("ACCESSIBLE") != ""
	if err := huh.NewForm(huh.NewGroup(field)).WithAccessible(accessible).Run(); err != nil {
		if errors.Is(err, huh.ErrUserAborted) {
			return false, nil
		}
		return false, err
	}
	return confirmed, nil
}

// Spin runs action behind a spinner when stderr is a terminal, plainly
// otherwise. The action's error is returned either way.
func Spin(cmd *cobra.Command, title string, action func() error) error {
	if !term.IsTerminal(int(os.Stderr.Fd())) {
		return action()
	}

	accessible := os.Getenv("ACCESSIBLE") != ""
	var actionErr error
	if err := spinner.New().
		Title(title).
		Accessible(accessible).
		Output(cmd.ErrOrStderr()).
		Action(func() { actionErr = action() }).
		Run(); err != nil {
		return err
	}
	return actionErr
}
