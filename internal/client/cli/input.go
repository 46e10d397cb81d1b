package cli

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/dmitrijs2005/gophslides/internal/client/deck"
	"golang.org/x/term"
)

// readPassword is a test seam for term.ReadPassword.
var readPassword = term.ReadPassword

// GetSecret prints a prompt to w and reads the edit secret from the terminal
// without echo.
func GetSecret(w io.Writer) (string, error) {
	if _, err := fmt.Fprint(w, "Edit secret: "); err != nil {
		return "", err
	}
	secret, err := readPassword(int(os.Stdin.Fd()))
	fmt.Fprintln(w)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(secret)), nil
}

// withPromptedSecret upgrades a view link to an edit link by asking for the
// edit secret, when --ask-secret is set. Edit links, library ids and
// malformed links are returned unchanged for the service to handle.
func (a *App) withPromptedSecret(ref string) (string, error) {
	if !a.askSecret {
		return ref, nil
	}
	link, err := deck.ParseLink(ref)
	if err != nil || link.CanEdit() {
		return ref, nil
	}

	secret, err := GetSecret(a.errOut)
	if err != nil {
		return "", err
	}
	if secret == "" {
		return ref, nil
	}
	link.EditSecret = secret
	return link.String(), nil
}

// readDeck returns the content of path, or stdin for "-".
func (a *App) readDeck(path string) (string, error) {
	if path == "-" {
		b, err := io.ReadAll(a.in)
		return string(b), err
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read deck: %w", err)
	}
	return string(b), nil
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}
