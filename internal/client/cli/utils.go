package cli

import (
	"errors"
	"io"
	"time"

	"github.com/briandowns/spinner"
	"github.com/dmitrijs2005/gophslides/internal/client/client"
	"github.com/dmitrijs2005/gophslides/internal/client/services"
	"github.com/dmitrijs2005/gophslides/internal/common"
)

// startSpinner shows progress on terminals only. The returned func stops it.
func startSpinner(w io.Writer, message string) func() {
	if !isTerminal(w) {
		return func() {}
	}

	s := spinner.New(spinner.CharSets[14], 100*time.Millisecond, spinner.WithWriter(w))
	s.Suffix = " " + message
	_ = s.Color("cyan")
	s.Start()

	return s.Stop
}

// describeError names the stage that failed in words a user can act on.
func describeError(err error) string {
	switch {
	case errors.Is(err, common.ErrMissingKey):
		return "the link has no decryption key (the part after #)"
	case errors.Is(err, common.ErrInvalidKeyFormat):
		return "cannot decrypt, bad link: the key is malformed"
	case errors.Is(err, common.ErrDecryptionFailed):
		return "cannot decrypt: the key may be invalid or the data corrupted"
	case errors.Is(err, common.ErrInvalidLink):
		return "not a presentation link: " + err.Error()
	case errors.Is(err, common.ErrorNotFound):
		return "presentation not found"
	case errors.Is(err, common.ErrorUnauthorized):
		return "wrong edit secret"
	case errors.Is(err, services.ErrEditLinkRequired):
		return "this needs an edit link (or --ask-secret)"
	case errors.Is(err, common.ErrExportDisabled):
		return "export is not enabled on this server"
	case errors.Is(err, client.ErrUnavailable):
		return "server unavailable"
	default:
		return err.Error()
	}
}
