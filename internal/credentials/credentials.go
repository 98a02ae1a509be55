package credentials

import (
	"errors"
	"fmt"
	"strings"

	input "github.com/tcnksm/go-input"
)

var ErrNoCredentials = errors.New("no scraperwiki credentials available")

// Credentials is a scraperwiki login.
type Credentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func (c Credentials) complete() bool {
	return c.Username != "" && c.Password != ""
}

// Prompter asks the operator for a single value.
type Prompter interface {
	Ask(query string, masked bool) (string, error)
}

// TerminalPrompter prompts on the controlling terminal.
type TerminalPrompter struct {
	ui *input.UI
}

func NewTerminalPrompter() TerminalPrompter {
	return TerminalPrompter{ui: input.DefaultUI()}
}

func (p TerminalPrompter) Ask(query string, masked bool) (string, error) {
	return p.ui.Ask(query, &input.Options{
		Required:  true,
		Loop:      true,
		HideOrder: true,
		Mask:      masked,
	})
}

// Resolve fills in whatever `configured` is missing by asking prompter. It is
// meant to be called once per invocation, the result is passed along
// explicitly from there. prompter may be nil when prompting is not possible.
func Resolve(configured Credentials, prompter Prompter) (Credentials, error) {
	if configured.complete() {
		return configured, nil
	}
	if prompter == nil {
		return Credentials{}, ErrNoCredentials
	}

	creds := configured
	if creds.Username == "" {
		username, err := prompter.Ask("scraperwiki username:", false)
		if err != nil {
			return Credentials{}, fmt.Errorf("prompt username: %w", err)
		}
		creds.Username = strings.TrimSpace(username)
	}
	if creds.Password == "" {
		password, err := prompter.Ask("scraperwiki password:", true)
		if err != nil {
			return Credentials{}, fmt.Errorf("prompt password: %w", err)
		}
		creds.Password = password
	}

	if !creds.complete() {
		return Credentials{}, ErrNoCredentials
	}
	return creds, nil
}
