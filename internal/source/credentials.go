package source

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/tartampluch/go-reminder/internal/config"
	"github.com/zalando/go-keyring"
)

// Password returns the keyring password stored for user. A missing entry
// yields an empty password so public collections keep working.
func Password(user string) (string, error) {
	if user == "" {
		return "", nil
	}
	pass, err := keyring.Get(config.KeyringService, user)
	if errors.Is(err, keyring.ErrNotFound) {
		slog.Debug(config.MsgPassFail,
			config.LogKeyComponent, config.CompKeyring,
			config.LogKeyUser, user)
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("%s: %w", config.ErrCredentials, err)
	}
	return pass, nil
}

// SetPassword stores the password of user in the keyring.
func SetPassword(user, pass string) error {
	if user == "" {
		return errors.New(config.ErrUserRequired)
	}
	if err := keyring.Set(config.KeyringService, user, pass); err != nil {
		return fmt.Errorf("%s: %w", config.ErrCredentials, err)
	}
	slog.Info(config.MsgPassSaved,
		config.LogKeyComponent, config.CompKeyring,
		config.LogKeyUser, user)
	return nil
}
