package authstate

import (
	"os"

	"github.com/viant/authstate/authstore"
	"github.com/viant/authstate/config"
	"github.com/viant/authstate/i18n"
	"github.com/viant/authstate/logging"
	"github.com/viant/authstate/provider/gotrue"
	"github.com/viant/authstate/session/store"
)

// NewSource creates GoTrue session source configured by cfg
func NewSource(cfg *config.Config, options ...gotrue.Option) *gotrue.Client {
	var sessionStore store.Store
	if cfg.SessionURL != "" {
		sessionStore = store.NewFileStore(cfg.SessionURL)
	} else {
		sessionStore = store.NewMemoryStore()
	}
	opts := []gotrue.Option{
		gotrue.WithStore(sessionStore),
		gotrue.WithLogger(newLogger(cfg)),
	}
	if cfg.Timeout > 0 {
		opts = append(opts, gotrue.WithTimeout(cfg.Timeout))
	}
	return gotrue.New(cfg.ProviderURL, cfg.APIKey, append(opts, options...)...)
}

// New validates cfg and creates an auth store backed by a GoTrue source; call Init on the result.
func New(cfg *config.Config, options ...authstore.Option) (*authstore.Store, *gotrue.Client, error) {
	if err := cfg.Validate(); err != nil {
		return nil, nil, err
	}
	source := NewSource(cfg)
	return authstore.New(source, append(StoreOptions(cfg), options...)...), source, nil
}

// StoreOptions converts cfg to auth store options
func StoreOptions(cfg *config.Config) []authstore.Option {
	ret := []authstore.Option{
		authstore.WithLogger(newLogger(cfg)),
		authstore.WithLanguage(i18n.Parse(cfg.Language).Tag()),
		authstore.WithRedirectOrigin(cfg.RedirectOrigin),
	}
	if cfg.Retry.MaxAttempts > 0 {
		ret = append(ret, authstore.WithMaxAttempts(cfg.Retry.MaxAttempts))
	}
	if cfg.Retry.BaseDelay > 0 {
		ret = append(ret, authstore.WithBaseDelay(cfg.Retry.BaseDelay))
	}
	return ret
}

func newLogger(cfg *config.Config) logging.Logger {
	return logging.New(os.Stderr, "AUTHSTATE", cfg.Debug)
}
