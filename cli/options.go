package cli

import (
	"fmt"
	"strings"

	"github.com/viant/authstate/config"
)

const (
	CommandWhoami   = "whoami"
	CommandLogin    = "login"
	CommandOAuth    = "oauth"
	CommandExchange = "exchange"
	CommandRegister = "register"
	CommandVerify   = "verify"
	CommandLogout   = "logout"
	CommandWatch    = "watch"
)

var commands = []string{CommandWhoami, CommandLogin, CommandOAuth, CommandExchange, CommandRegister, CommandVerify, CommandLogout, CommandWatch}

// Options represents authctl flags
type Options struct {
	ConfigURL   string `short:"c" long:"config" description:"config file URL (yaml)"`
	ProviderURL string `short:"u" long:"url" description:"identity provider URL"`
	APIKey      string `short:"k" long:"key" description:"identity provider api key"`
	SessionURL  string `short:"s" long:"session" description:"session file URL"`
	Language    string `short:"l" long:"lang" description:"message language, e.g. en, zh"`
	Email       string `short:"e" long:"email" description:"account email"`
	Password    string `short:"p" long:"password" description:"account password"`
	Name        string `short:"n" long:"name" description:"display name used on registration"`
	Code        string `long:"code" description:"one-time or authorization code"`
	Provider    string `long:"provider" default:"google" description:"federated provider"`
	Debug       bool   `short:"d" long:"debug" description:"debug logging"`
	Args        struct {
		Command string `positional-arg-name:"command" description:"whoami|login|oauth|exchange|register|verify|logout|watch"`
	} `positional-args:"yes" required:"yes"`
}

// Command returns normalized command
func (o *Options) Command() string {
	return strings.ToLower(strings.TrimSpace(o.Args.Command))
}

// Validate checks command and its required flags
func (o *Options) Validate() error {
	command := o.Command()
	known := false
	for _, candidate := range commands {
		if candidate == command {
			known = true
		}
	}
	if !known {
		return fmt.Errorf("unknown command %q, expected one of %v", o.Args.Command, strings.Join(commands, ", "))
	}
	switch command {
	case CommandLogin:
		if o.Email == "" || o.Password == "" {
			return fmt.Errorf("%v requires --email and --password", command)
		}
	case CommandRegister:
		if o.Email == "" {
			return fmt.Errorf("%v requires --email", command)
		}
	case CommandVerify:
		if o.Email == "" || o.Code == "" {
			return fmt.Errorf("%v requires --email and --code", command)
		}
	case CommandExchange:
		if o.Code == "" {
			return fmt.Errorf("%v requires --code", command)
		}
	}
	return nil
}

// Apply overrides cfg with flags that were set
func (o *Options) Apply(cfg *config.Config) {
	if o.ProviderURL != "" {
		cfg.ProviderURL = o.ProviderURL
	}
	if o.APIKey != "" {
		cfg.APIKey = o.APIKey
	}
	if o.SessionURL != "" {
		cfg.SessionURL = o.SessionURL
	}
	if o.Language != "" {
		cfg.Language = o.Language
	}
	if o.Debug {
		cfg.Debug = true
	}
}
