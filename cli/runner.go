package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/jessevdk/go-flags"
	"github.com/viant/authstate"
	"github.com/viant/authstate/authstore"
	"github.com/viant/authstate/config"
	"github.com/viant/authstate/provider/gotrue"
)

// watchInterval is how often watch re-reads the session so expired tokens get refreshed
var watchInterval = time.Minute

// Run parses args and executes the command, writing results to stdout
func Run(ctx context.Context, args []string) error {
	return RunWithWriter(ctx, args, os.Stdout)
}

// RunWithWriter parses args and executes the command, writing results to w
func RunWithWriter(ctx context.Context, args []string, w io.Writer) error {
	options := &Options{}
	if _, err := flags.ParseArgs(options, args); err != nil {
		return err
	}
	if err := options.Validate(); err != nil {
		return err
	}
	cfg, err := config.Load(ctx, options.ConfigURL)
	if err != nil {
		return err
	}
	options.Apply(cfg)
	store, source, err := authstate.New(cfg)
	if err != nil {
		return err
	}
	defer store.Close()
	if err = store.Init(ctx); err != nil {
		return err
	}
	service := &Service{store: store, source: source, writer: w}
	return service.Execute(ctx, options)
}

// Service executes authctl commands
type Service struct {
	store  *authstore.Store
	source *gotrue.Client
	writer io.Writer
}

// Execute runs options command
func (s *Service) Execute(ctx context.Context, options *Options) error {
	switch options.Command() {
	case CommandWhoami:
		return s.print(s.store.Snapshot())
	case CommandLogin:
		if err := s.store.Login(ctx, options.Email, options.Password); err != nil {
			return err
		}
		return s.print(s.store.Snapshot())
	case CommandOAuth:
		response, err := s.store.LoginWithProvider(ctx, options.Provider)
		if err != nil {
			return err
		}
		_, err = fmt.Fprintf(s.writer, "open %v\nthen run: authctl exchange --code <code>\n", response.URL)
		return err
	case CommandExchange:
		if err := s.source.ExchangeCodeForSession(ctx, options.Code); err != nil {
			return err
		}
		return s.print(s.store.Snapshot())
	case CommandRegister:
		if err := s.store.Register(ctx, options.Email, options.Password, options.Name); err != nil {
			return err
		}
		_, err := fmt.Fprintf(s.writer, "verification code sent to %v\n", options.Email)
		return err
	case CommandVerify:
		if err := s.store.VerifyOtp(ctx, options.Email, options.Code); err != nil {
			return err
		}
		return s.print(s.store.Snapshot())
	case CommandLogout:
		if err := s.store.Logout(ctx); err != nil {
			return err
		}
		return s.print(s.store.Snapshot())
	case CommandWatch:
		return s.watch(ctx)
	}
	return fmt.Errorf("unsupported command: %v", options.Args.Command)
}

func (s *Service) watch(ctx context.Context) error {
	unsubscribe := s.store.State().Listen(func(state authstore.State) {
		_ = s.print(state)
	})
	defer unsubscribe()
	ticker := time.NewTicker(watchInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			if _, err := s.source.GetSession(ctx); err != nil {
				return err
			}
		}
	}
}

func (s *Service) print(value any) error {
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(s.writer, string(data))
	return err
}
