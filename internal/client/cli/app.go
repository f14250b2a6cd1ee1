package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/dmitrijs2005/profilesync/internal/client/client"
	"github.com/dmitrijs2005/profilesync/internal/client/config"
	"github.com/dmitrijs2005/profilesync/internal/flagx"
)

var ErrUsage = errors.New("usage error")

type App struct {
	config *config.Config
	client client.Client
	out    io.Writer
}

func NewApp(c *config.Config) (*App, error) {
	apiClient, err := client.NewProfileClientService(c.ServerEndpointAddr, c.AccessToken)
	if err != nil {
		return nil, err
	}
	return &App{config: c, client: apiClient, out: os.Stdout}, nil
}

func (a *App) Close() error {
	return a.client.Close()
}

// Run dispatches args (without the program name) to a command.
func (a *App) Run(ctx context.Context, args []string) error {
	cmd, rest := flagx.SplitCommand(args)

	ctx, cancel := context.WithTimeout(ctx, a.config.RequestTimeout)
	defer cancel()

	switch cmd {
	case "ping":
		return a.ping(ctx)
	case "token":
		return a.token(rest)
	case "create":
		return a.create(ctx, rest)
	case "get":
		return a.get(ctx, rest)
	case "replace-image":
		return a.replaceImage(ctx, rest)
	case "", "help":
		a.usage()
		return nil
	default:
		a.usage()
		return fmt.Errorf("%w: unknown command %q", ErrUsage, cmd)
	}
}

func (a *App) usage() {
	fmt.Fprintln(a.out, "Available commands: ping, token, create, get, replace-image")
}

func (a *App) ping(ctx context.Context) error {
	if err := a.client.Ping(ctx); err != nil {
		return err
	}
	fmt.Fprintln(a.out, "OK")
	return nil
}

// printProgress reports upload progress on one line per value.
func (a *App) printProgress(v float64) {
	fmt.Fprintf(a.out, "uploading: %3.0f%%\n", v*100)
}
