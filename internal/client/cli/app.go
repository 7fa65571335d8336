// Package cli implements the interactive command-line client for authgate.
package cli

import (
	"bufio"
	"context"
	"fmt"
	"os"

	"github.com/vpopov/authgate/internal/client/api"
	"github.com/vpopov/authgate/internal/client/config"
)

// apiClient is the subset of the HTTP client the commands use. The real
// api.Client satisfies it; tests can provide a fake.
type apiClient interface {
	Register(ctx context.Context, email, username, password, firstName, lastName string) (*api.AuthResponse, error)
	Login(ctx context.Context, username, password string) (*api.AuthResponse, error)
	Profile(ctx context.Context, accessToken string) (*api.User, error)
}

type App struct {
	config      *config.Config
	api         apiClient
	accessToken string
	userName    string
	reader      *bufio.Reader
}

func NewApp(c *config.Config) *App {
	return &App{
		config: c,
		api:    api.NewClient(c.ServerURL),
		reader: bufio.NewReader(os.Stdin),
	}
}

func (a *App) isLoggedIn() bool {
	return a.accessToken != ""
}

// showLogin renders the prompt status segment: the username when a session
// is active, a placeholder otherwise.
func (a *App) showLogin() string {
	if a.isLoggedIn() {
		return a.userName
	}
	return "(not logged in)"
}

func (a *App) Run(ctx context.Context) {
	fmt.Println("authgate CLI (type 'help' for commands)")
	scanner := bufio.NewScanner(os.Stdin)
	runREPL(ctx, a, a.showLogin, scanner)
}
