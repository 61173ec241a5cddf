package cli

import (
	"bufio"
	"log"
	"os"

	"github.com/dkurbatov/goblog/internal/client/client"
	"github.com/dkurbatov/goblog/internal/client/config"
	"github.com/dkurbatov/goblog/internal/client/tokenstore"
)

type App struct {
	config   *config.Config
	client   client.Client
	tokens   *tokenstore.FileStore
	userName string
	reader   *bufio.Reader
}

func NewApp(c *config.Config) (*App, error) {

	apiClient, err := client.New(client.Transport(c.Transport), c.ServerEndpointAddr, c.RequestTimeout)
	if err != nil {
		return nil, err
	}

	tokens := tokenstore.NewFileStore(c.TokenFile)

	// Restore the previous session if a token was persisted.
	token, err := tokens.Load()
	if err != nil {
		log.Printf("error reading token file: %s", err.Error())
	} else if token != "" {
		apiClient.SetToken(token)
	}

	return &App{
		config: c,
		client: apiClient,
		tokens: tokens,
		reader: bufio.NewReader(os.Stdin),
	}, nil
}

func (a *App) isLoggedIn() bool {
	return a.client.Token() != ""
}

// saveSession persists the current token, or clears the file when the
// session is gone.
func (a *App) saveSession() {
	token := a.client.Token()
	var err error
	if token == "" {
		err = a.tokens.Clear()
	} else {
		err = a.tokens.Save(token)
	}
	if err != nil {
		log.Printf("error saving session: %s", err.Error())
	}
}
