package ragnote

import (
	"errors"
	"fmt"
	"io/fs"

	"github.com/mwiater/ragnote/internal/docindex"
	"github.com/mwiater/ragnote/internal/envcheck"
	"github.com/mwiater/ragnote/internal/logging"
)

// platform is the connection and data location read from the environment.
type platform struct {
	BaseURL    string
	Token      string
	Namespace  string
	Collection string
	Index      string
}

// loadPlatform applies the dotenv file without replacing variables that are
// already set, then reads the platform settings.
func loadPlatform() (platform, error) {
	env := envcheck.OSEnvironment{}
	if envFile != "" {
		if _, err := envcheck.LoadFile(env, envFile, false); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return platform{}, err
		}
	}

	p := platform{
		BaseURL:    envcheck.Getenv(env, envcheck.VarAPIBaseURL),
		Token:      envcheck.Getenv(env, envcheck.VarAPIToken),
		Namespace:  envcheck.Getenv(env, envcheck.VarDataNamespace),
		Collection: envcheck.Getenv(env, envcheck.VarDataCollection),
		Index:      envcheck.Getenv(env, envcheck.VarIndex),
	}
	if p.BaseURL == "" || p.Token == "" {
		return p, fmt.Errorf("%s and %s must be set (run 'ragnote validate')", envcheck.VarAPIBaseURL, envcheck.VarAPIToken)
	}
	return p, nil
}

// indexClient connects to the document index's search API.
func (p platform) indexClient() *docindex.Client {
	client := docindex.New(docindex.SearchURL(p.BaseURL), p.Token, config().RequestTimeout(), config().Debug)
	logging.LogEvent("[CLI] document index at %s", client.BaseURL())
	return client
}

// requireLocation fails when the namespace or collection is unknown.
func (p platform) requireLocation() error {
	if p.Namespace == "" || p.Collection == "" {
		return fmt.Errorf("%s and %s must be set", envcheck.VarDataNamespace, envcheck.VarDataCollection)
	}
	return nil
}
