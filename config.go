package passeri

import (
	"context"
	"fmt"

	"github.com/caarlos0/env/v11"
	"github.com/viant/afs"
	"gopkg.in/yaml.v3"
)

// LoadClientOptions reads client options from a YAML document at URL (any
// location afs can download), then applies PASSERI_* environment overrides.
// An empty URL loads from the environment only.
func LoadClientOptions(ctx context.Context, URL string) (*ClientOptions, error) {
	ret := &ClientOptions{}
	if err := load(ctx, URL, ret); err != nil {
		return nil, err
	}
	ret.Init()
	return ret, nil
}

// LoadServerOptions reads backend server options the same way as LoadClientOptions.
func LoadServerOptions(ctx context.Context, URL string) (*ServerOptions, error) {
	ret := &ServerOptions{Transport: &ServerTransport{}}
	if err := load(ctx, URL, ret); err != nil {
		return nil, err
	}
	return ret, nil
}

func load(ctx context.Context, URL string, target interface{}) error {
	if URL != "" {
		fs := afs.New()
		data, err := fs.DownloadWithURL(ctx, URL)
		if err != nil {
			return fmt.Errorf("failed to download config %v: %w", URL, err)
		}
		if err = yaml.Unmarshal(data, target); err != nil {
			return fmt.Errorf("failed to decode config %v: %w", URL, err)
		}
	}
	if err := env.Parse(target); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}
