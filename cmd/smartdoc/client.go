package main

import (
	"encoding/json"
	"fmt"
	"os"

	"smartdoc/internal/api"
	"smartdoc/internal/config"
	"smartdoc/internal/convert"
	"smartdoc/internal/model"
	"smartdoc/internal/session"
	"smartdoc/internal/transport"
)

// newClient wires config, credential store, transport and the typed API
// client together. Every command goes through here.
func newClient() (*api.Client, session.Store, error) {
	cfg := config.Load()
	store, err := session.NewFileStore(cfg.CredentialsPath)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open credential store: %w", err)
	}
	t := transport.New(cfg.API, store)
	return api.New(t, store), store, nil
}

func printJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	return enc.Encode(v)
}

// serverMessage pulls the human-readable message out of a loose map payload.
func serverMessage(resp model.Response[map[string]any], fallback string) string {
	if resp.Data == nil {
		return fallback
	}
	return convert.SafeGet(any(*resp.Data), "message", fallback)
}

// respond prints the payload of a successful response as indented JSON, or
// turns a failed one into a command error.
func respond[T any](resp model.Response[T]) error {
	var err error
	convert.HandleResponse(resp,
		func(data T) { err = printJSON(data) },
		func(msg string) { err = fmt.Errorf("%s", msg) },
	)
	return err
}
