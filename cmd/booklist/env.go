package main

import (
	"context"
	"io"
	"os"

	"github.com/joho/godotenv"

	booklist "github.com/alnah/go-booklist"
	"github.com/alnah/go-booklist/internal/server"
)

// Environment holds injectable dependencies for testability.
// Includes I/O, process environment, catalog access, and the preview server.
type Environment struct {
	Stdout io.Writer
	Stderr io.Writer

	Getenv     func(string) string
	Environ    func() []string
	LoadDotEnv func() error // nil skips .env loading

	ReadCatalog func(ctx context.Context, path string) (*booklist.Catalog, error)
	Serve       func(ctx context.Context, srv *server.Server, addr string) error
}

// DefaultEnv returns the production environment.
func DefaultEnv() *Environment {
	return &Environment{
		Stdout:      os.Stdout,
		Stderr:      os.Stderr,
		Getenv:      os.Getenv,
		Environ:     os.Environ,
		LoadDotEnv:  func() error { return godotenv.Load() },
		ReadCatalog: booklist.ReadCatalog,
		Serve: func(ctx context.Context, srv *server.Server, addr string) error {
			return srv.ListenAndServe(ctx, addr)
		},
	}
}
