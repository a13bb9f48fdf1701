package main

import (
	"context"
	"errors"
	"io"
	"os"

	"github.com/charmbracelet/fang"

	"github.com/reshmayadav40/Dry-Run-Tool/internal/reason"
	"github.com/reshmayadav40/Dry-Run-Tool/internal/version"
)

func main() {
	ctx := context.Background()
	cmd := newRootCmd()

	// Remote failures print their classified user-facing line instead of
	// the raw wrapped error chain.
	errorHandler := func(w io.Writer, styles fang.Styles, err error) {
		var remote *reason.RemoteError
		if errors.As(err, &remote) {
			fang.DefaultErrorHandler(w, styles, errors.New(reason.UserMessage(err)))
			return
		}
		fang.DefaultErrorHandler(w, styles, err)
	}

	if err := fang.Execute(ctx, cmd,
		fang.WithVersion(version.Version),
		fang.WithErrorHandler(errorHandler),
	); err != nil {
		os.Exit(1)
	}
}
