package cli

import (
	"context"
	"fmt"
)

// Root restores the saved session and runs the command loop on stdin until
// the user exits or input ends.
func (a *App) Root(ctx context.Context) {
	fmt.Fprintln(a.out, "Welcome to LoveLetters CLI (type 'help' for commands)")

	a.restore(ctx)

	runREPL(ctx, a, a.getStatus, a.reader)
}
