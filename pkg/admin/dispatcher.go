package admin

import (
	"context"
	"fmt"
	"io"

	"github.com/quokkafs/quadm/internal/logger"
	"github.com/quokkafs/quadm/pkg/meta"
)

// Executor is the remote-execution collaborator: it owns connection setup,
// request serialization and response retrieval. The dispatcher treats it as
// opaque.
type Executor interface {
	// Execute performs one blocking round-trip, filling in the outcome
	// half of op. A non-nil error reports a transport failure; server-side
	// failures surface as a negative op.Status.
	Execute(ctx context.Context, loc meta.ServerLocation, op *meta.MonOp) error

	// ErrorCodeToStr decodes a negative status code into human-readable
	// text.
	ErrorCodeToStr(code int) string
}

// RunResult accumulates the overall outcome of a command sequence.
type RunResult struct {
	anyFailure bool
}

// Fail marks the run as failed. Failures never short-circuit the run; they
// only decide the final exit code.
func (r *RunResult) Fail() {
	r.anyFailure = true
}

// ExitCode converts the accumulated outcome into a process exit code.
func (r *RunResult) ExitCode() int {
	if r.anyFailure {
		return 1
	}
	return 0
}

// Dispatcher resolves command tokens against the registry and executes them
// strictly sequentially over a shared session.
type Dispatcher struct {
	registry *Registry
	exec     Executor
	out      io.Writer // verbatim content and OK lines
	errOut   io.Writer // unknown-command messages
}

// NewDispatcher builds a dispatcher writing results to out and per-token
// resolution errors to errOut.
func NewDispatcher(registry *Registry, exec Executor, out, errOut io.Writer) *Dispatcher {
	return &Dispatcher{
		registry: registry,
		exec:     exec,
		out:      out,
		errOut:   errOut,
	}
}

// Execute runs every token in order, one remote round-trip at a time, and
// returns the final process exit code: 0 iff every token resolved and every
// remote call succeeded.
func (d *Dispatcher) Execute(ctx context.Context, loc meta.ServerLocation, tokens []string) int {
	var result RunResult
	for _, token := range tokens {
		spec, ok := d.resolve(token)
		if !ok {
			fmt.Fprintf(d.errOut, "no such command: %s\n", token)
			result.Fail()
			continue
		}
		op, err := d.execute(ctx, loc, spec)
		if err != nil {
			result.Fail()
			continue
		}
		if err := d.present(spec, op); err != nil {
			logger.Error("failed to write command output",
				logger.Command(spec.DisplayName), logger.Err(err))
			result.Fail()
		}
	}
	return result.ExitCode()
}

// resolve maps a token to its command spec, case-insensitively.
func (d *Dispatcher) resolve(token string) (CommandSpec, bool) {
	return d.registry.Lookup(token)
}

// execute performs the remote call for a resolved command. Both transport
// errors and negative server statuses are reported here and returned as
// errors; the caller only isolates the failure and moves on.
func (d *Dispatcher) execute(ctx context.Context, loc meta.ServerLocation, spec CommandSpec) (*meta.MonOp, error) {
	op := meta.NewMonOp(spec.Op, spec.DisplayName)
	if err := d.exec.Execute(ctx, loc, op); err != nil {
		logger.Error("remote call failed",
			logger.Command(spec.DisplayName), logger.Err(err))
		return nil, err
	}
	if op.Failed() {
		logger.Error(fmt.Sprintf("%s error: %s",
			op.StatusMsg, d.exec.ErrorCodeToStr(op.Status)),
			logger.Command(spec.DisplayName), logger.Status(op.Status))
		return nil, fmt.Errorf("%s: status %d", spec.DisplayName, op.Status)
	}
	return op, nil
}

// present writes the command outcome: verbatim content bytes when the
// server returned a payload, the OK line otherwise.
func (d *Dispatcher) present(spec CommandSpec, op *meta.MonOp) error {
	if op.ContentLength <= 0 {
		_, err := fmt.Fprintf(d.out, "%s OK\n", spec.DisplayName)
		return err
	}
	_, err := d.out.Write(op.Content[:op.ContentLength])
	return err
}
