// Package checker runs the external CF compliance checker against input
// files, handing it the refreshed local table paths.
package checker

import (
	"context"
	"errors"
	"io"
	"os"
	"os/exec"
)

// DefaultBinary is the checker executable searched for on PATH when no
// explicit binary is configured.
const DefaultBinary = "cfchecks"

// Invoker builds and runs one checker invocation per input file. The checker
// process inherits the invoker's writers for stdout and stderr; its output is
// passed through, never interpreted. The exit status is the only signal acted
// on.
type Invoker struct {
	// Binary is the checker executable name or path.
	Binary string
	// StandardNames, AreaTypes and Udunits are the local table paths handed
	// to the checker.
	StandardNames string
	AreaTypes     string
	Udunits       string
	// Version optionally pins the CF conventions version to check against.
	Version string

	Stdout io.Writer
	Stderr io.Writer
}

// NewInvoker creates an Invoker writing checker output to the process streams.
func NewInvoker(binary, standardNames, areaTypes, udunits, version string) *Invoker {
	if binary == "" {
		binary = DefaultBinary
	}
	return &Invoker{
		Binary:        binary,
		StandardNames: standardNames,
		AreaTypes:     areaTypes,
		Udunits:       udunits,
		Version:       version,
		Stdout:        os.Stdout,
		Stderr:        os.Stderr,
	}
}

// Args returns the argument list for checking inputFile, excluding the
// binary itself.
func (iv *Invoker) Args(inputFile string) []string {
	args := []string{
		"-s", iv.StandardNames,
		"-a", iv.AreaTypes,
		"-u", iv.Udunits,
	}
	if iv.Version != "" {
		args = append(args, "-v", iv.Version)
	}
	return append(args, inputFile)
}

// Run checks a single input file. A non-zero exit status is returned as an
// *InvocationError carrying the exit code; it is a per-file result, not a
// process-level fault, so callers record it and move on to the next file.
// No timeout is applied: a hung checker blocks the run.
func (iv *Invoker) Run(ctx context.Context, inputFile string) error {
	if _, err := exec.LookPath(iv.Binary); err != nil {
		return &NotFoundError{Binary: iv.Binary, Cause: err}
	}

	cmd := exec.CommandContext(ctx, iv.Binary, iv.Args(inputFile)...)
	cmd.Stdout = iv.Stdout
	cmd.Stderr = iv.Stderr

	err := cmd.Run()
	if err == nil {
		return nil
	}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return &InvocationError{
			InputFile: inputFile,
			ExitCode:  exitErr.ExitCode(),
			Cause:     err,
		}
	}

	return &InvocationError{InputFile: inputFile, ExitCode: -1, Cause: err}
}
