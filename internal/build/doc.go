// Package build orchestrates one assemble-and-run cycle.
//
// A cycle prepares an isolated workspace with the input sources and the
// resolved recipe, composes the container invocation, runs it, and cleans
// up. The four stages execute strictly in order; the only concurrency is
// the externally launched child process, which is awaited synchronously.
//
// Example usage:
//
//	err := build.Run(ctx, build.Options{
//	    Config: cfg,
//	    Runner: runtime.Runner{},
//	    Output: cwd,
//	})
package build
