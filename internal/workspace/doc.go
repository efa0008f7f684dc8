// Package workspace manages the per-invocation temporary directory.
//
// A workspace owns copies of every input source file and the resolved build
// recipe for its entire lifetime. It is mounted into the build container,
// and destroyed when the run completes regardless of success, failure, or
// interruption. The requested artifact, if any, is exported before removal.
//
// Example usage:
//
//	ws, err := workspace.Create()
//	if err != nil {
//	    return err
//	}
//	defer ws.Remove()
//
//	if err := ws.AddSources([]string{"hello.asm"}); err != nil {
//	    return err
//	}
//	if err := ws.AddRecipe(""); err != nil {
//	    return err
//	}
package workspace
