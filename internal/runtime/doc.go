// Package runtime launches the composed container invocation on the host.
//
// The container runtime itself is an external collaborator: asmdock never
// talks to a daemon API. It discovers the docker binary, starts it as a
// single child process with the workspace as working directory, and waits
// synchronously. User interruption and the child's own exit status are not
// failure modes; they simply hand control to the cleanup path.
package runtime
