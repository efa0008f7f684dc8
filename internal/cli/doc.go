// Parses flags and configures logging for the asmdock CLI.
//
// The tool takes a positional list of assembly source files plus the
// following flags:
//
//	-a, --arg        Argument passed to the built program (repeatable).
//	-s, --save       Copy the built artifact back to the current directory.
//	    --sudo       Run the container runtime with sudo.
//	    --ld         Link with ld directly instead of the compiler driver.
//	-m, --makefile   Custom makefile copied into the workspace.
//	-c, --make-cmd   Custom build command, wrapped in double quotes.
//	    --image      Override the toolchain container image.
//	    --docker     Override the docker binary path.
//	-q, --quiet      Suppress informational output.
//	-v, --verbose    Enable verbose output.
//	-d, --debug      Enable debug output.
//
// Flags override both build-time defaults set via linker flags and the
// user-level settings file. After parsing, the global logger is
// reconfigured to reflect the final level and verbosity before validation
// starts.
package cli
