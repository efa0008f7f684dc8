// Provides platform-appropriate paths for the tool.
//
// The settings file follows XDG conventions on Linux and platform-native
// conventions on macOS and Windows, under the "asmdock" subdirectory.
// Workspaces live in the system temporary directory.
package paths
