// The build recipe consumed by make inside the container. A default recipe
// is bundled with the binary; a user-supplied makefile replaces it wholesale.
package recipe

import (
	_ "embed"
)

// Name the recipe takes inside the workspace, regardless of its origin.
const Filename = "Makefile"

//go:embed Makefile
var defaultRecipe []byte

// Returns the bundled default recipe.
//
// The recipe assembles the main source with nasm and links it with either
// gcc or ld, selected by the "mode" variable.
func Default() []byte {
	return defaultRecipe
}
