// meta/meta.go
package meta

// DEFAULT_SIZE is the board side length used when none is configured.
const DEFAULT_SIZE = 6

// DEFAULT_PLAYERS is the number of players used when none is configured.
const DEFAULT_PLAYERS = 2

// DEFAULT_DEPTH is the search budget exponent used when none is configured.
const DEFAULT_DEPTH = 3

// GO_ROUTINES defines the number of goroutines scoring top-level candidates.
const GO_ROUTINES = 8

// MAX_TURNS caps the number of turns a driven game may take before it is called a draw.
const MAX_TURNS = 300

// UPDATE_BUFFER is the capacity of a game master's update channel.
const UPDATE_BUFFER = 64
