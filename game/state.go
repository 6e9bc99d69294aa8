package game

import (
	"encoding/binary"
	"fmt"
	"hash/fnv"

	"github.com/hashicorp/go-multierror"
)

type Phase int

const (
	InitialPlacementPhase Phase = iota
	MainPhase
	TerminalPhase
)

func (p Phase) String() string {
	switch p {
	case InitialPlacementPhase:
		return "initial_placement"
	case MainPhase:
		return "main"
	case TerminalPhase:
		return "terminal"
	default:
		return fmt.Sprintf("phase(%d)", int(p))
	}
}

// Config fixes the shape of a game instance.
type Config struct {
	Size    int
	Players int
	Rules   Rules
}

// Validate reports every structural problem at once so setup fails before the first move.
func (c Config) Validate() error {
	var result *multierror.Error
	if c.Size < 3 {
		result = multierror.Append(result, fmt.Errorf("board size %d must be at least 3", c.Size))
	}
	if c.Players < MinPlayers || c.Players > MaxPlayers {
		result = multierror.Append(result, fmt.Errorf("player count %d outside [%d, %d]", c.Players, MinPlayers, MaxPlayers))
	}
	if err := c.Rules.Validate(); err != nil {
		result = multierror.Append(result, err)
	}
	return result.ErrorOrNil()
}

// GameState is the authoritative state of one game: the board plus everything
// needed to decide whose turn it is. Every mirror of a game (server, client
// prediction, search lookahead) holds its own GameState and applies identical
// moves in identical order.
type GameState struct {
	Board       *Board        // The grid, mutated only by Apply
	Rules       Rules         // The rules applied to every move
	Palette     Palette       // Colors in play, indexed by player
	Zone        Zone          // Cells forbidden to opening placements
	Placed      []bool        // Whether each player has made its opening placement
	Current     int           // The player due to move, -1 once the game is over
	Moves       int           // Moves applied so far
	Won         int           // Winning player, NoOwner while undecided or on a draw
	Ended       bool          // Whether the game is over
	Runaway     bool          // Whether the game ended on a runaway cascade
	LastMove    *GameMove     // The last move applied, nil before the first
	LastCascade CascadeResult // Cascade triggered by the last move
}

// NewGameState validates the configuration and returns a fresh game with player 0 to move.
func NewGameState(cfg Config) (*GameState, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid game config: %w", err)
	}
	palette, err := NewPalette(cfg.Players)
	if err != nil {
		return nil, err
	}
	return &GameState{
		Board:   NewBoard(cfg.Size),
		Rules:   cfg.Rules,
		Palette: palette,
		Zone:    ExclusionZone(cfg.Size),
		Placed:  make([]bool, cfg.Players),
		Current: 0,
		Won:     NoOwner,
	}, nil
}

// Copy returns a deep copy. The zone, rules and palette are shared since they never change.
func (gs *GameState) Copy() *GameState {
	placed := make([]bool, len(gs.Placed))
	copy(placed, gs.Placed)

	var last *GameMove
	if gs.LastMove != nil {
		m := *gs.LastMove
		last = &m
	}

	return &GameState{
		Board:       gs.Board.Copy(),
		Rules:       gs.Rules,
		Palette:     gs.Palette,
		Zone:        gs.Zone,
		Placed:      placed,
		Current:     gs.Current,
		Moves:       gs.Moves,
		Won:         gs.Won,
		Ended:       gs.Ended,
		Runaway:     gs.Runaway,
		LastMove:    last,
		LastCascade: gs.LastCascade,
	}
}

func (gs *GameState) Players() int {
	return len(gs.Palette)
}

// Initial reports whether some player has yet to make its opening placement.
func (gs *GameState) Initial() bool {
	for _, placed := range gs.Placed {
		if !placed {
			return true
		}
	}
	return false
}

func (gs *GameState) Phase() Phase {
	if gs.Ended || gs.Current < 0 {
		return TerminalPhase
	}
	if gs.Initial() {
		return InitialPlacementPhase
	}
	return MainPhase
}

func (gs *GameState) Alive() []bool {
	return AliveMask(gs.Board, gs.Players(), gs.Initial())
}

// Turn describes the move the rules currently expect.
func (gs *GameState) Turn() Turn {
	if gs.Phase() == TerminalPhase {
		return Turn{Actor: -1, Players: gs.Players()}
	}
	return Turn{
		Actor:   gs.Current,
		Players: gs.Players(),
		Initial: !gs.Placed[gs.Current],
	}
}

// LegalMoves returns the current player's legal moves, none once the game is over.
func (gs *GameState) LegalMoves() []GameMove {
	if gs.Phase() == TerminalPhase {
		return nil
	}
	return LegalMoves(gs.Board, gs.Zone, gs.Current, gs.Placed[gs.Current])
}

// Apply validates and plays a move, resolves the cascade it triggers, and
// advances the turn. On a rejected move the state is unchanged and a
// *MoveError is returned.
func (gs *GameState) Apply(move GameMove) (CascadeResult, error) {
	initial := gs.Initial()
	if err := ApplyMove(gs.Board, gs.Zone, gs.Rules, move, gs.Turn()); err != nil {
		return CascadeResult{}, err
	}

	result := ResolveExplosions(gs.Board, gs.Rules, initial)
	gs.Placed[move.Actor] = true
	gs.Moves++
	gs.LastMove = &move
	gs.LastCascade = result

	if result.Runaway {
		gs.Runaway = true
		gs.finish()
		return result, nil
	}
	gs.advance(move.Actor)
	return result, nil
}

// Pass advances the turn without a move, for an actor with no legal move.
func (gs *GameState) Pass(actor int) error {
	turn := gs.Turn()
	if turn.Actor < 0 {
		return reject(GameMove{Actor: actor, Row: -1, Col: -1}, NoPlayers)
	}
	if actor != turn.Actor {
		return reject(GameMove{Actor: actor, Row: -1, Col: -1}, WrongTurn)
	}
	gs.advance(actor)
	return nil
}

// End stops the game. The sole surviving player, if any, wins; otherwise it is a draw.
func (gs *GameState) End() {
	gs.finish()
}

func (gs *GameState) advance(last int) {
	next, ok := NextActor(gs.Board, gs.Players(), last, gs.Initial())
	if !ok {
		gs.finish()
		return
	}
	gs.Current = next
}

func (gs *GameState) finish() {
	gs.Ended = true
	gs.Current = -1
	gs.Won = NoOwner
	if gs.Runaway || gs.Initial() {
		return
	}
	alive := gs.Alive()
	if countAlive(alive) == 1 {
		for player, a := range alive {
			if a {
				gs.Won = player
			}
		}
	}
}

// Player returns the color of the player due to move, "" once the game is over.
func (gs *GameState) Player() string {
	return gs.Palette.Name(gs.Current)
}

// Winner returns the color of the winner, "" while undecided or on a draw.
func (gs *GameState) Winner() string {
	return gs.Palette.Name(gs.Won)
}

func (gs *GameState) Hash() StateHash {
	hasher := fnv.New64a()

	binary.Write(hasher, binary.LittleEndian, int64(gs.Board.Size))
	binary.Write(hasher, binary.LittleEndian, int64(gs.Current))
	binary.Write(hasher, binary.LittleEndian, int64(gs.Moves))

	for _, placed := range gs.Placed {
		binary.Write(hasher, binary.LittleEndian, placed)
	}

	for _, cell := range gs.Board.Cells {
		binary.Write(hasher, binary.LittleEndian, int64(cell.Value))
		binary.Write(hasher, binary.LittleEndian, int64(cell.Owner))
	}

	return StateHash(hasher.Sum64())
}
