package game

import (
	"fmt"

	"cascade/utils"
)

const (
	MinPlayers = 2
	MaxPlayers = 8
)

// Color is a symbolic palette entry identifying a player.
type Color string

var standardColors = []Color{
	"red", "blue", "green", "yellow", "purple", "orange", "cyan", "pink",
}

// Palette lists the colors in play, indexed by player.
type Palette []Color

// NewPalette returns the first n standard colors.
func NewPalette(n int) (Palette, error) {
	if n < MinPlayers || n > MaxPlayers {
		return nil, fmt.Errorf("palette size %d outside [%d, %d]", n, MinPlayers, MaxPlayers)
	}
	p := make(Palette, n)
	copy(p, standardColors[:n])
	return p, nil
}

// Index returns the player index of a color, -1 if it is not in play.
func (p Palette) Index(c Color) int {
	return utils.FindIndex(p, c)
}

// Name returns the color of a player, or "" for an out of range index.
func (p Palette) Name(player int) string {
	if player < 0 || player >= len(p) {
		return ""
	}
	return string(p[player])
}
