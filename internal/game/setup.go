package game

import (
	"fmt"

	"github.com/mitchelldurbincs/pentago/internal/game/core"
)

// SetupPlayers runs the interactive player dialog: optional instructions,
// then name and kind for both players and the first player's color. The
// second player gets the other color.
func SetupPlayers(c *Console) ([2]core.PlayerConfig, error) {
	var players [2]core.PlayerConfig

	show, err := c.Confirm("Do you want to see instructions")
	if err != nil {
		return players, err
	}
	if show {
		c.Printf("%s\n", RenderLegend())
	}

	c.Println("Player 1 plays first.")
	for i := range players {
		name, err := c.Prompt(fmt.Sprintf("\nName of Player %d: ", i+1))
		for err == nil && name == "" {
			name, err = c.Prompt(fmt.Sprintf("Name of Player %d: ", i+1))
		}
		if err != nil {
			return players, err
		}

		kind, err := c.Choose("human or computer Player?", core.Human.String(), core.Computer.String())
		if err != nil {
			return players, err
		}

		players[i].Name = name
		if players[i].Kind, err = core.ParsePlayerKind(kind); err != nil {
			return players, err
		}

		if i == 0 {
			color, err := c.Choose(fmt.Sprintf("Will %s play Black or White?", name), "Black", "White")
			if err != nil {
				return players, err
			}
			if players[0].Token, err = core.ParseToken(color); err != nil {
				return players, err
			}
		} else {
			players[1].Token = players[0].Token.Opponent()
		}
	}

	return players, core.ValidatePlayers(players)
}

// AnnounceSetup introduces players read from configuration instead of the
// dialog, with the instructions when requested
func AnnounceSetup(c *Console, source string, players [2]core.PlayerConfig, instructions bool) {
	if source == "" {
		source = "the environment"
	}
	c.Printf("Reading setup from %s:\n", source)
	if instructions {
		c.Printf("%s\n", RenderLegend())
	}
	c.Println("Player 1 plays first.")
	c.Printf("%s\n%s\n", players[0], players[1])
}
