package engine

import (
	"sort"
	"strings"

	"gaia/game"
	"gaia/gameerr"
	"gaia/reward"
)

// clause is one command of a move: "build m 3x2".
type clause struct {
	command game.Command
	args    []string
}

type handler func(s *game.State, p int, available game.AvailableCommand, args []string) error

var handlers = map[game.Command]handler{
	game.CmdSetup:      setupCommand,
	game.CmdFaction:    factionCommand,
	game.CmdBid:        bidCommand,
	game.CmdBuild:      buildCommand,
	game.CmdBooster:    boosterCommand,
	game.CmdUp:         upCommand,
	game.CmdAction:     actionCommand,
	game.CmdBurn:       burnCommand,
	game.CmdSpend:      spendCommand,
	game.CmdFederation: federationCommand,
	game.CmdPass:       passCommand,
	game.CmdTech:       techCommand,
	game.CmdCover:      coverCommand,
	game.CmdCharge:     chargeCommand,
	game.CmdDecline:    declineCommand,
	game.CmdBrainstone: brainstoneCommand,
	game.CmdIncome:     incomeCommand,
	game.CmdSwap:       swapCommand,
}

// parseMove splits "<player> <command> args. <command> args" into the
// player token and its clauses.
func parseMove(text string) (string, []clause, error) {
	token, rest, found := strings.Cut(strings.TrimSpace(text), " ")
	if !found || token == "" {
		return "", nil, gameerr.Parse("move %q has no command", text)
	}
	var clauses []clause
	for _, part := range strings.Split(rest, ".") {
		fields := strings.Fields(part)
		if len(fields) == 0 {
			continue
		}
		command := game.Command(fields[0])
		if _, ok := handlers[command]; !ok {
			return "", nil, gameerr.Parse("unknown command %q", fields[0])
		}
		clauses = append(clauses, clause{command: command, args: fields[1:]})
	}
	if len(clauses) == 0 {
		return "", nil, gameerr.Parse("move %q has no command", text)
	}
	return token, clauses, nil
}

func apply(s *game.State, text string) error {
	if text == "" {
		return gameerr.Parse("empty move")
	}
	if s.Phase == game.SetupInit {
		if err := initGame(s, strings.Fields(text)); err != nil {
			return err
		}
		s.MoveHistory = append(s.MoveHistory, text)
		return nil
	}
	if s.Phase == game.Ended {
		return gameerr.IllegalMove("the game has ended")
	}
	token, clauses, err := parseMove(text)
	if err != nil {
		return err
	}
	p, err := s.PlayerByToken(token)
	if err != nil {
		return err
	}
	for _, c := range clauses {
		if err := execute(s, p.Index, c); err != nil {
			return err
		}
	}
	finishMove(s)
	s.MoveHistory = append(s.MoveHistory, text)
	recordChanges(s)
	return nil
}

// execute checks a clause against the available commands before running it.
func execute(s *game.State, p int, c clause) error {
	available, ok := game.Find(game.AvailableCommands(s), p, c.command)
	if !ok {
		return gameerr.WithMetadata(gameerr.CodeIllegalMove,
			s.Players[p].Name()+" cannot "+string(c.command)+" now",
			map[string]string{"phase": s.Phase.String(), "command": string(c.command)})
	}
	if err := handlers[c.command](s, p, available, c.args); err != nil {
		return err
	}
	settle(s)
	return nil
}

// settle drops pending choices nobody can make.
func settle(s *game.State) {
	for len(s.Turn.Pending) > 0 {
		commands := game.AvailableCommands(s)
		if len(commands) > 0 && hasChoices(commands[0]) {
			return
		}
		s.Turn.Pending = s.Turn.Pending[1:]
	}
}

func hasChoices(c game.AvailableCommand) bool {
	switch d := c.Data.(type) {
	case game.TechData:
		return len(d.Tiles) > 0
	case game.CoverData:
		return len(d.Tiles) > 0
	case game.UpData:
		return len(d.Tracks) > 0
	case game.FederationData:
		return len(d.Tiles) > 0
	case game.BuildData:
		return len(d.Buildings) > 0
	case game.SwapData:
		return len(d.Hexes) > 0
	case game.BrainstoneData:
		return len(d.Options) > 0
	}
	return true
}

// finishMove ends the turn once the main action is done and nothing is pending.
func finishMove(s *game.State) {
	switch s.Phase {
	case game.RoundMove:
		if s.Turn.SubPhase == game.AfterMove && len(s.Turn.Pending) == 0 {
			endTurn(s)
		}
	case game.RoundLeech:
		if len(s.Turn.Leech) == 0 {
			nextPlayer(s)
		}
	case game.RoundGaia:
		continueGaia(s)
	}
}

// recordChanges appends the resource changes of the move to the advanced log.
func recordChanges(s *game.State) {
	move := len(s.MoveHistory) - 1
	for _, p := range s.Players {
		changes := p.Data.TakeChanges()
		if len(changes) == 0 {
			continue
		}
		index := p.Index
		s.AdvancedLog = append(s.AdvancedLog, game.LogEntry{Move: &move, Player: &index, Changes: changes})
	}
}

func setPhase(s *game.State, phase game.Phase) {
	s.Phase = phase
	s.AdvancedLog = append(s.AdvancedLog, game.LogEntry{Phase: phase.String()})
}

func argCount(args []string, n int, usage string) error {
	if len(args) != n {
		return gameerr.Parse("expected %s", usage)
	}
	return nil
}

// sortTiles orders tile names the way the content lists them.
func sortTiles(tiles []string) {
	order := make(map[string]int)
	for i, n := range game.Names(game.Content().Boosters) {
		order[n] = i
	}
	sort.SliceStable(tiles, func(i, j int) bool { return order[tiles[i]] < order[tiles[j]] })
}

func parseRewards(spec string) ([]reward.Reward, error) {
	rewards, err := reward.Parse(spec)
	if err != nil {
		return nil, gameerr.Wrap(gameerr.CodeParse, "invalid rewards "+spec, err)
	}
	return rewards, nil
}
