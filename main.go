package main

import (
	"bufio"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/exp/rand"

	"gaia/config"
	"gaia/engine"
	"gaia/stats"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	level, _ := cfg.Level()
	zerolog.SetGlobalLevel(level)
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	auto := flag.Bool("auto", false, "play automatic leech and brainstone decisions after the last move")
	seed := flag.String("seed", "", "seed of a playout game, a random uuid when empty")
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "usage: %s [flags] replay <moves-file> | load <snapshot> | playout <players>\n", os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()
	if flag.NArg() != 2 {
		flag.Usage()
		os.Exit(2)
	}

	switch command, path := flag.Arg(0), flag.Arg(1); command {
	case "replay":
		err = replay(cfg, path, *auto)
	case "load":
		err = load(path)
	case "playout":
		err = playout(cfg, path, *seed)
	default:
		flag.Usage()
		os.Exit(2)
	}
	if err != nil {
		log.Fatal().Err(err).Msg("failed")
	}
}

// readMoves returns the non empty lines of a move file, "#" starting a comment line.
func readMoves(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open moves file: %w", err)
	}
	defer f.Close()

	var moves []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		moves = append(moves, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read moves file: %w", err)
	}
	return moves, nil
}

func replay(cfg config.Config, path string, auto bool) error {
	options, err := cfg.Options()
	if err != nil {
		return err
	}
	moves, err := readMoves(path)
	if err != nil {
		return err
	}
	log.Info().Str("file", path).Int("moves", len(moves)).Msg("replaying")
	e, err := engine.New(moves, engine.WithOptions(options))
	if err != nil {
		return err
	}
	if auto {
		played, err := e.AutoMoves()
		if err != nil {
			return err
		}
		log.Info().Int("moves", played).Msg("automatic moves played")
	}
	return export(cfg, e)
}

// playout plays a game of random legal moves.
func playout(cfg config.Config, players, seed string) error {
	options, err := cfg.Options()
	if err != nil {
		return err
	}
	if seed == "" {
		seed = uuid.NewString()
	}
	e, err := engine.New([]string{fmt.Sprintf("init %s %s", players, seed)}, engine.WithOptions(options))
	if err != nil {
		return err
	}
	rng := rand.New(rand.NewSource(uint64(time.Now().UnixNano())))
	result, err := e.Rollout(rng)
	if err != nil {
		return err
	}
	log.Info().Str("seed", seed).Int("moves", result.Moves).Bool("ended", result.Ended).Msg("playout finished")
	return export(cfg, e)
}

// export writes the snapshot and the stats of e to the output directory.
func export(cfg config.Config, e *engine.Engine) error {
	if err := os.MkdirAll(cfg.OutDir, 0o755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}
	name := "state.json"
	if cfg.Compress {
		name += ".lz4"
	}
	out := filepath.Join(cfg.OutDir, name)
	f, err := os.Create(out)
	if err != nil {
		return fmt.Errorf("failed to create snapshot: %w", err)
	}
	defer f.Close()
	if err := e.WriteSnapshot(f, cfg.Compress); err != nil {
		return err
	}
	log.Info().Str("file", out).Msg("snapshot written")

	w, err := stats.NewWriter(cfg.OutDir)
	if err != nil {
		return err
	}
	if err := w.WritePlayers(stats.Players(e.State)); err != nil {
		return err
	}
	if err := w.WriteChanges(stats.Collect(e.State.AdvancedLog)); err != nil {
		return err
	}
	log.Info().Str("dir", w.Dir()).Msg("stats exported")

	return printSummary(e)
}

func load(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("failed to open snapshot: %w", err)
	}
	defer f.Close()
	e, err := engine.ReadSnapshot(f, strings.HasSuffix(path, ".lz4"))
	if err != nil {
		return err
	}
	return printSummary(e)
}

func printSummary(e *engine.Engine) error {
	digest, err := e.Digest()
	if err != nil {
		return err
	}
	fmt.Printf("phase %s, round %d, %d moves\n", e.State.Phase, e.State.Round, len(e.State.MoveHistory))
	for _, r := range stats.Players(e.State) {
		fmt.Printf("%d. %s %d vp\n", r.Rank, r.DisplayName, r.VictoryPoints)
	}
	fmt.Println(digest)
	return nil
}
