package stats

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/google/uuid"
)

type Writer struct {
	RunID   string
	baseDir string
}

// NewWriter creates a run directory named by a fresh uuid under outDir.
func NewWriter(outDir string) (*Writer, error) {
	id := uuid.NewString()
	baseDir := filepath.Join(outDir, "stats", id)
	if err := os.MkdirAll(baseDir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create directory: %w", err)
	}
	return &Writer{RunID: id, baseDir: baseDir}, nil
}

func (w *Writer) Dir() string {
	return w.baseDir
}

func (w *Writer) WritePlayers(records []PlayerRecord) error {
	rows := make([][]string, len(records))
	for i, r := range records {
		rows[i] = []string{
			strconv.Itoa(r.Player),
			r.Faction,
			r.DisplayName,
			strconv.Itoa(r.VictoryPoints),
			strconv.Itoa(r.Rank),
		}
	}
	return w.write("players.csv", []string{"player", "faction", "name", "vp", "rank"}, rows)
}

func (w *Writer) WriteChanges(changes []Change) error {
	rows := make([][]string, len(changes))
	for i, c := range changes {
		rows[i] = []string{
			strconv.Itoa(c.Round),
			strconv.Itoa(c.Player),
			c.Source,
			string(c.Resource),
			strconv.Itoa(c.Amount),
		}
	}
	return w.write("changes.csv", []string{"round", "player", "source", "resource", "amount"}, rows)
}

func (w *Writer) write(name string, header []string, rows [][]string) error {
	f, err := os.Create(filepath.Join(w.baseDir, name))
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", name, err)
	}
	defer f.Close()

	writer := csv.NewWriter(f)
	if err := writer.Write(header); err != nil {
		return fmt.Errorf("failed to write %s header: %w", name, err)
	}
	if err := writer.WriteAll(rows); err != nil {
		return fmt.Errorf("failed to write %s rows: %w", name, err)
	}
	return nil
}
