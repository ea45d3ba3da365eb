package metrics

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"monaco/game"
)

// EventRecord is one committed operation of a race.
type EventRecord struct {
	Race string
	Seq  int
	game.Event
}

// CarRecord is the final state of one car in a race.
type CarRecord struct {
	Race string
	game.Car
}

type Writer struct {
	baseDir string
}

// NewWriter creates a timestamped directory under root for this run.
func NewWriter(root string) (*Writer, error) {
	timestamp := time.Now().UTC().Format("20060102T150405.000000000Z")
	baseDir := filepath.Join(root, timestamp)
	err := os.MkdirAll(baseDir, 0755)
	if err != nil {
		return nil, fmt.Errorf("failed to create directory: %w", err)
	}

	return &Writer{
		baseDir: baseDir,
	}, nil
}

func (w *Writer) Dir() string {
	return w.baseDir
}

func (w *Writer) WriteEvents(records []EventRecord) error {
	path := filepath.Join(w.baseDir, "events.csv")
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create events file: %w", err)
	}
	defer f.Close()

	writer := csv.NewWriter(f)
	defer writer.Flush()

	header := []string{"race", "seq", "op", "outcome", "car", "target", "amount", "cost", "position", "turns", "turns_played"}
	err = writer.Write(header)
	if err != nil {
		return fmt.Errorf("failed to write events header: %w", err)
	}

	for _, record := range records {
		row := []string{
			record.Race,
			strconv.Itoa(record.Seq),
			record.Op,
			string(record.Outcome),
			string(record.Car),
			string(record.Target),
			strconv.FormatUint(record.Amount, 10),
			strconv.FormatUint(record.Cost, 10),
			strconv.FormatUint(record.Position, 10),
			strconv.FormatUint(record.Turns, 10),
			strconv.FormatUint(record.TurnsPlayed, 10),
		}
		err = writer.Write(row)
		if err != nil {
			return fmt.Errorf("failed to write event row: %w", err)
		}
	}

	return writer.Error()
}

func (w *Writer) WriteCars(records []CarRecord) error {
	path := filepath.Join(w.baseDir, "cars.csv")
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create cars file: %w", err)
	}
	defer f.Close()

	writer := csv.NewWriter(f)
	defer writer.Flush()

	header := []string{"race", "car", "balance", "position", "speed", "shield"}
	err = writer.Write(header)
	if err != nil {
		return fmt.Errorf("failed to write cars header: %w", err)
	}

	for _, record := range records {
		row := []string{
			record.Race,
			string(record.ID),
			strconv.FormatUint(record.Balance, 10),
			strconv.FormatUint(record.Position, 10),
			strconv.FormatUint(record.Speed, 10),
			strconv.FormatUint(record.Shield, 10),
		}
		err = writer.Write(row)
		if err != nil {
			return fmt.Errorf("failed to write car row: %w", err)
		}
	}

	return writer.Error()
}
