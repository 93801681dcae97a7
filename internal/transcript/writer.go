package transcript

import (
	"errors"
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/mitchelldurbincs/pentago/internal/game/core"
	"github.com/rs/zerolog"
	"github.com/spf13/afero"
)

var (
	// ErrNotStarted is returned when moves are recorded before Begin
	ErrNotStarted = errors.New("transcript not started")
	// ErrAlreadyStarted is returned by a second Begin
	ErrAlreadyStarted = errors.New("transcript already started")
)

// FilePrefix starts every transcript file name
const FilePrefix = "transcript_"

// Stats counts what a Writer has written
type Stats struct {
	Moves        int
	BytesWritten int64
	StartedAt    time.Time
	FinishedAt   time.Time
}

// Writer records one game as text: a header with both player descriptions,
// then "<board>\t<move>" per move with the board as it was before the move,
// and finally "<board>\t" and the outcome.
type Writer struct {
	fs     afero.Fs
	dir    string
	gameID string
	now    func() time.Time
	logger zerolog.Logger

	mu    sync.Mutex
	file  afero.File
	path  string
	stats Stats
}

// NewWriter creates a writer for gameID that will create its file in dir
// on Begin
func NewWriter(fs afero.Fs, dir, gameID string, logger zerolog.Logger) *Writer {
	return &Writer{
		fs:     fs,
		dir:    dir,
		gameID: gameID,
		now:    time.Now,
		logger: logger.With().Str("component", "transcript").Str("game_id", gameID).Logger(),
	}
}

// FileName is the transcript file name for a game started at t
func FileName(t time.Time, gameID string) string {
	return fmt.Sprintf("%s%d_%s.txt", FilePrefix, t.Unix(), gameID)
}

// Begin creates the file and writes the player header
func (w *Writer) Begin(players [2]core.PlayerConfig) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.file != nil {
		return ErrAlreadyStarted
	}
	if err := w.fs.MkdirAll(w.dir, 0755); err != nil {
		return fmt.Errorf("failed to create transcript directory: %w", err)
	}

	w.stats.StartedAt = w.now()
	path := filepath.Join(w.dir, FileName(w.stats.StartedAt, w.gameID))
	file, err := w.fs.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create transcript: %w", err)
	}
	w.file = file
	w.path = path

	if err := w.write("\n%s\n%s\n", players[0], players[1]); err != nil {
		return err
	}
	w.logger.Debug().Str("path", path).Msg("Transcript started")
	return nil
}

// Record appends a move and the board it was played on
func (w *Writer) Record(before *core.Board, m core.Move) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.file == nil {
		return ErrNotStarted
	}
	if err := w.write("%s\t%s\n", before, m); err != nil {
		return err
	}
	w.stats.Moves++
	return nil
}

// Finish writes the final board and outcome and closes the file
func (w *Writer) Finish(final *core.Board, outcome string) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.file == nil {
		return ErrNotStarted
	}
	werr := w.write("%s\t\n%s\n", final, outcome)
	if err := w.file.Sync(); err != nil {
		w.logger.Warn().Err(err).Msg("Failed to sync transcript")
	}
	cerr := w.file.Close()
	w.file = nil
	w.stats.FinishedAt = w.now()

	if werr != nil {
		return werr
	}
	if cerr != nil {
		return fmt.Errorf("failed to close transcript: %w", cerr)
	}

	w.logger.Info().
		Str("path", w.path).
		Int("moves", w.stats.Moves).
		Int64("bytes", w.stats.BytesWritten).
		Msg("Transcript written")
	return nil
}

// Path returns the transcript file path, empty before Begin
func (w *Writer) Path() string {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.path
}

func (w *Writer) Stats() Stats {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.stats
}

// write must be called with mu held
func (w *Writer) write(format string, args ...interface{}) error {
	n, err := fmt.Fprintf(w.file, format, args...)
	w.stats.BytesWritten += int64(n)
	if err != nil {
		return fmt.Errorf("failed to write transcript: %w", err)
	}
	return nil
}
