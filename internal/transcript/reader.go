package transcript

import (
	"bufio"
	"errors"
	"fmt"
	"strings"

	"github.com/mitchelldurbincs/pentago/internal/game/core"
	"github.com/spf13/afero"
)

// ErrMalformedTranscript is returned when a transcript file cannot be parsed
var ErrMalformedTranscript = errors.New("malformed transcript")

// Entry is one recorded move with the board it was played on
type Entry struct {
	Before *core.Board
	Move   core.Move
}

// Transcript is a parsed transcript file
type Transcript struct {
	// Players holds the two header lines as written
	Players [2]string
	Entries []Entry
	// Final is nil when the game was not finished
	Final   *core.Board
	Outcome string
}

// Read parses a transcript written by Writer
func Read(fs afero.Fs, path string) (*Transcript, error) {
	file, err := fs.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	var (
		t      Transcript
		header []string
		lineNo int
	)
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		lineNo++
		line := scanner.Text()

		if len(header) < 2 {
			if line == "" && len(header) == 0 {
				continue
			}
			header = append(header, line)
			continue
		}
		if t.Final != nil {
			t.Outcome = line
			continue
		}

		state, move, ok := strings.Cut(line, "\t")
		if !ok {
			return nil, fmt.Errorf("%w: line %d has no tab", ErrMalformedTranscript, lineNo)
		}
		b, err := core.ParseBoard(state)
		if err != nil {
			return nil, fmt.Errorf("%w: line %d: %w", ErrMalformedTranscript, lineNo, err)
		}
		if move == "" {
			t.Final = b
			continue
		}
		m, err := core.ParseMove(move)
		if err != nil {
			return nil, fmt.Errorf("%w: line %d: %w", ErrMalformedTranscript, lineNo, err)
		}
		t.Entries = append(t.Entries, Entry{Before: b, Move: m})
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error reading transcript: %w", err)
	}
	if len(header) < 2 {
		return nil, fmt.Errorf("%w: missing player header", ErrMalformedTranscript)
	}
	copy(t.Players[:], header)
	return &t, nil
}

// Replay checks that every recorded move is legal on its board and leads to
// the next recorded board, with tokens alternating from first. It returns
// the board after the last move.
func (t *Transcript) Replay(first core.Cell) (*core.Board, error) {
	if len(t.Entries) == 0 {
		return t.Final, nil
	}

	token := first
	b := t.Entries[0].Before.Clone()
	for i, e := range t.Entries {
		if !b.Equal(e.Before) {
			return nil, fmt.Errorf("%w: move %d was recorded on %s, replay reached %s",
				ErrMalformedTranscript, i+1, e.Before, b)
		}
		if err := core.ApplyMove(b, e.Move, token); err != nil {
			return nil, fmt.Errorf("move %d: %w", i+1, err)
		}
		token = token.Opponent()
	}
	if t.Final != nil && !b.Equal(t.Final) {
		return nil, fmt.Errorf("%w: final board %s, replay reached %s", ErrMalformedTranscript, t.Final, b)
	}
	return b, nil
}
