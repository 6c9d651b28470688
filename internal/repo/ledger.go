package repo

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"

	"github.com/crucial707/inventory-tracker/internal/codec"
	"github.com/crucial707/inventory-tracker/internal/fsutil"
	"github.com/crucial707/inventory-tracker/internal/models"
)

// LedgerHeader is the first line of a saved ledger file.
var LedgerHeader = []string{"Email", "Action", "Count"}

// ErrNegativeCount is returned when a ledger file holds a count below zero.
var ErrNegativeCount = errors.New("negative count")

// ==========================
// LedgerRepo
// ==========================

// LedgerRepo counts how many times each user picked each action. Keys keep
// the order in which they were first seen.
type LedgerRepo struct {
	counts map[models.ActionKey]int
	order  []models.ActionKey
}

// ==========================
// Constructor
// ==========================
func NewLedgerRepo() *LedgerRepo {
	return &LedgerRepo{counts: make(map[models.ActionKey]int)}
}

// ==========================
// Load
// ==========================

// Load merges the counts in path into the ledger. The first line is skipped
// as a header whatever it says, even when blank. Lines without exactly three
// fields, blank lines included, are skipped and reported. Counts are added to what is already held, so loading
// the same file twice counts it twice. If any action or count fails to parse
// nothing from the file is merged. A missing file is not an error.
func (r *LedgerRepo) Load(path string) ([]models.Warning, error) {
	f, err := os.Open(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("open user log: %w", err)
	}
	defer f.Close()

	var (
		warnings []models.Warning
		parsed   []models.LedgerEntry
	)
	err = codec.ReadLines(f, func(line int, rec []string, err error) error {
		if line == 1 {
			return nil
		}
		if err != nil {
			warnings = append(warnings, models.Warning{Line: line, Reason: fmt.Sprintf("malformed quoting: %v", err)})
			return nil
		}
		if len(rec) != 3 {
			warnings = append(warnings, models.Warning{
				Line:   line,
				Reason: fmt.Sprintf("expected 3 fields (email, action, count), got %d", len(rec)),
			})
			return nil
		}

		action, err := strconv.Atoi(strings.TrimSpace(rec[1]))
		if err != nil {
			return fmt.Errorf("user log line %d: action %q: %w", line, rec[1], err)
		}
		count, err := strconv.Atoi(strings.TrimSpace(rec[2]))
		if err != nil {
			return fmt.Errorf("user log line %d: count %q: %w", line, rec[2], err)
		}
		if count < 0 {
			return fmt.Errorf("user log line %d: %w: %d", line, ErrNegativeCount, count)
		}
		parsed = append(parsed, models.LedgerEntry{Email: rec[0], Action: action, Count: count})
		return nil
	})
	if err != nil {
		return nil, err
	}

	for _, e := range parsed {
		r.add(models.ActionKey{Email: e.Email, Action: e.Action}, e.Count)
	}
	return warnings, nil
}

// ==========================
// Record
// ==========================

// Record counts one more use of action by email.
func (r *LedgerRepo) Record(email string, action int) {
	r.add(models.ActionKey{Email: email, Action: action}, 1)
}

func (r *LedgerRepo) add(key models.ActionKey, n int) {
	if _, ok := r.counts[key]; !ok {
		r.order = append(r.order, key)
	}
	r.counts[key] += n
}

// Count returns the current count for email and action.
func (r *LedgerRepo) Count(email string, action int) int {
	return r.counts[models.ActionKey{Email: email, Action: action}]
}

// ==========================
// Save
// ==========================

// Save writes the header followed by one email,action,count line per key.
func (r *LedgerRepo) Save(path string) error {
	err := fsutil.WriteFile(path, func(f *os.File) error {
		cw := csv.NewWriter(f)
		if err := cw.Write(LedgerHeader); err != nil {
			return err
		}
		for _, e := range r.Entries() {
			if err := cw.Write([]string{e.Email, strconv.Itoa(e.Action), strconv.Itoa(e.Count)}); err != nil {
				return err
			}
		}
		cw.Flush()
		return cw.Error()
	})
	if err != nil {
		return fmt.Errorf("save user log: %w", err)
	}
	return nil
}

// Entries returns every counter, oldest key first.
func (r *LedgerRepo) Entries() []models.LedgerEntry {
	out := make([]models.LedgerEntry, 0, len(r.order))
	for _, k := range r.order {
		out = append(out, models.LedgerEntry{Email: k.Email, Action: k.Action, Count: r.counts[k]})
	}
	return out
}

func (r *LedgerRepo) Len() int { return len(r.order) }
