package repo

import (
	"bufio"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/crucial707/inventory-tracker/internal/fsutil"
	"github.com/crucial707/inventory-tracker/internal/models"
)

// ==========================
// DirectoryRepo
// ==========================

// DirectoryRepo assigns each email a sequential id starting at 1. Ids are
// never reused or reassigned.
type DirectoryRepo struct {
	ids    map[string]int
	order  []string
	nextID int
	dirty  bool
}

// ==========================
// Constructor
// ==========================
func NewDirectoryRepo() *DirectoryRepo {
	return &DirectoryRepo{ids: make(map[string]int), nextID: 1}
}

// ==========================
// Load
// ==========================

// Load reads one email per line. Unknown emails get the next id; known ones
// are left alone. A missing file is not an error.
func (r *DirectoryRepo) Load(path string) error {
	f, err := os.Open(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("open user directory: %w", err)
	}
	defer f.Close()

	sc := bufio.NewScanner(f)
	for sc.Scan() {
		email := strings.TrimSpace(sc.Text())
		if email == "" {
			continue
		}
		if _, ok := r.ids[email]; !ok {
			r.allocate(email)
		}
	}
	if err := sc.Err(); err != nil {
		return fmt.Errorf("read user directory: %w", err)
	}
	return nil
}

// ==========================
// Resolve
// ==========================

// Resolve returns the id for email, allocating one if it has not been seen.
func (r *DirectoryRepo) Resolve(email string) int {
	if id, ok := r.ids[email]; ok {
		return id
	}
	id := r.allocate(email)
	r.dirty = true
	return id
}

func (r *DirectoryRepo) allocate(email string) int {
	id := r.nextID
	r.nextID++
	r.ids[email] = id
	r.order = append(r.order, email)
	return id
}

// Lookup returns the id for email without allocating.
func (r *DirectoryRepo) Lookup(email string) (int, bool) {
	id, ok := r.ids[email]
	return id, ok
}

// ==========================
// Save
// ==========================

// Save writes one email per line in the order they were first seen.
func (r *DirectoryRepo) Save(path string) error {
	err := fsutil.WriteFile(path, func(f *os.File) error {
		w := bufio.NewWriter(f)
		for _, email := range r.order {
			if _, err := w.WriteString(email + "\n"); err != nil {
				return err
			}
		}
		return w.Flush()
	})
	if err != nil {
		return fmt.Errorf("save user directory: %w", err)
	}
	r.dirty = false
	return nil
}

// Entries lists every known email with its id, oldest first.
func (r *DirectoryRepo) Entries() []models.DirectoryEntry {
	out := make([]models.DirectoryEntry, 0, len(r.order))
	for _, email := range r.order {
		out = append(out, models.DirectoryEntry{Email: email, ID: r.ids[email]})
	}
	return out
}

func (r *DirectoryRepo) Len() int { return len(r.order) }

// Dirty reports whether Resolve allocated an id since the last Save.
func (r *DirectoryRepo) Dirty() bool { return r.dirty }
