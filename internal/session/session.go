// Package session holds the state of one user's run: the inventory, the user
// directory and the action ledger, plus the files they live in.
package session

import (
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/crucial707/inventory-tracker/internal/codec"
	"github.com/crucial707/inventory-tracker/internal/config"
	"github.com/crucial707/inventory-tracker/internal/models"
	"github.com/crucial707/inventory-tracker/internal/report"
	"github.com/crucial707/inventory-tracker/internal/repo"
	"github.com/shopspring/decimal"
)

// ErrNoUser is returned by operations that need a logged-in user.
var ErrNoUser = errors.New("no user logged in")

type Session struct {
	cfg config.Config
	log *slog.Logger

	Inventory *repo.InventoryRepo
	Directory *repo.DirectoryRepo
	Ledger    *repo.LedgerRepo

	email  string
	userID int

	// Warnings collects lines skipped by the most recent load or import.
	Warnings []models.Warning
	// LoadErrors holds the files Open could not read.
	LoadErrors []error
	unreadable []string
}

// Open loads the inventory document, the action ledger and the user
// directory. Missing files start empty. A file that cannot be read or
// parsed is logged, kept in LoadErrors, and its part of the session starts
// empty.
func Open(cfg config.Config, logger *slog.Logger) *Session {
	s := &Session{
		cfg:       cfg,
		log:       logger,
		Inventory: repo.NewInventoryRepo(nil),
		Directory: repo.NewDirectoryRepo(),
		Ledger:    repo.NewLedgerRepo(),
	}

	items, err := codec.DecodeJSON(cfg.InventoryJSON)
	if err != nil {
		s.loadFailed("load inventory", cfg.InventoryJSON, err)
	} else {
		s.Inventory.Replace(items)
		logger.Info("inventory loaded", "path", cfg.InventoryJSON, "items", len(items))
	}

	warnings, err := s.Ledger.Load(cfg.UserLog)
	if err != nil {
		s.loadFailed("load user log", cfg.UserLog, err)
	} else {
		s.warn(cfg.UserLog, warnings)
		logger.Info("user log loaded", "path", cfg.UserLog, "keys", s.Ledger.Len())
	}

	if err := s.Directory.Load(cfg.UserEmails); err != nil {
		s.loadFailed("load user emails", cfg.UserEmails, err)
	} else {
		logger.Info("user emails loaded", "path", cfg.UserEmails, "users", s.Directory.Len())
	}

	return s
}

func (s *Session) loadFailed(what, path string, err error) {
	err = fmt.Errorf("%s: %w", what, err)
	s.LoadErrors = append(s.LoadErrors, err)
	s.unreadable = append(s.unreadable, path)
	s.log.Error("starting with empty state", "path", path, "error", err)
}

func (s *Session) warn(path string, warnings []models.Warning) {
	s.Warnings = warnings
	for _, w := range warnings {
		s.log.Warn("skipping invalid line", "path", path, "line", w.Line, "reason", w.Reason)
	}
}

// Login resolves email to a user id. A newly seen email is written to the
// directory file straight away.
func (s *Session) Login(email string) (int, error) {
	s.email = email
	s.userID = s.Directory.Resolve(email)
	if s.Directory.Dirty() {
		if err := s.Directory.Save(s.cfg.UserEmails); err != nil {
			return s.userID, err
		}
		s.log.Info("registered user", "email", email, "user_id", s.userID)
	}
	return s.userID, nil
}

func (s *Session) UserID() int   { return s.userID }
func (s *Session) Email() string { return s.email }

// Track counts one use of cmd by the logged-in user.
func (s *Session) Track(cmd Command) error {
	if s.email == "" {
		return ErrNoUser
	}
	s.Ledger.Record(s.email, int(cmd))
	return nil
}

func (s *Session) AddItem(id int, name string, quantity int, price decimal.Decimal) models.Item {
	it := models.Item{ID: id, Name: name, Quantity: quantity, Price: price, LastModifiedBy: s.userID}
	s.Inventory.Add(it)
	s.log.Debug("item added", "id", id, "user_id", s.userID)
	return it
}

func (s *Session) UpdateItem(id int, name string, quantity int, price decimal.Decimal) bool {
	ok := s.Inventory.Update(id, name, quantity, price, s.userID)
	s.log.Debug("item update", "id", id, "found", ok, "user_id", s.userID)
	return ok
}

func (s *Session) RemoveItem(id int) bool {
	ok := s.Inventory.Remove(id)
	s.log.Debug("item remove", "id", id, "found", ok)
	return ok
}

// Export writes the current inventory to the configured file for f and
// returns the path written.
func (s *Session) Export(f Format) (string, error) {
	path, err := s.pathFor(f)
	if err != nil {
		return "", err
	}
	return path, s.ExportFile(f, path)
}

// ExportFile writes the current inventory to path in format f.
func (s *Session) ExportFile(f Format, path string) error {
	var err error
	switch f {
	case FormatCSV:
		err = codec.EncodeCSV(path, s.Inventory.Items())
	case FormatJSON:
		err = codec.EncodeJSON(path, s.Inventory.Items())
	default:
		return fmt.Errorf("%w: %q", ErrUnknownFormat, f)
	}
	if err != nil {
		return err
	}
	s.log.Info("inventory exported", "format", f, "path", path, "items", s.Inventory.Len())
	return nil
}

func (s *Session) pathFor(f Format) (string, error) {
	switch f {
	case FormatCSV:
		return s.cfg.InventoryCSV, nil
	case FormatJSON:
		return s.cfg.InventoryJSON, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownFormat, f)
}

// Import replaces the inventory with the configured file for f and returns
// the number of items read.
func (s *Session) Import(f Format) (int, error) {
	path, err := s.pathFor(f)
	if err != nil {
		return 0, err
	}
	return s.ImportFile(f, path)
}

// ImportFile replaces the inventory with the items in path. The file is
// decoded in full before anything is replaced, so a failed import leaves the
// inventory as it was.
func (s *Session) ImportFile(f Format, path string) (int, error) {
	var (
		items    []models.Item
		warnings []models.Warning
		err      error
	)
	switch f {
	case FormatCSV:
		items, warnings, err = codec.DecodeCSV(path)
	case FormatJSON:
		// Unlike startup, importing a missing document is an error.
		if _, err = os.Stat(path); err == nil {
			items, err = codec.DecodeJSON(path)
		}
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownFormat, f)
	}
	if err != nil {
		return 0, err
	}
	s.warn(path, warnings)
	s.Inventory.Replace(items)
	s.log.Info("inventory imported", "format", f, "path", path, "items", len(items), "skipped", len(warnings))
	return len(items), nil
}

// Report summarises the ledger without changing anything.
func (s *Session) Report() models.Report {
	return report.Generate(s.Ledger.Entries(), s.Directory.Len())
}

// Close writes the inventory document, the ledger and the directory. Every
// save is attempted; failures are joined into the returned error.
//
// Files that failed to load are first moved aside to <path>.corrupt so the
// save does not destroy them.
func (s *Session) Close() error {
	var errs []error
	for _, path := range s.unreadable {
		if err := os.Rename(path, path+".corrupt"); err != nil {
			errs = append(errs, fmt.Errorf("keep unreadable %s: %w", path, err))
			continue
		}
		s.log.Warn("moved unreadable file aside", "path", path, "backup", path+".corrupt")
	}
	s.unreadable = nil
	if err := codec.EncodeJSON(s.cfg.InventoryJSON, s.Inventory.Items()); err != nil {
		errs = append(errs, fmt.Errorf("save inventory: %w", err))
	}
	if err := s.Ledger.Save(s.cfg.UserLog); err != nil {
		errs = append(errs, err)
	}
	if err := s.Directory.Save(s.cfg.UserEmails); err != nil {
		errs = append(errs, err)
	}
	err := errors.Join(errs...)
	if err != nil {
		s.log.Error("saving session", "error", err)
	} else {
		s.log.Info("session saved")
	}
	return err
}
