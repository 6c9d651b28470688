package session

import (
	"errors"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/crucial707/inventory-tracker/internal/config"
	"github.com/shopspring/decimal"
)

func testConfig(t *testing.T) config.Config {
	t.Helper()
	dir := t.TempDir()
	return config.Config{
		InventoryJSON: filepath.Join(dir, "inventory.json"),
		InventoryCSV:  filepath.Join(dir, "inventory.csv"),
		UserLog:       filepath.Join(dir, "user_log.csv"),
		UserEmails:    filepath.Join(dir, "user_emails.csv"),
		LogFormat:     "text",
		LogLevel:      "error",
	}
}

func openSession(t *testing.T, cfg config.Config) *Session {
	t.Helper()
	s := Open(cfg, slog.New(slog.NewTextHandler(io.Discard, nil)))
	if len(s.LoadErrors) != 0 {
		t.Fatalf("Open: %v", s.LoadErrors)
	}
	return s
}

func TestSession_FreshStartAndLogin(t *testing.T) {
	cfg := testConfig(t)
	s := openSession(t, cfg)

	if s.Inventory.Len() != 0 || s.Ledger.Len() != 0 || s.Directory.Len() != 0 {
		t.Fatal("expected empty state from missing files")
	}

	id, err := s.Login("u@x.com")
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if id != 1 {
		t.Errorf("first user id: got %d, want 1", id)
	}
	data, err := os.ReadFile(cfg.UserEmails)
	if err != nil {
		t.Fatalf("directory should be saved on registration: %v", err)
	}
	if string(data) != "u@x.com\n" {
		t.Errorf("unexpected directory file: %q", data)
	}
}

func TestSession_TrackRequiresLogin(t *testing.T) {
	s := openSession(t, testConfig(t))
	if err := s.Track(Add); !errors.Is(err, ErrNoUser) {
		t.Errorf("expected ErrNoUser, got %v", err)
	}
}

func TestSession_CloseAndReopen(t *testing.T) {
	cfg := testConfig(t)
	s := openSession(t, cfg)
	if _, err := s.Login("a@x.com"); err != nil {
		t.Fatalf("Login: %v", err)
	}
	_ = s.Track(Add)
	s.AddItem(1, "Widget", 10, decimal.RequireFromString("2.50"))
	_ = s.Track(Update)
	if !s.UpdateItem(1, "Widget XL", 4, decimal.RequireFromString("3")) {
		t.Fatal("expected update to find item")
	}
	_ = s.Track(Exit)
	if err := s.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	again := openSession(t, cfg)
	items := again.Inventory.Items()
	if len(items) != 1 || items[0].Name != "Widget XL" || items[0].LastModifiedBy != 1 {
		t.Errorf("unexpected items after reopen: %+v", items)
	}
	if again.Ledger.Count("a@x.com", int(Add)) != 1 || again.Ledger.Count("a@x.com", int(Exit)) != 1 {
		t.Errorf("unexpected ledger after reopen: %+v", again.Ledger.Entries())
	}
	if id, ok := again.Directory.Lookup("a@x.com"); !ok || id != 1 {
		t.Errorf("directory lost user: %d %v", id, ok)
	}
}

func TestSession_ExportImportCSV(t *testing.T) {
	cfg := testConfig(t)
	s := openSession(t, cfg)
	_, _ = s.Login("a@x.com")
	s.AddItem(1, "Widget", 10, decimal.RequireFromString("2.5"))
	s.AddItem(2, "Gadget", 1, decimal.RequireFromString("7"))

	path, err := s.Export(FormatCSV)
	if err != nil {
		t.Fatalf("Export: %v", err)
	}
	if path != cfg.InventoryCSV {
		t.Errorf("export path: got %s", path)
	}

	s.RemoveItem(1)
	n, err := s.Import(FormatCSV)
	if err != nil {
		t.Fatalf("Import: %v", err)
	}
	if n != 2 || s.Inventory.Len() != 2 {
		t.Errorf("expected 2 items after import, got %d", s.Inventory.Len())
	}
}

func TestSession_FailedCSVImportKeepsInventory(t *testing.T) {
	cfg := testConfig(t)
	if err := os.WriteFile(cfg.InventoryCSV, []byte("1,a,1,1,1\n2,b,x,1,1\n"), 0o644); err != nil {
		t.Fatalf("seed: %v", err)
	}
	s := openSession(t, cfg)
	s.AddItem(9, "Keep", 1, decimal.NewFromInt(1))

	if _, err := s.Import(FormatCSV); err == nil {
		t.Fatal("expected import error")
	}
	items := s.Inventory.Items()
	if len(items) != 1 || items[0].ID != 9 {
		t.Errorf("inventory changed after failed import: %+v", items)
	}
}

func TestSession_ImportCSVReportsWarnings(t *testing.T) {
	cfg := testConfig(t)
	if err := os.WriteFile(cfg.InventoryCSV, []byte("1,a,1,1,1\nshort\n"), 0o644); err != nil {
		t.Fatalf("seed: %v", err)
	}
	s := openSession(t, cfg)

	n, err := s.Import(FormatCSV)
	if err != nil {
		t.Fatalf("Import: %v", err)
	}
	if n != 1 || len(s.Warnings) != 1 {
		t.Errorf("got %d items and %d warnings", n, len(s.Warnings))
	}
}

func TestSession_ImportMissingJSON(t *testing.T) {
	s := openSession(t, testConfig(t))
	s.AddItem(1, "Keep", 1, decimal.NewFromInt(1))

	if _, err := s.Import(FormatJSON); !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("expected not-exist error, got %v", err)
	}
	if s.Inventory.Len() != 1 {
		t.Error("inventory changed after failed import")
	}
}

func TestSession_MalformedFilesStartEmpty(t *testing.T) {
	cfg := testConfig(t)
	if err := os.WriteFile(cfg.InventoryJSON, []byte(`[{"id":1,"quantity":"ten"}]`), 0o644); err != nil {
		t.Fatalf("seed inventory: %v", err)
	}
	if err := os.WriteFile(cfg.UserLog, []byte("Email,Action,Count\na@x.com,1,lots\n"), 0o644); err != nil {
		t.Fatalf("seed log: %v", err)
	}

	s := Open(cfg, slog.New(slog.NewTextHandler(io.Discard, nil)))
	if len(s.LoadErrors) != 2 {
		t.Fatalf("expected 2 load errors, got %v", s.LoadErrors)
	}
	if !strings.Contains(s.LoadErrors[0].Error(), "load inventory") || !strings.Contains(s.LoadErrors[1].Error(), "load user log") {
		t.Errorf("unexpected load errors: %v", s.LoadErrors)
	}
	if s.Inventory.Len() != 0 || s.Ledger.Len() != 0 {
		t.Error("expected empty inventory and ledger")
	}

	if _, err := s.Login("a@x.com"); err != nil {
		t.Fatalf("Login: %v", err)
	}
	_ = s.Track(Exit)
	if err := s.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	kept, err := os.ReadFile(cfg.UserLog + ".corrupt")
	if err != nil || !strings.Contains(string(kept), "lots") {
		t.Errorf("unreadable ledger not kept aside: %q %v", kept, err)
	}
	if _, err := os.Stat(cfg.InventoryJSON + ".corrupt"); err != nil {
		t.Errorf("unreadable inventory not kept aside: %v", err)
	}
	log, _ := os.ReadFile(cfg.UserLog)
	if !strings.Contains(string(log), "a@x.com,8,1") {
		t.Errorf("new ledger not saved: %q", log)
	}
}

func TestSession_Report(t *testing.T) {
	s := openSession(t, testConfig(t))
	_, _ = s.Login("a@x.com")
	_ = s.Track(View)
	_ = s.Track(View)
	_, _ = s.Login("b@x.com")
	_ = s.Track(Add)

	r := s.Report()
	if r.TotalUsers != 2 {
		t.Errorf("TotalUsers: got %d, want 2", r.TotalUsers)
	}
	if len(r.Totals) != 2 || r.Totals[0].Action != int(View) || r.Totals[0].Count != 2 {
		t.Errorf("unexpected totals: %+v", r.Totals)
	}
}

func TestSession_CloseReportsErrors(t *testing.T) {
	cfg := testConfig(t)
	s := openSession(t, cfg)
	blocker := filepath.Join(t.TempDir(), "file")
	if err := os.WriteFile(blocker, nil, 0o644); err != nil {
		t.Fatalf("seed: %v", err)
	}
	s.cfg.UserLog = filepath.Join(blocker, "user_log.csv")

	err := s.Close()
	if err == nil {
		t.Fatal("expected error when the ledger cannot be written")
	}
	if _, statErr := os.Stat(cfg.UserEmails); statErr != nil {
		t.Errorf("directory should still be saved: %v", statErr)
	}
}

func TestParseCommandAndFormat(t *testing.T) {
	for n := 1; n <= 8; n++ {
		if _, ok := ParseCommand(n); !ok {
			t.Errorf("ParseCommand(%d) should be valid", n)
		}
	}
	for _, n := range []int{0, 9, -1} {
		if _, ok := ParseCommand(n); ok {
			t.Errorf("ParseCommand(%d) should be invalid", n)
		}
	}
	if Export.String() != "Export Data" {
		t.Errorf("unexpected label: %s", Export)
	}
	if f, err := ParseFormat(" CSV "); err != nil || f != FormatCSV {
		t.Errorf("ParseFormat csv: %v %v", f, err)
	}
	if _, err := ParseFormat("xml"); !errors.Is(err, ErrUnknownFormat) {
		t.Errorf("expected ErrUnknownFormat, got %v", err)
	}
}
