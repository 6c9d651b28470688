package menu

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/crucial707/inventory-tracker/cmd/cli/output"
	"github.com/crucial707/inventory-tracker/cmd/cli/root"
	"github.com/crucial707/inventory-tracker/internal/report"
	"github.com/crucial707/inventory-tracker/internal/session"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
)

var (
	titleStyle = lipgloss.NewStyle().Bold(true)
	warnStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("3"))
)

// errInput marks a value that could not be parsed; the menu reports it and
// carries on.
var errInput = errors.New("invalid input")

// ==========================
// Init Menu
// ==========================

// InitMenu makes the root command run the interactive menu.
func InitMenu(rootCmd *cobra.Command) {
	rootCmd.RunE = func(cmd *cobra.Command, args []string) error {
		return Run(root.Session(), cmd.InOrStdin(), cmd.OutOrStdout())
	}
}

type handler func(sess *session.Session, p *prompter) (done bool)

var handlers = map[session.Command]handler{
	session.Add:    addItem,
	session.View:   viewInventory,
	session.Update: updateItem,
	session.Remove: removeItem,
	session.Export: exportData,
	session.Import: importData,
	session.Report: generateReport,
	session.Exit:   exit,
}

// ==========================
// Run
// ==========================

// Run reports anything that failed to load, asks for the user's email and
// then loops over the numbered menu until Exit is chosen or input ends. Only
// choices 1-8 are counted in the ledger.
func Run(sess *session.Session, in io.Reader, out io.Writer) error {
	p := &prompter{sc: bufio.NewScanner(in), out: out}
	for _, err := range sess.LoadErrors {
		p.warn("Error loading data: %v", err)
	}
	for _, w := range sess.Warnings {
		p.warn("Skipping invalid %s", w)
	}

	email, ok := p.email()
	if !ok {
		exit(sess, p)
		return nil
	}
	if _, err := sess.Login(email); err != nil {
		p.warn("Error saving user emails: %v", err)
	}

	for {
		p.println("")
		p.println(titleStyle.Render("Inventory Management System:"))
		for _, c := range session.Commands() {
			p.printf("%d. %s\n", int(c), c)
		}

		n, err := p.readInt("Choose an option: ")
		if errors.Is(err, io.EOF) {
			exit(sess, p)
			return nil
		}
		if err != nil {
			p.println("Invalid input. Please enter a number.")
			continue
		}
		cmd, ok := session.ParseCommand(n)
		if !ok {
			p.println("Invalid option. Please try again.")
			continue
		}

		if err := sess.Track(cmd); err != nil {
			p.warn("Error recording action: %v", err)
		}
		if handlers[cmd](sess, p) {
			return nil
		}
	}
}

// ==========================
// Handlers
// ==========================

func addItem(sess *session.Session, p *prompter) bool {
	id, err := p.readInt("Enter ID: ")
	if err != nil {
		return p.invalid(err)
	}
	name, err := p.readLine("Enter Name: ")
	if err != nil {
		return p.invalid(err)
	}
	qty, err := p.readInt("Enter Quantity: ")
	if err != nil {
		return p.invalid(err)
	}
	price, err := p.readDecimal("Enter Price: ")
	if err != nil {
		return p.invalid(err)
	}

	sess.AddItem(id, name, qty, price)
	p.println("Item added successfully!")
	return false
}

func viewInventory(sess *session.Session, p *prompter) bool {
	items := sess.Inventory.Items()
	if len(items) == 0 {
		p.println("Inventory is empty.")
		return false
	}
	output.RenderItems(p.out, items)
	return false
}

func updateItem(sess *session.Session, p *prompter) bool {
	id, err := p.readInt("Enter ID of the item to update: ")
	if err != nil {
		return p.invalid(err)
	}

	found := false
	for it := range sess.Inventory.All() {
		if it.ID == id {
			found = true
			break
		}
	}
	if !found {
		p.println("Item not found.")
		return false
	}

	name, err := p.readLine("Enter New Name: ")
	if err != nil {
		return p.invalid(err)
	}
	qty, err := p.readInt("Enter New Quantity: ")
	if err != nil {
		return p.invalid(err)
	}
	price, err := p.readDecimal("Enter New Price: ")
	if err != nil {
		return p.invalid(err)
	}

	sess.UpdateItem(id, name, qty, price)
	p.println("Item updated successfully!")
	return false
}

func removeItem(sess *session.Session, p *prompter) bool {
	id, err := p.readInt("Enter ID of the item to remove: ")
	if err != nil {
		return p.invalid(err)
	}
	if sess.RemoveItem(id) {
		p.println("Item removed successfully!")
	} else {
		p.println("Item not found.")
	}
	return false
}

func exportData(sess *session.Session, p *prompter) bool {
	f, ok := p.format("export")
	if !ok {
		return false
	}
	if _, err := sess.Export(f); err != nil {
		p.warn("Error exporting data: %v", err)
		return false
	}
	p.printf("Data exported to %s successfully!\n", strings.ToUpper(string(f)))
	return false
}

func importData(sess *session.Session, p *prompter) bool {
	f, ok := p.format("import")
	if !ok {
		return false
	}
	n, err := sess.Import(f)
	if err != nil {
		p.warn("Error importing data: %v", err)
		return false
	}
	for _, w := range sess.Warnings {
		p.warn("Skipping invalid %s", w)
	}
	p.printf("Data imported from %s successfully! (%d items)\n", strings.ToUpper(string(f)), n)
	return false
}

func generateReport(sess *session.Session, p *prompter) bool {
	p.println("")
	if err := report.Render(p.out, sess.Report()); err != nil {
		p.warn("Error writing report: %v", err)
	}
	return false
}

func exit(sess *session.Session, p *prompter) bool {
	if err := sess.Close(); err != nil {
		p.warn("Error saving data: %v", err)
	}
	p.println("Exiting. Goodbye!")
	return true
}

// ==========================
// Prompting
// ==========================

type prompter struct {
	sc  *bufio.Scanner
	out io.Writer
}

func (p *prompter) printf(format string, args ...any) {
	fmt.Fprintf(p.out, format, args...)
}

func (p *prompter) println(s string) {
	fmt.Fprintln(p.out, s)
}

func (p *prompter) warn(format string, args ...any) {
	p.println(warnStyle.Render(fmt.Sprintf(format, args...)))
}

// invalid reports a bad value and returns to the menu. End of input is left
// for the menu loop to notice on its next read.
func (p *prompter) invalid(err error) bool {
	if !errors.Is(err, io.EOF) {
		p.println("Invalid input. Please try again.")
	}
	return false
}

func (p *prompter) readLine(prompt string) (string, error) {
	p.printf("%s", prompt)
	if !p.sc.Scan() {
		if err := p.sc.Err(); err != nil {
			return "", err
		}
		return "", io.EOF
	}
	return strings.TrimSpace(p.sc.Text()), nil
}

func (p *prompter) readInt(prompt string) (int, error) {
	s, err := p.readLine(prompt)
	if err != nil {
		return 0, err
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", errInput, s)
	}
	return n, nil
}

func (p *prompter) readDecimal(prompt string) (decimal.Decimal, error) {
	s, err := p.readLine(prompt)
	if err != nil {
		return decimal.Zero, err
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: %q", errInput, s)
	}
	return d, nil
}

func (p *prompter) email() (string, bool) {
	for {
		p.println("\nEnter your email:")
		s, err := p.readLine("")
		if err != nil {
			return "", false
		}
		if s != "" {
			return s, true
		}
	}
}

func (p *prompter) format(verb string) (session.Format, bool) {
	p.printf("Choose %s format: \n1. CSV\n2. JSON\n", verb)
	n, err := p.readInt("")
	switch {
	case err != nil:
		p.invalid(err)
		return "", false
	case n == 1:
		return session.FormatCSV, true
	case n == 2:
		return session.FormatJSON, true
	}
	p.println("Invalid choice.")
	return "", false
}
