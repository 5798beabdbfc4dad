// Command settle prints the settlement for a room snapshot read from a JSON
// file or stdin.
//
// Usage:
//
//	settle [-f snapshot.json] [-format text|json] [-locale vi-VN] [-currency VND]
//
// Snapshot format:
//
//	{
//	  "group": {"id": "ABC-123", "name": "Trip", "members": [{"id": "a", "name": "Alice"}]},
//	  "expenses": [{"id": "e1", "description": "Hotel", "amount": 300000, "paid_by": "a", "split_among": ["a"]}]
//	}
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/mmynk/splitroom/internal/calculator"
	"github.com/mmynk/splitroom/internal/currency"
	"github.com/mmynk/splitroom/internal/models"
	"github.com/mmynk/splitroom/internal/report"
	"github.com/mmynk/splitroom/pkg/logging"
)

type snapshot struct {
	Group struct {
		ID      string `json:"id"`
		Name    string `json:"name"`
		Members []struct {
			ID   string `json:"id"`
			Name string `json:"name"`
		} `json:"members"`
	} `json:"group"`
	Expenses []struct {
		ID          string   `json:"id"`
		Description string   `json:"description"`
		Amount      int64    `json:"amount"`
		PaidBy      string   `json:"paid_by"`
		SplitAmong  []string `json:"split_among"`
		CreatedAt   int64    `json:"created_at"`
	} `json:"expenses"`
}

func (s *snapshot) toModels() (*models.Group, []models.Expense) {
	group := &models.Group{
		ID:      s.Group.ID,
		Name:    s.Group.Name,
		Members: make([]models.Member, len(s.Group.Members)),
	}
	if group.Name == "" && group.ID != "" {
		group.Name = models.DefaultGroupName(group.ID)
	}
	for i, m := range s.Group.Members {
		group.Members[i] = models.Member{ID: m.ID, Name: m.Name}
	}

	expenses := make([]models.Expense, len(s.Expenses))
	for i, e := range s.Expenses {
		expenses[i] = models.Expense{
			ID:          e.ID,
			GroupID:     group.ID,
			Description: e.Description,
			Amount:      e.Amount,
			PaidBy:      e.PaidBy,
			SplitAmong:  e.SplitAmong,
			CreatedAt:   e.CreatedAt,
		}
	}
	return group, expenses
}

type options struct {
	input    string
	format   string
	locale   string
	currency string
}

func main() {
	var opts options
	flag.StringVar(&opts.input, "f", "-", "snapshot file, - for stdin")
	flag.StringVar(&opts.format, "format", "text", "output format: text or json")
	flag.StringVar(&opts.locale, "locale", currency.DefaultLocale, "locale for amounts")
	flag.StringVar(&opts.currency, "currency", currency.DefaultCode, "ISO 4217 currency code")
	flag.Parse()

	logging.Setup(os.Getenv("LOG_LEVEL"), "text")

	if err := run(opts, os.Stdin, os.Stdout); err != nil {
		slog.Error("settle failed", "error", err)
		os.Exit(1)
	}
}

func run(opts options, stdin io.Reader, stdout io.Writer) error {
	in := stdin
	if opts.input != "-" {
		f, err := os.Open(opts.input)
		if err != nil {
			return fmt.Errorf("failed to open snapshot: %w", err)
		}
		defer f.Close()
		in = f
	}

	var snap snapshot
	if err := json.NewDecoder(in).Decode(&snap); err != nil {
		return fmt.Errorf("failed to decode snapshot: %w", err)
	}
	group, expenses := snap.toModels()

	settlement, err := calculator.Settle(group.Members, expenses)
	if err != nil {
		return err
	}
	slog.Debug("Settlement computed",
		"members", len(group.Members),
		"expenses", settlement.ExpenseCount,
		"transactions", len(settlement.Transactions),
	)

	switch opts.format {
	case "json":
		enc := json.NewEncoder(stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(settlementJSON(settlement))
	case "text":
		f, err := currency.New(opts.locale, opts.currency)
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(stdout, report.Render(group, settlement, f))
		return err
	default:
		return fmt.Errorf("unknown format %q", opts.format)
	}
}

type memberJSON struct {
	MemberID   string  `json:"member_id"`
	MemberName string  `json:"member_name"`
	TotalPaid  float64 `json:"total_paid"`
	TotalOwed  float64 `json:"total_owed"`
	Balance    float64 `json:"balance"`
}

type transactionJSON struct {
	From   string `json:"from"`
	To     string `json:"to"`
	Amount int64  `json:"amount"`
}

type outputJSON struct {
	Summaries     []memberJSON      `json:"summaries"`
	Transactions  []transactionJSON `json:"transactions"`
	TotalExpenses int64             `json:"total_expenses"`
	ExpenseCount  int               `json:"expense_count"`
}

func settlementJSON(s *calculator.Settlement) outputJSON {
	out := outputJSON{
		Summaries:     make([]memberJSON, len(s.Summaries)),
		Transactions:  make([]transactionJSON, len(s.Transactions)),
		TotalExpenses: s.TotalExpenses,
		ExpenseCount:  s.ExpenseCount,
	}
	for i, m := range s.Summaries {
		out.Summaries[i] = memberJSON(m)
	}
	for i, t := range s.Transactions {
		out.Transactions[i] = transactionJSON{From: t.From, To: t.To, Amount: t.Amount}
	}
	return out
}
