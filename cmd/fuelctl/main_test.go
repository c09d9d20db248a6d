package main

import (
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/warp/fuel-ledger/engine"
)

func TestPrintSummary(t *testing.T) {
	nd := func(f float64) decimal.NullDecimal {
		return decimal.NewNullDecimal(decimal.NewFromFloat(f))
	}
	eng := engine.New(engine.DefaultConfig())
	summary := eng.Summarize(
		[]engine.FuelEntry{{Date: "2025-06-15", Distance: nd(1000), Liters: nd(80)}},
		[]engine.AdjustmentEntry{{
			Kind: engine.AdjustmentCompensationPayment, MonthKey: "2025-06", Amount: nd(5000),
		}},
	)

	var out strings.Builder
	printSummary(&out, summary)
	got := out.String()

	for _, want := range []string{"June 2025", "94.00", "5000.00", "closed", summary.Explanation} {
		if !strings.Contains(got, want) {
			t.Errorf("summary output missing %q\n%s", want, got)
		}
	}
}

func TestExplainCommand_EmptyDatabase(t *testing.T) {
	cmd := newRootCommand()
	cmd.SetArgs([]string{"explain", "--db", ":memory:"})

	var out strings.Builder
	cmd.SetOut(&out)
	if err := cmd.Execute(); err != nil {
		t.Fatalf("execute: %v", err)
	}
	if strings.TrimSpace(out.String()) == "" {
		t.Error("expected a non-empty explanation even with no records")
	}
}
