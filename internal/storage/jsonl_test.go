package storage

import (
	"bufio"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/nulln0ne/amm-pool/internal/model"
)

func TestJsonlJournal_Record(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "nested", "events.jsonl")
	j := NewJsonlJournal(path)

	recs := []model.Record{
		{Kind: model.KindDeposit, Timestamp: 1, Deposit: &model.DepositEvent{Depositor: "0xa11", AmountA: "100", AmountB: "100", Shares: "100"}},
		{Kind: model.KindTrade, Timestamp: 2, Trade: &model.TradeEvent{Trader: "0xb0b", AssetIn: "0xaa", AssetOut: "0xbb", AmountIn: "100", AmountOut: "50"}},
	}
	for _, rec := range recs {
		if err := j.Record(context.Background(), rec); err != nil {
			t.Fatalf("Record: %v", err)
		}
	}

	file, err := os.Open(path)
	if err != nil {
		t.Fatalf("open journal: %v", err)
	}
	defer file.Close()

	var got []model.Record
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		var rec model.Record
		if err := json.Unmarshal(scanner.Bytes(), &rec); err != nil {
			t.Fatalf("unmarshal line: %v", err)
		}
		got = append(got, rec)
	}
	if err := scanner.Err(); err != nil {
		t.Fatalf("scan: %v", err)
	}

	if len(got) != 2 {
		t.Fatalf("lines: got %d want 2", len(got))
	}
	if got[0].Kind != model.KindDeposit || got[0].Deposit == nil || got[0].Deposit.Shares != "100" {
		t.Fatalf("unexpected first record: %+v", got[0])
	}
	if got[1].Kind != model.KindTrade || got[1].Trade == nil || got[1].Trade.AmountOut != "50" {
		t.Fatalf("unexpected second record: %+v", got[1])
	}
}
