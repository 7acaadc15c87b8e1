package inmemdb

import (
	"context"
	"testing"
)

func TestCompletedRepository(t *testing.T) {
	ctx := context.Background()
	db, _ := Open()
	repo := NewCompletedRepository(db)

	if got, err := repo.GetCompleted(ctx, "completedTests_1"); err != nil || got != "" {
		t.Fatalf("GetCompleted() = %q, %v; want empty", got, err)
	}
	if err := repo.SetCompleted(ctx, "completedTests_1", `["1"]`); err != nil {
		t.Fatalf("SetCompleted() error = %v", err)
	}
	if got, _ := repo.GetCompleted(ctx, "completedTests_1"); got != `["1"]` {
		t.Errorf("GetCompleted() = %q, want %q", got, `["1"]`)
	}
	if got, _ := repo.GetCompleted(ctx, "completedTests_2"); got != "" {
		t.Errorf("GetCompleted() = %q, want empty", got)
	}
}
