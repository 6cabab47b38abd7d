package models

import "testing"

func TestTableNames(t *testing.T) {
	if got := (Inquiry{}).TableName(); got != "inquiries" {
		t.Fatalf("unexpected Inquiry table name: %s", got)
	}
	if got := len(All()); got != 8 {
		t.Fatalf("expected 8 models, got %d", got)
	}
}
