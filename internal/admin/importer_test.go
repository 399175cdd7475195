package admin

import (
	"strings"
	"testing"
)

func TestParseUserCSV(t *testing.T) {
	csv := "Name, EMAIL ,Mobile,Company,AccessFlag\n" +
		"Asha Rao,asha@example.com,9876543210,Acme,true\n" +
		" Vikram Shah , vikram@example.com ,9123456780,Globex\n"

	rows, err := ParseUserCSV(strings.NewReader(csv))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("rows = %d, want 2", len(rows))
	}
	if rows[0]["name"] != "Asha Rao" || rows[0]["email"] != "asha@example.com" {
		t.Fatalf("row 0 = %v", rows[0])
	}
	if rows[0]["accessflag"] != "true" {
		t.Fatalf("row 0 accessflag = %q", rows[0]["accessflag"])
	}
	// Ragged row: missing accessflag column is simply absent.
	if rows[1]["name"] != "Vikram Shah" || rows[1]["mobile"] != "9123456780" {
		t.Fatalf("row 1 = %v", rows[1])
	}
	if _, ok := rows[1]["accessflag"]; ok {
		t.Fatalf("row 1 should not have accessflag: %v", rows[1])
	}
}

func TestParseUserCSVEmpty(t *testing.T) {
	rows, err := ParseUserCSV(strings.NewReader(""))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if len(rows) != 0 {
		t.Fatalf("rows = %d, want 0", len(rows))
	}
}

func TestTempPassword(t *testing.T) {
	tests := []struct {
		name   string
		mobile string
		want   string
	}{
		{"Asha", "9876543210", "AS3210"},
		{"vikram", "9123456780", "VI6780"},
		{"A", "123", "A123"},
		{"", "", ""},
		{"Øyvind", "9876543210", "ØY3210"},
		{"अनु", "9876543210", "अन3210"},
	}
	for _, tt := range tests {
		if got := TempPassword(tt.name, tt.mobile); got != tt.want {
			t.Errorf("TempPassword(%q, %q) = %q, want %q", tt.name, tt.mobile, got, tt.want)
		}
	}
}

func TestParseAccessFlag(t *testing.T) {
	tests := []struct {
		in   string
		want bool
	}{
		{"false", false},
		{" FALSE ", false},
		{"true", true},
		{"", true},
		{"yes", true},
	}
	for _, tt := range tests {
		if got := ParseAccessFlag(tt.in); got != tt.want {
			t.Errorf("ParseAccessFlag(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}
