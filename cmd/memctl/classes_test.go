package main

import (
	"testing"
)

func TestClassesCommand(t *testing.T) {
	tests := []struct {
		name        string
		args        []string
		config      string
		wantErr     bool
		wantContain []string
	}{
		{
			name:        "small medium and large",
			args:        []string{"24", "200", "200000"},
			config:      "default",
			wantContain: []string{"small", "medium", "2^8", "block 256", "large", "block 200,032"},
		},
		{
			name:        "compact thresholds",
			args:        []string{"40"},
			config:      "compact",
			wantContain: []string{"medium", "2^7", "block 128"},
		},
		{
			name:    "rejects non-numeric size",
			args:    []string{"abc"},
			config:  "default",
			wantErr: true,
		},
		{
			name:    "rejects zero",
			args:    []string{"0"},
			config:  "default",
			wantErr: true,
		},
		{
			name:    "unknown config",
			args:    []string{"10"},
			config:  "huge",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resetFlags(t)
			classesConfig = tt.config

			output, err := captureOutput(t, func() error {
				return runClasses(tt.args)
			})
			if (err != nil) != tt.wantErr {
				t.Fatalf("runClasses() error = %v, wantErr %v", err, tt.wantErr)
			}
			if !tt.wantErr {
				assertContains(t, output, tt.wantContain)
			}
		})
	}
}

func TestClassesCommand_JSON(t *testing.T) {
	resetFlags(t)
	jsonOut = true

	output, err := captureOutput(t, func() error {
		return runClasses([]string{"64", "65", "131072"})
	})
	if err != nil {
		t.Fatalf("runClasses() error = %v", err)
	}

	var rows []classRow
	decodeJSON(t, output, &rows)
	want := []classRow{
		{Size: 64, Allocator: "small", BlockSize: 96, Waste: 32},
		{Size: 65, Allocator: "medium", Exponent: 7, BlockSize: 128, Waste: 63},
		{Size: 131072, Allocator: "large", BlockSize: 131104, Waste: 32},
	}
	if len(rows) != len(want) {
		t.Fatalf("got %d rows, want %d", len(rows), len(want))
	}
	for i := range want {
		if rows[i] != want[i] {
			t.Errorf("row %d = %+v, want %+v", i, rows[i], want[i])
		}
	}
}
