package main

import (
	"reflect"
	"testing"
)

func TestRewriteDirectEditArgs(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   []string
		want []string
	}{
		{
			name: "no args",
			in:   []string{"pdfmerge"},
			want: []string{"pdfmerge"},
		},
		{
			name: "pdf first token",
			in:   []string{"pdfmerge", "a.pdf", "b.PDF"},
			want: []string{"pdfmerge", "edit", "a.pdf", "b.PDF"},
		},
		{
			name: "pdf after value flag",
			in:   []string{"pdfmerge", "--log-file", "x.log", "a.pdf"},
			want: []string{"pdfmerge", "--log-file", "x.log", "edit", "a.pdf"},
		},
		{
			name: "pdf after equals flag",
			in:   []string{"pdfmerge", "--log-level=debug", "a.pdf"},
			want: []string{"pdfmerge", "--log-level=debug", "edit", "a.pdf"},
		},
		{
			name: "pdf after bool flag",
			in:   []string{"pdfmerge", "--pretty", "a.pdf"},
			want: []string{"pdfmerge", "--pretty", "edit", "a.pdf"},
		},
		{
			name: "pdf after double dash",
			in:   []string{"pdfmerge", "--", "a.pdf"},
			want: []string{"pdfmerge", "--", "edit", "a.pdf"},
		},
		{
			name: "subcommand not rewritten",
			in:   []string{"pdfmerge", "merge", "a.pdf", "b.pdf"},
			want: []string{"pdfmerge", "merge", "a.pdf", "b.pdf"},
		},
		{
			name: "unknown command not rewritten",
			in:   []string{"pdfmerge", "wat"},
			want: []string{"pdfmerge", "wat"},
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := rewriteDirectEditArgs(tt.in)
			if !reflect.DeepEqual(got, tt.want) {
				t.Fatalf("rewriteDirectEditArgs:\n got: %#v\nwant: %#v", got, tt.want)
			}
		})
	}
}
