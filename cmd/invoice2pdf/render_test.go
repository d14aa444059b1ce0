package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const invoiceJSON = `{
  "company_name": "Acme Corp",
  "contact_name": "Jane Roe",
  "invoice_number": "INV-42",
  "bills": [
    {"description": "Consulting", "amount": 1000},
    {"description": "Travel", "amount": 500, "extra_paragraphs": ["Train", "Hotel"]}
  ]
}`

const invoiceYAML = `company_name: Acme Corp
contact_name: Jane Roe
invoice_number: INV-42
bills:
  - description: Consulting
    amount: 1000
  - description: Travel
    amount: 500
    extra_paragraphs: [Train, Hotel]
`

func writeInvoice(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
	return path
}

// ---------------------------------------------------------------------------
// TestRunRender - One-shot conversion
// ---------------------------------------------------------------------------

func TestRunRender_NativeEngine(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		file    string
		content string
	}{
		{"json invoice", "invoice.json", invoiceJSON},
		{"yaml invoice", "invoice.yaml", invoiceYAML},
		{"yml invoice", "invoice.yml", invoiceYAML},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			input := writeInvoice(t, tt.file, tt.content)
			env := newTestEnv(nil)

			code := runMain(context.Background(), []string{"render", input, "--engine", "native"}, env.Environment)
			if code != ExitSuccess {
				t.Fatalf("exit code = %d, stderr %q", code, env.stderr.String())
			}

			want := strings.TrimSuffix(input, filepath.Ext(input)) + ".pdf"
			pdf, err := os.ReadFile(want)
			if err != nil {
				t.Fatalf("reading output: %v", err)
			}
			if !bytes.HasPrefix(pdf, []byte("%PDF-")) {
				t.Error("output is not a PDF")
			}
			if !strings.Contains(env.stdout.String(), want) {
				t.Errorf("stdout = %q, want output path", env.stdout.String())
			}
		})
	}
}

func TestRunRender_HTML(t *testing.T) {
	t.Parallel()

	input := writeInvoice(t, "invoice.json", invoiceJSON)
	output := filepath.Join(t.TempDir(), "out.html")
	env := newTestEnv(nil)

	code := runMain(context.Background(), []string{"render", input, "--html", "-o", output, "-q"}, env.Environment)
	if code != ExitSuccess {
		t.Fatalf("exit code = %d, stderr %q", code, env.stderr.String())
	}

	html, err := os.ReadFile(output)
	if err != nil {
		t.Fatal(err)
	}
	for _, want := range []string{"TOTAL $1500", "<li>Train</li>", "INV-42"} {
		if !strings.Contains(string(html), want) {
			t.Errorf("HTML missing %q", want)
		}
	}
	if env.stdout.Len() != 0 {
		t.Errorf("--quiet should print nothing, got %q", env.stdout.String())
	}
}

func TestRunRender_Stdout(t *testing.T) {
	t.Parallel()

	input := writeInvoice(t, "invoice.json", invoiceJSON)
	env := newTestEnv(nil)

	code := runMain(context.Background(), []string{"render", input, "--engine", "native", "-o", "-"}, env.Environment)
	if code != ExitSuccess {
		t.Fatalf("exit code = %d, stderr %q", code, env.stderr.String())
	}
	if !bytes.HasPrefix(env.stdout.Bytes(), []byte("%PDF-")) {
		t.Error("stdout should carry the PDF bytes only")
	}
}

func TestRunRender_Errors(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	badJSON := filepath.Join(dir, "bad.json")
	if err := os.WriteFile(badJSON, []byte(`{"bills": [{"amount": "ten"}]}`), 0o600); err != nil {
		t.Fatal(err)
	}
	good := filepath.Join(dir, "good.json")
	if err := os.WriteFile(good, []byte(invoiceJSON), 0o600); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name       string
		args       []string
		wantCode   int
		wantStderr string
	}{
		{"missing file", []string{"render", filepath.Join(dir, "nope.json")}, ExitIO, "failed to read invoice file"},
		{"bad extension", []string{"render", filepath.Join(dir, "invoice.txt")}, ExitUsage, "extension"},
		{"invalid content", []string{"render", badJSON, "--engine", "native"}, ExitUsage, "invalid invoice file"},
		{"two inputs", []string{"render", good, good}, ExitUsage, "one invoice file"},
		{"unknown engine", []string{"render", good, "--engine", "latex"}, ExitUsage, "converter.engine"},
		{"bad timeout", []string{"render", good, "--timeout", "soon"}, ExitUsage, "converter.timeout"},
		{"unwritable output", []string{"render", good, "--engine", "native", "-o", filepath.Join(dir, "missing", "out.pdf")}, ExitIO, "failed to write output file"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			env := newTestEnv(nil)
			code := runMain(context.Background(), tt.args, env.Environment)

			if code != tt.wantCode {
				t.Errorf("exit code = %d, want %d (stderr %q)", code, tt.wantCode, env.stderr.String())
			}
			if !strings.Contains(env.stderr.String(), tt.wantStderr) {
				t.Errorf("stderr = %q, want it to contain %q", env.stderr.String(), tt.wantStderr)
			}
		})
	}
}

// ---------------------------------------------------------------------------
// TestDefaultOutputPath - Output naming
// ---------------------------------------------------------------------------

func TestDefaultOutputPath(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input string
		html  bool
		want  string
	}{
		{"invoice.json", false, "invoice.pdf"},
		{"dir/march.yaml", false, "dir/march.pdf"},
		{"a.b.yml", true, "a.b.html"},
	}

	for _, tt := range tests {
		if got := defaultOutputPath(tt.input, tt.html); got != tt.want {
			t.Errorf("defaultOutputPath(%q, %v) = %q, want %q", tt.input, tt.html, got, tt.want)
		}
	}
}

func TestValidateInvoiceExtension(t *testing.T) {
	t.Parallel()

	for _, ok := range []string{"a.json", "a.yaml", "a.yml", "A.JSON"} {
		if err := validateInvoiceExtension(ok); err != nil {
			t.Errorf("validateInvoiceExtension(%q) = %v", ok, err)
		}
	}
	for _, bad := range []string{"a.md", "a", "a.json.bak"} {
		if err := validateInvoiceExtension(bad); err == nil {
			t.Errorf("validateInvoiceExtension(%q) should fail", bad)
		}
	}
}
