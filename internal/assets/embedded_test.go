package assets

import (
	"errors"
	"strings"
	"testing"
)

func TestEmbeddedLoader_LoadStyle(t *testing.T) {
	t.Parallel()

	loader := NewEmbeddedLoader()

	tests := []struct {
		name        string
		styleName   string
		wantErr     error
		wantContain []string
	}{
		{
			name:        "loads invoice theme",
			styleName:   InvoiceStyleName,
			wantContain: []string{"font-family: Helvetica", ".extra-info", ".bill-header", "rgb(50, 50, 200)"},
		},
		{
			name:      "unknown style",
			styleName: "corporate",
			wantErr:   ErrStyleNotFound,
		},
		{
			name:      "empty name",
			styleName: "",
			wantErr:   ErrInvalidAssetName,
		},
		{
			name:      "path traversal",
			styleName: "../secret",
			wantErr:   ErrInvalidAssetName,
		},
		{
			name:      "backslash traversal",
			styleName: "..\\secret",
			wantErr:   ErrInvalidAssetName,
		},
		{
			name:      "extension manipulation",
			styleName: "invoice.css",
			wantErr:   ErrInvalidAssetName,
		},
		{
			name:      "null byte",
			styleName: "invoice\x00",
			wantErr:   ErrInvalidAssetName,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := loader.LoadStyle(tt.styleName)

			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Errorf("LoadStyle(%q) error = %v, want %v", tt.styleName, err, tt.wantErr)
				}
				return
			}

			if err != nil {
				t.Fatalf("LoadStyle(%q) unexpected error: %v", tt.styleName, err)
			}
			for _, want := range tt.wantContain {
				if !strings.Contains(got, want) {
					t.Errorf("LoadStyle(%q) should contain %q", tt.styleName, want)
				}
			}
		})
	}
}

func TestEmbeddedLoader_LoadTemplate(t *testing.T) {
	t.Parallel()

	loader := NewEmbeddedLoader()

	tests := []struct {
		name         string
		templateName string
		wantErr      error
		wantContain  []string
	}{
		{
			name:         "loads invoice template",
			templateName: InvoiceTemplateName,
			wantContain: []string{
				`class="title"`, `class="contact"`, `class="bill-info"`,
				`class="bills-header"`, `class="extra-info"`, `class="total"`,
			},
		},
		{
			name:         "unknown template",
			templateName: "cover",
			wantErr:      ErrTemplateNotFound,
		},
		{
			name:         "path traversal",
			templateName: "../../etc/passwd",
			wantErr:      ErrInvalidAssetName,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := loader.LoadTemplate(tt.templateName)

			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Errorf("LoadTemplate(%q) error = %v, want %v", tt.templateName, err, tt.wantErr)
				}
				return
			}

			if err != nil {
				t.Fatalf("LoadTemplate(%q) unexpected error: %v", tt.templateName, err)
			}
			for _, want := range tt.wantContain {
				if !strings.Contains(got, want) {
					t.Errorf("LoadTemplate(%q) should contain %q", tt.templateName, want)
				}
			}
		})
	}
}

func TestInvoiceAssets(t *testing.T) {
	t.Parallel()

	css, err := InvoiceStyle()
	if err != nil {
		t.Fatalf("InvoiceStyle() error = %v", err)
	}
	if strings.Contains(css, "url(") || strings.Contains(css, "@import") {
		t.Error("invoice theme must not reference external resources")
	}

	tmpl, err := InvoiceTemplate()
	if err != nil {
		t.Fatalf("InvoiceTemplate() error = %v", err)
	}
	for _, ref := range []string{"<link", "<script", "src="} {
		if strings.Contains(tmpl, ref) {
			t.Errorf("invoice template must be self-contained, found %q", ref)
		}
	}
}
