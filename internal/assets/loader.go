package assets

// Names of the built-in invoice assets.
const (
	InvoiceStyleName    = "invoice"
	InvoiceTemplateName = "invoice"
)

// AssetLoader defines the contract for loading the invoice stylesheet and
// page template.
type AssetLoader interface {
	// LoadStyle loads a CSS style by name (without .css extension).
	LoadStyle(name string) (string, error)

	// LoadTemplate loads an HTML template by name (without .html extension).
	LoadTemplate(name string) (string, error)
}

// defaultLoader serves the package-level helpers.
var defaultLoader = NewEmbeddedLoader()

// InvoiceStyle returns the embedded invoice theme.
func InvoiceStyle() (string, error) {
	return defaultLoader.LoadStyle(InvoiceStyleName)
}

// InvoiceTemplate returns the embedded invoice page template.
func InvoiceTemplate() (string, error) {
	return defaultLoader.LoadTemplate(InvoiceTemplateName)
}
