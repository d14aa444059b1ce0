// Package pipeline serializes a layout.Document into a self-contained HTML
// page.
//
// MarkupWriter executes the embedded invoice template against the
// Document, then CSSInjection places the stylesheet in a <style> block
// inside <head>. Template text is escaped by html/template; stylesheet
// content has "</" sequences neutralized so it cannot close its block.
//
// The resulting page is what the html2pdf and chrome engines print.
package pipeline
