// Regenerates the invoice sample under examples/fixtures: a fillable
// template package, its manifest, a data file, and a message catalog.
// Run from the repository root.
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/goliatone/go-docgen/pkg/archive"
)

const outputDir = "examples/fixtures"

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to generate sample: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return err
	}

	stage, err := os.MkdirTemp("", "docgen-sample-*")
	if err != nil {
		return err
	}
	defer os.RemoveAll(stage)

	for name, content := range templateMembers() {
		path := filepath.Join(stage, filepath.FromSlash(name))
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return err
		}
		if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
			return err
		}
	}

	templatePath := filepath.Join(outputDir, "invoice.odt")
	if err := archive.Repack(stage, templatePath); err != nil {
		return err
	}

	sidecars := map[string]string{
		"invoice.manifest.yaml": sampleManifest,
		"invoice-data.yaml":     sampleData,
		"messages.yaml":         sampleMessages,
	}
	for name, content := range sidecars {
		if err := os.WriteFile(filepath.Join(outputDir, name), []byte(content), 0o644); err != nil {
			return err
		}
	}

	fmt.Printf("✓ Wrote sample template → %s\n", templatePath)
	return nil
}

func templateMembers() map[string]string {
	return map[string]string{
		"mimetype":              "application/vnd.oasis.opendocument.text",
		"content.xml":           sampleContentXML,
		"styles.xml":            sampleStylesXML,
		"META-INF/manifest.xml": samplePackageManifest,
	}
}

const sampleContentXML = `<?xml version="1.0" encoding="UTF-8"?>
<office:document-content xmlns:office="urn:oasis:names:tc:opendocument:xmlns:office:1.0" xmlns:style="urn:oasis:names:tc:opendocument:xmlns:style:1.0" xmlns:text="urn:oasis:names:tc:opendocument:xmlns:text:1.0" xmlns:table="urn:oasis:names:tc:opendocument:xmlns:table:1.0" xmlns:fo="urn:oasis:names:tc:opendocument:xmlns:xsl-fo-compatible:1.0" office:version="1.2">
  <office:body>
    <office:text>
      <text:h text:outline-level="1">{{ translate("invoice_title") }} {{ number }}</text:h>
      <text:p>{{ customer.name }}</text:p>
      <text:p>{{ customer.address }}</text:p>
      <table:table table:name="Items">
        <table:table-column table:number-columns-repeated="3"/>
        {% for item in items %}
        <table:table-row>
          <table:table-cell office:value-type="string"><text:p>{{ item.description }}</text:p></table:table-cell>
          <table:table-cell office:value-type="float" office:value="{{ item.quantity }}"><text:p>{{ item.quantity }}</text:p></table:table-cell>
          <table:table-cell office:value-type="float" office:value="{{ item.price }}"><text:p>{{ item.price|floatformat:2 }}</text:p></table:table-cell>
        </table:table-row>
        {% endfor %}
      </table:table>
      <text:p>{{ translate("total_due") }}: {{ total|money }}</text:p>
      {% if notes %}
      <text:p>{{ notes|sanitize }}</text:p>
      {% endif %}
      <text:p>{{ translate("footer_generated") }}</text:p>
    </office:text>
  </office:body>
</office:document-content>
`

const sampleStylesXML = `<?xml version="1.0" encoding="UTF-8"?>
<office:document-styles xmlns:office="urn:oasis:names:tc:opendocument:xmlns:office:1.0" xmlns:style="urn:oasis:names:tc:opendocument:xmlns:style:1.0" xmlns:fo="urn:oasis:names:tc:opendocument:xmlns:xsl-fo-compatible:1.0" office:version="1.2">
  <office:styles>
    <style:default-style style:family="paragraph">
      <style:text-properties fo:language="{{ lang_code }}" fo:country="none" fo:font-size="11pt"/>
    </style:default-style>
  </office:styles>
</office:document-styles>
`

const samplePackageManifest = `<?xml version="1.0" encoding="UTF-8"?>
<manifest:manifest xmlns:manifest="urn:oasis:names:tc:opendocument:xmlns:manifest:1.0" manifest:version="1.2">
  <manifest:file-entry manifest:full-path="/" manifest:media-type="application/vnd.oasis.opendocument.text"/>
  <manifest:file-entry manifest:full-path="content.xml" manifest:media-type="text/xml"/>
  <manifest:file-entry manifest:full-path="styles.xml" manifest:media-type="text/xml"/>
</manifest:manifest>
`

const sampleManifest = `name: invoice
description: Fields of the invoice sample template
language: pl
fields:
  - name: number
    title: Invoice number
    prompt: Invoice number?
    required: true
    schema:
      type: integer
      minimum: 1
  - name: customer
    title: Customer
    required: true
    schema:
      type: object
      required: [name]
      properties:
        name:
          type: string
          minLength: 1
        address:
          type: string
  - name: items
    title: Line items
    required: true
    schema:
      type: array
      minItems: 1
      items:
        type: object
        required: [description, quantity, price]
        properties:
          description:
            type: string
          quantity:
            type: number
          price:
            type: number
  - name: total
    title: Total due
    required: true
    schema:
      type: number
  - name: notes
    title: Notes
    default: ""
`

const sampleData = `id: invoice-2026-0042
number: 42
customer:
  name: Fish & Chips Ltd
  address: 1 Harbour Way, Gdansk
items:
  - description: Herring fillet
    quantity: 12
    price: 3.5
  - description: Chips, large
    quantity: 4
    price: 2.25
total: 51.0
notes: Payment due in 14 days
`

const sampleMessages = `pl:
  invoice_title: Faktura
  total_due: Do zaplaty
  footer_generated: Wygenerowano automatycznie
en:
  invoice_title: Invoice
  total_due: Total due
  footer_generated: Generated automatically
`
