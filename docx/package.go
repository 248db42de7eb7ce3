package docx

import (
	"archive/zip"
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"github.com/beevik/etree"
	fixzip "github.com/hidez8891/zip"
)

const wordNS = "http://schemas.openxmlformats.org/wordprocessingml/2006/main"

// Document is a minimal word-processor document: a flat sequence of tables
// and paragraphs packaged into a single-part OPC archive.
type Document struct {
	// page geometry in twentieths of a point, zero values fall back to A4
	// with one inch margins
	PageWidth  int
	PageHeight int
	PageMargin int

	Blocks []any // *Table or *Paragraph
}

// AddTable appends a table to the document body.
func (d *Document) AddTable(t *Table) {
	d.Blocks = append(d.Blocks, t)
}

// AddParagraph appends a paragraph of plain text to the document body.
func (d *Document) AddParagraph(text string) {
	d.Blocks = append(d.Blocks, &Paragraph{Runs: []Run{{Text: text}}})
}

// XML renders the main document part.
func (d *Document) XML() *etree.Document {
	doc := etree.NewDocument()
	doc.CreateProcInst("xml", `version="1.0" encoding="UTF-8" standalone="yes"`)

	root := doc.CreateElement("w:document")
	root.CreateAttr("xmlns:w", wordNS)

	body := root.CreateElement("w:body")
	for _, block := range d.Blocks {
		switch b := block.(type) {
		case *Table:
			body.AddChild(b.Element())
			body.AddChild((&Paragraph{}).element())
		case *Paragraph:
			body.AddChild(b.element())
		}
	}
	width, height, margin := d.PageWidth, d.PageHeight, d.PageMargin
	if width <= 0 {
		width = 11906
	}
	if height <= 0 {
		height = 16838
	}
	if margin <= 0 {
		margin = 1440
	}
	sect := body.CreateElement("w:sectPr")
	size := sect.CreateElement("w:pgSz")
	size.CreateAttr("w:w", fmt.Sprintf("%d", width))
	size.CreateAttr("w:h", fmt.Sprintf("%d", height))
	margins := sect.CreateElement("w:pgMar")
	for _, side := range []string{"top", "right", "bottom", "left"} {
		margins.CreateAttr("w:"+side, fmt.Sprintf("%d", margin))
	}
	return doc
}

const contentTypesXML = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<Types xmlns="http://schemas.openxmlformats.org/package/2006/content-types">
<Default Extension="rels" ContentType="application/vnd.openxmlformats-package.relationships+xml"/>
<Default Extension="xml" ContentType="application/xml"/>
<Override PartName="/word/document.xml" ContentType="application/vnd.openxmlformats-officedocument.wordprocessingml.document.main+xml"/>
</Types>`

const rootRelsXML = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships">
<Relationship Id="rId1" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/officeDocument" Target="word/document.xml"/>
</Relationships>`

// Write serializes the document package to zw.
func (d *Document) Write(zw *zip.Writer) error {
	if err := writeDataToZip(zw, "[Content_Types].xml", []byte(contentTypesXML)); err != nil {
		return fmt.Errorf("unable to write content types: %w", err)
	}
	if err := writeDataToZip(zw, "_rels/.rels", []byte(rootRelsXML)); err != nil {
		return fmt.Errorf("unable to write package relationships: %w", err)
	}
	if err := writeXMLToZip(zw, "word/document.xml", d.XML()); err != nil {
		return fmt.Errorf("unable to write document part: %w", err)
	}
	return nil
}

// Save writes the document to outputPath. With fixZip set the archive is
// rewritten without data descriptors, which some readers require.
func (d *Document) Save(outputPath string, fixZip bool) error {
	tmp, err := os.CreateTemp(filepath.Dir(outputPath), "hdx-*.docx")
	if err != nil {
		return fmt.Errorf("unable to create output file: %w", err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	zw := zip.NewWriter(tmp)
	if err := d.Write(zw); err != nil {
		tmp.Close()
		return err
	}
	if err := zw.Close(); err != nil {
		tmp.Close()
		return fmt.Errorf("unable to finalize archive: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("unable to finalize output file: %w", err)
	}

	if fixZip {
		return copyZipWithoutDataDescriptors(tmpName, outputPath)
	}
	return copyFile(tmpName, outputPath)
}

func copyZipWithoutDataDescriptors(from, to string) error {
	out, err := os.Create(to)
	if err != nil {
		return fmt.Errorf("unable to create target file (%s): %w", to, err)
	}
	defer out.Close()

	r, err := fixzip.OpenReader(from)
	if err != nil {
		return fmt.Errorf("unable to read archive file (%s): %w", from, err)
	}
	defer r.Close()

	w := fixzip.NewWriter(out)
	defer w.Close()

	for _, file := range r.File {
		// unset data descriptor flag.
		file.Flags &= ^fixzip.FlagDataDescriptor

		if err := w.CopyFile(file); err != nil {
			return fmt.Errorf("unable to write target file (%s): %w", to, err)
		}
	}
	return nil
}

func copyFile(from, to string) error {
	data, err := os.ReadFile(from)
	if err != nil {
		return fmt.Errorf("failed to read source file: %w", err)
	}
	if err := os.WriteFile(to, data, 0644); err != nil {
		return fmt.Errorf("failed to write destination file: %w", err)
	}
	return nil
}

func writeXMLToZip(zw *zip.Writer, name string, doc *etree.Document) error {
	var buf bytes.Buffer
	if _, err := doc.WriteTo(&buf); err != nil {
		return err
	}
	return writeDataToZip(zw, name, buf.Bytes())
}

func writeDataToZip(zw *zip.Writer, name string, data []byte) error {
	w, err := zw.Create(name)
	if err != nil {
		return err
	}
	_, err = w.Write(data)
	return err
}
