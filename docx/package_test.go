package docx_test

import (
	"archive/zip"
	"bytes"
	"io"
	"strings"
	"testing"

	"hdx/docx"
)

func TestDocumentWrite(t *testing.T) {
	doc := &docx.Document{}
	doc.AddParagraph("before")
	doc.AddTable(&docx.Table{Rows: []*docx.Row{
		{Cells: []*docx.Cell{{Paragraphs: []*docx.Paragraph{{Runs: []docx.Run{{Text: "cell"}}}}}}},
	}})

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	if err := doc.Write(zw); err != nil {
		t.Fatalf("write failed: %v", err)
	}
	if err := zw.Close(); err != nil {
		t.Fatalf("close failed: %v", err)
	}

	zr, err := zip.NewReader(bytes.NewReader(buf.Bytes()), int64(buf.Len()))
	if err != nil {
		t.Fatalf("unreadable archive: %v", err)
	}
	parts := map[string]string{}
	for _, f := range zr.File {
		rc, err := f.Open()
		if err != nil {
			t.Fatalf("open %s: %v", f.Name, err)
		}
		data, err := io.ReadAll(rc)
		rc.Close()
		if err != nil {
			t.Fatalf("read %s: %v", f.Name, err)
		}
		parts[f.Name] = string(data)
	}
	for _, name := range []string{"[Content_Types].xml", "_rels/.rels", "word/document.xml"} {
		if _, ok := parts[name]; !ok {
			t.Errorf("missing part %s", name)
		}
	}
	body := parts["word/document.xml"]
	for _, want := range []string{"<w:tbl>", "<w:sectPr>", ">cell</w:t>", ">before</w:t>"} {
		if !strings.Contains(body, want) {
			t.Errorf("document part missing %s", want)
		}
	}
}
