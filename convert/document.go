package convert

import (
	"fmt"
	"io"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/net/html"

	"hdx/config"
	"hdx/css"
	"hdx/docx"
	"hdx/dom"
)

// textBlocks are elements whose text content becomes a document paragraph.
var textBlocks = map[string]bool{
	"p": true, "h1": true, "h2": true, "h3": true,
	"h4": true, "h5": true, "h6": true,
	"li": true, "blockquote": true, "pre": true,
}

// buildDocument converts one HTML document into a word-processor document.
// Styles from <style> blocks are cascaded and inlined first, then every
// top-level table (and surrounding block text) is mapped into the output.
func buildDocument(r io.Reader, contentType string, extraCSS []byte, cfg *config.DocumentConfig, log *zap.Logger) (*docx.Document, error) {
	root, err := dom.Parse(r, contentType)
	if err != nil {
		return nil, fmt.Errorf("unable to parse html: %w", err)
	}

	css.NewInliner(log).ProcessWithStylesheet(root, extraCSS)

	builder := docx.NewBuilder(nil, log)
	builder.SkipNested = !cfg.Tables.IncludeNested

	out := &docx.Document{
		PageWidth:  cfg.Page.Width,
		PageHeight: cfg.Page.Height,
		PageMargin: cfg.Page.Margin,
	}

	tables := 0
	dom.Walk(root, func(n *html.Node) bool {
		if n.Type != html.ElementNode {
			return true
		}
		name := strings.ToLower(n.Data)
		if name == "table" {
			out.AddTable(builder.FromHTML(n))
			tables++
			return false
		}
		if textBlocks[name] {
			if text := dom.Text(n, skipTables); text != "" {
				out.AddParagraph(text)
			}
			return false
		}
		return true
	})

	log.Debug("Document converted", zap.Int("tables", tables))
	return out, nil
}

func skipTables(n *html.Node) bool {
	return dom.IsElement(n, "table")
}
