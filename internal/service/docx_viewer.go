package service

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"fmt"
	"html"
	"io"
	"strings"

	"doc-editor-shell/internal/domain"
	apperrors "doc-editor-shell/pkg/errors"
)

const docxDocumentPart = "word/document.xml"

// headingStyles maps WordprocessingML paragraph styles to HTML tags.
// Anything not listed renders as a plain paragraph.
var headingStyles = map[string]string{
	"Title":    "h1",
	"Heading1": "h1",
	"Heading2": "h2",
	"Heading3": "h3",
	"Heading4": "h4",
	"Heading5": "h5",
	"Heading6": "h6",
}

// DocxConverter turns DOCX payloads into display-ready HTML. The conversion
// is deliberately lossy: headings, paragraphs and basic run formatting
// survive, everything else is flattened or skipped with a warning.
type DocxConverter struct {
	logger domain.Logger
}

func NewDocxConverter(logger domain.Logger) *DocxConverter {
	return &DocxConverter{logger: logger}
}

// docxParagraph mirrors the subset of <w:p> the converter understands.
type docxParagraph struct {
	Props struct {
		Style struct {
			Val string `xml:"val,attr"`
		} `xml:"pStyle"`
	} `xml:"pPr"`
	Runs []docxRun `xml:"r"`
}

type docxRun struct {
	Props struct {
		Bold   *struct{} `xml:"b"`
		Italic *struct{} `xml:"i"`
	} `xml:"rPr"`
	Texts    []docxText `xml:"t"`
	Breaks   []struct{} `xml:"br"`
	Drawings []struct{} `xml:"drawing"`
	Pictures []struct{} `xml:"pict"`
}

type docxText struct {
	Value string `xml:",chardata"`
}

// ConvertToHTML extracts word/document.xml from the DOCX archive and renders
// it as an HTML fragment. Returns the fragment plus warnings for content
// that was simplified or dropped. A payload that is not a readable DOCX at
// all fails with a render error.
func (c *DocxConverter) ConvertToHTML(payload []byte) (string, []string, error) {
	reader, err := zip.NewReader(bytes.NewReader(payload), int64(len(payload)))
	if err != nil {
		return "", nil, apperrors.NewRenderFailureError("file is not a valid DOCX archive", err)
	}

	part, err := openArchivePart(reader, docxDocumentPart)
	if err != nil {
		return "", nil, apperrors.NewRenderFailureError("DOCX archive has no document part", err)
	}
	defer part.Close()

	htmlOut, warnings, err := c.renderDocumentXML(part)
	if err != nil {
		return "", nil, apperrors.NewRenderFailureError("failed to parse DOCX content", err)
	}
	if len(warnings) > 0 && c.logger != nil {
		c.logger.Debug("DOCX conversion degraded", "warnings", strings.Join(warnings, "; "))
	}
	return htmlOut, warnings, nil
}

func openArchivePart(reader *zip.Reader, name string) (io.ReadCloser, error) {
	for _, f := range reader.File {
		if f.Name == name {
			return f.Open()
		}
	}
	return nil, fmt.Errorf("part %s not found", name)
}

func (c *DocxConverter) renderDocumentXML(r io.Reader) (string, []string, error) {
	decoder := xml.NewDecoder(r)

	var out strings.Builder
	var warnings []string
	warned := map[string]bool{}
	warn := func(msg string) {
		if !warned[msg] {
			warned[msg] = true
			warnings = append(warnings, msg)
		}
	}

	for {
		token, err := decoder.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return "", nil, err
		}

		start, ok := token.(xml.StartElement)
		if !ok {
			continue
		}

		switch start.Name.Local {
		case "tbl":
			// Tables are not reconstructed; their cell paragraphs stream
			// through below as plain paragraphs.
			warn("tables were flattened to plain paragraphs")
		case "p":
			var para docxParagraph
			if err := decoder.DecodeElement(&para, &start); err != nil {
				return "", nil, err
			}
			c.writeParagraph(&out, &para, warn)
		}
	}

	return out.String(), warnings, nil
}

func (c *DocxConverter) writeParagraph(out *strings.Builder, para *docxParagraph, warn func(string)) {
	var body strings.Builder
	for _, run := range para.Runs {
		if len(run.Drawings) > 0 || len(run.Pictures) > 0 {
			warn("embedded graphics were skipped")
		}
		for range run.Breaks {
			body.WriteString("<br>")
		}

		var text strings.Builder
		for _, t := range run.Texts {
			text.WriteString(t.Value)
		}
		if text.Len() == 0 {
			continue
		}

		escaped := html.EscapeString(text.String())
		switch {
		case run.Props.Bold != nil && run.Props.Italic != nil:
			body.WriteString("<strong><em>" + escaped + "</em></strong>")
		case run.Props.Bold != nil:
			body.WriteString("<strong>" + escaped + "</strong>")
		case run.Props.Italic != nil:
			body.WriteString("<em>" + escaped + "</em>")
		default:
			body.WriteString(escaped)
		}
	}

	if body.Len() == 0 {
		return
	}

	tag := "p"
	if mapped, ok := headingStyles[para.Props.Style.Val]; ok {
		tag = mapped
	}
	out.WriteString("<" + tag + ">" + body.String() + "</" + tag + ">\n")
}
