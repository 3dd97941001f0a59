package extract

import (
	"archive/zip"
	"encoding/xml"
	"fmt"
	"io"
	"strings"
)

// readDOCX returns the text of the body's top-level paragraphs in document
// order, joined with newlines. Images are not extracted from DOCX files.
func readDOCX(filePath string) (string, error) {
	zr, err := zip.OpenReader(filePath)
	if err != nil {
		return "", fmt.Errorf("open docx: %w", err)
	}
	defer zr.Close()

	rc, err := openPackage(&zr.Reader).open("word/document.xml")
	if err != nil {
		return "", err
	}
	defer rc.Close()

	paragraphs, err := docxParagraphs(rc)
	if err != nil {
		return "", fmt.Errorf("parse document: %w", err)
	}
	return strings.Join(paragraphs, "\n"), nil
}

// docxParagraphs streams document.xml and collects the run text of each
// paragraph that is a direct child of w:body. Text inside text boxes and
// tables is skipped.
func docxParagraphs(r io.Reader) ([]string, error) {
	dec := xml.NewDecoder(r)

	var (
		stack      []string
		paragraphs []string
		current    *strings.Builder
		inText     bool
	)

	for {
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}

		switch t := tok.(type) {
		case xml.StartElement:
			name := t.Name.Local
			parent := ""
			if len(stack) > 0 {
				parent = stack[len(stack)-1]
			}

			switch {
			case name == "p" && parent == "body":
				current = &strings.Builder{}
			case current != nil && parent == "r" && runOwnedByParagraph(stack):
				switch name {
				case "t":
					inText = true
				case "tab":
					current.WriteString("\t")
				case "br", "cr":
					current.WriteString("\n")
				}
			}
			stack = append(stack, name)

		case xml.EndElement:
			name := t.Name.Local
			stack = stack[:len(stack)-1]
			if name == "t" {
				inText = false
			}
			if name == "p" && current != nil && len(stack) > 0 && stack[len(stack)-1] == "body" {
				paragraphs = append(paragraphs, current.String())
				current = nil
			}

		case xml.CharData:
			if inText && current != nil {
				current.Write(t)
			}
		}
	}

	return paragraphs, nil
}

// runOwnedByParagraph reports whether the run on top of stack belongs
// directly to a body paragraph, optionally through a hyperlink or a
// simple field.
func runOwnedByParagraph(stack []string) bool {
	for i := len(stack) - 2; i >= 0; i-- {
		switch stack[i] {
		case "hyperlink", "fldSimple", "smartTag", "ins":
			continue
		case "p":
			return i > 0 && stack[i-1] == "body"
		default:
			return false
		}
	}
	return false
}
