package extract

import (
	"archive/zip"
	"context"
	"encoding/xml"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path"
	"path/filepath"
	"strings"
)

// shapeKind is the closed set of slide shape classes the reader acts on.
type shapeKind int

const (
	shapeOther shapeKind = iota
	shapeText
	shapePicture
)

type presentationXML struct {
	Slides []struct {
		RID string `xml:"http://schemas.openxmlformats.org/officeDocument/2006/relationships id,attr"`
	} `xml:"sldIdLst>sldId"`
}

type slideXML struct {
	Tree struct {
		Shapes []shapeXML `xml:",any"`
	} `xml:"cSld>spTree"`
}

type shapeXML struct {
	XMLName    xml.Name
	Paragraphs []struct {
		Items []struct {
			XMLName xml.Name
			Text    string `xml:"t"`
		} `xml:",any"`
	} `xml:"txBody>p"`
	Blip struct {
		Embed string `xml:"embed,attr"`
	} `xml:"blipFill>blip"`
}

func (s *shapeXML) kind() shapeKind {
	switch s.XMLName.Local {
	case "sp":
		return shapeText
	case "pic":
		return shapePicture
	default:
		return shapeOther
	}
}

func (s *shapeXML) text() string {
	paragraphs := make([]string, len(s.Paragraphs))
	for i, p := range s.Paragraphs {
		var b strings.Builder
		for _, item := range p.Items {
			switch item.XMLName.Local {
			case "r", "fld":
				b.WriteString(item.Text)
			case "br":
				b.WriteString("\n")
			}
		}
		paragraphs[i] = b.String()
	}
	return strings.Join(paragraphs, "\n")
}

// readPPTX walks slides in presentation order. Each text shape contributes
// its text followed by a newline. Each picture is written as
// img_slide_{slide}_{counter}.{ext} with a counter that runs across the
// whole deck.
func readPPTX(ctx context.Context, filePath, imageDir string, logger *slog.Logger) (string, []Image, error) {
	zr, err := zip.OpenReader(filePath)
	if err != nil {
		return "", nil, fmt.Errorf("open pptx: %w", err)
	}
	defer zr.Close()

	p := openPackage(&zr.Reader)

	slides, err := slideParts(p)
	if err != nil {
		return "", nil, err
	}

	var (
		text    strings.Builder
		images  []Image
		counter int
	)

	for i, part := range slides {
		if err := ctx.Err(); err != nil {
			return "", nil, err
		}

		slideNum := i + 1

		var slide slideXML
		if err := p.decode(part, &slide); err != nil {
			return "", nil, fmt.Errorf("parse slide %d: %w", slideNum, err)
		}

		rels, err := p.relationships(part)
		if err != nil {
			return "", nil, err
		}

		for _, shape := range slide.Tree.Shapes {
			switch shape.kind() {
			case shapeText:
				text.WriteString(shape.text())
				text.WriteString("\n")
			case shapePicture:
				target, ok := rels[shape.Blip.Embed]
				if !ok {
					logger.Warn("could not resolve picture", "slide", slideNum, "rel", shape.Blip.Embed)
					continue
				}

				filename := fmt.Sprintf("img_slide_%d_%d.%s", slideNum, counter, imageExt(target))
				if err := copyPart(p, target, filepath.Join(imageDir, filename)); err != nil {
					logger.Warn("could not extract picture", "slide", slideNum, "part", target, "error", err)
					continue
				}

				images = append(images, Image{Filename: filename, PageNumber: slideNum})
				counter++
			}
		}
	}

	return text.String(), images, nil
}

func slideParts(p *pkg) ([]string, error) {
	const presentation = "ppt/presentation.xml"

	var pres presentationXML
	if err := p.decode(presentation, &pres); err != nil {
		return nil, fmt.Errorf("parse presentation: %w", err)
	}

	rels, err := p.relationships(presentation)
	if err != nil {
		return nil, err
	}

	parts := make([]string, 0, len(pres.Slides))
	for _, s := range pres.Slides {
		part, ok := rels[s.RID]
		if !ok {
			return nil, fmt.Errorf("slide relationship %s not found", s.RID)
		}
		parts = append(parts, part)
	}
	return parts, nil
}

func copyPart(p *pkg, part, dst string) error {
	rc, err := p.open(part)
	if err != nil {
		return err
	}
	defer rc.Close()

	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, rc); err != nil {
		out.Close()
		os.Remove(dst)
		return err
	}
	return out.Close()
}

func imageExt(name string) string {
	ext := strings.ToLower(strings.TrimPrefix(path.Ext(name), "."))
	switch ext {
	case "":
		return "bin"
	case "jpeg":
		return "jpg"
	}
	return ext
}
