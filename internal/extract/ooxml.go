package extract

import (
	"archive/zip"
	"encoding/xml"
	"fmt"
	"io"
	"path"
	"strings"
)

// pkg is an opened Office Open XML package.
type pkg struct {
	files map[string]*zip.File
}

func openPackage(r *zip.Reader) *pkg {
	files := make(map[string]*zip.File, len(r.File))
	for _, f := range r.File {
		files[f.Name] = f
	}
	return &pkg{files: files}
}

func (p *pkg) open(name string) (io.ReadCloser, error) {
	f, ok := p.files[name]
	if !ok {
		return nil, fmt.Errorf("missing part %s", name)
	}
	return f.Open()
}

func (p *pkg) decode(name string, v any) error {
	rc, err := p.open(name)
	if err != nil {
		return err
	}
	defer rc.Close()
	return xml.NewDecoder(rc).Decode(v)
}

type relationshipsXML struct {
	Relationships []struct {
		ID         string `xml:"Id,attr"`
		Target     string `xml:"Target,attr"`
		TargetMode string `xml:"TargetMode,attr"`
	} `xml:"Relationship"`
}

// relationships returns the internal relationship targets of a part,
// resolved to package paths and keyed by relationship id. Parts without a
// relationships file have none.
func (p *pkg) relationships(part string) (map[string]string, error) {
	dir, file := path.Split(part)
	relsName := dir + "_rels/" + file + ".rels"

	targets := make(map[string]string)
	if _, ok := p.files[relsName]; !ok {
		return targets, nil
	}

	var rels relationshipsXML
	if err := p.decode(relsName, &rels); err != nil {
		return nil, fmt.Errorf("parse %s: %w", relsName, err)
	}

	for _, rel := range rels.Relationships {
		if strings.EqualFold(rel.TargetMode, "External") {
			continue
		}
		targets[rel.ID] = resolvePart(dir, rel.Target)
	}
	return targets, nil
}

func resolvePart(dir, target string) string {
	if strings.HasPrefix(target, "/") {
		return strings.TrimPrefix(path.Clean(target), "/")
	}
	return path.Clean(path.Join(dir, target))
}
