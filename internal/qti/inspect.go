// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package qti

import (
	"archive/zip"
	"encoding/xml"
	"fmt"
	"io"
	"os"
	"strings"
)

// EntryInfo describes one archive member.
type EntryInfo struct {
	Name       string `json:"name" yaml:"name"`
	Size       uint64 `json:"size" yaml:"size"`
	Compressed uint64 `json:"compressed" yaml:"compressed"`
	WellFormed bool   `json:"well_formed" yaml:"well_formed"`
}

// Summary is the result of inspecting a package archive.
type Summary struct {
	Path        string      `json:"path" yaml:"path"`
	Size        int64       `json:"size" yaml:"size"`
	Identifier  string      `json:"identifier" yaml:"identifier"`
	Title       string      `json:"title" yaml:"title"`
	GeneratedAt string      `json:"generated_at" yaml:"generated_at"`
	ItemCount   int         `json:"item_count" yaml:"item_count"`
	Entries     []EntryInfo `json:"entries" yaml:"entries"`
}

// Valid reports whether the manifest was found and every XML entry parsed.
func (s Summary) Valid() bool {
	if s.Identifier == "" {
		return false
	}
	for _, e := range s.Entries {
		if !e.WellFormed {
			return false
		}
	}
	return true
}

// manifestView reads back the fields newManifest writes. Prefixed LOM
// elements decode by local name.
type manifestView struct {
	Identifier string `xml:"identifier,attr"`
	Title      string `xml:"metadata>lom>general>title>string"`
	Date       string `xml:"metadata>lom>lifeCycle>contribute>date>dateTime"`
	Resources  []struct {
		Type string `xml:"type,attr"`
	} `xml:"resources>resource"`
}

// Inspect opens a package archive and reports its entries, manifest
// metadata, and whether each XML document is well-formed.
func Inspect(path string) (Summary, error) {
	info, err := os.Stat(path)
	if err != nil {
		return Summary{}, fmt.Errorf("stat archive: %w", err)
	}
	zr, err := zip.OpenReader(path)
	if err != nil {
		return Summary{}, fmt.Errorf("opening archive: %w", err)
	}
	defer zr.Close()

	s := Summary{Path: path, Size: info.Size()}
	for _, f := range zr.File {
		data, err := readEntry(f)
		if err != nil {
			return Summary{}, fmt.Errorf("reading %s: %w", f.Name, err)
		}
		e := EntryInfo{
			Name:       f.Name,
			Size:       f.UncompressedSize64,
			Compressed: f.CompressedSize64,
			WellFormed: true,
		}
		if strings.HasSuffix(f.Name, ".xml") {
			e.WellFormed = wellFormed(data) == nil
		}
		s.Entries = append(s.Entries, e)

		if f.Name != ManifestEntry || !e.WellFormed {
			continue
		}
		var m manifestView
		if err := xml.Unmarshal(data, &m); err != nil {
			return Summary{}, fmt.Errorf("decoding manifest: %w", err)
		}
		s.Identifier = m.Identifier
		s.Title = m.Title
		s.GeneratedAt = m.Date
		for _, r := range m.Resources {
			if r.Type == ResourceTypeItem {
				s.ItemCount++
			}
		}
	}
	return s, nil
}

func readEntry(f *zip.File) ([]byte, error) {
	rc, err := f.Open()
	if err != nil {
		return nil, err
	}
	defer rc.Close()
	return io.ReadAll(rc)
}
