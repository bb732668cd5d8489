// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package qti

import (
	"encoding/xml"
	"fmt"
	"time"
)

type manifest struct {
	XMLName       xml.Name      `xml:"manifest"`
	Xmlns         string        `xml:"xmlns,attr"`
	XmlnsLOM      string        `xml:"xmlns:lom,attr"`
	XmlnsQTI      string        `xml:"xmlns:imsqti,attr"`
	Identifier    string        `xml:"identifier,attr"`
	Metadata      metadata      `xml:"metadata"`
	Organizations organizations `xml:"organizations"`
	Resources     []resource    `xml:"resources>resource"`
}

type metadata struct {
	Schema        string `xml:"schema"`
	SchemaVersion string `xml:"schemaversion"`
	LOM           lom    `xml:"lom:lom"`
}

type lom struct {
	Title       string `xml:"lom:general>lom:title>lom:string"`
	Description string `xml:"lom:general>lom:description>lom:string"`
	Date        string `xml:"lom:lifeCycle>lom:contribute>lom:date>lom:dateTime"`
}

type organizations struct {
	Default      string       `xml:"default,attr"`
	Organization organization `xml:"organization"`
}

type organization struct {
	Identifier string `xml:"identifier,attr"`
	Title      string `xml:"title"`
}

type resource struct {
	Identifier   string       `xml:"identifier,attr"`
	Type         string       `xml:"type,attr"`
	Href         string       `xml:"href,attr"`
	Files        []file       `xml:"file"`
	Dependencies []dependency `xml:"dependency"`
}

type file struct {
	Href string `xml:"href,attr"`
}

type dependency struct {
	IdentifierRef string `xml:"identifierref,attr"`
}

// newManifest builds imsmanifest.xml: package metadata, one resource for
// the assessment test and one per item.
func newManifest(b Bundle) manifest {
	testID := "assessment_" + b.Identifier
	test := resource{
		Identifier: testID,
		Type:       ResourceTypeTest,
		Href:       AssessmentEntry,
		Files:      []file{{Href: AssessmentEntry}},
	}

	resources := make([]resource, 0, len(b.Questions)+1)
	resources = append(resources, test)
	for _, q := range b.Questions {
		href := ItemPath(q.ID)
		resources = append(resources, resource{
			Identifier: q.ID,
			Type:       ResourceTypeItem,
			Href:       href,
			Files:      []file{{Href: href}},
		})
		resources[0].Dependencies = append(resources[0].Dependencies, dependency{IdentifierRef: q.ID})
	}

	return manifest{
		Xmlns:      NamespaceCP,
		XmlnsLOM:   NamespaceLOM,
		XmlnsQTI:   NamespaceQTI,
		Identifier: "man_" + b.Identifier,
		Metadata: metadata{
			Schema:        "IMS Content",
			SchemaVersion: "1.1.3",
			LOM: lom{
				Title:       b.Title,
				Description: itemCountText(b.ItemCount()),
				Date:        b.GeneratedAt.UTC().Format(time.RFC3339),
			},
		},
		Organizations: organizations{
			Default:      "org_" + b.Identifier,
			Organization: organization{Identifier: "org_" + b.Identifier, Title: b.Title},
		},
		Resources: resources,
	}
}

func itemCountText(n int) string {
	if n == 1 {
		return "1 item"
	}
	return fmt.Sprintf("%d items", n)
}
