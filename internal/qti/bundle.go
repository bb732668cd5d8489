// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package qti assembles accepted questions into a QTI 2.1 content package.
//
// A package is a zip archive holding imsmanifest.xml, assessment.xml (the
// assessmentTest) and one assessmentItem document per question under
// items/. Identifiers derive from ordinal position only and entry
// timestamps come from the bundle, so the same questions and timestamp
// always produce byte-identical archives.
package qti

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/pdiddy/qtipack/pkg/types"
)

// QTI and IMS content packaging namespaces.
const (
	NamespaceQTI      = "http://www.imsglobal.org/xsd/imsqti_v2p1"
	NamespaceCP       = "http://www.imsglobal.org/xsd/imscp_v1p1"
	NamespaceLOM      = "http://ltsc.ieee.org/xsd/imsccv1p1/LOM/resource"
	NamespaceXSI      = "http://www.w3.org/2001/XMLSchema-instance"
	SchemaLocationQTI = NamespaceQTI + " http://www.imsglobal.org/xsd/qti/qtiv2p1/imsqti_v2p1.xsd"

	MatchCorrectTemplate = "http://www.imsglobal.org/question/qti_v2p1/rptemplates/match_correct"

	ResourceTypeItem = "imsqti_item_xmlv2p1"
	ResourceTypeTest = "imsqti_test_xmlv2p1"
)

// Archive entry names.
const (
	ManifestEntry   = "imsmanifest.xml"
	AssessmentEntry = "assessment.xml"
	ItemsDir        = "items"
)

// identifierSpace scopes the name-based package identifiers.
var identifierSpace = uuid.NewSHA1(uuid.NameSpaceURL, []byte("https://github.com/pdiddy/qtipack"))

// Meta is the caller-supplied package metadata.
type Meta struct {
	Title       string
	GeneratedAt time.Time
}

// Bundle is an ordered set of accepted questions with identifiers assigned,
// ready to serialize.
type Bundle struct {
	Title       string
	Identifier  string
	GeneratedAt time.Time
	Questions   []types.Question
}

// ItemCount returns the number of questions in the bundle.
func (b Bundle) ItemCount() int { return len(b.Questions) }

// NewBundle copies questions into a bundle and assigns item and choice
// identifiers by position. The package identifier is derived from the
// title, so rebuilding the same quiz keeps the same identifier.
func NewBundle(questions []types.Question, meta Meta) Bundle {
	title := meta.Title
	if title == "" {
		title = types.DefaultTitle
	}

	qs := make([]types.Question, len(questions))
	for i, q := range questions {
		q.ID = ItemID(i + 1)
		choices := make([]types.Choice, len(q.Choices))
		for j, c := range q.Choices {
			c.ID = ChoiceID(q.ID, j+1)
			choices[j] = c
		}
		q.Choices = choices
		qs[i] = q
	}

	return Bundle{
		Title:       title,
		Identifier:  "qtipack-" + uuid.NewSHA1(identifierSpace, []byte(title)).String(),
		GeneratedAt: meta.GeneratedAt.UTC(),
		Questions:   qs,
	}
}

// ItemID returns the identifier of the n-th item (1-based).
func ItemID(n int) string {
	return fmt.Sprintf("item_%04d", n)
}

// ChoiceID returns the identifier of the n-th choice (1-based) of an item.
func ChoiceID(itemID string, n int) string {
	return fmt.Sprintf("%s_c%02d", itemID, n)
}

// ItemPath returns the archive entry name of an item document.
func ItemPath(itemID string) string {
	return ItemsDir + "/" + itemID + ".xml"
}
