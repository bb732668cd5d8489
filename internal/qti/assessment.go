// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package qti

import "encoding/xml"

type assessmentTest struct {
	XMLName    xml.Name `xml:"assessmentTest"`
	Xmlns      string   `xml:"xmlns,attr"`
	Identifier string   `xml:"identifier,attr"`
	Title      string   `xml:"title,attr"`
	TestPart   testPart `xml:"testPart"`
}

type testPart struct {
	Identifier     string            `xml:"identifier,attr"`
	NavigationMode string            `xml:"navigationMode,attr"`
	SubmissionMode string            `xml:"submissionMode,attr"`
	Section        assessmentSection `xml:"assessmentSection"`
}

type assessmentSection struct {
	Identifier string              `xml:"identifier,attr"`
	Title      string              `xml:"title,attr"`
	Visible    bool                `xml:"visible,attr"`
	Items      []assessmentItemRef `xml:"assessmentItemRef"`
}

type assessmentItemRef struct {
	Identifier string `xml:"identifier,attr"`
	Href       string `xml:"href,attr"`
}

// newAssessment builds the assessmentTest referencing every item in order.
func newAssessment(b Bundle) assessmentTest {
	refs := make([]assessmentItemRef, len(b.Questions))
	for i, q := range b.Questions {
		refs[i] = assessmentItemRef{Identifier: q.ID, Href: ItemPath(q.ID)}
	}
	return assessmentTest{
		Xmlns:      NamespaceQTI,
		Identifier: "assessment_" + b.Identifier,
		Title:      b.Title,
		TestPart: testPart{
			Identifier:     "testpart_1",
			NavigationMode: "linear",
			SubmissionMode: "individual",
			Section: assessmentSection{
				Identifier: "section_1",
				Title:      "Questions",
				Visible:    true,
				Items:      refs,
			},
		},
	}
}
