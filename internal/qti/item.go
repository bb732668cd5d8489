// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package qti

import (
	"encoding/xml"
	"strconv"

	"github.com/pdiddy/qtipack/pkg/types"
)

const (
	responseID    = "RESPONSE"
	titleMaxRunes = 50
)

type assessmentItem struct {
	XMLName        xml.Name `xml:"assessmentItem"`
	Xmlns          string   `xml:"xmlns,attr"`
	XmlnsXSI       string   `xml:"xmlns:xsi,attr"`
	SchemaLocation string   `xml:"xsi:schemaLocation,attr"`
	Identifier     string   `xml:"identifier,attr"`
	Title          string   `xml:"title,attr"`
	Adaptive       bool     `xml:"adaptive,attr"`
	TimeDependent  bool     `xml:"timeDependent,attr"`

	Response           responseDeclaration  `xml:"responseDeclaration"`
	Outcomes           []outcomeDeclaration `xml:"outcomeDeclaration"`
	Body               itemBody             `xml:"itemBody"`
	ResponseProcessing responseProcessing   `xml:"responseProcessing"`
}

type responseDeclaration struct {
	Identifier      string   `xml:"identifier,attr"`
	Cardinality     string   `xml:"cardinality,attr"`
	BaseType        string   `xml:"baseType,attr"`
	CorrectResponse []string `xml:"correctResponse>value"`
}

type outcomeDeclaration struct {
	Identifier   string `xml:"identifier,attr"`
	Cardinality  string `xml:"cardinality,attr"`
	BaseType     string `xml:"baseType,attr"`
	DefaultValue string `xml:"defaultValue>value"`
}

type itemBody struct {
	Interaction choiceInteraction `xml:"choiceInteraction"`
	Source      *paragraph        `xml:"p,omitempty"`
}

type paragraph struct {
	Class string `xml:"class,attr,omitempty"`
	Text  string `xml:",chardata"`
}

type choiceInteraction struct {
	ResponseIdentifier string         `xml:"responseIdentifier,attr"`
	Shuffle            bool           `xml:"shuffle,attr"`
	MaxChoices         int            `xml:"maxChoices,attr"`
	Prompt             string         `xml:"prompt"`
	Choices            []simpleChoice `xml:"simpleChoice"`
}

type simpleChoice struct {
	Identifier string `xml:"identifier,attr"`
	Text       string `xml:",chardata"`
}

type responseProcessing struct {
	Template string `xml:"template,attr"`
}

// newItem builds the assessmentItem document for q. q must carry its
// assigned identifiers.
func newItem(q types.Question) assessmentItem {
	cardinality := "single"
	maxChoices := 1
	if q.Type == types.QuestionMultiple {
		cardinality = "multiple"
		maxChoices = len(q.Choices)
	}

	choices := make([]simpleChoice, len(q.Choices))
	for i, c := range q.Choices {
		choices[i] = simpleChoice{Identifier: c.ID, Text: c.Text}
	}

	points := strconv.Itoa(q.Points)
	item := assessmentItem{
		Xmlns:          NamespaceQTI,
		XmlnsXSI:       NamespaceXSI,
		SchemaLocation: SchemaLocationQTI,
		Identifier:     q.ID,
		Title:          itemTitle(q.Text),
		Response: responseDeclaration{
			Identifier:      responseID,
			Cardinality:     cardinality,
			BaseType:        "identifier",
			CorrectResponse: q.CorrectIDs(),
		},
		Outcomes: []outcomeDeclaration{
			{Identifier: "SCORE", Cardinality: "single", BaseType: "float", DefaultValue: "0"},
			{Identifier: "MAXSCORE", Cardinality: "single", BaseType: "float", DefaultValue: points},
		},
		Body: itemBody{
			Interaction: choiceInteraction{
				ResponseIdentifier: responseID,
				MaxChoices:         maxChoices,
				Prompt:             q.Text,
				Choices:            choices,
			},
		},
		ResponseProcessing: responseProcessing{Template: MatchCorrectTemplate},
	}
	if q.SourceFile != "" {
		item.Body.Source = &paragraph{Class: "source", Text: "Source: " + q.SourceFile}
	}
	return item
}

func itemTitle(text string) string {
	r := []rune(text)
	if len(r) <= titleMaxRunes {
		return text
	}
	return string(r[:titleMaxRunes]) + "..."
}
