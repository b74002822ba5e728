// Package detect holds the document-type and duplicate-file heuristics
// run after each upload. Both are pure and best-effort; their findings
// never block the workflow.
package detect

import (
	"fmt"
	"sort"
	"strings"

	"github.com/Followingae/rfm-case-submit/internal/models"
)

type keyword struct {
	text   string
	weight int
}

type docType struct {
	id       string
	label    string
	keywords []keyword
}

var docTypes = []docType{
	{
		id:    "trade-license",
		label: "Trade License",
		keywords: []keyword{
			{"trade license", 3},
			{"license number", 2},
			{"DED", 2},
			{"JAFZA", 2},
			{"DMCC", 2},
			{"RAKEZ", 2},
			{"activities", 1},
			{"expiry", 1},
			{"legal form", 1},
		},
	},
	{
		id:    "passport",
		label: "Passport",
		keywords: []keyword{
			{"passport", 3},
			{"nationality", 2},
			{"date of birth", 2},
			{"machine readable", 2},
			{"surname", 1},
			{"given names", 1},
		},
	},
	{
		id:    "emirates-id",
		label: "Emirates ID",
		keywords: []keyword{
			{"emirates id", 3},
			{"identity card", 2},
			{"ICA", 2},
			{"resident", 1},
			{"id number", 1},
			{"united arab emirates", 1},
		},
	},
	{
		id:    "mdf",
		label: "MDF (Merchant Details Form)",
		keywords: []keyword{
			{"merchant details form", 3},
			{"doing business as", 2},
			{"fee schedule", 2},
			{"settlement", 1},
			{"merchant legal name", 2},
			{"contact person", 1},
			{"magnati", 1},
		},
	},
	{
		id:    "moa",
		label: "Memorandum of Association",
		keywords: []keyword{
			{"memorandum of association", 3},
			{"articles", 1},
			{"shareholders", 1},
			{"capital", 1},
			{"authorized signatory", 2},
			{"incorporation", 1},
		},
	},
	{
		id:    "bank-statement",
		label: "Bank Statement",
		keywords: []keyword{
			{"statement of account", 3},
			{"opening balance", 2},
			{"closing balance", 2},
			{"debit", 1},
			{"credit", 1},
			{"account number", 1},
			{"transaction", 1},
		},
	},
	{
		id:    "vat-certificate",
		label: "VAT Certificate",
		keywords: []keyword{
			{"vat", 2},
			{"tax registration", 3},
			{"TRN", 2},
			{"federal tax authority", 3},
			{"value added tax", 2},
		},
	},
}

// slotExpectedTypes maps a slot id to the document types it should
// match. Slots with no entry always match; detection is opt-in per slot.
var slotExpectedTypes = map[string][]string{
	"trade-license":          {"trade-license"},
	"mdf":                    {"mdf"},
	"main-moa":               {"moa"},
	"amended-moa":            {"moa"},
	"bank-statement":         {"bank-statement"},
	"bank-statement-3m":      {"bank-statement"},
	"sister-company-bs":      {"bank-statement"},
	"personal-statement":     {"bank-statement"},
	"signatory-statement":    {"bank-statement"},
	"home-country-statement": {"bank-statement"},
	"vat-cert":               {"vat-certificate"},
}

// minScore is the floor below which the detector offers no opinion.
const minScore = 2

// minSuggestConfidence gates the mismatch suggestion string.
const minSuggestConfidence = 30

func scoreType(lower string, dt docType) int {
	score := 0
	for _, kw := range dt.keywords {
		if strings.Contains(lower, strings.ToLower(kw.text)) {
			score += kw.weight
		}
	}
	return score
}

func maxPossible(dt docType) int {
	sum := 0
	for _, kw := range dt.keywords {
		sum += kw.weight
	}
	return sum
}

// DocumentType scores extracted text against the known document types
// and checks the best match against the slot it was uploaded into.
// Short, empty, or unrecognizable text yields a neutral result with
// IsMatch true.
func DocumentType(text, expectedSlotID string) models.DocTypeDetection {
	neutral := models.DocTypeDetection{IsMatch: true}
	if len(strings.TrimSpace(text)) < 20 {
		return neutral
	}

	lower := strings.ToLower(text)

	type scored struct {
		docType
		score int
	}
	scores := make([]scored, 0, len(docTypes))
	for _, dt := range docTypes {
		scores = append(scores, scored{dt, scoreType(lower, dt)})
	}
	sort.SliceStable(scores, func(i, j int) bool { return scores[i].score > scores[j].score })

	best := scores[0]
	if best.score < minScore {
		return neutral
	}

	max := maxPossible(best.docType)
	confidence := (best.score*100 + max/2) / max
	if confidence > 100 {
		confidence = 100
	}

	expected, hasExpectation := slotExpectedTypes[expectedSlotID]
	isMatch := !hasExpectation
	for _, id := range expected {
		if id == best.id {
			isMatch = true
		}
	}

	result := models.DocTypeDetection{
		Detected:      best.id,
		DetectedLabel: best.label,
		Confidence:    confidence,
		IsMatch:       isMatch,
	}

	if !isMatch && confidence >= minSuggestConfidence {
		result.Suggestion = fmt.Sprintf("This looks like a %s, not a %s", best.label, expectedLabel(expectedSlotID))
	}

	return result
}

// expectedLabel resolves the human label of a slot's expected type,
// falling back to the slot id itself.
func expectedLabel(slotID string) string {
	for _, id := range slotExpectedTypes[slotID] {
		for _, dt := range docTypes {
			if dt.id == id {
				return dt.label
			}
		}
	}
	return slotID
}
