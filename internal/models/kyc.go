package models

import "strings"

// ShareholderDocType distinguishes the two KYC documents collected per
// shareholder.
type ShareholderDocType string

const (
	ShareholderDocPassport ShareholderDocType = "passport"
	ShareholderDocEID      ShareholderDocType = "eid"
)

// ShareholderKYC is one shareholder row. The file lists are a
// display-side mirror of the raw store entries under the matching
// shareholder DocKeys.
type ShareholderKYC struct {
	ID            string         `json:"id"`
	Name          string         `json:"name"`
	Percentage    string         `json:"percentage"`
	PassportFiles []UploadedFile `json:"passportFiles"`
	EIDFiles      []UploadedFile `json:"eidFiles"`
}

// KYCComplete reports whether the shareholder has a name plus at least
// one passport and one EID file.
func (s *ShareholderKYC) KYCComplete() bool {
	return strings.TrimSpace(s.Name) != "" && len(s.PassportFiles) > 0 && len(s.EIDFiles) > 0
}
