package models

import "fmt"

// DocKeyKind discriminates the two places a raw file can be attached.
type DocKeyKind string

const (
	DocKeySlot           DocKeyKind = "slot"
	DocKeyShareholderDoc DocKeyKind = "shareholderDoc"
)

// DocKey addresses one file list in the raw store: either a checklist
// slot, or one shareholder's passport/EID list. A typed key avoids
// string-encoded composites like "kyc::<id>::passportFiles".
type DocKey struct {
	Kind          DocKeyKind         `json:"kind"`
	SlotID        string             `json:"slotId,omitempty"`
	ShareholderID string             `json:"shareholderId,omitempty"`
	DocType       ShareholderDocType `json:"docType,omitempty"`
}

// SlotKey returns the key for a checklist slot.
func SlotKey(slotID string) DocKey {
	return DocKey{Kind: DocKeySlot, SlotID: slotID}
}

// ShareholderKey returns the key for one shareholder document list.
func ShareholderKey(shareholderID string, docType ShareholderDocType) DocKey {
	return DocKey{Kind: DocKeyShareholderDoc, ShareholderID: shareholderID, DocType: docType}
}

// String renders a stable display form, used in logs and duplicate
// reports.
func (k DocKey) String() string {
	if k.Kind == DocKeySlot {
		return k.SlotID
	}
	return fmt.Sprintf("shareholder:%s:%s", k.ShareholderID, k.DocType)
}
