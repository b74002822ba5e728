package validation

import (
	"fmt"
	"strings"

	"github.com/Followingae/rfm-case-submit/internal/models"
)

// ValidateCase grades the whole case: merchant info, the active
// checklist, shareholder KYC, and the cross-conditional rules the
// processing team bounces cases over. Duplicate messages are collapsed,
// first occurrence wins.
func ValidateCase(
	merchant models.MerchantInfo,
	checklist []models.ChecklistItem,
	conditionals map[string]bool,
	shareholders []models.ShareholderKYC,
) []models.ValidationWarning {
	var warnings []models.ValidationWarning

	add := func(t models.WarningType, message, itemID string) {
		warnings = append(warnings, models.ValidationWarning{Type: t, Message: message, ItemID: itemID})
	}

	// Merchant info
	if strings.TrimSpace(merchant.LegalName) == "" {
		add(models.WarningMajor, "Merchant Legal Name is missing", "")
	}
	if strings.TrimSpace(merchant.DBA) == "" {
		add(models.WarningMinor, "Doing Business As (DBA) name is missing", "")
	}

	// Every active item without a file
	for _, item := range checklist {
		if item.IsActive(conditionals) && item.Status == models.StatusMissing {
			add(models.WarningMajor, fmt.Sprintf("Missing required: %s", item.Label), item.ID)
		}
	}

	// Critical documents get a more specific message on top
	if itemMissing(checklist, "mdf") {
		add(models.WarningMajor,
			"MDF (Merchant Details Form) not uploaded — critical for case processing. Ensure all pages and sections are filled.",
			"mdf")
	}
	if itemMissing(checklist, "trade-license") {
		add(models.WarningMajor,
			"Trade License not uploaded — check all pages are included and verify expiry date",
			"trade-license")
	}
	if itemMissing(checklist, "main-moa") {
		add(models.WarningMajor,
			"Main MOA (Memorandum of Association) missing — authorized signatory must be mentioned",
			"main-moa")
	}

	// Shareholder KYC
	if len(shareholders) == 0 {
		add(models.WarningMajor,
			"No shareholders added — Passport & Emirates ID (EID) required for ALL partners with % in Trade License",
			"")
	} else {
		for idx, sh := range shareholders {
			label := strings.TrimSpace(sh.Name)
			if label == "" {
				label = fmt.Sprintf("Shareholder %d", idx+1)
				add(models.WarningMinor, fmt.Sprintf("Shareholder %d: Name is missing", idx+1), "")
			}
			if len(sh.PassportFiles) == 0 {
				add(models.WarningMajor,
					fmt.Sprintf("%s: Passport not uploaded — expired KYC is a major discrepancy", label), "")
			}
			if len(sh.EIDFiles) == 0 {
				add(models.WarningMajor,
					fmt.Sprintf("%s: Emirates ID (EID) not uploaded — expired KYC is a major discrepancy", label), "")
			}
		}
	}

	// Cross-conditional rules
	if conditionals["tenancyExpired"] && itemAbsentOrMissing(checklist, "electricity-bill") {
		add(models.WarningMinor,
			"Tenancy is expired but Electricity Bill not uploaded",
			"electricity-bill")
	}
	if conditionals["noVat"] && itemAbsentOrMissing(checklist, "vat-declaration") {
		add(models.WarningMinor,
			"Merchant has no VAT but VAT Declaration Email not uploaded — common discrepancy",
			"vat-declaration")
	}
	if conditionals["noBankAccount"] && itemAbsentOrMissing(checklist, "poh-email") {
		add(models.WarningMinor,
			"No bank account indicated but POH Email (Proof of Holding) not uploaded — common discrepancy",
			"poh-email")
	}
	if conditionals["nonResidentPartner"] {
		if itemAbsentOrMissing(checklist, "non-resident-address") {
			add(models.WarningMinor,
				"Non-resident partner indicated but home country address proof not uploaded",
				"non-resident-address")
		}
		// Only flagged when the note item exists in this checklist.
		if findItem(checklist, "non-resident-mdf-note") != nil && itemMissing(checklist, "non-resident-mdf-note") {
			add(models.WarningMinor,
				"Non-resident status should be mentioned in the MDF",
				"non-resident-mdf-note")
		}
	}
	if conditionals["sanctionCountryPartner"] && itemAbsentOrMissing(checklist, "uae-address-proof") {
		add(models.WarningMajor,
			"Partners from Sanction Countries — UAE address proof / DEWA bill is mandatory",
			"uae-address-proof")
	}
	if conditionals["isFreezone"] {
		freezoneDocs := []string{"articles-assoc", "share-cert", "cert-incumbency", "board-resolution"}
		missing := 0
		for _, id := range freezoneDocs {
			if itemAbsentOrMissing(checklist, id) {
				missing++
			}
		}
		if missing > 0 {
			add(models.WarningMinor,
				fmt.Sprintf("Freezone company: %d Freezone document(s) still missing", missing), "")
		}
	}
	if conditionals["poaSigning"] && itemAbsentOrMissing(checklist, "poa") {
		add(models.WarningMajor,
			"POA (Power of Attorney) required — someone else is signing the MDF on behalf of the authorized signatory",
			"poa")
	}
	if conditionals["shareholderChanges"] && itemAbsentOrMissing(checklist, "amended-moa") {
		add(models.WarningMinor,
			"Changes in shareholders/signatory/trade name indicated but Amended MOA not uploaded",
			"amended-moa")
	}

	return dedupeByMessage(warnings)
}

// CountByType tallies warnings per grade.
func CountByType(warnings []models.ValidationWarning) (minor, major int) {
	for _, w := range warnings {
		switch w.Type {
		case models.WarningMinor:
			minor++
		case models.WarningMajor:
			major++
		}
	}
	return minor, major
}

func findItem(checklist []models.ChecklistItem, id string) *models.ChecklistItem {
	for i := range checklist {
		if checklist[i].ID == id {
			return &checklist[i]
		}
	}
	return nil
}

// itemMissing reports a present-but-empty slot; absent slots are fine.
func itemMissing(checklist []models.ChecklistItem, id string) bool {
	item := findItem(checklist, id)
	return item != nil && item.Status == models.StatusMissing
}

// itemAbsentOrMissing treats a slot not in this checklist the same as
// an empty one.
func itemAbsentOrMissing(checklist []models.ChecklistItem, id string) bool {
	item := findItem(checklist, id)
	return item == nil || item.Status == models.StatusMissing
}

func dedupeByMessage(warnings []models.ValidationWarning) []models.ValidationWarning {
	seen := make(map[string]bool, len(warnings))
	out := make([]models.ValidationWarning, 0, len(warnings))
	for _, w := range warnings {
		if seen[w.Message] {
			continue
		}
		seen[w.Message] = true
		out = append(out, w)
	}
	return out
}
