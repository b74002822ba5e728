package detect

import (
	"fmt"
	"sort"

	"github.com/Followingae/rfm-case-submit/internal/models"
)

// Duplicates groups files across the raw store by (name, byte size) and
// reports every group spanning more than one distinct slot key. Content
// is not hashed; the literal name+size pair is the equality key. Files
// repeated within a single slot are not duplicates.
func Duplicates(fileStore map[models.DocKey][]models.UploadedFile) []models.DuplicateWarning {
	type group struct {
		name  string
		size  int64
		slots []string
	}

	seen := make(map[string]*group)
	var order []string

	keys := make([]models.DocKey, 0, len(fileStore))
	for k := range fileStore {
		keys = append(keys, k)
	}
	// Map iteration order is random; sort keys so the report is stable.
	sort.Slice(keys, func(i, j int) bool { return keys[i].String() < keys[j].String() })

	for _, key := range keys {
		slot := key.String()
		for _, f := range fileStore[key] {
			gk := fmt.Sprintf("%s::%d", f.Name, f.Size)
			g, ok := seen[gk]
			if !ok {
				g = &group{name: f.Name, size: f.Size}
				seen[gk] = g
				order = append(order, gk)
			}
			if !contains(g.slots, slot) {
				g.slots = append(g.slots, slot)
			}
		}
	}

	var warnings []models.DuplicateWarning
	for _, gk := range order {
		g := seen[gk]
		if len(g.slots) > 1 {
			warnings = append(warnings, models.DuplicateWarning{
				FileName: g.name,
				FileSize: g.size,
				Slots:    g.slots,
			})
		}
	}
	return warnings
}

func contains(s []string, v string) bool {
	for _, x := range s {
		if x == v {
			return true
		}
	}
	return false
}
