package session

import (
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/Followingae/rfm-case-submit/internal/checklist"
	"github.com/Followingae/rfm-case-submit/internal/models"
)

// MaxCases limits concurrent in-memory cases to prevent memory exhaustion
const MaxCases = 50

// CaseMaxAge is how long to keep idle cases before cleanup
const CaseMaxAge = 30 * time.Minute

// CaseKeepAliveWindow is how long to keep cases that are actively being used
const CaseKeepAliveWindow = 5 * time.Minute

// Manager owns the live state of every open intake case.
type Manager struct {
	cases map[string]*CaseState
	mu    sync.RWMutex
}

// CaseState is the full in-memory state of one intake case. The Files
// map is the single source of truth for attachments; checklist items
// and shareholder file lists mirror it and are kept in lockstep by the
// manager's attach/remove operations.
type CaseState struct {
	ID            string                                  `json:"id"`
	Merchant      models.MerchantInfo                     `json:"merchant"`
	Items         []models.ChecklistItem                  `json:"items"`
	Conditionals  map[string]bool                         `json:"conditionals"`
	Shareholders  []*models.ShareholderKYC                `json:"shareholders"`
	Files         map[models.DocKey][]models.UploadedFile `json:"-"`
	MDF           *models.ParsedMDF                       `json:"parsedMDF,omitempty"`
	MDFConfidence int                                     `json:"mdfConfidence,omitempty"`
	TradeLicense  *models.ParsedTradeLicense              `json:"parsedTradeLicense,omitempty"`
	TLConfidence  int                                     `json:"tradeLicenseConfidence,omitempty"`
	MDFScan       *models.MDFValidationResult             `json:"mdfScan,omitempty"`
	Detections    map[string]models.DocTypeDetection      `json:"detections"`
	Duplicates    []models.DuplicateWarning               `json:"duplicates"`
	CreatedAt     time.Time                               `json:"createdAt"`
	LastAccessed  time.Time                               `json:"-"`
}

// NewManager creates a new case manager.
func NewManager() *Manager {
	return &Manager{
		cases: make(map[string]*CaseState),
	}
}

// CreateCase opens a new case with the checklist for the given merchant
// info and returns a snapshot of the fresh state.
func (m *Manager) CreateCase(merchant models.MerchantInfo) *CaseState {
	m.cleanupOldCasesIfNeeded()

	now := time.Now()
	state := &CaseState{
		ID:           uuid.New().String(),
		Merchant:     merchant,
		Items:        checklist.BuildItems(checklist.ForCase(merchant.CaseType, merchant.BranchMode)),
		Conditionals: make(map[string]bool),
		Shareholders: []*models.ShareholderKYC{},
		Files:        make(map[models.DocKey][]models.UploadedFile),
		Detections:   make(map[string]models.DocTypeDetection),
		Duplicates:   []models.DuplicateWarning{},
		CreatedAt:    now,
		LastAccessed: now,
	}

	m.mu.Lock()
	m.cases[state.ID] = state
	m.mu.Unlock()

	return snapshot(state)
}

// Snapshot returns a deep copy of the case state, safe to serialize
// while upload jobs keep mutating the original.
func (m *Manager) Snapshot(id string) (*CaseState, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	state, ok := m.cases[id]
	if !ok {
		return nil, false
	}
	return snapshot(state), true
}

// UpdateMerchant changes the merchant info. A change of case type or
// branch mode swaps the checklist template set, which invalidates every
// attachment: checklist, conditionals, shareholders, files and parsed
// data are all reset. Name-only edits keep everything.
func (m *Manager) UpdateMerchant(id string, merchant models.MerchantInfo) (*CaseState, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	state, ok := m.cases[id]
	if !ok {
		return nil, false
	}

	templatesChanged := state.Merchant.CaseType != merchant.CaseType ||
		state.Merchant.BranchMode != merchant.BranchMode

	state.Merchant = merchant
	state.LastAccessed = time.Now()

	if templatesChanged {
		fmt.Printf("[Case %s] Case type changed to %s, resetting checklist\n", shortID(id), merchant.CaseType)
		state.Items = checklist.BuildItems(checklist.ForCase(merchant.CaseType, merchant.BranchMode))
		state.Conditionals = make(map[string]bool)
		state.Shareholders = []*models.ShareholderKYC{}
		state.Files = make(map[models.DocKey][]models.UploadedFile)
		state.Detections = make(map[string]models.DocTypeDetection)
		state.Duplicates = []models.DuplicateWarning{}
		state.MDF = nil
		state.MDFConfidence = 0
		state.TradeLicense = nil
		state.TLConfidence = 0
		state.MDFScan = nil
	}

	return snapshot(state), true
}

// SetConditional flips one conditional flag.
func (m *Manager) SetConditional(id, key string, value bool) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	state, ok := m.cases[id]
	if !ok {
		return false
	}

	state.Conditionals[key] = value
	state.LastAccessed = time.Now()
	return true
}

// AddShareholder appends an empty shareholder row and returns it.
func (m *Manager) AddShareholder(id string) (*models.ShareholderKYC, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	state, ok := m.cases[id]
	if !ok {
		return nil, false
	}

	sh := &models.ShareholderKYC{
		ID:            uuid.New().String(),
		PassportFiles: []models.UploadedFile{},
		EIDFiles:      []models.UploadedFile{},
	}
	state.Shareholders = append(state.Shareholders, sh)
	state.LastAccessed = time.Now()

	copied := *sh
	return &copied, true
}

// UpdateShareholder sets name and percentage for one shareholder row.
func (m *Manager) UpdateShareholder(id, shareholderID, name, percentage string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	state, ok := m.cases[id]
	if !ok {
		return false
	}

	for _, sh := range state.Shareholders {
		if sh.ID == shareholderID {
			sh.Name = name
			sh.Percentage = percentage
			state.LastAccessed = time.Now()
			return true
		}
	}
	return false
}

// RemoveShareholder drops a shareholder row together with its raw file
// lists.
func (m *Manager) RemoveShareholder(id, shareholderID string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	state, ok := m.cases[id]
	if !ok {
		return false
	}

	for i, sh := range state.Shareholders {
		if sh.ID == shareholderID {
			state.Shareholders = append(state.Shareholders[:i], state.Shareholders[i+1:]...)
			delete(state.Files, models.ShareholderKey(shareholderID, models.ShareholderDocPassport))
			delete(state.Files, models.ShareholderKey(shareholderID, models.ShareholderDocEID))
			state.LastAccessed = time.Now()
			return true
		}
	}
	return false
}

// AttachFile adds a file under the given key and mirrors it into the
// checklist item or shareholder row the key addresses.
func (m *Manager) AttachFile(id string, key models.DocKey, file models.UploadedFile) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	state, ok := m.cases[id]
	if !ok {
		return false
	}

	state.Files[key] = append(state.Files[key], file)
	state.LastAccessed = time.Now()

	switch key.Kind {
	case models.DocKeySlot:
		for i := range state.Items {
			if state.Items[i].ID == key.SlotID {
				state.Items[i].Files = append(state.Items[i].Files, file)
				state.Items[i].Refresh()
				break
			}
		}
	case models.DocKeyShareholderDoc:
		for _, sh := range state.Shareholders {
			if sh.ID == key.ShareholderID {
				if key.DocType == models.ShareholderDocPassport {
					sh.PassportFiles = append(sh.PassportFiles, file)
				} else {
					sh.EIDFiles = append(sh.EIDFiles, file)
				}
				break
			}
		}
	}

	return true
}

// RemoveFile detaches one file from the given key and its mirror.
func (m *Manager) RemoveFile(id string, key models.DocKey, fileID string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	state, ok := m.cases[id]
	if !ok {
		return false
	}

	files, found := removeByID(state.Files[key], fileID)
	if !found {
		return false
	}
	if len(files) == 0 {
		delete(state.Files, key)
	} else {
		state.Files[key] = files
	}
	state.LastAccessed = time.Now()

	switch key.Kind {
	case models.DocKeySlot:
		for i := range state.Items {
			if state.Items[i].ID == key.SlotID {
				state.Items[i].Files, _ = removeByID(state.Items[i].Files, fileID)
				state.Items[i].Refresh()
				break
			}
		}
	case models.DocKeyShareholderDoc:
		for _, sh := range state.Shareholders {
			if sh.ID == key.ShareholderID {
				if key.DocType == models.ShareholderDocPassport {
					sh.PassportFiles, _ = removeByID(sh.PassportFiles, fileID)
				} else {
					sh.EIDFiles, _ = removeByID(sh.EIDFiles, fileID)
				}
				break
			}
		}
	}

	return true
}

// SetMDF stores the parsed MDF record, its extraction confidence, and
// the field scan derived from it. A re-parse overwrites as a unit.
func (m *Manager) SetMDF(id string, parsed *models.ParsedMDF, confidence int, scan *models.MDFValidationResult) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	state, ok := m.cases[id]
	if !ok {
		return false
	}

	state.MDF = parsed
	state.MDFConfidence = confidence
	state.MDFScan = scan
	return true
}

// SetTradeLicense stores the parsed trade license record.
func (m *Manager) SetTradeLicense(id string, parsed *models.ParsedTradeLicense, confidence int) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	state, ok := m.cases[id]
	if !ok {
		return false
	}

	state.TradeLicense = parsed
	state.TLConfidence = confidence
	return true
}

// SetDetection records the document type detection for one uploaded
// file, keyed by file ID.
func (m *Manager) SetDetection(id, fileID string, det models.DocTypeDetection) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	state, ok := m.cases[id]
	if !ok {
		return false
	}

	state.Detections[fileID] = det
	return true
}

// SetDuplicates replaces the duplicate report.
func (m *Manager) SetDuplicates(id string, duplicates []models.DuplicateWarning) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	state, ok := m.cases[id]
	if !ok {
		return false
	}

	if duplicates == nil {
		duplicates = []models.DuplicateWarning{}
	}
	state.Duplicates = duplicates
	return true
}

// FilesSnapshot returns a deep copy of the raw file store.
func (m *Manager) FilesSnapshot(id string) (map[models.DocKey][]models.UploadedFile, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	state, ok := m.cases[id]
	if !ok {
		return nil, false
	}
	return copyFiles(state.Files), true
}

// TouchCase updates the LastAccessed timestamp so an active case is not
// cleaned up.
func (m *Manager) TouchCase(id string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	state, ok := m.cases[id]
	if !ok {
		return false
	}
	state.LastAccessed = time.Now()
	return true
}

// DeleteCase drops a case and all its in-memory state.
func (m *Manager) DeleteCase(id string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.cases[id]; !ok {
		return false
	}
	delete(m.cases, id)
	return true
}

// CleanupOldCases removes cases idle for longer than maxAge, keeping
// anything accessed within CaseKeepAliveWindow.
func (m *Manager) CleanupOldCases(maxAge time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()

	cutoff := time.Now().Add(-maxAge)
	keepAliveCutoff := time.Now().Add(-CaseKeepAliveWindow)

	for id, state := range m.cases {
		if state.LastAccessed.After(keepAliveCutoff) {
			continue
		}
		if state.LastAccessed.Before(cutoff) {
			delete(m.cases, id)
			fmt.Printf("[Manager] Cleaned up idle case %s (last accessed: %s ago)\n",
				shortID(id), time.Since(state.LastAccessed).Round(time.Second))
		}
	}
}

// cleanupOldCasesIfNeeded evicts the least recently used cases when at
// capacity.
func (m *Manager) cleanupOldCasesIfNeeded() {
	m.mu.Lock()
	defer m.mu.Unlock()

	for len(m.cases) >= MaxCases {
		oldestID := ""
		var oldest time.Time
		for id, state := range m.cases {
			if oldestID == "" || state.LastAccessed.Before(oldest) {
				oldestID = id
				oldest = state.LastAccessed
			}
		}
		if oldestID == "" {
			return
		}
		delete(m.cases, oldestID)
		fmt.Printf("[Manager] Evicted case %s to free memory\n", shortID(oldestID))
	}
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

func removeByID(files []models.UploadedFile, fileID string) ([]models.UploadedFile, bool) {
	for i, f := range files {
		if f.ID == fileID {
			return append(files[:i], files[i+1:]...), true
		}
	}
	return files, false
}

func copyFiles(files map[models.DocKey][]models.UploadedFile) map[models.DocKey][]models.UploadedFile {
	out := make(map[models.DocKey][]models.UploadedFile, len(files))
	for key, list := range files {
		copied := make([]models.UploadedFile, len(list))
		copy(copied, list)
		out[key] = copied
	}
	return out
}

func snapshot(state *CaseState) *CaseState {
	out := &CaseState{
		ID:            state.ID,
		Merchant:      state.Merchant,
		Items:         make([]models.ChecklistItem, len(state.Items)),
		Conditionals:  make(map[string]bool, len(state.Conditionals)),
		Shareholders:  make([]*models.ShareholderKYC, 0, len(state.Shareholders)),
		Files:         copyFiles(state.Files),
		MDF:           state.MDF,
		MDFConfidence: state.MDFConfidence,
		TradeLicense:  state.TradeLicense,
		TLConfidence:  state.TLConfidence,
		MDFScan:       state.MDFScan,
		Detections:    make(map[string]models.DocTypeDetection, len(state.Detections)),
		Duplicates:    make([]models.DuplicateWarning, len(state.Duplicates)),
		CreatedAt:     state.CreatedAt,
		LastAccessed:  state.LastAccessed,
	}

	for i, item := range state.Items {
		files := make([]models.UploadedFile, len(item.Files))
		copy(files, item.Files)
		item.Files = files
		out.Items[i] = item
	}
	for k, v := range state.Conditionals {
		out.Conditionals[k] = v
	}
	for _, sh := range state.Shareholders {
		copied := *sh
		copied.PassportFiles = append([]models.UploadedFile{}, sh.PassportFiles...)
		copied.EIDFiles = append([]models.UploadedFile{}, sh.EIDFiles...)
		out.Shareholders = append(out.Shareholders, &copied)
	}
	for k, v := range state.Detections {
		out.Detections[k] = v
	}
	copy(out.Duplicates, state.Duplicates)

	return out
}
