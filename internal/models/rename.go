package models

// RenameMapping is the computed export destination for one uploaded
// file. Mappings are recomputed fresh at review/export time.
type RenameMapping struct {
	OriginalName string `json:"originalName"`
	NewName      string `json:"newName"`
	Folder       string `json:"folder"`
	FileID       string `json:"fileId"`
}
