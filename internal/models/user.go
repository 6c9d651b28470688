package models

// DirectoryEntry maps an email to the numeric id it was assigned on first sight.
type DirectoryEntry struct {
	Email string `json:"email"`
	ID    int    `json:"id"`
}
