// internal/domain/models/settings.go
package models

// DefaultSiteName is used wherever a display name is needed before any
// admin customization exists.
const DefaultSiteName = "ChapterHub"
