package models

import "time"

// GlossaryEntry is one translated/explained term from a lecture transcript.
type GlossaryEntry struct {
	Term       string `json:"term"`
	Definition string `json:"definition"`
	Context    string `json:"context"`
}

// LectureNote holds an uploaded lecture's transcript and the comprehension
// aids generated for it.
type LectureNote struct {
	ID               string  `gorm:"primaryKey;size:64" json:"id"`
	CourseID         *string `gorm:"size:64;index" json:"courseId,omitempty"`
	Title            string  `gorm:"not null;size:300" json:"title"`
	OriginalLanguage string  `gorm:"size:50" json:"originalLanguage"`
	TargetLanguage   string  `gorm:"size:50" json:"targetLanguage"`

	AudioURL      string `gorm:"size:1000" json:"audioUrl,omitempty"`
	AudioFileName string `gorm:"size:300" json:"audioFileName,omitempty"`

	OriginalTranscript string `json:"originalTranscript"`
	SimplifiedEnglish  string `json:"simplifiedEnglish,omitempty"`
	TranslatedVersion  string `json:"translatedVersion,omitempty"`

	Glossary  []GlossaryEntry `gorm:"serializer:json" json:"glossary"`
	KeyPoints []string        `gorm:"serializer:json" json:"keyPoints"`

	SyncStatus SyncStatus `gorm:"not null;size:10;index" json:"syncStatus"`
	CreatedAt  time.Time  `json:"createdAt"`
	UpdatedAt  time.Time  `gorm:"index" json:"updatedAt"`
}
