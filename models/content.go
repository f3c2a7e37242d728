package models

import "fmt"

// NoteContent is the decoded form of Note.Content. Keeping it a closed sum
// means a note's type tag and payload shape cannot drift apart.
type NoteContent interface {
	NoteType() NoteType
}

// RichText is the serialized rich-text document of a plain note.
type RichText string

func (RichText) NoteType() NoteType { return NoteTypeNote }

// WhiteboardRaster is the raster snapshot of a whiteboard note.
type WhiteboardRaster []byte

func (WhiteboardRaster) NoteType() NoteType { return NoteTypeWhiteboard }

// FlashcardSetRef marks a note whose content lives in the flashcards table
// rather than the note row itself.
type FlashcardSetRef struct{}

func (FlashcardSetRef) NoteType() NoteType { return NoteTypeFlashcardSet }

// EncodeContent returns the type tag and raw payload for a note content
// value.
func EncodeContent(c NoteContent) (NoteType, []byte) {
	switch v := c.(type) {
	case RichText:
		return NoteTypeNote, []byte(v)
	case WhiteboardRaster:
		return NoteTypeWhiteboard, []byte(v)
	case FlashcardSetRef:
		return NoteTypeFlashcardSet, nil
	default:
		panic(fmt.Sprintf("models: unknown note content %T", c))
	}
}

// DecodeContent interprets a stored payload under its type tag.
func DecodeContent(t NoteType, raw []byte) (NoteContent, error) {
	switch t {
	case NoteTypeNote:
		return RichText(raw), nil
	case NoteTypeWhiteboard:
		return WhiteboardRaster(raw), nil
	case NoteTypeFlashcardSet:
		return FlashcardSetRef{}, nil
	default:
		return nil, fmt.Errorf("models: unknown note type %q", t)
	}
}
