package validation

import "strings"

// FieldErrors maps a form field name to a human-readable message. An empty
// map means the input is valid.
type FieldErrors map[string]string

const maxPostTextLen = 50000

// PostInput carries the user-submitted fields of a post form. Image holds the
// raw uploaded bytes when an attachment was submitted.
type PostInput struct {
	Text    string
	GroupID *uint
	Image   []byte
}

// Validate checks and normalizes the input. groupExists resolves whether a
// submitted group reference points at an existing group; it is only called
// when a group was selected. Validate never touches the store.
func (in *PostInput) Validate(groupExists func(id uint) bool) FieldErrors {
	errs := FieldErrors{}

	in.Text = strings.TrimSpace(in.Text)
	if in.Text == "" {
		errs["text"] = "Text is required"
	} else if len(in.Text) > maxPostTextLen {
		errs["text"] = "Text too long (max 50000 characters)"
	}

	if in.GroupID != nil && !groupExists(*in.GroupID) {
		errs["group"] = "Selected group does not exist"
	}

	if len(in.Image) > 0 {
		if _, err := SniffImage(in.Image); err != nil {
			errs["image"] = "Upload a valid image"
		}
	}

	return errs
}
