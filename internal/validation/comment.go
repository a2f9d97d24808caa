package validation

import "strings"

const maxCommentTextLen = 10000

// CommentInput carries the user-submitted field of a comment form.
type CommentInput struct {
	Text string
}

// Validate checks and normalizes the input without touching the store.
func (in *CommentInput) Validate() FieldErrors {
	errs := FieldErrors{}

	in.Text = strings.TrimSpace(in.Text)
	if in.Text == "" {
		errs["text"] = "Text is required"
	} else if len(in.Text) > maxCommentTextLen {
		errs["text"] = "Text too long (max 10000 characters)"
	}

	return errs
}
