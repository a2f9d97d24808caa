package validation

import (
	"testing"

	"inkwell/internal/testutil"

	"github.com/stretchr/testify/assert"
)

func anyGroup(uint) bool { return true }
func noGroup(uint) bool  { return false }

func TestPostInputValidate(t *testing.T) {
	t.Parallel()

	gid := uint(1)
	tests := []struct {
		name      string
		input     PostInput
		exists    func(uint) bool
		wantField string
	}{
		{"Valid", PostInput{Text: "hello"}, anyGroup, ""},
		{"Valid With Group", PostInput{Text: "hello", GroupID: &gid}, anyGroup, ""},
		{"Empty Text", PostInput{Text: ""}, anyGroup, "text"},
		{"Whitespace Text", PostInput{Text: "   \n"}, anyGroup, "text"},
		{"Unknown Group", PostInput{Text: "hello", GroupID: &gid}, noGroup, "group"},
		{"Bogus Image", PostInput{Text: "hello", Image: []byte("definitely not an image")}, anyGroup, "image"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			errs := tt.input.Validate(tt.exists)
			if tt.wantField == "" {
				assert.Empty(t, errs)
			} else {
				assert.Contains(t, errs, tt.wantField)
			}
		})
	}
}

func TestPostInputValidateNormalizesText(t *testing.T) {
	t.Parallel()

	in := PostInput{Text: "  trimmed  "}
	errs := in.Validate(anyGroup)
	assert.Empty(t, errs)
	assert.Equal(t, "trimmed", in.Text)
}

func TestPostInputValidateRealImage(t *testing.T) {
	t.Parallel()

	in := PostInput{Text: "with image", Image: testutil.PNGBytes(t)}
	errs := in.Validate(anyGroup)
	assert.Empty(t, errs)
}

func TestCommentInputValidate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		text    string
		wantErr bool
	}{
		{"Valid", "nice post", false},
		{"Empty", "", true},
		{"Whitespace", "  \t ", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := CommentInput{Text: tt.text}
			errs := in.Validate()
			if tt.wantErr {
				assert.Contains(t, errs, "text")
			} else {
				assert.Empty(t, errs)
			}
		})
	}
}

func TestSniffImage(t *testing.T) {
	t.Parallel()

	format, err := SniffImage(testutil.PNGBytes(t))
	assert.NoError(t, err)
	assert.Equal(t, "png", format)

	_, err = SniffImage([]byte("plain text pretending to be cat.png"))
	assert.Error(t, err)

	_, err = SniffImage(nil)
	assert.Error(t, err)

	// A PNG header followed by garbage must not pass the decode check.
	corrupt := append([]byte("\x89PNG\r\n\x1a\n"), []byte("garbage body")...)
	_, err = SniffImage(corrupt)
	assert.Error(t, err)
}
