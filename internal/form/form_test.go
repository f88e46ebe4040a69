package form

import (
	"bytes"
	"mime/multipart"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/d60-Lab/yatube/internal/model"
)

var smallGIF = []byte{
	0x47, 0x49, 0x46, 0x38, 0x39, 0x61, 0x02, 0x00,
	0x01, 0x00, 0x80, 0x00, 0x00, 0x00, 0x00, 0x00,
	0xFF, 0xFF, 0xFF, 0x21, 0xF9, 0x04, 0x00, 0x00,
	0x00, 0x00, 0x00, 0x2C, 0x00, 0x00, 0x00, 0x00,
	0x02, 0x00, 0x01, 0x00, 0x00, 0x02, 0x02, 0x0C,
	0x0A, 0x00, 0x3B,
}

func fileHeader(t *testing.T, name string, content []byte) *multipart.FileHeader {
	t.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	part, err := w.CreateFormFile("image", name)
	require.NoError(t, err)
	_, err = part.Write(content)
	require.NoError(t, err)
	require.NoError(t, w.Close())

	req := httptest.NewRequest("POST", "/", &buf)
	req.Header.Set("Content-Type", w.FormDataContentType())
	require.NoError(t, req.ParseMultipartForm(1<<20))
	return req.MultipartForm.File["image"][0]
}

var groups = []model.Group{{ID: 1, Slug: "g1"}, {ID: 2, Slug: "g2"}}

func TestValidatePostOK(t *testing.T) {
	data, err := ValidatePost(PostInput{Text: "  hello  ", Group: "2"}, groups, 0)
	require.NoError(t, err)
	assert.Equal(t, "hello", data.Text)
	require.NotNil(t, data.GroupID)
	assert.EqualValues(t, 2, *data.GroupID)

	p := &model.Post{ID: 9, AuthorID: "a"}
	data.Apply(p)
	assert.Equal(t, "hello", p.Text)
	assert.EqualValues(t, 9, p.ID)
	assert.Equal(t, "a", p.AuthorID)
}

func TestValidatePostEmptyGroupClears(t *testing.T) {
	data, err := ValidatePost(PostInput{Text: "x"}, groups, 0)
	require.NoError(t, err)
	assert.Nil(t, data.GroupID)

	gid := uint(1)
	p := &model.Post{GroupID: &gid}
	data.Apply(p)
	assert.Nil(t, p.GroupID)
}

func TestValidatePostErrors(t *testing.T) {
	tests := []struct {
		name  string
		in    PostInput
		field string
	}{
		{"empty text", PostInput{Text: ""}, "text"},
		{"blank text", PostInput{Text: "   \n"}, "text"},
		{"unknown group", PostInput{Text: "x", Group: "42"}, "group"},
		{"non numeric group", PostInput{Text: "x", Group: "abc"}, "group"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ValidatePost(tt.in, groups, 0)
			ve, ok := AsValidation(err)
			require.True(t, ok)
			assert.NotEmpty(t, ve.Get(tt.field))
		})
	}
}

func TestValidatePostImage(t *testing.T) {
	data, err := ValidatePost(PostInput{Text: "x", Image: fileHeader(t, "small.gif", smallGIF)}, groups, 0)
	require.NoError(t, err)
	assert.NotNil(t, data.Image)

	_, err = ValidatePost(PostInput{Text: "x", Image: fileHeader(t, "notes.gif", []byte("plain text"))}, groups, 0)
	ve, ok := AsValidation(err)
	require.True(t, ok)
	assert.NotEmpty(t, ve.Get("image"))

	_, err = ValidatePost(PostInput{Text: "x", Image: fileHeader(t, "small.gif", smallGIF)}, groups, 10)
	ve, ok = AsValidation(err)
	require.True(t, ok)
	assert.Contains(t, ve.Get("image"), "10")
}

func TestValidatePostRejectsScriptableUploads(t *testing.T) {
	svg := []byte(`<svg xmlns="http://www.w3.org/2000/svg"><script>alert(1)</script></svg>`)
	_, err := ValidatePost(PostInput{Text: "x", Image: fileHeader(t, "pic.svg", svg)}, groups, 0)
	ve, ok := AsValidation(err)
	require.True(t, ok)
	assert.NotEmpty(t, ve.Get("image"))

	html := []byte("<!DOCTYPE html><script>alert(1)</script>")
	_, err = ValidatePost(PostInput{Text: "x", Image: fileHeader(t, "pic.gif", html)}, groups, 0)
	ve, ok = AsValidation(err)
	require.True(t, ok)
	assert.NotEmpty(t, ve.Get("image"))
}

func TestValidateComment(t *testing.T) {
	data, err := ValidateComment(CommentInput{Text: " nice "})
	require.NoError(t, err)
	assert.Equal(t, "nice", data.Text)

	_, err = ValidateComment(CommentInput{Text: ""})
	ve, ok := AsValidation(err)
	require.True(t, ok)
	assert.Equal(t, "Обязательное поле.", ve.Get("text"))
	assert.Contains(t, ve.Error(), "text")
}

func TestValidationErrorGetOnNil(t *testing.T) {
	var ve *ValidationError
	assert.Equal(t, "", ve.Get("text"))
}

func TestValidateSignup(t *testing.T) {
	data, err := ValidateSignup(SignupInput{Username: " leo ", Password: "password1", Email: "leo@example.com"})
	require.NoError(t, err)
	assert.Equal(t, "leo", data.Username)

	_, err = ValidateSignup(SignupInput{Username: "bad name!", Password: "short", Email: "nope"})
	ve, ok := AsValidation(err)
	require.True(t, ok)
	assert.NotEmpty(t, ve.Get("username"))
	assert.NotEmpty(t, ve.Get("password"))
	assert.NotEmpty(t, ve.Get("email"))
}

func TestValidateLogin(t *testing.T) {
	_, err := ValidateLogin(LoginInput{Username: "leo"})
	ve, ok := AsValidation(err)
	require.True(t, ok)
	assert.NotEmpty(t, ve.Get("password"))
}
