package walker

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"strings"
	"time"
	"unicode"
	"unicode/utf8"

	"github.com/naveego/storyreader/pkg/stories"
	"github.com/pkg/errors"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// Text returns the text of a fetched file. Base64 content is decoded with
// embedded whitespace ignored; if that fails, or does not produce UTF-8,
// the raw content is returned unchanged. The bool reports whether the
// base64 decoding was used.
func Text(fc FileContent) (string, bool) {
	if !strings.EqualFold(strings.TrimSpace(fc.Encoding), EncodingBase64) {
		return fc.Content, false
	}
	cleaned := strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, fc.Content)

	b, err := base64.StdEncoding.DecodeString(cleaned)
	if err != nil || !utf8.Valid(b) {
		return fc.Content, false
	}
	return string(b), true
}

// storyFile shadows the timestamp fields of stories.Story so that dates
// written without a zone, or without a time, still decode.
type storyFile struct {
	stories.Story
	CreatedDate  string `json:"createdDate"`
	LastModified string `json:"lastModified"`
}

var timeLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

func parseTime(value string) (time.Time, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}, nil
	}
	for _, layout := range timeLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t, nil
		}
	}
	return time.Time{}, errors.Errorf("unrecognized timestamp %q", value)
}

// DecodeStory parses the JSON text of one story file. The returned story is
// normalized; an empty id is a DecodeFailure.
func DecodeStory(path string, text string) (stories.Story, error) {
	data := bytes.TrimPrefix([]byte(text), utf8BOM)

	var f storyFile
	if err := json.Unmarshal(data, &f); err != nil {
		return stories.Story{}, stories.NewError(stories.DecodeFailure, path, errors.Wrap(err, "parse story json"))
	}

	story := f.Story
	var err error
	if story.CreatedDate, err = parseTime(f.CreatedDate); err != nil {
		return stories.Story{}, stories.NewError(stories.DecodeFailure, path, errors.Wrap(err, "createdDate"))
	}
	if story.LastModified, err = parseTime(f.LastModified); err != nil {
		return stories.Story{}, stories.NewError(stories.DecodeFailure, path, errors.Wrap(err, "lastModified"))
	}

	if strings.TrimSpace(story.ID) == "" {
		return stories.Story{}, stories.Errorf(stories.DecodeFailure, path, "story has no id")
	}

	return story.Normalized(), nil
}
