package hexo

import (
	"fmt"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/TheMichaelB/quihex/internal/models"
)

// Render converts a note into the post it publishes as. It performs no
// I/O; the same note and config always yield the same path and text.
func Render(note *models.Note, cfg *Config) *models.RenderedPost {
	tags := make([]string, len(note.Tags))
	copy(tags, note.Tags)

	return &models.RenderedPost{
		UUID:     note.UUID,
		Title:    note.Title,
		Date:     FormatDate(note.CreatedAt, cfg.DateFormat+" "+cfg.TimeFormat),
		Tags:     tags,
		Content:  note.Content,
		FilePath: filepath.Join(cfg.PostsDir(), FileName(cfg.NewPostName, note.CreatedAt, note.Title)),
	}
}

// FileName expands a new_post_name rule. The first occurrence of each of
// :year :month :i_month :day :i_day :title is substituted; anything else,
// including unknown placeholders, is kept as written.
func FileName(rule string, date time.Time, title string) string {
	substitutions := []struct {
		token string
		value string
	}{
		{":year", fmt.Sprintf("%04d", date.Year())},
		{":month", fmt.Sprintf("%02d", int(date.Month()))},
		{":i_month", strconv.Itoa(int(date.Month()))},
		{":day", fmt.Sprintf("%02d", date.Day())},
		{":i_day", strconv.Itoa(date.Day())},
		// title goes last so its text is never scanned for tokens
		{":title", title},
	}

	for _, s := range substitutions {
		rule = strings.Replace(rule, s.token, s.value, 1)
	}

	return rule
}
