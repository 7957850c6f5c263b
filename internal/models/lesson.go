package models

import (
	"strings"
	"time"
)

// IsExternalLocator reports whether a content locator is an absolute URL
// supplied by the author rather than an internal blob key. External
// locators are served as-is and never signed or deleted.
func IsExternalLocator(locator string) bool {
	return strings.Contains(locator, "://")
}

type Lesson struct {
	ID          int64       `json:"id"`
	CourseID    int64       `json:"course_id"`
	Title       string      `json:"title"`
	ContentType ContentType `json:"content_type"`
	// ContentLocator is either an internal blob key or an external
	// absolute URL; external locators carry a URL scheme.
	ContentLocator *string   `json:"content_locator,omitempty"`
	ContentText    *string   `json:"content_text,omitempty"`
	Duration       string    `json:"duration,omitempty"`
	SortOrder      int       `json:"sort_order"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

type LessonUpdate struct {
	Title     *string `json:"title"`
	Duration  *string `json:"duration"`
	SortOrder *int    `json:"sort_order"`
}

// LessonContent is the serving view of a lesson body. URL is either the
// external locator as-is or a freshly signed read URL for an internal key.
type LessonContent struct {
	LessonID    int64       `json:"lesson_id"`
	ContentType ContentType `json:"content_type"`
	Text        *string     `json:"text,omitempty"`
	URL         *string     `json:"url,omitempty"`
}
