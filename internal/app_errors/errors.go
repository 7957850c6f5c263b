package app_errors

import "errors"

var ErrCourseNotFound = errors.New("course not found")
var ErrLessonNotFound = errors.New("lesson not found")
var ErrQuizNotFound = errors.New("quiz not found")
var ErrSlugTaken = errors.New("course with this slug already exists")
var ErrEmptySlug = errors.New("slug must not be empty")
var ErrInvalidContentType = errors.New("invalid content type")
var ErrMissingContent = errors.New("no content supplied for the declared content type")
var ErrContentConflict = errors.New("content payload does not match the declared content type")
var ErrInvalidPoints = errors.New("question points must be at least 1")
var ErrEmptyQuestionText = errors.New("question text must not be empty")
var ErrStorageUpload = errors.New("failed to store content in object storage")
