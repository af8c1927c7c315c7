package comic

import (
	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
)

// NewComicRequest is the create payload. Username is accepted for backward
// compatibility with older clients but ignored: the record owner is always
// the authenticated requester.
type NewComicRequest struct {
	Username      string  `json:"username"`
	Title         string  `json:"title"`
	IssueNumber   string  `json:"issue_number"`
	MainCharacter string  `json:"main_character"`
	Genre         string  `json:"genre"`
	CoverYear     Date    `json:"cover_year"`
	Publisher     string  `json:"publisher"`
	Grade         float64 `json:"grade"`
	Price         float64 `json:"price"`
	ImageURL      string  `json:"image_url"`
}

func (r NewComicRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Title, validation.Required.Error("title is required")),
		validation.Field(&r.IssueNumber, validation.Required.Error("issue_number is required")),
		validation.Field(&r.MainCharacter, validation.Required.Error("main_character is required")),
		validation.Field(&r.Genre, validation.Required.Error("genre is required")),
		validation.Field(&r.CoverYear, validation.By(requireDate)),
		validation.Field(&r.Publisher, validation.Required.Error("publisher is required")),
		validation.Field(&r.ImageURL,
			validation.Required.Error("image_url is required"),
			is.URL.Error("image_url must be a valid URL"),
		),
	)
}

// Fields returns the mutable field set for the insert path.
func (r NewComicRequest) Fields() ReplaceComicRequest {
	return ReplaceComicRequest{
		Title:         r.Title,
		IssueNumber:   r.IssueNumber,
		MainCharacter: r.MainCharacter,
		Genre:         r.Genre,
		CoverYear:     r.CoverYear,
		Publisher:     r.Publisher,
		Grade:         r.Grade,
		Price:         r.Price,
		ImageURL:      r.ImageURL,
	}
}

// ReplaceComicRequest is the full-overwrite payload: every mutable field is
// required. The owner is never part of it.
type ReplaceComicRequest struct {
	Title         string  `json:"title"`
	IssueNumber   string  `json:"issue_number"`
	MainCharacter string  `json:"main_character"`
	Genre         string  `json:"genre"`
	CoverYear     Date    `json:"cover_year"`
	Publisher     string  `json:"publisher"`
	Grade         float64 `json:"grade"`
	Price         float64 `json:"price"`
	ImageURL      string  `json:"image_url"`
}

func (r ReplaceComicRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Title, validation.Required.Error("title is required")),
		validation.Field(&r.IssueNumber, validation.Required.Error("issue_number is required")),
		validation.Field(&r.MainCharacter, validation.Required.Error("main_character is required")),
		validation.Field(&r.Genre, validation.Required.Error("genre is required")),
		validation.Field(&r.CoverYear, validation.By(requireDate)),
		validation.Field(&r.Publisher, validation.Required.Error("publisher is required")),
		validation.Field(&r.ImageURL,
			validation.Required.Error("image_url is required"),
			is.URL.Error("image_url must be a valid URL"),
		),
	)
}

// UpdateComicRequest is the partial-update payload: only non-nil fields are
// written.
type UpdateComicRequest struct {
	Title         *string  `json:"title"`
	IssueNumber   *string  `json:"issue_number"`
	MainCharacter *string  `json:"main_character"`
	Genre         *string  `json:"genre"`
	CoverYear     *Date    `json:"cover_year"`
	Publisher     *string  `json:"publisher"`
	Grade         *float64 `json:"grade"`
	Price         *float64 `json:"price"`
	ImageURL      *string  `json:"image_url"`
}

func (r UpdateComicRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.ImageURL,
			validation.When(r.ImageURL != nil, is.URL.Error("image_url must be a valid URL")),
		),
	)
}

func requireDate(value interface{}) error {
	d, ok := value.(Date)
	if !ok || d.IsZero() {
		return validation.NewError("validation_required", "cover_year is required")
	}
	return nil
}
