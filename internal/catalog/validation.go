package catalog

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"
)

var (
	validate     *validator.Validate
	validateOnce sync.Once
)

func validatorInstance() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
	})
	return validate
}

// ParseRating converts the raw form value into a number. Surrounding
// whitespace is ignored.
func ParseRating(raw string) (float64, error) {
	rating, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrRatingNotNumber, raw)
	}
	return rating, nil
}

// CheckRating enforces the inclusive [0, 10] range. NaN fails.
func CheckRating(rating float64) error {
	if err := validatorInstance().Var(rating, "gte=0,lte=10"); err != nil {
		return fmt.Errorf("%w: %v", ErrRatingOutOfRange, rating)
	}
	return nil
}

// ValidateMovieInput normalizes a submitted form into a Movie stamped with
// now. Checks run in form order and stop at the first failure, which is
// returned as a *ValidationError. The duplicate-title lookup is skipped for
// updates; a failing lookup is returned as a plain error.
func ValidateMovieInput(
	ctx context.Context,
	finder MovieFinder,
	form MovieForm,
	isUpdate bool,
	now time.Time,
) (Movie, error) {
	movie := Movie{
		Title:       form.Title,
		Director:    form.Director,
		Category:    form.Category,
		Description: form.Description,
		CreatedAt:   now,
	}
	v := validatorInstance()

	if err := v.Var(form.Title, "required"); err != nil {
		return movie, &ValidationError{Reason: ReasonTitle, Message: MsgTitleRequired}
	}
	if !isUpdate {
		_, err := finder.FindByTitle(ctx, form.Title)
		switch {
		case err == nil:
			return movie, &ValidationError{Reason: ReasonDuplicate, Message: MsgDuplicateTitle}
		case !errors.Is(err, ErrNotFound):
			return movie, fmt.Errorf("check duplicate title: %w", err)
		}
	}
	if err := v.Var(form.Director, "required"); err != nil {
		return movie, &ValidationError{Reason: ReasonDirector, Message: MsgDirectorRequired}
	}
	rating, err := ParseRating(form.Rating)
	if err == nil {
		err = CheckRating(rating)
	}
	if err != nil {
		return movie, &ValidationError{Reason: ReasonRating, Message: MsgRatingRange, Err: err}
	}
	movie.Rating = rating
	return movie, nil
}
