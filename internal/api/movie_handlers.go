package api

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/JakeFAU/moviecatalog/internal/catalog"
	"github.com/JakeFAU/moviecatalog/internal/metrics"
	"github.com/JakeFAU/moviecatalog/internal/views"
)

// Form field names posted by the add and edit pages.
const (
	fieldTitle       = "ftitle"
	fieldDirector    = "fdirector"
	fieldRating      = "frating"
	fieldCategory    = "fcategory"
	fieldDescription = "fdescription"
)

const publishTimeout = 5 * time.Second

func (s *Server) home(w http.ResponseWriter, r *http.Request) {
	s.render(w, r, http.StatusOK, views.PageIndex, nil)
}

func (s *Server) movieList(w http.ResponseWriter, r *http.Request) {
	movies, err := s.movies.List(r.Context())
	if err != nil {
		s.renderError(w, r, err)
		return
	}
	s.render(w, r, http.StatusOK, views.PageMovieList, views.ListData{Movies: movies})
}

func (s *Server) topRated(w http.ResponseWriter, r *http.Request) {
	movies, err := s.movies.TopRated(r.Context(), catalog.TopListSize)
	if err != nil {
		s.renderError(w, r, err)
		return
	}
	s.render(w, r, http.StatusOK, views.PageTopList, views.ListData{Movies: movies})
}

func (s *Server) addForm(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	seeded, err := s.categories.SeedIfEmpty(ctx, catalog.DefaultCategories)
	if err != nil {
		s.renderError(w, r, err)
		return
	}
	if seeded {
		s.requestLogger(r).Info("seeded default categories", zap.Strings("categories", catalog.DefaultCategories))
	}
	names, err := s.categories.ListNames(ctx)
	if err != nil {
		s.renderError(w, r, err)
		return
	}
	s.render(w, r, http.StatusOK, views.PageAdd, views.FormData{Categories: names})
}

func (s *Server) addMovie(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	form, err := parseMovieForm(r)
	if err != nil {
		s.renderError(w, r, err)
		return
	}
	movie, err := catalog.ValidateMovieInput(ctx, s.movies, form, false, s.now())
	if err != nil {
		s.rejectForm(w, r, views.PageAdd, "", form, err)
		return
	}
	id, err := s.movies.Insert(ctx, movie)
	if err != nil {
		s.renderError(w, r, err)
		return
	}
	metrics.ObserveMovieMutation("create")
	s.notify(r, catalog.MovieCreated, id, movie.Title)
	http.Redirect(w, r, "/movie_list", http.StatusSeeOther)
}

func (s *Server) editForm(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id := chi.URLParam(r, "id")
	movie, err := s.movies.Get(ctx, id)
	notFound := errors.Is(err, catalog.ErrNotFound)
	if err != nil && !notFound {
		s.renderError(w, r, err)
		return
	}
	names, err := s.categories.ListNames(ctx)
	if err != nil {
		s.renderError(w, r, err)
		return
	}
	data := views.FormData{ID: id, Categories: names}
	status := http.StatusOK
	if notFound {
		data.NotFound = true
		status = http.StatusNotFound
	} else {
		data.Data = movie.Form()
	}
	s.render(w, r, status, views.PageEdit, data)
}

func (s *Server) editMovie(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id := chi.URLParam(r, "id")
	_, err := s.movies.Get(ctx, id)
	exists := err == nil
	if err != nil && !errors.Is(err, catalog.ErrNotFound) {
		s.renderError(w, r, err)
		return
	}
	form, err := parseMovieForm(r)
	if err != nil {
		s.renderError(w, r, err)
		return
	}
	movie, err := catalog.ValidateMovieInput(ctx, s.movies, form, true, s.now())
	if err != nil {
		s.rejectForm(w, r, views.PageEdit, id, form, err)
		return
	}
	if err := s.movies.Update(ctx, id, movie); err != nil {
		s.renderError(w, r, err)
		return
	}
	if exists {
		metrics.ObserveMovieMutation("update")
		s.notify(r, catalog.MovieUpdated, id, movie.Title)
	}
	http.Redirect(w, r, "/movie_list", http.StatusSeeOther)
}

func (s *Server) deleteMovie(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id := chi.URLParam(r, "id")
	movie, err := s.movies.Get(ctx, id)
	switch {
	case errors.Is(err, catalog.ErrNotFound):
		http.Redirect(w, r, "/movie_list", http.StatusSeeOther)
		return
	case err != nil:
		s.renderError(w, r, err)
		return
	}
	if err := s.movies.Delete(ctx, id); err != nil {
		s.renderError(w, r, err)
		return
	}
	metrics.ObserveMovieMutation("delete")
	s.notify(r, catalog.MovieDeleted, id, movie.Title)
	http.Redirect(w, r, "/movie_list", http.StatusSeeOther)
}

// rejectForm re-renders a form with the validation message and the values as
// submitted. Errors that are not validation problems go to the error page.
func (s *Server) rejectForm(w http.ResponseWriter, r *http.Request, page, id string, form catalog.MovieForm, err error) {
	var verr *catalog.ValidationError
	if !errors.As(err, &verr) {
		s.renderError(w, r, err)
		return
	}
	metrics.ObserveValidationFailure(verr.Reason)
	names, listErr := s.categories.ListNames(r.Context())
	if listErr != nil {
		s.renderError(w, r, listErr)
		return
	}
	s.render(w, r, http.StatusOK, page, views.FormData{
		ID:           id,
		Categories:   names,
		Data:         form,
		ErrorMessage: verr.Message,
	})
}

// parseMovieForm reads the five movie fields from the request body. Every
// field must be present; empty values are left to validation.
func parseMovieForm(r *http.Request) (catalog.MovieForm, error) {
	if err := r.ParseForm(); err != nil {
		return catalog.MovieForm{}, errors.Join(catalog.ErrBadRequest, err)
	}
	var missing bool
	get := func(name string) string {
		values, ok := r.PostForm[name]
		if !ok || len(values) == 0 {
			missing = true
			return ""
		}
		return values[0]
	}
	form := catalog.MovieForm{
		Title:       get(fieldTitle),
		Director:    get(fieldDirector),
		Rating:      get(fieldRating),
		Category:    get(fieldCategory),
		Description: get(fieldDescription),
	}
	if missing {
		return catalog.MovieForm{}, catalog.ErrBadRequest
	}
	return form, nil
}

// notify publishes a change event. Failures are logged and otherwise ignored.
func (s *Server) notify(r *http.Request, kind catalog.ChangeType, id, title string) {
	topic := s.cfg.PubSub.TopicName
	if s.publisher == nil || topic == "" {
		return
	}
	event := catalog.ChangeEvent{Type: kind, MovieID: id, Title: title, OccurredAt: s.now()}
	ctx, cancel := context.WithTimeout(context.WithoutCancel(r.Context()), publishTimeout)
	defer cancel()
	msgID, err := s.publisher.Publish(ctx, topic, event)
	logger := s.requestLogger(r).With(zap.String("event", string(kind)), zap.String("movie_id", id))
	if err != nil {
		logger.Warn("publish change event failed", zap.Error(err))
		return
	}
	logger.Debug("published change event", zap.String("message_id", msgID))
}
