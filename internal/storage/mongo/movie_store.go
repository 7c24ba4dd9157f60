package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"github.com/JakeFAU/moviecatalog/internal/catalog"
)

type movieDocument struct {
	ID          bson.ObjectID `bson:"_id,omitempty"`
	Title       string        `bson:"title"`
	Director    string        `bson:"director"`
	Rating      float64       `bson:"rating"`
	Category    string        `bson:"category"`
	Description string        `bson:"description"`
	CreatedAt   time.Time     `bson:"created_at"`
}

func toDocument(m catalog.Movie) movieDocument {
	return movieDocument{
		Title:       m.Title,
		Director:    m.Director,
		Rating:      m.Rating,
		Category:    m.Category,
		Description: m.Description,
		CreatedAt:   m.CreatedAt,
	}
}

func (d movieDocument) toMovie() catalog.Movie {
	return catalog.Movie{
		ID:          d.ID.Hex(),
		Title:       d.Title,
		Director:    d.Director,
		Rating:      d.Rating,
		Category:    d.Category,
		Description: d.Description,
		CreatedAt:   d.CreatedAt.UTC(),
	}
}

// ParseID converts a hex string into an ObjectID.
func ParseID(id string) (bson.ObjectID, error) {
	oid, err := bson.ObjectIDFromHex(id)
	if err != nil {
		return bson.ObjectID{}, catalog.MalformedID(id, err)
	}
	return oid, nil
}

var (
	newestFirst = bson.D{{Key: "created_at", Value: -1}, {Key: "_id", Value: -1}}
	bestRated   = bson.D{{Key: "rating", Value: -1}, {Key: "created_at", Value: -1}, {Key: "_id", Value: 1}}
)

// MovieStore implements catalog.MovieRepository on the movie collection.
type MovieStore struct {
	coll   *mongo.Collection
	client *Client
}

// Movies returns the store for the movie collection.
func (c *Client) Movies() *MovieStore {
	return &MovieStore{coll: c.db.Collection(MovieCollection), client: c}
}

// List returns every movie, newest first.
func (s *MovieStore) List(ctx context.Context) ([]catalog.Movie, error) {
	return s.find(ctx, "list movies", options.Find().SetSort(newestFirst))
}

// Get loads one movie by its ObjectID hex string.
func (s *MovieStore) Get(ctx context.Context, id string) (catalog.Movie, error) {
	oid, err := ParseID(id)
	if err != nil {
		return catalog.Movie{}, err
	}
	return s.findOne(ctx, "get movie", bson.D{{Key: "_id", Value: oid}})
}

// FindByTitle returns the oldest movie with the given title.
func (s *MovieStore) FindByTitle(ctx context.Context, title string) (catalog.Movie, error) {
	return s.findOne(ctx, "find movie by title", bson.D{{Key: "title", Value: title}},
		options.FindOne().SetSort(bson.D{{Key: "created_at", Value: 1}}))
}

// Insert writes a new document and returns its ObjectID hex string.
func (s *MovieStore) Insert(ctx context.Context, movie catalog.Movie) (string, error) {
	doc := toDocument(movie)
	doc.ID = bson.NewObjectID()
	if _, err := s.coll.InsertOne(ctx, doc); err != nil {
		return "", fmt.Errorf("insert movie: %w", err)
	}
	return doc.ID.Hex(), nil
}

// Update sets the editable fields. created_at is left untouched and a
// missing document is not an error.
func (s *MovieStore) Update(ctx context.Context, id string, movie catalog.Movie) error {
	oid, err := ParseID(id)
	if err != nil {
		return err
	}
	update := bson.D{{Key: "$set", Value: bson.D{
		{Key: "title", Value: movie.Title},
		{Key: "director", Value: movie.Director},
		{Key: "rating", Value: movie.Rating},
		{Key: "category", Value: movie.Category},
		{Key: "description", Value: movie.Description},
	}}}
	if _, err := s.coll.UpdateOne(ctx, bson.D{{Key: "_id", Value: oid}}, update); err != nil {
		return fmt.Errorf("update movie: %w", err)
	}
	return nil
}

// Delete removes a movie if present.
func (s *MovieStore) Delete(ctx context.Context, id string) error {
	oid, err := ParseID(id)
	if err != nil {
		return err
	}
	if _, err := s.coll.DeleteOne(ctx, bson.D{{Key: "_id", Value: oid}}); err != nil {
		return fmt.Errorf("delete movie: %w", err)
	}
	return nil
}

// TopRated returns at most n movies, best rated first.
func (s *MovieStore) TopRated(ctx context.Context, n int) ([]catalog.Movie, error) {
	return s.find(ctx, "list top rated movies", options.Find().SetSort(bestRated).SetLimit(int64(n)))
}

// Ping checks the primary is reachable.
func (s *MovieStore) Ping(ctx context.Context) error {
	return s.client.Ping(ctx)
}

func (s *MovieStore) find(ctx context.Context, op string, opts *options.FindOptionsBuilder) ([]catalog.Movie, error) {
	cursor, err := s.coll.Find(ctx, bson.D{}, opts)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	var docs []movieDocument
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("%s: decode: %w", op, err)
	}
	movies := make([]catalog.Movie, 0, len(docs))
	for _, doc := range docs {
		movies = append(movies, doc.toMovie())
	}
	return movies, nil
}

func (s *MovieStore) findOne(
	ctx context.Context,
	op string,
	filter bson.D,
	opts ...options.Lister[options.FindOneOptions],
) (catalog.Movie, error) {
	var doc movieDocument
	if err := s.coll.FindOne(ctx, filter, opts...).Decode(&doc); err != nil {
		return catalog.Movie{}, findError(op, err)
	}
	return doc.toMovie(), nil
}

func findError(op string, err error) error {
	if errors.Is(err, mongo.ErrNoDocuments) {
		return catalog.ErrNotFound
	}
	return fmt.Errorf("%s: %w", op, err)
}
