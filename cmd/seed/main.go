// Command seed loads a sample catalog into the database. Movies whose title
// is already present are skipped, so the command is safe to re-run.
// Aggregates start at zero; they are only ever derived from live reviews.
package main

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"

	"github.com/dhanush217/Movie-review/internal/config"
	"github.com/dhanush217/Movie-review/internal/domain"
	"github.com/dhanush217/Movie-review/internal/store"
)

var sampleMovies = []domain.Movie{
	{
		Title:       "The Shawshank Redemption",
		Genre:       []string{"Drama"},
		ReleaseYear: 1994,
		Director:    "Frank Darabont",
		Cast:        []string{"Tim Robbins", "Morgan Freeman", "Bob Gunton"},
		Synopsis:    "Two imprisoned men bond over a number of years, finding solace and eventual redemption through acts of common decency.",
		PosterURL:   "https://image.tmdb.org/t/p/w500/q6y0Go1tsGEsmtFryDOJo3dEmqu.jpg",
	},
	{
		Title:       "The Godfather",
		Genre:       []string{"Crime", "Drama"},
		ReleaseYear: 1972,
		Director:    "Francis Ford Coppola",
		Cast:        []string{"Marlon Brando", "Al Pacino", "James Caan"},
		Synopsis:    "The aging patriarch of an organized crime dynasty transfers control of his clandestine empire to his reluctant son.",
		PosterURL:   "https://image.tmdb.org/t/p/w500/3bhkrj58Vtu7enYsRolD1fZdja1.jpg",
	},
	{
		Title:       "The Dark Knight",
		Genre:       []string{"Action", "Crime", "Drama"},
		ReleaseYear: 2008,
		Director:    "Christopher Nolan",
		Cast:        []string{"Christian Bale", "Heath Ledger", "Aaron Eckhart"},
		Synopsis:    "When the menace known as the Joker wreaks havoc and chaos on the people of Gotham, Batman must accept one of the greatest psychological and physical tests.",
		PosterURL:   "https://image.tmdb.org/t/p/w500/qJ2tW6WMUDux911r6m7haRef0WH.jpg",
	},
	{
		Title:       "Pulp Fiction",
		Genre:       []string{"Crime", "Drama"},
		ReleaseYear: 1994,
		Director:    "Quentin Tarantino",
		Cast:        []string{"John Travolta", "Uma Thurman", "Samuel L. Jackson"},
		Synopsis:    "The lives of two mob hitmen, a boxer, a gangster and his wife intertwine in four tales of violence and redemption.",
		PosterURL:   "https://image.tmdb.org/t/p/w500/d5iIlFn5s0ImszYzBPb8JPIfbXD.jpg",
	},
	{
		Title:       "Inception",
		Genre:       []string{"Action", "Sci-Fi", "Thriller"},
		ReleaseYear: 2010,
		Director:    "Christopher Nolan",
		Cast:        []string{"Leonardo DiCaprio", "Marion Cotillard", "Tom Hardy"},
		Synopsis:    "A thief who steals corporate secrets through dream-sharing technology is given the inverse task of planting an idea into a CEO mind.",
		PosterURL:   "https://image.tmdb.org/t/p/w500/9gk7adHYeDvHkCSEqAvQNLV5Uge.jpg",
	},
	{
		Title:       "Spirited Away",
		Genre:       []string{"Animation", "Fantasy"},
		ReleaseYear: 2001,
		Director:    "Hayao Miyazaki",
		Cast:        []string{"Rumi Hiiragi", "Miyu Irino", "Mari Natsuki"},
		Synopsis:    "During her family's move to the suburbs, a sullen girl wanders into a world ruled by gods, witches, and spirits.",
		PosterURL:   "https://image.tmdb.org/t/p/w500/39wmItIWsg5sZMyRUHLkWBcuVCM.jpg",
	},
}

func main() {
	cfg := config.Load()
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))

	db, err := sqlx.Connect("postgres", cfg.DatabaseURL)
	if err != nil {
		logger.Error("Failed to connect to PostgreSQL", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer db.Close()

	movieStore, err := store.NewPostgresMovieStore(db, logger)
	if err != nil {
		logger.Error("Failed to initialize movie store", slog.String("error", err.Error()))
		os.Exit(1)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	seeded := 0
	for _, sample := range sampleMovies {
		movie := sample
		movie.ID = uuid.NewString()
		if err := movieStore.Create(ctx, &movie); err != nil {
			if errors.Is(err, store.ErrMovieAlreadyExists) {
				logger.Info("Movie already present, skipping", slog.String("title", movie.Title))
				continue
			}
			logger.Error("Failed to seed movie", slog.String("title", movie.Title), slog.String("error", err.Error()))
			os.Exit(1)
		}
		seeded++
	}

	logger.Info("Catalog seeding complete", slog.Int("seeded", seeded), slog.Int("skipped", len(sampleMovies)-seeded))
}
