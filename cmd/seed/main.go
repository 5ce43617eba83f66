// Command seed populates a development database with an admin account, a few
// members and a small catalog so the API can be exercised right away.
package main

import (
	"context"
	"log"
	"time"

	"github.com/rwangliu/library-lending-server/internal/config"
	"github.com/rwangliu/library-lending-server/internal/models"
	"github.com/rwangliu/library-lending-server/internal/repository"
	"golang.org/x/crypto/bcrypt"
)

func main() {
	cfg := config.LoadConfig()

	db, err := config.SetupDatabase(cfg)
	if err != nil {
		log.Fatalf("Failed to set up database: %v", err)
	}
	defer db.Close()

	repo := repository.NewPostgresRepository(db)
	ctx := context.Background()

	users := []struct {
		name, email, password, role string
	}{
		{"Library Admin", "admin@library.local", "admin123", models.RoleAdmin},
		{"Alice Chen", "alice@example.com", "password1", models.RoleMember},
		{"Bob Martin", "bob@example.com", "password2", models.RoleMember},
	}

	for _, u := range users {
		existing, err := repo.GetUserByEmail(ctx, u.email)
		if err != nil {
			log.Fatalf("Failed to look up user %s: %v", u.email, err)
		}
		if existing != nil {
			log.Printf("User %s already exists, skipping", u.email)
			continue
		}

		hash, err := bcrypt.GenerateFromPassword([]byte(u.password), bcrypt.DefaultCost)
		if err != nil {
			log.Fatalf("Failed to hash password: %v", err)
		}

		user := &models.User{
			Name:     u.name,
			Email:    u.email,
			Password: string(hash),
			Role:     u.role,
		}
		if err := repo.CreateUser(ctx, user); err != nil {
			log.Fatalf("Failed to create user %s: %v", u.email, err)
		}
		log.Printf("Created user %s (%s)", u.email, u.role)
	}

	books := []struct {
		title, author, isbn, genre, description string
		published                               string
		copies                                  int
	}{
		{"The Go Programming Language", "Alan A. A. Donovan", "978-0134190440", "Programming", "The definitive Go reference.", "2015-10-26", 5},
		{"Designing Data-Intensive Applications", "Martin Kleppmann", "978-1449373320", "Programming", "Storage, streams and distributed systems.", "2017-03-16", 3},
		{"The Left Hand of Darkness", "Ursula K. Le Guin", "978-0441478125", "Science Fiction", "", "1969-03-01", 2},
		{"Dune", "Frank Herbert", "978-0441172719", "Science Fiction", "", "1965-08-01", 4},
		{"Pride and Prejudice", "Jane Austen", "978-0141439518", "Classic", "", "1813-01-28", 2},
	}

	for _, b := range books {
		existing, err := repo.GetBookByISBN(ctx, b.isbn)
		if err != nil {
			log.Fatalf("Failed to look up book %s: %v", b.isbn, err)
		}
		if existing != nil {
			log.Printf("Book %s already exists, skipping", b.isbn)
			continue
		}

		published, err := time.Parse("2006-01-02", b.published)
		if err != nil {
			log.Fatalf("Bad publication date for %s: %v", b.isbn, err)
		}

		book := models.NewBook(b.title, b.author, b.isbn, published, b.genre, b.copies, b.description)
		if err := repo.CreateBook(ctx, book); err != nil {
			log.Fatalf("Failed to create book %s: %v", b.isbn, err)
		}
		log.Printf("Created book %q (%d copies)", b.title, b.copies)
	}

	log.Println("Seeding complete")
}
