package repos

import (
	"strings"
	"testing"

	"golang.org/x/crypto/bcrypt"
)

func TestBootstrapSeedsAndIsIdempotent(t *testing.T) {
	db, err := OpenDB(":memory:")
	if err != nil {
		t.Fatalf("open db: %v", err)
	}

	// Running the seed routines again must not duplicate anything.
	if err := seedUsers(db); err != nil {
		t.Fatalf("reseed users: %v", err)
	}
	if err := seedProducts(db); err != nil {
		t.Fatalf("reseed products: %v", err)
	}

	var users, products int
	if err := db.Get(&users, `SELECT COUNT(*) FROM users`); err != nil {
		t.Fatal(err)
	}
	if err := db.Get(&products, `SELECT COUNT(*) FROM products`); err != nil {
		t.Fatal(err)
	}
	if users != 2 {
		t.Fatalf("want 2 seeded users, got %d", users)
	}
	if products != 4 {
		t.Fatalf("want 4 seeded products, got %d", products)
	}
}

func TestUserDeleteCascades(t *testing.T) {
	db, err := OpenDB(":memory:")
	if err != nil {
		t.Fatalf("open db: %v", err)
	}

	// Seeded demo user (id 2) rates and buys seeded product 1.
	if err := NewRatingRepo(db).Upsert(2, 1, 4, "ok"); err != nil {
		t.Fatal(err)
	}
	if _, err := NewPurchaseRepo(db).Create(2, 1, 1, "M"); err != nil {
		t.Fatal(err)
	}

	users := NewUserRepo(db)
	if err := users.Delete(2); err != nil {
		t.Fatal(err)
	}

	var ratings, purchases int
	if err := db.Get(&ratings, `SELECT COUNT(*) FROM ratings WHERE user_id=2`); err != nil {
		t.Fatal(err)
	}
	if err := db.Get(&purchases, `SELECT COUNT(*) FROM purchases WHERE user_id=2`); err != nil {
		t.Fatal(err)
	}
	if ratings != 0 || purchases != 0 {
		t.Fatalf("cascade failed: ratings=%d purchases=%d", ratings, purchases)
	}

	if err := users.Delete(2); err == nil {
		t.Fatal("second delete should fail")
	}
}

func TestSeededPasswordsAreHashed(t *testing.T) {
	db, err := OpenDB(":memory:")
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	var hashes []string
	if err := db.Select(&hashes, `SELECT password_hash FROM users`); err != nil {
		t.Fatalf("select hashes: %v", err)
	}
	if len(hashes) == 0 {
		t.Fatal("no users seeded")
	}
	for _, h := range hashes {
		if strings.Contains(h, "admin123") || strings.Contains(h, "user123") {
			t.Fatalf("hash contains plaintext password")
		}
		if !strings.HasPrefix(h, "$2") {
			t.Fatalf("unexpected hash format: %s", h)
		}
	}

	var adminHash string
	if err := db.Get(&adminHash, `SELECT password_hash FROM users WHERE username='admin'`); err != nil {
		t.Fatal(err)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(adminHash), []byte("admin123")); err != nil {
		t.Fatalf("admin hash does not validate known password: %v", err)
	}
}
