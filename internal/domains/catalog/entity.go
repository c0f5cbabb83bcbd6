// Package catalog holds the entity graph shared by the author, book and genre
// domains, the lookup strategies and the projection into transfer objects.
package catalog

// Entities are value snapshots read from and written to the store.
// A nil relation slice means the relation was not loaded; a non-nil empty
// slice means it was loaded and is empty.

type Author struct {
	ID      int64  `db:"id"`
	Name    string `db:"name"`
	Surname string `db:"surname"`

	Books []Book `db:"-"`
}

type Book struct {
	ID      int64  `db:"id"`
	Name    string `db:"name"`
	GenreID int64  `db:"genre_id"`

	Genre   *Genre   `db:"-"`
	Authors []Author `db:"-"`
}

type Genre struct {
	ID   int64  `db:"id"`
	Name string `db:"name"`

	Books []Book `db:"-"`
}

// IsNew reports whether the author has not been stored yet.
func (a Author) IsNew() bool { return a.ID == 0 }

func (b Book) IsNew() bool { return b.ID == 0 }

func (g Genre) IsNew() bool { return g.ID == 0 }

// AuthorIDs returns the ids of the loaded authors, in order.
func (b Book) AuthorIDs() []int64 {
	ids := make([]int64, 0, len(b.Authors))
	for _, a := range b.Authors {
		ids = append(ids, a.ID)
	}
	return ids
}
