package exporters

import "github.com/mrlokans/clippings/internal/entities"

type EntryExporter interface {
	Export(entries []entities.Entry) (ExportResult, error)
}

type ExportResult struct {
	BooksProcessed   int `json:"books_processed"`
	EntriesProcessed int `json:"entries_processed"`
	BooksFailed      int `json:"books_failed"`
}

// Book is the set of entries sharing a title and author, in file order.
type Book struct {
	Title   string
	Author  *string
	Entries []entities.Entry
}

// GroupByBook buckets entries per book, keeping first-seen book order.
func GroupByBook(entries []entities.Entry) []Book {
	index := make(map[string]int)
	var books []Book

	for _, entry := range entries {
		author, hasAuthor := entry.Author()
		key := entry.Title() + "\x00" + author
		if hasAuthor {
			key += "\x00+"
		}

		i, ok := index[key]
		if !ok {
			book := Book{Title: entry.Title()}
			if hasAuthor {
				book.Author = &author
			}
			books = append(books, book)
			i = len(books) - 1
			index[key] = i
		}
		books[i].Entries = append(books[i].Entries, entry)
	}

	return books
}
