package locale

// English text doubles as the key's source string, so the English table is
// the identity mapping. Plurals are left out on purpose and derived.
var english = map[string]string{
	"genre.verbose_name":              "genre",
	"genre.name":                      "name",
	"author.verbose_name":             "author",
	"author.first_name":               "first name",
	"author.last_name":                "last name",
	"book.verbose_name":               "book",
	"book.title":                      "title",
	"book.author":                     "author",
	"book.genre":                      "genre",
	"book.summary":                    "summary",
	"bookinstance.verbose_name":       "book instance",
	"bookinstance.unique_id":          "unique ID",
	"bookinstance.book":               "book",
	"bookinstance.due_back":           "due back",
	"bookinstance.status":             "status",
	"bookinstance.status.available":   "available",
	"bookinstance.status.reserved":    "reserved",
	"bookinstance.status.taken":       "taken",
	"bookinstance.status.unavailable": "unavailable",
}

var lithuanian = map[string]string{
	"genre.verbose_name":               "žanras",
	"genre.verbose_name_plural":        "žanrai",
	"genre.name":                       "pavadinimas",
	"author.verbose_name":              "autorius",
	"author.verbose_name_plural":       "autoriai",
	"author.first_name":                "vardas",
	"author.last_name":                 "pavardė",
	"book.verbose_name":                "knyga",
	"book.verbose_name_plural":         "knygos",
	"book.title":                       "pavadinimas",
	"book.author":                      "autorius",
	"book.genre":                       "žanras",
	"book.summary":                     "santrauka",
	"bookinstance.verbose_name":        "knygos egzempliorius",
	"bookinstance.verbose_name_plural": "knygų egzemplioriai",
	"bookinstance.unique_id":           "unikalus ID",
	"bookinstance.book":                "knyga",
	"bookinstance.due_back":            "grąžinti iki",
	"bookinstance.status":              "būsena",
	"bookinstance.status.available":    "laisva",
	"bookinstance.status.reserved":     "rezervuota",
	"bookinstance.status.taken":        "paimta",
	"bookinstance.status.unavailable":  "neprieinama",
}

// Entities are the entity prefixes that carry verbose names.
var Entities = []string{"genre", "author", "book", "bookinstance"}
