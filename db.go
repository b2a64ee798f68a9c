package descramble

import (
	"database/sql"
	"encoding/xml"
	"fmt"
	"image"
	"os"
	"strings"

	"github.com/bodgit/descramble/ordering"
	_ "github.com/mattn/go-sqlite3"
)

// RecipeDB is the catalog of scramble recipes. Each recipe maps the
// CRC-32 of a scrambled image file to the tile size and ordering that
// put it back together.
type RecipeDB struct {
	db *sql.DB
}

func NewRecipeDB(file string) (*RecipeDB, error) {
	db, err := sql.Open("sqlite3", fmt.Sprintf("%s?_foreign_keys=on", file))
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(10)

	if _, err = db.Exec("CREATE TABLE IF NOT EXISTS recipe (id INTEGER PRIMARY KEY NOT NULL, crc TEXT NOT NULL UNIQUE, tile_width INTEGER NOT NULL, tile_height INTEGER NOT NULL, ordering TEXT NOT NULL)"); err != nil {
		return nil, err
	}

	return &RecipeDB{
		db: db,
	}, nil
}

type xmlRecipeDB struct {
	XMLName xml.Name    `xml:"RecipeDB"`
	Recipes []xmlRecipe `xml:"Recipe"`
}

type xmlRecipe struct {
	XMLName  xml.Name `xml:"Recipe"`
	Checksum string   `xml:"Checksum"`
	Width    int      `xml:"TileWidth"`
	Height   int      `xml:"TileHeight"`
	Ordering string   `xml:"Ordering"`
}

// ImportXML replaces the contents of the catalog with the recipes in
// the given manifest.
func (db *RecipeDB) ImportXML(file string) error {
	b, err := os.ReadFile(file)
	if err != nil {
		return err
	}

	var xmlDB xmlRecipeDB
	if err := xml.Unmarshal(b, &xmlDB); err != nil {
		return err
	}

	if _, err = db.db.Exec("DELETE FROM recipe"); err != nil {
		return err
	}

	for _, r := range xmlDB.Recipes {
		o, err := ordering.Parse(r.Ordering)
		if err != nil {
			return err
		}
		if !ordering.Valid(o) {
			return fmt.Errorf("recipe %q: ordering is not a permutation", r.Checksum)
		}

		// Checksums are stored as eight upper case hex digits.
		crc := strings.ToUpper(r.Checksum)
		if len(crc) < 8 {
			crc = strings.Repeat("0", 8-len(crc)) + crc
		}

		if err := db.addRecipe(crc, image.Pt(r.Width, r.Height), o); err != nil {
			return err
		}
	}

	return nil
}

func (db *RecipeDB) Close() error {
	return db.db.Close()
}

func (db *RecipeDB) addRecipe(crc string, tileSize image.Point, o []int) error {
	if _, err := db.db.Exec("INSERT OR REPLACE INTO recipe (crc, tile_width, tile_height, ordering) VALUES (?, ?, ?, ?)", crc, tileSize.X, tileSize.Y, ordering.Format(o)); err != nil {
		return err
	}
	return nil
}

// FindRecipeByCRC looks up the recipe for a scrambled image by its
// CRC. A nil ordering with no error means the catalog has no recipe
// for that checksum.
func (db *RecipeDB) FindRecipeByCRC(crc string) (image.Point, []int, error) {
	var width, height int
	var text string
	switch err := db.db.QueryRow("SELECT tile_width, tile_height, ordering FROM recipe WHERE crc = ?", crc).Scan(&width, &height, &text); err {
	case sql.ErrNoRows:
		return image.Point{}, nil, nil
	case nil:
		o, err := ordering.Parse(text)
		if err != nil {
			return image.Point{}, nil, err
		}
		return image.Pt(width, height), o, nil
	default:
		return image.Point{}, nil, err
	}
}
