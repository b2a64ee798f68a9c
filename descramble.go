/*
Package descramble validates and reverses tile-based scrambling of
raster images.
*/
package descramble

import "log"

type Descrambler struct {
	db     *RecipeDB
	logger *log.Logger
}

func New(db string, logger *log.Logger) (*Descrambler, error) {
	rdb, err := NewRecipeDB(db)
	if err != nil {
		return nil, err
	}
	return &Descrambler{
		db:     rdb,
		logger: logger,
	}, nil
}

// ImportXML loads a recipe manifest into the catalog, replacing any
// recipes already present.
func (d *Descrambler) ImportXML(file string) error {
	return d.db.ImportXML(file)
}

func (d *Descrambler) Close() error {
	return d.db.Close()
}
