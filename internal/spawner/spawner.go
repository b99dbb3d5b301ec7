package spawner

import (
	"github.com/abhisek/sortbot/internal/dice"
	"github.com/abhisek/sortbot/internal/waste"
)

// Spawner picks the category of the next item. Any len(categories)
// consecutive spawns contain each category exactly once.
type Spawner struct {
	categories []waste.Category
	die        *dice.ShuffledDie
}

// New creates a spawner over all categories.
func New(src dice.Source) *Spawner {
	if src == nil {
		src = dice.Default()
	}
	cats := waste.AllCategories()
	return &Spawner{
		categories: cats,
		die:        dice.NewShuffledDie(len(cats), src),
	}
}

// Next returns the next category.
func (s *Spawner) Next() waste.Category {
	return s.categories[s.die.Roll()-1]
}
