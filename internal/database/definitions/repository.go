// Package definitions provides database operations for shared definitions and
// the word_definition link table.
package definitions

import (
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/mrlokans/myvoca/internal/entities"
)

type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// FindOrCreate reuses an existing definition with the same text, otherwise
// inserts def. The returned definition always has its ID set.
func (r *Repository) FindOrCreate(def *entities.Definition) (*entities.Definition, error) {
	var existing entities.Definition
	err := r.db.Where("text = ?", def.Text).First(&existing).Error
	if err == nil {
		return &existing, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}
	if err := r.db.Create(def).Error; err != nil {
		return nil, err
	}
	return def, nil
}

func (r *Repository) GetByID(id uint) (*entities.Definition, error) {
	var def entities.Definition
	if err := r.db.First(&def, id).Error; err != nil {
		return nil, err
	}
	return &def, nil
}

// GetByWord joins through word_definition, ordered by definition id.
func (r *Repository) GetByWord(wordID uint) ([]entities.Definition, error) {
	var defs []entities.Definition
	err := r.db.Model(&entities.Definition{}).
		Joins("JOIN word_definition ON word_definition.definition_id = definition.definition_id").
		Where("word_definition.word_id = ?", wordID).
		Order("definition.definition_id ASC").
		Find(&defs).Error
	return defs, err
}

// Link is idempotent: linking an already linked pair is a no-op.
func (r *Repository) Link(wordID, definitionID uint) error {
	return r.db.Clauses(clause.OnConflict{DoNothing: true}).
		Create(&entities.WordDefinition{WordID: wordID, DefinitionID: definitionID}).Error
}

// Unlink removes one link and reports whether it existed.
func (r *Repository) Unlink(wordID, definitionID uint) (bool, error) {
	result := r.db.Where("word_id = ? AND definition_id = ?", wordID, definitionID).
		Delete(&entities.WordDefinition{})
	return result.RowsAffected > 0, result.Error
}

func (r *Repository) CountLinks(definitionID uint) (int64, error) {
	var count int64
	err := r.db.Model(&entities.WordDefinition{}).Where("definition_id = ?", definitionID).Count(&count).Error
	return count, err
}

func (r *Repository) Delete(id uint) error {
	return r.db.Delete(&entities.Definition{}, id).Error
}

func (r *Repository) DeleteLinksByWordIDs(wordIDs []uint) error {
	if len(wordIDs) == 0 {
		return nil
	}
	return r.db.Where("word_id IN ?", wordIDs).Delete(&entities.WordDefinition{}).Error
}

// DeleteOrphans removes definitions no word links to anymore.
func (r *Repository) DeleteOrphans() (int64, error) {
	result := r.db.Where("NOT EXISTS (SELECT 1 FROM word_definition wd WHERE wd.definition_id = definition.definition_id)").
		Delete(&entities.Definition{})
	return result.RowsAffected, result.Error
}
