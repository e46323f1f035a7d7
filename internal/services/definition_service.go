package services

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/mrlokans/myvoca/internal/database/definitions"
	"github.com/mrlokans/myvoca/internal/dictionary"
	"github.com/mrlokans/myvoca/internal/entities"
)

// DefinitionService links shared definitions to words, either by hand or
// from a dictionary lookup.
type DefinitionService struct {
	db   *gorm.DB
	dict dictionary.Client
}

// NewDefinitionService accepts a nil dictionary client; EnrichWord then
// fails with ErrNoDictionary.
func NewDefinitionService(db *gorm.DB, dict dictionary.Client) *DefinitionService {
	return &DefinitionService{db: db, dict: dict}
}

func (s *DefinitionService) GetDefinitions(ctx context.Context, wordID uint) ([]DefinitionView, error) {
	db := s.db.WithContext(ctx)
	if _, err := getWord(db, wordID); err != nil {
		return nil, err
	}
	defs, err := definitions.NewRepository(db).GetByWord(wordID)
	if err != nil {
		return nil, fmt.Errorf("failed to load definitions of word %d: %w", wordID, err)
	}
	return toDefinitionViews(defs), nil
}

// AttachDefinition links a definition to the word, reusing an existing
// definition with the same text.
func (s *DefinitionService) AttachDefinition(ctx context.Context, wordID uint, req DefinitionRequest) (DefinitionView, error) {
	var view DefinitionView
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if _, err := getWord(tx, wordID); err != nil {
			return err
		}
		def, err := attach(tx, wordID, &entities.Definition{
			Text:         req.Text,
			PartOfSpeech: req.PartOfSpeech,
			Example:      req.Example,
			Source:       entities.DefinitionSourceManual,
		})
		if err != nil {
			return err
		}
		view = toDefinitionView(def)
		return nil
	})
	return view, err
}

// DetachDefinition unlinks a definition from the word and deletes the
// definition once no word references it.
func (s *DefinitionService) DetachDefinition(ctx context.Context, wordID, definitionID uint) (DefinitionView, error) {
	var view DefinitionView
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if _, err := getWord(tx, wordID); err != nil {
			return err
		}
		repo := definitions.NewRepository(tx)
		def, err := repo.GetByID(definitionID)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNoDefinition
		}
		if err != nil {
			return fmt.Errorf("failed to load definition %d: %w", definitionID, err)
		}

		existed, err := repo.Unlink(wordID, definitionID)
		if err != nil {
			return fmt.Errorf("failed to unlink definition %d: %w", definitionID, err)
		}
		if !existed {
			return ErrNoDefinition
		}

		remaining, err := repo.CountLinks(definitionID)
		if err != nil {
			return fmt.Errorf("failed to count links of definition %d: %w", definitionID, err)
		}
		if remaining == 0 {
			if err := repo.Delete(definitionID); err != nil {
				return fmt.Errorf("failed to delete definition %d: %w", definitionID, err)
			}
		}
		view = toDefinitionView(def)
		return nil
	})
	return view, err
}

// EnrichWord looks the word up in the dictionary and attaches every returned
// definition. An expression unknown to the dictionary yields no definitions
// and no error.
func (s *DefinitionService) EnrichWord(ctx context.Context, wordID uint) ([]DefinitionView, error) {
	if s.dict == nil {
		return nil, ErrNoDictionary
	}

	word, err := getWord(s.db.WithContext(ctx), wordID)
	if err != nil {
		return nil, err
	}

	// The HTTP lookup runs outside the transaction.
	result, err := s.dict.Lookup(ctx, word.Expression)
	if errors.Is(err, dictionary.ErrNotFound) {
		return []DefinitionView{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to look up %q in %s: %w", word.Expression, s.dict.Name(), err)
	}

	views := make([]DefinitionView, 0, len(result.Definitions))
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// the word may have been deleted during the lookup
		if _, err := getWord(tx, wordID); err != nil {
			return err
		}
		for _, d := range result.Definitions {
			def, err := attach(tx, wordID, &entities.Definition{
				Text:         d.Text,
				PartOfSpeech: d.PartOfSpeech,
				Example:      d.Example,
				Source:       s.dict.Name(),
			})
			if err != nil {
				return err
			}
			views = append(views, toDefinitionView(def))
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return views, nil
}

func attach(tx *gorm.DB, wordID uint, candidate *entities.Definition) (*entities.Definition, error) {
	repo := definitions.NewRepository(tx)
	def, err := repo.FindOrCreate(candidate)
	if err != nil {
		return nil, fmt.Errorf("failed to save definition: %w", err)
	}
	if err := repo.Link(wordID, def.ID); err != nil {
		return nil, fmt.Errorf("failed to link definition %d to word %d: %w", def.ID, wordID, err)
	}
	return def, nil
}

// DeleteOrphanDefinitions removes definitions that no word links to.
func (s *DefinitionService) DeleteOrphanDefinitions(ctx context.Context) (int64, error) {
	deleted, err := definitions.NewRepository(s.db.WithContext(ctx)).DeleteOrphans()
	if err != nil {
		return 0, fmt.Errorf("failed to delete orphaned definitions: %w", err)
	}
	return deleted, nil
}
