package mongo

import (
	"alcyxob/physio-app/internal/domain"
	"context"
	"fmt"
	"io"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"gopkg.in/yaml.v3"
)

// Catalog is the reference data fixture: body parts, their tests, and the exercises of each test.
//
//	body_parts:
//	  - id: 1
//	    name: Shoulder
//	    muscle_tests:
//	      - id: 10
//	        name: Empty can test
//	        description: ...
//	        exercises:
//	          - id: 100
//	            name: Band external rotation
//	            description: ...
//	            images:
//	              - id: 1000
//	                object_key: exercises/100/1.jpg
type Catalog struct {
	BodyParts []CatalogBodyPart `yaml:"body_parts"`
}

type CatalogBodyPart struct {
	ID          int64               `yaml:"id"`
	Name        string              `yaml:"name"`
	MuscleTests []CatalogMuscleTest `yaml:"muscle_tests"`
}

type CatalogMuscleTest struct {
	ID          int64             `yaml:"id"`
	Name        string            `yaml:"name"`
	Description string            `yaml:"description"`
	Exercises   []CatalogExercise `yaml:"exercises"`
}

type CatalogExercise struct {
	ID          int64          `yaml:"id"`
	Name        string         `yaml:"name"`
	Description string         `yaml:"description"`
	Images      []CatalogImage `yaml:"images"`
}

type CatalogImage struct {
	ID        int64  `yaml:"id"`
	ObjectKey string `yaml:"object_key"`
	Caption   string `yaml:"caption"`
}

// SeedResult counts the documents written by SeedCatalog.
type SeedResult struct {
	BodyParts   int
	MuscleTests int
	Exercises   int
	Images      int
}

// LoadCatalog parses a YAML catalog and checks ids are present and unique per kind.
func LoadCatalog(r io.Reader) (*Catalog, error) {
	var catalog Catalog
	decoder := yaml.NewDecoder(r)
	decoder.KnownFields(true)
	if err := decoder.Decode(&catalog); err != nil {
		return nil, fmt.Errorf("decode catalog: %w", err)
	}
	if err := catalog.validate(); err != nil {
		return nil, err
	}
	return &catalog, nil
}

func (c *Catalog) validate() error {
	seen := map[string]map[int64]bool{
		"body part": {}, "muscle test": {}, "exercise": {}, "image": {},
	}
	check := func(kind string, id int64) error {
		if id <= 0 {
			return fmt.Errorf("%s id must be positive, got %d", kind, id)
		}
		if seen[kind][id] {
			return fmt.Errorf("duplicate %s id %d", kind, id)
		}
		seen[kind][id] = true
		return nil
	}

	for _, bp := range c.BodyParts {
		if err := check("body part", bp.ID); err != nil {
			return err
		}
		if bp.Name == "" {
			return fmt.Errorf("body part %d has no name", bp.ID)
		}
		for _, mt := range bp.MuscleTests {
			if err := check("muscle test", mt.ID); err != nil {
				return err
			}
			for _, ex := range mt.Exercises {
				if err := check("exercise", ex.ID); err != nil {
					return err
				}
				if ex.Description == "" {
					return fmt.Errorf("exercise %d has no description", ex.ID)
				}
				for _, img := range ex.Images {
					if err := check("image", img.ID); err != nil {
						return err
					}
				}
			}
		}
	}
	return nil
}

// SeedCatalog upserts the catalog into MongoDB. Running it twice is harmless.
func SeedCatalog(ctx context.Context, db *mongo.Database, catalog *Catalog) (SeedResult, error) {
	var result SeedResult
	var bodyParts, muscleTests, exercises, imageModels []mongo.WriteModel

	upsert := func(id int64, doc interface{}) mongo.WriteModel {
		return mongo.NewReplaceOneModel().
			SetFilter(bson.M{"_id": id}).
			SetReplacement(doc).
			SetUpsert(true)
	}

	for _, bp := range catalog.BodyParts {
		bodyParts = append(bodyParts, upsert(bp.ID, domain.BodyPart{ID: bp.ID, Name: bp.Name}))
		for _, mt := range bp.MuscleTests {
			muscleTests = append(muscleTests, upsert(mt.ID, domain.MuscleTest{
				ID:          mt.ID,
				BodyPartID:  bp.ID,
				Name:        mt.Name,
				Description: mt.Description,
			}))
			for _, ex := range mt.Exercises {
				exercises = append(exercises, upsert(ex.ID, domain.Exercise{
					ID:           ex.ID,
					MuscleTestID: mt.ID,
					Name:         ex.Name,
					Description:  ex.Description,
				}))
				for pos, img := range ex.Images {
					imageModels = append(imageModels, upsert(img.ID, domain.ExerciseImage{
						ID:         img.ID,
						ExerciseID: ex.ID,
						ObjectKey:  img.ObjectKey,
						Caption:    img.Caption,
						Position:   pos,
					}))
				}
			}
		}
	}

	writes := []struct {
		collection string
		models     []mongo.WriteModel
		count      *int
	}{
		{bodyPartCollectionName, bodyParts, &result.BodyParts},
		{muscleTestCollectionName, muscleTests, &result.MuscleTests},
		{exerciseCollectionName, exercises, &result.Exercises},
		{exerciseImageCollectionName, imageModels, &result.Images},
	}
	for _, w := range writes {
		if len(w.models) == 0 {
			continue
		}
		if _, err := db.Collection(w.collection).BulkWrite(ctx, w.models, options.BulkWrite().SetOrdered(false)); err != nil {
			return result, fmt.Errorf("seed %s: %w", w.collection, err)
		}
		*w.count = len(w.models)
	}
	return result, nil
}
