package catalog

import (
	"context"
	"log"

	"toyvault/db"
	"toyvault/models"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
)

// SeedProducts loads the starter catalog when the collection is empty, so a
// fresh install has something to sell.
func SeedProducts(ctx context.Context) error {
	count, err := db.ProductsCollection.CountDocuments(ctx, bson.M{})
	if err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	docs := make([]interface{}, 0, len(starterCatalog))
	for _, p := range starterCatalog {
		p.ProductID = uuid.NewString()
		docs = append(docs, p)
	}
	if _, err := db.ProductsCollection.InsertMany(ctx, docs); err != nil {
		return err
	}
	log.Printf("seeded %d catalog products", len(docs))
	return nil
}

var starterCatalog = []models.Product{
	{
		Title:       "Baby Alive Growing Up Happy Doll",
		Description: "Watch Baby Alive grow before your eyes! This interactive doll grows taller, says phrases, and comes with accessories for nurturing play.",
		Handle:      "baby-alive-doll",
		Price:       34.99,
		Images:      []string{"/static/productpic/baby-alive-doll.jpg"},
		Category:    []string{"dolls"},
		AgeRange:    []string{"0-2", "3-5"},
		InStock:     true,
	},
	{
		Title:       "Barbie DreamHouse 2026 Edition",
		Description: "The ultimate Barbie DreamHouse with 3 floors, 10 rooms, a working elevator, pool, and slide! Includes 75+ accessories and furniture pieces.",
		Handle:      "barbie-dreamhouse",
		Price:       179.99,
		Images:      []string{"/static/productpic/barbie-dreamhouse.jpg"},
		Category:    []string{"dolls"},
		AgeRange:    []string{"3-5", "6-8"},
		InStock:     true,
	},
	{
		Title:       "Montessori Busy Board Activity Cube",
		Description: "6-in-1 wooden activity cube with latches, gears, zippers, and more. Develops fine motor skills through hands-on play.",
		Handle:      "busy-board-cube",
		Price:       29.99,
		Images:      []string{"/static/productpic/busy-board-cube.jpg"},
		Category:    []string{"stem"},
		AgeRange:    []string{"0-2", "3-5"},
		InStock:     true,
	},
	{
		Title:       "Connect 4 Frenzy Game",
		Description: "Fast-paced Connect 4 with a twist! Race against opponents to get four in a row before time runs out.",
		Handle:      "connect4-frenzy",
		Price:       14.99,
		Images:      []string{"/static/productpic/connect4-frenzy.jpg"},
		Category:    []string{"games"},
		AgeRange:    []string{"6-8", "9-12"},
		InStock:     true,
	},
	{
		Title:       "Dinosaur Fossil Excavation Kit",
		Description: "Dig up and assemble a complete T-Rex skeleton! Includes excavation tools, plaster block with hidden bones, and educational guide.",
		Handle:      "dinosaur-excavation-kit",
		Price:       19.99,
		Images:      []string{"/static/productpic/dinosaur-excavation-kit.jpg"},
		Category:    []string{"stem"},
		AgeRange:    []string{"6-8", "9-12"},
		InStock:     true,
	},
	{
		Title:       "Exploding Pigeon Card Game",
		Description: "The hilarious party card game where you try not to draw an exploding pigeon! Perfect for family game night.",
		Handle:      "exploding-pigeon",
		Price:       12.99,
		Images:      []string{"/static/productpic/exploding-pigeon.jpg"},
		Category:    []string{"games"},
		AgeRange:    []string{"9-12", "teen"},
		InStock:     true,
	},
	{
		Title:       "Hot Wheels Ultimate Garage Playset",
		Description: "Massive multi-level garage with space for 100+ cars! Features motorized elevator, spiral ramp, and Gorilla attack.",
		Handle:      "hot-wheels-garage",
		Price:       89.99,
		Images:      []string{"/static/productpic/hot-wheels-garage.jpg"},
		Category:    []string{"action"},
		AgeRange:    []string{"3-5", "6-8"},
		InStock:     true,
	},
	{
		Title:       "Kanoodle SudoQube Brain Teaser",
		Description: "3D brain-bending puzzle with 200+ challenges from easy to expert. Develops spatial reasoning and critical thinking.",
		Handle:      "kanoodle-sudoqube",
		Price:       11.99,
		Images:      []string{"/static/productpic/kanoodle-sudoqube.jpg"},
		Category:    []string{"games", "stem"},
		AgeRange:    []string{"9-12", "teen"},
		InStock:     true,
	},
	{
		Title:       "LEGO Panda Family Habitat Set",
		Description: "Build an adorable panda family habitat with bamboo forest, waterfall, and 4 panda figures. 500+ pieces with detailed instructions.",
		Handle:      "lego-panda-family",
		Price:       44.99,
		Images:      []string{"/static/productpic/lego-panda-family.jpg"},
		Category:    []string{"lego"},
		AgeRange:    []string{"6-8", "9-12"},
		InStock:     true,
	},
	{
		Title:       "Magna-Tiles 100-Piece Clear Colors",
		Description: "100 translucent magnetic building tiles in vibrant colors. STEM-certified and compatible with all Magna-Tiles sets.",
		Handle:      "magna-tiles",
		Price:       54.99,
		Images:      []string{"/static/productpic/magna-tiles.jpg"},
		Category:    []string{"lego", "stem"},
		AgeRange:    []string{"3-5", "6-8"},
		InStock:     true,
	},
}
