package db

import (
	"context"
	"fmt"

	"github.com/andres/news-radar/internal/types"
)

// defaultTypeConfigs are the shipped scoring configurations. Every type starts
// with the same weight split; operators tune per type afterwards.
var defaultTypeConfigs = []types.BusinessTypeConfig{
	{Code: types.TypePub, DisplayName: "Pub", SuitabilityWeight: 0.4, KeywordWeight: 0.3, EventScaleWeight: 0.2, NeighborhoodWeight: 0.1, MinSuitabilityThreshold: 0.3, MinRelevanceThreshold: 0.4, Active: true},
	{Code: types.TypeRestaurant, DisplayName: "Restaurante", SuitabilityWeight: 0.4, KeywordWeight: 0.3, EventScaleWeight: 0.2, NeighborhoodWeight: 0.1, MinSuitabilityThreshold: 0.3, MinRelevanceThreshold: 0.4, Active: true},
	{Code: types.TypeCoffeeShop, DisplayName: "Cafetería", SuitabilityWeight: 0.4, KeywordWeight: 0.3, EventScaleWeight: 0.2, NeighborhoodWeight: 0.1, MinSuitabilityThreshold: 0.3, MinRelevanceThreshold: 0.4, Active: true},
	{Code: types.TypeBookstore, DisplayName: "Librería", SuitabilityWeight: 0.4, KeywordWeight: 0.3, EventScaleWeight: 0.2, NeighborhoodWeight: 0.1, MinSuitabilityThreshold: 0.3, MinRelevanceThreshold: 0.4, Active: true},
}

// defaultTypeKeywords is the shipped keyword catalog per business type. Every
// entry seeds as active; TypeCode and Active are filled in by the accessors.
var defaultTypeKeywords = map[string][]types.TypeKeyword{
	types.TypePub: {
		{Keyword: "cerveza", Weight: 0.20, Category: "bebidas"},
		{Keyword: "cervezas", Weight: 0.20, Category: "bebidas"},
		{Keyword: "beer", Weight: 0.20, Category: "bebidas"},
		{Keyword: "artesanal", Weight: 0.15, Category: "bebidas"},
		{Keyword: "craft", Weight: 0.15, Category: "bebidas"},
		{Keyword: "bar", Weight: 0.25, Category: "establecimiento"},
		{Keyword: "pub", Weight: 0.25, Category: "establecimiento"},
		{Keyword: "taberna", Weight: 0.20, Category: "establecimiento"},
		{Keyword: "brewery", Weight: 0.20, Category: "establecimiento"},
		{Keyword: "cervecería", Weight: 0.20, Category: "establecimiento"},
		{Keyword: "música en vivo", Weight: 0.20, Category: "eventos"},
		{Keyword: "live music", Weight: 0.20, Category: "eventos"},
		{Keyword: "concierto", Weight: 0.15, Category: "eventos"},
		{Keyword: "dj", Weight: 0.15, Category: "eventos"},
		{Keyword: "fiesta", Weight: 0.15, Category: "eventos"},
		{Keyword: "karaoke", Weight: 0.15, Category: "eventos"},
		{Keyword: "trivia", Weight: 0.15, Category: "eventos"},
		{Keyword: "fútbol", Weight: 0.20, Category: "deportes"},
		{Keyword: "partido", Weight: 0.20, Category: "deportes"},
		{Keyword: "deportes", Weight: 0.15, Category: "deportes"},
		{Keyword: "sports", Weight: 0.15, Category: "deportes"},
		{Keyword: "champions", Weight: 0.15, Category: "deportes"},
		{Keyword: "mundial", Weight: 0.20, Category: "deportes"},
		{Keyword: "happy hour", Weight: 0.15, Category: "social"},
		{Keyword: "promoción", Weight: 0.10, Category: "social"},
		{Keyword: "descuento", Weight: 0.10, Category: "social"},
		{Keyword: "reunión", Weight: 0.10, Category: "social"},
	},
	types.TypeRestaurant: {
		{Keyword: "restaurante", Weight: 0.25, Category: "establecimiento"},
		{Keyword: "restaurant", Weight: 0.25, Category: "establecimiento"},
		{Keyword: "comida", Weight: 0.20, Category: "comida"},
		{Keyword: "gastronomía", Weight: 0.20, Category: "comida"},
		{Keyword: "gastronomy", Weight: 0.20, Category: "comida"},
		{Keyword: "plato", Weight: 0.15, Category: "comida"},
		{Keyword: "menú", Weight: 0.15, Category: "comida"},
		{Keyword: "chef", Weight: 0.15, Category: "comida"},
		{Keyword: "italiana", Weight: 0.15, Category: "cocina"},
		{Keyword: "mexicana", Weight: 0.15, Category: "cocina"},
		{Keyword: "japonesa", Weight: 0.15, Category: "cocina"},
		{Keyword: "mediterránea", Weight: 0.15, Category: "cocina"},
		{Keyword: "fusion", Weight: 0.15, Category: "cocina"},
		{Keyword: "colombiana", Weight: 0.15, Category: "cocina"},
		{Keyword: "degustación", Weight: 0.15, Category: "eventos"},
		{Keyword: "tasting", Weight: 0.15, Category: "eventos"},
		{Keyword: "festival gastronómico", Weight: 0.20, Category: "eventos"},
		{Keyword: "food festival", Weight: 0.20, Category: "eventos"},
		{Keyword: "cena", Weight: 0.15, Category: "eventos"},
		{Keyword: "almuerzo", Weight: 0.10, Category: "eventos"},
		{Keyword: "michelin", Weight: 0.20, Category: "calidad"},
		{Keyword: "gourmet", Weight: 0.15, Category: "calidad"},
		{Keyword: "orgánico", Weight: 0.10, Category: "calidad"},
		{Keyword: "local", Weight: 0.10, Category: "calidad"},
	},
	types.TypeCoffeeShop: {
		{Keyword: "café", Weight: 0.25, Category: "bebidas"},
		{Keyword: "coffee", Weight: 0.25, Category: "bebidas"},
		{Keyword: "cafetería", Weight: 0.25, Category: "establecimiento"},
		{Keyword: "coffee shop", Weight: 0.25, Category: "establecimiento"},
		{Keyword: "espresso", Weight: 0.20, Category: "bebidas"},
		{Keyword: "cappuccino", Weight: 0.15, Category: "bebidas"},
		{Keyword: "latte", Weight: 0.15, Category: "bebidas"},
		{Keyword: "pastelería", Weight: 0.15, Category: "comida"},
		{Keyword: "pastry", Weight: 0.15, Category: "comida"},
		{Keyword: "panadería", Weight: 0.15, Category: "comida"},
		{Keyword: "bakery", Weight: 0.15, Category: "comida"},
		{Keyword: "postre", Weight: 0.10, Category: "comida"},
		{Keyword: "dessert", Weight: 0.10, Category: "comida"},
		{Keyword: "barista", Weight: 0.15, Category: "cultura"},
		{Keyword: "tostado", Weight: 0.10, Category: "cultura"},
		{Keyword: "roasting", Weight: 0.10, Category: "cultura"},
		{Keyword: "origen", Weight: 0.10, Category: "cultura"},
		{Keyword: "specialty", Weight: 0.15, Category: "cultura"},
		{Keyword: "especialidad", Weight: 0.15, Category: "cultura"},
		{Keyword: "cafetero", Weight: 0.15, Category: "eventos"},
		{Keyword: "coffee tasting", Weight: 0.15, Category: "eventos"},
		{Keyword: "latte art", Weight: 0.10, Category: "eventos"},
		{Keyword: "coworking", Weight: 0.10, Category: "ambiente"},
		{Keyword: "wifi", Weight: 0.05, Category: "ambiente"},
		{Keyword: "lectura", Weight: 0.10, Category: "ambiente"},
		{Keyword: "reunión", Weight: 0.10, Category: "ambiente"},
	},
	types.TypeBookstore: {
		{Keyword: "librería", Weight: 0.25, Category: "establecimiento"},
		{Keyword: "bookstore", Weight: 0.25, Category: "establecimiento"},
		{Keyword: "libro", Weight: 0.25, Category: "productos"},
		{Keyword: "books", Weight: 0.25, Category: "productos"},
		{Keyword: "editorial", Weight: 0.15, Category: "productos"},
		{Keyword: "publisher", Weight: 0.15, Category: "productos"},
		{Keyword: "presentación", Weight: 0.20, Category: "eventos"},
		{Keyword: "book launch", Weight: 0.20, Category: "eventos"},
		{Keyword: "autor", Weight: 0.20, Category: "eventos"},
		{Keyword: "author", Weight: 0.20, Category: "eventos"},
		{Keyword: "firma", Weight: 0.15, Category: "eventos"},
		{Keyword: "signing", Weight: 0.15, Category: "eventos"},
		{Keyword: "lectura", Weight: 0.15, Category: "eventos"},
		{Keyword: "reading", Weight: 0.15, Category: "eventos"},
		{Keyword: "club de lectura", Weight: 0.15, Category: "eventos"},
		{Keyword: "book club", Weight: 0.15, Category: "eventos"},
		{Keyword: "novela", Weight: 0.15, Category: "géneros"},
		{Keyword: "novel", Weight: 0.15, Category: "géneros"},
		{Keyword: "poesía", Weight: 0.15, Category: "géneros"},
		{Keyword: "poetry", Weight: 0.15, Category: "géneros"},
		{Keyword: "ensayo", Weight: 0.10, Category: "géneros"},
		{Keyword: "literatura", Weight: 0.20, Category: "géneros"},
		{Keyword: "literature", Weight: 0.20, Category: "géneros"},
		{Keyword: "cultural", Weight: 0.15, Category: "cultura"},
		{Keyword: "literario", Weight: 0.20, Category: "cultura"},
		{Keyword: "literary", Weight: 0.20, Category: "cultura"},
		{Keyword: "feria del libro", Weight: 0.20, Category: "eventos"},
		{Keyword: "book fair", Weight: 0.20, Category: "eventos"},
	},
}

// DefaultTypeConfigs returns a copy of the shipped type configurations, for
// running without a database.
func DefaultTypeConfigs() []types.BusinessTypeConfig {
	out := make([]types.BusinessTypeConfig, len(defaultTypeConfigs))
	copy(out, defaultTypeConfigs)
	return out
}

// DefaultTypeKeywords returns a copy of the shipped keyword catalog with type
// codes filled in.
func DefaultTypeKeywords() map[string][]types.TypeKeyword {
	out := make(map[string][]types.TypeKeyword, len(defaultTypeKeywords))
	for typeCode, keywords := range defaultTypeKeywords {
		list := make([]types.TypeKeyword, len(keywords))
		copy(list, keywords)
		for i := range list {
			list[i].TypeCode = typeCode
			list[i].Active = true
		}
		out[typeCode] = list
	}
	return out
}

// SeedDefaults upserts the shipped type configurations and keyword catalog.
// Safe to run repeatedly; existing rows are updated in place.
func (db *DB) SeedDefaults(ctx context.Context) (int, error) {
	seeded := 0

	for i := range defaultTypeConfigs {
		config := defaultTypeConfigs[i]
		if err := db.UpsertTypeConfig(ctx, &config); err != nil {
			return seeded, fmt.Errorf("failed to seed type %s: %w", config.Code, err)
		}
		seeded++
	}

	for typeCode, keywords := range defaultTypeKeywords {
		for i := range keywords {
			keyword := keywords[i]
			keyword.TypeCode = typeCode
			keyword.Active = true
			if err := db.UpsertTypeKeyword(ctx, &keyword); err != nil {
				return seeded, fmt.Errorf("failed to seed keyword %s/%s: %w", typeCode, keyword.Keyword, err)
			}
			seeded++
		}
	}

	return seeded, nil
}
