package main

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/slogsolutions/Audit-Management-Platform/internal/application/usecase/category"
	"github.com/slogsolutions/Audit-Management-Platform/internal/infra/db/dbtest"
	"github.com/slogsolutions/Audit-Management-Platform/internal/integration/persistence"
)

const sampleSeed = `
categories:
  - name: Travel
    meta:
      color: "#3366ff"
    children: [Flights, Hotels, "  "]
  - name: Office
    children:
      - Stationery
  - name: Utilities
`

func TestParseSeedFile(t *testing.T) {
	t.Run("valid document", func(t *testing.T) {
		seeds, err := parseSeedFile(strings.NewReader(sampleSeed))
		require.NoError(t, err)
		require.Len(t, seeds, 3)
		assert.Equal(t, "Travel", seeds[0].Name)
		assert.Equal(t, "#3366ff", seeds[0].Meta["color"])
		assert.Equal(t, []string{"Flights", "Hotels", "  "}, seeds[0].Children)
		assert.Empty(t, seeds[2].Children)
	})

	t.Run("unknown field", func(t *testing.T) {
		_, err := parseSeedFile(strings.NewReader("categories:\n  - name: Travel\n    colour: red\n"))
		assert.Error(t, err)
	})

	t.Run("no categories", func(t *testing.T) {
		_, err := parseSeedFile(strings.NewReader("categories: []\n"))
		assert.EqualError(t, err, "seed file lists no categories")
	})

	t.Run("missing name", func(t *testing.T) {
		_, err := parseSeedFile(strings.NewReader("categories:\n  - children: [A]\n"))
		assert.EqualError(t, err, "category #1 has no name")
	})
}

func TestCategorySeeder(t *testing.T) {
	ctx := context.Background()
	repo := persistence.NewCategoryRepository(dbtest.Open(t))
	seeder := &categorySeeder{
		list:       category.NewListCategoriesUseCase(repo),
		create:     category.NewCreateCategoryUseCase(repo),
		bulkCreate: category.NewBulkCreateSubcategoriesUseCase(repo),
	}

	seeds, err := parseSeedFile(strings.NewReader(sampleSeed))
	require.NoError(t, err)

	first, err := seeder.seed(ctx, seeds)
	require.NoError(t, err)
	assert.Equal(t, &seedResult{TopCreated: 3, ChildrenCreated: 3}, first)

	second, err := seeder.seed(ctx, seeds)
	require.NoError(t, err)
	assert.Equal(t, &seedResult{TopExisting: 3}, second)

	out, err := seeder.list.Execute(ctx, category.ListCategoriesInput{TopOnly: true, IncludeChildren: true})
	require.NoError(t, err)
	require.Len(t, out.Categories, 3)

	children := map[string]int{}
	for _, c := range out.Categories {
		children[c.Name] = len(c.Children)
	}
	assert.Equal(t, map[string]int{"Travel": 2, "Office": 1, "Utilities": 0}, children)
}
