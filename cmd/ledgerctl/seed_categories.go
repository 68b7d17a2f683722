package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/slogsolutions/Audit-Management-Platform/internal/application/usecase/category"
	"github.com/slogsolutions/Audit-Management-Platform/internal/domain/entity"
	domainerror "github.com/slogsolutions/Audit-Management-Platform/internal/domain/error"
)

// categorySeed is one top-level category and the names of its children.
type categorySeed struct {
	Name     string         `yaml:"name"`
	Meta     map[string]any `yaml:"meta"`
	Children []string       `yaml:"children"`
}

type seedFile struct {
	Categories []categorySeed `yaml:"categories"`
}

// seedResult summarizes a seeding run.
type seedResult struct {
	TopCreated      int
	TopExisting     int
	ChildrenCreated int
}

func seedCategoriesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "seed-categories",
		Short: "Create top-level categories and their children from a YAML file",
		Long: `Seed categories from a YAML file of the form:

  categories:
    - name: Travel
      meta: {color: "#3366ff"}
      children: [Flights, Hotels]

Existing categories are reused and existing children are skipped, so the
command can be re-run safely.`,
		RunE: runSeedCategories,
	}
	cmd.Flags().StringP("file", "f", "", "path to the YAML seed file")
	_ = cmd.MarkFlagRequired("file")
	return cmd
}

func runSeedCategories(cmd *cobra.Command, _ []string) error {
	path, _ := cmd.Flags().GetString("file")

	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("failed to open seed file: %w", err)
	}
	defer f.Close()

	seeds, err := parseSeedFile(f)
	if err != nil {
		return err
	}

	injector, closeApp, err := openApp()
	if err != nil {
		return err
	}
	defer closeApp()

	seeder := &categorySeeder{
		list:       injector.ListCategories,
		create:     injector.CreateCategory,
		bulkCreate: injector.BulkCreate,
	}
	result, err := seeder.seed(cmd.Context(), seeds)
	if err != nil {
		return err
	}

	slog.Info("Categories seeded",
		"top_created", result.TopCreated,
		"top_existing", result.TopExisting,
		"children_created", result.ChildrenCreated,
	)
	fmt.Fprintf(cmd.OutOrStdout(), "created %d top-level categories (%d already present) and %d subcategories\n",
		result.TopCreated, result.TopExisting, result.ChildrenCreated)
	return nil
}

// parseSeedFile decodes and checks a seed document.
func parseSeedFile(r io.Reader) ([]categorySeed, error) {
	var doc seedFile
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&doc); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if len(doc.Categories) == 0 {
		return nil, errors.New("seed file lists no categories")
	}
	for i, s := range doc.Categories {
		if strings.TrimSpace(s.Name) == "" {
			return nil, fmt.Errorf("category #%d has no name", i+1)
		}
	}
	return doc.Categories, nil
}

type categorySeeder struct {
	list       *category.ListCategoriesUseCase
	create     *category.CreateCategoryUseCase
	bulkCreate *category.BulkCreateSubcategoriesUseCase
}

func (s *categorySeeder) seed(ctx context.Context, seeds []categorySeed) (*seedResult, error) {
	existing, err := s.list.Execute(ctx, category.ListCategoriesInput{TopOnly: true})
	if err != nil {
		return nil, err
	}
	byName := make(map[string]*entity.Category, len(existing.Categories))
	for _, c := range existing.Categories {
		byName[strings.ToLower(c.Name)] = c
	}

	result := &seedResult{}
	for _, seed := range seeds {
		name := strings.TrimSpace(seed.Name)
		top, ok := byName[strings.ToLower(name)]
		if ok {
			result.TopExisting++
		} else {
			out, err := s.create.Execute(ctx, category.CreateCategoryInput{Name: name, Meta: seed.Meta})
			if err != nil {
				return nil, fmt.Errorf("failed to create %q: %w", name, err)
			}
			top = out.Category
			byName[strings.ToLower(name)] = top
			result.TopCreated++
		}

		if len(seed.Children) == 0 {
			continue
		}
		out, err := s.bulkCreate.Execute(ctx, category.BulkCreateSubcategoriesInput{
			ParentID: top.ID,
			Names:    seed.Children,
		})
		if err != nil {
			var catErr *domainerror.CategoryError
			if errors.As(err, &catErr) && catErr.Code == domainerror.ErrCodeEmptySubcategoryNames {
				continue
			}
			return nil, fmt.Errorf("failed to create children of %q: %w", name, err)
		}
		result.ChildrenCreated += out.Created
	}
	return result, nil
}
