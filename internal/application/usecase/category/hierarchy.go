// Package category contains category-related use cases.
package category

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/slogsolutions/Audit-Management-Platform/internal/application/adapter"
	domainerror "github.com/slogsolutions/Audit-Management-Platform/internal/domain/error"
)

const (
	// MaxCategoryNameLength is the maximum allowed length for category names.
	MaxCategoryNameLength = 100

	// maxCategoryDepth bounds every walk over the tree.
	maxCategoryDepth = 1024
)

// normalizeName trims the name and validates it.
func normalizeName(name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", domainerror.NewCategoryError(
			domainerror.ErrCodeMissingCategoryFields,
			"name is required",
			domainerror.ErrCategoryNameRequired,
		)
	}
	if utf8.RuneCountInString(name) > MaxCategoryNameLength {
		return "", domainerror.NewCategoryError(
			domainerror.ErrCodeCategoryNameTooLong,
			fmt.Sprintf("category name must not exceed %d characters", MaxCategoryNameLength),
			domainerror.ErrCategoryNameTooLong,
		)
	}
	return name, nil
}

// categoryNotFound wraps a lookup failure of the category being operated on.
func categoryNotFound(err error) error {
	if errors.Is(err, domainerror.ErrCategoryNotFound) {
		return domainerror.NewCategoryError(
			domainerror.ErrCodeCategoryNotFound,
			"category not found",
			domainerror.ErrCategoryNotFound,
		)
	}
	return fmt.Errorf("failed to find category: %w", err)
}

// ensureUniqueName fails when a sibling under parentID already uses name.
func ensureUniqueName(
	ctx context.Context,
	repo adapter.CategoryRepository,
	name string,
	parentID *uuid.UUID,
	excludeID *uuid.UUID,
) error {
	exists, err := repo.ExistsByNameAndParent(ctx, name, parentID, excludeID)
	if err != nil {
		return fmt.Errorf("failed to check category name existence: %w", err)
	}
	if exists {
		return domainerror.NewCategoryError(
			domainerror.ErrCodeCategoryNameExists,
			fmt.Sprintf("a category named %q already exists here", name),
			domainerror.ErrCategoryNameExists,
		)
	}
	return nil
}

// isDescendant reports whether candidateParentID lies in the subtree rooted at
// categoryID, which would make the candidate an invalid new parent. It walks
// upward from the candidate following parent references until a root is reached
// or categoryID is found. A chain longer than maxCategoryDepth is treated as a cycle.
func isDescendant(ctx context.Context, repo adapter.CategoryRepository, categoryID, candidateParentID uuid.UUID) (bool, error) {
	current := &candidateParentID
	for hops := 0; current != nil; hops++ {
		if *current == categoryID {
			return true, nil
		}
		if hops >= maxCategoryDepth {
			return true, nil
		}

		parentID, err := repo.FindParentID(ctx, *current)
		if err != nil {
			return false, err
		}
		current = parentID
	}
	return false, nil
}

// collectDescendants returns every node below rootID, level by level, and the
// number of direct children.
func collectDescendants(ctx context.Context, repo adapter.CategoryRepository, rootID uuid.UUID) ([]uuid.UUID, int, error) {
	var (
		descendants []uuid.UUID
		direct      int
	)
	seen := map[uuid.UUID]struct{}{rootID: {}}
	frontier := []uuid.UUID{rootID}

	for depth := 0; len(frontier) > 0 && depth < maxCategoryDepth; depth++ {
		childIDs, err := repo.FindChildIDs(ctx, frontier)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to load subcategories: %w", err)
		}
		if depth == 0 {
			direct = len(childIDs)
		}

		next := make([]uuid.UUID, 0, len(childIDs))
		for _, id := range childIDs {
			if _, ok := seen[id]; ok {
				continue
			}
			seen[id] = struct{}{}
			next = append(next, id)
		}
		descendants = append(descendants, next...)
		frontier = next
	}

	return descendants, direct, nil
}
