package services

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/hashicorp/go-multierror"

	"bistro/apperrors"
	"bistro/authz"
	"bistro/listing"
	"bistro/models"
	"bistro/store"
)

type Menu struct {
	Store store.MenuStore
}

func NewMenu(menu store.MenuStore) *Menu {
	return &Menu{Store: menu}
}

var menuSortFields = map[string]func(a, b models.MenuItem) int{
	"title": func(a, b models.MenuItem) int { return strings.Compare(a.Title, b.Title) },
	"price": func(a, b models.MenuItem) int { return cmpFloat(a.Price, b.Price) },
	"featured": func(a, b models.MenuItem) int {
		return cmpBool(a.Featured, b.Featured)
	},
}

func (s *Menu) List(ctx context.Context, p listing.Params) ([]models.MenuItem, error) {
	items, err := s.Store.MenuItems(ctx)
	if err != nil {
		return nil, err
	}

	filtered := make([]models.MenuItem, 0, len(items))
	for _, item := range items {
		if p.Category != "" && !strings.EqualFold(item.Category.Title, p.Category) {
			continue
		}
		if p.ToPrice != nil && item.Price > *p.ToPrice {
			continue
		}
		if p.Search != "" && !strings.Contains(strings.ToLower(item.Title), strings.ToLower(p.Search)) {
			continue
		}
		filtered = append(filtered, item)
	}

	if err := listing.Sort(filtered, p.Ordering, menuSortFields); err != nil {
		return nil, err
	}
	return listing.Paginate(filtered, p.Page, p.PerPage), nil
}

func (s *Menu) Get(ctx context.Context, id uuid.UUID) (models.MenuItem, error) {
	return s.Store.MenuItemByID(ctx, id)
}

type MenuItemInput struct {
	Title      string    `json:"title"`
	Price      float64   `json:"price"`
	Featured   bool      `json:"featured"`
	CategoryID uuid.UUID `json:"category_id"`
}

func (in MenuItemInput) validate() error {
	var errs *multierror.Error
	if strings.TrimSpace(in.Title) == "" {
		errs = multierror.Append(errs, errors.New("title is required"))
	}
	if in.Price <= 0 {
		errs = multierror.Append(errs, errors.New("price must be greater than zero"))
	}
	if in.CategoryID == uuid.Nil {
		errs = multierror.Append(errs, errors.New("category_id is required"))
	}
	return apperrors.Validation(errs.ErrorOrNil())
}

func (s *Menu) Create(ctx context.Context, actor authz.Actor, in MenuItemInput) (models.MenuItem, error) {
	if !authz.Can(actor, authz.ManageMenu, uuid.Nil) {
		return models.MenuItem{}, apperrors.ErrForbidden
	}
	if err := in.validate(); err != nil {
		return models.MenuItem{}, err
	}
	if _, err := s.Store.CategoryByID(ctx, in.CategoryID); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return models.MenuItem{}, apperrors.Validationf("unknown category")
		}
		return models.MenuItem{}, err
	}
	return s.Store.CreateMenuItem(ctx, models.MenuItem{
		Title:      in.Title,
		Price:      in.Price,
		Featured:   in.Featured,
		CategoryID: in.CategoryID,
	})
}

// Replace fully overwrites a menu item with the given input.
func (s *Menu) Replace(ctx context.Context, actor authz.Actor, id uuid.UUID, in MenuItemInput) (models.MenuItem, error) {
	if !authz.Can(actor, authz.ManageMenu, uuid.Nil) {
		return models.MenuItem{}, apperrors.ErrForbidden
	}
	if err := in.validate(); err != nil {
		return models.MenuItem{}, err
	}
	if _, err := s.Store.CategoryByID(ctx, in.CategoryID); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return models.MenuItem{}, apperrors.Validationf("unknown category")
		}
		return models.MenuItem{}, err
	}
	return s.Store.UpdateMenuItem(ctx, models.MenuItem{
		ID:         id,
		Title:      in.Title,
		Price:      in.Price,
		Featured:   in.Featured,
		CategoryID: in.CategoryID,
	})
}

type MenuItemPatch struct {
	Title      *string    `json:"title"`
	Price      *float64   `json:"price"`
	Featured   *bool      `json:"featured"`
	CategoryID *uuid.UUID `json:"category_id"`
}

func (s *Menu) Patch(ctx context.Context, actor authz.Actor, id uuid.UUID, patch MenuItemPatch) (models.MenuItem, error) {
	if !authz.Can(actor, authz.ManageMenu, uuid.Nil) {
		return models.MenuItem{}, apperrors.ErrForbidden
	}

	item, err := s.Store.MenuItemByID(ctx, id)
	if err != nil {
		return models.MenuItem{}, err
	}
	if patch.Title != nil {
		if strings.TrimSpace(*patch.Title) == "" {
			return models.MenuItem{}, apperrors.Validationf("title is required")
		}
		item.Title = *patch.Title
	}
	if patch.Price != nil {
		if *patch.Price <= 0 {
			return models.MenuItem{}, apperrors.Validationf("price must be greater than zero")
		}
		item.Price = *patch.Price
	}
	if patch.Featured != nil {
		item.Featured = *patch.Featured
	}
	if patch.CategoryID != nil {
		if _, err := s.Store.CategoryByID(ctx, *patch.CategoryID); err != nil {
			if errors.Is(err, apperrors.ErrNotFound) {
				return models.MenuItem{}, apperrors.Validationf("unknown category")
			}
			return models.MenuItem{}, err
		}
		item.CategoryID = *patch.CategoryID
	}
	return s.Store.UpdateMenuItem(ctx, item)
}

func (s *Menu) Delete(ctx context.Context, actor authz.Actor, id uuid.UUID) error {
	if !authz.Can(actor, authz.ManageMenu, uuid.Nil) {
		return apperrors.ErrForbidden
	}
	return s.Store.DeleteMenuItem(ctx, id)
}

func (s *Menu) Categories(ctx context.Context) ([]models.Category, error) {
	categories, err := s.Store.Categories(ctx)
	if err != nil {
		return nil, err
	}
	if categories == nil {
		categories = []models.Category{}
	}
	return categories, nil
}

type CategoryInput struct {
	Slug  string `json:"slug"`
	Title string `json:"title"`
}

func (s *Menu) CreateCategory(ctx context.Context, actor authz.Actor, in CategoryInput) (models.Category, error) {
	if !authz.Can(actor, authz.ManageMenu, uuid.Nil) {
		return models.Category{}, apperrors.ErrForbidden
	}
	var errs *multierror.Error
	if strings.TrimSpace(in.Slug) == "" {
		errs = multierror.Append(errs, errors.New("slug is required"))
	}
	if strings.TrimSpace(in.Title) == "" {
		errs = multierror.Append(errs, errors.New("title is required"))
	}
	if err := apperrors.Validation(errs.ErrorOrNil()); err != nil {
		return models.Category{}, err
	}
	return s.Store.CreateCategory(ctx, models.Category{Slug: in.Slug, Title: in.Title})
}

func cmpFloat(a, b float64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

func cmpBool(a, b bool) int {
	switch {
	case a == b:
		return 0
	case a:
		return 1
	default:
		return -1
	}
}
