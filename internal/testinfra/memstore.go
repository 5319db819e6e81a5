// Package testinfra provides in-memory stand-ins for the database-backed
// stores, for tests that exercise services and HTTP routes without Postgres.
//
// The stores mimic the repositories' error contract: missing rows wrap
// pgx.ErrNoRows tagged with their table, and constraint violations are
// *pgconn.PgError values carrying the codes and names Postgres would use.
package testinfra

import (
	"context"
	"fmt"
	"slices"
	"sort"
	"sync"
	"time"

	"github.com/deppfellow/recipebook/internal/model"
	"github.com/deppfellow/recipebook/internal/sqlerr"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// MemDB is the shared state behind the in-memory stores.
type MemDB struct {
	mu sync.Mutex

	nextID     int64
	users      map[int64]model.User
	categories map[int64]model.Category
	recipes    map[int64]model.Recipe
	followers  map[int64]map[int64]bool // recipe id -> user ids
	comments   map[int64]model.Comment
}

func NewMemDB() *MemDB {
	return &MemDB{
		users:      map[int64]model.User{},
		categories: map[int64]model.Category{},
		recipes:    map[int64]model.Recipe{},
		followers:  map[int64]map[int64]bool{},
		comments:   map[int64]model.Comment{},
	}
}

func (db *MemDB) id() int64 {
	db.nextID++
	return db.nextID
}

func notFound(table string, id any) error {
	return sqlerr.WithTable(table, fmt.Errorf("%s id=%v: %w", table, id, pgx.ErrNoRows))
}

func foreignKey(table, column string) error {
	return &pgconn.PgError{
		Severity:       "ERROR",
		Code:           "23503",
		Message:        fmt.Sprintf("insert or update on table %q violates foreign key constraint", table),
		TableName:      table,
		ConstraintName: fmt.Sprintf("%s_%s_fkey", table, column),
	}
}

func sortedByID[T any](m map[int64]T) []T {
	ids := make([]int64, 0, len(m))
	for id := range m {
		ids = append(ids, id)
	}
	slices.Sort(ids)

	out := make([]T, 0, len(ids))
	for _, id := range ids {
		out = append(out, m[id])
	}
	return out
}

// Users implements the user store.
type Users struct{ db *MemDB }

func (db *MemDB) Users() *Users { return &Users{db: db} }

func (s *Users) Create(_ context.Context, user *model.User) (*model.User, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()

	for _, u := range s.db.users {
		if u.Username == user.Username {
			return nil, &pgconn.PgError{
				Severity:       "ERROR",
				Code:           "23505",
				Message:        "duplicate key value violates unique constraint",
				TableName:      "users",
				ConstraintName: "users_username_key",
			}
		}
	}

	created := *user
	created.ID = s.db.id()
	created.DateJoined = time.Now().UTC()
	s.db.users[created.ID] = created
	return &created, nil
}

func (s *Users) GetByID(_ context.Context, id int64) (*model.User, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()

	u, ok := s.db.users[id]
	if !ok {
		return nil, notFound("users", id)
	}
	return &u, nil
}

func (s *Users) GetByUsername(_ context.Context, username string) (*model.User, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()

	for _, u := range s.db.users {
		if u.Username == username {
			return &u, nil
		}
	}
	return nil, notFound("users", username)
}

// Categories implements the category store.
type Categories struct{ db *MemDB }

func (db *MemDB) Categories() *Categories { return &Categories{db: db} }

func (s *Categories) List(context.Context) ([]model.Category, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	return sortedByID(s.db.categories), nil
}

func (s *Categories) Create(_ context.Context, name string) (*model.Category, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()

	c := model.Category{ID: s.db.id(), Name: name}
	s.db.categories[c.ID] = c
	return &c, nil
}

func (s *Categories) GetByID(_ context.Context, id int64) (*model.Category, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()

	c, ok := s.db.categories[id]
	if !ok {
		return nil, notFound("categories", id)
	}
	return &c, nil
}

func (s *Categories) Update(_ context.Context, id int64, name *string) (*model.Category, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()

	c, ok := s.db.categories[id]
	if !ok {
		return nil, notFound("categories", id)
	}
	if name != nil {
		c.Name = *name
		s.db.categories[id] = c
	}
	return &c, nil
}

func (s *Categories) Delete(_ context.Context, id int64) error {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()

	if _, ok := s.db.categories[id]; !ok {
		return notFound("categories", id)
	}
	delete(s.db.categories, id)
	for rid, r := range s.db.recipes {
		if r.CategoryID == id {
			s.db.deleteRecipe(rid)
		}
	}
	return nil
}

// Recipes implements the recipe store.
type Recipes struct{ db *MemDB }

func (db *MemDB) Recipes() *Recipes { return &Recipes{db: db} }

// withFollowers must be called with the lock held.
func (db *MemDB) withFollowers(r model.Recipe) model.Recipe {
	r.Followers = []model.User{}
	ids := make([]int64, 0, len(db.followers[r.ID]))
	for uid := range db.followers[r.ID] {
		ids = append(ids, uid)
	}
	slices.Sort(ids)
	for _, uid := range ids {
		r.Followers = append(r.Followers, db.users[uid])
	}
	return r
}

func (db *MemDB) filterRecipes(keep func(model.Recipe) bool) []model.Recipe {
	out := []model.Recipe{}
	for _, r := range sortedByID(db.recipes) {
		if keep(r) {
			out = append(out, db.withFollowers(r))
		}
	}
	return out
}

// deleteRecipe must be called with the lock held.
func (db *MemDB) deleteRecipe(id int64) {
	delete(db.recipes, id)
	delete(db.followers, id)
	for cid, c := range db.comments {
		if c.RecipeID == id {
			delete(db.comments, cid)
		}
	}
}

func (s *Recipes) List(context.Context) ([]model.Recipe, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	return s.db.filterRecipes(func(model.Recipe) bool { return true }), nil
}

func (s *Recipes) ListByCategory(_ context.Context, categoryID int64) ([]model.Recipe, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	return s.db.filterRecipes(func(r model.Recipe) bool { return r.CategoryID == categoryID }), nil
}

func (s *Recipes) ListTopLiked(_ context.Context, limit int) ([]model.Recipe, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()

	all := s.db.filterRecipes(func(model.Recipe) bool { return true })
	sort.SliceStable(all, func(i, j int) bool { return all[i].Likes > all[j].Likes })
	if len(all) > limit {
		all = all[:limit]
	}
	return all, nil
}

func (s *Recipes) ListFollowedBy(_ context.Context, userID int64) ([]model.Recipe, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	return s.db.filterRecipes(func(r model.Recipe) bool { return s.db.followers[r.ID][userID] }), nil
}

func (s *Recipes) GetByID(_ context.Context, id int64) (*model.Recipe, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()

	r, ok := s.db.recipes[id]
	if !ok {
		return nil, notFound("recipes", id)
	}
	r = s.db.withFollowers(r)
	return &r, nil
}

// checkRecipeRefs must be called with the lock held.
func (db *MemDB) checkRecipeRefs(in model.RecipeInput) error {
	if _, ok := db.categories[in.CategoryID]; !ok {
		return foreignKey("recipes", "category_id")
	}
	if _, ok := db.users[in.AuthorID]; !ok {
		return foreignKey("recipes", "author_id")
	}
	return nil
}

func recipeFromInput(id, likes int64, in model.RecipeInput) model.Recipe {
	return model.Recipe{
		ID:          id,
		Title:       in.Title,
		Description: in.Description,
		Ingredients: in.Ingredients,
		Steps:       in.Steps,
		Likes:       likes,
		FrontImage:  in.FrontImage,
		FirstImage:  in.FirstImage,
		SecondImage: in.SecondImage,
		ThirdImage:  in.ThirdImage,
		CategoryID:  in.CategoryID,
		AuthorID:    in.AuthorID,
	}
}

func (s *Recipes) Create(_ context.Context, in model.RecipeInput, likes int64) (*model.Recipe, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()

	if err := s.db.checkRecipeRefs(in); err != nil {
		return nil, err
	}
	r := recipeFromInput(s.db.id(), likes, in)
	s.db.recipes[r.ID] = r
	r = s.db.withFollowers(r)
	return &r, nil
}

func (s *Recipes) Update(_ context.Context, id int64, in model.RecipeInput) (*model.Recipe, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()

	current, ok := s.db.recipes[id]
	if !ok {
		return nil, notFound("recipes", id)
	}
	if err := s.db.checkRecipeRefs(in); err != nil {
		return nil, err
	}
	r := recipeFromInput(id, current.Likes, in)
	s.db.recipes[id] = r
	r = s.db.withFollowers(r)
	return &r, nil
}

func (s *Recipes) Delete(_ context.Context, id int64) error {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()

	if _, ok := s.db.recipes[id]; !ok {
		return notFound("recipes", id)
	}
	s.db.deleteRecipe(id)
	return nil
}

func (s *Recipes) IncrementLikes(_ context.Context, id int64) (int64, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()

	r, ok := s.db.recipes[id]
	if !ok {
		return 0, notFound("recipes", id)
	}
	r.Likes++
	s.db.recipes[id] = r
	return r.Likes, nil
}

func (s *Recipes) ToggleFollower(_ context.Context, recipeID, userID int64) (bool, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()

	if _, ok := s.db.recipes[recipeID]; !ok {
		return false, notFound("recipes", recipeID)
	}
	if _, ok := s.db.users[userID]; !ok {
		return false, foreignKey("recipe_followers", "user_id")
	}

	set := s.db.followers[recipeID]
	if set == nil {
		set = map[int64]bool{}
		s.db.followers[recipeID] = set
	}
	if set[userID] {
		delete(set, userID)
		return false, nil
	}
	set[userID] = true
	return true, nil
}

// Comments implements the comment store.
type Comments struct{ db *MemDB }

func (db *MemDB) Comments() *Comments { return &Comments{db: db} }

func (s *Comments) ListByRecipe(_ context.Context, recipeID int64) ([]model.Comment, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()

	out := []model.Comment{}
	for _, c := range sortedByID(s.db.comments) {
		if c.RecipeID == recipeID {
			out = append(out, c)
		}
	}
	return out, nil
}

func (s *Comments) Create(_ context.Context, c model.Comment) (*model.Comment, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()

	if _, ok := s.db.recipes[c.RecipeID]; !ok {
		return nil, foreignKey("comments", "recipe_id")
	}
	if _, ok := s.db.users[c.AuthorID]; !ok {
		return nil, foreignKey("comments", "author_id")
	}
	c.ID = s.db.id()
	s.db.comments[c.ID] = c
	return &c, nil
}

// lookupComment must be called with the lock held.
func (db *MemDB) lookupComment(recipeID, commentID int64) (model.Comment, error) {
	c, ok := db.comments[commentID]
	if !ok || c.RecipeID != recipeID {
		return model.Comment{}, notFound("comments", commentID)
	}
	return c, nil
}

func (s *Comments) GetByID(_ context.Context, recipeID, commentID int64) (*model.Comment, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()

	c, err := s.db.lookupComment(recipeID, commentID)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (s *Comments) Update(_ context.Context, recipeID, commentID int64, title, text *string) (*model.Comment, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()

	c, err := s.db.lookupComment(recipeID, commentID)
	if err != nil {
		return nil, err
	}
	if title != nil {
		c.Title = *title
	}
	if text != nil {
		c.Text = *text
	}
	s.db.comments[commentID] = c
	return &c, nil
}

func (s *Comments) Delete(_ context.Context, recipeID, commentID int64) error {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()

	if _, err := s.db.lookupComment(recipeID, commentID); err != nil {
		return err
	}
	delete(s.db.comments, commentID)
	return nil
}
