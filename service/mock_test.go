package service

import (
	"io"
	"sync"

	"github.com/avelichko/kritika/config"
	"github.com/avelichko/kritika/data"
	"github.com/avelichko/kritika/internal/jsonlog"
	"github.com/avelichko/kritika/repository"
)

// mockRepository implements repository.Repository through optional function
// fields. Unset lookups report a missing record, unset writes succeed, so a
// test only wires the calls it cares about.
type mockRepository struct {
	createUser        func(user *data.User) error
	getUserByID       func(userID int64) (*data.User, error)
	getUserByUsername func(username string) (*data.User, error)
	getUserByEmail    func(email string) (*data.User, error)
	updateUser        func(user *data.User) error
	deleteUser        func(username string) error
	getAllUsers       func(search string, filters data.Filters) ([]*data.User, data.Metadata, error)

	createCategory    func(category *data.Category) error
	getCategoryBySlug func(slug string) (*data.Category, error)
	deleteCategory    func(slug string) error
	getAllCategories  func(search string, filters data.Filters) ([]*data.Category, data.Metadata, error)

	createGenre      func(genre *data.Genre) error
	getGenreBySlug   func(slug string) (*data.Genre, error)
	getGenresBySlugs func(slugs []string) ([]data.Genre, error)
	deleteGenre      func(slug string) error
	getAllGenres     func(search string, filters data.Filters) ([]*data.Genre, data.Metadata, error)

	createTitle  func(title *data.Title) error
	getTitle     func(titleID int64) (*data.Title, error)
	updateTitle  func(title *data.Title) error
	deleteTitle  func(titleID int64) error
	getAllTitles func(name string, year int32, genreSlug, categorySlug string, filters data.Filters) ([]*data.Title, data.Metadata, error)

	createReview          func(review *data.Review) error
	getReview             func(titleID, reviewID int64) (*data.Review, error)
	updateReview          func(review *data.Review) error
	deleteReview          func(titleID, reviewID int64) error
	reviewExistsForUser   func(titleID, userID int64) bool
	getAllReviewsForTitle func(titleID int64, filters data.Filters) ([]*data.Review, data.Metadata, error)

	createComment           func(comment *data.Comment) error
	getComment              func(reviewID, commentID int64) (*data.Comment, error)
	updateComment           func(comment *data.Comment) error
	deleteComment           func(reviewID, commentID int64) error
	getAllCommentsForReview func(reviewID int64, filters data.Filters) ([]*data.Comment, data.Metadata, error)
}

func (m *mockRepository) CreateUser(user *data.User) error {
	if m.createUser != nil {
		return m.createUser(user)
	}
	return nil
}

func (m *mockRepository) GetUserByID(userID int64) (*data.User, error) {
	if m.getUserByID != nil {
		return m.getUserByID(userID)
	}
	return nil, repository.ErrRecordNotFound
}

func (m *mockRepository) GetUserByUsername(username string) (*data.User, error) {
	if m.getUserByUsername != nil {
		return m.getUserByUsername(username)
	}
	return nil, repository.ErrRecordNotFound
}

func (m *mockRepository) GetUserByEmail(email string) (*data.User, error) {
	if m.getUserByEmail != nil {
		return m.getUserByEmail(email)
	}
	return nil, repository.ErrRecordNotFound
}

func (m *mockRepository) UpdateUser(user *data.User) error {
	if m.updateUser != nil {
		return m.updateUser(user)
	}
	return nil
}

func (m *mockRepository) DeleteUser(username string) error {
	if m.deleteUser != nil {
		return m.deleteUser(username)
	}
	return nil
}

func (m *mockRepository) GetAllUsers(search string, filters data.Filters) ([]*data.User, data.Metadata, error) {
	if m.getAllUsers != nil {
		return m.getAllUsers(search, filters)
	}
	return []*data.User{}, data.Metadata{}, nil
}

func (m *mockRepository) CreateCategory(category *data.Category) error {
	if m.createCategory != nil {
		return m.createCategory(category)
	}
	return nil
}

func (m *mockRepository) GetCategoryBySlug(slug string) (*data.Category, error) {
	if m.getCategoryBySlug != nil {
		return m.getCategoryBySlug(slug)
	}
	return nil, repository.ErrRecordNotFound
}

func (m *mockRepository) DeleteCategory(slug string) error {
	if m.deleteCategory != nil {
		return m.deleteCategory(slug)
	}
	return nil
}

func (m *mockRepository) GetAllCategories(search string, filters data.Filters) ([]*data.Category, data.Metadata, error) {
	if m.getAllCategories != nil {
		return m.getAllCategories(search, filters)
	}
	return []*data.Category{}, data.Metadata{}, nil
}

func (m *mockRepository) CreateGenre(genre *data.Genre) error {
	if m.createGenre != nil {
		return m.createGenre(genre)
	}
	return nil
}

func (m *mockRepository) GetGenreBySlug(slug string) (*data.Genre, error) {
	if m.getGenreBySlug != nil {
		return m.getGenreBySlug(slug)
	}
	return nil, repository.ErrRecordNotFound
}

func (m *mockRepository) GetGenresBySlugs(slugs []string) ([]data.Genre, error) {
	if m.getGenresBySlugs != nil {
		return m.getGenresBySlugs(slugs)
	}
	if len(slugs) > 0 {
		return nil, repository.ErrRecordNotFound
	}
	return []data.Genre{}, nil
}

func (m *mockRepository) DeleteGenre(slug string) error {
	if m.deleteGenre != nil {
		return m.deleteGenre(slug)
	}
	return nil
}

func (m *mockRepository) GetAllGenres(search string, filters data.Filters) ([]*data.Genre, data.Metadata, error) {
	if m.getAllGenres != nil {
		return m.getAllGenres(search, filters)
	}
	return []*data.Genre{}, data.Metadata{}, nil
}

func (m *mockRepository) CreateTitle(title *data.Title) error {
	if m.createTitle != nil {
		return m.createTitle(title)
	}
	return nil
}

func (m *mockRepository) GetTitle(titleID int64) (*data.Title, error) {
	if m.getTitle != nil {
		return m.getTitle(titleID)
	}
	return nil, repository.ErrRecordNotFound
}

func (m *mockRepository) UpdateTitle(title *data.Title) error {
	if m.updateTitle != nil {
		return m.updateTitle(title)
	}
	return nil
}

func (m *mockRepository) DeleteTitle(titleID int64) error {
	if m.deleteTitle != nil {
		return m.deleteTitle(titleID)
	}
	return nil
}

func (m *mockRepository) GetAllTitles(name string, year int32, genreSlug, categorySlug string, filters data.Filters) ([]*data.Title, data.Metadata, error) {
	if m.getAllTitles != nil {
		return m.getAllTitles(name, year, genreSlug, categorySlug, filters)
	}
	return []*data.Title{}, data.Metadata{}, nil
}

func (m *mockRepository) CreateReview(review *data.Review) error {
	if m.createReview != nil {
		return m.createReview(review)
	}
	return nil
}

func (m *mockRepository) GetReview(titleID, reviewID int64) (*data.Review, error) {
	if m.getReview != nil {
		return m.getReview(titleID, reviewID)
	}
	return nil, repository.ErrRecordNotFound
}

func (m *mockRepository) UpdateReview(review *data.Review) error {
	if m.updateReview != nil {
		return m.updateReview(review)
	}
	return nil
}

func (m *mockRepository) DeleteReview(titleID, reviewID int64) error {
	if m.deleteReview != nil {
		return m.deleteReview(titleID, reviewID)
	}
	return nil
}

func (m *mockRepository) ReviewExistsForUser(titleID, userID int64) bool {
	if m.reviewExistsForUser != nil {
		return m.reviewExistsForUser(titleID, userID)
	}
	return false
}

func (m *mockRepository) GetAllReviewsForTitle(titleID int64, filters data.Filters) ([]*data.Review, data.Metadata, error) {
	if m.getAllReviewsForTitle != nil {
		return m.getAllReviewsForTitle(titleID, filters)
	}
	return []*data.Review{}, data.Metadata{}, nil
}

func (m *mockRepository) CreateComment(comment *data.Comment) error {
	if m.createComment != nil {
		return m.createComment(comment)
	}
	return nil
}

func (m *mockRepository) GetComment(reviewID, commentID int64) (*data.Comment, error) {
	if m.getComment != nil {
		return m.getComment(reviewID, commentID)
	}
	return nil, repository.ErrRecordNotFound
}

func (m *mockRepository) UpdateComment(comment *data.Comment) error {
	if m.updateComment != nil {
		return m.updateComment(comment)
	}
	return nil
}

func (m *mockRepository) DeleteComment(reviewID, commentID int64) error {
	if m.deleteComment != nil {
		return m.deleteComment(reviewID, commentID)
	}
	return nil
}

func (m *mockRepository) GetAllCommentsForReview(reviewID int64, filters data.Filters) ([]*data.Comment, data.Metadata, error) {
	if m.getAllCommentsForReview != nil {
		return m.getAllCommentsForReview(reviewID, filters)
	}
	return []*data.Comment{}, data.Metadata{}, nil
}

// newTestService wires a service instance around a mock repository with a
// throwaway logger and a test signing key.
func newTestService(repo repository.Repository) *service {
	var cfg config.Config
	cfg.Jwt.Secret = "test-signing-key"
	cfg.Jwt.Issuer = "kritika"
	var wg sync.WaitGroup
	logger := jsonlog.New(io.Discard, jsonlog.LevelOff)
	return New(cfg, &wg, logger, repo)
}
