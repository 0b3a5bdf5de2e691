package services

import (
	"bytes"
	"context"
	"errors"
	"io"
	"strings"
	"sync"

	"github.com/google/uuid"

	"aipromptweb_backend/internal/models"
	"aipromptweb_backend/internal/repositories"
)

type fakeUserRepo struct {
	mu    sync.Mutex
	users map[string]*models.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[string]*models.User)}
}

func (r *fakeUserRepo) FindByID(id string) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if u, ok := r.users[id]; ok {
		copied := *u
		return &copied, nil
	}
	return nil, repositories.ErrUserNotFound
}

func (r *fakeUserRepo) FindByEmail(email string) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Email == email {
			copied := *u
			return &copied, nil
		}
	}
	return nil, repositories.ErrUserNotFound
}

func (r *fakeUserRepo) FindByExternalID(provider, externalID string) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.ExternalProvider == provider && u.ExternalID == externalID {
			copied := *u
			return &copied, nil
		}
	}
	return nil, repositories.ErrUserNotFound
}

func (r *fakeUserRepo) Create(user *models.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Email == user.Email {
			return repositories.ErrUserAlreadyExists
		}
	}
	if user.ID == "" {
		user.ID = uuid.NewString()
	}
	copied := *user
	r.users[user.ID] = &copied
	return nil
}

func (r *fakeUserRepo) Update(user *models.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.users[user.ID]; !ok {
		return repositories.ErrUserNotFound
	}
	copied := *user
	r.users[user.ID] = &copied
	return nil
}

func (r *fakeUserRepo) FindAll() ([]models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	all := make([]models.User, 0, len(r.users))
	for _, u := range r.users {
		all = append(all, *u)
	}
	return all, nil
}

type fakeDescriptionRepo struct {
	total        int64
	rows         []repositories.DescriptionImageRow
	lastLimit    int
	lastOffset   int
	created      []*models.Description
	imageURLs    []models.ImageURL
	knownIDs     map[string]bool
	deletedIDs   []string
	updateErr    error
	deleteCalled bool
}

func newFakeDescriptionRepo() *fakeDescriptionRepo {
	return &fakeDescriptionRepo{knownIDs: make(map[string]bool)}
}

func (r *fakeDescriptionRepo) Count() (int64, error) { return r.total, nil }

func (r *fakeDescriptionRepo) FindPage(limit, offset int) ([]repositories.DescriptionImageRow, error) {
	r.lastLimit = limit
	r.lastOffset = offset
	return r.rows, nil
}

func (r *fakeDescriptionRepo) Create(description *models.Description) error {
	if description.ID == "" {
		description.ID = uuid.NewString()
	}
	r.knownIDs[description.ID] = true
	r.created = append(r.created, description)
	return nil
}

func (r *fakeDescriptionRepo) UpdateDetails(id, details string) error {
	if r.updateErr != nil {
		return r.updateErr
	}
	if !r.knownIDs[id] {
		return repositories.ErrDescriptionNotFound
	}
	return nil
}

func (r *fakeDescriptionRepo) CreateImageURL(imageURL *models.ImageURL) error {
	if !r.knownIDs[imageURL.DescriptionID] {
		return repositories.ErrDescriptionNotFound
	}
	r.imageURLs = append(r.imageURLs, *imageURL)
	return nil
}

func (r *fakeDescriptionRepo) FindImageURLs(descriptionID string) ([]models.ImageURL, error) {
	var out []models.ImageURL
	for _, img := range r.imageURLs {
		if img.DescriptionID == descriptionID {
			out = append(out, img)
		}
	}
	return out, nil
}

func (r *fakeDescriptionRepo) DeleteWithImages(id string) error {
	r.deleteCalled = true
	if !r.knownIDs[id] {
		return repositories.ErrDescriptionNotFound
	}
	delete(r.knownIDs, id)
	r.deletedIDs = append(r.deletedIDs, id)
	return nil
}

type fakeStorage struct {
	baseURL   string
	objects   map[string][]byte
	deleted   []string
	failSave  bool
	failDel   map[string]bool
	savedType map[string]string
}

func newFakeStorage(baseURL string) *fakeStorage {
	return &fakeStorage{
		baseURL:   baseURL,
		objects:   make(map[string][]byte),
		failDel:   make(map[string]bool),
		savedType: make(map[string]string),
	}
}

func (s *fakeStorage) Save(_ context.Context, key string, reader io.Reader, contentType, _ string) error {
	if s.failSave {
		return errors.New("save failed")
	}
	data, err := io.ReadAll(reader)
	if err != nil {
		return err
	}
	s.objects[key] = data
	s.savedType[key] = contentType
	return nil
}

func (s *fakeStorage) Get(_ context.Context, key string) (io.ReadCloser, error) {
	data, ok := s.objects[key]
	if !ok {
		return nil, errors.New("object not found")
	}
	return io.NopCloser(bytes.NewReader(data)), nil
}

func (s *fakeStorage) Delete(_ context.Context, key string) error {
	if s.failDel[key] {
		return errors.New("delete failed")
	}
	delete(s.objects, key)
	s.deleted = append(s.deleted, key)
	return nil
}

func (s *fakeStorage) PublicURL(key string) string {
	return s.baseURL + "/" + strings.TrimPrefix(key, "/")
}
