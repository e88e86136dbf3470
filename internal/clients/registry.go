package clients

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go-desk/internal/models"

	"gorm.io/gorm"
)

var (
	ErrDuplicateConnectionID = errors.New("connection id already registered")
	ErrNotFound              = errors.New("client not found")
	ErrInvalidStatus         = errors.New("invalid client status")
)

// Input carries the editable fields of a client record.
type Input struct {
	Name         string
	Company      string
	TaxID        string
	ConnectionID string
	Password     string
	Notes        string
}

type Registry struct {
	db  *gorm.DB
	now func() time.Time
}

func NewRegistry(db *gorm.DB) *Registry {
	return &Registry{db: db, now: time.Now}
}

func nullable(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

// Create stores a new, disconnected client.
func (r *Registry) Create(ctx context.Context, in Input) (models.Client, error) {
	c := models.Client{
		Name:         in.Name,
		Company:      nullable(in.Company),
		TaxID:        in.TaxID,
		ConnectionID: in.ConnectionID,
		Password:     nullable(in.Password),
		Notes:        in.Notes,
		Status:       models.StatusDisconnected,
		CreatedAt:    r.now(),
	}
	if err := r.db.WithContext(ctx).Create(&c).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return models.Client{}, ErrDuplicateConnectionID
		}
		return models.Client{}, fmt.Errorf("failed to create client: %w", err)
	}
	return c, nil
}

// Search returns clients whose name, company or tax id contains query,
// or every client when query is blank. Results are ordered by name.
func (r *Registry) Search(ctx context.Context, query string) ([]models.Client, error) {
	tx := r.db.WithContext(ctx).Model(&models.Client{})

	if q := strings.TrimSpace(query); q != "" {
		like := "%" + q + "%"
		tx = tx.Where("nome LIKE ? OR empresa LIKE ? OR cnpj LIKE ?", like, like, like)
	}

	var list []models.Client
	if err := tx.Order("nome asc").Find(&list).Error; err != nil {
		return nil, fmt.Errorf("failed to search clients: %w", err)
	}
	return list, nil
}

func (r *Registry) Get(ctx context.Context, id uint) (models.Client, error) {
	var c models.Client
	err := r.db.WithContext(ctx).First(&c, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return models.Client{}, ErrNotFound
	}
	if err != nil {
		return models.Client{}, fmt.Errorf("failed to load client %d: %w", id, err)
	}
	return c, nil
}

// Update overwrites the editable fields of client id. An empty password
// keeps the stored one. An empty company is stored as NULL while the tax
// id is written as given.
func (r *Registry) Update(ctx context.Context, id uint, in Input) (models.Client, error) {
	if _, err := r.Get(ctx, id); err != nil {
		return models.Client{}, err
	}

	var taken int64
	if err := r.db.WithContext(ctx).Model(&models.Client{}).
		Where("rustdesk_id = ? AND id <> ?", in.ConnectionID, id).
		Count(&taken).Error; err != nil {
		return models.Client{}, fmt.Errorf("failed to check connection id: %w", err)
	}
	if taken > 0 {
		return models.Client{}, ErrDuplicateConnectionID
	}

	var company any
	if in.Company != "" {
		company = in.Company
	}
	fields := map[string]any{
		"nome":        in.Name,
		"empresa":     company,
		"cnpj":        in.TaxID,
		"rustdesk_id": in.ConnectionID,
		"observacoes": in.Notes,
	}
	if in.Password != "" {
		fields["senha"] = in.Password
	}

	err := r.db.WithContext(ctx).Model(&models.Client{}).
		Where("id = ?", id).
		Updates(fields).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return models.Client{}, ErrDuplicateConnectionID
	}
	if err != nil {
		return models.Client{}, fmt.Errorf("failed to update client %d: %w", id, err)
	}

	return r.Get(ctx, id)
}

// Delete removes client id. Unknown ids are a no-op.
func (r *Registry) Delete(ctx context.Context, id uint) error {
	if err := r.db.WithContext(ctx).Delete(&models.Client{}, id).Error; err != nil {
		return fmt.Errorf("failed to delete client %d: %w", id, err)
	}
	return nil
}

// SetStatus records the manual connection flag. It says nothing about
// whether a remote session is actually live.
func (r *Registry) SetStatus(ctx context.Context, id uint, status string) error {
	if status != models.StatusConnected && status != models.StatusDisconnected {
		return fmt.Errorf("%w: %q", ErrInvalidStatus, status)
	}

	err := r.db.WithContext(ctx).Model(&models.Client{}).
		Where("id = ?", id).
		Update("status", status).Error
	if err != nil {
		return fmt.Errorf("failed to set status of client %d: %w", id, err)
	}
	return nil
}
