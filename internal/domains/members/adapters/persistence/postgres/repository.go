package postgres

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"

	"github.com/Apurer/go-gin-shop-api/internal/domains/members/domain"
	"github.com/Apurer/go-gin-shop-api/internal/domains/members/ports"
	platformpostgres "github.com/Apurer/go-gin-shop-api/internal/platform/postgres"
	"github.com/Apurer/go-gin-shop-api/internal/shared/address"
)

var _ ports.Repository = (*Repository)(nil)

// Repository persists members in PostgreSQL using GORM. Schema is owned by platform/migrations.
type Repository struct {
	db *gorm.DB
}

// NewRepository wires a PostgreSQL-backed repository. Caller manages DB lifecycle.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

type memberRecord struct {
	ID      int64           `gorm:"primaryKey;column:id"`
	Name    string          `gorm:"column:name"`
	Address address.Address `gorm:"embedded"`
}

func (memberRecord) TableName() string { return "members" }

// Save inserts a new member or updates the name and address of an existing one.
func (r *Repository) Save(ctx context.Context, member *domain.Member) (*domain.Member, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	if member == nil {
		return nil, errors.New("member is nil")
	}
	if err := member.Validate(); err != nil {
		return nil, err
	}
	record := toRecord(member)
	db := platformpostgres.Conn(ctx, r.db)
	if record.ID == 0 {
		if err := db.Create(&record).Error; err != nil {
			return nil, err
		}
		return record.toDomain(), nil
	}
	result := db.Model(&memberRecord{}).
		Where("id = ?", record.ID).
		Updates(map[string]any{
			"name":    record.Name,
			"city":    record.Address.City,
			"street":  record.Address.Street,
			"zipcode": record.Address.Zipcode,
		})
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, ports.ErrNotFound
	}
	return r.GetByID(ctx, record.ID)
}

// GetByID fetches a member by identifier.
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Member, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	var record memberRecord
	if err := platformpostgres.Conn(ctx, r.db).First(&record, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ports.ErrNotFound
		}
		return nil, err
	}
	return record.toDomain(), nil
}

// FindByName returns every member with exactly this name.
func (r *Repository) FindByName(ctx context.Context, name string) ([]*domain.Member, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	var records []memberRecord
	if err := platformpostgres.Conn(ctx, r.db).
		Where("name = ?", strings.TrimSpace(name)).
		Order("id").
		Find(&records).Error; err != nil {
		return nil, err
	}
	return toDomainList(records), nil
}

// List returns all members ordered by id.
func (r *Repository) List(ctx context.Context) ([]*domain.Member, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	var records []memberRecord
	if err := platformpostgres.Conn(ctx, r.db).Order("id").Find(&records).Error; err != nil {
		return nil, err
	}
	return toDomainList(records), nil
}

func (r *Repository) ensureDB() error {
	if r == nil || r.db == nil {
		return errors.New("postgres member repository not configured")
	}
	return nil
}

func toRecord(member *domain.Member) memberRecord {
	return memberRecord{
		ID:      member.ID,
		Name:    member.Name,
		Address: member.Address,
	}
}

func (r memberRecord) toDomain() *domain.Member {
	return &domain.Member{
		ID:      r.ID,
		Name:    r.Name,
		Address: r.Address,
	}
}

func toDomainList(records []memberRecord) []*domain.Member {
	members := make([]*domain.Member, 0, len(records))
	for i := range records {
		members = append(members, records[i].toDomain())
	}
	return members
}
