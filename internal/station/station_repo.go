package station

import (
	"context"
	"database/sql"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

//go:generate mockgen -source=station_repo.go -destination=mock/station_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, st *Station) error
	FindAll(ctx context.Context, activeOnly bool) ([]Station, error)
	FindByID(ctx context.Context, id string) (*Station, error)
	Update(ctx context.Context, st *Station) error
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *sql.Tx) Repository {
	gdb, err := gorm.Open(postgres.New(postgres.Config{Conn: tx}), &gorm.Config{})
	if err != nil {
		return r
	}
	return &repository{db: gdb}
}

func (r *repository) Create(ctx context.Context, st *Station) error {
	return r.db.WithContext(ctx).Create(st).Error
}

func (r *repository) FindAll(ctx context.Context, activeOnly bool) ([]Station, error) {
	var rows []Station
	q := r.db.WithContext(ctx).Order("zone ASC, name ASC")
	if activeOnly {
		q = q.Where("active = ?", true)
	}
	err := q.Find(&rows).Error
	return rows, err
}

func (r *repository) FindByID(ctx context.Context, id string) (*Station, error) {
	var st Station
	err := r.db.WithContext(ctx).First(&st, "id = ?", id).Error
	return &st, err
}

func (r *repository) Update(ctx context.Context, st *Station) error {
	return r.db.WithContext(ctx).Save(st).Error
}
