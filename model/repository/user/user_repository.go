package user

import (
	"gorm.io/gorm"

	entity "starter.GO/model/entity"
)

type UserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

// FindByID returns a user by primary key.
func (r *UserRepository) FindByID(id uint) (*entity.User, error) {
	var u entity.User
	err := r.db.First(&u, "user_id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &u, nil
}

// FindByEmail returns a user by unique email.
func (r *UserRepository) FindByEmail(email string) (*entity.User, error) {
	var u entity.User
	err := r.db.First(&u, "email = ?", email).Error
	if err != nil {
		return nil, err
	}
	return &u, nil
}

// List returns a page of users ordered by user_id plus the total count.
func (r *UserRepository) List(limit, offset int) ([]entity.User, int64, error) {
	var users []entity.User
	var total int64
	if err := r.db.Model(&entity.User{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}
	err := r.db.Order("user_id").Limit(limit).Offset(offset).Find(&users).Error
	if err != nil {
		return nil, 0, err
	}
	return users, total, nil
}

func (r *UserRepository) Create(u *entity.User) error {
	return r.db.Create(u).Error
}

func (r *UserRepository) Update(u *entity.User) error {
	return r.db.Save(u).Error
}

func (r *UserRepository) Delete(id uint) error {
	res := r.db.Delete(&entity.User{}, "user_id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
