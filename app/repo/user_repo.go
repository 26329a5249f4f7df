package repo

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/hari-dev-003/Achieve/app/model"
)

type UserRepository interface {
	Create(user *model.User) error
	FindByEmail(email string) (*model.User, error)
	FindByID(id uuid.UUID) (*model.User, error)
	UpdateProfile(id uuid.UUID, req model.UpdateProfileRequest) (*model.User, error)
	MergeSkills(id uuid.UUID, skills []string) error
	ListStudentsByClass(class model.ClassKey) ([]model.User, error)
	SetRefreshToken(id uuid.UUID, token string) error
}

type UserRepo struct {
	DB *gorm.DB
}

func NewUserRepo(db *gorm.DB) *UserRepo {
	return &UserRepo{DB: db}
}

func (r *UserRepo) Create(user *model.User) error {
	return r.DB.Create(user).Error
}

func (r *UserRepo) FindByEmail(email string) (*model.User, error) {
	var user model.User
	err := r.DB.Where("email = ?", email).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, model.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *UserRepo) FindByID(id uuid.UUID) (*model.User, error) {
	var user model.User
	err := r.DB.First(&user, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, model.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *UserRepo) UpdateProfile(id uuid.UUID, req model.UpdateProfileRequest) (*model.User, error) {
	updates := map[string]interface{}{}
	if req.Name != "" {
		updates["name"] = req.Name
	}
	if req.Department != "" {
		updates["department"] = req.Department
	}
	if req.Year != "" {
		updates["year"] = req.Year
	}
	if req.Section != "" {
		updates["section"] = req.Section
	}

	if len(updates) > 0 {
		if err := r.DB.Model(&model.User{}).Where("id = ?", id).Updates(updates).Error; err != nil {
			return nil, err
		}
	}
	return r.FindByID(id)
}

// MergeSkills set-unions extracted skill tags into the student's skill set.
// The row is locked for the read-modify-write because the writer here is a
// faculty-triggered side effect, not the profile's owner.
func (r *UserRepo) MergeSkills(id uuid.UUID, skills []string) error {
	if len(skills) == 0 {
		return nil
	}

	return r.DB.Transaction(func(tx *gorm.DB) error {
		var user model.User
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&user, "id = ?", id).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("merge skills: %w", model.ErrNotFound)
		}
		if err != nil {
			return err
		}

		existing := make(map[string]bool, len(user.SkillSet))
		for _, s := range user.SkillSet {
			existing[s] = true
		}
		merged := user.SkillSet
		for _, s := range skills {
			if s != "" && !existing[s] {
				existing[s] = true
				merged = append(merged, s)
			}
		}
		if len(merged) == len(user.SkillSet) {
			return nil
		}

		return tx.Model(&user).Update("skill_set", merged).Error
	})
}

func (r *UserRepo) SetRefreshToken(id uuid.UUID, token string) error {
	return r.DB.Model(&model.User{}).Where("id = ?", id).Update("refresh_token", token).Error
}

func (r *UserRepo) ListStudentsByClass(class model.ClassKey) ([]model.User, error) {
	var students []model.User
	err := r.DB.
		Where("role = ? AND department = ? AND year = ? AND section = ?",
			model.RoleStudent, class.Department, class.Year, class.Section).
		Order("name asc").
		Find(&students).Error
	if err != nil {
		return nil, err
	}
	return students, nil
}
