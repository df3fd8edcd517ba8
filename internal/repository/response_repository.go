package repository

import (
	"github.com/mautops/takeout-gin/internal/model"
	"gorm.io/gorm"
)

// ResponseRepository 问卷回复仓储接口
type ResponseRepository interface {
	Save(response *model.ResponseModel) error
	FindByID(id string) (*model.ResponseModel, error)
	FindApplicationMatches(surveyID, normalizedEmail string, applicationIDs []string) ([]*model.ResponseApplicationModel, error)
}

// responseRepository 问卷回复仓储实现
type responseRepository struct {
	db *gorm.DB
}

// NewResponseRepository 创建问卷回复仓储
func NewResponseRepository(db *gorm.DB) ResponseRepository {
	return &responseRepository{db: db}
}

// Save 保存问卷回复
func (r *responseRepository) Save(response *model.ResponseModel) error {
	return r.db.Save(response).Error
}

// FindByID 根据 ID 查找问卷回复
func (r *responseRepository) FindByID(id string) (*model.ResponseModel, error) {
	var response model.ResponseModel
	if err := r.db.Where("id = ?", id).First(&response).Error; err != nil {
		return nil, err
	}
	return &response, nil
}

// FindApplicationMatches 查找同一问卷下同一回复人覆盖指定应用的关联记录
func (r *responseRepository) FindApplicationMatches(surveyID, normalizedEmail string, applicationIDs []string) ([]*model.ResponseApplicationModel, error) {
	var matches []*model.ResponseApplicationModel
	err := r.db.Where("survey_id = ? AND normalized_email = ? AND application_id IN ?",
		surveyID, normalizedEmail, applicationIDs).
		Find(&matches).Error
	return matches, err
}
