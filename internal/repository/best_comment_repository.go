package repository

import (
	"github.com/mautops/takeout-gin/internal/model"
	"gorm.io/gorm"
)

// BestCommentRepository 最佳评论仓储接口
type BestCommentRepository interface {
	Save(bc *model.BestCommentModel) error
	FindByQuestionResponseID(questionResponseID string) (*model.BestCommentModel, error)
	FindBySurvey(surveyID string) ([]*model.BestCommentModel, error)
	Delete(id string) error
}

// bestCommentRepository 最佳评论仓储实现
type bestCommentRepository struct {
	db *gorm.DB
}

// NewBestCommentRepository 创建最佳评论仓储
func NewBestCommentRepository(db *gorm.DB) BestCommentRepository {
	return &bestCommentRepository{db: db}
}

// Save 保存最佳评论
func (r *bestCommentRepository) Save(bc *model.BestCommentModel) error {
	return r.db.Save(bc).Error
}

// FindByQuestionResponseID 根据问题回答 ID 查找最佳评论
func (r *bestCommentRepository) FindByQuestionResponseID(questionResponseID string) (*model.BestCommentModel, error) {
	var bc model.BestCommentModel
	if err := r.db.Where("question_response_id = ?", questionResponseID).First(&bc).Error; err != nil {
		return nil, err
	}
	return &bc, nil
}

// FindBySurvey 查找问卷下的全部最佳评论
func (r *bestCommentRepository) FindBySurvey(surveyID string) ([]*model.BestCommentModel, error) {
	var bcs []*model.BestCommentModel
	err := r.db.Where("survey_id = ?", surveyID).Order("curated_at DESC").Find(&bcs).Error
	return bcs, err
}

// Delete 删除最佳评论记录(不影响底层问题回答)
func (r *bestCommentRepository) Delete(id string) error {
	return r.db.Where("id = ?", id).Delete(&model.BestCommentModel{}).Error
}
