package repository

import (
	"github.com/mautops/takeout-gin/internal/model"
	"gorm.io/gorm"
)

// QuestionResponseRepository 问题回答仓储接口
type QuestionResponseRepository interface {
	Save(qr *model.QuestionResponseModel) error
	FindByID(id string) (*model.QuestionResponseModel, error)
	FindByPair(responseID, questionID string) (*model.QuestionResponseModel, error)
	FindByFilter(filter *QuestionResponseFilter) ([]*model.QuestionResponseModel, error)
}

// QuestionResponseFilter 问题回答查询过滤器
type QuestionResponseFilter struct {
	SurveyID      *string
	FunctionID    *string
	QuestionID    *string
	TakeoutStatus *model.TakeoutStatus
}

// questionResponseRepository 问题回答仓储实现
type questionResponseRepository struct {
	db *gorm.DB
}

// NewQuestionResponseRepository 创建问题回答仓储
func NewQuestionResponseRepository(db *gorm.DB) QuestionResponseRepository {
	return &questionResponseRepository{db: db}
}

// Save 保存问题回答
func (r *questionResponseRepository) Save(qr *model.QuestionResponseModel) error {
	return r.db.Save(qr).Error
}

// FindByID 根据 ID 查找问题回答
func (r *questionResponseRepository) FindByID(id string) (*model.QuestionResponseModel, error) {
	var qr model.QuestionResponseModel
	if err := r.db.Where("id = ?", id).First(&qr).Error; err != nil {
		return nil, err
	}
	return &qr, nil
}

// FindByPair 根据 (response_id, question_id) 查找问题回答
func (r *questionResponseRepository) FindByPair(responseID, questionID string) (*model.QuestionResponseModel, error) {
	var qr model.QuestionResponseModel
	if err := r.db.Where("response_id = ? AND question_id = ?", responseID, questionID).First(&qr).Error; err != nil {
		return nil, err
	}
	return &qr, nil
}

// FindByFilter 根据过滤器查找问题回答
func (r *questionResponseRepository) FindByFilter(filter *QuestionResponseFilter) ([]*model.QuestionResponseModel, error) {
	var qrs []*model.QuestionResponseModel
	query := r.db.Model(&model.QuestionResponseModel{})

	if filter != nil {
		if filter.SurveyID != nil {
			query = query.Where("survey_id = ?", *filter.SurveyID)
		}
		if filter.FunctionID != nil {
			query = query.Where("function_id = ?", *filter.FunctionID)
		}
		if filter.QuestionID != nil {
			query = query.Where("question_id = ?", *filter.QuestionID)
		}
		if filter.TakeoutStatus != nil {
			query = query.Where("takeout_status = ?", *filter.TakeoutStatus)
		}
	}

	err := query.Order("created_at DESC").Find(&qrs).Error
	return qrs, err
}
