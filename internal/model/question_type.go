package model

// QuestionType 问题类型
type QuestionType string

const (
	QuestionTypeText         QuestionType = "text"          // 自由文本
	QuestionTypeScore        QuestionType = "score"         // 满意度评分
	QuestionTypeSingleChoice QuestionType = "single_choice" // 单选
	QuestionTypeMultiChoice  QuestionType = "multi_choice"  // 多选
	QuestionTypeMatrix       QuestionType = "matrix"        // 矩阵
	QuestionTypeDate         QuestionType = "date"          // 日期
	QuestionTypeSignature    QuestionType = "signature"     // 签名图片引用
)

// allQuestionTypes 全部有效问题类型
var allQuestionTypes = []QuestionType{
	QuestionTypeText, QuestionTypeScore, QuestionTypeSingleChoice,
	QuestionTypeMultiChoice, QuestionTypeMatrix, QuestionTypeDate,
	QuestionTypeSignature,
}

// Valid 检查问题类型是否有效
func (t QuestionType) Valid() bool {
	for _, v := range allQuestionTypes {
		if t == v {
			return true
		}
	}
	return false
}

// NumericQuestionTypes 返回 Numeric 谓词为真的问题类型集合
// 聚合查询按题型过滤数值,而不是按数值字段是否存在
func NumericQuestionTypes() []QuestionType {
	numeric := make([]QuestionType, 0, len(allQuestionTypes))
	for _, t := range allQuestionTypes {
		if t.Numeric() {
			numeric = append(numeric, t)
		}
	}
	return numeric
}

// Numeric 问题类型是否产生可参与平均分计算的数值
func (t QuestionType) Numeric() bool {
	return t == QuestionTypeScore
}

// FreeText 问题类型是否为可评选最佳评论的自由文本
func (t QuestionType) FreeText() bool {
	return t == QuestionTypeText
}
