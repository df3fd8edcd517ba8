package model

// TakeoutStatus 问题回答的剔除状态
type TakeoutStatus string

const (
	TakeoutStatusActive   TakeoutStatus = "active"            // 正常计分
	TakeoutStatusProposed TakeoutStatus = "proposed_takeout"  // 已提议剔除,等待审批
	TakeoutStatusTakenOut TakeoutStatus = "taken_out"         // 剔除已批准,不参与计分
	TakeoutStatusRejected TakeoutStatus = "rejected"          // 剔除提议被拒绝,可重新提议
)

// Valid 检查状态是否有效
func (s TakeoutStatus) Valid() bool {
	switch s {
	case TakeoutStatusActive, TakeoutStatusProposed, TakeoutStatusTakenOut, TakeoutStatusRejected:
		return true
	}
	return false
}

// Resolved 检查状态是否为已决状态（已有审批结论）
func (s TakeoutStatus) Resolved() bool {
	return s == TakeoutStatusTakenOut || s == TakeoutStatusRejected
}

// TakeoutAction 剔除流程操作
type TakeoutAction string

const (
	TakeoutActionPropose TakeoutAction = "propose" // 提议剔除
	TakeoutActionApprove TakeoutAction = "approve" // 批准剔除
	TakeoutActionReject  TakeoutAction = "reject"  // 拒绝剔除
	TakeoutActionCancel  TakeoutAction = "cancel"  // 撤销提议
)

// Valid 检查操作是否有效
func (a TakeoutAction) Valid() bool {
	switch a {
	case TakeoutActionPropose, TakeoutActionApprove, TakeoutActionReject, TakeoutActionCancel:
		return true
	}
	return false
}

// RequiresReason 操作是否必须附带理由
// 提议和拒绝必须说明理由,批准和撤销的理由可选
func (a TakeoutAction) RequiresReason() bool {
	return a == TakeoutActionPropose || a == TakeoutActionReject
}

// AllowedFrom 操作是否允许从指定状态发起
// 状态机: active → proposed_takeout → {taken_out | rejected};
// rejected 只能通过重新提议回到 proposed_takeout,不能直接恢复
func (a TakeoutAction) AllowedFrom(s TakeoutStatus) bool {
	switch a {
	case TakeoutActionPropose:
		return s == TakeoutStatusActive || s == TakeoutStatusRejected
	case TakeoutActionApprove, TakeoutActionReject, TakeoutActionCancel:
		return s == TakeoutStatusProposed
	}
	return false
}

// Target 操作成功后的目标状态
func (a TakeoutAction) Target() TakeoutStatus {
	switch a {
	case TakeoutActionPropose:
		return TakeoutStatusProposed
	case TakeoutActionApprove:
		return TakeoutStatusTakenOut
	case TakeoutActionReject:
		return TakeoutStatusRejected
	case TakeoutActionCancel:
		return TakeoutStatusActive
	}
	return ""
}
