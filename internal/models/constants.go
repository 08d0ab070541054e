package models

// JobType типы работ на бирже
const (
	JobTypeFixed  = "fixed"
	JobTypeHourly = "hourly"
)

// JobStatus статусы объявлений о работе
const (
	JobStatusOpened = "Opened"
	JobStatusClosed = "Closed"
)

// FilterJobType допустимые значения фильтра по типу работы
const (
	FilterJobTypeHourly = "hourly"
	FilterJobTypeFixed  = "fixed"
	FilterJobTypeBoth   = "both"
)

// ProposalStatus статусы сгенерированного предложения
const (
	ProposalStatusPending  = "Pending"
	ProposalStatusAccepted = "Accepted"
	ProposalStatusRejected = "Rejected"
)

// ApplicationStatus статусы заявки на работу
const (
	ApplicationStatusApplied   = "Applied"
	ApplicationStatusRejected  = "Rejected"
	ApplicationStatusSuggested = "Suggested"
)

// AppliedJobStatus статусы работы, на которую подана заявка
const (
	AppliedJobStatusNotStarted = "Not Started"
	AppliedJobStatusOngoing    = "Ongoing"
	AppliedJobStatusCompleted  = "Completed"
	AppliedJobStatusDiscarded  = "Discarded"
)

// CostStrategy стратегии оценки стоимости
const (
	CostStrategyHourBased         = "HourBased"
	CostStrategyClientBudget      = "clientBudget"
	CostStrategyPrevProjectsBased = "PrevProjectsBased"
	CostStrategyCustom            = "Custom"
)

// TimeStrategy стратегии оценки срока
const (
	TimeStrategyJobEstimatedTime = "JobEstimatedTime"
	TimeStrategyModuleBreakDown  = "ModuleBreakDown"
	TimeStrategyCustom           = "Custom"
)

// TaskStatus колонки канбан-доски
const (
	TaskStatusPlanning     = "planning"
	TaskStatusRequirements = "requirements"
	TaskStatusDesign       = "design"
	TaskStatusDevelopment  = "development"
	TaskStatusTesting      = "testing"
	TaskStatusDeployment   = "deployment"
	TaskStatusCompleted    = "completed"
)

// TaskPriority приоритеты задач
const (
	TaskPriorityLow    = "low"
	TaskPriorityMedium = "medium"
	TaskPriorityHigh   = "high"
)

// TicketStatus статусы тикетов поддержки
const (
	TicketStatusActive    = "active"
	TicketStatusResolved  = "resolved"
	TicketStatusCancelled = "cancelled"
)

// TicketType категории тикетов поддержки
const (
	TicketTypeTechnical = "technical"
	TicketTypeBilling   = "billing"
	TicketTypeAccount   = "account"
	TicketTypeFeature   = "feature"
	TicketTypeOther     = "other"
)

// AccountType типы аккаунтов
const (
	AccountTypeCompany    = "Company"
	AccountTypeIndividual = "Individual"
)

// UpworkAccountStatus статусы привязанного аккаунта биржи
const (
	UpworkAccountStatusActive  = "Active"
	UpworkAccountStatusStopped = "Stopped"
)

// ValidFilterJobTypes список валидных значений фильтра по типу работы
var ValidFilterJobTypes = map[string]struct{}{
	FilterJobTypeHourly: {},
	FilterJobTypeFixed:  {},
	FilterJobTypeBoth:   {},
}

// ValidCostStrategies список валидных стратегий оценки стоимости
var ValidCostStrategies = map[string]struct{}{
	CostStrategyHourBased:         {},
	CostStrategyClientBudget:      {},
	CostStrategyPrevProjectsBased: {},
	CostStrategyCustom:            {},
}

// ValidTimeStrategies список валидных стратегий оценки срока
var ValidTimeStrategies = map[string]struct{}{
	TimeStrategyJobEstimatedTime: {},
	TimeStrategyModuleBreakDown:  {},
	TimeStrategyCustom:           {},
}

// ValidTaskStatuses список валидных колонок канбан-доски
var ValidTaskStatuses = map[string]struct{}{
	TaskStatusPlanning:     {},
	TaskStatusRequirements: {},
	TaskStatusDesign:       {},
	TaskStatusDevelopment:  {},
	TaskStatusTesting:      {},
	TaskStatusDeployment:   {},
	TaskStatusCompleted:    {},
}

// TaskStatusOrder порядок колонок для выдачи доски
var TaskStatusOrder = []string{
	TaskStatusPlanning,
	TaskStatusRequirements,
	TaskStatusDesign,
	TaskStatusDevelopment,
	TaskStatusTesting,
	TaskStatusDeployment,
	TaskStatusCompleted,
}

// ValidTaskPriorities список валидных приоритетов задач
var ValidTaskPriorities = map[string]struct{}{
	TaskPriorityLow:    {},
	TaskPriorityMedium: {},
	TaskPriorityHigh:   {},
}

// ValidTicketStatuses список валидных статусов тикетов
var ValidTicketStatuses = map[string]struct{}{
	TicketStatusActive:    {},
	TicketStatusResolved:  {},
	TicketStatusCancelled: {},
}

// ValidTicketTypes список валидных категорий тикетов
var ValidTicketTypes = map[string]struct{}{
	TicketTypeTechnical: {},
	TicketTypeBilling:   {},
	TicketTypeAccount:   {},
	TicketTypeFeature:   {},
	TicketTypeOther:     {},
}
