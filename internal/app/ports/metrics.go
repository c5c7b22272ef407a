package ports

type ActionMetrics interface {
	RecordSuccess(actionName string)
	RecordConflict()
	RecordFailure()
}
