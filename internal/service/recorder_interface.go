package service

import "github.com/cypherlabdev/match-predictor-service/internal/history"

// HistoryRecorder is an interface that abstracts prediction persistence
// This allows for easier testing and mocking
type HistoryRecorder interface {
	Record(input history.RecordInput)
}
