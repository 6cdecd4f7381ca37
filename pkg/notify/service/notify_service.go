package service

import "agrimanage/entities"

// Notifier is the transient message queue every feature reports through.
type Notifier interface {
	Push(message string, kind entities.NotificationKind) entities.Notification
	Dismiss(id string) bool
	List() []entities.Notification
}

// Discard drops every notification. Useful where no queue is wired (CLI).
type Discard struct{}

func (Discard) Push(message string, kind entities.NotificationKind) entities.Notification {
	return entities.Notification{Message: message, Kind: kind}
}
func (Discard) Dismiss(string) bool           { return false }
func (Discard) List() []entities.Notification { return nil }
