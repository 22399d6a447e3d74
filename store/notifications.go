package store

import (
	"path/filepath"

	"github.com/aaroniusdersiebte/DBM/models"
)

type NotificationsRepository struct {
	path string
}

func NewNotificationsRepository(dataDir string) *NotificationsRepository {
	return &NotificationsRepository{
		path: filepath.Join(dataDir, "bingo-data", "event-notifications.json"),
	}
}

func (r *NotificationsRepository) List() []models.EventNotification {
	notifications := []models.EventNotification{}
	readJSONFile(r.path, &notifications)
	return notifications
}

func (r *NotificationsRepository) SaveAll(notifications []models.EventNotification) error {
	return writeJSONFile(r.path, notifications)
}

// Remove deletes the notification with the given id. Returns false when
// absent.
func (r *NotificationsRepository) Remove(notificationID string) (bool, error) {
	notifications := r.List()
	for i := range notifications {
		if notifications[i].ID == notificationID {
			notifications = append(notifications[:i], notifications[i+1:]...)
			return true, r.SaveAll(notifications)
		}
	}
	return false, nil
}

func (r *NotificationsRepository) Clear() error {
	return r.SaveAll([]models.EventNotification{})
}
