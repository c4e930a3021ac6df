// Copyright (c) 2026 FileManageSystem. All rights reserved.
// Author: dinhvu.nguyen.dev@gmail.com

/*
Package notify is the in-app notification center.

Notifications are prepended to an observable list. Each one carries a
dismiss duration: non-error severities auto-dismiss after a default delay
while errors are sticky and stay until the user removes them. Every
auto-dismiss is a cancellable timer torn down when the notification is
removed early or the center is cleared.
*/
package notify

import (
	"sync"
	"time"

	"github.com/NguyenDinhVu2003/FileManageSystem/internal/platform/constants"
	"github.com/NguyenDinhVu2003/FileManageSystem/pkg/observable"
	"github.com/NguyenDinhVu2003/FileManageSystem/pkg/slice"
	"github.com/NguyenDinhVu2003/FileManageSystem/pkg/uuidv7"
)

// Severity classifies a notification.
type Severity string

const (
	SeveritySuccess Severity = "success"
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
	SeverityInfo    Severity = "info"
)

// Notification is one entry in the center.
type Notification struct {
	ID       string        `json:"id"`
	Severity Severity      `json:"type"`
	Title    string        `json:"title"`
	Message  string        `json:"message"`
	Duration time.Duration `json:"duration"` // 0 = sticky
	At       time.Time     `json:"timestamp"`
	Read     bool          `json:"read"`
}

// Center holds the live notification list, newest first.
type Center struct {
	mu     sync.Mutex
	list   *observable.Value[[]Notification]
	timers map[string]*time.Timer
	now    func() time.Time
}

// NewCenter creates an empty notification center.
func NewCenter() *Center {
	return &Center{
		list:   observable.New([]Notification{}),
		timers: make(map[string]*time.Timer),
		now:    time.Now,
	}
}

// Notifications exposes the list as an observable.
func (center *Center) Notifications() *observable.Value[[]Notification] {
	return center.list
}

// Show displays a notification with an explicit dismiss duration. A zero
// duration makes it sticky.
func (center *Center) Show(severity Severity, title, message string, duration time.Duration) {
	center.add(severity, title, message, duration)
}

// Success shows an auto-dismissing success notification.
func (center *Center) Success(title, message string) {
	center.add(SeveritySuccess, title, message, constants.NotificationDefaultDuration)
}

// Error shows a sticky error notification. Errors never auto-dismiss.
func (center *Center) Error(title, message string) {
	center.add(SeverityError, title, message, 0)
}

// Warning shows an auto-dismissing warning notification.
func (center *Center) Warning(title, message string) {
	center.add(SeverityWarning, title, message, constants.NotificationDefaultDuration)
}

// Info shows an auto-dismissing info notification.
func (center *Center) Info(title, message string) {
	center.add(SeverityInfo, title, message, constants.NotificationDefaultDuration)
}

// Remove deletes a notification and cancels its pending dismiss timer.
func (center *Center) Remove(id string) {
	center.mu.Lock()
	defer center.mu.Unlock()
	center.removeLocked(id)
}

// Clear empties the center and cancels every pending dismiss timer.
func (center *Center) Clear() {
	center.mu.Lock()
	defer center.mu.Unlock()

	for id, timer := range center.timers {
		timer.Stop()
		delete(center.timers, id)
	}
	center.list.Set([]Notification{})
}

// MarkRead flags a notification as read without removing it.
func (center *Center) MarkRead(id string) {
	center.mu.Lock()
	defer center.mu.Unlock()

	center.list.Update(func(current []Notification) []Notification {
		return slice.Map(current, func(entry Notification) Notification {
			if entry.ID == id {
				entry.Read = true
			}
			return entry
		})
	})
}

// UnreadCount returns how many notifications are unread.
func (center *Center) UnreadCount() int {
	unread := 0
	for _, entry := range center.list.Get() {
		if !entry.Read {
			unread++
		}
	}
	return unread
}

func (center *Center) add(severity Severity, title, message string, duration time.Duration) {
	center.mu.Lock()
	defer center.mu.Unlock()

	entry := Notification{
		ID:       "notification-" + uuidv7.New(),
		Severity: severity,
		Title:    title,
		Message:  message,
		Duration: duration,
		At:       center.now(),
	}

	center.list.Update(func(current []Notification) []Notification {
		return append([]Notification{entry}, current...)
	})

	if duration > 0 {
		center.timers[entry.ID] = time.AfterFunc(duration, func() {
			center.Remove(entry.ID)
		})
	}
}

// removeLocked deletes an entry. Callers must hold the mutex.
func (center *Center) removeLocked(id string) {
	if timer, ok := center.timers[id]; ok {
		timer.Stop()
		delete(center.timers, id)
	}
	center.list.Update(func(current []Notification) []Notification {
		return slice.Filter(current, func(entry Notification) bool {
			return entry.ID != id
		})
	})
}
