// Package notify collects user-facing notifications. Entries expire on
// their own after a fixed lifetime, or earlier when dismissed.
package notify

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// DefaultLifetime is how long a notification stays visible.
const DefaultLifetime = 5 * time.Second

// Severity classifies a notification.
type Severity string

const (
	SeveritySuccess Severity = "success"
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
	SeverityInfo    Severity = "info"
)

// Messages shown to the operator. The tool's audience is Korean.
const (
	MsgDataSaved         = "데이터가 성공적으로 저장되었습니다!"
	MsgMonthDeleted      = "월이 성공적으로 삭제되었습니다!"
	MsgExcelImported     = "엑셀 업로드 성공!"
	MsgExcelExported     = "엑셀 다운로드가 완료되었습니다!"
	MsgCombinedExported  = "통합 엑셀 다운로드가 완료되었습니다!"
	MsgMonthAdded        = "새로운 월이 추가되었습니다."
	MsgSaveFailed        = "데이터 저장에 실패했습니다."
	MsgMonthDeleteFailed = "월 삭제에 실패했습니다."
	MsgImportFailed      = "엑셀 업로드에 실패했습니다."
	MsgExportFailed      = "엑셀 다운로드에 실패했습니다."
	MsgCombinedFailed    = "통합 다운로드에 실패했습니다."
	MsgNoMonthsChecked   = "다운로드할 월을 선택해주세요."
	MsgNothingToSave     = "저장할 데이터가 없습니다."
)

// Notification is one user-facing message.
type Notification struct {
	ID        uuid.UUID `json:"id"`
	Message   string    `json:"message"`
	Severity  Severity  `json:"severity"`
	Timestamp time.Time `json:"timestamp"`
}

// Center holds the live notifications.
type Center struct {
	mu       sync.Mutex
	lifetime time.Duration
	entries  []Notification
	timers   map[uuid.UUID]*time.Timer
}

// NewCenter returns an empty notification center.
func NewCenter(lifetime time.Duration) *Center {
	if lifetime <= 0 {
		lifetime = DefaultLifetime
	}

	return &Center{
		lifetime: lifetime,
		timers:   make(map[uuid.UUID]*time.Timer),
	}
}

// Add publishes a notification and schedules its expiry.
func (c *Center) Add(message string, severity Severity) Notification {
	n := Notification{
		ID:        uuid.New(),
		Message:   message,
		Severity:  severity,
		Timestamp: time.Now().UTC(),
	}

	c.mu.Lock()
	c.entries = append(c.entries, n)
	c.timers[n.ID] = time.AfterFunc(c.lifetime, func() { c.Dismiss(n.ID) })
	c.mu.Unlock()

	return n
}

// Success publishes a success notification.
func (c *Center) Success(message string) Notification {
	return c.Add(message, SeveritySuccess)
}

// Error publishes an error notification.
func (c *Center) Error(message string) Notification {
	return c.Add(message, SeverityError)
}

// Warning publishes a warning notification.
func (c *Center) Warning(message string) Notification {
	return c.Add(message, SeverityWarning)
}

// Info publishes an info notification.
func (c *Center) Info(message string) Notification {
	return c.Add(message, SeverityInfo)
}

// Dismiss removes a notification before its expiry. Unknown ids are
// ignored, the expiry timer may already have fired.
func (c *Center) Dismiss(id uuid.UUID) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if timer, ok := c.timers[id]; ok {
		timer.Stop()
		delete(c.timers, id)
	}

	for i, n := range c.entries {
		if n.ID == id {
			c.entries = append(c.entries[:i], c.entries[i+1:]...)
			return
		}
	}
}

// List returns the live notifications, oldest first.
func (c *Center) List() []Notification {
	c.mu.Lock()
	defer c.mu.Unlock()

	entries := make([]Notification, len(c.entries))
	copy(entries, c.entries)
	return entries
}
