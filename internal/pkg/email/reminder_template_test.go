package email

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestReminderEmailUpcoming(t *testing.T) {
	subject, body := ReminderEmail("Ayse Kaya", "Clean Architecture", "2025-06-15", 3)

	assert.Equal(t, "Library Reminder: 'Clean Architecture' due in 3 day(s)", subject)
	assert.Contains(t, body, "Hi Ayse Kaya,")
	assert.Contains(t, body, "'Clean Architecture'")
	assert.Contains(t, body, "2025-06-15")
	assert.Contains(t, body, "avoid penalties")
}

func TestReminderEmailOverdue(t *testing.T) {
	subject, _ := ReminderEmail("Ayse Kaya", "Clean Architecture", "2025-06-08", -5)

	assert.Equal(t, "Library Reminder: 'Clean Architecture' is 5 day(s) overdue", subject)
}
