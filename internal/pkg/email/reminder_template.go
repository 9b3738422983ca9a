package email

import "fmt"

// ReminderEmail builds the subject and HTML body for a due-date reminder.
// daysRemaining is negative for a loan that is already overdue.
func ReminderEmail(studentName, bookTitle, dueDate string, daysRemaining int) (subject, body string) {
	if daysRemaining < 0 {
		subject = fmt.Sprintf("Library Reminder: '%s' is %d day(s) overdue", bookTitle, -daysRemaining)
	} else {
		subject = fmt.Sprintf("Library Reminder: '%s' due in %d day(s)", bookTitle, daysRemaining)
	}

	body = fmt.Sprintf(`
	<h2>Hi %s,</h2>
	<p>This is a friendly reminder that the book <b>'%s'</b> is due on <b>%s</b>.</p>
	<p>Please return or renew it on time to avoid penalties.</p>
	<p>Thank you,<br>Library Management</p>
	`, studentName, bookTitle, dueDate)

	return subject, body
}
