package services

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eren/shelfmate/internal/app/repositories/memstore"
)

type sentMail struct {
	to      string
	subject string
}

// fakeNotifier records deliveries and fails for addresses in failFor
type fakeNotifier struct {
	sent    []sentMail
	failFor map[string]bool
}

func (n *fakeNotifier) Send(toEmail, subject, body string) error {
	if n.failFor[toEmail] {
		return fmt.Errorf("smtp: delivery to %s refused", toEmail)
	}
	n.sent = append(n.sent, sentMail{to: toEmail, subject: subject})
	return nil
}

type reminderEnv struct {
	*testEnv
	notifier  *fakeNotifier
	reminders *ReminderService
}

func newReminderEnv(t *testing.T, today time.Time) *reminderEnv {
	t.Helper()

	stores := memstore.New().Stores()
	books := NewBookService(stores.Books, stores.Issues)
	students := NewStudentService(stores.Students, stores.Issues)
	issues := NewIssueService(books, students, stores.Issues)
	issues.today = func() time.Time { return today }

	notifier := &fakeNotifier{failFor: map[string]bool{}}
	reminders := NewReminderService(stores.Issues, notifier, zerolog.Nop())

	return &reminderEnv{
		testEnv:   &testEnv{books: books, students: students, issues: issues},
		notifier:  notifier,
		reminders: reminders,
	}
}

func TestScanHorizonWindow(t *testing.T) {
	issueDay := date(2025, time.June, 1)
	env := newReminderEnv(t, issueDay)
	ctx := context.Background()

	env.addBook(t, "Clean Architecture", "9780134494166", 5)
	inside := env.addStudent(t, "Ayse Kaya", "R102", "+905551234560", "ayse@example.edu.tr")
	edge := env.addStudent(t, "Mehmet Demir", "R103", "+905551234561", "mehmet@example.edu.tr")
	outside := env.addStudent(t, "Zeynep Arslan", "R104", "+905551234562", "zeynep@example.edu.tr")

	// Due in 3, 5 and 6 days from the scan date (June 10)
	_, err := env.issues.IssueBook(ctx, "9780134494166", inside.RollNumber, 12)
	require.NoError(t, err)
	_, err = env.issues.IssueBook(ctx, "9780134494166", edge.RollNumber, 14)
	require.NoError(t, err)
	_, err = env.issues.IssueBook(ctx, "9780134494166", outside.RollNumber, 15)
	require.NoError(t, err)

	scanDay := date(2025, time.June, 10)
	notified, failed, err := env.reminders.Scan(ctx, scanDay, 5)
	require.NoError(t, err)
	assert.Equal(t, 0, failed)
	assert.Equal(t, 2, notified)

	require.Len(t, env.notifier.sent, 2)
	assert.Equal(t, "ayse@example.edu.tr", env.notifier.sent[0].to)
	assert.Equal(t, "Library Reminder: 'Clean Architecture' due in 3 day(s)", env.notifier.sent[0].subject)
	assert.Equal(t, "mehmet@example.edu.tr", env.notifier.sent[1].to)
	assert.Equal(t, "Library Reminder: 'Clean Architecture' due in 5 day(s)", env.notifier.sent[1].subject)
}

func TestScanIncludesOverdueLoans(t *testing.T) {
	issueDay := date(2025, time.June, 1)
	env := newReminderEnv(t, issueDay)
	ctx := context.Background()

	env.addBook(t, "Clean Architecture", "9780134494166", 1)
	env.addStudent(t, "Ayse Kaya", "R102", "+905551234567", "ayse@example.edu.tr")

	// Due June 8; scanned on June 13 the loan is 5 days overdue
	_, err := env.issues.IssueBook(ctx, "9780134494166", "R102", 7)
	require.NoError(t, err)

	notified, failed, err := env.reminders.Scan(ctx, date(2025, time.June, 13), 5)
	require.NoError(t, err)
	assert.Equal(t, 1, notified)
	assert.Equal(t, 0, failed)

	require.Len(t, env.notifier.sent, 1)
	assert.Equal(t, "Library Reminder: 'Clean Architecture' is 5 day(s) overdue", env.notifier.sent[0].subject)
}

func TestScanFailureIsolation(t *testing.T) {
	issueDay := date(2025, time.June, 1)
	env := newReminderEnv(t, issueDay)
	ctx := context.Background()

	env.addBook(t, "Clean Architecture", "9780134494166", 3)
	env.addStudent(t, "Ayse Kaya", "R102", "+905551234560", "ayse@example.edu.tr")
	env.addStudent(t, "Mehmet Demir", "R103", "+905551234561", "mehmet@example.edu.tr")
	env.addStudent(t, "Zeynep Arslan", "R104", "+905551234562", "zeynep@example.edu.tr")

	for _, roll := range []string{"R102", "R103", "R104"} {
		_, err := env.issues.IssueBook(ctx, "9780134494166", roll, 7)
		require.NoError(t, err)
	}

	// The middle student's mailbox rejects delivery; the others still get theirs
	env.notifier.failFor["mehmet@example.edu.tr"] = true

	notified, failed, err := env.reminders.Scan(ctx, date(2025, time.June, 5), 5)
	require.NoError(t, err)
	assert.Equal(t, 2, notified)
	assert.Equal(t, 1, failed)

	require.Len(t, env.notifier.sent, 2)
	assert.Equal(t, "ayse@example.edu.tr", env.notifier.sent[0].to)
	assert.Equal(t, "zeynep@example.edu.tr", env.notifier.sent[1].to)
}

func TestScanSkipsReturnedLoans(t *testing.T) {
	issueDay := date(2025, time.June, 1)
	env := newReminderEnv(t, issueDay)
	ctx := context.Background()

	env.addBook(t, "Clean Architecture", "9780134494166", 1)
	env.addStudent(t, "Ayse Kaya", "R102", "+905551234567", "ayse@example.edu.tr")

	record, err := env.issues.IssueBook(ctx, "9780134494166", "R102", 3)
	require.NoError(t, err)
	_, err = env.issues.ReturnBook(ctx, "R102", record.ID)
	require.NoError(t, err)

	notified, failed, err := env.reminders.Scan(ctx, date(2025, time.June, 2), 5)
	require.NoError(t, err)
	assert.Zero(t, notified)
	assert.Zero(t, failed)
	assert.Empty(t, env.notifier.sent)
}
