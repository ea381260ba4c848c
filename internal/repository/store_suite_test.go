package repository

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/catalyst/backend/internal/model"
	"github.com/shopspring/decimal"
)

// openStore returns an empty, migrated store for one test.
type openStore func(t *testing.T) *Store

// base is truncated to whole seconds so every backend round-trips it exactly.
var base = time.Date(2024, 3, 15, 10, 0, 0, 0, time.Local)

func newSubmission(title string, submitted time.Time) *model.ProjectSubmission {
	return &model.ProjectSubmission{
		ProjectType:        model.ProjectTypeWeb,
		ClientName:         "Jane Client",
		Email:              "jane@example.com",
		ProjectTitle:       title,
		ProjectDescription: "A new marketing site",
		Budget:             decimal.RequireFromString("1000.00"),
		Timeline:           model.TimelineStandard,
		SubmittedAt:        submitted,
	}
}

func newMessage(subject string, submitted time.Time) *model.ContactMessage {
	return &model.ContactMessage{
		Name:        "Sam Sender",
		Email:       "sam@example.com",
		Subject:     subject,
		Message:     "Hello there",
		SubmittedAt: submitted,
	}
}

func idList(n ...int64) []int64 { return n }

func runStoreSuite(t *testing.T, open openStore) {
	t.Run("ProjectCreateAndGet", func(t *testing.T) { testProjectCreateAndGet(t, open(t)) })
	t.Run("ProjectDefaults", func(t *testing.T) { testProjectDefaults(t, open(t)) })
	t.Run("ProjectNotFound", func(t *testing.T) { testProjectNotFound(t, open(t)) })
	t.Run("ProjectEdit", func(t *testing.T) { testProjectEdit(t, open(t)) })
	t.Run("ProjectEditKeepsBulkStatus", func(t *testing.T) { testProjectEditKeepsBulkStatus(t, open(t)) })
	t.Run("ProjectConcurrentCreate", func(t *testing.T) { testProjectConcurrentCreate(t, open(t)) })
	t.Run("ProjectListOrderAndFilters", func(t *testing.T) { testProjectList(t, open(t)) })
	t.Run("ProjectSearch", func(t *testing.T) { testProjectSearch(t, open(t)) })
	t.Run("ProjectSetStatus", func(t *testing.T) { testProjectSetStatus(t, open(t)) })
	t.Run("ProjectBudgetTotals", func(t *testing.T) { testBudgetTotals(t, open(t)) })
	t.Run("ContactCreateAndGet", func(t *testing.T) { testContactCreateAndGet(t, open(t)) })
	t.Run("ContactFlags", func(t *testing.T) { testContactFlags(t, open(t)) })
	t.Run("ContactListFilters", func(t *testing.T) { testContactList(t, open(t)) })
	t.Run("Ping", func(t *testing.T) {
		if err := open(t).DB.Ping(context.Background()); err != nil {
			t.Fatalf("Ping: %v", err)
		}
	})
}

func mustCreateProject(t *testing.T, s *Store, sub *model.ProjectSubmission) *model.ProjectSubmission {
	t.Helper()
	if err := s.Projects.Create(context.Background(), sub); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if sub.ID == 0 {
		t.Fatal("expected ID to be set after Create")
	}
	return sub
}

func mustCreateMessage(t *testing.T, s *Store, msg *model.ContactMessage) *model.ContactMessage {
	t.Helper()
	if err := s.Contacts.Create(context.Background(), msg); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if msg.ID == 0 {
		t.Fatal("expected ID to be set after Create")
	}
	return msg
}

func projectTitles(list []*model.ProjectSubmission) []string {
	out := make([]string, len(list))
	for i, p := range list {
		out[i] = p.ProjectTitle
	}
	return out
}

func equalStrings(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func testProjectCreateAndGet(t *testing.T, s *Store) {
	ctx := context.Background()
	sub := newSubmission("Brand refresh", base)
	sub.ProjectType = model.ProjectTypeBrand
	sub.Company = "Acme"
	sub.Phone = "+1 555 0100"
	sub.Budget = decimal.RequireFromString("1234.50")
	sub.Timeline = model.TimelineUrgent
	sub.ReferenceLinks = "https://example.com"
	sub.HeardFrom = model.HeardFromReferral
	sub.AdditionalNotes = "Call after 5pm"
	sub.AttachedFiles = []string{"uploads/brief.pdf", "uploads/logo.png"}
	sub.CreatedAt = base
	sub.UpdatedAt = base
	mustCreateProject(t, s, sub)

	got, err := s.Projects.GetByID(ctx, sub.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if got.ProjectType != model.ProjectTypeBrand || got.Timeline != model.TimelineUrgent || got.HeardFrom != model.HeardFromReferral {
		t.Errorf("enum fields = %q/%q/%q", got.ProjectType, got.Timeline, got.HeardFrom)
	}
	if got.Company != "Acme" || got.Phone != "+1 555 0100" || got.ReferenceLinks != "https://example.com" || got.AdditionalNotes != "Call after 5pm" {
		t.Errorf("optional fields not round-tripped: %+v", got)
	}
	if !got.Budget.Equal(decimal.RequireFromString("1234.50")) {
		t.Errorf("Budget = %s, want 1234.50", got.Budget)
	}
	if !equalStrings(got.AttachedFiles, sub.AttachedFiles) {
		t.Errorf("AttachedFiles = %v, want %v", got.AttachedFiles, sub.AttachedFiles)
	}
	if got.Status != model.StatusPending {
		t.Errorf("Status = %q, want pending", got.Status)
	}
	if !got.SubmittedAt.Equal(base) || !got.CreatedAt.Equal(base) {
		t.Errorf("timestamps = %v/%v, want %v", got.CreatedAt, got.SubmittedAt, base)
	}
}

func testProjectDefaults(t *testing.T, s *Store) {
	ctx := context.Background()
	sub := newSubmission("Defaults", time.Time{})
	before := time.Now().Add(-time.Second)
	mustCreateProject(t, s, sub)

	got, err := s.Projects.GetByID(ctx, sub.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if got.CreatedAt.Before(before) {
		t.Errorf("CreatedAt = %v, want recent", got.CreatedAt)
	}
	if !got.SubmittedAt.Equal(got.CreatedAt) {
		t.Errorf("SubmittedAt = %v, want CreatedAt %v", got.SubmittedAt, got.CreatedAt)
	}
	if got.Company != "" || got.HeardFrom != "" || got.AttachedFiles != nil || got.Notes != "" {
		t.Errorf("expected empty optional fields, got %+v", got)
	}
}

func testProjectNotFound(t *testing.T, s *Store) {
	ctx := context.Background()
	if _, err := s.Projects.GetByID(ctx, 9999); !errors.Is(err, ErrNotFound) {
		t.Errorf("GetByID err = %v, want ErrNotFound", err)
	}
	notes := "x"
	if _, err := s.Projects.Edit(ctx, 9999, model.ProjectUpdate{Notes: &notes}, base); !errors.Is(err, ErrNotFound) {
		t.Errorf("Edit err = %v, want ErrNotFound", err)
	}
}

func testProjectEdit(t *testing.T, s *Store) {
	ctx := context.Background()
	sub := mustCreateProject(t, s, newSubmission("Editable", base))

	status := model.StatusContacted
	notes := "Left a voicemail"
	edited, err := s.Projects.Edit(ctx, sub.ID, model.ProjectUpdate{Status: &status, Notes: &notes}, base.Add(time.Hour))
	if err != nil {
		t.Fatalf("Edit: %v", err)
	}
	if edited.Status != model.StatusContacted || edited.Notes != "Left a voicemail" || edited.ClientName != "Jane Client" {
		t.Errorf("Edit returned %+v", edited)
	}

	got, err := s.Projects.GetByID(ctx, sub.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if got.Status != model.StatusContacted || got.Notes != "Left a voicemail" {
		t.Errorf("got status %q notes %q", got.Status, got.Notes)
	}
	if !got.UpdatedAt.Equal(base.Add(time.Hour)) {
		t.Errorf("UpdatedAt = %v", got.UpdatedAt)
	}
	if !got.SubmittedAt.Equal(base) || !got.Budget.Equal(sub.Budget) {
		t.Errorf("untouched columns changed: %+v", got)
	}
}

// A notes-only edit that lands after a bulk status change must keep the new status.
func testProjectEditKeepsBulkStatus(t *testing.T, s *Store) {
	ctx := context.Background()
	sub := mustCreateProject(t, s, newSubmission("Contended", base))

	if _, err := s.Projects.GetByID(ctx, sub.ID); err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if n, err := s.Projects.SetStatus(ctx, idList(sub.ID), model.StatusAccepted, base.Add(time.Minute)); err != nil || n != 1 {
		t.Fatalf("SetStatus = %d, %v", n, err)
	}
	notes := "called client"
	if _, err := s.Projects.Edit(ctx, sub.ID, model.ProjectUpdate{Notes: &notes}, base.Add(2*time.Minute)); err != nil {
		t.Fatalf("Edit: %v", err)
	}

	got, _ := s.Projects.GetByID(ctx, sub.ID)
	if got.Status != model.StatusAccepted || got.Notes != "called client" {
		t.Errorf("got status %q notes %q, want accepted / called client", got.Status, got.Notes)
	}

	cleared := ""
	got, err := s.Projects.Edit(ctx, sub.ID, model.ProjectUpdate{Notes: &cleared}, base.Add(3*time.Minute))
	if err != nil || got.Notes != "" || got.Status != model.StatusAccepted {
		t.Errorf("clearing notes = %+v, %v", got, err)
	}
}

func testProjectConcurrentCreate(t *testing.T, s *Store) {
	const n = 20
	ctx := context.Background()

	var wg sync.WaitGroup
	ids := make([]int64, n)
	errs := make([]error, n)
	for i := range n {
		wg.Add(1)
		go func() {
			defer wg.Done()
			sub := newSubmission(fmt.Sprintf("Concurrent %d", i), base)
			errs[i] = s.Projects.Create(ctx, sub)
			ids[i] = sub.ID
		}()
	}
	wg.Wait()

	seen := make(map[int64]bool, n)
	for i, err := range errs {
		if err != nil {
			t.Fatalf("Create %d: %v", i, err)
		}
		if seen[ids[i]] {
			t.Errorf("duplicate id %d", ids[i])
		}
		seen[ids[i]] = true
	}
	total, err := s.Projects.Count(ctx, model.ProjectFilter{})
	if err != nil || total != n {
		t.Errorf("Count = %d, %v; want %d", total, err, n)
	}
}

func testProjectList(t *testing.T, s *Store) {
	ctx := context.Background()
	older := mustCreateProject(t, s, newSubmission("older", base.Add(-48*time.Hour)))
	tieA := mustCreateProject(t, s, newSubmission("tie-a", base))
	tieB := mustCreateProject(t, s, newSubmission("tie-b", base))
	uiux := newSubmission("uiux", base.Add(-time.Hour))
	uiux.ProjectType = model.ProjectTypeUIUX
	uiux.Timeline = model.TimelineFlexible
	mustCreateProject(t, s, uiux)

	all, err := s.Projects.List(ctx, model.ProjectFilter{})
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	want := []string{"tie-b", "tie-a", "uiux", "older"}
	if !equalStrings(projectTitles(all), want) {
		t.Errorf("order = %v, want %v", projectTitles(all), want)
	}

	if _, err := s.Projects.SetStatus(ctx, idList(older.ID, tieA.ID), model.StatusRejected, base); err != nil {
		t.Fatalf("SetStatus: %v", err)
	}
	rejected := model.StatusRejected
	got, err := s.Projects.List(ctx, model.ProjectFilter{Status: &rejected})
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if !equalStrings(projectTitles(got), []string{"tie-a", "older"}) {
		t.Errorf("status filter = %v", projectTitles(got))
	}

	pt := model.ProjectTypeUIUX
	tl := model.TimelineFlexible
	got, err = s.Projects.List(ctx, model.ProjectFilter{ProjectType: &pt, Timeline: &tl})
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if !equalStrings(projectTitles(got), []string{"uiux"}) {
		t.Errorf("type/timeline filter = %v", projectTitles(got))
	}

	day := model.Day(base)
	got, err = s.Projects.List(ctx, model.ProjectFilter{Submitted: &day})
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if !equalStrings(projectTitles(got), []string{"tie-b", "tie-a", "uiux"}) {
		t.Errorf("date filter = %v", projectTitles(got))
	}
	n, err := s.Projects.Count(ctx, model.ProjectFilter{Submitted: &day})
	if err != nil || n != 3 {
		t.Errorf("Count(day) = %d, %v; want 3", n, err)
	}

	page, err := s.Projects.List(ctx, model.ProjectFilter{Limit: 2, Offset: 1})
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if !equalStrings(projectTitles(page), []string{"tie-a", "uiux"}) {
		t.Errorf("page = %v", projectTitles(page))
	}
	_ = tieB
}

func testProjectSearch(t *testing.T, s *Store) {
	ctx := context.Background()
	a := newSubmission("Storefront", base)
	a.Company = "Acme Corp"
	mustCreateProject(t, s, a)
	b := newSubmission("100% redesign", base)
	b.ClientName = "Bob"
	b.Email = "bob@studio.test"
	mustCreateProject(t, s, b)

	cases := []struct {
		term string
		want []string
	}{
		{"acme", []string{"Storefront"}},
		{"STUDIO.TEST", []string{"100% redesign"}},
		{"100%", []string{"100% redesign"}},
		{"%", []string{"100% redesign"}},
		{"_", nil},
		{"  ", []string{"100% redesign", "Storefront"}},
	}
	for _, tc := range cases {
		got, err := s.Projects.List(ctx, model.ProjectFilter{Search: tc.term})
		if err != nil {
			t.Fatalf("List(%q): %v", tc.term, err)
		}
		if len(got) != len(tc.want) {
			t.Errorf("search %q = %v, want %v", tc.term, projectTitles(got), tc.want)
			continue
		}
		if tc.want != nil && !equalStrings(projectTitles(got), tc.want) {
			t.Errorf("search %q = %v, want %v", tc.term, projectTitles(got), tc.want)
		}
	}
}

func testProjectSetStatus(t *testing.T, s *Store) {
	ctx := context.Background()
	a := mustCreateProject(t, s, newSubmission("a", base))
	b := mustCreateProject(t, s, newSubmission("b", base))
	untouched := mustCreateProject(t, s, newSubmission("c", base))
	at := base.Add(2 * time.Hour)

	n, err := s.Projects.SetStatus(ctx, idList(a.ID, b.ID, 9999), model.StatusAccepted, at)
	if err != nil {
		t.Fatalf("SetStatus: %v", err)
	}
	if n != 2 {
		t.Errorf("SetStatus matched %d, want 2", n)
	}

	for _, id := range idList(a.ID, b.ID) {
		got, _ := s.Projects.GetByID(ctx, id)
		if got.Status != model.StatusAccepted || !got.UpdatedAt.Equal(at) {
			t.Errorf("project %d: status %q updated %v", id, got.Status, got.UpdatedAt)
		}
	}
	got, _ := s.Projects.GetByID(ctx, untouched.ID)
	if got.Status != model.StatusPending || got.UpdatedAt.Equal(at) {
		t.Errorf("untouched project changed: %q %v", got.Status, got.UpdatedAt)
	}

	n, err = s.Projects.SetStatus(ctx, nil, model.StatusRejected, at)
	if err != nil || n != 0 {
		t.Errorf("SetStatus(nil) = %d, %v", n, err)
	}
}

func testBudgetTotals(t *testing.T, s *Store) {
	ctx := context.Background()
	totals, err := s.Projects.BudgetTotals(ctx)
	if err != nil {
		t.Fatalf("BudgetTotals: %v", err)
	}
	if totals.Count != 0 || !totals.Sum.IsZero() {
		t.Errorf("empty totals = %+v", totals)
	}

	for _, amount := range []string{"1000.00", "2500.50", "0.25"} {
		sub := newSubmission("budget "+amount, base)
		sub.Budget = decimal.RequireFromString(amount)
		mustCreateProject(t, s, sub)
	}
	totals, err = s.Projects.BudgetTotals(ctx)
	if err != nil {
		t.Fatalf("BudgetTotals: %v", err)
	}
	if totals.Count != 3 || !totals.Sum.Equal(decimal.RequireFromString("3500.75")) {
		t.Errorf("totals = %s / %d, want 3500.75 / 3", totals.Sum, totals.Count)
	}
}

func testContactCreateAndGet(t *testing.T, s *Store) {
	ctx := context.Background()
	msg := mustCreateMessage(t, s, newMessage("Quote", base))

	got, err := s.Contacts.GetByID(ctx, msg.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if got.IsRead || got.IsArchived {
		t.Errorf("new message flags = %v/%v, want false/false", got.IsRead, got.IsArchived)
	}
	if got.Subject != "Quote" || got.Message != "Hello there" || !got.SubmittedAt.Equal(base) {
		t.Errorf("got %+v", got)
	}

	if _, err := s.Contacts.GetByID(ctx, 9999); !errors.Is(err, ErrNotFound) {
		t.Errorf("GetByID err = %v, want ErrNotFound", err)
	}
	read := true
	if _, err := s.Contacts.Edit(ctx, 9999, model.ContactUpdate{IsRead: &read}, base); !errors.Is(err, ErrNotFound) {
		t.Errorf("Edit err = %v, want ErrNotFound", err)
	}

	edited, err := s.Contacts.Edit(ctx, msg.ID, model.ContactUpdate{IsRead: &read}, base.Add(time.Minute))
	if err != nil {
		t.Fatalf("Edit: %v", err)
	}
	if !edited.IsRead || edited.IsArchived || !edited.UpdatedAt.Equal(base.Add(time.Minute)) {
		t.Errorf("Edit returned %+v", edited)
	}

	// A bulk archive between two edits survives an edit of is_read alone.
	if _, err := s.Contacts.SetArchived(ctx, idList(msg.ID), true, base.Add(2*time.Minute)); err != nil {
		t.Fatalf("SetArchived: %v", err)
	}
	unread := false
	if _, err := s.Contacts.Edit(ctx, msg.ID, model.ContactUpdate{IsRead: &unread}, base.Add(3*time.Minute)); err != nil {
		t.Fatalf("Edit: %v", err)
	}
	again, _ := s.Contacts.GetByID(ctx, msg.ID)
	if again.IsRead || !again.IsArchived {
		t.Errorf("after Edit flags = %v/%v, want false/true", again.IsRead, again.IsArchived)
	}
}

func testContactFlags(t *testing.T, s *Store) {
	ctx := context.Background()
	a := mustCreateMessage(t, s, newMessage("a", base))
	b := mustCreateMessage(t, s, newMessage("b", base))
	at := base.Add(time.Hour)

	n, err := s.Contacts.SetRead(ctx, idList(a.ID, b.ID), true, at)
	if err != nil || n != 2 {
		t.Fatalf("SetRead = %d, %v", n, err)
	}
	n, err = s.Contacts.SetArchived(ctx, idList(a.ID, 12345), true, at)
	if err != nil || n != 1 {
		t.Fatalf("SetArchived = %d, %v", n, err)
	}

	got, _ := s.Contacts.GetByID(ctx, a.ID)
	if !got.IsRead || !got.IsArchived || !got.UpdatedAt.Equal(at) {
		t.Errorf("a = read %v archived %v updated %v", got.IsRead, got.IsArchived, got.UpdatedAt)
	}
	got, _ = s.Contacts.GetByID(ctx, b.ID)
	if !got.IsRead || got.IsArchived {
		t.Errorf("b = read %v archived %v", got.IsRead, got.IsArchived)
	}

	if _, err := s.Contacts.SetRead(ctx, idList(a.ID), false, at); err != nil {
		t.Fatalf("SetRead: %v", err)
	}
	got, _ = s.Contacts.GetByID(ctx, a.ID)
	if got.IsRead || !got.IsArchived {
		t.Errorf("mark unread touched archive: read %v archived %v", got.IsRead, got.IsArchived)
	}
}

func testContactList(t *testing.T, s *Store) {
	ctx := context.Background()
	read := mustCreateMessage(t, s, newMessage("read one", base.Add(-time.Hour)))
	mustCreateMessage(t, s, newMessage("fresh one", base))
	old := newMessage("Pricing question", base.Add(-72*time.Hour))
	old.Name = "Priya"
	mustCreateMessage(t, s, old)
	if _, err := s.Contacts.SetRead(ctx, idList(read.ID), true, base); err != nil {
		t.Fatalf("SetRead: %v", err)
	}

	subjects := func(list []*model.ContactMessage) []string {
		out := make([]string, len(list))
		for i, m := range list {
			out[i] = m.Subject
		}
		return out
	}

	all, err := s.Contacts.List(ctx, model.ContactListOptions{})
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if !equalStrings(subjects(all), []string{"fresh one", "read one", "Pricing question"}) {
		t.Errorf("order = %v", subjects(all))
	}

	unread := false
	got, _ := s.Contacts.List(ctx, model.ContactListOptions{IsRead: &unread})
	if !equalStrings(subjects(got), []string{"fresh one", "Pricing question"}) {
		t.Errorf("unread = %v", subjects(got))
	}

	got, _ = s.Contacts.List(ctx, model.ContactListOptions{Search: "priya"})
	if !equalStrings(subjects(got), []string{"Pricing question"}) {
		t.Errorf("search = %v", subjects(got))
	}

	day := model.Day(base)
	n, err := s.Contacts.Count(ctx, model.ContactListOptions{Submitted: &day})
	if err != nil || n != 2 {
		t.Errorf("Count(day) = %d, %v; want 2", n, err)
	}
	archived := true
	n, err = s.Contacts.Count(ctx, model.ContactListOptions{IsArchived: &archived})
	if err != nil || n != 0 {
		t.Errorf("Count(archived) = %d, %v; want 0", n, err)
	}
}
