package service

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/ecomama/marketplace/internal/core/domain"
	"github.com/ecomama/marketplace/internal/core/ports"
)

// ---------------------------------------------------------------------------
// In-memory stub repositories shared by the service tests.
// ---------------------------------------------------------------------------

var discardLogger = zerolog.Nop()

type stubUserRepo struct {
	byID map[string]*domain.User
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{byID: make(map[string]*domain.User)}
}

func (r *stubUserRepo) Create(_ context.Context, u *domain.User) error {
	for _, existing := range r.byID {
		if existing.Email == u.Email {
			return domain.ErrUserExists
		}
	}
	clone := *u
	r.byID[u.ID] = &clone
	return nil
}

func (r *stubUserRepo) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	for _, u := range r.byID {
		if u.Email == email {
			clone := *u
			return &clone, nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) FindByID(_ context.Context, id string) (*domain.User, error) {
	u, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	clone := *u
	return &clone, nil
}

func (r *stubUserRepo) Count(context.Context) (int64, error) { return int64(len(r.byID)), nil }

type stubRevoker struct {
	revoked map[string]time.Duration
	err     error
}

func (r *stubRevoker) Revoke(_ context.Context, tokenID string, ttl time.Duration) error {
	if r.err != nil {
		return r.err
	}
	if r.revoked == nil {
		r.revoked = make(map[string]time.Duration)
	}
	r.revoked[tokenID] = ttl
	return nil
}

func (r *stubRevoker) IsRevoked(_ context.Context, tokenID string) (bool, error) {
	_, ok := r.revoked[tokenID]
	return ok, nil
}

type stubCommunityRepo struct {
	byID      map[string]*domain.Community
	createErr error
}

func newStubCommunityRepo() *stubCommunityRepo {
	return &stubCommunityRepo{byID: make(map[string]*domain.Community)}
}

func (r *stubCommunityRepo) Create(_ context.Context, c *domain.Community) error {
	if r.createErr != nil {
		return r.createErr
	}
	clone := *c
	r.byID[c.ID] = &clone
	return nil
}

func (r *stubCommunityRepo) FindByID(_ context.Context, id string) (*domain.Community, error) {
	c, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrCommunityNotFound
	}
	clone := *c
	return &clone, nil
}

func (r *stubCommunityRepo) List(_ context.Context, f ports.CommunityFilter) ([]*domain.Community, int64, error) {
	var matched []*domain.Community
	for _, c := range r.byID {
		if f.Search != "" && !strings.Contains(strings.ToLower(c.Name), strings.ToLower(f.Search)) {
			continue
		}
		clone := *c
		matched = append(matched, &clone)
	}
	sort.Slice(matched, func(i, j int) bool { return matched[i].Name < matched[j].Name })
	return paginate(matched, f.Page, f.Limit), int64(len(matched)), nil
}

func (r *stubCommunityRepo) Update(_ context.Context, c *domain.Community) error {
	if _, ok := r.byID[c.ID]; !ok {
		return domain.ErrCommunityNotFound
	}
	clone := *c
	r.byID[c.ID] = &clone
	return nil
}

func (r *stubCommunityRepo) Delete(_ context.Context, id string) error {
	delete(r.byID, id)
	return nil
}

func (r *stubCommunityRepo) Count(context.Context) (int64, error) { return int64(len(r.byID)), nil }

type stubMembershipRepo struct {
	byKey map[string]*domain.Membership
}

func newStubMembershipRepo() *stubMembershipRepo {
	return &stubMembershipRepo{byKey: make(map[string]*domain.Membership)}
}

func membershipKey(communityID, userID string) string { return communityID + "/" + userID }

func (r *stubMembershipRepo) seed(m domain.Membership) {
	r.byKey[membershipKey(m.CommunityID, m.UserID)] = &m
}

func (r *stubMembershipRepo) Create(_ context.Context, m *domain.Membership) error {
	key := membershipKey(m.CommunityID, m.UserID)
	if _, exists := r.byKey[key]; exists {
		return domain.ErrDuplicateMember
	}
	clone := *m
	r.byKey[key] = &clone
	return nil
}

func (r *stubMembershipRepo) Find(_ context.Context, communityID, userID string) (*domain.Membership, error) {
	m, ok := r.byKey[membershipKey(communityID, userID)]
	if !ok {
		return nil, domain.ErrMembershipNotFound
	}
	clone := *m
	return &clone, nil
}

func (r *stubMembershipRepo) ListByCommunity(_ context.Context, f ports.MembershipFilter) ([]*domain.Membership, int64, error) {
	var matched []*domain.Membership
	for _, m := range r.byKey {
		if m.CommunityID != f.CommunityID {
			continue
		}
		if f.Status != "" && m.Status != f.Status {
			continue
		}
		clone := *m
		matched = append(matched, &clone)
	}
	sort.Slice(matched, func(i, j int) bool { return matched[i].UserID < matched[j].UserID })
	return paginate(matched, f.Page, f.Limit), int64(len(matched)), nil
}

func (r *stubMembershipRepo) ListByUser(_ context.Context, userID string) ([]*domain.Membership, error) {
	var out []*domain.Membership
	for _, m := range r.byKey {
		if m.UserID == userID {
			clone := *m
			out = append(out, &clone)
		}
	}
	return out, nil
}

func (r *stubMembershipRepo) Update(_ context.Context, m *domain.Membership) error {
	key := membershipKey(m.CommunityID, m.UserID)
	if _, ok := r.byKey[key]; !ok {
		return domain.ErrMembershipNotFound
	}
	clone := *m
	r.byKey[key] = &clone
	return nil
}

func (r *stubMembershipRepo) Delete(_ context.Context, communityID, userID string) error {
	delete(r.byKey, membershipKey(communityID, userID))
	return nil
}

func (r *stubMembershipRepo) DeleteByCommunity(_ context.Context, communityID string) error {
	for key, m := range r.byKey {
		if m.CommunityID == communityID {
			delete(r.byKey, key)
		}
	}
	return nil
}

func (r *stubMembershipRepo) IsAdmin(_ context.Context, userID, communityID string) (bool, error) {
	m, ok := r.byKey[membershipKey(communityID, userID)]
	return ok && m.IsActiveAdmin(), nil
}

func (r *stubMembershipRepo) IsMember(_ context.Context, userID, communityID string) (bool, error) {
	m, ok := r.byKey[membershipKey(communityID, userID)]
	return ok && m.Status == domain.MembershipApproved, nil
}

func (r *stubMembershipRepo) CountByCommunity(_ context.Context, communityID string, status domain.MembershipStatus) (int64, error) {
	var n int64
	for _, m := range r.byKey {
		if m.CommunityID == communityID && m.Status == status {
			n++
		}
	}
	return n, nil
}

type stubListingRepo struct {
	byID      map[string]*domain.Listing
	createErr error
}

func newStubListingRepo() *stubListingRepo {
	return &stubListingRepo{byID: make(map[string]*domain.Listing)}
}

func (r *stubListingRepo) Create(_ context.Context, l *domain.Listing) error {
	if r.createErr != nil {
		return r.createErr
	}
	clone := *l
	r.byID[l.ID] = &clone
	return nil
}

func (r *stubListingRepo) FindByID(_ context.Context, id string) (*domain.Listing, error) {
	l, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrListingNotFound
	}
	clone := *l
	return &clone, nil
}

func (r *stubListingRepo) matches(l *domain.Listing, f ports.ListingFilter) bool {
	if f.CommunityID != "" && l.CommunityID != f.CommunityID {
		return false
	}
	if f.Type != "" && l.Type != f.Type {
		return false
	}
	if f.Status != "" && l.Status != f.Status {
		return false
	}
	if f.Category != "" && l.Category != f.Category {
		return false
	}
	if f.AuthorID != "" && l.AuthorID != f.AuthorID {
		return false
	}
	if f.Search != "" {
		q := strings.ToLower(f.Search)
		if !strings.Contains(strings.ToLower(l.Title), q) && !strings.Contains(strings.ToLower(l.Description), q) {
			return false
		}
	}
	return true
}

func (r *stubListingRepo) List(_ context.Context, f ports.ListingFilter) ([]*domain.Listing, int64, error) {
	var matched []*domain.Listing
	for _, l := range r.byID {
		if r.matches(l, f) {
			clone := *l
			matched = append(matched, &clone)
		}
	}
	sort.Slice(matched, func(i, j int) bool { return matched[i].Title < matched[j].Title })
	return paginate(matched, f.Page, f.Limit), int64(len(matched)), nil
}

func (r *stubListingRepo) Update(_ context.Context, l *domain.Listing) error {
	clone := *l
	r.byID[l.ID] = &clone
	return nil
}

func (r *stubListingRepo) Delete(_ context.Context, id string) error {
	delete(r.byID, id)
	return nil
}

func (r *stubListingRepo) IsAuthor(_ context.Context, userID, listingID string) (bool, error) {
	l, ok := r.byID[listingID]
	return ok && l.AuthorID == userID, nil
}

func (r *stubListingRepo) Count(_ context.Context, f ports.ListingFilter) (int64, error) {
	var n int64
	for _, l := range r.byID {
		if r.matches(l, f) {
			n++
		}
	}
	return n, nil
}

func (r *stubListingRepo) ExpireBefore(_ context.Context, t time.Time) (int64, error) {
	var n int64
	for _, l := range r.byID {
		if l.Status == domain.ListingActive && l.ExpiresAt != nil && l.ExpiresAt.Before(t) {
			l.Status = domain.ListingExpired
			n++
		}
	}
	return n, nil
}

type stubEventRepo struct {
	byID map[string]*domain.Event
}

func newStubEventRepo() *stubEventRepo {
	return &stubEventRepo{byID: make(map[string]*domain.Event)}
}

func (r *stubEventRepo) Create(_ context.Context, e *domain.Event) error {
	clone := *e
	r.byID[e.ID] = &clone
	return nil
}

func (r *stubEventRepo) FindByID(_ context.Context, id string) (*domain.Event, error) {
	e, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrEventNotFound
	}
	clone := *e
	return &clone, nil
}

func (r *stubEventRepo) matches(e *domain.Event, f ports.EventFilter) bool {
	if f.CommunityID != "" && e.CommunityID != f.CommunityID {
		return false
	}
	if !f.From.IsZero() && e.EndsAt.Before(f.From) {
		return false
	}
	return true
}

func (r *stubEventRepo) List(_ context.Context, f ports.EventFilter) ([]*domain.Event, int64, error) {
	var matched []*domain.Event
	for _, e := range r.byID {
		if r.matches(e, f) {
			clone := *e
			matched = append(matched, &clone)
		}
	}
	sort.Slice(matched, func(i, j int) bool { return matched[i].StartsAt.Before(matched[j].StartsAt) })
	return paginate(matched, f.Page, f.Limit), int64(len(matched)), nil
}

func (r *stubEventRepo) Update(_ context.Context, e *domain.Event) error {
	clone := *e
	r.byID[e.ID] = &clone
	return nil
}

func (r *stubEventRepo) Delete(_ context.Context, id string) error {
	delete(r.byID, id)
	return nil
}

func (r *stubEventRepo) IsAuthor(_ context.Context, userID, eventID string) (bool, error) {
	e, ok := r.byID[eventID]
	return ok && e.AuthorID == userID, nil
}

func (r *stubEventRepo) Count(_ context.Context, f ports.EventFilter) (int64, error) {
	var n int64
	for _, e := range r.byID {
		if r.matches(e, f) {
			n++
		}
	}
	return n, nil
}

type stubActivityRepo struct {
	entries []*domain.Activity
}

func (r *stubActivityRepo) Insert(_ context.Context, a *domain.Activity) error {
	r.entries = append(r.entries, a)
	return nil
}

func (r *stubActivityRepo) ListByCommunity(_ context.Context, communityID string, limit int) ([]*domain.Activity, error) {
	var out []*domain.Activity
	for i := len(r.entries) - 1; i >= 0 && len(out) < limit; i-- {
		if r.entries[i].CommunityID == communityID {
			out = append(out, r.entries[i])
		}
	}
	return out, nil
}

// recordingActivity captures entries synchronously instead of dispatching them.
type recordingActivity struct {
	mu      sync.Mutex
	entries []domain.Activity
}

func (r *recordingActivity) Record(entry domain.Activity) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries = append(r.entries, entry)
}

func (r *recordingActivity) actions() []domain.ActivityAction {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]domain.ActivityAction, len(r.entries))
	for i, e := range r.entries {
		out[i] = e.Action
	}
	return out
}

func paginate[T any](items []T, page, limit int) []T {
	if limit <= 0 {
		return items
	}
	skip := (page - 1) * limit
	if skip < 0 {
		skip = 0
	}
	if skip > len(items) {
		return []T{}
	}
	end := skip + limit
	if end > len(items) {
		end = len(items)
	}
	return items[skip:end]
}

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}
