package services

import (
	"sync"
	"time"

	"gorm.io/gorm"

	"reservation-server/models"
	"reservation-server/repositories"
)

// In-memory stores backing the service tests. They return
// gorm.ErrRecordNotFound on misses, like the real gorm-backed stores.

type mockPropertyStore struct {
	mu         sync.Mutex
	nextID     uint
	properties map[uint]*models.Property
	images     map[uint]*models.PropertyImage
	reviews    map[uint]*models.Review
	links      map[uint]*models.TenantLink // keyed by user id
}

func newMockPropertyStore() *mockPropertyStore {
	return &mockPropertyStore{
		nextID:     1,
		properties: make(map[uint]*models.Property),
		images:     make(map[uint]*models.PropertyImage),
		reviews:    make(map[uint]*models.Review),
		links:      make(map[uint]*models.TenantLink),
	}
}

func (m *mockPropertyStore) Create(property *models.Property) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	property.ID = m.nextID
	m.nextID++
	m.properties[property.ID] = property
	return nil
}

func (m *mockPropertyStore) GetByID(id uint) (*models.Property, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	property, ok := m.properties[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	out := *property
	out.Tenants = nil
	for _, link := range m.links {
		if link.PropertyID == id {
			out.Tenants = append(out.Tenants, *link)
		}
	}
	out.Reviews = nil
	for _, review := range m.reviews {
		if review.PropertyID == id {
			out.Reviews = append(out.Reviews, *review)
		}
	}
	return &out, nil
}

func (m *mockPropertyStore) GetByName(name string) (*models.Property, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, property := range m.properties {
		if property.Name == name {
			out := *property
			return &out, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockPropertyStore) List(filters models.PropertyFilters) ([]models.Property, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []models.Property
	for _, property := range m.properties {
		item := *property
		for _, link := range m.links {
			if link.PropertyID == property.ID {
				item.Tenants = append(item.Tenants, *link)
			}
		}
		out = append(out, item)
	}
	return out, nil
}

func (m *mockPropertyStore) Update(property *models.Property) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.properties[property.ID]; !ok {
		return gorm.ErrRecordNotFound
	}
	stored := *property
	m.properties[property.ID] = &stored
	return nil
}

func (m *mockPropertyStore) Delete(id uint) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.properties[id]; !ok {
		return gorm.ErrRecordNotFound
	}
	delete(m.properties, id)
	for userID, link := range m.links {
		if link.PropertyID == id {
			delete(m.links, userID)
		}
	}
	for reviewID, review := range m.reviews {
		if review.PropertyID == id {
			delete(m.reviews, reviewID)
		}
	}
	return nil
}

func (m *mockPropertyStore) AddImage(image *models.PropertyImage) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	image.ID = m.nextID
	m.nextID++
	m.images[image.ID] = image
	return nil
}

func (m *mockPropertyStore) GetImage(propertyID, imageID uint) (*models.PropertyImage, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	image, ok := m.images[imageID]
	if !ok || image.PropertyID != propertyID {
		return nil, gorm.ErrRecordNotFound
	}
	return image, nil
}

func (m *mockPropertyStore) DeleteImage(propertyID, imageID uint) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.images, imageID)
	return nil
}

func (m *mockPropertyStore) CreateReview(review *models.Review) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	review.ID = m.nextID
	m.nextID++
	stored := *review
	m.reviews[review.ID] = &stored
	return nil
}

func (m *mockPropertyStore) GetReviewForUser(propertyID, reviewID, userID uint) (*models.Review, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	review, ok := m.reviews[reviewID]
	if !ok || review.PropertyID != propertyID || review.UserID != userID {
		return nil, gorm.ErrRecordNotFound
	}
	out := *review
	return &out, nil
}

func (m *mockPropertyStore) UpdateReview(review *models.Review) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.reviews[review.ID]; !ok {
		return gorm.ErrRecordNotFound
	}
	stored := *review
	m.reviews[review.ID] = &stored
	return nil
}

func (m *mockPropertyStore) DeleteReview(propertyID, reviewID, userID uint) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	review, ok := m.reviews[reviewID]
	if !ok || review.PropertyID != propertyID || review.UserID != userID {
		return 0, nil
	}
	delete(m.reviews, reviewID)
	return 1, nil
}

func (m *mockPropertyStore) AddTenant(link *models.TenantLink) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.links[link.UserID]; ok {
		// Mirrors the unique index on tenant_links.user_id
		return gorm.ErrDuplicatedKey
	}
	link.ID = m.nextID
	m.nextID++
	stored := *link
	m.links[link.UserID] = &stored
	return nil
}

func (m *mockPropertyStore) GetTenantLinkByUser(userID uint) (*models.TenantLink, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	link, ok := m.links[userID]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	out := *link
	return &out, nil
}

func (m *mockPropertyStore) RemoveTenant(propertyID, userID uint) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	link, ok := m.links[userID]
	if !ok || link.PropertyID != propertyID {
		return 0, nil
	}
	delete(m.links, userID)
	return 1, nil
}

func (m *mockPropertyStore) ListTenants(propertyID uint) ([]models.TenantLink, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []models.TenantLink
	for _, link := range m.links {
		if link.PropertyID == propertyID {
			out = append(out, *link)
		}
	}
	return out, nil
}

func (m *mockPropertyStore) ListAllTenants() ([]models.TenantLink, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []models.TenantLink
	for _, link := range m.links {
		out = append(out, *link)
	}
	return out, nil
}

type mockBookingStore struct {
	mu       sync.Mutex
	nextID   uint
	bookings map[uint]*models.Booking
}

func newMockBookingStore() *mockBookingStore {
	return &mockBookingStore{nextID: 1, bookings: make(map[uint]*models.Booking)}
}

func (m *mockBookingStore) Create(booking *models.Booking) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	booking.ID = m.nextID
	m.nextID++
	stored := *booking
	m.bookings[booking.ID] = &stored
	return nil
}

func (m *mockBookingStore) GetByID(id uint) (*models.Booking, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	booking, ok := m.bookings[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	out := *booking
	return &out, nil
}

func (m *mockBookingStore) GetActiveForProperty(propertyID, userID uint) (*models.Booking, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, booking := range m.bookings {
		if booking.PropertyID == propertyID && booking.UserID == userID && booking.IsActive() {
			out := *booking
			return &out, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockBookingStore) GetForUser(bookingID, userID uint) (*models.Booking, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	booking, ok := m.bookings[bookingID]
	if !ok || booking.UserID != userID {
		return nil, gorm.ErrRecordNotFound
	}
	out := *booking
	return &out, nil
}

func (m *mockBookingStore) ListByProperty(propertyID uint) ([]models.Booking, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []models.Booking
	for _, booking := range m.bookings {
		if booking.PropertyID == propertyID {
			out = append(out, *booking)
		}
	}
	return out, nil
}

func (m *mockBookingStore) ListByUser(userID uint) ([]models.Booking, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []models.Booking
	for _, booking := range m.bookings {
		if booking.UserID == userID {
			out = append(out, *booking)
		}
	}
	return out, nil
}

func (m *mockBookingStore) ListPending() ([]models.Booking, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []models.Booking
	for _, booking := range m.bookings {
		if booking.Status == models.BookingStatusPending {
			out = append(out, *booking)
		}
	}
	return out, nil
}

func (m *mockBookingStore) CountPendingByProperty(propertyID uint) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var count int64
	for _, booking := range m.bookings {
		if booking.PropertyID == propertyID && booking.Status == models.BookingStatusPending {
			count++
		}
	}
	return count, nil
}

func (m *mockBookingStore) ListStalePending(before time.Time) ([]models.Booking, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []models.Booking
	for _, booking := range m.bookings {
		if booking.Status == models.BookingStatusPending && booking.StartDate.Before(before) {
			out = append(out, *booking)
		}
	}
	return out, nil
}

func (m *mockBookingStore) Update(booking *models.Booking) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.bookings[booking.ID]; !ok {
		return gorm.ErrRecordNotFound
	}
	stored := *booking
	m.bookings[booking.ID] = &stored
	return nil
}

type mockPaymentStore struct {
	mu       sync.Mutex
	nextID   uint
	payments map[uint]*models.Payment
	revenue  []repositories.PropertyRevenue
}

func newMockPaymentStore() *mockPaymentStore {
	return &mockPaymentStore{nextID: 1, payments: make(map[uint]*models.Payment)}
}

func (m *mockPaymentStore) Create(payment *models.Payment) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	payment.ID = m.nextID
	m.nextID++
	stored := *payment
	m.payments[payment.ID] = &stored
	return nil
}

func (m *mockPaymentStore) GetByID(id uint) (*models.Payment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	payment, ok := m.payments[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	out := *payment
	return &out, nil
}

func (m *mockPaymentStore) GetByBookingID(bookingID uint) (*models.Payment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, payment := range m.payments {
		if payment.BookingID == bookingID {
			out := *payment
			return &out, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockPaymentStore) List() ([]models.Payment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []models.Payment
	for _, payment := range m.payments {
		out = append(out, *payment)
	}
	return out, nil
}

func (m *mockPaymentStore) ListByUser(userID uint) ([]models.Payment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []models.Payment
	for _, payment := range m.payments {
		if payment.UserID == userID {
			out = append(out, *payment)
		}
	}
	return out, nil
}

func (m *mockPaymentStore) Update(payment *models.Payment) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.payments[payment.ID]; !ok {
		return gorm.ErrRecordNotFound
	}
	stored := *payment
	m.payments[payment.ID] = &stored
	return nil
}

func (m *mockPaymentStore) Delete(id uint) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.payments, id)
	return nil
}

func (m *mockPaymentStore) RevenueByMonth(year, month int) ([]repositories.PropertyRevenue, error) {
	return m.revenue, nil
}

type mockNotificationStore struct {
	mu            sync.Mutex
	nextID        uint
	notifications map[uint]*models.Notification
}

func newMockNotificationStore() *mockNotificationStore {
	return &mockNotificationStore{nextID: 1, notifications: make(map[uint]*models.Notification)}
}

func (m *mockNotificationStore) Create(notification *models.Notification) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	notification.ID = m.nextID
	m.nextID++
	stored := *notification
	m.notifications[notification.ID] = &stored
	return nil
}

func (m *mockNotificationStore) GetForUser(notificationID, userID uint) (*models.Notification, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	notification, ok := m.notifications[notificationID]
	if !ok || notification.UserID != userID {
		return nil, gorm.ErrRecordNotFound
	}
	out := *notification
	return &out, nil
}

func (m *mockNotificationStore) ListByUser(userID uint) ([]models.Notification, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []models.Notification
	for _, notification := range m.notifications {
		if notification.UserID == userID {
			out = append(out, *notification)
		}
	}
	return out, nil
}

func (m *mockNotificationStore) CountUnseen(userID uint) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var count int64
	for _, notification := range m.notifications {
		if notification.UserID == userID && !notification.Seen {
			count++
		}
	}
	return count, nil
}

func (m *mockNotificationStore) Update(notification *models.Notification) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.notifications[notification.ID]; !ok {
		return gorm.ErrRecordNotFound
	}
	stored := *notification
	m.notifications[notification.ID] = &stored
	return nil
}

func (m *mockNotificationStore) MarkAllSeen(userID uint) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, notification := range m.notifications {
		if notification.UserID == userID {
			notification.Seen = true
		}
	}
	return nil
}

type mockUserStore struct {
	mu     sync.Mutex
	nextID uint
	users  map[uint]*models.User
}

func newMockUserStore() *mockUserStore {
	return &mockUserStore{nextID: 1, users: make(map[uint]*models.User)}
}

func (m *mockUserStore) Create(user *models.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	user.ID = m.nextID
	m.nextID++
	stored := *user
	m.users[user.ID] = &stored
	return nil
}

func (m *mockUserStore) GetByID(id uint) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	user, ok := m.users[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	out := *user
	return &out, nil
}

func (m *mockUserStore) GetByEmail(email string) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, user := range m.users {
		if user.Email == email {
			out := *user
			return &out, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockUserStore) Update(user *models.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.users[user.ID]; !ok {
		return gorm.ErrRecordNotFound
	}
	stored := *user
	m.users[user.ID] = &stored
	return nil
}

func (m *mockUserStore) ListIDs() ([]uint, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var ids []uint
	for id := range m.users {
		ids = append(ids, id)
	}
	return ids, nil
}

type mockTokenStore struct {
	mu            sync.Mutex
	nextID        uint
	refreshTokens map[string]*models.RefreshToken
	emailTokens   map[string]*models.EmailToken
}

func newMockTokenStore() *mockTokenStore {
	return &mockTokenStore{
		nextID:        1,
		refreshTokens: make(map[string]*models.RefreshToken),
		emailTokens:   make(map[string]*models.EmailToken),
	}
}

func (m *mockTokenStore) CreateRefreshToken(token *models.RefreshToken) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	token.ID = m.nextID
	m.nextID++
	if token.ExpiresAt.IsZero() {
		token.ExpiresAt = time.Now().Add(30 * 24 * time.Hour)
	}
	stored := *token
	m.refreshTokens[token.Token] = &stored
	return nil
}

func (m *mockTokenStore) GetRefreshToken(token string) (*models.RefreshToken, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	rt, ok := m.refreshTokens[token]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	out := *rt
	return &out, nil
}

func (m *mockTokenStore) UpdateRefreshToken(token *models.RefreshToken) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	stored := *token
	m.refreshTokens[token.Token] = &stored
	return nil
}

func (m *mockTokenStore) RevokeUserRefreshTokens(userID uint) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, rt := range m.refreshTokens {
		if rt.UserID == userID {
			rt.IsRevoked = true
		}
	}
	return nil
}

func (m *mockTokenStore) DeleteExpiredRefreshTokens() (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var removed int64
	for key, rt := range m.refreshTokens {
		if rt.IsExpired() || rt.IsRevoked {
			delete(m.refreshTokens, key)
			removed++
		}
	}
	return removed, nil
}

func (m *mockTokenStore) CreateEmailToken(token *models.EmailToken) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	token.ID = m.nextID
	m.nextID++
	if token.ExpiresAt.IsZero() {
		token.ExpiresAt = time.Now().Add(time.Hour)
	}
	stored := *token
	m.emailTokens[token.Token] = &stored
	return nil
}

func (m *mockTokenStore) GetEmailToken(token string, tokenType models.EmailTokenType) (*models.EmailToken, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	et, ok := m.emailTokens[token]
	if !ok || et.Type != tokenType {
		return nil, gorm.ErrRecordNotFound
	}
	out := *et
	return &out, nil
}

func (m *mockTokenStore) DeleteEmailToken(id uint) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for key, et := range m.emailTokens {
		if et.ID == id {
			delete(m.emailTokens, key)
		}
	}
	return nil
}

func (m *mockTokenStore) DeleteExpiredEmailTokens() (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var removed int64
	for key, et := range m.emailTokens {
		if et.IsExpired() {
			delete(m.emailTokens, key)
			removed++
		}
	}
	return removed, nil
}
