package service

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"healthlink-be/internal/entity"
	"healthlink-be/internal/repository/contract"
	"healthlink-be/internal/repository/specification"
	"healthlink-be/internal/repository/unitofwork"

	"github.com/google/uuid"
)

// fakeStore is a shared in-memory backing for all fake repositories, so a
// test observes its own writes the same way a transaction would.
type fakeStore struct {
	mu sync.Mutex

	users        map[uuid.UUID]*entity.User
	profiles     map[uuid.UUID]*entity.DoctorProfile
	appointments map[uuid.UUID]*entity.Appointment
	medicines    map[uuid.UUID]*entity.Medicine
	orders       map[uuid.UUID]*entity.Order

	chats    map[uuid.UUID]*entity.Chat
	messages []*entity.ChatMessage
	members  map[string]*entity.ChatMember

	// Counts chat reads that requested a row lock.
	lockedChatReads int

	notifications []*entity.Notification
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		users:        make(map[uuid.UUID]*entity.User),
		profiles:     make(map[uuid.UUID]*entity.DoctorProfile),
		appointments: make(map[uuid.UUID]*entity.Appointment),
		medicines:    make(map[uuid.UUID]*entity.Medicine),
		orders:       make(map[uuid.UUID]*entity.Order),
		chats:        make(map[uuid.UUID]*entity.Chat),
		members:      make(map[string]*entity.ChatMember),
	}
}

func memberKey(userID, chatID uuid.UUID) string {
	return userID.String() + "|" + chatID.String()
}

type fakeFactory struct {
	store *fakeStore
}

func newFakeFactory() *fakeFactory {
	return &fakeFactory{store: newFakeStore()}
}

func (f *fakeFactory) NewUnitOfWork(ctx context.Context) unitofwork.UnitOfWork {
	return &fakeUow{store: f.store}
}

type fakeUow struct {
	store *fakeStore
}

func (u *fakeUow) Begin(ctx context.Context) error { return nil }
func (u *fakeUow) Commit() error                   { return nil }
func (u *fakeUow) Rollback() error                 { return nil }

func (u *fakeUow) UserRepository() contract.UserRepository {
	return &fakeUserRepo{store: u.store}
}

func (u *fakeUow) AppointmentRepository() contract.AppointmentRepository {
	return &fakeAppointmentRepo{store: u.store}
}

func (u *fakeUow) MedicineRepository() contract.MedicineRepository {
	return &fakeMedicineRepo{store: u.store}
}

func (u *fakeUow) OrderRepository() contract.OrderRepository {
	return &fakeOrderRepo{store: u.store}
}

func (u *fakeUow) ChatRepository() contract.ChatRepository {
	return &fakeChatRepo{store: u.store}
}

func (u *fakeUow) NotificationRepository() contract.NotificationRepository {
	return &fakeNotificationRepo{store: u.store}
}

// --- users ---

type fakeUserRepo struct {
	store *fakeStore
}

func (r *fakeUserRepo) Create(ctx context.Context, user *entity.User) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	clone := *user
	r.store.users[user.Id] = &clone
	return nil
}

func (r *fakeUserRepo) Update(ctx context.Context, user *entity.User) error {
	return r.Create(ctx, user)
}

func (r *fakeUserRepo) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.User, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	for _, user := range r.store.users {
		if userMatches(user, specs) {
			clone := *user
			return &clone, nil
		}
	}
	return nil, nil
}

func (r *fakeUserRepo) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	var count int64
	for _, user := range r.store.users {
		if userMatches(user, specs) {
			count++
		}
	}
	return count, nil
}

func userMatches(user *entity.User, specs []specification.Specification) bool {
	for _, spec := range specs {
		switch s := spec.(type) {
		case specification.ByID:
			if user.Id != s.ID {
				return false
			}
		case specification.FilterBy:
			switch s.Field {
			case "email":
				if user.Email != s.Value.(string) {
					return false
				}
			case "role":
				if user.Role != s.Value.(string) {
					return false
				}
			}
		}
	}
	return true
}

func (r *fakeUserRepo) CreateDoctorProfile(ctx context.Context, profile *entity.DoctorProfile) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	clone := *profile
	r.store.profiles[profile.UserId] = &clone
	return nil
}

func (r *fakeUserRepo) UpdateDoctorProfile(ctx context.Context, profile *entity.DoctorProfile) error {
	return r.CreateDoctorProfile(ctx, profile)
}

func (r *fakeUserRepo) FindDoctorProfile(ctx context.Context, userID uuid.UUID) (*entity.DoctorProfile, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	profile, ok := r.store.profiles[userID]
	if !ok {
		return nil, nil
	}
	clone := *profile
	return &clone, nil
}

func (r *fakeUserRepo) FindDoctors(ctx context.Context, q contract.DoctorQuery) ([]*entity.Doctor, int64, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	var doctors []*entity.Doctor
	for userID, profile := range r.store.profiles {
		user, ok := r.store.users[userID]
		if !ok {
			continue
		}
		if q.Specialization != "" && !strings.EqualFold(profile.Specialization, q.Specialization) {
			continue
		}
		if q.Location != "" && !strings.EqualFold(profile.Location, q.Location) {
			continue
		}
		if q.MaxFee > 0 && profile.ConsultationFee > q.MaxFee {
			continue
		}
		if q.Search != "" && !strings.Contains(strings.ToLower(user.Name), strings.ToLower(q.Search)) {
			continue
		}
		doctors = append(doctors, &entity.Doctor{User: *user, Profile: *profile})
	}
	total := int64(len(doctors))
	if q.Offset > 0 {
		if q.Offset >= len(doctors) {
			doctors = nil
		} else {
			doctors = doctors[q.Offset:]
		}
	}
	if q.Limit > 0 && len(doctors) > q.Limit {
		doctors = doctors[:q.Limit]
	}
	return doctors, total, nil
}

// --- appointments ---

type fakeAppointmentRepo struct {
	store *fakeStore
}

func (r *fakeAppointmentRepo) Create(ctx context.Context, appointment *entity.Appointment) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	clone := *appointment
	r.store.appointments[appointment.Id] = &clone
	return nil
}

func (r *fakeAppointmentRepo) Update(ctx context.Context, appointment *entity.Appointment) error {
	return r.Create(ctx, appointment)
}

func (r *fakeAppointmentRepo) Delete(ctx context.Context, id uuid.UUID) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	delete(r.store.appointments, id)
	return nil
}

func (r *fakeAppointmentRepo) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Appointment, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	for _, apt := range r.store.appointments {
		if appointmentMatches(apt, specs) {
			clone := *apt
			return &clone, nil
		}
	}
	return nil, nil
}

func (r *fakeAppointmentRepo) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Appointment, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	var result []*entity.Appointment
	for _, apt := range r.store.appointments {
		if appointmentMatches(apt, specs) {
			clone := *apt
			result = append(result, &clone)
		}
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].AppointmentDate.After(result[j].AppointmentDate)
	})
	return result, nil
}

func (r *fakeAppointmentRepo) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	all, err := r.FindAll(ctx, specs...)
	return int64(len(all)), err
}

func appointmentMatches(apt *entity.Appointment, specs []specification.Specification) bool {
	for _, spec := range specs {
		switch s := spec.(type) {
		case specification.ByID:
			if apt.Id != s.ID {
				return false
			}
		case specification.BySlot:
			if apt.DoctorId != s.DoctorID || !sameDay(apt.AppointmentDate, s.Date) || apt.AppointmentTime != s.Time {
				return false
			}
		case specification.NotCancelled:
			if apt.Status == entity.AppointmentStatusCancelled {
				return false
			}
		case specification.ExceptID:
			if apt.Id == s.ID {
				return false
			}
		case specification.ByPatient:
			if apt.PatientId != s.PatientID {
				return false
			}
		case specification.ByDoctor:
			if apt.DoctorId != s.DoctorID {
				return false
			}
		case specification.ByDate:
			if !sameDay(apt.AppointmentDate, s.Date) {
				return false
			}
		}
	}
	return true
}

func sameDay(a, b time.Time) bool {
	return a.Year() == b.Year() && a.YearDay() == b.YearDay()
}

// --- medicines ---

type fakeMedicineRepo struct {
	store *fakeStore
}

func (r *fakeMedicineRepo) Create(ctx context.Context, medicine *entity.Medicine) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	clone := *medicine
	r.store.medicines[medicine.Id] = &clone
	return nil
}

func (r *fakeMedicineRepo) Update(ctx context.Context, medicine *entity.Medicine) error {
	return r.Create(ctx, medicine)
}

func (r *fakeMedicineRepo) Delete(ctx context.Context, id uuid.UUID) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	delete(r.store.medicines, id)
	return nil
}

func (r *fakeMedicineRepo) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Medicine, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	for _, m := range r.store.medicines {
		if medicineMatches(m, specs) {
			clone := *m
			return &clone, nil
		}
	}
	return nil, nil
}

func (r *fakeMedicineRepo) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Medicine, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	var result []*entity.Medicine
	for _, m := range r.store.medicines {
		if medicineMatches(m, specs) {
			clone := *m
			result = append(result, &clone)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Name < result[j].Name })
	return result, nil
}

func (r *fakeMedicineRepo) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	all, err := r.FindAll(ctx, specs...)
	return int64(len(all)), err
}

func medicineMatches(m *entity.Medicine, specs []specification.Specification) bool {
	for _, spec := range specs {
		switch s := spec.(type) {
		case specification.ByID:
			if m.Id != s.ID {
				return false
			}
		case specification.ByIDs:
			found := false
			for _, id := range s.IDs {
				if m.Id == id {
					found = true
					break
				}
			}
			if !found {
				return false
			}
		case specification.FilterBy:
			if s.Field == "category" && m.Category != s.Value.(string) {
				return false
			}
		}
	}
	return true
}

// --- orders ---

type fakeOrderRepo struct {
	store *fakeStore
}

func (r *fakeOrderRepo) Create(ctx context.Context, order *entity.Order) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	clone := *order
	r.store.orders[order.Id] = &clone
	return nil
}

func (r *fakeOrderRepo) Update(ctx context.Context, order *entity.Order) error {
	return r.Create(ctx, order)
}

func (r *fakeOrderRepo) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Order, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	for _, order := range r.store.orders {
		if orderMatches(order, specs) {
			clone := *order
			return &clone, nil
		}
	}
	return nil, nil
}

func (r *fakeOrderRepo) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Order, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	var result []*entity.Order
	for _, order := range r.store.orders {
		if orderMatches(order, specs) {
			clone := *order
			result = append(result, &clone)
		}
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].CreatedAt.After(result[j].CreatedAt)
	})
	for _, spec := range specs {
		if p, ok := spec.(specification.Pagination); ok {
			if p.Offset >= len(result) {
				result = nil
				break
			}
			result = result[p.Offset:]
			if p.Limit > 0 && len(result) > p.Limit {
				result = result[:p.Limit]
			}
		}
	}
	return result, nil
}

func (r *fakeOrderRepo) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	var count int64
	for _, order := range r.store.orders {
		if orderMatches(order, specs) {
			count++
		}
	}
	return count, nil
}

func orderMatches(order *entity.Order, specs []specification.Specification) bool {
	for _, spec := range specs {
		switch s := spec.(type) {
		case specification.ByID:
			if order.Id != s.ID {
				return false
			}
		case specification.FilterBy:
			switch s.Field {
			case "customer_id":
				if order.CustomerId != s.Value.(uuid.UUID) {
					return false
				}
			case "order_status":
				if order.OrderStatus != s.Value.(string) {
					return false
				}
			}
		}
	}
	return true
}

// --- chats ---

type fakeChatRepo struct {
	store *fakeStore
}

func (r *fakeChatRepo) Create(ctx context.Context, chat *entity.Chat) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	clone := *chat
	r.store.chats[chat.Id] = &clone
	return nil
}

func (r *fakeChatRepo) Update(ctx context.Context, chat *entity.Chat) error {
	return r.Create(ctx, chat)
}

func (r *fakeChatRepo) Delete(ctx context.Context, id uuid.UUID) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	delete(r.store.chats, id)
	return nil
}

func (r *fakeChatRepo) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Chat, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	for _, spec := range specs {
		if _, ok := spec.(specification.Locked); ok {
			r.store.lockedChatReads++
		}
	}
	for _, chat := range r.store.chats {
		if chatMatchesLocked(r.store, chat, specs) {
			clone := *chat
			return &clone, nil
		}
	}
	return nil, nil
}

func (r *fakeChatRepo) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Chat, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	var result []*entity.Chat
	for _, chat := range r.store.chats {
		if chatMatchesLocked(r.store, chat, specs) {
			clone := *chat
			result = append(result, &clone)
		}
	}
	// last_message_at DESC NULLS LAST
	sort.Slice(result, func(i, j int) bool {
		a, b := result[i].LastMessageAt, result[j].LastMessageAt
		if a == nil {
			return false
		}
		if b == nil {
			return true
		}
		return a.After(*b)
	})
	return result, nil
}

func chatMatchesLocked(store *fakeStore, chat *entity.Chat, specs []specification.Specification) bool {
	for _, spec := range specs {
		switch s := spec.(type) {
		case specification.ByID:
			if chat.Id != s.ID {
				return false
			}
		case specification.MemberOf:
			if _, ok := store.members[memberKey(s.UserID, chat.Id)]; !ok {
				return false
			}
		}
	}
	return true
}

func (r *fakeChatRepo) AppendMessage(ctx context.Context, message *entity.ChatMessage) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	clone := *message
	r.store.messages = append(r.store.messages, &clone)
	return nil
}

func (r *fakeChatRepo) FindMessages(ctx context.Context, specs ...specification.Specification) ([]*entity.ChatMessage, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	var result []*entity.ChatMessage
	for _, msg := range r.store.messages {
		keep := true
		for _, spec := range specs {
			if s, ok := spec.(specification.ByChatID); ok && msg.ChatId != s.ChatID {
				keep = false
			}
		}
		if keep {
			clone := *msg
			result = append(result, &clone)
		}
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].CreatedAt.Before(result[j].CreatedAt)
	})
	return result, nil
}

func (r *fakeChatRepo) DeleteMessages(ctx context.Context, chatID uuid.UUID) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	kept := r.store.messages[:0]
	for _, msg := range r.store.messages {
		if msg.ChatId != chatID {
			kept = append(kept, msg)
		}
	}
	r.store.messages = kept
	return nil
}

func (r *fakeChatRepo) AddMember(ctx context.Context, member *entity.ChatMember) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	clone := *member
	r.store.members[memberKey(member.UserId, member.ChatId)] = &clone
	return nil
}

func (r *fakeChatRepo) RemoveMember(ctx context.Context, userID, chatID uuid.UUID) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	delete(r.store.members, memberKey(userID, chatID))
	return nil
}

func (r *fakeChatRepo) IsMember(ctx context.Context, userID, chatID uuid.UUID) (bool, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	_, ok := r.store.members[memberKey(userID, chatID)]
	return ok, nil
}

// --- notifications ---

type fakeNotificationRepo struct {
	store *fakeStore
}

func (r *fakeNotificationRepo) Create(ctx context.Context, notification *entity.Notification) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	clone := *notification
	r.store.notifications = append(r.store.notifications, &clone)
	return nil
}

func (r *fakeNotificationRepo) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Notification, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	var result []*entity.Notification
	for _, n := range r.store.notifications {
		if notificationMatches(n, specs) {
			clone := *n
			result = append(result, &clone)
		}
	}
	return result, nil
}

func (r *fakeNotificationRepo) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	all, err := r.FindAll(ctx, specs...)
	return int64(len(all)), err
}

func notificationMatches(n *entity.Notification, specs []specification.Specification) bool {
	for _, spec := range specs {
		if s, ok := spec.(specification.FilterBy); ok {
			switch s.Field {
			case "user_id":
				if n.UserId != s.Value.(uuid.UUID) {
					return false
				}
			case "is_read":
				if n.IsRead != s.Value.(bool) {
					return false
				}
			}
		}
	}
	return true
}

func (r *fakeNotificationRepo) MarkAsRead(ctx context.Context, id uuid.UUID) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	for _, n := range r.store.notifications {
		if n.Id == id {
			n.IsRead = true
		}
	}
	return nil
}

func (r *fakeNotificationRepo) MarkAllAsRead(ctx context.Context, userID uuid.UUID) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	for _, n := range r.store.notifications {
		if n.UserId == userID {
			n.IsRead = true
		}
	}
	return nil
}
